package handlers

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// keyLimiter — лимитер одного ключа и время последнего обращения.
type keyLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// EventLimiter ограничивает частоту событий на один article_id.
// Записи по неактивным ключам вычищаются фоновым циклом.
type EventLimiter struct {
	mu       sync.Mutex
	limiters map[string]*keyLimiter
	rate     rate.Limit
	burst    int
	done     chan struct{}
}

// NewEventLimiter создаёт лимитер на perMinute событий в минуту по ключу.
// perMinute <= 0 возвращает nil — лимитирование выключено.
func NewEventLimiter(perMinute int) *EventLimiter {
	if perMinute <= 0 {
		return nil
	}

	el := &EventLimiter{
		limiters: make(map[string]*keyLimiter),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
		done:     make(chan struct{}),
	}
	go el.cleanupLoop()
	return el
}

// Allow сообщает, разрешено ли очередное событие по ключу.
func (el *EventLimiter) Allow(key string) bool {
	el.mu.Lock()
	defer el.mu.Unlock()

	l, ok := el.limiters[key]
	if !ok {
		l = &keyLimiter{limiter: rate.NewLimiter(el.rate, el.burst)}
		el.limiters[key] = l
	}
	l.lastSeen = time.Now()

	return l.limiter.Allow()
}

// Close останавливает фоновую чистку. Допускает nil-лимитер.
func (el *EventLimiter) Close() {
	if el == nil {
		return
	}
	close(el.done)
}

// cleanupLoop удаляет ключи, неактивные дольше пяти минут.
func (el *EventLimiter) cleanupLoop() {
	ticker := time.NewTicker(3 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-el.done:
			return
		case <-ticker.C:
			el.mu.Lock()
			for key, l := range el.limiters {
				if time.Since(l.lastSeen) > 5*time.Minute {
					delete(el.limiters, key)
				}
			}
			el.mu.Unlock()
		}
	}
}
