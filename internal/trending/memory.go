package trending

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// sweepDivisor — период фонового обхода: TTL/sweepDivisor.
const sweepDivisor = 2

// MemoryStore — in-process реализация Store.
//
// Схема блокировок: mu защищает только карту бакетов; собственно счётчики
// защищены мьютексом бакета. Инкремент и сдвиг TTL выполняются в одной
// критической секции бакета, поэтому гонка «обновили счёт, но не успели
// продлить жизнь» невозможна. Разные бакеты не конкурируют между собой.
//
// Протухшие бакеты убираются лениво при обращении и фоновой зачисткой.
type MemoryStore struct {
	ttl time.Duration

	mu      sync.RWMutex
	buckets map[string]*memBucket

	stop chan struct{}
	done chan struct{}

	// now подменяется в тестах.
	now func() time.Time
}

type memBucket struct {
	mu          sync.Mutex
	scores      map[uuid.UUID]*memEntry
	lastTouched time.Time
	// dead выставляется зачисткой под mu бакета: пишущий, успевший взять
	// указатель до удаления из карты, обязан перечитать бакет заново.
	dead bool
	// seq нумерует первое появление статьи — стабильный тай-брейк TopK.
	seq uint64
}

type memEntry struct {
	score float64
	seq   uint64
}

// NewMemoryStore создаёт хранилище со скользящим TTL и запускает фоновую
// зачистку протухших бакетов. Обязателен вызов Close.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		ttl:     ttl,
		buckets: make(map[string]*memBucket),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		now:     time.Now,
	}

	go s.sweepLoop()

	return s
}

// Increment — см. Store.
func (s *MemoryStore) Increment(_ context.Context, bucket string, articleID uuid.UUID, delta float64) error {
	now := s.now()

	for {
		b := s.bucketForWrite(bucket)

		b.mu.Lock()
		if b.dead {
			b.mu.Unlock()
			continue // зачистка успела удалить бакет — берём новый.
		}

		if s.expiredLocked(b, now) {
			// Окно закрылось: бакет и все его записи умирают вместе.
			b.scores = make(map[uuid.UUID]*memEntry)
			b.seq = 0
		}

		e, ok := b.scores[articleID]
		if !ok {
			e = &memEntry{seq: b.seq}
			b.seq++
			b.scores[articleID] = e
		}
		e.score += delta
		b.lastTouched = now
		b.mu.Unlock()

		return nil
	}
}

// TopK — см. Store.
func (s *MemoryStore) TopK(_ context.Context, bucket string, k int) ([]uuid.UUID, error) {
	if k <= 0 {
		return nil, nil
	}

	now := s.now()

	s.mu.RLock()
	b := s.buckets[bucket]
	s.mu.RUnlock()

	if b == nil {
		return nil, nil
	}

	b.mu.Lock()
	if b.dead || s.expiredLocked(b, now) {
		b.mu.Unlock()
		s.dropIfExpired(bucket, b)
		return nil, nil
	}

	type pair struct {
		id    uuid.UUID
		score float64
		seq   uint64
	}

	pairs := make([]pair, 0, len(b.scores))
	for id, e := range b.scores {
		pairs = append(pairs, pair{id: id, score: e.score, seq: e.seq})
	}

	// Чтение продлевает жизнь бакета: горячие ячейки не остывают,
	// пока их спрашивают.
	b.lastTouched = now
	b.mu.Unlock()

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score > pairs[j].score
		}
		return pairs[i].seq < pairs[j].seq
	})

	if len(pairs) > k {
		pairs = pairs[:k]
	}

	out := make([]uuid.UUID, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.id)
	}

	return out, nil
}

// Clear — см. Store.
func (s *MemoryStore) Clear(_ context.Context, bucket string) error {
	s.mu.Lock()
	b := s.buckets[bucket]
	delete(s.buckets, bucket)
	s.mu.Unlock()

	if b != nil {
		b.mu.Lock()
		b.dead = true
		b.mu.Unlock()
	}

	return nil
}

// Size — см. Store.
func (s *MemoryStore) Size(_ context.Context, bucket string) (int, error) {
	now := s.now()

	s.mu.RLock()
	b := s.buckets[bucket]
	s.mu.RUnlock()

	if b == nil {
		return 0, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dead || s.expiredLocked(b, now) {
		return 0, nil
	}

	return len(b.scores), nil
}

// Close останавливает фоновую зачистку.
func (s *MemoryStore) Close() error {
	close(s.stop)
	<-s.done

	return nil
}

// bucketForWrite возвращает существующий бакет либо создаёт новый.
func (s *MemoryStore) bucketForWrite(bucket string) *memBucket {
	s.mu.RLock()
	b := s.buckets[bucket]
	s.mu.RUnlock()

	if b != nil {
		return b
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if b = s.buckets[bucket]; b != nil {
		return b
	}

	b = &memBucket{scores: make(map[uuid.UUID]*memEntry)}
	s.buckets[bucket] = b

	return b
}

// expiredLocked — бакет пережил lastTouched+TTL. Вызывается под b.mu.
func (s *MemoryStore) expiredLocked(b *memBucket, now time.Time) bool {
	return !b.lastTouched.IsZero() && now.Sub(b.lastTouched) >= s.ttl
}

// dropIfExpired удаляет конкретный экземпляр бакета, если он всё ещё протух.
// Перепроверка под мьютексом бакета нужна из-за гонки с Increment: запись,
// успевшая оживить бакет между нашей проверкой и удалением, не должна пропасть.
func (s *MemoryStore) dropIfExpired(bucket string, b *memBucket) {
	now := s.now()

	b.mu.Lock()
	if b.dead || !s.expiredLocked(b, now) {
		b.mu.Unlock()
		return
	}
	b.dead = true
	b.mu.Unlock()

	s.mu.Lock()
	if s.buckets[bucket] == b {
		delete(s.buckets, bucket)
	}
	s.mu.Unlock()
}

// sweepLoop периодически выкидывает протухшие бакеты, чтобы память не росла
// на бакетах, которые никто больше не читает и не пишет.
func (s *MemoryStore) sweepLoop() {
	defer close(s.done)

	interval := s.ttl / sweepDivisor
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep — один проход зачистки.
func (s *MemoryStore) sweep() {
	now := s.now()

	s.mu.RLock()
	candidates := make(map[string]*memBucket, len(s.buckets))
	for key, b := range s.buckets {
		candidates[key] = b
	}
	s.mu.RUnlock()

	for key, b := range candidates {
		b.mu.Lock()
		expired := !b.dead && s.expiredLocked(b, now)
		b.mu.Unlock()

		if expired {
			s.dropIfExpired(key, b)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
