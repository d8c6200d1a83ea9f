// scoring — чистые функции подсчёта веса событий и fallback-ранжирования.
// Никакого I/O: все входы передаются явно, включая «текущее время».
package scoring

import (
	"math"
	"time"

	"github.com/pribylovaa/go-news-trending/internal/models"
)

// Базовые веса по типу взаимодействия.
const (
	weightShare = 5.0
	weightClick = 3.0
	weightView  = 1.0
)

// decayRate — коэффициент экспоненциального затухания, 1/мин.
const decayRate = 0.05

// EventWeight возвращает взвешенный, затухающий по времени вклад события.
//
// База: SHARE=5.0, CLICK=3.0, VIEW=1.0. Затухание: weight*exp(-0.05*minutes),
// где minutes — сколько минут прошло от генерации события до now.
// Отрицательный возраст (событие «из будущего», рассинхрон часов клиента)
// прижимается к нулю: затухания нет, но и усиления тоже.
//
// Множество типов закрыто и валидируется на границе (декодер шины,
// приём события); неизвестный тип даёт нулевой вклад.
func EventWeight(t models.EventType, timestamp, now time.Time) float64 {
	var base float64
	switch t {
	case models.EventShare:
		base = weightShare
	case models.EventClick:
		base = weightClick
	case models.EventView:
		base = weightView
	default:
		return 0
	}

	minutes := now.Sub(timestamp).Minutes()
	if minutes < 0 {
		minutes = 0
	}

	return base * math.Exp(-decayRate*minutes)
}
