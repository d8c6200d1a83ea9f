package scoring

import (
	"sort"
	"time"

	"github.com/pribylovaa/go-news-trending/internal/geo"
	"github.com/pribylovaa/go-news-trending/internal/models"
)

// Пороговые константы fallback-ранжирования. Значения повторяют SQL-запрос
// кандидатов в хранилище: фильтровать и ранжировать обязаны одинаково.
const (
	// maxCandidateAge — статьи старше не ранжируются вовсе.
	maxCandidateAge = 48 * time.Hour
	// nearDistanceKm — внутри этого радиуса дистанция не штрафуется.
	nearDistanceKm = 10.0
	// freshAge — моложе этого возраста вес времени полный, дальше — половина.
	freshAge = 24 * time.Hour
)

// RankFallback ранжирует кандидатов комбинированной оценкой
// «дистанция × свежесть × релевантность» относительно точки (lat, lon).
//
// Фильтр: published_at ≥ now−48h и расстояние ≤ maxDistanceKm; не прошедшие
// фильтр исключаются целиком, а не получают нулевую оценку.
//
// Оценка кандидата:
//
//	distanceWeight = 1.0, если d < 10 км, иначе 10/d
//	timeWeight     = 1.0, если возраст < 24 ч, иначе 0.5
//	combined       = distanceWeight × timeWeight × relevanceScore
//
// Сортировка по combined по убыванию, стабильная (при равных оценках
// сохраняется порядок кандидатов на входе). Функция чистая, вход не мутирует.
func RankFallback(candidates []models.Article, lat, lon, maxDistanceKm float64, now time.Time) []models.RankedArticle {
	type scored struct {
		ranked models.RankedArticle
		score  float64
	}

	oldest := now.Add(-maxCandidateAge)

	items := make([]scored, 0, len(candidates))
	for _, a := range candidates {
		if a.PublishedAt.Before(oldest) {
			continue
		}

		d := geo.DistanceKm(lat, lon, a.Latitude, a.Longitude)
		if d > maxDistanceKm {
			continue
		}

		distanceWeight := 1.0
		if d >= nearDistanceKm {
			distanceWeight = nearDistanceKm / d
		}

		timeWeight := 1.0
		if now.Sub(a.PublishedAt) >= freshAge {
			timeWeight = 0.5
		}

		items = append(items, scored{
			ranked: models.RankedArticle{Article: a, DistanceKm: d},
			score:  distanceWeight * timeWeight * a.RelevanceScore,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	out := make([]models.RankedArticle, 0, len(items))
	for _, it := range items {
		out = append(out, it.ranked)
	}

	return out
}
