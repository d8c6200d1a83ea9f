package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-news-trending/internal/models"
)

// Юнит-тесты fallback-ранжирования:
//  - исключение кандидатов старше 48 часов и дальше maxDistanceKm;
//  - близкий (<10 км) кандидат при равных свежести/релевантности не ниже далёкого;
//  - штраф возраста 24+ часов (timeWeight 0.5);
//  - стабильность сортировки при равных оценках;
//  - пустой вход → пустой выход.

// article — фабрика кандидата вокруг точки запроса (0,0).
func article(lat, lon float64, age time.Duration, relevance float64, now time.Time) models.Article {
	return models.Article{
		ID:             uuid.New(),
		Title:          "t",
		PublishedAt:    now.Add(-age),
		RelevanceScore: relevance,
		Latitude:       lat,
		Longitude:      lon,
	}
}

func TestRankFallback_FiltersOldAndFar(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	fresh := article(0.01, 0.01, time.Hour, 0.9, now)
	old := article(0.01, 0.01, 49*time.Hour, 0.9, now)
	far := article(5.0, 5.0, time.Hour, 0.9, now) // сотни километров

	got := RankFallback([]models.Article{fresh, old, far}, 0, 0, 100, now)

	require.Len(t, got, 1)
	require.Equal(t, fresh.ID, got[0].Article.ID)
}

func TestRankFallback_CloserRanksAtLeastAsHigh(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	// ~5 км и ~55 км к северу; свежесть и релевантность одинаковые.
	near := article(0.045, 0, time.Hour, 0.8, now)
	farther := article(0.5, 0, time.Hour, 0.8, now)

	got := RankFallback([]models.Article{farther, near}, 0, 0, 100, now)

	require.Len(t, got, 2)
	require.Equal(t, near.ID, got[0].Article.ID)
	require.Equal(t, farther.ID, got[1].Article.ID)
}

func TestRankFallback_AgePenalty(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	// Оба близко (<10 км): побеждает свежий несмотря на меньшую релевантность.
	fresh := article(0.01, 0, time.Hour, 0.6, now)     // 1.0*1.0*0.6 = 0.6
	stale := article(0.02, 0, 30*time.Hour, 0.9, now)  // 1.0*0.5*0.9 = 0.45

	got := RankFallback([]models.Article{stale, fresh}, 0, 0, 100, now)

	require.Len(t, got, 2)
	require.Equal(t, fresh.ID, got[0].Article.ID)
}

func TestRankFallback_StableOnTies(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	a := article(0.01, 0, time.Hour, 0.7, now)
	b := article(0.02, 0, time.Hour, 0.7, now)

	got := RankFallback([]models.Article{a, b}, 0, 0, 100, now)

	require.Len(t, got, 2)
	require.Equal(t, a.ID, got[0].Article.ID)
	require.Equal(t, b.ID, got[1].Article.ID)
}

func TestRankFallback_Empty(t *testing.T) {
	t.Parallel()

	got := RankFallback(nil, 0, 0, 100, time.Now().UTC())
	require.Empty(t, got)
}

func TestRankFallback_DistanceReported(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	a := article(0.045, 0, time.Hour, 0.8, now)

	got := RankFallback([]models.Article{a}, 0, 0, 100, now)

	require.Len(t, got, 1)
	require.InDelta(t, 5.0, got[0].DistanceKm, 0.2)
}
