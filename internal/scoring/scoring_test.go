package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-news-trending/internal/models"
)

// Юнит-тесты веса событий:
//  - базовые веса без затухания (возраст 0);
//  - затухание exp(-0.05*minutes) на контрольной точке 60 минут;
//  - событие «из будущего» — нулевой возраст, не усиление;
//  - неизвестный тип — нулевой вклад.

func TestEventWeight_BaseWeights(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	require.InDelta(t, 5.0, EventWeight(models.EventShare, now, now), 1e-9)
	require.InDelta(t, 3.0, EventWeight(models.EventClick, now, now), 1e-9)
	require.InDelta(t, 1.0, EventWeight(models.EventView, now, now), 1e-9)
}

func TestEventWeight_Decay(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	// SHARE возрастом 60 минут: 5*exp(-3) ≈ 0.249.
	got := EventWeight(models.EventShare, now.Add(-60*time.Minute), now)
	require.InDelta(t, 5.0*math.Exp(-3), got, 1e-9)
	require.InDelta(t, 0.249, got, 0.001)

	// VIEW возрастом 20 минут: exp(-1).
	got = EventWeight(models.EventView, now.Add(-20*time.Minute), now)
	require.InDelta(t, math.Exp(-1), got, 1e-9)
}

func TestEventWeight_FutureTimestampClamped(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	// Часы клиента убежали вперёд: возраст прижимается к нулю.
	got := EventWeight(models.EventShare, now.Add(30*time.Minute), now)
	require.InDelta(t, 5.0, got, 1e-9)
}

func TestEventWeight_UnknownType(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	require.Zero(t, EventWeight(models.EventType("HOVER"), now, now))
}
