package events

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-news-trending/internal/geo"
	"github.com/pribylovaa/go-news-trending/internal/models"
	"github.com/pribylovaa/go-news-trending/internal/trending"
)

// Юнит-тесты свёртки события (fold) без NATS:
//  - бакет и дельта считаются корректно и попадают в кэш;
//  - координаты вне диапазона — ErrInvalidCoordinate (перманентный отказ);
//  - ошибка кэша прокидывается (транзиентный отказ).

// recordingStore — ручной стаб кэша трендов.
type recordingStore struct {
	trending.Store

	bucket string
	id     uuid.UUID
	delta  float64
	err    error
}

func (r *recordingStore) Increment(_ context.Context, bucket string, id uuid.UUID, delta float64) error {
	if r.err != nil {
		return r.err
	}
	r.bucket, r.id, r.delta = bucket, id, delta
	return nil
}

func newAggForTest(store trending.Store, now time.Time) *Aggregator {
	return &Aggregator{
		store: store,
		cfg:   AggregatorConfig{Precision: geo.DefaultPrecision},
		now:   func() time.Time { return now },
	}
}

func TestFold_BucketAndDelta(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	store := &recordingStore{}
	agg := newAggForTest(store, now)

	event := models.InteractionEvent{
		ArticleID: uuid.New(),
		Type:      models.EventShare,
		Timestamp: now.Add(-60 * time.Minute),
		Latitude:  19.075983,
		Longitude: 72.877655,
	}

	delta, bucket, err := agg.fold(event)
	require.NoError(t, err)

	require.Equal(t, "te7ud", bucket)
	require.InDelta(t, 5.0*math.Exp(-3), delta, 1e-9)

	require.Equal(t, bucket, store.bucket)
	require.Equal(t, event.ArticleID, store.id)
	require.InDelta(t, delta, store.delta, 1e-9)
}

func TestFold_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	agg := newAggForTest(store, time.Now().UTC())

	event := models.InteractionEvent{
		ArticleID: uuid.New(),
		Type:      models.EventView,
		Timestamp: time.Now().UTC(),
		Latitude:  91.0,
		Longitude: 0,
	}

	_, _, err := agg.fold(event)
	require.ErrorIs(t, err, geo.ErrInvalidCoordinate)
	require.Zero(t, store.delta, "increment must not be called for malformed events")
}

func TestFold_StoreFailurePropagates(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("cache down")
	agg := newAggForTest(&recordingStore{err: storeErr}, time.Now().UTC())

	event := models.InteractionEvent{
		ArticleID: uuid.New(),
		Type:      models.EventView,
		Timestamp: time.Now().UTC(),
		Latitude:  1,
		Longitude: 1,
	}

	_, _, err := agg.fold(event)
	require.ErrorIs(t, err, storeErr)
}
