package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Юнит-тесты бакетизации и расстояния:
//  - Bucket: стабильность (одинаковый вход → одинаковый ключ), совпадение
//    ключа для точек одной ячейки, известные значения geohash, ошибки на
//    координатах вне диапазона и нулевой точности;
//  - DistanceKm: нулевое расстояние, известная пара городов, симметрия.

func TestBucket_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := Bucket(19.075983, 72.877655, DefaultPrecision)
	require.NoError(t, err)

	b, err := Bucket(19.075983, 72.877655, DefaultPrecision)
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.Len(t, a, DefaultPrecision)
}

func TestBucket_SameCellSameKey(t *testing.T) {
	t.Parallel()

	// Две точки в сотне метров друг от друга — одна ячейка при точности 5.
	a, err := Bucket(48.8584, 2.2945, DefaultPrecision)
	require.NoError(t, err)

	b, err := Bucket(48.8590, 2.2950, DefaultPrecision)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestBucket_KnownValues(t *testing.T) {
	t.Parallel()

	// Контрольные значения стандартного geohash (base32).
	got, err := Bucket(57.64911, 10.40744, 11)
	require.NoError(t, err)
	require.Equal(t, "u4pruydqqvj", got)

	got, err = Bucket(19.075983, 72.877655, 5)
	require.NoError(t, err)
	require.Equal(t, "te7ud", got)
}

func TestBucket_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		lat, lon float64
	}{
		{"lat_above", 90.01, 0},
		{"lat_below", -90.01, 0},
		{"lon_above", 0, 180.01},
		{"lon_below", 0, -180.01},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Bucket(tc.lat, tc.lon, DefaultPrecision)
			require.ErrorIs(t, err, ErrInvalidCoordinate)
		})
	}
}

func TestBucket_ZeroPrecision(t *testing.T) {
	t.Parallel()

	_, err := Bucket(0, 0, 0)
	require.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestDistanceKm(t *testing.T) {
	t.Parallel()

	// Точка сама до себя.
	require.InDelta(t, 0, DistanceKm(55.75, 37.62, 55.75, 37.62), 1e-9)

	// Москва — Санкт-Петербург, ~634 км.
	d := DistanceKm(55.7558, 37.6173, 59.9311, 30.3609)
	require.InDelta(t, 634, d, 5)

	// Симметрия.
	require.InDelta(t, d, DistanceKm(59.9311, 30.3609, 55.7558, 37.6173), 1e-9)
}
