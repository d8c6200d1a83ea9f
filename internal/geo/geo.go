// geo — детерминированные геофункции сервиса: бакетизация координат
// в geohash-ключ и расстояние по большой окружности.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/mmcloughlin/geohash"
)

// ErrInvalidCoordinate — координаты вне диапазона [-90,90]/[-180,180] или NaN.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// DefaultPrecision — число символов geohash-ключа. Ячейка ≈ 4.9×4.9 км.
// Запись и чтение обязаны использовать одну и ту же точность: адресация
// бакетов — строгое совпадение ключа, соседние ячейки не ищутся.
const DefaultPrecision = 5

// earthRadiusKm — радиус Земли для haversine.
const earthRadiusKm = 6371.0

// Bucket отображает пару координат в geohash-ключ фиксированной точности.
// Функция чистая: одинаковый вход всегда даёт одинаковый ключ; две точки
// внутри одной ячейки дают один и тот же ключ.
//
// Координаты не нормализуются и не «подрезаются»: выход за диапазон — ошибка
// ErrInvalidCoordinate, валидировать вход обязан вызывающий слой.
func Bucket(lat, lon float64, precision uint) (string, error) {
	const op = "geo.Bucket"

	if err := ValidateCoordinates(lat, lon); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if precision == 0 {
		return "", fmt.Errorf("%s: zero precision: %w", op, ErrInvalidCoordinate)
	}

	return geohash.EncodeWithPrecision(lat, lon, precision), nil
}

// ValidateCoordinates проверяет, что точка лежит в допустимом диапазоне.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return ErrInvalidCoordinate
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range: %w", lat, ErrInvalidCoordinate)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range: %w", lon, ErrInvalidCoordinate)
	}

	return nil
}

// DistanceKm — расстояние по большой окружности (haversine), км.
// Формула и радиус совпадают с SQL-запросами хранилища, чтобы фильтрация
// кандидатов и ранжирование считали одно и то же расстояние.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
