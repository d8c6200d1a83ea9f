// models содержит доменные сущности trending-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Article — доменная сущность новостной статьи.
//
// Особенности:
//   - ID — UUIDv4;
//   - Временные метки — в UTC;
//   - RelevanceScore рассчитывается внешним пайплайном и лежит в [0,1].
type Article struct {
	// ID — уникальный идентификатор статьи.
	ID uuid.UUID
	// Title — заголовок статьи.
	Title string
	// Description — описание/тело статьи.
	Description string
	// URL — ссылка на источник.
	URL string
	// SourceName — название издания-источника.
	SourceName string
	// Categories — список категорий статьи.
	Categories []string
	// PublishedAt — время публикации у источника (UTC).
	PublishedAt time.Time
	// RelevanceScore — предрассчитанная релевантность, [0,1].
	RelevanceScore float64
	// Latitude — широта привязки статьи.
	Latitude float64
	// Longitude — долгота привязки статьи.
	Longitude float64
}

// RankedArticle — статья вместе с расстоянием до точки запроса.
// Используется выдачей trending/fallback, сама статья не мутируется.
type RankedArticle struct {
	Article
	DistanceKm float64
	// Summary — опциональная аннотация от внешнего сервиса суммаризации.
	// Пустая строка, если суммаризация не запрашивалась или не удалась.
	Summary string
}
