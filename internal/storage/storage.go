// storage определяет контракты доступа к БД для trending-сервиса.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-news-trending/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrConflict — конфликт уникальности (например, по url), если политика не upsert.
	ErrConflict = errors.New("conflict")
)

// ArticleStorage описывает операции над сущностью models.Article.
//
// Хранилище статей — внешний для trending-ядра владелец данных: ядро только
// читает ArticleByID/ArticlesWithinRadius, остальные операции обслуживают
// поисковые сценарии и загрузку.
type ArticleStorage interface {
	// SaveArticles сохраняет пачку статей (upsert по каноническому url).
	SaveArticles(ctx context.Context, items []models.Article) error
	// ArticleByID возвращает статью по идентификатору.
	// Если запись не найдена — ErrNotFound.
	ArticleByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	// ExistsByID — лёгкая проверка существования статьи (валидация событий).
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	// ArticlesWithinRadius возвращает кандидатов fallback-ранжирования:
	// статьи не старше 48 часов в радиусе maxDistanceKm от точки.
	// Порядок не гарантируется — ранжирует вызывающий слой.
	ArticlesWithinRadius(ctx context.Context, lat, lon, maxDistanceKm float64, limit int32) ([]models.Article, error)
	// ArticlesByCategory — статьи категории, свежие сначала.
	ArticlesByCategory(ctx context.Context, category string, limit int32) ([]models.Article, error)
	// ArticlesBySource — статьи издания, свежие сначала.
	ArticlesBySource(ctx context.Context, source string, limit int32) ([]models.Article, error)
	// ArticlesByMinScore — статьи с relevance_score строго выше порога,
	// по убыванию релевантности.
	ArticlesByMinScore(ctx context.Context, minScore float64, limit int32) ([]models.Article, error)
	// SearchArticles — подстрочный поиск по title/description,
	// по убыванию релевантности.
	SearchArticles(ctx context.Context, query string, limit int32) ([]models.Article, error)
	// NearbyArticles — статьи по возрастанию расстояния до точки.
	NearbyArticles(ctx context.Context, lat, lon float64, limit int32) ([]models.Article, error)
}

// Storage задаёт контракт доступа к хранилищу для trending-сервиса.
type Storage interface {
	ArticleStorage
	Close()
}
