package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/go-news-trending/internal/models"
	"github.com/pribylovaa/go-news-trending/internal/storage"
)

// articleColumns — единый список колонок выборки.
const articleColumns = "id, title, description, url, source_name, categories, published_at, relevance_score, latitude, longitude"

// haversineSQL — расстояние по большой окружности в километрах, R=6371.
// Формула обязана совпадать с geo.DistanceKm: фильтр кандидатов в SQL и
// ранжирование в Go считают одно и то же расстояние.
const haversineSQL = `(6371 * acos(least(1.0, greatest(-1.0,
	cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude) - radians($2)) +
	sin(radians($1)) * sin(radians(latitude))))))`

// SaveArticles сохраняет пачку статей с upsert по каноническому url.
//
// Политика обновления:
//   - title/description — всегда обновляются непустыми значениями;
//   - relevance_score/категории/координаты — обновляются всегда
//     (их пересчитывает внешний пайплайн);
//   - published_at — не меняется.
func (s *Storage) SaveArticles(ctx context.Context, items []models.Article) error {
	const op = "storage.postgres.SaveArticles"

	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(`
		INSERT INTO articles (id, title, description, url, source_name, categories, published_at, relevance_score, latitude, longitude)
		VALUES (COALESCE(NULLIF($1, '00000000-0000-0000-0000-000000000000'::uuid), gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (url) DO UPDATE
		SET
		title = CASE WHEN EXCLUDED.title <> '' THEN EXCLUDED.title ELSE articles.title END,
		description = CASE WHEN EXCLUDED.description <> '' THEN EXCLUDED.description ELSE articles.description END,
		source_name = CASE WHEN EXCLUDED.source_name <> '' THEN EXCLUDED.source_name ELSE articles.source_name END,
		categories = EXCLUDED.categories,
		relevance_score = EXCLUDED.relevance_score,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude
		`, item.ID, item.Title, item.Description, item.URL, item.SourceName, item.Categories,
			item.PublishedAt.UTC(), item.RelevanceScore, item.Latitude, item.Longitude)
	}

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("%s: batch item %d: %w", op, i, err)
		}
	}

	return nil
}

// ArticleByID возвращает статью по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
func (s *Storage) ArticleByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	const op = "storage.postgres.ArticleByID"

	row := s.db.QueryRow(ctx, `
	SELECT `+articleColumns+`
	FROM articles
	WHERE id = $1
	`, id)

	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return a, nil
}

// ExistsByID — проверка существования без вычитывания строки.
func (s *Storage) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "storage.postgres.ExistsByID"

	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// ArticlesWithinRadius — кандидаты fallback-ранжирования: не старше 48 часов,
// в радиусе maxDistanceKm. Порядок — по свежести; итоговое ранжирование
// выполняет scoring.RankFallback.
func (s *Storage) ArticlesWithinRadius(ctx context.Context, lat, lon, maxDistanceKm float64, limit int32) ([]models.Article, error) {
	const op = "storage.postgres.ArticlesWithinRadius"

	rows, err := s.db.Query(ctx, `
	SELECT `+articleColumns+`
	FROM articles
	WHERE published_at >= now() - INTERVAL '48 hours'
	AND `+haversineSQL+` <= $3
	ORDER BY published_at DESC
	LIMIT $4
	`, lat, lon, maxDistanceKm, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return collectArticles(op, rows)
}

// ArticlesByCategory — статьи категории, свежие сначала.
func (s *Storage) ArticlesByCategory(ctx context.Context, category string, limit int32) ([]models.Article, error) {
	const op = "storage.postgres.ArticlesByCategory"

	rows, err := s.db.Query(ctx, `
	SELECT `+articleColumns+`
	FROM articles
	WHERE categories @> ARRAY[$1]::text[]
	ORDER BY published_at DESC
	LIMIT $2
	`, category, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return collectArticles(op, rows)
}

// ArticlesBySource — статьи издания, свежие сначала.
func (s *Storage) ArticlesBySource(ctx context.Context, source string, limit int32) ([]models.Article, error) {
	const op = "storage.postgres.ArticlesBySource"

	rows, err := s.db.Query(ctx, `
	SELECT `+articleColumns+`
	FROM articles
	WHERE source_name = $1
	ORDER BY published_at DESC
	LIMIT $2
	`, source, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return collectArticles(op, rows)
}

// ArticlesByMinScore — статьи с релевантностью строго выше порога.
func (s *Storage) ArticlesByMinScore(ctx context.Context, minScore float64, limit int32) ([]models.Article, error) {
	const op = "storage.postgres.ArticlesByMinScore"

	rows, err := s.db.Query(ctx, `
	SELECT `+articleColumns+`
	FROM articles
	WHERE relevance_score > $1
	ORDER BY relevance_score DESC
	LIMIT $2
	`, minScore, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return collectArticles(op, rows)
}

// SearchArticles — подстрочный поиск по заголовку/описанию.
func (s *Storage) SearchArticles(ctx context.Context, query string, limit int32) ([]models.Article, error) {
	const op = "storage.postgres.SearchArticles"

	rows, err := s.db.Query(ctx, `
	SELECT `+articleColumns+`
	FROM articles
	WHERE lower(title) LIKE lower('%' || $1 || '%')
	   OR lower(description) LIKE lower('%' || $1 || '%')
	ORDER BY relevance_score DESC
	LIMIT $2
	`, query, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return collectArticles(op, rows)
}

// NearbyArticles — статьи по возрастанию расстояния до точки.
func (s *Storage) NearbyArticles(ctx context.Context, lat, lon float64, limit int32) ([]models.Article, error) {
	const op = "storage.postgres.NearbyArticles"

	rows, err := s.db.Query(ctx, `
	SELECT `+articleColumns+`
	FROM articles
	ORDER BY `+haversineSQL+` ASC
	LIMIT $3
	`, lat, lon, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return collectArticles(op, rows)
}

// normalizeLimit — защита от нуля/отрицательного значения.
func normalizeLimit(limit int32) int32 {
	if limit <= 0 {
		return 1
	}

	return limit
}

// scanArticle читает одну строку выборки articleColumns.
func scanArticle(row pgx.Row) (*models.Article, error) {
	var a models.Article
	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.URL,
		&a.SourceName,
		&a.Categories,
		&a.PublishedAt,
		&a.RelevanceScore,
		&a.Latitude,
		&a.Longitude,
	); err != nil {
		return nil, err
	}

	// Нормализация в UTC.
	a.PublishedAt = a.PublishedAt.UTC()

	return &a, nil
}

// collectArticles вычитывает все строки выборки articleColumns.
func collectArticles(op string, rows pgx.Rows) ([]models.Article, error) {
	defer rows.Close()

	var out []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}

		out = append(out, *a)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return out, nil
}
