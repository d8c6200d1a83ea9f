package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pribylovaa/go-news-trending/internal/geo"
	"github.com/pribylovaa/go-news-trending/internal/models"
	"github.com/pribylovaa/go-news-trending/internal/pkg/log"
)

// IngestArticles валидирует и сохраняет пачку статей (upsert по url).
// Партия атомарна на уровне валидации: одна битая статья отклоняет весь
// запрос, чтобы пайплайн-поставщик заметил проблему сразу.
func (s *Service) IngestArticles(ctx context.Context, items []models.Article) error {
	const op = "service.ingest.IngestArticles"

	lg := log.From(ctx)
	lg.Info("ingest_articles_request",
		slog.String("op", op),
		slog.Int("items", len(items)),
	)

	if len(items) == 0 {
		return fmt.Errorf("%s: empty batch: %w", op, ErrInvalidArgument)
	}

	for i := range items {
		if strings.TrimSpace(items[i].Title) == "" || strings.TrimSpace(items[i].URL) == "" {
			return fmt.Errorf("%s: item %d: empty title or url: %w", op, i, ErrInvalidArgument)
		}
		if err := geo.ValidateCoordinates(items[i].Latitude, items[i].Longitude); err != nil {
			return fmt.Errorf("%s: item %d: %w", op, i, ErrInvalidArgument)
		}
		if items[i].PublishedAt.IsZero() {
			return fmt.Errorf("%s: item %d: zero published_at: %w", op, i, ErrInvalidArgument)
		}
		items[i].PublishedAt = items[i].PublishedAt.UTC()
	}

	if err := s.storage.SaveArticles(ctx, items); err != nil {
		lg.Error("ingest_articles_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("ingest_articles_ok",
		slog.String("op", op),
		slog.Int("items", len(items)),
	)

	return nil
}
