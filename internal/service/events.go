package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-news-trending/internal/geo"
	"github.com/pribylovaa/go-news-trending/internal/models"
	"github.com/pribylovaa/go-news-trending/internal/pkg/log"
)

// RecordEvent валидирует пользовательское событие и публикует его в шину.
// Агрегация счёта происходит асинхронно на стороне консьюмера.
//
// Правила:
//   - тип события и координаты валидируются до публикации;
//   - статья обязана существовать — событие по чужому идентификатору
//     отклоняется как ErrInvalidArgument;
//   - нулевой timestamp заменяется текущим временем сервера.
func (s *Service) RecordEvent(ctx context.Context, event models.InteractionEvent) error {
	const op = "service.events.RecordEvent"

	lg := log.From(ctx)
	lg.Info("record_event_request",
		slog.String("op", op),
		slog.String("article_id", event.ArticleID.String()),
		slog.String("type", string(event.Type)),
	)

	eventType, err := models.ParseEventType(string(event.Type))
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}
	event.Type = eventType

	if err := geo.ValidateCoordinates(event.Latitude, event.Longitude); err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	exists, err := s.storage.ExistsByID(ctx, event.ArticleID)
	if err != nil {
		lg.Error("record_event_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		lg.Warn("record_event_unknown_article",
			slog.String("op", op),
			slog.String("article_id", event.ArticleID.String()),
		)

		return fmt.Errorf("%s: unknown article: %w", op, ErrInvalidArgument)
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		lg.Error("record_event_publish_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return fmt.Errorf("%s: %w", op, err)
	}

	eventsAccepted.Inc()

	return nil
}
