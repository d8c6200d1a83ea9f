// service содержит бизнес-логику trending-сервиса:
// выдачу трендов с fallback-дозаполнением, приём событий
// и интент-поиск статей.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-trending/internal/analysis"
	"github.com/pribylovaa/go-news-trending/internal/config"
	"github.com/pribylovaa/go-news-trending/internal/models"
	"github.com/pribylovaa/go-news-trending/internal/storage"
	"github.com/pribylovaa/go-news-trending/internal/trending"
)

var (
	// ErrNotFound — сущность отсутствует.
	// Транспорт: 404 Not Found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — некорректные входные аргументы.
	// Транспорт: 400 Bad Request.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Analyzer — клиент внешнего сервиса анализа запросов.
type Analyzer interface {
	ProcessQuery(ctx context.Context, query string) (*analysis.Result, error)
	Summarize(ctx context.Context, text string) (string, error)
}

// EventPublisher — публикация пользовательских событий в шину.
type EventPublisher interface {
	Publish(ctx context.Context, event models.InteractionEvent) error
}

// Service — описывает бизнес-логику trending-service.
type Service struct {
	storage   storage.Storage
	trends    trending.Store
	analyzer  Analyzer
	publisher EventPublisher
	cfg       config.Config
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, trends trending.Store, analyzer Analyzer, publisher EventPublisher, cfg config.Config) *Service {
	return &Service{
		storage:   storage,
		trends:    trends,
		analyzer:  analyzer,
		publisher: publisher,
		cfg:       cfg,
	}
}

// DefaultLimit — лимит выдачи по умолчанию. Транспорт подставляет его,
// когда клиент не передал limit; явный limit валидируется как есть.
func (s *Service) DefaultLimit() int32 {
	return s.cfg.Limits.Default
}

// normalizeLimit валидирует лимит выдачи: допустим только (0, Max].
// Нулевой и отрицательный limit — ошибка вызывающего, не «значение
// по умолчанию»: дефолт подставляется на границе транспорта.
func (s *Service) normalizeLimit(limit int32) (int32, error) {
	if limit <= 0 || limit > s.cfg.Limits.Max {
		return 0, ErrInvalidArgument
	}
	return limit, nil
}

// clampRadius приводит радиус к границам конфига; 0 -> радиус по умолчанию.
func (s *Service) clampRadius(radiusKm float64) float64 {
	if radiusKm == 0 {
		radiusKm = s.cfg.Fallback.DefaultRadiusKm
	}
	if radiusKm < s.cfg.Fallback.MinRadiusKm {
		return s.cfg.Fallback.MinRadiusKm
	}
	if radiusKm > s.cfg.Fallback.MaxRadiusKm {
		return s.cfg.Fallback.MaxRadiusKm
	}
	return radiusKm
}

// containsID — принадлежность идентификатора списку.
func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
