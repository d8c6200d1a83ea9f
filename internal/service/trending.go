package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-trending/internal/geo"
	"github.com/pribylovaa/go-news-trending/internal/models"
	"github.com/pribylovaa/go-news-trending/internal/pkg/log"
	"github.com/pribylovaa/go-news-trending/internal/scoring"
	"github.com/pribylovaa/go-news-trending/internal/storage"
)

// TrendingQuery — параметры запроса трендовой выдачи.
type TrendingQuery struct {
	Latitude  float64
	Longitude float64
	// Limit <= 0 не допускается транспортом; 0 -> cfg.Limits.Default.
	Limit int32
	// RadiusKm применяется только к fallback-дозаполнению; 0 -> радиус по умолчанию.
	RadiusKm float64
}

// RetrieveTrending возвращает трендовые статьи geo-ячейки пользователя,
// дозаполняя выдачу fallback-ранжированием, если трендов меньше лимита.
//
// Правила:
//   - координаты валидируются до обращения к хранилищу;
//   - limit: 0 -> cfg.Limits.Default, > cfg.Limits.Max или < 0 -> ErrInvalidArgument;
//   - radius_km клампится в [cfg.Fallback.MinRadiusKm, cfg.Fallback.MaxRadiusKm];
//   - тренды идут первыми в порядке убывания счёта, fallback — следом,
//     без дублей между частями;
//   - устаревший идентификатор тренда (статья удалена) молча пропускается.
//
// Ошибками заканчиваются только отказы валидации. Транзиентные отказы кэша
// или хранилища статей логируются и деградируют в пустую/частичную выдачу:
// читающий путь всегда отдаёт упорядоченный список.
func (s *Service) RetrieveTrending(ctx context.Context, q TrendingQuery) ([]models.RankedArticle, error) {
	const op = "service.trending.RetrieveTrending"

	lg := log.From(ctx)
	lg.Info("retrieve_trending_request",
		slog.String("op", op),
		slog.Int("limit", int(q.Limit)),
		slog.Float64("radius_km", q.RadiusKm),
	)

	if err := geo.ValidateCoordinates(q.Latitude, q.Longitude); err != nil {
		lg.Warn("retrieve_trending_invalid_coordinates",
			slog.String("op", op),
		)

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	limit, err := s.normalizeLimit(q.Limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	radiusKm := s.clampRadius(q.RadiusKm)

	bucket, err := geo.Bucket(q.Latitude, q.Longitude, s.cfg.Trending.Precision)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	ids, err := s.trends.TopK(ctx, bucket, int(limit))
	if err != nil {
		// Транзиентный отказ кэша: выдача целиком из fallback.
		lg.Error("retrieve_trending_store_error",
			slog.String("op", op),
			slog.String("bucket", bucket),
			slog.String("err", err.Error()),
		)
		ids = nil
	}

	result, seen := s.hydrateTrending(ctx, ids, q.Latitude, q.Longitude)

	trendingCount := len(result)
	if trendingCount > 0 {
		trendingServed.Add(float64(trendingCount))
	}

	if int32(len(result)) < limit {
		fallbackRequests.Inc()

		filled := s.fallbackFill(ctx, q.Latitude, q.Longitude, radiusKm, limit-int32(len(result)), seen)
		result = append(result, filled...)
	}

	lg.Info("retrieve_trending_ok",
		slog.String("op", op),
		slog.String("bucket", bucket),
		slog.Int("trending", trendingCount),
		slog.Int("total", len(result)),
	)

	return result, nil
}

// hydrateTrending превращает упорядоченные идентификаторы трендов в статьи.
// Удалённые статьи пропускаются молча, транзиентные отказы хранилища —
// с логом; оба случая дают частичную выдачу, не ошибку.
// Возвращает выдачу и множество занятых идентификаторов.
func (s *Service) hydrateTrending(ctx context.Context, ids []uuid.UUID, lat, lon float64) ([]models.RankedArticle, []uuid.UUID) {
	const op = "service.trending.hydrateTrending"

	lg := log.From(ctx)

	result := make([]models.RankedArticle, 0, len(ids))
	seen := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		article, err := s.storage.ArticleByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				lg.Debug("trending_article_gone",
					slog.String("op", op),
					slog.String("article_id", id.String()),
				)
			} else {
				lg.Error("trending_hydrate_storage_error",
					slog.String("op", op),
					slog.String("article_id", id.String()),
					slog.String("err", err.Error()),
				)
			}

			continue
		}

		result = append(result, models.RankedArticle{
			Article:    *article,
			DistanceKm: geo.DistanceKm(lat, lon, article.Latitude, article.Longitude),
		})
		seen = append(seen, id)
	}

	return result, seen
}

// fallbackFill дозаполняет выдачу fallback-ранжированием кандидатов
// в пределах радиуса, исключая уже занятые трендами идентификаторы.
// Отказ хранилища логируется и даёт пустое дозаполнение.
func (s *Service) fallbackFill(ctx context.Context, lat, lon, radiusKm float64, need int32, exclude []uuid.UUID) []models.RankedArticle {
	const op = "service.trending.fallbackFill"

	lg := log.From(ctx)

	candidates, err := s.storage.ArticlesWithinRadius(ctx, lat, lon, radiusKm, s.cfg.Fallback.CandidateLimit)
	if err != nil {
		lg.Error("fallback_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil
	}

	ranked := scoring.RankFallback(candidates, lat, lon, radiusKm, time.Now().UTC())

	result := make([]models.RankedArticle, 0, need)
	for _, r := range ranked {
		if int32(len(result)) >= need {
			break
		}
		if containsID(exclude, r.ID) {
			continue
		}
		result = append(result, r)
	}

	return result
}
