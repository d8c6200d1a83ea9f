package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-trending/internal/analysis"
	"github.com/pribylovaa/go-news-trending/internal/geo"
	"github.com/pribylovaa/go-news-trending/internal/models"
	"github.com/pribylovaa/go-news-trending/internal/pkg/log"
	"github.com/pribylovaa/go-news-trending/internal/storage"
)

// SearchByQuery разбирает запрос на естественном языке через анализатор
// и диспетчеризует по первому известному интенту:
//   - source   -> статьи издания (entities.source_name);
//   - category -> статьи категории (entities.category);
//   - nearby   -> ближайшие статьи к точке (entities.lat/lon);
//   - trending -> трендовая выдача точки (entities.lat/lon);
//   - score    -> статьи с релевантностью выше порога (entities.score);
//   - search и всё неизвестное -> подстрочный поиск.
//
// Недоступность анализатора не фатальна: запрос уходит в подстрочный поиск.
// Суммаризация выдачи — best-effort: её отказ не портит ответ.
func (s *Service) SearchByQuery(ctx context.Context, query string, limit int32) ([]models.RankedArticle, error) {
	const op = "service.queries.SearchByQuery"

	lg := log.From(ctx)
	lg.Info("search_by_query_request",
		slog.String("op", op),
		slog.Int("limit", int(limit)),
	)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%s: empty query: %w", op, ErrInvalidArgument)
	}

	lim, err := s.normalizeLimit(limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.analyzer.ProcessQuery(ctx, query)
	if err != nil {
		lg.Warn("search_analyzer_unavailable",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		res = &analysis.Result{Intents: []string{analysis.IntentSearch}}
	}

	articles, err := s.dispatchIntent(ctx, query, lim, res)
	if err != nil {
		lg.Error("search_dispatch_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.summarize(ctx, articles)

	lg.Info("search_by_query_ok",
		slog.String("op", op),
		slog.Int("items", len(articles)),
	)

	return articles, nil
}

// dispatchIntent выбирает поисковый сценарий по первому известному интенту.
func (s *Service) dispatchIntent(ctx context.Context, query string, limit int32, res *analysis.Result) ([]models.RankedArticle, error) {
	for _, intent := range res.Intents {
		switch intent {
		case analysis.IntentSource:
			source, ok := entString(res.Entities, "source_name")
			if !ok {
				continue
			}
			items, err := s.storage.ArticlesBySource(ctx, source, limit)
			return plain(items), err

		case analysis.IntentCategory:
			category, ok := entString(res.Entities, "category")
			if !ok {
				continue
			}
			items, err := s.storage.ArticlesByCategory(ctx, category, limit)
			return plain(items), err

		case analysis.IntentNearby:
			lat, okLat := entFloat(res.Entities, "lat")
			lon, okLon := entFloat(res.Entities, "lon")
			if !okLat || !okLon || geo.ValidateCoordinates(lat, lon) != nil {
				continue
			}
			items, err := s.storage.NearbyArticles(ctx, lat, lon, limit)
			if err != nil {
				return nil, err
			}
			ranked := make([]models.RankedArticle, 0, len(items))
			for _, a := range items {
				ranked = append(ranked, models.RankedArticle{
					Article:    a,
					DistanceKm: geo.DistanceKm(lat, lon, a.Latitude, a.Longitude),
				})
			}
			return ranked, nil

		case analysis.IntentTrending:
			lat, okLat := entFloat(res.Entities, "lat")
			lon, okLon := entFloat(res.Entities, "lon")
			if !okLat || !okLon {
				continue
			}
			return s.RetrieveTrending(ctx, TrendingQuery{
				Latitude:  lat,
				Longitude: lon,
				Limit:     limit,
			})

		case analysis.IntentScore:
			minScore, ok := entFloat(res.Entities, "score")
			if !ok {
				continue
			}
			items, err := s.storage.ArticlesByMinScore(ctx, minScore, limit)
			return plain(items), err
		}
	}

	// search и всё нераспознанное.
	needle := query
	if q, ok := entString(res.Entities, "search_query"); ok {
		needle = q
	}
	items, err := s.storage.SearchArticles(ctx, needle, limit)
	return plain(items), err
}

// summarize обогащает первые cfg.Analyzer.SummarizeResults статей выдачи
// аннотациями. Любая ошибка анализатора молча пропускает статью.
func (s *Service) summarize(ctx context.Context, articles []models.RankedArticle) {
	n := s.cfg.Analyzer.SummarizeResults
	if n <= 0 {
		return
	}

	for i := range articles {
		if i >= n {
			break
		}
		text := articles[i].Description
		if text == "" {
			text = articles[i].Title
		}
		summary, err := s.analyzer.Summarize(ctx, text)
		if err != nil {
			continue
		}
		articles[i].Summary = summary
	}
}

// ArticleByID возвращает статью по идентификатору.
//
// Ошибки:
// - ErrInvalidArgument — не-UUID идентификатор;
// - ErrNotFound — запись отсутствует (маппинг storage.ErrNotFound).
func (s *Service) ArticleByID(ctx context.Context, id string) (*models.Article, error) {
	const op = "service.queries.ArticleByID"

	lg := log.From(ctx)

	uid, err := uuid.Parse(id)
	if err != nil {
		lg.Warn("article_by_id_bad_id",
			slog.String("op", op),
			slog.String("id", id),
		)

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	article, err := s.storage.ArticleByID(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("article_by_id_storage_error",
			slog.String("op", op),
			slog.String("id", id),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return article, nil
}

// plain оборачивает статьи в RankedArticle без дистанции.
func plain(items []models.Article) []models.RankedArticle {
	out := make([]models.RankedArticle, 0, len(items))
	for _, a := range items {
		out = append(out, models.RankedArticle{Article: a})
	}
	return out
}

// entString достаёт строковую сущность анализатора.
func entString(entities map[string]any, key string) (string, bool) {
	v, ok := entities[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// entFloat достаёт числовую сущность анализатора.
// JSON-числа приходят как float64, но анализатор может вернуть строку.
func entFloat(entities map[string]any, key string) (float64, bool) {
	v, ok := entities[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
