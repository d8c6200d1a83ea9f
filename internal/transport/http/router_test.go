package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-trending/internal/config"
	"github.com/pribylovaa/go-news-trending/internal/models"
	"github.com/pribylovaa/go-news-trending/internal/service"
	"github.com/pribylovaa/go-news-trending/internal/storage"
	"github.com/pribylovaa/go-news-trending/internal/transport/http/handlers"
	"github.com/pribylovaa/go-news-trending/mocks"
	"github.com/stretchr/testify/require"
)

// Сквозные тесты HTTP-слоя: роутер + хендлеры + маппинг ошибок,
// сервисный слой собран на мок-зависимостях.

type routerMocks struct {
	storage   *mocks.MockStorage
	trends    *mocks.MockStore
	analyzer  *mocks.MockAnalyzer
	publisher *mocks.MockEventPublisher
}

func newRouterForTest(t *testing.T, ctrl *gomock.Controller, eventsPerMinute int) (http.Handler, routerMocks) {
	t.Helper()

	m := routerMocks{
		storage:   mocks.NewMockStorage(ctrl),
		trends:    mocks.NewMockStore(ctrl),
		analyzer:  mocks.NewMockAnalyzer(ctrl),
		publisher: mocks.NewMockEventPublisher(ctrl),
	}

	cfg := config.Config{
		Trending: config.TrendingConfig{Backend: "memory", TTL: 300 * time.Second, Precision: 5},
		Fallback: config.FallbackConfig{DefaultRadiusKm: 100, MinRadiusKm: 1, MaxRadiusKm: 100, CandidateLimit: 256},
		Limits:   config.LimitsConfig{Default: 5, Max: 50},
	}

	svc := service.New(m.storage, m.trends, m.analyzer, m.publisher, cfg)

	limiter := handlers.NewEventLimiter(eventsPerMinute)
	t.Cleanup(limiter.Close)

	return NewRouter(svc, Options{EventLimiter: limiter}), m
}

func testArticle(lat, lon float64) models.Article {
	return models.Article{
		ID:          uuid.New(),
		Title:       "t",
		URL:         "https://example.org/" + uuid.NewString(),
		PublishedAt: time.Now().UTC().Add(-time.Hour),
		Latitude:    lat,
		Longitude:   lon,
	}
}

// TestTrending_OK — happy-path трендовой выдачи.
func TestTrending_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newRouterForTest(t, ctrl, 0)

	a := testArticle(55.75, 37.61)
	m.trends.EXPECT().
		TopK(gomock.Any(), gomock.Any(), 1).
		Return([]uuid.UUID{a.ID}, nil)
	m.storage.EXPECT().
		ArticleByID(gomock.Any(), a.ID).
		Return(&a, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trending?lat=55.75&lon=37.61&limit=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Articles []struct {
			ID string `json:"id"`
		} `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Articles, 1)
	require.Equal(t, a.ID.String(), resp.Articles[0].ID)
}

// TestTrending_ExplicitZeroLimit — явный limit=0 не подменяется дефолтом.
func TestTrending_ExplicitZeroLimit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newRouterForTest(t, ctrl, 0)

	for _, target := range []string{
		"/api/v1/trending?lat=19.07&lon=72.87&limit=0",
		"/api/v1/trending?lat=19.07&lon=72.87&limit=-3",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

// TestTrending_AbsentLimit_Default — без параметра limit выдача собирается
// с лимитом по умолчанию.
func TestTrending_AbsentLimit_Default(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newRouterForTest(t, ctrl, 0)

	m.trends.EXPECT().
		TopK(gomock.Any(), gomock.Any(), 5).
		Return(nil, nil)
	m.storage.EXPECT().
		ArticlesWithinRadius(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trending?lat=55.75&lon=37.61", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

// TestTrending_MissingCoordinates — lat/lon обязательны.
func TestTrending_MissingCoordinates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newRouterForTest(t, ctrl, 0)

	for _, target := range []string{
		"/api/v1/trending",
		"/api/v1/trending?lat=55.75",
		"/api/v1/trending?lon=37.61",
		"/api/v1/trending?lat=abc&lon=37.61",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

// TestTrending_OutOfRangeCoordinates — координаты вне диапазона -> 400.
func TestTrending_OutOfRangeCoordinates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newRouterForTest(t, ctrl, 0)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trending?lat=91&lon=0", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestPostEvent_Accepted — валидное событие отвечает 202.
func TestPostEvent_Accepted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newRouterForTest(t, ctrl, 0)

	articleID := uuid.New()
	m.storage.EXPECT().
		ExistsByID(gomock.Any(), articleID).
		Return(true, nil)
	m.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got models.InteractionEvent) error {
			require.Equal(t, articleID, got.ArticleID)
			require.Equal(t, models.EventShare, got.Type)
			return nil
		})

	body, _ := json.Marshal(map[string]any{
		"article_id": articleID.String(),
		"event_type": "SHARE",
		"latitude":   55.75,
		"longitude":  37.61,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader(body)))
	require.Equal(t, http.StatusAccepted, rec.Code)
}

// TestPostEvent_UnknownField — неизвестное поле в теле -> 400.
func TestPostEvent_UnknownField(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newRouterForTest(t, ctrl, 0)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events",
		bytes.NewReader([]byte(`{"article_id":"x","bogus":1}`))))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestPostEvent_UnknownArticle — событие по чужому идентификатору -> 400.
func TestPostEvent_UnknownArticle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newRouterForTest(t, ctrl, 0)

	m.storage.EXPECT().
		ExistsByID(gomock.Any(), gomock.Any()).
		Return(false, nil)

	body, _ := json.Marshal(map[string]any{
		"article_id": uuid.NewString(),
		"event_type": "VIEW",
		"latitude":   55.75,
		"longitude":  37.61,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestPostEvent_RateLimited — превышение лимита на article_id -> 429.
func TestPostEvent_RateLimited(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newRouterForTest(t, ctrl, 1)

	articleID := uuid.New()
	m.storage.EXPECT().
		ExistsByID(gomock.Any(), articleID).
		Return(true, nil)
	m.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Return(nil)

	body, _ := json.Marshal(map[string]any{
		"article_id": articleID.String(),
		"event_type": "CLICK",
		"latitude":   55.75,
		"longitude":  37.61,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader(body)))
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader(body)))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

// TestIngestArticles_Created — валидная партия сохраняется, ответ 201.
func TestIngestArticles_Created(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newRouterForTest(t, ctrl, 0)

	m.storage.EXPECT().
		SaveArticles(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, items []models.Article) error {
			require.Len(t, items, 1)
			require.Equal(t, "https://example.org/1", items[0].URL)
			return nil
		})

	body, _ := json.Marshal(map[string]any{
		"articles": []map[string]any{{
			"title":        "t",
			"url":          "https://example.org/1",
			"published_at": time.Now().UTC().Format(time.RFC3339),
			"latitude":     55.75,
			"longitude":    37.61,
		}},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/news", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
}

// TestIngestArticles_EmptyBatch — пустая партия -> 400.
func TestIngestArticles_EmptyBatch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newRouterForTest(t, ctrl, 0)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/news",
		bytes.NewReader([]byte(`{"articles":[]}`))))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestGetArticleByID_NotFound — отсутствующая статья -> 404.
func TestGetArticleByID_NotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newRouterForTest(t, ctrl, 0)

	m.storage.EXPECT().
		ArticleByID(gomock.Any(), gomock.Any()).
		Return(nil, storage.ErrNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/news/"+uuid.NewString(), nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

// TestQueryNews_RequiresQ — пустой q -> 400.
func TestQueryNews_RequiresQ(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newRouterForTest(t, ctrl, 0)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/news/query", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestRequestID_Propagated — X-Request-Id попадает в ответ.
func TestRequestID_Propagated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newRouterForTest(t, ctrl, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/news/query", nil)
	req.Header.Set("X-Request-Id", "rid-42")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, "rid-42", rec.Header().Get("X-Request-Id"))
}
