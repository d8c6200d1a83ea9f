// http собирает REST-роутер trending-сервиса.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-news-trending/internal/service"
	"github.com/pribylovaa/go-news-trending/internal/transport/http/handlers"
	"github.com/pribylovaa/go-news-trending/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// EventLimiter — лимит событий на один article_id; nil выключает.
	// Жизненным циклом лимитера владеет вызывающий (Close на остановке).
	EventLimiter *handlers.EventLimiter
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc, opts.EventLimiter)

	root.Route("/api/v1", func(r chi.Router) {
		registerRoutes(r, h)
	})

	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// trending
	r.Get("/trending", h.Trending)

	// events
	r.Post("/events", h.PostEvent)

	// news
	r.Post("/news", h.IngestArticles)
	r.Get("/news/query", h.QueryNews)
	r.Get("/news/{id}", h.GetArticleByID)
}
