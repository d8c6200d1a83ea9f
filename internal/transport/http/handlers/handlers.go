// handlers — REST-хендлеры trending-сервиса.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pribylovaa/go-news-trending/internal/models"
	"github.com/pribylovaa/go-news-trending/internal/service"
)

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	svc     *service.Service
	limiter *EventLimiter
}

// New создаёт Handlers. limiter == nil отключает лимитирование событий.
func New(svc *service.Service, limiter *EventLimiter) *Handlers {
	return &Handlers{
		svc:     svc,
		limiter: limiter,
	}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidArgument — локальная ошибка парсинга -> 400.
func errInvalidArgument() error {
	return fmt.Errorf("bad request: %w", service.ErrInvalidArgument)
}

// articleView — DTO статьи в ответах API.
type articleView struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	URL            string    `json:"url"`
	SourceName     string    `json:"source_name,omitempty"`
	Categories     []string  `json:"categories,omitempty"`
	PublishedAt    time.Time `json:"published_at"`
	RelevanceScore float64   `json:"relevance_score"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	DistanceKm     float64   `json:"distance_km,omitempty"`
	Summary        string    `json:"summary,omitempty"`
}

// articlesResponse — корневой объект списочных ответов.
type articlesResponse struct {
	Articles []articleView `json:"articles"`
}

func viewFromRanked(items []models.RankedArticle) articlesResponse {
	out := make([]articleView, 0, len(items))
	for _, it := range items {
		v := viewFromArticle(it.Article)
		v.DistanceKm = it.DistanceKm
		v.Summary = it.Summary
		out = append(out, v)
	}
	return articlesResponse{Articles: out}
}

func viewFromArticle(a models.Article) articleView {
	return articleView{
		ID:             a.ID.String(),
		Title:          a.Title,
		Description:    a.Description,
		URL:            a.URL,
		SourceName:     a.SourceName,
		Categories:     a.Categories,
		PublishedAt:    a.PublishedAt,
		RelevanceScore: a.RelevanceScore,
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
	}
}
