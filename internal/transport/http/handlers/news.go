package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-trending/internal/models"
	apierrors "github.com/pribylovaa/go-news-trending/internal/transport/http/errors"
)

// QueryNews — GET /api/v1/news/query?q=..&limit=..
//
// Запрос на естественном языке уходит в анализатор, выдача зависит
// от распознанного интента.
func (h *Handlers) QueryNews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	limit := h.svc.DefaultLimit()
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			apierrors.WriteError(w, r, errInvalidArgument())
			return
		}
		limit = int32(n)
	}

	items, err := h.svc.SearchByQuery(r.Context(), q, limit)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, viewFromRanked(items))
}

// ingestRequest — тело POST /api/v1/news.
type ingestRequest struct {
	Articles []ingestArticle `json:"articles"`
}

// ingestArticle — DTO статьи от пайплайна-поставщика. ID опционален:
// пустой заменяется сгенерированным на стороне хранилища.
type ingestArticle struct {
	ID             string    `json:"id,omitempty"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	URL            string    `json:"url"`
	SourceName     string    `json:"source_name,omitempty"`
	Categories     []string  `json:"categories,omitempty"`
	PublishedAt    time.Time `json:"published_at"`
	RelevanceScore float64   `json:"relevance_score"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
}

// IngestArticles — POST /api/v1/news: upsert пачки статей по url.
func (h *Handlers) IngestArticles(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	items := make([]models.Article, 0, len(req.Articles))
	for _, in := range req.Articles {
		var id uuid.UUID
		if in.ID != "" {
			parsed, err := uuid.Parse(in.ID)
			if err != nil {
				apierrors.WriteError(w, r, errInvalidArgument())
				return
			}
			id = parsed
		}

		items = append(items, models.Article{
			ID:             id,
			Title:          in.Title,
			Description:    in.Description,
			URL:            in.URL,
			SourceName:     in.SourceName,
			Categories:     in.Categories,
			PublishedAt:    in.PublishedAt,
			RelevanceScore: in.RelevanceScore,
			Latitude:       in.Latitude,
			Longitude:      in.Longitude,
		})
	}

	if err := h.svc.IngestArticles(r.Context(), items); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"saved": len(items)})
}

// GetArticleByID — GET /api/v1/news/{id}.
func (h *Handlers) GetArticleByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	article, err := h.svc.ArticleByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, viewFromArticle(*article))
}
