package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-trending/internal/models"
	apierrors "github.com/pribylovaa/go-news-trending/internal/transport/http/errors"
)

// eventRequest — тело POST /api/v1/events.
type eventRequest struct {
	ArticleID string     `json:"article_id"`
	EventType string     `json:"event_type"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
}

// PostEvent — POST /api/v1/events.
//
// Принимает пользовательское событие и публикует его в шину;
// агрегация счёта асинхронна, поэтому отвечаем 202 Accepted.
// На один article_id действует лимит событий в минуту.
func (h *Handlers) PostEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	articleID, err := uuid.Parse(req.ArticleID)
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	if h.limiter != nil && !h.limiter.Allow(articleID.String()) {
		apierrors.WriteError(w, r, apierrors.ErrRateLimited)
		return
	}

	event := models.InteractionEvent{
		ArticleID: articleID,
		Type:      models.EventType(req.EventType),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if req.Timestamp != nil {
		event.Timestamp = *req.Timestamp
	}

	if err := h.svc.RecordEvent(r.Context(), event); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
