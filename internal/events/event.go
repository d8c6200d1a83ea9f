// events — поток пользовательских взаимодействий поверх NATS JetStream:
// публикация с ключом по статье и durable-консьюмер агрегации трендов.
//
// Семантика доставки — at-least-once: событие, которое не удалось свернуть
// в кэш, не подтверждается и приходит повторно. Дедупликации нет — повторная
// доставка добавляет вес ещё раз.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-news-trending/internal/models"
)

// wireEvent — JSON-представление события в шине.
// Timestamp — RFC3339; EventType — строка, разбираемая в закрытое множество
// на границе декодера.
type wireEvent struct {
	ArticleID string    `json:"article_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

// encodeEvent сериализует событие для публикации.
func encodeEvent(e models.InteractionEvent) ([]byte, error) {
	return json.Marshal(wireEvent{
		ArticleID: e.ArticleID.String(),
		EventType: string(e.Type),
		Timestamp: e.Timestamp.UTC(),
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
	})
}

// decodeEvent разбирает сообщение шины в доменное событие.
// Любая ошибка здесь — перманентная: событие битое и повторять его бессмысленно.
func decodeEvent(data []byte) (models.InteractionEvent, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return models.InteractionEvent{}, fmt.Errorf("unmarshal: %w", err)
	}

	id, err := uuid.Parse(w.ArticleID)
	if err != nil {
		return models.InteractionEvent{}, fmt.Errorf("article_id: %w", err)
	}

	t, err := models.ParseEventType(w.EventType)
	if err != nil {
		return models.InteractionEvent{}, err
	}

	if w.Timestamp.IsZero() {
		return models.InteractionEvent{}, fmt.Errorf("zero timestamp")
	}

	return models.InteractionEvent{
		ArticleID: id,
		Type:      t,
		Timestamp: w.Timestamp.UTC(),
		Latitude:  w.Latitude,
		Longitude: w.Longitude,
	}, nil
}
