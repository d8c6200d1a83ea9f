package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType — закрытое множество типов пользовательских взаимодействий.
// Разбор строкового представления выполняется один раз на границе (декодер),
// дальше по коду ходит только тег.
type EventType string

const (
	EventView  EventType = "VIEW"
	EventClick EventType = "CLICK"
	EventShare EventType = "SHARE"
)

// ParseEventType разбирает строковое представление типа события.
// Регистр не учитывается. Неизвестный тип — ошибка (событие считается битым).
func ParseEventType(s string) (EventType, error) {
	switch EventType(strings.ToUpper(strings.TrimSpace(s))) {
	case EventView:
		return EventView, nil
	case EventClick:
		return EventClick, nil
	case EventShare:
		return EventShare, nil
	default:
		return "", fmt.Errorf("unknown event type: %q", s)
	}
}

// InteractionEvent — одно пользовательское действие над статьёй.
//
// Особенности:
//   - неизменяемо после эмиссии;
//   - Timestamp — время генерации события на клиенте, не время приёма;
//   - доставка из шины — at-least-once, повтор даёт дополнительный вес
//     (дедупликации нет).
type InteractionEvent struct {
	// ArticleID — идентификатор статьи, к которой относится действие.
	ArticleID uuid.UUID
	// Type — тип взаимодействия (VIEW/CLICK/SHARE).
	Type EventType
	// Timestamp — время генерации события (UTC).
	Timestamp time.Time
	// Latitude — широта места действия.
	Latitude float64
	// Longitude — долгота места действия.
	Longitude float64
}
