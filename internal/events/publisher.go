package events

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/pribylovaa/go-news-trending/internal/models"
)

// Publisher публикует события взаимодействий в JetStream.
// Ключ сообщения — идентификатор статьи (суффикс сабжекта), поэтому события
// одной статьи попадают в один сабжект и читаются по порядку.
type Publisher struct {
	js      nats.JetStreamContext
	subject string
}

// NewPublisher создаёт публикатор и при необходимости заводит стрим.
func NewPublisher(nc *nats.Conn, stream, subject string) (*Publisher, error) {
	const op = "events.NewPublisher"

	js, err := nc.JetStream()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := ensureStream(js, stream, subject); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Publisher{js: js, subject: subject}, nil
}

// Publish отправляет событие с подтверждением от стрима.
func (p *Publisher) Publish(ctx context.Context, e models.InteractionEvent) error {
	const op = "events.Publish"

	data, err := encodeEvent(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	subject := p.subject + "." + e.ArticleID.String()
	if _, err := p.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ensureStream заводит стрим, если его ещё нет.
func ensureStream(js nats.JetStreamContext, stream, subject string) error {
	_, err := js.StreamInfo(stream)
	if err == nil {
		return nil
	}
	if err != nats.ErrStreamNotFound {
		return err
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      stream,
		Subjects:  []string{subject + ".>"},
		Retention: nats.LimitsPolicy,
	})

	return err
}
