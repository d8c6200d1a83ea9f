package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/pribylovaa/go-news-trending/internal/geo"
	"github.com/pribylovaa/go-news-trending/internal/models"
	logctx "github.com/pribylovaa/go-news-trending/internal/pkg/log"
	"github.com/pribylovaa/go-news-trending/internal/scoring"
	"github.com/pribylovaa/go-news-trending/internal/trending"
)

// AggregatorConfig — параметры консьюмера агрегации.
type AggregatorConfig struct {
	// Subject — базовый сабжект событий (подписка на Subject.>).
	Subject string
	// Durable — имя durable-консьюмера.
	Durable string
	// Queue — очередь для балансировки между экземплярами.
	Queue string
	// Workers — число параллельных подписок в очереди.
	Workers int
	// Precision — точность geohash-бакета; обязана совпадать с читающей стороной.
	Precision uint
	// AckWait — окно подтверждения до повторной доставки.
	AckWait time.Duration
}

// Aggregator — консьюмер потока взаимодействий: событие → вес → бакет →
// инкремент в кэше трендов.
//
// Политика ошибок:
//   - битое событие (неизвестный тип, координаты вне диапазона, кривой JSON) —
//     перманентный отказ: Term + лог, без повторов;
//   - отказ кэша — транзиентный: Nak, повтор решает шина;
//   - успех — Ack.
type Aggregator struct {
	js    nats.JetStreamContext
	store trending.Store
	cfg   AggregatorConfig

	subs []*nats.Subscription

	// now подменяется в тестах.
	now func() time.Time
}

// NewAggregator создаёт консьюмер. Стрим должен существовать
// (его заводит Publisher либо оператор).
func NewAggregator(nc *nats.Conn, store trending.Store, cfg AggregatorConfig) (*Aggregator, error) {
	const op = "events.NewAggregator"

	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Precision == 0 {
		cfg.Precision = geo.DefaultPrecision
	}
	if cfg.AckWait <= 0 {
		cfg.AckWait = 30 * time.Second
	}

	js, err := nc.JetStream()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Aggregator{
		js:    js,
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}, nil
}

// Run поднимает подписки и блокируется до отмены контекста.
// Остановка кооперативная: подписки дренируются, события в обработке
// досчитываются — инкремент не обрывается посередине.
func (a *Aggregator) Run(ctx context.Context) error {
	const op = "events.aggregator.Run"

	lg := logctx.From(ctx)

	for i := 0; i < a.cfg.Workers; i++ {
		sub, err := a.js.QueueSubscribe(
			a.cfg.Subject+".>",
			a.cfg.Queue,
			func(msg *nats.Msg) { a.handle(ctx, msg) },
			nats.Durable(a.cfg.Durable),
			nats.ManualAck(),
			nats.AckExplicit(),
			nats.AckWait(a.cfg.AckWait),
			nats.DeliverAll(),
		)
		if err != nil {
			a.drain()
			return fmt.Errorf("%s: subscribe: %w", op, err)
		}

		a.subs = append(a.subs, sub)
	}

	lg.Info("aggregator_started",
		slog.String("op", op),
		slog.String("subject", a.cfg.Subject+".>"),
		slog.Int("workers", a.cfg.Workers),
	)

	<-ctx.Done()

	a.drain()
	lg.Info("aggregator_stopped", slog.String("op", op))

	return nil
}

// handle — обработка одного сообщения.
func (a *Aggregator) handle(ctx context.Context, msg *nats.Msg) {
	const op = "events.aggregator.handle"

	lg := logctx.From(ctx)

	event, err := decodeEvent(msg.Data)
	if err != nil {
		eventsSkipped.Inc()
		lg.Warn("aggregator_event_malformed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		_ = msg.Term()
		return
	}

	delta, bucket, err := a.fold(event)
	if err != nil {
		if errors.Is(err, geo.ErrInvalidCoordinate) {
			// Перманентный отказ: координаты не станут валиднее при повторе.
			eventsSkipped.Inc()
			lg.Warn("aggregator_event_malformed",
				slog.String("op", op),
				slog.String("article_id", event.ArticleID.String()),
				slog.String("err", err.Error()),
			)
			_ = msg.Term()
			return
		}

		// Транзиентный отказ кэша: не подтверждаем, шина доставит повторно.
		eventsFailed.Inc()
		lg.Error("aggregator_increment_failed",
			slog.String("op", op),
			slog.String("article_id", event.ArticleID.String()),
			slog.String("err", err.Error()),
		)
		_ = msg.Nak()
		return
	}

	eventsProcessed.Inc()
	lg.Debug("aggregator_event_folded",
		slog.String("op", op),
		slog.String("bucket", bucket),
		slog.String("article_id", event.ArticleID.String()),
		slog.Float64("delta", delta),
	)
	_ = msg.Ack()
}

// fold сворачивает событие в кэш: бакет по координатам, вес по типу и
// возрасту, затем атомарный инкремент.
func (a *Aggregator) fold(event models.InteractionEvent) (float64, string, error) {
	now := a.now().UTC()

	bucket, err := geo.Bucket(event.Latitude, event.Longitude, a.cfg.Precision)
	if err != nil {
		return 0, "", err
	}

	delta := scoring.EventWeight(event.Type, event.Timestamp, now)

	if err := a.store.Increment(context.Background(), bucket, event.ArticleID, delta); err != nil {
		return 0, "", err
	}

	return delta, bucket, nil
}

// drain закрывает подписки, дожидаясь обработки уже полученных сообщений.
func (a *Aggregator) drain() {
	for _, sub := range a.subs {
		_ = sub.Drain()
	}
	a.subs = nil
}
