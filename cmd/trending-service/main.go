package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-news-trending/internal/analysis"
	"github.com/pribylovaa/go-news-trending/internal/config"
	"github.com/pribylovaa/go-news-trending/internal/events"
	"github.com/pribylovaa/go-news-trending/internal/service"
	"github.com/pribylovaa/go-news-trending/internal/storage/postgres"
	"github.com/pribylovaa/go-news-trending/internal/trending"
	trhttp "github.com/pribylovaa/go-news-trending/internal/transport/http"
	"github.com/pribylovaa/go-news-trending/internal/transport/http/handlers"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting trending-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	store, err := postgres.New(dbCtx, cfg.DB.URL)
	dbCancel()
	if err != nil {
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer store.Close()
	log.Info("postgres_connected")

	trends, err := newTrendingStore(cfg)
	if err != nil {
		log.Error("trending_store_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := trends.Close(); cerr != nil {
			log.Warn("trending_store_close_failed", slog.String("err", cerr.Error()))
		}
	}()
	log.Info("trending_store_initialized", slog.String("backend", cfg.Trending.Backend))

	nc, err := nats.Connect(cfg.Events.URL,
		nats.Name("trending-service"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		log.Error("nats_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer nc.Close()
	log.Info("nats_connected")

	publisher, err := events.NewPublisher(nc, cfg.Events.Stream, cfg.Events.Subject)
	if err != nil {
		log.Error("publisher_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	aggregator, err := events.NewAggregator(nc, trends, events.AggregatorConfig{
		Subject:   cfg.Events.Subject,
		Durable:   cfg.Events.Durable,
		Queue:     cfg.Events.Queue,
		Workers:   cfg.Events.Workers,
		Precision: cfg.Trending.Precision,
		AckWait:   cfg.Events.AckWait,
	})
	if err != nil {
		log.Error("aggregator_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	aggDoneCh := make(chan struct{})
	var aggErr error
	go func() {
		aggErr = aggregator.Run(rootCtx)
		close(aggDoneCh)
	}()
	log.Info("aggregator_started", slog.Int("workers", cfg.Events.Workers))

	analyzer := analysis.New(cfg.Analyzer.URL, &http.Client{Timeout: cfg.Timeouts.Service})

	svc := service.New(store, trends, analyzer, publisher, *cfg)
	log.Info("service_initialized")

	eventLimiter := handlers.NewEventLimiter(cfg.RateLimit.EventsPerMinute)
	defer eventLimiter.Close()

	apiHandler := trhttp.NewRouter(svc, trhttp.Options{
		Logger:       log,
		Timeout:      cfg.Timeouts.Service,
		EventLimiter: eventLimiter,
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("trending_service_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	case <-aggDoneCh:
		if aggErr != nil {
			log.Error("aggregator_failed", slog.String("err", aggErr.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)
	rootCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	// Дожидаемся консьюмера: он дренирует подписки и закрывается по rootCtx.
	select {
	case <-aggDoneCh:
		log.Info("aggregator_stopped")
	case <-shutdownCtx.Done():
		log.Warn("aggregator_stop_timeout")
	}

	log.Info("service_stopped")
}

// newTrendingStore собирает хранилище трендов по конфигу.
func newTrendingStore(cfg *config.Config) (trending.Store, error) {
	if cfg.Trending.Backend == "redis" {
		return trending.NewRedisStore(cfg.Trending.RedisURL, cfg.Trending.RedisPrefix, cfg.Trending.TTL)
	}
	return trending.NewMemoryStore(cfg.Trending.TTL), nil
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
