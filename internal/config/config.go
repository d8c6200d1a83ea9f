// config предоставляет структуру конфигурации trending-сервиса
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env       string          `yaml:"env"      env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	DB        DBConfig        `yaml:"db"`
	Trending  TrendingConfig  `yaml:"trending"`
	Events    EventsConfig    `yaml:"events"`
	Fallback  FallbackConfig  `yaml:"fallback"`
	Limits    LimitsConfig    `yaml:"limits"`
	Analyzer  AnalyzerConfig  `yaml:"analyzer"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// TrendingConfig — параметры кэша трендов.
type TrendingConfig struct {
	// Backend — реализация хранилища: memory или redis.
	Backend string `yaml:"backend" env:"TRENDING_BACKEND" env-default:"memory"`
	// TTL — скользящее окно жизни бакета.
	TTL time.Duration `yaml:"ttl" env:"TRENDING_TTL" env-default:"300s"`
	// Precision — число символов geohash-ключа; одинаково для записи и чтения.
	Precision uint `yaml:"precision" env:"TRENDING_PRECISION" env-default:"5"`
	// RedisURL — обязателен при backend=redis.
	RedisURL string `yaml:"redis_url" env:"TRENDING_REDIS_URL"`
	// RedisPrefix — префикс ключей; пустой -> "trending:".
	RedisPrefix string `yaml:"redis_prefix" env:"TRENDING_REDIS_PREFIX"`
}

// EventsConfig — шина пользовательских событий (NATS JetStream).
type EventsConfig struct {
	URL     string        `yaml:"url"      env:"NATS_URL" env-default:"nats://127.0.0.1:4222"`
	Stream  string        `yaml:"stream"   env:"NATS_STREAM" env-default:"USER_EVENTS"`
	Subject string        `yaml:"subject"  env:"NATS_SUBJECT" env-default:"events.interaction"`
	Durable string        `yaml:"durable"  env:"NATS_DURABLE" env-default:"trending-worker"`
	Queue   string        `yaml:"queue"    env:"NATS_QUEUE" env-default:"trending-workers"`
	Workers int           `yaml:"workers"  env:"NATS_WORKERS" env-default:"4"`
	AckWait time.Duration `yaml:"ack_wait" env:"NATS_ACK_WAIT" env-default:"30s"`
}

// FallbackConfig — параметры fallback-ранжирования.
type FallbackConfig struct {
	// DefaultRadiusKm применяется при radius_km=0 в запросе.
	DefaultRadiusKm float64 `yaml:"default_radius_km" env:"FALLBACK_DEFAULT_RADIUS_KM" env-default:"100"`
	// MinRadiusKm/MaxRadiusKm — границы клампа радиуса.
	MinRadiusKm float64 `yaml:"min_radius_km" env:"FALLBACK_MIN_RADIUS_KM" env-default:"1"`
	MaxRadiusKm float64 `yaml:"max_radius_km" env:"FALLBACK_MAX_RADIUS_KM" env-default:"100"`
	// CandidateLimit — сколько кандидатов запрашивать у хранилища статей.
	CandidateLimit int32 `yaml:"candidate_limit" env:"FALLBACK_CANDIDATE_LIMIT" env-default:"256"`
}

// LimitsConfig — серверные лимиты на выдачу.
type LimitsConfig struct {
	// Применяется при запросе с limit=0.
	Default int32 `yaml:"default" env:"DEFAULT_LIMIT" env-default:"5"`
	// Верхняя граница для limit.
	Max int32 `yaml:"max" env:"MAX_LIMIT" env-default:"50"`
}

// AnalyzerConfig — внешний сервис анализа запросов/суммаризации.
type AnalyzerConfig struct {
	URL string `yaml:"url" env:"ANALYZER_URL" env-default:"http://127.0.0.1:8000"`
	// SummarizeResults — сколько статей выдачи обогащать аннотациями.
	SummarizeResults int `yaml:"summarize_results" env:"ANALYZER_SUMMARIZE_RESULTS" env-default:"5"`
}

// RateLimitConfig — лимит приёма событий.
type RateLimitConfig struct {
	// EventsPerMinute — на один article_id; 0 выключает лимит.
	EventsPerMinute int `yaml:"events_per_minute" env:"RATE_LIMIT_EVENTS_PER_MINUTE" env-default:"60"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}
	if c.Trending.Backend != "memory" && c.Trending.Backend != "redis" {
		return fmt.Errorf("trending.backend must be memory or redis")
	}
	if c.Trending.Backend == "redis" && c.Trending.RedisURL == "" {
		return fmt.Errorf("trending.redis_url is required for redis backend")
	}
	if c.Trending.TTL <= 0 {
		return fmt.Errorf("trending.ttl must be > 0")
	}
	if c.Trending.Precision == 0 || c.Trending.Precision > 12 {
		return fmt.Errorf("trending.precision must be in [1,12]")
	}
	if c.Fallback.MinRadiusKm <= 0 {
		return fmt.Errorf("fallback.min_radius_km must be > 0")
	}
	if c.Fallback.MaxRadiusKm < c.Fallback.MinRadiusKm {
		return fmt.Errorf("fallback.max_radius_km must be >= fallback.min_radius_km")
	}
	if c.Fallback.CandidateLimit <= 0 {
		return fmt.Errorf("fallback.candidate_limit must be > 0")
	}
	if c.Limits.Default <= 0 {
		return fmt.Errorf("limits.default must be > 0")
	}
	if c.Limits.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}
	if c.Limits.Default > c.Limits.Max {
		return fmt.Errorf("limits.default must be <= limits.max")
	}
	if c.Events.Workers <= 0 {
		return fmt.Errorf("events.workers must be > 0")
	}
	return nil
}
