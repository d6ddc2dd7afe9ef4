package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for all binaries. Core packages never
// read it directly; values are passed in explicitly at construction time.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// Store
	StoreProvider string `env:"STORE_PROVIDER" envDefault:"postgres"` // "postgres" (production database)
	DBURL         string `env:"DB_URL"`

	// Queue
	QueueProvider string `env:"QUEUE_PROVIDER" envDefault:"nats"` // "nats" (required for inter-service communication)
	QueueURL      string `env:"QUEUE_URL"`

	// Cache
	CacheProvider string        `env:"CACHE_PROVIDER" envDefault:"none"` // "redis" or "none"
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"24h"`

	// LLM
	LLMProvider string        `env:"LLM_PROVIDER" envDefault:"openai"` // "openai" (uses OpenAI API) or "stub" (simulated answers)
	OpenAIKey   string        `env:"OPENAI_API_KEY"`
	LLMModel    string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMTimeout  time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`

	// Extraction
	MaxRetries     int           `env:"MAX_RETRIES" envDefault:"3"`
	RetryBackoff   time.Duration `env:"RETRY_BACKOFF" envDefault:"1s"`
	MaxPromptWords int           `env:"MAX_PROMPT_WORDS" envDefault:"6000"`
	OutputDir      string        `env:"OUTPUT_DIR" envDefault:"./output"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
