package app

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go/v3"

	"github.com/aipengineer/quackmetadata/internal/cache"
	"github.com/aipengineer/quackmetadata/internal/config"
	"github.com/aipengineer/quackmetadata/internal/llm"
	"github.com/aipengineer/quackmetadata/internal/logger"
	"github.com/aipengineer/quackmetadata/internal/queue"
	"github.com/aipengineer/quackmetadata/internal/store"
)

// Deps bundles common runtime dependencies for services.
type Deps struct {
	Config config.Config
	Log    *slog.Logger
	Store  store.Store
	Queue  queue.Queue
	Cache  cache.Cache
	LLM    llm.Client
}

// Build loads env, config, and shared components for the service binaries.
func Build() (Deps, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	st, err := buildStore(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	q, err := buildQueue(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}
	c, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	llmClient, err := NewLLM(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	return Deps{
		Config: cfg,
		Log:    log,
		Store:  st,
		Queue:  q,
		Cache:  c,
		LLM:    llmClient,
	}, nil
}

func buildStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	switch cfg.StoreProvider {
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required when STORE_PROVIDER=postgres")
		}
		db, err := store.NewPostgres(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres store")
		return db, nil
	default:
		return nil, fmt.Errorf("invalid STORE_PROVIDER: %s (valid option: postgres)", cfg.StoreProvider)
	}
}

func buildQueue(cfg config.Config, log *slog.Logger) (queue.Queue, error) {
	switch cfg.QueueProvider {
	case "nats":
		if cfg.QueueURL == "" {
			return nil, fmt.Errorf("QUEUE_URL is required when QUEUE_PROVIDER=nats")
		}
		nc, err := nats.Connect(cfg.QueueURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("using NATS queue")
		return queue.NewNATS(log, nc), nil
	default:
		return nil, fmt.Errorf("invalid QUEUE_PROVIDER: %s (valid option: nats)", cfg.QueueProvider)
	}
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when CACHE_PROVIDER=redis")
		}
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("using Redis extraction cache")
		return c, nil
	case "none", "":
		return cache.NewNoopCache(), nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: redis, none)", cfg.CacheProvider)
	}
}

// NewLLM builds the configured LLM client. Exported because the CLI wires
// its own minimal dependency set without the service stack.
func NewLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		client, err := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.LLMModel))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI LLM client", "model", cfg.LLMModel)
		return client, nil
	case "stub":
		log.Warn("using stub LLM client; extraction results will be simulated")
		return llm.StubClient{}, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: openai, stub)", cfg.LLMProvider)
	}
}
