package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"chunk-lab/internal/cache"
	"chunk-lab/internal/chunking"
	"chunk-lab/internal/config"
	"chunk-lab/internal/logger"
	"chunk-lab/internal/queue"
	"chunk-lab/internal/service"
)

// Deps bundles common runtime dependencies for the server and the worker.
type Deps struct {
	Config  config.Config
	Log     *slog.Logger
	Service *service.Service
	Cache   cache.Cache
	// Queue is nil when QUEUE_PROVIDER=none.
	Queue queue.Queue
}

// CacheTTL returns the configured cache TTL.
func (d Deps) CacheTTL() time.Duration {
	return time.Duration(d.Config.CacheTTL) * time.Second
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Deps{}, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	engine, err := chunking.NewDefaultRegistry()
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize chunking engine: %w", err)
	}
	c, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	q, err := buildQueue(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}

	deps := Deps{
		Config: cfg,
		Log:    log,
		Cache:  c,
		Queue:  q,
	}
	deps.Service = service.New(engine, c, log, service.Options{
		MaxWords: cfg.MaxWords,
		CacheTTL: deps.CacheTTL(),
	})
	return deps, nil
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "", "none":
		log.Info("caching disabled")
		return cache.NewNoOpCache(), nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when CACHE_PROVIDER=redis")
		}
		rc, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn("redis unavailable, falling back to no-op cache", "err", err, "addr", cfg.RedisAddr)
			return cache.NewNoOpCache(), nil
		}
		log.Info("using Redis cache", "addr", cfg.RedisAddr)
		return rc, nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: none, redis)", cfg.CacheProvider)
	}
}

func buildQueue(cfg config.Config, log *slog.Logger) (queue.Queue, error) {
	switch cfg.QueueProvider {
	case "", "none":
		log.Info("job queue disabled")
		return nil, nil
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
		return nil, fmt.Errorf("invalid QUEUE_PROVIDER: %s (valid options: none, nats)", cfg.QueueProvider)
	}
}
