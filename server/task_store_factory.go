package server

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inference-gateway/adk/server/config"
)

// TaskStoreFactory builds a TaskStore for a single configuration provider.
type TaskStoreFactory interface {
	SupportedProvider() string
	ValidateConfig(cfg config.StorageConfig) error
	CreateStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (TaskStore, error)
}

// TaskStoreFactoryRegistry holds the set of known TaskStore providers,
// keyed by the StorageConfig.Provider value that selects them.
type TaskStoreFactoryRegistry struct {
	mu        sync.RWMutex
	factories map[string]TaskStoreFactory
}

var defaultTaskStoreRegistry = &TaskStoreFactoryRegistry{
	factories: make(map[string]TaskStoreFactory),
}

func init() {
	RegisterTaskStoreProvider(&inMemoryTaskStoreFactory{})
	RegisterTaskStoreProvider(&sqlTaskStoreFactory{})
	RegisterTaskStoreProvider(&redisTaskStoreFactory{})
}

// RegisterTaskStoreProvider adds a factory to the default registry.
func RegisterTaskStoreProvider(factory TaskStoreFactory) {
	defaultTaskStoreRegistry.mu.Lock()
	defer defaultTaskStoreRegistry.mu.Unlock()
	defaultTaskStoreRegistry.factories[factory.SupportedProvider()] = factory
}

// GetSupportedTaskStoreProviders lists every registered provider name.
func GetSupportedTaskStoreProviders() []string {
	defaultTaskStoreRegistry.mu.RLock()
	defer defaultTaskStoreRegistry.mu.RUnlock()

	out := make([]string, 0, len(defaultTaskStoreRegistry.factories))
	for name := range defaultTaskStoreRegistry.factories {
		out = append(out, name)
	}
	return out
}

// NewTaskStore resolves cfg.Provider against the default registry and builds
// a TaskStore from it.
func NewTaskStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (TaskStore, error) {
	defaultTaskStoreRegistry.mu.RLock()
	factory, ok := defaultTaskStoreRegistry.factories[cfg.Provider]
	defaultTaskStoreRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no task store provider registered for %q", cfg.Provider)
	}

	if err := factory.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid storage config for provider %q: %w", cfg.Provider, err)
	}

	return factory.CreateStore(ctx, cfg, logger)
}

type inMemoryTaskStoreFactory struct{}

func (f *inMemoryTaskStoreFactory) SupportedProvider() string { return "memory" }

func (f *inMemoryTaskStoreFactory) ValidateConfig(cfg config.StorageConfig) error { return nil }

func (f *inMemoryTaskStoreFactory) CreateStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (TaskStore, error) {
	return NewInMemoryTaskStore(logger), nil
}

type sqlTaskStoreFactory struct{}

func (f *sqlTaskStoreFactory) SupportedProvider() string { return "sql" }

func (f *sqlTaskStoreFactory) ValidateConfig(cfg config.StorageConfig) error {
	if cfg.SQLDriverName == "" {
		return fmt.Errorf("SQL_DRIVER_NAME is required for the sql storage provider")
	}
	if cfg.SQLDataSource == "" {
		return fmt.Errorf("SQL_DATA_SOURCE is required for the sql storage provider")
	}
	return nil
}

func (f *sqlTaskStoreFactory) CreateStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (TaskStore, error) {
	db, err := sql.Open(cfg.SQLDriverName, cfg.SQLDataSource)
	if err != nil {
		return nil, fmt.Errorf("open sql connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping sql connection: %w", err)
	}

	return NewSQLTaskStore(db, cfg.SQLTaskTable, logger)
}

type redisTaskStoreFactory struct{}

func (f *redisTaskStoreFactory) SupportedProvider() string { return "redis" }

func (f *redisTaskStoreFactory) ValidateConfig(cfg config.StorageConfig) error {
	if cfg.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required for the redis storage provider")
	}
	return nil
}

func (f *redisTaskStoreFactory) CreateStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (TaskStore, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	logger.Info("connected to redis task store", zap.String("addr", opt.Addr), zap.Int("db", opt.DB))

	return NewRedisTaskStore(client, logger), nil
}
