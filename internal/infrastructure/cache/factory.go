package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	appledger "github.com/rentledger/backend/internal/application/ledger"
	"github.com/rentledger/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RunLockerFactory builds the rent run locker from configuration
type RunLockerFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// RunLockerFactoryOption is a functional option for configuring the factory
type RunLockerFactoryOption func(*RunLockerFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) RunLockerFactoryOption {
	return func(f *RunLockerFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to
// a process-local locker. Default is true.
func WithInMemoryFallback(allow bool) RunLockerFactoryOption {
	return func(f *RunLockerFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewRunLockerFactory creates a new factory
func NewRunLockerFactory(cfg config.RedisConfig, opts ...RunLockerFactoryOption) *RunLockerFactory {
	f := &RunLockerFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a Redis-backed locker when Redis is enabled and reachable,
// otherwise an in-memory locker. The returned client is nil unless Redis is
// in use; the caller closes it.
func (f *RunLockerFactory) Create(ctx context.Context) (appledger.RunLocker, *redis.Client, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory run locker")
		return NewInMemoryRunLocker(), nil, nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err == nil {
		f.logger.Info("Using Redis run locker", zap.String("addr", f.redisConfig.Addr()))
		return NewRedisRunLocker(client, f.logger), client, nil
	}

	if !f.allowInMemoryFallback {
		return nil, nil, fmt.Errorf("redis required for run locks but unavailable: %w", err)
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory run locker. "+
		"Replicas may run rent generation concurrently; the per-lease check still prevents duplicates.",
		zap.Error(err),
	)
	return NewInMemoryRunLocker(), nil, nil
}
