package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	appledger "github.com/rentledger/backend/internal/application/ledger"
	"go.uber.org/zap"
)

// LockKeyPrefix namespaces run locks in Redis
const LockKeyPrefix = "lock:"

// RedisRunLocker takes short-lived exclusive locks in Redis so that one
// replica at a time runs a job
type RedisRunLocker struct {
	locker *redislock.Client
	logger *zap.Logger
}

// NewRedisRunLocker creates a RedisRunLocker on an existing client
func NewRedisRunLocker(client redis.UniversalClient, logger *zap.Logger) *RedisRunLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRunLocker{locker: redislock.New(client), logger: logger}
}

// TryLock obtains "lock:"+key for ttl without retrying. A lock held
// elsewhere is reported as acquired=false with no error.
func (l *RedisRunLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context), bool, error) {
	lock, err := l.locker.Obtain(ctx, LockKeyPrefix+key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}

	release := func(ctx context.Context) {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.Warn("Failed to release run lock", zap.String("key", key), zap.Error(err))
		}
	}
	return release, true, nil
}

var _ appledger.RunLocker = (*RedisRunLocker)(nil)
