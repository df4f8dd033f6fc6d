package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appledger "github.com/rentledger/backend/internal/application/ledger"
	"github.com/rentledger/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrInvalidConfig is returned when the trigger configuration is unusable
var ErrInvalidConfig = errors.New("invalid scheduler configuration")

// RentGenerator is the operation the trigger runs
type RentGenerator interface {
	GenerateMonthlyRent(ctx context.Context, asOf time.Time) (*appledger.RentGenerationResult, error)
}

// RentTriggerConfig holds configuration for the rent trigger
type RentTriggerConfig struct {
	// CheckInterval is how often the generator runs
	CheckInterval time.Duration
	// RunTimeout bounds a single run
	RunTimeout time.Duration
	// RunOnStart runs once immediately instead of waiting a full interval
	RunOnStart bool
}

// DefaultRentTriggerConfig returns the hourly default
func DefaultRentTriggerConfig() RentTriggerConfig {
	return RentTriggerConfig{
		CheckInterval: time.Hour,
		RunTimeout:    10 * time.Minute,
		RunOnStart:    true,
	}
}

// RentTriggerConfigFrom maps the scheduler section of the app config
func RentTriggerConfigFrom(cfg config.SchedulerConfig) RentTriggerConfig {
	out := DefaultRentTriggerConfig()
	if cfg.CheckInterval > 0 {
		out.CheckInterval = cfg.CheckInterval
	}
	if cfg.RunTimeout > 0 {
		out.RunTimeout = cfg.RunTimeout
	}
	return out
}

// Validate rejects intervals the loop cannot run with
func (c RentTriggerConfig) Validate() error {
	if c.CheckInterval <= 0 {
		return fmt.Errorf("%w: check interval must be positive", ErrInvalidConfig)
	}
	if c.RunTimeout <= 0 {
		return fmt.Errorf("%w: run timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// RunRecord describes the outcome of the last run
type RunRecord struct {
	StartedAt     time.Time
	BillingPeriod string
	CreatedCount  int
	Skipped       bool
	Err           error
}

// RentTrigger periodically issues the current month's rent. Each run is
// idempotent, so the interval only bounds how late a new month is billed.
type RentTrigger struct {
	config    RentTriggerConfig
	generator RentGenerator
	logger    *zap.Logger
	now       func() time.Time

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	last      *RunRecord
}

// NewRentTrigger creates a new rent trigger
func NewRentTrigger(config RentTriggerConfig, generator RentGenerator, logger *zap.Logger) *RentTrigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RentTrigger{
		config:    config,
		generator: generator,
		logger:    logger,
		now:       time.Now,
	}
}

// Start launches the trigger loop. Calling Start twice is a no-op.
func (r *RentTrigger) Start(ctx context.Context) error {
	if err := r.config.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = true
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	r.wg.Add(1)
	go r.runLoop(ctx)

	r.logger.Info("Rent trigger started",
		zap.Duration("check_interval", r.config.CheckInterval),
		zap.Duration("run_timeout", r.config.RunTimeout),
	)
	return nil
}

// Stop cancels the loop and waits for an in-flight run, up to ctx's deadline
func (r *RentTrigger) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = false
	cancel := r.cancel
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("Rent trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the loop is active
func (r *RentTrigger) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isRunning
}

// LastRun returns a copy of the last run record, or nil before the first run
func (r *RentTrigger) LastRun() *RunRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return nil
	}
	rec := *r.last
	return &rec
}

func (r *RentTrigger) runLoop(ctx context.Context) {
	defer r.wg.Done()

	if r.config.RunOnStart {
		r.RunOnce(ctx)
	}

	ticker := time.NewTicker(r.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce generates rent for the current month. A run already held by
// another replica is recorded as skipped.
func (r *RentTrigger) RunOnce(ctx context.Context) RunRecord {
	ctx, cancel := context.WithTimeout(ctx, r.config.RunTimeout)
	defer cancel()

	rec := RunRecord{StartedAt: r.now()}
	result, err := r.generator.GenerateMonthlyRent(ctx, rec.StartedAt)
	switch {
	case errors.Is(err, appledger.ErrRentRunInProgress):
		rec.Skipped = true
		r.logger.Info("Rent generation already running elsewhere, skipping")
	case err != nil:
		rec.Err = err
		r.logger.Error("Scheduled rent generation failed", zap.Error(err))
	default:
		rec.BillingPeriod = result.BillingPeriod
		rec.CreatedCount = result.CreatedCount
		r.logger.Info("Scheduled rent generation finished",
			zap.String("billing_period", result.BillingPeriod),
			zap.Int("created", result.CreatedCount),
			zap.Int("considered", result.ConsideredCount),
		)
	}

	r.mu.Lock()
	r.last = &rec
	r.mu.Unlock()
	return rec
}
