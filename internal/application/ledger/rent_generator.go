package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// RentRunLockTTL bounds how long one generation run holds the run lock
const RentRunLockTTL = 5 * time.Minute

// ErrRentRunInProgress is returned when another replica is generating rent
// for the same period
var ErrRentRunInProgress = shared.NewConflictError("Rent generation for this period is already running")

// RunLocker guards a run across replicas. acquired is false when another
// holder has the key.
type RunLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(context.Context), acquired bool, err error)
}

// RentGenerator issues the monthly RENT charge for every active lease
type RentGenerator struct {
	txScope TransactionScope
	leases  ledger.LeaseRepository
	locker  RunLocker
	metrics *telemetry.LedgerMetrics
	logger  *zap.Logger
}

// NewRentGenerator creates a new RentGenerator. locker may be nil.
func NewRentGenerator(
	txScope TransactionScope,
	leases ledger.LeaseRepository,
	locker RunLocker,
	metrics *telemetry.LedgerMetrics,
	logger *zap.Logger,
) *RentGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RentGenerator{
		txScope: txScope,
		leases:  leases,
		locker:  locker,
		metrics: metrics,
		logger:  logger,
	}
}

// GenerateMonthlyRent issues one RENT charge per active lease for the month
// containing asOf, due on the first of that month. Leases that already have
// rent due in that month are skipped, so repeated runs are harmless.
func (g *RentGenerator) GenerateMonthlyRent(ctx context.Context, asOf time.Time) (*RentGenerationResult, error) {
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, "rent", "generate_monthly_rent")
	defer span.End()

	period := ledger.BillingPeriod(asOf)
	telemetry.SetAttributes(span, telemetry.SpanAttrPeriod, period)
	defer g.metrics.ObserveOperation(ctx, "generate_monthly_rent", started)

	if g.locker != nil {
		release, acquired, err := g.locker.TryLock(ctx, "rent-generation:"+period, RentRunLockTTL)
		switch {
		case err != nil:
			g.logger.Warn("Rent run lock unavailable, continuing without it",
				zap.String("billing_period", period),
				zap.Error(err),
			)
		case !acquired:
			telemetry.RecordError(span, ErrRentRunInProgress)
			return nil, ErrRentRunInProgress
		default:
			defer release(context.WithoutCancel(ctx))
		}
	}

	active, err := g.leases.FindActive(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	from, to := ledger.MonthWindow(asOf)
	created := 0
	for i := range active {
		issued, err := g.generateForLease(ctx, active[i], from, to, period)
		if err != nil {
			telemetry.RecordError(span, err)
			g.logger.Error("Rent generation failed",
				zap.String("lease_id", active[i].ID.String()),
				zap.String("billing_period", period),
				zap.Int("created_so_far", created),
				zap.Error(err),
			)
			return nil, fmt.Errorf("generate rent for lease %s: %w", active[i].ID, err)
		}
		if issued {
			created++
		}
	}

	g.metrics.RentGenerated(ctx, created)
	result := &RentGenerationResult{
		BillingPeriod:   period,
		CreatedCount:    created,
		ConsideredCount: len(active),
		Message:         fmt.Sprintf("Generated %d rent charges for %d active leases.", created, len(active)),
	}
	g.logger.Info(result.Message, zap.String("billing_period", period))
	return result, nil
}

// generateForLease re-checks the lease and the month inside one transaction
// and inserts the charge when the month has no rent yet
func (g *RentGenerator) generateForLease(
	ctx context.Context,
	candidate ledger.Lease,
	from, to time.Time,
	period string,
) (bool, error) {
	if !candidate.StartDate.Before(to) {
		return false, nil
	}

	issued := false
	err := g.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		lease, err := repos.Leases().FindByIDForUpdate(ctx, candidate.ID)
		if err != nil {
			return err
		}
		if lease == nil || !lease.IsActive {
			return nil
		}

		exists, err := repos.Charges().ExistsRentDueBetween(ctx, lease.ID, from, to)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		if _, err := issueCharge(ctx, repos, lease.ID, lease.RentAmount, ledger.ChargeTypeRent,
			ledger.RentDescription(from), from, period); err != nil {
			return err
		}
		issued = true
		return nil
	})
	if errors.Is(err, ledger.ErrDuplicateBillingPeriod) {
		g.logger.Debug("Rent already issued", zap.String("lease_id", candidate.ID.String()), zap.String("billing_period", period))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return issued, nil
}
