package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/property"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// LedgerQueryService derives balances and portfolio metrics. It never writes.
type LedgerQueryService struct {
	leases     ledger.LeaseRepository
	charges    ledger.ChargeRepository
	payments   ledger.PaymentRepository
	properties property.PropertyRepository
	units      property.UnitRepository
	tenants    property.TenantRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewLedgerQueryService creates a new LedgerQueryService
func NewLedgerQueryService(
	leases ledger.LeaseRepository,
	charges ledger.ChargeRepository,
	payments ledger.PaymentRepository,
	properties property.PropertyRepository,
	units property.UnitRepository,
	tenants property.TenantRepository,
	logger *zap.Logger,
) *LedgerQueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerQueryService{
		leases:     leases,
		charges:    charges,
		payments:   payments,
		properties: properties,
		units:      units,
		tenants:    tenants,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the clock that defines the current month
func (s *LedgerQueryService) WithClock(now func() time.Time) *LedgerQueryService {
	s.now = now
	return s
}

// GetLeaseLedger returns the balance, deposits and timeline of one lease
func (s *LedgerQueryService) GetLeaseLedger(ctx context.Context, leaseID uuid.UUID) (*LeaseLedger, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger_query", "get_lease_ledger")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrLeaseID, leaseID.String())

	lease, err := s.leases.FindByID(ctx, leaseID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if lease == nil {
		return nil, shared.NewNotFoundError("Lease")
	}

	charges, err := s.charges.FindByLease(ctx, lease.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	payments, err := s.payments.FindByLease(ctx, lease.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	view := BuildLeaseLedger(lease, charges, payments)
	return &view, nil
}

// GetPortfolioMetrics returns arrears, deposits, revenue, occupancy and the
// risk watchlist across all properties
func (s *LedgerQueryService) GetPortfolioMetrics(ctx context.Context) (*PortfolioMetrics, error) {
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger_query", "get_portfolio_metrics")
	defer span.End()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	metrics := DerivePortfolioMetrics(*snap)
	s.logger.Debug("Portfolio metrics computed",
		zap.Int("properties", len(snap.Properties)),
		zap.Int("active_leases", len(snap.ActiveLeases)),
		zap.Int("watchlist", len(metrics.RiskWatchlist)),
		zap.Duration("took", time.Since(started)),
	)
	return &metrics, nil
}

func (s *LedgerQueryService) loadSnapshot(ctx context.Context) (*PortfolioSnapshot, error) {
	now := s.now().UTC()
	snap := &PortfolioSnapshot{GeneratedAt: now}

	var err error
	if snap.Properties, err = s.properties.ListAll(ctx); err != nil {
		return nil, err
	}
	if snap.Units, err = s.units.FindAll(ctx); err != nil {
		return nil, err
	}
	if snap.Leases, err = s.leases.ListAll(ctx); err != nil {
		return nil, err
	}
	for _, l := range snap.Leases {
		if l.IsActive {
			snap.ActiveLeases = append(snap.ActiveLeases, l)
		}
	}
	if snap.Charges, err = s.charges.FindNonVoided(ctx); err != nil {
		return nil, err
	}

	from, to := ledger.MonthWindow(now)
	if snap.MonthlyRevenue, err = s.payments.SumReceivedBetween(ctx, from, to); err != nil {
		return nil, err
	}
	if snap.RevenueByLease, err = s.payments.SumByLease(ctx, true); err != nil {
		return nil, err
	}

	activeIDs := make([]uuid.UUID, 0, len(snap.ActiveLeases))
	tenantIDs := make([]uuid.UUID, 0, len(snap.ActiveLeases))
	for _, l := range snap.ActiveLeases {
		activeIDs = append(activeIDs, l.ID)
		tenantIDs = append(tenantIDs, l.TenantID)
	}
	if snap.LastPayment, err = s.payments.LatestReceivedByLease(ctx, activeIDs); err != nil {
		return nil, err
	}
	if snap.Tenants, err = s.tenants.FindByIDs(ctx, tenantIDs); err != nil {
		return nil, err
	}
	return snap, nil
}
