package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Descriptions used for charges issued by lease lifecycle events
const (
	FirstMonthRentDescription   = "First Month Rent"
	SecurityDepositDescription  = "Security Deposit"
	MoveOutDeductionDescription = "Move-out Deductions"
)

// ErrUnitOccupied is returned when a unit already has an active lease
var ErrUnitOccupied = ledger.ErrUnitOccupied

// LeaseService manages the lease lifecycle
type LeaseService struct {
	txScope TransactionScope
	leases  ledger.LeaseRepository
	metrics *telemetry.LedgerMetrics
	logger  *zap.Logger
}

// NewLeaseService creates a new LeaseService
func NewLeaseService(
	txScope TransactionScope,
	leases ledger.LeaseRepository,
	metrics *telemetry.LedgerMetrics,
	logger *zap.Logger,
) *LeaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaseService{
		txScope: txScope,
		leases:  leases,
		metrics: metrics,
		logger:  logger,
	}
}

// CreateLease opens a lease on a vacant unit and issues the first month's
// rent plus, when requested, the security deposit.
func (s *LeaseService) CreateLease(ctx context.Context, req CreateLeaseRequest) (*CreateLeaseResult, error) {
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, "lease", "create_lease")
	defer span.End()
	telemetry.SetAttributes(span, "tenant_id", req.TenantID.String(), "unit_id", req.UnitID.String())
	defer s.metrics.ObserveOperation(ctx, "create_lease", started)

	if req.SecurityDeposit < 0 {
		return nil, shared.NewValidationError("Security deposit cannot be negative")
	}

	var (
		lease   *ledger.Lease
		charges []*ledger.Charge
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		tenant, err := repos.Tenants().FindByID(ctx, req.TenantID)
		if err != nil {
			return err
		}
		if tenant == nil {
			return shared.NewValidationError("Tenant not found")
		}
		unit, err := repos.Units().FindByID(ctx, req.UnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return shared.NewValidationError("Unit not found")
		}

		occupied, err := repos.Leases().FindActiveByUnit(ctx, unit.ID)
		if err != nil {
			return err
		}
		if occupied != nil {
			return ErrUnitOccupied
		}

		lease, err = ledger.NewLease(tenant.ID, unit.ID, req.StartDate, req.RentAmount)
		if err != nil {
			return err
		}
		if err := repos.Leases().Save(ctx, lease); err != nil {
			return err
		}

		rent, err := issueCharge(ctx, repos, lease.ID, lease.RentAmount, ledger.ChargeTypeRent,
			FirstMonthRentDescription, lease.StartDate, ledger.BillingPeriod(lease.StartDate))
		if err != nil {
			return err
		}
		charges = append(charges, rent)

		if req.SecurityDeposit > 0 {
			deposit, err := issueCharge(ctx, repos, lease.ID, req.SecurityDeposit, ledger.ChargeTypeSecurityDeposit,
				SecurityDepositDescription, lease.StartDate, "")
			if err != nil {
				return err
			}
			charges = append(charges, deposit)
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := &CreateLeaseResult{
		Lease:   toLeaseResponse(lease),
		Charges: make([]ChargeResponse, 0, len(charges)),
	}
	for _, c := range charges {
		s.metrics.ChargeIssued(ctx, c.Type.String())
		result.Charges = append(result.Charges, toChargeResponse(c))
	}

	s.logger.Info("Lease created",
		zap.String("lease_id", lease.ID.String()),
		zap.String("tenant_id", lease.TenantID.String()),
		zap.String("unit_id", lease.UnitID.String()),
		zap.Int64("rent_amount", lease.RentAmount.Int64()),
		zap.Int64("security_deposit", req.SecurityDeposit.Int64()),
	)
	return result, nil
}

// EndLease issues the move-out deduction, if any, and deactivates the lease
func (s *LeaseService) EndLease(ctx context.Context, req EndLeaseRequest) (*EndLeaseResult, error) {
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, "lease", "end_lease")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrLeaseID, req.LeaseID.String(),
		telemetry.SpanAttrAmount, req.DeductionAmount.Int64(),
	)
	defer s.metrics.ObserveOperation(ctx, "end_lease", started)

	if req.DeductionAmount < 0 {
		return nil, shared.NewValidationError("Deductions cannot be negative")
	}

	var (
		lease     *ledger.Lease
		deduction *ledger.Charge
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		lease, err = repos.Leases().FindByIDForUpdate(ctx, req.LeaseID)
		if err != nil {
			return err
		}
		if lease == nil {
			return shared.NewNotFoundError("Lease")
		}

		if req.DeductionAmount > 0 {
			description := req.Description
			if description == "" {
				description = MoveOutDeductionDescription
			}
			deduction, err = issueCharge(ctx, repos, lease.ID, req.DeductionAmount, ledger.ChargeTypeDamageFee,
				description, req.MoveOutDate, "")
			if err != nil {
				return err
			}
		}

		if err := lease.End(req.MoveOutDate); err != nil {
			return err
		}
		return repos.Leases().Save(ctx, lease)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := &EndLeaseResult{Lease: toLeaseResponse(lease)}
	if deduction != nil {
		s.metrics.ChargeIssued(ctx, deduction.Type.String())
		resp := toChargeResponse(deduction)
		result.DeductionCharge = &resp
	}

	s.logger.Info("Lease ended",
		zap.String("lease_id", lease.ID.String()),
		zap.Time("end_date", *lease.EndDate),
		zap.Int64("deduction", req.DeductionAmount.Int64()),
	)
	return result, nil
}

// GetLease returns one lease
func (s *LeaseService) GetLease(ctx context.Context, id uuid.UUID) (*LeaseResponse, error) {
	lease, err := s.leases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, shared.NewNotFoundError("Lease")
	}
	resp := toLeaseResponse(lease)
	return &resp, nil
}

// ListLeases returns a page of leases
func (s *LeaseService) ListLeases(ctx context.Context, filter ledger.LeaseFilter) (*shared.Paginated[LeaseResponse], error) {
	filter.Filter = filter.Filter.Normalize()
	leases, total, err := s.leases.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]LeaseResponse, 0, len(leases))
	for i := range leases {
		items = append(items, toLeaseResponse(&leases[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
