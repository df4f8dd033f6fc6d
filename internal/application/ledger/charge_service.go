package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ManualChargeDescription is used when a manual charge has no description
const ManualChargeDescription = "Manual Charge"

// ChargeService issues charges against leases
type ChargeService struct {
	txScope TransactionScope
	charges ledger.ChargeRepository
	metrics *telemetry.LedgerMetrics
	logger  *zap.Logger
}

// NewChargeService creates a new ChargeService
func NewChargeService(
	txScope TransactionScope,
	charges ledger.ChargeRepository,
	metrics *telemetry.LedgerMetrics,
	logger *zap.Logger,
) *ChargeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChargeService{
		txScope: txScope,
		charges: charges,
		metrics: metrics,
		logger:  logger,
	}
}

// IssueCharge creates a charge on an existing lease. No allocation happens;
// money already on the lease stays where it is.
func (s *ChargeService) IssueCharge(ctx context.Context, req IssueChargeRequest) (*ChargeResponse, error) {
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, "charge", "issue_charge")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrLeaseID, req.LeaseID.String(),
		telemetry.SpanAttrChargeType, req.Type.String(),
		telemetry.SpanAttrAmount, req.Amount.Int64(),
	)
	defer s.metrics.ObserveOperation(ctx, "issue_charge", started)

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = ManualChargeDescription
	}
	var dueDate time.Time
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	var charge *ledger.Charge
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		lease, err := repos.Leases().FindByID(ctx, req.LeaseID)
		if err != nil {
			return err
		}
		if lease == nil {
			return shared.NewValidationError("Lease not found")
		}
		charge, err = issueCharge(ctx, repos, lease.ID, req.Amount, req.Type, description, dueDate, "")
		return err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.ChargeIssued(ctx, charge.Type.String())
	s.logger.Info("Charge issued",
		zap.String("charge_id", charge.ID.String()),
		zap.String("lease_id", charge.LeaseID.String()),
		zap.String("type", charge.Type.String()),
		zap.Int64("amount", charge.Amount.Int64()),
	)

	resp := toChargeResponse(charge)
	return &resp, nil
}

// GetCharge returns one charge with its allocations
func (s *ChargeService) GetCharge(ctx context.Context, id uuid.UUID) (*ChargeResponse, error) {
	charge, err := s.charges.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if charge == nil {
		return nil, shared.NewNotFoundError("Charge")
	}
	resp := toChargeResponse(charge)
	return &resp, nil
}

// issueCharge validates and persists a charge inside an open transaction
func issueCharge(
	ctx context.Context,
	repos TransactionalRepositories,
	leaseID uuid.UUID,
	amount ledger.Cents,
	chargeType ledger.ChargeType,
	description string,
	dueDate time.Time,
	billingPeriod string,
) (*ledger.Charge, error) {
	charge, err := ledger.NewCharge(leaseID, amount, chargeType, description, dueDate)
	if err != nil {
		return nil, err
	}
	charge.BillingPeriod = billingPeriod
	if err := repos.Charges().Save(ctx, charge); err != nil {
		return nil, err
	}
	return charge, nil
}
