package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/domain/shared/strategy"
	"github.com/rentledger/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AllocationService records payments and distributes them over charges
type AllocationService struct {
	txScope  TransactionScope
	payments ledger.PaymentRepository
	strategy strategy.PaymentAllocationStrategy
	metrics  *telemetry.LedgerMetrics
	logger   *zap.Logger
}

// NewAllocationService creates a new AllocationService.
// allocator decides the order in which open charges are funded.
func NewAllocationService(
	txScope TransactionScope,
	payments ledger.PaymentRepository,
	allocator strategy.PaymentAllocationStrategy,
	metrics *telemetry.LedgerMetrics,
	logger *zap.Logger,
) *AllocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocationService{
		txScope:  txScope,
		payments: payments,
		strategy: allocator,
		metrics:  metrics,
		logger:   logger,
	}
}

// RecordPayment stores a payment and auto-allocates it over the lease's
// open charges. Whatever is not allocated stays on the payment as credit.
func (s *AllocationService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, "allocation", "record_payment")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrLeaseID, req.LeaseID.String(),
		telemetry.SpanAttrMethod, req.Method.String(),
		telemetry.SpanAttrAmount, req.Amount.Int64(),
	)
	defer s.metrics.ObserveOperation(ctx, "record_payment", started)

	if !req.Amount.IsPositive() {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}
	if !req.Method.IsValid() {
		return nil, ledger.NewValidationErrorf("Invalid payment method: %s", req.Method)
	}

	var payment *ledger.Payment
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		lease, err := repos.Leases().FindByIDForUpdate(ctx, req.LeaseID)
		if err != nil {
			return err
		}
		if lease == nil {
			return shared.NewNotFoundError("Lease")
		}

		payment, err = ledger.NewPayment(lease.ID, req.Amount, req.Method)
		if err != nil {
			return err
		}
		if err := repos.Payments().Save(ctx, payment); err != nil {
			return err
		}

		charges, err := repos.Charges().FindNonVoidedByLeaseForUpdate(ctx, lease.ID)
		if err != nil {
			return err
		}
		return s.autoAllocate(ctx, repos, payment, charges)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.PaymentRecorded(ctx, payment.Method.String(), payment.Allocated().Int64())
	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("lease_id", payment.LeaseID.String()),
		zap.Int64("amount", payment.Amount.Int64()),
		zap.Int64("allocated", payment.Allocated().Int64()),
		zap.Int("allocations", len(payment.Allocations)),
	)

	resp := toPaymentResponse(payment)
	return &resp, nil
}

// autoAllocate funds open charges from payment in strategy order
func (s *AllocationService) autoAllocate(
	ctx context.Context,
	repos TransactionalRepositories,
	payment *ledger.Payment,
	charges []ledger.Charge,
) error {
	obligations := make([]strategy.Obligation, 0, len(charges))
	for i := range charges {
		if charges[i].IsOpen() {
			obligations = append(obligations, charges[i].Obligation())
		}
	}
	if len(obligations) == 0 {
		return nil
	}

	result, err := s.strategy.Allocate(ctx, strategy.AllocationContext{
		PaymentID:     payment.ID.String(),
		LeaseID:       payment.LeaseID.String(),
		PaymentAmount: payment.Amount.Int64(),
		PaymentDate:   payment.DateReceived,
	}, obligations)
	if err != nil {
		return fmt.Errorf("allocate payment: %w", err)
	}

	for _, split := range result.Splits {
		chargeID, err := uuid.Parse(split.ObligationID)
		if err != nil {
			return fmt.Errorf("allocate payment: invalid charge id %q: %w", split.ObligationID, err)
		}
		allocation, err := ledger.NewAllocation(payment.ID, chargeID, ledger.Cents(split.Amount))
		if err != nil {
			return err
		}
		if err := repos.Allocations().Create(ctx, allocation); err != nil {
			return err
		}
		payment.Allocations = append(payment.Allocations, *allocation)
	}
	return nil
}

// AllocateManually moves part of a payment's unallocated money onto one
// charge. Both limits are re-read inside the transaction.
func (s *AllocationService) AllocateManually(ctx context.Context, req ManualAllocationRequest) (*AllocationResponse, error) {
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, "allocation", "allocate_manually")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPaymentID, req.PaymentID.String(),
		telemetry.SpanAttrChargeID, req.ChargeID.String(),
		telemetry.SpanAttrAmount, req.Amount.Int64(),
	)
	defer s.metrics.ObserveOperation(ctx, "allocate_manually", started)

	if !req.Amount.IsPositive() {
		return nil, shared.NewValidationError("Allocation amount must be positive")
	}

	var allocation *ledger.PaymentAllocation
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// lease row first so every writer on a lease queues in the same order
		found, err := repos.Payments().FindByID(ctx, req.PaymentID)
		if err != nil {
			return err
		}
		if found == nil {
			return shared.NewNotFoundError("Payment")
		}
		if _, err := repos.Leases().FindByIDForUpdate(ctx, found.LeaseID); err != nil {
			return err
		}

		payment, err := repos.Payments().FindByIDForUpdate(ctx, req.PaymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return shared.NewNotFoundError("Payment")
		}
		if payment.IsRefunded {
			return shared.NewInvalidStateError("Cannot allocate a refunded payment")
		}

		charge, err := repos.Charges().FindByIDForUpdate(ctx, req.ChargeID)
		if err != nil {
			return err
		}
		if charge == nil {
			return shared.NewNotFoundError("Charge")
		}
		if charge.IsVoided {
			return shared.NewInvalidStateError("Cannot allocate to a voided charge")
		}
		if charge.LeaseID != payment.LeaseID {
			return shared.NewValidationError("Payment and charge belong to different leases")
		}

		paymentUsed, err := repos.Allocations().SumByPayment(ctx, payment.ID)
		if err != nil {
			return err
		}
		if available := payment.Amount - paymentUsed; req.Amount > available {
			return ledger.NewInsufficientPaymentBalanceError(available)
		}

		chargePaid, err := repos.Allocations().SumByCharge(ctx, charge.ID)
		if err != nil {
			return err
		}
		if needed := charge.Amount - chargePaid; req.Amount > needed {
			return ledger.NewChargeOverpaymentError(needed)
		}

		allocation, err = ledger.NewAllocation(payment.ID, charge.ID, req.Amount)
		if err != nil {
			return err
		}
		return repos.Allocations().Create(ctx, allocation)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.ManualAllocation(ctx, allocation.Amount.Int64())
	s.logger.Info("Manual allocation created",
		zap.String("allocation_id", allocation.ID.String()),
		zap.String("payment_id", allocation.PaymentID.String()),
		zap.String("charge_id", allocation.ChargeID.String()),
		zap.Int64("amount", allocation.Amount.Int64()),
	)

	resp := toAllocationResponse(allocation)
	return &resp, nil
}

// GetPayment returns one payment with its allocations
func (s *AllocationService) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.NewNotFoundError("Payment")
	}
	resp := toPaymentResponse(payment)
	return &resp, nil
}
