package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReversalService voids charges and refunds payments. Both operations
// delete every allocation that touches the reversed record. The money freed
// on the other side is not re-allocated.
type ReversalService struct {
	txScope TransactionScope
	metrics *telemetry.LedgerMetrics
	logger  *zap.Logger
}

// NewReversalService creates a new ReversalService
func NewReversalService(txScope TransactionScope, metrics *telemetry.LedgerMetrics, logger *zap.Logger) *ReversalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReversalService{
		txScope: txScope,
		metrics: metrics,
		logger:  logger,
	}
}

// VoidCharge marks a charge voided and removes its allocations.
// Voiding an already voided charge succeeds and changes nothing.
func (s *ReversalService) VoidCharge(ctx context.Context, chargeID uuid.UUID) (*ChargeResponse, error) {
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, "reversal", "void_charge")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrChargeID, chargeID.String())
	defer s.metrics.ObserveOperation(ctx, "void_charge", started)

	var (
		resp    ChargeResponse
		changed bool
		removed int64
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.Charges().FindByID(ctx, chargeID)
		if err != nil {
			return err
		}
		if found == nil {
			return shared.NewNotFoundError("Charge")
		}
		if _, err := repos.Leases().FindByIDForUpdate(ctx, found.LeaseID); err != nil {
			return err
		}

		charge, err := repos.Charges().FindByIDForUpdate(ctx, chargeID)
		if err != nil {
			return err
		}
		if charge == nil {
			return shared.NewNotFoundError("Charge")
		}

		removed, err = repos.Allocations().DeleteByCharge(ctx, charge.ID)
		if err != nil {
			return err
		}
		charge.Allocations = nil

		if changed = charge.Void(); changed {
			if err := repos.Charges().Save(ctx, charge); err != nil {
				return err
			}
		}
		resp = toChargeResponse(charge)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if changed {
		s.metrics.ChargeVoided(ctx)
		s.logger.Info("Charge voided",
			zap.String("charge_id", chargeID.String()),
			zap.Int64("allocations_removed", removed),
		)
	}
	return &resp, nil
}

// RefundPayment marks a payment refunded and removes its allocations.
// Refunding an already refunded payment succeeds and changes nothing.
func (s *ReversalService) RefundPayment(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, "reversal", "refund_payment")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrPaymentID, paymentID.String())
	defer s.metrics.ObserveOperation(ctx, "refund_payment", started)

	var (
		resp    PaymentResponse
		changed bool
		removed int64
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.Payments().FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if found == nil {
			return shared.NewNotFoundError("Payment")
		}
		if _, err := repos.Leases().FindByIDForUpdate(ctx, found.LeaseID); err != nil {
			return err
		}

		payment, err := repos.Payments().FindByIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return shared.NewNotFoundError("Payment")
		}

		removed, err = repos.Allocations().DeleteByPayment(ctx, payment.ID)
		if err != nil {
			return err
		}
		payment.Allocations = nil

		if changed = payment.Refund(); changed {
			if err := repos.Payments().Save(ctx, payment); err != nil {
				return err
			}
		}
		resp = toPaymentResponse(payment)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if changed {
		s.metrics.PaymentRefunded(ctx)
		s.logger.Info("Payment refunded",
			zap.String("payment_id", paymentID.String()),
			zap.Int64("allocations_removed", removed),
		)
	}
	return &resp, nil
}
