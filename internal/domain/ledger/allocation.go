package ledger

import (
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
)

// PaymentAllocation records that part of a payment funded part of a charge.
// Allocations are inserted or deleted, never edited.
type PaymentAllocation struct {
	shared.BaseEntity
	PaymentID uuid.UUID
	ChargeID  uuid.UUID
	Amount    Cents
}

// NewAllocation creates an allocation row
func NewAllocation(paymentID, chargeID uuid.UUID, amount Cents) (*PaymentAllocation, error) {
	if paymentID == uuid.Nil || chargeID == uuid.Nil {
		return nil, shared.NewValidationError("Allocation requires a payment and a charge")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Allocation amount must be positive")
	}
	return &PaymentAllocation{
		BaseEntity: shared.NewBaseEntity(),
		PaymentID:  paymentID,
		ChargeID:   chargeID,
		Amount:     amount,
	}, nil
}
