package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
)

// Payment is cash received against a lease. Payments are only created
// together with their automatic allocation.
type Payment struct {
	shared.BaseEntity
	LeaseID      uuid.UUID
	Amount       Cents
	Method       PaymentMethod
	DateReceived time.Time
	IsRefunded   bool

	// Allocations holds the allocation rows loaded with the payment
	Allocations []PaymentAllocation
}

// NewPayment creates a payment received now
func NewPayment(leaseID uuid.UUID, amount Cents, method PaymentMethod) (*Payment, error) {
	if leaseID == uuid.Nil {
		return nil, shared.NewValidationError("Lease is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, NewValidationErrorf("Invalid payment method: %s", method)
	}

	base := shared.NewBaseEntity()
	return &Payment{
		BaseEntity:   base,
		LeaseID:      leaseID,
		Amount:       amount,
		Method:       method,
		DateReceived: base.CreatedAt,
	}, nil
}

// Allocated returns the sum of the loaded allocations
func (p *Payment) Allocated() Cents {
	var sum Cents
	for _, a := range p.Allocations {
		sum += a.Amount
	}
	return sum
}

// Unallocated returns the credit left on the payment
func (p *Payment) Unallocated() Cents {
	return p.Amount - p.Allocated()
}

// Refund marks the payment refunded. It reports whether the flag changed.
func (p *Payment) Refund() bool {
	if p.IsRefunded {
		return false
	}
	p.IsRefunded = true
	p.Touch()
	return true
}
