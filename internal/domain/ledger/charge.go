package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/domain/shared/strategy"
)

// Charge is a debt owed by a lease. Voided charges stay for audit but are
// excluded from every balance.
type Charge struct {
	shared.BaseEntity
	LeaseID     uuid.UUID
	Amount      Cents
	Type        ChargeType
	Description string
	DueDate     time.Time
	// BillingPeriod is "YYYY-MM" on charges issued by the rent generator
	// and empty otherwise.
	BillingPeriod string
	IsVoided      bool

	// Allocations holds the allocation rows loaded with the charge
	Allocations []PaymentAllocation
}

// NewCharge creates an open charge against a lease. A zero dueDate means now.
func NewCharge(leaseID uuid.UUID, amount Cents, chargeType ChargeType, description string, dueDate time.Time) (*Charge, error) {
	if leaseID == uuid.Nil {
		return nil, shared.NewValidationError("Lease is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Charge amount must be positive")
	}
	if !chargeType.IsValid() {
		return nil, NewValidationErrorf("Invalid charge type: %s", chargeType)
	}

	base := shared.NewBaseEntity()
	if dueDate.IsZero() {
		dueDate = base.CreatedAt
	}

	return &Charge{
		BaseEntity:  base,
		LeaseID:     leaseID,
		Amount:      amount,
		Type:        chargeType,
		Description: strings.TrimSpace(description),
		DueDate:     dueDate.UTC(),
	}, nil
}

// Allocated returns the sum of the loaded allocations
func (c *Charge) Allocated() Cents {
	var sum Cents
	for _, a := range c.Allocations {
		sum += a.Amount
	}
	return sum
}

// Remaining returns how much of the charge is still unpaid
func (c *Charge) Remaining() Cents {
	return c.Amount - c.Allocated()
}

// IsOpen reports whether the charge can still receive money
func (c *Charge) IsOpen() bool {
	return !c.IsVoided && c.Remaining() > 0
}

// Void marks the charge voided. It reports whether the flag changed.
func (c *Charge) Void() bool {
	if c.IsVoided {
		return false
	}
	c.IsVoided = true
	c.Touch()
	return true
}

// OrderingKey returns the charge's position in the payment waterfall
func (c *Charge) OrderingKey() strategy.OrderingKey {
	return strategy.OrderingKey{
		Class:     int(c.Type.PriorityClass()),
		DueDate:   c.DueDate,
		CreatedAt: c.CreatedAt,
		ID:        c.ID.String(),
	}
}

// Obligation converts the charge into an allocation strategy input
func (c *Charge) Obligation() strategy.Obligation {
	return strategy.Obligation{
		ID:        c.ID.String(),
		Key:       c.OrderingKey(),
		Amount:    c.Amount.Int64(),
		Owed:      c.Remaining().Int64(),
		Reference: c.Type.String(),
	}
}
