package strategy

import (
	"context"
	"time"
)

// OrderingKey positions an obligation in the payment waterfall.
// Keys are compared field by field: lower class first, then earlier due date.
// CreatedAt and ID only break exact ties so the order is total.
type OrderingKey struct {
	Class     int
	DueDate   time.Time
	CreatedAt time.Time
	ID        string
}

// Less reports whether k sorts before other
func (k OrderingKey) Less(other OrderingKey) bool {
	if k.Class != other.Class {
		return k.Class < other.Class
	}
	if !k.DueDate.Equal(other.DueDate) {
		return k.DueDate.Before(other.DueDate)
	}
	if !k.CreatedAt.Equal(other.CreatedAt) {
		return k.CreatedAt.Before(other.CreatedAt)
	}
	return k.ID < other.ID
}

// Obligation is an open debt a payment can be applied to.
// Owed is the live remaining amount in cents.
type Obligation struct {
	ID        string
	Key       OrderingKey
	Amount    int64
	Owed      int64
	Reference string
}

// Split is one planned application of payment money to an obligation
type Split struct {
	ObligationID string
	Amount       int64
	OwedBefore   int64
	OwedAfter    int64
}

// AllocationContext describes the payment being distributed
type AllocationContext struct {
	PaymentID     string
	LeaseID       string
	PaymentAmount int64
	PaymentDate   time.Time
}

// AllocationResult contains the planned splits and what is left over
type AllocationResult struct {
	Splits         []Split
	TotalAllocated int64
	Remaining      int64
}

// PaymentAllocationStrategy decides how a payment is split across obligations
type PaymentAllocationStrategy interface {
	Strategy
	// Allocate plans the distribution of a payment over open obligations.
	// It must not modify the obligations slice.
	Allocate(ctx context.Context, allocCtx AllocationContext, obligations []Obligation) (AllocationResult, error)
	// SupportsPartialAllocation returns true if an obligation may be partly funded
	SupportsPartialAllocation() bool
}
