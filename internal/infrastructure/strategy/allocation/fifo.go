package allocation

import (
	"context"

	"github.com/rentledger/backend/internal/domain/shared/strategy"
)

// FIFOName is the registry name of the due-date-only strategy
const FIFOName = "fifo"

// FIFOAllocationStrategy funds obligations strictly by due date and
// ignores priority classes
type FIFOAllocationStrategy struct {
	strategy.BaseStrategy
}

// NewFIFOAllocationStrategy creates a new FIFO allocation strategy
func NewFIFOAllocationStrategy() *FIFOAllocationStrategy {
	return &FIFOAllocationStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			FIFOName,
			"Allocate payments to the oldest charges first",
		),
	}
}

// Allocate allocates payment to obligations in due date order
func (s *FIFOAllocationStrategy) Allocate(
	ctx context.Context,
	allocCtx strategy.AllocationContext,
	obligations []strategy.Obligation,
) (strategy.AllocationResult, error) {
	return fill(ctx, allocCtx, obligations, func(a, b strategy.Obligation) bool {
		if !a.Key.DueDate.Equal(b.Key.DueDate) {
			return a.Key.DueDate.Before(b.Key.DueDate)
		}
		return a.Key.Less(b.Key)
	})
}

// SupportsPartialAllocation returns true as FIFO supports partial allocation
func (s *FIFOAllocationStrategy) SupportsPartialAllocation() bool {
	return true
}
