package allocation

import (
	"context"

	"github.com/rentledger/backend/internal/domain/shared/strategy"
)

// WaterfallName is the registry name of the default allocation strategy
const WaterfallName = "waterfall"

// WaterfallAllocationStrategy funds obligations in ordering-key order:
// priority class first, then oldest due date.
type WaterfallAllocationStrategy struct {
	strategy.BaseStrategy
}

// NewWaterfallAllocationStrategy creates the waterfall strategy
func NewWaterfallAllocationStrategy() *WaterfallAllocationStrategy {
	return &WaterfallAllocationStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			WaterfallName,
			"Fund deposits first, then the oldest outstanding charges",
		),
	}
}

// Allocate plans the split of a payment across open obligations
func (s *WaterfallAllocationStrategy) Allocate(
	ctx context.Context,
	allocCtx strategy.AllocationContext,
	obligations []strategy.Obligation,
) (strategy.AllocationResult, error) {
	return fill(ctx, allocCtx, obligations, func(a, b strategy.Obligation) bool {
		return a.Key.Less(b.Key)
	})
}

// SupportsPartialAllocation returns true as the waterfall partly funds the last charge it reaches
func (s *WaterfallAllocationStrategy) SupportsPartialAllocation() bool {
	return true
}
