package allocation

import (
	"context"
	"sort"

	"github.com/rentledger/backend/internal/domain/shared/strategy"
)

// fill sorts a copy of the obligations with less and funds them in order,
// giving each min(remaining, owed) until the payment runs out.
func fill(
	ctx context.Context,
	allocCtx strategy.AllocationContext,
	obligations []strategy.Obligation,
	less func(a, b strategy.Obligation) bool,
) (strategy.AllocationResult, error) {
	if err := ctx.Err(); err != nil {
		return strategy.AllocationResult{}, err
	}

	sorted := make([]strategy.Obligation, len(obligations))
	copy(sorted, obligations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	remaining := allocCtx.PaymentAmount
	splits := make([]strategy.Split, 0)
	var total int64

	for _, o := range sorted {
		if remaining <= 0 {
			break
		}
		if o.Owed <= 0 {
			continue
		}

		amount := min(remaining, o.Owed)
		splits = append(splits, strategy.Split{
			ObligationID: o.ID,
			Amount:       amount,
			OwedBefore:   o.Owed,
			OwedAfter:    o.Owed - amount,
		})
		remaining -= amount
		total += amount
	}

	return strategy.AllocationResult{
		Splits:         splits,
		TotalAllocated: total,
		Remaining:      remaining,
	}, nil
}
