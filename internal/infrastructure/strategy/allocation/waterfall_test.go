package allocation

import (
	"context"
	"testing"
	"time"

	"github.com/rentledger/backend/internal/domain/shared/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func obligation(id string, class int, due time.Time, owed int64) strategy.Obligation {
	return strategy.Obligation{
		ID:     id,
		Key:    strategy.OrderingKey{Class: class, DueDate: due, CreatedAt: jan, ID: id},
		Amount: owed,
		Owed:   owed,
	}
}

func allocateWith(t *testing.T, s strategy.PaymentAllocationStrategy, amount int64, obligations ...strategy.Obligation) strategy.AllocationResult {
	t.Helper()
	result, err := s.Allocate(context.Background(), strategy.AllocationContext{PaymentAmount: amount}, obligations)
	require.NoError(t, err)
	return result
}

func TestWaterfall_DepositBeforeEarlierRent(t *testing.T) {
	s := NewWaterfallAllocationStrategy()
	rent := obligation("rent", 1, jan, 120000)
	deposit := obligation("deposit", 0, jan.AddDate(0, 2, 0), 100000)

	result := allocateWith(t, s, 100000, rent, deposit)

	require.Len(t, result.Splits, 1)
	assert.Equal(t, "deposit", result.Splits[0].ObligationID)
	assert.Equal(t, int64(100000), result.Splits[0].Amount)
	assert.Equal(t, int64(0), result.Remaining)
}

func TestWaterfall_OldestFirstWithinClass(t *testing.T) {
	s := NewWaterfallAllocationStrategy()
	feb := obligation("feb", 1, jan.AddDate(0, 1, 0), 120000)
	january := obligation("jan", 1, jan, 120000)

	result := allocateWith(t, s, 50000, feb, january)

	require.Len(t, result.Splits, 1)
	assert.Equal(t, "jan", result.Splits[0].ObligationID)
	assert.Equal(t, int64(120000), result.Splits[0].OwedBefore)
	assert.Equal(t, int64(70000), result.Splits[0].OwedAfter)
}

func TestWaterfall_SpillsAcrossCharges(t *testing.T) {
	s := NewWaterfallAllocationStrategy()
	result := allocateWith(t, s, 150000,
		obligation("jan", 1, jan, 120000),
		obligation("feb", 1, jan.AddDate(0, 1, 0), 120000),
	)

	require.Len(t, result.Splits, 2)
	assert.Equal(t, int64(120000), result.Splits[0].Amount)
	assert.Equal(t, "feb", result.Splits[1].ObligationID)
	assert.Equal(t, int64(30000), result.Splits[1].Amount)
	assert.Equal(t, int64(150000), result.TotalAllocated)
}

func TestWaterfall_OverpaymentLeavesCredit(t *testing.T) {
	s := NewWaterfallAllocationStrategy()
	result := allocateWith(t, s, 200000, obligation("jan", 1, jan, 120000))

	assert.Equal(t, int64(120000), result.TotalAllocated)
	assert.Equal(t, int64(80000), result.Remaining)
}

func TestWaterfall_SkipsSettledObligations(t *testing.T) {
	s := NewWaterfallAllocationStrategy()
	settled := obligation("settled", 0, jan, 0)
	result := allocateWith(t, s, 1000, settled, obligation("rent", 1, jan, 500))

	require.Len(t, result.Splits, 1)
	assert.Equal(t, "rent", result.Splits[0].ObligationID)
	assert.Equal(t, int64(500), result.Remaining)
}

func TestWaterfall_NoObligations(t *testing.T) {
	result := allocateWith(t, NewWaterfallAllocationStrategy(), 1000)
	assert.Empty(t, result.Splits)
	assert.Equal(t, int64(1000), result.Remaining)
}

func TestWaterfall_DoesNotReorderInput(t *testing.T) {
	s := NewWaterfallAllocationStrategy()
	input := []strategy.Obligation{
		obligation("rent", 1, jan, 100),
		obligation("deposit", 0, jan, 100),
	}
	_, err := s.Allocate(context.Background(), strategy.AllocationContext{PaymentAmount: 50}, input)
	require.NoError(t, err)
	assert.Equal(t, "rent", input[0].ID)
}

func TestWaterfall_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewWaterfallAllocationStrategy().Allocate(ctx, strategy.AllocationContext{PaymentAmount: 1}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFIFO_IgnoresPriorityClass(t *testing.T) {
	s := NewFIFOAllocationStrategy()
	result := allocateWith(t, s, 100000,
		obligation("deposit", 0, jan.AddDate(0, 2, 0), 100000),
		obligation("rent", 1, jan, 120000),
	)

	require.Len(t, result.Splits, 1)
	assert.Equal(t, "rent", result.Splits[0].ObligationID)
	assert.True(t, s.SupportsPartialAllocation())
}
