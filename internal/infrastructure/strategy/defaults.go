package strategy

import (
	"github.com/rentledger/backend/internal/infrastructure/strategy/allocation"
)

// NewRegistryWithDefaults creates a registry with the built-in allocation
// strategies and the waterfall as default
func NewRegistryWithDefaults() (*StrategyRegistry, error) {
	r := NewStrategyRegistry()

	if err := r.RegisterAllocationStrategy(allocation.NewWaterfallAllocationStrategy()); err != nil {
		return nil, err
	}
	if err := r.RegisterAllocationStrategy(allocation.NewFIFOAllocationStrategy()); err != nil {
		return nil, err
	}
	if err := r.SetDefaultAllocationStrategy(allocation.WaterfallName); err != nil {
		return nil, err
	}
	return r, nil
}
