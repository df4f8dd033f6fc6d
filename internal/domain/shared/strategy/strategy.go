package strategy

// Strategy is a named, pluggable policy looked up through a registry
type Strategy interface {
	// Name is the registry key, also accepted in configuration
	Name() string
	// Description is a one-line summary for logs and listings
	Description() string
}

// BaseStrategy implements Strategy for embedding
type BaseStrategy struct {
	name        string
	description string
}

// NewBaseStrategy creates a BaseStrategy
func NewBaseStrategy(name, description string) BaseStrategy {
	return BaseStrategy{name: name, description: description}
}

// Name returns the strategy name
func (s BaseStrategy) Name() string {
	return s.name
}

// Description returns the strategy description
func (s BaseStrategy) Description() string {
	return s.description
}
