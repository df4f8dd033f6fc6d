package ledger

import (
	"context"

	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/property"
)

// TransactionScope runs a unit of work against a single store transaction.
// Every ledger mutation goes through Execute; reads that feed the mutation
// must use the repositories handed to fn.
type TransactionScope interface {
	// Execute runs fn inside a transaction. A non-nil error from fn rolls
	// the transaction back, otherwise it commits.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories bound to one transaction
type TransactionalRepositories interface {
	Leases() ledger.LeaseRepository
	Charges() ledger.ChargeRepository
	Payments() ledger.PaymentRepository
	Allocations() ledger.AllocationRepository
	Tenants() property.TenantRepository
	Units() property.UnitRepository
}

// NoOpTransactionScope hands fixed repositories to fn without a transaction.
// Used by tests and tools that run against a single connection.
type NoOpTransactionScope struct {
	leases      ledger.LeaseRepository
	charges     ledger.ChargeRepository
	payments    ledger.PaymentRepository
	allocations ledger.AllocationRepository
	tenants     property.TenantRepository
	units       property.UnitRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	leases ledger.LeaseRepository,
	charges ledger.ChargeRepository,
	payments ledger.PaymentRepository,
	allocations ledger.AllocationRepository,
	tenants property.TenantRepository,
	units property.UnitRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		leases:      leases,
		charges:     charges,
		payments:    payments,
		allocations: allocations,
		tenants:     tenants,
		units:       units,
	}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Leases() ledger.LeaseRepository           { return s.leases }
func (s *NoOpTransactionScope) Charges() ledger.ChargeRepository         { return s.charges }
func (s *NoOpTransactionScope) Payments() ledger.PaymentRepository       { return s.payments }
func (s *NoOpTransactionScope) Allocations() ledger.AllocationRepository { return s.allocations }
func (s *NoOpTransactionScope) Tenants() property.TenantRepository       { return s.tenants }
func (s *NoOpTransactionScope) Units() property.UnitRepository           { return s.units }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
