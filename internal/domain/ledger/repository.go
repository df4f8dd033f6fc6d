package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
)

// Repositories return (nil, nil) when a single record is not found.
// ...ForUpdate methods lock the returned rows until the surrounding
// transaction ends.

// LeaseFilter narrows lease listings
type LeaseFilter struct {
	shared.Filter
	ActiveOnly bool
	TenantID   *uuid.UUID
	UnitID     *uuid.UUID
}

// LeaseRepository persists leases
type LeaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Lease, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Lease, error)
	FindActiveByUnit(ctx context.Context, unitID uuid.UUID) (*Lease, error)
	FindActive(ctx context.Context) ([]Lease, error)
	// ListAll returns every lease, active or not
	ListAll(ctx context.Context) ([]Lease, error)
	FindAll(ctx context.Context, filter LeaseFilter) ([]Lease, int64, error)
	Save(ctx context.Context, lease *Lease) error
}

// ChargeRepository persists charges. Returned charges carry their allocations.
type ChargeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Charge, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Charge, error)
	FindByLease(ctx context.Context, leaseID uuid.UUID) ([]Charge, error)
	FindNonVoidedByLeaseForUpdate(ctx context.Context, leaseID uuid.UUID) ([]Charge, error)
	FindNonVoided(ctx context.Context) ([]Charge, error)
	ExistsRentDueBetween(ctx context.Context, leaseID uuid.UUID, from, to time.Time) (bool, error)
	Save(ctx context.Context, charge *Charge) error
}

// PaymentRepository persists payments. Returned payments carry their allocations.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByLease(ctx context.Context, leaseID uuid.UUID) ([]Payment, error)
	SumReceivedBetween(ctx context.Context, from, to time.Time) (Cents, error)
	SumByLease(ctx context.Context, excludeRefunded bool) (map[uuid.UUID]Cents, error)
	LatestReceivedByLease(ctx context.Context, leaseIDs []uuid.UUID) (map[uuid.UUID]time.Time, error)
	Save(ctx context.Context, payment *Payment) error
}

// AllocationRepository persists allocation rows
type AllocationRepository interface {
	Create(ctx context.Context, allocation *PaymentAllocation) error
	SumByPayment(ctx context.Context, paymentID uuid.UUID) (Cents, error)
	SumByCharge(ctx context.Context, chargeID uuid.UUID) (Cents, error)
	DeleteByCharge(ctx context.Context, chargeID uuid.UUID) (int64, error)
	DeleteByPayment(ctx context.Context, paymentID uuid.UUID) (int64, error)
}
