package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
)

// Lease binds a tenant to a unit. Leases are never deleted; move-out
// deactivates them and records the end date.
type Lease struct {
	shared.BaseEntity
	TenantID   uuid.UUID
	UnitID     uuid.UUID
	StartDate  time.Time
	EndDate    *time.Time
	RentAmount Cents
	IsActive   bool
}

// NewLease creates an active lease
func NewLease(tenantID, unitID uuid.UUID, startDate time.Time, rentAmount Cents) (*Lease, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("Tenant is required")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewValidationError("Unit is required")
	}
	if startDate.IsZero() {
		return nil, shared.NewValidationError("Start date is required")
	}
	if !rentAmount.IsPositive() {
		return nil, shared.NewValidationError("Rent amount must be positive")
	}

	return &Lease{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		UnitID:     unitID,
		StartDate:  startDate.UTC(),
		RentAmount: rentAmount,
		IsActive:   true,
	}, nil
}

// End deactivates the lease as of the move-out date
func (l *Lease) End(moveOutDate time.Time) error {
	if !l.IsActive {
		return shared.NewInvalidStateError("Lease has already ended")
	}
	if moveOutDate.IsZero() {
		return shared.NewValidationError("Move-out date is required")
	}
	if moveOutDate.Before(l.StartDate) {
		return shared.NewValidationError("Move-out date cannot be before the lease start date")
	}

	end := moveOutDate.UTC()
	l.EndDate = &end
	l.IsActive = false
	l.Touch()
	return nil
}
