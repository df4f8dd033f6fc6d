package property

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
)

// Unit is a rentable space inside a property. MonthlyRent is the list
// price in cents; the lease carries the agreed rent.
type Unit struct {
	shared.BaseEntity
	PropertyID  uuid.UUID
	UnitNumber  string
	MonthlyRent int64
}

// NewUnit creates a unit
func NewUnit(propertyID uuid.UUID, unitNumber string, monthlyRent int64) (*Unit, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewValidationError("Property is required")
	}
	unitNumber = strings.TrimSpace(unitNumber)
	if unitNumber == "" {
		return nil, shared.NewValidationError("Unit Number is required")
	}
	if monthlyRent < 0 {
		return nil, shared.NewValidationError("Monthly rent cannot be negative")
	}
	return &Unit{
		BaseEntity:  shared.NewBaseEntity(),
		PropertyID:  propertyID,
		UnitNumber:  unitNumber,
		MonthlyRent: monthlyRent,
	}, nil
}
