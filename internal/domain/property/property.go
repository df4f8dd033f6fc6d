package property

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
)

// Property is a building or site made up of rentable units
type Property struct {
	shared.BaseEntity
	LandlordID uuid.UUID
	Name       string
	Address    string
}

// NewProperty creates a property owned by the landlord
func NewProperty(landlordID uuid.UUID, name, address string) (*Property, error) {
	if landlordID == uuid.Nil {
		return nil, shared.NewValidationError("No landlord account found.")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Name is required")
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, shared.NewValidationError("Address is required")
	}
	return &Property{
		BaseEntity: shared.NewBaseEntity(),
		LandlordID: landlordID,
		Name:       name,
		Address:    address,
	}, nil
}
