package property

import (
	"strings"

	"github.com/rentledger/backend/internal/domain/shared"
)

// ErrDuplicateTenantEmail is returned when a tenant email is already registered
var ErrDuplicateTenantEmail = shared.NewConflictError("A tenant with this email already exists.")

// Tenant is a person who can hold leases
type Tenant struct {
	shared.BaseEntity
	Name  string
	Email string
	Phone string
}

// NewTenant creates a tenant. Email is stored lower-cased.
func NewTenant(name, email, phone string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Name is required")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
		Phone:      strings.TrimSpace(phone),
	}, nil
}
