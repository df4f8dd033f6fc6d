package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/shared"
)

// LandlordRepository persists landlords
type LandlordRepository interface {
	FindFirst(ctx context.Context) (*Landlord, error)
	Save(ctx context.Context, landlord *Landlord) error
}

// PropertyRepository persists properties
type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Property, int64, error)
	ListAll(ctx context.Context) ([]Property, error)
	Save(ctx context.Context, property *Property) error
}

// UnitRepository persists units
type UnitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]Unit, error)
	FindAll(ctx context.Context) ([]Unit, error)
	Save(ctx context.Context, unit *Unit) error
}

// TenantRepository persists tenants
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Tenant, error)
	FindByEmail(ctx context.Context, email string) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, int64, error)
	// Save returns ErrDuplicateTenantEmail when the email is taken
	Save(ctx context.Context, tenant *Tenant) error
}
