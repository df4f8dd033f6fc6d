package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/property"
)

// CreateLandlordRequest is the input of Service.CreateLandlord
type CreateLandlordRequest struct {
	Name  string
	Email string
}

// CreatePropertyRequest is the input of Service.CreateProperty
type CreatePropertyRequest struct {
	Name    string
	Address string
}

// CreateUnitRequest is the input of Service.CreateUnit
type CreateUnitRequest struct {
	PropertyID  uuid.UUID
	UnitNumber  string
	MonthlyRent int64
}

// CreateTenantRequest is the input of Service.CreateTenant
type CreateTenantRequest struct {
	Name  string
	Email string
	Phone string
}

// LandlordResponse describes a landlord
type LandlordResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// PropertyResponse describes a property
type PropertyResponse struct {
	ID         uuid.UUID `json:"id"`
	LandlordID uuid.UUID `json:"landlord_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"created_at"`
}

// UnitResponse describes a unit
type UnitResponse struct {
	ID          uuid.UUID `json:"id"`
	PropertyID  uuid.UUID `json:"property_id"`
	UnitNumber  string    `json:"unit_number"`
	MonthlyRent int64     `json:"monthly_rent"`
	CreatedAt   time.Time `json:"created_at"`
}

// TenantResponse describes a tenant
type TenantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toLandlordResponse(l *property.Landlord) LandlordResponse {
	return LandlordResponse{ID: l.ID, Name: l.Name, Email: l.Email, CreatedAt: l.CreatedAt}
}

func toPropertyResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID:         p.ID,
		LandlordID: p.LandlordID,
		Name:       p.Name,
		Address:    p.Address,
		CreatedAt:  p.CreatedAt,
	}
}

func toUnitResponse(u *property.Unit) UnitResponse {
	return UnitResponse{
		ID:          u.ID,
		PropertyID:  u.PropertyID,
		UnitNumber:  u.UnitNumber,
		MonthlyRent: u.MonthlyRent,
		CreatedAt:   u.CreatedAt,
	}
}

func toTenantResponse(t *property.Tenant) TenantResponse {
	return TenantResponse{ID: t.ID, Name: t.Name, Email: t.Email, Phone: t.Phone, CreatedAt: t.CreatedAt}
}
