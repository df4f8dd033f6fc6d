package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/property"
	"github.com/rentledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service manages the reference data the ledger reads: landlords,
// properties, units and tenants
type Service struct {
	landlords  property.LandlordRepository
	properties property.PropertyRepository
	units      property.UnitRepository
	tenants    property.TenantRepository
	logger     *zap.Logger
}

// NewService creates a new property Service
func NewService(
	landlords property.LandlordRepository,
	properties property.PropertyRepository,
	units property.UnitRepository,
	tenants property.TenantRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		landlords:  landlords,
		properties: properties,
		units:      units,
		tenants:    tenants,
		logger:     logger,
	}
}

// CreateLandlord registers a landlord account
func (s *Service) CreateLandlord(ctx context.Context, req CreateLandlordRequest) (*LandlordResponse, error) {
	landlord, err := property.NewLandlord(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.landlords.Save(ctx, landlord); err != nil {
		return nil, err
	}
	s.logger.Info("Landlord created", zap.String("landlord_id", landlord.ID.String()))
	resp := toLandlordResponse(landlord)
	return &resp, nil
}

// CreateProperty adds a property owned by the first landlord account
func (s *Service) CreateProperty(ctx context.Context, req CreatePropertyRequest) (*PropertyResponse, error) {
	landlord, err := s.landlords.FindFirst(ctx)
	if err != nil {
		return nil, err
	}
	landlordID := uuid.Nil
	if landlord != nil {
		landlordID = landlord.ID
	}

	p, err := property.NewProperty(landlordID, req.Name, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.properties.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Property created",
		zap.String("property_id", p.ID.String()),
		zap.String("name", p.Name),
	)
	resp := toPropertyResponse(p)
	return &resp, nil
}

// GetProperty returns one property
func (s *Service) GetProperty(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	p, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewNotFoundError("Property")
	}
	resp := toPropertyResponse(p)
	return &resp, nil
}

// ListProperties returns a page of properties
func (s *Service) ListProperties(ctx context.Context, filter shared.Filter) (*shared.Paginated[PropertyResponse], error) {
	filter = filter.Normalize()
	props, total, err := s.properties.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]PropertyResponse, 0, len(props))
	for i := range props {
		items = append(items, toPropertyResponse(&props[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// CreateUnit adds a unit to an existing property
func (s *Service) CreateUnit(ctx context.Context, req CreateUnitRequest) (*UnitResponse, error) {
	p, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewNotFoundError("Property")
	}

	unit, err := property.NewUnit(p.ID, req.UnitNumber, req.MonthlyRent)
	if err != nil {
		return nil, err
	}
	if err := s.units.Save(ctx, unit); err != nil {
		return nil, err
	}
	s.logger.Info("Unit created",
		zap.String("unit_id", unit.ID.String()),
		zap.String("property_id", p.ID.String()),
		zap.String("unit_number", unit.UnitNumber),
	)
	resp := toUnitResponse(unit)
	return &resp, nil
}

// ListUnits returns the units of a property
func (s *Service) ListUnits(ctx context.Context, propertyID uuid.UUID) ([]UnitResponse, error) {
	p, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewNotFoundError("Property")
	}

	units, err := s.units.FindByProperty(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	items := make([]UnitResponse, 0, len(units))
	for i := range units {
		items = append(items, toUnitResponse(&units[i]))
	}
	return items, nil
}

// CreateTenant registers a tenant. Emails are unique.
func (s *Service) CreateTenant(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	tenant, err := property.NewTenant(req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	existing, err := s.tenants.FindByEmail(ctx, tenant.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, property.ErrDuplicateTenantEmail
	}

	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}
	s.logger.Info("Tenant created", zap.String("tenant_id", tenant.ID.String()))
	resp := toTenantResponse(tenant)
	return &resp, nil
}

// GetTenant returns one tenant
func (s *Service) GetTenant(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	t, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, shared.NewNotFoundError("Tenant")
	}
	resp := toTenantResponse(t)
	return &resp, nil
}

// ListTenants returns a page of tenants. Search matches name or email.
func (s *Service) ListTenants(ctx context.Context, filter shared.Filter) (*shared.Paginated[TenantResponse], error) {
	filter = filter.Normalize()
	tenants, total, err := s.tenants.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		items = append(items, toTenantResponse(&tenants[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
