package property

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/property"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLandlordRepository struct{ mock.Mock }

func (m *MockLandlordRepository) FindFirst(ctx context.Context) (*property.Landlord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Landlord), args.Error(1)
}

func (m *MockLandlordRepository) Save(ctx context.Context, l *property.Landlord) error {
	return m.Called(ctx, l).Error(0)
}

type MockPropertyRepository struct{ mock.Mock }

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Property, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]property.Property), args.Get(1).(int64), args.Error(2)
}

func (m *MockPropertyRepository) ListAll(ctx context.Context) ([]property.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Property), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	return m.Called(ctx, p).Error(0)
}

type MockUnitRepository struct{ mock.Mock }

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]property.Unit, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAll(ctx context.Context) ([]property.Unit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Unit), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, u *property.Unit) error {
	return m.Called(ctx, u).Error(0)
}

type MockTenantRepository struct{ mock.Mock }

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]property.Tenant, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByEmail(ctx context.Context, email string) (*property.Tenant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Tenant, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]property.Tenant), args.Get(1).(int64), args.Error(2)
}

func (m *MockTenantRepository) Save(ctx context.Context, t *property.Tenant) error {
	return m.Called(ctx, t).Error(0)
}

type fixture struct {
	landlords  *MockLandlordRepository
	properties *MockPropertyRepository
	units      *MockUnitRepository
	tenants    *MockTenantRepository
	svc        *Service
}

func newFixture() *fixture {
	f := &fixture{
		landlords:  new(MockLandlordRepository),
		properties: new(MockPropertyRepository),
		units:      new(MockUnitRepository),
		tenants:    new(MockTenantRepository),
	}
	f.svc = NewService(f.landlords, f.properties, f.units, f.tenants, nil)
	return f
}

var ctx = context.Background()

func TestCreateProperty_OwnedByFirstLandlord(t *testing.T) {
	f := newFixture()
	landlord := &property.Landlord{BaseEntity: shared.NewBaseEntity(), Name: "John Doe"}
	f.landlords.On("FindFirst", ctx).Return(landlord, nil)
	f.properties.On("Save", ctx, mock.MatchedBy(func(p *property.Property) bool {
		return p.LandlordID == landlord.ID && p.Name == "Sunset Apartments"
	})).Return(nil)

	resp, err := f.svc.CreateProperty(ctx, CreatePropertyRequest{Name: "Sunset Apartments", Address: "12 Ocean Dr"})
	require.NoError(t, err)
	assert.Equal(t, landlord.ID, resp.LandlordID)
	f.properties.AssertExpectations(t)
}

func TestCreateProperty_NoLandlord(t *testing.T) {
	f := newFixture()
	f.landlords.On("FindFirst", ctx).Return(nil, nil)

	_, err := f.svc.CreateProperty(ctx, CreatePropertyRequest{Name: "Sunset", Address: "12 Ocean Dr"})
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Equal(t, "No landlord account found.", err.Error())
	f.properties.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateUnit(t *testing.T) {
	f := newFixture()
	p := &property.Property{BaseEntity: shared.NewBaseEntity()}
	f.properties.On("FindByID", ctx, p.ID).Return(p, nil)
	f.units.On("Save", ctx, mock.AnythingOfType("*property.Unit")).Return(nil)

	resp, err := f.svc.CreateUnit(ctx, CreateUnitRequest{PropertyID: p.ID, UnitNumber: " 101 ", MonthlyRent: 150000})
	require.NoError(t, err)
	assert.Equal(t, "101", resp.UnitNumber)
	assert.Equal(t, int64(150000), resp.MonthlyRent)
}

func TestCreateUnit_Errors(t *testing.T) {
	t.Run("unknown property", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.properties.On("FindByID", ctx, id).Return(nil, nil)
		_, err := f.svc.CreateUnit(ctx, CreateUnitRequest{PropertyID: id, UnitNumber: "101"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("negative rent", func(t *testing.T) {
		f := newFixture()
		p := &property.Property{BaseEntity: shared.NewBaseEntity()}
		f.properties.On("FindByID", ctx, p.ID).Return(p, nil)
		_, err := f.svc.CreateUnit(ctx, CreateUnitRequest{PropertyID: p.ID, UnitNumber: "101", MonthlyRent: -1})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestCreateTenant_DuplicateEmail(t *testing.T) {
	f := newFixture()
	existing := &property.Tenant{BaseEntity: shared.NewBaseEntity(), Email: "alice@example.com"}
	f.tenants.On("FindByEmail", ctx, "alice@example.com").Return(existing, nil)

	_, err := f.svc.CreateTenant(ctx, CreateTenantRequest{Name: "Alice", Email: "Alice@Example.com"})
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.Equal(t, "A tenant with this email already exists.", err.Error())
	f.tenants.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateTenant(t *testing.T) {
	f := newFixture()
	f.tenants.On("FindByEmail", ctx, "bob@example.com").Return(nil, nil)
	f.tenants.On("Save", ctx, mock.AnythingOfType("*property.Tenant")).Return(nil)

	resp, err := f.svc.CreateTenant(ctx, CreateTenantRequest{Name: "Bob", Email: "bob@example.com", Phone: "555-0101"})
	require.NoError(t, err)
	assert.Equal(t, "Bob", resp.Name)
	assert.Equal(t, "555-0101", resp.Phone)
}

func TestCreateTenant_InvalidEmail(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateTenant(ctx, CreateTenantRequest{Name: "Bob", Email: "not-an-email"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestListUnits(t *testing.T) {
	f := newFixture()
	p := &property.Property{BaseEntity: shared.NewBaseEntity()}
	f.properties.On("FindByID", ctx, p.ID).Return(p, nil)
	f.units.On("FindByProperty", ctx, p.ID).Return([]property.Unit{
		{BaseEntity: shared.NewBaseEntity(), PropertyID: p.ID, UnitNumber: "101"},
		{BaseEntity: shared.NewBaseEntity(), PropertyID: p.ID, UnitNumber: "102"},
	}, nil)

	units, err := f.svc.ListUnits(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "102", units[1].UnitNumber)
}

func TestListTenants(t *testing.T) {
	f := newFixture()
	f.tenants.On("FindAll", ctx, shared.Filter{Page: 2, PageSize: 100, Search: "ali"}).
		Return([]property.Tenant{{BaseEntity: shared.NewBaseEntity(), Name: "Alice"}}, int64(101), nil)

	page, err := f.svc.ListTenants(ctx, shared.Filter{Page: 2, PageSize: 500, Search: "ali"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 1)
}
