package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/property"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindActiveByUnit(ctx context.Context, unitID uuid.UUID) (*ledger.Lease, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindActive(ctx context.Context) ([]ledger.Lease, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Lease), args.Error(1)
}

func (m *MockLeaseRepository) ListAll(ctx context.Context) ([]ledger.Lease, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindAll(ctx context.Context, filter ledger.LeaseFilter) ([]ledger.Lease, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]ledger.Lease), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeaseRepository) Save(ctx context.Context, lease *ledger.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

type MockChargeRepository struct {
	mock.Mock
}

func (m *MockChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Charge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Charge), args.Error(1)
}

func (m *MockChargeRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Charge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Charge), args.Error(1)
}

func (m *MockChargeRepository) FindByLease(ctx context.Context, leaseID uuid.UUID) ([]ledger.Charge, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Charge), args.Error(1)
}

func (m *MockChargeRepository) FindNonVoidedByLeaseForUpdate(ctx context.Context, leaseID uuid.UUID) ([]ledger.Charge, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Charge), args.Error(1)
}

func (m *MockChargeRepository) FindNonVoided(ctx context.Context) ([]ledger.Charge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Charge), args.Error(1)
}

func (m *MockChargeRepository) ExistsRentDueBetween(ctx context.Context, leaseID uuid.UUID, from, to time.Time) (bool, error) {
	args := m.Called(ctx, leaseID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockChargeRepository) Save(ctx context.Context, charge *ledger.Charge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByLease(ctx context.Context, leaseID uuid.UUID) ([]ledger.Payment, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumReceivedBetween(ctx context.Context, from, to time.Time) (ledger.Cents, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(ledger.Cents), args.Error(1)
}

func (m *MockPaymentRepository) SumByLease(ctx context.Context, excludeRefunded bool) (map[uuid.UUID]ledger.Cents, error) {
	args := m.Called(ctx, excludeRefunded)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]ledger.Cents), args.Error(1)
}

func (m *MockPaymentRepository) LatestReceivedByLease(ctx context.Context, leaseIDs []uuid.UUID) (map[uuid.UUID]time.Time, error) {
	args := m.Called(ctx, leaseIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]time.Time), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *ledger.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

type MockAllocationRepository struct {
	mock.Mock
}

func (m *MockAllocationRepository) Create(ctx context.Context, allocation *ledger.PaymentAllocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) SumByPayment(ctx context.Context, paymentID uuid.UUID) (ledger.Cents, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(ledger.Cents), args.Error(1)
}

func (m *MockAllocationRepository) SumByCharge(ctx context.Context, chargeID uuid.UUID) (ledger.Cents, error) {
	args := m.Called(ctx, chargeID)
	return args.Get(0).(ledger.Cents), args.Error(1)
}

func (m *MockAllocationRepository) DeleteByCharge(ctx context.Context, chargeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, chargeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAllocationRepository) DeleteByPayment(ctx context.Context, paymentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

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

func (m *MockTenantRepository) Save(ctx context.Context, tenant *property.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

type MockUnitRepository struct {
	mock.Mock
}

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

func (m *MockUnitRepository) Save(ctx context.Context, unit *property.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

type MockPropertyRepository struct {
	mock.Mock
}

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
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockRunLocker struct {
	mock.Mock
}

func (m *MockRunLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context), bool, error) {
	args := m.Called(ctx, key, ttl)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(func(context.Context)), args.Bool(1), args.Error(2)
}

// repoSet bundles the mocks behind a NoOpTransactionScope
type repoSet struct {
	leases      *MockLeaseRepository
	charges     *MockChargeRepository
	payments    *MockPaymentRepository
	allocations *MockAllocationRepository
	tenants     *MockTenantRepository
	units       *MockUnitRepository
}

func newRepoSet() *repoSet {
	return &repoSet{
		leases:      new(MockLeaseRepository),
		charges:     new(MockChargeRepository),
		payments:    new(MockPaymentRepository),
		allocations: new(MockAllocationRepository),
		tenants:     new(MockTenantRepository),
		units:       new(MockUnitRepository),
	}
}

func (r *repoSet) scope() *NoOpTransactionScope {
	return NewNoOpTransactionScope(r.leases, r.charges, r.payments, r.allocations, r.tenants, r.units)
}

func (r *repoSet) assertExpectations(t mock.TestingT) {
	r.leases.AssertExpectations(t)
	r.charges.AssertExpectations(t)
	r.payments.AssertExpectations(t)
	r.allocations.AssertExpectations(t)
	r.tenants.AssertExpectations(t)
	r.units.AssertExpectations(t)
}
