package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/property"
	"github.com/rentledger/backend/internal/infrastructure/config"
	"github.com/rentledger/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var ctx = context.Background()

// newTestDB opens a migrated in-memory SQLite database. A single
// connection keeps every statement on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig(&config.DatabaseConfig{}, nil))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixture holds a landlord, a property with one unit and a tenant
type fixture struct {
	db       *gorm.DB
	property *property.Property
	unit     *property.Unit
	tenant   *property.Tenant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	landlord, err := property.NewLandlord("John Doe", "john@example.com")
	require.NoError(t, err)
	require.NoError(t, NewGormLandlordRepository(db).Save(ctx, landlord))

	prop, err := property.NewProperty(landlord.ID, "Sunset Apartments", "123 Main St")
	require.NoError(t, err)
	require.NoError(t, NewGormPropertyRepository(db).Save(ctx, prop))

	unit, err := property.NewUnit(prop.ID, "101", 120000)
	require.NoError(t, err)
	require.NoError(t, NewGormUnitRepository(db).Save(ctx, unit))

	tenant, err := property.NewTenant("Alice", "alice@example.com", "555-0100")
	require.NoError(t, err)
	require.NoError(t, NewGormTenantRepository(db).Save(ctx, tenant))

	return &fixture{db: db, property: prop, unit: unit, tenant: tenant}
}

func (f *fixture) lease(t *testing.T, start time.Time, rent ledger.Cents) *ledger.Lease {
	t.Helper()
	lease, err := ledger.NewLease(f.tenant.ID, f.unit.ID, start, rent)
	require.NoError(t, err)
	require.NoError(t, NewGormLeaseRepository(f.db).Save(ctx, lease))
	return lease
}

func (f *fixture) charge(t *testing.T, lease ledger.Lease, amount ledger.Cents, chargeType ledger.ChargeType, due time.Time) *ledger.Charge {
	t.Helper()
	c, err := ledger.NewCharge(lease.ID, amount, chargeType, "", due)
	require.NoError(t, err)
	require.NoError(t, NewGormChargeRepository(f.db).Save(ctx, c))
	return c
}

func (f *fixture) payment(t *testing.T, lease ledger.Lease, amount ledger.Cents, received time.Time) *ledger.Payment {
	t.Helper()
	p, err := ledger.NewPayment(lease.ID, amount, ledger.PaymentMethodCash)
	require.NoError(t, err)
	p.DateReceived = received
	require.NoError(t, NewGormPaymentRepository(f.db).Save(ctx, p))
	return p
}

func (f *fixture) allocate(t *testing.T, p *ledger.Payment, c *ledger.Charge, amount ledger.Cents) {
	t.Helper()
	a, err := ledger.NewAllocation(p.ID, c.ID, amount)
	require.NoError(t, err)
	require.NoError(t, NewGormAllocationRepository(f.db).Create(ctx, a))
}
