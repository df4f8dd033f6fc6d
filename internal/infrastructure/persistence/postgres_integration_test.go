//go:build integration

package persistence

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	appledger "github.com/rentledger/backend/internal/application/ledger"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/property"
	"github.com/rentledger/backend/internal/infrastructure/config"
	"github.com/rentledger/backend/internal/infrastructure/migration"
	"github.com/rentledger/backend/internal/infrastructure/strategy/allocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newPostgresDB starts PostgreSQL in a container and applies the SQL migrations
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("rentledger_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := OpenDatabase(postgres.Open(dsn), &config.DatabaseConfig{MaxOpenConns: 20, MaxIdleConns: 5}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	m, err := migration.New(sqlDB, filepath.Join("..", "..", "..", "migrations"), nil)
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return db.DB
}

func seedLease(t *testing.T, db *gorm.DB, rent ledger.Cents) *ledger.Lease {
	t.Helper()
	landlord, err := property.NewLandlord("John Doe", "john@example.com")
	require.NoError(t, err)
	require.NoError(t, NewGormLandlordRepository(db).Save(ctx, landlord))
	prop, err := property.NewProperty(landlord.ID, "Sunset Apartments", "123 Main St")
	require.NoError(t, err)
	require.NoError(t, NewGormPropertyRepository(db).Save(ctx, prop))
	unit, err := property.NewUnit(prop.ID, "101", rent.Int64())
	require.NoError(t, err)
	require.NoError(t, NewGormUnitRepository(db).Save(ctx, unit))
	tenant, err := property.NewTenant("Bob", "bob@example.com", "")
	require.NoError(t, err)
	require.NoError(t, NewGormTenantRepository(db).Save(ctx, tenant))

	lease, err := ledger.NewLease(tenant.ID, unit.ID, date(2026, 1, 1), rent)
	require.NoError(t, err)
	require.NoError(t, NewGormLeaseRepository(db).Save(ctx, lease))
	return lease
}

func TestPostgres_ConcurrentPaymentsNeverOverAllocate(t *testing.T) {
	db := newPostgresDB(t)
	lease := seedLease(t, db, 120000)
	rent, err := ledger.NewCharge(lease.ID, 120000, ledger.ChargeTypeRent, "Rent - January 2026", date(2026, 1, 1))
	require.NoError(t, err)
	require.NoError(t, NewGormChargeRepository(db).Save(ctx, rent))

	svc := appledger.NewAllocationService(NewGormTransactionScope(db), NewGormPaymentRepository(db),
		allocation.NewWaterfallAllocationStrategy(), nil, nil)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordPayment(ctx, appledger.RecordPaymentRequest{
				LeaseID: lease.ID, Amount: 20000, Method: ledger.PaymentMethodCash,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	allocated, err := NewGormAllocationRepository(db).SumByCharge(ctx, rent.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.Cents(120000), allocated)

	payments, err := NewGormPaymentRepository(db).FindByLease(ctx, lease.ID)
	require.NoError(t, err)
	require.Len(t, payments, workers)
	var credit ledger.Cents
	for i := range payments {
		assert.GreaterOrEqual(t, payments[i].Unallocated(), ledger.Cents(0))
		credit += payments[i].Unallocated()
	}
	assert.Equal(t, ledger.Cents(80000), credit)
}

func TestPostgres_ConcurrentRentRunsIssueOneCharge(t *testing.T) {
	db := newPostgresDB(t)
	lease := seedLease(t, db, 95000)
	gen := appledger.NewRentGenerator(NewGormTransactionScope(db), NewGormLeaseRepository(db), nil, nil, nil)

	const runs = 5
	var wg sync.WaitGroup
	created := make(chan int, runs)
	for range runs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := gen.GenerateMonthlyRent(ctx, date(2026, 10, 14))
			if assert.NoError(t, err) {
				created <- result.CreatedCount
			}
		}()
	}
	wg.Wait()
	close(created)

	total := 0
	for n := range created {
		total += n
	}
	assert.Equal(t, 1, total)

	charges, err := NewGormChargeRepository(db).FindByLease(ctx, lease.ID)
	require.NoError(t, err)
	require.Len(t, charges, 1)
	assert.Equal(t, "2026-10", charges[0].BillingPeriod)
	assert.Equal(t, "Rent - October 2026", charges[0].Description)
}

func TestPostgres_SchemaConstraints(t *testing.T) {
	db := newPostgresDB(t)
	lease := seedLease(t, db, 120000)

	second, err := ledger.NewLease(lease.TenantID, lease.UnitID, date(2026, 2, 1), 90000)
	require.NoError(t, err)
	assert.ErrorIs(t, NewGormLeaseRepository(db).Save(ctx, second), ledger.ErrUnitOccupied)

	err = db.Exec(`INSERT INTO charges (id, lease_id, amount, type, due_date) VALUES (gen_random_uuid(), ?, 0, 'RENT', NOW())`, lease.ID).Error
	assert.Error(t, err, "zero amount violates chk_charges_amount")

	err = db.Exec(`INSERT INTO charges (id, lease_id, amount, type, due_date) VALUES (gen_random_uuid(), ?, 100, 'PARKING', NOW())`, lease.ID).Error
	assert.Error(t, err, "unknown type violates chk_charges_type")
}
