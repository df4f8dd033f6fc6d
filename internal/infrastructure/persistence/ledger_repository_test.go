package persistence

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/property"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaseRepository_SaveAndFind(t *testing.T) {
	f := newFixture(t)
	repo := NewGormLeaseRepository(f.db)
	lease := f.lease(t, date(2026, 1, 1), 120000)

	found, err := repo.FindByID(ctx, lease.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, lease.TenantID, found.TenantID)
	assert.Equal(t, ledger.Cents(120000), found.RentAmount)
	assert.True(t, found.StartDate.Equal(date(2026, 1, 1)))
	assert.True(t, found.IsActive)
	assert.Nil(t, found.EndDate)

	locked, err := repo.FindByIDForUpdate(ctx, lease.ID)
	require.NoError(t, err)
	assert.Equal(t, lease.ID, locked.ID)

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, found.End(date(2026, 6, 30)))
	require.NoError(t, repo.Save(ctx, found))

	ended, err := repo.FindByID(ctx, lease.ID)
	require.NoError(t, err)
	assert.False(t, ended.IsActive)
	require.NotNil(t, ended.EndDate)
	assert.True(t, ended.EndDate.Equal(date(2026, 6, 30)))
}

func TestLeaseRepository_OneActiveLeasePerUnit(t *testing.T) {
	f := newFixture(t)
	repo := NewGormLeaseRepository(f.db)
	first := f.lease(t, date(2026, 1, 1), 120000)

	second, err := ledger.NewLease(f.tenant.ID, f.unit.ID, date(2026, 2, 1), 90000)
	require.NoError(t, err)
	err = repo.Save(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ledger.ErrUnitOccupied))
	assert.True(t, errors.Is(err, shared.ErrConflict))

	active, err := repo.FindActiveByUnit(ctx, f.unit.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, first.ID, active.ID)

	// Once the first lease ends the unit can be let again
	require.NoError(t, first.End(date(2026, 1, 31)))
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	activeLeases, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, activeLeases, 1)
	assert.Equal(t, second.ID, activeLeases[0].ID)
}

func TestLeaseRepository_FindAll(t *testing.T) {
	f := newFixture(t)
	repo := NewGormLeaseRepository(f.db)
	old := f.lease(t, date(2025, 1, 1), 100000)
	require.NoError(t, old.End(date(2025, 12, 31)))
	require.NoError(t, repo.Save(ctx, old))
	current := f.lease(t, date(2026, 1, 1), 120000)

	leases, total, err := repo.FindAll(ctx, ledger.LeaseFilter{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, leases, 2)
	assert.Equal(t, current.ID, leases[0].ID, "newest start date first")

	leases, total, err = repo.FindAll(ctx, ledger.LeaseFilter{Filter: shared.DefaultFilter(), ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, current.ID, leases[0].ID)

	otherTenant := uuid.New()
	_, total, err = repo.FindAll(ctx, ledger.LeaseFilter{Filter: shared.DefaultFilter(), TenantID: &otherTenant})
	require.NoError(t, err)
	assert.Zero(t, total)

	leases, total, err = repo.FindAll(ctx, ledger.LeaseFilter{Filter: shared.Filter{Page: 2, PageSize: 1}, UnitID: &f.unit.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, leases, 1)
	assert.Equal(t, old.ID, leases[0].ID)
}

func TestChargeRepository_LoadsAllocations(t *testing.T) {
	f := newFixture(t)
	lease := f.lease(t, date(2026, 1, 1), 120000)
	rent := f.charge(t, *lease, 120000, ledger.ChargeTypeRent, date(2026, 1, 1))
	p1 := f.payment(t, *lease, 50000, date(2026, 1, 3))
	p2 := f.payment(t, *lease, 30000, date(2026, 1, 5))
	f.allocate(t, p1, rent, 50000)
	f.allocate(t, p2, rent, 30000)

	repo := NewGormChargeRepository(f.db)
	got, err := repo.FindByID(ctx, rent.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Allocations, 2)
	assert.Equal(t, ledger.Cents(80000), got.Allocated())
	assert.Equal(t, ledger.Cents(40000), got.Remaining())
	assert.Empty(t, got.BillingPeriod)

	locked, err := repo.FindByIDForUpdate(ctx, rent.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.Cents(40000), locked.Remaining())

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestChargeRepository_NonVoidedQueries(t *testing.T) {
	f := newFixture(t)
	lease := f.lease(t, date(2026, 1, 1), 120000)
	feb := f.charge(t, *lease, 120000, ledger.ChargeTypeRent, date(2026, 2, 1))
	jan := f.charge(t, *lease, 120000, ledger.ChargeTypeRent, date(2026, 1, 1))
	water := f.charge(t, *lease, 2500, ledger.ChargeTypeWater, date(2026, 1, 15))

	repo := NewGormChargeRepository(f.db)
	water.Void()
	require.NoError(t, repo.Save(ctx, water))

	all, err := repo.FindByLease(ctx, lease.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{jan.ID, water.ID, feb.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})
	assert.True(t, all[1].IsVoided)

	live, err := repo.FindNonVoidedByLeaseForUpdate(ctx, lease.ID)
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, jan.ID, live[0].ID)

	portfolio, err := repo.FindNonVoided(ctx)
	require.NoError(t, err)
	assert.Len(t, portfolio, 2)
}

func TestChargeRepository_BillingPeriodUnique(t *testing.T) {
	f := newFixture(t)
	lease := f.lease(t, date(2026, 1, 1), 120000)
	repo := NewGormChargeRepository(f.db)

	oct, err := ledger.NewCharge(lease.ID, 120000, ledger.ChargeTypeRent, "Rent - October 2026", date(2026, 10, 1))
	require.NoError(t, err)
	oct.BillingPeriod = "2026-10"
	require.NoError(t, repo.Save(ctx, oct))

	again, err := ledger.NewCharge(lease.ID, 120000, ledger.ChargeTypeRent, "Rent - October 2026", date(2026, 10, 1))
	require.NoError(t, err)
	again.BillingPeriod = "2026-10"
	err = repo.Save(ctx, again)
	assert.True(t, errors.Is(err, ledger.ErrDuplicateBillingPeriod))

	// Charges without a billing period never collide
	f.charge(t, *lease, 5000, ledger.ChargeTypeLateFee, date(2026, 10, 5))
	f.charge(t, *lease, 5000, ledger.ChargeTypeLateFee, date(2026, 10, 6))

	got, err := repo.FindByID(ctx, oct.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-10", got.BillingPeriod)
}

func TestChargeRepository_ExistsRentDueBetween(t *testing.T) {
	f := newFixture(t)
	lease := f.lease(t, date(2026, 1, 1), 120000)
	repo := NewGormChargeRepository(f.db)
	from, to := date(2026, 10, 1), date(2026, 11, 1)

	exists, err := repo.ExistsRentDueBetween(ctx, lease.ID, from, to)
	require.NoError(t, err)
	assert.False(t, exists)

	f.charge(t, *lease, 5000, ledger.ChargeTypeLateFee, date(2026, 10, 10))
	f.charge(t, *lease, 120000, ledger.ChargeTypeRent, date(2026, 11, 1))
	exists, err = repo.ExistsRentDueBetween(ctx, lease.ID, from, to)
	require.NoError(t, err)
	assert.False(t, exists, "late fees and next month's rent do not count")

	rent := f.charge(t, *lease, 120000, ledger.ChargeTypeRent, date(2026, 10, 1).Add(12*time.Hour))
	rent.Void()
	require.NoError(t, repo.Save(ctx, rent))
	exists, err = repo.ExistsRentDueBetween(ctx, lease.ID, from, to)
	require.NoError(t, err)
	assert.True(t, exists, "voided rent still occupies the month")
}

func TestPaymentRepository_Aggregates(t *testing.T) {
	f := newFixture(t)
	lease := f.lease(t, date(2026, 1, 1), 120000)
	repo := NewGormPaymentRepository(f.db)

	f.payment(t, *lease, 80000, date(2026, 9, 28))
	f.payment(t, *lease, 40000, date(2026, 10, 2))
	refunded := f.payment(t, *lease, 25000, date(2026, 10, 9))
	refunded.Refund()
	require.NoError(t, repo.Save(ctx, refunded))

	monthly, err := repo.SumReceivedBetween(ctx, date(2026, 10, 1), date(2026, 11, 1))
	require.NoError(t, err)
	assert.Equal(t, ledger.Cents(65000), monthly, "gross cash includes refunded payments")

	none, err := repo.SumReceivedBetween(ctx, date(2027, 1, 1), date(2027, 2, 1))
	require.NoError(t, err)
	assert.Zero(t, none)

	gross, err := repo.SumByLease(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, ledger.Cents(145000), gross[lease.ID])

	net, err := repo.SumByLease(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, ledger.Cents(120000), net[lease.ID])

	latest, err := repo.LatestReceivedByLease(ctx, []uuid.UUID{lease.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.True(t, latest[lease.ID].Equal(date(2026, 10, 2)), "refunded payments are not the last payment")

	empty, err := repo.LatestReceivedByLease(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	payments, err := repo.FindByLease(ctx, lease.ID)
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.True(t, payments[0].DateReceived.Equal(date(2026, 9, 28)))
	assert.True(t, payments[2].IsRefunded)
}

func TestAllocationRepository_SumAndDelete(t *testing.T) {
	f := newFixture(t)
	lease := f.lease(t, date(2026, 1, 1), 120000)
	rent := f.charge(t, *lease, 120000, ledger.ChargeTypeRent, date(2026, 1, 1))
	fee := f.charge(t, *lease, 5000, ledger.ChargeTypeLateFee, date(2026, 1, 10))
	p1 := f.payment(t, *lease, 100000, date(2026, 1, 2))
	p2 := f.payment(t, *lease, 30000, date(2026, 1, 12))
	f.allocate(t, p1, rent, 100000)
	f.allocate(t, p2, rent, 20000)
	f.allocate(t, p2, fee, 5000)

	repo := NewGormAllocationRepository(f.db)
	byCharge, err := repo.SumByCharge(ctx, rent.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.Cents(120000), byCharge)

	byPayment, err := repo.SumByPayment(ctx, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.Cents(25000), byPayment)

	removed, err := repo.DeleteByCharge(ctx, rent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	byPayment, err = repo.SumByPayment(ctx, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.Cents(5000), byPayment)

	removed, err = repo.DeleteByPayment(ctx, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	untouched, err := repo.SumByCharge(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, untouched)
}

func TestTenantRepository(t *testing.T) {
	f := newFixture(t)
	repo := NewGormTenantRepository(f.db)

	dup, err := property.NewTenant("Alice Again", "ALICE@example.com", "")
	require.NoError(t, err)
	err = repo.Save(ctx, dup)
	assert.True(t, errors.Is(err, property.ErrDuplicateTenantEmail))

	bob, err := property.NewTenant("Bob", "bob@example.com", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, bob))

	byEmail, err := repo.FindByEmail(ctx, " Bob@Example.com ")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, bob.ID, byEmail.ID)

	byIDs, err := repo.FindByIDs(ctx, []uuid.UUID{bob.ID, f.tenant.ID})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)

	none, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	found, total, err := repo.FindAll(ctx, shared.Filter{Search: "BOB"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Bob", found[0].Name)

	found, total, err = repo.FindAll(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Alice", found[0].Name)
}

func TestPropertyAndUnitRepositories(t *testing.T) {
	f := newFixture(t)
	properties := NewGormPropertyRepository(f.db)
	units := NewGormUnitRepository(f.db)

	dupUnit, err := property.NewUnit(f.property.ID, "101", 90000)
	require.NoError(t, err)
	err = units.Save(ctx, dupUnit)
	assert.True(t, errors.Is(err, shared.ErrConflict))

	u102, err := property.NewUnit(f.property.ID, "102", 95000)
	require.NoError(t, err)
	require.NoError(t, units.Save(ctx, u102))

	byProperty, err := units.FindByProperty(ctx, f.property.ID)
	require.NoError(t, err)
	require.Len(t, byProperty, 2)
	assert.Equal(t, "101", byProperty[0].UnitNumber)

	landlord, err := NewGormLandlordRepository(f.db).FindFirst(ctx)
	require.NoError(t, err)
	require.NotNil(t, landlord)
	annex, err := property.NewProperty(landlord.ID, "Annex", "9 Side Rd")
	require.NoError(t, err)
	require.NoError(t, properties.Save(ctx, annex))

	found, total, err := properties.FindAll(ctx, shared.Filter{Search: "main st"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, f.property.ID, found[0].ID)

	all, err := properties.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Annex", all[0].Name)

	missing, err := properties.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLandlordRepository_FindFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLandlordRepository(db)

	none, err := repo.FindFirst(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	first, err := property.NewLandlord("John Doe", "john@example.com")
	require.NoError(t, err)
	first.CreatedAt = date(2025, 1, 1)
	second, err := property.NewLandlord("Jane Roe", "jane@example.com")
	require.NoError(t, err)
	second.CreatedAt = date(2026, 1, 1)
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, first))

	got, err := repo.FindFirst(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	dup, err := property.NewLandlord("Other", "jane@example.com")
	require.NoError(t, err)
	assert.True(t, errors.Is(repo.Save(ctx, dup), shared.ErrConflict))
}
