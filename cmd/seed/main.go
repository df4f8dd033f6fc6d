// Command seed loads a small demo portfolio through the application services.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	appledger "github.com/rentledger/backend/internal/application/ledger"
	propertyapp "github.com/rentledger/backend/internal/application/property"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/infrastructure/config"
	"github.com/rentledger/backend/internal/infrastructure/logger"
	"github.com/rentledger/backend/internal/infrastructure/persistence"
	"github.com/rentledger/backend/internal/infrastructure/strategy"
	"go.uber.org/zap"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
		Service:    "rentledger-seed",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := seed(context.Background(), db, log); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Seed data loaded")
}

func seed(ctx context.Context, db *persistence.Database, log *zap.Logger) error {
	landlordRepo := persistence.NewGormLandlordRepository(db.DB)
	existing, err := landlordRepo.FindFirst(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Info("Landlord already present, skipping seed", zap.String("landlord_id", existing.ID.String()))
		return nil
	}

	leaseRepo := persistence.NewGormLeaseRepository(db.DB)
	chargeRepo := persistence.NewGormChargeRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	strategies, err := strategy.NewRegistryWithDefaults()
	if err != nil {
		return err
	}
	allocator, err := strategies.GetAllocationStrategy("")
	if err != nil {
		return err
	}

	properties := propertyapp.NewService(
		landlordRepo,
		persistence.NewGormPropertyRepository(db.DB),
		persistence.NewGormUnitRepository(db.DB),
		persistence.NewGormTenantRepository(db.DB),
		log,
	)
	leases := appledger.NewLeaseService(txScope, leaseRepo, nil, log)
	charges := appledger.NewChargeService(txScope, chargeRepo, nil, log)
	payments := appledger.NewAllocationService(txScope, paymentRepo, allocator, nil, log)

	if _, err := properties.CreateLandlord(ctx, propertyapp.CreateLandlordRequest{
		Name:  "John Doe",
		Email: "john@example.com",
	}); err != nil {
		return fmt.Errorf("landlord: %w", err)
	}

	sunset, err := properties.CreateProperty(ctx, propertyapp.CreatePropertyRequest{
		Name:    "Sunset Apartments",
		Address: "123 Sunset Blvd",
	})
	if err != nil {
		return fmt.Errorf("property: %w", err)
	}

	unit101, err := properties.CreateUnit(ctx, propertyapp.CreateUnitRequest{
		PropertyID: sunset.ID, UnitNumber: "101", MonthlyRent: 120000,
	})
	if err != nil {
		return fmt.Errorf("unit 101: %w", err)
	}
	unit102, err := properties.CreateUnit(ctx, propertyapp.CreateUnitRequest{
		PropertyID: sunset.ID, UnitNumber: "102", MonthlyRent: 120000,
	})
	if err != nil {
		return fmt.Errorf("unit 102: %w", err)
	}

	alice, err := properties.CreateTenant(ctx, propertyapp.CreateTenantRequest{
		Name: "Alice Smith", Email: "alice@example.com", Phone: "555-0101",
	})
	if err != nil {
		return fmt.Errorf("tenant alice: %w", err)
	}
	bob, err := properties.CreateTenant(ctx, propertyapp.CreateTenantRequest{
		Name: "Bob Jones", Email: "bob@example.com", Phone: "555-0102",
	})
	if err != nil {
		return fmt.Errorf("tenant bob: %w", err)
	}

	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	// Alice: first month and deposit paid in full
	aliceLease, err := leases.CreateLease(ctx, appledger.CreateLeaseRequest{
		TenantID:        alice.ID,
		UnitID:          unit101.ID,
		StartDate:       start,
		RentAmount:      120000,
		SecurityDeposit: 120000,
	})
	if err != nil {
		return fmt.Errorf("lease alice: %w", err)
	}
	if _, err := payments.RecordPayment(ctx, appledger.RecordPaymentRequest{
		LeaseID: aliceLease.Lease.ID,
		Amount:  240000,
		Method:  ledger.PaymentMethodBankTransfer,
	}); err != nil {
		return fmt.Errorf("payment alice: %w", err)
	}

	// Bob: partial January payment, a late fee, then February rent
	bobLease, err := leases.CreateLease(ctx, appledger.CreateLeaseRequest{
		TenantID:   bob.ID,
		UnitID:     unit102.ID,
		StartDate:  start,
		RentAmount: 120000,
	})
	if err != nil {
		return fmt.Errorf("lease bob: %w", err)
	}
	if _, err := payments.RecordPayment(ctx, appledger.RecordPaymentRequest{
		LeaseID: bobLease.Lease.ID,
		Amount:  80000,
		Method:  ledger.PaymentMethodMobileMoney,
	}); err != nil {
		return fmt.Errorf("payment bob: %w", err)
	}
	lateDue := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	if _, err := charges.IssueCharge(ctx, appledger.IssueChargeRequest{
		LeaseID:     bobLease.Lease.ID,
		Amount:      5000,
		Type:        ledger.ChargeTypeLateFee,
		Description: "Late fee - January 2026",
		DueDate:     &lateDue,
	}); err != nil {
		return fmt.Errorf("late fee bob: %w", err)
	}
	febDue := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	if _, err := charges.IssueCharge(ctx, appledger.IssueChargeRequest{
		LeaseID:     bobLease.Lease.ID,
		Amount:      120000,
		Type:        ledger.ChargeTypeRent,
		Description: "Rent - February 2026",
		DueDate:     &febDue,
	}); err != nil {
		return fmt.Errorf("february rent bob: %w", err)
	}

	log.Info("Seeded portfolio",
		zap.String("property_id", sunset.ID.String()),
		zap.String("alice_lease_id", aliceLease.Lease.ID.String()),
		zap.String("bob_lease_id", bobLease.Lease.ID.String()),
	)
	return nil
}
