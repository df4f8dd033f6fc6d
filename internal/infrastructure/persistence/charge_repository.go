package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormChargeRepository implements ledger.ChargeRepository using GORM
type GormChargeRepository struct {
	db *gorm.DB
}

// NewGormChargeRepository creates a new GormChargeRepository
func NewGormChargeRepository(db *gorm.DB) *GormChargeRepository {
	return &GormChargeRepository{db: db}
}

// FindByID finds a charge by ID with its allocations
func (r *GormChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Charge, error) {
	return r.first(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds a charge by ID and locks the row
func (r *GormChargeRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Charge, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormChargeRepository) first(db *gorm.DB, id uuid.UUID) (*ledger.Charge, error) {
	var model models.ChargeModel
	if err := db.Preload("Allocations").First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return model.ToDomain(), nil
}

// FindByLease returns every charge on a lease, voided ones included
func (r *GormChargeRepository) FindByLease(ctx context.Context, leaseID uuid.UUID) ([]ledger.Charge, error) {
	return r.find(r.db.WithContext(ctx).Where("lease_id = ?", leaseID))
}

// FindNonVoidedByLeaseForUpdate returns the live charges on a lease and locks them
func (r *GormChargeRepository) FindNonVoidedByLeaseForUpdate(ctx context.Context, leaseID uuid.UUID) ([]ledger.Charge, error) {
	return r.find(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("lease_id = ? AND is_voided = ?", leaseID, false))
}

// FindNonVoided returns every live charge in the portfolio
func (r *GormChargeRepository) FindNonVoided(ctx context.Context) ([]ledger.Charge, error) {
	return r.find(r.db.WithContext(ctx).Where("is_voided = ?", false))
}

func (r *GormChargeRepository) find(db *gorm.DB) ([]ledger.Charge, error) {
	var chargeModels []models.ChargeModel
	if err := db.
		Preload("Allocations").
		Order("due_date ASC, created_at ASC, id ASC").
		Find(&chargeModels).Error; err != nil {
		return nil, err
	}
	charges := make([]ledger.Charge, len(chargeModels))
	for i := range chargeModels {
		charges[i] = *chargeModels[i].ToDomain()
	}
	return charges, nil
}

// ExistsRentDueBetween reports whether the lease has a RENT charge due in
// [from, to). Voided rent counts so a voided month is not re-issued.
func (r *GormChargeRepository) ExistsRentDueBetween(ctx context.Context, leaseID uuid.UUID, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ChargeModel{}).
		Where("lease_id = ? AND type = ? AND due_date >= ? AND due_date < ?",
			leaseID, ledger.ChargeTypeRent, from.UTC(), to.UTC()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a charge without touching its allocations.
// A repeated (lease_id, billing_period) returns ledger.ErrDuplicateBillingPeriod.
func (r *GormChargeRepository) Save(ctx context.Context, charge *ledger.Charge) error {
	model := models.ChargeModelFromDomain(charge)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error
	return translateDuplicate(err, ledger.ErrDuplicateBillingPeriod)
}

// Ensure GormChargeRepository implements ledger.ChargeRepository
var _ ledger.ChargeRepository = (*GormChargeRepository)(nil)
