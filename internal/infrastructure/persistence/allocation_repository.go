package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAllocationRepository implements ledger.AllocationRepository using GORM.
// Allocation rows are inserted or deleted, never updated.
type GormAllocationRepository struct {
	db *gorm.DB
}

// NewGormAllocationRepository creates a new GormAllocationRepository
func NewGormAllocationRepository(db *gorm.DB) *GormAllocationRepository {
	return &GormAllocationRepository{db: db}
}

// Create inserts an allocation row
func (r *GormAllocationRepository) Create(ctx context.Context, allocation *ledger.PaymentAllocation) error {
	model := models.PaymentAllocationModelFromDomain(allocation)
	return r.db.WithContext(ctx).Create(model).Error
}

// SumByPayment returns how much of a payment is allocated
func (r *GormAllocationRepository) SumByPayment(ctx context.Context, paymentID uuid.UUID) (ledger.Cents, error) {
	return r.sum(ctx, "payment_id = ?", paymentID)
}

// SumByCharge returns how much of a charge is funded
func (r *GormAllocationRepository) SumByCharge(ctx context.Context, chargeID uuid.UUID) (ledger.Cents, error) {
	return r.sum(ctx, "charge_id = ?", chargeID)
}

func (r *GormAllocationRepository) sum(ctx context.Context, query string, id uuid.UUID) (ledger.Cents, error) {
	var row sumRow
	err := r.db.WithContext(ctx).
		Model(&models.PaymentAllocationModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where(query, id).
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	return ledger.Cents(row.Total), nil
}

// DeleteByCharge removes every allocation into a charge
func (r *GormAllocationRepository) DeleteByCharge(ctx context.Context, chargeID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("charge_id = ?", chargeID).Delete(&models.PaymentAllocationModel{})
	return result.RowsAffected, result.Error
}

// DeleteByPayment removes every allocation out of a payment
func (r *GormAllocationRepository) DeleteByPayment(ctx context.Context, paymentID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).Delete(&models.PaymentAllocationModel{})
	return result.RowsAffected, result.Error
}

// Ensure GormAllocationRepository implements ledger.AllocationRepository
var _ ledger.AllocationRepository = (*GormAllocationRepository)(nil)
