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

// GormPaymentRepository implements ledger.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by ID with its allocations
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	return r.first(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds a payment by ID and locks the row
func (r *GormPaymentRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormPaymentRepository) first(db *gorm.DB, id uuid.UUID) (*ledger.Payment, error) {
	var model models.PaymentModel
	if err := db.Preload("Allocations").First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return model.ToDomain(), nil
}

// FindByLease returns every payment on a lease, refunded ones included
func (r *GormPaymentRepository) FindByLease(ctx context.Context, leaseID uuid.UUID) ([]ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("lease_id = ?", leaseID).
		Order("date_received ASC, created_at ASC, id ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]ledger.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments, nil
}

// SumReceivedBetween returns the gross cash received in [from, to),
// refunded payments included
func (r *GormPaymentRepository) SumReceivedBetween(ctx context.Context, from, to time.Time) (ledger.Cents, error) {
	var row sumRow
	err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("date_received >= ? AND date_received < ?", from.UTC(), to.UTC()).
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	return ledger.Cents(row.Total), nil
}

// SumByLease returns the payment total of every lease that has payments
func (r *GormPaymentRepository) SumByLease(ctx context.Context, excludeRefunded bool) (map[uuid.UUID]ledger.Cents, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("lease_id, COALESCE(SUM(amount), 0) AS total")
	if excludeRefunded {
		query = query.Where("is_refunded = ?", false)
	}

	var rows []struct {
		LeaseID uuid.UUID
		Total   int64
	}
	if err := query.Group("lease_id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]ledger.Cents, len(rows))
	for _, row := range rows {
		totals[row.LeaseID] = ledger.Cents(row.Total)
	}
	return totals, nil
}

// LatestReceivedByLease returns the most recent non-refunded payment date
// for each of the given leases. Leases without payments are absent.
func (r *GormPaymentRepository) LatestReceivedByLease(ctx context.Context, leaseIDs []uuid.UUID) (map[uuid.UUID]time.Time, error) {
	latest := make(map[uuid.UUID]time.Time)
	if len(leaseIDs) == 0 {
		return latest, nil
	}

	// Reduced in Go: SQLite returns MAX over a timestamp column as text.
	var rows []struct {
		LeaseID      uuid.UUID
		DateReceived time.Time
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("lease_id, date_received").
		Where("lease_id IN ? AND is_refunded = ?", leaseIDs, false).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		if cur, ok := latest[row.LeaseID]; !ok || row.DateReceived.After(cur) {
			latest[row.LeaseID] = row.DateReceived.UTC()
		}
	}
	return latest, nil
}

// Save creates or updates a payment without touching its allocations
func (r *GormPaymentRepository) Save(ctx context.Context, payment *ledger.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error
}

// Ensure GormPaymentRepository implements ledger.PaymentRepository
var _ ledger.PaymentRepository = (*GormPaymentRepository)(nil)
