package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLeaseRepository implements ledger.LeaseRepository using GORM
type GormLeaseRepository struct {
	db *gorm.DB
}

// NewGormLeaseRepository creates a new GormLeaseRepository
func NewGormLeaseRepository(db *gorm.DB) *GormLeaseRepository {
	return &GormLeaseRepository{db: db}
}

// FindByID finds a lease by ID
func (r *GormLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Lease, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

// FindByIDForUpdate finds a lease by ID and locks the row
func (r *GormLeaseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Lease, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

// FindActiveByUnit finds the active lease on a unit
func (r *GormLeaseRepository) FindActiveByUnit(ctx context.Context, unitID uuid.UUID) (*ledger.Lease, error) {
	return r.first(r.db.WithContext(ctx), "unit_id = ? AND is_active = ?", unitID, true)
}

func (r *GormLeaseRepository) first(db *gorm.DB, query string, args ...any) (*ledger.Lease, error) {
	var model models.LeaseModel
	if err := db.Where(query, args...).First(&model).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return model.ToDomain(), nil
}

// FindActive returns every active lease ordered by start date
func (r *GormLeaseRepository) FindActive(ctx context.Context) ([]ledger.Lease, error) {
	var leaseModels []models.LeaseModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("start_date ASC, id ASC").
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return leasesToDomain(leaseModels), nil
}

// ListAll returns every lease, active or not
func (r *GormLeaseRepository) ListAll(ctx context.Context) ([]ledger.Lease, error) {
	var leaseModels []models.LeaseModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return leasesToDomain(leaseModels), nil
}

// FindAll returns a page of leases matching the filter and the total count
func (r *GormLeaseRepository) FindAll(ctx context.Context, filter ledger.LeaseFilter) ([]ledger.Lease, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LeaseModel{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.UnitID != nil {
		query = query.Where("unit_id = ?", *filter.UnitID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Filter.Normalize()
	var leaseModels []models.LeaseModel
	if err := query.
		Order(leaseSort.orderClause(page)).
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&leaseModels).Error; err != nil {
		return nil, 0, err
	}
	return leasesToDomain(leaseModels), total, nil
}

// Save creates or updates a lease. A second active lease on the same unit
// violates idx_leases_active_unit and returns ledger.ErrUnitOccupied.
func (r *GormLeaseRepository) Save(ctx context.Context, lease *ledger.Lease) error {
	model := models.LeaseModelFromDomain(lease)
	return translateDuplicate(r.db.WithContext(ctx).Save(model).Error, ledger.ErrUnitOccupied)
}

func leasesToDomain(leaseModels []models.LeaseModel) []ledger.Lease {
	leases := make([]ledger.Lease, len(leaseModels))
	for i := range leaseModels {
		leases[i] = *leaseModels[i].ToDomain()
	}
	return leases
}

// Ensure GormLeaseRepository implements ledger.LeaseRepository
var _ ledger.LeaseRepository = (*GormLeaseRepository)(nil)
