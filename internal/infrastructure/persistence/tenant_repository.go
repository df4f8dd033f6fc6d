package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/property"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements property.TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs returns the tenants with the given IDs in no particular order
func (r *GormTenantRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]property.Tenant, error) {
	if len(ids) == 0 {
		return []property.Tenant{}, nil
	}
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	return tenantsToDomain(tenantModels), nil
}

// FindByEmail finds a tenant by email, case-insensitively
func (r *GormTenantRepository) FindByEmail(ctx context.Context, email string) (*property.Tenant, error) {
	var model models.TenantModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of tenants, searching name and email
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Tenant, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TenantModel{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := likePattern(search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	filter = filter.Normalize()
	var tenantModels []models.TenantModel
	if err := query.
		Order(tenantSort.orderClause(filter)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&tenantModels).Error; err != nil {
		return nil, 0, err
	}
	return tenantsToDomain(tenantModels), total, nil
}

// Save creates or updates a tenant. A taken email returns
// property.ErrDuplicateTenantEmail.
func (r *GormTenantRepository) Save(ctx context.Context, tenant *property.Tenant) error {
	model := models.TenantModelFromDomain(tenant)
	return translateDuplicate(r.db.WithContext(ctx).Save(model).Error, property.ErrDuplicateTenantEmail)
}

func tenantsToDomain(tenantModels []models.TenantModel) []property.Tenant {
	tenants := make([]property.Tenant, len(tenantModels))
	for i := range tenantModels {
		tenants[i] = *tenantModels[i].ToDomain()
	}
	return tenants
}

// Ensure GormTenantRepository implements property.TenantRepository
var _ property.TenantRepository = (*GormTenantRepository)(nil)
