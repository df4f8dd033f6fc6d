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

var (
	errDuplicateLandlordEmail = shared.NewConflictError("A landlord with this email already exists.")
	errDuplicateUnitNumber    = shared.NewConflictError("This property already has a unit with that number.")
)

// GormLandlordRepository implements property.LandlordRepository using GORM
type GormLandlordRepository struct {
	db *gorm.DB
}

// NewGormLandlordRepository creates a new GormLandlordRepository
func NewGormLandlordRepository(db *gorm.DB) *GormLandlordRepository {
	return &GormLandlordRepository{db: db}
}

// FindFirst returns the earliest registered landlord
func (r *GormLandlordRepository) FindFirst(ctx context.Context) (*property.Landlord, error) {
	var model models.LandlordModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").First(&model).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a landlord
func (r *GormLandlordRepository) Save(ctx context.Context, landlord *property.Landlord) error {
	model := models.LandlordModelFromDomain(landlord)
	return translateDuplicate(r.db.WithContext(ctx).Save(model).Error, errDuplicateLandlordEmail)
}

// GormPropertyRepository implements property.PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of properties, searching name and address
func (r *GormPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := likePattern(search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	filter = filter.Normalize()
	var propertyModels []models.PropertyModel
	if err := query.
		Order(propertySort.orderClause(filter)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&propertyModels).Error; err != nil {
		return nil, 0, err
	}
	return propertiesToDomain(propertyModels), total, nil
}

// ListAll returns every property ordered by name
func (r *GormPropertyRepository) ListAll(ctx context.Context) ([]property.Property, error) {
	var propertyModels []models.PropertyModel
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&propertyModels).Error; err != nil {
		return nil, err
	}
	return propertiesToDomain(propertyModels), nil
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	return r.db.WithContext(ctx).Save(models.PropertyModelFromDomain(p)).Error
}

func propertiesToDomain(propertyModels []models.PropertyModel) []property.Property {
	properties := make([]property.Property, len(propertyModels))
	for i := range propertyModels {
		properties[i] = *propertyModels[i].ToDomain()
	}
	return properties
}

// GormUnitRepository implements property.UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByID finds a unit by ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return model.ToDomain(), nil
}

// FindByProperty returns the units of a property ordered by unit number
func (r *GormUnitRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]property.Unit, error) {
	return r.find(r.db.WithContext(ctx).Where("property_id = ?", propertyID))
}

// FindAll returns every unit
func (r *GormUnitRepository) FindAll(ctx context.Context) ([]property.Unit, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *GormUnitRepository) find(db *gorm.DB) ([]property.Unit, error) {
	var unitModels []models.UnitModel
	if err := db.Order("unit_number ASC, id ASC").Find(&unitModels).Error; err != nil {
		return nil, err
	}
	units := make([]property.Unit, len(unitModels))
	for i := range unitModels {
		units[i] = *unitModels[i].ToDomain()
	}
	return units, nil
}

// Save creates or updates a unit. Unit numbers are unique per property.
func (r *GormUnitRepository) Save(ctx context.Context, unit *property.Unit) error {
	model := models.UnitModelFromDomain(unit)
	return translateDuplicate(r.db.WithContext(ctx).Save(model).Error, errDuplicateUnitNumber)
}

func likePattern(search string) string {
	return "%" + strings.ToLower(search) + "%"
}

// Ensure the GORM repositories implement the property interfaces
var (
	_ property.LandlordRepository = (*GormLandlordRepository)(nil)
	_ property.PropertyRepository = (*GormPropertyRepository)(nil)
	_ property.UnitRepository     = (*GormUnitRepository)(nil)
)
