package models

import (
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/property"
)

// LandlordModel is the persistence model for a landlord
type LandlordModel struct {
	BaseModel
	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(200);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (LandlordModel) TableName() string {
	return "landlords"
}

// ToDomain converts the persistence model to a domain Landlord
func (m *LandlordModel) ToDomain() *property.Landlord {
	return &property.Landlord{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
	}
}

// LandlordModelFromDomain creates a new persistence model from domain
func LandlordModelFromDomain(l *property.Landlord) *LandlordModel {
	m := &LandlordModel{Name: l.Name, Email: l.Email}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}

// PropertyModel is the persistence model for a property
type PropertyModel struct {
	BaseModel
	LandlordID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(200);not null"`
	Address    string    `gorm:"type:varchar(500);not null"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		BaseEntity: m.BaseModel.ToDomain(),
		LandlordID: m.LandlordID,
		Name:       m.Name,
		Address:    m.Address,
	}
}

// PropertyModelFromDomain creates a new persistence model from domain
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{LandlordID: p.LandlordID, Name: p.Name, Address: p.Address}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// UnitModel is the persistence model for a unit
type UnitModel struct {
	BaseModel
	PropertyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_units_property_number,priority:1"`
	UnitNumber  string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_units_property_number,priority:2"`
	MonthlyRent int64     `gorm:"not null;default:0;check:chk_units_monthly_rent,monthly_rent >= 0"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit
func (m *UnitModel) ToDomain() *property.Unit {
	return &property.Unit{
		BaseEntity:  m.BaseModel.ToDomain(),
		PropertyID:  m.PropertyID,
		UnitNumber:  m.UnitNumber,
		MonthlyRent: m.MonthlyRent,
	}
}

// UnitModelFromDomain creates a new persistence model from domain
func UnitModelFromDomain(u *property.Unit) *UnitModel {
	m := &UnitModel{PropertyID: u.PropertyID, UnitNumber: u.UnitNumber, MonthlyRent: u.MonthlyRent}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}

// TenantModel is the persistence model for a tenant (the renter, not a
// hosting tenant)
type TenantModel struct {
	BaseModel
	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant
func (m *TenantModel) ToDomain() *property.Tenant {
	return &property.Tenant{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
	}
}

// TenantModelFromDomain creates a new persistence model from domain
func TenantModelFromDomain(t *property.Tenant) *TenantModel {
	m := &TenantModel{Name: t.Name, Email: t.Email, Phone: t.Phone}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}
