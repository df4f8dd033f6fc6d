package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
)

// LeaseModel is the persistence model for a lease. At most one active
// lease may reference a unit.
type LeaseModel struct {
	BaseModel
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	UnitID     uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_leases_active_unit,where:is_active = true"`
	StartDate  time.Time  `gorm:"not null"`
	EndDate    *time.Time
	RentAmount int64 `gorm:"not null;check:chk_leases_rent_amount,rent_amount > 0"`
	IsActive   bool  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (LeaseModel) TableName() string {
	return "leases"
}

// ToDomain converts the persistence model to a domain Lease
func (m *LeaseModel) ToDomain() *ledger.Lease {
	l := &ledger.Lease{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		UnitID:     m.UnitID,
		StartDate:  m.StartDate.UTC(),
		RentAmount: ledger.Cents(m.RentAmount),
		IsActive:   m.IsActive,
	}
	if m.EndDate != nil {
		end := m.EndDate.UTC()
		l.EndDate = &end
	}
	return l
}

// LeaseModelFromDomain creates a new persistence model from domain
func LeaseModelFromDomain(l *ledger.Lease) *LeaseModel {
	m := &LeaseModel{
		TenantID:   l.TenantID,
		UnitID:     l.UnitID,
		StartDate:  l.StartDate.UTC(),
		EndDate:    l.EndDate,
		RentAmount: l.RentAmount.Int64(),
		IsActive:   l.IsActive,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}

// ChargeModel is the persistence model for a charge. Generated rent
// carries a billing period that is unique per lease; other charges leave
// it NULL.
type ChargeModel struct {
	BaseModel
	LeaseID       uuid.UUID                `gorm:"type:uuid;not null;index;uniqueIndex:idx_charges_lease_period,priority:1"`
	Amount        int64                    `gorm:"not null;check:chk_charges_amount,amount > 0"`
	Type          ledger.ChargeType        `gorm:"type:varchar(30);not null"`
	Description   string                   `gorm:"type:varchar(500);not null;default:''"`
	DueDate       time.Time                `gorm:"not null;index"`
	BillingPeriod *string                  `gorm:"type:varchar(7);uniqueIndex:idx_charges_lease_period,priority:2"`
	IsVoided      bool                     `gorm:"not null;default:false"`
	Allocations   []PaymentAllocationModel `gorm:"foreignKey:ChargeID;references:ID"`
}

// TableName returns the table name for GORM
func (ChargeModel) TableName() string {
	return "charges"
}

// ToDomain converts the persistence model to a domain Charge
func (m *ChargeModel) ToDomain() *ledger.Charge {
	c := &ledger.Charge{
		BaseEntity:  m.BaseModel.ToDomain(),
		LeaseID:     m.LeaseID,
		Amount:      ledger.Cents(m.Amount),
		Type:        m.Type,
		Description: m.Description,
		DueDate:     m.DueDate.UTC(),
		IsVoided:    m.IsVoided,
		Allocations: make([]ledger.PaymentAllocation, len(m.Allocations)),
	}
	if m.BillingPeriod != nil {
		c.BillingPeriod = *m.BillingPeriod
	}
	for i := range m.Allocations {
		c.Allocations[i] = *m.Allocations[i].ToDomain()
	}
	return c
}

// ChargeModelFromDomain creates a new persistence model from domain.
// Allocations are written through their own repository.
func ChargeModelFromDomain(c *ledger.Charge) *ChargeModel {
	m := &ChargeModel{
		LeaseID:     c.LeaseID,
		Amount:      c.Amount.Int64(),
		Type:        c.Type,
		Description: c.Description,
		DueDate:     c.DueDate.UTC(),
		IsVoided:    c.IsVoided,
	}
	if c.BillingPeriod != "" {
		period := c.BillingPeriod
		m.BillingPeriod = &period
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// PaymentModel is the persistence model for a payment
type PaymentModel struct {
	BaseModel
	LeaseID      uuid.UUID                `gorm:"type:uuid;not null;index"`
	Amount       int64                    `gorm:"not null;check:chk_payments_amount,amount > 0"`
	Method       ledger.PaymentMethod     `gorm:"type:varchar(30);not null"`
	DateReceived time.Time                `gorm:"not null;index"`
	IsRefunded   bool                     `gorm:"not null;default:false"`
	Allocations  []PaymentAllocationModel `gorm:"foreignKey:PaymentID;references:ID"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *ledger.Payment {
	p := &ledger.Payment{
		BaseEntity:   m.BaseModel.ToDomain(),
		LeaseID:      m.LeaseID,
		Amount:       ledger.Cents(m.Amount),
		Method:       m.Method,
		DateReceived: m.DateReceived.UTC(),
		IsRefunded:   m.IsRefunded,
		Allocations:  make([]ledger.PaymentAllocation, len(m.Allocations)),
	}
	for i := range m.Allocations {
		p.Allocations[i] = *m.Allocations[i].ToDomain()
	}
	return p
}

// PaymentModelFromDomain creates a new persistence model from domain.
// Allocations are written through their own repository.
func PaymentModelFromDomain(p *ledger.Payment) *PaymentModel {
	m := &PaymentModel{
		LeaseID:      p.LeaseID,
		Amount:       p.Amount.Int64(),
		Method:       p.Method,
		DateReceived: p.DateReceived.UTC(),
		IsRefunded:   p.IsRefunded,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// PaymentAllocationModel is the persistence model for an allocation row
type PaymentAllocationModel struct {
	BaseModel
	PaymentID uuid.UUID `gorm:"type:uuid;not null;index"`
	ChargeID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount    int64     `gorm:"not null;check:chk_payment_allocations_amount,amount > 0"`
}

// TableName returns the table name for GORM
func (PaymentAllocationModel) TableName() string {
	return "payment_allocations"
}

// ToDomain converts the persistence model to a domain PaymentAllocation
func (m *PaymentAllocationModel) ToDomain() *ledger.PaymentAllocation {
	return &ledger.PaymentAllocation{
		BaseEntity: m.BaseModel.ToDomain(),
		PaymentID:  m.PaymentID,
		ChargeID:   m.ChargeID,
		Amount:     ledger.Cents(m.Amount),
	}
}

// PaymentAllocationModelFromDomain creates a new persistence model from domain
func PaymentAllocationModelFromDomain(a *ledger.PaymentAllocation) *PaymentAllocationModel {
	m := &PaymentAllocationModel{
		PaymentID: a.PaymentID,
		ChargeID:  a.ChargeID,
		Amount:    a.Amount.Int64(),
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
