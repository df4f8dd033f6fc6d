// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - base.go: BaseModel shared by every table
// - property.go: landlords, properties, units and tenants
// - ledger.go: leases, charges, payments and payment allocations
//
// Amounts are stored as integer cents.
package models
