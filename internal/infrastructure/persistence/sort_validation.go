package persistence

import (
	"strings"

	"github.com/rentledger/backend/internal/domain/shared"
)

// sortSpec is the whitelist and default ordering of one listable table
type sortSpec struct {
	fields       map[string]bool
	defaultField string
	defaultDir   string
}

// LeaseSortFields contains allowed sort fields for leases
var LeaseSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"start_date":  true,
	"end_date":    true,
	"rent_amount": true,
	"is_active":   true,
}

// PropertySortFields contains allowed sort fields for properties
var PropertySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"name":       true,
	"address":    true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"name":       true,
	"email":      true,
}

var (
	leaseSort    = sortSpec{fields: LeaseSortFields, defaultField: "start_date", defaultDir: "DESC"}
	propertySort = sortSpec{fields: PropertySortFields, defaultField: "name", defaultDir: "ASC"}
	tenantSort   = sortSpec{fields: TenantSortFields, defaultField: "name", defaultDir: "ASC"}
)

// ValidateSortOrder normalizes orderDir to ASC or DESC, falling back to
// defaultDir for anything else
func ValidateSortOrder(orderDir, defaultDir string) string {
	switch strings.ToUpper(strings.TrimSpace(orderDir)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	}
	return defaultDir
}

// ValidateSortField returns sortField when it is whitelisted, otherwise
// defaultField
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// orderClause builds an ORDER BY clause from the filter. id is always the
// tie-breaker so pages are stable.
func (s sortSpec) orderClause(filter shared.Filter) string {
	field := ValidateSortField(filter.OrderBy, s.fields, s.defaultField)
	dir := ValidateSortOrder(filter.OrderDir, s.defaultDir)
	if field == "id" {
		return "id " + dir
	}
	return field + " " + dir + ", id " + dir
}
