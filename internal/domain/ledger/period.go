package ledger

import (
	"fmt"
	"time"
)

// BillingPeriodLayout formats the month a generated rent charge covers
const BillingPeriodLayout = "2006-01"

// MonthWindow returns [first of month, first of next month) for asOf, in UTC
func MonthWindow(asOf time.Time) (time.Time, time.Time) {
	t := asOf.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// BillingPeriod returns the "YYYY-MM" key of the month containing asOf
func BillingPeriod(asOf time.Time) string {
	return asOf.UTC().Format(BillingPeriodLayout)
}

// RentDescription returns the description of a generated rent charge,
// e.g. "Rent - October 2026"
func RentDescription(asOf time.Time) string {
	t := asOf.UTC()
	return fmt.Sprintf("Rent - %s %d", t.Month().String(), t.Year())
}
