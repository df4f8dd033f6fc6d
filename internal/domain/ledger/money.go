package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Cents is an amount of money in the smallest currency unit
type Cents int64

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// Int64 returns the raw number of cents
func (c Cents) Int64() int64 {
	return int64(c)
}

// IsPositive reports whether the amount is greater than zero
func (c Cents) IsPositive() bool {
	return c > 0
}

// Dollars returns the amount as an exact decimal number of dollars
func (c Cents) Dollars() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// FormatUSD renders the amount as US dollars, e.g. "$1,650.00"
func (c Cents) FormatUSD() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + usdPrinter.Sprintf("$%d", v/100) + fmt.Sprintf(".%02d", v%100)
}

// String implements fmt.Stringer
func (c Cents) String() string {
	return c.FormatUSD()
}

// CentsFromDollars converts a decimal dollar amount to cents.
// Amounts with fractions of a cent are rejected.
func CentsFromDollars(d decimal.Decimal) (Cents, error) {
	scaled := d.Shift(2)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, NewValidationErrorf("Amount %s has more than two decimal places", d.String())
	}
	return Cents(scaled.IntPart()), nil
}
