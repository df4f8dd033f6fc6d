package ledger

import (
	"strings"
)

// ChargeType is the closed set of debts a lease can accrue
type ChargeType string

const (
	ChargeTypeRent            ChargeType = "RENT"
	ChargeTypeSecurityDeposit ChargeType = "SECURITY_DEPOSIT"
	ChargeTypeWater           ChargeType = "WATER"
	ChargeTypeGarbage         ChargeType = "GARBAGE"
	ChargeTypeDamageFee       ChargeType = "DAMAGE_FEE"
	ChargeTypeLateFee         ChargeType = "LATE_FEE"
)

// AllChargeTypes returns every charge type in declaration order
func AllChargeTypes() []ChargeType {
	return []ChargeType{
		ChargeTypeRent,
		ChargeTypeSecurityDeposit,
		ChargeTypeWater,
		ChargeTypeGarbage,
		ChargeTypeDamageFee,
		ChargeTypeLateFee,
	}
}

// IsValid checks if the charge type is one of the known types
func (t ChargeType) IsValid() bool {
	return t.PriorityClass() != PriorityUnclassified
}

// String returns the string representation of ChargeType
func (t ChargeType) String() string {
	return string(t)
}

// IsDeposit reports whether money applied to this charge is held on the
// tenant's behalf rather than earned
func (t ChargeType) IsDeposit() bool {
	return t == ChargeTypeSecurityDeposit
}

// CountsAsArrears reports whether an unpaid balance of this type is owed
// to the landlord
func (t ChargeType) CountsAsArrears() bool {
	return t.IsValid() && !t.IsDeposit()
}

// PriorityClass positions a charge type in the payment waterfall.
// Lower classes are funded first.
type PriorityClass int

const (
	PriorityDeposit      PriorityClass = 0
	PriorityArrears      PriorityClass = 1
	PriorityUnclassified PriorityClass = 1 << 30
)

// PriorityClass returns the waterfall class of the charge type.
// Every declared type must appear here.
func (t ChargeType) PriorityClass() PriorityClass {
	switch t {
	case ChargeTypeSecurityDeposit:
		return PriorityDeposit
	case ChargeTypeRent, ChargeTypeWater, ChargeTypeGarbage, ChargeTypeDamageFee, ChargeTypeLateFee:
		return PriorityArrears
	}
	return PriorityUnclassified
}

// ParseChargeType converts a string to a ChargeType, case-insensitively
func ParseChargeType(s string) (ChargeType, error) {
	t := ChargeType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", NewValidationErrorf("Invalid charge type: %s", s)
	}
	return t, nil
}

// PaymentMethod is the closed set of ways cash can be received
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
)

// AllPaymentMethods returns every payment method
func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodMobileMoney}
}

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodMobileMoney:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// ParsePaymentMethod converts a string to a PaymentMethod, case-insensitively
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", NewValidationErrorf("Invalid payment method: %s", s)
	}
	return m, nil
}
