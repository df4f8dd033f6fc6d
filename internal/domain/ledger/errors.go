package ledger

import (
	"fmt"

	"github.com/rentledger/backend/internal/domain/shared"
)

// Error codes specific to the ledger
const (
	CodeInsufficientPaymentBalance = "INSUFFICIENT_PAYMENT_BALANCE"
	CodeChargeOverpayment          = "CHARGE_OVERPAYMENT"
	CodeDuplicateBillingPeriod     = "DUPLICATE_BILLING_PERIOD"
)

var (
	ErrInsufficientPaymentBalance = shared.NewDomainError(CodeInsufficientPaymentBalance, "Payment does not have enough unallocated money")
	ErrChargeOverpayment          = shared.NewDomainError(CodeChargeOverpayment, "Allocation exceeds what the charge still needs")

	// ErrDuplicateBillingPeriod is returned when a lease already has rent for a period
	ErrDuplicateBillingPeriod = shared.NewDomainError(CodeDuplicateBillingPeriod, "Rent for this billing period has already been issued")

	// ErrUnitOccupied is returned when a unit already has an active lease
	ErrUnitOccupied = shared.NewConflictError("This unit is already occupied by another active lease.")
)

// AllocationError is returned when an allocation would break the
// allocation caps of a payment or a charge. Remaining is the live figure
// read inside the rejecting transaction.
type AllocationError struct {
	*shared.DomainError
	Remaining Cents
}

// Unwrap exposes the underlying DomainError to errors.Is / errors.As
func (e *AllocationError) Unwrap() error {
	return e.DomainError
}

// NewInsufficientPaymentBalanceError reports how much the payment still has
func NewInsufficientPaymentBalanceError(remaining Cents) *AllocationError {
	return &AllocationError{
		DomainError: shared.NewDomainError(
			CodeInsufficientPaymentBalance,
			fmt.Sprintf("Payment only has %s remaining", remaining.FormatUSD()),
		),
		Remaining: remaining,
	}
}

// NewChargeOverpaymentError reports how much the charge still needs
func NewChargeOverpaymentError(remaining Cents) *AllocationError {
	return &AllocationError{
		DomainError: shared.NewDomainError(
			CodeChargeOverpayment,
			fmt.Sprintf("Charge only needs %s more", remaining.FormatUSD()),
		),
		Remaining: remaining,
	}
}

// NewValidationErrorf formats a VALIDATION_ERROR
func NewValidationErrorf(format string, args ...any) *shared.DomainError {
	return shared.NewValidationError(fmt.Sprintf(format, args...))
}
