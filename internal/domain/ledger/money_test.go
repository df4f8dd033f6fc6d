package ledger

import (
	"errors"
	"testing"

	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCents_FormatUSD(t *testing.T) {
	tests := []struct {
		cents    Cents
		expected string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{20000, "$200.00"},
		{165000, "$1,650.00"},
		{123456789, "$1,234,567.89"},
		{-500, "-$5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cents.FormatUSD())
		})
	}
}

func TestCents_Dollars(t *testing.T) {
	assert.True(t, decimal.RequireFromString("12.34").Equal(Cents(1234).Dollars()))
}

func TestCentsFromDollars(t *testing.T) {
	c, err := CentsFromDollars(decimal.RequireFromString("1200.50"))
	require.NoError(t, err)
	assert.Equal(t, Cents(120050), c)

	_, err = CentsFromDollars(decimal.RequireFromString("1.005"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestAllocationErrors(t *testing.T) {
	err := NewInsufficientPaymentBalanceError(20000)
	assert.Equal(t, "Payment only has $200.00 remaining", err.Error())
	assert.True(t, errors.Is(err, ErrInsufficientPaymentBalance))
	assert.False(t, errors.Is(err, ErrChargeOverpayment))

	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, CodeInsufficientPaymentBalance, de.Code)

	over := NewChargeOverpaymentError(5000)
	assert.Equal(t, "Charge only needs $50.00 more", over.Error())
	var ae *AllocationError
	require.True(t, errors.As(error(over), &ae))
	assert.Equal(t, Cents(5000), ae.Remaining)
}
