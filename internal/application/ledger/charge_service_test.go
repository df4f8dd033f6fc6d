package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIssueCharge(t *testing.T) {
	repos := newRepoSet()
	lease := testLease(120000)
	due := date(2026, 2, 10)

	repos.leases.On("FindByID", mock.Anything, lease.ID).Return(lease, nil)
	repos.charges.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Charge")).Return(nil)

	resp, err := NewChargeService(repos.scope(), repos.charges, nil, nil).IssueCharge(ctx, IssueChargeRequest{
		LeaseID:     lease.ID,
		Amount:      5000,
		Type:        ledger.ChargeTypeLateFee,
		Description: "  Late February  ",
		DueDate:     &due,
	})
	require.NoError(t, err)
	assert.Equal(t, "LATE_FEE", resp.Type)
	assert.Equal(t, "Late February", resp.Description)
	assert.True(t, resp.DueDate.Equal(due))
	assert.Equal(t, int64(5000), resp.Remaining)
	assert.False(t, resp.IsVoided)
	repos.allocations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIssueCharge_Defaults(t *testing.T) {
	repos := newRepoSet()
	lease := testLease(120000)
	repos.leases.On("FindByID", mock.Anything, lease.ID).Return(lease, nil)
	repos.charges.On("Save", mock.Anything, mock.Anything).Return(nil)

	before := time.Now().Add(-time.Second)
	resp, err := NewChargeService(repos.scope(), repos.charges, nil, nil).IssueCharge(ctx, IssueChargeRequest{
		LeaseID: lease.ID, Amount: 3000, Type: ledger.ChargeTypeWater,
	})
	require.NoError(t, err)
	assert.Equal(t, ManualChargeDescription, resp.Description)
	assert.True(t, resp.DueDate.After(before))
}

func TestIssueCharge_Rejects(t *testing.T) {
	lease := testLease(120000)
	tests := []struct {
		name string
		req  IssueChargeRequest
	}{
		{"zero amount", IssueChargeRequest{LeaseID: lease.ID, Amount: 0, Type: ledger.ChargeTypeRent}},
		{"negative amount", IssueChargeRequest{LeaseID: lease.ID, Amount: -10, Type: ledger.ChargeTypeRent}},
		{"unknown type", IssueChargeRequest{LeaseID: lease.ID, Amount: 10, Type: "PARKING"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newRepoSet()
			repos.leases.On("FindByID", mock.Anything, lease.ID).Return(lease, nil)
			_, err := NewChargeService(repos.scope(), repos.charges, nil, nil).IssueCharge(ctx, tt.req)
			assert.ErrorIs(t, err, shared.ErrValidation)
			repos.charges.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestIssueCharge_UnknownLeaseIsValidationError(t *testing.T) {
	repos := newRepoSet()
	id := uuid.New()
	repos.leases.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := NewChargeService(repos.scope(), repos.charges, nil, nil).IssueCharge(ctx, IssueChargeRequest{
		LeaseID: id, Amount: 100, Type: ledger.ChargeTypeRent,
	})
	assert.ErrorIs(t, err, shared.ErrValidation)
}
