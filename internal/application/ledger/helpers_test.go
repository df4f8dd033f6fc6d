package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/shared"
)

var ctx = context.Background()

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testLease(rent ledger.Cents) *ledger.Lease {
	return &ledger.Lease{
		BaseEntity: shared.NewBaseEntityAt(date(2026, 1, 1)),
		TenantID:   uuid.New(),
		UnitID:     uuid.New(),
		StartDate:  date(2026, 1, 1),
		RentAmount: rent,
		IsActive:   true,
	}
}

func testCharge(leaseID uuid.UUID, amount ledger.Cents, t ledger.ChargeType, due time.Time, allocated ...ledger.Cents) ledger.Charge {
	c := ledger.Charge{
		BaseEntity: shared.NewBaseEntityAt(due),
		LeaseID:    leaseID,
		Amount:     amount,
		Type:       t,
		DueDate:    due,
	}
	for _, a := range allocated {
		c.Allocations = append(c.Allocations, ledger.PaymentAllocation{
			BaseEntity: shared.NewBaseEntity(),
			PaymentID:  uuid.New(),
			ChargeID:   c.ID,
			Amount:     a,
		})
	}
	return c
}

func testPayment(leaseID uuid.UUID, amount ledger.Cents, received time.Time, allocated ...ledger.Cents) ledger.Payment {
	p := ledger.Payment{
		BaseEntity:   shared.NewBaseEntityAt(received),
		LeaseID:      leaseID,
		Amount:       amount,
		Method:       ledger.PaymentMethodCash,
		DateReceived: received,
	}
	for _, a := range allocated {
		p.Allocations = append(p.Allocations, ledger.PaymentAllocation{
			BaseEntity: shared.NewBaseEntity(),
			PaymentID:  p.ID,
			ChargeID:   uuid.New(),
			Amount:     a,
		})
	}
	return p
}
