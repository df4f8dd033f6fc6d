package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
)

// IssueChargeRequest is the input of ChargeService.IssueCharge
type IssueChargeRequest struct {
	LeaseID     uuid.UUID
	Amount      ledger.Cents
	Type        ledger.ChargeType
	Description string
	// DueDate defaults to now
	DueDate *time.Time
}

// RecordPaymentRequest is the input of AllocationService.RecordPayment
type RecordPaymentRequest struct {
	LeaseID uuid.UUID
	Amount  ledger.Cents
	Method  ledger.PaymentMethod
}

// ManualAllocationRequest is the input of AllocationService.AllocateManually
type ManualAllocationRequest struct {
	PaymentID uuid.UUID
	ChargeID  uuid.UUID
	Amount    ledger.Cents
}

// CreateLeaseRequest is the input of LeaseService.CreateLease
type CreateLeaseRequest struct {
	TenantID        uuid.UUID
	UnitID          uuid.UUID
	StartDate       time.Time
	RentAmount      ledger.Cents
	SecurityDeposit ledger.Cents
}

// EndLeaseRequest is the input of LeaseService.EndLease
type EndLeaseRequest struct {
	LeaseID         uuid.UUID
	MoveOutDate     time.Time
	DeductionAmount ledger.Cents
	Description     string
}

// ChargeResponse describes a charge with its derived remaining balance
type ChargeResponse struct {
	ID            uuid.UUID `json:"id"`
	LeaseID       uuid.UUID `json:"lease_id"`
	Amount        int64     `json:"amount"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	DueDate       time.Time `json:"due_date"`
	BillingPeriod string    `json:"billing_period,omitempty"`
	IsVoided      bool      `json:"is_voided"`
	Allocated     int64     `json:"allocated"`
	Remaining     int64     `json:"remaining"`
	CreatedAt     time.Time `json:"created_at"`
}

// AllocationResponse describes one allocation row
type AllocationResponse struct {
	ID        uuid.UUID `json:"id"`
	PaymentID uuid.UUID `json:"payment_id"`
	ChargeID  uuid.UUID `json:"charge_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentResponse describes a payment with its derived unallocated credit
type PaymentResponse struct {
	ID           uuid.UUID            `json:"id"`
	LeaseID      uuid.UUID            `json:"lease_id"`
	Amount       int64                `json:"amount"`
	Method       string               `json:"method"`
	DateReceived time.Time            `json:"date_received"`
	IsRefunded   bool                 `json:"is_refunded"`
	Allocated    int64                `json:"allocated"`
	Unallocated  int64                `json:"unallocated"`
	Allocations  []AllocationResponse `json:"allocations"`
}

// LeaseResponse describes a lease
type LeaseResponse struct {
	ID         uuid.UUID  `json:"id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	UnitID     uuid.UUID  `json:"unit_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	RentAmount int64      `json:"rent_amount"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateLeaseResult is the lease plus the charges issued on move-in
type CreateLeaseResult struct {
	Lease   LeaseResponse    `json:"lease"`
	Charges []ChargeResponse `json:"charges"`
}

// EndLeaseResult is the ended lease plus the deduction charge, if any
type EndLeaseResult struct {
	Lease           LeaseResponse   `json:"lease"`
	DeductionCharge *ChargeResponse `json:"deduction_charge,omitempty"`
}

// Timeline entry kinds
const (
	TimelineKindCharge  = "CHARGE"
	TimelineKindPayment = "PAYMENT"
)

// TimelineEntry is a charge or a payment on a lease ledger
type TimelineEntry struct {
	Kind        string    `json:"kind"`
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	Amount      int64     `json:"amount"`
	Type        string    `json:"type,omitempty"`
	Method      string    `json:"method,omitempty"`
	Description string    `json:"description,omitempty"`
	IsVoided    bool      `json:"is_voided,omitempty"`
	IsRefunded  bool      `json:"is_refunded,omitempty"`
	// RemainingDue is set on charges
	RemainingDue *int64 `json:"remaining_due,omitempty"`
	// UnallocatedAmount is set on payments
	UnallocatedAmount *int64 `json:"unallocated_amount,omitempty"`

	createdAt time.Time
}

// LeaseLedger is the derived financial view of one lease
type LeaseLedger struct {
	LeaseID         uuid.UUID       `json:"lease_id"`
	IsActive        bool            `json:"is_active"`
	Balance         int64           `json:"balance"`
	BalanceDisplay  string          `json:"balance_display"`
	HeldDeposit     int64           `json:"held_deposit"`
	RequiredDeposit int64           `json:"required_deposit"`
	TotalCharged    int64           `json:"total_charged"`
	TotalPaid       int64           `json:"total_paid"`
	Timeline        []TimelineEntry `json:"timeline"`
}

// PropertyPerformance summarises one property
type PropertyPerformance struct {
	PropertyID    uuid.UUID `json:"property_id"`
	Name          string    `json:"name"`
	Revenue       int64     `json:"revenue"`
	TotalUnits    int       `json:"total_units"`
	OccupiedUnits int       `json:"occupied_units"`
	OccupancyRate float64   `json:"occupancy_rate"`
}

// RiskEntry is a tenant lease owing more than the watchlist threshold
type RiskEntry struct {
	TenantID        uuid.UUID  `json:"tenant_id"`
	TenantName      string     `json:"tenant_name"`
	LeaseID         uuid.UUID  `json:"lease_id"`
	UnitID          uuid.UUID  `json:"unit_id"`
	UnitNumber      string     `json:"unit_number"`
	TotalOwed       int64      `json:"total_owed"`
	LastPaymentDate *time.Time `json:"last_payment_date"`
}

// PortfolioMetrics is the point-in-time financial health of the portfolio
type PortfolioMetrics struct {
	TotalArrears        int64                 `json:"total_arrears"`
	TotalDeposits       int64                 `json:"total_deposits"`
	MonthlyRevenue      int64                 `json:"monthly_revenue"`
	PropertyPerformance []PropertyPerformance `json:"property_performance"`
	RiskWatchlist       []RiskEntry           `json:"risk_watchlist"`
	GeneratedAt         time.Time             `json:"generated_at"`
}

// RentGenerationResult reports one run of the monthly rent generator
type RentGenerationResult struct {
	BillingPeriod   string `json:"billing_period"`
	CreatedCount    int    `json:"created_count"`
	ConsideredCount int    `json:"considered_count"`
	Message         string `json:"message"`
}

func toChargeResponse(c *ledger.Charge) ChargeResponse {
	return ChargeResponse{
		ID:            c.ID,
		LeaseID:       c.LeaseID,
		Amount:        c.Amount.Int64(),
		Type:          c.Type.String(),
		Description:   c.Description,
		DueDate:       c.DueDate,
		BillingPeriod: c.BillingPeriod,
		IsVoided:      c.IsVoided,
		Allocated:     c.Allocated().Int64(),
		Remaining:     c.Remaining().Int64(),
		CreatedAt:     c.CreatedAt,
	}
}

func toAllocationResponse(a *ledger.PaymentAllocation) AllocationResponse {
	return AllocationResponse{
		ID:        a.ID,
		PaymentID: a.PaymentID,
		ChargeID:  a.ChargeID,
		Amount:    a.Amount.Int64(),
		CreatedAt: a.CreatedAt,
	}
}

func toPaymentResponse(p *ledger.Payment) PaymentResponse {
	allocations := make([]AllocationResponse, 0, len(p.Allocations))
	for i := range p.Allocations {
		allocations = append(allocations, toAllocationResponse(&p.Allocations[i]))
	}
	return PaymentResponse{
		ID:           p.ID,
		LeaseID:      p.LeaseID,
		Amount:       p.Amount.Int64(),
		Method:       p.Method.String(),
		DateReceived: p.DateReceived,
		IsRefunded:   p.IsRefunded,
		Allocated:    p.Allocated().Int64(),
		Unallocated:  p.Unallocated().Int64(),
		Allocations:  allocations,
	}
}

func toLeaseResponse(l *ledger.Lease) LeaseResponse {
	return LeaseResponse{
		ID:         l.ID,
		TenantID:   l.TenantID,
		UnitID:     l.UnitID,
		StartDate:  l.StartDate,
		EndDate:    l.EndDate,
		RentAmount: l.RentAmount.Int64(),
		IsActive:   l.IsActive,
		CreatedAt:  l.CreatedAt,
	}
}
