package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/ledger"
	"github.com/rentledger/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// RiskThreshold is the arrears above which an active lease is on the watchlist
const RiskThreshold ledger.Cents = 10000

// PortfolioSnapshot is the raw state the portfolio metrics are derived from
type PortfolioSnapshot struct {
	Properties     []property.Property
	Units          []property.Unit
	Tenants        []property.Tenant
	ActiveLeases   []ledger.Lease
	Leases         []ledger.Lease
	Charges        []ledger.Charge
	RevenueByLease map[uuid.UUID]ledger.Cents
	LastPayment    map[uuid.UUID]time.Time
	MonthlyRevenue ledger.Cents
	GeneratedAt    time.Time
}

// DerivePortfolioMetrics computes portfolio metrics from a snapshot.
// Charges must be non-voided and carry their allocations.
func DerivePortfolioMetrics(snap PortfolioSnapshot) PortfolioMetrics {
	var totalArrears, totalDeposits ledger.Cents
	arrearsByLease := make(map[uuid.UUID]ledger.Cents)
	for i := range snap.Charges {
		c := &snap.Charges[i]
		if c.IsVoided {
			continue
		}
		if c.Type.IsDeposit() {
			totalDeposits += c.Allocated()
			continue
		}
		if r := c.Remaining(); c.Type.CountsAsArrears() && r > 0 {
			totalArrears += r
			arrearsByLease[c.LeaseID] += r
		}
	}

	return PortfolioMetrics{
		TotalArrears:        totalArrears.Int64(),
		TotalDeposits:       totalDeposits.Int64(),
		MonthlyRevenue:      snap.MonthlyRevenue.Int64(),
		PropertyPerformance: derivePropertyPerformance(snap),
		RiskWatchlist:       deriveRiskWatchlist(snap, arrearsByLease),
		GeneratedAt:         snap.GeneratedAt,
	}
}

func derivePropertyPerformance(snap PortfolioSnapshot) []PropertyPerformance {
	occupied := make(map[uuid.UUID]bool, len(snap.ActiveLeases))
	for _, l := range snap.ActiveLeases {
		occupied[l.UnitID] = true
	}

	leasesByUnit := make(map[uuid.UUID][]uuid.UUID)
	for _, l := range snap.Leases {
		leasesByUnit[l.UnitID] = append(leasesByUnit[l.UnitID], l.ID)
	}

	type tally struct {
		total, occupied int
		revenue         ledger.Cents
	}
	byProperty := make(map[uuid.UUID]*tally, len(snap.Properties))
	for _, p := range snap.Properties {
		byProperty[p.ID] = &tally{}
	}
	for _, u := range snap.Units {
		t, ok := byProperty[u.PropertyID]
		if !ok {
			continue
		}
		t.total++
		if occupied[u.ID] {
			t.occupied++
		}
		for _, leaseID := range leasesByUnit[u.ID] {
			t.revenue += snap.RevenueByLease[leaseID]
		}
	}

	result := make([]PropertyPerformance, 0, len(snap.Properties))
	for _, p := range snap.Properties {
		t := byProperty[p.ID]
		result = append(result, PropertyPerformance{
			PropertyID:    p.ID,
			Name:          p.Name,
			Revenue:       t.revenue.Int64(),
			TotalUnits:    t.total,
			OccupiedUnits: t.occupied,
			OccupancyRate: occupancyRate(t.occupied, t.total),
		})
	}
	return result
}

// occupancyRate returns occupied/total as a percentage rounded to two places
func occupancyRate(occupied, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := decimal.NewFromInt(int64(occupied)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
	return rate.InexactFloat64()
}

func deriveRiskWatchlist(snap PortfolioSnapshot, arrearsByLease map[uuid.UUID]ledger.Cents) []RiskEntry {
	tenants := make(map[uuid.UUID]*property.Tenant, len(snap.Tenants))
	for i := range snap.Tenants {
		tenants[snap.Tenants[i].ID] = &snap.Tenants[i]
	}
	units := make(map[uuid.UUID]*property.Unit, len(snap.Units))
	for i := range snap.Units {
		units[snap.Units[i].ID] = &snap.Units[i]
	}

	watchlist := make([]RiskEntry, 0)
	for _, l := range snap.ActiveLeases {
		owed := arrearsByLease[l.ID]
		if owed <= RiskThreshold {
			continue
		}
		entry := RiskEntry{
			TenantID:  l.TenantID,
			LeaseID:   l.ID,
			UnitID:    l.UnitID,
			TotalOwed: owed.Int64(),
		}
		if t, ok := tenants[l.TenantID]; ok {
			entry.TenantName = t.Name
		}
		if u, ok := units[l.UnitID]; ok {
			entry.UnitNumber = u.UnitNumber
		}
		if last, ok := snap.LastPayment[l.ID]; ok {
			entry.LastPaymentDate = &last
		}
		watchlist = append(watchlist, entry)
	}

	sort.SliceStable(watchlist, func(i, j int) bool {
		if watchlist[i].TotalOwed != watchlist[j].TotalOwed {
			return watchlist[i].TotalOwed > watchlist[j].TotalOwed
		}
		return watchlist[i].TenantName < watchlist[j].TenantName
	})
	return watchlist
}

// BuildLeaseLedger derives the ledger view of one lease
func BuildLeaseLedger(lease *ledger.Lease, charges []ledger.Charge, payments []ledger.Payment) LeaseLedger {
	var totalCharged, totalPaid ledger.Cents
	timeline := make([]TimelineEntry, 0, len(charges)+len(payments))

	for i := range charges {
		c := &charges[i]
		if !c.IsVoided {
			totalCharged += c.Amount
		}
		remaining := c.Remaining().Int64()
		if c.IsVoided {
			remaining = 0
		}
		timeline = append(timeline, TimelineEntry{
			Kind:         TimelineKindCharge,
			ID:           c.ID,
			Date:         c.DueDate,
			Amount:       c.Amount.Int64(),
			Type:         c.Type.String(),
			Description:  c.Description,
			IsVoided:     c.IsVoided,
			RemainingDue: &remaining,
			createdAt:    c.CreatedAt,
		})
	}
	for i := range payments {
		p := &payments[i]
		if !p.IsRefunded {
			totalPaid += p.Amount
		}
		unallocated := p.Unallocated().Int64()
		if p.IsRefunded {
			unallocated = 0
		}
		timeline = append(timeline, TimelineEntry{
			Kind:              TimelineKindPayment,
			ID:                p.ID,
			Date:              p.DateReceived,
			Amount:            p.Amount.Int64(),
			Method:            p.Method.String(),
			IsRefunded:        p.IsRefunded,
			UnallocatedAmount: &unallocated,
			createdAt:         p.CreatedAt,
		})
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		a, b := timeline[i], timeline[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.createdAt.Equal(b.createdAt) {
			return a.createdAt.After(b.createdAt)
		}
		return a.ID.String() > b.ID.String()
	})

	balance := ledger.LeaseBalance(charges, payments)
	return LeaseLedger{
		LeaseID:         lease.ID,
		IsActive:        lease.IsActive,
		Balance:         balance.Int64(),
		BalanceDisplay:  balance.FormatUSD(),
		HeldDeposit:     ledger.HeldDeposit(charges).Int64(),
		RequiredDeposit: ledger.RequiredDeposit(charges).Int64(),
		TotalCharged:    totalCharged.Int64(),
		TotalPaid:       totalPaid.Int64(),
		Timeline:        timeline,
	}
}
