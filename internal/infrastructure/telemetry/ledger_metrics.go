package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
var (
	AttrPaymentMethod = attribute.Key("payment_method")
	AttrChargeType    = attribute.Key("charge_type")
	AttrOperation     = attribute.Key("operation")
)

// LedgerMetrics records ledger activity. A nil *LedgerMetrics is valid and
// records nothing.
type LedgerMetrics struct {
	paymentsRecorded  *Counter
	centsAllocated    *Counter
	chargesIssued     *Counter
	chargesVoided     *Counter
	paymentsRefunded  *Counter
	rentGenerated     *Counter
	operationDuration *Histogram
}

// NewLedgerMetrics creates the ledger instruments on meter.
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &LedgerMetrics{}
	var err error
	if m.paymentsRecorded, err = NewCounter(meter, "ledger_payments_recorded_total", "Payments recorded", "{payments}"); err != nil {
		return nil, err
	}
	if m.centsAllocated, err = NewCounter(meter, "ledger_allocated_cents_total", "Cents allocated from payments to charges", "{cents}"); err != nil {
		return nil, err
	}
	if m.chargesIssued, err = NewCounter(meter, "ledger_charges_issued_total", "Charges issued", "{charges}"); err != nil {
		return nil, err
	}
	if m.chargesVoided, err = NewCounter(meter, "ledger_charges_voided_total", "Charges voided", "{charges}"); err != nil {
		return nil, err
	}
	if m.paymentsRefunded, err = NewCounter(meter, "ledger_payments_refunded_total", "Payments refunded", "{payments}"); err != nil {
		return nil, err
	}
	if m.rentGenerated, err = NewCounter(meter, "ledger_rent_charges_generated_total", "Rent charges created by the monthly generator", "{charges}"); err != nil {
		return nil, err
	}
	if m.operationDuration, err = NewHistogram(meter, "ledger_operation_duration_seconds", "Duration of ledger mutations", "s",
		[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}); err != nil {
		return nil, err
	}
	return m, nil
}

// PaymentRecorded counts a payment and the cents the waterfall applied.
func (m *LedgerMetrics) PaymentRecorded(ctx context.Context, method string, allocatedCents int64) {
	if m == nil {
		return
	}
	m.paymentsRecorded.Inc(ctx, AttrPaymentMethod.String(method))
	m.centsAllocated.Add(ctx, allocatedCents, AttrOperation.String("auto"))
}

// ManualAllocation counts cents moved by an operator.
func (m *LedgerMetrics) ManualAllocation(ctx context.Context, cents int64) {
	if m == nil {
		return
	}
	m.centsAllocated.Add(ctx, cents, AttrOperation.String("manual"))
}

// ChargeIssued counts a new charge.
func (m *LedgerMetrics) ChargeIssued(ctx context.Context, chargeType string) {
	if m == nil {
		return
	}
	m.chargesIssued.Inc(ctx, AttrChargeType.String(chargeType))
}

// ChargeVoided counts a void.
func (m *LedgerMetrics) ChargeVoided(ctx context.Context) {
	if m == nil {
		return
	}
	m.chargesVoided.Inc(ctx)
}

// PaymentRefunded counts a refund.
func (m *LedgerMetrics) PaymentRefunded(ctx context.Context) {
	if m == nil {
		return
	}
	m.paymentsRefunded.Inc(ctx)
}

// RentGenerated counts charges created by one generator run.
func (m *LedgerMetrics) RentGenerated(ctx context.Context, created int) {
	if m == nil || created == 0 {
		return
	}
	m.rentGenerated.Add(ctx, int64(created))
}

// ObserveOperation records how long a ledger mutation took.
func (m *LedgerMetrics) ObserveOperation(ctx context.Context, operation string, started time.Time) {
	if m == nil {
		return
	}
	m.operationDuration.RecordDuration(ctx, time.Since(started), AttrOperation.String(operation))
}
