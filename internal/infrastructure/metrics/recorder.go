package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/infrastructure/metrics"

// Recorder implements port.MetricsRecorder with OpenTelemetry counters.
type Recorder struct {
	loansCreated       metric.Int64Counter
	schedulesGenerated metric.Int64Counter
	scheduleEntries    metric.Int64Histogram
	refinanceAnalyses  metric.Int64Counter
	paymentsApplied    metric.Int64Counter
	persistenceErrors  metric.Int64Counter
}

// NewRecorder registers the loan instruments on provider.
func NewRecorder(provider metric.MeterProvider) (*Recorder, error) {
	meter := provider.Meter(meterName)
	r := &Recorder{}
	var err error

	if r.loansCreated, err = meter.Int64Counter("loans_created_total",
		metric.WithDescription("Loans registered.")); err != nil {
		return nil, fmt.Errorf("loans_created_total: %w", err)
	}
	if r.schedulesGenerated, err = meter.Int64Counter("loan_schedules_generated_total",
		metric.WithDescription("Amortization schedules generated and stored.")); err != nil {
		return nil, fmt.Errorf("loan_schedules_generated_total: %w", err)
	}
	if r.scheduleEntries, err = meter.Int64Histogram("loan_schedule_entries",
		metric.WithDescription("Entries per generated schedule."),
		metric.WithExplicitBucketBoundaries(12, 36, 60, 120, 180, 240, 360, 600)); err != nil {
		return nil, fmt.Errorf("loan_schedule_entries: %w", err)
	}
	if r.refinanceAnalyses, err = meter.Int64Counter("loan_refinance_analyses_total",
		metric.WithDescription("Refinance analyses computed, by recommendation.")); err != nil {
		return nil, fmt.Errorf("loan_refinance_analyses_total: %w", err)
	}
	if r.paymentsApplied, err = meter.Int64Counter("loan_payments_applied_total",
		metric.WithDescription("Payments applied, by whether they paid the loan off.")); err != nil {
		return nil, fmt.Errorf("loan_payments_applied_total: %w", err)
	}
	if r.persistenceErrors, err = meter.Int64Counter("loan_persistence_failures_total",
		metric.WithDescription("Failed writes, by operation.")); err != nil {
		return nil, fmt.Errorf("loan_persistence_failures_total: %w", err)
	}
	return r, nil
}

func (r *Recorder) LoanCreated(ctx context.Context) {
	r.loansCreated.Add(ctx, 1)
}

func (r *Recorder) ScheduleGenerated(ctx context.Context, entries int) {
	r.schedulesGenerated.Add(ctx, 1)
	r.scheduleEntries.Record(ctx, int64(entries))
}

func (r *Recorder) RefinanceAnalyzed(ctx context.Context, recommended bool) {
	r.refinanceAnalyses.Add(ctx, 1, metric.WithAttributes(attribute.Bool("recommended", recommended)))
}

func (r *Recorder) PaymentApplied(ctx context.Context, paidOff bool) {
	r.paymentsApplied.Add(ctx, 1, metric.WithAttributes(attribute.Bool("paid_off", paidOff)))
}

func (r *Recorder) PersistenceFailed(ctx context.Context, operation string) {
	r.persistenceErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}
