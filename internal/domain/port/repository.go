package port

import (
	"context"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/event"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRepository persists and retrieves loans together with their schedule.
type LoanRepository interface {
	// Save writes the loan row, replaces its whole schedule and inserts its
	// pending payments in one transaction. A stale version yields
	// model.ErrConcurrentModification; any other failure wraps
	// model.ErrPersistence.
	Save(ctx context.Context, loan model.Loan) error
	// FindByID returns model.ErrLoanNotFound unless the loan exists and
	// belongs to ownerID.
	FindByID(ctx context.Context, ownerID, id string) (model.Loan, error)
}

// RefinanceAnalysisRepository is the append-only refinance audit log.
type RefinanceAnalysisRepository interface {
	Append(ctx context.Context, analysis model.RefinanceAnalysis) error
	// ListByLoanID returns analyses newest first.
	ListByLoanID(ctx context.Context, ownerID, loanID string) ([]model.RefinanceAnalysis, error)
}

// PaymentRepository reads the payment history written by LoanRepository.Save.
type PaymentRepository interface {
	ListByLoanID(ctx context.Context, ownerID, loanID string) ([]model.LoanPayment, error)
}

// ScheduleCache is a cache of persisted schedules keyed by loan. A miss is
// reported as ok == false with a nil error. Set must ignore a version older
// than or equal to the one already cached.
type ScheduleCache interface {
	Get(ctx context.Context, ownerID, loanID string) (entries []model.AmortizationScheduleEntry, ok bool, err error)
	Set(ctx context.Context, ownerID, loanID string, version int, entries []model.AmortizationScheduleEntry) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Metrics port
// ---------------------------------------------------------------------------

// MetricsRecorder counts domain operations.
type MetricsRecorder interface {
	LoanCreated(ctx context.Context)
	ScheduleGenerated(ctx context.Context, entries int)
	RefinanceAnalyzed(ctx context.Context, recommended bool)
	PaymentApplied(ctx context.Context, paidOff bool)
	PersistenceFailed(ctx context.Context, operation string)
}
