package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/event"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockLoanRepository struct {
	saveFunc     func(ctx context.Context, loan model.Loan) error
	findByIDFunc func(ctx context.Context, ownerID, id string) (model.Loan, error)
	savedLoans   []model.Loan
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.Loan) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, loan)
	}
	m.savedLoans = append(m.savedLoans, loan)
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, ownerID, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, ownerID, id)
	}
	return model.Loan{}, model.ErrLoanNotFound
}

// loanRepoWith serves loan to its owner only.
func loanRepoWith(loan model.Loan) *mockLoanRepository {
	return &mockLoanRepository{
		findByIDFunc: func(_ context.Context, ownerID, id string) (model.Loan, error) {
			if ownerID != loan.OwnerID() || id != loan.ID() {
				return model.Loan{}, model.ErrLoanNotFound
			}
			return loan, nil
		},
	}
}

type mockAnalysisRepository struct {
	appendFunc func(ctx context.Context, a model.RefinanceAnalysis) error
	listFunc   func(ctx context.Context, ownerID, loanID string) ([]model.RefinanceAnalysis, error)
	appended   []model.RefinanceAnalysis
}

func (m *mockAnalysisRepository) Append(ctx context.Context, a model.RefinanceAnalysis) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, a)
	}
	m.appended = append(m.appended, a)
	return nil
}

func (m *mockAnalysisRepository) ListByLoanID(ctx context.Context, ownerID, loanID string) ([]model.RefinanceAnalysis, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID, loanID)
	}
	return m.appended, nil
}

type mockPaymentRepository struct {
	listFunc func(ctx context.Context, ownerID, loanID string) ([]model.LoanPayment, error)
}

func (m *mockPaymentRepository) ListByLoanID(ctx context.Context, ownerID, loanID string) ([]model.LoanPayment, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID, loanID)
	}
	return nil, nil
}

type cacheWrite struct {
	loanID  string
	version int
	entries int
}

type mockScheduleCache struct {
	getFunc func(ctx context.Context, ownerID, loanID string) ([]model.AmortizationScheduleEntry, bool, error)
	setFunc func(ctx context.Context, ownerID, loanID string, version int, entries []model.AmortizationScheduleEntry) error
	writes  []cacheWrite
}

func (m *mockScheduleCache) Get(ctx context.Context, ownerID, loanID string) ([]model.AmortizationScheduleEntry, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, ownerID, loanID)
	}
	return nil, false, nil
}

func (m *mockScheduleCache) Set(ctx context.Context, ownerID, loanID string, version int, entries []model.AmortizationScheduleEntry) error {
	m.writes = append(m.writes, cacheWrite{loanID: loanID, version: version, entries: len(entries)})
	if m.setFunc != nil {
		return m.setFunc(ctx, ownerID, loanID, version, entries)
	}
	return nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func (m *mockEventPublisher) types() []string {
	out := make([]string, 0, len(m.publishedEvents))
	for _, e := range m.publishedEvents {
		out = append(out, e.EventType())
	}
	return out
}

type mockMetrics struct {
	mu                 sync.Mutex
	loansCreated       int
	schedules          []int
	refinances         []bool
	payments           []bool
	persistenceFailure []string
}

func (m *mockMetrics) LoanCreated(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loansCreated++
}

func (m *mockMetrics) ScheduleGenerated(_ context.Context, entries int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules = append(m.schedules, entries)
}

func (m *mockMetrics) RefinanceAnalyzed(_ context.Context, recommended bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refinances = append(m.refinances, recommended)
}

func (m *mockMetrics) PaymentApplied(_ context.Context, paidOff bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, paidOff)
}

func (m *mockMetrics) PersistenceFailed(_ context.Context, operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistenceFailure = append(m.persistenceFailure, operation)
}
