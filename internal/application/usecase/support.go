package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/application/dto"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/event"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/port"
)

var tracer = otel.Tracer("github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/application/usecase")

func startSpan(ctx context.Context, name, ownerID, loanID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("loan.owner_id", ownerID),
		attribute.String("loan.id", loanID),
	))
}

// fail records err on span and returns it unchanged.
func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// publish sends events after the state change is committed. Delivery
// failures are logged; the committed change stands.
func publish(ctx context.Context, publisher port.EventPublisher, logger *slog.Logger, events []event.DomainEvent) {
	if len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.WarnContext(ctx, "publish domain events", "count", len(events), "error", err)
	}
}

// cacheSchedule writes the loan's committed schedule through to the cache
// under its schedule version. Failures are logged.
func cacheSchedule(ctx context.Context, cache port.ScheduleCache, logger *slog.Logger, loan model.Loan) {
	if err := cache.Set(ctx, loan.OwnerID(), loan.ID(), loan.ScheduleVersion(), loan.Schedule()); err != nil {
		logger.WarnContext(ctx, "cache schedule", "loan_id", loan.ID(), "schedule_version", loan.ScheduleVersion(), "error", err)
	}
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func toLoanResponse(l model.Loan) dto.LoanResponse {
	return dto.LoanResponse{
		ID:              l.ID(),
		Name:            l.Name(),
		Currency:        l.Currency().Code(),
		Status:          l.Status().String(),
		Principal:       l.Principal(),
		CurrentBalance:  l.CurrentBalance(),
		InterestRate:    l.InterestRate(),
		MonthlyPayment:  l.MonthlyPayment(),
		TermMonths:      l.TermMonths(),
		RemainingMonths: l.RemainingMonths(),
		ScheduleVersion: l.ScheduleVersion(),
		StartDate:       l.StartDate(),
		CreatedAt:       l.CreatedAt(),
		UpdatedAt:       l.UpdatedAt(),
	}
}

func toScheduleEntries(entries []model.AmortizationScheduleEntry) []dto.ScheduleEntry {
	out := make([]dto.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ScheduleEntry{
			PaymentNumber:    e.PaymentNumber,
			PaymentDate:      e.PaymentDate,
			PaymentAmount:    e.PaymentAmount,
			PrincipalAmount:  e.PrincipalAmount,
			InterestAmount:   e.InterestAmount,
			RemainingBalance: e.RemainingBalance,
			IsPaid:           e.IsPaid,
		})
	}
	return out
}

func toRefinanceResponse(a model.RefinanceAnalysis) dto.RefinanceAnalysisResponse {
	return dto.RefinanceAnalysisResponse{
		ID:                  a.ID,
		LoanID:              a.LoanID,
		AnalysisDate:        a.AnalysisDate,
		CurrentRate:         a.CurrentRate,
		NewRate:             a.NewRate,
		ClosingCosts:        a.ClosingCosts,
		CurrentPayment:      a.CurrentPayment,
		NewPayment:          a.NewPayment,
		CurrentPathInterest: a.CurrentPathInterest,
		NewPathInterest:     a.NewPathInterest,
		MonthlySavings:      a.MonthlySavings,
		LifetimeSavings:     a.LifetimeSavings,
		RemainingMonths:     a.RemainingMonths,
		BreakEvenMonths:     a.BreakEvenMonths,
		IsRecommended:       a.IsRecommended,
	}
}

func toPaymentResponse(p model.LoanPayment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:               p.ID,
		PaymentNumber:    p.PaymentNumber,
		PaymentDate:      p.PaymentDate,
		CreatedAt:        p.CreatedAt,
		Method:           p.Method.String(),
		Type:             p.Type.String(),
		Amount:           p.Amount,
		InterestPortion:  p.InterestPortion,
		PrincipalPortion: p.PrincipalPortion,
		BalanceAfter:     p.BalanceAfter,
	}
}
