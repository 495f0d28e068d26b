package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/application/dto"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/port"
)

// CreateLoanUseCase registers a loan and persists its first schedule.
type CreateLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
	metrics   port.MetricsRecorder
	logger    *slog.Logger
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute creates the loan.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req dto.CreateLoanRequest) (dto.LoanResponse, error) {
	ctx, span := startSpan(ctx, "CreateLoan", req.OwnerID, "")
	defer span.End()

	loan, err := model.NewLoan(model.NewLoanParams{
		OwnerID:    req.OwnerID,
		Name:       req.Name,
		Currency:   req.Currency,
		Principal:  req.Principal,
		AnnualRate: req.AnnualRate,
		TermMonths: req.TermMonths,
		StartDate:  req.StartDate,
	}, time.Now().UTC())
	if err != nil {
		return dto.LoanResponse{}, fail(span, fmt.Errorf("create loan: %w", err))
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		uc.metrics.PersistenceFailed(ctx, "create_loan")
		return dto.LoanResponse{}, fail(span, fmt.Errorf("save loan: %w", err))
	}
	uc.metrics.LoanCreated(ctx)
	uc.metrics.ScheduleGenerated(ctx, len(loan.Schedule()))

	uc.logger.InfoContext(ctx, "loan created",
		"loan_id", loan.ID(),
		"term_months", loan.TermMonths(),
		"monthly_payment", loan.MonthlyPayment().String(),
	)
	publish(ctx, uc.publisher, uc.logger, loan.DomainEvents())

	return toLoanResponse(loan), nil
}
