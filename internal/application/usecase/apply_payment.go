package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/application/dto"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/port"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/valueobject"
)

// ApplyPaymentUseCase applies a payment to a loan and reconciles the
// stored schedule in the same transaction as the balance update.
type ApplyPaymentUseCase struct {
	loanRepo  port.LoanRepository
	cache     port.ScheduleCache
	publisher port.EventPublisher
	metrics   port.MetricsRecorder
	logger    *slog.Logger
}

// NewApplyPaymentUseCase wires dependencies.
func NewApplyPaymentUseCase(
	loanRepo port.LoanRepository,
	cache port.ScheduleCache,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{
		loanRepo:  loanRepo,
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute processes a payment against a loan.
func (uc *ApplyPaymentUseCase) Execute(ctx context.Context, req dto.ApplyPaymentRequest) (dto.ApplyPaymentResponse, error) {
	ctx, span := startSpan(ctx, "ApplyPayment", req.OwnerID, req.LoanID)
	defer span.End()

	if !req.PaymentAmount.IsPositive() {
		return dto.ApplyPaymentResponse{}, fail(span, model.Invalid("payment amount must be positive"))
	}
	method, err := valueobject.NewPaymentMethod(req.Method)
	if err != nil {
		return dto.ApplyPaymentResponse{}, fail(span, model.Invalid("%v", err))
	}
	paymentType, err := valueobject.NewPaymentType(req.Type)
	if err != nil {
		return dto.ApplyPaymentResponse{}, fail(span, model.Invalid("%v", err))
	}

	// 1. Retrieve the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.OwnerID, req.LoanID)
	if err != nil {
		return dto.ApplyPaymentResponse{}, fail(span, fmt.Errorf("find loan: %w", err))
	}

	// 2. Apply and reconcile.
	loan, payment, err := loan.ApplyPayment(model.PaymentInput{
		Amount:      req.PaymentAmount,
		PaymentDate: req.PaymentDate,
		Method:      method,
		Type:        paymentType,
	}, time.Now().UTC())
	if err != nil {
		return dto.ApplyPaymentResponse{}, fail(span, fmt.Errorf("apply payment: %w", err))
	}

	// 3. Persist balance, schedule and payment record together.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		uc.metrics.PersistenceFailed(ctx, "apply_payment")
		return dto.ApplyPaymentResponse{}, fail(span, fmt.Errorf("save loan: %w", err))
	}
	paidOff := loan.Status().Equal(valueobject.LoanStatusPaidOff)
	uc.metrics.PaymentApplied(ctx, paidOff)
	cacheSchedule(ctx, uc.cache, uc.logger, loan)

	uc.logger.InfoContext(ctx, "payment applied",
		"loan_id", loan.ID(),
		"payment_id", payment.ID,
		"payment_number", payment.PaymentNumber,
		"paid_off", paidOff,
	)

	// 4. Publish events.
	publish(ctx, uc.publisher, uc.logger, loan.DomainEvents())

	return dto.ApplyPaymentResponse{
		PaymentID:        payment.ID,
		LoanID:           loan.ID(),
		LoanStatus:       loan.Status().String(),
		Amount:           payment.Amount,
		InterestPortion:  payment.InterestPortion,
		PrincipalPortion: payment.PrincipalPortion,
		NewBalance:       payment.BalanceAfter,
		MonthlyPayment:   loan.MonthlyPayment(),
		PaymentNumber:    payment.PaymentNumber,
		RemainingMonths:  loan.RemainingMonths(),
	}, nil
}

// ListPaymentsUseCase returns a loan's payment history.
type ListPaymentsUseCase struct {
	loanRepo    port.LoanRepository
	paymentRepo port.PaymentRepository
}

// NewListPaymentsUseCase wires dependencies.
func NewListPaymentsUseCase(loanRepo port.LoanRepository, paymentRepo port.PaymentRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{loanRepo: loanRepo, paymentRepo: paymentRepo}
}

// Execute lists payments in the order they were applied.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, req dto.GetLoanRequest) ([]dto.PaymentResponse, error) {
	ctx, span := startSpan(ctx, "ListPayments", req.OwnerID, req.LoanID)
	defer span.End()

	if _, err := uc.loanRepo.FindByID(ctx, req.OwnerID, req.LoanID); err != nil {
		return nil, fail(span, fmt.Errorf("find loan: %w", err))
	}

	payments, err := uc.paymentRepo.ListByLoanID(ctx, req.OwnerID, req.LoanID)
	if err != nil {
		return nil, fail(span, fmt.Errorf("list payments: %w", err))
	}

	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}
