package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/application/dto"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/event"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/port"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/service"
)

// AnalyzeRefinanceUseCase compares a loan against a proposed new rate and
// appends the result to the audit log.
type AnalyzeRefinanceUseCase struct {
	loanRepo     port.LoanRepository
	analysisRepo port.RefinanceAnalysisRepository
	analyzer     *service.RefinanceAnalyzer
	publisher    port.EventPublisher
	metrics      port.MetricsRecorder
	logger       *slog.Logger
}

// NewAnalyzeRefinanceUseCase wires dependencies.
func NewAnalyzeRefinanceUseCase(
	loanRepo port.LoanRepository,
	analysisRepo port.RefinanceAnalysisRepository,
	analyzer *service.RefinanceAnalyzer,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *AnalyzeRefinanceUseCase {
	return &AnalyzeRefinanceUseCase{
		loanRepo:     loanRepo,
		analysisRepo: analysisRepo,
		analyzer:     analyzer,
		publisher:    publisher,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute runs the analysis. Failing to store the audit record is logged
// and does not fail the call.
func (uc *AnalyzeRefinanceUseCase) Execute(ctx context.Context, req dto.AnalyzeRefinanceRequest) (dto.RefinanceAnalysisResponse, error) {
	ctx, span := startSpan(ctx, "AnalyzeRefinance", req.OwnerID, req.LoanID)
	defer span.End()

	if err := model.ValidateRate("new rate", req.NewRate); err != nil {
		return dto.RefinanceAnalysisResponse{}, fail(span, err)
	}
	if req.ClosingCosts.IsNegative() {
		return dto.RefinanceAnalysisResponse{}, fail(span, model.Invalid("closing costs must not be negative"))
	}

	loan, err := uc.loanRepo.FindByID(ctx, req.OwnerID, req.LoanID)
	if err != nil {
		return dto.RefinanceAnalysisResponse{}, fail(span, fmt.Errorf("find loan: %w", err))
	}

	in := service.RefinanceInput{
		CurrentBalance:  loan.CurrentBalance(),
		CurrentRate:     loan.InterestRate(),
		CurrentPayment:  loan.MonthlyPayment(),
		RemainingMonths: loan.RemainingMonths(),
		TermMonths:      loan.TermMonths(),
		NewRate:         req.NewRate,
		ClosingCosts:    req.ClosingCosts,
	}
	res, err := uc.analyzer.Analyze(in)
	if err != nil {
		return dto.RefinanceAnalysisResponse{}, fail(span, fmt.Errorf("analyze refinance: %w", err))
	}

	now := time.Now().UTC()
	record := service.Record(loan.ID(), req.OwnerID, in, res, now)
	if err := uc.analysisRepo.Append(ctx, record); err != nil {
		uc.metrics.PersistenceFailed(ctx, "refinance_analysis")
		uc.logger.ErrorContext(ctx, "store refinance analysis",
			"loan_id", loan.ID(),
			"analysis_id", record.ID,
			"error", err,
		)
	}
	uc.metrics.RefinanceAnalyzed(ctx, res.IsRecommended)

	publish(ctx, uc.publisher, uc.logger, []event.DomainEvent{event.NewRefinanceAnalyzed(
		loan.ID(), req.OwnerID, record.ID,
		record.CurrentRate, record.NewRate, record.LifetimeSavings,
		record.BreakEvenMonths, record.IsRecommended, now,
	)})

	return toRefinanceResponse(record), nil
}

// ListRefinanceAnalysesUseCase returns a loan's refinance audit log.
type ListRefinanceAnalysesUseCase struct {
	loanRepo     port.LoanRepository
	analysisRepo port.RefinanceAnalysisRepository
}

// NewListRefinanceAnalysesUseCase wires dependencies.
func NewListRefinanceAnalysesUseCase(
	loanRepo port.LoanRepository,
	analysisRepo port.RefinanceAnalysisRepository,
) *ListRefinanceAnalysesUseCase {
	return &ListRefinanceAnalysesUseCase{loanRepo: loanRepo, analysisRepo: analysisRepo}
}

// Execute lists analyses newest first.
func (uc *ListRefinanceAnalysesUseCase) Execute(ctx context.Context, req dto.GetLoanRequest) ([]dto.RefinanceAnalysisResponse, error) {
	ctx, span := startSpan(ctx, "ListRefinanceAnalyses", req.OwnerID, req.LoanID)
	defer span.End()

	if _, err := uc.loanRepo.FindByID(ctx, req.OwnerID, req.LoanID); err != nil {
		return nil, fail(span, fmt.Errorf("find loan: %w", err))
	}

	analyses, err := uc.analysisRepo.ListByLoanID(ctx, req.OwnerID, req.LoanID)
	if err != nil {
		return nil, fail(span, fmt.Errorf("list refinance analyses: %w", err))
	}

	out := make([]dto.RefinanceAnalysisResponse, 0, len(analyses))
	for _, a := range analyses {
		out = append(out, toRefinanceResponse(a))
	}
	return out, nil
}
