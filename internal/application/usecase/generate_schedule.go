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

// GenerateScheduleUseCase recomputes a loan's schedule from new terms and
// replaces the stored one.
type GenerateScheduleUseCase struct {
	loanRepo  port.LoanRepository
	cache     port.ScheduleCache
	publisher port.EventPublisher
	metrics   port.MetricsRecorder
	logger    *slog.Logger
}

// NewGenerateScheduleUseCase wires dependencies.
func NewGenerateScheduleUseCase(
	loanRepo port.LoanRepository,
	cache port.ScheduleCache,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *GenerateScheduleUseCase {
	return &GenerateScheduleUseCase{
		loanRepo:  loanRepo,
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute validates the terms, regenerates and persists the schedule, and
// returns its first dto.SchedulePreviewSize entries. The schedule is only
// reported once it is stored.
func (uc *GenerateScheduleUseCase) Execute(ctx context.Context, req dto.GenerateScheduleRequest) (dto.GenerateScheduleResponse, error) {
	ctx, span := startSpan(ctx, "GenerateSchedule", req.OwnerID, req.LoanID)
	defer span.End()

	terms := model.ScheduleTerms{
		LoanID:         req.LoanID,
		Principal:      req.Principal,
		AnnualRate:     req.AnnualRate,
		TermMonths:     req.TermMonths,
		StartDate:      req.StartDate,
		MonthlyPayment: req.MonthlyPayment,
	}
	if err := terms.Validate(); err != nil {
		return dto.GenerateScheduleResponse{}, fail(span, err)
	}

	loan, err := uc.loanRepo.FindByID(ctx, req.OwnerID, req.LoanID)
	if err != nil {
		return dto.GenerateScheduleResponse{}, fail(span, fmt.Errorf("find loan: %w", err))
	}

	loan, res, err := loan.RegenerateSchedule(terms, time.Now().UTC())
	if err != nil {
		return dto.GenerateScheduleResponse{}, fail(span, fmt.Errorf("regenerate schedule: %w", err))
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		uc.metrics.PersistenceFailed(ctx, "generate_schedule")
		return dto.GenerateScheduleResponse{}, fail(span, fmt.Errorf("save schedule: %w", err))
	}
	uc.metrics.ScheduleGenerated(ctx, len(res.Entries))
	cacheSchedule(ctx, uc.cache, uc.logger, loan)

	uc.logger.InfoContext(ctx, "schedule regenerated",
		"loan_id", loan.ID(),
		"schedule_version", loan.ScheduleVersion(),
		"entries", len(res.Entries),
	)
	publish(ctx, uc.publisher, uc.logger, loan.DomainEvents())

	preview := res.Entries
	if len(preview) > dto.SchedulePreviewSize {
		preview = preview[:dto.SchedulePreviewSize]
	}
	return dto.GenerateScheduleResponse{
		LoanID:          loan.ID(),
		MonthlyPayment:  res.Payment,
		TotalInterest:   res.TotalInterest,
		Entries:         toScheduleEntries(preview),
		TotalEntries:    len(res.Entries),
		ScheduleVersion: loan.ScheduleVersion(),
	}, nil
}
