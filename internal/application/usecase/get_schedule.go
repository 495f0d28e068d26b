package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/application/dto"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/port"
)

// GetScheduleUseCase returns a loan's full stored schedule, read through
// the schedule cache.
type GetScheduleUseCase struct {
	loanRepo port.LoanRepository
	cache    port.ScheduleCache
	logger   *slog.Logger
}

// NewGetScheduleUseCase wires dependencies.
func NewGetScheduleUseCase(loanRepo port.LoanRepository, cache port.ScheduleCache, logger *slog.Logger) *GetScheduleUseCase {
	return &GetScheduleUseCase{loanRepo: loanRepo, cache: cache, logger: logger}
}

// Execute returns the schedule. Cache errors degrade to a database read.
func (uc *GetScheduleUseCase) Execute(ctx context.Context, req dto.GetLoanRequest) (dto.ScheduleResponse, error) {
	ctx, span := startSpan(ctx, "GetSchedule", req.OwnerID, req.LoanID)
	defer span.End()

	entries, ok, err := uc.cache.Get(ctx, req.OwnerID, req.LoanID)
	if err != nil {
		uc.logger.WarnContext(ctx, "read cached schedule", "loan_id", req.LoanID, "error", err)
	}
	if ok {
		return dto.ScheduleResponse{LoanID: req.LoanID, Entries: toScheduleEntries(entries)}, nil
	}

	loan, err := uc.loanRepo.FindByID(ctx, req.OwnerID, req.LoanID)
	if err != nil {
		return dto.ScheduleResponse{}, fail(span, fmt.Errorf("find loan: %w", err))
	}
	entries = loan.Schedule()
	cacheSchedule(ctx, uc.cache, uc.logger, loan)

	return dto.ScheduleResponse{LoanID: loan.ID(), Entries: toScheduleEntries(entries)}, nil
}
