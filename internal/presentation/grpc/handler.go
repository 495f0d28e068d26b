package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/application/dto"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/auth"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/money"
)

const dateLayout = time.DateOnly

// Executor is the shape shared by every use case.
type Executor[Req, Resp any] interface {
	Execute(ctx context.Context, req Req) (Resp, error)
}

// UseCases groups the operations LoanHandler exposes.
type UseCases struct {
	CreateLoan            Executor[dto.CreateLoanRequest, dto.LoanResponse]
	GetLoan               Executor[dto.GetLoanRequest, dto.LoanResponse]
	GenerateSchedule      Executor[dto.GenerateScheduleRequest, dto.GenerateScheduleResponse]
	GetSchedule           Executor[dto.GetLoanRequest, dto.ScheduleResponse]
	AnalyzeRefinance      Executor[dto.AnalyzeRefinanceRequest, dto.RefinanceAnalysisResponse]
	ListRefinanceAnalyses Executor[dto.GetLoanRequest, []dto.RefinanceAnalysisResponse]
	ApplyPayment          Executor[dto.ApplyPaymentRequest, dto.ApplyPaymentResponse]
	ListPayments          Executor[dto.GetLoanRequest, []dto.PaymentResponse]
}

// LoanHandler implements LoanServiceServer. Every call is scoped to the
// user id carried in the caller's token.
type LoanHandler struct {
	UnimplementedLoanServiceServer
	uc     UseCases
	logger *slog.Logger
}

// NewLoanHandler creates a new handler with all use-case dependencies.
func NewLoanHandler(uc UseCases, logger *slog.Logger) *LoanHandler {
	return &LoanHandler{uc: uc, logger: logger}
}

func (h *LoanHandler) CreateLoan(ctx context.Context, req *CreateLoanRequest) (*CreateLoanResponse, error) {
	owner, err := ownerID(ctx)
	if err != nil {
		return nil, err
	}
	principal, err := parseDecimal("principal", req.Principal, true)
	if err != nil {
		return nil, err
	}
	rate, err := parseDecimal("annual_rate", req.AnnualRate, true)
	if err != nil {
		return nil, err
	}
	start, err := parseDate("start_date", req.StartDate, true)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CreateLoan.Execute(ctx, dto.CreateLoanRequest{
		OwnerID:    owner,
		Name:       req.Name,
		Currency:   req.Currency,
		Principal:  principal,
		AnnualRate: rate,
		TermMonths: int(req.TermMonths),
		StartDate:  start,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "CreateLoan", err)
	}
	return &CreateLoanResponse{Loan: toLoan(resp)}, nil
}

func (h *LoanHandler) GetLoan(ctx context.Context, req *GetLoanRequest) (*GetLoanResponse, error) {
	get, err := loanRequest(ctx, req.LoanID)
	if err != nil {
		return nil, err
	}
	resp, err := h.uc.GetLoan.Execute(ctx, get)
	if err != nil {
		return nil, h.toStatus(ctx, "GetLoan", err)
	}
	return &GetLoanResponse{Loan: toLoan(resp)}, nil
}

func (h *LoanHandler) GenerateSchedule(ctx context.Context, req *GenerateScheduleRequest) (*GenerateScheduleResponse, error) {
	get, err := loanRequest(ctx, req.LoanID)
	if err != nil {
		return nil, err
	}
	principal, err := parseDecimal("principal", req.Principal, true)
	if err != nil {
		return nil, err
	}
	rate, err := parseDecimal("annual_rate", req.AnnualRate, true)
	if err != nil {
		return nil, err
	}
	payment, err := parseDecimal("monthly_payment", req.MonthlyPayment, false)
	if err != nil {
		return nil, err
	}
	start, err := parseDate("start_date", req.StartDate, true)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.GenerateSchedule.Execute(ctx, dto.GenerateScheduleRequest{
		OwnerID:        get.OwnerID,
		LoanID:         get.LoanID,
		Principal:      principal,
		AnnualRate:     rate,
		TermMonths:     int(req.TermMonths),
		StartDate:      start,
		MonthlyPayment: payment,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "GenerateSchedule", err)
	}
	return &GenerateScheduleResponse{
		LoanID:          resp.LoanID,
		MonthlyPayment:  money.FormatAmount(resp.MonthlyPayment),
		TotalInterest:   money.FormatAmount(resp.TotalInterest),
		Entries:         toEntries(resp.Entries),
		TotalEntries:    int32(resp.TotalEntries),
		ScheduleVersion: int32(resp.ScheduleVersion),
	}, nil
}

func (h *LoanHandler) GetSchedule(ctx context.Context, req *GetScheduleRequest) (*GetScheduleResponse, error) {
	get, err := loanRequest(ctx, req.LoanID)
	if err != nil {
		return nil, err
	}
	resp, err := h.uc.GetSchedule.Execute(ctx, get)
	if err != nil {
		return nil, h.toStatus(ctx, "GetSchedule", err)
	}
	return &GetScheduleResponse{LoanID: resp.LoanID, Entries: toEntries(resp.Entries)}, nil
}

func (h *LoanHandler) AnalyzeRefinance(ctx context.Context, req *AnalyzeRefinanceRequest) (*AnalyzeRefinanceResponse, error) {
	get, err := loanRequest(ctx, req.LoanID)
	if err != nil {
		return nil, err
	}
	newRate, err := parseDecimal("new_rate", req.NewRate, true)
	if err != nil {
		return nil, err
	}
	closing, err := parseDecimal("closing_costs", req.ClosingCosts, false)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.AnalyzeRefinance.Execute(ctx, dto.AnalyzeRefinanceRequest{
		OwnerID:      get.OwnerID,
		LoanID:       get.LoanID,
		NewRate:      newRate,
		ClosingCosts: closing,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "AnalyzeRefinance", err)
	}
	return &AnalyzeRefinanceResponse{Analysis: toAnalysis(resp)}, nil
}

func (h *LoanHandler) ListRefinanceAnalyses(ctx context.Context, req *ListRefinanceAnalysesRequest) (*ListRefinanceAnalysesResponse, error) {
	get, err := loanRequest(ctx, req.LoanID)
	if err != nil {
		return nil, err
	}
	resp, err := h.uc.ListRefinanceAnalyses.Execute(ctx, get)
	if err != nil {
		return nil, h.toStatus(ctx, "ListRefinanceAnalyses", err)
	}
	out := make([]*RefinanceAnalysis, 0, len(resp))
	for _, a := range resp {
		out = append(out, toAnalysis(a))
	}
	return &ListRefinanceAnalysesResponse{Analyses: out}, nil
}

func (h *LoanHandler) ApplyPayment(ctx context.Context, req *ApplyPaymentRequest) (*ApplyPaymentResponse, error) {
	get, err := loanRequest(ctx, req.LoanID)
	if err != nil {
		return nil, err
	}
	amount, err := parseDecimal("payment_amount", req.PaymentAmount, true)
	if err != nil {
		return nil, err
	}
	date, err := parseDate("payment_date", req.PaymentDate, false)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ApplyPayment.Execute(ctx, dto.ApplyPaymentRequest{
		OwnerID:       get.OwnerID,
		LoanID:        get.LoanID,
		PaymentAmount: amount,
		PaymentDate:   date,
		Method:        req.Method,
		Type:          req.Type,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "ApplyPayment", err)
	}
	return &ApplyPaymentResponse{
		PaymentID:        resp.PaymentID,
		LoanID:           resp.LoanID,
		LoanStatus:       resp.LoanStatus,
		Amount:           money.FormatAmount(resp.Amount),
		InterestPortion:  money.FormatAmount(resp.InterestPortion),
		PrincipalPortion: money.FormatAmount(resp.PrincipalPortion),
		NewBalance:       money.FormatAmount(resp.NewBalance),
		MonthlyPayment:   money.FormatAmount(resp.MonthlyPayment),
		PaymentNumber:    int32(resp.PaymentNumber),
		RemainingMonths:  int32(resp.RemainingMonths),
	}, nil
}

func (h *LoanHandler) ListPayments(ctx context.Context, req *ListPaymentsRequest) (*ListPaymentsResponse, error) {
	get, err := loanRequest(ctx, req.LoanID)
	if err != nil {
		return nil, err
	}
	resp, err := h.uc.ListPayments.Execute(ctx, get)
	if err != nil {
		return nil, h.toStatus(ctx, "ListPayments", err)
	}
	out := make([]*Payment, 0, len(resp))
	for _, p := range resp {
		out = append(out, &Payment{
			ID:               p.ID,
			PaymentNumber:    int32(p.PaymentNumber),
			PaymentDate:      p.PaymentDate.Format(dateLayout),
			CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339),
			Method:           p.Method,
			Type:             p.Type,
			Amount:           money.FormatAmount(p.Amount),
			InterestPortion:  money.FormatAmount(p.InterestPortion),
			PrincipalPortion: money.FormatAmount(p.PrincipalPortion),
			BalanceAfter:     money.FormatAmount(p.BalanceAfter),
		})
	}
	return &ListPaymentsResponse{Payments: out}, nil
}

// ---------------------------------------------------------------------------
// Request parsing
// ---------------------------------------------------------------------------

func ownerID(ctx context.Context) (string, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing credentials")
	}
	return claims.UserID.String(), nil
}

func loanRequest(ctx context.Context, loanID string) (dto.GetLoanRequest, error) {
	owner, err := ownerID(ctx)
	if err != nil {
		return dto.GetLoanRequest{}, err
	}
	if loanID == "" {
		return dto.GetLoanRequest{}, status.Error(codes.InvalidArgument, "loan_id is required")
	}
	return dto.GetLoanRequest{OwnerID: owner, LoanID: loanID}, nil
}

func parseDecimal(field, s string, required bool) (decimal.Decimal, error) {
	if s == "" {
		if required {
			return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s is required", field)
		}
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s: %q is not a decimal number", field, s)
	}
	return d, nil
}

func parseDate(field, s string, required bool) (time.Time, error) {
	if s == "" {
		if required {
			return time.Time{}, status.Errorf(codes.InvalidArgument, "%s is required", field)
		}
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "%s: %q is not a YYYY-MM-DD date", field, s)
	}
	return t, nil
}

// toStatus maps domain errors to gRPC codes. Unclassified errors are
// logged and reported without detail.
func (h *LoanHandler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, model.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrLoanNotFound):
		return status.Error(codes.NotFound, "loan not found")
	case errors.Is(err, model.ErrLoanNotActive):
		return status.Error(codes.FailedPrecondition, "loan is not active")
	case errors.Is(err, model.ErrConcurrentModification):
		return status.Error(codes.Aborted, "loan was modified concurrently, retry")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}
	h.logger.ErrorContext(ctx, "request failed", "method", method, "error", err)
	return status.Error(codes.Internal, "internal error")
}

// ---------------------------------------------------------------------------
// Response mapping
// ---------------------------------------------------------------------------

func toLoan(l dto.LoanResponse) *Loan {
	return &Loan{
		ID:              l.ID,
		Name:            l.Name,
		Currency:        l.Currency,
		Status:          l.Status,
		Principal:       money.FormatAmount(l.Principal),
		CurrentBalance:  money.FormatAmount(l.CurrentBalance),
		InterestRate:    l.InterestRate.String(),
		MonthlyPayment:  money.FormatAmount(l.MonthlyPayment),
		StartDate:       l.StartDate.Format(dateLayout),
		CreatedAt:       l.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       l.UpdatedAt.UTC().Format(time.RFC3339),
		TermMonths:      int32(l.TermMonths),
		RemainingMonths: int32(l.RemainingMonths),
		ScheduleVersion: int32(l.ScheduleVersion),
	}
}

func toEntries(entries []dto.ScheduleEntry) []*ScheduleEntry {
	out := make([]*ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, &ScheduleEntry{
			PaymentNumber:    int32(e.PaymentNumber),
			PaymentDate:      e.PaymentDate.Format(dateLayout),
			PaymentAmount:    money.FormatAmount(e.PaymentAmount),
			PrincipalAmount:  money.FormatAmount(e.PrincipalAmount),
			InterestAmount:   money.FormatAmount(e.InterestAmount),
			RemainingBalance: money.FormatAmount(e.RemainingBalance),
			IsPaid:           e.IsPaid,
		})
	}
	return out
}

func toAnalysis(a dto.RefinanceAnalysisResponse) *RefinanceAnalysis {
	return &RefinanceAnalysis{
		ID:                  a.ID,
		LoanID:              a.LoanID,
		AnalysisDate:        a.AnalysisDate.UTC().Format(time.RFC3339),
		CurrentRate:         a.CurrentRate.String(),
		NewRate:             a.NewRate.String(),
		ClosingCosts:        money.FormatAmount(a.ClosingCosts),
		CurrentPayment:      money.FormatAmount(a.CurrentPayment),
		NewPayment:          money.FormatAmount(a.NewPayment),
		CurrentPathInterest: money.FormatAmount(a.CurrentPathInterest),
		NewPathInterest:     money.FormatAmount(a.NewPathInterest),
		MonthlySavings:      money.FormatAmount(a.MonthlySavings),
		LifetimeSavings:     money.FormatAmount(a.LifetimeSavings),
		RemainingMonths:     int32(a.RemainingMonths),
		BreakEvenMonths:     int32(a.BreakEvenMonths),
		IsRecommended:       a.IsRecommended,
	}
}
