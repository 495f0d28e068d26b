package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/money"
)

// NeverBreaksEven is reported as the break-even horizon when refinancing
// saves nothing per month.
const NeverBreaksEven = 999

var neverBreaksEven = decimal.NewFromInt(NeverBreaksEven)

// RefinancePolicy holds the recommendation thresholds. A refinance is
// recommended when lifetime savings exceed MinLifetimeSavings and the
// break-even horizon is shorter than MaxBreakEvenMonths.
type RefinancePolicy struct {
	MinLifetimeSavings decimal.Decimal
	MaxBreakEvenMonths int
}

// DefaultRefinancePolicy returns the 5000 / 36 month thresholds.
func DefaultRefinancePolicy() RefinancePolicy {
	return RefinancePolicy{
		MinLifetimeSavings: decimal.NewFromInt(5000),
		MaxBreakEvenMonths: 36,
	}
}

// RefinanceInput is the loan state and the proposed new terms.
type RefinanceInput struct {
	CurrentBalance decimal.Decimal
	CurrentRate    decimal.Decimal
	CurrentPayment decimal.Decimal
	NewRate        decimal.Decimal
	ClosingCosts   decimal.Decimal
	// RemainingMonths falls back to TermMonths when zero.
	RemainingMonths int
	TermMonths      int
}

// RefinanceResult is the computed comparison of both paths.
type RefinanceResult struct {
	CurrentPayment      decimal.Decimal
	NewPayment          decimal.Decimal
	CurrentPathInterest decimal.Decimal
	NewPathInterest     decimal.Decimal
	MonthlySavings      decimal.Decimal
	LifetimeSavings     decimal.Decimal
	Months              int
	BreakEvenMonths     int
	IsRecommended       bool
}

// RefinanceAnalyzer compares keeping a loan against refinancing it.
// It is stateless and safe for concurrent use.
type RefinanceAnalyzer struct {
	policy RefinancePolicy
}

// NewRefinanceAnalyzer creates an analyzer applying policy.
func NewRefinanceAnalyzer(policy RefinancePolicy) *RefinanceAnalyzer {
	return &RefinanceAnalyzer{policy: policy}
}

// Policy returns the thresholds in use.
func (a *RefinanceAnalyzer) Policy() RefinancePolicy { return a.policy }

// Analyze projects interest over the remaining months under the current
// payment and rate, and under a payment recomputed at the new rate. Neither
// projection forces its last balance to zero.
func (a *RefinanceAnalyzer) Analyze(in RefinanceInput) (RefinanceResult, error) {
	months := in.RemainingMonths
	if months <= 0 {
		months = in.TermMonths
	}
	switch {
	case months < 1:
		return RefinanceResult{}, model.Invalid("remaining months must be at least 1")
	case in.CurrentBalance.IsNegative():
		return RefinanceResult{}, model.Invalid("current balance must not be negative")
	case in.ClosingCosts.IsNegative():
		return RefinanceResult{}, model.Invalid("closing costs must not be negative")
	}
	if err := model.ValidateRate("current rate", in.CurrentRate); err != nil {
		return RefinanceResult{}, err
	}
	if err := model.ValidateRate("new rate", in.NewRate); err != nil {
		return RefinanceResult{}, err
	}

	closing := money.RoundCents(in.ClosingCosts)
	currentPayment := money.RoundCents(in.CurrentPayment)
	newPayment := model.CalculateMonthlyPayment(in.CurrentBalance, in.NewRate, months)

	current := model.Amortize(model.AmortizationParams{
		Balance:    in.CurrentBalance,
		AnnualRate: in.CurrentRate,
		Payment:    currentPayment,
		Periods:    months,
	})
	proposed := model.Amortize(model.AmortizationParams{
		Balance:    in.CurrentBalance,
		AnnualRate: in.NewRate,
		Payment:    newPayment,
		Periods:    months,
	})

	res := RefinanceResult{
		CurrentPayment:      currentPayment,
		NewPayment:          newPayment,
		CurrentPathInterest: current.TotalInterest,
		NewPathInterest:     proposed.TotalInterest,
		MonthlySavings:      currentPayment.Sub(newPayment),
		LifetimeSavings:     current.TotalInterest.Sub(proposed.TotalInterest).Sub(closing),
		Months:              months,
	}
	res.BreakEvenMonths = breakEvenMonths(closing, res.MonthlySavings)
	res.IsRecommended = res.LifetimeSavings.GreaterThan(a.policy.MinLifetimeSavings) &&
		res.BreakEvenMonths < a.policy.MaxBreakEvenMonths

	return res, nil
}

// breakEvenMonths is ceil(closingCosts / monthlySavings), capped at
// NeverBreaksEven.
func breakEvenMonths(closingCosts, monthlySavings decimal.Decimal) int {
	if !monthlySavings.IsPositive() {
		return NeverBreaksEven
	}
	months := closingCosts.Div(monthlySavings).Ceil()
	if months.GreaterThanOrEqual(neverBreaksEven) {
		return NeverBreaksEven
	}
	return int(months.IntPart())
}

// Record turns a result into the audit record stored for loanID.
func Record(loanID, ownerID string, in RefinanceInput, res RefinanceResult, now time.Time) model.RefinanceAnalysis {
	return model.RefinanceAnalysis{
		ID:                  uuid.New().String(),
		LoanID:              loanID,
		OwnerID:             ownerID,
		AnalysisDate:        now,
		CurrentRate:         in.CurrentRate,
		NewRate:             in.NewRate,
		ClosingCosts:        money.RoundCents(in.ClosingCosts),
		CurrentPayment:      res.CurrentPayment,
		NewPayment:          res.NewPayment,
		CurrentPathInterest: res.CurrentPathInterest,
		NewPathInterest:     res.NewPathInterest,
		MonthlySavings:      res.MonthlySavings,
		LifetimeSavings:     res.LifetimeSavings,
		RemainingMonths:     res.Months,
		BreakEvenMonths:     res.BreakEvenMonths,
		IsRecommended:       res.IsRecommended,
	}
}
