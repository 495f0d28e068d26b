package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefinanceAnalysis is the append-only audit record of one refinance
// analysis. It is never updated after creation.
type RefinanceAnalysis struct {
	AnalysisDate        time.Time
	ID                  string
	LoanID              string
	OwnerID             string
	CurrentRate         decimal.Decimal
	NewRate             decimal.Decimal
	ClosingCosts        decimal.Decimal
	CurrentPayment      decimal.Decimal
	NewPayment          decimal.Decimal
	CurrentPathInterest decimal.Decimal
	NewPathInterest     decimal.Decimal
	MonthlySavings      decimal.Decimal
	LifetimeSavings     decimal.Decimal
	RemainingMonths     int
	BreakEvenMonths     int
	IsRecommended       bool
}
