package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SchedulePreviewSize is how many leading entries GenerateSchedule returns.
const SchedulePreviewSize = 12

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreateLoanRequest registers a loan for OwnerID.
type CreateLoanRequest struct {
	StartDate  time.Time       `json:"start_date"`
	OwnerID    string          `json:"owner_id"`
	Name       string          `json:"name"`
	Currency   string          `json:"currency"`
	Principal  decimal.Decimal `json:"principal"`
	AnnualRate decimal.Decimal `json:"annual_rate"`
	TermMonths int             `json:"term_months"`
}

// GetLoanRequest identifies a loan owned by OwnerID.
type GetLoanRequest struct {
	OwnerID string `json:"owner_id"`
	LoanID  string `json:"loan_id"`
}

// GenerateScheduleRequest replaces a loan's terms and schedule.
type GenerateScheduleRequest struct {
	StartDate  time.Time       `json:"start_date"`
	OwnerID    string          `json:"owner_id"`
	LoanID     string          `json:"loan_id"`
	Principal  decimal.Decimal `json:"principal"`
	AnnualRate decimal.Decimal `json:"annual_rate"`
	// MonthlyPayment overrides the calculated payment when positive.
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TermMonths     int             `json:"term_months"`
}

// AnalyzeRefinanceRequest proposes a new rate for a loan.
type AnalyzeRefinanceRequest struct {
	OwnerID      string          `json:"owner_id"`
	LoanID       string          `json:"loan_id"`
	NewRate      decimal.Decimal `json:"new_rate"`
	ClosingCosts decimal.Decimal `json:"closing_costs"`
}

// ApplyPaymentRequest records a payment against a loan. Method and Type
// default to BANK_TRANSFER and REGULAR; a zero PaymentDate means today.
type ApplyPaymentRequest struct {
	PaymentDate   time.Time       `json:"payment_date"`
	OwnerID       string          `json:"owner_id"`
	LoanID        string          `json:"loan_id"`
	Method        string          `json:"method"`
	Type          string          `json:"type"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	StartDate       time.Time       `json:"start_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	Principal       decimal.Decimal `json:"principal"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	MonthlyPayment  decimal.Decimal `json:"monthly_payment"`
	TermMonths      int             `json:"term_months"`
	RemainingMonths int             `json:"remaining_months"`
	ScheduleVersion int             `json:"schedule_version"`
}

// ScheduleEntry is one amortization period.
type ScheduleEntry struct {
	PaymentDate      time.Time       `json:"payment_date"`
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount"`
	InterestAmount   decimal.Decimal `json:"interest_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	PaymentNumber    int             `json:"payment_number"`
	IsPaid           bool            `json:"is_paid"`
}

// GenerateScheduleResponse carries the first SchedulePreviewSize entries of
// the newly persisted schedule.
type GenerateScheduleResponse struct {
	LoanID          string          `json:"loan_id"`
	MonthlyPayment  decimal.Decimal `json:"monthly_payment"`
	TotalInterest   decimal.Decimal `json:"total_interest"`
	Entries         []ScheduleEntry `json:"entries"`
	TotalEntries    int             `json:"total_entries"`
	ScheduleVersion int             `json:"schedule_version"`
}

// ScheduleResponse carries a loan's full persisted schedule.
type ScheduleResponse struct {
	LoanID  string          `json:"loan_id"`
	Entries []ScheduleEntry `json:"entries"`
}

// RefinanceAnalysisResponse is a computed refinance comparison.
type RefinanceAnalysisResponse struct {
	AnalysisDate        time.Time       `json:"analysis_date"`
	ID                  string          `json:"id"`
	LoanID              string          `json:"loan_id"`
	CurrentRate         decimal.Decimal `json:"current_rate"`
	NewRate             decimal.Decimal `json:"new_rate"`
	ClosingCosts        decimal.Decimal `json:"closing_costs"`
	CurrentPayment      decimal.Decimal `json:"current_payment"`
	NewPayment          decimal.Decimal `json:"new_payment"`
	CurrentPathInterest decimal.Decimal `json:"current_path_interest"`
	NewPathInterest     decimal.Decimal `json:"new_path_interest"`
	MonthlySavings      decimal.Decimal `json:"monthly_savings"`
	LifetimeSavings     decimal.Decimal `json:"lifetime_savings"`
	RemainingMonths     int             `json:"remaining_months"`
	BreakEvenMonths     int             `json:"break_even_months"`
	IsRecommended       bool            `json:"is_recommended"`
}

// ApplyPaymentResponse reports how a payment was split and its effect.
type ApplyPaymentResponse struct {
	PaymentID        string          `json:"payment_id"`
	LoanID           string          `json:"loan_id"`
	LoanStatus       string          `json:"loan_status"`
	Amount           decimal.Decimal `json:"amount"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	NewBalance       decimal.Decimal `json:"new_balance"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	PaymentNumber    int             `json:"payment_number"`
	RemainingMonths  int             `json:"remaining_months"`
}

// PaymentResponse is one entry of a loan's payment history.
type PaymentResponse struct {
	PaymentDate      time.Time       `json:"payment_date"`
	CreatedAt        time.Time       `json:"created_at"`
	ID               string          `json:"id"`
	Method           string          `json:"method"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	BalanceAfter     decimal.Decimal `json:"balance_after"`
	PaymentNumber    int             `json:"payment_number"`
}
