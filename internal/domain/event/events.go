package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const aggregateLoan = "Loan"

// Event types published on the loan topic.
const (
	TypeLoanCreated         = "loans.loan.created"
	TypeScheduleRegenerated = "loans.schedule.regenerated"
	TypePaymentApplied      = "loans.payment.applied"
	TypeLoanPaidOff         = "loans.loan.paid_off"
	TypeRefinanceAnalyzed   = "loans.refinance.analyzed"
)

// LoanCreated is raised when a loan is registered with its first schedule.
type LoanCreated struct {
	events.BaseEvent
	Principal      decimal.Decimal `json:"principal"`
	Currency       string          `json:"currency"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	TermMonths     int             `json:"term_months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	StartDate      time.Time       `json:"start_date"`
}

func NewLoanCreated(
	loanID, ownerID string,
	principal decimal.Decimal, currency string,
	rate decimal.Decimal, termMonths int, payment decimal.Decimal,
	startDate, now time.Time,
) LoanCreated {
	return LoanCreated{
		BaseEvent:      events.NewBaseEvent(TypeLoanCreated, loanID, aggregateLoan, ownerID, now),
		Principal:      principal,
		Currency:       currency,
		InterestRate:   rate,
		TermMonths:     termMonths,
		MonthlyPayment: payment,
		StartDate:      startDate,
	}
}

// ScheduleRegenerated is raised whenever the stored schedule is replaced
// because the loan terms changed.
type ScheduleRegenerated struct {
	events.BaseEvent
	ScheduleVersion int             `json:"schedule_version"`
	TotalEntries    int             `json:"total_entries"`
	MonthlyPayment  decimal.Decimal `json:"monthly_payment"`
	TotalInterest   decimal.Decimal `json:"total_interest"`
}

func NewScheduleRegenerated(
	loanID, ownerID string,
	scheduleVersion, totalEntries int,
	payment, totalInterest decimal.Decimal,
	now time.Time,
) ScheduleRegenerated {
	return ScheduleRegenerated{
		BaseEvent:       events.NewBaseEvent(TypeScheduleRegenerated, loanID, aggregateLoan, ownerID, now),
		ScheduleVersion: scheduleVersion,
		TotalEntries:    totalEntries,
		MonthlyPayment:  payment,
		TotalInterest:   totalInterest,
	}
}

// PaymentApplied is raised for every payment reconciled against the schedule.
type PaymentApplied struct {
	events.BaseEvent
	PaymentID        string          `json:"payment_id"`
	PaymentNumber    int             `json:"payment_number"`
	Amount           decimal.Decimal `json:"amount"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	BalanceAfter     decimal.Decimal `json:"balance_after"`
	Method           string          `json:"method"`
	Type             string          `json:"type"`
}

func NewPaymentApplied(
	loanID, ownerID, paymentID string, paymentNumber int,
	amount, interest, principal, balanceAfter decimal.Decimal,
	method, paymentType string, now time.Time,
) PaymentApplied {
	return PaymentApplied{
		BaseEvent:        events.NewBaseEvent(TypePaymentApplied, loanID, aggregateLoan, ownerID, now),
		PaymentID:        paymentID,
		PaymentNumber:    paymentNumber,
		Amount:           amount,
		InterestPortion:  interest,
		PrincipalPortion: principal,
		BalanceAfter:     balanceAfter,
		Method:           method,
		Type:             paymentType,
	}
}

// LoanPaidOff is raised when a payment brings the balance to zero.
type LoanPaidOff struct {
	events.BaseEvent
}

func NewLoanPaidOff(loanID, ownerID string, now time.Time) LoanPaidOff {
	return LoanPaidOff{
		BaseEvent: events.NewBaseEvent(TypeLoanPaidOff, loanID, aggregateLoan, ownerID, now),
	}
}

// RefinanceAnalyzed is raised after a refinance analysis is computed,
// whether or not its audit record was stored.
type RefinanceAnalyzed struct {
	events.BaseEvent
	AnalysisID      string          `json:"analysis_id"`
	CurrentRate     decimal.Decimal `json:"current_rate"`
	NewRate         decimal.Decimal `json:"new_rate"`
	LifetimeSavings decimal.Decimal `json:"lifetime_savings"`
	BreakEvenMonths int             `json:"break_even_months"`
	IsRecommended   bool            `json:"is_recommended"`
}

func NewRefinanceAnalyzed(
	loanID, ownerID, analysisID string,
	currentRate, newRate, lifetimeSavings decimal.Decimal,
	breakEvenMonths int, recommended bool, now time.Time,
) RefinanceAnalyzed {
	return RefinanceAnalyzed{
		BaseEvent:       events.NewBaseEvent(TypeRefinanceAnalyzed, loanID, aggregateLoan, ownerID, now),
		AnalysisID:      analysisID,
		CurrentRate:     currentRate,
		NewRate:         newRate,
		LifetimeSavings: lifetimeSavings,
		BreakEvenMonths: breakEvenMonths,
		IsRecommended:   recommended,
	}
}
