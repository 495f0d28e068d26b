package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/money"
)

// MaxTermMonths bounds a loan term to 50 years of monthly periods.
const MaxTermMonths = 600

// MaxAnnualRate is the highest nominal annual rate in percent, and
// RateScale the most decimal places a rate may carry. Both fit the
// NUMERIC(9,4) rate columns, so a stored rate reads back unchanged.
const (
	MaxAnnualRate = 1000
	RateScale     = 4
)

var (
	monthsPerYearPercent = decimal.NewFromInt(1200)
	maxAnnualRate        = decimal.NewFromInt(MaxAnnualRate)
)

// ValidateRate rejects a rate that is negative, above MaxAnnualRate or finer
// than RateScale decimal places. name prefixes the message.
func ValidateRate(name string, rate decimal.Decimal) error {
	switch {
	case rate.IsNegative():
		return Invalid("%s must not be negative", name)
	case rate.GreaterThan(maxAnnualRate):
		return Invalid("%s must not exceed %d", name, MaxAnnualRate)
	case !rate.Equal(rate.Truncate(RateScale)):
		return Invalid("%s must have at most %d decimal places", name, RateScale)
	}
	return nil
}

// AmortizationScheduleEntry is one period of an amortization schedule.
// PrincipalAmount + InterestAmount == PaymentAmount for every entry.
type AmortizationScheduleEntry struct {
	PaymentDate      time.Time
	LoanID           string
	PaymentAmount    decimal.Decimal
	PrincipalAmount  decimal.Decimal
	InterestAmount   decimal.Decimal
	RemainingBalance decimal.Decimal
	PaymentNumber    int
	IsPaid           bool
}

// MonthlyRate converts a nominal annual percentage (6 means 6%) into the
// per-period rate.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(monthsPerYearPercent)
}

// CalculateMonthlyPayment returns the fixed payment that amortizes principal
// over termMonths equal payments, rounded to cents.
//
// The annuity formula
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// is evaluated in float64 for the power term; a zero rate degrades to the
// straight-line split principal / n. When (1+r)^n overflows the payment
// converges to interest only, P * r. Terms below one month yield zero.
func CalculateMonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths < 1 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(termMonths))
	if !annualRatePercent.IsPositive() {
		return money.RoundCents(principal.Div(n))
	}

	r := annualRatePercent.InexactFloat64() / 1200.0
	factor := math.Pow(1+r, float64(termMonths))
	if factor-1 == 0 {
		return money.RoundCents(principal.Div(n))
	}
	if math.IsInf(factor, 0) {
		return money.RoundCents(principal.Mul(MonthlyRate(annualRatePercent)))
	}
	payment := principal.InexactFloat64() * r * factor / (factor - 1)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return money.RoundCents(principal.Mul(MonthlyRate(annualRatePercent)))
	}
	return money.RoundCents(decimal.NewFromFloat(payment))
}

// AmortizationParams drives one run of Amortize.
type AmortizationParams struct {
	// StartDate anchors payment dates: payment number k falls on
	// AddMonths(StartDate, k).
	StartDate  time.Time
	LoanID     string
	Balance    decimal.Decimal
	AnnualRate decimal.Decimal
	Payment    decimal.Decimal
	Periods    int
	// FirstNumber is the payment number of the first simulated period.
	// Zero means 1.
	FirstNumber int
	// ForceZeroAtEnd makes the last period's principal absorb whatever
	// balance is left so the run ends at exactly zero.
	ForceZeroAtEnd bool
}

// AmortizationResult is the outcome of Amortize.
type AmortizationResult struct {
	Entries        []AmortizationScheduleEntry
	Payment        decimal.Decimal
	TotalInterest  decimal.Decimal
	TotalPrincipal decimal.Decimal
	EndingBalance  decimal.Decimal
}

// Amortize simulates Periods fixed payments against Balance. Each period:
//
//	interest  = round2(balance * monthlyRate)
//	principal = payment - interest, capped at the balance
//	balance  -= principal
//
// Once the balance reaches zero the remaining periods carry zero amounts.
// All amounts stay in cents so the running balance never drifts.
func Amortize(p AmortizationParams) AmortizationResult {
	first := p.FirstNumber
	if first < 1 {
		first = 1
	}
	rate := MonthlyRate(p.AnnualRate)
	balance := money.RoundCents(p.Balance)
	payment := money.RoundCents(p.Payment)

	res := AmortizationResult{
		Entries:        make([]AmortizationScheduleEntry, 0, max(p.Periods, 0)),
		Payment:        payment,
		TotalInterest:  decimal.Zero,
		TotalPrincipal: decimal.Zero,
	}

	for i := 0; i < p.Periods; i++ {
		number := first + i
		interest := money.RoundCents(balance.Mul(rate))
		principal := payment.Sub(interest)
		if principal.GreaterThan(balance) {
			principal = balance
		}
		if p.ForceZeroAtEnd && i == p.Periods-1 {
			principal = balance
		}

		balance = balance.Sub(principal)
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		res.TotalInterest = res.TotalInterest.Add(interest)
		res.TotalPrincipal = res.TotalPrincipal.Add(principal)
		res.Entries = append(res.Entries, AmortizationScheduleEntry{
			LoanID:           p.LoanID,
			PaymentNumber:    number,
			PaymentDate:      AddMonths(p.StartDate, number),
			PaymentAmount:    principal.Add(interest),
			PrincipalAmount:  principal,
			InterestAmount:   interest,
			RemainingBalance: balance,
		})
	}

	res.EndingBalance = balance
	return res
}

// ScheduleTerms are the inputs of GenerateSchedule.
type ScheduleTerms struct {
	StartDate  time.Time
	LoanID     string
	Principal  decimal.Decimal
	AnnualRate decimal.Decimal
	// MonthlyPayment overrides the calculated payment when positive.
	MonthlyPayment decimal.Decimal
	TermMonths     int
}

// Validate rejects terms that cannot produce a schedule.
func (t ScheduleTerms) Validate() error {
	switch {
	case t.LoanID == "":
		return Invalid("loan id is required")
	case !t.Principal.IsPositive():
		return Invalid("principal must be positive")
	case t.TermMonths < 1:
		return Invalid("term months must be at least 1")
	case t.TermMonths > MaxTermMonths:
		return Invalid("term months must not exceed %d", MaxTermMonths)
	case t.StartDate.IsZero():
		return Invalid("start date is required")
	case t.MonthlyPayment.IsNegative():
		return Invalid("monthly payment must not be negative")
	}
	return ValidateRate("annual rate", t.AnnualRate)
}

// GenerateSchedule builds the full TermMonths-entry schedule for t. The last
// entry always ends at a zero balance.
func GenerateSchedule(t ScheduleTerms) (AmortizationResult, error) {
	if err := t.Validate(); err != nil {
		return AmortizationResult{}, err
	}

	payment := t.MonthlyPayment
	if !payment.IsPositive() {
		payment = CalculateMonthlyPayment(t.Principal, t.AnnualRate, t.TermMonths)
	}

	return Amortize(AmortizationParams{
		LoanID:         t.LoanID,
		Balance:        t.Principal,
		AnnualRate:     t.AnnualRate,
		Payment:        payment,
		Periods:        t.TermMonths,
		StartDate:      t.StartDate,
		ForceZeroAtEnd: true,
	}), nil
}

// AddMonths moves t forward n calendar months keeping its day of month,
// clamped to the last day of shorter months (Jan 31 + 1 = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month(), t.Location()); d > last {
		d = last
	}
	hh, mm, ss := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
