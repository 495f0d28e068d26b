package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/event"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/valueobject"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/money"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate. Mutations return a new copy.
//
// The loan exclusively owns its current schedule. The schedule is replaced
// as a whole and every replacement bumps scheduleVersion.
type Loan struct {
	startDate       time.Time
	createdAt       time.Time
	updatedAt       time.Time
	currency        money.Currency
	status          valueobject.LoanStatus
	id              string
	ownerID         string
	name            string
	principal       decimal.Decimal
	currentBalance  decimal.Decimal
	interestRate    decimal.Decimal
	monthlyPayment  decimal.Decimal
	schedule        []AmortizationScheduleEntry
	payments        []LoanPayment
	domainEvents    []event.DomainEvent
	termMonths      int
	remainingMonths int
	scheduleVersion int
	version         int
}

// NewLoanParams are the terms a loan is registered with.
type NewLoanParams struct {
	StartDate  time.Time
	OwnerID    string
	Name       string
	Currency   string
	Principal  decimal.Decimal
	AnnualRate decimal.Decimal
	TermMonths int
}

// NewLoan registers an ACTIVE loan and generates its first schedule.
func NewLoan(p NewLoanParams, now time.Time) (Loan, error) {
	if p.OwnerID == "" {
		return Loan{}, Invalid("owner id is required")
	}
	if p.Name == "" {
		return Loan{}, Invalid("name is required")
	}
	currency, err := money.NewCurrency(p.Currency)
	if err != nil {
		return Loan{}, Invalid("%v", err)
	}

	id := uuid.New().String()
	principal := money.RoundCents(p.Principal)
	res, err := GenerateSchedule(ScheduleTerms{
		LoanID:     id,
		Principal:  principal,
		AnnualRate: p.AnnualRate,
		TermMonths: p.TermMonths,
		StartDate:  p.StartDate,
	})
	if err != nil {
		return Loan{}, err
	}

	loan := Loan{
		id:              id,
		ownerID:         p.OwnerID,
		name:            p.Name,
		currency:        currency,
		principal:       principal,
		currentBalance:  principal,
		interestRate:    p.AnnualRate,
		termMonths:      p.TermMonths,
		remainingMonths: p.TermMonths,
		monthlyPayment:  res.Payment,
		startDate:       p.StartDate,
		status:          valueobject.LoanStatusActive,
		schedule:        res.Entries,
		scheduleVersion: 1,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}
	loan.domainEvents = append(loan.domainEvents, event.NewLoanCreated(
		id, p.OwnerID, principal, currency.Code(), p.AnnualRate,
		p.TermMonths, res.Payment, p.StartDate, now,
	))
	return loan, nil
}

// LoanSnapshot is the persisted state of a loan.
type LoanSnapshot struct {
	StartDate       time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Currency        money.Currency
	Status          valueobject.LoanStatus
	ID              string
	OwnerID         string
	Name            string
	Principal       decimal.Decimal
	CurrentBalance  decimal.Decimal
	InterestRate    decimal.Decimal
	MonthlyPayment  decimal.Decimal
	Schedule        []AmortizationScheduleEntry
	TermMonths      int
	RemainingMonths int
	ScheduleVersion int
	Version         int
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(s LoanSnapshot) Loan {
	return Loan{
		id:              s.ID,
		ownerID:         s.OwnerID,
		name:            s.Name,
		currency:        s.Currency,
		principal:       s.Principal,
		currentBalance:  s.CurrentBalance,
		interestRate:    s.InterestRate,
		termMonths:      s.TermMonths,
		remainingMonths: s.RemainingMonths,
		monthlyPayment:  s.MonthlyPayment,
		startDate:       s.StartDate,
		status:          s.Status,
		schedule:        s.Schedule,
		scheduleVersion: s.ScheduleVersion,
		version:         s.Version,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// RegenerateSchedule replaces the loan terms and its whole schedule. The
// balance resets to the new principal and the loan becomes ACTIVE again;
// to re-amortize what is still owed pass the outstanding balance as the
// principal. The returned result is the computed schedule.
func (l Loan) RegenerateSchedule(terms ScheduleTerms, now time.Time) (Loan, AmortizationResult, error) {
	if terms.LoanID != l.id {
		return l, AmortizationResult{}, Invalid("loan id %q does not match loan %q", terms.LoanID, l.id)
	}
	terms.Principal = money.RoundCents(terms.Principal)
	res, err := GenerateSchedule(terms)
	if err != nil {
		return l, AmortizationResult{}, err
	}

	next := l.copyForChange(now)
	next.principal = terms.Principal
	next.currentBalance = terms.Principal
	next.interestRate = terms.AnnualRate
	next.termMonths = terms.TermMonths
	next.remainingMonths = terms.TermMonths
	next.startDate = terms.StartDate
	next.monthlyPayment = res.Payment
	next.status = valueobject.LoanStatusActive
	next.schedule = res.Entries
	next.scheduleVersion = l.scheduleVersion + 1
	next.domainEvents = append(next.domainEvents, event.NewScheduleRegenerated(
		l.id, l.ownerID, next.scheduleVersion, len(res.Entries),
		res.Payment, res.TotalInterest, now,
	))
	return next, res, nil
}

// ApplyPayment reconciles a payment against the schedule:
//
//  1. the payment is split into interest and principal at the current balance;
//  2. the earliest unpaid entry is settled with the actual split and marked paid;
//  3. the remaining unpaid entries are regenerated from the new balance;
//  4. a LoanPayment record is queued for persistence with the loan.
//
// A zero balance pays the loan off and drops the unpaid tail. When no
// scheduled periods are left but a balance is, the tail is a single
// balloon period.
func (l Loan) ApplyPayment(in PaymentInput, now time.Time) (Loan, LoanPayment, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, LoanPayment{}, ErrLoanNotActive
	}
	if !in.Amount.IsPositive() {
		return l, LoanPayment{}, Invalid("payment amount must be positive")
	}
	if in.PaymentDate.IsZero() {
		in.PaymentDate = now
	}

	split := SplitPayment(l.currentBalance, l.interestRate, in.Amount)

	next := l.copyForChange(now)
	next.currentBalance = split.NewBalance
	next.remainingMonths = max(l.remainingMonths-1, 0)

	settled := l.firstUnpaid()
	paid := make([]AmortizationScheduleEntry, 0, len(l.schedule)+1)
	paymentNumber := 0
	if settled >= 0 {
		paid = append(paid, l.schedule[:settled]...)
		entry := l.schedule[settled]
		entry.PaymentAmount = split.InterestPortion.Add(split.PrincipalPortion)
		entry.InterestAmount = split.InterestPortion
		entry.PrincipalAmount = split.PrincipalPortion
		entry.RemainingBalance = split.NewBalance
		entry.IsPaid = true
		paid = append(paid, entry)
		paymentNumber = entry.PaymentNumber
	} else {
		paid = append(paid, l.schedule...)
	}

	nextNumber := len(paid) + 1
	if len(paid) > 0 {
		nextNumber = paid[len(paid)-1].PaymentNumber + 1
	}

	payment := LoanPayment{
		ID:               uuid.New().String(),
		LoanID:           l.id,
		PaymentNumber:    paymentNumber,
		Amount:           money.RoundCents(in.Amount),
		InterestPortion:  split.InterestPortion,
		PrincipalPortion: split.PrincipalPortion,
		BalanceAfter:     split.NewBalance,
		PaymentDate:      in.PaymentDate,
		Method:           in.Method,
		Type:             in.Type,
		CreatedAt:        now,
	}
	next.payments = append(next.payments, payment)
	next.domainEvents = append(next.domainEvents, event.NewPaymentApplied(
		l.id, l.ownerID, payment.ID, paymentNumber,
		payment.Amount, split.InterestPortion, split.PrincipalPortion, split.NewBalance,
		in.Method.String(), in.Type.String(), now,
	))

	if split.NewBalance.IsZero() {
		next.status = valueobject.LoanStatusPaidOff
		next.remainingMonths = 0
		next.schedule = paid
		next.scheduleVersion = l.scheduleVersion + 1
		next.domainEvents = append(next.domainEvents, event.NewLoanPaidOff(l.id, l.ownerID, now))
		return next, payment, nil
	}

	periods := next.remainingMonths
	if periods == 0 {
		periods = 1
		next.remainingMonths = 1
	}
	next.monthlyPayment = CalculateMonthlyPayment(split.NewBalance, l.interestRate, periods)
	tail := Amortize(AmortizationParams{
		LoanID:         l.id,
		Balance:        split.NewBalance,
		AnnualRate:     l.interestRate,
		Payment:        next.monthlyPayment,
		Periods:        periods,
		FirstNumber:    nextNumber,
		StartDate:      l.startDate,
		ForceZeroAtEnd: true,
	})
	next.schedule = append(paid, tail.Entries...)
	next.scheduleVersion = l.scheduleVersion + 1

	return next, payment, nil
}

func (l Loan) firstUnpaid() int {
	for i, e := range l.schedule {
		if !e.IsPaid {
			return i
		}
	}
	return -1
}

func (l Loan) copyForChange(now time.Time) Loan {
	next := l
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.payments = append([]LoanPayment(nil), l.payments...)
	return next
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                        { return l.id }
func (l Loan) OwnerID() string                   { return l.ownerID }
func (l Loan) Name() string                      { return l.name }
func (l Loan) Currency() money.Currency          { return l.currency }
func (l Loan) Principal() decimal.Decimal        { return l.principal }
func (l Loan) CurrentBalance() decimal.Decimal   { return l.currentBalance }
func (l Loan) InterestRate() decimal.Decimal     { return l.interestRate }
func (l Loan) TermMonths() int                   { return l.termMonths }
func (l Loan) RemainingMonths() int              { return l.remainingMonths }
func (l Loan) MonthlyPayment() decimal.Decimal   { return l.monthlyPayment }
func (l Loan) StartDate() time.Time              { return l.startDate }
func (l Loan) Status() valueobject.LoanStatus    { return l.status }
func (l Loan) ScheduleVersion() int              { return l.scheduleVersion }
func (l Loan) Version() int                      { return l.version }
func (l Loan) CreatedAt() time.Time              { return l.createdAt }
func (l Loan) UpdatedAt() time.Time              { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent { return l.domainEvents }

// Schedule returns a copy of the current amortization schedule.
func (l Loan) Schedule() []AmortizationScheduleEntry {
	if l.schedule == nil {
		return nil
	}
	out := make([]AmortizationScheduleEntry, len(l.schedule))
	copy(out, l.schedule)
	return out
}

// PendingPayments returns payment records not yet persisted.
func (l Loan) PendingPayments() []LoanPayment {
	return append([]LoanPayment(nil), l.payments...)
}

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}
