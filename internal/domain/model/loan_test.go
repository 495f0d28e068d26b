package model

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/event"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/valueobject"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/testutil"
)

var now = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestLoan(t *testing.T, principal, rate string, term int) Loan {
	t.Helper()
	loan, err := NewLoan(NewLoanParams{
		OwnerID:    testutil.OwnerID.String(),
		Name:       "Mortgage",
		Currency:   "USD",
		Principal:  d(principal),
		AnnualRate: d(rate),
		TermMonths: term,
		StartDate:  testutil.Date(2024, time.January, 15),
	}, now)
	require.NoError(t, err)
	return loan
}

func eventTypes(events []event.DomainEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.EventType())
	}
	return out
}

func sumPrincipal(entries []AmortizationScheduleEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.PrincipalAmount)
	}
	return sum
}

func TestNewLoan(t *testing.T) {
	loan := newTestLoan(t, "100000", "6", 360)

	assert.NotEmpty(t, loan.ID())
	assert.Equal(t, testutil.OwnerID.String(), loan.OwnerID())
	assert.Equal(t, "USD", loan.Currency().Code())
	assert.True(t, loan.Status().Equal(valueobject.LoanStatusActive))
	testutil.AssertDecimal(t, "100000", loan.CurrentBalance())
	testutil.AssertDecimal(t, "599.55", loan.MonthlyPayment())
	assert.Equal(t, 360, loan.RemainingMonths())
	assert.Equal(t, 1, loan.ScheduleVersion())
	assert.Equal(t, 1, loan.Version())
	assert.Len(t, loan.Schedule(), 360)
	assert.Equal(t, loan.ID(), loan.Schedule()[0].LoanID)
	assert.Equal(t, []string{event.TypeLoanCreated}, eventTypes(loan.DomainEvents()))
}

func TestNewLoan_Validation(t *testing.T) {
	base := NewLoanParams{
		OwnerID:    "owner",
		Name:       "Car",
		Currency:   "EUR",
		Principal:  d("5000"),
		AnnualRate: d("3"),
		TermMonths: 24,
		StartDate:  testutil.Date(2024, time.January, 1),
	}

	tests := map[string]func(*NewLoanParams){
		"missing owner":  func(p *NewLoanParams) { p.OwnerID = "" },
		"missing name":   func(p *NewLoanParams) { p.Name = "" },
		"bad currency":   func(p *NewLoanParams) { p.Currency = "usd" },
		"zero principal": func(p *NewLoanParams) { p.Principal = decimal.Zero },
		"negative rate":  func(p *NewLoanParams) { p.AnnualRate = d("-1") },
		"zero term":      func(p *NewLoanParams) { p.TermMonths = 0 },
		"missing start":  func(p *NewLoanParams) { p.StartDate = time.Time{} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p := base
			mutate(&p)
			_, err := NewLoan(p, now)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
		})
	}
}

func TestLoan_ApplyPayment_SettlesEarliestEntryAndRegeneratesTail(t *testing.T) {
	loan := newTestLoan(t, "100000", "6", 360).ClearEvents()
	paidOn := testutil.Date(2024, time.February, 14)

	next, payment, err := loan.ApplyPayment(PaymentInput{
		Amount:      d("599.55"),
		PaymentDate: paidOn,
		Method:      valueobject.PaymentMethodAutopay,
		Type:        valueobject.PaymentTypeRegular,
	}, now)
	require.NoError(t, err)

	testutil.AssertDecimal(t, "500.00", payment.InterestPortion)
	testutil.AssertDecimal(t, "99.55", payment.PrincipalPortion)
	testutil.AssertDecimal(t, "99900.45", payment.BalanceAfter)
	assert.Equal(t, 1, payment.PaymentNumber)
	assert.Equal(t, paidOn, payment.PaymentDate)
	assert.Equal(t, loan.ID(), payment.LoanID)

	testutil.AssertDecimal(t, "99900.45", next.CurrentBalance())
	assert.Equal(t, 359, next.RemainingMonths())
	assert.Equal(t, 2, next.ScheduleVersion())
	assert.InDelta(t, 599.55, next.MonthlyPayment().InexactFloat64(), 0.01)

	schedule := next.Schedule()
	require.Len(t, schedule, 360)
	assert.True(t, schedule[0].IsPaid)
	testutil.AssertDecimal(t, "99900.45", schedule[0].RemainingBalance)
	assert.False(t, schedule[1].IsPaid)
	assert.Equal(t, 2, schedule[1].PaymentNumber)
	assert.Equal(t, testutil.Date(2024, time.March, 15), schedule[1].PaymentDate)
	assert.True(t, schedule[359].RemainingBalance.IsZero())
	testutil.AssertDecimal(t, "100000", sumPrincipal(schedule))

	assert.Equal(t, []LoanPayment{payment}, next.PendingPayments())
	assert.Equal(t, []string{event.TypePaymentApplied}, eventTypes(next.DomainEvents()))

	// The original value is untouched.
	assert.False(t, loan.Schedule()[0].IsPaid)
	assert.Empty(t, loan.PendingPayments())
	testutil.AssertDecimal(t, "100000", loan.CurrentBalance())
}

func TestLoan_ApplyPayment_ExtraPaymentLowersTail(t *testing.T) {
	loan := newTestLoan(t, "100000", "6", 360)

	next, payment, err := loan.ApplyPayment(PaymentInput{
		Amount: d("50000"),
		Method: valueobject.PaymentMethodBankTransfer,
		Type:   valueobject.PaymentTypeExtra,
	}, now)
	require.NoError(t, err)

	testutil.AssertDecimal(t, "49500", payment.PrincipalPortion)
	testutil.AssertDecimal(t, "50500", next.CurrentBalance())
	assert.Equal(t, now, payment.PaymentDate, "missing date defaults to now")
	assert.True(t, next.MonthlyPayment().LessThan(loan.MonthlyPayment()))
	assert.Len(t, next.Schedule(), 360)
	testutil.AssertDecimal(t, "50500", sumPrincipal(next.Schedule()[1:]))
}

func TestLoan_ApplyPayment_SequentialPaymentsSettleInOrder(t *testing.T) {
	loan := newTestLoan(t, "1200", "0", 12)

	var err error
	for i := 1; i <= 3; i++ {
		var p LoanPayment
		loan, p, err = loan.ApplyPayment(PaymentInput{Amount: d("100")}, now)
		require.NoError(t, err)
		assert.Equal(t, i, p.PaymentNumber)
	}

	testutil.AssertDecimal(t, "900", loan.CurrentBalance())
	assert.Equal(t, 9, loan.RemainingMonths())
	assert.Len(t, loan.PendingPayments(), 3)
	schedule := loan.Schedule()
	require.Len(t, schedule, 12)
	for i, e := range schedule {
		assert.Equal(t, i < 3, e.IsPaid, "entry %d", e.PaymentNumber)
		assert.Equal(t, i+1, e.PaymentNumber)
	}
	testutil.AssertDecimal(t, "100", loan.MonthlyPayment())
}

func TestLoan_ApplyPayment_PaysOff(t *testing.T) {
	loan := newTestLoan(t, "1000", "0", 3).ClearEvents()

	next, payment, err := loan.ApplyPayment(PaymentInput{
		Amount: d("1000"),
		Type:   valueobject.PaymentTypePayoff,
	}, now)
	require.NoError(t, err)

	assert.True(t, payment.BalanceAfter.IsZero())
	assert.True(t, next.Status().Equal(valueobject.LoanStatusPaidOff))
	assert.Equal(t, 0, next.RemainingMonths())
	require.Len(t, next.Schedule(), 1)
	assert.True(t, next.Schedule()[0].IsPaid)
	assert.Equal(t,
		[]string{event.TypePaymentApplied, event.TypeLoanPaidOff},
		eventTypes(next.DomainEvents()))

	_, _, err = next.ApplyPayment(PaymentInput{Amount: d("1")}, now)
	assert.ErrorIs(t, err, ErrLoanNotActive)
}

func TestLoan_ApplyPayment_BalloonWhenTermExhausted(t *testing.T) {
	loan := newTestLoan(t, "1000", "0", 1)

	next, payment, err := loan.ApplyPayment(PaymentInput{Amount: d("400")}, now)
	require.NoError(t, err)

	assert.Equal(t, 1, payment.PaymentNumber)
	testutil.AssertDecimal(t, "600", next.CurrentBalance())
	assert.Equal(t, 1, next.RemainingMonths())
	testutil.AssertDecimal(t, "600", next.MonthlyPayment())

	schedule := next.Schedule()
	require.Len(t, schedule, 2)
	assert.Equal(t, 2, schedule[1].PaymentNumber)
	testutil.AssertDecimal(t, "600", schedule[1].PaymentAmount)
	assert.True(t, schedule[1].RemainingBalance.IsZero())
}

func TestLoan_ApplyPayment_RejectsNonPositiveAmount(t *testing.T) {
	loan := newTestLoan(t, "1000", "5", 12)

	for _, amount := range []string{"0", "-10"} {
		next, _, err := loan.ApplyPayment(PaymentInput{Amount: d(amount)}, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, loan.CurrentBalance(), next.CurrentBalance())
	}
}

func TestLoan_RegenerateSchedule(t *testing.T) {
	loan := newTestLoan(t, "100000", "6", 360).ClearEvents()
	start := testutil.Date(2024, time.July, 1)

	next, res, err := loan.RegenerateSchedule(ScheduleTerms{
		LoanID:     loan.ID(),
		Principal:  d("50000"),
		AnnualRate: d("5"),
		TermMonths: 120,
		StartDate:  start,
	}, now)
	require.NoError(t, err)

	assert.Len(t, res.Entries, 120)
	assert.Equal(t, res.Entries, next.Schedule())
	testutil.AssertDecimal(t, "50000", next.Principal())
	testutil.AssertDecimal(t, "50000", next.CurrentBalance())
	assert.Equal(t, 120, next.TermMonths())
	assert.Equal(t, 120, next.RemainingMonths())
	assert.Equal(t, start, next.StartDate())
	assert.Equal(t, res.Payment, next.MonthlyPayment())
	assert.Equal(t, 2, next.ScheduleVersion())
	assert.Equal(t, []string{event.TypeScheduleRegenerated}, eventTypes(next.DomainEvents()))

	assert.Len(t, loan.Schedule(), 360, "original loan keeps its schedule")
}

func TestLoan_RegenerateSchedule_Rejects(t *testing.T) {
	loan := newTestLoan(t, "1000", "5", 12)

	_, _, err := loan.RegenerateSchedule(ScheduleTerms{
		LoanID:     "another-loan",
		Principal:  d("1000"),
		AnnualRate: d("5"),
		TermMonths: 12,
		StartDate:  testutil.Date(2024, time.January, 1),
	}, now)
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = loan.RegenerateSchedule(ScheduleTerms{
		LoanID:     loan.ID(),
		Principal:  d("1000"),
		AnnualRate: d("5"),
		TermMonths: 0,
		StartDate:  testutil.Date(2024, time.January, 1),
	}, now)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReconstructLoan(t *testing.T) {
	loan := ReconstructLoan(LoanSnapshot{
		ID:              "loan-1",
		OwnerID:         "owner-1",
		Name:            "Student loan",
		Principal:       d("20000"),
		CurrentBalance:  d("15000"),
		InterestRate:    d("4.5"),
		TermMonths:      120,
		RemainingMonths: 80,
		MonthlyPayment:  d("207.28"),
		Status:          valueobject.LoanStatusActive,
		ScheduleVersion: 3,
		Version:         7,
	})

	assert.Equal(t, "loan-1", loan.ID())
	assert.Equal(t, 7, loan.Version())
	assert.Equal(t, 3, loan.ScheduleVersion())
	assert.Empty(t, loan.DomainEvents())
	assert.Nil(t, loan.Schedule())
}
