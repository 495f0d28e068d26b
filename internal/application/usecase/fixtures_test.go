package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/testutil"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// storedLoan returns a freshly created loan with its creation events cleared,
// as FindByID would return it.
func storedLoan(t *testing.T, principal, rate string, term int) model.Loan {
	t.Helper()
	loan, err := model.NewLoan(model.NewLoanParams{
		OwnerID:    testutil.OwnerID.String(),
		Name:       "Car loan",
		Currency:   "USD",
		Principal:  d(principal),
		AnnualRate: d(rate),
		TermMonths: term,
		StartDate:  testutil.Date(2024, time.January, 15),
	}, time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return loan.ClearEvents()
}
