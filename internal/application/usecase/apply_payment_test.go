package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/application/dto"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/application/usecase"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/event"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/valueobject"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/testutil"
)

func paymentRequest(loanID, amount string) dto.ApplyPaymentRequest {
	return dto.ApplyPaymentRequest{
		OwnerID:       testutil.OwnerID.String(),
		LoanID:        loanID,
		PaymentAmount: d(amount),
		PaymentDate:   testutil.Date(2024, time.February, 15),
	}
}

func TestApplyPayment_Execute(t *testing.T) {
	t.Run("applies scheduled payment", func(t *testing.T) {
		loan := storedLoan(t, "10000", "6", 12)
		repo := loanRepoWith(loan)
		cache := &mockScheduleCache{}
		publisher := &mockEventPublisher{}
		metrics := &mockMetrics{}
		uc := usecase.NewApplyPaymentUseCase(repo, cache, publisher, metrics, discardLogger())

		resp, err := uc.Execute(context.Background(), paymentRequest(loan.ID(), "860.66"))

		require.NoError(t, err)
		assert.NotEmpty(t, resp.PaymentID)
		assert.Equal(t, "ACTIVE", resp.LoanStatus)
		testutil.AssertDecimal(t, "50", resp.InterestPortion)
		testutil.AssertDecimal(t, "810.66", resp.PrincipalPortion)
		testutil.AssertDecimal(t, "9189.34", resp.NewBalance)
		assert.Equal(t, 1, resp.PaymentNumber)
		assert.Equal(t, 11, resp.RemainingMonths)

		require.Len(t, repo.savedLoans, 1)
		saved := repo.savedLoans[0]
		pending := saved.PendingPayments()
		require.Len(t, pending, 1)
		assert.Equal(t, valueobject.PaymentMethodBankTransfer, pending[0].Method)
		assert.Equal(t, valueobject.PaymentTypeRegular, pending[0].Type)
		assert.True(t, saved.Schedule()[0].IsPaid)
		assert.Equal(t, loan.ScheduleVersion()+1, saved.ScheduleVersion())

		assert.Equal(t, []cacheWrite{{loanID: loan.ID(), version: saved.ScheduleVersion(), entries: 12}}, cache.writes)
		assert.Equal(t, []string{event.TypePaymentApplied}, publisher.types())
		assert.Equal(t, []bool{false}, metrics.payments)
	})

	t.Run("records method and type", func(t *testing.T) {
		loan := storedLoan(t, "10000", "6", 12)
		repo := loanRepoWith(loan)
		uc := usecase.NewApplyPaymentUseCase(repo, &mockScheduleCache{}, &mockEventPublisher{}, &mockMetrics{}, discardLogger())

		req := paymentRequest(loan.ID(), "2000")
		req.Method = "CARD"
		req.Type = "EXTRA"
		_, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		pending := repo.savedLoans[0].PendingPayments()
		assert.Equal(t, valueobject.PaymentMethodCard, pending[0].Method)
		assert.Equal(t, valueobject.PaymentTypeExtra, pending[0].Type)
	})

	t.Run("pays off loan", func(t *testing.T) {
		loan := storedLoan(t, "10000", "6", 12)
		publisher := &mockEventPublisher{}
		metrics := &mockMetrics{}
		uc := usecase.NewApplyPaymentUseCase(loanRepoWith(loan), &mockScheduleCache{}, publisher, metrics, discardLogger())

		resp, err := uc.Execute(context.Background(), paymentRequest(loan.ID(), "10050"))

		require.NoError(t, err)
		assert.Equal(t, "PAID_OFF", resp.LoanStatus)
		testutil.AssertDecimal(t, "0", resp.NewBalance)
		assert.Zero(t, resp.RemainingMonths)
		assert.Equal(t, []string{event.TypePaymentApplied, event.TypeLoanPaidOff}, publisher.types())
		assert.Equal(t, []bool{true}, metrics.payments)
	})

	t.Run("rejects paid off loan", func(t *testing.T) {
		loan := storedLoan(t, "10000", "6", 12)
		paidOff, _, err := loan.ApplyPayment(model.PaymentInput{Amount: d("10050")}, loan.CreatedAt())
		require.NoError(t, err)
		repo := loanRepoWith(paidOff.ClearEvents())
		uc := usecase.NewApplyPaymentUseCase(repo, &mockScheduleCache{}, &mockEventPublisher{}, &mockMetrics{}, discardLogger())

		_, err = uc.Execute(context.Background(), paymentRequest(loan.ID(), "100"))

		require.ErrorIs(t, err, model.ErrLoanNotActive)
		assert.Empty(t, repo.savedLoans)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		loan := storedLoan(t, "10000", "6", 12)
		uc := usecase.NewApplyPaymentUseCase(loanRepoWith(loan), &mockScheduleCache{}, &mockEventPublisher{}, &mockMetrics{}, discardLogger())

		_, err := uc.Execute(context.Background(), paymentRequest(loan.ID(), "0"))
		require.ErrorIs(t, err, model.ErrValidation)

		req := paymentRequest(loan.ID(), "100")
		req.Method = "CHEQUE"
		_, err = uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, model.ErrValidation)

		req = paymentRequest(loan.ID(), "100")
		req.Type = "REFUND"
		_, err = uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("unknown loan", func(t *testing.T) {
		uc := usecase.NewApplyPaymentUseCase(&mockLoanRepository{}, &mockScheduleCache{}, &mockEventPublisher{}, &mockMetrics{}, discardLogger())

		_, err := uc.Execute(context.Background(), paymentRequest(testutil.LoanID.String(), "100"))

		require.ErrorIs(t, err, model.ErrLoanNotFound)
	})

	t.Run("concurrent modification", func(t *testing.T) {
		loan := storedLoan(t, "10000", "6", 12)
		repo := loanRepoWith(loan)
		repo.saveFunc = func(context.Context, model.Loan) error {
			return fmt.Errorf("save loan: %w", model.ErrConcurrentModification)
		}
		cache := &mockScheduleCache{}
		publisher := &mockEventPublisher{}
		metrics := &mockMetrics{}
		uc := usecase.NewApplyPaymentUseCase(repo, cache, publisher, metrics, discardLogger())

		_, err := uc.Execute(context.Background(), paymentRequest(loan.ID(), "860.66"))

		require.ErrorIs(t, err, model.ErrConcurrentModification)
		assert.Empty(t, cache.writes)
		assert.Empty(t, publisher.publishedEvents)
		assert.Empty(t, metrics.payments)
		assert.Equal(t, []string{"apply_payment"}, metrics.persistenceFailure)
	})
}

func TestListPayments_Execute(t *testing.T) {
	loan := storedLoan(t, "10000", "6", 12)

	t.Run("lists payments of owned loan", func(t *testing.T) {
		payments := &mockPaymentRepository{
			listFunc: func(_ context.Context, _, loanID string) ([]model.LoanPayment, error) {
				return []model.LoanPayment{{
					ID:               "p1",
					LoanID:           loanID,
					PaymentNumber:    1,
					Amount:           d("860.66"),
					InterestPortion:  d("50"),
					PrincipalPortion: d("810.66"),
					BalanceAfter:     d("9189.34"),
					Method:           valueobject.PaymentMethodAutopay,
					Type:             valueobject.PaymentTypeRegular,
				}}, nil
			},
		}
		uc := usecase.NewListPaymentsUseCase(loanRepoWith(loan), payments)

		resp, err := uc.Execute(context.Background(), dto.GetLoanRequest{
			OwnerID: testutil.OwnerID.String(),
			LoanID:  loan.ID(),
		})

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "AUTOPAY", resp[0].Method)
		assert.Equal(t, "REGULAR", resp[0].Type)
		testutil.AssertDecimal(t, "9189.34", resp[0].BalanceAfter)
	})

	t.Run("other owner", func(t *testing.T) {
		uc := usecase.NewListPaymentsUseCase(loanRepoWith(loan), &mockPaymentRepository{})

		_, err := uc.Execute(context.Background(), dto.GetLoanRequest{
			OwnerID: testutil.OtherOwnerID.String(),
			LoanID:  loan.ID(),
		})

		require.ErrorIs(t, err, model.ErrLoanNotFound)
	})

	t.Run("repository error", func(t *testing.T) {
		payments := &mockPaymentRepository{
			listFunc: func(context.Context, string, string) ([]model.LoanPayment, error) {
				return nil, fmt.Errorf("%w: timeout", model.ErrPersistence)
			},
		}
		uc := usecase.NewListPaymentsUseCase(loanRepoWith(loan), payments)

		_, err := uc.Execute(context.Background(), dto.GetLoanRequest{
			OwnerID: testutil.OwnerID.String(),
			LoanID:  loan.ID(),
		})

		require.ErrorIs(t, err, model.ErrPersistence)
	})
}
