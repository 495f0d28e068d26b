package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/valueobject"
)

// PaymentRepo implements port.PaymentRepository. Payments are written by
// LoanRepo.Save together with the loan they change.
type PaymentRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentRepo creates a new PostgreSQL-backed payment history reader.
func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// ListByLoanID returns payments in the order they were applied.
func (r *PaymentRepo) ListByLoanID(ctx context.Context, ownerID, loanID string) ([]model.LoanPayment, error) {
	if !validIDs(ownerID, loanID) {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.loan_id, p.payment_number, p.payment_date, p.amount,
		       p.interest_portion, p.principal_portion, p.balance_after,
		       p.method, p.payment_type, p.created_at
		FROM loan_payments p
		JOIN loans l ON l.id = p.loan_id
		WHERE l.owner_id = $1 AND p.loan_id = $2
		ORDER BY p.created_at, p.payment_number`, ownerID, loanID)
	if err != nil {
		return nil, persistenceError("query payments", err)
	}
	defer rows.Close()

	var out []model.LoanPayment
	for rows.Next() {
		var (
			p                model.LoanPayment
			method, typeName string
		)
		if err := rows.Scan(
			&p.ID, &p.LoanID, &p.PaymentNumber, &p.PaymentDate, &p.Amount,
			&p.InterestPortion, &p.PrincipalPortion, &p.BalanceAfter,
			&method, &typeName, &p.CreatedAt,
		); err != nil {
			return nil, persistenceError("scan payment", err)
		}
		if p.Method, err = valueobject.NewPaymentMethod(method); err != nil {
			return nil, persistenceError("parse payment method", err)
		}
		if p.Type, err = valueobject.NewPaymentType(typeName); err != nil {
			return nil, persistenceError("parse payment type", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate payments", err)
	}
	return out, nil
}
