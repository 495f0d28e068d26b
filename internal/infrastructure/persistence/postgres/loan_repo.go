package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/valueobject"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/money"
	pkgpostgres "github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/postgres"
)

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Save persists the loan row, replaces its schedule and inserts its pending
// payments in one transaction.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	err := pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		loanQuery := `
			INSERT INTO loans (
				id, owner_id, name, currency,
				principal, current_balance, interest_rate, monthly_payment,
				term_months, remaining_months, start_date, status,
				schedule_version, version, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
			ON CONFLICT (id) DO UPDATE SET
				principal        = EXCLUDED.principal,
				current_balance  = EXCLUDED.current_balance,
				interest_rate    = EXCLUDED.interest_rate,
				monthly_payment  = EXCLUDED.monthly_payment,
				term_months      = EXCLUDED.term_months,
				remaining_months = EXCLUDED.remaining_months,
				start_date       = EXCLUDED.start_date,
				status           = EXCLUDED.status,
				schedule_version = EXCLUDED.schedule_version,
				version          = loans.version + 1,
				updated_at       = EXCLUDED.updated_at
			WHERE loans.version = $14 AND loans.owner_id = EXCLUDED.owner_id
		`
		tag, err := tx.Exec(ctx, loanQuery,
			loan.ID(), loan.OwnerID(), loan.Name(), loan.Currency().Code(),
			loan.Principal(), loan.CurrentBalance(), loan.InterestRate(), loan.MonthlyPayment(),
			loan.TermMonths(), loan.RemainingMonths(), loan.StartDate(), loan.Status().String(),
			loan.ScheduleVersion(), loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("upsert loan: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("loan %s at version %d: %w", loan.ID(), loan.Version(), model.ErrConcurrentModification)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM amortization_schedule_entries WHERE loan_id = $1`, loan.ID()); err != nil {
			return fmt.Errorf("delete schedule: %w", err)
		}

		batch := &pgx.Batch{}
		for _, e := range loan.Schedule() {
			batch.Queue(`
				INSERT INTO amortization_schedule_entries (
					loan_id, payment_number, payment_date, payment_amount,
					principal_amount, interest_amount, remaining_balance, is_paid,
					schedule_version
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
				loan.ID(), e.PaymentNumber, e.PaymentDate, e.PaymentAmount,
				e.PrincipalAmount, e.InterestAmount, e.RemainingBalance, e.IsPaid,
				loan.ScheduleVersion(),
			)
		}
		for _, p := range loan.PendingPayments() {
			batch.Queue(`
				INSERT INTO loan_payments (
					id, loan_id, payment_number, payment_date, amount,
					interest_portion, principal_portion, balance_after,
					method, payment_type, created_at
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
				ON CONFLICT (id) DO NOTHING`,
				p.ID, loan.ID(), p.PaymentNumber, p.PaymentDate, p.Amount,
				p.InterestPortion, p.PrincipalPortion, p.BalanceAfter,
				p.Method.String(), p.Type.String(), p.CreatedAt,
			)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("write schedule and payments: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrConcurrentModification) {
			return fmt.Errorf("save loan: %w", err)
		}
		return persistenceError("save loan", err)
	}
	return nil
}

// FindByID loads a loan and its schedule from one consistent snapshot.
func (r *LoanRepo) FindByID(ctx context.Context, ownerID, id string) (model.Loan, error) {
	if !validIDs(ownerID, id) {
		return model.Loan{}, model.ErrLoanNotFound
	}

	var loan model.Loan
	err := readSnapshot(ctx, r.pool, func(tx pgx.Tx) error {
		snap, err := scanLoan(tx.QueryRow(ctx, `
			SELECT id, owner_id, name, currency,
			       principal, current_balance, interest_rate, monthly_payment,
			       term_months, remaining_months, start_date, status,
			       schedule_version, version, created_at, updated_at
			FROM loans
			WHERE owner_id = $1 AND id = $2`, ownerID, id))
		if err != nil {
			return err
		}
		snap.Schedule, err = loadSchedule(ctx, tx, id)
		if err != nil {
			return err
		}
		loan = model.ReconstructLoan(snap)
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, model.ErrLoanNotFound
		}
		return model.Loan{}, persistenceError("find loan", err)
	}
	return loan, nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func scanLoan(row pgx.Row) (model.LoanSnapshot, error) {
	var (
		s                      model.LoanSnapshot
		currencyCode, statusDB string
	)
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &currencyCode,
		&s.Principal, &s.CurrentBalance, &s.InterestRate, &s.MonthlyPayment,
		&s.TermMonths, &s.RemainingMonths, &s.StartDate, &statusDB,
		&s.ScheduleVersion, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return model.LoanSnapshot{}, fmt.Errorf("scan loan: %w", err)
	}

	if s.Currency, err = money.NewCurrency(currencyCode); err != nil {
		return model.LoanSnapshot{}, fmt.Errorf("parse currency: %w", err)
	}
	if s.Status, err = valueobject.NewLoanStatus(statusDB); err != nil {
		return model.LoanSnapshot{}, fmt.Errorf("parse loan status: %w", err)
	}
	return s, nil
}

func loadSchedule(ctx context.Context, q pkgpostgres.Querier, loanID string) ([]model.AmortizationScheduleEntry, error) {
	rows, err := q.Query(ctx, `
		SELECT payment_number, payment_date, payment_amount, principal_amount,
		       interest_amount, remaining_balance, is_paid
		FROM amortization_schedule_entries
		WHERE loan_id = $1
		ORDER BY payment_number`, loanID)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	var schedule []model.AmortizationScheduleEntry
	for rows.Next() {
		e := model.AmortizationScheduleEntry{LoanID: loanID}
		if err := rows.Scan(
			&e.PaymentNumber, &e.PaymentDate, &e.PaymentAmount, &e.PrincipalAmount,
			&e.InterestAmount, &e.RemainingBalance, &e.IsPaid,
		); err != nil {
			return nil, fmt.Errorf("scan schedule entry: %w", err)
		}
		schedule = append(schedule, e)
	}
	return schedule, rows.Err()
}

// readSnapshot runs fn in a read-only repeatable-read transaction so
// multi-statement reads never straddle a concurrent schedule replacement.
func readSnapshot(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin read tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// validIDs reports whether every id is a UUID. Malformed ids cannot match
// a row, so callers treat them as not found.
func validIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
}
