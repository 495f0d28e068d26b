package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
)

// RefinanceAnalysisRepo implements port.RefinanceAnalysisRepository.
type RefinanceAnalysisRepo struct {
	pool *pgxpool.Pool
}

// NewRefinanceAnalysisRepo creates a new PostgreSQL-backed refinance audit log.
func NewRefinanceAnalysisRepo(pool *pgxpool.Pool) *RefinanceAnalysisRepo {
	return &RefinanceAnalysisRepo{pool: pool}
}

// Append inserts one analysis. Rows are never updated.
func (r *RefinanceAnalysisRepo) Append(ctx context.Context, a model.RefinanceAnalysis) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO refinance_analyses (
			id, loan_id, owner_id, analysis_date,
			current_rate, new_rate, closing_costs,
			current_payment, new_payment,
			current_path_interest, new_path_interest,
			monthly_savings, lifetime_savings,
			remaining_months, break_even_months, is_recommended
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		a.ID, a.LoanID, a.OwnerID, a.AnalysisDate,
		a.CurrentRate, a.NewRate, a.ClosingCosts,
		a.CurrentPayment, a.NewPayment,
		a.CurrentPathInterest, a.NewPathInterest,
		a.MonthlySavings, a.LifetimeSavings,
		a.RemainingMonths, a.BreakEvenMonths, a.IsRecommended,
	)
	if err != nil {
		return persistenceError(fmt.Sprintf("append refinance analysis %s", a.ID), err)
	}
	return nil
}

// ListByLoanID returns the owner's analyses for a loan, newest first.
func (r *RefinanceAnalysisRepo) ListByLoanID(ctx context.Context, ownerID, loanID string) ([]model.RefinanceAnalysis, error) {
	if !validIDs(ownerID, loanID) {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, loan_id, owner_id, analysis_date,
		       current_rate, new_rate, closing_costs,
		       current_payment, new_payment,
		       current_path_interest, new_path_interest,
		       monthly_savings, lifetime_savings,
		       remaining_months, break_even_months, is_recommended
		FROM refinance_analyses
		WHERE owner_id = $1 AND loan_id = $2
		ORDER BY analysis_date DESC, id`, ownerID, loanID)
	if err != nil {
		return nil, persistenceError("query refinance analyses", err)
	}
	defer rows.Close()

	var out []model.RefinanceAnalysis
	for rows.Next() {
		var a model.RefinanceAnalysis
		if err := rows.Scan(
			&a.ID, &a.LoanID, &a.OwnerID, &a.AnalysisDate,
			&a.CurrentRate, &a.NewRate, &a.ClosingCosts,
			&a.CurrentPayment, &a.NewPayment,
			&a.CurrentPathInterest, &a.NewPathInterest,
			&a.MonthlySavings, &a.LifetimeSavings,
			&a.RemainingMonths, &a.BreakEvenMonths, &a.IsRecommended,
		); err != nil {
			return nil, persistenceError("scan refinance analysis", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate refinance analyses", err)
	}
	return out, nil
}
