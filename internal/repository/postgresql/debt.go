package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/venuedesk/finance-backend-go/internal/domain/transaction"
	"github.com/venuedesk/finance-backend-go/internal/pkg/database"
)

type debtRepositoryImpl struct {
	db *database.DB
}

func NewDebtRepository(db *database.DB) transaction.DebtRepository {
	return &debtRepositoryImpl{db: db}
}

func (r *debtRepositoryImpl) ListActive(ctx context.Context, from, to time.Time) ([]transaction.StandingDebt, error) {
	q := GetQuerier(ctx, r.db)

	// Standing debts are week-scoped by their Monday anchor, not by
	// arbitrary date ranges.
	query := `
		SELECT id, operator_id, week_start, COALESCE(amount, 0), status, note
		FROM standing_debts
		WHERE status = $1 AND week_start >= $2 AND week_start <= $3
		ORDER BY week_start, operator_id
	`

	rows, err := q.Query(ctx, query, transaction.DebtStatusActive, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list standing debts: %w", err)
	}
	defer rows.Close()

	var debts []transaction.StandingDebt
	for rows.Next() {
		var d transaction.StandingDebt
		if err := rows.Scan(&d.ID, &d.OperatorID, &d.WeekStart, &d.Amount, &d.Status, &d.Note); err != nil {
			return nil, fmt.Errorf("failed to scan standing debt: %w", err)
		}
		debts = append(debts, d)
	}

	return debts, rows.Err()
}
