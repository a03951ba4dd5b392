package postgresql

import (
	"context"
	"fmt"

	"github.com/venuedesk/finance-backend-go/internal/domain/transaction"
	"github.com/venuedesk/finance-backend-go/internal/pkg/database"
)

type recordRepositoryImpl struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) transaction.RecordRepository {
	return &recordRepositoryImpl{db: db}
}

// NULL amounts read as zero: "no amount" is "no transaction", never an
// error (the engine applies the same normalization defensively).
const recordColumns = `
	id, kind, date, company_id, operator_id, shift_type, category,
	COALESCE(amount_cash, 0), COALESCE(amount_card, 0),
	COALESCE(amount_wallet, 0), COALESCE(amount_other, 0)
`

func (r *recordRepositoryImpl) ListIncome(ctx context.Context, f transaction.Filter) ([]transaction.Record, error) {
	return r.listByKinds(ctx, f, []string{string(transaction.KindIncome)})
}

func (r *recordRepositoryImpl) ListExpenses(ctx context.Context, f transaction.Filter) ([]transaction.Record, error) {
	return r.listByKinds(ctx, f, []string{string(transaction.KindExpense)})
}

func (r *recordRepositoryImpl) ListAdjustments(ctx context.Context, f transaction.Filter) ([]transaction.Record, error) {
	return r.listByKinds(ctx, f, []string{
		string(transaction.KindBonus),
		string(transaction.KindAdvance),
		string(transaction.KindDebt),
		string(transaction.KindFine),
	})
}

func (r *recordRepositoryImpl) listByKinds(ctx context.Context, f transaction.Filter, kinds []string) ([]transaction.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE kind = ANY($1) AND date >= $2 AND date <= $3
	`, recordColumns)
	args := []interface{}{kinds, f.From, f.To}

	if f.CompanyID != nil {
		args = append(args, *f.CompanyID)
		query += fmt.Sprintf(" AND company_id = $%d", len(args))
	}
	if f.OperatorID != nil {
		args = append(args, *f.OperatorID)
		query += fmt.Sprintf(" AND operator_id = $%d", len(args))
	}
	query += " ORDER BY date, id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var records []transaction.Record
	for rows.Next() {
		var rec transaction.Record
		var cash, card, wallet, other float64
		if err := rows.Scan(
			&rec.ID, &rec.Kind, &rec.Date, &rec.CompanyID, &rec.OperatorID,
			&rec.ShiftType, &rec.Category,
			&cash, &card, &wallet, &other,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		rec.Amount = transaction.AmountFromFloats(cash, card, wallet, other)
		records = append(records, rec)
	}

	return records, rows.Err()
}
