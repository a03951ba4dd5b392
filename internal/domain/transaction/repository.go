package transaction

import (
	"context"
	"time"
)

// RecordRepository is the external row source. It returns immutable
// snapshots matching a filter; the engine never writes through it.
type RecordRepository interface {
	ListIncome(ctx context.Context, f Filter) ([]Record, error)
	ListExpenses(ctx context.Context, f Filter) ([]Record, error)
	// ListAdjustments returns manual bonus/advance/debt/fine rows.
	ListAdjustments(ctx context.Context, f Filter) ([]Record, error)
}

// DebtRepository serves standing weekly debts. Weeks are selected by
// their Monday anchor falling inside [from, to].
type DebtRepository interface {
	ListActive(ctx context.Context, from, to time.Time) ([]StandingDebt, error)
}
