package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/venuedesk/finance-backend-go/internal/domain/analytics"
)

// balanceFrom reconciles one scope's totals into net cash / net
// non-cash balances. The same formula applies at every scope; scopes
// differ only in which rows were folded in.
//
// The projection is a plain proportional extrapolation, net * (1+k).
// It is a placeholder for a quick end-of-period glance and is kept
// deliberately separate from the Holt forecaster.
func balanceFrom(st scopeTotals, projectionFactor float64) analytics.Balance {
	netCash := st.income.Cash.Sub(st.expense.Cash)
	// Cash and non-cash partition every amount, so profit always
	// reconciles as netCash + netNonCash.
	netNonCash := st.income.NonCash().Sub(st.expense.NonCash())
	factor := decimal.NewFromFloat(1 + projectionFactor)

	return analytics.Balance{
		NetCash:             netCash,
		NetNonCash:          netNonCash,
		Profit:              st.income.Total().Sub(st.expense.Total()),
		ProjectedNetCash:    netCash.Mul(factor),
		ProjectedNetNonCash: netNonCash.Mul(factor),
	}
}
