package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/venuedesk/finance-backend-go/internal/domain/analytics"
)

var (
	incomeSpikeFactor = decimal.NewFromFloat(2.0)
	// Expenses are noisier than income, so the spike threshold is
	// wider on purpose.
	expenseSpikeFactor = decimal.NewFromFloat(2.5)
	lowMarginRatio     = decimal.NewFromFloat(0.10)
)

// detectAnomalies flags income/expense spikes against the current
// window's per-active-day averages and low-margin buckets. The result
// is unordered; ranking and truncation belong to the caller.
func detectAnomalies(agg *aggregate) []analytics.Anomaly {
	var out []analytics.Anomaly

	// Days with zero activity do not count toward the averages.
	avgIncome := averageOf(agg.incomeByDay)
	avgExpense := averageOf(agg.expenseByDay)

	if avgIncome.IsPositive() {
		threshold := avgIncome.Mul(incomeSpikeFactor)
		for day, total := range agg.incomeByDay {
			if total.GreaterThan(threshold) {
				out = append(out, analytics.Anomaly{
					Type:        analytics.AnomalyIncomeSpike,
					Severity:    analytics.SeverityMedium,
					Date:        day,
					Description: fmt.Sprintf("income %s is more than double the daily average %s", total.StringFixed(2), avgIncome.StringFixed(2)),
					Value:       total,
				})
			}
		}
	}

	if avgExpense.IsPositive() {
		threshold := avgExpense.Mul(expenseSpikeFactor)
		for day, total := range agg.expenseByDay {
			if total.GreaterThan(threshold) {
				out = append(out, analytics.Anomaly{
					Type:        analytics.AnomalyExpenseSpike,
					Severity:    analytics.SeverityHigh,
					Date:        day,
					Description: fmt.Sprintf("expense %s exceeds 2.5x the daily average %s", total.StringFixed(2), avgExpense.StringFixed(2)),
					Value:       total,
				})
			}
		}
	}

	for _, acc := range agg.buckets {
		if !acc.income.IsPositive() {
			continue
		}
		profit := acc.income.Sub(acc.expense)
		// profit/income < 0.10, kept in multiplied form to stay exact
		if profit.LessThan(acc.income.Mul(lowMarginRatio)) {
			margin := profit.DivRound(acc.income, 4)
			out = append(out, analytics.Anomaly{
				Type:        analytics.AnomalyLowMargin,
				Severity:    analytics.SeverityMedium,
				Date:        acc.bucket.Label,
				Description: fmt.Sprintf("margin %s is below 10%% for %s", margin.StringFixed(4), acc.bucket.Label),
				Value:       margin,
			})
		}
	}

	return out
}

func averageOf(byDay map[string]decimal.Decimal) decimal.Decimal {
	if len(byDay) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range byDay {
		sum = sum.Add(v)
	}
	return sum.DivRound(decimal.NewFromInt(int64(len(byDay))), 8)
}
