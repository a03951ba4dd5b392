package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/venuedesk/finance-backend-go/internal/domain/analytics"
	"github.com/venuedesk/finance-backend-go/internal/domain/transaction"
	"github.com/venuedesk/finance-backend-go/internal/pkg/timebucket"
)

// scopeTotals accumulates method-split income and expense for one
// scope (global, one company, one operator).
type scopeTotals struct {
	income  transaction.Amount
	expense transaction.Amount
}

type bucketAcc struct {
	bucket  timebucket.Bucket
	income  decimal.Decimal
	expense decimal.Decimal
}

// aggregate is the folded state every downstream component (balance,
// anomaly, forecast, series) reads from. Accumulation is summation
// only, so input row order cannot affect any output.
type aggregate struct {
	current  scopeTotals
	previous scopeTotals

	byCompany  map[string]*scopeTotals
	byOperator map[string]*scopeTotals

	buckets     map[string]*bucketAcc
	prevBuckets map[string]*bucketAcc

	categories   map[string]decimal.Decimal
	incomeByDay  map[string]decimal.Decimal
	expenseByDay map[string]decimal.Decimal
}

func newAggregate() *aggregate {
	return &aggregate{
		byCompany:    make(map[string]*scopeTotals),
		byOperator:   make(map[string]*scopeTotals),
		buckets:      make(map[string]*bucketAcc),
		prevBuckets:  make(map[string]*bucketAcc),
		categories:   make(map[string]decimal.Decimal),
		incomeByDay:  make(map[string]decimal.Decimal),
		expenseByDay: make(map[string]decimal.Decimal),
	}
}

const uncategorized = "uncategorized"

// fold runs the classifier over the income and expense rows and
// accumulates totals. Zero and negative rows are skipped everywhere.
func fold(income, expenses []transaction.Record, cls *classifier, g timebucket.Granularity) *aggregate {
	agg := newAggregate()

	for _, r := range income {
		if !r.Amount.IsCountable() {
			continue
		}
		switch cls.classify(r) {
		case windowCurrent:
			agg.current.income = agg.current.income.Add(r.Amount)
			company := scopeFor(agg.byCompany, r.CompanyID)
			company.income = company.income.Add(r.Amount)
			if r.OperatorID != nil {
				operator := scopeFor(agg.byOperator, *r.OperatorID)
				operator.income = operator.income.Add(r.Amount)
			}
			acc := bucketFor(agg.buckets, r, g)
			acc.income = acc.income.Add(r.Amount.Total())
			day := timebucket.DateOnly(r.Date).Format("2006-01-02")
			agg.incomeByDay[day] = agg.incomeByDay[day].Add(r.Amount.Total())
		case windowPrevious:
			agg.previous.income = agg.previous.income.Add(r.Amount)
			acc := bucketFor(agg.prevBuckets, r, g)
			acc.income = acc.income.Add(r.Amount.Total())
		}
	}

	for _, r := range expenses {
		if !r.Amount.IsCountable() {
			continue
		}
		switch cls.classify(r) {
		case windowCurrent:
			agg.current.expense = agg.current.expense.Add(r.Amount)
			company := scopeFor(agg.byCompany, r.CompanyID)
			company.expense = company.expense.Add(r.Amount)
			if r.OperatorID != nil {
				operator := scopeFor(agg.byOperator, *r.OperatorID)
				operator.expense = operator.expense.Add(r.Amount)
			}
			acc := bucketFor(agg.buckets, r, g)
			acc.expense = acc.expense.Add(r.Amount.Total())

			category := uncategorized
			if r.Category != nil && *r.Category != "" {
				category = *r.Category
			}
			agg.categories[category] = agg.categories[category].Add(r.Amount.Total())

			day := timebucket.DateOnly(r.Date).Format("2006-01-02")
			agg.expenseByDay[day] = agg.expenseByDay[day].Add(r.Amount.Total())
		case windowPrevious:
			agg.previous.expense = agg.previous.expense.Add(r.Amount)
			acc := bucketFor(agg.prevBuckets, r, g)
			acc.expense = acc.expense.Add(r.Amount.Total())
		}
	}

	return agg
}

func scopeFor(m map[string]*scopeTotals, key string) *scopeTotals {
	st, ok := m[key]
	if !ok {
		st = &scopeTotals{}
		m[key] = st
	}
	return st
}

func bucketFor(m map[string]*bucketAcc, r transaction.Record, g timebucket.Granularity) *bucketAcc {
	b := timebucket.Key(r.Date, g)
	acc, ok := m[b.Key]
	if !ok {
		acc = &bucketAcc{bucket: b}
		m[b.Key] = acc
	}
	return acc
}

// sortedBuckets returns the accumulated buckets ordered by SortKey.
func sortedBuckets(m map[string]*bucketAcc) []*bucketAcc {
	out := make([]*bucketAcc, 0, len(m))
	for _, acc := range m {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].bucket.SortKey.Before(out[j].bucket.SortKey)
	})
	return out
}

// sortedCategories returns the full expense category list, largest
// first. Truncating to a top-N view is the caller's concern.
func (a *aggregate) sortedCategories() []analytics.CategoryTotal {
	out := make([]analytics.CategoryTotal, 0, len(a.categories))
	for name, amount := range a.categories {
		out = append(out, analytics.CategoryTotal{Category: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// methodTotalsDTO expands a raw amount into the response shape with
// derived non-cash and total fields.
func methodTotalsDTO(a transaction.Amount) analytics.MethodTotals {
	return analytics.MethodTotals{
		Cash:    a.Cash,
		Card:    a.Card,
		Wallet:  a.Wallet,
		Other:   a.Other,
		NonCash: a.NonCash(),
		Total:   a.Total(),
	}
}

func periodTotalsDTO(st scopeTotals) analytics.PeriodTotals {
	return analytics.PeriodTotals{
		Income:     methodTotalsDTO(st.income),
		Expense:    methodTotalsDTO(st.expense),
		Profit:     st.income.Total().Sub(st.expense.Total()),
		NetCash:    st.income.Cash.Sub(st.expense.Cash),
		NetNonCash: st.income.NonCash().Sub(st.expense.NonCash()),
	}
}
