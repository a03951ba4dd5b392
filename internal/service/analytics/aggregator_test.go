package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuedesk/finance-backend-go/internal/domain/analytics"
	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
	"github.com/venuedesk/finance-backend-go/internal/domain/transaction"
	"github.com/venuedesk/finance-backend-go/internal/pkg/timebucket"
)

const extraCode = "extra"

func day(d int) time.Time {
	return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func testRefs() *refdata.Set {
	companies := []refdata.Company{
		{ID: "c-ramen", Name: "Ramen House", Code: "ramen"},
		{ID: "c-noodle", Name: "Noodle Bar", Code: "noodle"},
		{ID: "c-extra", Name: "Pop-up Stand", Code: extraCode},
	}
	operators := []refdata.Operator{
		{ID: "op-1", Name: "Aleksandra Petrova", IsActive: true},
		{ID: "op-2", Name: "Dmitri Ivanov", IsActive: true},
	}
	return refdata.NewSet(companies, operators, nil)
}

// weekParams covers 2025-07-07 through 2025-07-13; the previous
// window is then 2025-06-30 through 2025-07-06.
func weekParams() analytics.Params {
	p := analytics.Params{From: day(7), To: day(13)}
	return p.Normalized()
}

func income(companyID string, d time.Time, cash, card int64) transaction.Record {
	return transaction.Record{
		Kind:      transaction.KindIncome,
		Date:      d,
		CompanyID: companyID,
		ShiftType: refdata.ShiftDay,
		Amount: transaction.Amount{
			Cash: decimal.NewFromInt(cash),
			Card: decimal.NewFromInt(card),
		},
	}
}

func expense(companyID string, d time.Time, category string, cash int64) transaction.Record {
	var cat *string
	if category != "" {
		cat = &category
	}
	return transaction.Record{
		Kind:      transaction.KindExpense,
		Date:      d,
		CompanyID: companyID,
		ShiftType: refdata.ShiftDay,
		Category:  cat,
		Amount:    transaction.Amount{Cash: decimal.NewFromInt(cash)},
	}
}

func foldWeek(p analytics.Params, incomeRows, expenseRows []transaction.Record) *aggregate {
	cls := newClassifier(p, testRefs(), extraCode)
	return fold(incomeRows, expenseRows, cls, p.Granularity)
}

func TestFold_SplitsCurrentAndPreviousWindows(t *testing.T) {
	t.Parallel()

	incomeRows := []transaction.Record{
		income("c-ramen", day(8), 10000, 5000),
		income("c-ramen", day(2), 7000, 0), // previous window
		income("c-ramen", day(20), 99999, 0), // outside both
	}

	agg := foldWeek(weekParams(), incomeRows, nil)

	assert.True(t, agg.current.income.Total().Equal(decimal.NewFromInt(15000)))
	assert.True(t, agg.previous.income.Total().Equal(decimal.NewFromInt(7000)))
}

func TestFold_ExtraVenueExcludedByDefault(t *testing.T) {
	t.Parallel()

	incomeRows := []transaction.Record{
		income("c-ramen", day(8), 10000, 0),
		income("c-extra", day(8), 5000, 0),
	}

	agg := foldWeek(weekParams(), incomeRows, nil)
	assert.True(t, agg.current.income.Total().Equal(decimal.NewFromInt(10000)))

	p := weekParams()
	p.IncludeExtraVenue = true
	agg = foldWeek(p, incomeRows, nil)
	assert.True(t, agg.current.income.Total().Equal(decimal.NewFromInt(15000)))
}

func TestFold_CompanyFilterOverridesExtraExclusion(t *testing.T) {
	t.Parallel()

	incomeRows := []transaction.Record{
		income("c-ramen", day(8), 10000, 0),
		income("c-extra", day(8), 5000, 0),
	}

	// Selecting the extra venue directly must work even with the
	// include flag off.
	p := weekParams()
	p.CompanyID = strPtr("c-extra")
	agg := foldWeek(p, incomeRows, nil)

	assert.True(t, agg.current.income.Total().Equal(decimal.NewFromInt(5000)))
}

func TestFold_ZeroAndNegativeRowsContributeNothing(t *testing.T) {
	t.Parallel()

	incomeRows := []transaction.Record{
		income("c-ramen", day(8), 10000, 0),
		income("c-ramen", day(8), 0, 0),
		income("c-ramen", day(8), -4000, 0),
	}

	agg := foldWeek(weekParams(), incomeRows, nil)

	assert.True(t, agg.current.income.Total().Equal(decimal.NewFromInt(10000)))
	assert.Len(t, agg.incomeByDay, 1)
}

func TestFold_UnknownReferencesDroppedSilently(t *testing.T) {
	t.Parallel()

	incomeRows := []transaction.Record{
		income("c-ramen", day(8), 10000, 0),
		income("c-ghost", day(8), 5000, 0),
	}
	ghostOperator := income("c-ramen", day(9), 3000, 0)
	ghostOperator.OperatorID = strPtr("op-ghost")
	incomeRows = append(incomeRows, ghostOperator)

	agg := foldWeek(weekParams(), incomeRows, nil)

	assert.True(t, agg.current.income.Total().Equal(decimal.NewFromInt(10000)))
}

func TestFold_CategoriesDefaultToUncategorized(t *testing.T) {
	t.Parallel()

	expenseRows := []transaction.Record{
		expense("c-ramen", day(8), "supplies", 3000),
		expense("c-ramen", day(9), "supplies", 2000),
		expense("c-ramen", day(9), "", 1000),
		expense("c-noodle", day(10), "rent", 9000),
	}

	agg := foldWeek(weekParams(), nil, expenseRows)
	categories := agg.sortedCategories()

	require.Len(t, categories, 3)
	assert.Equal(t, "rent", categories[0].Category)
	assert.Equal(t, "supplies", categories[1].Category)
	assert.Equal(t, uncategorized, categories[2].Category)
	assert.True(t, categories[2].Amount.Equal(decimal.NewFromInt(1000)))
}

func TestFold_CategoryTiesBreakByName(t *testing.T) {
	t.Parallel()

	expenseRows := []transaction.Record{
		expense("c-ramen", day(8), "gas", 5000),
		expense("c-ramen", day(9), "cleaning", 5000),
	}

	agg := foldWeek(weekParams(), nil, expenseRows)
	categories := agg.sortedCategories()

	require.Len(t, categories, 2)
	assert.Equal(t, "cleaning", categories[0].Category)
	assert.Equal(t, "gas", categories[1].Category)
}

func TestFold_OrderInvariance(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	companies := []string{"c-ramen", "c-noodle", "c-extra"}
	var incomeRows, expenseRows []transaction.Record
	for i := 0; i < 150; i++ {
		d := day(1 + rng.Intn(13))
		incomeRows = append(incomeRows, income(companies[rng.Intn(3)], d, int64(rng.Intn(50000)), int64(rng.Intn(20000))))
		expenseRows = append(expenseRows, expense(companies[rng.Intn(3)], d, "supplies", int64(rng.Intn(10000))))
	}

	shuffledIncome := make([]transaction.Record, len(incomeRows))
	copy(shuffledIncome, incomeRows)
	rng.Shuffle(len(shuffledIncome), func(i, j int) {
		shuffledIncome[i], shuffledIncome[j] = shuffledIncome[j], shuffledIncome[i]
	})

	a := foldWeek(weekParams(), incomeRows, expenseRows)
	b := foldWeek(weekParams(), shuffledIncome, expenseRows)

	assert.True(t, a.current.income.Total().Equal(b.current.income.Total()))
	assert.True(t, a.previous.income.Total().Equal(b.previous.income.Total()))
	for key, acc := range a.buckets {
		other, ok := b.buckets[key]
		require.True(t, ok, "bucket %s missing after shuffle", key)
		assert.True(t, acc.income.Equal(other.income))
	}
}

func TestFold_WeeklyBuckets(t *testing.T) {
	t.Parallel()

	p := analytics.Params{From: day(7), To: day(20), Granularity: timebucket.GranularityWeek}
	p = p.Normalized()

	incomeRows := []transaction.Record{
		income("c-ramen", day(8), 10000, 0),
		income("c-ramen", day(15), 20000, 0),
	}

	agg := foldWeek(p, incomeRows, nil)
	buckets := sortedBuckets(agg.buckets)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2025-W28", buckets[0].bucket.Key)
	assert.Equal(t, "2025-W29", buckets[1].bucket.Key)
	assert.True(t, buckets[0].income.Equal(decimal.NewFromInt(10000)))
}

func TestPeriodTotals_ProfitReconciles(t *testing.T) {
	t.Parallel()

	incomeRows := []transaction.Record{
		income("c-ramen", day(8), 10000, 6000),
		income("c-noodle", day(9), 4000, 2000),
	}
	expenseRows := []transaction.Record{
		expense("c-ramen", day(8), "supplies", 5000),
	}

	agg := foldWeek(weekParams(), incomeRows, expenseRows)
	totals := periodTotalsDTO(agg.current)

	assert.True(t, totals.Profit.Equal(totals.NetCash.Add(totals.NetNonCash)),
		"profit %s netCash %s netNonCash %s", totals.Profit, totals.NetCash, totals.NetNonCash)
	assert.True(t, totals.Income.NonCash.Equal(decimal.NewFromInt(8000)))
	assert.True(t, totals.Profit.Equal(decimal.NewFromInt(17000)))
}
