package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/venuedesk/finance-backend-go/internal/config"
	"github.com/venuedesk/finance-backend-go/internal/domain/analytics"
	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
	"github.com/venuedesk/finance-backend-go/internal/domain/transaction"
	"github.com/venuedesk/finance-backend-go/internal/pkg/forecast"
	"github.com/venuedesk/finance-backend-go/internal/pkg/timebucket"
)

type AnalyticsServiceImpl struct {
	recordRepo transaction.RecordRepository
	refLoader  refdata.Loader
	engineCfg  config.EngineConfig
}

func NewAnalyticsService(
	recordRepo transaction.RecordRepository,
	refLoader refdata.Loader,
	engineCfg config.EngineConfig,
) analytics.Service {
	return &AnalyticsServiceImpl{
		recordRepo: recordRepo,
		refLoader:  refLoader,
		engineCfg:  engineCfg,
	}
}

// prepare validates the parameters, loads the reference snapshot,
// fetches all rows covering [previous period start, current period
// end] and folds them. Everything downstream is pure computation over
// the returned aggregate.
func (s *AnalyticsServiceImpl) prepare(ctx context.Context, p analytics.Params) (analytics.Params, *aggregate, *refdata.Set, error) {
	if err := p.Validate(); err != nil {
		return p, nil, nil, err
	}
	p = p.Normalized()

	refs, err := s.refLoader.Load(ctx)
	if err != nil {
		return p, nil, nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	prevFrom, _ := timebucket.PreviousPeriod(p.From, p.To)
	filter := transaction.Filter{
		From:       prevFrom,
		To:         p.To,
		CompanyID:  p.CompanyID,
		OperatorID: p.OperatorID,
	}

	income, err := s.recordRepo.ListIncome(ctx, filter)
	if err != nil {
		return p, nil, nil, fmt.Errorf("failed to fetch income rows: %w", err)
	}
	expenses, err := s.recordRepo.ListExpenses(ctx, filter)
	if err != nil {
		return p, nil, nil, fmt.Errorf("failed to fetch expense rows: %w", err)
	}

	cls := newClassifier(p, refs, s.engineCfg.ExtraVenueCode)
	agg := fold(income, expenses, cls, p.Granularity)
	return p, agg, refs, nil
}

func (s *AnalyticsServiceImpl) Summary(ctx context.Context, p analytics.Params) (analytics.Summary, error) {
	p, agg, refs, err := s.prepare(ctx, p)
	if err != nil {
		return analytics.Summary{}, err
	}

	prevFrom, prevTo := timebucket.PreviousPeriod(p.From, p.To)
	current := periodTotalsDTO(agg.current)
	previous := periodTotalsDTO(agg.previous)

	return analytics.Summary{
		Period:           periodDTO(p.From, p.To),
		PreviousPeriod:   periodDTO(prevFrom, prevTo),
		Current:          current,
		Previous:         previous,
		Delta:            deltaDTO(current, previous),
		Balance:          balanceFrom(agg.current, s.engineCfg.ProjectionFactor),
		CompanyBalances:  s.companyBalances(agg, refs),
		OperatorBalances: s.operatorBalances(agg, refs),
	}, nil
}

func (s *AnalyticsServiceImpl) Series(ctx context.Context, p analytics.Params) ([]analytics.SeriesPoint, error) {
	_, agg, _, err := s.prepare(ctx, p)
	if err != nil {
		return nil, err
	}

	current := sortedBuckets(agg.buckets)
	previous := sortedBuckets(agg.prevBuckets)

	points := make([]analytics.SeriesPoint, 0, len(current))
	for i, acc := range current {
		point := analytics.SeriesPoint{
			Key:     acc.bucket.Key,
			Label:   acc.bucket.Label,
			SortKey: acc.bucket.SortKey,
			Income:  acc.income,
			Expense: acc.expense,
			Profit:  acc.income.Sub(acc.expense),
		}
		// Buckets pair by position, not by calendar alignment: the
		// previous window has the same day-count, so the i-th bucket
		// is the comparable slot.
		if i < len(previous) {
			prev := previous[i]
			point.PrevIncome = prev.income
			point.PrevExpense = prev.expense
			point.PrevProfit = prev.income.Sub(prev.expense)
		}
		point.IncomeDelta = point.Income.Sub(point.PrevIncome)
		point.IncomeDeltaPct = pctChange(point.Income, point.PrevIncome)
		points = append(points, point)
	}
	return points, nil
}

func (s *AnalyticsServiceImpl) ExpenseCategories(ctx context.Context, p analytics.Params) ([]analytics.CategoryTotal, error) {
	_, agg, _, err := s.prepare(ctx, p)
	if err != nil {
		return nil, err
	}
	return agg.sortedCategories(), nil
}

func (s *AnalyticsServiceImpl) Anomalies(ctx context.Context, p analytics.Params) ([]analytics.Anomaly, error) {
	_, agg, _, err := s.prepare(ctx, p)
	if err != nil {
		return nil, err
	}
	return detectAnomalies(agg), nil
}

func (s *AnalyticsServiceImpl) Forecast(ctx context.Context, p analytics.Params) (analytics.ForecastResult, error) {
	p, agg, _, err := s.prepare(ctx, p)
	if err != nil {
		return analytics.ForecastResult{}, err
	}

	alpha := s.engineCfg.ForecastAlpha
	beta := s.engineCfg.ForecastBeta
	clamp := s.engineCfg.ForecastClamp
	if p.Alpha != nil {
		alpha = *p.Alpha
	}
	if p.Beta != nil {
		beta = *p.Beta
	}
	if p.ClampFraction != nil {
		clamp = *p.ClampFraction
	}
	smoother, err := forecast.New(alpha, beta, clamp)
	if err != nil {
		return analytics.ForecastResult{}, err
	}

	result := analytics.ForecastResult{
		Period:        periodDTO(p.From, p.To),
		Alpha:         alpha,
		Beta:          beta,
		ClampFraction: clamp,
	}

	incomeSeries, profitSeries, elapsed := dailySeries(agg, p.From, p.To)
	totalDays := timebucket.DayCount(p.From, p.To)
	remaining := totalDays - elapsed

	result.DaysElapsed = elapsed
	result.DaysRemaining = remaining
	result.IncomeToDate = agg.current.income.Total()
	result.ProfitToDate = agg.current.income.Total().Sub(agg.current.expense.Total())

	incomeModel := smoother.Fit(incomeSeries)
	profitModel := smoother.Fit(profitSeries)

	result.NextDayIncome = decimal.NewFromFloat(incomeModel.Next())
	result.NextDayProfit = decimal.NewFromFloat(profitModel.Next())
	result.IncomeRemainder = sumForecast(incomeModel, remaining)
	result.ProfitRemainder = sumForecast(profitModel, remaining)
	result.IncomeProjected = result.IncomeToDate.Add(result.IncomeRemainder)
	result.ProfitProjected = result.ProfitToDate.Add(result.ProfitRemainder)

	return result, nil
}

// dailySeries builds chronological per-day income and profit values
// from the period start through the last day with any activity.
// Gap days inside that span count as zero; days past the last active
// one are the "remainder" the forecast fills in.
func dailySeries(agg *aggregate, from, to time.Time) (income, profit []float64, elapsed int) {
	last := time.Time{}
	for day := range agg.incomeByDay {
		if d, ok := parseDay(day); ok && d.After(last) {
			last = d
		}
	}
	for day := range agg.expenseByDay {
		if d, ok := parseDay(day); ok && d.After(last) {
			last = d
		}
	}
	if last.IsZero() || last.Before(from) {
		return nil, nil, 0
	}
	if last.After(to) {
		last = to
	}

	for d := from; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		in := agg.incomeByDay[key]
		out := agg.expenseByDay[key]
		income = append(income, in.InexactFloat64())
		profit = append(profit, in.Sub(out).InexactFloat64())
		elapsed++
	}
	return income, profit, elapsed
}

func sumForecast(m forecast.Model, steps int) decimal.Decimal {
	sum := decimal.Zero
	for h := 1; h <= steps; h++ {
		sum = sum.Add(decimal.NewFromFloat(m.Forecast(h)))
	}
	return sum
}

func (s *AnalyticsServiceImpl) companyBalances(agg *aggregate, refs *refdata.Set) []analytics.CompanyBalance {
	out := make([]analytics.CompanyBalance, 0, len(agg.byCompany))
	for id, st := range agg.byCompany {
		company, ok := refs.CompanyByID(id)
		if !ok {
			continue
		}
		out = append(out, analytics.CompanyBalance{
			CompanyID:   company.ID,
			CompanyName: company.Name,
			CompanyCode: company.Code,
			Balance:     balanceFrom(*st, s.engineCfg.ProjectionFactor),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompanyName < out[j].CompanyName })
	return out
}

func (s *AnalyticsServiceImpl) operatorBalances(agg *aggregate, refs *refdata.Set) []analytics.OperatorBalance {
	out := make([]analytics.OperatorBalance, 0, len(agg.byOperator))
	for id, st := range agg.byOperator {
		operator, ok := refs.OperatorByID(id)
		if !ok {
			continue
		}
		out = append(out, analytics.OperatorBalance{
			OperatorID:   operator.ID,
			OperatorName: operator.DisplayName(),
			Balance:      balanceFrom(*st, s.engineCfg.ProjectionFactor),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OperatorName < out[j].OperatorName })
	return out
}

// ========== HELPERS ==========

func periodDTO(from, to time.Time) analytics.PeriodDTO {
	return analytics.PeriodDTO{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}
}

func deltaDTO(current, previous analytics.PeriodTotals) analytics.Delta {
	return analytics.Delta{
		Income:     current.Income.Total.Sub(previous.Income.Total),
		Expense:    current.Expense.Total.Sub(previous.Expense.Total),
		Profit:     current.Profit.Sub(previous.Profit),
		IncomePct:  pctChange(current.Income.Total, previous.Income.Total),
		ExpensePct: pctChange(current.Expense.Total, previous.Expense.Total),
		ProfitPct:  pctChange(current.Profit, previous.Profit),
	}
}

// pctChange returns nil when the previous value is zero; the UI shows
// a dash instead of a made-up percentage.
func pctChange(current, previous decimal.Decimal) *decimal.Decimal {
	if previous.IsZero() {
		return nil
	}
	pct := current.Sub(previous).DivRound(previous, 6).Mul(decimal.NewFromInt(100))
	return &pct
}

func parseDay(s string) (time.Time, bool) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
