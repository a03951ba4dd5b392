package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/venuedesk/finance-backend-go/internal/pkg/timebucket"
	"github.com/venuedesk/finance-backend-go/internal/pkg/validator"
)

// Params is the immutable parameter object for one engine call. The
// engine reads nothing but this and the row/reference snapshot, which
// is what keeps repeated calls referentially transparent.
type Params struct {
	From time.Time
	To   time.Time
	// CompanyID nil means "all companies"; that is the only case where
	// the extra-venue exclusion applies.
	CompanyID         *string
	OperatorID        *string
	IncludeExtraVenue bool
	Granularity       timebucket.Granularity

	// Optional smoothing overrides for the forecast operation.
	// Nil falls back to the configured defaults.
	Alpha         *float64
	Beta          *float64
	ClampFraction *float64
}

func (p *Params) Validate() error {
	var errs validator.ValidationErrors

	if p.From.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "is required"})
	}
	if p.To.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "is required"})
	}
	if p.Granularity != "" {
		if _, ok := timebucket.ParseGranularity(string(p.Granularity)); !ok {
			errs = append(errs, validator.ValidationError{Field: "granularity", Message: "must be one of day, week, month, year"})
		}
	}
	if p.Alpha != nil && (*p.Alpha < 0 || *p.Alpha > 1) {
		errs = append(errs, validator.ValidationError{Field: "alpha", Message: "must be between 0 and 1"})
	}
	if p.Beta != nil && (*p.Beta < 0 || *p.Beta > 1) {
		errs = append(errs, validator.ValidationError{Field: "beta", Message: "must be between 0 and 1"})
	}
	if p.ClampFraction != nil && *p.ClampFraction < 0 {
		errs = append(errs, validator.ValidationError{Field: "clamp_fraction", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Normalized returns a copy with the date range ordered and truncated
// to calendar days, and the granularity defaulted to day.
func (p Params) Normalized() Params {
	p.From, p.To = timebucket.NormalizeRange(p.From, p.To)
	if p.Granularity == "" {
		p.Granularity = timebucket.GranularityDay
	}
	return p
}

// ========== RESULT DTOs ==========

type PeriodDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MethodTotals is a method-split sum with its derived fields baked in
// for the response payload.
type MethodTotals struct {
	Cash    decimal.Decimal `json:"cash"`
	Card    decimal.Decimal `json:"card"`
	Wallet  decimal.Decimal `json:"wallet"`
	Other   decimal.Decimal `json:"other"`
	NonCash decimal.Decimal `json:"non_cash"`
	Total   decimal.Decimal `json:"total"`
}

type PeriodTotals struct {
	Income     MethodTotals    `json:"income"`
	Expense    MethodTotals    `json:"expense"`
	Profit     decimal.Decimal `json:"profit"`
	NetCash    decimal.Decimal `json:"net_cash"`
	NetNonCash decimal.Decimal `json:"net_non_cash"`
}

// Delta carries period-over-period movement. Percent fields are nil
// when the previous value is zero.
type Delta struct {
	Income     decimal.Decimal  `json:"income"`
	Expense    decimal.Decimal  `json:"expense"`
	Profit     decimal.Decimal  `json:"profit"`
	IncomePct  *decimal.Decimal `json:"income_pct,omitempty"`
	ExpensePct *decimal.Decimal `json:"expense_pct,omitempty"`
	ProfitPct  *decimal.Decimal `json:"profit_pct,omitempty"`
}

// Balance is the reconciliation block: projected values use the naive
// proportional factor from config, deliberately distinct from the
// Holt forecast.
type Balance struct {
	NetCash             decimal.Decimal `json:"net_cash"`
	NetNonCash          decimal.Decimal `json:"net_non_cash"`
	Profit              decimal.Decimal `json:"profit"`
	ProjectedNetCash    decimal.Decimal `json:"projected_net_cash"`
	ProjectedNetNonCash decimal.Decimal `json:"projected_net_non_cash"`
}

type CompanyBalance struct {
	CompanyID   string  `json:"company_id"`
	CompanyName string  `json:"company_name"`
	CompanyCode string  `json:"company_code"`
	Balance     Balance `json:"balance"`
}

type OperatorBalance struct {
	OperatorID   string  `json:"operator_id"`
	OperatorName string  `json:"operator_name"`
	Balance      Balance `json:"balance"`
}

type Summary struct {
	Period           PeriodDTO         `json:"period"`
	PreviousPeriod   PeriodDTO         `json:"previous_period"`
	Current          PeriodTotals      `json:"current"`
	Previous         PeriodTotals      `json:"previous"`
	Delta            Delta             `json:"delta"`
	Balance          Balance           `json:"balance"`
	CompanyBalances  []CompanyBalance  `json:"company_balances"`
	OperatorBalances []OperatorBalance `json:"operator_balances"`
}

// SeriesPoint is one bucket of the grouped time series, paired with
// the same-index bucket of the previous window.
type SeriesPoint struct {
	Key            string           `json:"key"`
	Label          string           `json:"label"`
	SortKey        time.Time        `json:"sort_key"`
	Income         decimal.Decimal  `json:"income"`
	Expense        decimal.Decimal  `json:"expense"`
	Profit         decimal.Decimal  `json:"profit"`
	PrevIncome     decimal.Decimal  `json:"prev_income"`
	PrevExpense    decimal.Decimal  `json:"prev_expense"`
	PrevProfit     decimal.Decimal  `json:"prev_profit"`
	IncomeDelta    decimal.Decimal  `json:"income_delta"`
	IncomeDeltaPct *decimal.Decimal `json:"income_delta_pct,omitempty"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// AnomalyType enum
type AnomalyType string

const (
	AnomalyIncomeSpike  AnomalyType = "income_spike"
	AnomalyExpenseSpike AnomalyType = "expense_spike"
	AnomalyLowMargin    AnomalyType = "low_margin"
)

// Severity enum; the mapping from type to severity is fixed.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Anomaly struct {
	Type        AnomalyType     `json:"type"`
	Severity    Severity        `json:"severity"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// ForecastResult projects the remainder of an in-progress period.
type ForecastResult struct {
	Period        PeriodDTO `json:"period"`
	Alpha         float64   `json:"alpha"`
	Beta          float64   `json:"beta"`
	ClampFraction float64   `json:"clamp_fraction"`

	DaysElapsed   int `json:"days_elapsed"`
	DaysRemaining int `json:"days_remaining"`

	IncomeToDate     decimal.Decimal `json:"income_to_date"`
	NextDayIncome    decimal.Decimal `json:"next_day_income"`
	IncomeRemainder  decimal.Decimal `json:"income_remainder"`
	IncomeProjected  decimal.Decimal `json:"income_projected"`
	ProfitToDate     decimal.Decimal `json:"profit_to_date"`
	NextDayProfit    decimal.Decimal `json:"next_day_profit"`
	ProfitRemainder  decimal.Decimal `json:"profit_remainder"`
	ProfitProjected  decimal.Decimal `json:"profit_projected"`
}
