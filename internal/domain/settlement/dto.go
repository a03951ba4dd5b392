package settlement

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/venuedesk/finance-backend-go/internal/pkg/timebucket"
	"github.com/venuedesk/finance-backend-go/internal/pkg/validator"
)

// Params scopes one settlement run.
type Params struct {
	From      time.Time
	To        time.Time
	CompanyID *string
	// IncludeInactive also settles operators with IsActive=false.
	// Active operators always appear, even with zero activity.
	IncludeInactive bool
}

func (p *Params) Validate() error {
	var errs validator.ValidationErrors

	if p.From.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "is required"})
	}
	if p.To.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Normalized orders the date range and strips time-of-day.
func (p Params) Normalized() Params {
	p.From, p.To = timebucket.NormalizeRange(p.From, p.To)
	return p
}

// OperatorSettlement is the per-operator payable figure. Full
// precision is kept here; rounding to whole currency units happens
// only at the export boundary.
//
// Invariant: FinalSalary = BaseSalary + BonusSalary + ManualPlus
// - ManualMinus - AutoDebts - Advances. Negative results are not
// clamped; confirming or withholding a negative payout is the
// caller's concern.
type OperatorSettlement struct {
	OperatorID   string          `json:"operator_id"`
	OperatorName string          `json:"operator_name"`
	IsActive     bool            `json:"is_active"`
	Shifts       int             `json:"shifts"`
	Turnover     decimal.Decimal `json:"turnover"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	BonusSalary  decimal.Decimal `json:"bonus_salary"`
	ManualPlus   decimal.Decimal `json:"manual_plus"`
	ManualMinus  decimal.Decimal `json:"manual_minus"`
	AutoDebts    decimal.Decimal `json:"auto_debts"`
	Advances     decimal.Decimal `json:"advances"`
	FinalSalary  decimal.Decimal `json:"final_salary"`
}

type Result struct {
	Period      PeriodDTO            `json:"period"`
	Settlements []OperatorSettlement `json:"settlements"`
	TotalPayout decimal.Decimal      `json:"total_payout"`
}

type PeriodDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}
