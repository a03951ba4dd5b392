package settlement

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
	"github.com/venuedesk/finance-backend-go/internal/domain/settlement"
	"github.com/venuedesk/finance-backend-go/internal/domain/transaction"
	"github.com/venuedesk/finance-backend-go/internal/pkg/timebucket"
)

// shiftKey identifies one worked shift. Multiple income rows can
// belong to the same shift; folding by this key is what prevents a
// shift's base pay from being counted once per row.
type shiftKey struct {
	operatorID  string
	companyCode string
	date        string
	shiftType   refdata.ShiftType
}

type settlementAcc struct {
	operator refdata.Operator
	result   settlement.OperatorSettlement
}

// computeSettlements folds income rows, manual adjustments and
// standing weekly debts into per-operator payables. Pure: everything
// it reads arrives as an argument.
func computeSettlements(
	p settlement.Params,
	income []transaction.Record,
	adjustments []transaction.Record,
	debts []transaction.StandingDebt,
	refs *refdata.Set,
	defaultBasePerShift decimal.Decimal,
) []settlement.OperatorSettlement {
	accs := make(map[string]*settlementAcc)

	include := func(o refdata.Operator) bool {
		return o.IsActive || p.IncludeInactive
	}

	// Every included operator gets a row up front, so an operator with
	// zero shifts is visible rather than silently dropped.
	for _, o := range refs.Operators {
		if !include(o) {
			continue
		}
		accs[o.ID] = &settlementAcc{
			operator: o,
			result: settlement.OperatorSettlement{
				OperatorID:   o.ID,
				OperatorName: o.DisplayName(),
				IsActive:     o.IsActive,
			},
		}
	}

	// Fold income rows into shift turnover.
	turnover := make(map[shiftKey]decimal.Decimal)
	for _, r := range income {
		if !r.Amount.IsCountable() {
			continue
		}
		if !inRange(r.Date, p.From, p.To) {
			continue
		}
		if p.CompanyID != nil && r.CompanyID != *p.CompanyID {
			continue
		}
		if r.OperatorID == nil {
			continue
		}
		if _, ok := accs[*r.OperatorID]; !ok {
			continue
		}
		company, ok := refs.CompanyByID(r.CompanyID)
		if !ok {
			continue
		}
		key := shiftKey{
			operatorID:  *r.OperatorID,
			companyCode: company.Code,
			date:        timebucket.DateOnly(r.Date).Format("2006-01-02"),
			shiftType:   r.ShiftType,
		}
		turnover[key] = turnover[key].Add(r.Amount.Total())
	}

	// Apply base pay and tiered bonuses per shift.
	for key, shiftTurnover := range turnover {
		acc := accs[key.operatorID]

		base := defaultBasePerShift
		bonus := decimal.Zero
		if rule, ok := refs.RuleFor(key.companyCode, key.shiftType); ok {
			base = rule.BasePerShift
			// The two tiers fire independently and stack; a zero
			// threshold disables its tier.
			if rule.Threshold1Turnover.IsPositive() && shiftTurnover.GreaterThanOrEqual(rule.Threshold1Turnover) {
				bonus = bonus.Add(rule.Threshold1Bonus)
			}
			if rule.Threshold2Turnover.IsPositive() && shiftTurnover.GreaterThanOrEqual(rule.Threshold2Turnover) {
				bonus = bonus.Add(rule.Threshold2Bonus)
			}
		}

		acc.result.Shifts++
		acc.result.Turnover = acc.result.Turnover.Add(shiftTurnover)
		acc.result.BaseSalary = acc.result.BaseSalary.Add(base)
		acc.result.BonusSalary = acc.result.BonusSalary.Add(bonus)
	}

	// Manual adjustments. Non-positive amounts are not valid
	// adjustments and are ignored.
	for _, r := range adjustments {
		if !r.Amount.IsCountable() {
			continue
		}
		if !inRange(r.Date, p.From, p.To) {
			continue
		}
		if r.OperatorID == nil {
			continue
		}
		acc, ok := accs[*r.OperatorID]
		if !ok {
			continue
		}
		amount := r.Amount.Total()
		switch r.Kind {
		case transaction.KindBonus:
			acc.result.ManualPlus = acc.result.ManualPlus.Add(amount)
		case transaction.KindAdvance:
			acc.result.Advances = acc.result.Advances.Add(amount)
		case transaction.KindDebt, transaction.KindFine:
			// Debts and fines are not distinguished downstream.
			acc.result.ManualMinus = acc.result.ManualMinus.Add(amount)
		}
	}

	// Standing weekly debts, scoped by their Monday anchor.
	for _, d := range debts {
		if d.Status != transaction.DebtStatusActive {
			continue
		}
		if !d.Amount.IsPositive() {
			continue
		}
		if !inRange(d.WeekStart, p.From, p.To) {
			continue
		}
		acc, ok := accs[d.OperatorID]
		if !ok {
			continue
		}
		acc.result.AutoDebts = acc.result.AutoDebts.Add(d.Amount)
	}

	out := make([]settlement.OperatorSettlement, 0, len(accs))
	for _, acc := range accs {
		r := acc.result
		r.FinalSalary = r.BaseSalary.
			Add(r.BonusSalary).
			Add(r.ManualPlus).
			Sub(r.ManualMinus).
			Sub(r.AutoDebts).
			Sub(r.Advances)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OperatorName != out[j].OperatorName {
			return out[i].OperatorName < out[j].OperatorName
		}
		return out[i].OperatorID < out[j].OperatorID
	})
	return out
}

func inRange(d, from, to time.Time) bool {
	d = timebucket.DateOnly(d)
	return !d.Before(from) && !d.After(to)
}
