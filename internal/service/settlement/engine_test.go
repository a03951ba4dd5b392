package settlement

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
	"github.com/venuedesk/finance-backend-go/internal/domain/settlement"
	"github.com/venuedesk/finance-backend-go/internal/domain/transaction"
)

var testDefaultBase = decimal.NewFromInt(8000)

func day(d int) time.Time {
	return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
}

func weekParams() settlement.Params {
	return settlement.Params{From: day(7), To: day(13)}
}

func testRefs() *refdata.Set {
	short := "Sasha"
	companies := []refdata.Company{
		{ID: "c-ramen", Name: "Ramen House", Code: "ramen"},
		{ID: "c-noodle", Name: "Noodle Bar", Code: "noodle"},
	}
	operators := []refdata.Operator{
		{ID: "op-1", Name: "Aleksandra Petrova", ShortName: &short, IsActive: true},
		{ID: "op-2", Name: "Dmitri Ivanov", IsActive: true},
		{ID: "op-3", Name: "Elena Morozova", IsActive: false},
	}
	rules := []refdata.SalaryRule{
		{
			ID:                 "r-1",
			CompanyCode:        "ramen",
			ShiftType:          refdata.ShiftDay,
			BasePerShift:       decimal.NewFromInt(8000),
			Threshold1Turnover: decimal.NewFromInt(120000),
			Threshold1Bonus:    decimal.NewFromInt(5000),
			Threshold2Turnover: decimal.NewFromInt(160000),
			Threshold2Bonus:    decimal.NewFromInt(5000),
			IsActive:           true,
		},
		{
			ID:           "r-2",
			CompanyCode:  "noodle",
			ShiftType:    refdata.ShiftDay,
			BasePerShift: decimal.NewFromInt(7000),
			IsActive:     true,
		},
	}
	return refdata.NewSet(companies, operators, rules)
}

func strPtr(s string) *string { return &s }

func incomeRow(operatorID, companyID string, d time.Time, shift refdata.ShiftType, cash int64) transaction.Record {
	return transaction.Record{
		ID:         "rec-" + operatorID + d.Format("0102") + string(shift),
		Kind:       transaction.KindIncome,
		Date:       d,
		CompanyID:  companyID,
		OperatorID: strPtr(operatorID),
		ShiftType:  shift,
		Amount:     transaction.Amount{Cash: decimal.NewFromInt(cash)},
	}
}

func settlementFor(t *testing.T, out []settlement.OperatorSettlement, operatorID string) settlement.OperatorSettlement {
	t.Helper()
	for _, s := range out {
		if s.OperatorID == operatorID {
			return s
		}
	}
	t.Fatalf("no settlement for operator %s", operatorID)
	return settlement.OperatorSettlement{}
}

func TestComputeSettlements_TieredBonusesStack(t *testing.T) {
	t.Parallel()

	// One day shift at the ramen venue, turnover 165000 split across
	// two rows. Both tiers fire: 8000 base + 5000 + 5000.
	income := []transaction.Record{
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftDay, 100000),
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftDay, 65000),
	}

	out := computeSettlements(weekParams(), income, nil, nil, testRefs(), testDefaultBase)

	s := settlementFor(t, out, "op-1")
	assert.Equal(t, 1, s.Shifts)
	assert.True(t, s.Turnover.Equal(decimal.NewFromInt(165000)), "turnover %s", s.Turnover)
	assert.True(t, s.BaseSalary.Equal(decimal.NewFromInt(8000)), "base %s", s.BaseSalary)
	assert.True(t, s.BonusSalary.Equal(decimal.NewFromInt(10000)), "bonus %s", s.BonusSalary)
	assert.True(t, s.FinalSalary.Equal(decimal.NewFromInt(18000)), "final %s", s.FinalSalary)
}

func TestComputeSettlements_SingleTier(t *testing.T) {
	t.Parallel()

	income := []transaction.Record{
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftDay, 130000),
	}

	out := computeSettlements(weekParams(), income, nil, nil, testRefs(), testDefaultBase)

	s := settlementFor(t, out, "op-1")
	assert.True(t, s.BonusSalary.Equal(decimal.NewFromInt(5000)), "bonus %s", s.BonusSalary)
	assert.True(t, s.FinalSalary.Equal(decimal.NewFromInt(13000)), "final %s", s.FinalSalary)
}

func TestComputeSettlements_ZeroThresholdDisablesTier(t *testing.T) {
	t.Parallel()

	// The noodle rule has both thresholds unset; huge turnover still
	// earns only the base.
	income := []transaction.Record{
		incomeRow("op-2", "c-noodle", day(9), refdata.ShiftDay, 900000),
	}

	out := computeSettlements(weekParams(), income, nil, nil, testRefs(), testDefaultBase)

	s := settlementFor(t, out, "op-2")
	assert.True(t, s.BonusSalary.IsZero())
	assert.True(t, s.BaseSalary.Equal(decimal.NewFromInt(7000)))
}

func TestComputeSettlements_DefaultBaseWhenNoRule(t *testing.T) {
	t.Parallel()

	// No rule exists for ramen night shifts.
	income := []transaction.Record{
		incomeRow("op-1", "c-ramen", day(10), refdata.ShiftNight, 50000),
	}

	out := computeSettlements(weekParams(), income, nil, nil, testRefs(), testDefaultBase)

	s := settlementFor(t, out, "op-1")
	assert.True(t, s.BaseSalary.Equal(testDefaultBase))
	assert.True(t, s.BonusSalary.IsZero())
}

func TestComputeSettlements_ShiftCountedOncePerKey(t *testing.T) {
	t.Parallel()

	// Same operator, same day: the day and night shifts are distinct,
	// further rows within one shift are not.
	income := []transaction.Record{
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftDay, 40000),
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftDay, 30000),
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftNight, 20000),
	}

	out := computeSettlements(weekParams(), income, nil, nil, testRefs(), testDefaultBase)

	s := settlementFor(t, out, "op-1")
	assert.Equal(t, 2, s.Shifts)
	// ramen/day base 8000 plus the default for the uncovered night shift.
	assert.True(t, s.BaseSalary.Equal(decimal.NewFromInt(16000)), "base %s", s.BaseSalary)
}

func TestComputeSettlements_ActiveOperatorWithoutShiftsAppears(t *testing.T) {
	t.Parallel()

	out := computeSettlements(weekParams(), nil, nil, nil, testRefs(), testDefaultBase)

	require.Len(t, out, 2)
	for _, s := range out {
		assert.Equal(t, 0, s.Shifts)
		assert.True(t, s.FinalSalary.IsZero())
	}
}

func TestComputeSettlements_InactiveOperatorToggle(t *testing.T) {
	t.Parallel()

	income := []transaction.Record{
		incomeRow("op-3", "c-ramen", day(8), refdata.ShiftDay, 50000),
	}

	out := computeSettlements(weekParams(), income, nil, nil, testRefs(), testDefaultBase)
	for _, s := range out {
		assert.NotEqual(t, "op-3", s.OperatorID)
	}

	p := weekParams()
	p.IncludeInactive = true
	out = computeSettlements(p, income, nil, nil, testRefs(), testDefaultBase)
	s := settlementFor(t, out, "op-3")
	assert.False(t, s.IsActive)
	assert.Equal(t, 1, s.Shifts)
}

func TestComputeSettlements_AdjustmentsAndDebts(t *testing.T) {
	t.Parallel()

	income := []transaction.Record{
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftDay, 50000),
	}
	adjustments := []transaction.Record{
		{Kind: transaction.KindBonus, Date: day(9), CompanyID: "c-ramen", OperatorID: strPtr("op-1"),
			Amount: transaction.Amount{Cash: decimal.NewFromInt(2000)}},
		{Kind: transaction.KindAdvance, Date: day(10), CompanyID: "c-ramen", OperatorID: strPtr("op-1"),
			Amount: transaction.Amount{Cash: decimal.NewFromInt(3000)}},
		{Kind: transaction.KindFine, Date: day(11), CompanyID: "c-ramen", OperatorID: strPtr("op-1"),
			Amount: transaction.Amount{Cash: decimal.NewFromInt(500)}},
		// Out of range, must be ignored.
		{Kind: transaction.KindBonus, Date: day(20), CompanyID: "c-ramen", OperatorID: strPtr("op-1"),
			Amount: transaction.Amount{Cash: decimal.NewFromInt(99999)}},
	}
	debts := []transaction.StandingDebt{
		{OperatorID: "op-1", WeekStart: day(7), Amount: decimal.NewFromInt(1500), Status: transaction.DebtStatusActive},
		{OperatorID: "op-1", WeekStart: day(7), Amount: decimal.NewFromInt(4000), Status: transaction.DebtStatusSettled},
	}

	out := computeSettlements(weekParams(), income, adjustments, debts, testRefs(), testDefaultBase)

	s := settlementFor(t, out, "op-1")
	assert.True(t, s.ManualPlus.Equal(decimal.NewFromInt(2000)))
	assert.True(t, s.Advances.Equal(decimal.NewFromInt(3000)))
	assert.True(t, s.ManualMinus.Equal(decimal.NewFromInt(500)))
	assert.True(t, s.AutoDebts.Equal(decimal.NewFromInt(1500)))
	// 8000 base + 2000 - 500 - 1500 - 3000
	assert.True(t, s.FinalSalary.Equal(decimal.NewFromInt(5000)), "final %s", s.FinalSalary)
}

func TestComputeSettlements_CompanyFilter(t *testing.T) {
	t.Parallel()

	income := []transaction.Record{
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftDay, 50000),
		incomeRow("op-1", "c-noodle", day(9), refdata.ShiftDay, 60000),
	}

	p := weekParams()
	companyID := "c-ramen"
	p.CompanyID = &companyID
	out := computeSettlements(p, income, nil, nil, testRefs(), testDefaultBase)

	s := settlementFor(t, out, "op-1")
	assert.Equal(t, 1, s.Shifts)
	assert.True(t, s.Turnover.Equal(decimal.NewFromInt(50000)))
}

func TestComputeSettlements_ZeroAndNegativeRowsIgnored(t *testing.T) {
	t.Parallel()

	income := []transaction.Record{
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftDay, 0),
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftDay, -5000),
	}

	out := computeSettlements(weekParams(), income, nil, nil, testRefs(), testDefaultBase)

	s := settlementFor(t, out, "op-1")
	assert.Equal(t, 0, s.Shifts)
	assert.True(t, s.FinalSalary.IsZero())
}

func TestComputeSettlements_FinalSalaryConservation(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	refs := testRefs()
	companies := []string{"c-ramen", "c-noodle"}
	kinds := []transaction.Kind{
		transaction.KindBonus, transaction.KindAdvance,
		transaction.KindDebt, transaction.KindFine,
	}

	var income, adjustments []transaction.Record
	for i := 0; i < 200; i++ {
		op := []string{"op-1", "op-2"}[rng.Intn(2)]
		d := day(7 + rng.Intn(7))
		income = append(income, incomeRow(op, companies[rng.Intn(2)], d, refdata.ShiftDay, int64(rng.Intn(200000))))
		adjustments = append(adjustments, transaction.Record{
			Kind: kinds[rng.Intn(len(kinds))], Date: d, OperatorID: strPtr(op),
			Amount: transaction.Amount{Cash: decimal.NewFromInt(int64(rng.Intn(5000)))},
		})
	}

	out := computeSettlements(weekParams(), income, adjustments, nil, refs, testDefaultBase)

	for _, s := range out {
		want := s.BaseSalary.
			Add(s.BonusSalary).
			Add(s.ManualPlus).
			Sub(s.ManualMinus).
			Sub(s.AutoDebts).
			Sub(s.Advances)
		assert.True(t, s.FinalSalary.Equal(want), "operator %s: final %s want %s", s.OperatorID, s.FinalSalary, want)
	}
}

func TestComputeSettlements_OrderInvariance(t *testing.T) {
	t.Parallel()

	income := []transaction.Record{
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftDay, 100000),
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftDay, 65000),
		incomeRow("op-2", "c-noodle", day(9), refdata.ShiftDay, 40000),
	}
	reversed := make([]transaction.Record, len(income))
	for i, r := range income {
		reversed[len(income)-1-i] = r
	}

	a := computeSettlements(weekParams(), income, nil, nil, testRefs(), testDefaultBase)
	b := computeSettlements(weekParams(), reversed, nil, nil, testRefs(), testDefaultBase)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].OperatorID, b[i].OperatorID)
		assert.True(t, a[i].FinalSalary.Equal(b[i].FinalSalary))
		assert.True(t, a[i].Turnover.Equal(b[i].Turnover))
	}
}
