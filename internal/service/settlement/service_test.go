package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuedesk/finance-backend-go/internal/config"
	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
	"github.com/venuedesk/finance-backend-go/internal/domain/settlement"
	"github.com/venuedesk/finance-backend-go/internal/domain/transaction"
	"github.com/venuedesk/finance-backend-go/internal/pkg/validator"
)

type stubRecordRepo struct {
	income      []transaction.Record
	adjustments []transaction.Record
}

func (s *stubRecordRepo) ListIncome(ctx context.Context, f transaction.Filter) ([]transaction.Record, error) {
	return s.income, nil
}

func (s *stubRecordRepo) ListExpenses(ctx context.Context, f transaction.Filter) ([]transaction.Record, error) {
	return nil, nil
}

func (s *stubRecordRepo) ListAdjustments(ctx context.Context, f transaction.Filter) ([]transaction.Record, error) {
	return s.adjustments, nil
}

type stubDebtRepo struct {
	debts []transaction.StandingDebt
}

func (s *stubDebtRepo) ListActive(ctx context.Context, from, to time.Time) ([]transaction.StandingDebt, error) {
	return s.debts, nil
}

type stubLoader struct {
	refs *refdata.Set
}

func (s *stubLoader) Load(ctx context.Context) (*refdata.Set, error) {
	return s.refs, nil
}

func newTestService(income, adjustments []transaction.Record, debts []transaction.StandingDebt) settlement.Service {
	return NewSettlementService(
		&stubRecordRepo{income: income, adjustments: adjustments},
		&stubDebtRepo{debts: debts},
		&stubLoader{refs: testRefs()},
		config.EngineConfig{DefaultBasePerShift: 8000},
	)
}

func TestSettlementService_Settle_TotalPayout(t *testing.T) {
	t.Parallel()

	income := []transaction.Record{
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftDay, 165000),
		incomeRow("op-2", "c-noodle", day(9), refdata.ShiftDay, 40000),
	}

	svc := newTestService(income, nil, nil)
	result, err := svc.Settle(context.Background(), weekParams())
	require.NoError(t, err)

	assert.Equal(t, "2025-07-07", result.Period.From)
	require.Len(t, result.Settlements, 2)

	// 18000 for the tiered ramen shift plus 7000 noodle base.
	assert.True(t, result.TotalPayout.Equal(decimal.NewFromInt(25000)), "payout %s", result.TotalPayout)
}

func TestSettlementService_Settle_SwappedRangeNormalized(t *testing.T) {
	t.Parallel()

	income := []transaction.Record{
		incomeRow("op-1", "c-ramen", day(8), refdata.ShiftDay, 50000),
	}

	svc := newTestService(income, nil, nil)
	result, err := svc.Settle(context.Background(), settlement.Params{From: day(13), To: day(7)})
	require.NoError(t, err)

	assert.Equal(t, "2025-07-07", result.Period.From)
	assert.Equal(t, "2025-07-13", result.Period.To)
	s := settlementFor(t, result.Settlements, "op-1")
	assert.Equal(t, 1, s.Shifts)
}

func TestSettlementService_Settle_ValidationErrors(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil, nil)
	_, err := svc.Settle(context.Background(), settlement.Params{})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "from")
	assert.Contains(t, verrs.ToMap(), "to")
}
