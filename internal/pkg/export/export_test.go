package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuedesk/finance-backend-go/internal/domain/analytics"
	"github.com/venuedesk/finance-backend-go/internal/domain/settlement"
)

func sampleResult() settlement.Result {
	return settlement.Result{
		Period: settlement.PeriodDTO{From: "2025-07-07", To: "2025-07-13"},
		Settlements: []settlement.OperatorSettlement{
			{
				OperatorName: "Sasha",
				Shifts:       3,
				Turnover:     decimal.NewFromInt(165000),
				BaseSalary:   decimal.NewFromInt(24000),
				BonusSalary:  decimal.NewFromInt(10000),
				FinalSalary:  decimal.RequireFromString("33999.5"),
			},
		},
	}
}

func TestSettlementTable_RoundsAtExportOnly(t *testing.T) {
	t.Parallel()

	table := SettlementTable(sampleResult())

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "Sasha", row[0])
	assert.Equal(t, "3", row[1])
	assert.Equal(t, "165000", row[2])
	// Fractional payables round to whole units here, half up.
	assert.Equal(t, "34000", row[9])
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteCSV(&buf, SettlementTable(sampleResult()))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "operator,shifts,turnover,base_salary,bonus_salary,manual_plus,manual_minus,auto_debts,advances,final_salary", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Sasha,3,165000,"))
}

func TestCategoryTable(t *testing.T) {
	t.Parallel()

	table := CategoryTable([]analytics.CategoryTotal{
		{Category: "rent", Amount: decimal.NewFromInt(9000)},
		{Category: "supplies", Amount: decimal.RequireFromString("3000.4")},
	})

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"rent", "9000"}, table.Rows[0])
	assert.Equal(t, []string{"supplies", "3000"}, table.Rows[1])
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteXLSX(&buf, SettlementTable(sampleResult()), "Settlements")
	require.NoError(t, err)

	// XLSX is a zip container; checking the magic bytes is enough to
	// know a workbook was produced.
	require.True(t, buf.Len() > 4)
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}
