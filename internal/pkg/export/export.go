// Package export renders engine results as flat tables for offline
// consumption. Monetary values are rounded to whole currency units
// here and nowhere earlier; the engine keeps full precision.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/venuedesk/finance-backend-go/internal/domain/analytics"
	"github.com/venuedesk/finance-backend-go/internal/domain/settlement"
	"github.com/xuri/excelize/v2"
)

// Table is one flat delimited result: a header row plus data rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

func money(d decimal.Decimal) string {
	return d.Round(0).String()
}

// SettlementTable flattens a settlement result, one row per operator.
func SettlementTable(result settlement.Result) Table {
	t := Table{
		Headers: []string{
			"operator", "shifts", "turnover", "base_salary", "bonus_salary",
			"manual_plus", "manual_minus", "auto_debts", "advances", "final_salary",
		},
	}
	for _, s := range result.Settlements {
		t.Rows = append(t.Rows, []string{
			s.OperatorName,
			strconv.Itoa(s.Shifts),
			money(s.Turnover),
			money(s.BaseSalary),
			money(s.BonusSalary),
			money(s.ManualPlus),
			money(s.ManualMinus),
			money(s.AutoDebts),
			money(s.Advances),
			money(s.FinalSalary),
		})
	}
	return t
}

// CategoryTable flattens expense categories, one row per category.
func CategoryTable(categories []analytics.CategoryTotal) Table {
	t := Table{Headers: []string{"category", "amount"}}
	for _, c := range categories {
		t.Rows = append(t.Rows, []string{c.Category, money(c.Amount)})
	}
	return t
}

// WriteCSV writes the table as comma-delimited text.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the table as a single-sheet workbook.
func WriteXLSX(w io.Writer, t Table, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}
	for rowIdx, row := range t.Rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	return f.Write(w)
}
