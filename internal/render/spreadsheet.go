package render

import (
	"fmt"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/epimonos/statement-backend/internal/policy"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet of a statement workbook
const SheetName = "Statement"

// SpreadsheetHeader is the column header row above the loan rows
var SpreadsheetHeader = []interface{}{"Loan Type", "Principal", "Interest Rate", "Current Balance", "Payment Due Date"}

// SpreadsheetRenderer writes an xlsx workbook with one row per loan line.
// It ignores the presentation policy.
type SpreadsheetRenderer struct{}

// NewSpreadsheetRenderer creates a new SpreadsheetRenderer
func NewSpreadsheetRenderer() *SpreadsheetRenderer {
	return &SpreadsheetRenderer{}
}

// MediaType returns the xlsx media type
func (r *SpreadsheetRenderer) MediaType() string { return MediaTypeSpreadsheet }

// Render writes the workbook. An empty loan list yields the header row only.
func (r *SpreadsheetRenderer) Render(data *domain.StatementData, _ policy.Bundle) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Loan Statement"},
		nil,
		{"Customer Name", data.CustomerNames()},
		{"Customer ID", data.Primary().ID},
		{"Billing Period", data.Period.String()},
		nil,
		SpreadsheetHeader,
	}
	for _, loan := range data.Loans {
		rows = append(rows, []interface{}{
			loan.Category,
			loan.Principal.InexactFloat64(),
			loan.AnnualRate.InexactFloat64(),
			loan.CurrentBalance.InexactFloat64(),
			rawDate(loan),
		})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
