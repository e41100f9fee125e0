// Package export builds downloadable files from marketplace data.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	paymentmodels "ke.kejani.api/internal/models/payment"
)

const statementSheet = "Statement"

// BuildStatement renders a year's payments as an xlsx workbook with one
// sheet: a header row, one row per payment in the order given, and a
// closing total over completed payments. The caller owns the returned file
// and must Close it.
func BuildStatement(payments []paymentmodels.Payment, year int) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), statementSheet)

	headers := []string{"Date", "M-Pesa Receipt", "Reference", "Phone", "Status", "Amount (KES)"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(statementSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(statementSheet, "A1", "F1", boldStyle)
	}
	_ = f.SetColWidth(statementSheet, "A", "F", 20)

	var total int64
	row := 2
	for _, payment := range payments {
		values := []interface{}{
			payment.CreatedAt.Format("2006-01-02 15:04"),
			payment.MpesaReceipt,
			payment.AccountReference,
			payment.PhoneNumber,
			payment.Status,
			payment.Amount,
		}
		for i, value := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(statementSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write payment row: %w", err)
			}
		}
		if payment.Status == paymentmodels.StatusCompleted {
			total += payment.Amount
		}
		row++
	}

	totalLabelCell, _ := excelize.CoordinatesToCellName(5, row+1)
	totalValueCell, _ := excelize.CoordinatesToCellName(6, row+1)
	if err := f.SetCellValue(statementSheet, totalLabelCell, fmt.Sprintf("Total completed %d", year)); err != nil {
		return nil, fmt.Errorf("failed to write total label: %w", err)
	}
	if err := f.SetCellValue(statementSheet, totalValueCell, total); err != nil {
		return nil, fmt.Errorf("failed to write total: %w", err)
	}

	return f, nil
}

// StatementFilename names the download, e.g. "kejani-statement-2025.xlsx".
func StatementFilename(year int) string {
	return fmt.Sprintf("kejani-statement-%d.xlsx", year)
}
