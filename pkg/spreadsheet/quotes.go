// Package spreadsheet writes quote listings as XLSX workbooks.
package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet of an exported workbook.
const SheetName = "Quotes"

// QuoteRow is one exported quote.
type QuoteRow struct {
	Number         string
	Client         string
	IssueDate      string
	DueDate        string
	Status         string
	PaymentMode    string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

var headers = []string{
	"Number", "Client", "Issued", "Due", "Status", "Payment",
	"Subtotal", "Discount", "Tax", "Total",
}

// amountFormat is the custom number format applied to money columns.
const amountFormat = "#,##0.00"

// WriteQuotes renders rows into an XLSX workbook and returns its bytes.
func WriteQuotes(rows []QuoteRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("spreadsheet: rename sheet: %w", err)
	}

	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDE4EE"}},
	})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: header style: %w", err)
	}
	format := amountFormat
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: amount style: %w", err)
	}

	for i, h := range headers {
		if err := setCell(f, i+1, 1, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headStyle); err != nil {
		return nil, fmt.Errorf("spreadsheet: apply header style: %w", err)
	}

	for r, row := range rows {
		y := r + 2
		values := []interface{}{
			row.Number, row.Client, row.IssueDate, row.DueDate, row.Status, row.PaymentMode,
			row.Subtotal.InexactFloat64(), row.DiscountAmount.InexactFloat64(),
			row.TaxAmount.InexactFloat64(), row.Total.InexactFloat64(),
		}
		for x, v := range values {
			if err := setCell(f, x+1, y, v); err != nil {
				return nil, err
			}
		}
	}

	if len(rows) > 0 {
		from, _ := excelize.CoordinatesToCellName(7, 2)
		to, _ := excelize.CoordinatesToCellName(len(headers), len(rows)+1)
		if err := f.SetCellStyle(SheetName, from, to, amountStyle); err != nil {
			return nil, fmt.Errorf("spreadsheet: apply amount style: %w", err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 12); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "B", "B", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "C", "J", 14); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: write workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func setCell(f *excelize.File, col, row int, v interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("spreadsheet: cell %d,%d: %w", col, row, err)
	}
	return f.SetCellValue(SheetName, cell, v)
}
