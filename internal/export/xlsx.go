// Package export writes optimization results to spreadsheet files for
// sharing a shopping list outside the app.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/smartshop/insights-service/internal/optimizer"
)

const sheetName = "Shopping List"

var headers = []string{"Product", "Quantity", "Store", "Unit Price", "Line Total", "Savings"}

// WriteBasketXLSX writes a basket result as an .xlsx shopping list.
func WriteBasketXLSX(result *optimizer.BasketResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	row := 2
	for _, item := range result.Items {
		values := []interface{}{item.ProductName, item.Quantity, item.Store, item.UnitPrice, item.LineTotal, item.Savings}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
		row++
	}

	row++ // blank separator
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Total"); err != nil {
		return fmt.Errorf("write total: %w", err)
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), result.TotalCost); err != nil {
		return fmt.Errorf("write total: %w", err)
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), result.TotalSavings); err != nil {
		return fmt.Errorf("write total: %w", err)
	}

	row += 2
	for _, rec := range result.Recommendations {
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), rec); err != nil {
			return fmt.Errorf("write recommendation: %w", err)
		}
		row++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
