package analytics

import (
	"fmt"

	"cockpit-backend/internal/pricing"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Cotações"

// BuildXLSX renders the flattened rows as a spreadsheet with the same
// columns as the CSV export, but with native numeric and date cells so
// Excel users skip the locale dance. Caller closes the file.
func BuildXLSX(rows []pricing.FlatRow) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			row.QuoteCode,
			row.QuotedAt.Format("02/01/2006"),
			row.Client,
			string(row.Status),
			row.DietName,
			row.TypeName,
			row.FamilyName,
			row.InputName,
			row.Qty,
			row.UnitCost,
			row.TotalCost,
			row.Margin,
			row.SellingPrice,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "M", 22); err != nil {
		return nil, err
	}
	return f, nil
}
