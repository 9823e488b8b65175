package analytics

import (
	"strconv"
	"strings"

	"cockpit-backend/internal/pricing"
)

// The export keeps the exact shape consumed by the existing BI
// spreadsheets: UTF-8 BOM, semicolon separator, every field quoted,
// decimal comma, quantities with four decimals and money with two.

var csvHeader = []string{
	"Cotacao", "Data", "Cliente", "Status", "Dieta", "Tipo", "Familia",
	"Insumo", "Quantidade", "Custo Unitario (R$)", "Custo Total (R$)",
	"Margem (%)", "Venda Total (R$)",
}

func csvField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func csvNumber(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	return strings.ReplaceAll(s, ".", ",")
}

// BuildCSV renders the flattened rows into the legacy export format.
func BuildCSV(rows []pricing.FlatRow) string {
	var b strings.Builder
	b.WriteString("\uFEFF") // BOM keeps Excel from mangling accents

	header := make([]string, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = csvField(h)
	}
	b.WriteString(strings.Join(header, ";"))
	b.WriteString("\n")

	for _, row := range rows {
		fields := []string{
			csvField(row.QuoteCode),
			csvField(row.QuotedAt.Format("02/01/2006")),
			csvField(row.Client),
			csvField(string(row.Status)),
			csvField(row.DietName),
			csvField(row.TypeName),
			csvField(row.FamilyName),
			csvField(row.InputName),
			csvField(csvNumber(row.Qty, 4)),
			csvField(csvNumber(row.UnitCost, 2)),
			csvField(csvNumber(row.TotalCost, 2)),
			csvField(csvNumber(row.Margin, 2)),
			csvField(csvNumber(row.SellingPrice, 2)),
		}
		b.WriteString(strings.Join(fields, ";"))
		b.WriteString("\n")
	}

	return b.String()
}
