package analytics

import (
	"strings"
	"testing"
	"time"

	"cockpit-backend/internal/models"
	"cockpit-backend/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCSVEmpty(t *testing.T) {
	out := BuildCSV(nil)

	require.True(t, strings.HasPrefix(out, "\uFEFF"), "export must start with a BOM")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, `"Cotacao";"Data";"Cliente";"Status";"Dieta";"Tipo";"Familia";"Insumo";"Quantidade";"Custo Unitario (R$)";"Custo Total (R$)";"Margem (%)";"Venda Total (R$)"`,
		strings.TrimPrefix(lines[0], "\uFEFF"))
}

func TestBuildCSVRow(t *testing.T) {
	rows := []pricing.FlatRow{
		{
			QuoteCode:    "COT20240001",
			QuotedAt:     time.Date(2024, 3, 7, 15, 30, 0, 0, time.UTC),
			Client:       "Maria",
			Status:       models.QuoteOpen,
			DietName:     "Frango",
			TypeName:     "Proteina",
			FamilyName:   "Aves",
			InputName:    "Peito de frango",
			Qty:          150,
			UnitCost:     0.0425,
			TotalCost:    6.375,
			Margin:       40,
			SellingPrice: 10.625,
		},
	}

	out := BuildCSV(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	// Decimal comma, quantities with 4 decimals, money with 2, date dd/mm/yyyy.
	assert.Equal(t, `"COT20240001";"07/03/2024";"Maria";"Em Aberto";"Frango";"Proteina";"Aves";"Peito de frango";"150,0000";"0,04";"6,38";"40,00";"10,62"`,
		lines[1])
}

func TestBuildCSVEscapesQuotes(t *testing.T) {
	rows := []pricing.FlatRow{{
		QuoteCode: "COT20240002",
		QuotedAt:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Client:    `Bar "do Zé"`,
		Status:    models.QuoteConcluded,
	}}

	out := BuildCSV(rows)
	assert.Contains(t, out, `"Bar ""do Zé"""`)
}
