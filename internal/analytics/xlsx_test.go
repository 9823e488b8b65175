package analytics

import (
	"testing"
	"time"

	"cockpit-backend/internal/models"
	"cockpit-backend/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildXLSX(t *testing.T) {
	rows := []pricing.FlatRow{{
		QuoteCode:    "COT20240001",
		QuotedAt:     time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
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
	}}

	f, err := BuildXLSX(rows)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	first, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Cotacao", first)
	lastHeader, err := f.GetCellValue(sheetName, "M1")
	require.NoError(t, err)
	assert.Equal(t, "Venda Total (R$)", lastHeader)

	code, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "COT20240001", code)
	date, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "07/03/2024", date)

	// Every column up to the last money one carries the widened layout.
	for _, col := range []string{"A", "H", "I", "M"} {
		w, err := f.GetColWidth(sheetName, col)
		require.NoError(t, err)
		assert.Equal(t, 22.0, w, "column %s", col)
	}
}
