package pricing

import (
	"testing"
	"time"

	"cockpit-backend/internal/models"
)

func flattenFixture() ([]models.Quote, []models.InputItem, []models.InputType, []models.InputFamily) {
	types := []models.InputType{{ID: 1, Name: "PROTEINA"}, {ID: 2, Name: "VEGETAIS"}}
	families := []models.InputFamily{
		{ID: 1, Name: "Bovinos", InputTypeID: 1},
		{ID: 2, Name: "Verdes", InputTypeID: 2},
	}
	inputs := []models.InputItem{
		{ID: 1, Name: "Alcatra", InputTypeID: 1, InputFamilyID: 1, CorrectedPrice: 61.8181818181818},
		{ID: 2, Name: "Brocolis", InputTypeID: 2, InputFamilyID: 2, CorrectedPrice: 25.38},
	}
	quotes := []models.Quote{
		{
			Code:             "COT20240002",
			Client:           "Maria",
			QuotedAt:         time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			Status:           models.QuoteOpen,
			MarginSimulation: 40,
			Diets: []models.QuoteDiet{
				{Ordinal: 1, Name: "Dieta 1", Items: []models.QuoteDietItem{
					{InputItemID: 1, Amount: 100},
					{InputItemID: 2, Amount: 50},
				}},
				{Ordinal: 2, Name: "Dieta 2"},
				{Ordinal: 3, Name: "Dieta 3"},
				{Ordinal: 4, Name: "Dieta 4", Items: []models.QuoteDietItem{
					{InputItemID: 99, Amount: 30}, // deleted input
				}},
			},
		},
		{
			Code:             "COT20240001",
			QuotedAt:         time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Status:           models.QuoteLost,
			MarginSimulation: 100,
			Diets: []models.QuoteDiet{
				{Ordinal: 1, Name: "Dieta 1", Items: []models.QuoteDietItem{
					{InputItemID: 2, Amount: 10},
				}},
			},
		},
	}
	return quotes, inputs, types, families
}

func TestFlatten(t *testing.T) {
	quotes, inputs, types, families := flattenFixture()
	rows := Flatten(quotes, inputs, types, families)

	// 2 usable rows from the first quote (the deleted input is dropped)
	// plus 1 from the second.
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	// Sorted newest code first.
	if rows[0].QuoteCode != "COT20240002" || rows[2].QuoteCode != "COT20240001" {
		t.Errorf("unexpected order: %s .. %s", rows[0].QuoteCode, rows[2].QuoteCode)
	}

	first := rows[0]
	if first.InputName != "Alcatra" || first.TypeName != "PROTEINA" || first.FamilyName != "Bovinos" {
		t.Errorf("row labels = %s/%s/%s", first.InputName, first.TypeName, first.FamilyName)
	}
	wantCost := 100 * 61.8181818181818
	if !almostEqual(first.TotalCost, wantCost) {
		t.Errorf("TotalCost = %v, want %v", first.TotalCost, wantCost)
	}
	// margin 40 -> factor 1/0.6
	if !almostEqual(first.SellingPrice, wantCost/0.6) {
		t.Errorf("SellingPrice = %v, want %v", first.SellingPrice, wantCost/0.6)
	}
}

func TestFlattenDegenerateMargin(t *testing.T) {
	quotes, inputs, types, families := flattenFixture()
	rows := Flatten(quotes, inputs, types, families)

	// The second quote was stored with margin 100: factor is zero, so the
	// selling price collapses to zero instead of dividing by zero.
	last := rows[2]
	if last.Margin != 100 {
		t.Fatalf("Margin = %v, want 100", last.Margin)
	}
	if last.SellingPrice != 0 {
		t.Errorf("SellingPrice = %v, want 0", last.SellingPrice)
	}
	if !almostEqual(last.TotalCost, 10*25.38) {
		t.Errorf("TotalCost = %v, want %v", last.TotalCost, 10*25.38)
	}
	if last.Client != "N/A" {
		t.Errorf("Client = %q, want N/A placeholder", last.Client)
	}
}

func TestFlattenRelabelsRenamedTaxonomy(t *testing.T) {
	quotes, inputs, types, families := flattenFixture()
	types[0].Name = "CARNES"

	rows := Flatten(quotes, inputs, types, families)
	if rows[0].TypeName != "CARNES" {
		t.Errorf("TypeName = %q, want renamed value", rows[0].TypeName)
	}
}

func TestFlattenMissingTaxonomy(t *testing.T) {
	quotes, inputs, _, _ := flattenFixture()
	rows := Flatten(quotes, inputs, nil, nil)
	if rows[0].TypeName != unknownName || rows[0].FamilyName != unknownName {
		t.Errorf("labels = %s/%s, want placeholders", rows[0].TypeName, rows[0].FamilyName)
	}
}

func TestFlattenEmpty(t *testing.T) {
	if rows := Flatten(nil, nil, nil, nil); len(rows) != 0 {
		t.Errorf("got %d rows from empty store", len(rows))
	}
}
