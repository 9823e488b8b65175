package store

import (
	"testing"
	"time"

	"cockpit-backend/internal/database"
	"cockpit-backend/internal/models"
	"cockpit-backend/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return New(db)
}

func TestFindOrCreateType(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.FindOrCreateType("  Proteina ")
	require.NoError(t, err)
	assert.Equal(t, "Proteina", created.Name)

	// Case-insensitive, trimmed match returns the existing row.
	same, err := s.FindOrCreateType("PROTEINA")
	require.NoError(t, err)
	assert.Equal(t, created.ID, same.ID)

	other, err := s.FindOrCreateType("Vegetais")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, other.ID)

	types, err := s.ListTypes()
	require.NoError(t, err)
	assert.Len(t, types, 2)
}

func TestFindOrCreateFamilyScopedToType(t *testing.T) {
	s := setupTestStore(t)

	proteina, _ := s.FindOrCreateType("Proteina")
	visceras, _ := s.FindOrCreateType("Visceras")

	f1, err := s.FindOrCreateFamily("Aves", proteina.ID)
	require.NoError(t, err)

	// Same name under another type is a different family.
	f2, err := s.FindOrCreateFamily("aves", visceras.ID)
	require.NoError(t, err)
	assert.NotEqual(t, f1.ID, f2.ID)

	// Same name under the same type resolves to the existing one.
	again, err := s.FindOrCreateFamily(" AVES ", proteina.ID)
	require.NoError(t, err)
	assert.Equal(t, f1.ID, again.ID)
}

func TestDeleteTypeCascadesToFamilies(t *testing.T) {
	s := setupTestStore(t)

	proteina, _ := s.FindOrCreateType("Proteina")
	vegetais, _ := s.FindOrCreateType("Vegetais")
	s.FindOrCreateFamily("Bovinos", proteina.ID)
	s.FindOrCreateFamily("Aves", proteina.ID)
	verdes, _ := s.FindOrCreateFamily("Verdes", vegetais.ID)

	require.NoError(t, s.DeleteType(proteina.ID))

	families, err := s.ListFamilies()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, verdes.ID, families[0].ID)

	types, _ := s.ListTypes()
	assert.Len(t, types, 1)
}

func TestSaveInputRecomputesDerivedFields(t *testing.T) {
	s := setupTestStore(t)

	typ, _ := s.FindOrCreateType("Proteina")
	fam, _ := s.FindOrCreateFamily("Bovinos", typ.ID)

	item := models.InputItem{
		InputTypeID:   typ.ID,
		InputFamilyID: fam.ID,
		Name:          "Alcatra",
		UnitQty:       1,
		UnitPrice:     34,
		LossPercent:   45,
		// A client trying to smuggle derived values in:
		CorrectedQty:   999,
		CorrectedPrice: 999,
	}
	require.NoError(t, s.SaveInput(&item))

	assert.InDelta(t, 0.55, item.CorrectedQty, 1e-9)
	assert.InDelta(t, 34/0.55, item.CorrectedPrice, 1e-9)
	assert.Equal(t, "INS00001", item.Code)

	// Editing price re-derives; code survives.
	item.UnitPrice = 40
	item.CorrectedPrice = 1
	require.NoError(t, s.SaveInput(&item))

	items, err := s.ListInputs()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 40/0.55, items[0].CorrectedPrice, 1e-9)
	assert.Equal(t, "INS00001", items[0].Code)
}

func TestSaveInputMissing(t *testing.T) {
	s := setupTestStore(t)
	item := models.InputItem{ID: 42, Name: "Fantasma"}
	assert.ErrorIs(t, s.SaveInput(&item), ErrNotFound)
}

func TestSaveQuoteRequiresClient(t *testing.T) {
	s := setupTestStore(t)
	q := models.Quote{Code: "COT20240001", Client: "   "}
	assert.ErrorIs(t, s.SaveQuote(&q), ErrClientRequired)

	// Nothing was persisted.
	codes, err := s.ListQuoteCodes()
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestSaveQuoteNormalizesDiets(t *testing.T) {
	s := setupTestStore(t)

	q := models.Quote{
		Code:   "COT20240001",
		Client: "Maria",
		Diets: []models.QuoteDiet{
			{Ordinal: 2, Name: "Frango", Items: []models.QuoteDietItem{
				{InputItemID: 1, Amount: 120},
				{InputItemID: 2, Amount: 0},  // dropped
				{InputItemID: 3, Amount: -5}, // dropped
			}},
		},
	}
	require.NoError(t, s.SaveQuote(&q))

	loaded, err := s.GetQuoteByCode("COT20240001")
	require.NoError(t, err)

	require.Len(t, loaded.Diets, models.DietCount)
	assert.Equal(t, "Dieta 1", loaded.Diets[0].Name)
	assert.Equal(t, "Frango", loaded.Diets[1].Name)
	assert.Len(t, loaded.Diets[1].Items, 1)
	assert.Empty(t, loaded.Diets[0].Items)
	assert.Equal(t, models.QuoteOpen, loaded.Status)
	assert.False(t, loaded.QuotedAt.IsZero())
}

// A diet sent with the same input twice collapses into one line whose
// amount is the sum, so the stored rows match what ItemMap (and the
// flattening built on it) will price.
func TestSaveQuoteMergesDuplicateDietItems(t *testing.T) {
	s := setupTestStore(t)

	q := models.Quote{
		Code:   "COT20240001",
		Client: "Maria",
		Diets: []models.QuoteDiet{
			{Ordinal: 1, Items: []models.QuoteDietItem{
				{InputItemID: 1, Amount: 100},
				{InputItemID: 2, Amount: 30},
				{InputItemID: 1, Amount: 50},
			}},
		},
	}
	require.NoError(t, s.SaveQuote(&q))

	loaded, err := s.GetQuoteByCode("COT20240001")
	require.NoError(t, err)

	require.Len(t, loaded.Diets[0].Items, 2)
	assert.Equal(t, uint(1), loaded.Diets[0].Items[0].InputItemID)
	assert.Equal(t, 150.0, loaded.Diets[0].Items[0].Amount)
	assert.Equal(t, 30.0, loaded.Diets[0].Items[1].Amount)
	assert.InDelta(t, 150, loaded.Diets[0].ItemMap()[1], 1e-9)
}

func TestSaveQuoteUpsertPreservesQuotedAt(t *testing.T) {
	s := setupTestStore(t)

	first := models.Quote{
		Code:             "COT20240001",
		Client:           "Maria",
		QuotedAt:         time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		MarginSimulation: 40,
		Diets: []models.QuoteDiet{
			{Ordinal: 1, Items: []models.QuoteDietItem{{InputItemID: 1, Amount: 100}}},
		},
	}
	require.NoError(t, s.SaveQuote(&first))

	second := models.Quote{
		Code:             "COT20240001",
		Client:           "Maria Silva",
		QuotedAt:         time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), // must be ignored
		Status:           models.QuoteLost,
		LostReason:       models.LostPriceExpensive,
		MarginSimulation: 55,
		Diets: []models.QuoteDiet{
			{Ordinal: 1, Items: []models.QuoteDietItem{{InputItemID: 2, Amount: 80}}},
			{Ordinal: 3, Items: []models.QuoteDietItem{{InputItemID: 1, Amount: 40}}},
		},
	}
	require.NoError(t, s.SaveQuote(&second))

	loaded, err := s.GetQuoteByCode("COT20240001")
	require.NoError(t, err)

	assert.Equal(t, "Maria Silva", loaded.Client)
	assert.Equal(t, models.QuoteLost, loaded.Status)
	assert.Equal(t, 55.0, loaded.MarginSimulation)
	assert.True(t, loaded.QuotedAt.Equal(first.QuotedAt), "creation date must survive re-save")

	// Old diet tree fully replaced.
	assert.Equal(t, uint(2), loaded.Diets[0].Items[0].InputItemID)
	assert.Len(t, loaded.Diets[2].Items, 1)
	assert.Empty(t, loaded.Diets[1].Items)

	// Still a single record.
	codes, _ := s.ListQuoteCodes()
	assert.Len(t, codes, 1)
}

func TestGetQuoteByCodeNotFound(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.GetQuoteByCode("COT20990001")
	assert.ErrorIs(t, err, ErrNotFound)
}

// Round-trip property: flattening a saved quote reproduces the values
// computed directly from the stored margin and the current catalog.
func TestSaveThenFlattenRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	typ, _ := s.FindOrCreateType("Proteina")
	fam, _ := s.FindOrCreateFamily("Bovinos", typ.ID)
	item := models.InputItem{
		InputTypeID: typ.ID, InputFamilyID: fam.ID,
		Name: "Alcatra", UnitQty: 1, UnitPrice: 34, LossPercent: 45,
	}
	require.NoError(t, s.SaveInput(&item))

	q := models.Quote{
		Code:             "COT20240001",
		Client:           "Maria",
		MarginSimulation: 40,
		Diets: []models.QuoteDiet{
			{Ordinal: 1, Items: []models.QuoteDietItem{{InputItemID: item.ID, Amount: 2}}},
		},
	}
	require.NoError(t, s.SaveQuote(&q))

	quotes, err := s.ListQuotes()
	require.NoError(t, err)
	inputs, _ := s.ListInputs()
	types, _ := s.ListTypes()
	families, _ := s.ListFamilies()

	rows := pricing.Flatten(quotes, inputs, types, families)
	require.Len(t, rows, 1)

	wantCost := 2 * item.CorrectedPrice
	assert.InDelta(t, wantCost, rows[0].TotalCost, 1e-9)
	assert.InDelta(t, wantCost/(1-0.4), rows[0].SellingPrice, 1e-9)
	assert.Equal(t, "Proteina", rows[0].TypeName)
	assert.Equal(t, "Bovinos", rows[0].FamilyName)
}
