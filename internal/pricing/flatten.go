package pricing

import (
	"sort"
	"time"

	"cockpit-backend/internal/models"
)

// FlatRow is one (quote, diet, line item) triple of the analytical view.
type FlatRow struct {
	QuoteCode  string             `json:"quote_code"`
	QuotedAt   time.Time          `json:"quoted_at"`
	Client     string             `json:"client"`
	Status     models.QuoteStatus `json:"status"`
	DietName   string             `json:"diet_name"`
	TypeName   string             `json:"type_name"`
	FamilyName string             `json:"family_name"`
	InputName  string             `json:"input_name"`

	Qty          float64 `json:"qty"`
	UnitCost     float64 `json:"unit_cost"` // corrected unit price at flatten time
	TotalCost    float64 `json:"total_cost"`
	Margin       float64 `json:"margin"`
	SellingPrice float64 `json:"selling_price"`
}

// unknownName labels rows whose type or family was renamed away or
// deleted after the quote was saved.
const unknownName = "Desc."

// Flatten denormalizes every stored quote into one row per used line
// item, recomputing cost and selling price from the current input
// catalog and the quote's persisted margin. Line items whose input has
// been deleted are silently dropped. The result is fully rebuilt on
// every call and sorted by quote code, newest first.
func Flatten(quotes []models.Quote, inputs []models.InputItem, types []models.InputType, families []models.InputFamily) []FlatRow {
	inputByID := make(map[uint]models.InputItem, len(inputs))
	for _, in := range inputs {
		inputByID[in.ID] = in
	}
	typeNames := make(map[uint]string, len(types))
	for _, t := range types {
		typeNames[t.ID] = t.Name
	}
	familyNames := make(map[uint]string, len(families))
	for _, f := range families {
		familyNames[f.ID] = f.Name
	}

	var rows []FlatRow
	for _, quote := range quotes {
		margin := quote.MarginSimulation
		factor := 0.0
		if margin < 100 {
			factor = 1 / (1 - margin/100)
		}

		client := quote.Client
		if client == "" {
			client = "N/A"
		}

		for _, diet := range quote.Diets {
			for _, item := range diet.Items {
				if item.Amount <= 0 {
					continue
				}
				input, ok := inputByID[item.InputItemID]
				if !ok {
					continue // input deleted since the quote was saved
				}

				typeName, ok := typeNames[input.InputTypeID]
				if !ok {
					typeName = unknownName
				}
				familyName, ok := familyNames[input.InputFamilyID]
				if !ok {
					familyName = unknownName
				}

				cost := item.Amount * input.CorrectedPrice
				rows = append(rows, FlatRow{
					QuoteCode:    quote.Code,
					QuotedAt:     quote.QuotedAt,
					Client:       client,
					Status:       quote.Status,
					DietName:     diet.Name,
					TypeName:     typeName,
					FamilyName:   familyName,
					InputName:    input.Name,
					Qty:          item.Amount,
					UnitCost:     input.CorrectedPrice,
					TotalCost:    cost,
					Margin:       margin,
					SellingPrice: cost * factor,
				})
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].QuoteCode > rows[j].QuoteCode
	})
	return rows
}
