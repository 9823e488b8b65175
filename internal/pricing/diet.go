package pricing

import (
	"strings"

	"cockpit-backend/internal/models"
)

// DietCost is the priced summary of a single diet.
type DietCost struct {
	TotalWeight  float64 `json:"total_weight"` // grams
	TotalCost    float64 `json:"total_cost"`
	SellingPrice float64 `json:"selling_price"`
	PricePerKg   float64 `json:"price_per_kg"`
	Description  string  `json:"description"`
}

// CostDiet aggregates a diet's line items against the input catalog and
// applies the target gross margin.
//
// Amounts are grams; entries that are zero or negative are ignored. The
// margin formula cost/(1-m) is degenerate at 100% and above, where the
// selling price falls back to the raw cost. The description lists every
// used input in catalog order ("Alcatra - 150,00 / Cenoura - 80,00").
func CostDiet(items map[uint]float64, catalog []models.InputItem, marginPercent float64) DietCost {
	var cost DietCost
	var used []string

	for _, input := range catalog {
		amount := items[input.ID]
		if amount <= 0 {
			continue
		}
		cost.TotalWeight += amount
		cost.TotalCost += amount * input.CorrectedPrice
		used = append(used, input.Name+" - "+FormatBR(amount))
	}

	if marginPercent < 100 {
		cost.SellingPrice = cost.TotalCost / (1 - marginPercent/100)
	} else {
		cost.SellingPrice = cost.TotalCost
	}

	if cost.TotalWeight > 0 {
		cost.PricePerKg = cost.SellingPrice / (cost.TotalWeight / 1000)
	}

	cost.Description = strings.Join(used, " / ")
	return cost
}
