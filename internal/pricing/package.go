package pricing

import "cockpit-backend/internal/models"

// Proportions holds the user-entered supply period multipliers, one per
// diet. They are free non-negative factors, not percentages.
type Proportions struct {
	Weekly      [models.DietCount]float64 `json:"weekly"`
	Fortnightly [models.DietCount]float64 `json:"fortnightly"`
	Monthly     [models.DietCount]float64 `json:"monthly"`
	Custom      [models.DietCount]float64 `json:"custom"`
}

// PackageRow projects one diet's selling price across supply periods.
// The monthly proportion is carried and totaled for display but has no
// monetary column of its own.
type PackageRow struct {
	Diet         int     `json:"diet"` // 1..4
	Cost         float64 `json:"cost"`
	SellingPrice float64 `json:"selling_price"`
	PricePerKg   float64 `json:"price_per_kg"`
	Description  string  `json:"description"`

	Weekly      float64 `json:"weekly"`
	Fortnightly float64 `json:"fortnightly"`
	Monthly     float64 `json:"monthly"`
	Custom      float64 `json:"custom"`

	WeeklyAmount      float64 `json:"weekly_amount"`
	FortnightlyAmount float64 `json:"fortnightly_amount"`
	CustomAmount      float64 `json:"custom_amount"`
}

// PackageTotals sums the monetary amounts and the raw proportion
// columns across all four diets.
type PackageTotals struct {
	WeeklyAmount      float64 `json:"weekly_amount"`
	FortnightlyAmount float64 `json:"fortnightly_amount"`
	CustomAmount      float64 `json:"custom_amount"`

	WeeklyProp      float64 `json:"weekly_prop"`
	FortnightlyProp float64 `json:"fortnightly_prop"`
	MonthlyProp     float64 `json:"monthly_prop"`
	CustomProp      float64 `json:"custom_prop"`
}

// Rollup builds the supply package table from the four diet costs and
// their proportions. It is a pure aggregation: all-zero proportions
// simply yield all-zero totals.
func Rollup(costs [models.DietCount]DietCost, props Proportions) ([models.DietCount]PackageRow, PackageTotals) {
	var rows [models.DietCount]PackageRow
	var totals PackageTotals

	for i := 0; i < models.DietCount; i++ {
		c := costs[i]
		row := PackageRow{
			Diet:         i + 1,
			Cost:         c.TotalCost,
			SellingPrice: c.SellingPrice,
			PricePerKg:   c.PricePerKg,
			Description:  c.Description,
			Weekly:       props.Weekly[i],
			Fortnightly:  props.Fortnightly[i],
			Monthly:      props.Monthly[i],
			Custom:       props.Custom[i],
		}
		row.WeeklyAmount = c.SellingPrice * row.Weekly
		row.FortnightlyAmount = c.SellingPrice * row.Fortnightly
		row.CustomAmount = c.SellingPrice * row.Custom
		rows[i] = row

		totals.WeeklyAmount += row.WeeklyAmount
		totals.FortnightlyAmount += row.FortnightlyAmount
		totals.CustomAmount += row.CustomAmount
		totals.WeeklyProp += row.Weekly
		totals.FortnightlyProp += row.Fortnightly
		totals.MonthlyProp += row.Monthly
		totals.CustomProp += row.Custom
	}

	return rows, totals
}
