// Package pricing implements the costing engine: loss correction of
// purchased inputs, per-diet cost and selling price, supply package
// rollups, quote code generation and the analytical flattening used by
// the full-quotes export. Everything here is a pure computation over
// in-memory records; persistence stays in internal/store.
package pricing

// Correct computes the loss-adjusted quantity and unit cost of an input.
//
// A loss of 45% on 1kg leaves 0.55kg usable, so the money paid for the
// full kilo is spread over the usable part. Negative losses are applied
// literally: they model yield gain (rice roughly doubles when cooked)
// and push the corrected price below the purchase price.
func Correct(unitQty, unitPrice, lossPercent float64) (correctedQty, correctedPrice float64) {
	correctedQty = unitQty - unitQty*lossPercent/100
	if correctedQty != 0 {
		correctedPrice = (unitQty * unitPrice) / correctedQty
	}
	return correctedQty, correctedPrice
}
