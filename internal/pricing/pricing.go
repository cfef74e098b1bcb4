// Package pricing computes order totals from cart contents and current
// catalog prices. The result becomes the order's stored total and is never
// recomputed from live prices afterwards.
package pricing

import "math"

// Line pairs a unit price with a quantity. Prices are the catalog's current
// values at the moment of computation.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Total sums price*quantity over lines. Malformed lines (negative price or
// quantity, NaN/Inf price) are skipped rather than failing the whole
// computation.
func Total(lines []Line) float64 {
	total := 0.0
	for _, l := range lines {
		if l.Quantity < 0 || l.UnitPrice < 0 {
			continue
		}
		if math.IsNaN(l.UnitPrice) || math.IsInf(l.UnitPrice, 0) {
			continue
		}
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}
