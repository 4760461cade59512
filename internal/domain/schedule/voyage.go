package schedule

import (
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

// Voyage is the ordered sequence of upcoming port calls the planner operates
// over. Index 0 is the next port ahead of the vessel.
type Voyage []PortStop

// RouteAveragePrice returns the mean of all non-null, positive prices for a
// grade across the full rotation, and whether any offer exists at all.
func (v Voyage) RouteAveragePrice(g shared.Grade) (float64, bool) {
	var sum float64
	var n int
	for i := range v {
		if price, ok := v[i].PriceFor(g); ok {
			sum += price
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// SeaDaysBetween returns the cumulative sea days sailed from stop i to stop j
// (i <= j). Zero when the indices coincide or are out of range.
func (v Voyage) SeaDaysBetween(i, j int) float64 {
	if i < 0 || j >= len(v) || i >= j {
		return 0
	}
	var days float64
	for k := i; k < j; k++ {
		days += v[k].SeaDaysToNext
	}
	return days
}

// NextPricedIndex returns the index of the first stop at or after from that
// quotes the given grade, or -1 if none exists before voyage end.
func (v Voyage) NextPricedIndex(from int, g shared.Grade) int {
	for i := from; i < len(v); i++ {
		if _, ok := v[i].PriceFor(g); ok {
			return i
		}
	}
	return -1
}
