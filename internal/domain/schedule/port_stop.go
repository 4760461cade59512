package schedule

import (
	"time"

	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

// arrivalLayouts are the accepted timestamp formats for port arrival and
// departure fields, tried in order.
var arrivalLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DeliveryChargeConfig describes how a specific port prices physical delivery
// of lube oil to the vessel. Absent (nil on PortStop) means the port falls
// back to the planner's flat per-event charge.
type DeliveryChargeConfig struct {
	// Port price differential per 100 liters delivered
	DifferentialPer100L float64

	// Order lead time in days; ordering inside this window attracts the
	// urgent surcharge
	LeadTimeDays float64

	// Orders below this many liters attract the small-order surcharge
	SmallOrderThresholdLiters float64
	SmallOrderSurcharge       float64

	UrgentSurcharge float64
}

// PortStop is one element of the vessel's upcoming rotation.
//
// Prices are the best available offer per grade at this port; a grade absent
// from the map means no supplier quotes that grade here (a branch, never an
// error). Timestamps are kept as raw strings because upstream schedules
// arrive in mixed formats; an unparseable arrival simply disables the urgency
// surcharge for this stop.
type PortStop struct {
	Name    string
	Code    string
	Country string

	// Raw arrival/departure timestamps as supplied by the schedule feed
	Arrival   string
	Departure string

	// Sea days from this stop to the NEXT stop in the rotation
	SeaDaysToNext float64

	// Best available price per liter, by grade. Missing key = no offer.
	Prices map[shared.Grade]float64

	// Port-specific delivery pricing, or nil for the flat fallback charge
	DeliveryCharge *DeliveryChargeConfig
}

// PriceFor returns the best available price for a grade at this port and
// whether any offer exists. Non-positive quotes are treated as no offer.
func (p *PortStop) PriceFor(g shared.Grade) (float64, bool) {
	price, ok := p.Prices[g]
	if !ok || price <= 0 {
		return 0, false
	}
	return price, true
}

// HasAnyPrice reports whether at least one grade has an offer at this port.
func (p *PortStop) HasAnyPrice() bool {
	for _, g := range shared.AllGrades() {
		if _, ok := p.PriceFor(g); ok {
			return true
		}
	}
	return false
}

// ParseArrival parses the raw arrival timestamp. Returns an error when the
// field is empty or in none of the accepted layouts.
func (p *PortStop) ParseArrival() (time.Time, error) {
	return parseTimestamp(p.Arrival)
}

func parseTimestamp(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range arrivalLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = &time.ParseError{Layout: time.RFC3339, Value: raw}
	}
	return time.Time{}, lastErr
}
