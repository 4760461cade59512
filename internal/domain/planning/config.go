package planning

import (
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

// ReorderConfig carries the tunable replenishment policy for one optimization
// request. Defaults are applied by DefaultReorderConfig; the grid search
// overrides the first four knobs per combination.
type ReorderConfig struct {
	// Fill target as a fraction of tank capacity (0-1)
	TargetFillPct float64

	// Urgency threshold multiplier over minimum ROB (>= 1). A grade goes
	// urgent when its projected ROB falls below minimum × multiplier before
	// the next priced port.
	ROBTriggerMultiplier float64

	// Percent below route-average price that triggers a discretionary buy
	OpportunityDiscountPct float64

	// Look-ahead horizon in ports for urgency scanning
	WindowSize int

	// Consumption inflation factor in percent (weather/engine-load margin)
	SafetyBufferPct float64

	// Flat per-event delivery charge used when a port has no delivery
	// pricing configuration of its own
	DefaultDeliveryCharge float64

	// Minimum order quantity per grade in liters. Cylinder oil has no
	// minimum and is never subject to minimum-order rounding.
	MinOrderLiters map[shared.Grade]float64
}

// DefaultReorderConfig returns the production replenishment policy.
func DefaultReorderConfig() ReorderConfig {
	return ReorderConfig{
		TargetFillPct:          0.90,
		ROBTriggerMultiplier:   1.20,
		OpportunityDiscountPct: 10.0,
		WindowSize:             6,
		SafetyBufferPct:        5.0,
		DefaultDeliveryCharge:  2500.0,
		MinOrderLiters: map[shared.Grade]float64{
			shared.GradeMainEngine: 1000.0,
			shared.GradeAuxEngine:  1000.0,
		},
	}
}

// MinOrderFor returns the minimum order quantity for a grade, 0 when the
// grade has none configured.
func (c ReorderConfig) MinOrderFor(g shared.Grade) float64 {
	return c.MinOrderLiters[g]
}
