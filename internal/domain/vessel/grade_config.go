package vessel

import (
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

// GradeConfig bundles everything the planner needs to know about one oil
// grade on one vessel: its tank and its average burn rate.
type GradeConfig struct {
	Grade shared.Grade
	Tank  TankConfig

	// Average daily consumption in liters/day, precomputed upstream from
	// noon-report history. The planner consumes it as-is.
	AvgDailyConsumption float64
}

// ConsumptionOver returns the projected liters consumed over the given number
// of sea days, inflated by the safety buffer percentage.
func (c GradeConfig) ConsumptionOver(seaDays, safetyBufferPct float64) float64 {
	if seaDays <= 0 {
		return 0
	}
	return seaDays * c.AvgDailyConsumption * (1 + safetyBufferPct/100)
}

// TargetFill returns the refill ceiling in liters for the given fill fraction.
func (c GradeConfig) TargetFill(targetFillPct float64) float64 {
	return c.Tank.CapacityLiters * targetFillPct
}
