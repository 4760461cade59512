package planning

import (
	"time"

	"github.com/oceanline/lubeplan-go/internal/domain/schedule"
)

// DeliveryCost is the per-event cost breakdown of physically getting oil
// alongside and on board at one port call. A delivery charge is incurred at
// most once per port regardless of how many grades purchase there.
type DeliveryCost struct {
	Differential        float64
	SmallOrderSurcharge float64
	UrgentSurcharge     float64
	Total               float64
}

// ComputeDeliveryCost converts a port's delivery configuration, the total
// liters purchased across all grades, and the available lead-time days into
// a cost breakdown.
//
// Rules:
//   - no purchase (totalLiters <= 0): all zero
//   - no port-specific config: flat fallback charge, no surcharges
//   - otherwise: differential scales per 100 L; the small-order surcharge
//     applies below the threshold; the urgent surcharge applies when the
//     available days fall inside the port's lead time. A negative
//     availableDays (unknown arrival) never triggers urgency.
func ComputeDeliveryCost(cfg *schedule.DeliveryChargeConfig, totalLiters, availableDays, fallbackFlat float64) DeliveryCost {
	if totalLiters <= 0 {
		return DeliveryCost{}
	}
	if cfg == nil {
		return DeliveryCost{Differential: fallbackFlat, Total: fallbackFlat}
	}

	cost := DeliveryCost{
		Differential: cfg.DifferentialPer100L / 100.0 * totalLiters,
	}
	if totalLiters > 0 && totalLiters < cfg.SmallOrderThresholdLiters {
		cost.SmallOrderSurcharge = cfg.SmallOrderSurcharge
	}
	if availableDays >= 0 && availableDays < cfg.LeadTimeDays {
		cost.UrgentSurcharge = cfg.UrgentSurcharge
	}
	cost.Total = cost.Differential + cost.SmallOrderSurcharge + cost.UrgentSurcharge
	return cost
}

// EstimateDeliveryCost is the no-urgency variant used for pre-allocation
// scoring, where the order date is not yet known. Never used for final
// costing.
func EstimateDeliveryCost(cfg *schedule.DeliveryChargeConfig, totalLiters, fallbackFlat float64) DeliveryCost {
	return ComputeDeliveryCost(cfg, totalLiters, -1, fallbackFlat)
}

// AvailableBusinessDays approximates how many working days remain between now
// and the port's arrival: calendar days scaled by 5/7. An unparseable or
// missing arrival yields -1, which never triggers the urgent surcharge.
func AvailableBusinessDays(now time.Time, stop *schedule.PortStop) float64 {
	arrival, err := stop.ParseArrival()
	if err != nil {
		return -1
	}
	calendarDays := arrival.Sub(now).Hours() / 24.0
	return calendarDays * 5.0 / 7.0
}
