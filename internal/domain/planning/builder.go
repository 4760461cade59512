package planning

import (
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

// urgentInferenceMultiplier marks a purchase as URGENT when the pre-purchase
// ROB was already inside 1.2x the grade minimum.
const urgentInferenceMultiplier = 1.2

// BuildOutput materializes a sparse allocation into the full plan structure:
// it re-simulates ROB port-by-port, applies minimum-order rounding, infers
// action labels post hoc, and prices every delivery event.
//
// Rounding rule (shared with every strategy): a non-zero requested quantity
// below the grade's minimum order is rounded up to the minimum only if tank
// room allows; otherwise it is left as requested. Cylinder oil has no
// configured minimum and is never rounded.
func BuildOutput(in *Input, allocs AllocationSet) *Output {
	out := &Output{Ports: make([]PortPlan, len(in.Voyage))}

	rob := make(map[shared.Grade]float64, 3)
	for _, g := range shared.AllGrades() {
		rob[g] = in.CurrentROB[g]
	}

	for i := range in.Voyage {
		stop := &in.Voyage[i]
		plan := PortPlan{
			PortIndex: i,
			PortName:  stop.Name,
			PortCode:  stop.Code,
			Arrival:   stop.Arrival,
			Grades:    make(map[shared.Grade]*GradePlan, 3),
		}

		var totalLiters float64
		for _, g := range shared.AllGrades() {
			gp := buildGradePlan(in, allocs, i, g, rob[g])
			plan.Grades[g] = gp
			totalLiters += gp.Quantity
			rob[g] = gp.ROBAtNextPort

			out.TotalOilCost += gp.OilCost
		}

		if totalLiters > 0 {
			days := AvailableBusinessDays(in.Now, stop)
			plan.Delivery = ComputeDeliveryCost(stop.DeliveryCharge, totalLiters, days, in.Reorder.DefaultDeliveryCharge)
			out.TotalDeliveryCharges += plan.Delivery.Total
			out.PurchaseEvents++
		}

		out.Ports[i] = plan
	}

	out.TotalCost = out.TotalOilCost + out.TotalDeliveryCharges
	return out
}

// buildGradePlan computes the plan row for one port/grade pair, advancing the
// grade's ROB through purchase and the sea leg to the next stop.
func buildGradePlan(in *Input, allocs AllocationSet, i int, g shared.Grade, robOnArrival float64) *GradePlan {
	stop := &in.Voyage[i]
	price, hasPrice := stop.PriceFor(g)
	minROB := in.minROB(g)

	qty := allocs[g][i]
	qty = roundToMinOrder(in, g, qty, robOnArrival)

	gp := &GradePlan{
		Quantity:       qty,
		Price:          price,
		OilCost:        qty * price,
		ROBOnArrival:   robOnArrival,
		ROBOnDeparture: robOnArrival + qty,
	}
	gp.ROBAtNextPort = gp.ROBOnDeparture - in.consumption(i, g)

	switch {
	case qty > 0 && robOnArrival < minROB*urgentInferenceMultiplier:
		gp.Action = ActionUrgent
	case qty > 0:
		gp.Action = ActionOrder
	case !hasPrice && breachBeforeNextSupply(in, i, g, gp.ROBOnDeparture):
		gp.Action = ActionAlert
	default:
		gp.Action = ActionSkip
	}
	return gp
}

// breachBeforeNextSupply projects the grade's ROB forward from this port with
// no further purchases and reports whether it falls below minimum before the
// vessel reaches the next stop that carries a price for the grade (or before
// voyage end when no stop ahead does). Arriving below minimum at the priced
// stop itself counts: the breach happens before any oil can come aboard.
func breachBeforeNextSupply(in *Input, i int, g shared.Grade, robOnDeparture float64) bool {
	min := in.minROB(g)
	rob := robOnDeparture
	for k := i; k < len(in.Voyage); k++ {
		rob -= in.consumption(k, g)
		if rob < min {
			return true
		}
		if k+1 < len(in.Voyage) {
			if _, ok := in.Voyage[k+1].PriceFor(g); ok {
				return false
			}
		}
	}
	return false
}

// roundToMinOrder applies the minimum-order rounding rule to a requested
// quantity: round up only when tank headroom accommodates the minimum.
func roundToMinOrder(in *Input, g shared.Grade, qty, robOnArrival float64) float64 {
	minOrder := in.Reorder.MinOrderFor(g)
	if qty <= 0 || minOrder <= 0 || qty >= minOrder {
		return qty
	}
	if robOnArrival+minOrder <= in.usableCapacity(g) {
		return minOrder
	}
	return qty
}

// negativeROBBreachWeight makes a negative projected ROB count as five
// breach-equivalents: running dry is categorically worse than dipping below
// the safety floor.
const negativeROBBreachWeight = 5

// ValidateOutput scores a plan's safety. One breach is counted per port and
// grade where the projected ROB at the next port falls below the grade
// minimum (the final port's onward leg is excluded); a negative projection
// counts five. Safe is true iff the breach count is zero.
func ValidateOutput(out *Output, in *Input) SafetyVerdict {
	breaches := 0
	for i := range out.Ports {
		if i == len(out.Ports)-1 {
			break
		}
		for _, g := range shared.AllGrades() {
			gp := out.Ports[i].Grades[g]
			if gp == nil {
				continue
			}
			switch {
			case gp.ROBAtNextPort < 0:
				breaches += negativeROBBreachWeight
			case gp.ROBAtNextPort < in.minROB(g):
				breaches++
			}
		}
	}
	return SafetyVerdict{Safe: breaches == 0, ROBBreaches: breaches}
}
