package planning

import (
	"math"

	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

const (
	// maxConsolidationPasses bounds the fixed-point iteration. The merge
	// heuristics are greedy and local; the cap guarantees termination even
	// if they cycle.
	maxConsolidationPasses = 10

	// worthinessFloor is the minimum oil-value / delivery-charge ratio a
	// delivery event must reach to survive the worthiness pass
	worthinessFloor = 2.0

	// proximityMaxSeaDays is how close two consecutive delivery ports must
	// be for the proximity pass to consider merging them
	proximityMaxSeaDays = 10.0

	// proximityChargeFactor requires the extra oil cost of buying at the
	// destination's price to stay below 90% of the delivery charge saved
	proximityChargeFactor = 0.9
)

// Consolidate removes economically unworthy or geographically redundant
// delivery events from the allocation tables, in place.
//
// Each pass attempts one of two moves and restarts on success:
//   - worthiness: merge away the port with the worst oil-value to
//     delivery-charge ratio when that ratio is below the floor
//   - proximity: merge consecutive delivery ports that are within a few sea
//     days of each other, lower-value into higher-value
//
// Every merge follows clone/verify/commit and conserves total liters per
// grade: either the full amount moves or the merge aborts.
func Consolidate(in *Input, allocs AllocationSet) AllocationSet {
	for pass := 0; pass < maxConsolidationPasses; pass++ {
		if mergeUnworthyDelivery(in, allocs) {
			continue
		}
		if mergeProximateDeliveries(in, allocs) {
			continue
		}
		break
	}
	return allocs
}

// oilValueAt sums quantity x price across grades purchasing at the port.
func oilValueAt(in *Input, allocs AllocationSet, port int) float64 {
	var value float64
	for _, g := range shared.AllGrades() {
		qty := allocs[g][port]
		if qty <= minAllocationLiters {
			continue
		}
		if price, ok := in.Voyage[port].PriceFor(g); ok {
			value += qty * price
		}
	}
	return value
}

// deliveryChargeAt prices the delivery event at the port under the current
// allocation, lead time included.
func deliveryChargeAt(in *Input, allocs AllocationSet, port int) float64 {
	total := allocs.TotalAt(port)
	days := AvailableBusinessDays(in.Now, &in.Voyage[port])
	return ComputeDeliveryCost(in.Voyage[port].DeliveryCharge, total, days, in.Reorder.DefaultDeliveryCharge).Total
}

// mergeUnworthyDelivery finds the delivery event with the worst worthiness
// ratio and, when it falls below the floor, tries to merge its entire
// purchase into the nearest other delivery port.
func mergeUnworthyDelivery(in *Input, allocs AllocationSet) bool {
	ports := allocs.DeliveryPorts()
	if len(ports) < 2 {
		return false
	}

	worst := -1
	worstRatio := math.Inf(1)
	for _, port := range ports {
		charge := deliveryChargeAt(in, allocs, port)
		if charge <= 0 {
			continue
		}
		ratio := oilValueAt(in, allocs, port) / charge
		if ratio < worstRatio {
			worst = port
			worstRatio = ratio
		}
	}
	if worst < 0 || worstRatio >= worthinessFloor {
		return false
	}

	dst := nearestDeliveryPort(in, ports, worst)
	if dst < 0 {
		return false
	}
	return attemptMerge(in, allocs, worst, dst)
}

// nearestDeliveryPort picks the other delivery port with the fewest sea days
// from the given one (first match wins on ties).
func nearestDeliveryPort(in *Input, ports []int, from int) int {
	best := -1
	bestDays := math.Inf(1)
	for _, port := range ports {
		if port == from {
			continue
		}
		lo, hi := port, from
		if lo > hi {
			lo, hi = hi, lo
		}
		days := in.Voyage.SeaDaysBetween(lo, hi)
		if days < bestDays {
			best = port
			bestDays = days
		}
	}
	return best
}

// mergeProximateDeliveries scans consecutive delivery-port pairs within the
// proximity window and merges the lower-value port into the higher-value one
// when the price difference costs less than the delivery charge saved.
func mergeProximateDeliveries(in *Input, allocs AllocationSet) bool {
	ports := allocs.DeliveryPorts()
	for idx := 0; idx+1 < len(ports); idx++ {
		a, b := ports[idx], ports[idx+1]
		if in.Voyage.SeaDaysBetween(a, b) > proximityMaxSeaDays {
			continue
		}

		src, dst := a, b
		if oilValueAt(in, allocs, a) > oilValueAt(in, allocs, b) {
			src, dst = b, a
		}

		extraOilCost, priced := repricingCost(in, allocs, src, dst)
		if !priced {
			continue
		}
		chargeSaved := deliveryChargeAt(in, allocs, src)
		if extraOilCost >= proximityChargeFactor*chargeSaved {
			continue
		}
		if attemptMerge(in, allocs, src, dst) {
			return true
		}
	}
	return false
}

// repricingCost is what moving every purchase from src costs (or saves, when
// negative) by buying at the destination's prices instead. The second return
// is false when the destination lacks a price for any grade being moved.
func repricingCost(in *Input, allocs AllocationSet, src, dst int) (float64, bool) {
	var extra float64
	for _, g := range shared.AllGrades() {
		qty := allocs[g][src]
		if qty <= minAllocationLiters {
			continue
		}
		srcPrice, _ := in.Voyage[src].PriceFor(g)
		dstPrice, ok := in.Voyage[dst].PriceFor(g)
		if !ok {
			return 0, false
		}
		extra += qty * (dstPrice - srcPrice)
	}
	return extra, true
}

// attemptMerge moves the source port's entire purchase into the destination.
//
// A full merge (every grade's full quantity) is verified for tank capacity
// and ROB safety across the whole voyage. When that verification fails, a
// partial merge shrinks quantities to the destination's tank headroom, but
// succeeds only if every grade's purchase is fully absorbed: any leftover
// aborts, since a partial move would still require a delivery at the source.
// The merge also aborts when the destination lacks a price for any grade
// being moved. Total liters per grade are conserved in every committed case.
func attemptMerge(in *Input, allocs AllocationSet, src, dst int) bool {
	if src == dst {
		return false
	}

	var moved []shared.Grade
	for _, g := range shared.AllGrades() {
		if allocs[g][src] > minAllocationLiters {
			if _, ok := in.Voyage[dst].PriceFor(g); !ok {
				return false
			}
			moved = append(moved, g)
		}
	}
	if len(moved) == 0 {
		return false
	}

	// Full merge: clone, move everything, verify, commit.
	trial := allocs.Clone()
	for _, g := range moved {
		qty := trial[g][src]
		trial[g].Set(src, 0)
		trial[g].Add(dst, qty)
	}
	safe := true
	for _, g := range moved {
		if !fitsCapacity(in, g, trial[g]) || breachCount(in, g, trial[g]) > breachCount(in, g, allocs[g]) {
			safe = false
			break
		}
	}
	if safe {
		commitMerge(allocs, trial, moved)
		return true
	}

	// Partial merge: destination headroom must absorb every grade in full.
	trial = allocs.Clone()
	for _, g := range moved {
		qty := trial[g][src]
		trial[g].Set(src, 0)
		proj := projectGrade(in, g, trial[g])
		headroom := in.usableCapacity(g) - proj.arrival[dst]
		if qty > headroom+minAllocationLiters {
			return false
		}
		trial[g].Add(dst, qty)
		if !fitsCapacity(in, g, trial[g]) {
			return false
		}
	}
	commitMerge(allocs, trial, moved)
	return true
}

func commitMerge(allocs, trial AllocationSet, moved []shared.Grade) {
	for _, g := range moved {
		allocs[g] = trial[g]
	}
}
