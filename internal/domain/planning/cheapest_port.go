package planning

import (
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
	"github.com/oceanline/lubeplan-go/pkg/utils"
)

// piggybackChargeFactor gates the cross-grade piggyback pass: buying early is
// worth it only when the extra oil cost stays below 80% of the delivery
// charge the grade would otherwise pay at its next solo delivery port.
const piggybackChargeFactor = 0.8

// CheapestPortStrategy plans each grade independently, backward-looking:
// locate the next minimum-ROB breach, then buy at the lowest-priced port in
// the window between the last purchase and the breach (extending forward when
// the window holds no priced port). A final cross-grade pass lets grades
// piggyback onto ports where another grade already takes delivery.
type CheapestPortStrategy struct{}

// NewCheapestPortStrategy creates the backward-looking least-price allocator.
func NewCheapestPortStrategy() *CheapestPortStrategy {
	return &CheapestPortStrategy{}
}

func (s *CheapestPortStrategy) Name() string  { return "cheapest-port" }
func (s *CheapestPortStrategy) Label() string { return "Cheapest Port" }

// Plan allocates per grade, consolidates piggyback opportunities, and builds
// the full plan.
func (s *CheapestPortStrategy) Plan(in *Input) *Output {
	allocs := s.Allocate(in)
	return BuildOutput(in, allocs)
}

// Allocate produces the sparse allocation without materializing the plan.
func (s *CheapestPortStrategy) Allocate(in *Input) AllocationSet {
	allocs := NewAllocationSet()
	for _, g := range shared.AllGrades() {
		s.allocateGrade(in, g, allocs[g])
	}
	s.piggyback(in, allocs)
	return allocs
}

// allocateGrade repeatedly fixes the earliest remaining breach for one grade
// until the voyage is safe or no further purchase can help.
func (s *CheapestPortStrategy) allocateGrade(in *Input, g shared.Grade, alloc Allocation) {
	lastBuy := -1

	// Each iteration either fixes a breach or stops; the cap guards against
	// oscillation when a breach is unfixable.
	for iter := 0; iter < len(in.Voyage)*2; iter++ {
		breach := firstBreach(in, g, alloc)
		if breach < 0 {
			return
		}

		port := s.cheapestPricedPort(in, g, lastBuy+1, breach)
		if port < 0 {
			// No priced port in the window: extend forward past the breach.
			port = in.Voyage.NextPricedIndex(breach+1, g)
		}
		if port < 0 {
			return
		}

		proj := projectGrade(in, g, alloc)
		robAtPort := proj.arrival[port]
		qty := utils.MinF(
			in.targetFill(g, in.Reorder.TargetFillPct)-robAtPort,
			in.usableCapacity(g)-robAtPort,
		)
		if qty <= 0 {
			return
		}
		alloc.Add(port, qty)
		lastBuy = port
	}
}

// cheapestPricedPort returns the lowest-priced port for grade g in [from, to]
// (first match wins on ties), or -1 when none quotes the grade.
func (s *CheapestPortStrategy) cheapestPricedPort(in *Input, g shared.Grade, from, to int) int {
	best := -1
	var bestPrice float64
	if from < 0 {
		from = 0
	}
	for k := from; k <= to && k < len(in.Voyage); k++ {
		price, ok := in.Voyage[k].PriceFor(g)
		if !ok {
			continue
		}
		if best < 0 || price < bestPrice {
			best = k
			bestPrice = price
		}
	}
	return best
}

// piggyback lets a grade join a port where another grade already takes
// delivery, when buying early costs less than most of the delivery charge
// that the grade's next solo delivery would incur. The future purchase is
// reduced or removed by the piggybacked amount; liters are conserved.
func (s *CheapestPortStrategy) piggyback(in *Input, allocs AllocationSet) {
	for _, port := range allocs.DeliveryPorts() {
		for _, g := range shared.AllGrades() {
			if allocs[g][port] > 0 {
				continue
			}
			priceHere, ok := in.Voyage[port].PriceFor(g)
			if !ok {
				continue
			}

			solo := s.nextSoloDelivery(allocs, g, port)
			if solo < 0 {
				continue
			}
			soloQty := allocs[g][solo]
			soloPrice, ok := in.Voyage[solo].PriceFor(g)
			if !ok {
				continue
			}

			extraOilCost := (priceHere - soloPrice) * soloQty
			soloCharge := EstimateDeliveryCost(in.Voyage[solo].DeliveryCharge, soloQty, in.Reorder.DefaultDeliveryCharge).Total
			if extraOilCost >= piggybackChargeFactor*soloCharge {
				continue
			}

			// Clone, verify, commit: move as much of the solo purchase as the
			// earlier port's tank headroom allows.
			trial := allocs[g].Clone()
			proj := projectGrade(in, g, trial)
			moveable := utils.MinF(soloQty, in.usableCapacity(g)-proj.arrival[port])
			if moveable <= 0 {
				continue
			}
			trial.Add(port, moveable)
			trial.Set(solo, soloQty-moveable)
			if !fitsCapacity(in, g, trial) || breachCount(in, g, trial) > breachCount(in, g, allocs[g]) {
				continue
			}
			allocs[g] = trial
		}
	}
}

// nextSoloDelivery returns the next port after from where grade g purchases
// alone (the delivery charge there is attributable solely to g), or -1.
func (s *CheapestPortStrategy) nextSoloDelivery(allocs AllocationSet, g shared.Grade, from int) int {
	for _, port := range allocs[g].Ports() {
		if port <= from {
			continue
		}
		grades := allocs.GradesAt(port)
		if len(grades) == 1 && grades[0] == g {
			return port
		}
	}
	return -1
}
