package planning

import (
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
	"github.com/oceanline/lubeplan-go/pkg/utils"
)

// consolidatedPiggybackTolerance lets a grade join an already selected port
// when its price there is within 5% of the route average.
const consolidatedPiggybackTolerance = 1.05

// ConsolidatedStrategy ranks every priced port by expected purchase value
// minus delivery charge, buys the minimum necessary for safety at the best
// ports, and then lets the other grades piggyback onto the selected delivery
// events. Ends with the consolidation post-processor.
type ConsolidatedStrategy struct{}

// NewConsolidatedStrategy creates the score-ranked greedy planner.
func NewConsolidatedStrategy() *ConsolidatedStrategy {
	return &ConsolidatedStrategy{}
}

func (s *ConsolidatedStrategy) Name() string  { return "consolidated" }
func (s *ConsolidatedStrategy) Label() string { return "Consolidated Deliveries" }

func (s *ConsolidatedStrategy) Plan(in *Input) *Output {
	allocs := s.Allocate(in)
	allocs = Consolidate(in, allocs)
	return BuildOutput(in, allocs)
}

// Allocate runs the two passes: safety buys at the highest-scored ports, then
// cross-grade piggybacking at the selected ports.
func (s *ConsolidatedStrategy) Allocate(in *Input) AllocationSet {
	scores := s.scorePorts(in)

	allocs := NewAllocationSet()
	for _, g := range shared.AllGrades() {
		s.allocateGrade(in, g, allocs[g], scores)
	}
	s.piggyback(in, allocs)
	return allocs
}

// scorePorts values every port: summed expected savings against the route
// average across quoted grades, minus the estimated delivery charge. The
// estimated quantity per grade is half of target-fill capacity.
func (s *ConsolidatedStrategy) scorePorts(in *Input) []float64 {
	scores := make([]float64, len(in.Voyage))
	for i := range in.Voyage {
		var value, estLiters float64
		for _, g := range shared.AllGrades() {
			price, ok := in.Voyage[i].PriceFor(g)
			if !ok {
				continue
			}
			avg, ok := in.Voyage.RouteAveragePrice(g)
			if !ok {
				continue
			}
			estQty := in.targetFill(g, in.Reorder.TargetFillPct) / 2
			value += (avg - price) * estQty
			estLiters += estQty
		}
		if estLiters > 0 {
			charge := EstimateDeliveryCost(in.Voyage[i].DeliveryCharge, estLiters, in.Reorder.DefaultDeliveryCharge)
			value -= charge.Total
		}
		scores[i] = value
	}
	return scores
}

// allocateGrade walks forward and, at every projected breach, buys up to
// target fill at the highest-scored priced port inside the window since the
// last purchase (first priced port when none scored positive).
func (s *ConsolidatedStrategy) allocateGrade(in *Input, g shared.Grade, alloc Allocation, scores []float64) {
	lastBuy := -1
	scanFrom := 0

	for iter := 0; iter < len(in.Voyage)*2; iter++ {
		breach := s.firstBreachFrom(in, g, alloc, scanFrom)
		if breach < 0 {
			return
		}

		port := s.bestScoredPort(in, g, scores, lastBuy+1, breach)
		if port < 0 {
			// Window has no priced port; this breach surfaces as an alert.
			scanFrom = breach + 1
			continue
		}

		proj := projectGrade(in, g, alloc)
		robAtPort := proj.arrival[port]
		qty := utils.MinF(
			in.targetFill(g, in.Reorder.TargetFillPct)-robAtPort,
			in.usableCapacity(g)-robAtPort,
		)
		if qty <= 0 {
			scanFrom = breach + 1
			continue
		}
		alloc.Add(port, qty)
		lastBuy = port
	}
}

func (s *ConsolidatedStrategy) firstBreachFrom(in *Input, g shared.Grade, alloc Allocation, from int) int {
	proj := projectGrade(in, g, alloc)
	min := in.minROB(g)
	for i := from; i < len(proj.arrival); i++ {
		if proj.arrival[i] < min {
			return i
		}
	}
	return -1
}

// bestScoredPort picks the highest-scored priced port in [from, to] (first
// match wins on ties), falling back to the first priced port when no score
// is positive. Returns -1 when the window holds no priced port.
func (s *ConsolidatedStrategy) bestScoredPort(in *Input, g shared.Grade, scores []float64, from, to int) int {
	if from < 0 {
		from = 0
	}
	best := -1
	firstPriced := -1
	var bestScore float64
	for k := from; k <= to && k < len(in.Voyage); k++ {
		if _, ok := in.Voyage[k].PriceFor(g); !ok {
			continue
		}
		if firstPriced < 0 {
			firstPriced = k
		}
		if scores[k] > 0 && (best < 0 || scores[k] > bestScore) {
			best = k
			bestScore = scores[k]
		}
	}
	if best >= 0 {
		return best
	}
	return firstPriced
}

// piggyback tops up other grades at every port already selected for at least
// one grade, when the price there is within tolerance of the route average
// and the quantity fits remaining tank room.
func (s *ConsolidatedStrategy) piggyback(in *Input, allocs AllocationSet) {
	for _, port := range allocs.DeliveryPorts() {
		for _, g := range shared.AllGrades() {
			if allocs[g][port] > 0 {
				continue
			}
			price, ok := in.Voyage[port].PriceFor(g)
			if !ok {
				continue
			}
			avg, ok := in.Voyage.RouteAveragePrice(g)
			if !ok || price > avg*consolidatedPiggybackTolerance {
				continue
			}

			trial := allocs[g].Clone()
			proj := projectGrade(in, g, trial)
			robAtPort := proj.arrival[port]
			qty := utils.MinF(
				in.targetFill(g, in.Reorder.TargetFillPct)-robAtPort,
				in.usableCapacity(g)-robAtPort,
			)
			if qty <= 0 {
				continue
			}
			trial.Add(port, qty)
			if !fitsCapacity(in, g, trial) {
				continue
			}
			allocs[g] = trial
		}
	}
}
