package planning

import (
	"fmt"

	"github.com/oceanline/lubeplan-go/internal/domain/shared"
	"github.com/oceanline/lubeplan-go/pkg/utils"
)

// SimulationParams are the four knobs the grid search varies per combination.
type SimulationParams struct {
	// Fill target as a fraction of tank capacity
	TargetFillPct float64

	// Urgency threshold multiplier over minimum ROB
	ROBTriggerMultiplier float64

	// Percent below route average that triggers an opportunity buy
	OpportunityDiscountPct float64

	// Look-ahead horizon, in ports, when scanning for the next priced port
	// during the urgency check. Zero or negative means no cap.
	WindowSize int
}

// ParamsFromConfig derives simulation parameters from the request policy.
func ParamsFromConfig(cfg ReorderConfig) SimulationParams {
	return SimulationParams{
		TargetFillPct:          cfg.TargetFillPct,
		ROBTriggerMultiplier:   cfg.ROBTriggerMultiplier,
		OpportunityDiscountPct: cfg.OpportunityDiscountPct,
		WindowSize:             cfg.WindowSize,
	}
}

// Label is the human-readable identity of one parameter combination.
func (p SimulationParams) Label() string {
	return fmt.Sprintf("fill=%.0f%% trigger=%.2f discount=%.0f%% window=%d",
		p.TargetFillPct*100, p.ROBTriggerMultiplier, p.OpportunityDiscountPct, p.WindowSize)
}

// Simulator is the forward ROB simulation engine: it walks the rotation port
// by port and, for each grade, decides an action by a fixed priority ladder:
//
//  1. no price at this port: nothing to buy (ALERT/SKIP inferred at build)
//  2. voyage-safety guard: if the grade survives the whole remaining
//     schedule with zero purchases, urgency is suppressed
//  3. urgency: projected ROB drops below minimum x trigger before the next
//     priced port inside the look-ahead window
//  4. opportunity: price sufficiently below the route average
//  5. otherwise skip
//
// The engine is deterministic and owns its ROB state exclusively; it never
// shares state with a concurrently running simulation.
type Simulator struct {
	in     *Input
	params SimulationParams
}

// NewSimulator creates a simulation engine over one input snapshot.
func NewSimulator(in *Input, params SimulationParams) *Simulator {
	return &Simulator{in: in, params: params}
}

// SimulationResult carries both the sparse allocation the engine decided on
// and the fully built plan.
type SimulationResult struct {
	Allocations AllocationSet
	Output      *Output
}

// Run executes the forward simulation and materializes the plan.
func (s *Simulator) Run() *SimulationResult {
	in := s.in
	allocs := NewAllocationSet()

	rob := make(map[shared.Grade]float64, 3)
	for _, g := range shared.AllGrades() {
		rob[g] = in.CurrentROB[g]
	}

	for i := range in.Voyage {
		for _, g := range shared.AllGrades() {
			qty := s.decideQuantity(i, g, rob[g])
			if qty > 0 {
				allocs[g].Set(i, qty)
			}
			rob[g] = rob[g] + qty - in.consumption(i, g)
		}
	}

	return &SimulationResult{
		Allocations: allocs,
		Output:      BuildOutput(in, allocs),
	}
}

// decideQuantity runs the priority ladder for one port/grade pair and returns
// the liters to purchase (0 for skip/alert).
func (s *Simulator) decideQuantity(i int, g shared.Grade, robNow float64) float64 {
	in := s.in
	stop := &in.Voyage[i]

	price, hasPrice := stop.PriceFor(g)
	if !hasPrice {
		return 0
	}

	targetFill := in.targetFill(g, s.params.TargetFillPct)
	// Negative when the tank already sits above its usable fill line, which
	// happens whenever MaxFillFraction undercuts the fill target. A purchase
	// can only add oil, so every branch clamps at zero.
	headroom := in.usableCapacity(g) - robNow

	// Urgency only applies when the rest of the schedule is not already
	// survivable without buying.
	if !s.voyageSafe(i, g, robNow) && s.urgencyTriggered(i, g, robNow) {
		qty := targetFill - robNow
		if qty <= 0 {
			return 0
		}
		qty = roundToMinOrder(in, g, qty, robNow)
		return utils.MaxF(0, utils.MinF(qty, headroom))
	}

	// Opportunity buy: price sufficiently below the route average. A buy that
	// cannot meet the grade's minimum order is suppressed entirely.
	if avg, ok := in.Voyage.RouteAveragePrice(g); ok {
		discounted := avg * (1 - s.params.OpportunityDiscountPct/100.0)
		if price <= discounted {
			qty := targetFill - robNow
			if qty <= 0 {
				return 0
			}
			minOrder := in.Reorder.MinOrderFor(g)
			if minOrder > 0 && qty < minOrder {
				if robNow+minOrder > in.usableCapacity(g) {
					return 0
				}
				qty = minOrder
			}
			return utils.MaxF(0, utils.MinF(qty, headroom))
		}
	}

	return 0
}

// voyageSafe reports whether, with zero further purchases, the grade's ROB
// never drops below its minimum for the remainder of the entire known
// schedule.
func (s *Simulator) voyageSafe(i int, g shared.Grade, robNow float64) bool {
	in := s.in
	min := in.minROB(g)
	rob := robNow
	for k := i; k < len(in.Voyage); k++ {
		if rob < min {
			return false
		}
		rob -= in.consumption(k, g)
	}
	return rob >= min
}

// urgencyTriggered reports whether the projected ROB drops below
// minimum x trigger before the next priced port (bounded by the look-ahead
// window, or voyage end when no priced port exists inside it).
func (s *Simulator) urgencyTriggered(i int, g shared.Grade, robNow float64) bool {
	in := s.in
	threshold := in.minROB(g) * s.params.ROBTriggerMultiplier

	horizon := len(in.Voyage)
	if s.params.WindowSize > 0 && i+s.params.WindowSize < horizon {
		horizon = i + s.params.WindowSize
	}
	nextPriced := -1
	for k := i + 1; k < horizon; k++ {
		if _, ok := in.Voyage[k].PriceFor(g); ok {
			nextPriced = k
			break
		}
	}
	last := horizon - 1
	if nextPriced >= 0 {
		last = nextPriced
	}

	rob := robNow
	for k := i; k <= last; k++ {
		if rob < threshold {
			return true
		}
		rob -= in.consumption(k, g)
	}
	return false
}

// Baseline computes the reactive comparator plan: a superintendent who buys
// only when ROB would otherwise drop below the raw minimum before the next
// stop, filling to target at whatever port is available. No trigger
// multiplier, no opportunism. Every strategy is measured against this plan.
func Baseline(in *Input) *Output {
	allocs := NewAllocationSet()

	rob := make(map[shared.Grade]float64, 3)
	for _, g := range shared.AllGrades() {
		rob[g] = in.CurrentROB[g]
	}

	for i := range in.Voyage {
		for _, g := range shared.AllGrades() {
			cons := in.consumption(i, g)
			var qty float64
			if _, ok := in.Voyage[i].PriceFor(g); ok && rob[g]-cons < in.minROB(g) {
				qty = in.targetFill(g, in.Reorder.TargetFillPct) - rob[g]
				if qty > 0 {
					qty = roundToMinOrder(in, g, qty, rob[g])
					qty = utils.MinF(qty, in.usableCapacity(g)-rob[g])
				}
				if qty < 0 {
					qty = 0
				}
				if qty > 0 {
					allocs[g].Set(i, qty)
				}
			}
			rob[g] = rob[g] + qty - cons
		}
	}

	return BuildOutput(in, allocs)
}
