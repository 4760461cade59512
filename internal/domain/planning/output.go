package planning

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

// Action labels the decision taken for one port/grade pair.
type Action string

const (
	// ActionOrder is a planned purchase with normal lead time
	ActionOrder Action = "ORDER"

	// ActionUrgent is a purchase placed inside the port's lead-time window
	// or forced by imminent minimum-ROB breach
	ActionUrgent Action = "URGENT"

	// ActionSkip means no purchase and no risk at this stop
	ActionSkip Action = "SKIP"

	// ActionAlert is the planner's only soft-failure signal: ROB will breach
	// the minimum and no pricing was available in time. Surfaced to the
	// operator, never recovered internally.
	ActionAlert Action = "ALERT"
)

// GradePlan is the materialized decision for one grade at one port stop.
type GradePlan struct {
	Action   Action
	Quantity float64

	// Best available price per liter at this stop, 0 when no offer
	Price   float64
	OilCost float64

	ROBOnArrival   float64
	ROBOnDeparture float64
	ROBAtNextPort  float64
}

// PortPlan is one row of the final plan: all three grades plus the single
// delivery event (if any) at this stop.
type PortPlan struct {
	PortIndex int
	PortName  string
	PortCode  string
	Arrival   string

	Grades map[shared.Grade]*GradePlan

	// Delivery cost breakdown, zero when nothing is purchased here
	Delivery DeliveryCost
}

// Purchases reports whether any grade buys at this stop.
func (p *PortPlan) Purchases() bool {
	for _, gp := range p.Grades {
		if gp.Quantity > 0 {
			return true
		}
	}
	return false
}

// Savings compares a plan against the reactive baseline.
type Savings struct {
	Amount  float64
	Percent float64
}

// Output is the full materialized plan for one strategy run.
type Output struct {
	Ports []PortPlan

	TotalOilCost         float64
	TotalDeliveryCharges float64

	// All-in cost: oil plus delivery
	TotalCost float64

	// Number of delivery events (ports with at least one purchase)
	PurchaseEvents int

	// The reactive comparator plan; nil on the baseline itself
	Baseline *Output
	Savings  *Savings
}

// AttachBaseline links the shared baseline to a plan and computes the
// savings breakdown.
func (o *Output) AttachBaseline(baseline *Output) {
	o.Baseline = baseline
	s := &Savings{Amount: baseline.TotalCost - o.TotalCost}
	if baseline.TotalCost > 0 {
		s.Percent = s.Amount / baseline.TotalCost * 100.0
	}
	o.Savings = s
}

// SafetyVerdict scores a plan's safety: Safe is true iff no projected
// minimum-ROB breach exists anywhere in the plan.
type SafetyVerdict struct {
	Safe        bool
	ROBBreaches int
}

// RankedPlan wraps an Output with strategy identity and its standing against
// the shared baseline.
type RankedPlan struct {
	Rank     int
	Strategy string
	Label    string

	Output *Output

	AllInCost    float64
	BaselineCost float64
	Savings      float64
	SavingsPct   float64

	Safety SafetyVerdict
}

// Fingerprint collapses economically identical plans for deduplication:
// two plans are duplicates iff their all-in cost (to the cent), purchase
// event count, delivery charges (to the cent) and safety flag all match.
func (p *RankedPlan) Fingerprint() string {
	cost := decimal.NewFromFloat(p.AllInCost).Round(2)
	charges := decimal.NewFromFloat(p.Output.TotalDeliveryCharges).Round(2)
	return fmt.Sprintf("%s|%d|%s|%t", cost.String(), p.Output.PurchaseEvents, charges.String(), p.Safety.Safe)
}
