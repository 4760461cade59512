package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanline/lubeplan-go/internal/domain/planning"
	"github.com/oceanline/lubeplan-go/internal/domain/schedule"
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
	"github.com/oceanline/lubeplan-go/internal/domain/vessel"
)

func TestSimulator_UrgentBuyWhenBelowMinimum(t *testing.T) {
	// AE oil already below its 5,000 L minimum with a single priced port
	// ahead: fill to target immediately.
	in := newTestInput(t)
	in.Reorder.TargetFillPct = 0.70
	in.Voyage = schedule.Voyage{{
		Name: "Fujairah", Code: "AEFJR",
		Arrival: "2026-10-01", SeaDaysToNext: 0,
		Prices: map[shared.Grade]float64{shared.GradeAuxEngine: 0.50},
	}}
	in.CurrentROB[shared.GradeAuxEngine] = 4000

	result := planning.NewSimulator(in, planning.ParamsFromConfig(in.Reorder)).Run()

	gp := result.Output.Ports[0].Grades[shared.GradeAuxEngine]
	assert.Equal(t, planning.ActionUrgent, gp.Action)
	// target fill 0.70 x 20,000 = 14,000 minus 4,000 on arrival
	assert.InDelta(t, 10000.0, gp.Quantity, 1e-9)
	requireInvariants(t, in, result.Output)
}

func TestSimulator_VoyageSafetyGuardSuppressesUrgency(t *testing.T) {
	// The price is well below route average but the voyage survives without
	// buying at all, so the buy is an opportunity ORDER, never URGENT.
	in := newTestInput(t)
	in.Reorder.TargetFillPct = 0.70
	in.Reorder.OpportunityDiscountPct = 10
	in.Voyage = schedule.Voyage{
		{
			Name: "Piraeus", Code: "GRPIR",
			Arrival: "2026-09-12", SeaDaysToNext: 5,
			Prices: map[shared.Grade]float64{shared.GradeAuxEngine: 0.70},
		},
		{
			Name: "Valencia", Code: "ESVLC",
			Arrival: "2026-09-17", SeaDaysToNext: 0,
			Prices: map[shared.Grade]float64{shared.GradeAuxEngine: 1.00},
		},
	}

	result := planning.NewSimulator(in, planning.ParamsFromConfig(in.Reorder)).Run()

	gp := result.Output.Ports[0].Grades[shared.GradeAuxEngine]
	assert.Equal(t, planning.ActionOrder, gp.Action)
	assert.InDelta(t, 7000.0, gp.Quantity, 1e-9)
}

func TestSimulator_AlertWhenNoPriceBeforeBreach(t *testing.T) {
	// No supplier anywhere ahead and the projection dips below minimum:
	// the planner's only soft-failure signal.
	in := newTestInput(t)
	in.Voyage = schedule.Voyage{
		{Name: "Suez", Code: "EGSUZ", Arrival: "2026-09-20", SeaDaysToNext: 10},
		{Name: "Gibraltar", Code: "GIGIB", Arrival: "2026-09-30", SeaDaysToNext: 0},
	}
	in.CurrentROB[shared.GradeAuxEngine] = 5500

	result := planning.NewSimulator(in, planning.ParamsFromConfig(in.Reorder)).Run()

	gp := result.Output.Ports[0].Grades[shared.GradeAuxEngine]
	assert.Equal(t, planning.ActionAlert, gp.Action)
	assert.Zero(t, gp.Quantity)
}

func TestSimulator_AlertRaisedAtFirstStopBeforePricelessGap(t *testing.T) {
	// Two priceless stops in a row with the breach on the second leg. The
	// alert must surface at the first stop, where the gap to the next
	// supplier is already knowable, not only once the breach is one leg away.
	in := newTestInput(t)
	in.Voyage = schedule.Voyage{
		{Name: "Suez", Code: "EGSUZ", Arrival: "2026-09-20", SeaDaysToNext: 10},
		{Name: "Malta", Code: "MTMLA", Arrival: "2026-09-30", SeaDaysToNext: 10},
		{
			Name: "Gibraltar", Code: "GIGIB", Arrival: "2026-10-10", SeaDaysToNext: 0,
			Prices: map[shared.Grade]float64{shared.GradeAuxEngine: 1.40},
		},
	}
	in.CurrentROB[shared.GradeAuxEngine] = 6500

	result := planning.NewSimulator(in, planning.ParamsFromConfig(in.Reorder)).Run()

	// 6,500 survives the first leg (5,500) but not the second (4,500).
	assert.Equal(t, planning.ActionAlert, result.Output.Ports[0].Grades[shared.GradeAuxEngine].Action)
	assert.Equal(t, planning.ActionAlert, result.Output.Ports[1].Grades[shared.GradeAuxEngine].Action)
	assert.Equal(t, planning.ActionUrgent, result.Output.Ports[2].Grades[shared.GradeAuxEngine].Action)
	requireInvariants(t, in, result.Output)
}

func TestSimulator_ROBAboveUsableFillLineBuysNothing(t *testing.T) {
	// The max fill fraction caps usable capacity below the current ROB. The
	// opportunity branch has no room to buy and must decide zero, not a
	// negative quantity that drags the projection down and manufactures a
	// purchase later in the rotation.
	v, err := vessel.NewVessel("9391002", "MV Sovereign", map[shared.Grade]vessel.GradeConfig{
		shared.GradeCylinder: {
			Grade:               shared.GradeCylinder,
			Tank:                vessel.TankConfig{CapacityLiters: 30000, MaxFillFraction: 1.0, MinimumROBLiters: 8000},
			AvgDailyConsumption: 250,
		},
		shared.GradeMainEngine: {
			Grade:               shared.GradeMainEngine,
			Tank:                vessel.TankConfig{CapacityLiters: 25000, MaxFillFraction: 1.0, MinimumROBLiters: 6000},
			AvgDailyConsumption: 150,
		},
		shared.GradeAuxEngine: {
			Grade:               shared.GradeAuxEngine,
			Tank:                vessel.TankConfig{CapacityLiters: 20000, MaxFillFraction: 0.8, MinimumROBLiters: 15000},
			AvgDailyConsumption: 400,
		},
	})
	require.NoError(t, err)

	in := newTestInput(t)
	in.Vessel = v
	in.Reorder.TargetFillPct = 1.0
	in.Reorder.OpportunityDiscountPct = 10
	in.Voyage = schedule.Voyage{
		{
			Name: "Piraeus", Code: "GRPIR",
			Arrival: "2026-09-12", SeaDaysToNext: 5,
			Prices: map[shared.Grade]float64{shared.GradeAuxEngine: 1.00},
		},
		{
			Name: "Valencia", Code: "ESVLC",
			Arrival: "2026-09-17", SeaDaysToNext: 0,
			Prices: map[shared.Grade]float64{shared.GradeAuxEngine: 3.00},
		},
	}
	// 19,000 on board against a 16,000 usable fill line: cheap Piraeus is an
	// opportunity hit, but there is no headroom to take it.
	in.CurrentROB[shared.GradeAuxEngine] = 19000

	result := planning.NewSimulator(in, planning.ParamsFromConfig(in.Reorder)).Run()

	assert.Empty(t, result.Allocations[shared.GradeAuxEngine].Ports())
	assert.Zero(t, result.Output.Ports[0].Grades[shared.GradeAuxEngine].Quantity)
	assert.Zero(t, result.Output.Ports[1].Grades[shared.GradeAuxEngine].Quantity)
	// The ROB track stays honest: 19,000 minus the 2,000 L leg.
	assert.InDelta(t, 17000.0, result.Output.Ports[0].Grades[shared.GradeAuxEngine].ROBAtNextPort, 1e-9)
	requireInvariants(t, in, result.Output)
}

func TestSimulator_OpportunityBelowMinimumOrderIsSuppressed(t *testing.T) {
	// A discounted price with almost no tank room: the order cannot reach
	// the minimum quantity, so it is dropped entirely.
	in := newTestInput(t)
	in.Reorder.TargetFillPct = 1.0
	in.Reorder.MinOrderLiters = map[shared.Grade]float64{shared.GradeAuxEngine: 1000}
	in.Voyage = schedule.Voyage{
		{
			Name: "Piraeus", Code: "GRPIR",
			Arrival: "2026-09-12", SeaDaysToNext: 5,
			Prices: map[shared.Grade]float64{shared.GradeAuxEngine: 0.70},
		},
		{
			Name: "Valencia", Code: "ESVLC",
			Arrival: "2026-09-17", SeaDaysToNext: 0,
			Prices: map[shared.Grade]float64{shared.GradeAuxEngine: 1.00},
		},
	}
	in.CurrentROB[shared.GradeAuxEngine] = 19500

	result := planning.NewSimulator(in, planning.ParamsFromConfig(in.Reorder)).Run()

	gp := result.Output.Ports[0].Grades[shared.GradeAuxEngine]
	assert.Equal(t, planning.ActionSkip, gp.Action)
	assert.Zero(t, gp.Quantity)
}

func TestSimulator_DeterministicAcrossRuns(t *testing.T) {
	in := newTestInput(t)
	params := planning.ParamsFromConfig(in.Reorder)

	first := planning.NewSimulator(in, params).Run()
	second := planning.NewSimulator(in, params).Run()

	require.Equal(t, first.Output.TotalCost, second.Output.TotalCost)
	require.Equal(t, first.Output.PurchaseEvents, second.Output.PurchaseEvents)
	for _, g := range shared.AllGrades() {
		assert.InDelta(t, first.Allocations[g].Total(), second.Allocations[g].Total(), 1e-9)
	}
}

func TestBaseline_BuysOnlyAtRawMinimumBreach(t *testing.T) {
	in := newTestInput(t)

	baseline := planning.Baseline(in)

	// AE oil: 7,000 L on board, consumption never forces a buy until the
	// Rotterdam leg (5,500 - 700 < 5,000), where the reactive plan fills to
	// 0.90 x 20,000 = 18,000.
	assert.Zero(t, baseline.Ports[0].Grades[shared.GradeAuxEngine].Quantity)
	assert.Zero(t, baseline.Ports[1].Grades[shared.GradeAuxEngine].Quantity)
	assert.InDelta(t, 12500.0, baseline.Ports[3].Grades[shared.GradeAuxEngine].Quantity, 1e-9)
	requireInvariants(t, in, baseline)
}

func TestBaseline_SharedReferenceIsStable(t *testing.T) {
	in := newTestInput(t)

	a := planning.Baseline(in)
	b := planning.Baseline(in)

	assert.Equal(t, a.TotalCost, b.TotalCost)
	assert.Equal(t, a.PurchaseEvents, b.PurchaseEvents)
}

func TestSimulationParams_Label(t *testing.T) {
	p := planning.SimulationParams{TargetFillPct: 0.7, ROBTriggerMultiplier: 1.25, OpportunityDiscountPct: 10, WindowSize: 6}
	assert.Equal(t, "fill=70% trigger=1.25 discount=10% window=6", p.Label())
}
