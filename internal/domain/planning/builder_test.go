package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oceanline/lubeplan-go/internal/domain/planning"
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

func TestBuildOutput_RoundsUpToMinimumOrder(t *testing.T) {
	in := newTestInput(t)
	in.Reorder.MinOrderLiters = map[shared.Grade]float64{shared.GradeMainEngine: 1000}

	allocs := planning.NewAllocationSet()
	allocs[shared.GradeMainEngine].Set(1, 500)

	out := planning.BuildOutput(in, allocs)

	gp := out.Ports[1].Grades[shared.GradeMainEngine]
	assert.Equal(t, 1000.0, gp.Quantity)
	assert.InDelta(t, 1400.0, gp.OilCost, 1e-9) // 1000 L at Colombo's 1.40
	assert.Equal(t, planning.ActionOrder, gp.Action)
}

func TestBuildOutput_KeepsRequestedQuantityWhenTankCannotFitMinimum(t *testing.T) {
	in := newTestInput(t)
	in.Reorder.MinOrderLiters = map[shared.Grade]float64{shared.GradeMainEngine: 1000}
	in.CurrentROB[shared.GradeMainEngine] = 24800 // 24,200 on arrival at Colombo

	allocs := planning.NewAllocationSet()
	allocs[shared.GradeMainEngine].Set(1, 500)

	out := planning.BuildOutput(in, allocs)

	gp := out.Ports[1].Grades[shared.GradeMainEngine]
	assert.Equal(t, 500.0, gp.Quantity)
	assert.LessOrEqual(t, gp.ROBOnDeparture, 25000.0)
}

func TestBuildOutput_InfersUrgentNearMinimum(t *testing.T) {
	in := newTestInput(t)
	in.CurrentROB[shared.GradeAuxEngine] = 5500 // inside 1.2x the 5,000 L minimum

	allocs := planning.NewAllocationSet()
	allocs[shared.GradeAuxEngine].Set(0, 8000)

	out := planning.BuildOutput(in, allocs)

	assert.Equal(t, planning.ActionUrgent, out.Ports[0].Grades[shared.GradeAuxEngine].Action)
}

func TestBuildOutput_OneDeliveryChargePerPurchasingPort(t *testing.T) {
	in := newTestInput(t)

	allocs := planning.NewAllocationSet()
	allocs[shared.GradeCylinder].Set(0, 3000)
	allocs[shared.GradeMainEngine].Set(0, 2000)
	allocs[shared.GradeAuxEngine].Set(1, 1000)

	out := planning.BuildOutput(in, allocs)

	// Singapore charges once for the combined 5,000 L (8 per 100 L = 400),
	// Colombo has no charge config and falls back to the flat default.
	assert.InDelta(t, 400.0, out.Ports[0].Delivery.Total, 1e-9)
	assert.InDelta(t, 2500.0, out.Ports[1].Delivery.Total, 1e-9)
	assert.Zero(t, out.Ports[2].Delivery.Total)
	assert.Equal(t, 2, out.PurchaseEvents)
	assert.InDelta(t, out.TotalOilCost+out.TotalDeliveryCharges, out.TotalCost, 1e-9)
	requireInvariants(t, in, out)
}

func TestBuildOutput_ROBChainsAcrossPorts(t *testing.T) {
	in := newTestInput(t)

	out := planning.BuildOutput(in, planning.NewAllocationSet())

	for i := 0; i+1 < len(out.Ports); i++ {
		for _, g := range shared.AllGrades() {
			assert.Equal(t, out.Ports[i].Grades[g].ROBAtNextPort, out.Ports[i+1].Grades[g].ROBOnArrival,
				"ROB chain broken between ports %d and %d for %s", i, i+1, g)
		}
	}
}

func TestValidateOutput_CountsBreachesPerPortAndGrade(t *testing.T) {
	in := newTestInput(t)

	// With no purchases every grade dips below minimum exactly once, on the
	// Rotterdam to New York leg.
	out := planning.BuildOutput(in, planning.NewAllocationSet())
	verdict := planning.ValidateOutput(out, in)

	assert.False(t, verdict.Safe)
	assert.Equal(t, 3, verdict.ROBBreaches)
}

func TestValidateOutput_NegativeProjectionWeighsFive(t *testing.T) {
	in := newTestInput(t)
	in.CurrentROB[shared.GradeAuxEngine] = 1000

	// AE oil: 600 after the first leg (+1), exactly 0 after the second (+1),
	// negative on the last two evaluated legs (+5 each). The other two grades
	// keep their single Rotterdam-leg breach.
	out := planning.BuildOutput(in, planning.NewAllocationSet())
	verdict := planning.ValidateOutput(out, in)

	assert.False(t, verdict.Safe)
	assert.Equal(t, 14, verdict.ROBBreaches)
}

func TestValidateOutput_SafePlan(t *testing.T) {
	in := newTestInput(t)

	allocs := planning.NewAllocationSet()
	allocs[shared.GradeCylinder].Set(1, 6000)
	allocs[shared.GradeMainEngine].Set(1, 4000)
	allocs[shared.GradeAuxEngine].Set(1, 4000)

	out := planning.BuildOutput(in, allocs)
	verdict := planning.ValidateOutput(out, in)

	assert.True(t, verdict.Safe)
	assert.Zero(t, verdict.ROBBreaches)
}
