package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oceanline/lubeplan-go/internal/domain/planning"
	"github.com/oceanline/lubeplan-go/internal/domain/schedule"
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

func TestConsolidated_SelectsHighestScoredPort(t *testing.T) {
	in := newTestInput(t)

	// Colombo is the only port whose below-average prices outweigh its
	// delivery charge, so every grade lands there.
	strat := planning.NewConsolidatedStrategy()
	allocs := strat.Allocate(in)

	for _, g := range shared.AllGrades() {
		assert.Equal(t, []int{1}, allocs[g].Ports(), "grade %s", g)
	}

	out := strat.Plan(in)
	verdict := planning.ValidateOutput(out, in)
	assert.True(t, verdict.Safe)
	assert.Equal(t, 1, out.PurchaseEvents)
	requireInvariants(t, in, out)
}

func TestConsolidated_PiggybackTopsUpNearAveragePrices(t *testing.T) {
	in := newTestInput(t)
	// Only AE oil is forced to buy; ME oil starts full enough to coast but
	// Colombo's ME price sits well under the route average, so it tops up at
	// the already selected delivery port.
	in.CurrentROB = map[shared.Grade]float64{
		shared.GradeCylinder:   30000,
		shared.GradeMainEngine: 10000,
		shared.GradeAuxEngine:  7000,
	}

	allocs := planning.NewConsolidatedStrategy().Allocate(in)

	assert.Equal(t, []int{1}, allocs[shared.GradeAuxEngine].Ports())
	assert.Equal(t, []int{1}, allocs[shared.GradeMainEngine].Ports())
	assert.Empty(t, allocs[shared.GradeCylinder].Ports(), "a full tank leaves no room to piggyback")
}

func TestConsolidated_UnfixableBreachSurfacesAsAlert(t *testing.T) {
	in := newTestInput(t)
	in.Voyage = schedule.Voyage{
		{Name: "Suez", Code: "EGSUZ", Arrival: "2026-09-20", SeaDaysToNext: 10},
		{Name: "Gibraltar", Code: "GIGIB", Arrival: "2026-09-30", SeaDaysToNext: 0},
	}
	in.CurrentROB[shared.GradeAuxEngine] = 5500

	out := planning.NewConsolidatedStrategy().Plan(in)

	assert.Equal(t, planning.ActionAlert, out.Ports[0].Grades[shared.GradeAuxEngine].Action)
	assert.Zero(t, out.PurchaseEvents)
}
