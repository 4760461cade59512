package planning

import (
	"fmt"
	"time"

	"github.com/oceanline/lubeplan-go/internal/domain/schedule"
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
	"github.com/oceanline/lubeplan-go/internal/domain/vessel"
)

// Input is the immutable snapshot one optimization request operates on.
//
// It is assembled by the application layer from persisted master data and is
// never mutated by the planning core: strategies clone whatever working state
// they need. A validated Input makes every strategy a total function: for
// any well-formed snapshot the planner always terminates with a result.
type Input struct {
	Vessel *vessel.Vessel

	// Upcoming port rotation, index 0 is the next port ahead
	Voyage schedule.Voyage

	// Current liters on board per grade
	CurrentROB map[shared.Grade]float64

	Reorder ReorderConfig

	// Reference time for lead-time calculations
	Now time.Time
}

// Validate fails fast on structurally unusable snapshots. The planning core
// assumes a validated input; callers must not invoke strategies on an Input
// that fails here.
func (in *Input) Validate() error {
	if in.Vessel == nil {
		return shared.NewSnapshotError("vessel snapshot required")
	}
	if len(in.Voyage) == 0 {
		return shared.NewSnapshotError("port rotation is empty")
	}
	for _, g := range shared.AllGrades() {
		if _, ok := in.Vessel.GradeConfigFor(g); !ok {
			return shared.NewSnapshotError(fmt.Sprintf("missing grade configuration for %s", g))
		}
		if rob, ok := in.CurrentROB[g]; !ok || rob < 0 {
			return shared.NewSnapshotError(fmt.Sprintf("missing or negative current ROB for %s", g))
		}
	}
	if in.Reorder.TargetFillPct <= 0 || in.Reorder.TargetFillPct > 1 {
		return shared.NewValidationError("targetFillPct", "must be in (0, 1]")
	}
	if in.Reorder.ROBTriggerMultiplier < 1 {
		return shared.NewValidationError("robTriggerMultiplier", "must be >= 1")
	}
	return nil
}

// gradeConfig returns the grade configuration; Validate guarantees presence.
func (in *Input) gradeConfig(g shared.Grade) vessel.GradeConfig {
	cfg, _ := in.Vessel.GradeConfigFor(g)
	return cfg
}

// consumption returns the projected liters of grade g consumed on the leg
// from port i to port i+1, safety buffer included.
func (in *Input) consumption(i int, g shared.Grade) float64 {
	if i < 0 || i >= len(in.Voyage) {
		return 0
	}
	return in.gradeConfig(g).ConsumptionOver(in.Voyage[i].SeaDaysToNext, in.Reorder.SafetyBufferPct)
}

// targetFill returns the refill ceiling in liters for grade g under the
// given fill fraction.
func (in *Input) targetFill(g shared.Grade, targetFillPct float64) float64 {
	return in.gradeConfig(g).TargetFill(targetFillPct)
}

// minROB returns the minimum safe ROB for grade g.
func (in *Input) minROB(g shared.Grade) float64 {
	return in.gradeConfig(g).Tank.MinimumROBLiters
}

// usableCapacity returns the effective fill ceiling for grade g.
func (in *Input) usableCapacity(g shared.Grade) float64 {
	return in.gradeConfig(g).Tank.UsableCapacity()
}
