package planning

import (
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

// capacityTolerance absorbs rounding noise when checking tank limits: ROB
// after a purchase may exceed usable capacity by at most 1%.
const capacityTolerance = 1.01

// robProjection is the simulated ROB track of one grade across the voyage
// under a given allocation. Quantities are applied raw, without minimum-order
// rounding; rounding belongs to the output builder.
type robProjection struct {
	// ROB on arrival at each port, before any purchase there
	arrival []float64

	// ROB on departure, after the port's purchase
	departure []float64

	// ROB on arrival at the following port (or voyage end for the last leg)
	atNext []float64
}

// projectGrade advances one grade's ROB port-by-port under alloc.
func projectGrade(in *Input, g shared.Grade, alloc Allocation) robProjection {
	n := len(in.Voyage)
	proj := robProjection{
		arrival:   make([]float64, n),
		departure: make([]float64, n),
		atNext:    make([]float64, n),
	}
	rob := in.CurrentROB[g]
	for i := 0; i < n; i++ {
		proj.arrival[i] = rob
		rob += alloc[i]
		proj.departure[i] = rob
		rob -= in.consumption(i, g)
		proj.atNext[i] = rob
	}
	return proj
}

// firstBreach returns the first port index whose arrival ROB is below the
// grade minimum, or -1 when the whole voyage stays safe under alloc.
func firstBreach(in *Input, g shared.Grade, alloc Allocation) int {
	proj := projectGrade(in, g, alloc)
	min := in.minROB(g)
	for i := range proj.arrival {
		if proj.arrival[i] < min {
			return i
		}
	}
	return -1
}

// breachCount counts how many ports arrive below the grade minimum under
// alloc. Used to verify that a consolidation merge does not degrade safety.
func breachCount(in *Input, g shared.Grade, alloc Allocation) int {
	proj := projectGrade(in, g, alloc)
	min := in.minROB(g)
	count := 0
	for i := range proj.arrival {
		if proj.arrival[i] < min {
			count++
		}
	}
	return count
}

// fitsCapacity reports whether the allocation keeps departure ROB within the
// grade's usable tank ceiling (rounding tolerance applied) at every port.
func fitsCapacity(in *Input, g shared.Grade, alloc Allocation) bool {
	proj := projectGrade(in, g, alloc)
	limit := in.usableCapacity(g) * capacityTolerance
	for i := range proj.departure {
		if proj.departure[i] > limit {
			return false
		}
	}
	return true
}
