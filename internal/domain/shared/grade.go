package shared

import "fmt"

// Grade identifies one of the three lube-oil categories tracked on board.
//
// Every tank, price quote, consumption figure and purchase decision in the
// planner is keyed by grade. The three grades are planned independently but
// share delivery events (one charge per port call regardless of how many
// grades purchase there).
type Grade string

const (
	// GradeCylinder is main-engine cylinder oil. Its minimum safe ROB is
	// derived externally from trailing consumption history and it carries no
	// minimum order quantity.
	GradeCylinder Grade = "CYL"

	// GradeMainEngine is main-engine system (circulating) oil.
	GradeMainEngine Grade = "ME_SYS"

	// GradeAuxEngine is auxiliary-engine system oil.
	GradeAuxEngine Grade = "AE_SYS"
)

// AllGrades returns the grades in canonical planning order.
//
// Iteration order is significant: the piggyback and consolidation heuristics
// are first-match-wins over this exact order, so callers must not reorder.
func AllGrades() []Grade {
	return []Grade{GradeCylinder, GradeMainEngine, GradeAuxEngine}
}

// IsValid reports whether g is one of the three known grades.
func (g Grade) IsValid() bool {
	switch g {
	case GradeCylinder, GradeMainEngine, GradeAuxEngine:
		return true
	}
	return false
}

// Description returns a human-readable grade name for reports and logs.
func (g Grade) Description() string {
	switch g {
	case GradeCylinder:
		return "Cylinder Oil"
	case GradeMainEngine:
		return "Main Engine System Oil"
	case GradeAuxEngine:
		return "Aux Engine System Oil"
	default:
		return fmt.Sprintf("Unknown Grade (%s)", string(g))
	}
}

func (g Grade) String() string {
	return string(g)
}
