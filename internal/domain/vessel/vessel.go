package vessel

import (
	"errors"
	"fmt"

	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

// Vessel is the master-data snapshot the optimizer plans for.
//
// It is assembled per optimization request from externally persisted records
// and is immutable for the duration of the run.
type Vessel struct {
	// IMO number, the stable external identifier
	IMO string

	Name string

	// Per-grade tank and consumption configuration. All three grades must be
	// present for a snapshot to be plannable.
	Grades map[shared.Grade]GradeConfig
}

// NewVessel creates a vessel snapshot with validation.
//
// Returns an error if the name is empty or any of the three grades is missing
// or misconfigured (zero capacity, negative consumption).
func NewVessel(imo, name string, grades map[shared.Grade]GradeConfig) (*Vessel, error) {
	if name == "" {
		return nil, errors.New("vessel name required")
	}
	for _, g := range shared.AllGrades() {
		cfg, ok := grades[g]
		if !ok {
			return nil, fmt.Errorf("missing grade configuration for %s", g)
		}
		if cfg.Tank.CapacityLiters <= 0 {
			return nil, fmt.Errorf("grade %s: tank capacity must be positive", g)
		}
		if cfg.AvgDailyConsumption < 0 {
			return nil, fmt.Errorf("grade %s: consumption cannot be negative", g)
		}
		if cfg.Tank.MinimumROBLiters < 0 {
			return nil, fmt.Errorf("grade %s: minimum ROB cannot be negative", g)
		}
	}
	return &Vessel{IMO: imo, Name: name, Grades: grades}, nil
}

// GradeConfigFor returns the configuration for a grade.
func (v *Vessel) GradeConfigFor(g shared.Grade) (GradeConfig, bool) {
	cfg, ok := v.Grades[g]
	return cfg, ok
}
