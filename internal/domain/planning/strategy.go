package planning

// Strategy is one planning variant in the closed four-member set (grid
// simulation, cheapest-port, delivery-aware, consolidated). The orchestrator
// dispatches all of them uniformly through this interface.
type Strategy interface {
	// Name is the stable machine identity of the variant
	Name() string

	// Label is the human-readable description shown in rankings
	Label() string

	// Plan produces a full materialized plan for the snapshot. Plan must be
	// a pure function of its input: no shared mutable state, safe to run
	// alongside other strategies on the same snapshot.
	Plan(in *Input) *Output
}

// gridStrategy wraps one grid-search parameter combination as a Strategy:
// forward simulation, then delivery consolidation, then rebuild.
type gridStrategy struct {
	params SimulationParams
}

func (s *gridStrategy) Name() string  { return "grid" }
func (s *gridStrategy) Label() string { return "Grid " + s.params.Label() }

func (s *gridStrategy) Plan(in *Input) *Output {
	result := NewSimulator(in, s.params).Run()
	allocs := Consolidate(in, result.Allocations)
	return BuildOutput(in, allocs)
}
