package planning

import (
	"context"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// OrchestratorOptions configures which strategies run and how the grid is
// spanned. The default grid is 6 x 5 x 4 x 3 = 360 combinations.
type OrchestratorOptions struct {
	TargetFillPcts          []float64
	OpportunityDiscountPcts []float64
	ROBTriggerMultipliers   []float64
	WindowSizes             []int

	// How many ranked plans to return
	TopN int

	// Worker pool size for the grid search; 0 means one per CPU
	Workers int

	EnableGrid          bool
	EnableCheapestPort  bool
	EnableDeliveryAware bool
	EnableConsolidated  bool
}

// DefaultOrchestratorOptions returns the production search space.
func DefaultOrchestratorOptions() OrchestratorOptions {
	return OrchestratorOptions{
		TargetFillPcts:          []float64{0.50, 0.60, 0.70, 0.80, 0.90, 1.00},
		OpportunityDiscountPcts: []float64{2, 5, 8, 12, 15},
		ROBTriggerMultipliers:   []float64{1.00, 1.15, 1.30, 1.50},
		WindowSizes:             []int{4, 6, 8},
		TopN:                    5,
		Workers:                 0,
		EnableGrid:              true,
		EnableCheapestPort:      true,
		EnableDeliveryAware:     true,
		EnableConsolidated:      true,
	}
}

// GridSize returns how many parameter combinations the grid spans.
func (o OrchestratorOptions) GridSize() int {
	return len(o.TargetFillPcts) * len(o.OpportunityDiscountPcts) *
		len(o.ROBTriggerMultipliers) * len(o.WindowSizes)
}

// OrchestratorResult is the ranked outcome of one optimization run.
type OrchestratorResult struct {
	// Top-N plans, ranks 1..N, deduplicated
	Plans []*RankedPlan

	// The shared reactive comparator every plan was measured against
	Baseline *Output

	// Grid combinations spanned (0 when the grid is disabled)
	GridCombinations int

	// Total plans evaluated: grid combinations plus enabled strategies
	CombinationsEvaluated int

	Elapsed time.Duration
}

// Orchestrator runs the full strategy family over one snapshot, scores every
// plan against a shared baseline, deduplicates and ranks.
type Orchestrator struct {
	opts OrchestratorOptions
}

// NewOrchestrator creates an orchestrator with the given search options.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	return &Orchestrator{opts: opts}
}

// Run executes every enabled strategy. The baseline is computed once up
// front and treated as read-only; grid combinations are independent and run
// on a bounded worker pool, each on its own allocation state. Results land
// in a pre-sized slice by index, so ordering is deterministic regardless of
// completion order.
func (o *Orchestrator) Run(ctx context.Context, in *Input) (*OrchestratorResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	baseline := Baseline(in)
	strategies := o.buildStrategies(in)

	plans := make([]*RankedPlan, len(strategies))

	workers := o.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for idx, strat := range strategies {
		idx, strat := idx, strat
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			out := strat.Plan(in)
			out.AttachBaseline(baseline)
			verdict := ValidateOutput(out, in)
			plans[idx] = &RankedPlan{
				Strategy:     strat.Name(),
				Label:        strat.Label(),
				Output:       out,
				AllInCost:    out.TotalCost,
				BaselineCost: baseline.TotalCost,
				Savings:      out.Savings.Amount,
				SavingsPct:   out.Savings.Percent,
				Safety:       verdict,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &OrchestratorResult{
		Plans:                 rankPlans(plans, o.opts.TopN),
		Baseline:              baseline,
		CombinationsEvaluated: len(strategies),
		Elapsed:               time.Since(start),
	}
	if o.opts.EnableGrid {
		result.GridCombinations = o.opts.GridSize()
	}
	return result, nil
}

// buildStrategies expands the grid into one strategy per combination and
// appends the three named strategies.
func (o *Orchestrator) buildStrategies(in *Input) []Strategy {
	var strategies []Strategy

	if o.opts.EnableGrid {
		base := ParamsFromConfig(in.Reorder)
		for _, fill := range o.opts.TargetFillPcts {
			for _, discount := range o.opts.OpportunityDiscountPcts {
				for _, trigger := range o.opts.ROBTriggerMultipliers {
					for _, window := range o.opts.WindowSizes {
						params := base
						params.TargetFillPct = fill
						params.OpportunityDiscountPct = discount
						params.ROBTriggerMultiplier = trigger
						params.WindowSize = window
						strategies = append(strategies, &gridStrategy{params: params})
					}
				}
			}
		}
	}
	if o.opts.EnableCheapestPort {
		strategies = append(strategies, NewCheapestPortStrategy())
	}
	if o.opts.EnableDeliveryAware {
		strategies = append(strategies, NewDeliveryAwareStrategy())
	}
	if o.opts.EnableConsolidated {
		strategies = append(strategies, NewConsolidatedStrategy())
	}
	return strategies
}

// rankPlans sorts safe plans above unsafe, by ascending all-in cost within
// the safe class and by ascending breach count then cost within the unsafe
// class, deduplicates by fingerprint, and returns the top n with ranks
// assigned.
func rankPlans(plans []*RankedPlan, n int) []*RankedPlan {
	sorted := make([]*RankedPlan, 0, len(plans))
	for _, p := range plans {
		if p != nil {
			sorted = append(sorted, p)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Safety.Safe != b.Safety.Safe {
			return a.Safety.Safe
		}
		if !a.Safety.Safe && a.Safety.ROBBreaches != b.Safety.ROBBreaches {
			return a.Safety.ROBBreaches < b.Safety.ROBBreaches
		}
		return a.AllInCost < b.AllInCost
	})

	seen := make(map[string]bool)
	deduped := make([]*RankedPlan, 0, len(sorted))
	for _, p := range sorted {
		fp := p.Fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		deduped = append(deduped, p)
	}

	if n > 0 && len(deduped) > n {
		deduped = deduped[:n]
	}
	for i, p := range deduped {
		p.Rank = i + 1
	}
	return deduped
}
