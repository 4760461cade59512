package commands

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/oceanline/lubeplan-go/internal/application/common"
	"github.com/oceanline/lubeplan-go/internal/application/optimization"
	"github.com/oceanline/lubeplan-go/internal/domain/planning"
	"github.com/oceanline/lubeplan-go/internal/domain/schedule"
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
	"github.com/oceanline/lubeplan-go/internal/domain/vessel"
)

// RunOptimizationCommand requests a full multi-strategy optimization for one
// vessel against its persisted schedule.
type RunOptimizationCommand struct {
	VesselIMO string `validate:"required"`

	// Liters on board per grade at request time
	CurrentROB map[shared.Grade]float64 `validate:"required"`

	// Optional override of the persisted reorder configuration
	Reorder *planning.ReorderConfig

	// Optional override of the default search space
	Options *planning.OrchestratorOptions
}

// RunOptimizationResult carries the run identity and the ranked outcome.
type RunOptimizationResult struct {
	RunID  string
	Vessel *vessel.Vessel
	Result *planning.OrchestratorResult
}

// RunOptimizationHandler assembles the planning snapshot from persisted
// master data, runs the orchestrator and persists the outcome.
type RunOptimizationHandler struct {
	vessels   vessel.VesselRepository
	schedules schedule.ScheduleRepository
	runs      optimization.RunRepository
	metrics   optimization.MetricsRecorder
	clock     shared.Clock
	validate  *validator.Validate
}

// NewRunOptimizationHandler creates the handler with its dependencies.
func NewRunOptimizationHandler(
	vessels vessel.VesselRepository,
	schedules schedule.ScheduleRepository,
	runs optimization.RunRepository,
	metrics optimization.MetricsRecorder,
	clock shared.Clock,
) *RunOptimizationHandler {
	return &RunOptimizationHandler{
		vessels:   vessels,
		schedules: schedules,
		runs:      runs,
		metrics:   metrics,
		clock:     clock,
		validate:  validator.New(),
	}
}

// Handle executes the optimization run.
func (h *RunOptimizationHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunOptimizationCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunOptimizationCommand, got %T", request)
	}
	if err := h.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("invalid optimization request: %w", err)
	}

	logger := common.LoggerFromContext(ctx)

	v, err := h.vessels.FindByIMO(ctx, cmd.VesselIMO)
	if err != nil {
		return nil, fmt.Errorf("failed to load vessel %s: %w", cmd.VesselIMO, err)
	}
	voyage, err := h.schedules.VoyageForVessel(ctx, cmd.VesselIMO)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule for %s: %w", cmd.VesselIMO, err)
	}

	reorder := planning.DefaultReorderConfig()
	if cmd.Reorder != nil {
		reorder = *cmd.Reorder
	}
	opts := planning.DefaultOrchestratorOptions()
	if cmd.Options != nil {
		opts = *cmd.Options
	}

	in := &planning.Input{
		Vessel:     v,
		Voyage:     voyage,
		CurrentROB: cmd.CurrentROB,
		Reorder:    reorder,
		Now:        h.clock.Now(),
	}

	logger.Log("INFO", "starting optimization run", map[string]interface{}{
		"vessel": cmd.VesselIMO,
		"ports":  len(voyage),
		"grid":   opts.GridSize(),
	})

	result, err := planning.NewOrchestrator(opts).Run(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("optimization failed for %s: %w", cmd.VesselIMO, err)
	}

	record := h.buildRecord(cmd.VesselIMO, result)
	if err := h.runs.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist optimization run: %w", err)
	}

	if h.metrics != nil {
		h.metrics.RecordOptimization(cmd.VesselIMO, result.CombinationsEvaluated,
			result.Elapsed, record.BestSavings, record.BestSafe)
	}

	logger.Log("INFO", "optimization run complete", map[string]interface{}{
		"run_id":   record.ID,
		"plans":    len(result.Plans),
		"baseline": record.BaselineCost,
		"best":     record.BestCost,
	})

	return &RunOptimizationResult{RunID: record.ID, Vessel: v, Result: result}, nil
}

func (h *RunOptimizationHandler) buildRecord(imo string, result *planning.OrchestratorResult) *optimization.RunRecord {
	record := &optimization.RunRecord{
		ID:                    uuid.New().String(),
		VesselIMO:             imo,
		CreatedAt:             h.clock.Now(),
		GridCombinations:      result.GridCombinations,
		CombinationsEvaluated: result.CombinationsEvaluated,
		ElapsedMillis:         result.Elapsed.Milliseconds(),
		BaselineCost:          result.Baseline.TotalCost,
		Plans:                 result.Plans,
	}
	if len(result.Plans) > 0 {
		best := result.Plans[0]
		record.BestCost = best.AllInCost
		record.BestSavings = best.Savings
		record.BestSafe = best.Safety.Safe
	}
	return record
}
