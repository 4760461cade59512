package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/oceanline/lubeplan-go/internal/application/optimization"
	"github.com/oceanline/lubeplan-go/internal/domain/planning"
)

// GormRunRepository implements optimization.RunRepository using GORM
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GORM optimization run repository
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// Save persists an optimization run with its ranked plans
func (r *GormRunRepository) Save(ctx context.Context, run *optimization.RunRecord) error {
	model, err := r.recordToModel(run)
	if err != nil {
		return fmt.Errorf("failed to convert run to model: %w", err)
	}
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save optimization run: %w", result.Error)
	}
	return nil
}

// FindByID retrieves one run with its full plan set
func (r *GormRunRepository) FindByID(ctx context.Context, id string) (*optimization.RunRecord, error) {
	var model OptimizationRunModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("optimization run not found: %s", id)
		}
		return nil, fmt.Errorf("failed to find optimization run: %w", result.Error)
	}
	return r.modelToRecord(&model)
}

// ListByVessel retrieves the most recent runs for a vessel, newest first
func (r *GormRunRepository) ListByVessel(ctx context.Context, imo string, limit int) ([]*optimization.RunRecord, error) {
	var models []OptimizationRunModel
	result := r.db.WithContext(ctx).
		Where("vessel_imo = ?", imo).
		Order("created_at desc").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list optimization runs: %w", result.Error)
	}

	runs := make([]*optimization.RunRecord, 0, len(models))
	for i := range models {
		record, err := r.modelToRecord(&models[i])
		if err != nil {
			continue // Skip rows with unusable plan data
		}
		runs = append(runs, record)
	}
	return runs, nil
}

func (r *GormRunRepository) recordToModel(run *optimization.RunRecord) (*OptimizationRunModel, error) {
	bytes, err := json.Marshal(run.Plans)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ranked plans: %w", err)
	}
	return &OptimizationRunModel{
		ID:                    run.ID,
		VesselIMO:             run.VesselIMO,
		CreatedAt:             run.CreatedAt,
		GridCombinations:      run.GridCombinations,
		CombinationsEvaluated: run.CombinationsEvaluated,
		ElapsedMillis:         run.ElapsedMillis,
		BaselineCost:          run.BaselineCost,
		BestCost:              run.BestCost,
		BestSavings:           run.BestSavings,
		BestSafe:              run.BestSafe,
		PlansJSON:             string(bytes),
	}, nil
}

func (r *GormRunRepository) modelToRecord(model *OptimizationRunModel) (*optimization.RunRecord, error) {
	var plans []*planning.RankedPlan
	if model.PlansJSON != "" {
		if err := json.Unmarshal([]byte(model.PlansJSON), &plans); err != nil {
			return nil, fmt.Errorf("invalid plan data for run %s: %w", model.ID, err)
		}
	}
	return &optimization.RunRecord{
		ID:                    model.ID,
		VesselIMO:             model.VesselIMO,
		CreatedAt:             model.CreatedAt,
		GridCombinations:      model.GridCombinations,
		CombinationsEvaluated: model.CombinationsEvaluated,
		ElapsedMillis:         model.ElapsedMillis,
		BaselineCost:          model.BaselineCost,
		BestCost:              model.BestCost,
		BestSavings:           model.BestSavings,
		BestSafe:              model.BestSafe,
		Plans:                 plans,
	}, nil
}
