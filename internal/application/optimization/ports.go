package optimization

import (
	"context"
	"time"

	"github.com/oceanline/lubeplan-go/internal/domain/planning"
)

// RunRecord is the persisted outcome of one optimization run.
type RunRecord struct {
	ID        string
	VesselIMO string
	CreatedAt time.Time

	GridCombinations      int
	CombinationsEvaluated int
	ElapsedMillis         int64

	BaselineCost float64
	BestCost     float64
	BestSavings  float64
	BestSafe     bool

	Plans []*planning.RankedPlan
}

// RunRepository persists optimization runs and their ranked plans
type RunRepository interface {
	Save(ctx context.Context, run *RunRecord) error
	FindByID(ctx context.Context, id string) (*RunRecord, error)
	ListByVessel(ctx context.Context, imo string, limit int) ([]*RunRecord, error)
}

// MetricsRecorder receives optimization run events for export
type MetricsRecorder interface {
	RecordOptimization(vesselIMO string, combinations int, elapsed time.Duration, savings float64, safe bool)
}
