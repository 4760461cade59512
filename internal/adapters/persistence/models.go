package persistence

import (
	"time"
)

// VesselModel represents the vessels table. Grade configuration (tanks,
// consumption rates) is stored as a JSON document: it always travels as one
// unit and is never queried field-by-field.
type VesselModel struct {
	IMO        string    `gorm:"column:imo;primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	GradesJSON string    `gorm:"column:grades;type:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (VesselModel) TableName() string {
	return "vessels"
}

// ScheduleModel represents the schedules table: one row per vessel holding
// the full upcoming rotation with merged price and delivery-charge data.
type ScheduleModel struct {
	VesselIMO  string    `gorm:"column:vessel_imo;primaryKey"`
	VoyageJSON string    `gorm:"column:voyage;type:text;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (ScheduleModel) TableName() string {
	return "schedules"
}

// OptimizationRunModel represents the optimization_runs table. The ranked
// plans are persisted as a JSON document; headline figures are broken out
// into columns for listing without deserializing the full plan set.
type OptimizationRunModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	VesselIMO string    `gorm:"column:vessel_imo;index;not null"`
	CreatedAt time.Time `gorm:"column:created_at;index;not null"`

	GridCombinations      int   `gorm:"column:grid_combinations;not null"`
	CombinationsEvaluated int   `gorm:"column:combinations_evaluated;not null"`
	ElapsedMillis         int64 `gorm:"column:elapsed_millis;not null"`

	BaselineCost float64 `gorm:"column:baseline_cost;not null"`
	BestCost     float64 `gorm:"column:best_cost;not null"`
	BestSavings  float64 `gorm:"column:best_savings;not null"`
	BestSafe     bool    `gorm:"column:best_safe;not null"`

	PlansJSON string `gorm:"column:plans;type:text;not null"`
}

func (OptimizationRunModel) TableName() string {
	return "optimization_runs"
}
