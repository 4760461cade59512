package config

import (
	"github.com/oceanline/lubeplan-go/internal/domain/planning"
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

// OptimizerConfig holds the optimization search space and reorder policy.
// Empty slices fall back to the planner's built-in grid.
type OptimizerConfig struct {
	// Parameter grid
	TargetFillPcts     []float64 `mapstructure:"target_fill_pcts" validate:"omitempty,dive,gt=0,lte=1"`
	DiscountPcts       []float64 `mapstructure:"discount_pcts" validate:"omitempty,dive,gte=0,lt=100"`
	TriggerMultipliers []float64 `mapstructure:"trigger_multipliers" validate:"omitempty,dive,gte=1"`
	WindowSizes        []int     `mapstructure:"window_sizes" validate:"omitempty,dive,min=1"`

	// Ranked plans returned per run
	TopN int `mapstructure:"top_n" validate:"omitempty,min=1"`

	// Worker pool size for the grid search; 0 means one per CPU
	Workers int `mapstructure:"workers" validate:"min=0"`

	// Reorder policy applied when a request carries no override
	SafetyBufferPct       float64 `mapstructure:"safety_buffer_pct" validate:"gte=0"`
	DefaultDeliveryCharge float64 `mapstructure:"default_delivery_charge" validate:"gte=0"`
	MinOrderMainEngine    float64 `mapstructure:"min_order_main_engine" validate:"gte=0"`
	MinOrderAuxEngine     float64 `mapstructure:"min_order_aux_engine" validate:"gte=0"`
}

// OrchestratorOptions maps the configured search space onto the planner's
// options, keeping the built-in grid for any axis left empty.
func (c OptimizerConfig) OrchestratorOptions() planning.OrchestratorOptions {
	opts := planning.DefaultOrchestratorOptions()
	if len(c.TargetFillPcts) > 0 {
		opts.TargetFillPcts = c.TargetFillPcts
	}
	if len(c.DiscountPcts) > 0 {
		opts.OpportunityDiscountPcts = c.DiscountPcts
	}
	if len(c.TriggerMultipliers) > 0 {
		opts.ROBTriggerMultipliers = c.TriggerMultipliers
	}
	if len(c.WindowSizes) > 0 {
		opts.WindowSizes = c.WindowSizes
	}
	if c.TopN > 0 {
		opts.TopN = c.TopN
	}
	opts.Workers = c.Workers
	return opts
}

// ReorderConfig maps the configured reorder policy onto the planner's
// defaults.
func (c OptimizerConfig) ReorderConfig() planning.ReorderConfig {
	cfg := planning.DefaultReorderConfig()
	if c.SafetyBufferPct > 0 {
		cfg.SafetyBufferPct = c.SafetyBufferPct
	}
	if c.DefaultDeliveryCharge > 0 {
		cfg.DefaultDeliveryCharge = c.DefaultDeliveryCharge
	}
	if c.MinOrderMainEngine > 0 || c.MinOrderAuxEngine > 0 {
		cfg.MinOrderLiters = map[shared.Grade]float64{}
		if c.MinOrderMainEngine > 0 {
			cfg.MinOrderLiters[shared.GradeMainEngine] = c.MinOrderMainEngine
		}
		if c.MinOrderAuxEngine > 0 {
			cfg.MinOrderLiters[shared.GradeAuxEngine] = c.MinOrderAuxEngine
		}
	}
	return cfg
}
