package cli

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/oceanline/lubeplan-go/internal/adapters/metrics"
	"github.com/oceanline/lubeplan-go/internal/adapters/persistence"
	"github.com/oceanline/lubeplan-go/internal/application/common"
	"github.com/oceanline/lubeplan-go/internal/application/optimization"
	"github.com/oceanline/lubeplan-go/internal/application/optimization/commands"
	"github.com/oceanline/lubeplan-go/internal/application/optimization/queries"
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
	"github.com/oceanline/lubeplan-go/internal/infrastructure/config"
	"github.com/oceanline/lubeplan-go/internal/infrastructure/database"
)

// Container wires configuration, persistence and the mediator for one CLI
// invocation.
type Container struct {
	Config    *config.Config
	DB        *gorm.DB
	Mediator  common.Mediator
	Vessels   *persistence.GormVesselRepository
	Schedules *persistence.GormScheduleRepository
	Runs      *persistence.GormRunRepository
}

// BuildContainer loads configuration, opens the database and registers every
// command and query handler.
func BuildContainer(configPath string) (*Container, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	vessels := persistence.NewGormVesselRepository(db)
	schedules := persistence.NewGormScheduleRepository(db)
	runs := persistence.NewGormRunRepository(db)

	var recorder optimization.MetricsRecorder
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewOptimizerCollector(metrics.GetRegistry())
		metrics.SetGlobalCollector(collector)
		recorder = collector
	}

	med := common.NewMediator()
	runHandler := commands.NewRunOptimizationHandler(vessels, schedules, runs, recorder, shared.NewRealClock())
	if err := common.RegisterHandler[*commands.RunOptimizationCommand](med, runHandler); err != nil {
		return nil, err
	}
	if err := common.RegisterHandler[*queries.GetRunQuery](med, queries.NewGetRunHandler(runs)); err != nil {
		return nil, err
	}
	if err := common.RegisterHandler[*queries.ListRunsQuery](med, queries.NewListRunsHandler(runs)); err != nil {
		return nil, err
	}

	return &Container{
		Config:    cfg,
		DB:        db,
		Mediator:  med,
		Vessels:   vessels,
		Schedules: schedules,
		Runs:      runs,
	}, nil
}

// Close releases the container's resources.
func (c *Container) Close() {
	if c.DB != nil {
		_ = database.Close(c.DB)
	}
}
