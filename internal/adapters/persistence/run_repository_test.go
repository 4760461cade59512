package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanline/lubeplan-go/internal/adapters/persistence"
	"github.com/oceanline/lubeplan-go/internal/application/optimization"
	"github.com/oceanline/lubeplan-go/internal/domain/planning"
	"github.com/oceanline/lubeplan-go/test/helpers"
)

func testRun(id string, createdAt time.Time) *optimization.RunRecord {
	return &optimization.RunRecord{
		ID:                    id,
		VesselIMO:             "9876543",
		CreatedAt:             createdAt,
		GridCombinations:      360,
		CombinationsEvaluated: 363,
		ElapsedMillis:         412,
		BaselineCost:          52000,
		BestCost:              47350.5,
		BestSavings:           4649.5,
		BestSafe:              true,
		Plans: []*planning.RankedPlan{
			{
				Rank:      1,
				Strategy:  "grid",
				Label:     "fill=90% trigger=1.20 discount=10% window=6",
				AllInCost: 47350.5,
				Safety:    planning.SafetyVerdict{Safe: true},
				Output:    &planning.Output{TotalCost: 47350.5, PurchaseEvents: 2},
			},
		},
	}
}

func TestRunRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRunRepository(db)
	run := testRun("run-1", time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	// Act
	err := repo.Save(context.Background(), run)
	require.NoError(t, err)
	found, err := repo.FindByID(context.Background(), "run-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, run.VesselIMO, found.VesselIMO)
	assert.Equal(t, run.BestCost, found.BestCost)
	assert.Equal(t, run.CombinationsEvaluated, found.CombinationsEvaluated)
	require.Len(t, found.Plans, 1)
	assert.Equal(t, 1, found.Plans[0].Rank)
	assert.Equal(t, "grid", found.Plans[0].Strategy)
	assert.Equal(t, 2, found.Plans[0].Output.PurchaseEvents)
}

func TestRunRepository_ListByVesselNewestFirst(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRunRepository(db)
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(context.Background(), testRun("run-old", base)))
	require.NoError(t, repo.Save(context.Background(), testRun("run-new", base.Add(time.Hour))))

	// Act
	runs, err := repo.ListByVessel(context.Background(), "9876543", 10)

	// Assert
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-new", runs[0].ID)
	assert.Equal(t, "run-old", runs[1].ID)
}

func TestRunRepository_NotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRunRepository(db)

	// Act
	_, err := repo.FindByID(context.Background(), "missing")

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "optimization run not found")
}
