package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanline/lubeplan-go/internal/adapters/persistence"
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
	"github.com/oceanline/lubeplan-go/internal/domain/vessel"
	"github.com/oceanline/lubeplan-go/test/helpers"
)

func testVessel(t *testing.T) *vessel.Vessel {
	t.Helper()
	v, err := vessel.NewVessel("9876543", "MV Test Carrier", map[shared.Grade]vessel.GradeConfig{
		shared.GradeCylinder: {
			Grade:               shared.GradeCylinder,
			Tank:                vessel.TankConfig{CapacityLiters: 30000, MaxFillFraction: 0.95, MinimumROBLiters: 8000},
			AvgDailyConsumption: 250,
		},
		shared.GradeMainEngine: {
			Grade:               shared.GradeMainEngine,
			Tank:                vessel.TankConfig{CapacityLiters: 25000, MaxFillFraction: 1.0, MinimumROBLiters: 6000},
			AvgDailyConsumption: 150,
		},
		shared.GradeAuxEngine: {
			Grade:               shared.GradeAuxEngine,
			Tank:                vessel.TankConfig{CapacityLiters: 20000, MaxFillFraction: 1.0, MinimumROBLiters: 5000},
			AvgDailyConsumption: 100,
		},
	})
	require.NoError(t, err)
	return v
}

func TestVesselRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormVesselRepository(db)
	v := testVessel(t)

	// Act - Save
	err := repo.Save(context.Background(), v)
	require.NoError(t, err)

	// Act - FindByIMO
	found, err := repo.FindByIMO(context.Background(), "9876543")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, v.IMO, found.IMO)
	assert.Equal(t, v.Name, found.Name)
	cfg, ok := found.GradeConfigFor(shared.GradeCylinder)
	require.True(t, ok)
	assert.Equal(t, 30000.0, cfg.Tank.CapacityLiters)
	assert.Equal(t, 0.95, cfg.Tank.MaxFillFraction)
}

func TestVesselRepository_ListAll(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormVesselRepository(db)
	require.NoError(t, repo.Save(context.Background(), testVessel(t)))

	// Act
	vessels, err := repo.ListAll(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, vessels, 1)
	assert.Equal(t, "9876543", vessels[0].IMO)
}

func TestVesselRepository_NotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormVesselRepository(db)

	// Act
	_, err := repo.FindByIMO(context.Background(), "0000000")

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "vessel not found")
}
