package planning_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oceanline/lubeplan-go/internal/domain/planning"
	"github.com/oceanline/lubeplan-go/internal/domain/schedule"
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
	"github.com/oceanline/lubeplan-go/internal/domain/vessel"
)

// newTestVessel builds the reference vessel used across the planning tests.
func newTestVessel(t *testing.T) *vessel.Vessel {
	t.Helper()
	v, err := vessel.NewVessel("9391001", "MV Meridian", map[shared.Grade]vessel.GradeConfig{
		shared.GradeCylinder: {
			Grade:               shared.GradeCylinder,
			Tank:                vessel.TankConfig{CapacityLiters: 30000, MaxFillFraction: 1.0, MinimumROBLiters: 8000},
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

// fiveStopVoyage is a Singapore-to-New-York rotation with a priceless stop in
// the middle and one port on the flat fallback delivery charge.
func fiveStopVoyage() schedule.Voyage {
	return schedule.Voyage{
		{
			Name: "Singapore", Code: "SGSIN", Country: "SG",
			Arrival: "2026-09-10", SeaDaysToNext: 4,
			Prices: map[shared.Grade]float64{
				shared.GradeCylinder:   2.10,
				shared.GradeMainEngine: 1.60,
				shared.GradeAuxEngine:  1.50,
			},
			DeliveryCharge: &schedule.DeliveryChargeConfig{
				DifferentialPer100L:       8,
				LeadTimeDays:              5,
				SmallOrderThresholdLiters: 2000,
				SmallOrderSurcharge:       400,
				UrgentSurcharge:           900,
			},
		},
		{
			Name: "Colombo", Code: "LKCMB", Country: "LK",
			Arrival: "2026-09-14", SeaDaysToNext: 6,
			Prices: map[shared.Grade]float64{
				shared.GradeCylinder:   1.80,
				shared.GradeMainEngine: 1.40,
				shared.GradeAuxEngine:  1.20,
			},
		},
		{
			Name: "Suez", Code: "EGSUZ", Country: "EG",
			Arrival: "2026-09-20", SeaDaysToNext: 5,
		},
		{
			Name: "Rotterdam", Code: "NLRTM", Country: "NL",
			Arrival: "2026-09-25", SeaDaysToNext: 7,
			Prices: map[shared.Grade]float64{
				shared.GradeCylinder:   2.40,
				shared.GradeMainEngine: 1.75,
				shared.GradeAuxEngine:  1.65,
			},
			DeliveryCharge: &schedule.DeliveryChargeConfig{
				DifferentialPer100L:       12,
				LeadTimeDays:              3,
				SmallOrderThresholdLiters: 1500,
				SmallOrderSurcharge:       350,
				UrgentSurcharge:           1200,
			},
		},
		{
			Name: "New York", Code: "USNYC", Country: "US",
			Arrival: "2026-10-02", SeaDaysToNext: 0,
			Prices: map[shared.Grade]float64{
				shared.GradeCylinder:   2.20,
				shared.GradeMainEngine: 1.70,
				shared.GradeAuxEngine:  1.55,
			},
		},
	}
}

// newTestInput assembles the default snapshot: minimum-order rounding off and
// safety buffer zeroed so expected quantities stay easy to follow.
func newTestInput(t *testing.T) *planning.Input {
	t.Helper()
	reorder := planning.DefaultReorderConfig()
	reorder.SafetyBufferPct = 0
	reorder.MinOrderLiters = nil
	return &planning.Input{
		Vessel: newTestVessel(t),
		Voyage: fiveStopVoyage(),
		CurrentROB: map[shared.Grade]float64{
			shared.GradeCylinder:   12000,
			shared.GradeMainEngine: 9000,
			shared.GradeAuxEngine:  7000,
		},
		Reorder: reorder,
		Now:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

// requireInvariants asserts the plan-level invariants every strategy must
// honor: capacity ceiling, non-negative quantities, one delivery charge per
// purchasing port.
func requireInvariants(t *testing.T, in *planning.Input, out *planning.Output) {
	t.Helper()
	for _, port := range out.Ports {
		var portTotal float64
		for _, g := range shared.AllGrades() {
			gp := port.Grades[g]
			require.NotNil(t, gp)
			require.GreaterOrEqual(t, gp.Quantity, 0.0, "negative quantity at port %d grade %s", port.PortIndex, g)
			cfg, _ := in.Vessel.GradeConfigFor(g)
			require.LessOrEqual(t, gp.ROBOnDeparture, cfg.Tank.CapacityLiters*1.01,
				"tank overfill at port %d grade %s", port.PortIndex, g)
			portTotal += gp.Quantity
		}
		if portTotal == 0 {
			require.Zero(t, port.Delivery.Total, "delivery charge without purchase at port %d", port.PortIndex)
		}
	}
}
