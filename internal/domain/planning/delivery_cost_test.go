package planning_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oceanline/lubeplan-go/internal/domain/planning"
	"github.com/oceanline/lubeplan-go/internal/domain/schedule"
)

func deliveryConfig() *schedule.DeliveryChargeConfig {
	return &schedule.DeliveryChargeConfig{
		DifferentialPer100L:       10,
		LeadTimeDays:              5,
		SmallOrderThresholdLiters: 2000,
		SmallOrderSurcharge:       400,
		UrgentSurcharge:           900,
	}
}

func TestComputeDeliveryCost_NoPurchase(t *testing.T) {
	cost := planning.ComputeDeliveryCost(deliveryConfig(), 0, 10, 2500)

	assert.Zero(t, cost.Differential)
	assert.Zero(t, cost.SmallOrderSurcharge)
	assert.Zero(t, cost.UrgentSurcharge)
	assert.Zero(t, cost.Total)
}

func TestComputeDeliveryCost_NoConfigFallsBackToFlatCharge(t *testing.T) {
	cost := planning.ComputeDeliveryCost(nil, 5000, 10, 2500)

	assert.Equal(t, 2500.0, cost.Differential)
	assert.Equal(t, 2500.0, cost.Total)
	assert.Zero(t, cost.SmallOrderSurcharge)
	assert.Zero(t, cost.UrgentSurcharge)
}

func TestComputeDeliveryCost_DifferentialScalesPer100L(t *testing.T) {
	cost := planning.ComputeDeliveryCost(deliveryConfig(), 5000, 10, 2500)

	// 10 per 100 L over 5000 L
	assert.Equal(t, 500.0, cost.Differential)
	assert.Equal(t, 500.0, cost.Total)
}

func TestComputeDeliveryCost_SmallOrderSurcharge(t *testing.T) {
	below := planning.ComputeDeliveryCost(deliveryConfig(), 1999, 10, 2500)
	atThreshold := planning.ComputeDeliveryCost(deliveryConfig(), 2000, 10, 2500)

	assert.Equal(t, 400.0, below.SmallOrderSurcharge)
	assert.Zero(t, atThreshold.SmallOrderSurcharge)
}

func TestComputeDeliveryCost_UrgentSurcharge(t *testing.T) {
	urgent := planning.ComputeDeliveryCost(deliveryConfig(), 5000, 4.9, 2500)
	relaxed := planning.ComputeDeliveryCost(deliveryConfig(), 5000, 5.0, 2500)
	unknownArrival := planning.ComputeDeliveryCost(deliveryConfig(), 5000, -1, 2500)

	assert.Equal(t, 900.0, urgent.UrgentSurcharge)
	assert.Zero(t, relaxed.UrgentSurcharge)
	assert.Zero(t, unknownArrival.UrgentSurcharge, "unknown arrival never triggers urgency")
}

func TestEstimateDeliveryCost_AssumesNoUrgency(t *testing.T) {
	cost := planning.EstimateDeliveryCost(deliveryConfig(), 5000, 2500)

	assert.Zero(t, cost.UrgentSurcharge)
	assert.Equal(t, 500.0, cost.Total)
}

func TestAvailableBusinessDays_ScalesCalendarDays(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	stop := &schedule.PortStop{Arrival: "2026-09-08"}

	days := planning.AvailableBusinessDays(now, stop)

	// 7 calendar days scaled by 5/7
	assert.InDelta(t, 5.0, days, 1e-9)
}

func TestAvailableBusinessDays_UnparseableArrival(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, -1.0, planning.AvailableBusinessDays(now, &schedule.PortStop{Arrival: "soon"}))
	assert.Equal(t, -1.0, planning.AvailableBusinessDays(now, &schedule.PortStop{}))
}
