package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oceanline/lubeplan-go/internal/domain/planning"
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

func TestAllocation_SetDropsEmptyEntries(t *testing.T) {
	a := make(planning.Allocation)
	a.Set(2, 1500)
	a.Set(2, 0)

	assert.Empty(t, a.Ports())
	assert.Zero(t, a.Total())
}

func TestAllocation_AddAccumulates(t *testing.T) {
	a := make(planning.Allocation)
	a.Add(1, 500)
	a.Add(1, 250)
	a.Add(3, 1000)

	assert.Equal(t, []int{1, 3}, a.Ports())
	assert.InDelta(t, 1750.0, a.Total(), 1e-9)
}

func TestAllocation_CloneIsIndependent(t *testing.T) {
	a := make(planning.Allocation)
	a.Set(0, 2000)

	b := a.Clone()
	b.Set(0, 0)
	b.Set(4, 999)

	assert.Equal(t, []int{0}, a.Ports())
	assert.InDelta(t, 2000.0, a.Total(), 1e-9)
}

func TestAllocationSet_TotalAtSumsGrades(t *testing.T) {
	s := planning.NewAllocationSet()
	s[shared.GradeCylinder].Set(2, 3000)
	s[shared.GradeAuxEngine].Set(2, 1000)
	s[shared.GradeMainEngine].Set(3, 500)

	assert.InDelta(t, 4000.0, s.TotalAt(2), 1e-9)
	assert.InDelta(t, 500.0, s.TotalAt(3), 1e-9)
	assert.Zero(t, s.TotalAt(0))
}

func TestAllocationSet_GradesAtCanonicalOrder(t *testing.T) {
	s := planning.NewAllocationSet()
	s[shared.GradeAuxEngine].Set(1, 100)
	s[shared.GradeCylinder].Set(1, 100)

	assert.Equal(t, []shared.Grade{shared.GradeCylinder, shared.GradeAuxEngine}, s.GradesAt(1))
}

func TestAllocationSet_DeliveryPortsInVoyageOrder(t *testing.T) {
	s := planning.NewAllocationSet()
	s[shared.GradeMainEngine].Set(4, 800)
	s[shared.GradeCylinder].Set(1, 3000)
	s[shared.GradeAuxEngine].Set(1, 1000)

	assert.Equal(t, []int{1, 4}, s.DeliveryPorts())
}

func TestAllocationSet_CloneIsDeep(t *testing.T) {
	s := planning.NewAllocationSet()
	s[shared.GradeCylinder].Set(0, 5000)

	c := s.Clone()
	c[shared.GradeCylinder].Set(0, 0)

	assert.InDelta(t, 5000.0, s[shared.GradeCylinder].Total(), 1e-9)
	assert.Zero(t, c[shared.GradeCylinder].Total())
}
