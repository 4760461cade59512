package planning

import (
	"sort"

	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

// minAllocationLiters is the floor below which an allocation entry is
// considered empty and removed, absorbing float rounding noise.
const minAllocationLiters = 1e-6

// Allocation is the sparse purchase table of a single grade: port index to
// liters bought there. Each grade owns its table exclusively; there is no
// aliasing between grades.
type Allocation map[int]float64

// Clone returns an independent copy, supporting the clone/verify/commit
// pattern used by every merge attempt.
func (a Allocation) Clone() Allocation {
	out := make(Allocation, len(a))
	for port, liters := range a {
		out[port] = liters
	}
	return out
}

// Set records liters for a port, deleting the entry when the quantity drops
// to (or below) zero so the port no longer appears as a delivery point.
func (a Allocation) Set(port int, liters float64) {
	if liters <= minAllocationLiters {
		delete(a, port)
		return
	}
	a[port] = liters
}

// Add increases the quantity at a port.
func (a Allocation) Add(port int, liters float64) {
	a.Set(port, a[port]+liters)
}

// Total returns the summed liters across all ports.
func (a Allocation) Total() float64 {
	var sum float64
	for _, liters := range a {
		sum += liters
	}
	return sum
}

// Ports returns the allocated port indices in voyage order.
func (a Allocation) Ports() []int {
	ports := make([]int, 0, len(a))
	for port := range a {
		ports = append(ports, port)
	}
	sort.Ints(ports)
	return ports
}

// AllocationSet holds the three independent per-grade allocation tables that
// strategies and the consolidation post-processor operate on.
type AllocationSet map[shared.Grade]Allocation

// NewAllocationSet creates an empty table for every grade.
func NewAllocationSet() AllocationSet {
	set := make(AllocationSet, 3)
	for _, g := range shared.AllGrades() {
		set[g] = make(Allocation)
	}
	return set
}

// Clone deep-copies every grade's table.
func (s AllocationSet) Clone() AllocationSet {
	out := make(AllocationSet, len(s))
	for g, alloc := range s {
		out[g] = alloc.Clone()
	}
	return out
}

// TotalAt returns the liters purchased across all grades at one port.
func (s AllocationSet) TotalAt(port int) float64 {
	var sum float64
	for _, g := range shared.AllGrades() {
		sum += s[g][port]
	}
	return sum
}

// GradesAt returns, in canonical order, the grades with a purchase at port.
func (s AllocationSet) GradesAt(port int) []shared.Grade {
	var grades []shared.Grade
	for _, g := range shared.AllGrades() {
		if s[g][port] > minAllocationLiters {
			grades = append(grades, g)
		}
	}
	return grades
}

// DeliveryPorts returns, in voyage order, every port with a non-zero total
// purchase. Each is one delivery event.
func (s AllocationSet) DeliveryPorts() []int {
	seen := make(map[int]bool)
	for _, g := range shared.AllGrades() {
		for port, liters := range s[g] {
			if liters > minAllocationLiters {
				seen[port] = true
			}
		}
	}
	ports := make([]int, 0, len(seen))
	for port := range seen {
		ports = append(ports, port)
	}
	sort.Ints(ports)
	return ports
}
