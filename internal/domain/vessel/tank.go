package vessel

// TankConfig describes the storage tank for a single oil grade.
//
// All volumes are liters. MaxFillFraction caps how full the tank may be
// loaded (head space for thermal expansion); the planner treats
// CapacityLiters × MaxFillFraction as the usable ceiling when sizing orders.
type TankConfig struct {
	// Total tank capacity in liters
	CapacityLiters float64

	// Fraction of capacity that may actually be filled (0-1, default 1.0)
	MaxFillFraction float64

	// Minimum safe remaining-on-board level in liters. For cylinder oil this
	// arrives pre-derived from trailing consumption history; for system oils
	// it is a fixed configured floor.
	MinimumROBLiters float64
}

// UsableCapacity returns the effective fill ceiling in liters.
func (t TankConfig) UsableCapacity() float64 {
	if t.MaxFillFraction <= 0 || t.MaxFillFraction > 1 {
		return t.CapacityLiters
	}
	return t.CapacityLiters * t.MaxFillFraction
}

// Headroom returns how many liters can still be loaded on top of the given
// ROB without exceeding the usable ceiling. Never negative.
func (t TankConfig) Headroom(rob float64) float64 {
	room := t.UsableCapacity() - rob
	if room < 0 {
		return 0
	}
	return room
}
