package schedule

import "context"

// ScheduleRepository provides the persisted port rotation and price table for
// a vessel. Implemented by the persistence adapter; prices arrive already
// merged onto the stops.
type ScheduleRepository interface {
	VoyageForVessel(ctx context.Context, imo string) (Voyage, error)
	Save(ctx context.Context, imo string, v Voyage) error
}
