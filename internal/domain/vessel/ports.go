package vessel

import "context"

// VesselRepository provides access to persisted vessel master data.
// Implemented by the persistence adapter; the planning core never touches it.
type VesselRepository interface {
	FindByIMO(ctx context.Context, imo string) (*Vessel, error)
	ListAll(ctx context.Context) ([]*Vessel, error)
	Save(ctx context.Context, v *Vessel) error
}
