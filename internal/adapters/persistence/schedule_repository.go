package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/oceanline/lubeplan-go/internal/domain/schedule"
)

// GormScheduleRepository implements schedule.ScheduleRepository using GORM
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewGormScheduleRepository creates a new GORM schedule repository
func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// VoyageForVessel retrieves the persisted rotation for a vessel
func (r *GormScheduleRepository) VoyageForVessel(ctx context.Context, imo string) (schedule.Voyage, error) {
	var model ScheduleModel
	result := r.db.WithContext(ctx).Where("vessel_imo = ?", imo).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no schedule for vessel: %s", imo)
		}
		return nil, fmt.Errorf("failed to find schedule: %w", result.Error)
	}

	var voyage schedule.Voyage
	if err := json.Unmarshal([]byte(model.VoyageJSON), &voyage); err != nil {
		return nil, fmt.Errorf("invalid schedule data for vessel %s: %w", imo, err)
	}
	return voyage, nil
}

// Save upserts a vessel's rotation
func (r *GormScheduleRepository) Save(ctx context.Context, imo string, v schedule.Voyage) error {
	bytes, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}
	result := r.db.WithContext(ctx).Save(&ScheduleModel{
		VesselIMO:  imo,
		VoyageJSON: string(bytes),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to save schedule: %w", result.Error)
	}
	return nil
}
