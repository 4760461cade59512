package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/oceanline/lubeplan-go/internal/domain/shared"
	"github.com/oceanline/lubeplan-go/internal/domain/vessel"
)

// GormVesselRepository implements vessel.VesselRepository using GORM
type GormVesselRepository struct {
	db *gorm.DB
}

// NewGormVesselRepository creates a new GORM vessel repository
func NewGormVesselRepository(db *gorm.DB) *GormVesselRepository {
	return &GormVesselRepository{db: db}
}

// FindByIMO retrieves a vessel by its IMO number
func (r *GormVesselRepository) FindByIMO(ctx context.Context, imo string) (*vessel.Vessel, error) {
	var model VesselModel
	result := r.db.WithContext(ctx).Where("imo = ?", imo).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("vessel not found: %s", imo)
		}
		return nil, fmt.Errorf("failed to find vessel: %w", result.Error)
	}
	return r.modelToVessel(&model)
}

// ListAll retrieves every vessel in the fleet
func (r *GormVesselRepository) ListAll(ctx context.Context) ([]*vessel.Vessel, error) {
	var models []VesselModel
	result := r.db.WithContext(ctx).Order("imo").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list vessels: %w", result.Error)
	}

	vessels := make([]*vessel.Vessel, 0, len(models))
	for i := range models {
		v, err := r.modelToVessel(&models[i])
		if err != nil {
			continue // Skip rows with unusable grade data
		}
		vessels = append(vessels, v)
	}
	return vessels, nil
}

// Save upserts a vessel's master data
func (r *GormVesselRepository) Save(ctx context.Context, v *vessel.Vessel) error {
	model, err := r.vesselToModel(v)
	if err != nil {
		return fmt.Errorf("failed to convert vessel to model: %w", err)
	}
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save vessel: %w", result.Error)
	}
	return nil
}

func (r *GormVesselRepository) modelToVessel(model *VesselModel) (*vessel.Vessel, error) {
	var grades map[shared.Grade]vessel.GradeConfig
	if err := json.Unmarshal([]byte(model.GradesJSON), &grades); err != nil {
		return nil, fmt.Errorf("invalid grade configuration for vessel %s: %w", model.IMO, err)
	}
	return vessel.NewVessel(model.IMO, model.Name, grades)
}

func (r *GormVesselRepository) vesselToModel(v *vessel.Vessel) (*VesselModel, error) {
	bytes, err := json.Marshal(v.Grades)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal grade configuration: %w", err)
	}
	return &VesselModel{
		IMO:        v.IMO,
		Name:       v.Name,
		GradesJSON: string(bytes),
	}, nil
}
