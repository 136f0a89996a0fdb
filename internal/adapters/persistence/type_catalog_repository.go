package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// GormTypeCatalog implements planetary.TypeCatalogRepository using GORM
type GormTypeCatalog struct {
	db *gorm.DB
}

// NewGormTypeCatalog creates a new GORM type catalog
func NewGormTypeCatalog(db *gorm.DB) *GormTypeCatalog {
	return &GormTypeCatalog{db: db}
}

// Snapshot loads every known capacity and volume into an in-memory catalog
func (r *GormTypeCatalog) Snapshot(ctx context.Context) (*planetary.StaticCatalog, error) {
	var models []ItemTypeModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load type catalog: %w", err)
	}

	catalog := planetary.NewStaticCatalog()
	for _, model := range models {
		if model.Capacity != nil {
			catalog.WithCapacity(model.TypeID, *model.Capacity)
		}
		if model.Volume != nil {
			catalog.WithVolume(model.TypeID, *model.Volume)
		}
	}

	return catalog, nil
}

// SetCapacity records the storage capacity of a pin type
func (r *GormTypeCatalog) SetCapacity(ctx context.Context, typeID int32, capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("capacity for type %d must not be negative: %d", typeID, capacity)
	}
	return r.upsert(ctx, ItemTypeModel{TypeID: typeID, Capacity: &capacity}, "capacity")
}

// SetVolume records the unit volume of a commodity
func (r *GormTypeCatalog) SetVolume(ctx context.Context, typeID int32, volume float64) error {
	if volume <= 0 {
		return fmt.Errorf("volume for type %d must be positive: %v", typeID, volume)
	}
	return r.upsert(ctx, ItemTypeModel{TypeID: typeID, Volume: &volume}, "volume")
}

func (r *GormTypeCatalog) upsert(ctx context.Context, model ItemTypeModel, column string) error {
	model.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type_id"}},
		DoUpdates: clause.AssignmentColumns([]string{column, "updated_at"}),
	}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to save %s for type %d: %w", column, model.TypeID, result.Error)
	}
	return nil
}
