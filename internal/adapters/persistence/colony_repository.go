package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// GormColonyRepository implements planetary.ColonyRepository using GORM
type GormColonyRepository struct {
	db *gorm.DB
}

// NewGormColonyRepository creates a new GORM colony repository
func NewGormColonyRepository(db *gorm.DB) *GormColonyRepository {
	return &GormColonyRepository{db: db}
}

// FindByID retrieves a colony snapshot with its pins, routes and links
func (r *GormColonyRepository) FindByID(ctx context.Context, colonyID int64) (*planetary.Colony, error) {
	var model ColonyModel
	result := r.withChildren(r.db.WithContext(ctx)).Where("id = ?", colonyID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &planetary.ColonyNotFoundError{ColonyID: colonyID}
		}
		return nil, fmt.Errorf("failed to find colony: %w", result.Error)
	}

	return modelToColony(&model)
}

// FindByCharacter retrieves every colony owned by a character
func (r *GormColonyRepository) FindByCharacter(ctx context.Context, characterID int32) ([]*planetary.Colony, error) {
	var models []ColonyModel
	result := r.withChildren(r.db.WithContext(ctx)).
		Where("character_id = ?", characterID).
		Order("id").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list colonies: %w", result.Error)
	}

	colonies := make([]*planetary.Colony, 0, len(models))
	for i := range models {
		colony, err := modelToColony(&models[i])
		if err != nil {
			return nil, err
		}
		colonies = append(colonies, colony)
	}

	return colonies, nil
}

// Save replaces the stored snapshot of a colony in a single transaction
func (r *GormColonyRepository) Save(ctx context.Context, colony *planetary.Colony) error {
	model, schematics, err := colonyToModel(colony)
	if err != nil {
		return fmt.Errorf("failed to convert colony to model: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&model).Error; err != nil {
			return fmt.Errorf("failed to save colony: %w", err)
		}

		if err := deleteChildren(tx, model.ID); err != nil {
			return err
		}

		if len(schematics) > 0 {
			if err := tx.Create(&schematics).Error; err != nil {
				return fmt.Errorf("failed to save schematics: %w", err)
			}
		}
		if len(model.Pins) > 0 {
			if err := tx.Create(&model.Pins).Error; err != nil {
				return fmt.Errorf("failed to save pins: %w", err)
			}
		}
		if len(model.Routes) > 0 {
			if err := tx.Create(&model.Routes).Error; err != nil {
				return fmt.Errorf("failed to save routes: %w", err)
			}
		}
		if len(model.Links) > 0 {
			if err := tx.Create(&model.Links).Error; err != nil {
				return fmt.Errorf("failed to save links: %w", err)
			}
		}

		return nil
	})
}

// Delete removes a colony snapshot and everything it owns
func (r *GormColonyRepository) Delete(ctx context.Context, colonyID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, colonyID); err != nil {
			return err
		}

		result := tx.Where("id = ?", colonyID).Delete(&ColonyModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete colony: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return &planetary.ColonyNotFoundError{ColonyID: colonyID}
		}
		return nil
	})
}

func (r *GormColonyRepository) withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Pins", func(db *gorm.DB) *gorm.DB { return db.Order("pin_id") }).
		Preload("Routes", func(db *gorm.DB) *gorm.DB { return db.Order("route_id") }).
		Preload("Links", func(db *gorm.DB) *gorm.DB { return db.Order("source_pin_id, destination_pin_id") }).
		Preload("Schematics")
}

func modelsToSchematics(models []SchematicModel) (map[int32]*planetary.Schematic, error) {
	schematics := make(map[int32]*planetary.Schematic, len(models))
	for _, model := range models {
		var inputs map[int32]int
		if err := unmarshalJSON(model.Inputs, &inputs); err != nil {
			return nil, fmt.Errorf("invalid inputs for schematic %d: %w", model.ID, err)
		}
		schematics[model.ID] = &planetary.Schematic{
			ID:             model.ID,
			Name:           model.Name,
			CycleTime:      time.Duration(model.CycleSeconds) * time.Second,
			Inputs:         inputs,
			OutputTypeID:   model.OutputTypeID,
			OutputQuantity: model.OutputQuantity,
		}
	}
	return schematics, nil
}

func deleteChildren(tx *gorm.DB, colonyID int64) error {
	for _, child := range []interface{}{&PinModel{}, &RouteModel{}, &LinkModel{}, &SchematicModel{}} {
		if err := tx.Where("colony_id = ?", colonyID).Delete(child).Error; err != nil {
			return fmt.Errorf("failed to clear colony %d: %w", colonyID, err)
		}
	}
	return nil
}

// ============================================================================
// Domain -> model
// ============================================================================

func colonyToModel(colony *planetary.Colony) (ColonyModel, []SchematicModel, error) {
	model := ColonyModel{
		ID:                colony.ID(),
		CharacterID:       colony.CharacterID(),
		PlanetID:          colony.PlanetID(),
		PlanetType:        colony.PlanetType(),
		UpgradeLevel:      colony.UpgradeLevel(),
		CheckpointSimTime: colony.CheckpointSimTime().UTC(),
		CurrentSimTime:    colony.CurrentSimTime().UTC(),
	}

	rows := pinRows{colonyID: colony.ID(), schematics: make(map[int32]SchematicModel)}
	for _, pin := range colony.Pins() {
		row := planetary.MatchPin[PinModel](pin, &rows)
		if rows.err != nil {
			return ColonyModel{}, nil, rows.err
		}
		model.Pins = append(model.Pins, row)
	}

	for _, route := range colony.Routes() {
		waypoints, err := marshalJSON(route.Waypoints)
		if err != nil {
			return ColonyModel{}, nil, err
		}
		model.Routes = append(model.Routes, RouteModel{
			ColonyID:         colony.ID(),
			RouteID:          route.ID,
			SourcePinID:      route.SourcePinID,
			DestinationPinID: route.DestinationPinID,
			ContentTypeID:    route.ContentTypeID,
			Quantity:         route.Quantity,
			Waypoints:        waypoints,
		})
	}

	for _, link := range colony.Links() {
		model.Links = append(model.Links, LinkModel{
			ColonyID:         colony.ID(),
			SourcePinID:      link.SourcePinID,
			DestinationPinID: link.DestinationPinID,
			Level:            link.Level,
		})
	}

	schematics := make([]SchematicModel, 0, len(rows.schematics))
	for _, s := range rows.schematics {
		schematics = append(schematics, s)
	}

	return model, schematics, nil
}

// pinRows maps each pin variant onto a colony_pins row
type pinRows struct {
	colonyID   int64
	schematics map[int32]SchematicModel
	err        error
}

func (m *pinRows) base(kind planetary.PinKind, b *planetary.PinBase) PinModel {
	contents, err := marshalJSON(b.Contents)
	if err != nil && m.err == nil {
		m.err = fmt.Errorf("invalid contents for pin %d: %w", b.ID, err)
	}
	return PinModel{
		ColonyID:     m.colonyID,
		PinID:        b.ID,
		Kind:         string(kind),
		TypeID:       b.TypeID,
		Designator:   b.Designator,
		LastRunTime:  utcTime(b.LastRunTime),
		Contents:     contents,
		CapacityUsed: b.CapacityUsed,
		IsActive:     b.IsActive,
		Latitude:     b.Latitude,
		Longitude:    b.Longitude,
	}
}

func (m *pinRows) Extractor(p *planetary.ExtractorPin) PinModel {
	row := m.base(planetary.PinKindExtractor, &p.PinBase)
	row.InstallTime = utcTime(p.InstallTime)
	row.ExpiryTime = utcTime(p.ExpiryTime)
	if p.CycleTime != nil {
		seconds := int64(p.CycleTime.Seconds())
		row.CycleSeconds = &seconds
	}
	row.ProductTypeID = p.ProductTypeID
	row.BaseValue = p.BaseValue
	return row
}

func (m *pinRows) Factory(p *planetary.FactoryPin) PinModel {
	row := m.base(planetary.PinKindFactory, &p.PinBase)
	row.HasReceivedInputs = p.HasReceivedInputs
	row.ReceivedInputsLastCycle = p.ReceivedInputsLastCycle
	row.LastCycleStartTime = utcTime(p.LastCycleStartTime)

	if s := p.Schematic; s != nil {
		id := s.ID
		row.SchematicID = &id

		inputs, err := marshalJSON(s.Inputs)
		if err != nil && m.err == nil {
			m.err = fmt.Errorf("invalid inputs for schematic %d: %w", s.ID, err)
		}
		m.schematics[s.ID] = SchematicModel{
			ColonyID:       m.colonyID,
			ID:             s.ID,
			Name:           s.Name,
			CycleSeconds:   int64(s.CycleTime.Seconds()),
			Inputs:         inputs,
			OutputTypeID:   s.OutputTypeID,
			OutputQuantity: s.OutputQuantity,
		}
	}
	return row
}

func (m *pinRows) Storage(p *planetary.StoragePin) PinModel {
	return m.base(planetary.PinKindStorage, &p.PinBase)
}

func (m *pinRows) Launchpad(p *planetary.LaunchpadPin) PinModel {
	return m.base(planetary.PinKindLaunchpad, &p.PinBase)
}

func (m *pinRows) CommandCenter(p *planetary.CommandCenterPin) PinModel {
	row := m.base(planetary.PinKindCommandCenter, &p.PinBase)
	row.Level = p.Level
	return row
}

// ============================================================================
// Model -> domain
// ============================================================================

func modelToColony(model *ColonyModel) (*planetary.Colony, error) {
	schematics, err := modelsToSchematics(model.Schematics)
	if err != nil {
		return nil, fmt.Errorf("colony %d: %w", model.ID, err)
	}

	pins := make([]planetary.Pin, 0, len(model.Pins))
	for i := range model.Pins {
		pin, err := modelToPin(&model.Pins[i], schematics)
		if err != nil {
			return nil, fmt.Errorf("colony %d: %w", model.ID, err)
		}
		pins = append(pins, pin)
	}

	routes := make([]planetary.Route, 0, len(model.Routes))
	for _, row := range model.Routes {
		var waypoints []int64
		if err := unmarshalJSON(row.Waypoints, &waypoints); err != nil {
			return nil, fmt.Errorf("invalid waypoints for route %d: %w", row.RouteID, err)
		}
		routes = append(routes, planetary.Route{
			ID:               row.RouteID,
			SourcePinID:      row.SourcePinID,
			DestinationPinID: row.DestinationPinID,
			ContentTypeID:    row.ContentTypeID,
			Quantity:         row.Quantity,
			Waypoints:        waypoints,
		})
	}

	links := make([]planetary.Link, 0, len(model.Links))
	for _, row := range model.Links {
		links = append(links, planetary.Link{
			SourcePinID:      row.SourcePinID,
			DestinationPinID: row.DestinationPinID,
			Level:            row.Level,
		})
	}

	return planetary.NewColony(
		model.ID,
		model.CharacterID,
		model.PlanetID,
		model.PlanetType,
		model.UpgradeLevel,
		model.CheckpointSimTime.UTC(),
		model.CurrentSimTime.UTC(),
		pins,
		links,
		routes,
	)
}

func modelToPin(row *PinModel, schematics map[int32]*planetary.Schematic) (planetary.Pin, error) {
	var contents map[int32]int
	if err := unmarshalJSON(row.Contents, &contents); err != nil {
		return nil, fmt.Errorf("invalid contents for pin %d: %w", row.PinID, err)
	}

	base := planetary.PinBase{
		ID:           row.PinID,
		TypeID:       row.TypeID,
		Designator:   row.Designator,
		LastRunTime:  utcTime(row.LastRunTime),
		Contents:     contents,
		CapacityUsed: row.CapacityUsed,
		IsActive:     row.IsActive,
		Latitude:     row.Latitude,
		Longitude:    row.Longitude,
	}

	switch planetary.PinKind(row.Kind) {
	case planetary.PinKindExtractor:
		pin := &planetary.ExtractorPin{
			PinBase:       base,
			InstallTime:   utcTime(row.InstallTime),
			ExpiryTime:    utcTime(row.ExpiryTime),
			ProductTypeID: row.ProductTypeID,
			BaseValue:     row.BaseValue,
		}
		if row.CycleSeconds != nil {
			cycle := time.Duration(*row.CycleSeconds) * time.Second
			pin.CycleTime = &cycle
		}
		return pin, nil
	case planetary.PinKindFactory:
		var schematic *planetary.Schematic
		if row.SchematicID != nil {
			s, ok := schematics[*row.SchematicID]
			if !ok {
				return nil, fmt.Errorf("pin %d references unknown schematic %d", row.PinID, *row.SchematicID)
			}
			// each factory owns its own copy
			copied := *s
			copied.Inputs = maps.Clone(s.Inputs)
			schematic = &copied
		}
		return planetary.NewFactoryPin(base, schematic, row.HasReceivedInputs, row.ReceivedInputsLastCycle,
			utcTime(row.LastCycleStartTime)), nil
	case planetary.PinKindStorage:
		return &planetary.StoragePin{PinBase: base}, nil
	case planetary.PinKindLaunchpad:
		return &planetary.LaunchpadPin{PinBase: base}, nil
	case planetary.PinKindCommandCenter:
		return &planetary.CommandCenterPin{PinBase: base, Level: row.Level}, nil
	default:
		return nil, fmt.Errorf("pin %d has unknown kind %q", row.PinID, row.Kind)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func marshalJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalJSON(data string, v interface{}) error {
	if data == "" || data == "null" {
		return nil
	}
	return json.Unmarshal([]byte(data), v)
}

func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
