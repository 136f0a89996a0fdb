package dtos

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// ColonySnapshot is the JSON interchange form of a colony, used by import and export
type ColonySnapshot struct {
	ColonyID          int64            `json:"colony_id" validate:"required"`
	CharacterID       int32            `json:"character_id" validate:"required"`
	PlanetID          int32            `json:"planet_id" validate:"required"`
	PlanetType        string           `json:"planet_type" validate:"required"`
	UpgradeLevel      int              `json:"upgrade_level" validate:"min=0,max=5"`
	CheckpointSimTime time.Time        `json:"checkpoint_sim_time" validate:"required"`
	CurrentSimTime    *time.Time       `json:"current_sim_time,omitempty"`
	Pins              []PinSnapshot    `json:"pins" validate:"dive"`
	Links             []LinkSnapshot   `json:"links" validate:"dive"`
	Routes            []RouteSnapshot  `json:"routes" validate:"dive"`
	Catalog           *CatalogSnapshot `json:"catalog,omitempty"`
}

// PinSnapshot holds the shared pin fields plus at most one variant section
type PinSnapshot struct {
	PinID        int64         `json:"pin_id" validate:"required"`
	Kind         string        `json:"kind" validate:"required,oneof=EXTRACTOR FACTORY STORAGE LAUNCHPAD COMMAND_CENTER"`
	TypeID       int32         `json:"type_id" validate:"required"`
	Designator   string        `json:"designator,omitempty"`
	LastRunTime  *time.Time    `json:"last_run_time,omitempty"`
	Contents     map[int32]int `json:"contents,omitempty"`
	CapacityUsed float64       `json:"capacity_used" validate:"min=0"`
	IsActive     bool          `json:"is_active"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`

	Extractor     *ExtractorDetails     `json:"extractor_details,omitempty"`
	Factory       *FactoryDetails       `json:"factory_details,omitempty"`
	CommandCenter *CommandCenterDetails `json:"command_center_details,omitempty"`
}

// ExtractorDetails is the extractor program; every field is optional until installed
type ExtractorDetails struct {
	InstallTime   *time.Time `json:"install_time,omitempty"`
	ExpiryTime    *time.Time `json:"expiry_time,omitempty"`
	CycleSeconds  *int64     `json:"cycle_time,omitempty" validate:"omitempty,min=1"`
	ProductTypeID *int32     `json:"product_type_id,omitempty"`
	BaseValue     *int       `json:"qty_per_cycle,omitempty" validate:"omitempty,min=0"`
}

// FactoryDetails is a factory's recipe and cycle state
type FactoryDetails struct {
	Schematic               *SchematicSnapshot `json:"schematic,omitempty"`
	HasReceivedInputs       bool               `json:"has_received_inputs"`
	ReceivedInputsLastCycle bool               `json:"received_inputs_last_cycle"`
	LastCycleStartTime      *time.Time         `json:"last_cycle_start,omitempty"`
}

// SchematicSnapshot is a factory recipe
type SchematicSnapshot struct {
	SchematicID    int32         `json:"schematic_id" validate:"required"`
	Name           string        `json:"name"`
	CycleSeconds   int64         `json:"cycle_time" validate:"min=1"`
	Inputs         map[int32]int `json:"inputs"`
	OutputTypeID   int32         `json:"output_type_id" validate:"required"`
	OutputQuantity int           `json:"output_quantity" validate:"min=1"`
}

// CommandCenterDetails carries the command center level
type CommandCenterDetails struct {
	Level int `json:"level" validate:"min=0"`
}

// LinkSnapshot is a physical link between two pins
type LinkSnapshot struct {
	SourcePinID      int64 `json:"source_pin_id" validate:"required"`
	DestinationPinID int64 `json:"destination_pin_id" validate:"required"`
	Level            int   `json:"link_level" validate:"min=0"`
}

// RouteSnapshot is a commodity route
type RouteSnapshot struct {
	RouteID          int64   `json:"route_id" validate:"required"`
	SourcePinID      int64   `json:"source_pin_id" validate:"required"`
	DestinationPinID int64   `json:"destination_pin_id" validate:"required"`
	ContentTypeID    int32   `json:"content_type_id" validate:"required"`
	Quantity         int     `json:"quantity" validate:"min=1"`
	Waypoints        []int64 `json:"waypoints"`
}

// CatalogSnapshot carries type capacities and volumes to import with a colony
type CatalogSnapshot struct {
	Capacities map[int32]int     `json:"capacities,omitempty"`
	Volumes    map[int32]float64 `json:"volumes,omitempty"`
}

var snapshotValidator = validator.New()

// Validate checks the snapshot's structural constraints
func (s *ColonySnapshot) Validate() error {
	if err := snapshotValidator.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			first := validationErrors[0]
			return fmt.Errorf("invalid colony snapshot: %s failed '%s' validation", first.Namespace(), first.Tag())
		}
		return fmt.Errorf("invalid colony snapshot: %w", err)
	}
	return nil
}

// ToDomain validates the snapshot and builds the colony it describes.
// A missing current sim time defaults to the checkpoint.
func (s *ColonySnapshot) ToDomain() (*planetary.Colony, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	pins := make([]planetary.Pin, 0, len(s.Pins))
	for _, ps := range s.Pins {
		pin, err := ps.toDomain()
		if err != nil {
			return nil, err
		}
		pins = append(pins, pin)
	}

	links := make([]planetary.Link, 0, len(s.Links))
	for _, l := range s.Links {
		links = append(links, planetary.Link{SourcePinID: l.SourcePinID, DestinationPinID: l.DestinationPinID, Level: l.Level})
	}

	routes := make([]planetary.Route, 0, len(s.Routes))
	for _, r := range s.Routes {
		routes = append(routes, planetary.Route{
			ID:               r.RouteID,
			SourcePinID:      r.SourcePinID,
			DestinationPinID: r.DestinationPinID,
			ContentTypeID:    r.ContentTypeID,
			Quantity:         r.Quantity,
			Waypoints:        slices.Clone(r.Waypoints),
		})
	}

	current := s.CheckpointSimTime
	if s.CurrentSimTime != nil {
		current = *s.CurrentSimTime
	}

	return planetary.NewColony(s.ColonyID, s.CharacterID, s.PlanetID, s.PlanetType, s.UpgradeLevel,
		s.CheckpointSimTime.UTC(), current.UTC(), pins, links, routes)
}

func (ps PinSnapshot) toDomain() (planetary.Pin, error) {
	base := planetary.PinBase{
		ID:           ps.PinID,
		TypeID:       ps.TypeID,
		Designator:   ps.Designator,
		LastRunTime:  ps.LastRunTime,
		Contents:     maps.Clone(ps.Contents),
		CapacityUsed: ps.CapacityUsed,
		IsActive:     ps.IsActive,
		Latitude:     ps.Latitude,
		Longitude:    ps.Longitude,
	}

	switch planetary.PinKind(ps.Kind) {
	case planetary.PinKindExtractor:
		extractor := &planetary.ExtractorPin{PinBase: base}
		if d := ps.Extractor; d != nil {
			extractor.InstallTime = d.InstallTime
			extractor.ExpiryTime = d.ExpiryTime
			extractor.ProductTypeID = d.ProductTypeID
			extractor.BaseValue = d.BaseValue
			if d.CycleSeconds != nil {
				cycle := time.Duration(*d.CycleSeconds) * time.Second
				extractor.CycleTime = &cycle
			}
		}
		return extractor, nil

	case planetary.PinKindFactory:
		var (
			schematic           *planetary.Schematic
			received, lastCycle bool
			cycleStart          *time.Time
		)
		if d := ps.Factory; d != nil {
			received, lastCycle, cycleStart = d.HasReceivedInputs, d.ReceivedInputsLastCycle, d.LastCycleStartTime
			if d.Schematic != nil {
				schematic = &planetary.Schematic{
					ID:             d.Schematic.SchematicID,
					Name:           d.Schematic.Name,
					CycleTime:      time.Duration(d.Schematic.CycleSeconds) * time.Second,
					Inputs:         maps.Clone(d.Schematic.Inputs),
					OutputTypeID:   d.Schematic.OutputTypeID,
					OutputQuantity: d.Schematic.OutputQuantity,
				}
			}
		}
		return planetary.NewFactoryPin(base, schematic, received, lastCycle, cycleStart), nil

	case planetary.PinKindStorage:
		return &planetary.StoragePin{PinBase: base}, nil

	case planetary.PinKindLaunchpad:
		return &planetary.LaunchpadPin{PinBase: base}, nil

	case planetary.PinKindCommandCenter:
		cc := &planetary.CommandCenterPin{PinBase: base}
		if ps.CommandCenter != nil {
			cc.Level = ps.CommandCenter.Level
		}
		return cc, nil

	default:
		return nil, fmt.Errorf("pin %d has unknown kind %q", ps.PinID, ps.Kind)
	}
}

// NewColonySnapshot exports a colony in interchange form
func NewColonySnapshot(colony *planetary.Colony) *ColonySnapshot {
	current := colony.CurrentSimTime()
	snapshot := &ColonySnapshot{
		ColonyID:          colony.ID(),
		CharacterID:       colony.CharacterID(),
		PlanetID:          colony.PlanetID(),
		PlanetType:        colony.PlanetType(),
		UpgradeLevel:      colony.UpgradeLevel(),
		CheckpointSimTime: colony.CheckpointSimTime(),
		CurrentSimTime:    &current,
	}

	for _, pin := range colony.Pins() {
		snapshot.Pins = append(snapshot.Pins, planetary.MatchPin[PinSnapshot](pin, pinExporter{}))
	}
	for _, l := range colony.Links() {
		snapshot.Links = append(snapshot.Links, LinkSnapshot{SourcePinID: l.SourcePinID, DestinationPinID: l.DestinationPinID, Level: l.Level})
	}
	for _, r := range colony.Routes() {
		snapshot.Routes = append(snapshot.Routes, RouteSnapshot{
			RouteID:          r.ID,
			SourcePinID:      r.SourcePinID,
			DestinationPinID: r.DestinationPinID,
			ContentTypeID:    r.ContentTypeID,
			Quantity:         r.Quantity,
			Waypoints:        slices.Clone(r.Waypoints),
		})
	}
	return snapshot
}

type pinExporter struct{}

func exportBase(pin planetary.Pin) PinSnapshot {
	base := pin.Base()
	return PinSnapshot{
		PinID:        base.ID,
		Kind:         string(pin.Kind()),
		TypeID:       base.TypeID,
		Designator:   base.Designator,
		LastRunTime:  base.LastRunTime,
		Contents:     maps.Clone(base.Contents),
		CapacityUsed: base.CapacityUsed,
		IsActive:     base.IsActive,
		Latitude:     base.Latitude,
		Longitude:    base.Longitude,
	}
}

func (pinExporter) Extractor(p *planetary.ExtractorPin) PinSnapshot {
	out := exportBase(p)
	details := &ExtractorDetails{
		InstallTime:   p.InstallTime,
		ExpiryTime:    p.ExpiryTime,
		ProductTypeID: p.ProductTypeID,
		BaseValue:     p.BaseValue,
	}
	if p.CycleTime != nil {
		seconds := int64(p.CycleTime.Seconds())
		details.CycleSeconds = &seconds
	}
	out.Extractor = details
	return out
}

func (pinExporter) Factory(p *planetary.FactoryPin) PinSnapshot {
	out := exportBase(p)
	out.Factory = &FactoryDetails{
		HasReceivedInputs:       p.HasReceivedInputs,
		ReceivedInputsLastCycle: p.ReceivedInputsLastCycle,
		LastCycleStartTime:      p.LastCycleStartTime,
	}
	if s := p.Schematic; s != nil {
		out.Factory.Schematic = &SchematicSnapshot{
			SchematicID:    s.ID,
			Name:           s.Name,
			CycleSeconds:   int64(s.CycleTime.Seconds()),
			Inputs:         maps.Clone(s.Inputs),
			OutputTypeID:   s.OutputTypeID,
			OutputQuantity: s.OutputQuantity,
		}
	}
	return out
}

func (pinExporter) Storage(p *planetary.StoragePin) PinSnapshot     { return exportBase(p) }
func (pinExporter) Launchpad(p *planetary.LaunchpadPin) PinSnapshot { return exportBase(p) }

func (pinExporter) CommandCenter(p *planetary.CommandCenterPin) PinSnapshot {
	out := exportBase(p)
	out.CommandCenter = &CommandCenterDetails{Level: p.Level}
	return out
}
