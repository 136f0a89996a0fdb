package persistence

import (
	"time"
)

// ColonyModel represents the colonies table
type ColonyModel struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	CharacterID       int32     `gorm:"column:character_id;not null;index"`
	PlanetID          int32     `gorm:"column:planet_id;not null"`
	PlanetType        string    `gorm:"column:planet_type;not null"`
	UpgradeLevel      int       `gorm:"column:upgrade_level;not null;default:0"`
	CheckpointSimTime time.Time `gorm:"column:checkpoint_sim_time;not null"`
	CurrentSimTime    time.Time `gorm:"column:current_sim_time;not null"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`

	Pins   []PinModel   `gorm:"foreignKey:ColonyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Routes []RouteModel `gorm:"foreignKey:ColonyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Links  []LinkModel  `gorm:"foreignKey:ColonyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Schematics []SchematicModel `gorm:"foreignKey:ColonyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (ColonyModel) TableName() string {
	return "colonies"
}

// PinModel represents the colony_pins table.
// One row per pin; the kind column selects which variant columns apply.
type PinModel struct {
	ColonyID     int64      `gorm:"column:colony_id;primaryKey;autoIncrement:false"`
	PinID        int64      `gorm:"column:pin_id;primaryKey;autoIncrement:false"`
	Kind         string     `gorm:"column:kind;not null"`
	TypeID       int32      `gorm:"column:type_id;not null"`
	Designator   string     `gorm:"column:designator"`
	LastRunTime  *time.Time `gorm:"column:last_run_time"`
	Contents     string     `gorm:"column:contents;type:text"` // JSON object type_id -> quantity
	CapacityUsed float64    `gorm:"column:capacity_used;not null;default:0"`
	IsActive     bool       `gorm:"column:is_active;not null;default:false"`
	Latitude     float64    `gorm:"column:latitude"`
	Longitude    float64    `gorm:"column:longitude"`

	// Extractor
	InstallTime   *time.Time `gorm:"column:install_time"`
	ExpiryTime    *time.Time `gorm:"column:expiry_time"`
	CycleSeconds  *int64     `gorm:"column:cycle_seconds"`
	ProductTypeID *int32     `gorm:"column:product_type_id"`
	BaseValue     *int       `gorm:"column:base_value"`

	// Factory
	SchematicID             *int32     `gorm:"column:schematic_id"`
	HasReceivedInputs       bool       `gorm:"column:has_received_inputs;not null;default:false"`
	ReceivedInputsLastCycle bool       `gorm:"column:received_inputs_last_cycle;not null;default:false"`
	LastCycleStartTime      *time.Time `gorm:"column:last_cycle_start_time"`

	// Command center
	Level int `gorm:"column:level;not null;default:0"`
}

func (PinModel) TableName() string {
	return "colony_pins"
}

// RouteModel represents the colony_routes table
type RouteModel struct {
	ColonyID         int64  `gorm:"column:colony_id;primaryKey;autoIncrement:false"`
	RouteID          int64  `gorm:"column:route_id;primaryKey;autoIncrement:false"`
	SourcePinID      int64  `gorm:"column:source_pin_id;not null"`
	DestinationPinID int64  `gorm:"column:destination_pin_id;not null"`
	ContentTypeID    int32  `gorm:"column:content_type_id;not null"`
	Quantity         int    `gorm:"column:quantity;not null"`
	Waypoints        string `gorm:"column:waypoints;type:text"` // JSON array of pin ids
}

func (RouteModel) TableName() string {
	return "colony_routes"
}

// LinkModel represents the colony_links table
type LinkModel struct {
	ColonyID         int64 `gorm:"column:colony_id;primaryKey;autoIncrement:false"`
	SourcePinID      int64 `gorm:"column:source_pin_id;primaryKey;autoIncrement:false"`
	DestinationPinID int64 `gorm:"column:destination_pin_id;primaryKey;autoIncrement:false"`
	Level            int   `gorm:"column:level;not null;default:0"`
}

func (LinkModel) TableName() string {
	return "colony_links"
}

// SchematicModel represents the schematics table. Each colony keeps its own
// copy of a recipe, so saving one colony never rewrites another's factories.
type SchematicModel struct {
	ColonyID       int64  `gorm:"column:colony_id;primaryKey;autoIncrement:false"`
	ID             int32  `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name           string `gorm:"column:name;not null"`
	CycleSeconds   int64  `gorm:"column:cycle_seconds;not null"`
	Inputs         string `gorm:"column:inputs;type:text"` // JSON object type_id -> quantity
	OutputTypeID   int32  `gorm:"column:output_type_id;not null"`
	OutputQuantity int    `gorm:"column:output_quantity;not null"`
}

func (SchematicModel) TableName() string {
	return "schematics"
}

// ItemTypeModel represents the item_types table: pin capacities and commodity volumes
type ItemTypeModel struct {
	TypeID    int32     `gorm:"column:type_id;primaryKey;autoIncrement:false"`
	Capacity  *int      `gorm:"column:capacity"`
	Volume    *float64  `gorm:"column:volume"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ItemTypeModel) TableName() string {
	return "item_types"
}
