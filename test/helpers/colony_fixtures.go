package helpers

import (
	"time"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// Type ids used by colony fixtures
const (
	ExtractorTypeID     int32 = 2848
	FactoryTypeID       int32 = 2474
	StorageTypeID       int32 = 2541
	LaunchpadTypeID     int32 = 2544
	CommandCenterTypeID int32 = 2524

	AqueousLiquidsTypeID int32 = 2268
	WaterTypeID          int32 = 3645
)

// FixtureCheckpoint is the snapshot time of every fixture colony
var FixtureCheckpoint = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

// FixtureCatalog returns capacities and volumes matching the fixture type ids
func FixtureCatalog() *planetary.StaticCatalog {
	return planetary.NewStaticCatalog().
		WithCapacity(StorageTypeID, 12000).
		WithCapacity(LaunchpadTypeID, 10000).
		WithCapacity(CommandCenterTypeID, 500).
		WithVolume(AqueousLiquidsTypeID, 0.01).
		WithVolume(WaterTypeID, 0.38)
}

// NewProductionChainColony builds extractor(1) -> factory(2) -> storage(4)
// plus a command center(5) linked to the extractor. The extractor expires one
// hour after the checkpoint; the factory is idle.
func NewProductionChainColony(colonyID int64, characterID int32) (*planetary.Colony, error) {
	install := FixtureCheckpoint.Add(-2 * time.Hour)
	expiry := FixtureCheckpoint.Add(time.Hour)
	cycle := 30 * time.Minute
	product := AqueousLiquidsTypeID
	baseValue := 6000

	extractor := &planetary.ExtractorPin{
		PinBase: planetary.PinBase{
			ID:         1,
			TypeID:     ExtractorTypeID,
			Designator: "ECU",
			IsActive:   true,
			Latitude:   1.12,
			Longitude:  2.34,
		},
		InstallTime:   &install,
		ExpiryTime:    &expiry,
		CycleTime:     &cycle,
		ProductTypeID: &product,
		BaseValue:     &baseValue,
	}

	factory := planetary.NewFactoryPin(
		planetary.PinBase{ID: 2, TypeID: FactoryTypeID, Designator: "BIF"},
		&planetary.Schematic{
			ID:             126,
			Name:           "Water",
			CycleTime:      30 * time.Minute,
			Inputs:         map[int32]int{AqueousLiquidsTypeID: 3000},
			OutputTypeID:   WaterTypeID,
			OutputQuantity: 20,
		},
		false, false, nil,
	)

	storage := &planetary.StoragePin{
		PinBase: planetary.PinBase{
			ID:           4,
			TypeID:       StorageTypeID,
			Contents:     map[int32]int{WaterTypeID: 100},
			CapacityUsed: 38,
		},
	}

	commandCenter := &planetary.CommandCenterPin{
		PinBase: planetary.PinBase{ID: 5, TypeID: CommandCenterTypeID},
		Level:   3,
	}

	return planetary.NewColony(colonyID, characterID, 40000001, "temperate", 3,
		FixtureCheckpoint, FixtureCheckpoint,
		[]planetary.Pin{extractor, factory, storage, commandCenter},
		[]planetary.Link{{SourcePinID: 5, DestinationPinID: 1, Level: 0}},
		[]planetary.Route{
			{ID: 1, SourcePinID: 1, DestinationPinID: 2, ContentTypeID: AqueousLiquidsTypeID, Quantity: 3000, Waypoints: []int64{}},
			{ID: 2, SourcePinID: 2, DestinationPinID: 4, ContentTypeID: WaterTypeID, Quantity: 20, Waypoints: []int64{5}},
		},
	)
}
