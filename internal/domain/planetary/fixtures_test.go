package planetary_test

import (
	"time"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

var checkpoint = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

// Type IDs
const (
	typeExtractor     int32 = 2848
	typeFactory       int32 = 2474
	typeStorage       int32 = 2541
	typeLaunchpad     int32 = 2544
	typeCommandCenter int32 = 2524

	aqueousLiquids int32 = 2268
	water          int32 = 3645
	oxygen         int32 = 3683
)

func ptr[T any](v T) *T { return &v }

func newExtractor(id int64, now time.Time, active bool) *planetary.ExtractorPin {
	return &planetary.ExtractorPin{
		PinBase: planetary.PinBase{
			ID:       id,
			TypeID:   typeExtractor,
			IsActive: active,
		},
		InstallTime:   ptr(now.Add(-2 * time.Hour)),
		ExpiryTime:    ptr(now.Add(time.Hour)),
		CycleTime:     ptr(30 * time.Minute),
		ProductTypeID: ptr(aqueousLiquids),
		BaseValue:     ptr(6000),
	}
}

func waterSchematic() *planetary.Schematic {
	return &planetary.Schematic{
		ID:             121,
		Name:           "Water",
		CycleTime:      30 * time.Minute,
		Inputs:         map[int32]int{aqueousLiquids: 3000},
		OutputTypeID:   water,
		OutputQuantity: 20,
	}
}

func newFactory(id int64, active bool) *planetary.FactoryPin {
	return planetary.NewFactoryPin(
		planetary.PinBase{ID: id, TypeID: typeFactory, IsActive: active},
		waterSchematic(),
		false,
		false,
		nil,
	)
}

func newStorage(id int64, used float64) *planetary.StoragePin {
	return &planetary.StoragePin{PinBase: planetary.PinBase{ID: id, TypeID: typeStorage, CapacityUsed: used}}
}

func route(id, from, to int64, content int32, qty int) planetary.Route {
	return planetary.Route{ID: id, SourcePinID: from, DestinationPinID: to, ContentTypeID: content, Quantity: qty}
}

func testCatalog() *planetary.StaticCatalog {
	return planetary.NewStaticCatalog().
		WithCapacity(typeStorage, 12000).
		WithCapacity(typeLaunchpad, 10000).
		WithCapacity(typeCommandCenter, 500).
		WithVolume(aqueousLiquids, 0.01).
		WithVolume(water, 0.38).
		WithVolume(oxygen, 0.38)
}

func mustColony(pins []planetary.Pin, routes []planetary.Route) *planetary.Colony {
	c, err := planetary.NewColony(40000001, 90000001, 40100001, "temperate", 4,
		checkpoint, checkpoint, pins, nil, routes)
	if err != nil {
		panic(err)
	}
	return c
}
