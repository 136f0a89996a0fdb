package planetary_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

func TestPinStatusOf_Extractor(t *testing.T) {
	now := checkpoint
	routed := []planetary.Route{route(1, 1, 2, aqueousLiquids, 3000)}

	tests := []struct {
		name   string
		mutate func(p *planetary.ExtractorPin)
		routes []planetary.Route
		want   planetary.PinStatus
	}{
		{"active and routed", func(p *planetary.ExtractorPin) {}, routed, planetary.PinStatusExtracting},
		{"inactive and routed", func(p *planetary.ExtractorPin) { p.IsActive = false }, routed, planetary.PinStatusExtractorInactive},
		{"not routed", func(p *planetary.ExtractorPin) {}, nil, planetary.PinStatusOutputNotRouted},
		{"missing install time", func(p *planetary.ExtractorPin) { p.InstallTime = nil }, routed, planetary.PinStatusNotSetup},
		{"missing expiry time", func(p *planetary.ExtractorPin) { p.ExpiryTime = nil }, routed, planetary.PinStatusNotSetup},
		{"missing cycle time", func(p *planetary.ExtractorPin) { p.CycleTime = nil }, routed, planetary.PinStatusNotSetup},
		{"missing product", func(p *planetary.ExtractorPin) { p.ProductTypeID = nil }, routed, planetary.PinStatusNotSetup},
		{"missing base value", func(p *planetary.ExtractorPin) { p.BaseValue = nil }, routed, planetary.PinStatusNotSetup},
		{"expired exactly now", func(p *planetary.ExtractorPin) { p.ExpiryTime = ptr(now) }, routed, planetary.PinStatusExtractorExpired},
		{"expired and not routed", func(p *planetary.ExtractorPin) { p.ExpiryTime = ptr(now.Add(-time.Minute)) }, nil, planetary.PinStatusExtractorExpired},
		{"expired and inactive", func(p *planetary.ExtractorPin) {
			p.ExpiryTime = ptr(now.Add(-time.Minute))
			p.IsActive = false
		}, routed, planetary.PinStatusExtractorExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pin := newExtractor(1, now, true)
			tt.mutate(pin)

			assert.Equal(t, tt.want, planetary.PinStatusOf(pin, now, tt.routes, nil))
		})
	}
}

func TestPinStatusOf_Factory(t *testing.T) {
	routed := []planetary.Route{
		route(1, 1, 2, aqueousLiquids, 3000),
		route(2, 2, 3, water, 20),
	}

	assert.Equal(t, planetary.PinStatusProducing, planetary.PinStatusOf(newFactory(2, true), checkpoint, routed, nil))
	assert.Equal(t, planetary.PinStatusFactoryIdle, planetary.PinStatusOf(newFactory(2, false), checkpoint, routed, nil))
	assert.Equal(t, planetary.PinStatusInputNotRouted, planetary.PinStatusOf(newFactory(2, true), checkpoint, nil, nil))
	assert.Equal(t, planetary.PinStatusOutputNotRouted, planetary.PinStatusOf(newFactory(2, true), checkpoint, routed[:1], nil))

	bare := planetary.NewFactoryPin(planetary.PinBase{ID: 2, IsActive: true}, nil, false, false, nil)
	assert.Equal(t, planetary.PinStatusNotSetup, planetary.PinStatusOf(bare, checkpoint, routed, nil))
}

func TestPinStatusOf_Passive(t *testing.T) {
	catalog := testCatalog()
	into := []planetary.Route{route(1, 1, 4, aqueousLiquids, 3000)}
	out := []planetary.Route{route(1, 4, 2, aqueousLiquids, 3000)}

	tests := []struct {
		name    string
		pin     planetary.Pin
		routes  []planetary.Route
		catalog planetary.CapacityLookup
		want    planetary.PinStatus
	}{
		{"storage with room", newStorage(4, 100), into, catalog, planetary.PinStatusStatic},
		{"full storage fed by a route", newStorage(4, 12000), into, catalog, planetary.PinStatusStorageFull},
		{"overfull storage fed by a route", newStorage(4, 12500), into, catalog, planetary.PinStatusStorageFull},
		{"full storage without incoming route", newStorage(4, 12000), out, catalog, planetary.PinStatusStatic},
		{"full storage with unknown capacity", newStorage(4, 12000), into, planetary.NewStaticCatalog(), planetary.PinStatusStatic},
		{"full storage with nil catalog", newStorage(4, 12000), into, nil, planetary.PinStatusStatic},
		{"zero capacity type", newStorage(4, 12000), into, planetary.NewStaticCatalog().WithCapacity(typeStorage, 0), planetary.PinStatusStatic},
		{"full launchpad", &planetary.LaunchpadPin{PinBase: planetary.PinBase{ID: 4, TypeID: typeLaunchpad, CapacityUsed: 10000}}, into, catalog, planetary.PinStatusStorageFull},
		{"full command center", &planetary.CommandCenterPin{PinBase: planetary.PinBase{ID: 4, TypeID: typeCommandCenter, CapacityUsed: 500}, Level: 5}, into, catalog, planetary.PinStatusStorageFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, planetary.PinStatusOf(tt.pin, checkpoint, tt.routes, tt.catalog))
		})
	}
}

func TestPinStatusOf_Idempotent(t *testing.T) {
	catalog := testCatalog()
	routes := []planetary.Route{
		route(1, 1, 2, aqueousLiquids, 3000),
		route(2, 2, 4, water, 20),
	}
	pins := []planetary.Pin{newExtractor(1, checkpoint, true), newFactory(2, false), newStorage(4, 12000)}

	for _, pin := range pins {
		first := planetary.PinStatusOf(pin, checkpoint, routes, catalog)
		second := planetary.PinStatusOf(pin, checkpoint, routes, catalog)
		assert.Equal(t, first, second, "pin %d", pin.Base().ID)
	}
}
