package planetary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

func TestRoutedStateOf(t *testing.T) {
	extractor := newExtractor(1, checkpoint, true)
	factory := newFactory(2, true)
	bare := planetary.NewFactoryPin(planetary.PinBase{ID: 3}, nil, false, false, nil)
	storage := newStorage(4, 0)

	tests := []struct {
		name   string
		pin    planetary.Pin
		routes []planetary.Route
		want   planetary.RoutedState
	}{
		{"extractor with outgoing route", extractor, []planetary.Route{route(1, 1, 2, aqueousLiquids, 3000)}, planetary.RoutedStateRouted},
		{"extractor with only incoming route", extractor, []planetary.Route{route(1, 4, 1, aqueousLiquids, 10)}, planetary.RoutedStateOutputNotRouted},
		{"extractor without routes", extractor, nil, planetary.RoutedStateOutputNotRouted},
		{"factory fully routed", factory, []planetary.Route{
			route(1, 1, 2, aqueousLiquids, 3000),
			route(2, 2, 4, water, 20),
		}, planetary.RoutedStateRouted},
		{"factory missing output", factory, []planetary.Route{route(1, 1, 2, aqueousLiquids, 3000)}, planetary.RoutedStateOutputNotRouted},
		{"factory missing input and output", factory, nil, planetary.RoutedStateInputNotRouted},
		{"factory input of wrong commodity", factory, []planetary.Route{
			route(1, 1, 2, oxygen, 3000),
			route(2, 2, 4, water, 20),
		}, planetary.RoutedStateInputNotRouted},
		{"factory output of wrong commodity", factory, []planetary.Route{
			route(1, 1, 2, aqueousLiquids, 3000),
			route(2, 2, 4, oxygen, 20),
		}, planetary.RoutedStateOutputNotRouted},
		{"factory without schematic", bare, nil, planetary.RoutedStateRouted},
		{"storage", storage, nil, planetary.RoutedStateRouted},
		{"launchpad", &planetary.LaunchpadPin{PinBase: planetary.PinBase{ID: 5}}, nil, planetary.RoutedStateRouted},
		{"command center", &planetary.CommandCenterPin{PinBase: planetary.PinBase{ID: 6}}, nil, planetary.RoutedStateRouted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, planetary.RoutedStateOf(tt.pin, tt.routes))
		})
	}
}

func TestRoutedStateOf_PartialInputsReportInput(t *testing.T) {
	// Arrange
	factory := planetary.NewFactoryPin(planetary.PinBase{ID: 10}, &planetary.Schematic{
		Inputs:         map[int32]int{water: 40, oxygen: 40},
		OutputTypeID:   9832,
		OutputQuantity: 5,
	}, false, false, nil)
	routes := []planetary.Route{route(1, 1, 10, water, 40)}

	// Act
	state := planetary.RoutedStateOf(factory, routes)

	// Assert
	assert.Equal(t, planetary.RoutedStateInputNotRouted, state)
}

func TestRoutedStateOf_DoesNotMutateRoutes(t *testing.T) {
	routes := []planetary.Route{
		{ID: 1, SourcePinID: 1, DestinationPinID: 2, ContentTypeID: aqueousLiquids, Quantity: 3000, Waypoints: []int64{4}},
	}
	before := append([]planetary.Route(nil), routes...)

	planetary.RoutedStateOf(newFactory(2, true), routes)

	assert.Equal(t, before, routes)
}

func TestLinkConnects(t *testing.T) {
	link := planetary.Link{SourcePinID: 1, DestinationPinID: 2, Level: 0}

	assert.True(t, link.Connects(1, 2))
	assert.True(t, link.Connects(2, 1))
	assert.False(t, link.Connects(1, 3))
}
