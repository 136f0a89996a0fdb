package planetary_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

func TestNewColony_RejectsCurrentBeforeCheckpoint(t *testing.T) {
	_, err := planetary.NewColony(1, 2, 3, "barren", 0,
		checkpoint, checkpoint.Add(-time.Second), nil, nil, nil)

	var invalid *planetary.InvalidColonyError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, int64(1), invalid.ColonyID)
}

func TestNewColony_RejectsDuplicatePins(t *testing.T) {
	_, err := planetary.NewColony(1, 2, 3, "barren", 0, checkpoint, checkpoint,
		[]planetary.Pin{newStorage(7, 0), newFactory(7, false)}, nil, nil)

	var dup *planetary.DuplicatePinError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, int64(7), dup.PinID)
}

func TestColony_ExtractingScenario(t *testing.T) {
	// Arrange
	extractor := newExtractor(1, checkpoint, true)
	storage := newStorage(4, 0)
	colony := mustColony(
		[]planetary.Pin{extractor, storage},
		[]planetary.Route{route(11, 1, 4, aqueousLiquids, 3000)},
	)

	// Act
	pinStatus := colony.PinStatus(extractor, testCatalog())
	status := colony.Status(testCatalog())

	// Assert
	assert.Equal(t, planetary.PinStatusExtracting, pinStatus)
	assert.Equal(t, planetary.ColonyStatusExtracting, status.Kind)
	assert.Equal(t, []int64{1}, pinIDs(status.Pins))
	assert.True(t, status.IsWorking())

	// Act - delete the route
	require.NoError(t, colony.RemoveRoute(11))

	// Assert
	assert.Equal(t, planetary.PinStatusOutputNotRouted, colony.PinStatus(extractor, testCatalog()))
	status = colony.Status(testCatalog())
	assert.Equal(t, planetary.ColonyStatusNotSetup, status.Kind)
	assert.Equal(t, []int64{1}, pinIDs(status.Pins))
}

func TestColony_StatusTracksRouteAndActivityChanges(t *testing.T) {
	factory := newFactory(2, false)
	colony := mustColony(
		[]planetary.Pin{newExtractor(1, checkpoint, false), factory, newStorage(4, 0)},
		[]planetary.Route{route(1, 1, 2, aqueousLiquids, 3000), route(2, 2, 4, water, 20)},
	)

	assert.Equal(t, planetary.ColonyStatusNeedsAttention, colony.Status(nil).Kind)

	require.NoError(t, colony.SetPinActive(1, true))
	assert.Equal(t, planetary.ColonyStatusExtracting, colony.Status(nil).Kind)

	require.NoError(t, colony.RemoveRoute(2))
	status := colony.Status(nil)
	assert.Equal(t, planetary.ColonyStatusNotSetup, status.Kind)
	assert.Equal(t, []int64{2}, pinIDs(status.Pins))
}

func TestColony_RouteEditing(t *testing.T) {
	colony := mustColony([]planetary.Pin{newExtractor(1, checkpoint, true), newStorage(4, 0)}, nil)

	err := colony.AddRoute(route(1, 1, 99, aqueousLiquids, 10))
	var notFound *planetary.PinNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, int64(99), notFound.PinID)

	require.NoError(t, colony.AddRoute(route(1, 1, 4, aqueousLiquids, 10)))
	assert.Error(t, colony.AddRoute(route(1, 1, 4, aqueousLiquids, 10)))
	assert.Len(t, colony.Routes(), 1)

	var routeErr *planetary.RouteNotFoundError
	assert.True(t, errors.As(colony.RemoveRoute(42), &routeErr))
}

func TestColony_SetCurrentSimTimeNeverRegresses(t *testing.T) {
	colony := mustColony(nil, nil)

	require.NoError(t, colony.SetCurrentSimTime(checkpoint.Add(time.Hour)))
	err := colony.SetCurrentSimTime(checkpoint)

	var regression *planetary.SimTimeRegressionError
	require.True(t, errors.As(err, &regression))
	assert.Equal(t, checkpoint.Add(time.Hour), colony.CurrentSimTime())
	assert.Equal(t, checkpoint, colony.CheckpointSimTime())
}

func TestColony_CloneIsIndependentDeepCopy(t *testing.T) {
	// Arrange
	extractor := newExtractor(1, checkpoint, true)
	extractor.Contents = map[int32]int{aqueousLiquids: 500}
	factory := newFactory(2, true)
	factory.LastCycleStartTime = ptr(checkpoint.Add(-10 * time.Minute))
	storage := newStorage(4, 100)
	cc := &planetary.CommandCenterPin{PinBase: planetary.PinBase{ID: 5, TypeID: typeCommandCenter}, Level: 4}
	pad := &planetary.LaunchpadPin{PinBase: planetary.PinBase{ID: 6, TypeID: typeLaunchpad, IsActive: true}}
	routes := []planetary.Route{
		{ID: 1, SourcePinID: 1, DestinationPinID: 2, ContentTypeID: aqueousLiquids, Quantity: 3000, Waypoints: []int64{5}},
	}
	original, err := planetary.NewColony(7, 8, 9, "oceanic", 2, checkpoint, checkpoint.Add(time.Hour),
		[]planetary.Pin{extractor, factory, storage, cc, pad},
		[]planetary.Link{{SourcePinID: 1, DestinationPinID: 5, Level: 1}},
		routes)
	require.NoError(t, err)

	// Act
	clone := original.Clone()

	// Assert - same values
	assert.NotSame(t, original, clone)
	assert.Equal(t, original.ID(), clone.ID())
	assert.Equal(t, original.CheckpointSimTime(), clone.CheckpointSimTime())
	assert.Equal(t, original.CurrentSimTime(), clone.CurrentSimTime())
	assert.Equal(t, original.Links(), clone.Links())
	assert.Equal(t, original.Routes(), clone.Routes())
	require.Len(t, clone.Pins(), 5)
	for i, pin := range clone.Pins() {
		src := original.Pins()[i]
		assert.NotSame(t, src, pin)
		assert.Equal(t, src.Kind(), pin.Kind())
		assert.Equal(t, src, pin, "pin %d", src.Base().ID)
	}

	// Assert - mutations on the clone do not leak
	require.NoError(t, clone.SetPinActive(1, false))
	clone.Pins()[0].Base().Contents[aqueousLiquids] = 1
	*clone.Pins()[0].(*planetary.ExtractorPin).ExpiryTime = checkpoint
	clone.Pins()[1].(*planetary.FactoryPin).Schematic.Inputs[aqueousLiquids] = 1
	clone.Routes()[0].Waypoints[0] = 99
	require.NoError(t, clone.RemoveRoute(1))

	assert.True(t, extractor.IsActive)
	assert.Equal(t, 500, extractor.Contents[aqueousLiquids])
	assert.Equal(t, checkpoint.Add(time.Hour), *extractor.ExpiryTime)
	assert.Equal(t, 3000, factory.Schematic.Inputs[aqueousLiquids])
	assert.Equal(t, []int64{5}, original.Routes()[0].Waypoints)
	assert.Len(t, original.Routes(), 1)
}

func TestColony_RoutesAreOwnedByColony(t *testing.T) {
	// Arrange
	routes := []planetary.Route{
		{ID: 1, SourcePinID: 1, DestinationPinID: 4, ContentTypeID: aqueousLiquids, Quantity: 3000, Waypoints: []int64{5, 6}},
	}
	colony := mustColony([]planetary.Pin{newExtractor(1, checkpoint, true), newStorage(4, 0)}, routes)

	// Act
	routes[0].Waypoints[0] = 99
	view := colony.Routes()
	view[0].Waypoints[1] = 77

	// Assert
	assert.Equal(t, []int64{5, 6}, colony.Routes()[0].Waypoints)
}

func TestColony_CloneRepairsFactoryStatus(t *testing.T) {
	factory := newFactory(2, true)
	colony := mustColony([]planetary.Pin{factory}, nil)
	require.Equal(t, planetary.PinStatusProducing, factory.RecordedStatus())

	// Flip activity on a clone, then clone again
	first := colony.Clone()
	require.NoError(t, first.SetPinActive(2, false))
	stale := first.Pins()[0].(*planetary.FactoryPin)
	assert.Equal(t, planetary.PinStatusProducing, stale.RecordedStatus())

	second := first.Clone()
	repaired := second.Pins()[0].(*planetary.FactoryPin)
	assert.False(t, repaired.IsActive)
	assert.Equal(t, planetary.PinStatusFactoryIdle, repaired.RecordedStatus())

	for _, f := range second.Factories() {
		assert.Equal(t, f.IsActive, f.RecordedStatus() == planetary.PinStatusProducing)
	}
}

func TestColony_Views(t *testing.T) {
	colony := mustColony([]planetary.Pin{
		newExtractor(1, checkpoint, true),
		newFactory(2, true),
		newFactory(3, false),
		newStorage(4, 0),
	}, nil)

	assert.Len(t, colony.Extractors(), 1)
	assert.Len(t, colony.Factories(), 2)

	pin, err := colony.FindPin(3)
	require.NoError(t, err)
	assert.Equal(t, planetary.PinKindFactory, pin.Kind())
	assert.False(t, planetary.IsPassive(pin))
}
