package dtos_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonysim-go/internal/application/colony/dtos"
	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
	"github.com/andrescamacho/colonysim-go/test/helpers"
)

func TestColonySnapshot_ExportImportPreservesColony(t *testing.T) {
	colony, err := helpers.NewProductionChainColony(101, 90000001)
	require.NoError(t, err)

	raw, err := json.Marshal(dtos.NewColonySnapshot(colony))
	require.NoError(t, err)

	var snapshot dtos.ColonySnapshot
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	imported, err := snapshot.ToDomain()
	require.NoError(t, err)

	catalog := helpers.FixtureCatalog()
	assert.Equal(t, colony.Status(catalog).Kind, imported.Status(catalog).Kind)
	assert.Equal(t, colony.Routes(), imported.Routes())
	assert.Equal(t, colony.Links(), imported.Links())

	extractor := imported.Extractors()[0]
	assert.Equal(t, 30*time.Minute, *extractor.CycleTime)
	assert.Equal(t, 6000, *extractor.BaseValue)

	factory := imported.Factories()[0]
	assert.Equal(t, map[int32]int{helpers.AqueousLiquidsTypeID: 3000}, factory.Schematic.Inputs)
	assert.Equal(t, planetary.PinStatusFactoryIdle, factory.RecordedStatus())

	cc, err := imported.FindPin(5)
	require.NoError(t, err)
	assert.Equal(t, 3, cc.(*planetary.CommandCenterPin).Level)
}

func TestColonySnapshot_DoesNotShareStateWithColony(t *testing.T) {
	// Arrange
	colony, err := helpers.NewProductionChainColony(101, 90000001)
	require.NoError(t, err)
	exported := dtos.NewColonySnapshot(colony)
	imported, err := exported.ToDomain()
	require.NoError(t, err)

	// Act
	for i := range exported.Pins {
		ps := &exported.Pins[i]
		if ps.Contents != nil {
			ps.Contents[helpers.WaterTypeID] = -1
		}
		if ps.Factory != nil && ps.Factory.Schematic != nil {
			ps.Factory.Schematic.Inputs[helpers.AqueousLiquidsTypeID] = -1
		}
	}
	exported.Routes[1].Waypoints[0] = 99

	// Assert
	for _, c := range []*planetary.Colony{colony, imported} {
		storage, err := c.FindPin(4)
		require.NoError(t, err)
		assert.Equal(t, 100, storage.Base().Contents[helpers.WaterTypeID])
		assert.Equal(t, 3000, c.Factories()[0].Schematic.Inputs[helpers.AqueousLiquidsTypeID])
		assert.Equal(t, []int64{5}, c.Routes()[1].Waypoints)
	}
}

func TestColonySnapshot_CurrentSimTimeDefaultsToCheckpoint(t *testing.T) {
	snapshot := dtos.ColonySnapshot{
		ColonyID:          7,
		CharacterID:       1,
		PlanetID:          2,
		PlanetType:        "barren",
		CheckpointSimTime: helpers.FixtureCheckpoint,
	}

	colony, err := snapshot.ToDomain()

	require.NoError(t, err)
	assert.True(t, helpers.FixtureCheckpoint.Equal(colony.CurrentSimTime()))
	assert.Equal(t, planetary.ColonyStatusIdle, colony.Status(nil).Kind)
}

func TestColonySnapshot_RejectsInvalidInput(t *testing.T) {
	valid := func() dtos.ColonySnapshot {
		return dtos.ColonySnapshot{
			ColonyID:          7,
			CharacterID:       1,
			PlanetID:          2,
			PlanetType:        "barren",
			CheckpointSimTime: helpers.FixtureCheckpoint,
			Pins:              []dtos.PinSnapshot{{PinID: 1, Kind: "STORAGE", TypeID: helpers.StorageTypeID}},
			Routes:            []dtos.RouteSnapshot{{RouteID: 1, SourcePinID: 1, DestinationPinID: 1, ContentTypeID: 3645, Quantity: 5}},
		}
	}
	before := helpers.FixtureCheckpoint.Add(-time.Hour)

	tests := []struct {
		name   string
		mutate func(s *dtos.ColonySnapshot)
	}{
		{"missing planet type", func(s *dtos.ColonySnapshot) { s.PlanetType = "" }},
		{"unknown pin kind", func(s *dtos.ColonySnapshot) { s.Pins[0].Kind = "REFINERY" }},
		{"zero route quantity", func(s *dtos.ColonySnapshot) { s.Routes[0].Quantity = 0 }},
		{"current before checkpoint", func(s *dtos.ColonySnapshot) { s.CurrentSimTime = &before }},
		{"duplicate pin", func(s *dtos.ColonySnapshot) { s.Pins = append(s.Pins, s.Pins[0]) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := valid()
			tt.mutate(&snapshot)

			_, err := snapshot.ToDomain()

			assert.Error(t, err)
		})
	}
}

func TestNewColonySummary(t *testing.T) {
	colony, err := helpers.NewProductionChainColony(101, 90000001)
	require.NoError(t, err)
	require.NoError(t, colony.RemoveRoute(2))

	summary := dtos.NewColonySummary(colony, colony.Status(helpers.FixtureCatalog()))

	assert.Equal(t, "NOT_SETUP", summary.Status)
	assert.Equal(t, []int64{2}, summary.ProblemPinIDs)
	assert.Equal(t, 4, summary.PinCount)
}
