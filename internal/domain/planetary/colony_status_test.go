package planetary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

func withStatus(id int64, status planetary.PinStatus) planetary.PinWithStatus {
	return planetary.PinWithStatus{Pin: newStorage(id, 0), Status: status}
}

func pinIDs(pins []planetary.Pin) []int64 {
	ids := make([]int64, 0, len(pins))
	for _, p := range pins {
		ids = append(ids, p.Base().ID)
	}
	return ids
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		pins    []planetary.PinWithStatus
		want    planetary.ColonyStatusKind
		wantIDs []int64
	}{
		{
			name: "not setup outranks extracting",
			pins: []planetary.PinWithStatus{
				withStatus(1, planetary.PinStatusNotSetup),
				withStatus(2, planetary.PinStatusExtracting),
			},
			want:    planetary.ColonyStatusNotSetup,
			wantIDs: []int64{1},
		},
		{
			name: "routing faults count as not setup",
			pins: []planetary.PinWithStatus{
				withStatus(1, planetary.PinStatusInputNotRouted),
				withStatus(2, planetary.PinStatusExtractorExpired),
				withStatus(3, planetary.PinStatusOutputNotRouted),
			},
			want:    planetary.ColonyStatusNotSetup,
			wantIDs: []int64{1, 3},
		},
		{
			name: "alarms outrank activity",
			pins: []planetary.PinWithStatus{
				withStatus(1, planetary.PinStatusExtracting),
				withStatus(2, planetary.PinStatusExtractorInactive),
				withStatus(3, planetary.PinStatusStorageFull),
				withStatus(4, planetary.PinStatusExtractorExpired),
			},
			want:    planetary.ColonyStatusNeedsAttention,
			wantIDs: []int64{2, 3, 4},
		},
		{
			name: "extracting outranks producing",
			pins: []planetary.PinWithStatus{
				withStatus(1, planetary.PinStatusProducing),
				withStatus(2, planetary.PinStatusExtracting),
				withStatus(3, planetary.PinStatusStatic),
			},
			want:    planetary.ColonyStatusExtracting,
			wantIDs: []int64{2},
		},
		{
			name: "producing",
			pins: []planetary.PinWithStatus{
				withStatus(1, planetary.PinStatusProducing),
				withStatus(2, planetary.PinStatusFactoryIdle),
				withStatus(3, planetary.PinStatusProducing),
			},
			want:    planetary.ColonyStatusProducing,
			wantIDs: []int64{1, 3},
		},
		{
			name: "idle factories and storage",
			pins: []planetary.PinWithStatus{
				withStatus(1, planetary.PinStatusFactoryIdle),
				withStatus(2, planetary.PinStatusStatic),
			},
			want:    planetary.ColonyStatusIdle,
			wantIDs: []int64{},
		},
		{
			name:    "no pins",
			pins:    nil,
			want:    planetary.ColonyStatusIdle,
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := planetary.Classify(tt.pins)

			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, tt.wantIDs, pinIDs(got.Pins))
		})
	}
}

func TestClassify_AllStaticIsIdleWithEmptyPins(t *testing.T) {
	pins := []planetary.PinWithStatus{
		withStatus(1, planetary.PinStatusStatic),
		withStatus(2, planetary.PinStatusStatic),
	}

	got := planetary.Classify(pins)

	assert.Equal(t, planetary.ColonyStatusIdle, got.Kind)
	require.NotNil(t, got.Pins)
	assert.Empty(t, got.Pins)
	assert.False(t, got.IsWorking())
}

func TestColonyStatusKind_Ordering(t *testing.T) {
	order := []planetary.ColonyStatusKind{
		planetary.ColonyStatusNotSetup,
		planetary.ColonyStatusNeedsAttention,
		planetary.ColonyStatusIdle,
		planetary.ColonyStatusProducing,
		planetary.ColonyStatusExtracting,
	}

	for i := range order {
		for j := range order {
			assert.Equal(t, i < j, order[i].Less(order[j]), "%s < %s", order[i], order[j])
		}
	}
}

func TestColonyStatusKind_IsWorking(t *testing.T) {
	assert.False(t, planetary.ColonyStatusNotSetup.IsWorking())
	assert.False(t, planetary.ColonyStatusNeedsAttention.IsWorking())
	assert.False(t, planetary.ColonyStatusIdle.IsWorking())
	assert.True(t, planetary.ColonyStatusProducing.IsWorking())
	assert.True(t, planetary.ColonyStatusExtracting.IsWorking())
}

func TestParseColonyStatusKind(t *testing.T) {
	kind, err := planetary.ParseColonyStatusKind("NEEDS_ATTENTION")
	require.NoError(t, err)
	assert.Equal(t, planetary.ColonyStatusNeedsAttention, kind)

	_, err = planetary.ParseColonyStatusKind("BROKEN")
	assert.Error(t, err)
}
