package shared_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/colonysim-go/internal/domain/shared"
)

func TestFixedClock_AdvanceOnlyMovesForward(t *testing.T) {
	start := time.Date(2025, 1, 15, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	clock := shared.NewFixedClock(start)

	clock.Advance(30 * time.Minute)
	clock.Advance(-time.Hour)

	assert.Equal(t, time.UTC, clock.Now().Location())
	assert.True(t, start.Add(30*time.Minute).Equal(clock.Now()))
}

func TestWallClock_ReturnsUTC(t *testing.T) {
	before := time.Now()

	now := shared.NewWallClock().Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.False(t, now.Before(before.Truncate(time.Second)))
}
