package dtos

import (
	"time"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// ColonySummary is one row of a colony listing
type ColonySummary struct {
	ColonyID       int64     `json:"colony_id"`
	CharacterID    int32     `json:"character_id"`
	PlanetID       int32     `json:"planet_id"`
	PlanetType     string    `json:"planet_type"`
	Status         string    `json:"status"`
	ProblemPinIDs  []int64   `json:"problem_pin_ids,omitempty"`
	PinCount       int       `json:"pin_count"`
	CurrentSimTime time.Time `json:"current_sim_time"`
}

// NewColonySummary summarizes a colony with its derived status.
// ProblemPinIDs lists the pins responsible for a non-working status.
func NewColonySummary(colony *planetary.Colony, status planetary.ColonyStatus) ColonySummary {
	summary := ColonySummary{
		ColonyID:       colony.ID(),
		CharacterID:    colony.CharacterID(),
		PlanetID:       colony.PlanetID(),
		PlanetType:     colony.PlanetType(),
		Status:         status.Kind.String(),
		PinCount:       len(colony.Pins()),
		CurrentSimTime: colony.CurrentSimTime(),
	}
	if !status.IsWorking() {
		for _, pin := range status.Pins {
			summary.ProblemPinIDs = append(summary.ProblemPinIDs, pin.Base().ID)
		}
	}
	return summary
}

// PinStatusView is a pin with its derived status, flattened for output
type PinStatusView struct {
	PinID        int64         `json:"pin_id"`
	Kind         string        `json:"kind"`
	TypeID       int32         `json:"type_id"`
	Designator   string        `json:"designator,omitempty"`
	Status       string        `json:"status"`
	IsActive     bool          `json:"is_active"`
	Contents     map[int32]int `json:"contents,omitempty"`
	CapacityUsed float64       `json:"capacity_used"`
	ExpiryTime   *time.Time    `json:"expiry_time,omitempty"`
}

// NewPinStatusViews flattens pins and statuses in colony order
func NewPinStatusViews(pins []planetary.PinWithStatus) []PinStatusView {
	views := make([]PinStatusView, 0, len(pins))
	for _, ps := range pins {
		base := ps.Pin.Base()
		view := PinStatusView{
			PinID:        base.ID,
			Kind:         string(ps.Pin.Kind()),
			TypeID:       base.TypeID,
			Designator:   base.Designator,
			Status:       string(ps.Status),
			IsActive:     base.IsActive,
			Contents:     base.Contents,
			CapacityUsed: base.CapacityUsed,
		}
		if extractor, ok := ps.Pin.(*planetary.ExtractorPin); ok {
			view.ExpiryTime = extractor.ExpiryTime
		}
		views = append(views, view)
	}
	return views
}
