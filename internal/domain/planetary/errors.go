package planetary

import (
	"fmt"
	"time"
)

// InvalidColonyError indicates a colony snapshot violates an invariant
type InvalidColonyError struct {
	ColonyID int64
	Reason   string
}

func (e *InvalidColonyError) Error() string {
	return fmt.Sprintf("invalid colony %d: %s", e.ColonyID, e.Reason)
}

// DuplicatePinError indicates two pins in a colony share an ID
type DuplicatePinError struct {
	ColonyID int64
	PinID    int64
}

func (e *DuplicatePinError) Error() string {
	return fmt.Sprintf("colony %d has duplicate pin %d", e.ColonyID, e.PinID)
}

// PinNotFoundError indicates a pin ID is not part of the colony
type PinNotFoundError struct {
	ColonyID int64
	PinID    int64
}

func (e *PinNotFoundError) Error() string {
	return fmt.Sprintf("pin %d not found in colony %d", e.PinID, e.ColonyID)
}

// RouteNotFoundError indicates a route ID is not part of the colony
type RouteNotFoundError struct {
	ColonyID int64
	RouteID  int64
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("route %d not found in colony %d", e.RouteID, e.ColonyID)
}

// SimTimeRegressionError indicates an attempt to move simulated time backwards
type SimTimeRegressionError struct {
	ColonyID  int64
	Current   time.Time
	Requested time.Time
}

func (e *SimTimeRegressionError) Error() string {
	return fmt.Sprintf("colony %d cannot move sim time back from %s to %s",
		e.ColonyID, e.Current.Format(time.RFC3339), e.Requested.Format(time.RFC3339))
}

// SimulationBudgetError indicates an advance processed more events than allowed
type SimulationBudgetError struct {
	ColonyID  int64
	MaxEvents int
	ReachedAt time.Time
}

func (e *SimulationBudgetError) Error() string {
	return fmt.Sprintf("colony %d simulation exceeded %d events (stopped at %s)",
		e.ColonyID, e.MaxEvents, e.ReachedAt.Format(time.RFC3339))
}

// ColonyNotFoundError indicates no snapshot is stored for the colony
type ColonyNotFoundError struct {
	ColonyID int64
}

func (e *ColonyNotFoundError) Error() string {
	return fmt.Sprintf("colony %d not found", e.ColonyID)
}
