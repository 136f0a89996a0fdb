package planetary

import (
	"fmt"
	"slices"
	"time"
)

// Colony is the aggregate root of a planetary colony. It exclusively owns its
// pins, links and routes.
//
// checkpointSimTime is when the authoritative state was captured;
// currentSimTime is the locally simulated "now" and never precedes it.
type Colony struct {
	id           int64
	characterID  int32
	planetID     int32
	planetType   string
	upgradeLevel int

	checkpointSimTime time.Time
	currentSimTime    time.Time

	links  []Link
	pins   []Pin
	routes []Route
}

// NewColony creates a colony from a snapshot, validating its invariants
func NewColony(
	id int64,
	characterID int32,
	planetID int32,
	planetType string,
	upgradeLevel int,
	checkpointSimTime time.Time,
	currentSimTime time.Time,
	pins []Pin,
	links []Link,
	routes []Route,
) (*Colony, error) {
	if currentSimTime.Before(checkpointSimTime) {
		return nil, &InvalidColonyError{
			ColonyID: id,
			Reason: fmt.Sprintf("current sim time %s precedes checkpoint %s",
				currentSimTime.Format(time.RFC3339), checkpointSimTime.Format(time.RFC3339)),
		}
	}

	seen := make(map[int64]struct{}, len(pins))
	for _, pin := range pins {
		if pin == nil {
			return nil, &InvalidColonyError{ColonyID: id, Reason: "nil pin"}
		}
		pinID := pin.Base().ID
		if _, dup := seen[pinID]; dup {
			return nil, &DuplicatePinError{ColonyID: id, PinID: pinID}
		}
		seen[pinID] = struct{}{}
	}

	return &Colony{
		id:                id,
		characterID:       characterID,
		planetID:          planetID,
		planetType:        planetType,
		upgradeLevel:      upgradeLevel,
		checkpointSimTime: checkpointSimTime,
		currentSimTime:    currentSimTime,
		pins:              slices.Clone(pins),
		links:             slices.Clone(links),
		routes:            cloneRoutes(routes),
	}, nil
}

// Getters

func (c *Colony) ID() int64                    { return c.id }
func (c *Colony) CharacterID() int32           { return c.characterID }
func (c *Colony) PlanetID() int32              { return c.planetID }
func (c *Colony) PlanetType() string           { return c.planetType }
func (c *Colony) UpgradeLevel() int            { return c.upgradeLevel }
func (c *Colony) CheckpointSimTime() time.Time { return c.checkpointSimTime }
func (c *Colony) CurrentSimTime() time.Time    { return c.currentSimTime }
func (c *Colony) Pins() []Pin                  { return slices.Clone(c.pins) }
func (c *Colony) Links() []Link                { return slices.Clone(c.links) }
func (c *Colony) Routes() []Route              { return cloneRoutes(c.routes) }

// FindPin returns the pin with the given ID
func (c *Colony) FindPin(pinID int64) (Pin, error) {
	for _, pin := range c.pins {
		if pin.Base().ID == pinID {
			return pin, nil
		}
	}
	return nil, &PinNotFoundError{ColonyID: c.id, PinID: pinID}
}

// Extractors returns the colony's extractor pins
func (c *Colony) Extractors() []*ExtractorPin {
	var out []*ExtractorPin
	for _, pin := range c.pins {
		if p, ok := pin.(*ExtractorPin); ok {
			out = append(out, p)
		}
	}
	return out
}

// Factories returns the colony's factory pins
func (c *Colony) Factories() []*FactoryPin {
	var out []*FactoryPin
	for _, pin := range c.pins {
		if p, ok := pin.(*FactoryPin); ok {
			out = append(out, p)
		}
	}
	return out
}

// SetPinActive flips a pin's activity flag. A factory's recorded status is
// brought back in line by the next Clone.
func (c *Colony) SetPinActive(pinID int64, active bool) error {
	pin, err := c.FindPin(pinID)
	if err != nil {
		return err
	}
	pin.Base().IsActive = active
	return nil
}

// AddRoute adds a route between two pins of the colony
func (c *Colony) AddRoute(route Route) error {
	if _, err := c.FindPin(route.SourcePinID); err != nil {
		return err
	}
	if _, err := c.FindPin(route.DestinationPinID); err != nil {
		return err
	}
	if slices.ContainsFunc(c.routes, func(r Route) bool { return r.ID == route.ID }) {
		return &InvalidColonyError{ColonyID: c.id, Reason: fmt.Sprintf("duplicate route %d", route.ID)}
	}
	c.routes = append(c.routes, route.clone())
	return nil
}

// RemoveRoute deletes a route by ID
func (c *Colony) RemoveRoute(routeID int64) error {
	idx := slices.IndexFunc(c.routes, func(r Route) bool { return r.ID == routeID })
	if idx < 0 {
		return &RouteNotFoundError{ColonyID: c.id, RouteID: routeID}
	}
	c.routes = slices.Delete(c.routes, idx, idx+1)
	return nil
}

// SetCurrentSimTime moves simulated time forward
func (c *Colony) SetCurrentSimTime(t time.Time) error {
	if t.Before(c.currentSimTime) {
		return &SimTimeRegressionError{ColonyID: c.id, Current: c.currentSimTime, Requested: t}
	}
	c.currentSimTime = t
	return nil
}

// PinStatus derives one pin's status at the colony's current sim time
func (c *Colony) PinStatus(pin Pin, catalog CapacityLookup) PinStatus {
	return PinStatusOf(pin, c.currentSimTime, c.routes, catalog)
}

// PinStatuses derives every pin's status at the colony's current sim time
func (c *Colony) PinStatuses(catalog CapacityLookup) []PinWithStatus {
	out := make([]PinWithStatus, 0, len(c.pins))
	for _, pin := range c.pins {
		out = append(out, PinWithStatus{Pin: pin, Status: c.PinStatus(pin, catalog)})
	}
	return out
}

// Status classifies the colony at its current sim time. It is recomputed on
// every call.
func (c *Colony) Status(catalog CapacityLookup) ColonyStatus {
	return Classify(c.PinStatuses(catalog))
}

// Clone returns an independent deep copy of the colony. Sim times are carried
// over unchanged.
func (c *Colony) Clone() *Colony {
	pins := make([]Pin, 0, len(c.pins))
	for _, pin := range c.pins {
		pins = append(pins, ClonePin(pin))
	}

	return &Colony{
		id:                c.id,
		characterID:       c.characterID,
		planetID:          c.planetID,
		planetType:        c.planetType,
		upgradeLevel:      c.upgradeLevel,
		checkpointSimTime: c.checkpointSimTime,
		currentSimTime:    c.currentSimTime,
		pins:              pins,
		links:             slices.Clone(c.links),
		routes:            cloneRoutes(c.routes),
	}
}

// ClonePin returns a deep copy of a pin of the same variant. A factory's
// recorded status is recomputed from IsActive rather than copied.
func ClonePin(pin Pin) Pin {
	return MatchPin[Pin](pin, pinCloner{})
}

type pinCloner struct{}

func (pinCloner) Extractor(p *ExtractorPin) Pin {
	out := &ExtractorPin{
		PinBase:     p.PinBase.clone(),
		InstallTime: cloneTime(p.InstallTime),
		ExpiryTime:  cloneTime(p.ExpiryTime),
	}
	if p.CycleTime != nil {
		cycle := *p.CycleTime
		out.CycleTime = &cycle
	}
	if p.ProductTypeID != nil {
		product := *p.ProductTypeID
		out.ProductTypeID = &product
	}
	if p.BaseValue != nil {
		baseValue := *p.BaseValue
		out.BaseValue = &baseValue
	}
	return out
}

func (pinCloner) Factory(p *FactoryPin) Pin {
	return NewFactoryPin(
		p.PinBase.clone(),
		p.Schematic.clone(),
		p.HasReceivedInputs,
		p.ReceivedInputsLastCycle,
		cloneTime(p.LastCycleStartTime),
	)
}

func (pinCloner) Storage(p *StoragePin) Pin {
	return &StoragePin{PinBase: p.PinBase.clone()}
}

func (pinCloner) Launchpad(p *LaunchpadPin) Pin {
	return &LaunchpadPin{PinBase: p.PinBase.clone()}
}

func (pinCloner) CommandCenter(p *CommandCenterPin) Pin {
	return &CommandCenterPin{PinBase: p.PinBase.clone(), Level: p.Level}
}
