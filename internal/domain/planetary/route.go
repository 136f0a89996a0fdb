package planetary

import "slices"

// Route moves a commodity from one pin to another every cycle.
// Routes reference pins by ID and never own them.
type Route struct {
	ID               int64
	SourcePinID      int64
	DestinationPinID int64
	ContentTypeID    int32
	Quantity         int
	Waypoints        []int64 // intermediate pins, in travel order
}

func (r Route) clone() Route {
	out := r
	out.Waypoints = slices.Clone(r.Waypoints)
	return out
}

func cloneRoutes(routes []Route) []Route {
	if routes == nil {
		return nil
	}
	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		out = append(out, r.clone())
	}
	return out
}

// Link is a topology edge between two pins. It carries no commodities.
type Link struct {
	SourcePinID      int64
	DestinationPinID int64
	Level            int
}

// Connects reports whether the link joins the two pins, in either direction
func (l Link) Connects(a, b int64) bool {
	return (l.SourcePinID == a && l.DestinationPinID == b) ||
		(l.SourcePinID == b && l.DestinationPinID == a)
}

// RoutedState tells whether a pin's required inputs and outputs are routed
type RoutedState string

const (
	RoutedStateRouted          RoutedState = "ROUTED"
	RoutedStateInputNotRouted  RoutedState = "INPUT_NOT_ROUTED"
	RoutedStateOutputNotRouted RoutedState = "OUTPUT_NOT_ROUTED"
)

// RoutedStateOf checks the pin's connections against the route set.
// Missing inputs are reported ahead of a missing output.
func RoutedStateOf(pin Pin, routes []Route) RoutedState {
	return MatchPin[RoutedState](pin, routingRules{routes: routes})
}

// IncomingRoutes returns the routes whose destination is the pin
func IncomingRoutes(pinID int64, routes []Route) []Route {
	var out []Route
	for _, r := range routes {
		if r.DestinationPinID == pinID {
			out = append(out, r)
		}
	}
	return out
}

// OutgoingRoutes returns the routes whose source is the pin
func OutgoingRoutes(pinID int64, routes []Route) []Route {
	var out []Route
	for _, r := range routes {
		if r.SourcePinID == pinID {
			out = append(out, r)
		}
	}
	return out
}

func hasIncomingRoute(pinID int64, routes []Route) bool {
	return slices.ContainsFunc(routes, func(r Route) bool { return r.DestinationPinID == pinID })
}

func contentTypes(routes []Route) map[int32]struct{} {
	types := make(map[int32]struct{}, len(routes))
	for _, r := range routes {
		types[r.ContentTypeID] = struct{}{}
	}
	return types
}

type routingRules struct {
	routes []Route
}

func (r routingRules) Extractor(p *ExtractorPin) RoutedState {
	if len(OutgoingRoutes(p.ID, r.routes)) == 0 {
		return RoutedStateOutputNotRouted
	}
	return RoutedStateRouted
}

func (r routingRules) Factory(p *FactoryPin) RoutedState {
	if p.Schematic == nil {
		return RoutedStateRouted
	}

	incoming := contentTypes(IncomingRoutes(p.ID, r.routes))
	for inputType := range p.Schematic.Inputs {
		if _, ok := incoming[inputType]; !ok {
			return RoutedStateInputNotRouted
		}
	}

	outgoing := contentTypes(OutgoingRoutes(p.ID, r.routes))
	if _, ok := outgoing[p.Schematic.OutputTypeID]; !ok {
		return RoutedStateOutputNotRouted
	}

	return RoutedStateRouted
}

func (r routingRules) Storage(*StoragePin) RoutedState             { return RoutedStateRouted }
func (r routingRules) Launchpad(*LaunchpadPin) RoutedState         { return RoutedStateRouted }
func (r routingRules) CommandCenter(*CommandCenterPin) RoutedState { return RoutedStateRouted }
