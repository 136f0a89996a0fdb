package planetary

import "time"

// PinStatus is the state of a single facility, derived on demand
type PinStatus string

const (
	PinStatusNotSetup          PinStatus = "NOT_SETUP"
	PinStatusInputNotRouted    PinStatus = "INPUT_NOT_ROUTED"
	PinStatusOutputNotRouted   PinStatus = "OUTPUT_NOT_ROUTED"
	PinStatusExtractorExpired  PinStatus = "EXTRACTOR_EXPIRED"
	PinStatusExtractorInactive PinStatus = "EXTRACTOR_INACTIVE"
	PinStatusStorageFull       PinStatus = "STORAGE_FULL"
	PinStatusExtracting        PinStatus = "EXTRACTING"
	PinStatusProducing         PinStatus = "PRODUCING"
	PinStatusFactoryIdle       PinStatus = "FACTORY_IDLE"
	PinStatusStatic            PinStatus = "STATIC"
)

// PinStatusOf derives a pin's status at the given time.
//
// Extractors check setup, then expiry, then routing, then activity.
// Factories check setup, then routing, then activity. Passive pins are
// StorageFull when they have no free space and something routes into them;
// a nil catalog or unknown capacity leaves them Static.
func PinStatusOf(pin Pin, now time.Time, routes []Route, catalog CapacityLookup) PinStatus {
	return MatchPin[PinStatus](pin, statusRules{now: now, routes: routes, catalog: catalog})
}

// PinWithStatus pairs a pin with its derived status
type PinWithStatus struct {
	Pin    Pin
	Status PinStatus
}

type statusRules struct {
	now     time.Time
	routes  []Route
	catalog CapacityLookup
}

func (s statusRules) Extractor(p *ExtractorPin) PinStatus {
	if !p.IsSetup() {
		return PinStatusNotSetup
	}
	if !p.ExpiryTime.After(s.now) {
		return PinStatusExtractorExpired
	}
	if fault, ok := routingFault(p, s.routes); ok {
		return fault
	}
	if p.IsActive {
		return PinStatusExtracting
	}
	return PinStatusExtractorInactive
}

func (s statusRules) Factory(p *FactoryPin) PinStatus {
	if !p.IsSetup() {
		return PinStatusNotSetup
	}
	if fault, ok := routingFault(p, s.routes); ok {
		return fault
	}
	return factoryActivityStatus(p.IsActive)
}

func (s statusRules) Storage(p *StoragePin) PinStatus             { return s.passive(&p.PinBase) }
func (s statusRules) Launchpad(p *LaunchpadPin) PinStatus         { return s.passive(&p.PinBase) }
func (s statusRules) CommandCenter(p *CommandCenterPin) PinStatus { return s.passive(&p.PinBase) }

func (s statusRules) passive(b *PinBase) PinStatus {
	capacity, ok := lookupCapacity(s.catalog, b.TypeID)
	if !ok || capacity <= 0 {
		return PinStatusStatic
	}

	freeSpace := max(float64(capacity)-b.CapacityUsed, 0)
	if freeSpace == 0 && hasIncomingRoute(b.ID, s.routes) {
		return PinStatusStorageFull
	}
	return PinStatusStatic
}

func routingFault(pin Pin, routes []Route) (PinStatus, bool) {
	switch RoutedStateOf(pin, routes) {
	case RoutedStateInputNotRouted:
		return PinStatusInputNotRouted, true
	case RoutedStateOutputNotRouted:
		return PinStatusOutputNotRouted, true
	default:
		return "", false
	}
}

func lookupCapacity(catalog CapacityLookup, typeID int32) (int, bool) {
	if catalog == nil {
		return 0, false
	}
	return catalog.CapacityFor(typeID)
}
