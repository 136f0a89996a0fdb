package planetary

import "fmt"

// ColonyStatusKind classifies the health of a whole colony.
// Kinds are totally ordered: NotSetup < NeedsAttention < Idle < Producing < Extracting.
type ColonyStatusKind int

const (
	ColonyStatusNotSetup ColonyStatusKind = iota
	ColonyStatusNeedsAttention
	ColonyStatusIdle
	ColonyStatusProducing
	ColonyStatusExtracting
)

func (k ColonyStatusKind) String() string {
	switch k {
	case ColonyStatusNotSetup:
		return "NOT_SETUP"
	case ColonyStatusNeedsAttention:
		return "NEEDS_ATTENTION"
	case ColonyStatusIdle:
		return "IDLE"
	case ColonyStatusProducing:
		return "PRODUCING"
	case ColonyStatusExtracting:
		return "EXTRACTING"
	default:
		return fmt.Sprintf("ColonyStatusKind(%d)", int(k))
	}
}

// ParseColonyStatusKind converts a name produced by String back into a kind
func ParseColonyStatusKind(name string) (ColonyStatusKind, error) {
	for k := ColonyStatusNotSetup; k <= ColonyStatusExtracting; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown colony status: %s", name)
}

// Less reports whether k sorts before other
func (k ColonyStatusKind) Less(other ColonyStatusKind) bool { return k < other }

// IsWorking is true only while the colony is producing or extracting
func (k ColonyStatusKind) IsWorking() bool {
	return k == ColonyStatusProducing || k == ColonyStatusExtracting
}

// ColonyStatus is a classification plus the pins responsible for it.
// Idle carries no pins.
type ColonyStatus struct {
	Kind ColonyStatusKind
	Pins []Pin
}

// IsWorking is true only while the colony is producing or extracting
func (s ColonyStatus) IsWorking() bool { return s.Kind.IsWorking() }

// Less orders statuses by kind
func (s ColonyStatus) Less(other ColonyStatus) bool { return s.Kind.Less(other.Kind) }

func (s ColonyStatus) String() string {
	return fmt.Sprintf("%s(%d pins)", s.Kind, len(s.Pins))
}

var classificationOrder = []struct {
	kind     ColonyStatusKind
	statuses []PinStatus
}{
	{ColonyStatusNotSetup, []PinStatus{PinStatusNotSetup, PinStatusInputNotRouted, PinStatusOutputNotRouted}},
	{ColonyStatusNeedsAttention, []PinStatus{PinStatusExtractorExpired, PinStatusExtractorInactive, PinStatusStorageFull}},
	{ColonyStatusExtracting, []PinStatus{PinStatusExtracting}},
	{ColonyStatusProducing, []PinStatus{PinStatusProducing}},
}

// Classify folds pin statuses into a colony status. The first matching rule wins:
// configuration problems, then operational alarms, then extraction, then
// production, and finally Idle.
func Classify(pins []PinWithStatus) ColonyStatus {
	for _, rule := range classificationOrder {
		matched := pinsWithStatus(pins, rule.statuses...)
		if len(matched) > 0 {
			return ColonyStatus{Kind: rule.kind, Pins: matched}
		}
	}
	return ColonyStatus{Kind: ColonyStatusIdle, Pins: []Pin{}}
}

func pinsWithStatus(pins []PinWithStatus, statuses ...PinStatus) []Pin {
	var matched []Pin
	for _, p := range pins {
		for _, status := range statuses {
			if p.Status == status {
				matched = append(matched, p.Pin)
				break
			}
		}
	}
	return matched
}
