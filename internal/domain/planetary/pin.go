package planetary

import (
	"time"
)

// PinKind names the facility variant of a pin
type PinKind string

const (
	PinKindExtractor     PinKind = "EXTRACTOR"
	PinKindFactory       PinKind = "FACTORY"
	PinKindStorage       PinKind = "STORAGE"
	PinKindLaunchpad     PinKind = "LAUNCHPAD"
	PinKindCommandCenter PinKind = "COMMAND_CENTER"
)

// PinBase holds the fields shared by every facility variant
type PinBase struct {
	ID           int64
	TypeID       int32
	Designator   string
	LastRunTime  *time.Time
	Contents     map[int32]int // commodity type ID -> quantity
	CapacityUsed float64       // volume, m3
	IsActive     bool
	Latitude     float64
	Longitude    float64
}

// Quantity returns how many units of a commodity the pin holds
func (b *PinBase) Quantity(typeID int32) int {
	return b.Contents[typeID]
}

// AddContents adds (or with a negative amount removes) units of a commodity
func (b *PinBase) AddContents(typeID int32, amount int) {
	if b.Contents == nil {
		b.Contents = make(map[int32]int)
	}
	b.Contents[typeID] += amount
	if b.Contents[typeID] <= 0 {
		delete(b.Contents, typeID)
	}
}

func (b PinBase) clone() PinBase {
	out := b
	out.LastRunTime = cloneTime(b.LastRunTime)
	if b.Contents != nil {
		out.Contents = make(map[int32]int, len(b.Contents))
		for typeID, qty := range b.Contents {
			out.Contents[typeID] = qty
		}
	}
	return out
}

// Pin is a facility placed on a planet.
//
// The set of variants is closed: ExtractorPin, FactoryPin, StoragePin,
// LaunchpadPin and CommandCenterPin. Code that needs per-variant behavior
// goes through Accept, so a new variant cannot be added without every
// PinVisitor implementation being updated.
type Pin interface {
	Base() *PinBase
	Kind() PinKind
	IsSetup() bool
	Accept(v PinVisitor)
	isPin()
}

// PinVisitor has one method per pin variant
type PinVisitor interface {
	VisitExtractor(p *ExtractorPin)
	VisitFactory(p *FactoryPin)
	VisitStorage(p *StoragePin)
	VisitLaunchpad(p *LaunchpadPin)
	VisitCommandCenter(p *CommandCenterPin)
}

// PinCases computes a value of type R for each pin variant
type PinCases[R any] interface {
	Extractor(p *ExtractorPin) R
	Factory(p *FactoryPin) R
	Storage(p *StoragePin) R
	Launchpad(p *LaunchpadPin) R
	CommandCenter(p *CommandCenterPin) R
}

// MatchPin dispatches pin to the case for its variant and returns the result
func MatchPin[R any](pin Pin, cases PinCases[R]) R {
	m := &pinMatcher[R]{cases: cases}
	pin.Accept(m)
	return m.result
}

type pinMatcher[R any] struct {
	cases  PinCases[R]
	result R
}

func (m *pinMatcher[R]) VisitExtractor(p *ExtractorPin)         { m.result = m.cases.Extractor(p) }
func (m *pinMatcher[R]) VisitFactory(p *FactoryPin)             { m.result = m.cases.Factory(p) }
func (m *pinMatcher[R]) VisitStorage(p *StoragePin)             { m.result = m.cases.Storage(p) }
func (m *pinMatcher[R]) VisitLaunchpad(p *LaunchpadPin)         { m.result = m.cases.Launchpad(p) }
func (m *pinMatcher[R]) VisitCommandCenter(p *CommandCenterPin) { m.result = m.cases.CommandCenter(p) }

// ExtractorPin harvests a raw resource from the planet on a fixed cycle
// until its program expires.
type ExtractorPin struct {
	PinBase
	InstallTime   *time.Time
	ExpiryTime    *time.Time
	CycleTime     *time.Duration
	ProductTypeID *int32
	BaseValue     *int // yield curve parameter
}

func (p *ExtractorPin) Base() *PinBase      { return &p.PinBase }
func (p *ExtractorPin) Kind() PinKind       { return PinKindExtractor }
func (p *ExtractorPin) Accept(v PinVisitor) { v.VisitExtractor(p) }
func (p *ExtractorPin) isPin()              {}

// IsSetup reports whether an extraction program is installed
func (p *ExtractorPin) IsSetup() bool {
	return p.InstallTime != nil &&
		p.ExpiryTime != nil &&
		p.CycleTime != nil &&
		p.ProductTypeID != nil &&
		p.BaseValue != nil
}

// Schematic is a factory recipe
type Schematic struct {
	ID             int32
	Name           string
	CycleTime      time.Duration
	Inputs         map[int32]int // commodity type ID -> quantity per cycle
	OutputTypeID   int32
	OutputQuantity int
}

func (s *Schematic) clone() *Schematic {
	if s == nil {
		return nil
	}
	out := *s
	out.Inputs = make(map[int32]int, len(s.Inputs))
	for typeID, qty := range s.Inputs {
		out.Inputs[typeID] = qty
	}
	return &out
}

// FactoryPin converts input commodities into a product according to its schematic
type FactoryPin struct {
	PinBase
	Schematic               *Schematic
	HasReceivedInputs       bool
	ReceivedInputsLastCycle bool
	LastCycleStartTime      *time.Time

	// status mirrors IsActive as Producing or FactoryIdle. It is written at
	// construction and rewritten by clone; it is not the derived pin status.
	status PinStatus
}

// NewFactoryPin creates a factory with its recorded status consistent with IsActive
func NewFactoryPin(base PinBase, schematic *Schematic, hasReceivedInputs, receivedInputsLastCycle bool, lastCycleStart *time.Time) *FactoryPin {
	p := &FactoryPin{
		PinBase:                 base,
		Schematic:               schematic,
		HasReceivedInputs:       hasReceivedInputs,
		ReceivedInputsLastCycle: receivedInputsLastCycle,
		LastCycleStartTime:      lastCycleStart,
	}
	p.status = factoryActivityStatus(p.IsActive)
	return p
}

func (p *FactoryPin) Base() *PinBase      { return &p.PinBase }
func (p *FactoryPin) Kind() PinKind       { return PinKindFactory }
func (p *FactoryPin) Accept(v PinVisitor) { v.VisitFactory(p) }
func (p *FactoryPin) isPin()              {}

// IsSetup reports whether a schematic is installed
func (p *FactoryPin) IsSetup() bool { return p.Schematic != nil }

// CanProduce reports whether the installed schematic has a positive cycle
// time. Factories that cannot produce are never scheduled by the simulation.
func (p *FactoryPin) CanProduce() bool {
	return p.Schematic != nil && p.Schematic.CycleTime > 0
}

// RecordedStatus returns the activity status recorded at construction or clone time
func (p *FactoryPin) RecordedStatus() PinStatus { return p.status }

// CycleEnd returns when the running production cycle finishes, if any
func (p *FactoryPin) CycleEnd() *time.Time {
	if p.Schematic == nil || p.LastCycleStartTime == nil {
		return nil
	}
	end := p.LastCycleStartTime.Add(p.Schematic.CycleTime)
	return &end
}

func factoryActivityStatus(active bool) PinStatus {
	if active {
		return PinStatusProducing
	}
	return PinStatusFactoryIdle
}

// StoragePin holds commodities
type StoragePin struct {
	PinBase
}

func (p *StoragePin) Base() *PinBase      { return &p.PinBase }
func (p *StoragePin) Kind() PinKind       { return PinKindStorage }
func (p *StoragePin) Accept(v PinVisitor) { v.VisitStorage(p) }
func (p *StoragePin) IsSetup() bool       { return true }
func (p *StoragePin) isPin()              {}

// LaunchpadPin holds commodities and exchanges them with orbit
type LaunchpadPin struct {
	PinBase
}

func (p *LaunchpadPin) Base() *PinBase      { return &p.PinBase }
func (p *LaunchpadPin) Kind() PinKind       { return PinKindLaunchpad }
func (p *LaunchpadPin) Accept(v PinVisitor) { v.VisitLaunchpad(p) }
func (p *LaunchpadPin) IsSetup() bool       { return true }
func (p *LaunchpadPin) isPin()              {}

// CommandCenterPin is the colony's hub; its level caps the colony's power and CPU
type CommandCenterPin struct {
	PinBase
	Level int
}

func (p *CommandCenterPin) Base() *PinBase      { return &p.PinBase }
func (p *CommandCenterPin) Kind() PinKind       { return PinKindCommandCenter }
func (p *CommandCenterPin) Accept(v PinVisitor) { v.VisitCommandCenter(p) }
func (p *CommandCenterPin) IsSetup() bool       { return true }
func (p *CommandCenterPin) isPin()              {}

// IsPassive reports whether a pin only holds commodities
func IsPassive(pin Pin) bool {
	switch pin.Kind() {
	case PinKindStorage, PinKindLaunchpad, PinKindCommandCenter:
		return true
	default:
		return false
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}
