package planetary

import (
	"math"
	"time"

	"github.com/andrescamacho/colonysim-go/pkg/utils"
)

// EventKind is the type of a scheduled simulation event. At equal timestamps
// events run in kind order, so extractor output lands before factories look
// for inputs.
type EventKind int

const (
	EventExtractorCycle EventKind = iota
	EventExtractorExpiry
	EventFactoryCycle
)

func (k EventKind) String() string {
	switch k {
	case EventExtractorCycle:
		return "EXTRACTOR_CYCLE"
	case EventExtractorExpiry:
		return "EXTRACTOR_EXPIRY"
	case EventFactoryCycle:
		return "FACTORY_CYCLE"
	default:
		return "UNKNOWN"
	}
}

// SimEvent is a facility event due at a point in simulated time
type SimEvent struct {
	At    time.Time
	PinID int64
	Kind  EventKind
	Seq   uint64 // scheduling order, breaks remaining ties
}

func simEventBefore(a, b SimEvent) bool {
	if !a.At.Equal(b.At) {
		return a.At.Before(b.At)
	}
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Seq < b.Seq
}

func samePinAndKind(a, b SimEvent) bool {
	return a.PinID == b.PinID && a.Kind == b.Kind
}

// SimulationReport summarizes one Advance call
type SimulationReport struct {
	ColonyID        int64
	From            time.Time
	Until           time.Time
	EventsProcessed int
	EventsByKind    map[EventKind]int
	Extracted       map[int32]int // commodity type ID -> units
	Produced        map[int32]int
	Consumed        map[int32]int
}

// Simulator advances a colony's simulated time by replaying facility events
// in timestamp order.
type Simulator struct {
	catalog   Catalog
	maxEvents int
}

// NewSimulator creates a simulator. maxEvents <= 0 means unbounded.
func NewSimulator(catalog Catalog, maxEvents int) *Simulator {
	return &Simulator{catalog: catalog, maxEvents: maxEvents}
}

// Advance runs the colony forward to until, mutating pins in place.
// Callers that need to keep the authoritative colony intact advance a Clone.
// If the event budget is exceeded the colony is left partially advanced with
// its sim time unchanged.
func (s *Simulator) Advance(colony *Colony, until time.Time) (*SimulationReport, error) {
	from := colony.CurrentSimTime()
	if until.Before(from) {
		return nil, &SimTimeRegressionError{ColonyID: colony.ID(), Current: from, Requested: until}
	}

	run := newSimulationRun(colony, s.catalog, from, until)
	run.seed()

	for {
		next, ok := run.queue.Peek()
		if !ok || next.At.After(until) {
			break
		}
		run.queue.Dequeue()

		if s.maxEvents > 0 && run.report.EventsProcessed >= s.maxEvents {
			return run.report, &SimulationBudgetError{ColonyID: colony.ID(), MaxEvents: s.maxEvents, ReachedAt: next.At}
		}
		run.apply(next)
	}

	if err := colony.SetCurrentSimTime(until); err != nil {
		return nil, err
	}
	return run.report, nil
}

type simulationRun struct {
	colony  *Colony
	catalog Catalog
	from    time.Time
	pins    map[int64]Pin
	routes  []Route
	queue   *utils.PriorityQueue[SimEvent]
	seq     uint64
	running map[int64]bool // factories with a cycle in progress
	report  *SimulationReport
}

func newSimulationRun(colony *Colony, catalog Catalog, from, until time.Time) *simulationRun {
	pins := make(map[int64]Pin, len(colony.pins))
	for _, pin := range colony.pins {
		pins[pin.Base().ID] = pin
	}

	return &simulationRun{
		colony:  colony,
		catalog: catalog,
		from:    from,
		pins:    pins,
		routes:  colony.routes,
		queue:   utils.NewPriorityQueue(simEventBefore),
		running: make(map[int64]bool),
		report: &SimulationReport{
			ColonyID:     colony.ID(),
			From:         from,
			Until:        until,
			EventsByKind: make(map[EventKind]int),
			Extracted:    make(map[int32]int),
			Produced:     make(map[int32]int),
			Consumed:     make(map[int32]int),
		},
	}
}

func (r *simulationRun) schedule(at time.Time, pinID int64, kind EventKind) {
	r.seq++
	r.queue.Enqueue(SimEvent{At: at, PinID: pinID, Kind: kind, Seq: r.seq})
}

func (r *simulationRun) seed() {
	for _, pin := range r.colony.pins {
		pin.Accept(eventSeeder{run: r})
	}
}

func (r *simulationRun) apply(ev SimEvent) {
	r.report.EventsProcessed++
	r.report.EventsByKind[ev.Kind]++

	pin, ok := r.pins[ev.PinID]
	if !ok {
		return
	}

	switch ev.Kind {
	case EventExtractorCycle:
		if e, ok := pin.(*ExtractorPin); ok {
			r.extractorCycle(e, ev.At)
		}
	case EventExtractorExpiry:
		if e, ok := pin.(*ExtractorPin); ok {
			r.extractorExpiry(e)
		}
	case EventFactoryCycle:
		if f, ok := pin.(*FactoryPin); ok {
			r.factoryCycle(f, ev.At)
		}
	}
}

func (r *simulationRun) extractorCycle(e *ExtractorPin, at time.Time) {
	if !e.IsActive {
		return
	}

	product := *e.ProductTypeID
	units := ExtractorYield(*e.BaseValue, e.CycleIndexEndingAt(at), *e.CycleTime)
	r.add(e, product, units)
	r.report.Extracted[product] += units
	e.LastRunTime = cloneTime(&at)

	r.distribute(e, product, at)

	if next := e.CycleEndAfter(at); next != nil {
		r.schedule(*next, e.ID, EventExtractorCycle)
	}
}

func (r *simulationRun) extractorExpiry(e *ExtractorPin) {
	e.IsActive = false
	r.queue.Remove(SimEvent{PinID: e.ID, Kind: EventExtractorCycle}, samePinAndKind)
}

func (r *simulationRun) factoryCycle(f *FactoryPin, at time.Time) {
	if !f.CanProduce() {
		return
	}

	if r.running[f.ID] {
		output := f.Schematic.OutputTypeID
		r.add(f, output, f.Schematic.OutputQuantity)
		r.report.Produced[output] += f.Schematic.OutputQuantity
		r.running[f.ID] = false
		f.IsActive = false
		f.ReceivedInputsLastCycle = f.HasReceivedInputs
		f.HasReceivedInputs = false
		f.LastRunTime = cloneTime(&at)

		r.distribute(f, output, at)
	}

	r.startFactory(f, at)
}

// startFactory pulls missing inputs from passive pins routed into the factory
// and starts a cycle if the full recipe is on hand.
func (r *simulationRun) startFactory(f *FactoryPin, at time.Time) {
	schematic := f.Schematic

	for _, route := range IncomingRoutes(f.ID, r.routes) {
		need := schematic.Inputs[route.ContentTypeID] - f.Quantity(route.ContentTypeID)
		if need <= 0 {
			continue
		}
		source, ok := r.pins[route.SourcePinID]
		if !ok || !IsPassive(source) {
			continue
		}
		r.transfer(source, f, route.ContentTypeID, min(need, route.Quantity))
	}

	for typeID, qty := range schematic.Inputs {
		if f.Quantity(typeID) < qty {
			f.IsActive = false
			return
		}
	}

	for typeID, qty := range schematic.Inputs {
		r.add(f, typeID, -qty)
		r.report.Consumed[typeID] += qty
	}

	f.HasReceivedInputs = true
	f.IsActive = true
	f.LastCycleStartTime = cloneTime(&at)
	r.running[f.ID] = true
	r.schedule(at.Add(schematic.CycleTime), f.ID, EventFactoryCycle)
}

// distribute pushes a commodity along the pin's outgoing routes, up to each
// route's quantity and the destination's free room.
func (r *simulationRun) distribute(source Pin, typeID int32, at time.Time) {
	for _, route := range OutgoingRoutes(source.Base().ID, r.routes) {
		if route.ContentTypeID != typeID {
			continue
		}
		destination, ok := r.pins[route.DestinationPinID]
		if !ok {
			continue
		}
		if r.transfer(source, destination, typeID, route.Quantity) > 0 {
			r.wake(destination, at)
		}
	}
}

// wake schedules an idle factory, or idle factories fed by a passive pin, to
// try starting a cycle.
func (r *simulationRun) wake(pin Pin, at time.Time) {
	if IsPassive(pin) {
		for _, route := range OutgoingRoutes(pin.Base().ID, r.routes) {
			if f, ok := r.pins[route.DestinationPinID].(*FactoryPin); ok {
				r.wakeFactory(f, at)
			}
		}
		return
	}
	if f, ok := pin.(*FactoryPin); ok {
		r.wakeFactory(f, at)
	}
}

func (r *simulationRun) wakeFactory(f *FactoryPin, at time.Time) {
	if !f.CanProduce() || r.running[f.ID] {
		return
	}
	_, pending := r.queue.First(func(ev SimEvent) bool {
		return ev.PinID == f.ID && ev.Kind == EventFactoryCycle
	})
	if !pending {
		r.schedule(at, f.ID, EventFactoryCycle)
	}
}

// transfer moves up to amount units and returns how many moved
func (r *simulationRun) transfer(source, destination Pin, typeID int32, amount int) int {
	amount = min(amount, source.Base().Quantity(typeID), r.roomFor(destination, typeID))
	if amount <= 0 {
		return 0
	}
	r.add(source, typeID, -amount)
	r.add(destination, typeID, amount)
	return amount
}

func (r *simulationRun) add(pin Pin, typeID int32, amount int) {
	base := pin.Base()
	base.AddContents(typeID, amount)
	if volume, ok := r.volume(typeID); ok {
		base.CapacityUsed = max(base.CapacityUsed+volume*float64(amount), 0)
	}
}

// roomFor returns how many units of a commodity the pin can accept
func (r *simulationRun) roomFor(pin Pin, typeID int32) int {
	return MatchPin[int](pin, roomRules{run: r, typeID: typeID})
}

func (r *simulationRun) volume(typeID int32) (float64, bool) {
	if r.catalog == nil {
		return 0, false
	}
	return r.catalog.VolumeFor(typeID)
}

type roomRules struct {
	run    *simulationRun
	typeID int32
}

func (rr roomRules) Extractor(*ExtractorPin) int { return 0 }

func (rr roomRules) Factory(p *FactoryPin) int {
	if p.Schematic == nil {
		return 0
	}
	return max(p.Schematic.Inputs[rr.typeID]-p.Quantity(rr.typeID), 0)
}

func (rr roomRules) Storage(p *StoragePin) int             { return rr.passive(&p.PinBase) }
func (rr roomRules) Launchpad(p *LaunchpadPin) int         { return rr.passive(&p.PinBase) }
func (rr roomRules) CommandCenter(p *CommandCenterPin) int { return rr.passive(&p.PinBase) }

func (rr roomRules) passive(b *PinBase) int {
	capacity, ok := lookupCapacity(rr.run.catalog, b.TypeID)
	if !ok || capacity <= 0 {
		return math.MaxInt
	}
	volume, ok := rr.run.volume(rr.typeID)
	if !ok || volume <= 0 {
		return math.MaxInt
	}
	free := max(float64(capacity)-b.CapacityUsed, 0)
	return int(math.Floor(free / volume))
}

// eventSeeder schedules each pin's first event at the start of a run
type eventSeeder struct {
	run *simulationRun
}

func (s eventSeeder) VisitExtractor(p *ExtractorPin) {
	if !p.IsSetup() || !p.IsActive || !p.ExpiryTime.After(s.run.from) {
		return
	}
	s.run.schedule(*p.ExpiryTime, p.ID, EventExtractorExpiry)
	if next := p.CycleEndAfter(s.run.from); next != nil {
		s.run.schedule(*next, p.ID, EventExtractorCycle)
	}
}

func (s eventSeeder) VisitFactory(p *FactoryPin) {
	if !p.CanProduce() {
		return
	}
	at := s.run.from
	if p.IsActive && p.LastCycleStartTime != nil {
		s.run.running[p.ID] = true
		if end := p.CycleEnd(); end.After(at) {
			at = *end
		}
	}
	s.run.schedule(at, p.ID, EventFactoryCycle)
}

func (s eventSeeder) VisitStorage(*StoragePin)             {}
func (s eventSeeder) VisitLaunchpad(*LaunchpadPin)         {}
func (s eventSeeder) VisitCommandCenter(*CommandCenterPin) {}
