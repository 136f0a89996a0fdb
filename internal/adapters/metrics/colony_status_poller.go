package metrics

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/colonysim-go/internal/application/common"
	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
	"github.com/andrescamacho/colonysim-go/internal/domain/shared"
)

// ColonyStatusPoller periodically projects stored colonies to wall-clock time
// and publishes their derived status as gauges. Stored snapshots are never
// modified; each projection runs on a clone.
type ColonyStatusPoller struct {
	// Dependencies
	colonyRepo   planetary.ColonyRepository
	catalogRepo  planetary.TypeCatalogRepository
	clock        shared.Clock
	characterIDs []int32
	maxEvents    int
	interval     time.Duration
	limiter      *rate.Limiter

	// Colony metrics
	colonyStatus *prometheus.GaugeVec
	pinsByStatus *prometheus.GaugeVec
	lagSeconds   *prometheus.GaugeVec
	pollsTotal   *prometheus.CounterVec
	lastPollTime prometheus.Gauge

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.Mutex
}

// PollerOptions configures a ColonyStatusPoller
type PollerOptions struct {
	CharacterIDs         []int32
	Interval             time.Duration
	ProjectionsPerSecond float64
	MaxEvents            int
}

// NewColonyStatusPoller creates a new colony status poller
func NewColonyStatusPoller(
	colonyRepo planetary.ColonyRepository,
	catalogRepo planetary.TypeCatalogRepository,
	clock shared.Clock,
	opts PollerOptions,
) *ColonyStatusPoller {
	if clock == nil {
		clock = shared.NewWallClock()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	limit := rate.Inf
	if opts.ProjectionsPerSecond > 0 {
		limit = rate.Limit(opts.ProjectionsPerSecond)
	}

	return &ColonyStatusPoller{
		colonyRepo:   colonyRepo,
		catalogRepo:  catalogRepo,
		clock:        clock,
		characterIDs: opts.CharacterIDs,
		maxEvents:    opts.MaxEvents,
		interval:     interval,
		limiter:      rate.NewLimiter(limit, 1),

		colonyStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "colony",
				Name:      "status",
				Help:      "Derived colony status; 1 for the current status label",
			},
			[]string{"character_id", "colony_id", "status"},
		),

		pinsByStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "colony",
				Name:      "pins",
				Help:      "Number of pins per colony by derived pin status",
			},
			[]string{"colony_id", "status"},
		),

		lagSeconds: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "colony",
				Name:      "snapshot_lag_seconds",
				Help:      "Wall-clock time not yet covered by the stored simulation",
			},
			[]string{"colony_id"},
		),

		pollsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "colony",
				Name:      "polls_total",
				Help:      "Total number of status polls by result",
			},
			[]string{"result"},
		),

		lastPollTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "colony",
				Name:      "last_poll_timestamp_seconds",
				Help:      "Unix time of the last completed status poll",
			},
		),
	}
}

// Register registers all colony metrics with the Prometheus registry
func (p *ColonyStatusPoller) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		p.colonyStatus,
		p.pinsByStatus,
		p.lagSeconds,
		p.pollsTotal,
		p.lastPollTime,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Start polls once immediately, then every interval until Stop
func (p *ColonyStatusPoller) Start(ctx context.Context) {
	p.ctx, p.cancelFunc = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.collect()
}

// Stop gracefully stops polling
func (p *ColonyStatusPoller) Stop() {
	if p.cancelFunc != nil {
		p.cancelFunc()
	}
	p.wg.Wait()
}

func (p *ColonyStatusPoller) collect() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Poll(p.ctx)
	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.Poll(p.ctx)
		}
	}
}

// Poll refreshes the gauges for every configured character's colonies
func (p *ColonyStatusPoller) Poll(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	logger := common.LoggerFromContext(ctx)

	catalog, err := p.catalogRepo.Snapshot(ctx)
	if err != nil {
		logger.Log("ERROR", fmt.Sprintf("[StatusPoller] failed to load type catalog: %v", err), nil)
		p.pollsTotal.WithLabelValues("error").Inc()
		return
	}

	// Reset gauges so deleted colonies and stale labels disappear
	p.colonyStatus.Reset()
	p.pinsByStatus.Reset()
	p.lagSeconds.Reset()

	now := p.clock.Now()
	simulator := planetary.NewSimulator(catalog, p.maxEvents)
	result := "success"

	for _, characterID := range p.characterIDs {
		colonies, err := p.colonyRepo.FindByCharacter(ctx, characterID)
		if err != nil {
			logger.Log("ERROR", fmt.Sprintf("[StatusPoller] failed to list colonies for character %d: %v", characterID, err), nil)
			result = "error"
			continue
		}

		for _, colony := range colonies {
			if err := p.limiter.Wait(ctx); err != nil {
				return
			}
			if !p.project(ctx, simulator, catalog, colony, now) {
				result = "partial"
			}
		}
	}

	p.pollsTotal.WithLabelValues(result).Inc()
	p.lastPollTime.Set(float64(now.Unix()))
}

// project advances a clone of the colony to now and publishes its status.
// Returns false when the projection fell back to the stored sim time.
func (p *ColonyStatusPoller) project(
	ctx context.Context,
	simulator *planetary.Simulator,
	catalog planetary.CapacityLookup,
	colony *planetary.Colony,
	now time.Time,
) bool {
	colonyID := strconv.FormatInt(colony.ID(), 10)
	projected := colony.Clone()
	ok := true

	if now.After(projected.CurrentSimTime()) {
		if _, err := simulator.Advance(projected, now); err != nil {
			common.LoggerFromContext(ctx).Log("WARN",
				fmt.Sprintf("[StatusPoller] colony %d projection failed, using stored state: %v", colony.ID(), err),
				map[string]interface{}{"colony_id": colony.ID()})
			projected = colony
			ok = false
		}
	}

	status := projected.Status(catalog)
	p.colonyStatus.WithLabelValues(strconv.Itoa(int(colony.CharacterID())), colonyID, status.Kind.String()).Set(1)

	counts := make(map[planetary.PinStatus]int)
	for _, ps := range projected.PinStatuses(catalog) {
		counts[ps.Status]++
	}
	for pinStatus, count := range counts {
		p.pinsByStatus.WithLabelValues(colonyID, string(pinStatus)).Set(float64(count))
	}

	lag := now.Sub(projected.CurrentSimTime()).Seconds()
	if lag < 0 {
		lag = 0
	}
	p.lagSeconds.WithLabelValues(colonyID).Set(lag)

	return ok
}
