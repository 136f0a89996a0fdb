package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/colonysim-go/internal/adapters/metrics"
	"github.com/andrescamacho/colonysim-go/internal/application/common"
	"github.com/andrescamacho/colonysim-go/internal/application/mediator"
	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
	"github.com/andrescamacho/colonysim-go/pkg/utils"
)

// SimulateColonyCommand runs a what-if simulation on a copy of a stored colony.
//
// Edits (activate, deactivate, drop routes) are applied to the copy before it
// is advanced. The stored snapshot only changes when Commit is set.
type SimulateColonyCommand struct {
	ColonyID   int64
	Until      *time.Time    // absolute target; wins over Horizon
	Horizon    time.Duration // relative to the colony's current sim time; 0 uses the configured default
	Activate   []int64
	Deactivate []int64
	DropRoutes []int64
	Commit     bool
}

// SimulateColonyResponse contains the before/after statuses and the run report
type SimulateColonyResponse struct {
	RunID     string
	Before    planetary.ColonyStatus
	After     planetary.ColonyStatus
	Report    *planetary.SimulationReport
	Colony    *planetary.Colony // the simulated copy
	Pins      []planetary.PinWithStatus
	Committed bool
}

// SimulateColonyHandler handles the SimulateColony command
type SimulateColonyHandler struct {
	colonyRepo     planetary.ColonyRepository
	catalogRepo    planetary.TypeCatalogRepository
	maxEvents      int
	defaultHorizon time.Duration
}

// NewSimulateColonyHandler creates a new SimulateColonyHandler
func NewSimulateColonyHandler(
	colonyRepo planetary.ColonyRepository,
	catalogRepo planetary.TypeCatalogRepository,
	maxEvents int,
	defaultHorizon time.Duration,
) *SimulateColonyHandler {
	return &SimulateColonyHandler{
		colonyRepo:     colonyRepo,
		catalogRepo:    catalogRepo,
		maxEvents:      maxEvents,
		defaultHorizon: defaultHorizon,
	}
}

// Handle executes the SimulateColony command
func (h *SimulateColonyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SimulateColonyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SimulateColonyCommand")
	}

	logger := common.LoggerFromContext(ctx)

	colony, err := h.colonyRepo.FindByID(ctx, cmd.ColonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony: %w", err)
	}

	catalog, err := h.catalogRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load type catalog: %w", err)
	}

	until := h.resolveTarget(cmd, colony.CurrentSimTime())
	runID := utils.GenerateRunID("simulate", colony.ID())
	before := colony.Status(catalog)

	simulated := colony.Clone()
	if err := applyEdits(simulated, cmd); err != nil {
		return nil, err
	}

	logger.Log("INFO", fmt.Sprintf("[Simulate] %s: colony %d from %s to %s",
		runID, colony.ID(), simulated.CurrentSimTime().Format(time.RFC3339), until.Format(time.RFC3339)),
		map[string]interface{}{"run_id": runID, "colony_id": colony.ID()})

	start := time.Now()
	report, err := planetary.NewSimulator(catalog, h.maxEvents).Advance(simulated, until)
	metrics.RecordSimulationAdvance(report, time.Since(start), err)
	if err != nil {
		logger.Log("ERROR", fmt.Sprintf("[Simulate] %s: %v", runID, err), map[string]interface{}{"run_id": runID})
		return nil, fmt.Errorf("simulation of colony %d failed: %w", colony.ID(), err)
	}

	pins := simulated.PinStatuses(catalog)
	after := planetary.Classify(pins)

	logger.Log("INFO", fmt.Sprintf("[Simulate] %s: %d events, status %s -> %s",
		runID, report.EventsProcessed, before.Kind, after.Kind),
		map[string]interface{}{"run_id": runID, "events": report.EventsProcessed})

	response := &SimulateColonyResponse{
		RunID:  runID,
		Before: before,
		After:  after,
		Report: report,
		Colony: simulated,
		Pins:   pins,
	}

	if cmd.Commit {
		if err := h.colonyRepo.Save(ctx, simulated); err != nil {
			return nil, fmt.Errorf("failed to save simulated colony: %w", err)
		}
		response.Committed = true
		logger.Log("INFO", fmt.Sprintf("[Simulate] %s: committed colony %d at %s",
			runID, colony.ID(), until.Format(time.RFC3339)), nil)
	}

	return response, nil
}

func (h *SimulateColonyHandler) resolveTarget(cmd *SimulateColonyCommand, current time.Time) time.Time {
	if cmd.Until != nil {
		return cmd.Until.UTC()
	}
	horizon := cmd.Horizon
	if horizon <= 0 {
		horizon = h.defaultHorizon
	}
	return current.Add(horizon)
}

func applyEdits(colony *planetary.Colony, cmd *SimulateColonyCommand) error {
	for _, pinID := range cmd.Activate {
		if err := colony.SetPinActive(pinID, true); err != nil {
			return fmt.Errorf("failed to activate pin: %w", err)
		}
	}
	for _, pinID := range cmd.Deactivate {
		if err := colony.SetPinActive(pinID, false); err != nil {
			return fmt.Errorf("failed to deactivate pin: %w", err)
		}
	}
	for _, routeID := range cmd.DropRoutes {
		if err := colony.RemoveRoute(routeID); err != nil {
			return fmt.Errorf("failed to drop route: %w", err)
		}
	}
	return nil
}
