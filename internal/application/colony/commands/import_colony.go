package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonysim-go/internal/application/colony/dtos"
	"github.com/andrescamacho/colonysim-go/internal/application/common"
	"github.com/andrescamacho/colonysim-go/internal/application/mediator"
	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// ImportColonyCommand stores a colony snapshot, replacing any existing one
// with the same ID. Catalog entries carried by the snapshot are stored first.
type ImportColonyCommand struct {
	Snapshot *dtos.ColonySnapshot
}

// ImportColonyResponse contains the imported colony's derived status
type ImportColonyResponse struct {
	ColonyID int64
	Status   planetary.ColonyStatus
}

// ImportColonyHandler handles the ImportColony command
type ImportColonyHandler struct {
	colonyRepo  planetary.ColonyRepository
	catalogRepo planetary.TypeCatalogRepository
}

// NewImportColonyHandler creates a new ImportColonyHandler
func NewImportColonyHandler(
	colonyRepo planetary.ColonyRepository,
	catalogRepo planetary.TypeCatalogRepository,
) *ImportColonyHandler {
	return &ImportColonyHandler{
		colonyRepo:  colonyRepo,
		catalogRepo: catalogRepo,
	}
}

// Handle executes the ImportColony command
func (h *ImportColonyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportColonyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportColonyCommand")
	}
	if cmd.Snapshot == nil {
		return nil, fmt.Errorf("snapshot is required")
	}

	colony, err := cmd.Snapshot.ToDomain()
	if err != nil {
		return nil, err
	}

	if c := cmd.Snapshot.Catalog; c != nil {
		for typeID, capacity := range c.Capacities {
			if err := h.catalogRepo.SetCapacity(ctx, typeID, capacity); err != nil {
				return nil, fmt.Errorf("failed to import catalog: %w", err)
			}
		}
		for typeID, volume := range c.Volumes {
			if err := h.catalogRepo.SetVolume(ctx, typeID, volume); err != nil {
				return nil, fmt.Errorf("failed to import catalog: %w", err)
			}
		}
	}

	if err := h.colonyRepo.Save(ctx, colony); err != nil {
		return nil, fmt.Errorf("failed to save colony: %w", err)
	}

	catalog, err := h.catalogRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load type catalog: %w", err)
	}
	status := colony.Status(catalog)

	common.LoggerFromContext(ctx).Log("INFO",
		fmt.Sprintf("[Import] colony %d (%d pins, %d routes) stored, status %s",
			colony.ID(), len(colony.Pins()), len(colony.Routes()), status.Kind), nil)

	return &ImportColonyResponse{ColonyID: colony.ID(), Status: status}, nil
}
