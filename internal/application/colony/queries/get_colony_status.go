package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonysim-go/internal/application/mediator"
	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// GetColonyStatusQuery requests the derived status of a stored colony at its
// current sim time
type GetColonyStatusQuery struct {
	ColonyID int64
}

// GetColonyStatusResponse contains the colony and its derived statuses
type GetColonyStatusResponse struct {
	Colony *planetary.Colony
	Status planetary.ColonyStatus
	Pins   []planetary.PinWithStatus
}

// GetColonyStatusHandler handles the GetColonyStatus query
type GetColonyStatusHandler struct {
	colonyRepo  planetary.ColonyRepository
	catalogRepo planetary.TypeCatalogRepository
}

// NewGetColonyStatusHandler creates a new GetColonyStatusHandler
func NewGetColonyStatusHandler(
	colonyRepo planetary.ColonyRepository,
	catalogRepo planetary.TypeCatalogRepository,
) *GetColonyStatusHandler {
	return &GetColonyStatusHandler{
		colonyRepo:  colonyRepo,
		catalogRepo: catalogRepo,
	}
}

// Handle executes the GetColonyStatus query
func (h *GetColonyStatusHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetColonyStatusQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetColonyStatusQuery")
	}

	colony, err := h.colonyRepo.FindByID(ctx, query.ColonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony: %w", err)
	}

	catalog, err := h.catalogRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load type catalog: %w", err)
	}

	pins := colony.PinStatuses(catalog)
	return &GetColonyStatusResponse{
		Colony: colony,
		Status: planetary.Classify(pins),
		Pins:   pins,
	}, nil
}
