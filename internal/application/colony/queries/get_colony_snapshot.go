package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonysim-go/internal/application/colony/dtos"
	"github.com/andrescamacho/colonysim-go/internal/application/mediator"
	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// GetColonySnapshotQuery exports a stored colony in interchange form
type GetColonySnapshotQuery struct {
	ColonyID int64
}

// GetColonySnapshotHandler handles the GetColonySnapshot query
type GetColonySnapshotHandler struct {
	colonyRepo planetary.ColonyRepository
}

// NewGetColonySnapshotHandler creates a new GetColonySnapshotHandler
func NewGetColonySnapshotHandler(colonyRepo planetary.ColonyRepository) *GetColonySnapshotHandler {
	return &GetColonySnapshotHandler{colonyRepo: colonyRepo}
}

// Handle executes the GetColonySnapshot query; the response is a *dtos.ColonySnapshot
func (h *GetColonySnapshotHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetColonySnapshotQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetColonySnapshotQuery")
	}

	colony, err := h.colonyRepo.FindByID(ctx, query.ColonyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load colony: %w", err)
	}
	return dtos.NewColonySnapshot(colony), nil
}
