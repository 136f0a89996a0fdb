package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonysim-go/internal/application/common"
	"github.com/andrescamacho/colonysim-go/internal/application/mediator"
	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// DeleteColonyCommand removes a stored colony snapshot
type DeleteColonyCommand struct {
	ColonyID int64
}

// DeleteColonyHandler handles the DeleteColony command
type DeleteColonyHandler struct {
	colonyRepo planetary.ColonyRepository
}

// NewDeleteColonyHandler creates a new DeleteColonyHandler
func NewDeleteColonyHandler(colonyRepo planetary.ColonyRepository) *DeleteColonyHandler {
	return &DeleteColonyHandler{colonyRepo: colonyRepo}
}

// Handle executes the DeleteColony command
func (h *DeleteColonyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeleteColonyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeleteColonyCommand")
	}

	if err := h.colonyRepo.Delete(ctx, cmd.ColonyID); err != nil {
		return nil, fmt.Errorf("failed to delete colony: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", fmt.Sprintf("[Delete] colony %d removed", cmd.ColonyID), nil)
	return nil, nil
}
