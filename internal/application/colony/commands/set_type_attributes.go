package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonysim-go/internal/application/common"
	"github.com/andrescamacho/colonysim-go/internal/application/mediator"
	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// SetTypeCapacityCommand records the storage capacity (m3) of a pin type.
// A capacity of 0 marks the type as having no storage.
type SetTypeCapacityCommand struct {
	TypeID   int32
	Capacity int
}

// SetTypeVolumeCommand records the unit volume (m3) of a commodity
type SetTypeVolumeCommand struct {
	TypeID int32
	Volume float64
}

// SetTypeAttributeHandler handles both catalog edit commands
type SetTypeAttributeHandler struct {
	catalogRepo planetary.TypeCatalogRepository
}

// NewSetTypeAttributeHandler creates a new SetTypeAttributeHandler
func NewSetTypeAttributeHandler(catalogRepo planetary.TypeCatalogRepository) *SetTypeAttributeHandler {
	return &SetTypeAttributeHandler{catalogRepo: catalogRepo}
}

// Handle executes SetTypeCapacity or SetTypeVolume
func (h *SetTypeAttributeHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	logger := common.LoggerFromContext(ctx)

	switch cmd := request.(type) {
	case *SetTypeCapacityCommand:
		if cmd.TypeID <= 0 {
			return nil, fmt.Errorf("type_id must be positive")
		}
		if err := h.catalogRepo.SetCapacity(ctx, cmd.TypeID, cmd.Capacity); err != nil {
			return nil, err
		}
		logger.Log("INFO", fmt.Sprintf("[Catalog] type %d capacity set to %d", cmd.TypeID, cmd.Capacity), nil)

	case *SetTypeVolumeCommand:
		if cmd.TypeID <= 0 {
			return nil, fmt.Errorf("type_id must be positive")
		}
		if err := h.catalogRepo.SetVolume(ctx, cmd.TypeID, cmd.Volume); err != nil {
			return nil, err
		}
		logger.Log("INFO", fmt.Sprintf("[Catalog] type %d volume set to %g", cmd.TypeID, cmd.Volume), nil)

	default:
		return nil, fmt.Errorf("invalid request type: expected *SetTypeCapacityCommand or *SetTypeVolumeCommand")
	}

	return nil, nil
}
