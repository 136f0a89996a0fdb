package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/colonysim-go/internal/application/colony/dtos"
	"github.com/andrescamacho/colonysim-go/internal/application/mediator"
	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// ListColoniesQuery lists a character's colonies with derived status
type ListColoniesQuery struct {
	CharacterID int32
}

// ListColoniesResponse lists colonies most urgent first: by status kind, then ID
type ListColoniesResponse struct {
	Colonies []dtos.ColonySummary
}

// ListColoniesHandler handles the ListColonies query
type ListColoniesHandler struct {
	colonyRepo  planetary.ColonyRepository
	catalogRepo planetary.TypeCatalogRepository
}

// NewListColoniesHandler creates a new ListColoniesHandler
func NewListColoniesHandler(
	colonyRepo planetary.ColonyRepository,
	catalogRepo planetary.TypeCatalogRepository,
) *ListColoniesHandler {
	return &ListColoniesHandler{
		colonyRepo:  colonyRepo,
		catalogRepo: catalogRepo,
	}
}

// Handle executes the ListColonies query
func (h *ListColoniesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListColoniesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListColoniesQuery")
	}

	colonies, err := h.colonyRepo.FindByCharacter(ctx, query.CharacterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list colonies: %w", err)
	}

	catalog, err := h.catalogRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load type catalog: %w", err)
	}

	type ranked struct {
		status  planetary.ColonyStatus
		summary dtos.ColonySummary
	}
	rows := make([]ranked, 0, len(colonies))
	for _, colony := range colonies {
		status := colony.Status(catalog)
		rows = append(rows, ranked{status: status, summary: dtos.NewColonySummary(colony, status)})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].status.Kind != rows[j].status.Kind {
			return rows[i].status.Less(rows[j].status)
		}
		return rows[i].summary.ColonyID < rows[j].summary.ColonyID
	})

	summaries := make([]dtos.ColonySummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, row.summary)
	}
	return &ListColoniesResponse{Colonies: summaries}, nil
}
