package queries

import (
	"context"
	"fmt"

	"github.com/oceanline/lubeplan-go/internal/application/common"
	"github.com/oceanline/lubeplan-go/internal/application/optimization"
)

// ListRunsQuery fetches the most recent runs for a vessel, newest first.
type ListRunsQuery struct {
	VesselIMO string
	Limit     int
}

// ListRunsHandler resolves ListRunsQuery against the run repository.
type ListRunsHandler struct {
	runs optimization.RunRepository
}

func NewListRunsHandler(runs optimization.RunRepository) *ListRunsHandler {
	return &ListRunsHandler{runs: runs}
}

func (h *ListRunsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListRunsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListRunsQuery, got %T", request)
	}
	if query.VesselIMO == "" {
		return nil, fmt.Errorf("vessel IMO is required")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}

	runs, err := h.runs.ListByVessel(ctx, query.VesselIMO, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs for %s: %w", query.VesselIMO, err)
	}
	return runs, nil
}
