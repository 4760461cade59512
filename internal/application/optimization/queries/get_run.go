package queries

import (
	"context"
	"fmt"

	"github.com/oceanline/lubeplan-go/internal/application/common"
	"github.com/oceanline/lubeplan-go/internal/application/optimization"
)

// GetRunQuery fetches one persisted optimization run by ID.
type GetRunQuery struct {
	RunID string
}

// GetRunHandler resolves GetRunQuery against the run repository.
type GetRunHandler struct {
	runs optimization.RunRepository
}

func NewGetRunHandler(runs optimization.RunRepository) *GetRunHandler {
	return &GetRunHandler{runs: runs}
}

func (h *GetRunHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetRunQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetRunQuery, got %T", request)
	}
	if query.RunID == "" {
		return nil, fmt.Errorf("run ID is required")
	}

	run, err := h.runs.FindByID(ctx, query.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", query.RunID, err)
	}
	return run, nil
}
