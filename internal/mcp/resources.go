package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/intervals/internal/workout"
)

var resExamples = mcp.NewResource(
	"intervals://examples",
	"Example Workouts",
	mcp.WithResourceDescription("Built-in example sessions with their total distance and instruction"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) examples(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	resp, err := h.ev.EvaluateBatch(ctx, workout.Examples, false)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(resp.Results)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
