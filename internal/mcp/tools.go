package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolEvaluateWorkout = mcp.NewTool("evaluate_workout",
	mcp.WithDescription("Evaluate an interval workout. Returns the total distance in meters, the canonical instruction string and the formatted output line. Syntax errors report the failing position and the tokens that were expected."),
	mcp.WithString("input", mcp.Required(), mcp.Description("Workout expression, e.g. '600m + 4 * (400m + 800m) + 600m'")),
)

var toolEvaluateWorkouts = mcp.NewTool("evaluate_workouts",
	mcp.WithDescription("Evaluate several interval workouts in order. Failed inputs are reported per item; set stop_on_error to end at the first failure."),
	mcp.WithArray("inputs", mcp.Required(), mcp.Description("Workout expressions"), mcp.WithStringItems()),
	mcp.WithBoolean("stop_on_error", mcp.Description("Stop at the first failing input. Defaults to false.")),
)

// --- Tool handlers ---

func (h *handlers) evaluateWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := req.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError("input parameter is required"), nil
	}

	ev, err := h.ev.Evaluate(ctx, input)
	if err != nil {
		h.log.Error("mcp evaluate_workout", "error", err)
		return mcp.NewToolResultError("evaluation failed: " + err.Error()), nil
	}
	if ev.Failure != nil {
		return mcp.NewToolResultError(ev.Failure.Message), nil
	}

	result, err := mcp.NewToolResultJSON(ev)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) evaluateWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inputs := req.GetStringSlice("inputs", nil)
	if len(inputs) == 0 {
		return mcp.NewToolResultError("inputs parameter is required"), nil
	}

	resp, err := h.ev.EvaluateBatch(ctx, inputs, req.GetBool("stop_on_error", false))
	if err != nil {
		h.log.Error("mcp evaluate_workouts", "error", err)
		return mcp.NewToolResultError("evaluation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(resp)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
