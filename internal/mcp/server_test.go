package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/intervals/internal/models"
)

func newHandlers() *handlers {
	return &handlers{ev: Local{}, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	if len(r.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	tc, ok := r.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content %T is not text", r.Content[0])
	}
	return tc.Text
}

// TestEvaluateWorkoutTool verifies a successful tool call returns the evaluation as JSON.
func TestEvaluateWorkoutTool(t *testing.T) {
	h := newHandlers()
	res, err := h.evaluateWorkout(context.Background(), callRequest(map[string]any{"input": "600m + 4 * (400m + 800m) + 600m"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	var ev models.Evaluation
	if err := json.Unmarshal([]byte(resultText(t, res)), &ev); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if ev.Distance != 6000 {
		t.Errorf("distance = %d, want 6000", ev.Distance)
	}
	if ev.Output != "6000m (600m + 4 * (400m + 800m) + 600m)" {
		t.Errorf("output = %q", ev.Output)
	}
}

// TestEvaluateWorkoutToolErrors verifies syntax errors and missing arguments
// come back as tool errors, not protocol errors.
func TestEvaluateWorkoutToolErrors(t *testing.T) {
	h := newHandlers()

	res, err := h.evaluateWorkout(context.Background(), callRequest(map[string]any{"input": "4 *"}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("IsError = false for syntax error")
	}
	if text := resultText(t, res); !strings.Contains(text, "syntax error") {
		t.Errorf("text = %q, want syntax error", text)
	}

	res, err = h.evaluateWorkout(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("IsError = false for missing input")
	}
}

// TestEvaluateWorkoutsTool verifies the batch tool and its stop_on_error flag.
func TestEvaluateWorkoutsTool(t *testing.T) {
	h := newHandlers()
	inputs := []any{"1m", "4m extra", "2 * 3m"}

	res, err := h.evaluateWorkouts(context.Background(), callRequest(map[string]any{"inputs": inputs}))
	if err != nil {
		t.Fatal(err)
	}
	var resp models.BatchResponse
	if err := json.Unmarshal([]byte(resultText(t, res)), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(resp.Results) != 3 || resp.Failed != 1 {
		t.Errorf("results = %d, failed = %d; want 3, 1", len(resp.Results), resp.Failed)
	}

	res, err = h.evaluateWorkouts(context.Background(), callRequest(map[string]any{"inputs": inputs, "stop_on_error": true}))
	if err != nil {
		t.Fatal(err)
	}
	resp = models.BatchResponse{}
	if err := json.Unmarshal([]byte(resultText(t, res)), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Errorf("stop_on_error results = %d, want 2", len(resp.Results))
	}
}

// TestExamplesResource verifies the examples resource lists both sessions.
func TestExamplesResource(t *testing.T) {
	h := newHandlers()
	var req mcp.ReadResourceRequest
	req.Params.URI = "intervals://examples"

	contents, err := h.examples(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents %T is not text", contents[0])
	}

	var evs []models.Evaluation
	if err := json.Unmarshal([]byte(text.Text), &evs); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("examples = %d, want 2", len(evs))
	}
	if evs[1].Output != "6000m (1600m + 1400m + 1200m + 1000m + 800m)" {
		t.Errorf("output = %q", evs[1].Output)
	}
}

// TestNew verifies the server builds with a local evaluator.
func TestNew(t *testing.T) {
	if s := New(Local{}, "test", slog.Default()); s == nil {
		t.Fatal("New returned nil")
	}
}
