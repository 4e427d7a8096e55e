package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ev Evaluator, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("intervals", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Interval workout calculator. Workouts are written as arithmetic over distances, e.g. \"600m + 4 * (400m + 800m) + 600m\": 'm' marks meters, bare numbers are repetitions, '*' repeats and '+' chains segments. Tools return the total distance and the canonical instruction string."),
	)

	h := &handlers{ev: ev, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolEvaluateWorkout, Handler: h.evaluateWorkout},
		server.ServerTool{Tool: toolEvaluateWorkouts, Handler: h.evaluateWorkouts},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resExamples, Handler: h.examples},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ev  Evaluator
	log *slog.Logger
}
