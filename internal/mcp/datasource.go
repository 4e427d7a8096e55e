package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/meltforce/intervals/internal/models"
	"github.com/meltforce/intervals/internal/workout"
)

// Evaluator abstracts where workouts are evaluated for MCP tools. Both Local
// (in process) and HTTPClient (remote via REST API) satisfy this interface.
// An input that fails to parse or overflows is reported through
// Evaluation.Failure; the error return is reserved for transport failures.
type Evaluator interface {
	Evaluate(ctx context.Context, input string) (*models.Evaluation, error)
	EvaluateBatch(ctx context.Context, inputs []string, stopOnError bool) (*models.BatchResponse, error)
}

// Local evaluates in process.
type Local struct{}

// Compile-time check: Local satisfies Evaluator.
var _ Evaluator = Local{}

func (Local) Evaluate(_ context.Context, input string) (*models.Evaluation, error) {
	id := uuid.NewString()
	res, err := workout.Evaluate(input)
	if err != nil {
		return &models.Evaluation{ID: id, Input: input, Failure: models.NewEvaluationError(err)}, nil
	}
	ev := models.NewEvaluation(id, input, res)
	return &ev, nil
}

func (Local) EvaluateBatch(_ context.Context, inputs []string, stopOnError bool) (*models.BatchResponse, error) {
	policy := workout.SkipAndReport
	if stopOnError {
		policy = workout.StopOnError
	}

	outcomes := workout.EvaluateAll(inputs, policy)
	resp := &models.BatchResponse{
		Results: make([]models.Evaluation, 0, len(outcomes)),
		Failed:  workout.Failed(outcomes),
	}
	for _, o := range outcomes {
		if o.Err != nil {
			resp.Results = append(resp.Results, models.Evaluation{ID: uuid.NewString(), Input: o.Input, Failure: models.NewEvaluationError(o.Err)})
			continue
		}
		resp.Results = append(resp.Results, models.NewEvaluation(uuid.NewString(), o.Input, o.Result))
	}
	return resp, nil
}
