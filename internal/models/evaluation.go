package models

import (
	"errors"

	"github.com/meltforce/intervals/internal/workout"
)

// Error kinds reported in EvaluationError.Kind.
const (
	KindSyntax   = "syntax"
	KindOverflow = "overflow"
	KindLimit    = "limit"
	KindInternal = "internal"
)

// EvaluateRequest is the body of POST /api/v1/evaluate.
type EvaluateRequest struct {
	Input string `json:"input"`
}

// BatchRequest is the body of POST /api/v1/evaluate/batch.
type BatchRequest struct {
	Inputs      []string `json:"inputs"`
	StopOnError bool     `json:"stop_on_error"`
}

// Evaluation is one evaluated input. Failure is set instead of the result
// fields when the input could not be evaluated.
type Evaluation struct {
	ID          string           `json:"id,omitempty"`
	Input       string           `json:"input"`
	Distance    uint32           `json:"distance"`
	Instruction string           `json:"instruction,omitempty"`
	Output      string           `json:"output,omitempty"`
	Failure     *EvaluationError `json:"failure,omitempty"`
}

// BatchResponse is the body returned for a batch.
type BatchResponse struct {
	Results []Evaluation `json:"results"`
	Failed  int          `json:"failed"`
}

// EvaluationError describes why an input failed. Position and Expected are
// only set for syntax errors (Position also for overflowing literals).
type EvaluationError struct {
	Message  string       `json:"error"`
	Kind     string       `json:"kind"`
	Position *workout.Pos `json:"position,omitempty"`
	Expected []string     `json:"expected,omitempty"`
}

func (e *EvaluationError) Error() string { return e.Message }

// NewEvaluation converts a successful result.
func NewEvaluation(id, input string, res workout.Result) Evaluation {
	return Evaluation{
		ID:          id,
		Input:       input,
		Distance:    res.Distance,
		Instruction: res.Instruction,
		Output:      res.String(),
	}
}

// NewEvaluationError classifies err into its wire form.
func NewEvaluationError(err error) *EvaluationError {
	out := &EvaluationError{Message: err.Error(), Kind: KindInternal}

	var se *workout.SyntaxError
	var oe *workout.OverflowError
	switch {
	case errors.As(err, &se):
		out.Kind = KindSyntax
		pos := se.Pos
		out.Position = &pos
		out.Expected = se.Expected
	case errors.As(err, &oe):
		out.Kind = KindOverflow
		if oe.Op == "literal" {
			pos := oe.Pos
			out.Position = &pos
		}
	}
	return out
}
