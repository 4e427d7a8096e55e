package workout

import (
	"fmt"
)

// Examples are the two sessions the CLI evaluates when given no input.
var Examples = []string{
	"600m + 4 * (400m + 800m) + 600m",
	"1600m + 1400m + 1200m + 1000m + 800m",
}

// Result holds both views of a parsed workout.
type Result struct {
	Distance    uint32 `json:"distance"`
	Instruction string `json:"instruction"`
}

// String renders the output line, e.g. "6000m (600m + 4 * (400m + 800m) + 600m)".
func (r Result) String() string {
	return fmt.Sprintf("%dm (%s)", r.Distance, r.Instruction)
}

// Evaluate parses input and computes its distance and instruction.
func Evaluate(input string) (Result, error) {
	w, err := Parse(input)
	if err != nil {
		return Result{}, err
	}

	d, err := Distance(w)
	if err != nil {
		return Result{}, fmt.Errorf("computing distance: %w", err)
	}

	i, err := Instruction(w)
	if err != nil {
		return Result{}, fmt.Errorf("rendering instruction: %w", err)
	}

	return Result{Distance: d, Instruction: i}, nil
}

// Policy decides what EvaluateAll does when an input fails.
type Policy int

const (
	// StopOnError ends the batch at the first failing input.
	StopOnError Policy = iota
	// SkipAndReport records the failure and moves on.
	SkipAndReport
)

// Outcome is the result of one input of a batch. Err is set when the input
// failed, in which case Result is zero.
type Outcome struct {
	Input  string
	Result Result
	Err    error
}

// EvaluateAll evaluates inputs in order. With StopOnError the returned slice
// ends at the first failed outcome.
func EvaluateAll(inputs []string, policy Policy) []Outcome {
	outcomes := make([]Outcome, 0, len(inputs))
	for _, input := range inputs {
		res, err := Evaluate(input)
		outcomes = append(outcomes, Outcome{Input: input, Result: res, Err: err})
		if err != nil && policy == StopOnError {
			break
		}
	}
	return outcomes
}

// Failed counts the outcomes that carry an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
