package workout

import (
	"fmt"
	"math"
	"strconv"
)

// Distance folds w into its total distance in meters. Counts and meters
// contribute their literal value alike; annotated segments contribute 0.
func Distance(w Workout) (uint32, error) {
	switch n := w.(type) {
	case *Num:
		return n.Value, nil
	case *Meters:
		return n.Value, nil
	case *Plus:
		a, b, err := distances(n.Left, n.Right)
		if err != nil {
			return 0, err
		}
		if uint64(a)+uint64(b) > math.MaxUint32 {
			return 0, &OverflowError{Op: "+", Left: a, Right: b}
		}
		return a + b, nil
	case *Times:
		a, b, err := distances(n.Left, n.Right)
		if err != nil {
			return 0, err
		}
		if uint64(a)*uint64(b) > math.MaxUint32 {
			return 0, &OverflowError{Op: "*", Left: a, Right: b}
		}
		return a * b, nil
	case *Annotation:
		return 0, nil
	}
	return 0, fmt.Errorf("distance: unknown node %T", w)
}

func distances(left, right Workout) (uint32, uint32, error) {
	a, err := Distance(left)
	if err != nil {
		return 0, 0, err
	}
	b, err := Distance(right)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// Instruction renders w in the notation it was parsed from. Grouping that
// only restates left-to-right folding is dropped; a sum used as a factor is
// kept in parentheses so the rendered text evaluates to the same distance.
func Instruction(w Workout) (string, error) {
	switch n := w.(type) {
	case *Num:
		return strconv.FormatUint(uint64(n.Value), 10), nil
	case *Meters:
		return strconv.FormatUint(uint64(n.Value), 10) + "m", nil
	case *Plus:
		a, err := Instruction(n.Left)
		if err != nil {
			return "", err
		}
		b, err := Instruction(n.Right)
		if err != nil {
			return "", err
		}
		return a + " + " + b, nil
	case *Times:
		a, err := factor(n.Left)
		if err != nil {
			return "", err
		}
		b, err := factor(n.Right)
		if err != nil {
			return "", err
		}
		return a + " * " + b, nil
	case *Annotation:
		body, err := Instruction(n.Body)
		if err != nil {
			return "", err
		}
		return body + "@" + n.Label, nil
	}
	return "", fmt.Errorf("instruction: unknown node %T", w)
}

func factor(w Workout) (string, error) {
	s, err := Instruction(w)
	if err != nil {
		return "", err
	}
	if _, ok := w.(*Plus); ok {
		return "(" + s + ")", nil
	}
	return s, nil
}
