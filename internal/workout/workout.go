// Package workout parses the interval notation (e.g. "4 * (400m + 800m)")
// into an expression tree and evaluates that tree into a total distance and
// a canonical instruction string.
package workout

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Workout is a node of the expression tree. The set of implementations is
// closed: Num, Meters, Plus, Times and Annotation.
type Workout interface {
	workout()
}

// Num is a bare repetition or multiplier count.
type Num struct {
	Value uint32
}

// Meters is a distance literal.
type Meters struct {
	Value uint32
}

// Plus is the sum of two segments.
type Plus struct {
	Left, Right Workout
}

// Times repeats one segment by another.
type Times struct {
	Left, Right Workout
}

// Annotation tags a sub-expression with a label. Annotated segments
// contribute no distance.
type Annotation struct {
	Label string
	Body  Workout
}

func (*Num) workout()        {}
func (*Meters) workout()     {}
func (*Plus) workout()       {}
func (*Times) workout()      {}
func (*Annotation) workout() {}

// Annotate wraps body with label. The label must be non-empty and contain
// neither '@' nor whitespace.
func Annotate(label string, body Workout) (*Annotation, error) {
	if label == "" {
		return nil, fmt.Errorf("annotation label is empty")
	}
	if i := strings.IndexFunc(label, func(r rune) bool { return r == '@' || unicode.IsSpace(r) }); i >= 0 {
		r, _ := utf8.DecodeRuneInString(label[i:])
		return nil, fmt.Errorf("annotation label %q: invalid character %q", label, r)
	}
	if body == nil {
		return nil, fmt.Errorf("annotation %q has no body", label)
	}
	return &Annotation{Label: label, Body: body}, nil
}
