package workout

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrSyntax matches every *SyntaxError.
	ErrSyntax = errors.New("syntax error")
	// ErrOverflow matches every *OverflowError.
	ErrOverflow = errors.New("numeric overflow")
)

// Pos is a location in the input. Line and Col are 0-based; Col counts bytes.
type Pos struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Col    int `json:"column"`
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Col+1)
}

func posAt(input string, offset int) Pos {
	before := input[:offset]
	line := strings.Count(before, "\n")
	col := offset
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		col = offset - i - 1
	}
	return Pos{Offset: offset, Line: line, Col: col}
}

// SyntaxError reports input that does not match the grammar. Found is the
// offending text, empty at end of input. Expected lists what would have been
// accepted at Pos.
type SyntaxError struct {
	Input    string
	Pos      Pos
	Found    string
	Expected []string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: found %s, expected %s", e.Pos, e.found(), expectedList(e.Expected))
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

func (e *SyntaxError) found() string {
	if e.Found == "" {
		return endOfInput
	}
	return strconv.Quote(e.Found)
}

// Context writes the offending line with a marker under the failing column.
func (e *SyntaxError) Context(w io.Writer) {
	lines := strings.Split(e.Input, "\n")
	if e.Pos.Line >= len(lines) {
		return
	}
	line := lines[e.Pos.Line]
	col := min(e.Pos.Col, len(line))
	width := len(strconv.Itoa(e.Pos.Line + 1))

	// Tabs are copied through so the marker lines up in a terminal.
	tabs := strings.Count(line[:col], "\t")
	left := strings.Repeat("\t", tabs) + strings.Repeat(" ", col-tabs)

	fmt.Fprintf(w, "%*d │ %s\n", width, e.Pos.Line+1, line)
	fmt.Fprintf(w, "%*s │ %s^ expected %s\n", width, "", left, expectedList(e.Expected))
}

func expectedList(expected []string) string {
	switch len(expected) {
	case 0:
		return "nothing"
	case 1:
		return expected[0]
	}
	return "one of " + strings.Join(expected, ", ")
}

// OverflowError reports a literal, sum or product that does not fit in 32
// bits. Op is "literal", "+" or "*". Pos is only meaningful for literals.
type OverflowError struct {
	Op      string
	Literal string
	Left    uint32
	Right   uint32
	Pos     Pos
}

func (e *OverflowError) Error() string {
	if e.Op == "literal" {
		return fmt.Sprintf("numeric overflow at %s: literal %s exceeds %d", e.Pos, e.Literal, uint32(math.MaxUint32))
	}
	return fmt.Sprintf("numeric overflow: %d %s %d exceeds %d", e.Left, e.Op, e.Right, uint32(math.MaxUint32))
}

func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }
