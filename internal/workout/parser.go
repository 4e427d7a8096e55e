package workout

import (
	"errors"
	"strconv"
	"strings"
)

const endOfInput = "end of input"

var atomExpected = []string{`"("`, "meters", "number"}

type parser struct {
	input string
	lex   lexer
	depth int
}

// Parse builds the expression tree for input. The grammar is
//
//	workout := sum
//	sum     := product ( '+' product )*
//	product := atom ( '*' atom )*
//	atom    := digits 'm' | digits | '(' workout ')'
//
// with both operators folding to the left. Whitespace between tokens is
// ignored and the whole input must be consumed.
func Parse(input string) (Workout, error) {
	p := &parser{input: input, lex: lexer{input: input}}

	w, err := p.parseSum()
	if err != nil {
		return nil, err
	}

	if t := p.lex.peekToken(); !t.isOfType(tokEOF) {
		return nil, p.unexpected(t, p.afterOperand()...)
	}
	return w, nil
}

func (p *parser) parseSum() (Workout, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}

	for p.lex.peekToken().isOfType(tokPlus) {
		p.lex.popToken()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = &Plus{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (Workout, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for p.lex.peekToken().isOfType(tokStar) {
		p.lex.popToken()
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = &Times{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAtom() (Workout, error) {
	t := p.lex.popToken()

	switch t.name {
	case tokMeters:
		v, err := p.literal(t, strings.TrimSuffix(t.contents, "m"))
		if err != nil {
			return nil, err
		}
		return &Meters{Value: v}, nil

	case tokNumber:
		v, err := p.literal(t, t.contents)
		if err != nil {
			return nil, err
		}
		return &Num{Value: v}, nil

	case tokLeftParen:
		p.depth++
		w, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if next := p.lex.peekToken(); !next.isOfType(tokRightParen) {
			return nil, p.unexpected(next, p.afterOperand()...)
		}
		p.lex.popToken()
		p.depth--
		return w, nil
	}

	return nil, p.unexpected(t, atomExpected...)
}

func (p *parser) literal(t token, digits string) (uint32, error) {
	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &OverflowError{Op: "literal", Literal: digits, Pos: posAt(p.input, t.offset)}
		}
		return 0, p.unexpected(t, atomExpected...)
	}
	return uint32(v), nil
}

// afterOperand lists what may follow a complete operand at the current
// nesting depth.
func (p *parser) afterOperand() []string {
	if p.depth > 0 {
		return []string{`"*"`, `"+"`, `")"`}
	}
	return []string{`"*"`, `"+"`, endOfInput}
}

func (p *parser) unexpected(t token, expected ...string) *SyntaxError {
	return &SyntaxError{
		Input:    p.input,
		Pos:      posAt(p.input, t.offset),
		Found:    t.contents,
		Expected: expected,
	}
}
