package workout

import (
	"regexp"
	"unicode/utf8"
)

const (
	tokWhitespace = "Whitespace"
	tokMeters     = "Meters"
	tokNumber     = "Number"
	tokPlus       = "Plus"
	tokStar       = "Star"
	tokLeftParen  = "LeftParenthesis"
	tokRightParen = "RightParenthesis"
	tokInvalid    = "Invalid"
	tokEOF        = "EOF"
)

type tokenDefinition struct {
	name    string
	pattern *regexp.Regexp
}

// Order matters: Meters must be tried before Number so a trailing 'm' is
// never left behind.
var tokenDefinitions = []tokenDefinition{
	{name: tokWhitespace, pattern: regexp.MustCompile(`^[\s\v\x{85}\p{Z}]+`)},
	{name: tokMeters, pattern: regexp.MustCompile(`^[0-9]+m`)},
	{name: tokNumber, pattern: regexp.MustCompile(`^[0-9]+`)},
	{name: tokPlus, pattern: regexp.MustCompile(`^\+`)},
	{name: tokStar, pattern: regexp.MustCompile(`^\*`)},
	{name: tokLeftParen, pattern: regexp.MustCompile(`^\(`)},
	{name: tokRightParen, pattern: regexp.MustCompile(`^\)`)},
}

type token struct {
	name     string
	contents string
	offset   int
}

func (t token) isOfType(names ...string) bool {
	for _, name := range names {
		if t.name == name {
			return true
		}
	}
	return false
}

// lexer hands out tokens on demand. Unknown characters come back as a single
// Invalid token so the parser can report what it expected at that point.
type lexer struct {
	input  string
	offset int
	peeked *token
}

func (l *lexer) peekToken() token {
	if l.peeked == nil {
		t := l.scan()
		l.peeked = &t
	}
	return *l.peeked
}

func (l *lexer) popToken() token {
	t := l.peekToken()
	l.peeked = nil
	return t
}

func (l *lexer) scan() token {
	for l.offset < len(l.input) {
		rest := l.input[l.offset:]
		skipped := false

		for _, def := range tokenDefinitions {
			loc := def.pattern.FindStringIndex(rest)
			if loc == nil {
				continue
			}

			start := l.offset
			l.offset += loc[1]

			if def.name == tokWhitespace {
				skipped = true
				break
			}
			return token{name: def.name, contents: rest[:loc[1]], offset: start}
		}

		if !skipped {
			_, size := utf8.DecodeRuneInString(rest)
			start := l.offset
			l.offset += size
			return token{name: tokInvalid, contents: rest[:size], offset: start}
		}
	}

	return token{name: tokEOF, offset: len(l.input)}
}
