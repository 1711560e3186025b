// Copyright (C) 2026 Wes France. All Rights Reserved.

package ast

import (
	"errors"
	"io"
	"strings"

	"github.com/wfrance/descent"
)

// DefaultMaxDepth is the container nesting limit applied to a Parser whose
// caller does not choose one. Nesting beyond the limit fails with a
// NestingTooDeep error instead of exhausting the goroutine stack.
const DefaultMaxDepth = 1000

// A Parser is a recursive-descent parser that consumes JSON text from an
// input stream and constructs the corresponding value tree. A Parser may not
// be shared concurrently, but independent parsers have no shared state.
type Parser struct {
	sc       *descent.Scanner
	maxDepth int
	depth    int
	tcomma   bool // allow trailing commas in objects and arrays
}

// NewParser constructs a parser that consumes input from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{sc: descent.NewScanner(r), maxDepth: DefaultMaxDepth}
}

// AllowComments configures the parser to skip (true) or reject (false)
// C++-style comments in the input. Comments are a non-standard extension of
// the JSON spec.
func (p *Parser) AllowComments(ok bool) { p.sc.AllowComments(ok) }

// AllowTrailingCommas configures the parser to allow (true) or reject
// (false) a comma directly before the closing bracket of an object or array.
// Trailing commas are a non-standard extension of the JSON spec.
func (p *Parser) AllowTrailingCommas(ok bool) { p.tcomma = ok }

// SetMaxDepth sets the container nesting limit of p. If n <= 0 the limit
// reverts to DefaultMaxDepth.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// Offset reports the number of input bytes consumed so far. After a
// successful ParseDocument it equals the length of the input.
func (p *Parser) Offset() int { return p.sc.Offset() }

// Parse parses a single complete JSON document from r. Input after the
// document, other than whitespace, is reported as a TrailingContent error.
// In case of error the returned error has concrete type
// [*descent.SyntaxError].
func Parse(r io.Reader) (Value, error) { return NewParser(r).ParseDocument() }

// ParseString parses a single complete JSON document from s.
func ParseString(s string) (Value, error) { return Parse(strings.NewReader(s)) }

// ParseDocument parses one value from the input and verifies that nothing
// but whitespace remains.
func (p *Parser) ParseDocument() (Value, error) {
	v, err := p.ParseValue()
	if err != nil {
		return nil, err
	}
	if err := p.advance(); err == io.EOF {
		return v, nil
	} else if err != nil {
		var serr *descent.SyntaxError
		if errors.As(err, &serr) {
			return nil, descent.Errorf(descent.TrailingContent, serr.Location, err,
				"trailing content after document")
		}
		return nil, err
	}
	return nil, p.failf(descent.TrailingContent, "unexpected %v after document", p.sc.Token())
}

// ParseValue parses one value from the front of the input, leaving the
// remainder unconsumed. Callers that require the whole input to be a single
// document should use ParseDocument instead.
func (p *Parser) ParseValue() (Value, error) {
	if err := p.advance(); err != nil {
		if err == io.EOF {
			return nil, p.failf(descent.UnexpectedToken, "unexpected end of input")
		}
		return nil, err
	}
	return p.parseValue()
}

// parseValue consumes a single value of any type.
// Precondition: the scanner is positioned on the value's first token.
func (p *Parser) parseValue() (Value, error) {
	switch tok := p.sc.Token(); tok {
	case descent.LBrace:
		return p.parseObject()
	case descent.LSquare:
		return p.parseArray()
	case descent.String:
		return p.parseString()
	case descent.Integer, descent.Number:
		return p.parseNumber()
	case descent.True, descent.False:
		sp := p.sc.Span()
		return Bool{
			datum: datum{pos: sp.Pos, end: sp.End, text: string(p.sc.Text())},
			value: tok == descent.True,
		}, nil
	case descent.Null:
		sp := p.sc.Span()
		return Null{datum{pos: sp.Pos, end: sp.End, text: string(p.sc.Text())}}, nil
	default:
		return nil, p.failf(descent.UnexpectedToken, "unexpected %v", tok)
	}
}

func (p *Parser) parseString() (Value, error) {
	sp := p.sc.Span()
	dec, err := p.sc.Unescape()
	if err != nil {
		return nil, err
	}
	return String{datum{pos: sp.Pos, end: sp.End, text: string(dec)}}, nil
}

func (p *Parser) parseNumber() (Value, error) {
	sp := p.sc.Span()
	text := string(p.sc.Text())

	// A lexically valid number can still overflow the payload type; that is
	// reported as NumberOutOfRange, distinct from a lexical failure.
	v, err := p.sc.Float64()
	if err != nil {
		return nil, err
	}
	return Number{
		datum: datum{pos: sp.Pos, end: sp.End, text: text},
		value: v,
		isInt: p.sc.Token() == descent.Integer,
	}, nil
}

// parseArray consumes an array.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (p *Parser) parseArray() (Value, error) {
	if err := p.push(); err != nil {
		return nil, err
	}
	defer p.pop()

	arr := &Array{pos: p.sc.Span().Pos}
	if err := p.advanceIn(descent.UnexpectedToken, "array"); err != nil {
		return nil, err
	}
	if p.sc.Token() == descent.RSquare {
		arr.end = p.sc.Span().End
		return arr, nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr.Values = append(arr.Values, v)

		// Check whether we have more elements (",") or are done ("]").
		if err := p.advanceIn(descent.ExpectedCommaOrBracket, "array"); err != nil {
			return nil, err
		}
		switch tok := p.sc.Token(); tok {
		case descent.RSquare:
			arr.end = p.sc.Span().End
			return arr, nil
		case descent.Comma:
			if err := p.advanceIn(descent.UnexpectedToken, "array"); err != nil {
				return nil, err
			}
			if p.sc.Token() == descent.RSquare {
				if p.tcomma {
					arr.end = p.sc.Span().End
					return arr, nil
				}
				return nil, p.failf(descent.TrailingComma, "trailing comma before %v", descent.RSquare)
			}
		default:
			return nil, p.failf(descent.ExpectedCommaOrBracket,
				"expected %v or %v, got %v", descent.Comma, descent.RSquare, tok)
		}
	}
}

// parseObject consumes an object.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (p *Parser) parseObject() (Value, error) {
	if err := p.push(); err != nil {
		return nil, err
	}
	defer p.pop()

	obj := &Object{pos: p.sc.Span().Pos}
	if err := p.advanceIn(descent.UnexpectedToken, "object"); err != nil {
		return nil, err
	}
	if p.sc.Token() == descent.RBrace {
		obj.end = p.sc.Span().End
		return obj, nil
	}
	for {
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		obj.Members = append(obj.Members, m)

		// Check whether we have more members (",") or are done ("}").
		if err := p.advanceIn(descent.ExpectedCommaOrBracket, "object"); err != nil {
			return nil, err
		}
		switch tok := p.sc.Token(); tok {
		case descent.RBrace:
			obj.end = p.sc.Span().End
			return obj, nil
		case descent.Comma:
			if err := p.advanceIn(descent.UnexpectedToken, "object"); err != nil {
				return nil, err
			}
			if p.sc.Token() == descent.RBrace {
				if p.tcomma {
					obj.end = p.sc.Span().End
					return obj, nil
				}
				return nil, p.failf(descent.TrailingComma, "trailing comma before %v", descent.RBrace)
			}
		default:
			return nil, p.failf(descent.ExpectedCommaOrBracket,
				"expected %v or %v, got %v", descent.Comma, descent.RBrace, tok)
		}
	}
}

// parseMember consumes a single "key": value member.
// Precondition: the scanner is positioned on the key token.
func (p *Parser) parseMember() (*Member, error) {
	if p.sc.Token() != descent.String {
		return nil, p.failf(descent.NonStringKey,
			"object key must be a string, got %v", p.sc.Token())
	}
	sp := p.sc.Span()
	key, err := p.sc.Unescape()
	if err != nil {
		return nil, err
	}
	m := &Member{pos: sp.Pos, Key: string(key)}

	if err := p.advanceIn(descent.ExpectedColon, "object member"); err != nil {
		return nil, err
	}
	if p.sc.Token() != descent.Colon {
		return nil, p.failf(descent.ExpectedColon,
			"expected %v after object key, got %v", descent.Colon, p.sc.Token())
	}
	if err := p.advanceIn(descent.UnexpectedToken, "object member"); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	m.Value = v
	m.end = p.sc.Span().End
	return m, nil
}

// advance moves the scanner to the next significant token, skipping comment
// tokens when the scanner is configured to emit them.
func (p *Parser) advance() error {
	for {
		if err := p.sc.Next(); err != nil {
			return err
		}
		switch p.sc.Token() {
		case descent.LineComment, descent.BlockComment:
			continue
		}
		return nil
	}
}

// advanceIn is advance for positions inside a container, where running out
// of input is a syntax error of the given kind.
func (p *Parser) advanceIn(kind descent.ErrorKind, what string) error {
	if err := p.advance(); err != nil {
		if err == io.EOF {
			return p.failf(kind, "unexpected end of input in %s", what)
		}
		return err
	}
	return nil
}

func (p *Parser) push() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.failf(descent.NestingTooDeep, "nesting exceeds %d levels", p.maxDepth)
	}
	return nil
}

func (p *Parser) pop() { p.depth-- }

func (p *Parser) failf(kind descent.ErrorKind, msg string, args ...any) error {
	return descent.Errorf(kind, p.sc.Location(), nil, msg, args...)
}
