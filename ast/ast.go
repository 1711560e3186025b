// Copyright (C) 2026 Wes France. All Rights Reserved.

// Package ast defines a syntax tree for JSON values, and a recursive-descent
// parser that constructs syntax trees from JSON source.
package ast

import (
	"strconv"
	"strings"

	"github.com/wfrance/descent"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// Span reports the location of the value in the source text.
	Span() descent.Span

	// JSON renders the value as compact JSON text.
	JSON() string
}

// A Datum is a Value with a text representation.
type Datum interface {
	Value
	Text() string
}

func newSpan(pos, end int) descent.Span { return descent.Span{Pos: pos, End: end} }

// An Object is a collection of key-value members. The members appear in the
// order they occur in the source. Duplicate keys are retained; it is up to
// the consumer to decide which member of a duplicate key governs.
type Object struct {
	pos, end int

	Members []*Member
}

// Span satisfies the Value interface.
func (o *Object) Span() descent.Span { return newSpan(o.pos, o.end) }

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.Members) }

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// JSON satisfies the Value interface.
func (o *Object) JSON() string {
	if len(o.Members) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o.Members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object. The key has
// its string escapes already undone.
type Member struct {
	pos, end int

	Key   string
	Value Value
}

// Field constructs a Member with the given key and value.
func Field(key string, v Value) *Member { return &Member{Key: key, Value: v} }

// Span satisfies the Value interface.
func (m *Member) Span() descent.Span { return newSpan(m.pos, m.end) }

// JSON satisfies the Value interface.
func (m *Member) JSON() string { return descent.Quote(m.Key) + ":" + m.Value.JSON() }

// An Array is a sequence of values.
type Array struct {
	pos, end int

	Values []Value
}

// Span satisfies the Value interface.
func (a *Array) Span() descent.Span { return newSpan(a.pos, a.end) }

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.Values) }

// JSON satisfies the Value interface.
func (a *Array) JSON() string {
	if len(a.Values) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a.Values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

type datum struct {
	pos, end int
	text     string
}

// Span satisfies the Value interface.
func (d datum) Span() descent.Span { return newSpan(d.pos, d.end) }

// Text satisfies the Datum interface.
func (d datum) Text() string { return d.text }

// A Number is a numeric value. Its payload is a float64; the source lexeme
// is retained so that rendering does not perturb the original notation.
type Number struct {
	datum
	value float64
	isInt bool
}

// Float64 reports the value of n as a float64.
func (n Number) Float64() float64 { return n.value }

// IsInt reports whether n was written without a fraction or exponent.
func (n Number) IsInt() bool { return n.isInt }

// Int64 reports the value of n truncated to an int64.
func (n Number) Int64() int64 {
	if v, err := strconv.ParseInt(n.text, 10, 64); err == nil {
		return v
	}
	return int64(n.value)
}

// JSON satisfies the Value interface.
func (n Number) JSON() string {
	if n.text != "" {
		return n.text
	}
	if n.isInt {
		return strconv.FormatInt(int64(n.value), 10)
	}
	return strconv.FormatFloat(n.value, 'g', -1, 64)
}

// A Bool is a Boolean constant, true or false.
type Bool struct {
	datum
	value bool
}

// Value reports the truth value of b.
func (b Bool) Value() bool { return b.value }

// JSON satisfies the Value interface.
func (b Bool) JSON() string { return strconv.FormatBool(b.value) }

// A String is a string value. Its text has all escapes already undone;
// use JSON to recover a quoted form.
type String struct{ datum }

// JSON satisfies the Value interface.
func (s String) JSON() string { return descent.Quote(s.text) }

// Null represents the null constant.
type Null struct{ datum }

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }
