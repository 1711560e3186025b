// Copyright (C) 2026 Wes France. All Rights Reserved.

package descent

import "fmt"

// An ErrorKind classifies the failure reported by a SyntaxError.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	UnknownError           ErrorKind = iota
	InvalidCharacter                 // a rune that cannot begin or continue any token
	UnexpectedToken                  // a well-formed token that no grammar rule accepts here
	UnterminatedString               // input ended inside a string value
	InvalidEscape                    // malformed backslash escape inside a string
	InvalidNumber                    // malformed numeric literal
	NumberOutOfRange                 // numeric literal not representable as float64
	ExpectedColon                    // object member missing ":" after its key
	ExpectedCommaOrBracket           // missing separator or close bracket in array or object
	TrailingComma                    // "," directly before "]" or "}"
	NonStringKey                     // object key is not a string
	TrailingContent                  // non-blank input after a complete document
	NestingTooDeep                   // container nesting exceeded the parser's depth limit
)

var kindStr = [...]string{
	UnknownError:           "unknown error",
	InvalidCharacter:       "invalid character",
	UnexpectedToken:        "unexpected token",
	UnterminatedString:     "unterminated string",
	InvalidEscape:          "invalid escape",
	InvalidNumber:          "invalid number",
	NumberOutOfRange:       "number out of range",
	ExpectedColon:          "expected colon",
	ExpectedCommaOrBracket: "expected comma or bracket",
	TrailingComma:          "trailing comma",
	NonStringKey:           "non-string object key",
	TrailingContent:        "trailing content",
	NestingTooDeep:         "nesting too deep",
}

func (k ErrorKind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[UnknownError]
	}
	return kindStr[v]
}

// SyntaxError is the concrete type of errors reported by the scanner and the
// parser. Every error carries the kind of failure and the location in the
// input where it was detected.
type SyntaxError struct {
	Kind     ErrorKind
	Location Location
	Message  string

	err error
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location.First, e.Message)
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

// Errorf constructs a SyntaxError with the given kind and location, wrapping
// cause (which may be nil).
func Errorf(kind ErrorKind, loc Location, cause error, msg string, args ...any) *SyntaxError {
	return &SyntaxError{
		Kind:     kind,
		Location: loc,
		Message:  fmt.Sprintf(msg, args...),
		err:      cause,
	}
}
