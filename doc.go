// Copyright (C) 2026 Wes France. All Rights Reserved.

// Package descent implements the lexical layer of a JSON recursive-descent
// parser.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a scanner
// from an io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := descent.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// has concrete type *descent.SyntaxError and carries the kind of failure and
// its location in the input:
//
//	if err := s.Err(); err != io.EOF {
//	   var serr *descent.SyntaxError
//	   if errors.As(err, &serr) {
//	      log.Fatalf("Scanning failed: %v (%v)", serr, serr.Kind)
//	   }
//	}
//
// # Parsing
//
// The descent/ast package implements a recursive-descent parser over the
// scanner's tokens. It consumes a complete JSON document and returns the
// corresponding value tree:
//
//	v, err := ast.Parse(input)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//	fmt.Println(v.JSON())
//
// Both layers report errors of the same concrete type, so a caller can
// dispatch on the kind of failure regardless of which layer detected it.
package descent
