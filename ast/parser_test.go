// Copyright (C) 2026 Wes France. All Rights Reserved.

package ast_test

import (
	"bytes"
	"errors"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/hujson"
	"github.com/wfrance/descent"
	"github.com/wfrance/descent/ast"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string // compact rendering
	}{
		{`null`, `null`},
		{`true`, `true`},
		{`false`, `false`},
		{`0`, `0`},
		{`-15`, `-15`},
		{`-12.5e2`, `-12.5e2`},
		{`""`, `""`},
		{`"a b c"`, `"a b c"`},
		{`[]`, `[]`},
		{`{}`, `{}`},
		{`  [ ]  `, `[]`},
		{"\n{ }\n", `{}`},
		{`[null]`, `[null]`},
		{`[1, 2, 3]`, `[1,2,3]`},
		{`{"a": 1}`, `{"a":1}`},
		{`{"a": [true, {"b": null}], "c": -0.5}`, `{"a":[true,{"b":null}],"c":-0.5}`},
		{`[[[[0]]]]`, `[[[[0]]]]`},
		{`{"":""}`, `{"":""}`},

		// Duplicate keys are retained in source order.
		{`{"a": 1, "a": 2}`, `{"a":1,"a":2}`},
	}

	for _, test := range tests {
		v, err := ast.ParseString(test.input)
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", test.input, err)
			continue
		}
		if got := v.JSON(); got != test.want {
			t.Errorf("Parse %#q: got %s, want %s", test.input, got, test.want)
		}
	}
}

func TestParseDecoded(t *testing.T) {
	t.Run("Null", func(t *testing.T) {
		v := mustParse(t, `null`)
		if _, ok := v.(ast.Null); !ok {
			t.Errorf("Parse: got %T, want ast.Null", v)
		}
	})
	t.Run("Bool", func(t *testing.T) {
		for input, want := range map[string]bool{"true": true, "false": false} {
			b, ok := mustParse(t, input).(ast.Bool)
			if !ok || b.Value() != want {
				t.Errorf("Parse %q: got (%v, %v), want Bool %v", input, b, ok, want)
			}
		}
	})
	t.Run("Number", func(t *testing.T) {
		n, ok := mustParse(t, `-12.5e2`).(ast.Number)
		if !ok {
			t.Fatalf("Parse: got %T, want ast.Number", n)
		}
		if got := n.Float64(); math.Abs(got+1250) > 1e-9 {
			t.Errorf("Float64: got %v, want -1250", got)
		}
		if n.IsInt() {
			t.Error("IsInt: got true, want false")
		}
	})
	t.Run("Integer", func(t *testing.T) {
		n, ok := mustParse(t, `-37`).(ast.Number)
		if !ok {
			t.Fatalf("Parse: got %T, want ast.Number", n)
		}
		if !n.IsInt() || n.Int64() != -37 {
			t.Errorf("Int64: got (%v, %v), want (-37, true)", n.Int64(), n.IsInt())
		}
	})
	t.Run("String", func(t *testing.T) {
		s, ok := mustParse(t, `"a\nb"`).(ast.String)
		if !ok {
			t.Fatalf("Parse: got %T, want ast.String", s)
		}
		if got := s.Text(); got != "a\nb" {
			t.Errorf("Text: got %#q, want %#q (escapes must be decoded)", got, "a\nb")
		}
	})
	t.Run("SurrogatePair", func(t *testing.T) {
		s, ok := mustParse(t, `"\uD834\uDD1E"`).(ast.String)
		if !ok {
			t.Fatalf("Parse: got %T, want ast.String", s)
		}
		if got, want := s.Text(), "\U0001D11E"; got != want {
			t.Errorf("Text: got %#q, want %#q (pair must combine)", got, want)
		}
	})
	t.Run("Key", func(t *testing.T) {
		obj := mustParse(t, `{"tab\there": 1}`).(*ast.Object)
		if m := obj.Find("tab\there"); m == nil {
			t.Errorf("Find: decoded key not found in %s", obj.JSON())
		}
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  descent.ErrorKind
	}{
		{``, descent.UnexpectedToken},
		{`   `, descent.UnexpectedToken},
		{`]`, descent.UnexpectedToken},
		{`}`, descent.UnexpectedToken},
		{`:`, descent.UnexpectedToken},
		{`[`, descent.UnexpectedToken},
		{`{`, descent.UnexpectedToken},
		{`{"a":}`, descent.UnexpectedToken},
		{`[,1]`, descent.UnexpectedToken},

		{`"abc`, descent.UnterminatedString},
		{`"a\qb"`, descent.InvalidEscape},
		{`01`, descent.InvalidNumber},
		{`1.`, descent.InvalidNumber},
		{`1e999`, descent.NumberOutOfRange},
		{`-1e999`, descent.NumberOutOfRange},

		{`{"a" 1}`, descent.ExpectedColon},
		{`{"a"}`, descent.ExpectedColon},
		{`[1 2]`, descent.ExpectedCommaOrBracket},
		{`[1:2]`, descent.ExpectedCommaOrBracket},
		{`{"a":1 "b":2}`, descent.ExpectedCommaOrBracket},
		{`{"a":1`, descent.ExpectedCommaOrBracket},
		{`{"a":1,`, descent.UnexpectedToken},
		{`[1,2`, descent.ExpectedCommaOrBracket},
		{`[1,`, descent.UnexpectedToken},

		{`[1,2,]`, descent.TrailingComma},
		{`[,]`, descent.UnexpectedToken},
		{`{"a":1,}`, descent.TrailingComma},

		{`{1:2}`, descent.NonStringKey},
		{`{true:1}`, descent.NonStringKey},
		{`{[]:1}`, descent.NonStringKey},
		{`{,}`, descent.NonStringKey},

		{`{"a":1} x`, descent.TrailingContent},
		{`null null`, descent.TrailingContent},
		{`1 @`, descent.TrailingContent},
		{`[] []`, descent.TrailingContent},
	}

	for _, test := range tests {
		v, err := ast.ParseString(test.input)
		if err == nil {
			t.Errorf("Parse %#q: got %s, want %v error", test.input, v.JSON(), test.want)
			continue
		}
		var serr *descent.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: error %v is not a SyntaxError", test.input, err)
		} else if serr.Kind != test.want {
			t.Errorf("Parse %#q: got kind %v, want %v (error: %v)", test.input, serr.Kind, test.want, err)
		}
	}
}

func TestNestingTooDeep(t *testing.T) {
	// Pathologically deep input must fail cleanly, not exhaust the stack.
	input := strings.Repeat("[", 10000)
	v, err := ast.ParseString(input)
	if err == nil {
		t.Fatalf("Parse: got %s, want error", v.JSON())
	}
	var serr *descent.SyntaxError
	if !errors.As(err, &serr) || serr.Kind != descent.NestingTooDeep {
		t.Errorf("Parse: got error %v, want kind %v", err, descent.NestingTooDeep)
	}

	t.Run("SetMaxDepth", func(t *testing.T) {
		const deep = `[[[[{"a":[0]}]]]]`

		p := ast.NewParser(strings.NewReader(deep))
		p.SetMaxDepth(6)
		if _, err := p.ParseDocument(); err != nil {
			t.Errorf("ParseDocument (limit 6): unexpected error: %v", err)
		}

		p = ast.NewParser(strings.NewReader(deep))
		p.SetMaxDepth(4)
		if _, err := p.ParseDocument(); err == nil {
			t.Error("ParseDocument (limit 4): got nil, want error")
		} else if !errors.As(err, &serr) || serr.Kind != descent.NestingTooDeep {
			t.Errorf("ParseDocument (limit 4): got %v, want kind %v", err, descent.NestingTooDeep)
		}
	})
}

func TestOffset(t *testing.T) {
	const input = `  {"a": [1, 2], "b": null}  `

	p := ast.NewParser(strings.NewReader(input))
	v, err := p.ParseDocument()
	if err != nil {
		t.Fatalf("ParseDocument: unexpected error: %v", err)
	}
	if got := p.Offset(); got != len(input) {
		t.Errorf("Offset: got %d, want %d", got, len(input))
	}
	if got, want := v.JSON(), `{"a":[1,2],"b":null}`; got != want {
		t.Errorf("JSON: got %s, want %s", got, want)
	}
}

func TestParseValuePrefix(t *testing.T) {
	// ParseValue consumes one value and leaves the remainder alone.
	p := ast.NewParser(strings.NewReader(`{"a": 1} "next"`))
	v, err := p.ParseValue()
	if err != nil {
		t.Fatalf("ParseValue: unexpected error: %v", err)
	}
	if got, want := v.JSON(), `{"a":1}`; got != want {
		t.Errorf("First value: got %s, want %s", got, want)
	}
	w, err := p.ParseValue()
	if err != nil {
		t.Fatalf("ParseValue: unexpected error: %v", err)
	}
	if got, want := w.JSON(), `"next"`; got != want {
		t.Errorf("Second value: got %s, want %s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	docs := []string{
		`null`,
		`[1,2,3]`,
		`{"a":[true,{"b":null}],"c":-0.5,"d":"x\ny"}`,
		`{"counts":[0,1,1,2,3,5],"limits":{"min":-62.5,"max":56.7}}`,
	}
	if input, err := os.ReadFile("../testdata/input.json"); err != nil {
		t.Errorf("Reading test input: %v", err)
	} else {
		docs = append(docs, string(input))
	}

	for _, doc := range docs {
		v1, err := ast.ParseString(doc)
		if err != nil {
			t.Errorf("Parse: unexpected error: %v", err)
			continue
		}
		v2, err := ast.ParseString(v1.JSON())
		if err != nil {
			t.Errorf("Reparse: unexpected error: %v", err)
			continue
		}
		if diff := cmp.Diff(v1.JSON(), v2.JSON()); diff != "" {
			t.Errorf("Round trip differs: (-first, +second)\n%s", diff)
		}
	}
}

const relaxedInput = `{
  // station metadata
  "id": "KPDX",  /* ICAO identifier */
  "elevM": 9.4,
  "active": true,
  "runways": [10, 28,],
}`

func TestRelaxed(t *testing.T) {
	t.Run("StrictRejects", func(t *testing.T) {
		if v, err := ast.ParseString(relaxedInput); err == nil {
			t.Errorf("Parse: got %s, want error", v.JSON())
		}
		v, err := ast.ParseString(`[1, 2,]`)
		if err == nil {
			t.Fatalf("Parse: got %s, want error", v.JSON())
		}
		var serr *descent.SyntaxError
		if !errors.As(err, &serr) || serr.Kind != descent.TrailingComma {
			t.Errorf("Parse: got error %v, want kind %v", err, descent.TrailingComma)
		}
	})

	t.Run("RelaxedAccepts", func(t *testing.T) {
		p := ast.NewParser(strings.NewReader(relaxedInput))
		p.AllowComments(true)
		p.AllowTrailingCommas(true)
		v, err := p.ParseDocument()
		if err != nil {
			t.Fatalf("ParseDocument: unexpected error: %v", err)
		}
		want := `{"id":"KPDX","elevM":9.4,"active":true,"runways":[10,28]}`
		if got := v.JSON(); got != want {
			t.Errorf("JSON: got %s, want %s", got, want)
		}
	})

	// The relaxed dialect is the same one hujson standardizes, so parsing
	// the raw input must agree with parsing the standardized form.
	t.Run("MatchesHuJSON", func(t *testing.T) {
		std, err := hujson.Standardize([]byte(relaxedInput))
		if err != nil {
			t.Fatalf("Standardize: unexpected error: %v", err)
		}
		want, err := ast.Parse(bytes.NewReader(std))
		if err != nil {
			t.Fatalf("Parse standardized: unexpected error: %v", err)
		}

		p := ast.NewParser(strings.NewReader(relaxedInput))
		p.AllowComments(true)
		p.AllowTrailingCommas(true)
		got, err := p.ParseDocument()
		if err != nil {
			t.Fatalf("ParseDocument: unexpected error: %v", err)
		}
		if diff := cmp.Diff(want.JSON(), got.JSON()); diff != "" {
			t.Errorf("Relaxed parse disagrees with hujson: (-hujson, +got)\n%s", diff)
		}
	})
}

func TestParseFile(t *testing.T) {
	input, err := os.ReadFile("../testdata/input.json")
	if err != nil {
		t.Fatalf("Reading test input: %v", err)
	}

	v, err := ast.Parse(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	root, ok := v.(*ast.Object)
	if !ok {
		t.Fatalf("Root is %T, not object", v)
	}

	obs := root.Find("observations")
	if obs == nil {
		t.Fatal(`Key "observations" not found`)
	}
	lst, ok := obs.Value.(*ast.Array)
	if !ok {
		t.Fatalf("Member value is %T, not array", obs.Value)
	} else if lst.Len() != 3 {
		t.Fatalf("Observations: got %d entries, want 3", lst.Len())
	}

	if got, err := ast.Path(root, "observations", 1, "gustKt"); err != nil {
		t.Errorf("Path: unexpected error: %v", err)
	} else if n, ok := got.(ast.Number); !ok || n.Int64() != 17 {
		t.Errorf("Path: got %v, want 17", got)
	}
	if got, err := ast.Path(root, "sensors", "anemometer", "driftC"); err != nil {
		t.Errorf("Path: unexpected error: %v", err)
	} else if _, ok := got.(ast.Null); !ok {
		t.Errorf("Path: got %T, want ast.Null", got)
	}
	if got, err := ast.Path(root, "flags", "estimated", -1); err != nil {
		t.Errorf("Path: unexpected error: %v", err)
	} else if s, ok := got.(ast.String); !ok || s.Text() != "gustKt" {
		t.Errorf("Path: got %v, want \"gustKt\"", got)
	}
}

func mustParse(t *testing.T, input string) ast.Value {
	t.Helper()
	v, err := ast.ParseString(input)
	if err != nil {
		t.Fatalf("Parse %#q: unexpected error: %v", input, err)
	}
	return v
}
