// Copyright (C) 2026 Wes France. All Rights Reserved.

// Program descent parses a JSON document and prints it back in compact form,
// or reports a structured syntax error with its input location.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/wfrance/descent"
	"github.com/wfrance/descent/ast"
)

var cli struct {
	Path           string `arg:"" optional:"" help:"Input file. If omitted, reads from stdin." type:"existingfile"`
	Comments       bool   `short:"c" help:"Allow // and /* */ comments in the input."`
	TrailingCommas bool   `short:"t" help:"Allow trailing commas in objects and arrays."`
	MaxDepth       int    `short:"d" default:"1000" help:"Maximum container nesting depth."`
	Quiet          bool   `short:"q" help:"Validate only; do not print the parsed value."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("descent"),
		kong.Description("Parse a JSON document and print it back in compact form."),
		kong.UsageOnError(),
	)

	var in io.Reader = os.Stdin
	if cli.Path != "" {
		f, err := os.Open(cli.Path)
		kctx.FatalIfErrorf(err)
		defer f.Close()
		in = f
	}

	p := ast.NewParser(in)
	p.AllowComments(cli.Comments)
	p.AllowTrailingCommas(cli.TrailingCommas)
	p.SetMaxDepth(cli.MaxDepth)

	v, err := p.ParseDocument()
	if err != nil {
		var serr *descent.SyntaxError
		if errors.As(err, &serr) {
			fmt.Fprintf(os.Stderr, "descent: %v: %v\n", serr.Kind, err)
			os.Exit(1)
		}
		kctx.FatalIfErrorf(err)
	}
	if !cli.Quiet {
		fmt.Println(v.JSON())
	}
}
