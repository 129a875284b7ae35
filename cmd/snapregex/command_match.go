package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/shibukawa/snapregex"
)

// MatchCmd prints the leftmost match of a pattern in a subject.
type MatchCmd struct {
	Pattern  string `arg:"" help:"Pattern to compile"`
	Subject  string `arg:"" help:"Text to search"`
	Trace    bool   `help:"Print engine state transitions to stderr"`
	MaxSteps int    `help:"Override the configured step budget (0 is unlimited, negative keeps the configured one)" default:"-1"`
}

// Run executes the match command. A failed match prints "Failure" and is not an error.
func (cmd *MatchCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	re, err := snapregex.Compile(cmd.Pattern)
	if err != nil {
		return err
	}

	opts := config.MatchOptions()
	if cmd.MaxSteps >= 0 {
		opts.MaxSteps = cmd.MaxSteps
	}

	if cmd.Trace {
		opts.Tracer = newTracePrinter(ctx.Stderr)
	}

	m, err := re.WithOptions(opts).Match(cmd.Subject)
	if err != nil {
		return err
	}

	if !m.Matched {
		fmt.Fprintln(ctx.Stdout, "Failure")
		return nil
	}

	fmt.Fprintf(ctx.Stdout, "\"%s\"\n", m.Text)

	if ctx.Verbose {
		color.New(color.FgBlue).Fprintf(ctx.Stderr, "offset %d, %d steps\n", m.Offset, m.Steps)
	}

	return nil
}
