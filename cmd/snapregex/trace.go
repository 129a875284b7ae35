package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/snapregex/engine"
)

type tracePrinter struct {
	w      io.Writer
	colors map[engine.State]*color.Color
}

func newTracePrinter(w io.Writer) *tracePrinter {
	return &tracePrinter{
		w: w,
		colors: map[engine.State]*color.Color{
			engine.Scanning:        color.New(color.FgBlue),
			engine.Walking:         color.New(color.Reset),
			engine.Backtracking:    color.New(color.FgYellow),
			engine.Matched:         color.New(color.FgGreen),
			engine.NoMatchAtOffset: color.New(color.FgRed),
		},
	}
}

// Trace implements engine.Tracer.
func (p *tracePrinter) Trace(ev engine.Event) {
	var b strings.Builder

	fmt.Fprintf(&b, "[%d] %-18s", ev.Offset, ev.State)

	switch ev.State {
	case engine.Walking, engine.Backtracking:
		fmt.Fprintf(&b, " term=%d pos=%d text=%q", ev.Term, ev.Pos, ev.Text)
	case engine.Matched:
		fmt.Fprintf(&b, " text=%q", ev.Text)
	}

	p.colors[ev.State].Fprintln(p.w, b.String())
}
