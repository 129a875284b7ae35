package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/shibukawa/snapregex"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// loadConfig loads the configuration and applies its color mode.
func (c *Context) loadConfig() (*snapregex.Config, error) {
	config, err := snapregex.LoadConfig(c.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	color.NoColor = !config.UseColor(!color.NoColor)

	return config, nil
}

// CLI represents the command-line interface
var CLI struct {
	Config  string     `help:"Configuration file path" default:"snapregex.yaml"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Quiet   bool       `help:"Suppress output" short:"q"`
	Match   MatchCmd   `cmd:"" help:"Match a pattern against a subject"`
	Inspect InspectCmd `cmd:"" help:"Show the parsed term structure of a pattern"`
	Grep    GrepCmd    `cmd:"" help:"Print lines containing a match"`
	Test    TestCmd    `cmd:"" help:"Run regex case documents"`
	Compare CompareCmd `cmd:"" help:"Compare results with Go's regexp package"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Stdout, "snapregex v0.1.0")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("snapregex"),
		kong.Description("A small backtracking regular expression engine."),
	)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}

	err := ctx.Run(appCtx)

	switch {
	case err == nil:
	case errors.Is(err, ErrNoMatch):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}
