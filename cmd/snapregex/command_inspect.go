package main

import (
	"encoding/json"
	"fmt"

	"github.com/shibukawa/snapregex/inspect"
)

// InspectCmd dumps the parsed term structure of a pattern.
type InspectCmd struct {
	Pattern string `arg:"" help:"Pattern to inspect"`
	Format  string `help:"Output format (text, json, yaml, csv)" default:"text" enum:"text,json,yaml,csv" short:"f"`
	Strict  bool   `help:"Fail on syntax errors instead of reporting them as notes"`
	Pretty  bool   `help:"Pretty-print JSON output"`
}

// Run executes the inspect command.
func (cmd *InspectCmd) Run(ctx *Context) error {
	res, err := inspect.InspectPattern(cmd.Pattern, inspect.InspectOptions{Strict: cmd.Strict, Pretty: cmd.Pretty})
	if err != nil {
		return err
	}

	switch cmd.Format {
	case "text":
		return inspect.WriteText(ctx.Stdout, res)
	case "yaml":
		return inspect.WriteYAML(ctx.Stdout, res)
	case "csv":
		data, err := inspect.TermsCSV(res, true)
		if err != nil {
			return err
		}

		_, err = ctx.Stdout.Write(data)

		return err
	case "json":
		enc := json.NewEncoder(ctx.Stdout)
		if cmd.Pretty {
			enc.SetIndent("", "  ")
		}

		return enc.Encode(res)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, cmd.Format)
	}
}
