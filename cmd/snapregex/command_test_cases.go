package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/shibukawa/snapregex/caserunner"
)

// TestCmd runs regex case documents
type TestCmd struct {
	Paths      []string `arg:"" optional:"" help:"Case documents or directories; defaults to runner.cases_dir" type:"path"`
	RunPattern string   `help:"Run only documents whose name matches the pattern" short:"r"`
	Parallel   int      `help:"Number of parallel workers (0 uses the configured value)" default:"0"`
}

// Run executes the test command
func (cmd *TestCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	paths := cmd.Paths
	if len(paths) == 0 {
		paths = []string{config.Runner.CasesDir}
	}

	parallel := cmd.Parallel
	if parallel <= 0 {
		parallel = config.Runner.Parallel
	}

	runner := caserunner.NewRunner(parallel, config.MatchOptions())
	runner.SetVerbose(ctx.Verbose)
	runner.SetOutput(ctx.Stdout)

	if err := runner.SetRunPattern(cmd.RunPattern); err != nil {
		return err
	}

	files, err := runner.FindCaseFiles(paths...)
	if err != nil {
		return fmt.Errorf("failed to find case documents: %w", err)
	}

	if len(files) == 0 {
		return ErrNoCaseFilesFound
	}

	if ctx.Verbose {
		color.New(color.FgBlue).Fprintf(ctx.Stdout, "Running %d case documents with %d workers\n", len(files), parallel)
	}

	summary, err := runner.RunFiles(context.Background(), files)
	if err != nil {
		return err
	}

	if !ctx.Quiet {
		caserunner.PrintSummary(ctx.Stdout, summary)
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%w: %d of %d documents", ErrCasesFailed, summary.FailedFiles, summary.TotalFiles)
	}

	return nil
}
