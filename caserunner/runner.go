// Package caserunner executes regex case documents.
package caserunner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/shibukawa/snapregex"
	"github.com/shibukawa/snapregex/casefile"
)

// Sentinel errors
var (
	// ErrMismatch is reported for a case whose match differs from the expected one.
	ErrMismatch = errors.New("unexpected match result")
	// ErrExpectedSyntaxError is reported when a document marked invalid compiles.
	ErrExpectedSyntaxError = errors.New("pattern was expected to be rejected")
)

// Runner runs case documents in parallel.
type Runner struct {
	parallel   int
	verbose    bool
	runPattern *snapregex.Regex
	opts       snapregex.Options
	out        io.Writer
	mu         sync.Mutex
}

// CaseResult is the outcome of one table row.
type CaseResult struct {
	Case    casefile.Case
	Got     snapregex.Match
	Success bool
	Error   error
}

// FileResult is the outcome of one document.
type FileResult struct {
	Path     string
	Title    string
	Success  bool
	Duration time.Duration
	Cases    []CaseResult
	Error    error
}

// Summary represents the overall case execution summary
type Summary struct {
	TotalFiles    int
	PassedFiles   int
	FailedFiles   int
	TotalCases    int
	PassedCases   int
	FailedCases   int
	TotalDuration time.Duration
	Results       []FileResult
}

// NewRunner creates a runner. parallel <= 0 uses the number of CPUs.
func NewRunner(parallel int, opts snapregex.Options) *Runner {
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	return &Runner{
		parallel: parallel,
		opts:     opts,
		out:      os.Stdout,
	}
}

// SetVerbose enables or disables verbose output
func (r *Runner) SetVerbose(verbose bool) {
	r.verbose = verbose
}

// SetOutput redirects verbose progress output.
func (r *Runner) SetOutput(w io.Writer) {
	r.out = w
}

// SetRunPattern keeps only documents whose file name, without extension,
// contains a match of pattern.
func (r *Runner) SetRunPattern(pattern string) error {
	if pattern == "" {
		r.runPattern = nil
		return nil
	}

	re, err := snapregex.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid run pattern: %w", err)
	}

	r.runPattern = re

	return nil
}

// FindCaseFiles lists the markdown documents under the given files or
// directories, sorted and filtered by the run pattern.
func (r *Runner) FindCaseFiles(roots ...string) ([]string, error) {
	var files []string

	for _, root := range roots {
		err := walkAndProcessFiles(root, func(p string, info os.FileInfo) {
			if strings.HasSuffix(info.Name(), ".md") {
				files = append(files, p)
			}
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)

	return r.filterCaseFiles(files), nil
}

func (r *Runner) filterCaseFiles(files []string) []string {
	if r.runPattern == nil {
		return files
	}

	var filtered []string

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		if r.runPattern.MatchString(name) {
			filtered = append(filtered, file)
		}
	}

	return filtered
}

// RunFiles parses and runs every file. Case failures are reported in the
// summary; the returned error is only set when ctx is cancelled.
func (r *Runner) RunFiles(ctx context.Context, files []string) (*Summary, error) {
	results := make([]FileResult, len(files))
	startTime := time.Now()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.parallel)

	for i, file := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = r.runFile(ctx, file)
			r.progress(results[i])

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalFiles:    len(files),
		TotalDuration: time.Since(startTime),
		Results:       results,
	}

	for _, res := range results {
		if res.Success {
			summary.PassedFiles++
		} else {
			summary.FailedFiles++
		}

		for _, c := range res.Cases {
			summary.TotalCases++
			if c.Success {
				summary.PassedCases++
			} else {
				summary.FailedCases++
			}
		}
	}

	return summary, nil
}

func (r *Runner) runFile(ctx context.Context, path string) FileResult {
	start := time.Now()

	doc, err := casefile.ParseFile(path)
	if err != nil {
		return FileResult{Path: path, Error: err, Duration: time.Since(start)}
	}

	res := r.RunDocument(ctx, doc)
	res.Duration = time.Since(start)

	return res
}

// RunDocument runs the cases of an already parsed document.
func (r *Runner) RunDocument(ctx context.Context, doc *casefile.Document) FileResult {
	res := FileResult{Path: doc.Path, Title: doc.Title}

	re, err := snapregex.Compile(doc.Pattern)

	if doc.Meta.Invalid {
		switch {
		case errors.Is(err, snapregex.ErrPatternSyntax):
			res.Success = true
		case err == nil:
			res.Error = fmt.Errorf("%w: %q (line %d)", ErrExpectedSyntaxError, doc.Pattern, doc.PatternLine)
		default:
			res.Error = err
		}

		return res
	}

	if err != nil {
		res.Error = fmt.Errorf("line %d: %w", doc.PatternLine, err)
		return res
	}

	opts := r.opts
	if doc.Meta.MaxSteps > 0 {
		opts.MaxSteps = doc.Meta.MaxSteps
	}

	re = re.WithOptions(opts)
	res.Success = true

	for _, c := range doc.Cases {
		cr := runCase(ctx, re, c)
		if !cr.Success {
			res.Success = false
		}

		res.Cases = append(res.Cases, cr)
	}

	return res
}

func runCase(ctx context.Context, re *snapregex.Regex, c casefile.Case) CaseResult {
	got, err := re.MatchContext(ctx, c.Subject)
	if err != nil {
		return CaseResult{Case: c, Error: fmt.Errorf("line %d: %w", c.Line, err)}
	}

	if got.Matched == c.Matched && got.Text == c.Expected {
		return CaseResult{Case: c, Got: got, Success: true}
	}

	return CaseResult{
		Case: c,
		Got:  got,
		Error: fmt.Errorf("%w: line %d: subject %q: want %s, got %s",
			ErrMismatch, c.Line, c.Subject, describe(c.Matched, c.Expected), describe(got.Matched, got.Text)),
	}
}

func describe(matched bool, text string) string {
	if !matched {
		return "no match"
	}

	return fmt.Sprintf("%q", text)
}

func (r *Runner) progress(res FileResult) {
	if !r.verbose {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if res.Success {
		color.New(color.FgGreen).Fprintf(r.out, "--- PASS: %s (%.3fs)\n", res.Path, res.Duration.Seconds())
		return
	}

	color.New(color.FgRed).Fprintf(r.out, "--- FAIL: %s (%.3fs)\n", res.Path, res.Duration.Seconds())
}

// PrintSummary prints the case execution summary
func PrintSummary(w io.Writer, summary *Summary) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "=== Regex Case Summary ===\n")
	fmt.Fprintf(w, "Files: %d total, %d passed, %d failed\n",
		summary.TotalFiles, summary.PassedFiles, summary.FailedFiles)
	fmt.Fprintf(w, "Cases: %d total, %d passed, %d failed\n",
		summary.TotalCases, summary.PassedCases, summary.FailedCases)
	fmt.Fprintf(w, "Duration: %.3fs\n", summary.TotalDuration.Seconds())

	if summary.FailedFiles > 0 {
		fmt.Fprintf(w, "\nFailed files:\n")

		for _, result := range summary.Results {
			if result.Success {
				continue
			}

			fmt.Fprintf(w, "  %s\n", result.Path)

			if result.Error != nil {
				fmt.Fprintf(w, "    Error: %v\n", result.Error)
			}

			for _, c := range result.Cases {
				if !c.Success {
					fmt.Fprintf(w, "    Error: %v\n", c.Error)
				}
			}
		}
	}

	if summary.FailedFiles == 0 {
		color.New(color.FgGreen).Fprintf(w, "\nAll cases passed! ✅\n")
	} else {
		color.New(color.FgRed).Fprintf(w, "\nSome cases failed! ❌\n")
	}
}
