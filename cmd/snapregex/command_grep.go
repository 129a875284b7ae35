package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/snapregex"
)

// maxLineSize is the longest line grep accepts.
const maxLineSize = 16 * 1024 * 1024

// GrepCmd prints the lines of files, or of stdin, that contain a match.
type GrepCmd struct {
	Pattern string   `arg:"" help:"Pattern to search for"`
	Files   []string `arg:"" optional:"" help:"Files to search; stdin when omitted" type:"path"`
	Count   bool     `help:"Print only the number of matching lines" short:"c"`
}

// Run executes the grep command. It returns ErrNoMatch when no line matched.
func (cmd *GrepCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	re, err := snapregex.Compile(cmd.Pattern)
	if err != nil {
		return err
	}

	re = re.WithOptions(config.MatchOptions())
	highlight := color.New(color.FgRed, color.Bold)
	multi := len(cmd.Files) > 1

	total := 0

	if len(cmd.Files) == 0 {
		n, err := cmd.scan(ctx, re, highlight, "", ctx.Stdin)
		if err != nil {
			return err
		}

		total += n
	}

	for _, path := range cmd.Files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %q: %w", path, err)
		}

		prefix := ""
		if multi {
			prefix = path
		}

		n, err := cmd.scan(ctx, re, highlight, prefix, f)
		f.Close()

		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		total += n
	}

	if total == 0 {
		return ErrNoMatch
	}

	return nil
}

func (cmd *GrepCmd) scan(ctx *Context, re *snapregex.Regex, highlight *color.Color, prefix string, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	found := 0

	for scanner.Scan() {
		line := scanner.Text()

		m, err := re.Match(line)
		if err != nil {
			return found, err
		}

		if !m.Matched {
			continue
		}

		found++

		if cmd.Count || ctx.Quiet {
			continue
		}

		if prefix != "" {
			fmt.Fprintf(ctx.Stdout, "%s:", prefix)
		}

		runes := []rune(line)
		end := m.Offset + len([]rune(m.Text))
		fmt.Fprintf(ctx.Stdout, "%s%s%s\n",
			string(runes[:m.Offset]), highlight.Sprint(m.Text), string(runes[end:]))
	}

	if err := scanner.Err(); err != nil {
		return found, err
	}

	if cmd.Count && !ctx.Quiet {
		if prefix != "" {
			fmt.Fprintf(ctx.Stdout, "%s:", prefix)
		}

		fmt.Fprintf(ctx.Stdout, "%d\n", found)
	}

	return found, nil
}
