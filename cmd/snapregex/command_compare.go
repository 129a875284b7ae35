package main

import (
	"fmt"
	"regexp"

	"github.com/fatih/color"

	"github.com/shibukawa/snapregex"
)

// CompareCmd runs a pattern through this engine and through Go's regexp.
type CompareCmd struct {
	Pattern  string   `arg:"" help:"Pattern to compare"`
	Subjects []string `arg:"" help:"Subjects to match"`
}

// Run executes the compare command. Differences are reported, not returned as errors.
func (cmd *CompareCmd) Run(ctx *Context) error {
	if len(cmd.Subjects) == 0 {
		return ErrNoSubjects
	}

	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	re, err := snapregex.Compile(cmd.Pattern)
	if err != nil {
		return err
	}

	re = re.WithOptions(config.MatchOptions())

	goRe, goErr := regexp.Compile(cmd.Pattern)
	if goErr != nil {
		color.New(color.FgYellow).Fprintf(ctx.Stdout, "go regexp rejects the pattern: %v\n", goErr)
	}

	same := color.New(color.FgGreen)
	differs := color.New(color.FgYellow)

	for _, subject := range cmd.Subjects {
		m, err := re.Match(subject)
		if err != nil {
			return fmt.Errorf("%q: %w", subject, err)
		}

		ours := quoted(m.Matched, m.Text)

		if goErr != nil {
			fmt.Fprintf(ctx.Stdout, "%q: snapregex=%s\n", subject, ours)
			continue
		}

		loc := goRe.FindStringIndex(subject)
		theirs := quoted(loc != nil, "")
		if loc != nil {
			theirs = quoted(true, subject[loc[0]:loc[1]])
		}

		marker := same.Sprint("same")
		if ours != theirs {
			marker = differs.Sprint("differs")
		}

		fmt.Fprintf(ctx.Stdout, "%q: snapregex=%s go=%s %s\n", subject, ours, theirs, marker)
	}

	return nil
}

func quoted(matched bool, text string) string {
	if !matched {
		return "Failure"
	}

	return fmt.Sprintf("\"%s\"", text)
}
