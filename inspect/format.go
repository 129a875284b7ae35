package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// WriteText prints the term tree as an indented outline, one node per line.
func WriteText(w io.Writer, res InspectResult) error {
	if _, err := fmt.Fprintf(w, "pattern: %q\n", res.Pattern); err != nil {
		return err
	}

	for _, t := range res.Terms {
		if err := writeNode(w, t, 0); err != nil {
			return err
		}
	}

	for _, n := range res.Notes {
		if _, err := fmt.Fprintf(w, "note: %s\n", n); err != nil {
			return err
		}
	}

	return nil
}

func writeNode(w io.Writer, t TermInfo, depth int) error {
	var b strings.Builder

	b.WriteString(strings.Repeat("  ", depth))
	if t.Index > 0 {
		fmt.Fprintf(&b, "%d. ", t.Index)
	}
	fmt.Fprintf(&b, "%s %q", t.Kind, t.Text)

	switch {
	case t.Quantifier != "" && t.Max < 0:
		fmt.Fprintf(&b, " min=%d max=inf", t.Min)
	case t.Quantifier != "":
		fmt.Fprintf(&b, " min=%d max=%d", t.Min, t.Max)
	case t.Negated:
		b.WriteString(" negated")
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	for _, c := range t.Children {
		if err := writeNode(w, c, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// WriteYAML encodes the result as YAML.
func WriteYAML(w io.Writer, res InspectResult) error {
	data, err := yaml.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	_, err = w.Write(data)

	return err
}
