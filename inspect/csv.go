package inspect

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// TermsCSV renders only the top-level term list to CSV with an optional header row.
func TermsCSV(res InspectResult, withHeader bool) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if withHeader {
		_ = w.Write([]string{"index", "kind", "text", "quantifier", "min", "max"})
	}

	for _, t := range res.Terms {
		min, max := "", ""
		if t.Quantifier != "" {
			min = strconv.Itoa(t.Min)
			max = strconv.Itoa(t.Max)
		}

		_ = w.Write([]string{strconv.Itoa(t.Index), t.Kind, t.Text, t.Quantifier, min, max})
	}

	w.Flush()

	return buf.Bytes(), w.Error()
}
