package inspect

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestInspectAcceptance(t *testing.T) {
	testRoot := filepath.Join("..", "testdata", "inspect")

	entries, err := os.ReadDir(testRoot)
	if err != nil {
		t.Fatalf("failed to read testdata/inspect: %v", err)
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		caseDir := filepath.Join(testRoot, e.Name())
		t.Run(e.Name(), func(t *testing.T) {
			in, err := os.Open(filepath.Join(caseDir, "input.txt"))
			if err != nil {
				t.Fatalf("failed to open input: %v", err)
			}
			defer in.Close()

			gotRes, err := Inspect(in, InspectOptions{Strict: true})
			if err != nil {
				t.Fatalf("inspect error: %v", err)
			}

			// Compare JSON (struct-level)
			expJSON, err := os.ReadFile(filepath.Join(caseDir, "expected.json"))
			if err != nil {
				t.Fatalf("failed to read expected.json: %v", err)
			}

			var expRes InspectResult
			if err := json.Unmarshal(expJSON, &expRes); err != nil {
				t.Fatalf("failed to unmarshal expected.json: %v", err)
			}

			assert.Equal(t, expRes.Pattern, gotRes.Pattern)
			assert.Equal(t, expRes.Terms, gotRes.Terms)
			assert.Equal(t, expRes.Notes, gotRes.Notes)

			// Compare CSV (row-level)
			expCSV, err := os.ReadFile(filepath.Join(caseDir, "expected.csv"))
			if err != nil {
				t.Fatalf("failed to read expected.csv: %v", err)
			}

			expRows, err := csv.NewReader(bytes.NewReader(expCSV)).ReadAll()
			if err != nil {
				t.Fatalf("failed to parse expected.csv: %v", err)
			}

			gotCSV, err := TermsCSV(gotRes, true)
			if err != nil {
				t.Fatalf("failed to build csv: %v", err)
			}

			gotRows, err := csv.NewReader(bytes.NewReader(gotCSV)).ReadAll()
			if err != nil {
				t.Fatalf("failed to parse actual csv: %v", err)
			}

			assert.Equal(t, expRows, gotRows)
		})
	}
}
