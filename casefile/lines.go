package casefile

import "sort"

type indexToLine struct {
	offsets []int
	skipped int
}

func newIndexToLine(content []byte, skipped int) *indexToLine {
	offsets := []int{0}

	for i, b := range content {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return &indexToLine{offsets: offsets, skipped: skipped}
}

// lineFor maps a byte offset of the body to a 1-based line of the whole file.
func (m *indexToLine) lineFor(index int) int {
	if m == nil || index < 0 {
		return -1
	}

	pos := sort.Search(len(m.offsets), func(i int) bool {
		return m.offsets[i] > index
	})
	if pos == 0 {
		return 1 + m.skipped
	}

	return pos + m.skipped
}
