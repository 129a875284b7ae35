package inspect

// InspectOptions controls inspect behavior.
type InspectOptions struct {
	Strict bool // if true, a syntax error is returned instead of being noted
	Pretty bool // pretty-print JSON (used by CLI layer)
}

// TermInfo describes one parsed term.
type TermInfo struct {
	Index int    `json:"index,omitempty" yaml:"index,omitempty"`
	Kind  string `json:"kind" yaml:"kind"`
	Text  string `json:"text" yaml:"text"`
	// Quantifier fields are only set for Quantifier terms. Max is -1 when unbounded.
	Quantifier string `json:"quantifier,omitempty" yaml:"quantifier,omitempty"`
	Min        int    `json:"min,omitempty" yaml:"min,omitempty"`
	Max        int    `json:"max,omitempty" yaml:"max,omitempty"`
	// Negated marks a blacklist character class.
	Negated  bool       `json:"negated,omitempty" yaml:"negated,omitempty"`
	Children []TermInfo `json:"children,omitempty" yaml:"children,omitempty"`
}

// InspectResult is the JSON-serializable output model.
type InspectResult struct {
	Pattern string     `json:"pattern" yaml:"pattern"`
	Terms   []TermInfo `json:"terms" yaml:"terms"`
	Notes   []string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}
