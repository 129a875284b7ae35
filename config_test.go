package snapregex

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "snapregex.yaml"))
	assert.NoError(t, err)

	assert.Equal(t, DefaultMaxSteps, *config.Match.MaxSteps)
	assert.Equal(t, DefaultTimeout, config.Match.Timeout)
	assert.Equal(t, DefaultCasesDir, config.Runner.CasesDir)
	assert.Equal(t, ColorAuto, config.Output.Color)
	assert.True(t, config.Runner.Parallel > 0)
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("SNAPREGEX_CASES", "/tmp/cases")

	path := filepath.Join(t.TempDir(), "snapregex.yaml")
	content := `match:
  max_steps: 0
  timeout: 250ms
runner:
  parallel: 2
  cases_dir: ${SNAPREGEX_CASES}/regex
output:
  color: never
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	assert.NoError(t, err)

	assert.Equal(t, 0, *config.Match.MaxSteps)
	assert.Equal(t, 250*time.Millisecond, config.Match.Timeout)
	assert.Equal(t, 2, config.Runner.Parallel)
	assert.Equal(t, "/tmp/cases/regex", config.Runner.CasesDir)
	assert.False(t, config.UseColor(true))

	opts := config.MatchOptions()
	assert.Equal(t, 0, opts.MaxSteps)
	assert.Equal(t, 250*time.Millisecond, opts.Timeout)
}

func TestParseConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "negative steps",
			yaml:    "match:\n  max_steps: -1\n",
			wantErr: ErrNegativeLimit,
		},
		{
			name:    "negative parallel",
			yaml:    "runner:\n  parallel: -3\n",
			wantErr: ErrNegativeLimit,
		},
		{
			name:    "unknown color mode",
			yaml:    "output:\n  color: rainbow\n",
			wantErr: ErrInvalidColorMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig([]byte(tt.yaml))
			assert.IsError(t, err, ErrConfigValidation)
			assert.IsError(t, err, tt.wantErr)
		})
	}
}

func TestParseConfig_UnknownFieldRejected(t *testing.T) {
	_, err := parseConfig([]byte("match:\n  max_step: 10\n"))
	assert.Error(t, err)
}

func TestParseConfig_PartialFileGetsDefaults(t *testing.T) {
	config, err := parseConfig([]byte("output:\n  color: always\n"))
	assert.NoError(t, err)
	assert.Equal(t, DefaultMaxSteps, config.MatchOptions().MaxSteps)
	assert.Equal(t, DefaultTimeout, config.MatchOptions().Timeout)
	assert.True(t, config.UseColor(false))
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SNAPREGEX_A", "alpha")
	t.Setenv("SNAPREGEX_B", "beta")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"braced", "${SNAPREGEX_A}/x", "alpha/x"},
		{"plain", "$SNAPREGEX_B/x", "beta/x"},
		{"mixed", "${SNAPREGEX_A}-$SNAPREGEX_B", "alpha-beta"},
		{"unset", "a${SNAPREGEX_UNSET_VAR}b", "ab"},
		{"no reference", "plain/path", "plain/path"},
		{"lone dollar", "cost $5", "cost $5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnvVars(tt.input))
		})
	}
}
