package snapregex

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Default limits applied when the configuration leaves them unset.
const (
	DefaultMaxSteps = 1_000_000
	DefaultTimeout  = 5 * time.Second
	DefaultCasesDir = "testdata/cases"
)

// Color modes for OutputConfig.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the snapregex configuration file
type Config struct {
	Match  MatchConfig  `yaml:"match"`
	Runner RunnerConfig `yaml:"runner"`
	Output OutputConfig `yaml:"output"`
}

// MatchConfig bounds the work of every match call.
type MatchConfig struct {
	// MaxSteps is a pointer so that an explicit 0 (unlimited) can be told apart from unset.
	MaxSteps *int          `yaml:"max_steps"`
	Timeout  time.Duration `yaml:"timeout"`
}

// RunnerConfig configures the case document runner.
type RunnerConfig struct {
	Parallel int    `yaml:"parallel"`
	CasesDir string `yaml:"cases_dir"`
}

// OutputConfig configures terminal output.
type OutputConfig struct {
	Color string `yaml:"color"`
}

// LoadConfig loads configuration from a YAML file. A missing file yields
// the defaults.
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.Match.MaxSteps != nil && *config.Match.MaxSteps < 0 {
		return fmt.Errorf("%w: match.max_steps: %w", ErrConfigValidation, ErrNegativeLimit)
	}

	if config.Match.Timeout < 0 {
		return fmt.Errorf("%w: match.timeout: %w", ErrConfigValidation, ErrNegativeLimit)
	}

	if config.Runner.Parallel < 0 {
		return fmt.Errorf("%w: runner.parallel: %w", ErrConfigValidation, ErrNegativeLimit)
	}

	switch config.Output.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: %w '%s': must be one of auto, always, never", ErrConfigValidation, ErrInvalidColorMode, config.Output.Color)
	}

	return nil
}

func intPtr(i int) *int {
	return &i
}

func getDefaultConfig() *Config {
	return &Config{
		Match: MatchConfig{
			MaxSteps: intPtr(DefaultMaxSteps),
			Timeout:  DefaultTimeout,
		},
		Runner: RunnerConfig{
			Parallel: runtime.NumCPU(),
			CasesDir: DefaultCasesDir,
		},
		Output: OutputConfig{
			Color: ColorAuto,
		},
	}
}

func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Match.MaxSteps == nil {
		config.Match.MaxSteps = defaults.Match.MaxSteps
	}

	if config.Match.Timeout == 0 {
		config.Match.Timeout = defaults.Match.Timeout
	}

	if config.Runner.Parallel == 0 {
		config.Runner.Parallel = defaults.Runner.Parallel
	}

	if config.Runner.CasesDir == "" {
		config.Runner.CasesDir = defaults.Runner.CasesDir
	}

	if config.Output.Color == "" {
		config.Output.Color = defaults.Output.Color
	}
}

// MatchOptions converts the match section to engine options.
func (c *Config) MatchOptions() Options {
	opts := Options{Timeout: c.Match.Timeout}
	if c.Match.MaxSteps != nil {
		opts.MaxSteps = *c.Match.MaxSteps
	}

	return opts
}

// UseColor decides whether output is colored. isTerminal is consulted only
// in auto mode.
func (c *Config) UseColor(isTerminal bool) bool {
	switch c.Output.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}

func loadEnvFiles() error {
	// Try to load .env file from current directory
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = MustCompile(`\$\{[^\}]+\}`)
	plainEnvVar  = MustCompile(`\$[A-Za-z_][A-Za-z0-9_]*`)
)

// expandEnvVars expands ${VAR} and $VAR references.
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(config *Config) {
	config.Runner.CasesDir = expandEnvVars(config.Runner.CasesDir)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
