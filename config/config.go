package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkotlin/pkc/analyzer"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "pkc.toml"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the configuration of the analyzer and the shell.
type Config struct {
	Analyzer AnalyzerConfig `toml:"analyzer"`
	Output   OutputConfig   `toml:"output"`
}

// AnalyzerConfig holds analyzer settings
type AnalyzerConfig struct {
	MaxDepth int   `toml:"max_depth"`
	LAC      *bool `toml:"lac"`
}

// OutputConfig holds output settings
type OutputConfig struct {
	Format string `toml:"format"`
	Color  *bool  `toml:"color"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}

	cfg.applyDefaults()

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadOrDefault loads `path`. An empty path means DefaultPath, which may be missing; in that case
// the default configuration is returned. An explicit path must exist.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	_, err := os.Stat(DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(DefaultPath)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Analyzer.MaxDepth == 0 {
		c.Analyzer.MaxDepth = analyzer.DefaultMaxDepth
	}
	if c.Analyzer.LAC == nil {
		lac := true
		c.Analyzer.LAC = &lac
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	if c.Output.Color == nil {
		color := true
		c.Output.Color = &color
	}
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	if c.Analyzer.MaxDepth < 1 {
		return fmt.Errorf("analyzer.max_depth must be positive: %v", c.Analyzer.MaxDepth)
	}
	return ValidateFormat(c.Output.Format)
}

// ValidateFormat reports whether `format` is a known output format.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format: %v (want %v, %v, or %v)", format, FormatText, FormatJSON, FormatYAML)
}

// AnalyzerOptions converts the analyzer settings into options of analyzer.Analyze.
func (c *Config) AnalyzerOptions() []analyzer.Option {
	opts := []analyzer.Option{
		analyzer.WithMaxDepth(c.Analyzer.MaxDepth),
	}
	if c.Analyzer.LAC != nil && !*c.Analyzer.LAC {
		opts = append(opts, analyzer.WithoutLAC())
	}
	return opts
}

// ColorEnabled reports whether the console output is colored.
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}
