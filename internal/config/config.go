// Package config provides dirsize configuration loading and validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/idelchi/dirsize/internal/logging"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// DefaultTop is the default number of largest directories to report.
const DefaultTop = 10

// Outputs lists the accepted output formats.
//
//nolint:gochecknoglobals // Config constant
var Outputs = []string{OutputTable, OutputJSON}

// Config holds the settings of one dirsize invocation.
type Config struct {
	// Path is the directory to analyze.
	Path string `yaml:"-"`
	// Workers is the size of the worker pool.
	Workers int `yaml:"workers"`
	// Top is the number of largest directories to report.
	Top int `yaml:"top"`
	// Output is the output format (table or json).
	Output string `yaml:"output"`
	// FollowSymlinks resolves symbolic links during the walk.
	FollowSymlinks bool `yaml:"follow_symlinks"`
	// LogLevel sets the logging level.
	LogLevel string `yaml:"log_level"`
	// Version indicates whether to show version and exit.
	Version bool `yaml:"-"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Path:     ".",
		Workers:  runtime.NumCPU(),
		Top:      DefaultTop,
		Output:   OutputTable,
		LogLevel: "warn",
	}
}

// Load reads the YAML file at path on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %q: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML data on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}

	if c.Top < 0 {
		return errors.New("top cannot be negative")
	}

	if !slices.Contains(Outputs, c.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", c.Output, Outputs)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}
