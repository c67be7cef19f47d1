// Package config handles vertalert configuration loading and management.
package config

import (
	"fmt"
	"strings"

	"github.com/Faultbox/vertalert/internal/snap"
	"github.com/Faultbox/vertalert/pkg/vmf"
	"github.com/shopspring/decimal"
)

// Config holds all run settings.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Output  OutputConfig  `yaml:"output"`
	Workers int           `yaml:"workers"`
	Logging LoggingConfig `yaml:"logging"`
}

// GridConfig holds the snapping parameters. Values are decimal strings so
// they are never routed through binary floating point.
type GridConfig struct {
	FineUnit   string `yaml:"fine_unit"`
	CoarseUnit string `yaml:"coarse_unit"` // Empty disables coarse snapping
	Threshold  string `yaml:"threshold"`   // Empty means 0.2 * fine_unit
}

// OutputConfig holds fix mode settings.
type OutputConfig struct {
	Fix      bool   `yaml:"fix"`
	Path     string `yaml:"path"`   // Overrides the default fixed file name
	Suffix   string `yaml:"suffix"` // Appended to the input base name
	Progress bool   `yaml:"progress"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			FineUnit: "1",
		},
		Output: OutputConfig{
			Fix:      false,
			Suffix:   vmf.DefaultFixSuffix,
			Progress: true,
		},
		Workers: 1,
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// SnapOptions parses the grid settings into validated snap options.
func (c *Config) SnapOptions() (snap.Options, error) {
	fine, err := parseDecimal("fine_unit", c.Grid.FineUnit)
	if err != nil {
		return snap.Options{}, err
	}

	var coarse, threshold decimal.NullDecimal
	if strings.TrimSpace(c.Grid.CoarseUnit) != "" {
		d, err := parseDecimal("coarse_unit", c.Grid.CoarseUnit)
		if err != nil {
			return snap.Options{}, err
		}
		coarse = decimal.NewNullDecimal(d)
	}
	if strings.TrimSpace(c.Grid.Threshold) != "" {
		d, err := parseDecimal("threshold", c.Grid.Threshold)
		if err != nil {
			return snap.Options{}, err
		}
		threshold = decimal.NewNullDecimal(d)
	}

	opts, err := snap.NewOptions(fine, coarse, threshold)
	if err != nil {
		return snap.Options{}, err
	}
	opts.Workers = c.Workers
	return opts, nil
}

// OutputPath returns where the fixed copy of input is written.
func (c *Config) OutputPath(input string) string {
	if c.Output.Path != "" {
		return c.Output.Path
	}
	return vmf.FixedName(input, c.Output.Suffix)
}

func parseDecimal(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return d, nil
}
