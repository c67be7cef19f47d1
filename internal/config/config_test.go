package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/vertalert/pkg/grid"
	"github.com/spf13/pflag"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Grid.FineUnit != "1" {
		t.Errorf("expected fine unit 1, got %s", cfg.Grid.FineUnit)
	}
	if cfg.Grid.CoarseUnit != "" {
		t.Errorf("expected coarse unit disabled, got %s", cfg.Grid.CoarseUnit)
	}
	if cfg.Grid.Threshold != "" {
		t.Errorf("expected derived threshold, got %s", cfg.Grid.Threshold)
	}
	if cfg.Output.Fix {
		t.Error("expected fix to be false by default")
	}
	if cfg.Output.Suffix != "_VERTALERT" {
		t.Errorf("expected suffix _VERTALERT, got %s", cfg.Output.Suffix)
	}
	if !cfg.Output.Progress {
		t.Error("expected progress to be enabled by default")
	}
	if cfg.Workers != 1 {
		t.Errorf("expected 1 worker, got %d", cfg.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestSnapOptionsDefault(t *testing.T) {
	opts, err := Default().SnapOptions()
	if err != nil {
		t.Fatalf("SnapOptions failed: %v", err)
	}

	if opts.FineUnit.String() != "1" {
		t.Errorf("expected fine unit 1, got %s", opts.FineUnit)
	}
	if opts.Threshold.String() != "0.2" {
		t.Errorf("expected threshold 0.2, got %s", opts.Threshold)
	}
	if opts.CoarseUnit.Valid {
		t.Error("expected no coarse unit")
	}
}

func TestSnapOptions(t *testing.T) {
	cfg := Default()
	cfg.Grid = GridConfig{FineUnit: "0.5", CoarseUnit: " 8 ", Threshold: ""}
	cfg.Workers = 4

	opts, err := cfg.SnapOptions()
	if err != nil {
		t.Fatalf("SnapOptions failed: %v", err)
	}
	if opts.Threshold.String() != "0.1" {
		t.Errorf("expected threshold 0.1, got %s", opts.Threshold)
	}
	if !opts.CoarseUnit.Valid || opts.CoarseUnit.Decimal.String() != "8" {
		t.Errorf("expected coarse unit 8, got %v", opts.CoarseUnit)
	}
	if opts.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", opts.Workers)
	}
}

func TestSnapOptionsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		grid    GridConfig
		unitErr bool
	}{
		{"zero fine", GridConfig{FineUnit: "0"}, true},
		{"negative fine", GridConfig{FineUnit: "-1"}, true},
		{"zero coarse", GridConfig{FineUnit: "1", CoarseUnit: "0"}, true},
		{"not a number", GridConfig{FineUnit: "one"}, false},
		{"bad threshold", GridConfig{FineUnit: "1", Threshold: "0.2.1"}, false},
		{"negative threshold", GridConfig{FineUnit: "1", Threshold: "-0.2"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Grid = tt.grid
			_, err := cfg.SnapOptions()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.unitErr && !errors.Is(err, grid.ErrInvalidUnit) {
				t.Errorf("expected ErrInvalidUnit, got %v", err)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	cfg := Default()
	if got := cfg.OutputPath("maps/de_test.vmf"); got != "maps/de_test_VERTALERT.vmf" {
		t.Errorf("unexpected default output path %s", got)
	}

	cfg.Output.Path = "fixed.vmf"
	if got := cfg.OutputPath("maps/de_test.vmf"); got != "fixed.vmf" {
		t.Errorf("expected explicit output path, got %s", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
grid:
  fine_unit: "0.25"
  coarse_unit: "4"
  threshold: "0.1"

output:
  fix: true
  path: "out.vmf"
  suffix: "_fixed"
  progress: false

workers: 8

logging:
  level: "debug"
  log_file: "vertalert.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Grid.FineUnit != "0.25" {
		t.Errorf("expected fine unit 0.25, got %s", cfg.Grid.FineUnit)
	}
	if cfg.Grid.CoarseUnit != "4" {
		t.Errorf("expected coarse unit 4, got %s", cfg.Grid.CoarseUnit)
	}
	if cfg.Grid.Threshold != "0.1" {
		t.Errorf("expected threshold 0.1, got %s", cfg.Grid.Threshold)
	}
	if !cfg.Output.Fix {
		t.Error("expected fix to be true")
	}
	if cfg.Output.Path != "out.vmf" {
		t.Errorf("expected output path out.vmf, got %s", cfg.Output.Path)
	}
	if cfg.Output.Suffix != "_fixed" {
		t.Errorf("expected suffix _fixed, got %s", cfg.Output.Suffix)
	}
	if cfg.Output.Progress {
		t.Error("expected progress to be false")
	}
	if cfg.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Workers)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "vertalert.log" {
		t.Errorf("expected log file 'vertalert.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
grid:
  fine_unit: [not, a, scalar]
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(FileName, []byte("grid:\n  fine_unit: \"2\"\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "no flags",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Grid.FineUnit != "1" || cfg.Output.Fix || cfg.Workers != 1 {
					t.Errorf("expected defaults untouched, got %+v", cfg)
				}
			},
		},
		{
			name: "debug flag",
			args: []string{"--debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "fix and output",
			args: []string{"-f", "-o", "fixed.vmf"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Output.Fix {
					t.Error("expected fix to be enabled")
				}
				if cfg.Output.Path != "fixed.vmf" {
					t.Errorf("expected output fixed.vmf, got %s", cfg.Output.Path)
				}
			},
		},
		{
			name: "output alone does not enable fix",
			args: []string{"--output", "fixed.vmf"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Fix {
					t.Error("expected fix to stay disabled")
				}
			},
		},
		{
			name: "grid flags",
			args: []string{"--grid", "0.5", "--coarse", "16", "--threshold", "0.05"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Grid.FineUnit != "0.5" || cfg.Grid.CoarseUnit != "16" || cfg.Grid.Threshold != "0.05" {
					t.Errorf("unexpected grid config %+v", cfg.Grid)
				}
			},
		},
		{
			name: "workers and quiet",
			args: []string{"-j", "6", "-q"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Workers != 6 {
					t.Errorf("expected 6 workers, got %d", cfg.Workers)
				}
				if cfg.Output.Progress {
					t.Error("expected progress to be disabled")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			flags := RegisterFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse failed: %v", err)
			}

			cfg := Default()
			applyFlags(cfg, flags)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
grid:
  fine_unit: "2"
  coarse_unit: "8"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"--config", configPath, "--grid", "4"}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Fine unit from flag (4), not file (2)
	if cfg.Grid.FineUnit != "4" {
		t.Errorf("expected fine unit 4 from flag, got %s", cfg.Grid.FineUnit)
	}

	// Coarse unit from file since no flag override
	if cfg.Grid.CoarseUnit != "8" {
		t.Errorf("expected coarse unit 8 from file, got %s", cfg.Grid.CoarseUnit)
	}
}

func TestLoadBadPath(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"--config", "/nonexistent/vertalert.yaml"}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if _, err := Load(flags); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vertalert.yaml")

	cfg := Default()
	cfg.Grid.CoarseUnit = "16"
	if err := cfg.SaveTo(path, false); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Grid.CoarseUnit != "16" {
		t.Errorf("expected coarse unit 16 after reload, got %s", loaded.Grid.CoarseUnit)
	}

	if err := cfg.SaveTo(path, false); err == nil {
		t.Error("expected error when overwriting without force")
	}
	if err := cfg.SaveTo(path, true); err != nil {
		t.Errorf("expected forced overwrite to succeed, got %v", err)
	}
}
