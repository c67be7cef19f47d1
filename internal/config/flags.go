package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Zero values mean "not given".
type Flags struct {
	Config    string
	Debug     bool
	LogFile   string
	Fix       bool
	Output    string
	Threshold string
	Grid      string
	Coarse    string
	Workers   int
	Quiet     bool
}

// RegisterFlags binds the override flags to fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to a rotating file")
	fs.BoolVarP(&f.Fix, "fix", "f", false, "Write a copy with rounded coordinates")
	fs.StringVarP(&f.Output, "output", "o", "", "Output path for --fix (default appends _VERTALERT)")
	fs.StringVarP(&f.Threshold, "threshold", "t", "", "Fine/coarse snap boundary (default 0.2 * grid)")
	fs.StringVarP(&f.Grid, "grid", "g", "", "Fine grid unit (default 1)")
	fs.StringVarP(&f.Coarse, "coarse", "c", "", "Coarse grid unit (default disabled)")
	fs.IntVarP(&f.Workers, "workers", "j", 0, "Brushes evaluated concurrently")
	fs.BoolVarP(&f.Quiet, "quiet", "q", false, "Disable the progress bar")
	return f
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.Config
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Fix {
		cfg.Output.Fix = true
	}
	if f.Output != "" {
		cfg.Output.Path = f.Output
	}
	if f.Threshold != "" {
		cfg.Grid.Threshold = f.Threshold
	}
	if f.Grid != "" {
		cfg.Grid.FineUnit = f.Grid
	}
	if f.Coarse != "" {
		cfg.Grid.CoarseUnit = f.Coarse
	}
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.Quiet {
		cfg.Output.Progress = false
	}
}
