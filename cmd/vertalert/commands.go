package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Faultbox/vertalert/internal/config"
	"github.com/Faultbox/vertalert/internal/logger"
	"github.com/Faultbox/vertalert/internal/report"
	"github.com/Faultbox/vertalert/internal/snap"
	"github.com/Faultbox/vertalert/pkg/vmf"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	var flags *config.Flags

	cmd := &cobra.Command{
		Use:   "vertalert <file.vmf>",
		Short: "Find floating point vertex coordinates in a Source engine .vmf file",
		Long: `vertalert looks through a .vmf for brushes whose plane vertices have
non-integer coordinates. Brushes close to the grid are rounded (with --fix),
the rest are listed as suspects, sorted by how far they stray from the grid.`,
		Example: `  vertalert de_test.vmf
  vertalert de_test.vmf --fix
  vertalert de_test.vmf -f -o de_test_clean.vmf --grid 0.5 --coarse 8`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags)
			if err != nil {
				return err
			}
			return run(cmd, cfg, args[0])
		},
	}

	flags = config.RegisterFlags(cmd.Flags())
	cmd.AddCommand(newInitConfigCmd())
	return cmd
}

func newInitConfigCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Default().SaveTo(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config, input string) error {
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}
	defer logger.Sync()

	opts, err := cfg.SnapOptions()
	if err != nil {
		return err
	}

	doc, err := vmf.ReadFile(input)
	if err != nil {
		return err
	}

	var bar *report.Progress
	if cfg.Output.Progress && report.IsTerminal(os.Stderr) {
		bar = report.NewProgress(cmd.ErrOrStderr())
		opts.Progress = bar.Update
	}

	start := time.Now()
	res, err := snap.Process(doc, opts)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("processing %s: %w", input, err)
	}

	logger.Debug("processed map",
		zap.String("input", input),
		zap.Int("brushes", res.Brushes),
		zap.Int("rounded", res.Rounded),
		zap.Int("suspects", len(res.Suspects)),
		zap.String("threshold", opts.Threshold.String()),
		zap.Duration("elapsed", time.Since(start)),
	)
	for _, s := range res.Suspects {
		logger.Debug("suspect brush", zap.Int64("id", s.ID), zap.String("deviation", s.Deviation.String()))
	}

	out := cmd.OutOrStdout()
	if err := report.Write(out, res, cfg.Output.Fix); err != nil {
		return err
	}

	if !cfg.Output.Fix {
		return nil
	}

	path := cfg.OutputPath(input)
	if err := vmf.WriteFile(path, res.Output); err != nil {
		return err
	}
	logger.Info("wrote fixed map", zap.String("path", path), zap.Int("rounded", res.Rounded))
	fmt.Fprintf(out, "Successfully wrote %s\n", path)
	return nil
}
