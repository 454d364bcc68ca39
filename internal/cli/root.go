// Package cli implements the schedsim command tree.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jar0582/schedsim/internal/config"
	"github.com/jar0582/schedsim/internal/engine"
	"github.com/jar0582/schedsim/internal/loader"
	"github.com/jar0582/schedsim/internal/logging"
	"github.com/jar0582/schedsim/internal/policy"
	"github.com/jar0582/schedsim/pkg/model"
)

var (
	flagConfig    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	cfg    config.RunConfig
	logger *logrus.Logger
)

// NewRootCmd creates the root cobra command for the schedsim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schedsim",
		Short: "schedsim - CPU scheduling simulator",
		Long:  "schedsim replays a fixed set of processes under a scheduling policy one tick at a time and reports the timeline and metrics.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(flagConfig)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = flagLogLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = flagLogFormat
			}
			if flagDebug {
				cfg.LogLevel = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Run configuration file (YAML)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newCompareCmd(),
		newPoliciesCmd(),
		newServeCmd(),
	)

	return root
}

func newRegistry() *policy.Registry {
	return policy.DefaultRegistry(cfg.MLFQ)
}

func newEngine(reg *policy.Registry) *engine.Engine {
	return engine.New(reg, logger)
}

// loadProcesses reads a process file, honouring an explicit format name.
func loadProcesses(path, format string) ([]model.Process, error) {
	if format == "" {
		return loader.Load(path)
	}
	f, err := loader.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return loader.LoadFormat(path, f)
}
