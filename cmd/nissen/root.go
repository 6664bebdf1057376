package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newRootCmd returns the nissen command and its subcommands.
func newRootCmd() *cobra.Command {
	var level, format string
	log := zap.NewNop()

	root := &cobra.Command{
		Use:           "nissen",
		Short:         "Nissen force laws between blastocyst cells",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(level, format, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Sync()
		},
	}
	root.PersistentFlags().StringVar(&level, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&format, "log-format", "console", "log format (console, json)")

	// subcommands see the logger once the persistent hook has run
	logger := func() *zap.Logger { return log }
	root.AddCommand(newRunCmd(logger), newFieldCmd(logger), newParamsCmd())
	return root
}

// loadConfig returns the config in args, or the defaults.
func loadConfig(args []string) (*Config, error) {
	if len(args) == 0 {
		conf := DefaultConf()
		conf.lawDefaults(func(...string) bool { return false })
		return conf, conf.Validate()
	}
	return ParseConfig(args[0])
}

func newRunCmd(logger func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "run [config_file]",
		Short: "Run a polarity sweep, to an HDF5 file or in an OpenGL window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()
			conf, err := loadConfig(args)
			if err != nil {
				return err
			}

			// setup simulation
			s, err := setup(conf, log)
			if err != nil {
				return err
			}

			// run interactively or not depending on config
			if conf.Output == "" {
				return RunOpenGL(conf, s, log)
			}
			return RunHDF5(conf, s, log)
		},
	}
}

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params [config_file]",
		Short: "Print the parameters of the configured force law",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(args)
			if err != nil {
				return err
			}
			l, err := newLaw(conf)
			if err != nil {
				return err
			}
			_, err = l.WriteParameters(cmd.OutOrStdout())
			return err
		},
	}
}
