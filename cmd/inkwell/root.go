package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/inkwell/internal/app"
	"github.com/dshills/inkwell/internal/config"
)

// cli holds the state shared by every command: global flags and the
// application built from them.
type cli struct {
	configFiles []string
	logLevel    string

	app *app.Application
}

// noConfigCommands run without loading the configuration.
var noConfigCommands = map[string]bool{
	"version": true,
	"help":    true,
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "inkwell",
		Short:        "Drive the inkwell text-editing core",
		Long:         `Replay edit scripts against a revision-tracked buffer, or follow a file and fold every change on disk into the buffer as an undoable edit.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if noConfigCommands[cmd.Name()] {
				return nil
			}
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringSliceVar(&c.configFiles, "config", nil, "configuration files, lowest priority first (default: config.toml and config.yaml in the user config dir)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newReplayCmd(c),
		newWatchCmd(c),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the application.
func (c *cli) setup(cmd *cobra.Command) error {
	files := c.configFiles
	if len(files) == 0 {
		files = config.DefaultFiles()
	}

	cfg, err := config.NewLoader(config.WithFiles(files...)).Load()
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Logging.Level),
		Output: cmd.ErrOrStderr(),
		Prefix: "inkwell",
	})
	c.app = app.New(cfg, app.WithLogger(logger))
	return nil
}
