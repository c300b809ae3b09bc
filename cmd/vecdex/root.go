package main

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/viant/vecdex/engine"
	"github.com/viant/vecdex/pkg/log"
)

type options struct {
	debug   bool
	dsn     string
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "vecdex",
		Short:         "Evaluate SQL with the vector functions registered",
		Long:          `vecdex evaluates SQL against SQLite with the vector_* functions registered.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging and vector_debug")
	cmd.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "database to open (overrides VECDEX_DSN)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file to load")

	cmd.AddCommand(newEvalCmd(opts), newFuncsCmd(opts))
	return cmd
}

// loadConfig loads the dotenv file, if present, then the environment, and
// applies the command line overrides.
func loadConfig(opts *options) (*engine.Config, error) {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	cfg, err := engine.LoadConfig()
	if err != nil {
		return nil, err
	}
	if opts.dsn != "" {
		cfg.DSN = opts.dsn
	}
	if opts.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func setupLogger(ctx context.Context, cfg *engine.Config) (context.Context, func()) {
	return log.NewContextWithLogger(ctx, cfg.Debug)
}
