package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/vecdex/engine"
	"github.com/viant/vecdex/pkg/log"
)

func newFuncsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "funcs",
		Short: "List the registered vector functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			ctx, flush := setupLogger(cmd.Context(), cfg)
			defer flush()

			for _, fn := range engine.Functions(cfg, log.FromCtx(ctx)) {
				arity := fmt.Sprint(fn.NArg)
				if fn.NArg < 0 {
					arity = "variadic"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", fn.Name, arity); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
