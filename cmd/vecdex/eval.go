package main

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/vecdex/engine"
	"github.com/viant/vecdex/pkg/log"
	"github.com/viant/vecdex/vector"
)

func newEvalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "eval SQL...",
		Short: "Run SQL statements and print their rows",
		Example: `  vecdex eval "SELECT vector_to_json(vector(1, 2, 3))"
  vecdex eval "SELECT vector_cosim(vector(1, 0), vector(0, 1))"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			ctx, flush := setupLogger(cmd.Context(), cfg)
			defer flush()

			if err := engine.Register(ctx, cfg); err != nil {
				return err
			}
			db, err := engine.Open(cfg.DSN)
			if err != nil {
				return err
			}
			defer db.Close()
			db.SetMaxOpenConns(1)

			codec := cfg.Codec()
			for _, q := range args {
				log.FromCtx(ctx).Debug().Str("sql", q).Msg("eval")
				if err := printQuery(cmd, db, codec, q); err != nil {
					return fmt.Errorf("%s: %w", q, err)
				}
			}
			return nil
		},
	}
}

func printQuery(cmd *cobra.Command, db *sql.DB, codec vector.Codec, q string) error {
	rows, err := db.QueryContext(cmd.Context(), q)
	if err != nil {
		return err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	out := cmd.OutOrStdout()
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = render(codec, v)
		}
		if _, err := io.WriteString(out, strings.Join(cells, "|")+"\n"); err != nil {
			return err
		}
	}
	return rows.Err()
}

// render formats a column value. BLOBs that decode as vectors are shown in
// their text form, other BLOBs as hex literals.
func render(codec vector.Codec, v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		if view, ok := vector.Decode(x); ok {
			if text, err := codec.Format(view); err == nil {
				return text
			}
		}
		return "x'" + hex.EncodeToString(x) + "'"
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
