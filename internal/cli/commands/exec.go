package commands

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapquery/internal/cli/output"
	"github.com/leapstack-labs/leapquery/internal/querydef"
	"github.com/leapstack-labs/leapquery/pkg/builder"
	"github.com/leapstack-labs/leapquery/pkg/core"
)

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <file>",
		Short: "Run a query definition against the target database",
		Long: `Build a query definition file and run it against the configured target.

SELECT results are printed as a table, markdown, CSV or JSON depending on
--output. INSERT, UPDATE and DELETE print the number of affected rows.
The target's own dialect is used; --dialect only affects render.`,
		Example: `  # Query the default target
  leapquery exec queries/active_users.yaml

  # Run against the prod target and emit CSV
  leapquery exec queries/active_users.yaml --target prod --output csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, args[0])
		},
	}
	return cmd
}

func runExec(cmd *cobra.Command, file string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	def, err := querydef.Load(file)
	if err != nil {
		return err
	}

	db, err := cmdCtx.OpenTarget(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	q, err := querydef.Build(def, builder.New(db, cmdCtx.Options))
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	cmdCtx.Logger.Debug("executing query", "file", file, "sql", q.String())

	r := cmdCtx.Renderer
	if q.Model().Kind != core.KindSelect {
		n, err := q.Execute(ctx)
		if err != nil {
			return err
		}
		if r.EffectiveMode() == output.ModeJSON {
			return r.JSON(map[string]int64{"rows_affected": n})
		}
		r.Printf("%d rows affected\n", n)
		return nil
	}

	rows, err := builder.Rows(ctx, q)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	cols, data, err := collectRows(rows.Rows)
	if err != nil {
		return fmt.Errorf("failed to read rows: %w", err)
	}
	return r.Table(cols, data)
}

// collectRows reads every row as generic values. Byte slices become
// strings so JSON output stays readable.
func collectRows(rows *sql.Rows) ([]string, [][]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var data [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		data = append(data, values)
	}
	return cols, data, rows.Err()
}
