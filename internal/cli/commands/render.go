package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapquery/internal/cli/output"
	"github.com/leapstack-labs/leapquery/internal/querydef"
	"github.com/leapstack-labs/leapquery/pkg/builder"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Unsafe bool
}

// RenderResult is one rendered query definition.
type RenderResult struct {
	File   string         `json:"file"`
	Name   string         `json:"name,omitempty"`
	SQL    string         `json:"sql"`
	Params map[string]any `json:"params,omitempty"`

	names []string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file>...",
		Short: "Render query definition files to SQL",
		Long: `Build each query definition file with the query builder and print the
resulting SQL for the selected dialect.

By default statements are parameterized (@p0, @p1, ...) and the parameter
values are listed below the SQL. --unsafe inlines the values instead; that
text is meant for reading, not for running.

Output adapts to environment:
  - Terminal: SQL followed by a parameter table
  - Piped/Scripted: Markdown with code blocks`,
		Example: `  # Render a query for the target's dialect
  leapquery render queries/active_users.yaml

  # Render for postgres regardless of the target
  leapquery render queries/*.yaml --dialect postgres

  # Inline the parameters
  leapquery render queries/active_users.yaml --unsafe

  # Machine-readable output
  leapquery render queries/*.yaml --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Unsafe, "unsafe", false, "Inline parameter values into the SQL")

	return cmd
}

func runRender(cmd *cobra.Command, files []string, opts *RenderOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	results := make([]RenderResult, len(files))
	g, _ := errgroup.WithContext(cmd.Context())
	for i, file := range files {
		g.Go(func() error {
			res, err := renderFile(cmdCtx, file, opts.Unsafe)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(results)
	}
	for i, res := range results {
		if i > 0 {
			r.Println()
		}
		title := res.File
		if res.Name != "" {
			title = fmt.Sprintf("%s (%s)", res.Name, filepath.Base(res.File))
		}
		r.Header(title)
		r.Code("sql", res.SQL)
		if len(res.names) == 0 {
			continue
		}
		r.Println()
		rows := make([][]any, len(res.names))
		for j, name := range res.names {
			rows[j] = []any{"@" + name, res.Params[name]}
		}
		if err := r.Table([]string{"param", "value"}, rows); err != nil {
			return err
		}
	}
	return nil
}

func renderFile(cmdCtx *CommandContext, file string, unsafe bool) (*RenderResult, error) {
	def, err := querydef.Load(file)
	if err != nil {
		return nil, err
	}
	q, err := querydef.Build(def, builder.ForDialect(cmdCtx.Dialect, cmdCtx.Options))
	if err != nil {
		return nil, err
	}

	res := &RenderResult{File: file, Name: def.Name}
	if unsafe {
		res.SQL, err = q.ToUnsafeSQL()
		if err != nil {
			return nil, err
		}
		return res, nil
	}

	stmt, err := q.ToParameterizedSQL()
	if err != nil {
		return nil, err
	}
	res.SQL = stmt.SQL
	if len(stmt.Params) > 0 {
		res.Params = stmt.Map()
		for _, p := range stmt.Params {
			res.names = append(res.names, p.Name)
		}
	}
	cmdCtx.Logger.Debug("rendered query", "file", file, "params", len(stmt.Params))
	return res, nil
}
