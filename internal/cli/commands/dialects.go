package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapquery/internal/cli/output"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// DialectInfo describes one registered dialect.
type DialectInfo struct {
	Name        string `json:"name"`
	Quote       string `json:"quote"`
	Placeholder string `json:"placeholder"`
	Pagination  string `json:"pagination"`
	Unbounded   string `json:"unbounded_limit,omitempty"`
	Schema      string `json:"default_schema,omitempty"`
	Reserved    int    `json:"reserved_words"`
	Default     bool   `json:"default"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the SQL dialects queries can be rendered for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return listDialects(cmdCtx.Renderer)
		},
	}
}

func dialectInfos() []DialectInfo {
	def := dialect.Default()
	names := dialect.List()
	infos := make([]DialectInfo, 0, len(names))
	for _, name := range names {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		cfg := d.Config()
		infos = append(infos, DialectInfo{
			Name:        cfg.Name,
			Quote:       cfg.Identifiers.Quote + cfg.Identifiers.QuoteEnd,
			Placeholder: cfg.Placeholder.String(),
			Pagination:  cfg.Pagination.Style.String(),
			Unbounded:   cfg.Pagination.UnboundedLimit,
			Schema:      cfg.DefaultSchema,
			Reserved:    len(cfg.ReservedWords),
			Default:     d == def,
		})
	}
	return infos
}

func listDialects(r *output.Renderer) error {
	infos := dialectInfos()
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	rows := make([][]any, len(infos))
	for i, info := range infos {
		name := info.Name
		if info.Default {
			name += " (default)"
		}
		rows[i] = []any{name, info.Quote, info.Placeholder, info.Pagination, info.Schema, info.Reserved}
	}
	r.Header("Dialects")
	return r.Table([]string{"name", "quote", "placeholder", "pagination", "schema", "reserved"}, rows)
}
