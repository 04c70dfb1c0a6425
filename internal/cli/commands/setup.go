package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapquery/internal/cli/output"
	"github.com/leapstack-labs/leapquery/internal/config"
	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// ErrNoTarget is returned by commands that need a database when none is
// configured.
var ErrNoTarget = errors.New("no target configured: set target in leapquery.yaml or pass --target")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Options  *core.Options
	Dialect  *dialect.Dialect
}

// NewCommandContext resolves the renderer, builder options and rendering
// dialect from the configuration stored on cmd's context.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.FromContext(ctx)

	mode, err := output.ParseMode(cfg.Output)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	d, err := cfg.ResolveDialect()
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
		Options:  opts,
		Dialect:  d,
	}, nil
}

// OpenTarget connects the configured target adapter. The caller closes it.
func (c *CommandContext) OpenTarget(ctx context.Context) (adapter.Adapter, error) {
	if c.Cfg.Target == nil {
		return nil, ErrNoTarget
	}
	return adapter.Open(ctx, c.Cfg.Target.ToAdapterConfig(), c.Logger)
}
