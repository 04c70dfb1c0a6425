// Package postgres provides a PostgreSQL database adapter.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	pgdialect "github.com/leapstack-labs/leapquery/pkg/dialects/postgres"
)

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger, SQLDialect: pgdialect.Postgres},
	}
}

// Dialect returns the PostgreSQL dialect. Rendered statements are rebound
// to $1, $2, ... before they reach the driver.
func (a *Adapter) Dialect() *dialect.Dialect {
	return pgdialect.Postgres
}

// Connect establishes a connection to PostgreSQL. cfg.Params is decoded
// into Params.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	params, err := ParseParams(cfg.Params)
	if err != nil {
		return err
	}

	connCfg, err := pgx.ParseConfig(buildPostgresDSN(cfg, params))
	if err != nil {
		return fmt.Errorf("invalid postgres connection settings: %w", err)
	}
	runtime := params.runtimeParams()
	for k, v := range runtime {
		connCfg.RuntimeParams[k] = v
	}

	a.Logger.Debug("connecting to postgres",
		slog.String("host", connCfg.Host),
		slog.String("database", connCfg.Database),
		slog.Any("settings", sortedKeys(runtime)))

	db := stdlib.OpenDB(*connCfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
