// Package duckdb provides a DuckDB database adapter.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	duckdbdialect "github.com/leapstack-labs/leapquery/pkg/dialects/duckdb"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger, SQLDialect: duckdbdialect.DuckDB},
	}
}

// Dialect returns the DuckDB dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return duckdbdialect.DuckDB
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	params, err := ParseParams(cfg.Params)
	if err != nil {
		return err
	}

	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to duckdb", slog.String("path", path))

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	// Session settings and extensions only stick to a single connection.
	db.SetMaxOpenConns(1)

	a.DB = db
	a.Cfg = cfg

	if err := a.applyParams(ctx, params); err != nil {
		_ = db.Close()
		a.DB = nil
		return err
	}
	return nil
}

func (a *Adapter) applyParams(ctx context.Context, p *Params) error {
	for _, ext := range p.Extensions {
		for _, stmt := range []string{"INSTALL " + ext, "LOAD " + ext} {
			if _, err := a.DB.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to load extension %s: %w", ext, err)
			}
		}
	}
	for _, stmt := range buildSettingsSQL(p.Settings) {
		if _, err := a.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply setting: %w", err)
		}
	}
	return nil
}

// buildSettingsSQL returns one SET statement per setting, sorted by name.
func buildSettingsSQL(settings map[string]string) []string {
	names := make([]string, 0, len(settings))
	for name := range settings {
		names = append(names, name)
	}
	sort.Strings(names)

	stmts := make([]string, len(names))
	for i, name := range names {
		value := strings.ReplaceAll(settings[name], "'", "''")
		stmts[i] = fmt.Sprintf("SET %s = '%s'", name, value)
	}
	return stmts
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
