// Package testdb opens throwaway SQLite databases with a small fixed schema
// for integration tests and demos.
//
// Tables (seeded by the migrations):
//
//	user(id, name, age, color, created_on)   5 rows
//	statistics(user_id, visits, score)      4 rows
package testdb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/pressly/goose/v3"

	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/leapstack-labs/leapquery/pkg/adapters/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open connects an in-memory SQLite adapter and applies the migrations.
func Open(ctx context.Context, logger *slog.Logger) (*sqlite.Adapter, error) {
	return OpenPath(ctx, ":memory:", logger)
}

// OpenPath is Open for a database file. An existing, already migrated file
// is left as it is.
func OpenPath(ctx context.Context, path string, logger *slog.Logger) (*sqlite.Adapter, error) {
	a := sqlite.New(logger)
	if err := a.Connect(ctx, adapter.Config{
		Type:   "sqlite",
		Path:   path,
		Params: map[string]any{"foreign_keys": true},
	}); err != nil {
		return nil, err
	}
	if err := Migrate(ctx, a.DB); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// gooseMu guards goose's package-level base FS and dialect.
var gooseMu sync.Mutex

// Migrate runs all pending migrations on db.
func Migrate(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// New opens a migrated database for t and closes it when the test ends.
func New(t testing.TB, logger *slog.Logger) *sqlite.Adapter {
	t.Helper()
	a, err := Open(context.Background(), logger)
	if err != nil {
		t.Fatalf("testdb: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}
