// Package adapter provides database adapter interfaces for executing rendered
// queries.
//
// This package contains the public contract that all database adapters must implement.
// Concrete adapter implementations are in pkg/adapters/ subdirectories.
package adapter

import (
	"context"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)

// Adapter defines the interface that all database adapters must implement.
// Statements arrive already rebound to the driver's placeholder style.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a statement that doesn't return rows and reports the
	// number of affected rows.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)

	// Query executes a statement that returns rows. The caller closes them.
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)

	// Begin starts a transaction.
	Begin(ctx context.Context) (Tx, error)

	// Dialect returns the SQL dialect used to render statements for this adapter.
	Dialect() *dialect.Dialect
}

// Tx is an open transaction. Statements run through it are only visible to
// others after Commit.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)
	Commit() error
	Rollback() error
	Dialect() *dialect.Dialect
}
