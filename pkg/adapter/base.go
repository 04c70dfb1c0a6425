package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// ErrNotConnected is returned when a statement is run before Connect.
var ErrNotConnected = errors.New("database connection not established")

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Exec, Query and Begin implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger

	// SQLDialect is returned by the transactions this adapter opens.
	SQLDialect *dialect.Dialect
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		b.logger().Debug("closing database connection")
		return b.DB.Close()
	}
	return nil
}

// Exec executes a statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string, args ...any) (int64, error) {
	if b.DB == nil {
		return 0, ErrNotConnected
	}
	b.logger().Debug("executing statement", slog.String("sql", sqlStr), slog.Int("params", len(args)))
	return execResult(b.DB.ExecContext(ctx, sqlStr, args...))
}

// Query executes a statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string, args ...any) (*core.Rows, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	b.logger().Debug("executing query", slog.String("sql", sqlStr), slog.Int("params", len(args)))
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &core.Rows{Rows: rows}, nil
}

// Begin starts a transaction. Every statement it runs is logged with the
// transaction id.
func (b *BaseSQLAdapter) Begin(ctx context.Context) (Tx, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	id := uuid.NewString()
	logger := b.logger().With(slog.String("tx_id", id))
	logger.Debug("transaction started")
	return &sqlTx{tx: tx, id: id, logger: logger, dialect: b.SQLDialect}, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

func execResult(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, fmt.Errorf("failed to execute SQL: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		// Some drivers cannot report affected rows; that is not a failure.
		return 0, nil
	}
	return n, nil
}

type sqlTx struct {
	tx      *sql.Tx
	id      string
	logger  *slog.Logger
	dialect *dialect.Dialect
}

func (t *sqlTx) Exec(ctx context.Context, sqlStr string, args ...any) (int64, error) {
	t.logger.Debug("executing statement", slog.String("sql", sqlStr), slog.Int("params", len(args)))
	return execResult(t.tx.ExecContext(ctx, sqlStr, args...))
}

func (t *sqlTx) Query(ctx context.Context, sqlStr string, args ...any) (*core.Rows, error) {
	t.logger.Debug("executing query", slog.String("sql", sqlStr), slog.Int("params", len(args)))
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := t.tx.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &core.Rows{Rows: rows}, nil
}

func (t *sqlTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction %s: %w", t.id, err)
	}
	t.logger.Debug("transaction committed")
	return nil
}

func (t *sqlTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil {
		return fmt.Errorf("failed to roll back transaction %s: %w", t.id, err)
	}
	t.logger.Debug("transaction rolled back")
	return nil
}

func (t *sqlTx) Dialect() *dialect.Dialect {
	return t.dialect
}
