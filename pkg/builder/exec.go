package builder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/reflectx"
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	"github.com/leapstack-labs/leapquery/pkg/format"
)

// Executor runs rendered statements. adapter.Adapter and adapter.Tx satisfy it.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (*core.Rows, error)
	Dialect() *dialect.Dialect
}

// ErrNoExecutor is returned when a query built with ForDialect is executed.
var ErrNoExecutor = errors.New("query builder has no executor")

// ExecutionError wraps a failure reported by the executor. SQL holds the
// parameterized statement when Options.AddSQLToError is set.
type ExecutionError struct {
	Err error
	SQL string
}

func (e *ExecutionError) Error() string {
	if e.SQL == "" {
		return fmt.Sprintf("failed to execute query: %v", e.Err)
	}
	return fmt.Sprintf("failed to execute query %q: %v", e.SQL, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// ToParameterizedSQL renders the query with @pN placeholders.
func (b *Builder) ToParameterizedSQL() (*format.Statement, error) {
	return format.Render(b.q, b.dialect, b.opts)
}

// ToUnsafeSQL renders the query with literals inline. For logs only.
func (b *Builder) ToUnsafeSQL() (string, error) {
	return format.RenderUnsafe(b.q, b.dialect, b.opts)
}

// String returns the parameterized SQL, or the render error text.
func (b *Builder) String() string {
	stmt, err := b.ToParameterizedSQL()
	if err != nil {
		return err.Error()
	}
	return stmt.SQL
}

// prepared renders the query and rebinds it for the executor's driver.
func (b *Builder) prepared() (*format.Statement, string, []any, error) {
	if b.exec == nil {
		return nil, "", nil, ErrNoExecutor
	}
	stmt, err := b.ToParameterizedSQL()
	if err != nil {
		return nil, "", nil, err
	}
	text, args := b.dialect.Rebind(stmt.SQL, stmt.Params)
	return stmt, text, args, nil
}

func (b *Builder) wrap(stmt *format.Statement, err error) error {
	e := &ExecutionError{Err: err}
	if b.opts.AddSQLToError {
		e.SQL = stmt.SQL
	}
	return e
}

// Execute runs the statement and returns the number of affected rows.
func (b *Builder) Execute(ctx context.Context) (int64, error) {
	stmt, text, args, err := b.prepared()
	if err != nil {
		return 0, err
	}
	n, err := b.exec.Exec(ctx, text, args...)
	if err != nil {
		return 0, b.wrap(stmt, err)
	}
	return n, nil
}

// Rows runs q and returns the open result set. The caller closes it.
func Rows(ctx context.Context, q Runnable) (*core.Rows, error) {
	b, ok := q.(*Builder)
	if !ok {
		return nil, fmt.Errorf("unsupported query type %T", q)
	}
	stmt, text, args, err := b.prepared()
	if err != nil {
		return nil, err
	}
	rows, err := b.exec.Query(ctx, text, args...)
	if err != nil {
		return nil, b.wrap(stmt, err)
	}
	return rows, nil
}

// List runs q and scans every row into a T. Structs are mapped by column
// name through the builder's column format (UserID <-> user_id) or a `db`
// tag; other types must match a single column.
func List[T any](ctx context.Context, q Runnable) ([]T, error) {
	b, ok := q.(*Builder)
	if !ok {
		return nil, fmt.Errorf("unsupported query type %T", q)
	}
	stmt, text, args, err := b.prepared()
	if err != nil {
		return nil, err
	}

	rows, err := b.exec.Query(ctx, text, args...)
	if err != nil {
		return nil, b.wrap(stmt, err)
	}
	defer func() { _ = rows.Close() }()

	var out []T
	if scanStruct[T]() {
		rx := &sqlx.Rows{Rows: rows.Rows, Mapper: reflectx.NewMapperFunc("db", b.opts.Format)}
		for rx.Next() {
			var v T
			if err := rx.StructScan(&v); err != nil {
				return nil, b.wrap(stmt, err)
			}
			out = append(out, v)
		}
	} else {
		for rows.Next() {
			var v T
			if err := rows.Scan(&v); err != nil {
				return nil, b.wrap(stmt, err)
			}
			out = append(out, v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, b.wrap(stmt, err)
	}
	return out, nil
}

// First runs q with a limit of one and returns the first row, or
// sql.ErrNoRows. The original query is left untouched.
func First[T any](ctx context.Context, q Query) (T, error) {
	var zero T
	cp := q.Clone()
	if cp.Model().Limit == nil {
		cp = cp.Limit(1)
	}
	rows, err := List[T](ctx, cp)
	if err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, sql.ErrNoRows
	}
	return rows[0], nil
}

var (
	scannerType = reflect.TypeFor[sql.Scanner]()
	timeType    = reflect.TypeFor[time.Time]()
)

// scanStruct reports whether T is a struct that should be filled field by
// field rather than scanned as one value.
func scanStruct[T any]() bool {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct || t == timeType {
		return false
	}
	return !reflect.PointerTo(t).Implements(scannerType)
}
