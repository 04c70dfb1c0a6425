// Package fake provides an in-memory adapter that records the statements it
// is asked to run. It is meant for tests of code that builds and executes
// queries without a database.
package fake

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// Dialect quotes identifiers with backticks and keeps the rendered @pN
// placeholders, so recorded SQL matches ToParameterizedSQL output.
// It is not added to the dialect registry.
var Dialect = dialect.NewDialect("fake").
	Identifiers("`", "`", "``", core.NormCaseSensitive).
	PlaceholderStyle(core.PlaceholderNamed).
	Build()

// ErrTxStarted is returned by Begin while a transaction is open.
var ErrTxStarted = errors.New("the transaction is already started")

// ErrNoTx is returned by Commit and Rollback after the transaction ended.
var ErrNoTx = errors.New("no transaction in progress")

// Statement is one recorded Exec or Query call.
type Statement struct {
	SQL  string
	Args []any
}

// Values returns the argument values with any sql.NamedArg unwrapped.
func (s Statement) Values() []any {
	out := make([]any, len(s.Args))
	for i, a := range s.Args {
		if n, ok := a.(sql.NamedArg); ok {
			out[i] = n.Value
			continue
		}
		out[i] = a
	}
	return out
}

// Result is the row set returned by the next Query call.
type Result struct {
	Columns []string
	Rows    [][]driver.Value
}

// Adapter records statements instead of running them.
//
// Statements run inside a transaction are kept aside until Commit and
// dropped by Rollback.
type Adapter struct {
	mu       sync.Mutex
	db       *sql.DB
	mock     sqlmock.Sqlmock
	executed []Statement
	pending  []Statement
	inTx     bool

	// NextResult is returned, and then cleared, by the next Query.
	NextResult *Result
	// NextRowsAffected is returned, and then cleared, by the next Exec.
	NextRowsAffected int64
	// NextErr fails the next Exec or Query, and is then cleared.
	NextErr error
}

// New returns an empty fake adapter.
func New() *Adapter {
	return &Adapter{}
}

// Connect prepares the in-memory row source. cfg is ignored.
func (a *Adapter) Connect(_ context.Context, _ adapter.Config) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connect()
}

func (a *Adapter) connect() error {
	if a.db != nil {
		return nil
	}
	matchAll := sqlmock.QueryMatcherFunc(func(_, _ string) error { return nil })
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matchAll))
	if err != nil {
		return fmt.Errorf("failed to create fake connection: %w", err)
	}
	a.db, a.mock = db, mock
	return nil
}

// Close releases the row source.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db, a.mock = nil, nil
	return err
}

// Dialect returns the fake dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return Dialect
}

// Exec records the statement and returns NextRowsAffected.
func (a *Adapter) Exec(_ context.Context, sqlStr string, args ...any) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.exec(false, sqlStr, args)
}

func (a *Adapter) exec(inTx bool, sqlStr string, args []any) (int64, error) {
	a.record(inTx, sqlStr, args)
	if err := a.takeErr(); err != nil {
		return 0, err
	}
	n := a.NextRowsAffected
	a.NextRowsAffected = 0
	return n, nil
}

// Query records the statement and returns NextResult as rows.
func (a *Adapter) Query(ctx context.Context, sqlStr string, args ...any) (*core.Rows, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.query(ctx, false, sqlStr, args)
}

func (a *Adapter) query(ctx context.Context, inTx bool, sqlStr string, args []any) (*core.Rows, error) {
	a.record(inTx, sqlStr, args)
	if err := a.takeErr(); err != nil {
		return nil, err
	}
	if err := a.connect(); err != nil {
		return nil, err
	}

	res := a.NextResult
	a.NextResult = nil
	if res == nil {
		res = &Result{}
	}
	rows := sqlmock.NewRows(res.Columns)
	for _, r := range res.Rows {
		rows.AddRow(r...)
	}
	a.mock.ExpectQuery("").WillReturnRows(rows)

	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	sqlRows, err := a.db.QueryContext(ctx, "fake")
	if err != nil {
		return nil, err
	}
	return &core.Rows{Rows: sqlRows}, nil
}

func (a *Adapter) record(inTx bool, sqlStr string, args []any) {
	st := Statement{SQL: sqlStr, Args: append([]any(nil), args...)}
	if inTx {
		a.pending = append(a.pending, st)
		return
	}
	a.executed = append(a.executed, st)
}

func (a *Adapter) takeErr() error {
	err := a.NextErr
	a.NextErr = nil
	return err
}

// ExecutedQueries returns the statements run outside a transaction and
// those of committed transactions, in order.
func (a *Adapter) ExecutedQueries() []Statement {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Statement(nil), a.executed...)
}

// Reset forgets every recorded statement.
func (a *Adapter) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.executed, a.pending = nil, nil
}

// Begin opens the single transaction the fake supports.
func (a *Adapter) Begin(_ context.Context) (adapter.Tx, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inTx {
		return nil, ErrTxStarted
	}
	a.inTx = true
	a.pending = nil
	return &tx{a: a}, nil
}

type tx struct {
	a    *Adapter
	done bool
}

func (t *tx) Exec(_ context.Context, sqlStr string, args ...any) (int64, error) {
	t.a.mu.Lock()
	defer t.a.mu.Unlock()
	return t.a.exec(true, sqlStr, args)
}

func (t *tx) Query(ctx context.Context, sqlStr string, args ...any) (*core.Rows, error) {
	t.a.mu.Lock()
	defer t.a.mu.Unlock()
	return t.a.query(ctx, true, sqlStr, args)
}

func (t *tx) Commit() error {
	return t.end(true)
}

func (t *tx) Rollback() error {
	return t.end(false)
}

func (t *tx) end(commit bool) error {
	t.a.mu.Lock()
	defer t.a.mu.Unlock()
	if t.done {
		return ErrNoTx
	}
	if commit {
		t.a.executed = append(t.a.executed, t.a.pending...)
	}
	t.a.pending = nil
	t.a.inTx = false
	t.done = true
	return nil
}

func (t *tx) Dialect() *dialect.Dialect {
	return Dialect
}

var _ adapter.Adapter = (*Adapter)(nil)
