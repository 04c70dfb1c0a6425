package fake

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_RecordsStatements(t *testing.T) {
	ctx := context.Background()
	a := New()
	a.NextRowsAffected = 3

	n, err := a.Exec(ctx, "delete from `user` where `id` = @p0", sql.Named("p0", 7))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = a.Exec(ctx, "delete from `user`")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	got := a.ExecutedQueries()
	require.Len(t, got, 2)
	assert.Equal(t, "delete from `user` where `id` = @p0", got[0].SQL)
	assert.Equal(t, []any{7}, got[0].Values())
	assert.Empty(t, got[1].Args)

	a.Reset()
	assert.Empty(t, a.ExecutedQueries())
}

func TestAdapter_QueryRows(t *testing.T) {
	ctx := context.Background()
	a := New()
	defer func() { _ = a.Close() }()

	a.NextResult = &Result{
		Columns: []string{"id", "name"},
		Rows:    [][]driver.Value{{int64(1), "ada"}, {int64(2), "bob"}},
	}

	rows, err := a.Query(ctx, "select `id`, `name` from `user`")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var id int64
		var name string
		require.NoError(t, rows.Scan(&id, &name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"ada", "bob"}, names)

	empty, err := a.Query(ctx, "select 1")
	require.NoError(t, err)
	assert.False(t, empty.Next())
	_ = empty.Close()

	assert.Len(t, a.ExecutedQueries(), 2)
}

func TestAdapter_NextErr(t *testing.T) {
	ctx := context.Background()
	a := New()
	boom := errors.New("boom")

	a.NextErr = boom
	_, err := a.Exec(ctx, "update `x` set `a` = 1")
	require.ErrorIs(t, err, boom)

	_, err = a.Exec(ctx, "update `x` set `a` = 1")
	require.NoError(t, err)
}

func TestAdapter_Transactions(t *testing.T) {
	ctx := context.Background()

	t.Run("commit publishes statements", func(t *testing.T) {
		a := New()
		tx, err := a.Begin(ctx)
		require.NoError(t, err)

		_, err = tx.Exec(ctx, "insert 1")
		require.NoError(t, err)
		assert.Empty(t, a.ExecutedQueries())

		require.NoError(t, tx.Commit())
		require.Len(t, a.ExecutedQueries(), 1)
		assert.Equal(t, "insert 1", a.ExecutedQueries()[0].SQL)
	})

	t.Run("rollback drops statements", func(t *testing.T) {
		a := New()
		tx, err := a.Begin(ctx)
		require.NoError(t, err)

		_, err = tx.Exec(ctx, "insert 1")
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())

		assert.Empty(t, a.ExecutedQueries())
		assert.ErrorIs(t, tx.Commit(), ErrNoTx)
	})

	t.Run("nested begin fails", func(t *testing.T) {
		a := New()
		tx, err := a.Begin(ctx)
		require.NoError(t, err)

		_, err = a.Begin(ctx)
		require.ErrorIs(t, err, ErrTxStarted)
		assert.EqualError(t, err, "the transaction is already started")

		require.NoError(t, tx.Rollback())
		_, err = a.Begin(ctx)
		assert.NoError(t, err)
	})
}

func TestDialect(t *testing.T) {
	assert.Equal(t, "fake", Dialect.Name)
	assert.Equal(t, "`order`", Dialect.WrapIdentifier("order"))
	assert.Equal(t, "@p1", Dialect.FormatPlaceholder(2))
}
