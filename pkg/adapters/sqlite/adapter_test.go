package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapquery/internal/testutil"
	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/leapstack-labs/leapquery/pkg/builder"
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, cfg core.AdapterConfig) *Adapter {
	t.Helper()
	adp := New(testutil.NewTestLogger(t))
	require.NoError(t, adp.Connect(context.Background(), cfg))
	t.Cleanup(func() { _ = adp.Close() })
	return adp
}

func TestAdapter_Connect(t *testing.T) {
	t.Run("in-memory", func(t *testing.T) {
		adp := connect(t, core.AdapterConfig{Path: ":memory:"})
		assert.True(t, adp.IsConnected())
	})

	t.Run("file with pragmas", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.db")
		adp := connect(t, core.AdapterConfig{
			Path:   path,
			Params: map[string]any{"foreign_keys": true},
		})

		rows, err := adp.Query(context.Background(), "PRAGMA foreign_keys")
		require.NoError(t, err)
		defer func() { _ = rows.Close() }()
		require.True(t, rows.Next())
		var on int
		require.NoError(t, rows.Scan(&on))
		assert.Equal(t, 1, on)
	})

	t.Run("invalid params", func(t *testing.T) {
		adp := New(nil)
		err := adp.Connect(context.Background(), core.AdapterConfig{Params: map[string]any{"x": 1}})
		require.Error(t, err)
		assert.False(t, adp.IsConnected())
	})
}

func TestAdapter_NotConnected(t *testing.T) {
	adp := New(nil)
	_, err := adp.Exec(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, adapter.ErrNotConnected)
}

func TestAdapter_Registry(t *testing.T) {
	factory, ok := adapter.Get("sqlite")
	require.True(t, ok)

	adp, ok := factory(nil).(*Adapter)
	require.True(t, ok)
	assert.Equal(t, "sqlite", adp.Dialect().Name)
}

type user struct {
	Name  string
	Age   int
	Color sql.NullString
}

func setupUsers(t *testing.T) *Adapter {
	t.Helper()
	adp := connect(t, core.AdapterConfig{Path: ":memory:"})
	_, err := adp.Exec(context.Background(), `CREATE TABLE "user" (name TEXT, age INTEGER, color TEXT)`)
	require.NoError(t, err)
	return adp
}

func TestBuilder_RoundTrip(t *testing.T) {
	ctx := context.Background()
	adp := setupUsers(t)

	n, err := builder.New(adp, nil).
		InsertInto("user").
		Columns("name", "age", "color").
		Values("ada", 36, "red").
		Values("bob", 17, nil).
		Values("cy", 52, "red").
		Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	users, err := builder.List[user](ctx, builder.New(adp, nil).
		Select("name", "age", "color").
		From("user").
		Where("color").Eq("red").
		OrderByAsc("name"))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ada", users[0].Name)
	assert.Equal(t, 52, users[1].Age)

	names, err := builder.List[string](ctx, builder.New(adp, nil).
		Select("name").
		From("user").
		Where("color").IsNull())
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, names)

	oldest, err := builder.First[user](ctx, builder.New(adp, nil).
		SelectAll().
		From("user").
		OrderByDesc("age"))
	require.NoError(t, err)
	assert.Equal(t, "cy", oldest.Name)

	n, err = builder.New(adp, nil).
		Update("user").
		Set("color", "blue").
		Where("age").Lt(18).
		Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err := builder.First[int](ctx, builder.New(adp, nil).
		Select().CountAll().
		From("user").
		Where("color").Eq("blue"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	n, err = builder.New(adp, nil).
		DeleteFrom("user").
		Where("age").GtEq(50).
		Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestBuilder_FirstNoRows(t *testing.T) {
	adp := setupUsers(t)

	_, err := builder.First[user](context.Background(), builder.New(adp, nil).
		SelectAll().
		From("user"))
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestBuilder_ExecutionError(t *testing.T) {
	adp := setupUsers(t)

	_, err := builder.New(adp, nil).
		Select("name").
		From("missing").
		Execute(context.Background())

	var execErr *builder.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, `select "name" from "missing"`, execErr.SQL)
}

func TestBuilder_Transaction(t *testing.T) {
	ctx := context.Background()
	adp := setupUsers(t)

	tx, err := adp.Begin(ctx)
	require.NoError(t, err)

	_, err = builder.New(tx, nil).
		InsertInto("user").
		Columns("name", "age").
		Values("dee", 20).
		Execute(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	names, err := builder.List[string](ctx, builder.New(adp, nil).Select("name").From("user"))
	require.NoError(t, err)
	assert.Equal(t, []string{"dee"}, names)
}
