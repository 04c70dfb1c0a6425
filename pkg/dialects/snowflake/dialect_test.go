package snowflake_test

import (
	"testing"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	"github.com/leapstack-labs/leapquery/pkg/dialects/ansi"
	"github.com/leapstack-labs/leapquery/pkg/dialects/databricks"
	"github.com/leapstack-labs/leapquery/pkg/dialects/duckdb"
	"github.com/leapstack-labs/leapquery/pkg/dialects/mysql"
	"github.com/leapstack-labs/leapquery/pkg/dialects/postgres"
	"github.com/leapstack-labs/leapquery/pkg/dialects/snowflake"
	"github.com/leapstack-labs/leapquery/pkg/dialects/sqlite"
	"github.com/leapstack-labs/leapquery/pkg/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	d := snowflake.Snowflake

	require.NotNil(t, d)
	assert.Equal(t, "snowflake", d.Name)
	assert.Equal(t, `"`, d.Identifiers.Quote)
	assert.Equal(t, "PUBLIC", d.DefaultSchema)
	assert.Equal(t, core.NormUppercase, d.Identifiers.Normalization)
	assert.True(t, d.IsReservedWord("qualify"))
}

// TestBuiltinDialects renders the same paged query for every bundled dialect.
func TestBuiltinDialects(t *testing.T) {
	tests := []struct {
		dialect     *dialect.Dialect
		placeholder string
		expected    string
	}{
		{ansi.ANSI, "@p0", `select "name" from "user" where "id" = @p0 offset @p1 rows`},
		{databricks.Databricks, "?", "select `name` from `user` where `id` = @p0 offset @p1"},
		{duckdb.DuckDB, "?", `select "name" from "user" where "id" = @p0 offset @p1`},
		{mysql.MySQL, "?", "select `name` from `user` where `id` = @p0 limit 18446744073709551615 offset @p1"},
		{postgres.Postgres, "$1", `select "name" from "user" where "id" = @p0 offset @p1`},
		{snowflake.Snowflake, "?", `select "name" from "user" where "id" = @p0 offset @p1`},
		{sqlite.SQLite, "?", `select "name" from "user" where "id" = @p0 limit -1 offset @p1`},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.Name, func(t *testing.T) {
			registered, ok := dialect.Get(tt.dialect.Name)
			require.True(t, ok, "dialect should be registered")
			assert.Same(t, tt.dialect, registered)
			assert.Equal(t, tt.placeholder, tt.dialect.FormatPlaceholder(1))

			q := core.NewQuery(core.KindSelect)
			q.Columns = []core.SelectItem{{Kind: core.SelectColumn, Expr: "name"}}
			q.From = &core.TableRef{Name: "user"}
			q.Where.AddLeaf(core.CombNone, &core.Leaf{Column: "id", Op: core.OpEq, Value: core.Lit(7)})
			offset := int64(20)
			q.Offset = &offset

			opts := core.SmartPreset()
			opts.DontParameterizeNumbers = false
			stmt, err := format.Render(q, tt.dialect, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stmt.SQL)
			assert.Len(t, stmt.Params, 2)
		})
	}
}
