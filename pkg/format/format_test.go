package format

import (
	"database/sql"
	"regexp"
	"strconv"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialects/mysql"
	"github.com/leapstack-labs/leapquery/pkg/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func options(inlineNumbers bool) *core.Options {
	opts := core.SmartPreset()
	opts.DontParameterizeNumbers = inlineNumbers
	return opts
}

func selectFrom(table string, cols ...core.SelectItem) *core.Query {
	q := core.NewQuery(core.KindSelect)
	q.Columns = cols
	q.From = &core.TableRef{Name: table}
	return q
}

func column(name string) core.SelectItem {
	return core.SelectItem{Kind: core.SelectColumn, Expr: name}
}

func leaf(col string, op core.Operator, v core.Value) *core.Leaf {
	return &core.Leaf{Column: col, Op: op, Value: v}
}

func ptr(n int64) *int64 { return &n }

func render(t *testing.T, q *core.Query, opts *core.Options) *Statement {
	t.Helper()
	stmt, err := Render(q, mysql.MySQL, opts)
	require.NoError(t, err)
	return stmt
}

func TestRender_Select(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *core.Query
		expected string
	}{
		{
			name:     "empty select list",
			build:    func() *core.Query { return selectFrom("user") },
			expected: "select * from `user`",
		},
		{
			name: "distinct with aggregate alias",
			build: func() *core.Query {
				q := selectFrom("user", column("color"),
					core.SelectItem{Kind: core.SelectAggregate, Func: "avg", Expr: "age", Alias: "avg_age"})
				q.Distinct = true
				return q
			},
			expected: "select distinct `color`, avg(`age`) as `avg_age` from `user`",
		},
		{
			name: "count all with group by",
			build: func() *core.Query {
				q := selectFrom("user", column("color"), core.SelectItem{Kind: core.SelectCountAll, Alias: "colors"})
				q.GroupBy = []string{"color"}
				return q
			},
			expected: "select `color`, count(*) as `colors` from `user` group by `color`",
		},
		{
			name: "table star with left join",
			build: func() *core.Query {
				q := selectFrom("user", core.SelectItem{Kind: core.SelectTableStar, Expr: "user"})
				on := core.NewForest()
				on.AddLeaf(core.CombNone, leaf("t.user_id", core.OpEq, core.Col("user.id")))
				q.Joins = []core.Join{{Type: core.JoinLeft, Target: core.TableRef{Name: "thing", Alias: "t"}, On: on}}
				return q
			},
			expected: "select `user`.* from `user` left join `thing` as `t` on `t`.`user_id` = `user`.`id`",
		},
		{
			name: "order by and pagination",
			build: func() *core.Query {
				q := selectFrom("user")
				q.OrderBy = []core.OrderByItem{{Expr: "colors", Desc: true}, {Expr: "id"}}
				q.Limit = ptr(10)
				q.Offset = ptr(20)
				return q
			},
			expected: "select * from `user` order by `colors` desc, `id` asc limit 10 offset 20",
		},
		{
			name: "offset without limit",
			build: func() *core.Query {
				q := selectFrom("user")
				q.Offset = ptr(20)
				return q
			},
			expected: "select * from `user` limit 18446744073709551615 offset 20",
		},
		{
			name: "camel case identifiers",
			build: func() *core.Query {
				q := selectFrom("userProfile", column("createdAt"))
				q.Where.AddLeaf(core.CombNone, leaf("userProfile.lastName", core.OpIsNot, core.Lit(nil)))
				return q
			},
			expected: "select `created_at` from `user_profile` where `user_profile`.`last_name` is not null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := render(t, tt.build(), options(true))
			assert.Equal(t, tt.expected, stmt.SQL)
			assert.Empty(t, stmt.Params)
		})
	}
}

func TestRender_WithoutWrapping(t *testing.T) {
	q := selectFrom("user", column("userName"))
	q.Where.AddLeaf(core.CombNone, leaf("age", core.OpGt, core.Lit(3)))

	stmt := render(t, q, core.PlainPreset())

	assert.Equal(t, "select userName from user where age > @p0", stmt.SQL)
	assert.Equal(t, []core.Param{{Name: "p0", Value: 3}}, stmt.Params)
}

func TestRender_ParameterOrder(t *testing.T) {
	sub := selectFrom("statistics", core.SelectItem{Kind: core.SelectAggregate, Func: "max", Expr: "counter"})
	sub.Where.AddLeaf(core.CombNone, leaf("type", core.OpIs, core.Lit("birthdays")))

	q := selectFrom("user", core.SelectItem{Kind: core.SelectTableStar, Expr: "user"})
	q.Where.AddLeaf(core.CombNone, leaf("user.username", core.OpEq, core.Lit("grandpa")))
	q.Where.AddLeaf(core.CombOr, leaf("user.counter", core.OpEq, core.Sub(sub)))
	q.Where.AddLeaf(core.CombOr, leaf("user.created_at", core.OpLt, core.Lit(civil.Date{Year: 1970, Month: 1, Day: 1})))
	q.Limit = ptr(5)

	stmt := render(t, q, options(false))

	assert.Equal(t, "select `user`.* from `user` "+
		"where `user`.`username` = @p0 "+
		"or `user`.`counter` = (select max(`counter`) from `statistics` where `type` = @p1) "+
		"or `user`.`created_at` < @p2 limit @p3", stmt.SQL)
	assert.Equal(t, []core.Param{
		{Name: "p0", Value: "grandpa"},
		{Name: "p1", Value: "birthdays"},
		{Name: "p2", Value: civil.Date{Year: 1970, Month: 1, Day: 1}},
		{Name: "p3", Value: int64(5)},
	}, stmt.Params)
	assertPlaceholderSequence(t, stmt)
}

// assertPlaceholderSequence checks that placeholders appear as @p0..@pN-1,
// in order, once each, and match the parameter list.
func assertPlaceholderSequence(t *testing.T, stmt *Statement) {
	t.Helper()
	found := regexp.MustCompile(`@p\d+`).FindAllString(stmt.SQL, -1)
	require.Len(t, found, len(stmt.Params))
	for i, ph := range found {
		assert.Equal(t, "@p"+strconv.Itoa(i), ph)
		assert.Equal(t, ph, stmt.Params[i].Placeholder())
	}
}

func TestRender_Idempotent(t *testing.T) {
	q := selectFrom("user")
	q.Where.AddLeaf(core.CombNone, leaf("name", core.OpLike, core.Lit("%a%")))
	q.Where.AddLeaf(core.CombAnd, leaf("id", core.OpIn, core.List(1, 2)))

	first := render(t, q, options(false))
	second := render(t, q, options(false))

	assert.Equal(t, first, second)
	assert.Equal(t, "select * from `user` where `name` like @p0 and `id` in (@p1, @p2)", first.SQL)
}

func TestRender_CloneIndependence(t *testing.T) {
	q := selectFrom("user")
	q.Where.AddLeaf(core.CombNone, leaf("name", core.OpEq, core.Lit("a")))
	before := render(t, q, options(true))

	cp := q.Clone()
	cp.Where.AddLeaf(core.CombOr, leaf("name", core.OpEq, core.Lit("b")))
	cp.Columns = append(cp.Columns, column("id"))

	after := render(t, q, options(true))
	assert.Equal(t, before, after)
	assert.Equal(t, "select `id` from `user` where `name` = @p0 or `name` = @p1", render(t, cp, options(true)).SQL)
}

func TestRender_Negation(t *testing.T) {
	group := core.NewForest()
	group.AddLeaf(core.CombNone, leaf("color", core.OpLike, core.Lit("%red%")))
	group.AddLeaf(core.CombOr, leaf("color", core.OpLike, core.Lit("%blue%")))

	q := selectFrom("user")
	q.Where.AddGroup(core.CombNone, group, true)
	q.Where.Add(core.Entry{Combinator: core.CombAnd, Negated: true, Leaf: leaf("age", core.OpGt, core.Lit(3))})
	q.Where.AddGroup(core.CombOr, group.Clone(), false)

	stmt := render(t, q, options(true))

	assert.Equal(t, "select * from `user` where "+
		"not (`color` like @p0 or `color` like @p1) "+
		"and not (`age` > 3) "+
		"or (`color` like @p2 or `color` like @p3)", stmt.SQL)
}

func TestRender_NullAndColumnComparisons(t *testing.T) {
	tests := []struct {
		name     string
		leaf     *core.Leaf
		expected string
		params   int
	}{
		{"is null", leaf("deleted_at", core.OpIs, core.Lit(nil)), "`deleted_at` is null", 0},
		{"is not null", leaf("deleted_at", core.OpIsNot, core.Lit(nil)), "`deleted_at` is not null", 0},
		{"eq nil", leaf("deleted_at", core.OpEq, core.Lit(nil)), "`deleted_at` is null", 0},
		{"is value", leaf("type", core.OpIs, core.Lit("x")), "`type` = @p0", 1},
		{"is not value", leaf("type", core.OpIsNot, core.Lit("x")), "`type` != @p0", 1},
		{"column", leaf("thing.user_id", core.OpIs, core.Col("user.id")), "`thing`.`user_id` = `user`.`id`", 0},
		{"column gt", leaf("a", core.OpGt, core.Col("b")), "`a` > `b`", 0},
		{"not like", leaf("name", core.OpNotLike, core.Lit("%x")), "`name` not like @p0", 1},
		{"in", leaf("id", core.OpIn, core.List(1, 2, 3)), "`id` in (1, 2, 3)", 0},
		{"not in strings", leaf("c", core.OpNotIn, core.List("a", "b")), "`c` not in (@p0, @p1)", 2},
		{"empty in", leaf("id", core.OpIn, core.List()), "1 = 0", 0},
		{"empty not in", leaf("id", core.OpNotIn, core.List()), "1 = 1", 0},
		{"scalar in", leaf("id", core.OpIn, core.Lit("a")), "`id` in (@p0)", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := selectFrom("t")
			q.Where.AddLeaf(core.CombNone, tt.leaf)

			stmt := render(t, q, options(true))

			assert.Equal(t, "select * from `t` where "+tt.expected, stmt.SQL)
			assert.Len(t, stmt.Params, tt.params)
		})
	}
}

func TestRender_SmartDates(t *testing.T) {
	day := civil.Date{Year: 2020, Month: 2, Day: 2}
	next := civil.Date{Year: 2020, Month: 2, Day: 3}

	tests := []struct {
		name     string
		op       core.Operator
		smart    bool
		expected string
		params   []any
	}{
		{"gt", core.OpGt, true, "`last_active` >= @p0", []any{next}},
		{"gt off", core.OpGt, false, "`last_active` > @p0", []any{day}},
		{"gte", core.OpGtEq, true, "`last_active` >= @p0", []any{day}},
		{"lt", core.OpLt, true, "`last_active` < @p0", []any{day}},
		{"lte", core.OpLtEq, true, "`last_active` < @p0", []any{next}},
		{"lte off", core.OpLtEq, false, "`last_active` <= @p0", []any{day}},
		{"eq", core.OpEq, true, "(`last_active` >= @p0 and `last_active` < @p1)", []any{day, next}},
		{"is", core.OpIs, true, "(`last_active` >= @p0 and `last_active` < @p1)", []any{day, next}},
		{"not eq", core.OpNotEq, true, "(`last_active` < @p0 or `last_active` >= @p1)", []any{day, next}},
		{"eq off", core.OpEq, false, "`last_active` = @p0", []any{day}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options(true)
			opts.UseSmartDates = tt.smart

			q := selectFrom("user")
			q.Where.AddLeaf(core.CombNone, leaf("last_active", tt.op, core.Lit(day)))

			stmt := render(t, q, opts)

			assert.Equal(t, "select * from `user` where "+tt.expected, stmt.SQL)
			values := make([]any, len(stmt.Params))
			for i, p := range stmt.Params {
				values[i] = p.Value
			}
			assert.Equal(t, tt.params, values)
		})
	}
}

func TestRender_SmartDatesMonthEnd(t *testing.T) {
	q := selectFrom("user")
	q.Where.AddLeaf(core.CombNone, leaf("last_active", core.OpGt, core.Lit(civil.Date{Year: 2020, Month: 2, Day: 29})))

	out, err := RenderUnsafe(q, mysql.MySQL, options(true))
	require.NoError(t, err)
	assert.Equal(t, "select * from `user` where `last_active` >= '2020-03-01'", out)
}

func TestRender_Insert(t *testing.T) {
	q := core.NewQuery(core.KindInsert)
	q.Table = "user"
	q.Insert = &core.InsertPayload{
		Columns: []string{"name", "age"},
		Rows: [][]core.Value{
			{core.Lit("ann"), core.Lit(30)},
			{core.Lit("bob"), core.Lit(41)},
		},
	}

	stmt := render(t, q, options(true))

	assert.Equal(t, "insert into `user` (`name`, `age`) values (@p0, 30), (@p1, 41)", stmt.SQL)
	assert.Equal(t, map[string]any{"p0": "ann", "p1": "bob"}, stmt.Map())
}

func TestRender_UpdateFromSubquery(t *testing.T) {
	sub := selectFrom("other_table", column("col1"), column("col2"))

	q := core.NewQuery(core.KindUpdate)
	q.Table = "my_table"
	q.Assignments = []core.Assignment{
		{Column: "col1", Value: core.Col("other.col1")},
		{Column: "col2", Value: core.Col("other.col2")},
		{Column: "col3", Value: core.Lit(0)},
	}
	q.From = &core.TableRef{Alias: "other", Query: sub}
	q.Where.AddLeaf(core.CombNone, leaf("my_table.id", core.OpEq, core.Col("other_table.id")))

	stmt := render(t, q, options(true))

	assert.Equal(t, "update `my_table` "+
		"set `col1` = `other`.`col1`, `col2` = `other`.`col2`, `col3` = 0 "+
		"from (select `col1`, `col2` from `other_table`) as `other` "+
		"where `my_table`.`id` = `other_table`.`id`", stmt.SQL)
}

func TestRender_ForgottenWhere(t *testing.T) {
	update := func() *core.Query {
		q := core.NewQuery(core.KindUpdate)
		q.Table = "user"
		q.Assignments = []core.Assignment{{Column: "counter", Value: core.Lit(0)}}
		return q
	}
	remove := func() *core.Query {
		q := core.NewQuery(core.KindDelete)
		q.Table = "user"
		return q
	}

	t.Run("update fails", func(t *testing.T) {
		stmt, err := Render(update(), mysql.MySQL, options(true))
		assert.Nil(t, stmt)
		var fw *ForgottenWhereError
		require.ErrorAs(t, err, &fw)
		assert.Equal(t, core.KindUpdate, fw.Kind)
		assert.Contains(t, err.Error(), "an update query without a where")
		assert.Contains(t, err.Error(), "WithoutWhere()")
	})

	t.Run("delete fails", func(t *testing.T) {
		_, err := Render(remove(), mysql.MySQL, options(true))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a delete query without a where")
	})

	t.Run("unsafe fails too", func(t *testing.T) {
		out, err := RenderUnsafe(remove(), mysql.MySQL, options(true))
		assert.Empty(t, out)
		var fw *ForgottenWhereError
		assert.ErrorAs(t, err, &fw)
	})

	t.Run("without where", func(t *testing.T) {
		q := update()
		q.WithoutWhere = true
		assert.Equal(t, "update `user` set `counter` = 0", render(t, q, options(true)).SQL)
	})

	t.Run("guard disabled", func(t *testing.T) {
		opts := options(true)
		opts.GuardForgottenWhere = false
		assert.Equal(t, "delete from `user`", render(t, remove(), opts).SQL)
	})

	t.Run("with where", func(t *testing.T) {
		q := remove()
		q.Where.AddLeaf(core.CombNone, leaf("id", core.OpEq, core.Lit(7)))
		assert.Equal(t, "delete from `user` where `id` = 7", render(t, q, options(true)).SQL)
	})
}

func TestRender_InjectionDefense(t *testing.T) {
	tests := []struct {
		name   string
		column string
		marker string
	}{
		{"separator", "name;drop", ";"},
		{"line comment", "name--", "--"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := selectFrom("user", column(tt.column))

			_, err := Render(q, mysql.MySQL, options(true))
			var inj *InjectionError
			require.ErrorAs(t, err, &inj)
			assert.Equal(t, tt.marker, inj.Marker)

			opts := options(true)
			opts.InjectionDefense = false
			_, err = Render(q, mysql.MySQL, opts)
			assert.NoError(t, err)
		})
	}

	t.Run("bound values are not scanned", func(t *testing.T) {
		q := selectFrom("user")
		q.Where.AddLeaf(core.CombNone, leaf("name", core.OpEq, core.Lit("x'; drop table user; --")))

		stmt := render(t, q, options(true))
		assert.Equal(t, "select * from `user` where `name` = @p0", stmt.SQL)

		out, err := RenderUnsafe(q, mysql.MySQL, options(true))
		require.NoError(t, err)
		assert.Equal(t, "select * from `user` where `name` = 'x''; drop table user; --'", out)
	})
}

func TestRenderUnsafe_Literals(t *testing.T) {
	at := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)

	q := selectFrom("t")
	q.Where.AddLeaf(core.CombNone, leaf("a", core.OpEq, core.Lit("it's")))
	q.Where.AddLeaf(core.CombAnd, leaf("b", core.OpEq, core.Lit(true)))
	q.Where.AddLeaf(core.CombAnd, leaf("c", core.OpGtEq, core.Lit(at)))
	q.Where.AddLeaf(core.CombAnd, leaf("d", core.OpLt, core.Lit(1.5)))
	q.Where.AddLeaf(core.CombAnd, leaf("e", core.OpIn, core.List(int64(1), "x")))

	out, err := RenderUnsafe(q, mysql.MySQL, options(false))
	require.NoError(t, err)

	assert.Equal(t, "select * from `t` where `a` = 'it''s' and `b` = true "+
		"and `c` >= '2021-03-04 05:06:07' and `d` < 1.5 and `e` in (1, 'x')", out)
}

func TestRender_UsageErrors(t *testing.T) {
	insert := func(p *core.InsertPayload) *core.Query {
		q := core.NewQuery(core.KindInsert)
		q.Table = "user"
		q.Insert = p
		return q
	}

	tests := []struct {
		name  string
		query *core.Query
		msg   string
	}{
		{"insert without columns", insert(&core.InsertPayload{}), "column list"},
		{"insert without source", insert(&core.InsertPayload{Columns: []string{"a"}}), "neither values nor a select"},
		{
			"insert mixing sources",
			insert(&core.InsertPayload{Columns: []string{"a"}, Rows: [][]core.Value{{core.Lit(1)}}, FromSelect: true}),
			"mixes values rows",
		},
		{
			"row width",
			insert(&core.InsertPayload{Columns: []string{"a", "b"}, Rows: [][]core.Value{{core.Lit(1)}}}),
			"row 0 has 1 values for 2 columns",
		},
		{"update without assignments", func() *core.Query {
			q := core.NewQuery(core.KindUpdate)
			q.Table = "user"
			q.WithoutWhere = true
			return q
		}(), "without any assignment"},
		{"nil subquery", func() *core.Query {
			q := selectFrom("user")
			q.Where.AddLeaf(core.CombNone, leaf("id", core.OpIn, core.Sub(nil)))
			return q
		}(), "returned no query"},
		{"nested invalid", func() *core.Query {
			bad := core.NewQuery(core.KindDelete)
			q := selectFrom("user")
			q.Where.AddLeaf(core.CombNone, &core.Leaf{Op: core.OpExists, Value: core.Sub(bad)})
			return q
		}(), "delete without a target table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.query, mysql.MySQL, options(true))
			var usage *UsageError
			require.ErrorAs(t, err, &usage)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestRender_Defaults(t *testing.T) {
	q := selectFrom("userTable", column("firstName"))

	stmt, err := Render(q, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, `select "first_name" from "user_table"`, stmt.SQL)

	_, err = Render(nil, mysql.MySQL, nil)
	assert.Error(t, err)
}

func TestRender_ColumnFormat(t *testing.T) {
	opts := options(true)
	opts.ColumnFormat = naming.Upper

	stmt := render(t, selectFrom("user", column("name"), core.SelectItem{Kind: core.SelectStar}), opts)
	assert.Equal(t, "select `NAME`, * from `USER`", stmt.SQL)
}

func TestRender_WrapReservedWords(t *testing.T) {
	q := selectFrom("user", column("order"), column("name"), column("orders.key"))
	q.Where.AddLeaf(core.CombNone, leaf("group", core.OpEq, core.Lit(1)))

	opts := core.PlainPreset()
	opts.WrapReservedWords = true
	stmt := render(t, q, opts)
	assert.Equal(t, "select `order`, name, orders.`key` from user where `group` = @p0", stmt.SQL)

	opts.WrapFieldNames = true
	stmt = render(t, q, opts)
	assert.Equal(t, "select `order`, `name`, `orders`.`key` from `user` where `group` = @p0", stmt.SQL)
}

func TestStatement_Args(t *testing.T) {
	stmt := &Statement{SQL: "x", Params: []core.Param{{Name: "p0", Value: 1}, {Name: "p1", Value: "a"}}}

	args := stmt.Args()
	require.Len(t, args, 2)
	assert.Equal(t, sql.Named("p0", 1), args[0])
	assert.Equal(t, map[string]any{"p0": 1, "p1": "a"}, stmt.Map())
	assert.NotContains(t, stmt.Map(), "@p0")
	assert.Equal(t, "@p1", stmt.Params[1].Placeholder())
}
