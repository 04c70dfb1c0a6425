package builder

import (
	"github.com/leapstack-labs/leapquery/pkg/core"
)

// ---------- SELECT ----------

// Select starts a SELECT with the given columns. On an INSERT it starts the
// source SELECT instead.
func (b *Builder) Select(cols ...string) SelectStage {
	if b.q.Kind == core.KindInsert {
		if b.q.Insert == nil {
			b.q.Insert = &core.InsertPayload{}
		}
		b.q.Insert.FromSelect = true
	}
	for _, c := range cols {
		b.Column(c)
	}
	return b
}

// SelectDistinct is Select with DISTINCT.
func (b *Builder) SelectDistinct(cols ...string) SelectStage {
	b.q.Distinct = true
	return b.Select(cols...)
}

// SelectAll selects *.
func (b *Builder) SelectAll() SelectStage {
	b.addColumn(core.SelectItem{Kind: core.SelectStar})
	return b
}

// SelectAllFrom selects table.* from table.
func (b *Builder) SelectAllFrom(table string) Query {
	b.addColumn(core.SelectItem{Kind: core.SelectTableStar, Expr: table})
	return b.From(table)
}

func (b *Builder) addColumn(item core.SelectItem) SelectStage {
	b.q.Columns = append(b.q.Columns, item)
	return b
}

// Column adds one column to the select list.
func (b *Builder) Column(col string) SelectStage {
	return b.addColumn(core.SelectItem{Kind: core.SelectColumn, Expr: col})
}

// ColumnAs adds a column under an alias.
func (b *Builder) ColumnAs(col, alias string) SelectStage {
	return b.addColumn(core.SelectItem{Kind: core.SelectColumn, Expr: col, Alias: alias})
}

func (b *Builder) aggregate(fn, col, alias string) SelectStage {
	return b.addColumn(core.SelectItem{Kind: core.SelectAggregate, Func: fn, Expr: col, Alias: alias})
}

// Count selects count(col).
func (b *Builder) Count(col string) SelectStage {
	return b.aggregate("count", col, "")
}

// CountAs selects count(col) under an alias.
func (b *Builder) CountAs(col, alias string) SelectStage {
	return b.aggregate("count", col, alias)
}

// Sum selects sum(col).
func (b *Builder) Sum(col string) SelectStage {
	return b.aggregate("sum", col, "")
}

// SumAs selects sum(col) under an alias.
func (b *Builder) SumAs(col, alias string) SelectStage {
	return b.aggregate("sum", col, alias)
}

// Avg selects avg(col).
func (b *Builder) Avg(col string) SelectStage {
	return b.aggregate("avg", col, "")
}

// AvgAs selects avg(col) under an alias.
func (b *Builder) AvgAs(col, alias string) SelectStage {
	return b.aggregate("avg", col, alias)
}

// Min selects min(col).
func (b *Builder) Min(col string) SelectStage {
	return b.aggregate("min", col, "")
}

// MinAs selects min(col) under an alias.
func (b *Builder) MinAs(col, alias string) SelectStage {
	return b.aggregate("min", col, alias)
}

// Max selects max(col).
func (b *Builder) Max(col string) SelectStage {
	return b.aggregate("max", col, "")
}

// MaxAs selects max(col) under an alias.
func (b *Builder) MaxAs(col, alias string) SelectStage {
	return b.aggregate("max", col, alias)
}

// CountAll selects count(*).
func (b *Builder) CountAll() SelectStage {
	return b.addColumn(core.SelectItem{Kind: core.SelectCountAll})
}

// CountAllAs selects count(*) under an alias.
func (b *Builder) CountAllAs(alias string) SelectStage {
	return b.addColumn(core.SelectItem{Kind: core.SelectCountAll, Alias: alias})
}

// SelectQueryAs selects a scalar subquery under an alias.
func (b *Builder) SelectQueryAs(alias string, fn SubqueryFunc) SelectStage {
	sub := b.subquery(fn)
	return b.addColumn(core.SelectItem{Kind: core.SelectSubquery, Query: sub, Alias: alias})
}

// From sets the source table.
func (b *Builder) From(table string) Query {
	b.q.From = &core.TableRef{Name: table}
	return b
}

// FromAs sets an aliased source table.
func (b *Builder) FromAs(table, alias string) Query {
	b.q.From = &core.TableRef{Name: table, Alias: alias}
	return b
}

// FromQuery sets an aliased subquery as the source. On an UPDATE it is the
// FROM clause whose columns the assignments can reference.
func (b *Builder) FromQuery(alias string, fn SubqueryFunc) Query {
	sub := b.subquery(fn)
	b.q.From = &core.TableRef{Alias: alias, Query: sub}
	return b
}

// ---------- INSERT ----------

// InsertInto starts an INSERT into table.
func (b *Builder) InsertInto(table string) InsertStage {
	b.q.Kind = core.KindInsert
	b.q.Table = table
	return b
}

// Columns sets the INSERT column list.
func (b *Builder) Columns(cols ...string) InsertColumnsStage {
	b.q.Insert = &core.InsertPayload{Columns: append([]string(nil), cols...)}
	return b
}

// Values appends one literal row. Rows are checked against the column list
// at render time.
func (b *Builder) Values(row ...any) InsertValuesStage {
	values := make([]core.Value, len(row))
	for i, v := range row {
		values[i] = core.Lit(v)
	}
	if b.q.Insert == nil {
		b.q.Insert = &core.InsertPayload{}
	}
	b.q.Insert.Rows = append(b.q.Insert.Rows, values)
	return b
}

// ---------- UPDATE / DELETE ----------

// Update starts an UPDATE of table.
func (b *Builder) Update(table string) UpdateStage {
	b.q.Kind = core.KindUpdate
	b.q.Table = table
	return b
}

// Set assigns a literal.
func (b *Builder) Set(col string, v any) UpdateStage {
	b.q.Assignments = append(b.q.Assignments, core.Assignment{Column: col, Value: core.Lit(v)})
	return b
}

// SetToColumn assigns another column, e.g. one of the FromQuery alias.
func (b *Builder) SetToColumn(col, other string) UpdateStage {
	b.q.Assignments = append(b.q.Assignments, core.Assignment{Column: col, Value: core.Col(other)})
	return b
}

// DeleteFrom starts a DELETE from table.
func (b *Builder) DeleteFrom(table string) Query {
	b.q.Kind = core.KindDelete
	b.q.Table = table
	return b
}

// ---------- grouping, ordering, paging ----------

func (b *Builder) GroupBy(cols ...string) Query {
	b.q.GroupBy = append(b.q.GroupBy, cols...)
	return b
}

func (b *Builder) OrderByAsc(cols ...string) Query {
	for _, c := range cols {
		b.q.OrderBy = append(b.q.OrderBy, core.OrderByItem{Expr: c})
	}
	return b
}

func (b *Builder) OrderByDesc(cols ...string) Query {
	for _, c := range cols {
		b.q.OrderBy = append(b.q.OrderBy, core.OrderByItem{Expr: c, Desc: true})
	}
	return b
}

// Limit caps the number of rows.
func (b *Builder) Limit(n int64) Query {
	b.q.Limit = &n
	return b
}

// Take is Limit.
func (b *Builder) Take(n int64) Query { return b.Limit(n) }

// Offset skips rows.
func (b *Builder) Offset(n int64) Query {
	b.q.Offset = &n
	return b
}

// Skip is Offset.
func (b *Builder) Skip(n int64) Query { return b.Offset(n) }
