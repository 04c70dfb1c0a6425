package builder

import (
	"context"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/format"
)

// The stage interfaces below restrict which verbs are callable at each
// point of a fluent chain. All of them are implemented by *Builder.

// SubqueryFunc builds a nested query on a fresh builder and returns it.
// The enclosing builder may still be modified while the callback runs.
type SubqueryFunc func(Initial) Query

// GroupFunc fills a parenthesized condition group.
type GroupFunc func(*Group)

// Initial is the entry stage: pick the statement kind.
type Initial interface {
	Select(cols ...string) SelectStage
	SelectDistinct(cols ...string) SelectStage
	SelectAll() SelectStage
	SelectAllFrom(table string) Query
	InsertInto(table string) InsertStage
	Update(table string) UpdateStage
	DeleteFrom(table string) Query
}

// SelectStage adds output expressions until the source is chosen.
type SelectStage interface {
	Column(col string) SelectStage
	ColumnAs(col, alias string) SelectStage
	Count(col string) SelectStage
	CountAs(col, alias string) SelectStage
	CountAll() SelectStage
	CountAllAs(alias string) SelectStage
	Sum(col string) SelectStage
	SumAs(col, alias string) SelectStage
	Avg(col string) SelectStage
	AvgAs(col, alias string) SelectStage
	Min(col string) SelectStage
	MinAs(col, alias string) SelectStage
	Max(col string) SelectStage
	MaxAs(col, alias string) SelectStage
	SelectQueryAs(alias string, fn SubqueryFunc) SelectStage

	From(table string) Query
	FromAs(table, alias string) Query
	FromQuery(alias string, fn SubqueryFunc) Query
}

// InsertStage requires the column list before any values.
type InsertStage interface {
	Columns(cols ...string) InsertColumnsStage
}

// InsertColumnsStage picks the row source: literal rows or a SELECT.
type InsertColumnsStage interface {
	Values(row ...any) InsertValuesStage
	Select(cols ...string) SelectStage
}

// InsertValuesStage accepts more rows or finishes the statement.
type InsertValuesStage interface {
	Values(row ...any) InsertValuesStage
	Runnable
}

// UpdateStage collects SET assignments in call order.
type UpdateStage interface {
	Set(col string, v any) UpdateStage
	SetToColumn(col, other string) UpdateStage
	FromQuery(alias string, fn SubqueryFunc) Query
	Query
}

// JoinStage completes a JOIN with its ON condition.
type JoinStage interface {
	On(left, right string) Query
	OnGroup(fn GroupFunc) Query
}

// Runnable is a finished statement.
type Runnable interface {
	ToParameterizedSQL() (*format.Statement, error)
	ToUnsafeSQL() (string, error)
	Execute(ctx context.Context) (int64, error)
	Model() *core.Query
	String() string
}

// Query is the complete stage: conditions, grouping, ordering, paging.
type Query interface {
	Runnable

	Where(col string) *Predicate[Query]
	AndWhere(col string) *Predicate[Query]
	And(col string) *Predicate[Query]
	OrWhere(col string) *Predicate[Query]
	Or(col string) *Predicate[Query]

	WhereGroup(fn GroupFunc) Query
	AndWhereGroup(fn GroupFunc) Query
	OrWhereGroup(fn GroupFunc) Query
	WhereNot(fn GroupFunc) Query
	AndWhereNot(fn GroupFunc) Query
	OrWhereNot(fn GroupFunc) Query

	WhereExists(fn SubqueryFunc) Query
	WhereNotExists(fn SubqueryFunc) Query
	AndWhereExists(fn SubqueryFunc) Query
	AndWhereNotExists(fn SubqueryFunc) Query
	OrWhereExists(fn SubqueryFunc) Query
	OrWhereNotExists(fn SubqueryFunc) Query

	Having(col string) *Predicate[Query]
	AndHaving(col string) *Predicate[Query]
	OrHaving(col string) *Predicate[Query]
	HavingGroup(fn GroupFunc) Query
	AndHavingGroup(fn GroupFunc) Query
	OrHavingGroup(fn GroupFunc) Query
	NotHaving(fn GroupFunc) Query
	AndNotHaving(fn GroupFunc) Query
	OrNotHaving(fn GroupFunc) Query

	Join(table, alias string) JoinStage
	LeftJoin(table, alias string) JoinStage
	RightJoin(table, alias string) JoinStage
	FullJoin(table, alias string) JoinStage

	GroupBy(cols ...string) Query
	OrderByAsc(cols ...string) Query
	OrderByDesc(cols ...string) Query
	Limit(n int64) Query
	Take(n int64) Query
	Offset(n int64) Query
	Skip(n int64) Query

	WithoutWhere() Query
	Clone() Query
	CloneWithoutSelect() Query

	// Parent returns the query whose callback is building this one, or nil.
	Parent() Query
}
