package builder

import (
	"github.com/leapstack-labs/leapquery/pkg/core"
)

// ---------- WHERE ----------

func (b *Builder) where(comb core.Combinator, col string) *Predicate[Query] {
	return newPredicate[Query](b, b.q.Where, comb, col, b)
}

// Where starts a condition. On a non-empty WHERE it is joined with AND.
func (b *Builder) Where(col string) *Predicate[Query] {
	return b.where(core.CombNone, col)
}

// AndWhere starts a condition joined with AND.
func (b *Builder) AndWhere(col string) *Predicate[Query] {
	return b.where(core.CombAnd, col)
}

// And is AndWhere.
func (b *Builder) And(col string) *Predicate[Query] {
	return b.where(core.CombAnd, col)
}

// OrWhere starts a condition joined with OR.
func (b *Builder) OrWhere(col string) *Predicate[Query] {
	return b.where(core.CombOr, col)
}

// Or is OrWhere.
func (b *Builder) Or(col string) *Predicate[Query] {
	return b.where(core.CombOr, col)
}

func (b *Builder) addGroup(f *core.Forest, comb core.Combinator, fn GroupFunc, negated bool) Query {
	g := b.group(fn)
	f.AddGroup(comb, g, negated)
	return b
}

// WhereGroup adds a parenthesized group built by fn. An empty group adds
// nothing.
func (b *Builder) WhereGroup(fn GroupFunc) Query {
	return b.addGroup(b.q.Where, core.CombNone, fn, false)
}

// AndWhereGroup adds a group joined with AND.
func (b *Builder) AndWhereGroup(fn GroupFunc) Query {
	return b.addGroup(b.q.Where, core.CombAnd, fn, false)
}

// OrWhereGroup adds a group joined with OR.
func (b *Builder) OrWhereGroup(fn GroupFunc) Query {
	return b.addGroup(b.q.Where, core.CombOr, fn, false)
}

// WhereNot adds "not (<group>)".
func (b *Builder) WhereNot(fn GroupFunc) Query {
	return b.addGroup(b.q.Where, core.CombNone, fn, true)
}

// AndWhereNot adds "and not (<group>)".
func (b *Builder) AndWhereNot(fn GroupFunc) Query {
	return b.addGroup(b.q.Where, core.CombAnd, fn, true)
}

// OrWhereNot adds "or not (<group>)".
func (b *Builder) OrWhereNot(fn GroupFunc) Query {
	return b.addGroup(b.q.Where, core.CombOr, fn, true)
}

func (b *Builder) exists(comb core.Combinator, op core.Operator, fn SubqueryFunc) Query {
	sub := b.subquery(fn)
	b.q.Where.AddLeaf(comb, &core.Leaf{Op: op, Value: core.Sub(sub)})
	return b
}

// WhereExists adds "exists (<subquery>)" once fn returns.
func (b *Builder) WhereExists(fn SubqueryFunc) Query {
	return b.exists(core.CombNone, core.OpExists, fn)
}

// WhereNotExists adds "not exists (<subquery>)".
func (b *Builder) WhereNotExists(fn SubqueryFunc) Query {
	return b.exists(core.CombNone, core.OpNotExists, fn)
}

// AndWhereExists is WhereExists joined with AND.
func (b *Builder) AndWhereExists(fn SubqueryFunc) Query {
	return b.exists(core.CombAnd, core.OpExists, fn)
}

// AndWhereNotExists is WhereNotExists joined with AND.
func (b *Builder) AndWhereNotExists(fn SubqueryFunc) Query {
	return b.exists(core.CombAnd, core.OpNotExists, fn)
}

// OrWhereExists is WhereExists joined with OR.
func (b *Builder) OrWhereExists(fn SubqueryFunc) Query {
	return b.exists(core.CombOr, core.OpExists, fn)
}

// OrWhereNotExists is WhereNotExists joined with OR.
func (b *Builder) OrWhereNotExists(fn SubqueryFunc) Query {
	return b.exists(core.CombOr, core.OpNotExists, fn)
}

// ---------- HAVING ----------

func (b *Builder) having(comb core.Combinator, col string) *Predicate[Query] {
	return newPredicate[Query](b, b.q.Having, comb, col, b)
}

// Having starts a HAVING condition, joined with AND when one exists.
func (b *Builder) Having(col string) *Predicate[Query] {
	return b.having(core.CombNone, col)
}

// AndHaving starts a HAVING condition joined with AND.
func (b *Builder) AndHaving(col string) *Predicate[Query] {
	return b.having(core.CombAnd, col)
}

// OrHaving starts a HAVING condition joined with OR.
func (b *Builder) OrHaving(col string) *Predicate[Query] {
	return b.having(core.CombOr, col)
}

// HavingGroup adds a parenthesized HAVING group.
func (b *Builder) HavingGroup(fn GroupFunc) Query {
	return b.addGroup(b.q.Having, core.CombNone, fn, false)
}

// AndHavingGroup adds a HAVING group joined with AND.
func (b *Builder) AndHavingGroup(fn GroupFunc) Query {
	return b.addGroup(b.q.Having, core.CombAnd, fn, false)
}

// OrHavingGroup adds a HAVING group joined with OR.
func (b *Builder) OrHavingGroup(fn GroupFunc) Query {
	return b.addGroup(b.q.Having, core.CombOr, fn, false)
}

// NotHaving adds "not (<group>)" to HAVING.
func (b *Builder) NotHaving(fn GroupFunc) Query {
	return b.addGroup(b.q.Having, core.CombNone, fn, true)
}

// AndNotHaving adds "and not (<group>)" to HAVING.
func (b *Builder) AndNotHaving(fn GroupFunc) Query {
	return b.addGroup(b.q.Having, core.CombAnd, fn, true)
}

// OrNotHaving adds "or not (<group>)" to HAVING.
func (b *Builder) OrNotHaving(fn GroupFunc) Query {
	return b.addGroup(b.q.Having, core.CombOr, fn, true)
}

// ---------- JOIN ----------

type joinStage struct {
	b     *Builder
	index int
}

func (b *Builder) join(typ core.JoinType, table, alias string) JoinStage {
	b.q.Joins = append(b.q.Joins, core.Join{
		Type:   typ,
		Target: core.TableRef{Name: table, Alias: alias},
		On:     core.NewForest(),
	})
	return joinStage{b: b, index: len(b.q.Joins) - 1}
}

// Join adds an inner join. alias may be empty.
func (b *Builder) Join(table, alias string) JoinStage {
	return b.join(core.JoinInner, table, alias)
}

// LeftJoin adds a left join.
func (b *Builder) LeftJoin(table, alias string) JoinStage {
	return b.join(core.JoinLeft, table, alias)
}

// RightJoin adds a right join.
func (b *Builder) RightJoin(table, alias string) JoinStage {
	return b.join(core.JoinRight, table, alias)
}

// FullJoin adds a full join.
func (b *Builder) FullJoin(table, alias string) JoinStage {
	return b.join(core.JoinFull, table, alias)
}

// On joins on left = right, both columns.
func (j joinStage) On(left, right string) Query {
	j.b.q.Joins[j.index].On.AddLeaf(core.CombNone, &core.Leaf{Column: left, Op: core.OpEq, Value: core.Col(right)})
	return j.b
}

// OnGroup uses the conditions built by fn as the ON clause.
func (j joinStage) OnGroup(fn GroupFunc) Query {
	j.b.q.Joins[j.index].On = j.b.group(fn)
	return j.b
}
