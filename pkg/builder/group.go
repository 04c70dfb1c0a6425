package builder

import (
	"github.com/leapstack-labs/leapquery/pkg/core"
)

// Group builds the conditions of one parenthesized group. The same type
// serves WHERE, HAVING and JOIN ... ON groups. A group left empty by its
// callback is dropped.
type Group struct {
	forest *core.Forest
	owner  *Builder
}

func (g *Group) pred(comb core.Combinator, col string) *Predicate[*Group] {
	return newPredicate(g.owner, g.forest, comb, col, g)
}

// Where starts a condition; on a non-empty group it is joined with AND.
func (g *Group) Where(col string) *Predicate[*Group] {
	return g.pred(core.CombNone, col)
}

// And starts a condition joined with AND.
func (g *Group) And(col string) *Predicate[*Group] {
	return g.pred(core.CombAnd, col)
}

// Or starts a condition joined with OR.
func (g *Group) Or(col string) *Predicate[*Group] {
	return g.pred(core.CombOr, col)
}

func (g *Group) nested(comb core.Combinator, fn GroupFunc, negated bool) *Group {
	sub := g.owner.group(fn)
	g.forest.AddGroup(comb, sub, negated)
	return g
}

// Group adds a nested parenthesized group.
func (g *Group) Group(fn GroupFunc) *Group {
	return g.nested(core.CombNone, fn, false)
}

// AndGroup adds a nested group joined with AND.
func (g *Group) AndGroup(fn GroupFunc) *Group {
	return g.nested(core.CombAnd, fn, false)
}

// OrGroup adds a nested group joined with OR.
func (g *Group) OrGroup(fn GroupFunc) *Group {
	return g.nested(core.CombOr, fn, false)
}

// Not adds "not (<group>)".
func (g *Group) Not(fn GroupFunc) *Group {
	return g.nested(core.CombNone, fn, true)
}

// AndNot adds "and not (<group>)".
func (g *Group) AndNot(fn GroupFunc) *Group {
	return g.nested(core.CombAnd, fn, true)
}

// OrNot adds "or not (<group>)".
func (g *Group) OrNot(fn GroupFunc) *Group {
	return g.nested(core.CombOr, fn, true)
}

func (g *Group) exists(comb core.Combinator, op core.Operator, fn SubqueryFunc) *Group {
	sub := g.owner.subquery(fn)
	g.forest.AddLeaf(comb, &core.Leaf{Op: op, Value: core.Sub(sub)})
	return g
}

// Exists adds "exists (<subquery>)" after fn returns.
func (g *Group) Exists(fn SubqueryFunc) *Group {
	return g.exists(core.CombNone, core.OpExists, fn)
}

// NotExists adds "not exists (<subquery>)".
func (g *Group) NotExists(fn SubqueryFunc) *Group {
	return g.exists(core.CombNone, core.OpNotExists, fn)
}

// AndExists is Exists joined with AND.
func (g *Group) AndExists(fn SubqueryFunc) *Group {
	return g.exists(core.CombAnd, core.OpExists, fn)
}

// AndNotExists is NotExists joined with AND.
func (g *Group) AndNotExists(fn SubqueryFunc) *Group {
	return g.exists(core.CombAnd, core.OpNotExists, fn)
}

// OrExists is Exists joined with OR.
func (g *Group) OrExists(fn SubqueryFunc) *Group {
	return g.exists(core.CombOr, core.OpExists, fn)
}

// OrNotExists is NotExists joined with OR.
func (g *Group) OrNotExists(fn SubqueryFunc) *Group {
	return g.exists(core.CombOr, core.OpNotExists, fn)
}

// Len returns the number of entries added so far.
func (g *Group) Len() int {
	return g.forest.Len()
}
