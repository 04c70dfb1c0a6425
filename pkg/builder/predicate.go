package builder

import (
	"reflect"

	"github.com/leapstack-labs/leapquery/pkg/core"
)

// Predicate finishes a condition started by Where, And, Or, Having and
// friends. Every method appends one leaf to the target forest and returns
// the chain the condition was started from.
type Predicate[T any] struct {
	owner  *Builder
	forest *core.Forest
	comb   core.Combinator
	column string
	next   T
}

func newPredicate[T any](owner *Builder, f *core.Forest, comb core.Combinator, col string, next T) *Predicate[T] {
	return &Predicate[T]{owner: owner, forest: f, comb: comb, column: col, next: next}
}

func (p *Predicate[T]) leaf(op core.Operator, v core.Value) T {
	p.forest.AddLeaf(p.comb, &core.Leaf{Column: p.column, Op: op, Value: v})
	return p.next
}

// query builds the subquery first and only then appends the leaf, so
// anything the callback added to this forest lands ahead of it.
func (p *Predicate[T]) query(op core.Operator, fn SubqueryFunc) T {
	sub := p.owner.subquery(fn)
	return p.leaf(op, core.Sub(sub))
}

// Eq adds col = v. A nil v renders "is null".
func (p *Predicate[T]) Eq(v any) T {
	return p.leaf(core.OpEq, core.Lit(v))
}

// NotEq adds col <> v. A nil v renders "is not null".
func (p *Predicate[T]) NotEq(v any) T {
	return p.leaf(core.OpNotEq, core.Lit(v))
}

// Gt adds col > v.
func (p *Predicate[T]) Gt(v any) T {
	return p.leaf(core.OpGt, core.Lit(v))
}

// GtEq adds col >= v.
func (p *Predicate[T]) GtEq(v any) T {
	return p.leaf(core.OpGtEq, core.Lit(v))
}

// Lt adds col < v.
func (p *Predicate[T]) Lt(v any) T {
	return p.leaf(core.OpLt, core.Lit(v))
}

// LtEq adds col <= v.
func (p *Predicate[T]) LtEq(v any) T {
	return p.leaf(core.OpLtEq, core.Lit(v))
}

// Like adds col like v.
func (p *Predicate[T]) Like(v any) T {
	return p.leaf(core.OpLike, core.Lit(v))
}

// NotLike adds col not like v.
func (p *Predicate[T]) NotLike(v any) T {
	return p.leaf(core.OpNotLike, core.Lit(v))
}

// Is compares with IS semantics: nil renders "is null", any other value "=".
func (p *Predicate[T]) Is(v any) T {
	return p.leaf(core.OpIs, core.Lit(v))
}

// IsNot is the negation of Is.
func (p *Predicate[T]) IsNot(v any) T {
	return p.leaf(core.OpIsNot, core.Lit(v))
}

// IsNull adds "col is null".
func (p *Predicate[T]) IsNull() T {
	return p.Is(nil)
}

// IsNotNull adds "col is not null".
func (p *Predicate[T]) IsNotNull() T {
	return p.IsNot(nil)
}

// In matches any of values. A single slice argument is expanded.
func (p *Predicate[T]) In(values ...any) T {
	return p.leaf(core.OpIn, core.List(expand(values)...))
}

// NotIn matches none of values. A single slice argument is expanded.
func (p *Predicate[T]) NotIn(values ...any) T {
	return p.leaf(core.OpNotIn, core.List(expand(values)...))
}

// EqColumn compares with another column using =.
func (p *Predicate[T]) EqColumn(col string) T {
	return p.leaf(core.OpEq, core.Col(col))
}

// NotEqColumn compares with another column using <>.
func (p *Predicate[T]) NotEqColumn(col string) T {
	return p.leaf(core.OpNotEq, core.Col(col))
}

// GtColumn compares with another column using >.
func (p *Predicate[T]) GtColumn(col string) T {
	return p.leaf(core.OpGt, core.Col(col))
}

// GtEqColumn compares with another column using >=.
func (p *Predicate[T]) GtEqColumn(col string) T {
	return p.leaf(core.OpGtEq, core.Col(col))
}

// LtColumn compares with another column using <.
func (p *Predicate[T]) LtColumn(col string) T {
	return p.leaf(core.OpLt, core.Col(col))
}

// LtEqColumn compares with another column using <=.
func (p *Predicate[T]) LtEqColumn(col string) T {
	return p.leaf(core.OpLtEq, core.Col(col))
}

// IsColumn compares two columns for equality.
func (p *Predicate[T]) IsColumn(col string) T {
	return p.leaf(core.OpEq, core.Col(col))
}

// EqQuery adds col = (<subquery>).
func (p *Predicate[T]) EqQuery(fn SubqueryFunc) T {
	return p.query(core.OpEq, fn)
}

// NotEqQuery adds col <> (<subquery>).
func (p *Predicate[T]) NotEqQuery(fn SubqueryFunc) T {
	return p.query(core.OpNotEq, fn)
}

// GtQuery adds col > (<subquery>).
func (p *Predicate[T]) GtQuery(fn SubqueryFunc) T {
	return p.query(core.OpGt, fn)
}

// GtEqQuery adds col >= (<subquery>).
func (p *Predicate[T]) GtEqQuery(fn SubqueryFunc) T {
	return p.query(core.OpGtEq, fn)
}

// LtQuery adds col < (<subquery>).
func (p *Predicate[T]) LtQuery(fn SubqueryFunc) T {
	return p.query(core.OpLt, fn)
}

// LtEqQuery adds col <= (<subquery>).
func (p *Predicate[T]) LtEqQuery(fn SubqueryFunc) T {
	return p.query(core.OpLtEq, fn)
}

// InQuery adds col in (<subquery>).
func (p *Predicate[T]) InQuery(fn SubqueryFunc) T {
	return p.query(core.OpIn, fn)
}

// NotInQuery adds col not in (<subquery>).
func (p *Predicate[T]) NotInQuery(fn SubqueryFunc) T {
	return p.query(core.OpNotIn, fn)
}

// expand turns In([]int{1, 2}) into In(1, 2). Strings and byte slices are
// kept as single values.
func expand(values []any) []any {
	if len(values) != 1 || values[0] == nil {
		return values
	}
	rv := reflect.ValueOf(values[0])
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return values
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return values
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
