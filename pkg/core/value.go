package core

// ValueKind identifies which field of a Value is set.
type ValueKind int

const (
	// ValueLiteral is a scalar literal, or a []any list for IN.
	ValueLiteral ValueKind = iota
	// ValueColumn references another column.
	ValueColumn
	// ValueSubquery is a nested query.
	ValueSubquery
)

// Value is the right-hand side of a predicate or assignment.
type Value struct {
	Kind    ValueKind
	Literal any
	Column  string
	Query   *Query
}

// Lit wraps a literal value.
func Lit(v any) Value {
	return Value{Kind: ValueLiteral, Literal: v}
}

// List wraps a list literal, as used by IN and NOT IN.
func List(vs ...any) Value {
	items := make([]any, len(vs))
	copy(items, vs)
	return Value{Kind: ValueLiteral, Literal: items}
}

// Col references a column.
func Col(name string) Value {
	return Value{Kind: ValueColumn, Column: name}
}

// Sub wraps a subquery.
func Sub(q *Query) Value {
	return Value{Kind: ValueSubquery, Query: q}
}

// IsNull reports whether the value is a nil literal.
func (v Value) IsNull() bool {
	return v.Kind == ValueLiteral && v.Literal == nil
}

// Items returns the list items of a list literal.
func (v Value) Items() ([]any, bool) {
	if v.Kind != ValueLiteral {
		return nil, false
	}
	items, ok := v.Literal.([]any)
	return items, ok
}

// Clone returns a deep copy of the value. Lists and subqueries are copied;
// scalar literals are shared.
func (v Value) Clone() Value {
	switch v.Kind {
	case ValueSubquery:
		return Sub(v.Query.Clone())
	case ValueLiteral:
		if items, ok := v.Items(); ok {
			return List(items...)
		}
	}
	return v
}
