package querydef

import (
	"strings"

	"github.com/leapstack-labs/leapquery/pkg/builder"
)

// Position of an entry in its list, which selects the combinator.
const (
	first = iota
	and
	or
)

// forest is the set of verbs that add entries to one condition forest,
// indexed by position. WHERE, HAVING and groups each fill it from their
// own methods.
type forest[T any] struct {
	pred      [3]func(string) *builder.Predicate[T]
	group     [3]func(builder.GroupFunc) T
	not       [3]func(builder.GroupFunc) T
	exists    [3]func(builder.SubqueryFunc) T
	notExists [3]func(builder.SubqueryFunc) T
}

func whereForest(q builder.Query) forest[builder.Query] {
	return forest[builder.Query]{
		pred:      [3]func(string) *builder.Predicate[builder.Query]{q.Where, q.AndWhere, q.OrWhere},
		group:     [3]func(builder.GroupFunc) builder.Query{q.WhereGroup, q.AndWhereGroup, q.OrWhereGroup},
		not:       [3]func(builder.GroupFunc) builder.Query{q.WhereNot, q.AndWhereNot, q.OrWhereNot},
		exists:    [3]func(builder.SubqueryFunc) builder.Query{q.WhereExists, q.AndWhereExists, q.OrWhereExists},
		notExists: [3]func(builder.SubqueryFunc) builder.Query{q.WhereNotExists, q.AndWhereNotExists, q.OrWhereNotExists},
	}
}

func havingForest(q builder.Query) forest[builder.Query] {
	return forest[builder.Query]{
		pred:  [3]func(string) *builder.Predicate[builder.Query]{q.Having, q.AndHaving, q.OrHaving},
		group: [3]func(builder.GroupFunc) builder.Query{q.HavingGroup, q.AndHavingGroup, q.OrHavingGroup},
		not:   [3]func(builder.GroupFunc) builder.Query{q.NotHaving, q.AndNotHaving, q.OrNotHaving},
	}
}

func groupForest(g *builder.Group) forest[*builder.Group] {
	return forest[*builder.Group]{
		pred:      [3]func(string) *builder.Predicate[*builder.Group]{g.Where, g.And, g.Or},
		group:     [3]func(builder.GroupFunc) *builder.Group{g.Group, g.AndGroup, g.OrGroup},
		not:       [3]func(builder.GroupFunc) *builder.Group{g.Not, g.AndNot, g.OrNot},
		exists:    [3]func(builder.SubqueryFunc) *builder.Group{g.Exists, g.AndExists, g.OrExists},
		notExists: [3]func(builder.SubqueryFunc) *builder.Group{g.NotExists, g.AndNotExists, g.OrNotExists},
	}
}

// addRoot adds c to f without parentheses: the entries of a top-level all
// or any list become entries of f itself.
func addRoot[T any](f forest[T], c *Condition, path string) error {
	if err := validate(c, path); err != nil {
		return err
	}
	switch {
	case c.All != nil:
		return addList(f, c.All, at(path, "all"), and)
	case c.Any != nil:
		return addList(f, c.Any, at(path, "any"), or)
	default:
		return addEntry(f, c, path, first)
	}
}

func addList[T any](f forest[T], items []*Condition, path string, pos int) error {
	if len(items) == 0 {
		return errorf(path, "list is empty")
	}
	for i, item := range items {
		p := pos
		if i == 0 {
			p = first
		}
		if err := addEntry(f, item, index(path, i), p); err != nil {
			return err
		}
	}
	return nil
}

// addEntry adds one entry at pos. Nested lists become parenthesized groups.
func addEntry[T any](f forest[T], c *Condition, path string, pos int) error {
	if err := validate(c, path); err != nil {
		return err
	}

	var err error
	switch {
	case c.All != nil || c.Any != nil:
		f.group[pos](func(g *builder.Group) {
			err = addRoot(groupForest(g), c, path)
		})
	case c.Not != nil:
		f.not[pos](func(g *builder.Group) {
			err = addRoot(groupForest(g), c.Not, at(path, "not"))
		})
	case c.Exists != nil:
		if f.exists[pos] == nil {
			return errorf(path, "exists is not supported here")
		}
		f.exists[pos](subquery(c.Exists, at(path, "exists"), &err))
	case c.NotExists != nil:
		if f.notExists[pos] == nil {
			return errorf(path, "not_exists is not supported here")
		}
		f.notExists[pos](subquery(c.NotExists, at(path, "not_exists"), &err))
	default:
		return addLeaf(f.pred[pos](c.Column), c, path)
	}
	return err
}

func validate(c *Condition, path string) error {
	if c == nil {
		return errorf(path, "condition is empty")
	}
	set := 0
	for _, ok := range []bool{c.All != nil, c.Any != nil, c.Not != nil, c.Exists != nil, c.NotExists != nil, c.Column != ""} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return errorf(path, "condition must set exactly one of all, any, not, exists, not_exists and column")
	}
	return nil
}

// addLeaf finishes p with the operator and operand of c.
func addLeaf[T any](p *builder.Predicate[T], c *Condition, path string) error {
	sources := 0
	for _, ok := range []bool{c.Value != nil, c.Ref != "", c.Query != nil} {
		if ok {
			sources++
		}
	}
	if sources > 1 {
		return errorf(path, "value, ref and query are mutually exclusive")
	}

	op := normalizeOp(c.Op)
	switch {
	case c.Ref != "":
		return refLeaf(p, op, c.Ref, path)
	case c.Query != nil:
		return queryLeaf(p, op, c.Query, path)
	}

	v := c.Value.value()
	switch op {
	case "=":
		p.Eq(v)
	case "!=":
		p.NotEq(v)
	case ">":
		p.Gt(v)
	case ">=":
		p.GtEq(v)
	case "<":
		p.Lt(v)
	case "<=":
		p.LtEq(v)
	case "like":
		p.Like(v)
	case "not like":
		p.NotLike(v)
	case "is":
		p.Is(v)
	case "is not":
		p.IsNot(v)
	case "in":
		p.In(v)
	case "not in":
		p.NotIn(v)
	default:
		return errorf(at(path, "op"), "unknown operator %q", c.Op)
	}
	return nil
}

func refLeaf[T any](p *builder.Predicate[T], op, ref, path string) error {
	switch op {
	case "=", "is":
		p.EqColumn(ref)
	case "!=":
		p.NotEqColumn(ref)
	case ">":
		p.GtColumn(ref)
	case ">=":
		p.GtEqColumn(ref)
	case "<":
		p.LtColumn(ref)
	case "<=":
		p.LtEqColumn(ref)
	default:
		return errorf(at(path, "op"), "operator %q cannot compare columns", op)
	}
	return nil
}

func queryLeaf[T any](p *builder.Predicate[T], op string, def *Definition, path string) error {
	var err error
	fn := subquery(def, at(path, "query"), &err)
	switch op {
	case "=":
		p.EqQuery(fn)
	case "!=":
		p.NotEqQuery(fn)
	case ">":
		p.GtQuery(fn)
	case ">=":
		p.GtEqQuery(fn)
	case "<":
		p.LtQuery(fn)
	case "<=":
		p.LtEqQuery(fn)
	case "in":
		p.InQuery(fn)
	case "not in":
		p.NotInQuery(fn)
	default:
		return errorf(at(path, "op"), "operator %q cannot compare with a subquery", op)
	}
	return err
}

// normalizeOp accepts symbolic and word spellings: "<>", "ne", "not_in".
func normalizeOp(op string) string {
	op = strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(op, "_", " "))), " ")
	switch op {
	case "", "eq", "==":
		return "="
	case "ne", "neq", "<>", "not eq":
		return "!="
	case "gt":
		return ">"
	case "gte", "ge":
		return ">="
	case "lt":
		return "<"
	case "lte", "le":
		return "<="
	}
	return op
}
