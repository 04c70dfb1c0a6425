// Package builder provides the fluent query builder.
//
// A chain starts at New or ForDialect and mutates one core.Query:
//
//	q := builder.New(db, nil).
//		Select("color").CountAllAs("colors").
//		From("user").
//		GroupBy("color")
//	stmt, err := q.ToParameterizedSQL()
//
// Verbs that take a SubqueryFunc run the callback first and append the
// resulting condition only after it returns, so conditions the callback adds
// to an enclosing query come before it.
package builder

import (
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// Builder is the single concrete type behind every stage interface.
// A Builder must not be used from several goroutines at once.
type Builder struct {
	q       *core.Query
	opts    *core.Options
	dialect *dialect.Dialect
	exec    Executor

	scope  *scope
	self   handle
	parent handle
}

// New starts a query that executes through exec. The dialect is taken from
// exec; nil options select core.DefaultOptions.
func New(exec Executor, opts *core.Options) Initial {
	var d *dialect.Dialect
	if exec != nil {
		d = exec.Dialect()
	}
	return newRoot(exec, d, opts)
}

// ForDialect starts a query that can only be rendered, not executed.
func ForDialect(d *dialect.Dialect, opts *core.Options) Initial {
	return newRoot(nil, d, opts)
}

func newRoot(exec Executor, d *dialect.Dialect, opts *core.Options) *Builder {
	if d == nil {
		d = dialect.Default()
	}
	b := &Builder{
		q:       core.NewQuery(core.KindSelect),
		opts:    opts.Clone(),
		dialect: d,
		exec:    exec,
		scope:   newScope(),
		parent:  noHandle,
	}
	b.self = b.scope.open(b)
	return b
}

// child returns a fresh builder for a subquery, linked to b through the scope.
func (b *Builder) child() *Builder {
	c := &Builder{
		q:       core.NewQuery(core.KindSelect),
		opts:    b.opts,
		dialect: b.dialect,
		exec:    b.exec,
		scope:   b.scope,
		parent:  b.self,
	}
	c.self = b.scope.open(c)
	return c
}

// subquery runs fn on a child builder and returns the finished query.
// A builder whose own callback already returned is reopened for the
// duration of fn so the child can still reach it.
func (b *Builder) subquery(fn SubqueryFunc) *core.Query {
	if b.self == noHandle {
		b.self = b.scope.open(b)
		defer func() {
			b.scope.release(b.self)
			b.self = noHandle
		}()
	}

	c := b.child()
	defer func() {
		b.scope.release(c.self)
		c.self = noHandle
		c.parent = noHandle
	}()

	res := fn(c)
	if res == nil {
		return nil
	}
	return res.Model()
}

// group runs fn on an empty group and returns its forest.
func (b *Builder) group(fn GroupFunc) *core.Forest {
	g := &Group{forest: core.NewForest(), owner: b}
	fn(g)
	return g.forest
}

// Model returns the query being built. It is shared, not copied.
func (b *Builder) Model() *core.Query {
	return b.q
}

// Parent returns the query whose subquery callback is currently running
// this builder, or nil outside such a callback.
func (b *Builder) Parent() Query {
	if p := b.scope.lookup(b.parent); p != nil {
		return p
	}
	return nil
}

// Options returns the rendering options of this builder.
func (b *Builder) Options() *core.Options {
	return b.opts
}

// Dialect returns the dialect used for rendering.
func (b *Builder) Dialect() *dialect.Dialect {
	return b.dialect
}

// Clone returns an independent copy of the query, with no parent link.
func (b *Builder) Clone() Query {
	c := &Builder{
		q:       b.q.Clone(),
		opts:    b.opts.Clone(),
		dialect: b.dialect,
		exec:    b.exec,
		scope:   newScope(),
		parent:  noHandle,
	}
	c.self = c.scope.open(c)
	return c
}

// CloneWithoutSelect is Clone with the select list cleared.
func (b *Builder) CloneWithoutSelect() Query {
	c := b.Clone()
	c.Model().Columns = nil
	return c
}

// WithoutWhere allows an UPDATE or DELETE without a WHERE clause.
func (b *Builder) WithoutWhere() Query {
	b.q.WithoutWhere = true
	return b
}
