package format

import (
	"cloud.google.com/go/civil"
	"github.com/leapstack-labs/leapquery/pkg/core"
)

// formatForest writes the entries of a condition forest joined by their
// combinators. Groups and negated entries are always parenthesized.
func (p *Printer) formatForest(f *core.Forest) {
	if f == nil {
		return
	}
	for i, e := range f.Entries {
		if i > 0 {
			p.space()
			p.kw(e.Combinator.String())
			p.space()
		}
		if e.Negated {
			p.kw("not")
			p.space()
		}
		switch {
		case e.Group != nil:
			p.write("(")
			p.formatForest(e.Group)
			p.write(")")
		case e.Negated:
			p.write("(")
			p.formatLeaf(e.Leaf)
			p.write(")")
		default:
			p.formatLeaf(e.Leaf)
		}
	}
}

func (p *Printer) formatLeaf(l *core.Leaf) {
	switch l.Op {
	case core.OpExists, core.OpNotExists:
		p.kw(l.Op.String())
		p.space()
		p.subquery(l.Value.Query)
		return
	}

	switch l.Value.Kind {
	case core.ValueSubquery:
		p.ident(l.Column)
		p.space()
		p.write(operatorText(l.Op))
		p.space()
		p.subquery(l.Value.Query)
	case core.ValueColumn:
		p.ident(l.Column)
		p.space()
		p.write(operatorText(l.Op))
		p.space()
		p.ident(l.Value.Column)
	default:
		p.formatLiteralLeaf(l)
	}
}

// operatorText maps IS / IS NOT with a non-null operand to = / !=.
func operatorText(op core.Operator) string {
	switch op {
	case core.OpIs:
		return core.OpEq.String()
	case core.OpIsNot:
		return core.OpNotEq.String()
	default:
		return op.String()
	}
}

func (p *Printer) formatLiteralLeaf(l *core.Leaf) {
	op := l.Op

	if op == core.OpIn || op == core.OpNotIn {
		p.formatIn(l)
		return
	}

	if l.Value.IsNull() {
		switch op {
		case core.OpIs, core.OpEq:
			p.ident(l.Column)
			p.write(" is null")
			return
		case core.OpIsNot, core.OpNotEq:
			p.ident(l.Column)
			p.write(" is not null")
			return
		}
	}

	switch op {
	case core.OpIs:
		op = core.OpEq
	case core.OpIsNot:
		op = core.OpNotEq
	}

	if d, ok := l.Value.Literal.(civil.Date); ok && p.opts.UseSmartDates && op.IsComparison() {
		p.formatDateComparison(l.Column, op, d)
		return
	}

	p.ident(l.Column)
	p.space()
	p.write(op.String())
	p.space()
	p.write(p.Bind(l.Value.Literal))
}

// formatIn writes IN / NOT IN over a literal list. An empty list can never
// match for IN and always matches for NOT IN.
func (p *Printer) formatIn(l *core.Leaf) {
	items, ok := l.Value.Items()
	if !ok {
		items = []any{l.Value.Literal}
	}
	if len(items) == 0 {
		if l.Op == core.OpIn {
			p.write("1 = 0")
		} else {
			p.write("1 = 1")
		}
		return
	}
	p.ident(l.Column)
	p.space()
	p.write(l.Op.String())
	p.write(" (")
	p.formatList(len(items), func(i int) {
		p.write(p.Bind(items[i]))
	}, ", ")
	p.write(")")
}

// formatDateComparison compares a column against a whole day.
//
//	col =  d  ->  (col >= d and col < d+1)
//	col != d  ->  (col < d or col >= d+1)
//	col >  d  ->  col >= d+1
//	col <= d  ->  col < d+1
//
// >= and < already fall on day boundaries and are left alone.
func (p *Printer) formatDateComparison(column string, op core.Operator, d civil.Date) {
	next := d.AddDays(1)
	col := p.identText(column)

	switch op {
	case core.OpEq:
		p.write("(" + col + " >= " + p.Bind(d))
		p.write(" and " + col + " < " + p.Bind(next) + ")")
	case core.OpNotEq:
		p.write("(" + col + " < " + p.Bind(d))
		p.write(" or " + col + " >= " + p.Bind(next) + ")")
	case core.OpGt:
		p.write(col + " >= " + p.Bind(next))
	case core.OpLtEq:
		p.write(col + " < " + p.Bind(next))
	default:
		p.write(col + " " + op.String() + " " + p.Bind(d))
	}
}
