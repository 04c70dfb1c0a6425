package format

import (
	"github.com/leapstack-labs/leapquery/pkg/core"
)

// formatQuery writes any statement kind.
func (p *Printer) formatQuery(q *core.Query) {
	switch q.Kind {
	case core.KindInsert:
		p.formatInsert(q)
	case core.KindUpdate:
		p.formatUpdate(q)
	case core.KindDelete:
		p.formatDelete(q)
	default:
		p.formatSelect(q)
	}
}

// formatSelect writes the clauses in text order, which is also the order
// their parameters are numbered in.
func (p *Printer) formatSelect(q *core.Query) {
	p.kw("select")
	if q.Distinct {
		p.write(" distinct")
	}
	p.space()
	p.formatSelectList(q.Columns)

	if q.From != nil {
		p.write(" from ")
		p.formatTableRef(q.From)
	}

	p.formatJoins(q.Joins)
	p.formatWhere(q.Where)

	if len(q.GroupBy) > 0 {
		p.write(" group by ")
		p.formatList(len(q.GroupBy), func(i int) {
			p.ident(q.GroupBy[i])
		}, ", ")
	}

	if !q.Having.IsEmpty() {
		p.write(" having ")
		p.formatForest(q.Having)
	}

	if len(q.OrderBy) > 0 {
		p.write(" order by ")
		p.formatList(len(q.OrderBy), func(i int) {
			item := q.OrderBy[i]
			p.ident(item.Expr)
			if item.Desc {
				p.write(" desc")
			} else {
				p.write(" asc")
			}
		}, ", ")
	}

	if text := p.dialect.RenderLimitOffset(q.Limit, q.Offset, p); text != "" {
		p.space()
		p.write(text)
	}
}

func (p *Printer) formatSelectList(items []core.SelectItem) {
	if len(items) == 0 {
		p.write("*")
		return
	}
	p.formatList(len(items), func(i int) {
		p.formatSelectItem(items[i])
	}, ", ")
}

func (p *Printer) formatSelectItem(item core.SelectItem) {
	switch item.Kind {
	case core.SelectAggregate:
		p.write(item.Func + "(")
		p.ident(item.Expr)
		p.write(")")
	case core.SelectCountAll:
		p.write("count(*)")
	case core.SelectSubquery:
		p.subquery(item.Query)
	case core.SelectStar:
		p.write("*")
	case core.SelectTableStar:
		p.ident(item.Expr)
		p.write(".*")
	default:
		p.ident(item.Expr)
	}
	if item.Alias != "" {
		p.write(" as ")
		p.ident(item.Alias)
	}
}

// formatTableRef writes a table name or an aliased subquery.
func (p *Printer) formatTableRef(t *core.TableRef) {
	if t.Query != nil {
		p.subquery(t.Query)
	} else {
		p.ident(t.Name)
	}
	if t.Alias != "" {
		p.write(" as ")
		p.ident(t.Alias)
	}
}

func (p *Printer) formatJoins(joins []core.Join) {
	for i := range joins {
		j := &joins[i]
		p.space()
		p.write(string(j.Type))
		p.space()
		p.formatTableRef(&j.Target)
		if !j.On.IsEmpty() {
			p.write(" on ")
			p.formatForest(j.On)
		}
	}
}

func (p *Printer) formatWhere(f *core.Forest) {
	if f.IsEmpty() {
		return
	}
	p.write(" where ")
	p.formatForest(f)
}

// formatValue writes the right-hand side of an assignment or an INSERT cell.
func (p *Printer) formatValue(v core.Value) {
	switch v.Kind {
	case core.ValueColumn:
		p.ident(v.Column)
	case core.ValueSubquery:
		p.subquery(v.Query)
	default:
		p.write(p.Bind(v.Literal))
	}
}

// formatInsert writes INSERT ... VALUES or INSERT ... SELECT. The source
// SELECT of an INSERT lives on the same query.
func (p *Printer) formatInsert(q *core.Query) {
	p.kw("insert", "into")
	p.space()
	p.ident(q.Table)
	p.write(" (")
	p.formatList(len(q.Insert.Columns), func(i int) {
		p.ident(q.Insert.Columns[i])
	}, ", ")
	p.write(") ")

	if q.Insert.FromSelect {
		p.formatSelect(q)
		return
	}

	p.kw("values")
	p.space()
	p.formatList(len(q.Insert.Rows), func(i int) {
		row := q.Insert.Rows[i]
		p.write("(")
		p.formatList(len(row), func(j int) {
			p.formatValue(row[j])
		}, ", ")
		p.write(")")
	}, ", ")
}

func (p *Printer) formatUpdate(q *core.Query) {
	p.kw("update")
	p.space()
	p.ident(q.Table)
	p.write(" set ")
	p.formatList(len(q.Assignments), func(i int) {
		a := q.Assignments[i]
		p.ident(a.Column)
		p.write(" = ")
		p.formatValue(a.Value)
	}, ", ")

	if q.From != nil {
		p.write(" from ")
		p.formatTableRef(q.From)
	}
	p.formatJoins(q.Joins)
	p.formatWhere(q.Where)
}

func (p *Printer) formatDelete(q *core.Query) {
	p.kw("delete", "from")
	p.space()
	p.ident(q.Table)
	p.formatJoins(q.Joins)
	p.formatWhere(q.Where)
}
