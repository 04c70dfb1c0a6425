// Package format renders a core.Query into dialect-specific SQL text plus an
// ordered parameter list.
package format

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// Printer walks one query tree and writes its SQL text.
//
// A Printer carries a single parameter counter for the whole walk: the root
// query, its joins and every nested subquery draw placeholders from the same
// sequence, in the order their text is written.
type Printer struct {
	dialect *dialect.Dialect
	opts    *core.Options
	output  *bytes.Buffer
	params  []core.Param

	// unsafe writes literals into the text instead of binding them.
	unsafe bool
}

func newPrinter(d *dialect.Dialect, opts *core.Options, unsafe bool) *Printer {
	return &Printer{
		dialect: d,
		opts:    opts,
		output:  &bytes.Buffer{},
		unsafe:  unsafe,
	}
}

// String returns the rendered text.
func (p *Printer) String() string {
	return p.output.String()
}

// Params returns the parameters bound so far, in placeholder order.
func (p *Printer) Params() []core.Param {
	return p.params
}

// Bind returns the SQL text for a literal: the next @pN placeholder, or the
// literal itself for inlined numbers and unsafe rendering.
// Bind satisfies dialect.Binder so pagination values share the counter.
func (p *Printer) Bind(v any) string {
	if p.unsafe {
		return literal(v)
	}
	if p.opts.DontParameterizeNumbers {
		if s, ok := numberText(v); ok {
			return s
		}
	}
	name := "p" + strconv.Itoa(len(p.params))
	p.params = append(p.params, core.Param{Name: name, Value: v})
	return "@" + name
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// kw writes lower-case keywords separated by single spaces.
func (p *Printer) kw(words ...string) {
	for i, w := range words {
		if i > 0 {
			p.space()
		}
		p.write(w)
	}
}

// ident writes a possibly qualified identifier. Every dot-separated part goes
// through the column format and, when enabled, the dialect quoting (always,
// or for reserved words only).
func (p *Printer) ident(name string) {
	p.write(p.identText(name))
}

func (p *Printer) identText(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		if part == "*" {
			continue
		}
		part = p.opts.Format(part)
		switch {
		case p.opts.WrapFieldNames:
			part = p.dialect.WrapIdentifier(part)
		case p.opts.WrapReservedWords:
			part = p.dialect.WrapIdentifierIfNeeded(part)
		}
		parts[i] = part
	}
	return strings.Join(parts, ".")
}

// formatList prints count items separated by sep.
func (p *Printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		if i > 0 {
			p.write(sep)
		}
		format(i)
	}
}

// subquery writes a nested query in parentheses, sharing this printer's
// counter.
func (p *Printer) subquery(q *core.Query) {
	p.write("(")
	p.formatQuery(q)
	p.write(")")
}
