package format

import (
	"database/sql"
	"strings"

	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

// Statement is a rendered query: SQL text with @pN placeholders and the
// values bound to them, in placeholder order.
type Statement struct {
	SQL    string
	Params []core.Param
}

// Args returns the parameters as sql.NamedArg values.
func (s *Statement) Args() []any {
	args := make([]any, len(s.Params))
	for i, p := range s.Params {
		args[i] = sql.Named(p.Name, p.Value)
	}
	return args
}

// Map returns the parameters keyed by name. Keys carry no '@': the value
// bound to @p0 is m["p0"], the same name sql.Named receives from Args.
// Use core.Param.Placeholder for the text as it appears in SQL.
func (s *Statement) Map() map[string]any {
	m := make(map[string]any, len(s.Params))
	for _, p := range s.Params {
		m[p.Name] = p.Value
	}
	return m
}

// Render serializes q for dialect d. A nil dialect selects the registry
// default; nil options select core.DefaultOptions.
//
// Rendering never returns partial text: a guard or usage failure returns a
// nil statement.
func Render(q *core.Query, d *dialect.Dialect, opts *core.Options) (*Statement, error) {
	d, opts, err := prepare(q, d, opts)
	if err != nil {
		return nil, err
	}

	p := newPrinter(d, opts, false)
	p.formatQuery(q)
	text := p.String()

	if opts.InjectionDefense {
		if err := scanInjection(text); err != nil {
			return nil, err
		}
	}
	return &Statement{SQL: text, Params: p.Params()}, nil
}

// RenderUnsafe serializes q with every literal written inline. The same
// guards as Render apply, checked against the parameterized text.
//
// The output is meant for logs and debugging; never execute it.
func RenderUnsafe(q *core.Query, d *dialect.Dialect, opts *core.Options) (string, error) {
	if _, err := Render(q, d, opts); err != nil {
		return "", err
	}
	d, opts, _ = prepare(q, d, opts)

	p := newPrinter(d, opts, true)
	p.formatQuery(q)
	return p.String(), nil
}

func prepare(q *core.Query, d *dialect.Dialect, opts *core.Options) (*dialect.Dialect, *core.Options, error) {
	if d == nil {
		d = dialect.Default()
		if d == nil {
			return nil, nil, dialect.ErrDialectRequired
		}
	}
	if opts == nil {
		opts = core.DefaultOptions()
	}
	if q == nil {
		return nil, nil, usagef("nothing to render")
	}
	if err := checkForgottenWhere(q, opts); err != nil {
		return nil, nil, err
	}
	if err := validate(q); err != nil {
		return nil, nil, err
	}
	return d, opts, nil
}

func checkForgottenWhere(q *core.Query, opts *core.Options) error {
	if !opts.GuardForgottenWhere || q.WithoutWhere || !q.Where.IsEmpty() {
		return nil
	}
	if q.Kind == core.KindUpdate || q.Kind == core.KindDelete {
		return &ForgottenWhereError{Kind: q.Kind}
	}
	return nil
}

// scanInjection rejects a ';' anywhere but the final byte, and any "--".
func scanInjection(text string) error {
	if i := strings.IndexByte(text, ';'); i >= 0 && i != len(text)-1 {
		return &InjectionError{Marker: ";"}
	}
	if strings.Contains(text, "--") {
		return &InjectionError{Marker: "--"}
	}
	return nil
}
