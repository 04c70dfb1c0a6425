// Package dialect provides SQL dialect configuration for rendering and execution.
//
// This package contains the public contract for dialect definitions used by the
// serializer (identifier wrapping, pagination text) and by adapters (placeholder
// rebinding). Concrete dialect implementations are registered from
// pkg/dialects/*/ packages.
package dialect

import (
	"database/sql"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/leapstack-labs/leapquery/pkg/core"
)

// Binder turns a pagination value into SQL text: either a placeholder taken
// from the caller's parameter sequence or the literal itself.
type Binder interface {
	Bind(v any) string
}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig

	// Database-specific settings
	DefaultSchema string                // Default schema name ("main" for DuckDB, "public" for Postgres)
	Placeholder   core.PlaceholderStyle // How to pass query parameters to the driver
	Pagination    core.PaginationConfig // How to spell LIMIT/OFFSET

	reservedWords map[string]struct{} // Words that need quoting as identifiers
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	words := make([]string, 0, len(d.reservedWords))
	for w := range d.reservedWords {
		words = append(words, w)
	}
	return &core.DialectConfig{
		Name:          d.Name,
		Identifiers:   d.Identifiers,
		DefaultSchema: d.DefaultSchema,
		Placeholder:   d.Placeholder,
		Pagination:    d.Pagination,
		ReservedWords: words,
	}
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return strings.ToUpper(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[d.NormalizeName(word)]
	return ok
}

// WrapIdentifier quotes one identifier part using the dialect's quote characters.
func (d *Dialect) WrapIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// WrapIdentifierIfNeeded quotes an identifier only if it's a reserved word.
func (d *Dialect) WrapIdentifierIfNeeded(name string) string {
	if d.IsReservedWord(name) {
		return d.WrapIdentifier(name)
	}
	return name
}

// FormatPlaceholder returns the driver placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion, "$1", "$2" etc. for PlaceholderDollar and
// "@p0", "@p1" etc. for PlaceholderNamed.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	case core.PlaceholderNamed:
		return "@p" + strconv.Itoa(index-1)
	default: // PlaceholderQuestion
		return "?"
	}
}

// RenderLimitOffset returns the pagination clause, or "" when both are nil.
// Values go through b so that bound values share the caller's parameter sequence.
func (d *Dialect) RenderLimitOffset(limit, offset *int64, b Binder) string {
	if limit == nil && offset == nil {
		return ""
	}

	var parts []string
	switch d.Pagination.Style {
	case core.PaginationOffsetFetch:
		if offset != nil {
			parts = append(parts, "offset "+b.Bind(*offset)+" rows")
		}
		if limit != nil {
			next := "first"
			if offset != nil {
				next = "next"
			}
			parts = append(parts, "fetch "+next+" "+b.Bind(*limit)+" rows only")
		}
	default:
		switch {
		case limit != nil:
			parts = append(parts, "limit "+b.Bind(*limit))
		case d.Pagination.UnboundedLimit != "":
			parts = append(parts, "limit "+d.Pagination.UnboundedLimit)
		}
		if offset != nil {
			parts = append(parts, "offset "+b.Bind(*offset))
		}
	}
	return strings.Join(parts, " ")
}

// Rebind rewrites the @pN placeholders of a rendered statement into the
// driver's placeholder style and returns the matching argument list.
// Quoted identifiers and string literals are copied untouched. Civil dates
// and times are passed as their ISO 8601 text.
func (d *Dialect) Rebind(query string, params []core.Param) (string, []any) {
	if d.Placeholder == core.PlaceholderNamed {
		args := make([]any, len(params))
		for i, p := range params {
			args[i] = sql.Named(p.Name, driverValue(p.Value))
		}
		return query, args
	}

	values := make(map[string]any, len(params))
	for _, p := range params {
		values[p.Name] = driverValue(p.Value)
	}

	var b strings.Builder
	b.Grow(len(query))
	args := make([]any, 0, len(params))

	for i := 0; i < len(query); {
		if end := d.skipQuoted(query, i); end > i {
			b.WriteString(query[i:end])
			i = end
			continue
		}
		if query[i] == '@' && i+2 < len(query) && query[i+1] == 'p' && isDigit(query[i+2]) {
			j := i + 2
			for j < len(query) && isDigit(query[j]) {
				j++
			}
			if v, ok := values[query[i+1:j]]; ok {
				args = append(args, v)
				b.WriteString(d.FormatPlaceholder(len(args)))
				i = j
				continue
			}
		}
		b.WriteByte(query[i])
		i++
	}
	return b.String(), args
}

// skipQuoted returns the index just past a quoted identifier or string literal
// starting at i, or i when none starts there.
func (d *Dialect) skipQuoted(s string, i int) int {
	open, closing := "'", "'"
	switch {
	case s[i] == '\'':
	case d.Identifiers.Quote != "" && strings.HasPrefix(s[i:], d.Identifiers.Quote):
		open, closing = d.Identifiers.Quote, d.Identifiers.QuoteEnd
	default:
		return i
	}
	rest := s[i+len(open):]
	if idx := strings.Index(rest, closing); idx >= 0 {
		return i + len(open) + idx + len(closing)
	}
	return len(s)
}

// driverValue converts values database/sql drivers do not accept.
func driverValue(v any) any {
	switch t := v.(type) {
	case civil.Date:
		return t.String()
	case civil.DateTime:
		return t.String()
	case civil.Time:
		return t.String()
	}
	return v
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ---------- Builder ----------

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
// Identifiers default to ANSI double quotes, parameters to "?".
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: core.IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: core.NormLowercase,
			},
			reservedWords: make(map[string]struct{}),
		},
	}
}

// New creates a dialect builder from a DialectConfig.
// This is the preferred constructor for dialects defined as data.
func New(cfg *core.DialectConfig) *Builder {
	b := &Builder{
		dialect: &Dialect{
			Name:          cfg.Name,
			Identifiers:   cfg.Identifiers,
			DefaultSchema: cfg.DefaultSchema,
			Placeholder:   cfg.Placeholder,
			Pagination:    cfg.Pagination,
			reservedWords: make(map[string]struct{}),
		},
	}
	return b.WithReservedWords(cfg.ReservedWords...)
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// PlaceholderStyle sets how query parameters are passed to the driver.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// Pagination sets how LIMIT/OFFSET is spelled.
func (b *Builder) Pagination(style core.PaginationStyle, unboundedLimit string) *Builder {
	b.dialect.Pagination = core.PaginationConfig{Style: style, UnboundedLimit: unboundedLimit}
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[b.dialect.NormalizeName(w)] = struct{}{}
	}
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
