// Package naming provides the column name formats applied to every
// identifier before it is wrapped by a dialect.
package naming

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format is a pure string transform for identifiers.
type Format interface {
	// Name identifies the format in configuration files.
	Name() string
	// Apply transforms a single identifier part.
	Apply(name string) string
}

type formatFunc struct {
	name string
	fn   func(string) string
}

func (f formatFunc) Name() string             { return f.name }
func (f formatFunc) Apply(name string) string { return f.fn(name) }

// Built-in formats.
var (
	Identity     Format = formatFunc{name: "none", fn: func(s string) string { return s }}
	CamelToSnake Format = formatFunc{name: "snake", fn: toSnake}
	Lower        Format = formatFunc{name: "lower", fn: lower}
	Upper        Format = formatFunc{name: "upper", fn: upper}
)

var byName = map[string]Format{
	Identity.Name():     Identity,
	"identity":          Identity,
	CamelToSnake.Name(): CamelToSnake,
	Lower.Name():        Lower,
	Upper.Name():        Upper,
}

// Parse returns the format registered under name. An empty name is Identity.
func Parse(name string) (Format, error) {
	if name == "" {
		return Identity, nil
	}
	if f, ok := byName[strings.ToLower(name)]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("unknown column format %q (want one of: none, snake, lower, upper)", name)
}

// A Caser keeps state, so each call gets its own.
func lower(s string) string { return cases.Lower(language.Und).String(s) }
func upper(s string) string { return cases.Upper(language.Und).String(s) }

// toSnake converts camelCase and PascalCase to snake_case.
// Acronyms stay together: UserID -> user_id, HTTPServer -> http_server.
func toSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
