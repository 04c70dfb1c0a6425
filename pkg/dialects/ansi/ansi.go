// Package ansi provides the base ANSI SQL dialect: double-quoted identifiers,
// OFFSET ... FETCH pagination and named parameters.
package ansi

import (
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// ANSI is the base ANSI SQL dialect.
var ANSI = dialect.NewDialect("ansi").
	Identifiers(`"`, `"`, `""`, core.NormUppercase).
	PlaceholderStyle(core.PlaceholderNamed).
	Pagination(core.PaginationOffsetFetch, "").
	WithReservedWords(
		"all", "and", "as", "between", "by", "case", "cast", "check", "column",
		"constraint", "create", "cross", "current_date", "current_time",
		"current_timestamp", "current_user", "default", "delete", "distinct",
		"else", "end", "except", "exists", "false", "fetch", "for", "foreign",
		"from", "full", "grant", "group", "having", "in", "inner", "insert",
		"intersect", "into", "is", "join", "left", "like", "natural", "not",
		"null", "offset", "on", "or", "order", "outer", "primary", "references",
		"right", "rows", "select", "set", "table", "then", "to", "true", "union",
		"unique", "update", "user", "using", "values", "when", "where", "with",
	).
	Build()
