// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package postgres

import "github.com/leapstack-labs/leapquery/pkg/core"

// Config is the PostgreSQL dialect configuration.
// This is pure data - shared by the adapter and the renderer.
var Config = &core.DialectConfig{
	Name:          "postgres",
	DefaultSchema: "public",
	Placeholder:   core.PlaceholderDollar,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase, // Postgres normalizes unquoted to lowercase
	},
	Pagination: core.PaginationConfig{Style: core.PaginationLimitOffset},
	// This is a manually maintained list of frequently problematic identifiers.
	// For a complete list, use pg_get_keywords() at runtime.
	ReservedWords: []string{
		"user", "order", "group", "table", "select", "from", "where", "index",
		"all", "and", "any", "array", "as", "asc", "asymmetric", "authorization",
		"between", "binary", "both", "case", "cast", "check", "collate", "column",
		"constraint", "create", "cross", "current_catalog", "current_date",
		"current_role", "current_schema", "current_time", "current_timestamp",
		"current_user", "default", "deferrable", "desc", "distinct", "do", "else",
		"end", "except", "false", "fetch", "for", "foreign", "freeze", "full",
		"grant", "having", "ilike", "in", "initially", "inner", "intersect",
		"into", "is", "isnull", "join", "lateral", "leading", "left", "like",
		"limit", "localtime", "localtimestamp", "natural", "not", "notnull",
		"null", "offset", "on", "only", "or", "outer", "overlaps", "placing",
		"primary", "references", "returning", "right", "session_user", "similar",
		"some", "symmetric", "then", "to", "trailing", "true", "union", "unique",
		"using", "variadic", "verbose", "when", "window", "with",
	},
}
