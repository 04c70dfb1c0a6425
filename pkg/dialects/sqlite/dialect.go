// Package sqlite provides the SQLite SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package sqlite

import (
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

func init() {
	dialect.Register(SQLite)
}

// Config is the SQLite dialect configuration.
var Config = &core.DialectConfig{
	Name:          "sqlite",
	DefaultSchema: "main",
	Placeholder:   core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},
	// SQLite rejects OFFSET without LIMIT; -1 means no limit.
	Pagination: core.PaginationConfig{Style: core.PaginationLimitOffset, UnboundedLimit: "-1"},
	ReservedWords: []string{
		"abort", "action", "add", "after", "all", "alter", "and", "as", "asc",
		"between", "by", "case", "check", "collate", "column", "commit", "constraint",
		"create", "cross", "default", "delete", "desc", "distinct", "drop", "else",
		"end", "escape", "except", "exists", "foreign", "from", "full", "glob",
		"group", "having", "in", "index", "inner", "insert", "intersect", "into",
		"is", "isnull", "join", "key", "left", "like", "limit", "match", "natural",
		"not", "notnull", "null", "of", "offset", "on", "or", "order", "outer",
		"primary", "references", "regexp", "right", "select", "set", "table",
		"then", "to", "transaction", "union", "unique", "update", "using",
		"values", "when", "where",
	},
}

// SQLite is the SQLite dialect.
var SQLite = dialect.New(Config).Build()
