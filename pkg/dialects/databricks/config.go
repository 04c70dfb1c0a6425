// Package databricks provides the Databricks SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package databricks

import "github.com/leapstack-labs/leapquery/pkg/core"

// Config is the Databricks SQL dialect configuration.
// This is pure data - shared by the adapter and the renderer.
var Config = &core.DialectConfig{
	Name:          "databricks",
	DefaultSchema: "default",
	Placeholder:   core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseInsensitive,
	},
	Pagination: core.PaginationConfig{Style: core.PaginationLimitOffset},
	ReservedWords: []string{
		"all", "alter", "and", "anti", "any", "as", "authorization", "both", "case",
		"cast", "check", "collate", "column", "constraint", "create", "cross", "cube",
		"current", "delete", "describe", "distinct", "drop", "else", "end", "except",
		"exists", "false", "fetch", "filter", "for", "foreign", "from", "full",
		"grant", "group", "having", "in", "inner", "insert", "intersect", "interval",
		"into", "is", "join", "lateral", "left", "like", "limit", "minus", "natural",
		"not", "null", "of", "offset", "on", "only", "or", "order", "outer",
		"qualify", "right", "rollup", "select", "semi", "set", "some", "table",
		"then", "to", "true", "union", "unique", "update", "using", "values",
		"when", "where", "window", "with",
	},
}
