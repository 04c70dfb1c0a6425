// Package mysql provides the MySQL / MariaDB SQL dialect definition.
package mysql

import (
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// Config is the MySQL dialect configuration.
var Config = &core.DialectConfig{
	Name:        "mysql",
	Placeholder: core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseSensitive,
	},
	// Largest unsigned BIGINT, as recommended by the MySQL manual for
	// "all rows from the offset on".
	Pagination: core.PaginationConfig{
		Style:          core.PaginationLimitOffset,
		UnboundedLimit: "18446744073709551615",
	},
	ReservedWords: []string{
		"add", "all", "alter", "and", "as", "asc", "between", "by", "case", "check",
		"column", "condition", "constraint", "create", "cross", "database", "default",
		"delete", "desc", "distinct", "drop", "else", "exists", "false", "for",
		"foreign", "from", "group", "having", "in", "index", "inner", "insert",
		"interval", "into", "is", "join", "key", "keys", "left", "like", "limit",
		"lock", "match", "natural", "not", "null", "on", "or", "order", "outer",
		"primary", "range", "references", "rename", "right", "select", "set",
		"show", "table", "then", "to", "true", "union", "unique", "update",
		"usage", "using", "values", "when", "where", "with",
	},
}

// MySQL is the MySQL dialect (backtick identifiers, "?" parameters).
var MySQL = dialect.New(Config).Build()
