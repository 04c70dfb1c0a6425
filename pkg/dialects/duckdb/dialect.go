// Package duckdb provides the DuckDB SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package duckdb

import (
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

func init() {
	dialect.Register(DuckDB)
}

// DuckDB is the DuckDB dialect.
var DuckDB = dialect.New(Config).Build()
