// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies,
// making it suitable for rendering SQL without opening a connection.
package postgres

import (
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// Postgres is the PostgreSQL dialect: double-quoted identifiers,
// $N parameters and LIMIT/OFFSET pagination.
var Postgres = dialect.New(Config).Build()
