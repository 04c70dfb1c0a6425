// Package main provides the leapquery command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/leapquery/internal/cli"

	// Register adapters and their dialects.
	_ "github.com/leapstack-labs/leapquery/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/leapquery/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/leapquery/pkg/adapters/sqlite"

	// Dialects without an adapter can still be rendered for.
	_ "github.com/leapstack-labs/leapquery/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/leapquery/pkg/dialects/databricks"
	_ "github.com/leapstack-labs/leapquery/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/leapquery/pkg/dialects/snowflake"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
