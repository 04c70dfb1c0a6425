// Package databricks provides the Databricks SQL dialect definition.
package databricks

import (
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

func init() {
	dialect.Register(Databricks)
}

// Databricks is the Databricks SQL dialect (backtick identifiers).
var Databricks = dialect.New(Config).Build()
