// Package snowflake provides the Snowflake SQL dialect definition.
package snowflake

import (
	"github.com/leapstack-labs/leapquery/pkg/dialect"
)

func init() {
	dialect.Register(Snowflake)
}

// Snowflake is the Snowflake SQL dialect.
// Unquoted identifiers are upper-cased by the server, so wrapped identifiers
// keep whatever case the column format produced.
var Snowflake = dialect.New(Config).Build()
