package dialect

import "github.com/leapstack-labs/leapquery/pkg/core"

// builtinStandard is the dialect used when none is configured: ANSI quoting,
// limit/offset pagination and named @pN parameters left as rendered.
// This is registered automatically when the package is loaded.
var builtinStandard = NewDialect("standard").
	Identifiers(`"`, `"`, `""`, core.NormLowercase).
	PlaceholderStyle(core.PlaceholderNamed).
	Pagination(core.PaginationLimitOffset, "").
	Build()

func init() {
	// Register the builtin dialect and set it as default
	Register(builtinStandard)
	SetDefault(builtinStandard)
}
