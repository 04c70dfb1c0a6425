package format

import (
	"fmt"

	"github.com/leapstack-labs/leapquery/pkg/core"
)

// ForgottenWhereError is returned for an UPDATE or DELETE without a WHERE
// clause that was not marked WithoutWhere.
type ForgottenWhereError struct {
	Kind core.Kind
}

func (e *ForgottenWhereError) Error() string {
	article := "a"
	if e.Kind == core.KindUpdate {
		article = "an"
	}
	return fmt.Sprintf("you are trying to execute %s %s query without a where; "+
		"if this is intentional, call WithoutWhere()", article, e.Kind)
}

// InjectionError is returned when the rendered text contains a statement
// separator or a line comment.
type InjectionError struct {
	Marker string
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("potential sql injection: rendered query contains %q", e.Marker)
}

// UsageError reports a query that was built in a way that cannot be rendered.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return "invalid query: " + e.Message
}

func usagef(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}
