package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

const timestampLayout = "2006-01-02 15:04:05"

// numberText returns the SQL text of a Go numeric value.
func numberText(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	default:
		return "", false
	}
}

// literal renders a value as inline SQL text. Only used for unsafe output.
func literal(v any) string {
	if s, ok := numberText(v); ok {
		return s
	}
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case string:
		return quote(x)
	case []byte:
		return quote(string(x))
	case civil.Date:
		return quote(x.String())
	case civil.DateTime:
		return quote(x.Date.String() + " " + x.Time.String())
	case time.Time:
		return quote(x.Format(timestampLayout))
	case fmt.Stringer:
		return quote(x.String())
	default:
		return fmt.Sprint(x)
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
