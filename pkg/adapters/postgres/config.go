package postgres

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/leapquery/pkg/adapter"
)

// Params holds PostgreSQL-specific settings from the target's params block.
type Params struct {
	// SSLMode overrides options.sslmode. Defaults to disable.
	SSLMode string `mapstructure:"sslmode"`

	// ApplicationName is reported in pg_stat_activity.
	ApplicationName string `mapstructure:"application_name"`

	// ConnectTimeout bounds dialing, e.g. "5s".
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`

	// StatementTimeout is sent as the statement_timeout session setting.
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
}

// ParseParams decodes the raw params map. Durations may be given as
// strings ("30s") or as nanoseconds.
func ParseParams(raw map[string]any) (*Params, error) {
	var p Params
	if raw == nil {
		return &p, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid postgres params: %w", err)
	}
	return &p, nil
}

// runtimeParams returns the session settings sent on connect.
func (p *Params) runtimeParams() map[string]string {
	out := map[string]string{}
	if p.ApplicationName != "" {
		out["application_name"] = p.ApplicationName
	}
	if p.StatementTimeout > 0 {
		out["statement_timeout"] = strconv.FormatInt(p.StatementTimeout.Milliseconds(), 10)
	}
	return out
}

// buildPostgresDSN constructs a key=value PostgreSQL connection string.
func buildPostgresDSN(cfg adapter.Config, p *Params) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslmode := "disable"
	if mode, ok := cfg.Options["sslmode"]; ok {
		sslmode = mode
	}
	if p != nil && p.SSLMode != "" {
		sslmode = p.SSLMode
	}

	pairs := [][2]string{
		{"host", host},
		{"port", strconv.Itoa(port)},
		{"dbname", cfg.Database},
		{"sslmode", sslmode},
	}
	if cfg.Username != "" {
		pairs = append(pairs, [2]string{"user", cfg.Username})
	}
	if cfg.Password != "" {
		pairs = append(pairs, [2]string{"password", cfg.Password})
	}
	if cfg.Schema != "" {
		pairs = append(pairs, [2]string{"search_path", cfg.Schema})
	}
	if p != nil && p.ConnectTimeout > 0 {
		secs := int(p.ConnectTimeout.Round(time.Second) / time.Second)
		pairs = append(pairs, [2]string{"connect_timeout", strconv.Itoa(max(secs, 1))})
	}

	parts := make([]string, len(pairs))
	for i, kv := range pairs {
		parts[i] = kv[0] + "=" + dsnValue(kv[1])
	}
	return strings.Join(parts, " ")
}

// dsnValue quotes v when libpq's key=value syntax requires it.
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// sortedKeys is used for deterministic debug logging.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
