// Package config loads leapquery configuration.
//
// Values are layered with koanf, lowest precedence first: built-in defaults,
// leapquery.yaml, LEAPQUERY_* environment variables, then command-line flags
// that were explicitly set.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapquery/pkg/adapter"
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	"github.com/leapstack-labs/leapquery/pkg/naming"
)

// Config holds the resolved configuration of one CLI invocation.
type Config struct {
	// Dialect renders queries when set; otherwise the target type decides.
	Dialect string        `koanf:"dialect"`
	Output  string        `koanf:"output"` // auto, table, markdown, json, csv
	Verbose bool          `koanf:"verbose"`
	Options OptionsConfig `koanf:"options"`

	// Target is the database queries run against. Targets holds named
	// overrides selected with --target.
	Target  *TargetConfig            `koanf:"target"`
	Targets map[string]*TargetConfig `koanf:"targets"`
}

// OptionsConfig maps the options block onto core.Options. Unset switches
// keep the preset's value.
type OptionsConfig struct {
	Preset       string `koanf:"preset"` // smart (default) or plain
	SmartDates   *bool  `koanf:"smart_dates"`
	GuardWhere   *bool  `koanf:"guard_forgotten_where"`
	Injection    *bool  `koanf:"injection_defense"`
	InlineNums   *bool  `koanf:"inline_numbers"`
	WrapIdents   *bool  `koanf:"wrap_identifiers"`
	WrapReserved *bool  `koanf:"wrap_reserved_words"`
	SQLInErrors  *bool  `koanf:"sql_in_errors"`
	ColumnFormat string `koanf:"column_format"`
}

// Build returns the core options described by o.
func (o OptionsConfig) Build() (*core.Options, error) {
	var opts *core.Options
	switch strings.ToLower(o.Preset) {
	case "", PresetSmart:
		opts = core.SmartPreset()
	case PresetPlain:
		opts = core.PlainPreset()
	default:
		return nil, fmt.Errorf("unknown options preset %q (want %s or %s)", o.Preset, PresetSmart, PresetPlain)
	}

	override(&opts.UseSmartDates, o.SmartDates)
	override(&opts.GuardForgottenWhere, o.GuardWhere)
	override(&opts.InjectionDefense, o.Injection)
	override(&opts.DontParameterizeNumbers, o.InlineNums)
	override(&opts.WrapFieldNames, o.WrapIdents)
	override(&opts.WrapReservedWords, o.WrapReserved)
	override(&opts.AddSQLToError, o.SQLInErrors)

	if o.ColumnFormat != "" {
		f, err := naming.Parse(o.ColumnFormat)
		if err != nil {
			return nil, err
		}
		opts.ColumnFormat = f
	}
	return opts, nil
}

func override(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // duckdb, postgres, sqlite

	// File-based databases (DuckDB, SQLite)
	Database string `koanf:"database"`

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Schema   string `koanf:"schema"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`

	// Params holds adapter-specific settings (duckdb extensions, sqlite pragmas)
	Params map[string]any `koanf:"params"`
}

// Validate checks that the target names a registered adapter.
func (t *TargetConfig) Validate() error {
	if t.Type == "" {
		return fmt.Errorf("target type is required")
	}
	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}
	return nil
}

// ToAdapterConfig converts the target into the adapter connection config.
func (t *TargetConfig) ToAdapterConfig() core.AdapterConfig {
	return core.AdapterConfig{
		Type:     strings.ToLower(t.Type),
		Path:     t.Database,
		Database: t.Database,
		Host:     t.Host,
		Port:     t.Port,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
		Params:   t.Params,
	}
}

// ResolveDialect picks the rendering dialect: the configured one, else the
// dialect named like the target type, else the registry default.
func (c *Config) ResolveDialect() (*dialect.Dialect, error) {
	name := c.Dialect
	if name == "" && c.Target != nil {
		if d, ok := dialect.Get(c.Target.Type); ok {
			return d, nil
		}
	}
	return dialect.Resolve(name)
}
