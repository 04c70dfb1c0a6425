package config

import "strings"

// Default configuration values.
const (
	DefaultOutput = "auto" // TTY: table, otherwise markdown
	PresetSmart   = "smart"
	PresetPlain   = "plain"

	defaultPostgresPort = 5432
)

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *TargetConfig) {
	if t == nil {
		return
	}
	t.Type = strings.ToLower(t.Type)

	switch t.Type {
	case "postgres":
		if t.Port == 0 {
			t.Port = defaultPostgresPort
		}
		if t.Schema == "" {
			t.Schema = "public"
		}
	case "duckdb", "sqlite":
		if t.Database == "" {
			t.Database = ":memory:"
		}
	}
}
