package sqlite

import (
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds SQLite-specific settings from the target's params block.
type Params struct {
	// Pragmas are applied with PRAGMA name = value right after connecting.
	Pragmas map[string]string `mapstructure:"pragmas"`

	// ForeignKeys turns on foreign key enforcement, which SQLite leaves off.
	ForeignKeys bool `mapstructure:"foreign_keys"`
}

// ParseParams decodes the raw params map.
func ParseParams(raw map[string]any) (*Params, error) {
	var p Params
	if raw == nil {
		return &p, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid sqlite params: %w", err)
	}
	return &p, nil
}

// pragmaSQL returns the PRAGMA statements for p, sorted by name.
func (p *Params) pragmaSQL() []string {
	pragmas := make(map[string]string, len(p.Pragmas)+1)
	for k, v := range p.Pragmas {
		pragmas[k] = v
	}
	if p.ForeignKeys {
		pragmas["foreign_keys"] = "on"
	}

	names := make([]string, 0, len(pragmas))
	for name := range pragmas {
		names = append(names, name)
	}
	sort.Strings(names)

	stmts := make([]string, len(names))
	for i, name := range names {
		stmts[i] = fmt.Sprintf("PRAGMA %s = %s", name, pragmas[name])
	}
	return stmts
}
