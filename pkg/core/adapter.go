package core

import "database/sql"

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Schema   string
	Options  map[string]string
	Params   map[string]any
}

// Rows wraps sql.Rows to provide a consistent interface.
type Rows struct {
	*sql.Rows
}

// Param is one bound parameter of a rendered statement.
// Name is the placeholder without its leading '@' (p0, p1, ...).
type Param struct {
	Name  string
	Value any
}

// Placeholder returns the placeholder text as it appears in rendered SQL.
func (p Param) Placeholder() string {
	return "@" + p.Name
}
