package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Dialect registry
var (
	dialectsMu     sync.RWMutex
	dialects       = make(map[string]*Dialect)
	defaultDialect *Dialect
)

// ErrDialectRequired is returned when a dialect is required but not provided.
var ErrDialectRequired = errors.New("dialect is required")

// Get returns a dialect by name.
func Get(name string) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[strings.ToLower(name)]
	return d, ok
}

// Register registers a dialect in the global registry.
// Called by dialect implementations in their init() functions.
func Register(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[strings.ToLower(d.Name)] = d
}

// List returns all registered dialect names (sorted).
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetDefault sets the dialect returned by Default.
func SetDefault(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	defaultDialect = d
}

// Default returns the default dialect.
func Default() *Dialect {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	return defaultDialect
}

// Resolve returns the named dialect, or the default one when name is empty.
func Resolve(name string) (*Dialect, error) {
	if name == "" {
		if d := Default(); d != nil {
			return d, nil
		}
		return nil, ErrDialectRequired
	}
	d, ok := Get(name)
	if !ok {
		return nil, &UnknownDialectError{Name: name, Available: List()}
	}
	return d, nil
}

// UnknownDialectError is returned when an unknown dialect is requested.
type UnknownDialectError struct {
	Name      string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
