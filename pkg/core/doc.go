// Package core defines the shared language of the leapquery system.
//
// This package contains:
//   - The query model (Query, Forest, Leaf, Value)
//   - Render configuration (Options and its presets)
//   - Dialect and adapter data (DialectConfig, AdapterConfig, Rows, Param)
//
// The Golden Rule: pkg/core imports ONLY pkg/naming and stdlib.
// All other packages depend on core, not the reverse.
package core
