package core

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data with no behavior.
//
// The runtime behavior (identifier wrapping, pagination text, placeholder
// rebinding) lives in pkg/dialect.Dialect, which is built from this config.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "duckdb", "postgres")
	Name string

	// Identifiers defines quoting and normalization rules
	Identifiers IdentifierConfig

	// DefaultSchema is the default schema name ("main" for DuckDB, "public" for Postgres)
	DefaultSchema string

	// Placeholder defines how query parameters are passed to the driver
	Placeholder PlaceholderStyle

	// Pagination defines how LIMIT/OFFSET is spelled
	Pagination PaginationConfig

	// ReservedWords need quoting even when identifier wrapping is off
	ReservedWords []string
}

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL, ClickHouse).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison (BigQuery, Hive, DuckDB).
	NormCaseInsensitive
)

// PlaceholderStyle defines how query parameters are formatted for the driver.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (DuckDB, MySQL, SQLite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
	// PlaceholderNamed keeps the rendered @p0, @p1 names and binds sql.Named args.
	PlaceholderNamed
)

// String returns the name of the placeholder style.
func (s PlaceholderStyle) String() string {
	switch s {
	case PlaceholderDollar:
		return "dollar"
	case PlaceholderNamed:
		return "named"
	default:
		return "question"
	}
}

// PaginationStyle defines the shape of the pagination clause.
type PaginationStyle int

const (
	// PaginationLimitOffset renders "limit N offset M".
	PaginationLimitOffset PaginationStyle = iota
	// PaginationOffsetFetch renders "offset M rows fetch next N rows only" (ANSI).
	PaginationOffsetFetch
)

// String returns the name of the pagination style.
func (s PaginationStyle) String() string {
	if s == PaginationOffsetFetch {
		return "offset-fetch"
	}
	return "limit-offset"
}

// PaginationConfig defines how a dialect spells LIMIT/OFFSET.
type PaginationConfig struct {
	Style PaginationStyle

	// UnboundedLimit is emitted as the limit when only an offset is given,
	// for dialects that reject OFFSET without LIMIT ("-1" for SQLite).
	UnboundedLimit string
}

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}
