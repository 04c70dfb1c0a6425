package core

import "github.com/leapstack-labs/leapquery/pkg/naming"

// Options controls how a Query is rendered and executed.
type Options struct {
	// UseSmartDates rewrites comparisons against date-only literals into
	// whole-day ranges.
	UseSmartDates bool

	// GuardForgottenWhere fails UPDATE and DELETE statements that have an
	// empty WHERE and were not marked WithoutWhere.
	GuardForgottenWhere bool

	// InjectionDefense scans the rendered text for ';' before the last byte
	// and for "--".
	InjectionDefense bool

	// DontParameterizeNumbers inlines numeric literals instead of binding them.
	DontParameterizeNumbers bool

	// WrapFieldNames quotes identifiers with the dialect's quote characters.
	WrapFieldNames bool

	// WrapReservedWords quotes only identifiers that are reserved words of
	// the dialect. It has no effect when WrapFieldNames is set.
	WrapReservedWords bool

	// AddSQLToError attaches the parameterized SQL to execution errors.
	AddSQLToError bool

	// ColumnFormat is applied to every identifier part before wrapping.
	ColumnFormat naming.Format
}

// SmartPreset enables every safety and convenience feature and converts
// camelCase identifiers to snake_case.
func SmartPreset() *Options {
	return &Options{
		UseSmartDates:           true,
		GuardForgottenWhere:     true,
		InjectionDefense:        true,
		DontParameterizeNumbers: true,
		WrapFieldNames:          true,
		AddSQLToError:           true,
		ColumnFormat:            naming.CamelToSnake,
	}
}

// PlainPreset disables every feature. Identifiers are emitted as given.
func PlainPreset() *Options {
	return &Options{ColumnFormat: naming.Identity}
}

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() *Options {
	return SmartPreset()
}

// Clone returns a copy of the options.
func (o *Options) Clone() *Options {
	if o == nil {
		return DefaultOptions()
	}
	cp := *o
	return &cp
}

// Format applies the column format, treating a nil format as identity.
func (o *Options) Format(name string) string {
	if o.ColumnFormat == nil {
		return name
	}
	return o.ColumnFormat.Apply(name)
}
