// Package querydef reads query definition files: YAML documents that
// describe a statement declaratively and are turned into a builder chain.
//
//	name: colors
//	select: [color]
//	aggregates: [{fn: count, alias: colors}]
//	from: user
//	where:
//	  all:
//	    - {column: age, op: ">", value: 20}
//	    - any:
//	        - {column: color, op: like, value: "%red%"}
//	        - not: {column: color, op: "=", value: blue}
//	group_by: [color]
package querydef

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/civil"
	"gopkg.in/yaml.v3"
)

// Definition is one query document. Exactly one of Insert, Update and
// Delete may be set; with none of them the document is a SELECT.
type Definition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	Select     []string    `yaml:"select"`
	Distinct   bool        `yaml:"distinct"`
	Aggregates []Aggregate `yaml:"aggregates"`
	From       string      `yaml:"from"`
	As         string      `yaml:"as"`
	FromQuery  *Derived    `yaml:"from_query"`
	Joins      []Join      `yaml:"joins"`
	Where      *Condition  `yaml:"where"`
	GroupBy    []string    `yaml:"group_by"`
	Having     *Condition  `yaml:"having"`
	OrderBy    []Order     `yaml:"order_by"`
	Limit      *int64      `yaml:"limit"`
	Offset     *int64      `yaml:"offset"`
	Insert     *Insert     `yaml:"insert"`
	Update     *Update     `yaml:"update"`
	Delete     string      `yaml:"delete"`
	NoWhere    bool        `yaml:"without_where"`
}

// Aggregate is an aggregate output column. An empty column with fn count
// selects count(*).
type Aggregate struct {
	Fn     string `yaml:"fn"`
	Column string `yaml:"column"`
	Alias  string `yaml:"alias"`
}

// Derived is an aliased subquery.
type Derived struct {
	Alias string      `yaml:"alias"`
	Query *Definition `yaml:"query"`
}

// Join adds a joined table; On is required.
type Join struct {
	Type  string     `yaml:"type"` // inner (default), left, right, full
	Table string     `yaml:"table"`
	Alias string     `yaml:"alias"`
	On    *Condition `yaml:"on"`
}

// Order is one ORDER BY entry.
type Order struct {
	Column string `yaml:"column"`
	Desc   bool   `yaml:"desc"`
}

// Insert describes an INSERT. Rows come from Values or, when Values is
// empty, from the document's own select keys.
type Insert struct {
	Into    string   `yaml:"into"`
	Columns []string `yaml:"columns"`
	Values  []Row    `yaml:"values"`
}

// Row is one VALUES tuple. Null cells stay in place as nil.
type Row []any

// UnmarshalYAML implements yaml.Unmarshaler. Rows are decoded node by node
// because yaml.v3 skips a struct element whose node is null.
func (r *Row) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: a row must be a list of values", n.Line)
	}
	row := make(Row, len(n.Content))
	for i, child := range n.Content {
		var v Value
		if err := v.UnmarshalYAML(child); err != nil {
			return err
		}
		row[i] = v.V
	}
	*r = row
	return nil
}

// Update describes an UPDATE. Set keeps its order in the rendered SQL.
type Update struct {
	Table     string       `yaml:"table"`
	Set       []Assignment `yaml:"set"`
	FromQuery *Derived     `yaml:"from_query"`
}

// Assignment sets a column to a value or, with Ref, to another column.
type Assignment struct {
	Column string `yaml:"column"`
	Value  *Value `yaml:"value"`
	Ref    string `yaml:"ref"`
}

// Condition is a node of a condition tree. Exactly one of All, Any, Not,
// Exists, NotExists and Column is set. A leaf compares Column with one of
// Value, Ref (another column) or Query (a subquery).
type Condition struct {
	All       []*Condition `yaml:"all"`
	Any       []*Condition `yaml:"any"`
	Not       *Condition   `yaml:"not"`
	Exists    *Definition  `yaml:"exists"`
	NotExists *Definition  `yaml:"not_exists"`

	Column string      `yaml:"column"`
	Op     string      `yaml:"op"`
	Value  *Value      `yaml:"value"`
	Ref    string      `yaml:"ref"`
	Query  *Definition `yaml:"query"`
}

// Value is a literal from a definition file. Scalars keep their YAML type,
// sequences become []any and {date: YYYY-MM-DD} becomes a civil.Date.
type Value struct {
	V any
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.SequenceNode:
		items := make([]any, len(n.Content))
		for i, child := range n.Content {
			var item Value
			if err := item.UnmarshalYAML(child); err != nil {
				return err
			}
			items[i] = item.V
		}
		v.V = items
		return nil
	case yaml.MappingNode:
		if len(n.Content) != 2 || n.Content[0].Value != "date" {
			return fmt.Errorf("line %d: a value mapping must be {date: YYYY-MM-DD}", n.Line)
		}
		d, err := civil.ParseDate(n.Content[1].Value)
		if err != nil {
			return fmt.Errorf("line %d: invalid date: %w", n.Line, err)
		}
		v.V = d
		return nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			v.V = nil
			return nil
		}
		// Timestamps stay strings; dates must be spelled {date: ...}.
		if n.ShortTag() == "!!timestamp" {
			v.V = n.Value
			return nil
		}
		return n.Decode(&v.V)
	default:
		return fmt.Errorf("line %d: unsupported value", n.Line)
	}
}

// value returns the literal, or nil when v is absent.
func (v *Value) value() any {
	if v == nil {
		return nil
	}
	return v.V
}

// Parse decodes one definition. Unknown keys are errors.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty query definition")
		}
		return nil, fmt.Errorf("failed to parse query definition: %w", err)
	}
	return &def, nil
}

// Load reads and parses the definition file at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}
