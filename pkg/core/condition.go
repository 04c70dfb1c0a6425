package core

// Combinator joins a forest entry to the entry before it.
type Combinator int

const (
	// CombNone marks the first entry of a forest.
	CombNone Combinator = iota
	// CombAnd joins with AND.
	CombAnd
	// CombOr joins with OR.
	CombOr
)

// String returns the SQL keyword for the combinator.
func (c Combinator) String() string {
	switch c {
	case CombAnd:
		return "and"
	case CombOr:
		return "or"
	default:
		return ""
	}
}

// Operator is the comparison applied by a Leaf.
type Operator int

const (
	OpEq Operator = iota
	OpNotEq
	OpGt
	OpGtEq
	OpLt
	OpLtEq
	OpLike
	OpNotLike
	OpIn
	OpNotIn
	OpIs
	OpIsNot
	OpExists
	OpNotExists
)

var operatorText = map[Operator]string{
	OpEq:        "=",
	OpNotEq:     "!=",
	OpGt:        ">",
	OpGtEq:      ">=",
	OpLt:        "<",
	OpLtEq:      "<=",
	OpLike:      "like",
	OpNotLike:   "not like",
	OpIn:        "in",
	OpNotIn:     "not in",
	OpIs:        "is",
	OpIsNot:     "is not",
	OpExists:    "exists",
	OpNotExists: "not exists",
}

// String returns the SQL text of the operator.
func (o Operator) String() string {
	if s, ok := operatorText[o]; ok {
		return s
	}
	return "?"
}

// IsComparison reports whether the operator is one of = != > >= < <=.
func (o Operator) IsComparison() bool {
	return o >= OpEq && o <= OpLtEq
}

// Leaf is a single predicate. Column is empty for EXISTS / NOT EXISTS.
//
// A Leaf is never modified after it has been added to a Forest.
type Leaf struct {
	Column string
	Op     Operator
	Value  Value
}

// Clone returns a deep copy of the leaf.
func (l *Leaf) Clone() *Leaf {
	if l == nil {
		return nil
	}
	return &Leaf{Column: l.Column, Op: l.Op, Value: l.Value.Clone()}
}

// Entry is one element of a Forest. Exactly one of Leaf and Group is set.
type Entry struct {
	Combinator Combinator
	Negated    bool
	Leaf       *Leaf
	Group      *Forest
}

// Forest is an ordered list of boolean-combined conditions.
// Entries[0] always carries CombNone.
type Forest struct {
	Entries []Entry
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{}
}

// Len returns the number of top-level entries.
func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Entries)
}

// IsEmpty reports whether the forest has no entries.
func (f *Forest) IsEmpty() bool {
	return f.Len() == 0
}

// Add appends an entry. The first entry of a forest is always stored with
// CombNone; a CombNone entry appended after it is stored as CombAnd.
func (f *Forest) Add(e Entry) {
	switch {
	case len(f.Entries) == 0:
		e.Combinator = CombNone
	case e.Combinator == CombNone:
		e.Combinator = CombAnd
	}
	f.Entries = append(f.Entries, e)
}

// AddLeaf appends a leaf predicate.
func (f *Forest) AddLeaf(c Combinator, l *Leaf) {
	f.Add(Entry{Combinator: c, Leaf: l})
}

// AddGroup appends a nested group, optionally negated. An empty group is
// dropped, since "()" is not a valid condition.
func (f *Forest) AddGroup(c Combinator, g *Forest, negated bool) {
	if g.IsEmpty() {
		return
	}
	f.Add(Entry{Combinator: c, Negated: negated, Group: g})
}

// Clone returns a deep copy of the forest.
func (f *Forest) Clone() *Forest {
	if f == nil {
		return nil
	}
	out := &Forest{Entries: make([]Entry, len(f.Entries))}
	for i, e := range f.Entries {
		out.Entries[i] = Entry{
			Combinator: e.Combinator,
			Negated:    e.Negated,
			Leaf:       e.Leaf.Clone(),
			Group:      e.Group.Clone(),
		}
	}
	return out
}

// Walk calls fn for every leaf in the forest, depth first, in entry order.
func (f *Forest) Walk(fn func(*Leaf)) {
	if f == nil {
		return
	}
	for _, e := range f.Entries {
		if e.Leaf != nil {
			fn(e.Leaf)
		}
		if e.Group != nil {
			e.Group.Walk(fn)
		}
	}
}
