package core

// Kind is the statement kind of a Query.
type Kind int

const (
	KindSelect Kind = iota
	KindInsert
	KindUpdate
	KindDelete
)

// String returns the lower-case statement keyword.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return "select"
	}
}

// SelectKind classifies an output expression.
type SelectKind int

const (
	// SelectColumn is a bare column.
	SelectColumn SelectKind = iota
	// SelectAggregate applies Func to Expr.
	SelectAggregate
	// SelectCountAll is count(*).
	SelectCountAll
	// SelectSubquery is a scalar subquery.
	SelectSubquery
	// SelectStar is *.
	SelectStar
	// SelectTableStar is <Expr>.*.
	SelectTableStar
)

// SelectItem is one output expression of a SELECT list.
type SelectItem struct {
	Kind  SelectKind
	Expr  string
	Func  string // aggregate name: count, sum, avg, min, max
	Query *Query
	Alias string
}

// TableRef is a FROM or JOIN target: a named table or an aliased subquery.
type TableRef struct {
	Name  string
	Alias string
	Query *Query
}

// Clone returns a deep copy of the table reference.
func (t *TableRef) Clone() *TableRef {
	if t == nil {
		return nil
	}
	return &TableRef{Name: t.Name, Alias: t.Alias, Query: t.Query.Clone()}
}

// JoinType is the SQL join keyword sequence.
type JoinType string

// Join types.
const (
	JoinInner JoinType = "join"
	JoinLeft  JoinType = "left join"
	JoinRight JoinType = "right join"
	JoinFull  JoinType = "full join"
	JoinCross JoinType = "cross join"
)

// Join is one JOIN clause. On is nil for cross joins.
type Join struct {
	Type   JoinType
	Target TableRef
	On     *Forest
}

// OrderByItem is one ORDER BY expression.
type OrderByItem struct {
	Expr string
	Desc bool
}

// Assignment is one UPDATE SET entry. Value is a literal or a column.
type Assignment struct {
	Column string
	Value  Value
}

// InsertPayload holds the INSERT column list and its literal rows.
// When FromSelect is set the rows come from the query's own SELECT parts.
type InsertPayload struct {
	Columns    []string
	Rows       [][]Value
	FromSelect bool
}

// Query is the statement aggregate built by pkg/builder and rendered by
// pkg/format. Table is the target of INSERT, UPDATE and DELETE; From is the
// SELECT source or the UPDATE FROM-subquery.
type Query struct {
	Kind     Kind
	Distinct bool
	Columns  []SelectItem
	Table    string
	From     *TableRef
	Joins    []Join
	Where    *Forest
	Having   *Forest
	GroupBy  []string
	OrderBy  []OrderByItem
	Limit    *int64
	Offset   *int64

	Insert      *InsertPayload
	Assignments []Assignment

	// WithoutWhere allows UPDATE and DELETE without a WHERE clause.
	WithoutWhere bool
}

// NewQuery returns an empty query of the given kind.
func NewQuery(kind Kind) *Query {
	return &Query{
		Kind:   kind,
		Where:  NewForest(),
		Having: NewForest(),
	}
}

// Clone returns a deep, fully independent copy of the query.
func (q *Query) Clone() *Query {
	if q == nil {
		return nil
	}
	out := &Query{
		Kind:         q.Kind,
		Distinct:     q.Distinct,
		Table:        q.Table,
		From:         q.From.Clone(),
		Where:        q.Where.Clone(),
		Having:       q.Having.Clone(),
		GroupBy:      cloneStrings(q.GroupBy),
		Limit:        cloneInt(q.Limit),
		Offset:       cloneInt(q.Offset),
		WithoutWhere: q.WithoutWhere,
	}
	if q.Columns != nil {
		out.Columns = make([]SelectItem, len(q.Columns))
		for i, c := range q.Columns {
			c.Query = c.Query.Clone()
			out.Columns[i] = c
		}
	}
	if q.Joins != nil {
		out.Joins = make([]Join, len(q.Joins))
		for i, j := range q.Joins {
			out.Joins[i] = Join{Type: j.Type, Target: *j.Target.Clone(), On: j.On.Clone()}
		}
	}
	if q.OrderBy != nil {
		out.OrderBy = make([]OrderByItem, len(q.OrderBy))
		copy(out.OrderBy, q.OrderBy)
	}
	if q.Insert != nil {
		ins := &InsertPayload{
			Columns:    cloneStrings(q.Insert.Columns),
			FromSelect: q.Insert.FromSelect,
		}
		for _, row := range q.Insert.Rows {
			cp := make([]Value, len(row))
			for i, v := range row {
				cp[i] = v.Clone()
			}
			ins.Rows = append(ins.Rows, cp)
		}
		out.Insert = ins
	}
	if q.Assignments != nil {
		out.Assignments = make([]Assignment, len(q.Assignments))
		for i, a := range q.Assignments {
			out.Assignments[i] = Assignment{Column: a.Column, Value: a.Value.Clone()}
		}
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneInt(v *int64) *int64 {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
