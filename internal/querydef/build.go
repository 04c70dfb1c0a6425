package querydef

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapquery/pkg/builder"
)

// Error reports a definition problem at a path inside the document,
// such as "where.all[1].op".
type Error struct {
	Path string
	Msg  string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return e.Path + ": " + e.Msg
}

func errorf(path, format string, args ...any) *Error {
	return &Error{Path: path, Msg: fmt.Sprintf(format, args...)}
}

func at(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// Build applies def to the fresh chain b and returns the finished statement.
func Build(def *Definition, b builder.Initial) (builder.Runnable, error) {
	if def == nil {
		return nil, errorf("", "empty query definition")
	}
	return build(def, b, "")
}

func build(def *Definition, b builder.Initial, path string) (builder.Runnable, error) {
	kinds := 0
	for _, set := range []bool{def.Insert != nil, def.Update != nil, def.Delete != ""} {
		if set {
			kinds++
		}
	}
	if kinds > 1 {
		return nil, errorf(path, "only one of insert, update and delete may be set")
	}

	switch {
	case def.Insert != nil:
		return buildInsert(def, b, path)
	case def.Update != nil:
		return buildUpdate(def, b, path)
	case def.Delete != "":
		if err := noSelect(def, path, "delete"); err != nil {
			return nil, err
		}
		q := b.DeleteFrom(def.Delete)
		if err := applyClauses(def, q, path); err != nil {
			return nil, err
		}
		return q, nil
	default:
		return buildSelect(def, b, path)
	}
}

func noSelect(def *Definition, path, kind string) error {
	if len(def.Select) > 0 || len(def.Aggregates) > 0 || def.From != "" || def.FromQuery != nil {
		return errorf(path, "select keys cannot be combined with %s", kind)
	}
	return nil
}

// buildSelect starts a SELECT on b. A document without columns or
// aggregates selects *.
func buildSelect(def *Definition, b builder.Initial, path string) (builder.Query, error) {
	var s builder.SelectStage
	switch {
	case def.Distinct:
		s = b.SelectDistinct(def.Select...)
	case len(def.Select) == 0 && len(def.Aggregates) == 0:
		s = b.SelectAll()
	default:
		s = b.Select(def.Select...)
	}
	return finishSelect(def, s, path)
}

func finishSelect(def *Definition, s builder.SelectStage, path string) (builder.Query, error) {
	for i, agg := range def.Aggregates {
		var err error
		if s, err = addAggregate(s, agg, index(at(path, "aggregates"), i)); err != nil {
			return nil, err
		}
	}

	var q builder.Query
	switch {
	case def.From != "" && def.FromQuery != nil:
		return nil, errorf(path, "from and from_query are mutually exclusive")
	case def.From != "" && def.As != "":
		q = s.FromAs(def.From, def.As)
	case def.From != "":
		q = s.From(def.From)
	case def.FromQuery != nil:
		fn, errp, err := derived(def.FromQuery, at(path, "from_query"))
		if err != nil {
			return nil, err
		}
		q = s.FromQuery(def.FromQuery.Alias, fn)
		if *errp != nil {
			return nil, *errp
		}
	default:
		return nil, errorf(path, "from is required")
	}

	if err := applyClauses(def, q, path); err != nil {
		return nil, err
	}
	return q, nil
}

func addAggregate(s builder.SelectStage, agg Aggregate, path string) (builder.SelectStage, error) {
	fn := strings.ToLower(agg.Fn)
	if agg.Column == "" {
		if fn != "count" {
			return nil, errorf(path, "%s needs a column", agg.Fn)
		}
		if agg.Alias != "" {
			return s.CountAllAs(agg.Alias), nil
		}
		return s.CountAll(), nil
	}

	var plain func(string) builder.SelectStage
	var aliased func(string, string) builder.SelectStage
	switch fn {
	case "count":
		plain, aliased = s.Count, s.CountAs
	case "sum":
		plain, aliased = s.Sum, s.SumAs
	case "avg":
		plain, aliased = s.Avg, s.AvgAs
	case "min":
		plain, aliased = s.Min, s.MinAs
	case "max":
		plain, aliased = s.Max, s.MaxAs
	default:
		return nil, errorf(path, "unknown aggregate %q (want count, sum, avg, min or max)", agg.Fn)
	}
	if agg.Alias != "" {
		return aliased(agg.Column, agg.Alias), nil
	}
	return plain(agg.Column), nil
}

func buildInsert(def *Definition, b builder.Initial, path string) (builder.Runnable, error) {
	ins := def.Insert
	ipath := at(path, "insert")
	if ins.Into == "" {
		return nil, errorf(ipath, "into is required")
	}
	if len(ins.Columns) == 0 {
		return nil, errorf(ipath, "columns are required")
	}
	stage := b.InsertInto(ins.Into).Columns(ins.Columns...)

	if len(ins.Values) > 0 {
		if err := noSelect(def, path, "insert values"); err != nil {
			return nil, err
		}
		var r builder.InsertValuesStage
		for _, row := range ins.Values {
			if r == nil {
				r = stage.Values(row...)
			} else {
				r = r.Values(row...)
			}
		}
		return r, nil
	}

	if def.Distinct {
		return nil, errorf(path, "distinct is not supported for insert ... select")
	}
	if len(def.Select) == 0 {
		return nil, errorf(path, "insert needs values or select columns")
	}
	return finishSelect(def, stage.Select(def.Select...), path)
}

func buildUpdate(def *Definition, b builder.Initial, path string) (builder.Runnable, error) {
	up := def.Update
	upath := at(path, "update")
	if up.Table == "" {
		return nil, errorf(upath, "table is required")
	}
	if len(up.Set) == 0 {
		return nil, errorf(upath, "set is required")
	}
	if err := noSelect(def, path, "update"); err != nil {
		return nil, err
	}

	u := b.Update(up.Table)
	for i, a := range up.Set {
		apath := index(at(upath, "set"), i)
		switch {
		case a.Column == "":
			return nil, errorf(apath, "column is required")
		case a.Ref != "" && a.Value != nil:
			return nil, errorf(apath, "value and ref are mutually exclusive")
		case a.Ref != "":
			u = u.SetToColumn(a.Column, a.Ref)
		default:
			u = u.Set(a.Column, a.Value.value())
		}
	}

	var q builder.Query = u
	if up.FromQuery != nil {
		fn, errp, err := derived(up.FromQuery, at(upath, "from_query"))
		if err != nil {
			return nil, err
		}
		q = u.FromQuery(up.FromQuery.Alias, fn)
		if *errp != nil {
			return nil, *errp
		}
	}

	if err := applyClauses(def, q, path); err != nil {
		return nil, err
	}
	return q, nil
}

// applyClauses adds the clauses shared by every statement kind.
func applyClauses(def *Definition, q builder.Query, path string) error {
	for i, j := range def.Joins {
		if err := addJoin(q, j, index(at(path, "joins"), i)); err != nil {
			return err
		}
	}
	if def.Where != nil {
		if err := addRoot(whereForest(q), def.Where, at(path, "where")); err != nil {
			return err
		}
	}
	if len(def.GroupBy) > 0 {
		q.GroupBy(def.GroupBy...)
	}
	if def.Having != nil {
		if err := addRoot(havingForest(q), def.Having, at(path, "having")); err != nil {
			return err
		}
	}
	for i, o := range def.OrderBy {
		if o.Column == "" {
			return errorf(index(at(path, "order_by"), i), "column is required")
		}
		if o.Desc {
			q.OrderByDesc(o.Column)
		} else {
			q.OrderByAsc(o.Column)
		}
	}
	if def.Limit != nil {
		q.Limit(*def.Limit)
	}
	if def.Offset != nil {
		q.Offset(*def.Offset)
	}
	if def.NoWhere {
		q.WithoutWhere()
	}
	return nil
}

func addJoin(q builder.Query, j Join, path string) error {
	if j.Table == "" {
		return errorf(path, "table is required")
	}
	if j.On == nil {
		return errorf(path, "on is required")
	}

	var stage builder.JoinStage
	switch strings.ToLower(j.Type) {
	case "", "inner":
		stage = q.Join(j.Table, j.Alias)
	case "left":
		stage = q.LeftJoin(j.Table, j.Alias)
	case "right":
		stage = q.RightJoin(j.Table, j.Alias)
	case "full":
		stage = q.FullJoin(j.Table, j.Alias)
	default:
		return errorf(path, "unknown join type %q", j.Type)
	}

	var err error
	stage.OnGroup(func(g *builder.Group) {
		err = addRoot(groupForest(g), j.On, at(path, "on"))
	})
	return err
}

// derived returns the callback building an aliased subquery. The error it
// hits is stored in *errp once the builder has run the callback.
func derived(d *Derived, path string) (builder.SubqueryFunc, *error, error) {
	if d.Alias == "" {
		return nil, nil, errorf(path, "alias is required")
	}
	if d.Query == nil {
		return nil, nil, errorf(path, "query is required")
	}
	errp := new(error)
	return subquery(d.Query, at(path, "query"), errp), errp, nil
}

// subquery returns a callback that builds def as a nested SELECT.
func subquery(def *Definition, path string, errp *error) builder.SubqueryFunc {
	return func(b builder.Initial) builder.Query {
		if def.Insert != nil || def.Update != nil || def.Delete != "" {
			*errp = errorf(path, "subquery must be a select")
			return nil
		}
		q, err := buildSelect(def, b, path)
		if err != nil {
			*errp = err
			return nil
		}
		return q
	}
}
