package format

import (
	"github.com/leapstack-labs/leapquery/pkg/core"
)

// validate checks the statement payloads of q and every query nested in it.
func validate(q *core.Query) error {
	switch q.Kind {
	case core.KindInsert:
		if err := validateInsert(q); err != nil {
			return err
		}
	case core.KindUpdate:
		if q.Table == "" {
			return usagef("update without a target table")
		}
		if len(q.Assignments) == 0 {
			return usagef("update of %q without any assignment", q.Table)
		}
	case core.KindDelete:
		if q.Table == "" {
			return usagef("delete without a target table")
		}
	}
	return validateNested(q)
}

func validateInsert(q *core.Query) error {
	if q.Table == "" {
		return usagef("insert without a target table")
	}
	ins := q.Insert
	if ins == nil || len(ins.Columns) == 0 {
		return usagef("insert into %q needs a column list before values", q.Table)
	}
	switch {
	case ins.FromSelect && len(ins.Rows) > 0:
		return usagef("insert into %q mixes values rows with a select source", q.Table)
	case !ins.FromSelect && len(ins.Rows) == 0:
		return usagef("insert into %q has neither values nor a select source", q.Table)
	}
	for i, row := range ins.Rows {
		if len(row) != len(ins.Columns) {
			return usagef("insert into %q: row %d has %d values for %d columns",
				q.Table, i, len(row), len(ins.Columns))
		}
	}
	return nil
}

func validateNested(q *core.Query) error {
	var nested []*core.Query
	for _, c := range q.Columns {
		if c.Query != nil {
			nested = append(nested, c.Query)
		}
	}
	if q.From != nil && q.From.Query != nil {
		nested = append(nested, q.From.Query)
	}
	collect := func(l *core.Leaf) {
		if l.Value.Kind == core.ValueSubquery {
			nested = append(nested, l.Value.Query)
		}
	}
	for _, j := range q.Joins {
		if j.Target.Query != nil {
			nested = append(nested, j.Target.Query)
		}
		j.On.Walk(collect)
	}
	q.Where.Walk(collect)
	q.Having.Walk(collect)
	if q.Insert != nil {
		for _, row := range q.Insert.Rows {
			for _, v := range row {
				if v.Kind == core.ValueSubquery {
					nested = append(nested, v.Query)
				}
			}
		}
	}

	for _, sub := range nested {
		if sub == nil {
			return usagef("subquery callback returned no query")
		}
		if err := validate(sub); err != nil {
			return err
		}
	}
	return nil
}
