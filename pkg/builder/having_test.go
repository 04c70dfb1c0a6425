package builder_test

import (
	"testing"

	"github.com/leapstack-labs/leapquery/pkg/adapter/fake"
	"github.com/leapstack-labs/leapquery/pkg/builder"
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/stretchr/testify/assert"
)

func boundNumbers() builder.Initial {
	opts := core.SmartPreset()
	opts.DontParameterizeNumbers = false
	return builder.New(fake.New(), opts)
}

func TestGroupByHaving(t *testing.T) {
	tests := []struct {
		name     string
		build    func() builder.Runnable
		expected string
	}{
		{
			name: "basic group by",
			build: func() builder.Runnable {
				return boundNumbers().Select("color").CountAllAs("colors").From("user").
					GroupBy("color")
			},
			expected: "select `color`, count(*) as `colors` from `user` group by `color`",
		},
		{
			name: "multiple select columns",
			build: func() builder.Runnable {
				return boundNumbers().Select("color").Min("age").Max("age").From("user").
					GroupBy("color")
			},
			expected: "select `color`, min(`age`), max(`age`) from `user` group by `color`",
		},
		{
			name: "multiple group columns",
			build: func() builder.Runnable {
				return boundNumbers().Select("color", "counter").AvgAs("age", "avg_age").From("user").
					GroupBy("color", "counter")
			},
			expected: "select `color`, `counter`, avg(`age`) as `avg_age` from `user` " +
				"group by `color`, `counter`",
		},
		{
			name: "basic having",
			build: func() builder.Runnable {
				return boundNumbers().Select("color").CountAllAs("colors").From("user").
					GroupBy("color").
					Having("colors").LtEq(50).
					OrderByAsc("colors")
			},
			expected: "select `color`, count(*) as `colors` from `user` " +
				"group by `color` having `colors` <= @p0 order by `colors` asc",
		},
		{
			name: "advanced having",
			build: func() builder.Runnable {
				return boundNumbers().SelectAllFrom("user").
					HavingGroup(func(g *builder.Group) {
						g.Where("age").Gt(20).And("counter").Gt(50)
					}).
					OrHavingGroup(func(g *builder.Group) {
						g.Where("age").Gt(15).
							And("counter").Gt(100).
							AndGroup(func(p *builder.Group) {
								p.Not(func(r *builder.Group) { r.Where("color").Like("%red%") }).
									OrNot(func(r *builder.Group) { r.Where("color").Like("%blue%") }).
									AndNot(func(r *builder.Group) { r.Where("color").Like("%green%") })
							})
					}).
					OrHaving("age").Eq(42)
			},
			expected: "select `user`.* from `user` " +
				"having (`age` > @p0 and `counter` > @p1) " +
				"or (`age` > @p2 and `counter` > @p3 and (" +
				"not (`color` like @p4) or not (`color` like @p5) and not (`color` like @p6))" +
				") " +
				"or `age` = @p7",
		},
		{
			name: "having mixed with where keeps one counter",
			build: func() builder.Runnable {
				return boundNumbers().Select("color").CountAllAs("colors").From("user").
					Where("age").Gt(18).
					GroupBy("color").
					NotHaving(func(g *builder.Group) { g.Where("colors").Lt(3) }).
					Limit(5)
			},
			expected: "select `color`, count(*) as `colors` from `user` where `age` > @p0 " +
				"group by `color` having not (`colors` < @p1) limit @p2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, paramSQL(t, tt.build()))
		})
	}
}
