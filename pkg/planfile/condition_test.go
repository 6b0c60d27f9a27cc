package planfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waylinehq/wayline/pkg/domain"
	"github.com/waylinehq/wayline/pkg/planfile"
)

func TestCompileCondition(t *testing.T) {
	jctx := domain.NewJourneyContext()
	jctx.SetData("start", map[string]any{
		"age":    "20", // form values arrive as strings
		"colour": "red",
		"agreed": true,
	})
	jctx.SetData("optional", map[string]any{domain.SkipMarker: true})

	t.Run("Empty and always", func(t *testing.T) {
		for _, expr := range []string{"", "always", "  always  "} {
			g, err := planfile.CompileCondition(expr, false)
			require.NoError(t, err, expr)
			assert.Equal(t, domain.GuardAlways, g.Kind, expr)
		}
	})

	t.Run("Numeric comparison coerces string form values", func(t *testing.T) {
		cases := map[string]bool{
			"start.age >= 18": true,
			"start.age > 20":  false,
			"start.age <= 20": true,
			"start.age == 20": true,
			"start.age != 20": false,
			"start.age < 18":  false,
		}
		for expr, want := range cases {
			g, err := planfile.CompileCondition(expr, false)
			require.NoError(t, err, expr)
			assert.Equal(t, domain.GuardData, g.Kind, expr)
			assert.Equal(t, want, g.Test(jctx), expr)
		}
	})

	t.Run("String comparison", func(t *testing.T) {
		g, err := planfile.CompileCondition(`start.colour == 'red'`, false)
		require.NoError(t, err)
		assert.True(t, g.Test(jctx))

		g, err = planfile.CompileCondition(`start.colour == "blue"`, false)
		require.NoError(t, err)
		assert.False(t, g.Test(jctx))

		// Bare words compare as strings.
		g, err = planfile.CompileCondition(`start.colour == red`, false)
		require.NoError(t, err)
		assert.True(t, g.Test(jctx))
	})

	t.Run("Boolean comparison", func(t *testing.T) {
		g, err := planfile.CompileCondition(`start.agreed == true`, false)
		require.NoError(t, err)
		assert.True(t, g.Test(jctx))
	})

	t.Run("Absent field fails", func(t *testing.T) {
		g, err := planfile.CompileCondition(`start.missing == 1`, false)
		require.NoError(t, err)
		assert.False(t, g.Test(jctx))

		// Fields of a skipped waypoint count as absent.
		g, err = planfile.CompileCondition(`optional.answer == 1`, false)
		require.NoError(t, err)
		assert.False(t, g.Test(jctx))
	})

	t.Run("skipped() is a skip-aware guard", func(t *testing.T) {
		g, err := planfile.CompileCondition(`skipped(optional)`, false)
		require.NoError(t, err)
		assert.Equal(t, domain.GuardSkipAware, g.Kind)
		assert.True(t, g.Test(jctx))

		g, err = planfile.CompileCondition(`skipped(start)`, false)
		require.NoError(t, err)
		assert.False(t, g.Test(jctx))
	})

	t.Run("skip_aware flag changes the guard kind", func(t *testing.T) {
		g, err := planfile.CompileCondition(`start.age >= 18`, true)
		require.NoError(t, err)
		assert.Equal(t, domain.GuardSkipAware, g.Kind)
	})

	t.Run("Unparseable expressions error", func(t *testing.T) {
		for _, expr := range []string{"age >= 18", "start.age ~= 18", "Start.age >= 18", "nonsense words here"} {
			_, err := planfile.CompileCondition(expr, false)
			assert.Error(t, err, expr)
		}
	})
}
