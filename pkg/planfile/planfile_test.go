package planfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waylinehq/wayline/internal/traverse"
	"github.com/waylinehq/wayline/pkg/domain"
	"github.com/waylinehq/wayline/pkg/planfile"
	"github.com/waylinehq/wayline/pkg/validation"
)

const agePlanYAML = `
name: Age check
description: Routes minors to the guardian form.
waypoints:
  - id: start
    fields:
      - name: age
        required: true
        pattern: "^[0-9]+$"
    edges:
      - to: adult-form
        when: start.age >= 18
      - to: guardian-form
  - id: adult-form
    fields:
      - name: consent
        required: true
        one_of: ["yes", "no"]
    edges:
      - to: done
  - id: guardian-form
    edges:
      - to: done
  - id: done
origins:
  - name: main
    entry: start
`

func TestParseAndCompile(t *testing.T) {
	doc, err := planfile.Parse([]byte(agePlanYAML))
	require.NoError(t, err)
	assert.Equal(t, "Age check", doc.Name)
	require.Len(t, doc.Waypoints, 4)

	p, specs, err := doc.Compile()
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "adult-form", "guardian-form", "done"}, p.Waypoints())
	origin, ok := p.Origin("main")
	require.True(t, ok)
	assert.Equal(t, "start", origin.Entry)

	t.Run("Compiled guards route by submitted data", func(t *testing.T) {
		jctx := domain.NewJourneyContext()
		jctx.SetData("start", map[string]any{"age": "16"})

		next, err := traverse.ResolveNext(p, jctx, "start")
		require.NoError(t, err)
		assert.Equal(t, "guardian-form", next)

		jctx.SetData("start", map[string]any{"age": "20"})
		next, err = traverse.ResolveNext(p, jctx, "start")
		require.NoError(t, err)
		assert.Equal(t, "adult-form", next)
	})

	t.Run("Compiled field specs validate payloads", func(t *testing.T) {
		errs := validation.Validate(specs["start"], map[string]any{})
		require.Len(t, errs, 1)
		assert.Equal(t, "age", errs[0].Field)

		errs = validation.Validate(specs["start"], map[string]any{"age": "abc"})
		require.Len(t, errs, 1)

		errs = validation.Validate(specs["start"], map[string]any{"age": "20"})
		assert.Empty(t, errs)

		errs = validation.Validate(specs["adult-form"], map[string]any{"consent": "maybe"})
		require.Len(t, errs, 1)
		assert.Equal(t, "consent", errs[0].Field)
	})
}

func TestParse_UnknownKeysRejected(t *testing.T) {
	_, err := planfile.Parse([]byte(`
name: Broken
waypoints:
  - id: start
    edgez:
      - to: done
`))
	assert.Error(t, err, "typoed keys must not be dropped silently")
}

func TestCompile_BadCondition(t *testing.T) {
	doc, err := planfile.Parse([]byte(`
name: Broken
waypoints:
  - id: start
    edges:
      - to: done
        when: "not a condition"
  - id: done
`))
	require.NoError(t, err)

	_, _, err = doc.Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start")
}

func TestCompile_GraphFaults(t *testing.T) {
	doc, err := planfile.Parse([]byte(`
name: Broken
waypoints:
  - id: start
    edges:
      - to: ghost
`))
	require.NoError(t, err)

	_, _, err = doc.Compile()
	var integrity *domain.GraphIntegrityError
	require.ErrorAs(t, err, &integrity)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(agePlanYAML), 0o644))

	doc, p, specs, err := planfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Age check", doc.Name)
	assert.True(t, p.WaypointExists("guardian-form"))
	assert.NotEmpty(t, specs["start"])

	_, _, _, err = planfile.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
