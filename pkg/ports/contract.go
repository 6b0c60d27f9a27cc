package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waylinehq/wayline/pkg/domain"
)

// RunContextStoreContract verifies a ContextStore implementation against the
// interface semantics. Adapter test suites call it with a ready store.
func RunContextStoreContract(t *testing.T, store ContextStore) {
	ctx := context.Background()
	journeyID := "contract-journey-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		jctx := domain.NewJourneyContext()
		jctx.SetData("start", map[string]any{"age": "20"})
		jctx.SetValidationErrors("details", []domain.FieldError{{Field: "name", Message: "this field is required"}})

		require.NoError(t, store.Save(ctx, journeyID, jctx))

		loaded, err := store.Load(ctx, journeyID)
		require.NoError(t, err)
		assert.Equal(t, "20", loaded.Data["start"]["age"])
		assert.Equal(t, []string{"start"}, loaded.History)
		require.Len(t, loaded.ErrorsFor("details"), 1)
		assert.Equal(t, "name", loaded.ErrorsFor("details")[0].Field)
	})

	t.Run("Skip marker survives persistence", func(t *testing.T) {
		jctx := domain.NewJourneyContext()
		jctx.SetData("step-two", map[string]any{domain.SkipMarker: true})

		require.NoError(t, store.Save(ctx, journeyID, jctx))

		loaded, err := store.Load(ctx, journeyID)
		require.NoError(t, err)
		assert.True(t, loaded.IsSkipped("step-two"))
		assert.Equal(t, map[string]any{domain.SkipMarker: true}, loaded.DataFor("step-two"))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+journeyID)
		assert.ErrorIs(t, err, domain.ErrJourneyNotFound)
	})

	t.Run("Saved snapshot is isolated", func(t *testing.T) {
		jctx := domain.NewJourneyContext()
		jctx.SetData("start", map[string]any{"age": "20"})
		require.NoError(t, store.Save(ctx, journeyID, jctx))

		// Mutating the original after Save must not leak into the store.
		jctx.SetData("start", map[string]any{"age": "16"})

		loaded, err := store.Load(ctx, journeyID)
		require.NoError(t, err)
		assert.Equal(t, "20", loaded.Data["start"]["age"])
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, journeyID, domain.NewJourneyContext()))
		require.NoError(t, store.Delete(ctx, journeyID))

		_, err := store.Load(ctx, journeyID)
		assert.ErrorIs(t, err, domain.ErrJourneyNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := journeyID + "-1"
		id2 := journeyID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewJourneyContext()))
		require.NoError(t, store.Save(ctx, id2, domain.NewJourneyContext()))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
