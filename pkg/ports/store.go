package ports

import (
	"context"

	"github.com/waylinehq/wayline/pkg/domain"
)

// ContextStore persists journey contexts between requests.
// The core never calls it; request-handling code loads before and saves
// after every core call.
type ContextStore interface {
	// Save persists the context for a journey ID.
	Save(ctx context.Context, journeyID string, jctx *domain.JourneyContext) error

	// Load retrieves the context for a journey ID.
	// Returns domain.ErrJourneyNotFound if the journey does not exist.
	Load(ctx context.Context, journeyID string) (*domain.JourneyContext, error)

	// Delete removes the context for a journey ID.
	Delete(ctx context.Context, journeyID string) error

	// List returns the IDs of stored journeys.
	List(ctx context.Context) ([]string, error)
}
