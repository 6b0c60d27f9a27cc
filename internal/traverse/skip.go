package traverse

import "github.com/waylinehq/wayline/pkg/domain"

// Skip marks waypoint as intentionally bypassed and returns the waypoint id
// the caller should redirect to under the current origin's base path.
//
// The target id is validated against the waypoint slug pattern before
// anything mutates — skip targets arrive straight from a query parameter and
// must not reach redirect construction unchecked. The waypoint's validation
// errors are cleared and its data overwritten (never merged) with the skip
// marker. Skipping an already-skipped waypoint with the same target is a
// no-op on state, so the operation is idempotent.
func Skip(jctx *domain.JourneyContext, waypoint, target string) (string, error) {
	if !domain.ValidWaypointID(waypoint) {
		return "", &domain.InvalidWaypointIDError{ID: waypoint}
	}
	if !domain.ValidWaypointID(target) {
		return "", &domain.InvalidWaypointIDError{ID: target}
	}

	jctx.ClearValidationErrors(waypoint)
	jctx.SetData(waypoint, map[string]any{domain.SkipMarker: true})
	return target, nil
}
