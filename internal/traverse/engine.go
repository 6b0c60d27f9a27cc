package traverse

import (
	"github.com/waylinehq/wayline/pkg/domain"
	"github.com/waylinehq/wayline/pkg/plan"
)

// ResolveNext computes the waypoint that follows current for the journey's
// data. Out-edges are evaluated in declaration order and the first passing
// guard wins, so the result is deterministic for an unchanged context.
//
// When current has been skipped, its data guards pass implicitly: no real
// data exists to evaluate. Guards authored to tell a skip apart from data
// use domain.SkipAware and check IsSkipped themselves.
//
// No passable edge is a plan-authoring fault, reported as *DeadEndError.
func ResolveNext(p *plan.Plan, jctx *domain.JourneyContext, current string) (string, error) {
	if !p.WaypointExists(current) {
		return "", &domain.InvalidWaypointIDError{ID: current}
	}

	skipped := jctx.IsSkipped(current)
	for _, e := range p.OutEdges(current) {
		if edgePasses(e.Guard, jctx, skipped) {
			return e.Target, nil
		}
	}
	return "", &domain.DeadEndError{Waypoint: current}
}

// edgePasses evaluates one edge guard, honoring the implicit pass a skip
// grants to data guards on its own out-edges.
func edgePasses(g domain.Guard, view domain.ContextView, sourceSkipped bool) bool {
	switch g.Kind {
	case domain.GuardAlways:
		return true
	case domain.GuardData:
		if sourceSkipped {
			return true
		}
	}
	if g.Test == nil {
		return true
	}
	return g.Test(view)
}

// originOpen evaluates an origin's own guard. Origins have no skip
// semantics; the predicate always runs.
func originOpen(o plan.Origin, view domain.ContextView) bool {
	if o.Guard.Test == nil {
		return true
	}
	return o.Guard.Test(view)
}
