package traverse

import (
	"github.com/waylinehq/wayline/pkg/domain"
	"github.com/waylinehq/wayline/pkg/plan"
)

// IsReachable reports whether target can legitimately be reached from the
// origin given the journey's current data. It walks the plan from the
// origin's entry, following ResolveNext, and stops at the frontier: the
// first waypoint without complete data. The frontier waypoint itself is
// reachable (it is the step the user must complete next); anything past it
// is not.
//
// A dead end, a cycle under the current data, or a closed origin guard all
// answer false — the walk fails closed. Callers must consult this before
// serving any GET or POST on a waypoint.
func IsReachable(p *plan.Plan, jctx *domain.JourneyContext, origin plan.Origin, target string) bool {
	last, open := walk(p, jctx, origin, target)
	return open && last == target
}

// Furthest returns the frontier waypoint of the rails walk: the step the
// user should be redirected to when they request something unreachable.
// The second result is false when the origin guard itself denies entry.
func Furthest(p *plan.Plan, jctx *domain.JourneyContext, origin plan.Origin) (string, bool) {
	return walk(p, jctx, origin, "")
}

// walk runs the rails traversal, returning the waypoint it stopped on and
// whether the origin admitted the walk at all. When target is non-empty the
// walk short-circuits on finding it; a walk that stops anywhere else (the
// frontier, a terminal waypoint, a cycle or a dead end) stops on a waypoint
// other than the target, which IsReachable reads as unreachable.
func walk(p *plan.Plan, jctx *domain.JourneyContext, origin plan.Origin, target string) (string, bool) {
	if !p.WaypointExists(origin.Entry) || !originOpen(origin, jctx) {
		return "", false
	}

	seen := make(map[string]struct{})
	current := origin.Entry
	for {
		if target != "" && current == target {
			return current, true
		}
		if _, looped := seen[current]; looped {
			// Guards cycle under the current data; nothing past this
			// point is trustworthy. Stop here, fail closed.
			return current, true
		}
		seen[current] = struct{}{}

		// Frontier: data missing or still invalid. The walk ends here;
		// this is the step the user must complete next.
		if !jctx.IsVisited(current) {
			return current, true
		}
		// Terminal waypoint.
		if len(p.OutEdges(current)) == 0 {
			return current, true
		}

		next, err := ResolveNext(p, jctx, current)
		if err != nil {
			return current, true
		}
		current = next
	}
}
