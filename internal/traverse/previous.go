package traverse

import (
	"github.com/waylinehq/wayline/pkg/domain"
	"github.com/waylinehq/wayline/pkg/plan"
)

// ResolvePrevious finds the waypoint "back" should lead to from current.
//
// It replays the context's recorded visit order instead of re-walking the
// graph: guards may reference data that has changed since, so a reverse
// graph walk would not reproduce a consistent path. History is never trusted
// blindly — each candidate must still satisfy IsReachable, and entries
// invalidated by later data edits are stepped over. With no valid candidate
// the origin's entry waypoint is the answer.
func ResolvePrevious(p *plan.Plan, jctx *domain.JourneyContext, origin plan.Origin, current string) string {
	idx := len(jctx.History)
	for i, wp := range jctx.History {
		if wp == current {
			idx = i
			break
		}
	}

	for i := idx - 1; i >= 0; i-- {
		wp := jctx.History[i]
		if wp == current {
			continue
		}
		if IsReachable(p, jctx, origin, wp) {
			return wp
		}
	}
	return origin.Entry
}
