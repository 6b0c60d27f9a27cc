package domain

// GuardKind tags how a guard behaves when the waypoint it leaves has been
// skipped. Guards are plain data so plans can be expressed declaratively and
// guards unit-tested in isolation from traversal.
type GuardKind int

const (
	// GuardAlways passes unconditionally. The zero value, so an Edge with no
	// explicit guard is an "always" edge.
	GuardAlways GuardKind = iota

	// GuardData inspects submitted data. On an edge leaving a skipped
	// waypoint a data guard passes implicitly: no real data exists to
	// evaluate, so the skip satisfies it.
	GuardData

	// GuardSkipAware always runs its predicate, even when the source
	// waypoint is skipped. Authored when the plan must distinguish a skip
	// from real data, typically via ContextView.IsSkipped.
	GuardSkipAware
)

// ContextView is the read-only slice of a journey context that guards see.
// *JourneyContext implements it.
type ContextView interface {
	// DataFor returns the payload submitted for a waypoint, or nil.
	DataFor(waypoint string) map[string]any

	// Field returns one top-level payload value and whether it exists.
	// Fields of a skipped waypoint are absent.
	Field(waypoint, key string) (any, bool)

	// IsSkipped reports whether the waypoint holds exactly the skip marker.
	IsSkipped(waypoint string) bool

	// IsVisited reports whether the waypoint has data (or the skip marker)
	// and no unresolved validation errors.
	IsVisited(waypoint string) bool
}

// Guard decides whether an edge or origin may be used for the current
// journey data. Test must be a pure function of the view.
type Guard struct {
	Kind GuardKind
	Test func(view ContextView) bool
}

// Always returns a guard that passes unconditionally.
func Always() Guard {
	return Guard{Kind: GuardAlways}
}

// WhenData wraps a predicate over submitted data.
func WhenData(test func(view ContextView) bool) Guard {
	return Guard{Kind: GuardData, Test: test}
}

// SkipAware wraps a predicate that runs even for skipped source waypoints.
func SkipAware(test func(view ContextView) bool) Guard {
	return Guard{Kind: GuardSkipAware, Test: test}
}

// FieldEquals is a convenience data guard matching one payload field.
func FieldEquals(waypoint, field string, want any) Guard {
	return WhenData(func(view ContextView) bool {
		got, ok := view.Field(waypoint, field)
		return ok && got == want
	})
}
