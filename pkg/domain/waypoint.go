package domain

import "regexp"

// SkipMarker is the reserved data key marking a waypoint as intentionally
// bypassed. A skipped waypoint's payload is exactly {SkipMarker: true};
// the marker never coexists with field data.
const SkipMarker = "__skipped__"

// waypointIDPattern matches URL-safe waypoint slugs.
var waypointIDPattern = regexp.MustCompile(`^[a-z0-9-]{1,200}$`)

// ValidWaypointID reports whether id is a legal waypoint slug.
// The same rule applies to origin names and skip targets arriving from URLs.
func ValidWaypointID(id string) bool {
	return waypointIDPattern.MatchString(id)
}
