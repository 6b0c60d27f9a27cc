// Package traverse implements the journey traversal algorithms: next and
// previous waypoint resolution, the reachability "rails" walk that defends
// against fabricated URLs, and the skip override.
//
// Every function is a pure computation over an explicit Plan and
// JourneyContext; nothing here logs, blocks or touches a store.
package traverse
