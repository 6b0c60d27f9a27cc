// Package plan compiles waypoints, guarded edges and named origins into an
// immutable journey graph.
//
// A Builder collects declarations; Build validates them and produces a Plan.
// Plans are read-only after Build and safe for concurrent use by any number
// of journeys.
package plan
