// Package domain holds the core types of a journey: waypoint identity rules,
// guard predicates, the per-journey context (submitted data, validation
// errors, visit history) and the traversal error taxonomy.
//
// Everything in this package is pure in-memory state. Persistence, transport
// and rendering live in adapters.
package domain
