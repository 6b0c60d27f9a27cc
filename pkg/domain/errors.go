package domain

import (
	"errors"
	"fmt"
)

// ErrJourneyNotFound is returned when a journey ID cannot be found in the store.
var ErrJourneyNotFound = errors.New("journey not found")

// ErrOriginClosed is returned when an origin exists but its guard denies
// entry, e.g. a feature flag or a prior-step gate.
var ErrOriginClosed = errors.New("origin not enterable")

// GraphIntegrityError indicates an edge or origin referencing a waypoint
// that was never added to the plan. Fatal at composition time.
type GraphIntegrityError struct {
	Source string
	Target string
}

func (e *GraphIntegrityError) Error() string {
	return fmt.Sprintf("graph integrity: edge %q -> %q references an unknown waypoint", e.Source, e.Target)
}

// DuplicateOriginError indicates two origins registered under the same name.
type DuplicateOriginError struct {
	Name string
}

func (e *DuplicateOriginError) Error() string {
	return fmt.Sprintf("origin %q registered twice", e.Name)
}

// InvalidWaypointIDError indicates a malformed waypoint slug, typically a
// skip target or direct-navigation id arriving from a request URL.
// Recoverable; callers map it to a 400-class response.
type InvalidWaypointIDError struct {
	ID string
}

func (e *InvalidWaypointIDError) Error() string {
	return fmt.Sprintf("invalid waypoint id %q", e.ID)
}

// DeadEndError indicates traversal found no satisfiable out-edge.
// It points at a misauthored plan, not at user input; callers treat it as a
// server fault and log the offending waypoint for operators.
type DeadEndError struct {
	Waypoint string
}

func (e *DeadEndError) Error() string {
	return fmt.Sprintf("dead end: no passable edge out of waypoint %q", e.Waypoint)
}

// UnknownOriginError indicates a request naming an origin the plan does not define.
type UnknownOriginError struct {
	Name string
}

func (e *UnknownOriginError) Error() string {
	return fmt.Sprintf("unknown origin %q", e.Name)
}
