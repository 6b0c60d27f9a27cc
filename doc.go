/*
Package wayline is a journey plan and traversal engine for multi-step
data-collection flows: a directed graph of waypoints with guarded edges, a
per-journey context of submitted data, and deterministic algorithms for
next/previous waypoint resolution, reachability ("journey rails") and
explicit step skipping.

# Concept

A journey is authored once as an immutable Plan: waypoints, ordered guarded
edges, and named origins (entry points). Each user carries a JourneyContext
recording what they submitted per waypoint, their validation errors and their
visit history. The engine answers three questions from those two inputs:
what comes next, what came before, and is this waypoint legitimately
reachable right now. Reachability is checked before serving any waypoint, so
a user fabricating a URL cannot jump past steps whose preconditions their
data does not satisfy.

# Key Properties

  - Deterministic: edges are evaluated in declaration order and the first
    passing guard wins; the same plan, context and waypoint always resolve
    the same way.
  - Fail closed: dead ends, guard cycles and closed origins all make a
    target unreachable rather than guessing.
  - Pure core: every operation is a function of explicit Plan and Context
    arguments. Persistence, locking, HTTP and metrics live in adapters.

# Usage

Compile a plan with pkg/plan or load one from YAML with pkg/planfile, then
wrap it in an Engine:

	p, _ := plan.New().
		AddWaypoint("start", "adult-form", "guardian-form").
		AddEdge("start", "adult-form", domain.WhenData(isAdult)).
		AddEdge("start", "guardian-form", domain.Always()).
		AddOrigin("main", "start", domain.Always()).
		Build()

	eng := wayline.New(p)
	next, err := eng.ResolveNext(jctx, "start")

Persistence goes through ports.ContextStore (memory and redis adapters
provided); pkg/session serializes concurrent requests for one journey.
*/
package wayline
