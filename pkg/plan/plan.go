package plan

import "github.com/waylinehq/wayline/pkg/domain"

// Edge is a directed, guarded transition between two waypoints.
// Edges out of a waypoint are evaluated in declaration order; the first edge
// whose guard passes is taken.
type Edge struct {
	Source string
	Target string
	Guard  domain.Guard
}

// Origin is a named entry point into a plan. Its guard, if any, controls
// whether the sub-journey is enterable at all.
type Origin struct {
	Name  string
	Entry string
	Guard domain.Guard
}

// Plan is the compiled graph: waypoints, ordered out-edges and origins.
// Immutable after Build.
type Plan struct {
	waypoints map[string]struct{}
	order     []string
	edges     map[string][]Edge
	origins   map[string]Origin
}

// WaypointExists reports whether the plan defines the waypoint.
func (p *Plan) WaypointExists(id string) bool {
	_, ok := p.waypoints[id]
	return ok
}

// Waypoints returns all waypoint ids in declaration order.
func (p *Plan) Waypoints() []string {
	return append([]string(nil), p.order...)
}

// OutEdges returns the edges leaving a waypoint in declaration order.
func (p *Plan) OutEdges(id string) []Edge {
	return p.edges[id]
}

// Origin looks up a named entry point.
func (p *Plan) Origin(name string) (Origin, bool) {
	o, ok := p.origins[name]
	return o, ok
}

// Origins returns all origins. Order is unspecified.
func (p *Plan) Origins() []Origin {
	out := make([]Origin, 0, len(p.origins))
	for _, o := range p.origins {
		out = append(out, o)
	}
	return out
}
