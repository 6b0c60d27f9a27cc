package plan

import "github.com/waylinehq/wayline/pkg/domain"

// Builder collects waypoints, edges and origins during the composition
// phase. All registration must happen before Build; the resulting Plan never
// mutates.
//
// Builder methods chain and defer error reporting to Build, so a plan reads
// as one declaration block.
type Builder struct {
	waypoints map[string]struct{}
	order     []string
	edges     []Edge
	origins   []Origin
	errs      []error
}

// New creates an empty plan builder.
func New() *Builder {
	return &Builder{waypoints: make(map[string]struct{})}
}

// AddWaypoint declares one or more waypoints. Re-declaring an id is a no-op.
func (b *Builder) AddWaypoint(ids ...string) *Builder {
	for _, id := range ids {
		if !domain.ValidWaypointID(id) {
			b.errs = append(b.errs, &domain.InvalidWaypointIDError{ID: id})
			continue
		}
		if _, ok := b.waypoints[id]; ok {
			continue
		}
		b.waypoints[id] = struct{}{}
		b.order = append(b.order, id)
	}
	return b
}

// AddEdge declares a guarded transition. Declaration order is evaluation
// order for edges sharing a source.
func (b *Builder) AddEdge(source, target string, guard domain.Guard) *Builder {
	b.edges = append(b.edges, Edge{Source: source, Target: target, Guard: guard})
	return b
}

// AddOrigin declares a named entry point into the plan.
func (b *Builder) AddOrigin(name, entry string, guard domain.Guard) *Builder {
	b.origins = append(b.origins, Origin{Name: name, Entry: entry, Guard: guard})
	return b
}

// Build validates the declarations and compiles the immutable Plan.
// It fails on the first recorded fault: a malformed id, an edge or origin
// referencing an unknown waypoint, or a duplicate origin name. A failed
// Build must abort startup; a plan that does not compile is not servable.
func (b *Builder) Build() (*Plan, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	p := &Plan{
		waypoints: make(map[string]struct{}, len(b.waypoints)),
		order:     append([]string(nil), b.order...),
		edges:     make(map[string][]Edge),
		origins:   make(map[string]Origin, len(b.origins)),
	}
	for id := range b.waypoints {
		p.waypoints[id] = struct{}{}
	}

	for _, e := range b.edges {
		if !p.WaypointExists(e.Source) || !p.WaypointExists(e.Target) {
			return nil, &domain.GraphIntegrityError{Source: e.Source, Target: e.Target}
		}
		p.edges[e.Source] = append(p.edges[e.Source], e)
	}

	for _, o := range b.origins {
		if !domain.ValidWaypointID(o.Name) {
			return nil, &domain.InvalidWaypointIDError{ID: o.Name}
		}
		if _, dup := p.origins[o.Name]; dup {
			return nil, &domain.DuplicateOriginError{Name: o.Name}
		}
		if !p.WaypointExists(o.Entry) {
			return nil, &domain.GraphIntegrityError{Source: o.Name, Target: o.Entry}
		}
		p.origins[o.Name] = o
	}

	return p, nil
}
