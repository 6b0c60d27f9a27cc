// Package lint inspects a compiled plan for authoring smells that Build
// cannot reject: waypoints no origin can reach, and origins whose entry has
// no path to a terminal waypoint. Guards are ignored — lint answers "could
// any data ever get here", not "can this journey get here now".
package lint

import (
	"fmt"

	"github.com/waylinehq/wayline/pkg/plan"
)

// Problem is one lint finding.
type Problem struct {
	Waypoint string
	Message  string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Waypoint, p.Message)
}

// Check crawls the plan from every origin and reports problems.
// An empty result means the plan is structurally sound.
func Check(p *plan.Plan) []Problem {
	reachable := make(map[string]bool)

	for _, o := range p.Origins() {
		queue := []string{o.Entry}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			if reachable[current] {
				continue
			}
			reachable[current] = true

			for _, e := range p.OutEdges(current) {
				if !reachable[e.Target] {
					queue = append(queue, e.Target)
				}
			}
		}
	}

	var problems []Problem
	for _, wp := range p.Waypoints() {
		if !reachable[wp] {
			problems = append(problems, Problem{
				Waypoint: wp,
				Message:  "not reachable from any origin",
			})
		}
	}

	for _, o := range p.Origins() {
		if !hasTerminalPath(p, o.Entry) {
			problems = append(problems, Problem{
				Waypoint: o.Entry,
				Message:  fmt.Sprintf("origin %q has no path to a terminal waypoint", o.Name),
			})
		}
	}

	return problems
}

// hasTerminalPath reports whether any walk from start ends at a waypoint
// with no out-edges.
func hasTerminalPath(p *plan.Plan, start string) bool {
	visited := make(map[string]bool)
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true

		edges := p.OutEdges(current)
		if len(edges) == 0 {
			return true
		}
		for _, e := range edges {
			if !visited[e.Target] {
				queue = append(queue, e.Target)
			}
		}
	}
	return false
}
