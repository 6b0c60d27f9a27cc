package lint_test

import (
	"testing"

	"github.com/waylinehq/wayline/internal/lint"
	"github.com/waylinehq/wayline/pkg/domain"
	"github.com/waylinehq/wayline/pkg/plan"
)

func TestCheck_SoundPlan(t *testing.T) {
	p, err := plan.New().
		AddWaypoint("start", "middle", "end").
		AddEdge("start", "middle", domain.Always()).
		AddEdge("middle", "end", domain.Always()).
		AddOrigin("main", "start", domain.Always()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if problems := lint.Check(p); len(problems) != 0 {
		t.Errorf("Expected no problems, got %v", problems)
	}
}

func TestCheck_OrphanWaypoint(t *testing.T) {
	p, err := plan.New().
		AddWaypoint("start", "end", "island").
		AddEdge("start", "end", domain.Always()).
		AddOrigin("main", "start", domain.Always()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	problems := lint.Check(p)
	if len(problems) != 1 {
		t.Fatalf("Expected one problem, got %v", problems)
	}
	if problems[0].Waypoint != "island" {
		t.Errorf("Expected island to be flagged, got %q", problems[0].Waypoint)
	}
}

func TestCheck_NoTerminalPath(t *testing.T) {
	// start and loop cycle forever; no walk reaches a terminal waypoint.
	p, err := plan.New().
		AddWaypoint("start", "loop").
		AddEdge("start", "loop", domain.Always()).
		AddEdge("loop", "start", domain.Always()).
		AddOrigin("main", "start", domain.Always()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	problems := lint.Check(p)
	if len(problems) != 1 {
		t.Fatalf("Expected one problem, got %v", problems)
	}
	if problems[0].Waypoint != "start" {
		t.Errorf("Expected the origin entry to be flagged, got %q", problems[0].Waypoint)
	}
}

func TestCheck_GuardsIgnored(t *testing.T) {
	// The guard can never pass, but lint asks about structure, not data.
	never := domain.WhenData(func(domain.ContextView) bool { return false })
	p, err := plan.New().
		AddWaypoint("start", "end").
		AddEdge("start", "end", never).
		AddOrigin("main", "start", domain.Always()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if problems := lint.Check(p); len(problems) != 0 {
		t.Errorf("Expected no problems, got %v", problems)
	}
}
