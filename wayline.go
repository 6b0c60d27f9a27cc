package wayline

import (
	"io"
	"log/slog"

	"github.com/waylinehq/wayline/internal/traverse"
	"github.com/waylinehq/wayline/pkg/domain"
	"github.com/waylinehq/wayline/pkg/plan"
	"github.com/waylinehq/wayline/pkg/validation"
)

// Version of the module. Overridden at release time via ldflags.
var Version = "dev"

// Hooks receive traversal events so callers can attach metrics or audit
// trails without the core importing them. Nil fields are skipped.
type Hooks struct {
	// OnDeadEnd fires when next-waypoint resolution finds no passable edge.
	OnDeadEnd func(waypoint string)

	// OnRailsDenied fires when a reachability check rejects a target.
	OnRailsDenied func(origin, target string)

	// OnSkip fires after a waypoint is successfully skipped.
	OnSkip func(waypoint, target string)
}

// Engine bundles a compiled plan with its field specs and hooks. All its
// methods are pure computations over the explicit context argument; the
// Engine itself holds no per-journey state and is safe for concurrent use.
type Engine struct {
	plan   *plan.Plan
	specs  map[string][]validation.FieldSpec
	hooks  Hooks
	logger *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers traversal event hooks.
func WithHooks(hooks Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithFieldSpecs binds per-waypoint field specs for Validate.
func WithFieldSpecs(specs map[string][]validation.FieldSpec) Option {
	return func(e *Engine) {
		e.specs = specs
	}
}

// New wraps a compiled plan in an Engine.
func New(p *plan.Plan, opts ...Option) *Engine {
	e := &Engine{
		plan:   p,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Plan returns the compiled plan.
func (e *Engine) Plan() *plan.Plan {
	return e.plan
}

// FieldSpecs returns the field specs bound to a waypoint, or nil.
func (e *Engine) FieldSpecs(waypoint string) []validation.FieldSpec {
	return e.specs[waypoint]
}

// ResolveNext computes the waypoint following current for the journey's
// data. A *domain.DeadEndError means the plan is misauthored; callers treat
// it as a server fault.
func (e *Engine) ResolveNext(jctx *domain.JourneyContext, current string) (string, error) {
	next, err := traverse.ResolveNext(e.plan, jctx, current)
	if err != nil {
		if _, dead := err.(*domain.DeadEndError); dead && e.hooks.OnDeadEnd != nil {
			e.hooks.OnDeadEnd(current)
		}
		return "", err
	}
	e.logger.Debug("resolved next waypoint", "from", current, "to", next)
	return next, nil
}

// ResolvePrevious finds the waypoint "back" leads to from current, replaying
// the journey's history and re-validating each candidate against current
// guards.
func (e *Engine) ResolvePrevious(jctx *domain.JourneyContext, originName, current string) (string, error) {
	origin, ok := e.plan.Origin(originName)
	if !ok {
		return "", &domain.UnknownOriginError{Name: originName}
	}
	return traverse.ResolvePrevious(e.plan, jctx, origin, current), nil
}

// IsReachable reports whether target is legitimately reachable under the
// origin for the journey's current data. Must be consulted before serving
// any GET or POST on a waypoint.
func (e *Engine) IsReachable(jctx *domain.JourneyContext, originName, target string) (bool, error) {
	origin, ok := e.plan.Origin(originName)
	if !ok {
		return false, &domain.UnknownOriginError{Name: originName}
	}
	reachable := traverse.IsReachable(e.plan, jctx, origin, target)
	if !reachable && e.hooks.OnRailsDenied != nil {
		e.hooks.OnRailsDenied(originName, target)
	}
	return reachable, nil
}

// Furthest returns the frontier waypoint under the origin: the step the
// user should be redirected to when they request something unreachable.
// Returns domain.ErrOriginClosed when the origin's guard denies entry.
func (e *Engine) Furthest(jctx *domain.JourneyContext, originName string) (string, error) {
	origin, ok := e.plan.Origin(originName)
	if !ok {
		return "", &domain.UnknownOriginError{Name: originName}
	}
	frontier, open := traverse.Furthest(e.plan, jctx, origin)
	if !open {
		return "", domain.ErrOriginClosed
	}
	return frontier, nil
}

// Skip marks a waypoint as intentionally bypassed and returns the waypoint
// id to redirect to. Idempotent; the target id is validated before any
// state changes.
func (e *Engine) Skip(jctx *domain.JourneyContext, waypoint, target string) (string, error) {
	redirect, err := traverse.Skip(jctx, waypoint, target)
	if err != nil {
		return "", err
	}
	if e.hooks.OnSkip != nil {
		e.hooks.OnSkip(waypoint, redirect)
	}
	e.logger.Debug("skipped waypoint", "waypoint", waypoint, "skipto", redirect)
	return redirect, nil
}

// Validate runs the waypoint's field validators against a submitted payload
// and returns the aggregated, field-scoped error list. Waypoints without
// bound specs accept any payload.
func (e *Engine) Validate(waypoint string, payload map[string]any) []domain.FieldError {
	return validation.Validate(e.specs[waypoint], payload)
}
