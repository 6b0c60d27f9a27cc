// Package http exposes journey traversal over a JSON API. It is the request
// boundary the core expects: reachability is enforced before every handler,
// typed core errors are mapped to HTTP status codes, and redirect URLs are
// built here — the core only ever returns waypoint ids.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/waylinehq/wayline"
	"github.com/waylinehq/wayline/internal/logging"
	"github.com/waylinehq/wayline/pkg/domain"
	"github.com/waylinehq/wayline/pkg/observability"
	"github.com/waylinehq/wayline/pkg/session"
)

// Server handles journey traffic for one engine.
type Server struct {
	engine   *wayline.Engine
	sessions *session.Manager
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request-boundary logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records journey progress on every save.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewHandler builds the chi router for the engine.
// extra handlers (e.g. promhttp at /metrics) mount before the journey routes.
func NewHandler(engine *wayline.Engine, sessions *session.Manager, extra map[string]http.Handler, opts ...Option) http.Handler {
	s := &Server{
		engine:   engine,
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.health)
	for pattern, h := range extra {
		r.Method(http.MethodGet, pattern, h)
	}
	r.Get("/{origin}/{waypoint}/skip", s.skip)
	r.Get("/{origin}/{waypoint}", s.get)
	r.Post("/{origin}/{waypoint}", s.post)
	return r
}

// waypointResponse is the JSON shape for a waypoint view.
type waypointResponse struct {
	Journey  string              `json:"journey"`
	Origin   string              `json:"origin"`
	Waypoint string              `json:"waypoint"`
	Data     map[string]any      `json:"data,omitempty"`
	Errors   []domain.FieldError `json:"errors,omitempty"`
	Previous string              `json:"previous,omitempty"`
	Skipped  bool                `json:"skipped,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// get serves the current view of a waypoint, rails permitting.
func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	req, jctx, ok := s.admit(w, r)
	if !ok {
		return
	}

	previous, err := s.engine.ResolvePrevious(jctx, req.origin, req.waypoint)
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}
	if previous == req.waypoint {
		previous = ""
	}

	writeJSON(w, http.StatusOK, waypointResponse{
		Journey:  req.journey,
		Origin:   req.origin,
		Waypoint: req.waypoint,
		Data:     jctx.DataFor(req.waypoint),
		Errors:   jctx.ErrorsFor(req.waypoint),
		Previous: previous,
		Skipped:  jctx.IsSkipped(req.waypoint),
	})
}

// post accepts a waypoint submission: validate, store, advance.
func (s *Server) post(w http.ResponseWriter, r *http.Request) {
	req, jctx, ok := s.admit(w, r)
	if !ok {
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if _, reserved := payload[domain.SkipMarker]; reserved {
		// The marker is set through the skip endpoint only.
		http.Error(w, "reserved field in payload", http.StatusBadRequest)
		return
	}

	errs := s.engine.Validate(req.waypoint, payload)
	jctx.SetData(req.waypoint, payload)
	jctx.SetValidationErrors(req.waypoint, errs)
	if err := s.save(r, req.journey, jctx); err != nil {
		s.serverError(w, r, err)
		return
	}

	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, waypointResponse{
			Journey:  req.journey,
			Origin:   req.origin,
			Waypoint: req.waypoint,
			Data:     jctx.DataFor(req.waypoint),
			Errors:   errs,
		})
		return
	}

	next, err := s.engine.ResolveNext(jctx, req.waypoint)
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}
	s.redirect(w, r, req, next)
}

// skip marks the waypoint as bypassed and redirects to the skipto target.
func (s *Server) skip(w http.ResponseWriter, r *http.Request) {
	// The skipto parameter is matched against the waypoint slug pattern
	// before anything reaches the core.
	skipto := r.URL.Query().Get("skipto")
	if !domain.ValidWaypointID(skipto) {
		http.Error(w, "invalid skipto parameter", http.StatusBadRequest)
		return
	}

	req, jctx, ok := s.admit(w, r)
	if !ok {
		return
	}

	target, err := s.engine.Skip(jctx, req.waypoint, skipto)
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}
	if err := s.save(r, req.journey, jctx); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.redirect(w, r, req, target)
}

// request carries the validated identifiers of one journey request.
type request struct {
	journey  string
	origin   string
	waypoint string
}

// admit runs the shared entry checks: id syntax, journey load, rails.
// On a rails denial the response is a redirect to the furthest reachable
// waypoint; admit returns ok=false whenever it has written a response.
func (s *Server) admit(w http.ResponseWriter, r *http.Request) (request, *domain.JourneyContext, bool) {
	req := request{
		journey:  r.URL.Query().Get("journey"),
		origin:   chi.URLParam(r, "origin"),
		waypoint: chi.URLParam(r, "waypoint"),
	}
	if req.journey == "" {
		req.journey = r.Header.Get("X-Journey-ID")
	}
	if req.journey == "" {
		req.journey = session.NewJourneyID()
	}

	if !domain.ValidWaypointID(req.origin) || !domain.ValidWaypointID(req.waypoint) {
		http.Error(w, "invalid waypoint id", http.StatusBadRequest)
		return req, nil, false
	}

	jctx, err := s.sessions.LoadOrStart(r.Context(), req.journey)
	if err != nil {
		s.serverError(w, r, err)
		return req, nil, false
	}
	w.Header().Set("X-Journey-ID", req.journey)

	reachable, err := s.engine.IsReachable(jctx, req.origin, req.waypoint)
	if err != nil {
		s.writeCoreError(w, r, err)
		return req, nil, false
	}
	if !reachable {
		s.logger.Info("rails denied waypoint request",
			"origin", req.origin,
			"waypoint", req.waypoint,
			"journey", req.journey,
		)
		frontier, err := s.engine.Furthest(jctx, req.origin)
		if err != nil {
			s.writeCoreError(w, r, err)
			return req, nil, false
		}
		s.redirect(w, r, req, frontier)
		return req, nil, false
	}

	return req, jctx, true
}

func (s *Server) save(r *http.Request, journeyID string, jctx *domain.JourneyContext) error {
	if err := s.sessions.Save(r.Context(), journeyID, jctx); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.Progress(len(jctx.History))
	}
	return nil
}

// redirect sends the caller to another waypoint under the same origin.
// Joining with path.Join collapses duplicate slashes.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, req request, waypoint string) {
	target := path.Join("/", req.origin, waypoint) + "?journey=" + req.journey
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// writeCoreError maps the core's typed errors onto HTTP statuses.
func (s *Server) writeCoreError(w http.ResponseWriter, r *http.Request, err error) {
	var invalidID *domain.InvalidWaypointIDError
	var unknownOrigin *domain.UnknownOriginError
	var deadEnd *domain.DeadEndError

	switch {
	case errors.As(err, &invalidID):
		http.Error(w, invalidID.Error(), http.StatusBadRequest)
	case errors.As(err, &unknownOrigin):
		http.Error(w, unknownOrigin.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrOriginClosed):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &deadEnd):
		// A dead end is a misauthored plan, not user input. Log the
		// offending waypoint for operators and fail the request.
		s.logger.Error("traversal dead end", "waypoint", deadEnd.Waypoint, "path", r.URL.Path)
		http.Error(w, "journey configuration error", http.StatusInternalServerError)
	default:
		s.serverError(w, r, err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
