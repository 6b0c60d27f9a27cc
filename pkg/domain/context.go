package domain

import "encoding/json"

// FieldError is one field-level validation failure, in validator order.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JourneyContext is the per-user, per-session mutable record of a journey:
// submitted data per waypoint, validation errors per waypoint, and the order
// waypoints first received data. It is owned by exactly one in-flight request
// at a time; callers serialize access (see pkg/session).
type JourneyContext struct {
	// Data maps waypoint id to the top-level key/value payload submitted
	// for it. A skipped waypoint holds exactly {SkipMarker: true}.
	Data map[string]map[string]any `json:"data"`

	// ValidationErrors maps waypoint id to its ordered field errors.
	ValidationErrors map[string][]FieldError `json:"validation_errors,omitempty"`

	// History records waypoint ids in the order they first received data.
	// Previous-waypoint resolution replays it instead of re-walking the
	// graph, re-validating each entry against current guards.
	History []string `json:"history"`
}

// NewJourneyContext creates an empty context for a fresh journey.
func NewJourneyContext() *JourneyContext {
	return &JourneyContext{
		Data:             make(map[string]map[string]any),
		ValidationErrors: make(map[string][]FieldError),
	}
}

// SetData stores the payload submitted for a waypoint.
//
// When payload carries the skip marker the waypoint's entry becomes exactly
// {SkipMarker: true} and its validation errors are cleared in the same step;
// marker and field data never coexist. When the existing entry is the marker
// and real data arrives, the marker is replaced wholesale for the same
// reason. Otherwise the payload merges over the existing entry at the top
// level.
func (c *JourneyContext) SetData(waypoint string, payload map[string]any) {
	if c.Data == nil {
		c.Data = make(map[string]map[string]any)
	}

	_, seen := c.Data[waypoint]

	if _, skip := payload[SkipMarker]; skip {
		c.Data[waypoint] = map[string]any{SkipMarker: true}
		c.ClearValidationErrors(waypoint)
	} else if c.IsSkipped(waypoint) {
		c.Data[waypoint] = clonePayload(payload)
	} else {
		entry := c.Data[waypoint]
		if entry == nil {
			entry = make(map[string]any, len(payload))
			c.Data[waypoint] = entry
		}
		for k, v := range payload {
			entry[k] = v
		}
	}

	if !seen {
		c.History = append(c.History, waypoint)
	}
}

// DataFor returns the payload for a waypoint, or nil if none was submitted.
func (c *JourneyContext) DataFor(waypoint string) map[string]any {
	return c.Data[waypoint]
}

// Field returns one top-level payload value and whether it exists.
func (c *JourneyContext) Field(waypoint, key string) (any, bool) {
	entry, ok := c.Data[waypoint]
	if !ok {
		return nil, false
	}
	v, ok := entry[key]
	return v, ok
}

// SetValidationErrors records the ordered field errors for a waypoint.
// An empty list clears them.
func (c *JourneyContext) SetValidationErrors(waypoint string, errs []FieldError) {
	if len(errs) == 0 {
		c.ClearValidationErrors(waypoint)
		return
	}
	if c.ValidationErrors == nil {
		c.ValidationErrors = make(map[string][]FieldError)
	}
	c.ValidationErrors[waypoint] = append([]FieldError(nil), errs...)
}

// ClearValidationErrors removes any recorded errors for a waypoint.
func (c *JourneyContext) ClearValidationErrors(waypoint string) {
	delete(c.ValidationErrors, waypoint)
}

// ErrorsFor returns the recorded field errors for a waypoint, or nil.
func (c *JourneyContext) ErrorsFor(waypoint string) []FieldError {
	return c.ValidationErrors[waypoint]
}

// IsSkipped reports whether the stored payload is exactly the skip marker.
func (c *JourneyContext) IsSkipped(waypoint string) bool {
	entry, ok := c.Data[waypoint]
	if !ok || len(entry) != 1 {
		return false
	}
	v, ok := entry[SkipMarker]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// IsVisited reports whether the waypoint counts as completed for guard
// evaluation: it has data (the skip marker included) and no unresolved
// validation errors.
func (c *JourneyContext) IsVisited(waypoint string) bool {
	if _, ok := c.Data[waypoint]; !ok {
		return false
	}
	return len(c.ValidationErrors[waypoint]) == 0
}

// Serialize renders the context to a persistence-neutral blob. Stores write
// and read it verbatim.
func (c *JourneyContext) Serialize() ([]byte, error) {
	return json.Marshal(c)
}

// DeserializeJourneyContext restores a context from a Serialize blob.
func DeserializeJourneyContext(blob []byte) (*JourneyContext, error) {
	jc := NewJourneyContext()
	if err := json.Unmarshal(blob, jc); err != nil {
		return nil, err
	}
	if jc.Data == nil {
		jc.Data = make(map[string]map[string]any)
	}
	if jc.ValidationErrors == nil {
		jc.ValidationErrors = make(map[string][]FieldError)
	}
	return jc, nil
}

// Clone returns a deep copy, for stores that must isolate their snapshot
// from later mutation.
func (c *JourneyContext) Clone() *JourneyContext {
	out := NewJourneyContext()
	for wp, entry := range c.Data {
		out.Data[wp] = clonePayload(entry)
	}
	for wp, errs := range c.ValidationErrors {
		out.ValidationErrors[wp] = append([]FieldError(nil), errs...)
	}
	out.History = append([]string(nil), c.History...)
	return out
}

func clonePayload(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	return out
}
