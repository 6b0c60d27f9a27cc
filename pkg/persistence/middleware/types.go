// Package middleware decorates a ContextStore with cross-cutting behavior.
// Journey payloads are user-submitted form data and routinely carry PII, so
// encryption at rest is the first middleware shipped.
package middleware

import "github.com/waylinehq/wayline/pkg/ports"

// Middleware allows wrapping a ContextStore to add behavior.
type Middleware func(ports.ContextStore) ports.ContextStore
