package validation

import (
	"fmt"
	"regexp"
)

// Required fails on nil or empty-string values.
func Required() Validator {
	return func(value any, _ map[string]any) string {
		if value == nil {
			return "this field is required"
		}
		if s, ok := value.(string); ok && s == "" {
			return "this field is required"
		}
		return ""
	}
}

// MaxLength fails when a string value exceeds n bytes. Non-strings pass.
func MaxLength(n int) Validator {
	return func(value any, _ map[string]any) string {
		if s, ok := value.(string); ok && len(s) > n {
			return fmt.Sprintf("must be at most %d characters", n)
		}
		return ""
	}
}

// Pattern fails when a string value does not match the expression.
// Absent or non-string values pass; combine with Required when the field
// must exist.
func Pattern(expr string) Validator {
	re := regexp.MustCompile(expr)
	return func(value any, _ map[string]any) string {
		if s, ok := value.(string); ok && !re.MatchString(s) {
			return "invalid format"
		}
		return ""
	}
}

// OneOf fails when a value is present but not among the allowed options.
func OneOf(options ...string) Validator {
	allowed := make(map[string]struct{}, len(options))
	for _, o := range options {
		allowed[o] = struct{}{}
	}
	return func(value any, _ map[string]any) string {
		if value == nil {
			return ""
		}
		if _, ok := allowed[fmt.Sprintf("%v", value)]; !ok {
			return "not an allowed value"
		}
		return ""
	}
}
