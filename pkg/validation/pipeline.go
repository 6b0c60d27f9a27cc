package validation

import "github.com/waylinehq/wayline/pkg/domain"

// Validator checks one field value against the whole payload (for
// cross-field rules) and returns a message for the user, or "" when the
// value passes.
type Validator func(value any, payload map[string]any) string

// FieldSpec binds a field name to its ordered validator list.
type FieldSpec struct {
	Name       string
	Validators []Validator
}

// Validate runs each field's validators in declared order. A field stops at
// its own first failure; fields are independent of each other and all are
// attempted regardless of sibling failures. The result is ordered by field
// declaration. Pure: no side effects on the payload or specs.
func Validate(specs []FieldSpec, payload map[string]any) []domain.FieldError {
	var errs []domain.FieldError
	for _, spec := range specs {
		value := payload[spec.Name]
		for _, v := range spec.Validators {
			if msg := v(value, payload); msg != "" {
				errs = append(errs, domain.FieldError{Field: spec.Name, Message: msg})
				break
			}
		}
	}
	return errs
}
