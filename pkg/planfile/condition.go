package planfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/waylinehq/wayline/pkg/domain"
)

var (
	comparisonPattern = regexp.MustCompile(`^([a-z0-9-]+)\.([A-Za-z0-9_-]+)\s*(==|!=|>=|<=|>|<)\s*(.+)$`)
	skippedPattern    = regexp.MustCompile(`^skipped\(([a-z0-9-]+)\)$`)
)

// CompileCondition turns a condition expression into a guard.
//
// Supported forms:
//
//	""                       always passes
//	"always"                 always passes
//	"skipped(waypoint)"      skip-aware check on another waypoint
//	"waypoint.field OP lit"  data comparison; OP is ==, !=, >=, <=, >, <
//
// Literals may be quoted strings, numbers or true/false. Comparisons against
// an absent field fail, so a guard reading a skipped waypoint's fields
// evaluates to false unless it is the skipped waypoint's own out-edge.
func CompileCondition(expr string, skipAware bool) (domain.Guard, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || expr == "always" {
		return domain.Always(), nil
	}

	if m := skippedPattern.FindStringSubmatch(expr); m != nil {
		waypoint := m[1]
		return domain.SkipAware(func(view domain.ContextView) bool {
			return view.IsSkipped(waypoint)
		}), nil
	}

	m := comparisonPattern.FindStringSubmatch(expr)
	if m == nil {
		return domain.Guard{}, fmt.Errorf("unparseable condition %q", expr)
	}
	waypoint, field, op := m[1], m[2], m[3]
	literal, err := parseLiteral(strings.TrimSpace(m[4]))
	if err != nil {
		return domain.Guard{}, fmt.Errorf("condition %q: %w", expr, err)
	}

	test := func(view domain.ContextView) bool {
		value, ok := view.Field(waypoint, field)
		if !ok {
			return false
		}
		return compare(value, op, literal)
	}
	if skipAware {
		return domain.SkipAware(test), nil
	}
	return domain.WhenData(test), nil
}

func parseLiteral(raw string) (any, error) {
	if len(raw) >= 2 {
		if (raw[0] == '\'' && raw[len(raw)-1] == '\'') || (raw[0] == '"' && raw[len(raw)-1] == '"') {
			return raw[1 : len(raw)-1], nil
		}
	}
	if raw == "true" || raw == "false" {
		return raw == "true", nil
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n, nil
	}
	// Bare words compare as strings.
	if raw != "" && !strings.ContainsAny(raw, " \t") {
		return raw, nil
	}
	return nil, fmt.Errorf("bad literal %q", raw)
}

// compare applies op between a submitted value and a parsed literal.
// Form submissions arrive as strings, so numeric literals coerce both sides
// to float before comparing.
func compare(value any, op string, literal any) bool {
	if want, numeric := literal.(float64); numeric {
		got, ok := toFloat(value)
		if !ok {
			return false
		}
		switch op {
		case "==":
			return got == want
		case "!=":
			return got != want
		case ">=":
			return got >= want
		case "<=":
			return got <= want
		case ">":
			return got > want
		case "<":
			return got < want
		}
		return false
	}

	got := fmt.Sprintf("%v", value)
	want := fmt.Sprintf("%v", literal)
	switch op {
	case "==":
		return got == want
	case "!=":
		return got != want
	case ">=":
		return got >= want
	case "<=":
		return got <= want
	case ">":
		return got > want
	case "<":
		return got < want
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	default:
		return 0, false
	}
}
