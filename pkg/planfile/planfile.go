package planfile

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/waylinehq/wayline/pkg/plan"
	"github.com/waylinehq/wayline/pkg/validation"
)

// Document is the typed form of a YAML plan file.
type Document struct {
	Name        string        `mapstructure:"name"`
	Description string        `mapstructure:"description"`
	Waypoints   []WaypointDoc `mapstructure:"waypoints"`
	Origins     []OriginDoc   `mapstructure:"origins"`
}

// WaypointDoc declares one waypoint with its fields and ordered out-edges.
type WaypointDoc struct {
	ID     string     `mapstructure:"id"`
	Fields []FieldDoc `mapstructure:"fields"`
	Edges  []EdgeDoc  `mapstructure:"edges"`
}

// EdgeDoc declares a guarded transition. Declaration order is evaluation
// order. SkipAware makes the condition run even when the source waypoint
// was skipped.
type EdgeDoc struct {
	To        string `mapstructure:"to"`
	When      string `mapstructure:"when"`
	SkipAware bool   `mapstructure:"skip_aware"`
}

// OriginDoc declares a named entry point, optionally guarded.
type OriginDoc struct {
	Name  string `mapstructure:"name"`
	Entry string `mapstructure:"entry"`
	When  string `mapstructure:"when"`
}

// FieldDoc declares one field's validation rules, applied in the order
// required -> max_length -> pattern -> one_of.
type FieldDoc struct {
	Name      string   `mapstructure:"name"`
	Required  bool     `mapstructure:"required"`
	MaxLength int      `mapstructure:"max_length"`
	Pattern   string   `mapstructure:"pattern"`
	OneOf     []string `mapstructure:"one_of"`
}

// Parse decodes a YAML plan document. YAML is unmarshalled into generic maps
// first and mapped into the typed document, so unknown keys surface as
// decode errors instead of being dropped silently.
func Parse(blob []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse plan yaml: %w", err)
	}

	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode plan document: %w", err)
	}
	return &doc, nil
}

// Compile validates the document and produces the immutable plan plus the
// per-waypoint field specs for the validator pipeline.
func (d *Document) Compile() (*plan.Plan, map[string][]validation.FieldSpec, error) {
	b := plan.New()
	specs := make(map[string][]validation.FieldSpec)

	for _, wp := range d.Waypoints {
		b.AddWaypoint(wp.ID)
		if len(wp.Fields) > 0 {
			specs[wp.ID] = compileFields(wp.Fields)
		}
	}

	for _, wp := range d.Waypoints {
		for _, e := range wp.Edges {
			guard, err := CompileCondition(e.When, e.SkipAware)
			if err != nil {
				return nil, nil, fmt.Errorf("waypoint %q edge to %q: %w", wp.ID, e.To, err)
			}
			b.AddEdge(wp.ID, e.To, guard)
		}
	}

	for _, o := range d.Origins {
		guard, err := CompileCondition(o.When, false)
		if err != nil {
			return nil, nil, fmt.Errorf("origin %q: %w", o.Name, err)
		}
		b.AddOrigin(o.Name, o.Entry, guard)
	}

	p, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return p, specs, nil
}

// Load reads, parses and compiles a plan file.
func Load(path string) (*Document, *plan.Plan, map[string][]validation.FieldSpec, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	doc, err := Parse(blob)
	if err != nil {
		return nil, nil, nil, err
	}
	p, specs, err := doc.Compile()
	if err != nil {
		return nil, nil, nil, err
	}
	return doc, p, specs, nil
}

func compileFields(fields []FieldDoc) []validation.FieldSpec {
	specs := make([]validation.FieldSpec, 0, len(fields))
	for _, f := range fields {
		var vs []validation.Validator
		if f.Required {
			vs = append(vs, validation.Required())
		}
		if f.MaxLength > 0 {
			vs = append(vs, validation.MaxLength(f.MaxLength))
		}
		if f.Pattern != "" {
			vs = append(vs, validation.Pattern(f.Pattern))
		}
		if len(f.OneOf) > 0 {
			vs = append(vs, validation.OneOf(f.OneOf...))
		}
		specs = append(specs, validation.FieldSpec{Name: f.Name, Validators: vs})
	}
	return specs
}
