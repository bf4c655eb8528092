package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Definition files describe composites as nested maps:
//
//	name: plant
//	fields:
//	  sensor: float
//	  level: {kind: float, min: 0, max: 100}
//	  mode: {kind: string, one_of: [auto, manual]}
//	  pose:
//	    fields:
//	      x: float
//
// A string leaf names a kind, a map with "fields" is a composite, and any other
// map is a primitive spec.

// primitiveSpec is the decoded form of a primitive leaf.
type primitiveSpec struct {
	Name     string   `mapstructure:"name"`
	Kind     string   `mapstructure:"kind"`
	Min      *float64 `mapstructure:"min"`
	Max      *float64 `mapstructure:"max"`
	OneOf    []any    `mapstructure:"one_of"`
	NonEmpty bool     `mapstructure:"non_empty"`
}

// Parser builds schemas from definitions.
// Constraints with identical parameters are shared across everything parsed by
// the same Parser, so two definitions of "float in [0,100]" stay congruent.
// A Parser is not safe for concurrent use.
type Parser struct {
	constraints map[string]*Constraint
}

// NewParser creates a parser with an empty constraint cache.
func NewParser() *Parser {
	return &Parser{constraints: make(map[string]*Constraint)}
}

// Parse converts a definition map into a composite.
func (p *Parser) Parse(def map[string]any) (*Composite, error) {
	name, _ := def["name"].(string)
	return p.parseComposite(name, def, 0)
}

// ParseFile reads a YAML or JSON definition file and parses it.
func (p *Parser) ParseFile(path string) (*Composite, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	s, err := p.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.name == "" {
		s.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

func (p *Parser) parseComposite(name string, def map[string]any, depth int) (*Composite, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("definition nesting exceeds %d levels", MaxDepth)
	}
	rawFields, ok := def["fields"]
	if !ok {
		return nil, fmt.Errorf("composite %q: missing fields", name)
	}
	fieldDefs, ok := rawFields.(map[string]any)
	if !ok && rawFields != nil {
		return nil, fmt.Errorf("composite %q: fields must be a mapping, got %T", name, rawFields)
	}

	fields := make(map[string]TypeCategory, len(fieldDefs))
	for field, raw := range fieldDefs {
		t, err := p.parseField(field, raw, depth+1)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		fields[field] = t
	}
	return NewComposite(name, fields, nil, nil), nil
}

func (p *Parser) parseField(field string, raw any, depth int) (TypeCategory, error) {
	switch v := raw.(type) {
	case string:
		kind, err := ParseKind(v)
		if err != nil {
			return nil, err
		}
		return NewPrimitive(string(kind), kind, nil, nil), nil
	case map[string]any:
		if _, nested := v["fields"]; nested {
			name, _ := v["name"].(string)
			if name == "" {
				name = field
			}
			return p.parseComposite(name, v, depth)
		}
		return p.parsePrimitive(v)
	default:
		return nil, fmt.Errorf("unsupported definition %T", raw)
	}
}

func (p *Parser) parsePrimitive(raw map[string]any) (*Primitive, error) {
	var spec primitiveSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}

	kind, err := ParseKind(spec.Kind)
	if err != nil {
		return nil, err
	}
	name := spec.Name
	if name == "" {
		name = string(kind)
	}

	constraints := make(map[string]*Constraint)
	switch {
	case spec.Min != nil && spec.Max != nil:
		constraints["range"] = p.intern(fmt.Sprintf("range:%g:%g", *spec.Min, *spec.Max), func() *Constraint {
			return Range(*spec.Min, *spec.Max)
		})
	case spec.Min != nil:
		constraints["min"] = p.intern(fmt.Sprintf("min:%g", *spec.Min), func() *Constraint { return Min(*spec.Min) })
	case spec.Max != nil:
		constraints["max"] = p.intern(fmt.Sprintf("max:%g", *spec.Max), func() *Constraint { return Max(*spec.Max) })
	}
	if len(spec.OneOf) > 0 {
		constraints["one_of"] = p.intern(fmt.Sprintf("one_of:%v", spec.OneOf), func() *Constraint { return OneOf(spec.OneOf...) })
	}
	if spec.NonEmpty {
		constraints["non_empty"] = p.intern("non_empty", NonEmpty)
	}

	return NewPrimitive(name, kind, nil, constraints), nil
}

func (p *Parser) intern(key string, build func() *Constraint) *Constraint {
	if c, ok := p.constraints[key]; ok {
		return c
	}
	c := build()
	p.constraints[key] = c
	return c
}

// ReadDocument reads a YAML or JSON file into a generic map.
// The format is chosen by extension; anything but .json is parsed as YAML.
func ReadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return DecodeDocument(data, filepath.Ext(path))
}

// DecodeDocument decodes YAML or JSON bytes into a generic map.
func DecodeDocument(data []byte, ext string) (map[string]any, error) {
	var doc map[string]any
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	return doc, nil
}
