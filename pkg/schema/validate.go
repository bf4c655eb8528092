package schema

import "fmt"

// TypeCheck verifies that value conforms to s.
//
// Fields are checked depth-first in sorted order and the first failure is
// returned as a *TypeCheckError or *ConstraintViolationError. Fields present
// in value but absent from s are ignored.
func TypeCheck(value map[string]any, s *Composite) error {
	if s == nil {
		return nil
	}
	return typeCheck(value, s, "", 0)
}

func typeCheck(value map[string]any, s *Composite, prefix string, depth int) error {
	if depth > MaxDepth {
		return &TypeCheckError{Path: prefix, Reason: fmt.Sprintf("nesting exceeds %d levels", MaxDepth)}
	}

	for _, name := range s.FieldNames() {
		path := joinPath(prefix, name)
		v, exists := value[name]
		if !exists {
			return &TypeCheckError{Path: path, Reason: "required"}
		}

		switch field := s.fields[name].(type) {
		case *Composite:
			nested, ok := v.(map[string]any)
			if !ok {
				return &TypeCheckError{Path: path, Reason: fmt.Sprintf("expected mapping for %s, got %T", field.name, v), Value: v}
			}
			if err := typeCheck(nested, field, path, depth+1); err != nil {
				return err
			}
		case *Primitive:
			if err := checkPrimitive(v, field, path); err != nil {
				return err
			}
		default:
			return &TypeCheckError{Path: path, Reason: "schema field has no type"}
		}
	}
	return nil
}

func checkPrimitive(v any, p *Primitive, path string) error {
	if v == nil {
		return &TypeCheckError{Path: path, Reason: "value is nil"}
	}
	if err := checkKind(p.kind, v); err != nil {
		return &TypeCheckError{Path: path, Reason: err.Error(), Value: v}
	}
	for _, name := range p.ConstraintNames() {
		if !p.constraints[name].Holds(v) {
			return &ConstraintViolationError{Path: path, Constraint: name, Value: v}
		}
	}
	return nil
}

// checkKind accepts v when its runtime kind is a subtype of kind.
func checkKind(kind Kind, v any) error {
	switch kind {
	case KindFloat:
		if _, ok := ToFloat(v); !ok {
			return fmt.Errorf("expected float, got %T", v)
		}
	case KindInt:
		switch n := v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		case float64:
			// Accept floats that are whole numbers (from JSON unmarshaling)
			if n != float64(int64(n)) {
				return fmt.Errorf("expected int, got float (not a whole number)")
			}
		default:
			return fmt.Errorf("expected int, got %T", v)
		}
	case KindString:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
	case KindBool:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
	case KindAny:
	default:
		return fmt.Errorf("unsupported kind %q", kind)
	}
	return nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
