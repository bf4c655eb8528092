package schema

import "reflect"

// Range accepts numeric values in the closed interval [min, max].
func Range(min, max float64) *Constraint {
	return NewConstraint(func(v any) bool {
		f, ok := ToFloat(v)
		return ok && f >= min && f <= max
	})
}

// Min accepts numeric values greater than or equal to min.
func Min(min float64) *Constraint {
	return NewConstraint(func(v any) bool {
		f, ok := ToFloat(v)
		return ok && f >= min
	})
}

// Max accepts numeric values less than or equal to max.
func Max(max float64) *Constraint {
	return NewConstraint(func(v any) bool {
		f, ok := ToFloat(v)
		return ok && f <= max
	})
}

// OneOf accepts values deeply equal to one of the allowed values.
// Numeric values are compared as float64 so 1 and 1.0 match.
func OneOf(allowed ...any) *Constraint {
	return NewConstraint(func(v any) bool {
		for _, a := range allowed {
			if fa, ok := ToFloat(a); ok {
				if fv, ok := ToFloat(v); ok && fa == fv {
					return true
				}
				continue
			}
			if reflect.DeepEqual(a, v) {
				return true
			}
		}
		return false
	})
}

// NonEmpty accepts non-empty strings.
func NonEmpty() *Constraint {
	return NewConstraint(func(v any) bool {
		s, ok := v.(string)
		return ok && s != ""
	})
}

// ToFloat converts any Go numeric kind to float64.
// It reports false for non-numeric values.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
