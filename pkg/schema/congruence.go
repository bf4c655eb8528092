package schema

// MaxDepth bounds recursion over nested schemas. Schemas are expected to be
// trees; a deeper nesting is treated as a mismatch rather than followed.
const MaxDepth = 64

// Congruent reports whether a and b are structurally equal.
//
// Composites are congruent when they have the same field names and every pair
// of children is congruent; composite names are not compared. Primitives are
// congruent when they share a name and carry the same operation and constraint
// identifiers bound to the same callables. A primitive is never congruent with
// a composite. Every non-nil schema is congruent with itself, however deep.
func Congruent(a, b TypeCategory) bool {
	return congruent(a, b, 0)
}

func congruent(a, b TypeCategory, depth int) bool {
	if a == b && !isNil(a) {
		return true
	}
	if depth > MaxDepth {
		return false
	}
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}

	switch x := a.(type) {
	case *Primitive:
		y, ok := b.(*Primitive)
		if !ok {
			return false
		}
		return x.name == y.name &&
			sameBindings(x.operations, y.operations) &&
			sameBindings(x.constraints, y.constraints)
	case *Composite:
		y, ok := b.(*Composite)
		if !ok {
			return false
		}
		if len(x.fields) != len(y.fields) {
			return false
		}
		for name, child := range x.fields {
			other, ok := y.fields[name]
			if !ok || !congruent(child, other, depth+1) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// isNil also catches typed nil pointers stored in the interface.
func isNil(t TypeCategory) bool {
	switch v := t.(type) {
	case nil:
		return true
	case *Primitive:
		return v == nil
	case *Composite:
		return v == nil
	}
	return false
}

func sameBindings[T any](a, b map[string]*T) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || v != w {
			return false
		}
	}
	return true
}

// IsMember reports whether candidate appears, up to congruence, as a direct or
// nested field value of s.
func IsMember(s *Composite, candidate TypeCategory) bool {
	return isMember(s, candidate, 0)
}

func isMember(s *Composite, candidate TypeCategory, depth int) bool {
	if s == nil || depth > MaxDepth {
		return false
	}
	for _, child := range s.fields {
		if Congruent(child, candidate) {
			return true
		}
		if nested, ok := child.(*Composite); ok && isMember(nested, candidate, depth+1) {
			return true
		}
	}
	return false
}

// Similarity scores how many field names a and b share with children of the
// same variant, as 2*shared / (len(a) + len(b)). Children are not compared
// deeply. Two empty schemas score 0.
func Similarity(a, b *Composite) float64 {
	if a == nil || b == nil {
		return 0
	}
	total := len(a.fields) + len(b.fields)
	if total == 0 {
		return 0
	}

	shared := 0
	for name, child := range a.fields {
		other, ok := b.fields[name]
		if ok && sameVariant(child, other) {
			shared++
		}
	}
	return float64(2*shared) / float64(total)
}

func sameVariant(a, b TypeCategory) bool {
	switch a.(type) {
	case *Primitive:
		_, ok := b.(*Primitive)
		return ok
	case *Composite:
		_, ok := b.(*Composite)
		return ok
	default:
		return false
	}
}
