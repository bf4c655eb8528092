package schema

// SelectComponent walks path through nested composites.
// It returns false when a step is missing or tries to index into a primitive.
// An empty path selects s itself.
func SelectComponent(s TypeCategory, path ...string) (TypeCategory, bool) {
	current := s
	for _, step := range path {
		c, ok := current.(*Composite)
		if !ok || c == nil {
			return nil, false
		}
		next, ok := c.fields[step]
		if !ok {
			return nil, false
		}
		current = next
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

// Combine unions the fields of schemas into a new composite called name.
// Fields are never overwritten: a name shared by two inputs is a conflict.
// Schema-level operations and constraints of the inputs are not carried over.
func Combine(name string, schemas ...*Composite) (*Composite, error) {
	fields := make(map[string]TypeCategory)
	owner := make(map[string]string)

	for _, s := range schemas {
		if s == nil {
			continue
		}
		for _, field := range s.FieldNames() {
			if prev, exists := owner[field]; exists {
				return nil, &CombinationConflictError{
					Field:  field,
					First:  prev,
					Second: s.name,
				}
			}
			owner[field] = s.name
			fields[field] = s.fields[field]
		}
	}

	return NewComposite(name, fields, nil, nil), nil
}
