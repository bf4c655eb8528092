package domain

// Values is a value tree: a mapping from field name to a scalar or a nested Values.
// It is an alias so plain map[string]any literals can be used directly.
type Values = map[string]any

// Merge returns a new mapping holding every key of the layers.
// Later layers win on conflict. Nested mappings are replaced, not merged.
func Merge(layers ...Values) Values {
	size := 0
	for _, l := range layers {
		size += len(l)
	}
	out := make(Values, size)
	for _, l := range layers {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}

// Clone returns a deep copy of v. Nested Values are copied recursively;
// other values are copied by assignment.
func Clone(v Values) Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for k, val := range v {
		if nested, ok := val.(map[string]any); ok {
			out[k] = Clone(nested)
			continue
		}
		out[k] = val
	}
	return out
}
