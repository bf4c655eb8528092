package block

import "github.com/aretw0/blockflow/pkg/domain"

// Require checks an operation-level precondition: every key must be present
// in input with a non-nil value. It is independent of schema type-checking.
func Require(input domain.Values, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if v, ok := input[k]; !ok || v == nil {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &MissingInputError{Keys: missing}
	}
	return nil
}
