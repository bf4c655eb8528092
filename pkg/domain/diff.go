package domain

import (
	"reflect"
)

// Diff calculates the keys that differ between old and new.
// Added and modified keys carry their new value; deleted keys are present with a nil value.
// It returns nil when nothing changed.
func Diff(old, new Values) Values {
	delta := make(Values)

	// Check for Added or Modified
	for k, newVal := range new {
		oldVal, exists := old[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}

	// Check for Deletions
	for k := range old {
		if _, exists := new[k]; !exists {
			delta[k] = nil
		}
	}

	// Return nil if delta is empty so omitempty can remove the key
	if len(delta) == 0 {
		return nil
	}
	return delta
}
