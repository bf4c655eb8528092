package block

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCompositionIncompatible is matched by every *CompositionError.
	ErrCompositionIncompatible = errors.New("composition incompatible")

	// ErrMissingInput is matched by every *MissingInputError.
	ErrMissingInput = errors.New("missing input")
)

// CompositionError reports a codomain that is not congruent with the next domain.
type CompositionError struct {
	First    string
	Second   string
	Codomain []string // Field names of the first block's codomain
	Domain   []string // Field names of the second block's domain
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("cannot compose %q with %q: codomain {%s} is not congruent with domain {%s}",
		e.First, e.Second, strings.Join(e.Codomain, ", "), strings.Join(e.Domain, ", "))
}

func (e *CompositionError) Unwrap() error { return ErrCompositionIncompatible }

// MissingInputError reports input keys an operation requires but did not receive.
type MissingInputError struct {
	Keys []string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input keys: %s", strings.Join(e.Keys, ", "))
}

func (e *MissingInputError) Unwrap() error { return ErrMissingInput }
