package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/blockflow/internal/presentation/tui"
	"github.com/aretw0/blockflow/pkg/schema"
)

// ErrCheckFailed signals that a value is not a member of its schema.
var ErrCheckFailed = errors.New("value does not match schema")

// RunCheck type-checks the value document at valuePath against the schema at schemaPath.
func RunCheck(schemaPath, valuePath string, out io.Writer, styler *tui.Styler) error {
	s, err := schema.NewParser().ParseFile(schemaPath)
	if err != nil {
		return err
	}
	value, err := schema.ReadDocument(valuePath)
	if err != nil {
		return err
	}

	if err := schema.TypeCheck(value, s); err != nil {
		fmt.Fprintln(out, styler.Fail(err.Error()))
		return fmt.Errorf("%w: %w", ErrCheckFailed, err)
	}
	fmt.Fprintln(out, styler.Pass(fmt.Sprintf("value matches schema %s", s.Name())))
	return nil
}

// Comparison is the structural relation between two schemas.
type Comparison struct {
	Congruent  bool
	Similarity float64
}

// RunCompare parses both schema files with one parser and compares them.
func RunCompare(pathA, pathB string, out io.Writer, styler *tui.Styler) (Comparison, error) {
	p := schema.NewParser()
	a, err := p.ParseFile(pathA)
	if err != nil {
		return Comparison{}, err
	}
	b, err := p.ParseFile(pathB)
	if err != nil {
		return Comparison{}, err
	}

	c := Comparison{
		Congruent:  schema.Congruent(a, b),
		Similarity: schema.Similarity(a, b),
	}
	fmt.Fprintln(out, styler.Verdict(c.Congruent, fmt.Sprintf("congruent: %t", c.Congruent)))
	fmt.Fprintln(out, styler.Muted(fmt.Sprintf("similarity: %.3f", c.Similarity)))
	return c, nil
}
