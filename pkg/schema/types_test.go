package schema

import (
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"float", KindFloat, false},
		{"real", KindFloat, false},
		{"number", KindFloat, false},
		{"int", KindInt, false},
		{"integer", KindInt, false},
		{"string", KindString, false},
		{"bool", KindBool, false},
		{"any", KindAny, false},
		{"complex", "", true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCheckKind(t *testing.T) {
	tests := []struct {
		kind    Kind
		value   any
		wantErr bool
	}{
		{KindFloat, 3.14, false},
		{KindFloat, float32(3.14), false},
		{KindFloat, 42, false},
		{KindFloat, int64(42), false},
		{KindFloat, "3.14", true},
		{KindFloat, true, true},
		{KindInt, 42, false},
		{KindInt, int8(42), false},
		{KindInt, float64(42), false},  // whole number
		{KindInt, float64(42.5), true}, // not whole
		{KindInt, "42", true},
		{KindString, "hello", false},
		{KindString, "", false},
		{KindString, 42, true},
		{KindBool, false, false},
		{KindBool, 1, true},
		{KindAny, "anything", false},
		{KindAny, map[string]any{}, false},
		{Kind("complex"), 1, true},
	}

	for _, tt := range tests {
		err := checkKind(tt.kind, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkKind(%s, %v) error = %v, wantErr %v", tt.kind, tt.value, err, tt.wantErr)
		}
	}
}

func TestPrimitive_CopiesMaps(t *testing.T) {
	c := Range(0, 1)
	constraints := map[string]*Constraint{"unit": c}
	p := NewPrimitive("ratio", KindFloat, nil, constraints)

	constraints["other"] = Min(0)
	if len(p.ConstraintNames()) != 1 {
		t.Fatalf("constructor must copy constraints, got %v", p.ConstraintNames())
	}

	out := p.Constraints()
	delete(out, "unit")
	if _, ok := p.Constraint("unit"); !ok {
		t.Error("Constraints() must return a copy")
	}
}

func TestComposite_FieldNamesSorted(t *testing.T) {
	c := NewComposite("s", map[string]TypeCategory{
		"zeta":  Float(),
		"alpha": Float(),
		"mid":   Int(),
	}, nil, nil)

	names := c.FieldNames()
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("FieldNames() = %v, want %v", names, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestOperation_Apply(t *testing.T) {
	double := NewOperation(func(args ...any) (any, error) {
		f, _ := ToFloat(args[0])
		return f * 2, nil
	})
	p := NewPrimitive("real", KindFloat, map[string]*Operation{"double": double}, nil)

	op, ok := p.Operation("double")
	if !ok {
		t.Fatal("operation not found")
	}
	got, err := op.Apply(2)
	if err != nil || got != 4.0 {
		t.Errorf("Apply(2) = %v, %v; want 4, nil", got, err)
	}

	var missing *Operation
	if _, err := missing.Apply(); err == nil {
		t.Error("nil operation should return an error")
	}
}

func TestConstraintHelpers(t *testing.T) {
	tests := []struct {
		name  string
		c     *Constraint
		value any
		want  bool
	}{
		{"range inside", Range(0, 100), 42.0, true},
		{"range edge", Range(0, 100), 100, true},
		{"range outside", Range(0, 100), 150.0, false},
		{"range non-numeric", Range(0, 100), "50", false},
		{"min", Min(1), 0.5, false},
		{"max", Max(1), 0.5, true},
		{"one of string", OneOf("auto", "manual"), "auto", true},
		{"one of numeric", OneOf(1, 2), 2.0, true},
		{"one of miss", OneOf("auto"), "off", false},
		{"non empty", NonEmpty(), "x", true},
		{"non empty blank", NonEmpty(), "", false},
	}

	for _, tt := range tests {
		if got := tt.c.Holds(tt.value); got != tt.want {
			t.Errorf("%s: Holds(%v) = %v, want %v", tt.name, tt.value, got, tt.want)
		}
	}
}
