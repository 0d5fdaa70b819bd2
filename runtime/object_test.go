// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

import (
	"testing"

	"github.com/golangee/hopper/ast"
)

func plainMethod(name string) *Method {
	return &Method{
		Name:  name,
		Parts: []ast.PartArity{{}},
		Apply: func(Value, []PartArgs) (Value, *ExceptionPacket) { return Done, nil },
	}
}

func TestObjectPutAllowsOverrideAndChainsSuper(t *testing.T) {
	o := NewObject()

	base := plainMethod("speak")
	if err := o.Put("speak", base); err != nil {
		t.Fatalf("unexpected error: %s", err.Detail)
	}

	override := plainMethod("speak")
	if err := o.Put("speak", override); err != nil {
		t.Fatalf("unexpected error: %s", err.Detail)
	}

	if override.Super != base {
		t.Fatalf("expected override.Super to chain to the original method")
	}
}

func TestObjectPutRejectsOverridingStatic(t *testing.T) {
	o := NewObject()

	reserved := plainMethod("self")
	reserved.IsStatic = true

	if err := o.Put("self", reserved); err != nil {
		t.Fatalf("unexpected error installing the reserved slot: %s", err.Detail)
	}

	if err := o.Put("self", plainMethod("self")); err == nil || err.Kind != InvalidMethod {
		t.Fatalf("expected InvalidMethod overriding a static slot, got %v", err)
	}
}

func TestObjectPutRejectsAccessorMethodMismatch(t *testing.T) {
	o := NewObject()

	accessor := plainMethod("count")
	accessor.IsVariable = true

	if err := o.Put("count", accessor); err != nil {
		t.Fatalf("unexpected error: %s", err.Detail)
	}

	if err := o.Put("count", plainMethod("count")); err == nil || err.Kind != InvalidMethod {
		t.Fatalf("expected InvalidMethod overriding an accessor with a plain method, got %v", err)
	}
}

func TestObjectPutRejectsIncompatibleShape(t *testing.T) {
	o := NewObject()

	if err := o.Put("greet", plainMethod("greet")); err != nil {
		t.Fatalf("unexpected error: %s", err.Detail)
	}

	widened := &Method{
		Name:  "greet",
		Parts: []ast.PartArity{{Parameters: 1}},
		Apply: func(Value, []PartArgs) (Value, *ExceptionPacket) { return Done, nil },
	}

	if err := o.Put("greet", widened); err == nil || err.Kind != InvalidMethod {
		t.Fatalf("expected InvalidMethod for an incompatible override shape, got %v", err)
	}
}

func TestObjectPutRejectsPublicToConfidentialNarrowing(t *testing.T) {
	o := NewObject()

	if err := o.Put("greet", plainMethod("greet")); err != nil {
		t.Fatalf("unexpected error: %s", err.Detail)
	}

	confidential := plainMethod("greet")
	confidential.IsConfidential = true

	if err := o.Put("greet", confidential); err == nil || err.Kind != InvalidMethod {
		t.Fatalf("expected InvalidMethod narrowing a public method to confidential, got %v", err)
	}
}

func TestDefaultAsStringRendersCapturedDescription(t *testing.T) {
	m := DefaultAsString("a module object (foo)")

	result, err := m.Apply(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Detail)
	}

	s, ok := result.(String)
	if !ok || string(s) != "a module object (foo)" {
		t.Fatalf("got %v, want the captured description", result)
	}
}
