// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

import (
	"testing"

	"github.com/golangee/hopper/ast"
)

func TestLookupRejectsConfidentialFromOutsideSelf(t *testing.T) {
	o := NewObject()

	m := plainMethod("_secret")
	m.IsConfidential = true

	if err := o.Put("_secret", m); err != nil {
		t.Fatalf("unexpected error: %s", err.Detail)
	}

	if _, err := Lookup(o, "_secret", false); err == nil || err.Kind != NoSuchMethod {
		t.Fatalf("expected NoSuchMethod from outside self, got %v", err)
	}

	if _, err := Lookup(o, "_secret", true); err != nil {
		t.Fatalf("expected a confidential method to resolve from self, got %v", err)
	}
}

func TestLookupOnPrimitiveAlwaysReportsNoSuchMethod(t *testing.T) {
	if _, err := Lookup(String("x"), "length", false); err == nil || err.Kind != NoSuchMethod {
		t.Fatalf("expected NoSuchMethod on a bare primitive, got %v", err)
	}
}

func TestCheckArityRejectsWrongPartCount(t *testing.T) {
	m := &Method{Name: "add", Parts: []ast.PartArity{{Parameters: 1}}}

	if err := CheckArity(m, []PartArgs{}); err == nil || err.Kind != InvalidRequest {
		t.Fatalf("expected InvalidRequest for a missing part, got %v", err)
	}
}

func TestCheckArityAcceptsVariadicTail(t *testing.T) {
	m := &Method{Name: "of", Parts: []ast.PartArity{{Parameters: 1, Variadic: true}}}

	if err := CheckArity(m, []PartArgs{{Arguments: []Value{String("a"), String("b"), String("c")}}}); err != nil {
		t.Fatalf("unexpected error for a variadic call above the minimum: %s", err.Detail)
	}

	if err := CheckArity(m, []PartArgs{{}}); err != nil {
		t.Fatalf("unexpected error for a variadic call at the minimum: %s", err.Detail)
	}
}

func TestCheckArityRejectsTooFewVariadicArguments(t *testing.T) {
	m := &Method{Name: "of", Parts: []ast.PartArity{{Parameters: 2, Variadic: true}}}

	if err := CheckArity(m, []PartArgs{{}}); err == nil || err.Kind != InvalidRequest {
		t.Fatalf("expected InvalidRequest below the variadic minimum, got %v", err)
	}
}

func TestApplyRunsMethodAfterArityCheck(t *testing.T) {
	o := NewObject()
	m := plainMethod("ping")

	if err := o.Put("ping", m); err != nil {
		t.Fatalf("unexpected error: %s", err.Detail)
	}

	if _, err := Apply(o, m, []PartArgs{}); err == nil || err.Kind != InvalidRequest {
		t.Fatalf("expected arity check to reject a missing part before Apply runs, got %v", err)
	}

	result, err := Apply(o, m, []PartArgs{{}})
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Detail)
	}

	if !IsDone(result) {
		t.Fatalf("got %v, want Done", result)
	}
}

func TestInheritRejectsMethodWithNoInheritClosure(t *testing.T) {
	m := plainMethod("speak")
	child := NewObject()

	if _, err := Inherit(child, m, []PartArgs{{}}); err == nil || err.Kind != InvalidMethod {
		t.Fatalf("expected InvalidMethod inheriting from a non-class method, got %v", err)
	}
}
