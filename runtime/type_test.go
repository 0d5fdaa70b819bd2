// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

import "testing"

func TestTypeEqualIsOrderIndependent(t *testing.T) {
	a := NewType([]string{"size", "at"})
	b := NewType([]string{"at", "size"})

	if !a.Equal(b) {
		t.Fatalf("expected two types built from the same name set to be equal regardless of order")
	}
}

func TestTypeEqualRejectsDifferentSets(t *testing.T) {
	a := NewType([]string{"size"})
	b := NewType([]string{"size", "at"})

	if a.Equal(b) {
		t.Fatalf("expected types with different signature sets to be unequal")
	}
}

func TestTypeAcceptsRequiresEveryName(t *testing.T) {
	ty := NewType([]string{"size", "at"})

	has := map[string]bool{"size": true, "at": true}
	if !ty.Accepts(func(name string) bool { return has[name] }) {
		t.Fatalf("expected Accepts to succeed when every required name responds")
	}

	partial := map[string]bool{"size": true}
	if ty.Accepts(func(name string) bool { return partial[name] }) {
		t.Fatalf("expected Accepts to fail when a required name is missing")
	}
}

func TestTypeProxyResolvesOnce(t *testing.T) {
	p := NewTypeProxy()

	if _, ok := p.Resolved(); ok {
		t.Fatalf("expected an unresolved proxy to report ok=false")
	}

	want := NewType([]string{"x"})
	if err := p.Become(want); err != nil {
		t.Fatalf("unexpected error: %s", err.Detail)
	}

	got, ok := p.Resolved()
	if !ok || got != want {
		t.Fatalf("expected Resolved to return the Become'd type")
	}

	if err := p.Become(NewType(nil)); err == nil || err.Kind != InternalError {
		t.Fatalf("expected InternalError resolving an already-resolved proxy, got %v", err)
	}
}

func TestTypeProxySelfDependencyDetection(t *testing.T) {
	p := NewTypeProxy()

	if err := p.BeginEvaluation(); err != nil {
		t.Fatalf("unexpected error starting evaluation: %s", err.Detail)
	}

	if err := p.BeginEvaluation(); err == nil || err.Kind != InvalidType {
		t.Fatalf("expected InvalidType re-entering evaluation of the same proxy, got %v", err)
	}

	p.EndEvaluation()

	if err := p.BeginEvaluation(); err != nil {
		t.Fatalf("expected evaluation to be re-enterable after EndEvaluation, got %v", err)
	}
}
