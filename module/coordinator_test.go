// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package module

import (
	"errors"
	"testing"

	"github.com/golangee/hopper/runtime"
)

// fakeResolver resolves every requested name to a fixed table entry, or
// fails if the name is absent, mirroring the narrow contract spec.md §6
// describes for a loader's filesystem/native-bundle probing step.
type fakeResolver struct {
	entries map[string]Resolved
	calls   int
}

func (r *fakeResolver) Resolve(_ string, name string) (Resolved, error) {
	r.calls++

	e, ok := r.entries[name]
	if !ok {
		return Resolved{}, errors.New("no such module: " + name)
	}

	return e, nil
}

func TestCoordinatorCachesByNormalizedPath(t *testing.T) {
	resolver := &fakeResolver{entries: map[string]Resolved{
		"greeting": {Path: "greeting", Source: "def x = 1\n"},
	}}

	c := NewCoordinator(runtime.NewObject(), resolver)

	first, err := c.Load("main", "greeting")
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}

	second, err := c.Load("main", "greeting")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}

	if first != second {
		t.Fatalf("expected the cached module object to be returned on repeat import, got two distinct objects")
	}
}

func TestCoordinatorNativeModuleBypassesParsing(t *testing.T) {
	native := runtime.NewObject()
	resolver := &fakeResolver{entries: map[string]Resolved{
		"host/native": {Path: "host/native", Native: native},
	}}

	c := NewCoordinator(runtime.NewObject(), resolver)

	got, err := c.Load("main", "host/native")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got != runtime.Value(native) {
		t.Fatalf("expected the native object to be returned verbatim")
	}
}

func TestCoordinatorUnresolvedImportRaisesUnresolvedModule(t *testing.T) {
	resolver := &fakeResolver{entries: map[string]Resolved{}}
	c := NewCoordinator(runtime.NewObject(), resolver)

	_, err := c.Load("main", "missing")
	if err == nil {
		t.Fatalf("expected an error")
	}

	if err.Kind != runtime.UnresolvedModule {
		t.Fatalf("got kind %s, want %s", err.Kind, runtime.UnresolvedModule)
	}
}

func TestCoordinatorEvalErrorKindIsPreserved(t *testing.T) {
	resolver := &fakeResolver{entries: map[string]Resolved{
		"broken": {Path: "broken", Source: "def x = y\n"},
	}}

	c := NewCoordinator(runtime.NewObject(), resolver)

	_, err := c.Load("main", "broken")
	if err == nil {
		t.Fatalf("expected an error")
	}

	if err.Kind != runtime.UnresolvedRequest {
		t.Fatalf("got kind %s, want %s (the evaluator's own failure kind should survive, not be demoted to UnresolvedModule)", err.Kind, runtime.UnresolvedRequest)
	}
}

func TestCoordinatorModuleParsesAndEvaluates(t *testing.T) {
	c := NewCoordinator(runtime.NewObject(), &fakeResolver{entries: map[string]Resolved{}})

	obj, err := c.Module("greeting", "def x = 1\n")
	if err != nil {
		t.Fatalf("Module: %v", err)
	}

	if _, ok := obj.Get("x"); !ok {
		t.Fatalf("expected the module object to expose a reader for 'x'")
	}
}
