// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package module

import (
	"errors"
	"strings"
	"sync"

	"github.com/golangee/hopper/interp"
	"github.com/golangee/hopper/parser"
	"github.com/golangee/hopper/runtime"
)

// Resolver is the filesystem/native-bundle probing strategy spec.md §6
// deliberately excludes from the core ("the caller responsible for
// probing filesystem extensions... lives OUTSIDE the core"). A
// Coordinator consults it on every Load; the cache is keyed by the
// resolved path, so a repeated name is resolved again but its source is
// not evaluated again.
type Resolver interface {
	Resolve(requesterPath, name string) (Resolved, error)
}

// Resolved is what a Resolver hands back for one name: either Source
// text to parse and evaluate, or a host-supplied Native object that
// already satisfies the object protocol (spec.md §4.5, §6).
type Resolved struct {
	Path   string
	Source string
	Native runtime.Value
}

// EvalError wraps a semantic/dynamic failure that crossed the
// parse/evaluate boundary inside Module. spec.md §7 treats an
// ExceptionPacket as a runtime *value*, not a Go error; EvalError
// exists only so the coordinator's Go-facing API (Module, Load) can
// still return a plain `error` while a caller can recover the original
// packet via errors.As. runtime.ExceptionPacket already implements
// Error() itself, so unlike most error wrappers this one is a thin
// label carrying the offending module path, not a new message format.
type EvalError struct {
	Path   string
	Packet *runtime.ExceptionPacket
}

func (e *EvalError) Error() string { return e.Path + ": " + e.Packet.Error() }
func (e *EvalError) Unwrap() error { return e.Packet }

// Coordinator implements spec.md §4.5's `module(path, sourceOrNodes)`:
// it owns the per-path result cache and the default prelude every
// freshly loaded module starts from, and itself satisfies interp.Loader
// so nested imports route back through the same cache rather than each
// spawning an independent one.
type Coordinator struct {
	Prelude  *runtime.Object
	Resolver Resolver

	mu    sync.Mutex
	cache map[string]*runtime.Object
}

// NewCoordinator builds a Coordinator with an empty cache.
func NewCoordinator(prelude *runtime.Object, resolver Resolver) *Coordinator {
	return &Coordinator{
		Prelude:  prelude,
		Resolver: resolver,
		cache:    map[string]*runtime.Object{},
	}
}

// Load implements interp.Loader: resolve name, then either hand back a
// native object directly or route through Module so repeated imports of
// the same normalized path are only ever evaluated once.
func (c *Coordinator) Load(requesterModulePath, name string) (runtime.Value, *runtime.ExceptionPacket) {
	resolved, err := c.Resolver.Resolve(requesterModulePath, name)
	if err != nil {
		return nil, runtime.NewException(runtime.UnresolvedModule, name+": "+err.Error())
	}

	if resolved.Native != nil {
		return resolved.Native, nil
	}

	obj, merr := c.Module(resolved.Path, resolved.Source)
	if merr == nil {
		return obj, nil
	}

	var ee *EvalError
	if errors.As(merr, &ee) {
		return nil, ee.Packet
	}

	// Parse failures (*token.PosError) and anything else unexpected
	// still need to surface as *this* import failing to resolve, per
	// spec.md §6: "On failure, [the loader] raises UnresolvedModule with
	// the original path."
	return nil, runtime.NewException(runtime.UnresolvedModule, name+": "+merr.Error())
}

// Module is spec.md §4.5's coordinator function: parse (if source is
// given and the path is not already cached), evaluate against a fresh
// per-module interp.Interpreter rooted at the shared prelude, cache the
// result by normalized path, and return it. A second call with the same
// normalized path returns the cached Object without re-parsing or
// re-evaluating, even if source differs (a reload needs a new
// Coordinator, matching spec.md §1's "no module cache shared across
// independent evaluators" — the cache is scoped to one Coordinator, not
// global).
func (c *Coordinator) Module(path, source string) (*runtime.Object, error) {
	norm := NormalizePath(path)

	if obj, ok := c.cached(norm); ok {
		return obj, nil
	}

	mod, perr := parser.Parse(norm, strings.NewReader(source))
	if perr != nil {
		return nil, perr
	}

	ip := interp.New(c.Prelude, c, norm)

	obj, eerr := ip.Run(mod)
	if eerr != nil {
		return nil, &EvalError{Path: norm, Packet: eerr}
	}

	c.store(norm, obj)

	return obj, nil
}

func (c *Coordinator) cached(path string) (*runtime.Object, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	obj, ok := c.cache[path]

	return obj, ok
}

func (c *Coordinator) store(path string, obj *runtime.Object) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[path] = obj
}
