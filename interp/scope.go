// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package interp walks a parsed ast.Module and evaluates it against the
// runtime value model in package runtime (spec.md §4.4 "Interpreter
// core"). Scope frames form a singly-linked chain captured by closures
// at the point a method, block or object literal is declared, so a
// method's "self"/"outer"/"super" always resolve against its *lexical*
// context rather than whoever happens to be calling it.
package interp

import "github.com/golangee/hopper/runtime"

// binding is one name's slot in a Frame: Def bindings are immutable
// after their initializer runs; Var bindings may be reassigned through
// the synthesized "name :=" setter, which re-asserts Pattern each time.
type binding struct {
	value   runtime.Value
	mutable bool
	pattern runtime.Value // optional Pattern, asserted on every (re)assignment
}

// Frame is one lexical scope: a set of names declared directly in it
// (owned), a possible self-rebinding, and a parent to search outward
// through. Object construction and method bodies rebind self; blocks
// and bare statement groups do not.
type Frame struct {
	parent  *Frame
	owned   map[string]*binding
	self    runtime.Value
	hasSelf bool
	// method is the Method whose body this activation-root frame is
	// running, so "super" can resolve relative to it. nil at frames
	// that do not start a fresh method activation (blocks, and the
	// top-level module body, which has no enclosing method).
	method *runtime.Method

	// super, once an inherits statement runs, is the snapshot of self's
	// methods taken at that point (spec.md §4.4 "Inheritance").
	super map[string]*runtime.Method

	// underConstruction is set for the lifetime of a single object
	// constructor's body evaluation (spec.md §4.4 "Object construction"):
	// while true, reading a reserved Def/Var before its initializer has
	// run, or evaluating a bare `self` outside an `inherits` statement,
	// fails IncompleteObject instead of the looser UndefinedValue.
	underConstruction bool

	// returnPattern is the evaluated return-pattern expression of the
	// method this activation is running, checked against both the
	// natural result and any non-local return's value.
	returnPattern runtime.Value

	// completed marks an activation-root frame once its body has
	// produced a result (naturally or via non-local return), so a
	// later `return` that still names this frame (a block captured the
	// activation and is invoked again after the method already
	// finished) raises InvalidReturn instead of reaching for a
	// continuation that is no longer live on the Go call stack.
	completed bool
}

// NewFrame starts a fresh lexical child of parent with no self-rebinding
// (a plain statement-group or block frame).
func NewFrame(parent *Frame) *Frame {
	return &Frame{parent: parent, owned: map[string]*binding{}}
}

// NewActivation starts a fresh method (or inherits) activation: a new
// self binding and method context, parented on the method's own
// *lexically captured* defining frame rather than the caller's frame.
func NewActivation(definingFrame *Frame, self runtime.Value, method *runtime.Method) *Frame {
	return &Frame{
		parent:  definingFrame,
		owned:   map[string]*binding{},
		self:    self,
		hasSelf: true,
		method:  method,
	}
}

// Declare installs a fresh binding in f's own scope, returning
// Redefinition if f already owns a binding of this name (spec.md §4.4:
// a body's own hoisting pass rejects a duplicate Def/Var/Method/Class
// name within the same body).
func (f *Frame) Declare(name string, value runtime.Value, mutable bool, pattern runtime.Value) *runtime.ExceptionPacket {
	if _, ok := f.owned[name]; ok {
		return runtime.NewException(runtime.Redefinition, "'"+name+"' is already declared in this scope")
	}

	f.owned[name] = &binding{value: value, mutable: mutable, pattern: pattern}

	return nil
}

// Search walks f and its ancestors for name, returning the owning
// binding itself so callers can reassign through it (the Var setter).
func (f *Frame) Search(name string) (*binding, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if b, ok := cur.owned[name]; ok {
			return b, true
		}
	}

	return nil, false
}

// SearchUnqualified implements the combined walk spec.md §4.4 calls
// `search(name)`: at each frame outward, first check its own bindings,
// then — if the frame rebinds self — probe self's method table, before
// continuing further out. Exactly one of (value, method) is meaningful
// when found is true; method comes with the self value it was found on
// as its receiver.
func (f *Frame) SearchUnqualified(key string) (value runtime.Value, method *runtime.Method, receiver runtime.Value, found bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if b, ok := cur.owned[key]; ok {
			// A hoisted Method/Class binding is dispatched, not read, with
			// the self of the frame that hoisted it as its receiver.
			if m, isMethod := b.value.(*runtime.Method); isMethod && cur.hasSelf {
				return nil, m, cur.self, true
			}

			return b.value, nil, nil, true
		}

		if cur.hasSelf {
			if obj, ok := cur.self.(*runtime.Object); ok {
				if m, ok2 := obj.Methods[key]; ok2 {
					return nil, m, obj, true
				}
			}
		}
	}

	return nil, nil, nil, false
}

// selfFrame returns the nearest ancestor (including f) that rebinds self.
func (f *Frame) selfFrame() *Frame {
	for cur := f; cur != nil; cur = cur.parent {
		if cur.hasSelf {
			return cur
		}
	}

	return nil
}

// Self returns the self of the nearest frame that rebinds it: a method
// or class activation, an object construction (including the module
// object's own), or Run's root frame, whose self is the prelude or
// dialect object. ok is false only when no frame in the chain rebinds
// self.
func (f *Frame) Self() (runtime.Value, bool) {
	sf := f.selfFrame()
	if sf == nil {
		return nil, false
	}

	return sf.self, true
}

// Outer returns the self of the object lexically enclosing the one f's
// nearest self-frame belongs to (spec.md §9 "Self references in
// inheritance" / glossary "outer").
func (f *Frame) Outer() (runtime.Value, bool) {
	sf := f.selfFrame()
	if sf == nil || sf.parent == nil {
		return nil, false
	}

	outerFrame := sf.parent.selfFrame()
	if outerFrame == nil {
		return nil, false
	}

	return outerFrame.self, true
}

// CurrentMethod returns the Method whose body the nearest self-frame is
// running, or nil if there is none (top-level module body, or a self
// rebind that is not a method activation).
func (f *Frame) CurrentMethod() *runtime.Method {
	sf := f.selfFrame()
	if sf == nil {
		return nil
	}

	return sf.method
}

// UnderConstruction reports whether the nearest self-frame's object is
// still mid-construction.
func (f *Frame) UnderConstruction() bool {
	sf := f.selfFrame()

	return sf != nil && sf.underConstruction
}

// SuperMethod looks up name in the nearest self-frame's super snapshot.
func (f *Frame) SuperMethod(name string) (*runtime.Method, bool) {
	sf := f.selfFrame()
	if sf == nil || sf.super == nil {
		return nil, false
	}

	m, ok := sf.super[name]

	return m, ok
}

// SetSuper installs the super snapshot on the nearest self-frame, once
// an `inherits` statement has run.
func (f *Frame) SetSuper(snapshot map[string]*runtime.Method) {
	sf := f.selfFrame()
	if sf != nil {
		sf.super = snapshot
	}
}
