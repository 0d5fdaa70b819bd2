// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

import "github.com/golangee/hopper/ast"

// PartArgs is the evaluated generic and value arguments for one request or
// signature part, aligned positionally with a Method's Parts shape.
type PartArgs struct {
	Generics  []Value
	Arguments []Value
}

// ApplyFunc runs a method's body against a receiver and evaluated
// arguments. It is supplied by package interp when a Method is installed
// during hoisting (spec.md §4.4 "Method installation"); package runtime
// never evaluates an ast.Node itself, keeping the dependency one-way.
type ApplyFunc func(receiver Value, parts []PartArgs) (Value, *ExceptionPacket)

// InheritFunc runs a Class method's body in "inherits" mode: self is
// bound to child (the object under construction) rather than to a
// freshly constructed object of its own (spec.md §4.4 "Inheritance").
// nil on a Method that cannot be inherited from.
type InheritFunc func(child *Object, parts []PartArgs) (Value, *ExceptionPacket)

// Method is one named, possibly multi-part entry in an Object's method
// table (spec.md §3 "Method (runtime)").
type Method struct {
	// Name is the uglified lookup key; Pretty(Name) recovers the
	// declared, parenthesized form for diagnostics.
	Name string

	// Parts is the (generics, parameters) shape of each signature part,
	// checked against a request's actual part count before Apply runs.
	Parts []ast.PartArity

	Apply   ApplyFunc
	Inherit InheritFunc

	IsVariable     bool // installed by a Var/Def accessor rather than a method decl
	IsConfidential bool // "." private; only requestable from a self context
	IsStatic       bool // fixed reserved-name slot (self/super/outer), never overridable

	// Super is the method this one overrode, if any, so a body's "super"
	// requests can walk one step further up the inheritance chain.
	Super *Method

	Node       ast.Node // defining AST node, for stack-frame locations
	ModulePath string   // module that installed this method, "" if none
}

// hopperValue lets a hoisted Method or Class sit in a scope binding
// (interp's Frame.Declare) next to Def/Var values.
func (*Method) hopperValue() {}

// shapeCompatible reports whether an override's part shapes match the
// method being overridden one-for-one. The source language here is
// undocumented on the exact compatibility rule beyond "must still make
// sense against existing callers"; this implementation takes the strict
// reading (identical shape per part) rather than a widening rule, since
// a narrower override could silently break an existing caller.
func shapeCompatible(a, b []ast.PartArity) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
