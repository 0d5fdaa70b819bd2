// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

import "github.com/golangee/hopper/ast"

// Object is a mutable bag of methods, keyed by uglified name (spec.md §3
// "Runtime value": "Object (a mutable map from uglified method name to
// Method, plus a default asString)"). Construction, hoisting and
// inheritance wiring all live in package interp; Object itself only
// owns the table and the override-validation rule for Put.
type Object struct {
	Methods map[string]*Method

	// ModulePath is non-empty when this object is a module's top-level
	// self, so a stack frame can name the module a method came from.
	ModulePath string
}

func NewObject() *Object {
	return &Object{Methods: map[string]*Method{}}
}

func (*Object) hopperValue() {}

// Get looks up a method by its already-uglified name, without any
// confidentiality or arity checking (see Lookup for the checked path).
func (o *Object) Get(name string) (*Method, bool) {
	m, ok := o.Methods[name]

	return m, ok
}

// Put installs m under name, validating it against any existing entry
// of the same name (an override, per spec.md §4.4 "Method installation
// and override"). A same-name entry that is static or a variable
// accessor can never be overridden; an override must keep the same part
// shape; and a public method can never be narrowed to confidential by
// an override, since that would silently break existing callers that
// request it from outside self.
func (o *Object) Put(name string, m *Method) *ExceptionPacket {
	if existing, ok := o.Methods[name]; ok {
		if existing.IsStatic {
			return NewException(InvalidMethod, "cannot override the reserved method '"+Pretty(name)+"'")
		}

		if existing.IsVariable != m.IsVariable {
			return NewException(InvalidMethod, "cannot override accessor '"+Pretty(name)+"' with a method, or vice versa")
		}

		if !shapeCompatible(existing.Parts, m.Parts) {
			return NewException(InvalidMethod, "override of '"+Pretty(name)+"' has an incompatible parameter shape")
		}

		if !existing.IsConfidential && m.IsConfidential {
			return NewException(InvalidMethod, "cannot make public method '"+Pretty(name)+"' confidential in an override")
		}

		m.Super = existing
	}

	o.Methods[name] = m

	return nil
}

// DefaultAsString builds the synthesized "asString" method installed on
// every object that declares no override of its own (spec.md §4.4
// "Interpreting a body", third pass: "if no custom asString was
// installed, synthesize one"). The synthesized body needs no access to
// the interpreter: it only renders static data captured at install time.
func DefaultAsString(description string) *Method {
	text := description

	return &Method{
		Name:  "asString",
		Parts: []ast.PartArity{{}},
		Apply: func(Value, []PartArgs) (Value, *ExceptionPacket) {
			return String(text), nil
		},
	}
}
