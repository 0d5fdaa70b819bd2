// Copyright 2021 Torben Schinke
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ast holds the tagged AST node variants described in spec §3.
// Every node embeds token.Range (promoted as the exported field "Range")
// so it satisfies token.Node, and nodes are immutable once the parser
// returns them.
package ast

import "github.com/golangee/hopper/token"

// Node is the common interface of every declaration and expression node.
type Node = token.Node

// Module is the root of a parsed file: an optional dialect directive,
// zero or more imports, and the top-level object body (spec §4.5).
type Module struct {
	token.Range
	Dialect *Dialect
	Imports []*Import
	Body    []Node
}

// Dialect is the "dialect path" directive (spec §3 "Declarations").
type Dialect struct {
	token.Range
	Path string
}

// Import binds a module path to a local identifier.
type Import struct {
	token.Range
	Path       string
	Identifier string
}

// Def is an immutable binding, installed via hoisting before evaluation
// (spec §4.4 "Interpreting a body").
type Def struct {
	token.Range
	Name    string
	Pattern Node // optional type-pattern expression, nil if absent
	Value   Node
}

// Var is a mutable binding; evaluating it also installs a "name :=" setter.
type Var struct {
	token.Range
	Name    string
	Pattern Node
	Value   Node // nil if declared without an initializer
}

// TypeDeclaration binds name to an expression that must evaluate to a
// Pattern (spec §3 "Invariants (AST)").
type TypeDeclaration struct {
	token.Range
	Name     string
	Generics []string
	Value    Node
}

// Method declares a multi-part method on the enclosing object.
type Method struct {
	token.Range
	Signature *Signature
	Body      []Node
}

// Class is a Method whose body constructs and returns an object, installed
// with an "inherit" closure so other objects may inherit from it (spec §4.3).
type Class struct {
	token.Range
	Name      string
	Signature *Signature
	Body      []Node
}

// UnqualifiedRequest is a self-or-lexically-resolved method request.
type UnqualifiedRequest struct {
	token.Range
	Parts []*RequestPart
}

// QualifiedRequest is a request against an explicit receiver expression.
type QualifiedRequest struct {
	token.Range
	Receiver Node
	Parts    []*RequestPart
}

// ObjectConstructor builds a fresh object from a body (spec §4.4
// "Object construction").
type ObjectConstructor struct {
	token.Range
	Body []Node
}

// Block is a literal closure; HasArrow is true when parameters were given
// and the header was terminated by "->" (spec §3 "Invariants (AST)").
type Block struct {
	token.Range
	Parameters []*Parameter
	HasArrow   bool
	Body       []Node
}

// Type is a structural type literal: a set of method signatures.
type Type struct {
	token.Range
	Signatures []*Signature
}

// Self, Super and Outer are the three receiver-relative pseudo-expressions.
type Self struct{ token.Range }
type Super struct{ token.Range }
type Outer struct{ token.Range }

// BooleanLiteral, NumberLiteral and StringLiteral are literal expressions.
// StringLiteral.Parts alternates string segments and spliced expressions
// when Interpolated is true: Parts[i] for even i is a string segment
// (Go string), for odd i is an expression Node.
type BooleanLiteral struct {
	token.Range
	Value bool
}

type NumberLiteral struct {
	token.Range
	Raw string // validated raw lexical form, see runtime.Number
}

type StringLiteral struct {
	token.Range
	Interpolated bool
	Parts        []interface{} // string | Node, alternating, starting with string
}

// Return is a non-local return; Expression is nil for a bare "return".
type Return struct {
	token.Range
	Expression Node
}

// Inherits is the first statement of an object body that names the
// method to inherit from (spec §4.4 "Inheritance").
type Inherits struct {
	token.Range
	Request Node
}

// Signature is one method name, either a single operator/unary part or a
// sequence of named, parameterized parts (spec §3 "Supporting").
type Signature struct {
	token.Range
	Parts         []*SignaturePart
	ReturnPattern Node // optional
}

// SignaturePart is one segment of a multi-part method name.
type SignaturePart struct {
	token.Range
	Name       string
	Generics   []string
	Parameters []*Parameter
}

// Parameter is one formal parameter of a signature part.
type Parameter struct {
	token.Range
	Name     string
	Pattern  Node // optional
	IsVarArg bool
}

// RequestPart is one segment of a request expression, mirroring SignaturePart.
type RequestPart struct {
	token.Range
	Name      string
	Generics  []Node
	Arguments []Node
}

// Identifier is a bare name reference, tagged as an operator name when it
// was parsed from a symbol token rather than a word.
type Identifier struct {
	token.Range
	Value      string
	IsOperator bool
}

var (
	_ Node = (*Module)(nil)
	_ Node = (*Dialect)(nil)
	_ Node = (*Import)(nil)
	_ Node = (*Def)(nil)
	_ Node = (*Var)(nil)
	_ Node = (*TypeDeclaration)(nil)
	_ Node = (*Method)(nil)
	_ Node = (*Class)(nil)
	_ Node = (*UnqualifiedRequest)(nil)
	_ Node = (*QualifiedRequest)(nil)
	_ Node = (*ObjectConstructor)(nil)
	_ Node = (*Block)(nil)
	_ Node = (*Type)(nil)
	_ Node = (*Self)(nil)
	_ Node = (*Super)(nil)
	_ Node = (*Outer)(nil)
	_ Node = (*BooleanLiteral)(nil)
	_ Node = (*NumberLiteral)(nil)
	_ Node = (*StringLiteral)(nil)
	_ Node = (*Return)(nil)
	_ Node = (*Inherits)(nil)
	_ Node = (*Signature)(nil)
	_ Node = (*SignaturePart)(nil)
	_ Node = (*Parameter)(nil)
	_ Node = (*RequestPart)(nil)
	_ Node = (*Identifier)(nil)
)
