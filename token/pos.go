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

package token

import "strconv"

// Node is implemented by every token and every AST node: it exposes the
// source location the node was parsed from. Locations are never compared
// for identity, only used for error reporting.
type Node interface {
	Begin() Pos
	End() Pos
}

// A Pos describes a resolved position within a module's source text.
type Pos struct {
	// File contains the module path this position belongs to.
	File string
	// Line denotes the one-based line number in the denoted File.
	Line int
	// Col denotes the one-based column number, counted in runes.
	Col int
}

// String returns the content in the "file:line:col" format.
func (p Pos) String() string {
	return p.File + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Range is a begin/end pair, embedded by every token and AST node.
type Range struct {
	From Pos
	To   Pos
}

func (r Range) Begin() Pos {
	return r.From
}

func (r Range) End() Pos {
	return r.To
}

type defaultNode struct {
	begin, end Pos
}

func (d defaultNode) Begin() Pos {
	return d.begin
}

func (d defaultNode) End() Pos {
	return d.end
}

// NewNode builds a throwaway Node for diagnostics that do not have an
// actual token or AST node at hand yet, e.g. a lexer error.
func NewNode(begin, end Pos) Node {
	return defaultNode{begin, end}
}
