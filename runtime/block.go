// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

import "github.com/golangee/hopper/ast"

// Block is a literal closure value (spec.md §3 "Runtime value", §4.3
// "Blocks"). Apply runs its body against evaluated arguments. Match is
// non-nil only when the block has exactly one parameter carrying a
// pattern, in which case it doubles as a Pattern for assert(): Match
// reports whether a candidate value satisfies that single parameter's
// pattern without actually running the block body.
type Block struct {
	Arity ast.PartArity
	Apply func(args []Value) (Value, *ExceptionPacket)
	Match func(candidate Value) (bool, *ExceptionPacket)
	Node  ast.Node
}

func (*Block) hopperValue() {}
