// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

// Sequence is the minimal "list value" spec.md §4.4 "Part joining"
// requires for splicing a variadic parameter's trailing arguments. The
// prelude's own richer list object (with do/map/at and the rest of its
// protocol) is explicitly peripheral to the core (spec.md §1); Sequence
// exists only so a variadic parameter has a value to bind to, and a
// prelude is free to wrap or ignore it.
type Sequence struct {
	Elements []Value
}

func (*Sequence) hopperValue() {}

func NewSequence(elements []Value) *Sequence {
	return &Sequence{Elements: elements}
}
