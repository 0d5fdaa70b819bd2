// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

import (
	"sort"

	"github.com/google/uuid"
)

// Type is a structural pattern: a set of method names a value must
// respond to (spec.md §3 "Runtime value", §9 "Design notes" — "Type
// equality is structural over its sorted-name list"). Signatures holds
// uglified lookup keys, kept sorted so Equal is a straight slice
// comparison regardless of declaration order.
type Type struct {
	Signatures []string
}

func (*Type) hopperValue() {}

// NewType builds a Type from a set of uglified signature keys.
func NewType(names []string) *Type {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	return &Type{Signatures: sorted}
}

// Equal reports structural equality: the same sorted set of method names.
func (t *Type) Equal(other *Type) bool {
	if other == nil || len(t.Signatures) != len(other.Signatures) {
		return false
	}

	for i := range t.Signatures {
		if t.Signatures[i] != other.Signatures[i] {
			return false
		}
	}

	return true
}

// Accepts reports whether a candidate satisfies every signature this
// Type requires. responds is supplied by the caller (package interp),
// which answers "does this receiver have a public method named X" from
// an *Object's Methods map and reports false for every other value kind.
func (t *Type) Accepts(responds func(name string) bool) bool {
	for _, name := range t.Signatures {
		if !responds(name) {
			return false
		}
	}

	return true
}

// TypeProxy is the single-assignment placeholder installed for a
// `type Name = ...` declaration during hoisting, so a recursive type
// expression can refer to its own name before it is resolved (spec.md
// §9 "Design notes" — "TypeProxy single-assignment cell").
type TypeProxy struct {
	Identity   uuid.UUID
	resolved   *Type
	evaluating bool
}

func (*TypeProxy) hopperValue() {}

func NewTypeProxy() *TypeProxy {
	return &TypeProxy{Identity: uuid.New()}
}

// Become resolves the proxy exactly once; a second call is an internal
// error, since hoisting only ever evaluates a type declaration's value
// expression a single time.
func (p *TypeProxy) Become(t *Type) *ExceptionPacket {
	if p.resolved != nil {
		return NewException(InternalError, "type proxy already resolved")
	}

	p.resolved = t

	return nil
}

// Resolved returns the concrete Type once Become has run.
func (p *TypeProxy) Resolved() (*Type, bool) {
	return p.resolved, p.resolved != nil
}

// BeginEvaluation marks the proxy as under evaluation, returning
// InvalidType if it is already being evaluated (a `type A = A` style
// self-dependency, spec.md §3 "Invariants").
func (p *TypeProxy) BeginEvaluation() *ExceptionPacket {
	if p.evaluating {
		return NewException(InvalidType, "type declaration depends on itself")
	}

	p.evaluating = true

	return nil
}

// EndEvaluation clears the in-progress flag set by BeginEvaluation.
func (p *TypeProxy) EndEvaluation() {
	p.evaluating = false
}
