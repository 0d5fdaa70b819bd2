// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package runtime holds the tagged runtime value variants of spec.md §3
// ("Runtime value"): objects, methods, blocks, types, the primitive
// wrappers, and the exception-packet error carrier, plus the pure
// method-lookup and dispatch logic of spec.md §4.3 that does not itself
// need to walk a lexical scope (that belongs to package interp).
package runtime

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Value is the common marker interface of every runtime value. It carries
// no behaviour of its own; dispatch is driven externally by Lookup/Apply
// so that *Object, *Block, *Type and the primitive wrappers can all be
// receivers without Value itself growing a god-interface.
type Value interface {
	hopperValue()
}

// Boolean is the primitive boolean wrapper.
type Boolean bool

func (Boolean) hopperValue() {}

// Number is the primitive numeric wrapper. The source interpreter used
// 64-bit floats; this one keeps arbitrary-precision decimal.Decimal
// instead (spec.md §9 "Numbers": "either choice must document the
// primitive asString format") so that string concatenation of a literal
// like 0.1 never surprises a user with float rounding. AsString renders
// the decimal's canonical (non-scientific) form.
type Number struct {
	D decimal.Decimal
}

func (Number) hopperValue() {}

// NewNumber parses a validated raw numeric lexeme (token.Kind == Number,
// already accepted by the lexer) into a Number.
func NewNumber(raw string) (Number, error) {
	// A base-prefixed lexeme ("16xFF") carries its radix before the 'x'.
	if i := strings.IndexByte(raw, 'x'); i > 0 {
		base, berr := strconv.Atoi(raw[:i])
		n, ok := new(big.Int), false

		if berr == nil && base >= 2 && base <= 36 {
			n, ok = n.SetString(raw[i+1:], base)
		}

		if !ok {
			return Number{}, fmt.Errorf("invalid number literal %q", raw)
		}

		return Number{D: decimal.NewFromBigInt(n, 0)}, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Number{}, fmt.Errorf("invalid number literal %q: %w", raw, err)
	}

	return Number{D: d}, nil
}

func (n Number) AsString() string {
	return n.D.String()
}

// String is the primitive UTF-8 string wrapper.
type String string

func (String) hopperValue() {}

// doneValue is the unit value returned by statements and methods with no
// other result.
type doneValue struct{}

func (doneValue) hopperValue() {}

// Done is the singleton unit value (spec.md §3: "Done (unit)").
var Done Value = doneValue{}

// IsDone reports whether v is the Done singleton.
func IsDone(v Value) bool {
	_, ok := v.(doneValue)

	return ok
}

// unboundValue is installed by hoisting for every Def/Var name before its
// initializer runs (spec.md §4.4 "Interpreting a body", hoisting pass:
// "install an uninitialized accessor that raises UndefinedValue when
// requested"). Reading it is what turns into UndefinedValue, or
// IncompleteObject when the read happens while the owning object is
// still under construction.
type unboundValue struct{ name string }

func (unboundValue) hopperValue() {}

// NewUnbound builds the hoisting-time placeholder for name.
func NewUnbound(name string) Value {
	return unboundValue{name: name}
}

// UnboundName reports whether v is a hoisting placeholder, returning the
// reserved name it stands in for.
func UnboundName(v Value) (string, bool) {
	u, ok := v.(unboundValue)

	return u.name, ok
}

// unknownValue is the Unknown singleton pattern: assert() against it
// always succeeds (spec.md §4.4 "Pattern assertion").
type unknownValue struct{}

func (unknownValue) hopperValue() {}

// Unknown is the universal-accept pattern singleton.
var Unknown Value = unknownValue{}

// IsUnknown reports whether v is the Unknown singleton.
func IsUnknown(v Value) bool {
	_, ok := v.(unknownValue)

	return ok
}

// DescribeKind names a value's runtime kind for diagnostics, used when no
// asString method can be dispatched (e.g. the receiver has no such
// method at all).
func DescribeKind(v Value) string {
	switch v.(type) {
	case Boolean:
		return "a boolean"
	case Number:
		return "a number"
	case String:
		return "a string"
	case doneValue:
		return "done"
	case unboundValue:
		return "an unbound reservation"
	case unknownValue:
		return "the Unknown pattern"
	case *Object:
		return "an object"
	case *Block:
		return "a block"
	case *Type:
		return "a type"
	case *TypeProxy:
		return "a type"
	case *ExceptionPacket:
		return "an exception"
	default:
		return fmt.Sprintf("%T", v)
	}
}
