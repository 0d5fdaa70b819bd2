// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

import "fmt"

// Lookup resolves uglifiedName against receiver (spec.md §4.3 "Request
// evaluation" — "lookup(receiver, pretty, isSelfContext)"). fromSelf is
// true when the request originates from inside the receiver's own
// method body (directly, or via an unqualified request), which is the
// only context confidential methods may be resolved from.
//
// Only *Object and *TypeProxy resolve natively here. The primitive
// wrappers (Boolean/Number/String) and *Block/*Type have no Methods
// table of their own in this package, and package interp calls Lookup
// directly on whatever the receiver evaluated to, with no prelude
// wrapper in between: a request against a primitive, operators
// included, always reports NoSuchMethod.
func Lookup(receiver Value, uglifiedName string, fromSelf bool) (*Method, *ExceptionPacket) {
	switch v := receiver.(type) {
	case *Object:
		return lookupObject(v, uglifiedName, fromSelf)
	case *TypeProxy:
		if t, ok := v.Resolved(); ok {
			return Lookup(t, uglifiedName, fromSelf)
		}

		return nil, NewException(InvalidType, "use of an unresolved type")
	default:
		return nil, NewException(NoSuchMethod, fmt.Sprintf("no method '%s' on %s", Pretty(uglifiedName), DescribeKind(receiver)))
	}
}

func lookupObject(o *Object, name string, fromSelf bool) (*Method, *ExceptionPacket) {
	m, ok := o.Methods[name]
	if !ok {
		return nil, NewException(NoSuchMethod, "no method '"+Pretty(name)+"'")
	}

	if m.IsConfidential && !fromSelf {
		return nil, NewException(NoSuchMethod, "method '"+Pretty(name)+"' is confidential")
	}

	return m, nil
}

// CheckArity validates parts against m's declared shape before Apply or
// Inherit runs, so a body never observes a short argument list.
func CheckArity(m *Method, parts []PartArgs) *ExceptionPacket {
	if len(parts) != len(m.Parts) {
		return NewException(InvalidRequest, fmt.Sprintf("'%s' expects %d part(s), got %d", Pretty(m.Name), len(m.Parts), len(parts)))
	}

	for i, shape := range m.Parts {
		got := parts[i]

		// Fewer generics than declared is only accepted when none at all
		// were supplied (spec.md §4.4 "Request evaluation"); a non-empty
		// but short list is still a mismatch.
		if len(got.Generics) != 0 && len(got.Generics) != shape.Generics {
			return NewException(InvalidRequest, fmt.Sprintf("'%s' part %d expects %d generic argument(s), got %d", Pretty(m.Name), i, shape.Generics, len(got.Generics)))
		}

		if shape.Variadic {
			if len(got.Arguments) < shape.Parameters-1 {
				return NewException(InvalidRequest, fmt.Sprintf("'%s' part %d expects at least %d argument(s), got %d", Pretty(m.Name), i, shape.Parameters-1, len(got.Arguments)))
			}
		} else if len(got.Arguments) != shape.Parameters {
			return NewException(InvalidRequest, fmt.Sprintf("'%s' part %d expects %d argument(s), got %d", Pretty(m.Name), i, shape.Parameters, len(got.Arguments)))
		}
	}

	return nil
}

// Apply validates arity and runs m against receiver.
func Apply(receiver Value, m *Method, parts []PartArgs) (Value, *ExceptionPacket) {
	if err := CheckArity(m, parts); err != nil {
		return nil, err
	}

	return m.Apply(receiver, parts)
}

// Inherit validates arity and runs m's inherit closure, wiring child as
// the new object under construction (spec.md §4.4 "Inheritance").
func Inherit(child *Object, m *Method, parts []PartArgs) (Value, *ExceptionPacket) {
	if m.Inherit == nil {
		return nil, NewException(InvalidMethod, "method '"+Pretty(m.Name)+"' cannot be inherited from")
	}

	if err := CheckArity(m, parts); err != nil {
		return nil, err
	}

	return m.Inherit(child, parts)
}
