// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package interp

import "github.com/golangee/hopper/runtime"

// Assert implements spec.md §4.4 "Pattern assertion": Unknown always
// succeeds; a Type checks structural acceptance; a Block with a single
// patterned parameter delegates to its Match; an *Object is treated as a
// user-defined Pattern and sent `assert(value)`; any other value kind is
// rejected with InvalidRequest.
func Assert(ip *Interpreter, value runtime.Value, pattern runtime.Value) *runtime.ExceptionPacket {
	if runtime.IsUnknown(pattern) {
		return nil
	}

	switch p := pattern.(type) {
	case *runtime.Type:
		if !p.Accepts(func(name string) bool { return responds(value, name) }) {
			return runtime.NewException(runtime.TypeMismatch, "value does not satisfy the required type").WithInner(value)
		}

		return nil
	case *runtime.TypeProxy:
		resolved, ok := p.Resolved()
		if !ok {
			return runtime.NewException(runtime.InvalidType, "use of an unresolved type in an assertion")
		}

		return Assert(ip, value, resolved)
	case *runtime.Block:
		if p.Match == nil {
			return runtime.NewException(runtime.InvalidRequest, "block has no single patterned parameter and cannot act as a pattern")
		}

		ok, err := p.Match(value)
		if err != nil {
			return err
		}

		if !ok {
			return runtime.NewException(runtime.TypeMismatch, "value did not match the block pattern").WithInner(value)
		}

		return nil
	case *runtime.Object:
		m, lerr := runtime.Lookup(p, "assert", false)
		if lerr != nil {
			return runtime.NewException(runtime.TypeMismatch, "value is not a recognized pattern").WithInner(value)
		}

		_, aerr := runtime.Apply(p, m, []runtime.PartArgs{{Arguments: []runtime.Value{value}}})

		return aerr
	default:
		return runtime.NewException(runtime.InvalidRequest, "not a usable pattern: "+runtime.DescribeKind(pattern))
	}
}

// responds reports whether v has a public method named name, used by
// Type.Accepts for structural type checking.
func responds(v runtime.Value, name string) bool {
	obj, ok := v.(*runtime.Object)
	if !ok {
		return false
	}

	m, ok := obj.Methods[name]

	return ok && !m.IsConfidential
}
