// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package interp

import (
	"strconv"
	"strings"

	"github.com/golangee/hopper/ast"
	"github.com/golangee/hopper/runtime"
)

// evalBlockLiteral builds a runtime.Block closing over frame, the
// block's definition site (spec.md §4.3 "Blocks": "Blocks capture the
// scope of their definition site").
func (ip *Interpreter) evalBlockLiteral(frame *Frame, node *ast.Block) (runtime.Value, *runtime.ExceptionPacket) {
	definingFrame := frame

	variadicAt := -1
	if n := len(node.Parameters); n > 0 && node.Parameters[n-1].IsVarArg {
		variadicAt = n - 1
	}

	b := &runtime.Block{
		Arity: ast.PartArity{
			Parameters: len(node.Parameters),
			Variadic:   variadicAt >= 0,
		},
		Node: node,
	}

	b.Apply = func(args []runtime.Value) (runtime.Value, *runtime.ExceptionPacket) {
		bf := NewFrame(definingFrame)

		for pi, param := range node.Parameters {
			var argValue runtime.Value

			if pi == variadicAt {
				argValue = runtime.NewSequence(append([]runtime.Value(nil), args[pi:]...))
			} else if pi < len(args) {
				argValue = args[pi]
			} else {
				argValue = runtime.Done
			}

			var pattern runtime.Value

			if param.Pattern != nil {
				pv, err := ip.eval(bf, param.Pattern)
				if err != nil {
					return nil, err
				}

				pattern = pv
			}

			if pattern != nil {
				if aerr := Assert(ip, argValue, pattern); aerr != nil {
					return nil, aerr
				}
			}

			if err := bf.Declare(param.Name, argValue, false, pattern); err != nil {
				return nil, err
			}
		}

		return ip.evalSequential(bf, node.Body)
	}

	if len(node.Parameters) == 1 && node.Parameters[0].Pattern != nil {
		param := node.Parameters[0]

		b.Match = func(candidate runtime.Value) (bool, *runtime.ExceptionPacket) {
			pv, err := ip.eval(definingFrame, param.Pattern)
			if err != nil {
				return false, err
			}

			if aerr := Assert(ip, candidate, pv); aerr != nil {
				return false, nil
			}

			return true, nil
		}
	}

	return b, nil
}

// evalTypeLiteral builds a structural runtime.Type from a type literal's
// signature list; duplicate-name rejection already happened in the
// parser (parser/expr.go's parseTypeLiteral).
func (ip *Interpreter) evalTypeLiteral(frame *Frame, node *ast.Type) (runtime.Value, *runtime.ExceptionPacket) {
	names := make([]string, len(node.Signatures))
	for i, sig := range node.Signatures {
		names[i] = runtime.SignatureKey(sig)
	}

	return runtime.NewType(names), nil
}

// evalStringLiteral splices interpolated expressions, converting each
// to a string via asString (spec.md glossary "Interpolation":
// `"x={1+1}y"` becomes `"x=" ++ (1+1).asString ++ "y"`).
func (ip *Interpreter) evalStringLiteral(frame *Frame, node *ast.StringLiteral) (runtime.Value, *runtime.ExceptionPacket) {
	if !node.Interpolated {
		var sb strings.Builder

		for i, part := range node.Parts {
			if i%2 == 0 {
				sb.WriteString(part.(string))
			}
		}

		return runtime.String(sb.String()), nil
	}

	var sb strings.Builder

	for i, part := range node.Parts {
		if i%2 == 0 {
			sb.WriteString(part.(string))

			continue
		}

		v, err := ip.eval(frame, part.(ast.Node))
		if err != nil {
			return nil, err
		}

		s, serr := ip.stringify(frame, v)
		if serr != nil {
			return nil, serr
		}

		sb.WriteString(s)
	}

	return runtime.String(sb.String()), nil
}

// stringify renders v via its asString method, short-circuiting for the
// primitive wrappers which have no Methods table of their own.
func (ip *Interpreter) stringify(frame *Frame, v runtime.Value) (string, *runtime.ExceptionPacket) {
	switch t := v.(type) {
	case runtime.Boolean:
		return strconv.FormatBool(bool(t)), nil
	case runtime.Number:
		return t.AsString(), nil
	case runtime.String:
		return string(t), nil
	default:
		fromSelf := false
		if self, ok := frame.Self(); ok {
			fromSelf = sameValue(self, v)
		}

		m, lerr := runtime.Lookup(v, "asString", fromSelf)
		if lerr != nil {
			return "", lerr
		}

		result, aerr := runtime.Apply(v, m, []runtime.PartArgs{{}})
		if aerr != nil {
			return "", aerr
		}

		s, ok := result.(runtime.String)
		if !ok {
			return "", runtime.NewException(runtime.TypeMismatch, "asString must return a string")
		}

		return string(s), nil
	}
}
