// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package interp

import (
	"github.com/golangee/hopper/ast"
	"github.com/golangee/hopper/runtime"
)

// runMethod runs a plain method's body: a fresh activation parented on
// the method's lexical defining frame, part-joining, then evaluating
// the body and asserting the result (spec.md §4.4 "Part joining").
func (ip *Interpreter) runMethod(definingFrame *Frame, receiver runtime.Value, m *runtime.Method, sig *ast.Signature, body []ast.Node, parts []runtime.PartArgs) (runtime.Value, *runtime.ExceptionPacket) {
	activation := NewActivation(definingFrame, receiver, m)

	if err := ip.bindParts(activation, sig, parts); err != nil {
		return nil, err
	}

	return ip.runActivationBody(activation, sig, body)
}

// runClassBody runs a Class method's body, in both the plain-construction
// and inherits-mode cases: self is the (possibly already partially
// populated, when inheriting) child object. The activation carries no
// method context, exactly like constructObject's plain `object { }` —
// a class body is still object construction, not a method call, so a
// bare `return` inside it must raise InvalidReturn rather than be
// caught by a return continuation that isn't there (spec.md §4.4
// "return ... if a self frame is encountered before a return
// continuation, the result is InvalidReturn").
func (ip *Interpreter) runClassBody(definingFrame *Frame, child *runtime.Object, sig *ast.Signature, body []ast.Node, parts []runtime.PartArgs) (runtime.Value, *runtime.ExceptionPacket) {
	activation := NewActivation(definingFrame, child, nil)
	activation.underConstruction = true

	if err := ip.bindParts(activation, sig, parts); err != nil {
		return nil, err
	}

	rest := body
	if len(body) > 0 {
		if inh, ok := body[0].(*ast.Inherits); ok {
			if err := ip.evalInherits(activation, child, inh); err != nil {
				return nil, err
			}

			rest = body[1:]
		}
	}

	if err := ip.interpretObjectBody(activation, child, rest); err != nil {
		return nil, err
	}

	activation.underConstruction = false

	return child, nil
}

// runActivationBody evaluates a plain method's body under an already
// part-joined activation, handling the return pattern and non-local
// return uniformly (see interp/return.go — the assertion below applies
// equally whether result came from a natural fallthrough or a `return`
// several blocks deep, since runActivation's unwind recovery yields the
// exact same (value, nil) shape as a direct body result).
func (ip *Interpreter) runActivationBody(activation *Frame, sig *ast.Signature, body []ast.Node) (runtime.Value, *runtime.ExceptionPacket) {
	if sig.ReturnPattern != nil {
		rp, err := ip.eval(activation, sig.ReturnPattern)
		if err != nil {
			return nil, err
		}

		activation.returnPattern = rp
	}

	result, err := runActivation(activation, func() (runtime.Value, *runtime.ExceptionPacket) {
		return ip.evalSequential(activation, body)
	})
	if err != nil {
		return nil, err
	}

	if activation.returnPattern != nil {
		if aerr := Assert(ip, result, activation.returnPattern); aerr != nil {
			return nil, aerr
		}
	}

	return result, nil
}

// bindParts implements spec.md §4.4 "Part joining": per part, bind
// generics, splice variadics, assert and bind parameters.
func (ip *Interpreter) bindParts(activation *Frame, sig *ast.Signature, parts []runtime.PartArgs) *runtime.ExceptionPacket {
	for i, sp := range sig.Parts {
		given := parts[i]

		for gi, g := range sp.Generics {
			if gi < len(given.Generics) {
				if err := activation.Declare(g, given.Generics[gi], false, nil); err != nil {
					return err
				}
			}
		}

		params := sp.Parameters
		variadicAt := -1

		if len(params) > 0 && params[len(params)-1].IsVarArg {
			variadicAt = len(params) - 1
		}

		for pi, param := range params {
			var argValue runtime.Value

			if pi == variadicAt {
				rest := given.Arguments[pi:]
				elems := append([]runtime.Value(nil), rest...)
				argValue = runtime.NewSequence(elems)
			} else {
				argValue = given.Arguments[pi]
			}

			var pattern runtime.Value

			if param.Pattern != nil {
				pv, err := ip.eval(activation, param.Pattern)
				if err != nil {
					return err
				}

				pattern = pv
			}

			if pattern != nil {
				if aerr := Assert(ip, argValue, pattern); aerr != nil {
					return aerr
				}
			}

			if err := activation.Declare(param.Name, argValue, false, pattern); err != nil {
				return err
			}
		}
	}

	return nil
}
