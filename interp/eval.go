// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package interp

import (
	"github.com/google/uuid"

	"github.com/golangee/hopper/ast"
	"github.com/golangee/hopper/runtime"
)

// Loader resolves an import or dialect path to either a parsed-and-
// evaluated module object or a host-supplied native object (spec.md §6
// "Module loader (callback)"). Package module provides the concrete
// implementation; interp only depends on this narrow interface so the
// two packages do not form an import cycle.
type Loader interface {
	Load(requesterModulePath, name string) (runtime.Value, *runtime.ExceptionPacket)
}

// Interpreter evaluates one module's AST against a prelude object and a
// loader, producing the module's top-level object.
type Interpreter struct {
	Prelude    *runtime.Object
	Loader     Loader
	ModulePath string
	// RunID identifies this particular evaluation of ModulePath, stamped
	// onto every runtime.StackFrame it builds, so two independent
	// module.Coordinator.Module runs over the same path never have their
	// traces confused (spec.md §3 "stack-trace list").
	RunID uuid.UUID
}

// New builds an Interpreter for a single module evaluation, with a
// fresh RunID.
func New(prelude *runtime.Object, loader Loader, modulePath string) *Interpreter {
	return &Interpreter{Prelude: prelude, Loader: loader, ModulePath: modulePath, RunID: uuid.New()}
}

// eval dispatches a single expression node to its evaluation rule. Def,
// Var, Method, Class, TypeDeclaration, Import, Dialect and Inherits are
// statement-shaped and are only ever evaluated from interpretObjectBody
// or evalSequential, never reached here.
func (ip *Interpreter) eval(frame *Frame, n ast.Node) (runtime.Value, *runtime.ExceptionPacket) {
	switch v := n.(type) {
	case *ast.Identifier:
		return ip.evalIdentifier(frame, v)
	case *ast.UnqualifiedRequest:
		return ip.evalUnqualifiedRequest(frame, v)
	case *ast.QualifiedRequest:
		return ip.evalQualifiedRequest(frame, v)
	case *ast.ObjectConstructor:
		obj, err := ip.constructObject(frame, v.Body)
		if err != nil {
			return nil, err
		}

		return obj, nil
	case *ast.Block:
		return ip.evalBlockLiteral(frame, v)
	case *ast.Type:
		return ip.evalTypeLiteral(frame, v)
	case *ast.Self:
		return ip.evalSelf(frame)
	case *ast.Super:
		self, ok := frame.Self()
		if !ok {
			return nil, runtime.NewException(runtime.UndefinedValue, "'super' used outside any method")
		}

		return self, nil
	case *ast.Outer:
		outer, ok := frame.Outer()
		if !ok {
			return nil, runtime.NewException(runtime.UndefinedValue, "no enclosing object for 'outer'")
		}

		return outer, nil
	case *ast.BooleanLiteral:
		return runtime.Boolean(v.Value), nil
	case *ast.NumberLiteral:
		n, err := runtime.NewNumber(v.Raw)
		if err != nil {
			return nil, runtime.NewException(runtime.InternalError, err.Error())
		}

		return n, nil
	case *ast.StringLiteral:
		return ip.evalStringLiteral(frame, v)
	case *ast.Return:
		return ip.evalReturn(frame, v)
	default:
		return nil, runtime.NewException(runtime.InternalError, "cannot evaluate this node as an expression")
	}
}

// evalSelf is the guarded path: a bare `self` expression fails
// IncompleteObject while the nearest enclosing object is still under
// construction (spec.md §4.4 "Object construction"). Internal callers
// needing self during construction (evalInherits) are handed the object
// under construction as a parameter instead of routing through here.
func (ip *Interpreter) evalSelf(frame *Frame) (runtime.Value, *runtime.ExceptionPacket) {
	if frame.UnderConstruction() {
		return nil, runtime.NewException(runtime.IncompleteObject, "'self' referenced before its object finished constructing")
	}

	self, ok := frame.Self()
	if !ok {
		return nil, runtime.NewException(runtime.UndefinedValue, "'self' used outside any object")
	}

	return self, nil
}

// evalSequential runs body as a plain, non-hoisting statement list (the
// body of a method, a block, or `inherits`'s own caller): Def/Var bind
// a purely local name with no forward reference and no installation on
// self, consistent with spec.md's hoisting/self-installation rule
// applying to object-shaped bodies (module top, object constructor,
// class) rather than every imperative body uniformly — see DESIGN.md.
func (ip *Interpreter) evalSequential(frame *Frame, body []ast.Node) (runtime.Value, *runtime.ExceptionPacket) {
	var result runtime.Value = runtime.Done

	for _, n := range body {
		switch v := n.(type) {
		case *ast.Def:
			val, err := ip.eval(frame, v.Value)
			if err != nil {
				return nil, err
			}

			if pat, perr := ip.evalPattern(frame, v.Pattern); perr != nil {
				return nil, perr
			} else if pat != nil {
				if aerr := Assert(ip, val, pat); aerr != nil {
					return nil, aerr
				}
			}

			if derr := frame.Declare(v.Name, val, false, nil); derr != nil {
				return nil, derr
			}

			result = runtime.Done
		case *ast.Var:
			var val runtime.Value = runtime.Done

			if v.Value != nil {
				ve, err := ip.eval(frame, v.Value)
				if err != nil {
					return nil, err
				}

				val = ve
			}

			pat, perr := ip.evalPattern(frame, v.Pattern)
			if perr != nil {
				return nil, perr
			}

			if pat != nil && v.Value != nil {
				if aerr := Assert(ip, val, pat); aerr != nil {
					return nil, aerr
				}
			}

			if derr := frame.Declare(v.Name, val, true, pat); derr != nil {
				return nil, derr
			}

			result = runtime.Done
		default:
			val, err := ip.eval(frame, n)
			if err != nil {
				return nil, err
			}

			result = val
		}
	}

	return result, nil
}

// evalPattern evaluates an optional pattern expression, returning nil
// (not runtime.Unknown) when p is nil so callers can distinguish "no
// pattern written" from "Unknown written explicitly" if ever needed.
func (ip *Interpreter) evalPattern(frame *Frame, p ast.Node) (runtime.Value, *runtime.ExceptionPacket) {
	if p == nil {
		return nil, nil
	}

	return ip.eval(frame, p)
}
