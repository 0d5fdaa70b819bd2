// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package interp

import (
	"github.com/golangee/hopper/ast"
	"github.com/golangee/hopper/runtime"
)

// constructObject implements spec.md §4.4 "Object construction":
// `object { body }` creates a fresh Object, pushes a self-rebinding
// frame flagged underConstruction, interprets the body there, then
// clears the flag.
func (ip *Interpreter) constructObject(parent *Frame, body []ast.Node) (*runtime.Object, *runtime.ExceptionPacket) {
	obj := runtime.NewObject()
	obj.ModulePath = ip.ModulePath

	frame := NewActivation(parent, obj, nil)
	frame.underConstruction = true

	rest := body

	if len(body) > 0 {
		if inh, ok := body[0].(*ast.Inherits); ok {
			if err := ip.evalInherits(frame, obj, inh); err != nil {
				return nil, err
			}

			rest = body[1:]
		}
	}

	if err := ip.interpretObjectBody(frame, obj, rest); err != nil {
		return nil, err
	}

	frame.underConstruction = false

	return obj, nil
}

// evalInherits implements spec.md §4.4 "Inheritance": evaluate the
// named request in inheriting mode so its `inherit` closure populates
// self directly, then snapshot self's method table as `super` before
// any of this body's own declarations run.
func (ip *Interpreter) evalInherits(frame *Frame, self *runtime.Object, node *ast.Inherits) *runtime.ExceptionPacket {
	var (
		method *runtime.Method
		parts  []runtime.PartArgs
		err    *runtime.ExceptionPacket
	)

	switch req := node.Request.(type) {
	case *ast.UnqualifiedRequest:
		key := runtime.RequestKey(req.Parts)

		_, m, _, found := frame.parent.SearchUnqualified(key)
		if !found {
			return runtime.NewException(runtime.UnresolvedRequest, "no method '"+runtime.Pretty(key)+"' to inherit from")
		}

		method = m

		parts, err = ip.evalPartArgs(frame.parent, req.Parts)
		if err != nil {
			return err
		}
	case *ast.QualifiedRequest:
		key := runtime.RequestKey(req.Parts)

		recv, rerr := ip.eval(frame.parent, req.Receiver)
		if rerr != nil {
			return rerr
		}

		m, lerr := runtime.Lookup(recv, key, false)
		if lerr != nil {
			return lerr
		}

		method = m

		parts, err = ip.evalPartArgs(frame.parent, req.Parts)
		if err != nil {
			return err
		}
	default:
		return runtime.NewException(runtime.InvalidRequest, "'inherits' requires a method request")
	}

	if _, ierr := runtime.Inherit(self, method, parts); ierr != nil {
		return ierr
	}

	snapshot := make(map[string]*runtime.Method, len(self.Methods))
	for k, v := range self.Methods {
		snapshot[k] = v
	}

	frame.SetSuper(snapshot)

	return nil
}
