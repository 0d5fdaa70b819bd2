// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package interp

import (
	"strings"

	"github.com/golangee/hopper/ast"
	"github.com/golangee/hopper/runtime"
)

// interpretObjectBody runs the hoisting-then-evaluation passes of
// spec.md §4.4 "Interpreting a body" over an object-shaped body: the
// module top level, an object constructor, or a class body. frame's
// self must already be set to the object under construction.
func (ip *Interpreter) interpretObjectBody(frame *Frame, self *runtime.Object, body []ast.Node) *runtime.ExceptionPacket {
	// Pass 2: hoisting.
	for _, n := range body {
		switch v := n.(type) {
		case *ast.Method:
			if err := ip.hoistMethod(frame, self, v); err != nil {
				return err
			}
		case *ast.Class:
			if err := ip.hoistClass(frame, self, v); err != nil {
				return err
			}
		case *ast.TypeDeclaration:
			proxy := runtime.NewTypeProxy()
			if err := frame.Declare(v.Name, proxy, false, nil); err != nil {
				return err
			}
		case *ast.Def:
			if err := ip.hoistAccessor(frame, self, v.Name, false, nil); err != nil {
				return err
			}
		case *ast.Var:
			if err := ip.hoistAccessor(frame, self, v.Name, true, nil); err != nil {
				return err
			}
		}
	}

	// Pass 2.5: type resolution. Every `type` declaration's proxy must
	// become its concrete Type before any Def/Var pattern in this body
	// (evaluated in pass 3 below) can assert against it, so this runs as
	// its own step rather than inline in pass 3's per-statement loop.
	// Resolving by name (map iteration order is unspecified) is safe
	// because resolveTypeDeclaration is idempotent on an already-resolved
	// proxy and follows an alias chain to its target on demand, so the
	// end result does not depend on which name is resolved first.
	decls := map[string]*ast.TypeDeclaration{}
	byProxy := map[*runtime.TypeProxy]string{}

	for _, n := range body {
		if td, ok := n.(*ast.TypeDeclaration); ok {
			decls[td.Name] = td

			if b, ok := frame.Search(td.Name); ok {
				if proxy, ok := b.value.(*runtime.TypeProxy); ok {
					byProxy[proxy] = td.Name
				}
			}
		}
	}

	for name := range decls {
		if err := ip.resolveTypeDeclaration(frame, decls, byProxy, name); err != nil {
			return err
		}
	}

	// Pass 3: evaluation.
	for _, n := range body {
		switch v := n.(type) {
		case *ast.Method, *ast.Class, *ast.TypeDeclaration, *ast.Dialect, *ast.Import:
			continue
		case *ast.Inherits:
			return runtime.NewException(runtime.InvalidRequest, "'inherits' must be the first statement of an object body")
		case *ast.Def:
			val, err := ip.eval(frame, v.Value)
			if err != nil {
				return err
			}

			pat, perr := ip.evalPattern(frame, v.Pattern)
			if perr != nil {
				return perr
			}

			if pat != nil {
				if aerr := Assert(ip, val, pat); aerr != nil {
					return aerr
				}
			}

			if b, ok := frame.Search(v.Name); ok {
				b.value = val
			}

			if err := ip.installAccessor(self, v.Name, val, false, pat); err != nil {
				return err
			}
		case *ast.Var:
			var val runtime.Value = runtime.Done

			if v.Value != nil {
				ve, err := ip.eval(frame, v.Value)
				if err != nil {
					return err
				}

				val = ve
			}

			pat, perr := ip.evalPattern(frame, v.Pattern)
			if perr != nil {
				return perr
			}

			if pat != nil && v.Value != nil {
				if aerr := Assert(ip, val, pat); aerr != nil {
					return aerr
				}
			}

			if b, ok := frame.Search(v.Name); ok {
				b.value = val
				b.pattern = pat
			}

			if err := ip.installAccessor(self, v.Name, val, true, pat); err != nil {
				return err
			}

			ip.installSetter(self, v.Name, frame)
		default:
			if _, err := ip.eval(frame, n); err != nil {
				return err
			}
		}
	}

	if err := validateNoConfidentialOverride(self); err != nil {
		return err
	}

	if _, ok := self.Get("asString"); !ok {
		self.Methods["asString"] = runtime.DefaultAsString(defaultDescription(self))
	}

	return nil
}

// resolveTypeDeclaration evaluates the single `type` declaration named
// name to a concrete runtime.Type and Becomes it onto the TypeProxy pass
// 2 installed under that name (spec.md §4.3 "become(concrete)" runs "at
// declaration-evaluation time"). It is idempotent: a proxy that already
// holds a concrete Type (because an earlier alias resolved it first) is
// left untouched.
func (ip *Interpreter) resolveTypeDeclaration(frame *Frame, decls map[string]*ast.TypeDeclaration, byProxy map[*runtime.TypeProxy]string, name string) *runtime.ExceptionPacket {
	b, ok := frame.Search(name)
	if !ok {
		return nil
	}

	proxy, ok := b.value.(*runtime.TypeProxy)
	if !ok {
		return nil
	}

	if _, resolved := proxy.Resolved(); resolved {
		return nil
	}

	if err := proxy.BeginEvaluation(); err != nil {
		return err
	}

	val, err := ip.eval(frame, decls[name].Value)
	if err != nil {
		proxy.EndEvaluation()
		return err
	}

	concrete, terr := ip.asConcreteType(frame, decls, byProxy, val)
	if terr != nil {
		proxy.EndEvaluation()
		return terr
	}

	if err := proxy.Become(concrete); err != nil {
		proxy.EndEvaluation()
		return err
	}

	proxy.EndEvaluation()

	return nil
}

// asConcreteType unwraps val to the *runtime.Type it names, following an
// alias chain (a `type A = B` whose Value is itself another declared
// type's name) through at most one other declaration's own resolution.
// Re-entering resolveTypeDeclaration for a proxy that is still mid-
// evaluation is exactly what surfaces the self-dependency diagnostic
// (spec.md §3 invariant iv, §8 "self-dependent type"), via TypeProxy's
// own BeginEvaluation guard.
func (ip *Interpreter) asConcreteType(frame *Frame, decls map[string]*ast.TypeDeclaration, byProxy map[*runtime.TypeProxy]string, val runtime.Value) (*runtime.Type, *runtime.ExceptionPacket) {
	switch v := val.(type) {
	case *runtime.Type:
		return v, nil
	case *runtime.TypeProxy:
		if t, ok := v.Resolved(); ok {
			return t, nil
		}

		aliasName, ok := byProxy[v]
		if !ok {
			return nil, runtime.NewException(runtime.InvalidType, "use of an unresolved type")
		}

		if err := ip.resolveTypeDeclaration(frame, decls, byProxy, aliasName); err != nil {
			return nil, err
		}

		if t, ok := v.Resolved(); ok {
			return t, nil
		}

		return nil, runtime.NewException(runtime.InvalidType, "use of an unresolved type")
	default:
		return nil, runtime.NewException(runtime.InvalidType, "'type' declaration must evaluate to a type")
	}
}

func defaultDescription(o *runtime.Object) string {
	if o.ModulePath != "" {
		return "a module object (" + o.ModulePath + ")"
	}

	return "an object"
}

func validateNoConfidentialOverride(self *runtime.Object) *runtime.ExceptionPacket {
	for name, m := range self.Methods {
		if m.Super != nil && m.IsConfidential && !m.Super.IsConfidential {
			return runtime.NewException(runtime.InvalidMethod, "'"+runtime.Pretty(name)+"' cannot confidentially override a public method")
		}
	}

	return nil
}

// isConfidential resolves the spec's unspecified annotation syntax for
// confidentiality (spec.md §3 lists an `isConfidential` runtime flag and
// §7 a "confidential override of public" diagnostic, but never spells
// out the surface syntax that sets it) to a naming convention: a
// signature whose first part name starts with "_" is confidential,
// mirroring the teacher ecosystem's own exported/unexported-by-case
// convention rather than inventing a bespoke annotation grammar.
func isConfidential(sig *ast.Signature) bool {
	return len(sig.Parts) > 0 && strings.HasPrefix(sig.Parts[0].Name, "_")
}

func (ip *Interpreter) hoistMethod(frame *Frame, self *runtime.Object, node *ast.Method) *runtime.ExceptionPacket {
	key := runtime.SignatureKey(node.Signature)
	definingFrame := frame

	var m *runtime.Method
	m = &runtime.Method{
		Name:           key,
		Parts:          node.Signature.Arity(),
		Node:           node,
		ModulePath:     ip.ModulePath,
		IsConfidential: isConfidential(node.Signature),
	}
	m.Apply = func(receiver runtime.Value, parts []runtime.PartArgs) (runtime.Value, *runtime.ExceptionPacket) {
		return ip.runMethod(definingFrame, receiver, m, node.Signature, node.Body, parts)
	}

	if err := frame.Declare(key, m, false, nil); err != nil {
		return err
	}

	return self.Put(key, m)
}

func (ip *Interpreter) hoistClass(frame *Frame, self *runtime.Object, node *ast.Class) *runtime.ExceptionPacket {
	key := runtime.SignatureKey(node.Signature)
	definingFrame := frame

	var m *runtime.Method
	m = &runtime.Method{
		Name:           key,
		Parts:          node.Signature.Arity(),
		Node:           node,
		ModulePath:     ip.ModulePath,
		IsConfidential: isConfidential(node.Signature),
	}
	m.Apply = func(receiver runtime.Value, parts []runtime.PartArgs) (runtime.Value, *runtime.ExceptionPacket) {
		child := runtime.NewObject()
		child.ModulePath = ip.ModulePath

		return ip.runClassBody(definingFrame, child, node.Signature, node.Body, parts)
	}
	m.Inherit = func(child *runtime.Object, parts []runtime.PartArgs) (runtime.Value, *runtime.ExceptionPacket) {
		return ip.runClassBody(definingFrame, child, node.Signature, node.Body, parts)
	}

	if err := frame.Declare(key, m, false, nil); err != nil {
		return err
	}

	return self.Put(key, m)
}

func (ip *Interpreter) hoistAccessor(frame *Frame, self *runtime.Object, name string, mutable bool, pattern runtime.Value) *runtime.ExceptionPacket {
	if err := frame.Declare(name, runtime.NewUnbound(name), mutable, pattern); err != nil {
		return err
	}

	accessor := &runtime.Method{
		Name:       name,
		Parts:      []ast.PartArity{{}},
		IsVariable: true,
		ModulePath: ip.ModulePath,
		Apply: func(runtime.Value, []runtime.PartArgs) (runtime.Value, *runtime.ExceptionPacket) {
			return nil, runtime.NewException(runtime.UndefinedValue, "'"+name+"' read before it was initialized")
		},
	}

	return self.Put(name, accessor)
}

func (ip *Interpreter) installAccessor(self *runtime.Object, name string, value runtime.Value, mutable bool, pattern runtime.Value) *runtime.ExceptionPacket {
	accessor := &runtime.Method{
		Name:       name,
		Parts:      []ast.PartArity{{}},
		IsVariable: true,
		ModulePath: ip.ModulePath,
		Apply: func(runtime.Value, []runtime.PartArgs) (runtime.Value, *runtime.ExceptionPacket) {
			return value, nil
		},
	}

	// Bypass Put's override bookkeeping: this replaces the hoisting
	// placeholder installed under the same name, not a genuine override.
	self.Methods[name] = accessor

	return nil
}

func (ip *Interpreter) installSetter(self *runtime.Object, name string, frame *Frame) {
	setterName := name + ":="
	b, _ := frame.Search(name)

	setter := &runtime.Method{
		Name:       setterName,
		Parts:      []ast.PartArity{{Parameters: 1}},
		IsVariable: true,
		ModulePath: ip.ModulePath,
		Apply: func(receiver runtime.Value, parts []runtime.PartArgs) (runtime.Value, *runtime.ExceptionPacket) {
			newVal := parts[0].Arguments[0]

			if b != nil && b.pattern != nil {
				if err := Assert(ip, newVal, b.pattern); err != nil {
					return nil, err
				}
			}

			if b != nil {
				b.value = newVal
			}

			self.Methods[name] = &runtime.Method{
				Name: name, Parts: []ast.PartArity{{}}, IsVariable: true, ModulePath: ip.ModulePath,
				Apply: func(runtime.Value, []runtime.PartArgs) (runtime.Value, *runtime.ExceptionPacket) {
					return newVal, nil
				},
			}

			return runtime.Done, nil
		},
	}

	self.Methods[setterName] = setter
}
