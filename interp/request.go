// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package interp

import (
	"strings"

	"github.com/golangee/hopper/ast"
	"github.com/golangee/hopper/runtime"
	"github.com/golangee/hopper/token"
)

// evalIdentifier resolves a bare name with no parentheses and no
// argument (spec.md §4.2 "Request parsing": a name with nothing
// following it parses as a plain Identifier rather than a zero-part
// UnqualifiedRequest). It shares the same `search(name)` resolution as
// evalUnqualifiedRequest — the two AST shapes converge on one lookup
// key because a zero-arg method's uglified name is just its bare part
// name, identical to the identifier's own Value.
func (ip *Interpreter) evalIdentifier(frame *Frame, id *ast.Identifier) (runtime.Value, *runtime.ExceptionPacket) {
	return ip.resolveUnqualified(frame, id.Value, nil)
}

// evalUnqualifiedRequest resolves and dispatches a bare request (spec.md
// §4.4 "Request evaluation", unqualified case).
func (ip *Interpreter) evalUnqualifiedRequest(frame *Frame, req *ast.UnqualifiedRequest) (runtime.Value, *runtime.ExceptionPacket) {
	key := runtime.RequestKey(req.Parts)

	return ip.resolveUnqualified(frame, key, req.Parts)
}

// resolveUnqualified is the shared body of evalIdentifier and
// evalUnqualifiedRequest: search outward for key, then either dispatch a
// found method, report an incomplete/undefined read of a placeholder
// binding, or return the bound value as-is.
func (ip *Interpreter) resolveUnqualified(frame *Frame, key string, reqParts []*ast.RequestPart) (runtime.Value, *runtime.ExceptionPacket) {
	value, method, receiver, found := frame.SearchUnqualified(key)
	if !found {
		// "name := value" against a local Var (one with no setter method
		// on self) writes the binding directly, re-asserting its pattern.
		if base := strings.TrimSuffix(key, ":="); base != key && len(reqParts) == 1 && len(reqParts[0].Arguments) == 1 {
			if b, ok := frame.Search(base); ok && b.mutable {
				newVal, err := ip.eval(frame, reqParts[0].Arguments[0])
				if err != nil {
					return nil, err
				}

				if b.pattern != nil {
					if err := Assert(ip, newVal, b.pattern); err != nil {
						return nil, err
					}
				}

				b.value = newVal

				return runtime.Done, nil
			}
		}

		return nil, unresolvedRequestError(frame, key)
	}

	if method != nil {
		if reqParts == nil {
			return ip.callChecked(method, receiver, []runtime.PartArgs{{}})
		}

		parts, err := ip.evalPartArgs(frame, reqParts)
		if err != nil {
			return nil, err
		}

		return ip.callChecked(method, receiver, parts)
	}

	if name, ok := runtime.UnboundName(value); ok {
		if frame.UnderConstruction() {
			return nil, runtime.NewException(runtime.IncompleteObject, "'"+name+"' read before its object finished constructing")
		}

		return nil, runtime.NewException(runtime.UndefinedValue, "'"+name+"' was declared but never initialized")
	}

	return value, nil
}

func unresolvedRequestError(frame *Frame, key string) *runtime.ExceptionPacket {
	if strings.HasSuffix(key, ":=") {
		base := strings.TrimSuffix(key, ":=")
		if _, _, _, ok := frame.SearchUnqualified(base); ok {
			return runtime.NewException(runtime.UnresolvedRequest, "cannot assign: '"+base+"' is not a mutable binding")
		}

		return runtime.NewException(runtime.UnresolvedRequest, "cannot assign to undeclared name '"+base+"'")
	}

	return runtime.NewException(runtime.UnresolvedRequest, "no unqualified request resolves '"+runtime.Pretty(key)+"'")
}

// evalQualifiedRequest resolves and dispatches a request against an
// explicit receiver, Super, or Outer (spec.md §4.4 "Request evaluation",
// qualified case).
func (ip *Interpreter) evalQualifiedRequest(frame *Frame, req *ast.QualifiedRequest) (runtime.Value, *runtime.ExceptionPacket) {
	key := runtime.RequestKey(req.Parts)

	if _, isSuper := req.Receiver.(*ast.Super); isSuper {
		m, ok := frame.SuperMethod(key)
		if !ok {
			return nil, runtime.NewException(runtime.UnresolvedSuperRequest, "no super method '"+runtime.Pretty(key)+"'")
		}

		receiver, _ := frame.Self()

		parts, err := ip.evalPartArgs(frame, req.Parts)
		if err != nil {
			return nil, err
		}

		return ip.callChecked(m, receiver, parts)
	}

	if _, isOuter := req.Receiver.(*ast.Outer); isOuter {
		outer, ok := frame.Outer()
		if !ok {
			return nil, runtime.NewException(runtime.UndefinedValue, "no enclosing object for 'outer'")
		}

		m, err := runtime.Lookup(outer, key, true)
		if err != nil {
			return nil, err
		}

		parts, perr := ip.evalPartArgs(frame, req.Parts)
		if perr != nil {
			return nil, perr
		}

		return ip.callChecked(m, outer, parts)
	}

	receiver, rerr := ip.eval(frame, req.Receiver)
	if rerr != nil {
		return nil, rerr
	}

	fromSelf := false
	if self, ok := frame.Self(); ok {
		fromSelf = sameValue(self, receiver)
	}

	m, lerr := runtime.Lookup(receiver, key, fromSelf)
	if lerr != nil {
		return nil, lerr
	}

	parts, perr := ip.evalPartArgs(frame, req.Parts)
	if perr != nil {
		return nil, perr
	}

	return ip.callChecked(m, receiver, parts)
}

func sameValue(a, b runtime.Value) bool {
	ao, aok := a.(*runtime.Object)
	bo, bok := b.(*runtime.Object)

	return aok && bok && ao == bo
}

// callChecked validates arity and dispatches through runtime.Apply,
// tagging the resulting exception (if any) with a stack frame.
func (ip *Interpreter) callChecked(m *runtime.Method, receiver runtime.Value, parts []runtime.PartArgs) (runtime.Value, *runtime.ExceptionPacket) {
	result, err := runtime.Apply(receiver, m, parts)
	if err != nil {
		return nil, err.WithFrame(runtime.StackFrame{MethodName: runtime.Pretty(m.Name), ModulePath: m.ModulePath, RunID: ip.RunID, Location: locationOf(m.Node)})
	}

	return result, nil
}

func locationOf(n ast.Node) token.Pos {
	if n == nil {
		return token.Pos{}
	}

	return n.Begin()
}

// evalPartArgs evaluates every part's generic and value arguments, left
// to right, generics before values within a part (spec.md §5 "Ordering
// guarantees").
func (ip *Interpreter) evalPartArgs(frame *Frame, reqParts []*ast.RequestPart) ([]runtime.PartArgs, *runtime.ExceptionPacket) {
	out := make([]runtime.PartArgs, len(reqParts))

	for i, rp := range reqParts {
		generics := make([]runtime.Value, len(rp.Generics))

		for j, g := range rp.Generics {
			v, err := ip.eval(frame, g)
			if err != nil {
				return nil, err
			}

			generics[j] = v
		}

		args := make([]runtime.Value, len(rp.Arguments))

		for j, a := range rp.Arguments {
			v, err := ip.eval(frame, a)
			if err != nil {
				return nil, err
			}

			args[j] = v
		}

		out[i] = runtime.PartArgs{Generics: generics, Arguments: args}
	}

	return out, nil
}
