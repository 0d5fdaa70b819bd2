// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package interp

import (
	"github.com/shopspring/decimal"

	"github.com/golangee/hopper/ast"
	"github.com/golangee/hopper/runtime"
)

// nodeListValue wraps a module's top-level body nodes as a runtime
// object exposing "size" and "at", the minimal surface a dialect's
// `check` method needs to walk a module's declarations (spec.md §4.5
// "dialect ... is invoked with the list of the module's top-level
// declarations"). Each node is rendered to a source-like description
// rather than exposing the AST itself, since no dialect in this corpus
// needs more than name/shape reflection over declarations.
func nodeListValue(nodes []ast.Node) runtime.Value {
	descs := make([]string, len(nodes))
	for i, n := range nodes {
		descs[i] = describeNode(n)
	}

	obj := runtime.NewObject()

	obj.Methods["size"] = &runtime.Method{
		Name:  "size",
		Parts: []ast.PartArity{{}},
		Apply: func(runtime.Value, []runtime.PartArgs) (runtime.Value, *runtime.ExceptionPacket) {
			return runtime.Number{D: decimal.NewFromInt(int64(len(descs)))}, nil
		},
	}

	obj.Methods["at"] = &runtime.Method{
		Name:  "at",
		Parts: []ast.PartArity{{Parameters: 1}},
		Apply: func(_ runtime.Value, parts []runtime.PartArgs) (runtime.Value, *runtime.ExceptionPacket) {
			n, ok := parts[0].Arguments[0].(runtime.Number)
			if !ok {
				return nil, runtime.NewException(runtime.TypeMismatch, "at() expects a number index")
			}

			idx := int(n.D.IntPart())
			if idx < 0 || idx >= len(descs) {
				return nil, runtime.NewException(runtime.InvalidRequest, "index out of range")
			}

			return runtime.String(descs[idx]), nil
		},
	}

	return obj
}

// describeNode gives a dialect checker a readable label for a top-level
// declaration without exposing the concrete AST type across packages.
func describeNode(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Def:
		return "def " + v.Name
	case *ast.Var:
		return "var " + v.Name
	case *ast.Method:
		return "method " + runtime.SignatureKey(v.Signature)
	case *ast.Class:
		return "class " + runtime.SignatureKey(v.Signature)
	case *ast.Inherits:
		return "inherits"
	default:
		return "expr"
	}
}
