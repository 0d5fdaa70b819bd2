// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package interp

import (
	"github.com/golangee/hopper/ast"
	"github.com/golangee/hopper/runtime"
)

// Run evaluates a parsed module: resolving its dialect (replacing the
// default prelude and running the dialect's check, if any), binding its
// imports, then interpreting its body as a synthetic object constructor
// (spec.md §4.4 step 1, §4.5 "Module coordinator").
func (ip *Interpreter) Run(mod *ast.Module) (*runtime.Object, *runtime.ExceptionPacket) {
	prelude := ip.Prelude

	if mod.Dialect != nil {
		val, err := ip.Loader.Load(ip.ModulePath, mod.Dialect.Path)
		if err != nil {
			return nil, err
		}

		dialectObj, ok := val.(*runtime.Object)
		if !ok {
			return nil, runtime.NewException(runtime.InvalidRequest, "dialect '"+mod.Dialect.Path+"' did not resolve to an object")
		}

		if checkMethod, ok := dialectObj.Get("check"); ok {
			list := nodeListValue(mod.Body)

			if _, cerr := ip.callChecked(checkMethod, dialectObj, []runtime.PartArgs{{Arguments: []runtime.Value{list}}}); cerr != nil {
				tagged := cerr
				if tagged.Kind != runtime.CheckerFailure {
					tagged = runtime.NewException(runtime.CheckerFailure, cerr.Detail).WithInner(cerr.Inner)
				}

				return nil, tagged.WithFrame(runtime.StackFrame{MethodName: "check", ModulePath: mod.Dialect.Path, RunID: ip.RunID})
			}
		}

		prelude = dialectObj
	}

	root := NewActivation(nil, prelude, nil)
	bodyFrame := NewFrame(root)

	for _, imp := range mod.Imports {
		val, err := ip.Loader.Load(ip.ModulePath, imp.Path)
		if err != nil {
			return nil, err
		}

		if derr := bodyFrame.Declare(imp.Identifier, val, false, nil); derr != nil {
			return nil, derr
		}
	}

	return ip.constructObject(bodyFrame, mod.Body)
}
