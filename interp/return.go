// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package interp

import (
	"github.com/golangee/hopper/ast"
	"github.com/golangee/hopper/runtime"
)

// evalReturn implements spec.md §4.4 "Non-local return": walk out to
// the nearest method activation and unwind straight to it, regardless
// of how many blocks lie in between.
func (ip *Interpreter) evalReturn(frame *Frame, node *ast.Return) (runtime.Value, *runtime.ExceptionPacket) {
	var val runtime.Value = runtime.Done

	if node.Expression != nil {
		v, err := ip.eval(frame, node.Expression)
		if err != nil {
			return nil, err
		}

		val = v
	}

	target := frame.selfFrame()
	if target == nil || target.method == nil {
		return nil, runtime.NewException(runtime.InvalidReturn, "return used outside any method")
	}

	if target.completed {
		return nil, runtime.NewException(runtime.InvalidReturn, "return into a method activation that already completed")
	}

	panic(unwind{target: target, value: val})
}
