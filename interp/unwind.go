// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package interp

import "github.com/golangee/hopper/runtime"

// unwind is the panic payload used to implement non-local return
// (spec.md §9 "Design notes" — "Callback-to-continuation mapping": a
// `return` deep inside nested blocks must escape straight back to the
// method activation that lexically encloses it, not just its innermost
// block). target identifies the specific activation Frame the return
// names — not the Method, since a recursive call has one live Frame per
// concurrent activation of the same Method. Each activation recovers
// only the unwind aimed at its own frame and lets any other panic
// (an unwind for an outer activation, or a genuine Go panic) continue
// propagating.
type unwind struct {
	target *Frame
	value  runtime.Value
}

// runActivation invokes body under frame's activation, catching an
// unwind aimed at frame and marking it completed either way so a later
// return into the same, now-finished activation fails cleanly instead
// of panicking with no matching recoverer left on the stack.
func runActivation(frame *Frame, body func() (runtime.Value, *runtime.ExceptionPacket)) (result runtime.Value, exc *runtime.ExceptionPacket) {
	defer func() {
		frame.completed = true

		r := recover()
		if r == nil {
			return
		}

		u, ok := r.(unwind)
		if !ok || u.target != frame {
			panic(r)
		}

		result, exc = u.value, nil
	}()

	return body()
}
