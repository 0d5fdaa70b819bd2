// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

import (
	"testing"

	"github.com/google/uuid"
)

func TestWithFrameDoesNotMutateTheOriginalPacket(t *testing.T) {
	original := NewException(NoSuchMethod, "no method 'x'")

	tagged := original.WithFrame(StackFrame{MethodName: "x"})

	if len(original.Stack) != 0 {
		t.Fatalf("expected the original packet's Stack to stay empty, got %d frames", len(original.Stack))
	}

	if len(tagged.Stack) != 1 {
		t.Fatalf("expected the tagged copy to carry one frame, got %d", len(tagged.Stack))
	}

	twice := tagged.WithFrame(StackFrame{MethodName: "y"})

	if len(tagged.Stack) != 1 {
		t.Fatalf("expected an earlier WithFrame result to stay untouched by a later one")
	}

	if len(twice.Stack) != 2 {
		t.Fatalf("expected the trace to accumulate across successive WithFrame calls, got %d", len(twice.Stack))
	}
}

func TestStackFrameStringVariesWithModulePathAndRunID(t *testing.T) {
	bare := StackFrame{MethodName: "speak"}
	if bare.String() == "" {
		t.Fatalf("expected a non-empty rendering")
	}

	withModule := StackFrame{MethodName: "speak", ModulePath: "animals"}
	if withModule.String() == bare.String() {
		t.Fatalf("expected a module path to change the rendering")
	}

	withRun := StackFrame{MethodName: "speak", ModulePath: "animals", RunID: uuid.New()}
	if withRun.String() == withModule.String() {
		t.Fatalf("expected a non-nil RunID to change the rendering")
	}
}

func TestExceptionPacketErrorIncludesKindAndDetail(t *testing.T) {
	e := NewException(TypeMismatch, "expected a Number")

	got := e.Error()
	if got != "TypeMismatch: expected a Number" {
		t.Fatalf("got %q", got)
	}
}
