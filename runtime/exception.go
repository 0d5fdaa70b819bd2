// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/golangee/hopper/token"
)

// ExceptionKind tags the taxonomy of errors spec.md §7 enumerates.
type ExceptionKind string

const (
	NoSuchMethod           ExceptionKind = "NoSuchMethod"
	UndefinedValue         ExceptionKind = "UndefinedValue"
	TypeMismatch           ExceptionKind = "TypeMismatch"
	InvalidReturn          ExceptionKind = "InvalidReturn"
	Redefinition           ExceptionKind = "Redefinition"
	IncompleteObject       ExceptionKind = "IncompleteObject"
	InvalidMethod          ExceptionKind = "InvalidMethod"
	InvalidRequest         ExceptionKind = "InvalidRequest"
	UnresolvedRequest      ExceptionKind = "UnresolvedRequest"
	UnresolvedSuperRequest ExceptionKind = "UnresolvedSuperRequest"
	UnresolvedModule       ExceptionKind = "UnresolvedModule"
	InvalidType            ExceptionKind = "InvalidType"
	CheckerFailure         ExceptionKind = "CheckerFailure"
	InternalError          ExceptionKind = "InternalError"
)

// StackFrame records one call-site in an ExceptionPacket's trace.
type StackFrame struct {
	MethodName string // pretty name
	ModulePath string
	// RunID distinguishes two independently loaded modules that happen
	// to share ModulePath (a dialect or import reloaded by the host
	// after the first evaluation already produced a trace referencing
	// the same path), so a printed trace never conflates frames from two
	// separate module.Coordinator.Module runs.
	RunID    uuid.UUID
	Location token.Pos
}

func (f StackFrame) String() string {
	if f.ModulePath == "" {
		return fmt.Sprintf("%s at %s", f.MethodName, f.Location)
	}

	if f.RunID == uuid.Nil {
		return fmt.Sprintf("%s (%s) at %s", f.MethodName, f.ModulePath, f.Location)
	}

	return fmt.Sprintf("%s (%s#%s) at %s", f.MethodName, f.ModulePath, f.RunID.String()[:8], f.Location)
}

// ExceptionPacket is the raised-error runtime value (spec.md §3 "Runtime
// value", §7 "Error handling"). It carries an inner object so a catching
// method can inspect application-specific detail, plus the unwound stack
// trace built up one frame per WithFrame call as the packet propagates.
type ExceptionPacket struct {
	Kind   ExceptionKind
	Detail string
	Inner  Value // arbitrary payload object; nil if none
	Stack  []StackFrame
}

func (*ExceptionPacket) hopperValue() {}

func (e *ExceptionPacket) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// NewException builds a fresh, frame-less exception packet.
func NewException(kind ExceptionKind, detail string) *ExceptionPacket {
	return &ExceptionPacket{Kind: kind, Detail: detail}
}

// WithInner attaches a payload object and returns the same packet, for
// chaining at the raise site.
func (e *ExceptionPacket) WithInner(inner Value) *ExceptionPacket {
	e.Inner = inner

	return e
}

// WithFrame returns a copy of e with f appended to its trace. Copying
// keeps a packet shared across goroutine-free cooperative scheduling
// from one caller's frame bleeding into another's view of the same
// underlying error.
func (e *ExceptionPacket) WithFrame(f StackFrame) *ExceptionPacket {
	cp := *e
	cp.Stack = append(append([]StackFrame{}, e.Stack...), f)

	return &cp
}
