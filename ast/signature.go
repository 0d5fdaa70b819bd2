// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

import "strings"

// Name builds the pretty, parenthesized method name for a signature, e.g.
// a Signature with parts "while" (no params) and "do" (one param) builds
// "while()do()" (spec §4.3 "Methods", glossary "Part / signature part").
func (s *Signature) Name() string {
	if len(s.Parts) == 1 && s.Parts[0].IsOperatorLike() {
		return s.Parts[0].Name
	}

	var sb strings.Builder

	for _, p := range s.Parts {
		sb.WriteString(p.Name)
		sb.WriteByte('(')

		for i, param := range p.Parameters {
			if i > 0 {
				sb.WriteByte(',')
			}

			if param.IsVarArg {
				sb.WriteByte('*')
			}
		}

		sb.WriteByte(')')
	}

	return sb.String()
}

// IsOperatorLike reports whether this part is a single unparameterized
// part or a symbolic operator name, in which case a Signature made of just
// this part does not get the "name()name()" treatment.
func (p *SignaturePart) IsOperatorLike() bool {
	return len(p.Parameters) == 0 || isOperatorName(p.Name)
}

func isOperatorName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' {
			return false
		}
	}

	return true
}

// Arity returns the (generics, parameters) shape of each part, mirroring
// runtime.Method's part-shape list (spec §3 "Method (runtime)").
func (s *Signature) Arity() []PartArity {
	out := make([]PartArity, len(s.Parts))

	for i, p := range s.Parts {
		out[i] = PartArity{
			Generics:   len(p.Generics),
			Parameters: len(p.Parameters),
			Variadic:   len(p.Parameters) > 0 && p.Parameters[len(p.Parameters)-1].IsVarArg,
		}
	}

	return out
}

// PartArity is the parameter-count shape of one signature part.
type PartArity struct {
	Generics   int
	Parameters int
	// Variadic is true when the part's shape is "at least Parameters-1".
	Variadic bool
}
