// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package runtime

import (
	"strings"

	"github.com/golangee/hopper/ast"
)

// Uglify joins a signature's or request's part names into the flat key
// used as a map index in Object.Methods (spec.md glossary "uglify /
// pretty"): "while()do()" uglifies to "while_do"; a single part (named
// or a bare operator like "+") uglifies to itself, since joining a
// one-element slice introduces no separator.
func Uglify(partNames []string) string {
	return strings.Join(partNames, "_")
}

// SignatureKey computes the uglified lookup key for a declared signature.
func SignatureKey(sig *ast.Signature) string {
	names := make([]string, len(sig.Parts))
	for i, p := range sig.Parts {
		names[i] = p.Name
	}

	return Uglify(names)
}

// RequestKey computes the uglified lookup key for a request's parts.
func RequestKey(parts []*ast.RequestPart) string {
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = p.Name
	}

	return Uglify(names)
}

// Pretty renders an uglified key back into its declared, parenthesized
// form for diagnostics (spec.md §8 property 5: pretty(uglify(name)) ==
// name). A bare operator or keyword name (self, super, outer, true,
// false, done) never contains "_" and round-trips as itself; anything
// else is split on "_" and each segment gets its "()" back, matching
// ast.Signature.Name's multi-part rendering.
func Pretty(uglified string) string {
	if uglified == "" || isOperatorName(uglified) {
		return uglified
	}

	// A Var setter's key is built as name+":=" with no separating space
	// (parser/expr.go's assignment sugar), but the glossary's pretty form
	// preserves a space around ":=" — this is the one place the two
	// representations diverge, so splice it back in here rather than in
	// the key itself.
	if strings.HasSuffix(uglified, ":=") {
		return strings.TrimSuffix(uglified, ":=") + " :="
	}

	parts := strings.Split(uglified, "_")
	if len(parts) == 1 {
		return parts[0]
	}

	var sb strings.Builder

	for _, p := range parts {
		sb.WriteString(p)
		sb.WriteString("()")
	}

	return sb.String()
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
