// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a structural, reparsable rendition of n (spec §8 property
// 1, "Round-trip"). The output is not a byte-for-byte pretty printer: it
// only promises that reparsing it yields a structurally equal tree.
func Print(n Node) string {
	var sb strings.Builder
	printNode(&sb, n, 0)

	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
}

func printBody(sb *strings.Builder, body []Node, depth int) {
	sb.WriteString("{\n")

	for _, n := range body {
		indent(sb, depth+1)
		printNode(sb, n, depth+1)
		sb.WriteString("\n")
	}

	indent(sb, depth)
	sb.WriteString("}")
}

func printNode(sb *strings.Builder, n Node, depth int) {
	switch v := n.(type) {
	case *Module:
		if v.Dialect != nil {
			printNode(sb, v.Dialect, depth)
			sb.WriteString("\n")
		}

		for _, imp := range v.Imports {
			printNode(sb, imp, depth)
			sb.WriteString("\n")
		}

		for i, stmt := range v.Body {
			if i > 0 {
				sb.WriteString("\n")
			}

			printNode(sb, stmt, depth)
		}
	case *Dialect:
		fmt.Fprintf(sb, "dialect %s", v.Path)
	case *Import:
		fmt.Fprintf(sb, "import %s as %s", v.Path, v.Identifier)
	case *Def:
		sb.WriteString("def ")
		sb.WriteString(v.Name)
		printPattern(sb, v.Pattern)
		sb.WriteString(" = ")
		printNode(sb, v.Value, depth)
	case *Var:
		sb.WriteString("var ")
		sb.WriteString(v.Name)
		printPattern(sb, v.Pattern)

		if v.Value != nil {
			sb.WriteString(" := ")
			printNode(sb, v.Value, depth)
		}
	case *TypeDeclaration:
		sb.WriteString("type " + v.Name)

		if len(v.Generics) > 0 {
			sb.WriteString("<" + strings.Join(v.Generics, ",") + ">")
		}

		sb.WriteString(" = ")
		printNode(sb, v.Value, depth)
	case *Method:
		sb.WriteString("method ")
		printSignature(sb, v.Signature)
		sb.WriteString(" ")
		printBody(sb, v.Body, depth)
	case *Class:
		fmt.Fprintf(sb, "class %s.", v.Name)
		printSignature(sb, v.Signature)
		sb.WriteString(" ")
		printBody(sb, v.Body, depth)
	case *UnqualifiedRequest:
		printParts(sb, v.Parts)
	case *QualifiedRequest:
		// Operator requests print in operator form, "(a + b)" or "(-a)",
		// since the dotted form "a.+(b)" does not reparse.
		if op := strings.TrimPrefix(v.Parts[0].Name, "prefix"); len(v.Parts) == 1 && len(v.Parts[0].Generics) == 0 && isOperatorName(op) {
			sb.WriteString("(")

			if op != v.Parts[0].Name {
				sb.WriteString(op)
			}

			printNode(sb, v.Receiver, depth)

			for _, a := range v.Parts[0].Arguments {
				fmt.Fprintf(sb, " %s ", op)
				printNode(sb, a, depth)
			}

			sb.WriteString(")")

			return
		}

		printNode(sb, v.Receiver, depth)
		sb.WriteString(".")
		printParts(sb, v.Parts)
	case *ObjectConstructor:
		sb.WriteString("object ")
		printBody(sb, v.Body, depth)
	case *Block:
		sb.WriteString("{ ")

		for i, p := range v.Parameters {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(p.Name)
		}

		if v.HasArrow {
			sb.WriteString(" ->")
		}

		for _, stmt := range v.Body {
			sb.WriteString(" ")
			printNode(sb, stmt, depth)
		}

		sb.WriteString(" }")
	case *Type:
		sb.WriteString("type {")

		for i, sig := range v.Signatures {
			if i > 0 {
				sb.WriteString("; ")
			}

			printSignature(sb, sig)
		}

		sb.WriteString("}")
	case *Self:
		sb.WriteString("self")
	case *Super:
		sb.WriteString("super")
	case *Outer:
		sb.WriteString("outer")
	case *BooleanLiteral:
		sb.WriteString(strconv.FormatBool(v.Value))
	case *NumberLiteral:
		sb.WriteString(v.Raw)
	case *StringLiteral:
		printStringLiteral(sb, v, depth)
	case *Return:
		sb.WriteString("return")

		if v.Expression != nil {
			sb.WriteString(" ")
			printNode(sb, v.Expression, depth)
		}
	case *Inherits:
		sb.WriteString("inherits ")
		printNode(sb, v.Request, depth)
	case *Identifier:
		sb.WriteString(v.Value)
	default:
		fmt.Fprintf(sb, "<%T>", n)
	}
}

// stringEscaper re-escapes decoded string contents with the escapes the
// lexer accepts, so quotes, braces and control characters reparse as text.
var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "{", `\{`, "}", `\}`,
	"\n", `\n`, "\t", `\t`, "\r", `\r`, "\b", `\b`, "\f", `\f`, "\v", `\v`, "\x00", `\0`)

func printStringLiteral(sb *strings.Builder, v *StringLiteral, depth int) {
	sb.WriteString(`"`)

	for i, part := range v.Parts {
		if i%2 == 0 {
			sb.WriteString(stringEscaper.Replace(part.(string)))
		} else {
			sb.WriteString("{")
			printNode(sb, part.(Node), depth)
			sb.WriteString("}")
		}
	}

	sb.WriteString(`"`)
}

func printPattern(sb *strings.Builder, p Node) {
	if p == nil {
		return
	}

	sb.WriteString(": ")
	printNode(sb, p, 0)
}

// printParts renders a run of request parts directly concatenated, mirroring
// printSignature: a multi-part name like "while()do()" has no separator
// between its parts, so a request against it reads the same way. A new "."
// starts an entirely separate QualifiedRequest (see printNode).
func printParts(sb *strings.Builder, parts []*RequestPart) {
	for _, p := range parts {
		sb.WriteString(p.Name)

		if len(p.Generics) > 0 {
			sb.WriteString("<")

			for j, g := range p.Generics {
				if j > 0 {
					sb.WriteString(",")
				}

				printNode(sb, g, 0)
			}

			sb.WriteString(">")
		}

		if len(p.Arguments) > 0 || !isOperatorName(p.Name) {
			sb.WriteString("(")

			for j, a := range p.Arguments {
				if j > 0 {
					sb.WriteString(",")
				}

				printNode(sb, a, 0)
			}

			sb.WriteString(")")
		}
	}
}

func printSignature(sb *strings.Builder, s *Signature) {
	for i, p := range s.Parts {
		if i > 0 {
			sb.WriteString("")
		}

		sb.WriteString(p.Name)

		if len(p.Generics) > 0 {
			sb.WriteString("<")
			sb.WriteString(strings.Join(p.Generics, ","))
			sb.WriteString(">")
		}

		sb.WriteString("(")

		for j, param := range p.Parameters {
			if j > 0 {
				sb.WriteString(", ")
			}

			if param.IsVarArg {
				sb.WriteString("*")
			}

			sb.WriteString(param.Name)
			printPattern(sb, param.Pattern)
		}

		sb.WriteString(")")
	}

	printPattern(sb, s.ReturnPattern)
}
