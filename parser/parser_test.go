// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"strings"
	"testing"

	"github.com/golangee/hopper/ast"
)

func TestParseTopLevelDef(t *testing.T) {
	mod, err := Parse("test", strings.NewReader("def x = 1\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(mod.Body) != 1 {
		t.Fatalf("expected one top-level node, got %d", len(mod.Body))
	}

	def, ok := mod.Body[0].(*ast.Def)
	if !ok {
		t.Fatalf("expected a *ast.Def, got %T", mod.Body[0])
	}

	if def.Name != "x" {
		t.Fatalf("got name %q, want %q", def.Name, "x")
	}
}

func TestParseImportAndDialect(t *testing.T) {
	mod, err := Parse("test", strings.NewReader("dialect lang/core\nimport animals/dog as dog\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if mod.Dialect == nil || mod.Dialect.Path != "lang/core" {
		t.Fatalf("got dialect %+v, want path lang/core", mod.Dialect)
	}

	if len(mod.Imports) != 1 || mod.Imports[0].Path != "animals/dog" || mod.Imports[0].Identifier != "dog" {
		t.Fatalf("got imports %+v", mod.Imports)
	}
}

func TestParseMethodWithExplicitZeroArgParens(t *testing.T) {
	mod, err := Parse("test", strings.NewReader("method size() {\n  return 0\n}\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(mod.Body) != 1 {
		t.Fatalf("expected one top-level node, got %d", len(mod.Body))
	}

	m, ok := mod.Body[0].(*ast.Method)
	if !ok {
		t.Fatalf("expected a *ast.Method, got %T", mod.Body[0])
	}

	if len(m.Signature.Parts) != 1 || m.Signature.Parts[0].Name != "size" {
		t.Fatalf("got signature %+v", m.Signature)
	}
}

func TestParseClassWithInherits(t *testing.T) {
	mod, err := Parse("test", strings.NewReader(`
class Animal() {
  def sound = "..."
}

class Dog() {
  inherits Animal()
  def sound = "Woof"
}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(mod.Body) != 2 {
		t.Fatalf("expected two top-level classes, got %d", len(mod.Body))
	}

	dog, ok := mod.Body[1].(*ast.Class)
	if !ok {
		t.Fatalf("expected a *ast.Class, got %T", mod.Body[1])
	}

	if len(dog.Body) == 0 {
		t.Fatalf("expected Dog's body to carry at least the inherits statement")
	}

	if _, ok := dog.Body[0].(*ast.Inherits); !ok {
		t.Fatalf("expected the first statement of Dog's body to be *ast.Inherits, got %T", dog.Body[0])
	}
}

func TestParseVarAssignmentSugar(t *testing.T) {
	mod, err := Parse("test", strings.NewReader(`
method counter() {
  var n := 1
  n := 2
  return n
}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	m, ok := mod.Body[0].(*ast.Method)
	if !ok {
		t.Fatalf("expected a *ast.Method, got %T", mod.Body[0])
	}

	if len(m.Body) != 3 {
		t.Fatalf("expected 3 statements (var, assignment, return), got %d", len(m.Body))
	}

	if _, ok := m.Body[0].(*ast.Var); !ok {
		t.Fatalf("expected the first statement to be *ast.Var, got %T", m.Body[0])
	}
}

func TestParseRejectsUnexpectedToken(t *testing.T) {
	if _, err := Parse("test", strings.NewReader("def = 1\n")); err == nil {
		t.Fatalf("expected an error for a def with no name")
	}
}

func TestParseBlockLiteralWithArrowParameters(t *testing.T) {
	mod, err := Parse("test", strings.NewReader("def b = { v -> v }\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	def, ok := mod.Body[0].(*ast.Def)
	if !ok {
		t.Fatalf("expected a *ast.Def, got %T", mod.Body[0])
	}

	block, ok := def.Value.(*ast.Block)
	if !ok {
		t.Fatalf("expected a *ast.Block, got %T", def.Value)
	}

	if !block.HasArrow || len(block.Parameters) != 1 || block.Parameters[0].Name != "v" {
		t.Fatalf("got block %+v", block)
	}
}
