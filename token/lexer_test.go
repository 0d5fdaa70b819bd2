// Copyright 2021 Torben Schinke
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token

import (
	"strings"
	"testing"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()

	lex := NewLexer("test", strings.NewReader(src))

	var toks []Token

	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("lex: %v", err)
		}

		toks = append(toks, tok)

		if tok.Kind == EndOfInput {
			return toks
		}
	}
}

func TestLexerTagsReservedWordsAsKeyword(t *testing.T) {
	toks := lexAll(t, "method def")

	if toks[0].Kind != Keyword || toks[0].Value != "method" {
		t.Fatalf("got %+v, want Keyword 'method'", toks[0])
	}

	if toks[1].Kind != Keyword || toks[1].Value != "def" {
		t.Fatalf("got %+v, want Keyword 'def'", toks[1])
	}
}

func TestLexerPlainIdentifierIsNotKeyword(t *testing.T) {
	toks := lexAll(t, "greeting")

	if toks[0].Kind != Identifier || toks[0].Value != "greeting" {
		t.Fatalf("got %+v, want Identifier 'greeting'", toks[0])
	}
}

func TestLexerNumberLiteral(t *testing.T) {
	toks := lexAll(t, "12.34")

	if toks[0].Kind != Number || toks[0].Value != "12.34" {
		t.Fatalf("got %+v, want Number '12.34'", toks[0])
	}
}

func TestLexerStringLiteral(t *testing.T) {
	toks := lexAll(t, `"hello, world"`)

	if toks[0].Kind != String || toks[0].Value != "hello, world" {
		t.Fatalf("got %+v, want String 'hello, world'", toks[0])
	}
}

func TestLexerNewlineCarriesIndent(t *testing.T) {
	toks := lexAll(t, "a\n  b")

	var newline *Token

	for i := range toks {
		if toks[i].Kind == Newline {
			newline = &toks[i]

			break
		}
	}

	if newline == nil {
		t.Fatalf("expected a Newline token between the two lines")
	}

	if newline.Indent != 2 {
		t.Fatalf("got indent %d, want 2", newline.Indent)
	}
}
