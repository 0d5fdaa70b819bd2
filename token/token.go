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

import "strconv"

// Kind discriminates the token variants of spec §3 "Token".
type Kind int

const (
	Invalid Kind = iota
	Identifier
	Keyword
	Symbol
	Punctuation
	Number
	String
	Newline
	EndOfInput
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Keyword:
		return "keyword"
	case Symbol:
		return "symbol"
	case Punctuation:
		return "punctuation"
	case Number:
		return "number"
	case String:
		return "string"
	case Newline:
		return "newline"
	case EndOfInput:
		return "end of input"
	default:
		return "invalid"
	}
}

// Keywords is the reserved-word set; an Identifier whose Value is a member
// is re-tagged Keyword at construction time (spec §3 "Token").
var Keywords = map[string]bool{
	"dialect":  true,
	"import":   true,
	"as":       true,
	"def":      true,
	"var":      true,
	"type":     true,
	"method":   true,
	"class":    true,
	"object":   true,
	"block":    true,
	"self":     true,
	"super":    true,
	"outer":    true,
	"true":     true,
	"false":    true,
	"return":   true,
	"inherits": true,
	"prefix":   true,
	"is":       true,
}

// A Token is one lexical unit of source text; it is a tagged variant over
// the Kind constants above. Not every field is meaningful for every Kind:
//
//	Identifier/Keyword: Value
//	Symbol/Punctuation:  Value, Spaced
//	Number:              Value (raw lexical form)
//	String:              Value (decoded contents), Interpolated
//	Newline:             Indent
type Token struct {
	Range
	Kind Kind
	// Value is the token's textual payload: the identifier/keyword/operator
	// text, the number's raw lexical form, or the string segment's decoded
	// contents.
	Value string
	// Spaced distinguishes "a<b" (unspaced, tried by the parser as a
	// generic opener) from "a < b" (spaced, always a binary operator) for
	// Symbol tokens, and similarly disambiguates Punctuation.
	Spaced bool
	// Interpolated is set on a String token that was cut short by an
	// unescaped '{': the parser must consume an expression and a closing
	// '}' and then resume lexing the string (spec §4.1).
	Interpolated bool
	// Indent is the number of leading spaces before the first non-blank
	// character of the line that follows a Newline token.
	Indent int
}

// IsKeyword reports whether the token is the reserved word s.
func (t Token) IsKeyword(s string) bool {
	return t.Kind == Keyword && t.Value == s
}

// IsSymbol reports whether the token is the operator text s.
func (t Token) IsSymbol(s string) bool {
	return t.Kind == Symbol && t.Value == s
}

// IsPunctuation reports whether the token is the punctuation text s.
func (t Token) IsPunctuation(s string) bool {
	return t.Kind == Punctuation && t.Value == s
}

// String returns a human-readable, printable name for the token, used in
// parse error messages ("unexpected %s").
func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return "identifier '" + t.Value + "'"
	case Keyword:
		return "keyword '" + t.Value + "'"
	case Symbol:
		return "operator '" + t.Value + "'"
	case Punctuation:
		return "'" + t.Value + "'"
	case Number:
		return "number " + t.Value
	case String:
		return strconv.Quote(t.Value)
	case Newline:
		return "newline"
	case EndOfInput:
		return "end of input"
	default:
		return "invalid token"
	}
}
