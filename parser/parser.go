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

// Package parser implements the recursive-descent parser of spec §4.2: a
// single-token-lookahead parser with explicit attempt/backtrack, building
// the ast package's node tree from a token.Lexer.
package parser

import (
	"fmt"
	"io"

	"github.com/golangee/hopper/ast"
	"github.com/golangee/hopper/token"
)

// Parser turns a token stream into an ast.Module.
type Parser struct {
	file string
	lex  *token.Lexer

	// toks is the raw, append-only token buffer backing lookahead and
	// backtracking: a checkpoint is just an index into it.
	toks []token.Token
	cur  int

	// indents is the stack of required statement-separator indents for
	// each currently open "{"-delimited body (spec §4.2 "Newline is
	// meaningful only when...").
	indents []int

	// strict disables block literals and ":=" request sugar inside type
	// patterns and return-type positions (spec §4.2 "Strict context").
	strict bool
}

// Parse parses a complete module from r, attributing positions to file.
func Parse(file string, r io.Reader) (*ast.Module, error) {
	p := &Parser{
		file:    file,
		lex:     token.NewLexer(file, r),
		indents: []int{0},
	}

	return p.parseModule()
}

// --- token buffer -----------------------------------------------------

func (p *Parser) ensure(n int) error {
	for len(p.toks) <= n {
		tok, err := p.lex.Next()
		if err != nil {
			return err
		}

		p.toks = append(p.toks, tok)

		if tok.Kind == token.EndOfInput {
			// Pad so further ensure() calls are satisfied without re-reading.
			for len(p.toks) <= n {
				p.toks = append(p.toks, tok)
			}
		}
	}

	return nil
}

// rawPeekAt returns the raw (unfiltered) token at cur+offset.
func (p *Parser) rawPeekAt(offset int) token.Token {
	if err := p.ensure(p.cur + offset); err != nil {
		return token.Token{Kind: token.EndOfInput}
	}

	return p.toks[p.cur+offset]
}

// blockIndent is the indent required of a statement-separating newline in
// the innermost currently-open body.
func (p *Parser) blockIndent() int {
	return p.indents[len(p.indents)-1]
}

// significant reports whether the raw Newline token at index i in p.toks
// is a statement separator rather than insignificant continuation
// whitespace (spec §4.2).
func (p *Parser) significant(i int) bool {
	tok := p.toks[i]
	if tok.Kind != token.Newline {
		return true
	}

	next := token.Token{Kind: token.EndOfInput}
	if i+1 < len(p.toks) {
		next = p.toks[i+1]
	}

	if next.IsPunctuation("}") {
		return true
	}

	return tok.Indent == p.blockIndent()
}

// sync advances cur past every insignificant Newline.
func (p *Parser) sync() {
	for {
		if err := p.ensure(p.cur); err != nil {
			return
		}

		if p.toks[p.cur].Kind != token.Newline {
			return
		}

		if p.significant(p.cur) {
			return
		}

		p.cur++
	}
}

// peek returns the next significant token without consuming it.
func (p *Parser) peek() token.Token {
	p.sync()

	return p.rawPeekAt(0)
}

// peek2 returns the token after the next significant one.
func (p *Parser) peek2() token.Token {
	p.sync()

	if err := p.ensure(p.cur + 1); err != nil {
		return token.Token{Kind: token.EndOfInput}
	}

	next := p.cur + 1

	for next < len(p.toks) && p.toks[next].Kind == token.Newline && !p.significant(next) {
		next++

		if err := p.ensure(next); err != nil {
			break
		}
	}

	return p.toks[next]
}

// next consumes and returns the next significant token.
func (p *Parser) next() token.Token {
	p.sync()

	tok := p.rawPeekAt(0)
	p.cur++

	return tok
}

// expectPunctuation consumes a specific punctuation token or fails.
func (p *Parser) expectPunctuation(s string) (token.Token, error) {
	tok := p.peek()
	if !tok.IsPunctuation(s) {
		return tok, p.unexpected(tok, "'"+s+"'")
	}

	return p.next(), nil
}

func (p *Parser) expectKeyword(s string) (token.Token, error) {
	tok := p.peek()
	if !tok.IsKeyword(s) {
		return tok, p.unexpected(tok, "keyword '"+s+"'")
	}

	return p.next(), nil
}

func (p *Parser) unexpected(tok token.Token, want string) error {
	return token.NewPosError(node(tok), fmt.Sprintf("unexpected %s, expected %s", tok.String(), want))
}

func node(tok token.Token) token.Node {
	return tok
}

// --- backtracking -------------------------------------------------------

type checkpoint struct {
	cur     int
	indents []int
	strict  bool
}

func (p *Parser) mark() checkpoint {
	return checkpoint{
		cur:     p.cur,
		indents: append([]int(nil), p.indents...),
		strict:  p.strict,
	}
}

func (p *Parser) restore(c checkpoint) {
	p.cur = c.cur
	p.indents = c.indents
	p.strict = c.strict
}

// attempt runs fn from a checkpoint; on error the parser state is rolled
// back as if fn had never run (spec §4.2 "attempt: checkpoint lexer+
// pending token, run a closure, restore on exception").
func attempt[T any](p *Parser, fn func() (T, error)) (T, error) {
	mark := p.mark()

	v, err := fn()
	if err != nil {
		p.restore(mark)

		var zero T

		return zero, err
	}

	return v, nil
}

// pushBody opens a new indent scope: if the next raw token is a Newline,
// its Indent becomes the required separator indent for this body and the
// Newline itself is consumed, so it does not read as an empty first
// statement; otherwise the body is a single logical line and inherits the
// enclosing indent (spec §4.2 "Opening { sets the block's indent...").
func (p *Parser) pushBody() {
	raw := p.rawPeekAt(0)

	indent := p.blockIndent()
	if raw.Kind == token.Newline {
		indent = raw.Indent
		p.cur++
	}

	p.indents = append(p.indents, indent)
}

func (p *Parser) popBody() {
	p.indents = p.indents[:len(p.indents)-1]
}
