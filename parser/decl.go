// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"

	"github.com/golangee/hopper/ast"
	"github.com/golangee/hopper/token"
)

func rng(from, to token.Pos) token.Range {
	return token.Range{From: from, To: to}
}

func (p *Parser) parseModule() (*ast.Module, error) {
	p.consumeSeparator() // a source may open with a blank line

	begin := p.peek().Begin()

	m := &ast.Module{}

	if p.peek().IsKeyword("dialect") {
		d, err := p.parseDialect()
		if err != nil {
			return nil, err
		}

		m.Dialect = d
		p.consumeSeparator()
	}

	for p.peek().IsKeyword("import") {
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}

		m.Imports = append(m.Imports, imp)
		p.consumeSeparator()
	}

	body, err := p.parseStatementsUntilEOF()
	if err != nil {
		return nil, err
	}

	m.Body = body
	m.Range = rng(begin, p.peek().Begin())

	return m, nil
}

// consumeSeparator eats one statement-separating newline if present; it is
// not an error for it to be absent at the very start or end of a body.
func (p *Parser) consumeSeparator() {
	if p.peek().Kind == token.Newline {
		p.next()
	}
}

func (p *Parser) parseDialect() (*ast.Dialect, error) {
	begin, err := p.expectKeyword("dialect")
	if err != nil {
		return nil, err
	}

	path, _, err := p.parsePathLiteral()
	if err != nil {
		return nil, err
	}

	return &ast.Dialect{Range: rng(begin.Begin(), p.toks[p.cur-1].End()), Path: path}, nil
}

func (p *Parser) parseImport() (*ast.Import, error) {
	begin, err := p.expectKeyword("import")
	if err != nil {
		return nil, err
	}

	path, last, err := p.parsePathLiteral()
	if err != nil {
		return nil, err
	}

	ident := lastSegment(path)

	if p.peek().IsKeyword("as") {
		p.next()

		idTok := p.peek()
		if idTok.Kind != token.Identifier {
			return nil, p.unexpected(idTok, "identifier")
		}

		p.next()
		ident = idTok.Value
		last = idTok
	}

	return &ast.Import{
		Range:      rng(begin.Begin(), last.End()),
		Path:       path,
		Identifier: ident,
	}, nil
}

func lastSegment(path string) string {
	last := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '.' {
			last = path[i+1:]
			break
		}
	}

	return last
}

// parsePathLiteral parses a dotted/slashed module path made of identifiers
// joined by '.' or '/' Punctuation/Symbol tokens.
func (p *Parser) parsePathLiteral() (string, token.Token, error) {
	first := p.peek()
	if first.Kind != token.Identifier {
		return "", first, p.unexpected(first, "module path")
	}

	p.next()

	path := first.Value
	last := first

	for {
		t := p.peek()
		if t.IsPunctuation(".") || (t.Kind == token.Symbol && t.Value == "/") {
			sep := p.next()
			seg := p.peek()

			if seg.Kind != token.Identifier {
				return "", seg, p.unexpected(seg, "module path segment")
			}

			p.next()
			path += sep.Value + seg.Value
			last = seg
		} else {
			break
		}
	}

	return path, last, nil
}

// parseStatementsUntilEOF parses the remaining statements of the top-level
// module body.
func (p *Parser) parseStatementsUntilEOF() ([]ast.Node, error) {
	var body []ast.Node

	for {
		p.sync()

		if p.peek().Kind == token.EndOfInput {
			return body, nil
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		body = append(body, stmt)
		p.consumeSeparator()
	}
}

// parseBody parses a "{ ... }" object/method/class body.
func (p *Parser) parseBody() ([]ast.Node, error) {
	if _, err := p.expectPunctuation("{"); err != nil {
		return nil, err
	}

	p.pushBody()
	defer p.popBody()

	var body []ast.Node

	for {
		p.sync()

		if p.peek().IsPunctuation("}") {
			break
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		body = append(body, stmt)
		p.consumeSeparator()
	}

	if _, err := p.expectPunctuation("}"); err != nil {
		return nil, err
	}

	return body, nil
}

// parseStatement parses one declaration or expression-statement.
func (p *Parser) parseStatement() (ast.Node, error) {
	tok := p.peek()

	switch {
	case tok.IsKeyword("def"):
		return p.parseDef()
	case tok.IsKeyword("var"):
		return p.parseVar()
	case tok.IsKeyword("type"):
		// On 'type', commit to a declaration unless the next token is '{',
		// in which case rewind and parse as a type literal expression
		// (spec §4.2 "Declaration vs literal").
		if p.peek2().IsPunctuation("{") {
			return p.parseExpressionStatement()
		}

		return p.parseTypeDeclaration()
	case tok.IsKeyword("method"):
		return p.parseMethod()
	case tok.IsKeyword("class"):
		return p.parseClass()
	case tok.IsKeyword("inherits"):
		return p.parseInherits()
	case tok.IsKeyword("return"):
		return p.parseReturn()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() (ast.Node, error) {
	return p.parseExpression()
}

func (p *Parser) parsePattern() (ast.Node, error) {
	prevStrict := p.strict
	p.strict = true
	defer func() { p.strict = prevStrict }()

	return p.parseExpression()
}

func (p *Parser) parseOptionalPattern() (ast.Node, error) {
	if !p.peek().IsPunctuation(":") && !(p.peek().Kind == token.Symbol && p.peek().Value == ":") {
		return nil, nil
	}

	p.next()

	return p.parsePattern()
}

func (p *Parser) parseDef() (ast.Node, error) {
	begin, _ := p.expectKeyword("def")

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}

	pattern, err := p.parseOptionalPattern()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectEquals(); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.Def{
		Range:   rng(begin.Begin(), value.End()),
		Name:    name,
		Pattern: pattern,
		Value:   value,
	}, nil
}

func (p *Parser) parseVar() (ast.Node, error) {
	begin, _ := p.expectKeyword("var")

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}

	pattern, err := p.parseOptionalPattern()
	if err != nil {
		return nil, err
	}

	var value ast.Node

	if p.peek().Kind == token.Symbol && p.peek().Value == ":=" {
		p.next()

		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	end := p.toks[p.cur-1].End()
	if value != nil {
		end = value.End()
	}

	return &ast.Var{
		Range:   rng(begin.Begin(), end),
		Name:    name,
		Pattern: pattern,
		Value:   value,
	}, nil
}

func (p *Parser) parseTypeDeclaration() (ast.Node, error) {
	begin, _ := p.expectKeyword("type")

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}

	var generics []string

	if p.peek().IsSymbol("<") {
		generics, err = p.parseGenericParams()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expectEquals(); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.TypeDeclaration{
		Range:    rng(begin.Begin(), value.End()),
		Name:     name,
		Generics: generics,
		Value:    value,
	}, nil
}

func (p *Parser) parseGenericParams() ([]string, error) {
	p.next() // '<'

	var names []string

	for {
		id, err := p.expectName()
		if err != nil {
			return nil, err
		}

		names = append(names, id)

		if p.peek().IsPunctuation(",") {
			p.next()

			continue
		}

		break
	}

	if err := p.expectGenericEnd(); err != nil {
		return nil, err
	}

	return names, nil
}

// expectGenericEnd consumes a '>' that closes a generic list, handling the
// case where it was lexed together with following operator characters
// (spec §4.2 "Generics disambiguation").
func (p *Parser) expectGenericEnd() error {
	tok := p.peek()

	if tok.IsSymbol(">") {
		p.next()

		return nil
	}

	if rest, ok := token.StripLeadingGenericEnd(tok); ok {
		p.toks[p.cur] = rest

		if rest.Value == "" {
			p.next()
		}

		return nil
	}

	return p.unexpected(tok, "'>'")
}

func (p *Parser) parseMethod() (ast.Node, error) {
	begin, _ := p.expectKeyword("method")

	sig, err := p.parseSignature()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	end := begin.End()
	if len(body) > 0 {
		end = body[len(body)-1].End()
	}

	return &ast.Method{
		Range:     rng(begin.Begin(), end),
		Signature: sig,
		Body:      body,
	}, nil
}

func (p *Parser) parseClass() (ast.Node, error) {
	begin, _ := p.expectKeyword("class")

	nameMark := p.mark()

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}

	// "class Name.sig() {" names the class apart from its signature;
	// "class Name() {" reuses the name as the signature's first part.
	if p.peek().IsPunctuation(".") {
		p.next()
	} else {
		p.restore(nameMark)
	}

	sig, err := p.parseSignature()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	end := begin.End()
	if len(body) > 0 {
		end = body[len(body)-1].End()
	}

	return &ast.Class{
		Range:     rng(begin.Begin(), end),
		Name:      name,
		Signature: sig,
		Body:      body,
	}, nil
}

// parseInherits parses the "inherits request" statement, which must
// syntactically be a qualified request, unqualified request, or boolean
// literal (spec §4.2 "Inheritance").
func (p *Parser) parseInherits() (ast.Node, error) {
	begin, _ := p.expectKeyword("inherits")

	req, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	switch req.(type) {
	case *ast.QualifiedRequest, *ast.UnqualifiedRequest, *ast.BooleanLiteral:
		// ok
	default:
		return nil, token.NewPosError(node(begin), fmt.Sprintf("inherits must name a request, got %T", req))
	}

	return &ast.Inherits{
		Range:   rng(begin.Begin(), req.End()),
		Request: req,
	}, nil
}

func (p *Parser) parseReturn() (ast.Node, error) {
	begin, _ := p.expectKeyword("return")

	if p.atStatementEnd() {
		return &ast.Return{Range: rng(begin.Begin(), begin.End())}, nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.Return{
		Range:      rng(begin.Begin(), expr.End()),
		Expression: expr,
	}, nil
}

func (p *Parser) atStatementEnd() bool {
	tok := p.peek()

	return tok.Kind == token.Newline || tok.Kind == token.EndOfInput || tok.IsPunctuation("}")
}

func (p *Parser) expectName() (string, error) {
	tok := p.peek()
	if tok.Kind != token.Identifier && tok.Kind != token.Keyword {
		return "", p.unexpected(tok, "identifier")
	}

	p.next()

	return tok.Value, nil
}

func (p *Parser) expectEquals() (token.Token, error) {
	tok := p.peek()
	if tok.Kind == token.Symbol && tok.Value == "=" {
		return p.next(), nil
	}

	return tok, p.unexpected(tok, "'='")
}
