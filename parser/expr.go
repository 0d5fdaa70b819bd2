// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"

	"github.com/golangee/hopper/ast"
	"github.com/golangee/hopper/token"
)

// reservedBinarySymbols are Symbol values that are never binary operators,
// even though they are lexed from the same character set (spec §4.2
// "Request parsing").
var reservedBinarySymbols = map[string]bool{
	"=":  true,
	":":  true,
	":=": true,
	"->": true,
}

// mathPrecedence returns the binding level of one of the math operators
// (spec §4.2 "precedence applies only among the math operators ^ * / + -");
// ok is false for every other symbol.
func mathPrecedence(op string) (int, bool) {
	switch op {
	case "+", "-":
		return 1, true
	case "*", "/":
		return 2, true
	case "^":
		return 3, true
	default:
		return 0, false
	}
}

// parseExpression parses one expression, the entry point used by every
// statement and declaration form.
func (p *Parser) parseExpression() (ast.Node, error) {
	return p.parseAdditive()
}

func (p *Parser) parseAdditive() (ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Kind != token.Symbol {
			return left, nil
		}

		if _, ok := mathPrecedence(tok.Value); !ok || (tok.Value != "+" && tok.Value != "-") {
			return left, nil
		}

		p.next()

		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		left = makeBinaryRequest(left, tok, right)
	}
}

func (p *Parser) parseMultiplicative() (ast.Node, error) {
	left, err := p.parseExponent()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Kind != token.Symbol || (tok.Value != "*" && tok.Value != "/") {
			return left, nil
		}

		p.next()

		right, err := p.parseExponent()
		if err != nil {
			return nil, err
		}

		left = makeBinaryRequest(left, tok, right)
	}
}

func (p *Parser) parseExponent() (ast.Node, error) {
	left, err := p.parseOtherBinary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Kind != token.Symbol || tok.Value != "^" {
			return left, nil
		}

		p.next()

		right, err := p.parseOtherBinary()
		if err != nil {
			return nil, err
		}

		left = makeBinaryRequest(left, tok, right)
	}
}

// parseOtherBinary handles every operator outside the math set. The spec
// rejects unparenthesized mixing of distinct non-math operators at the same
// level, so a second, different operator without an intervening grouping
// is a parse error rather than silently picked up by precedence.
func (p *Parser) parseOtherBinary() (ast.Node, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	lastOp := ""

	for {
		tok := p.peek()
		if tok.Kind != token.Symbol || reservedBinarySymbols[tok.Value] {
			return left, nil
		}

		if _, isMath := mathPrecedence(tok.Value); isMath {
			return left, nil
		}

		if lastOp != "" && lastOp != tok.Value {
			return nil, token.NewPosError(tok, fmt.Sprintf(
				"mismatched operator precedence: cannot mix '%s' and '%s' without parentheses", lastOp, tok.Value))
		}

		p.next()

		right, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}

		left = makeBinaryRequest(left, tok, right)
		lastOp = tok.Value
	}
}

func makeBinaryRequest(left ast.Node, opTok token.Token, right ast.Node) ast.Node {
	return &ast.QualifiedRequest{
		Range:    rng(left.Begin(), right.End()),
		Receiver: left,
		Parts: []*ast.RequestPart{{
			Range:     rng(opTok.Begin(), right.End()),
			Name:      opTok.Value,
			Arguments: []ast.Node{right},
		}},
	}
}

// parsePostfix parses a primary expression followed by zero or more
// "." request groups; every "." begins a new QualifiedRequest on the
// result so far, while the parts within one group (no separating ".")
// form a single multi-part request (spec §4.2 "Dot chains produce
// qualified requests").
func (p *Parser) parsePostfix() (ast.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.peek().IsPunctuation(".") {
		p.next()

		parts, err := p.parseRequestPartRun()
		if err != nil {
			return nil, err
		}

		left = &ast.QualifiedRequest{
			Range:    rng(left.Begin(), parts[len(parts)-1].End()),
			Receiver: left,
			Parts:    parts,
		}
	}

	return left, nil
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.peek()

	switch {
	case tok.IsPunctuation("("):
		p.next()

		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expectPunctuation(")"); err != nil {
			return nil, err
		}

		return expr, nil
	case tok.IsPunctuation("{"):
		return p.parseBlock()
	case tok.IsKeyword("object"):
		return p.parseObjectConstructor()
	case tok.IsKeyword("type"):
		return p.parseTypeLiteral()
	case tok.IsKeyword("self"):
		p.next()

		return &ast.Self{Range: rng(tok.Begin(), tok.End())}, nil
	case tok.IsKeyword("super"):
		p.next()

		return &ast.Super{Range: rng(tok.Begin(), tok.End())}, nil
	case tok.IsKeyword("outer"):
		p.next()

		return &ast.Outer{Range: rng(tok.Begin(), tok.End())}, nil
	case tok.IsKeyword("true"), tok.IsKeyword("false"):
		p.next()

		return &ast.BooleanLiteral{Range: rng(tok.Begin(), tok.End()), Value: tok.Value == "true"}, nil
	case tok.Kind == token.Number:
		p.next()

		return &ast.NumberLiteral{Range: rng(tok.Begin(), tok.End()), Raw: tok.Value}, nil
	case tok.Kind == token.String:
		return p.parseStringLiteral()
	case tok.Kind == token.Symbol:
		return p.parseUnaryOperator()
	case tok.Kind == token.Identifier, tok.IsKeyword("prefix"):
		// "prefix" is only a keyword in a signature ahead of an operator;
		// in an expression it is an ordinary name.
		return p.parseUnqualifiedRequest()
	default:
		return nil, p.unexpected(tok, "expression")
	}
}

func (p *Parser) parseUnaryOperator() (ast.Node, error) {
	opTok := p.next()

	operand, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	return &ast.QualifiedRequest{
		Range:    rng(opTok.Begin(), operand.End()),
		Receiver: operand,
		Parts: []*ast.RequestPart{{
			Range: rng(opTok.Begin(), opTok.End()),
			Name:  "prefix" + opTok.Value,
		}},
	}, nil
}

// parseUnqualifiedRequest parses an identifier-headed primary: a bare name
// reference, a parenthesized/generic request (with optional further parts
// chained directly, no separator, per the multi-part naming convention), a
// single bare literal-or-block argument, or ":=" assignment sugar (spec
// §4.2 "Request parsing").
func (p *Parser) parseUnqualifiedRequest() (ast.Node, error) {
	nameTok := p.peek()

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}

	if !p.strict && p.peek().Kind == token.Symbol && p.peek().Value == ":=" {
		p.next()

		rhs, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		return &ast.UnqualifiedRequest{
			Range: rng(nameTok.Begin(), rhs.End()),
			Parts: []*ast.RequestPart{{
				Range:     rng(nameTok.Begin(), rhs.End()),
				Name:      name + ":=",
				Arguments: []ast.Node{rhs},
			}},
		}, nil
	}

	hasGenerics := p.peek().IsSymbol("<") && !p.peek().Spaced
	if p.peek().IsPunctuation("(") || hasGenerics {
		first, err := p.parseRequestPartBody(nameTok, name)
		if err != nil {
			return nil, err
		}

		parts := []*ast.RequestPart{first}

		for p.looksLikeSignaturePartStart() {
			next, err := p.parseRequestPart()
			if err != nil {
				return nil, err
			}

			parts = append(parts, next)
		}

		return &ast.UnqualifiedRequest{
			Range: rng(nameTok.Begin(), parts[len(parts)-1].End()),
			Parts: parts,
		}, nil
	}

	if !p.strict && p.looksLikeBareArgumentStart() {
		arg, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		return &ast.UnqualifiedRequest{
			Range: rng(nameTok.Begin(), arg.End()),
			Parts: []*ast.RequestPart{{
				Range:     rng(nameTok.Begin(), arg.End()),
				Name:      name,
				Arguments: []ast.Node{arg},
			}},
		}, nil
	}

	return &ast.Identifier{Range: rng(nameTok.Begin(), nameTok.End()), Value: name}, nil
}

// looksLikeBareArgumentStart reports whether the parser is positioned at a
// literal or block that can be passed as the single, unparenthesized
// argument of an unqualified request (spec §4.2 "Request parsing").
func (p *Parser) looksLikeBareArgumentStart() bool {
	tok := p.peek()

	switch {
	case tok.Kind == token.Number, tok.Kind == token.String:
		return true
	case tok.IsKeyword("true"), tok.IsKeyword("false"):
		return true
	case tok.IsPunctuation("{"):
		return true
	default:
		return false
	}
}

func (p *Parser) parseRequestPart() (*ast.RequestPart, error) {
	tok := p.peek()

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}

	return p.parseRequestPartBody(tok, name)
}

func (p *Parser) parseRequestPartRun() ([]*ast.RequestPart, error) {
	first, err := p.parseRequestPart()
	if err != nil {
		return nil, err
	}

	parts := []*ast.RequestPart{first}

	for p.looksLikeSignaturePartStart() {
		next, err := p.parseRequestPart()
		if err != nil {
			return nil, err
		}

		parts = append(parts, next)
	}

	return parts, nil
}

// parseRequestPartBody parses the optional generic-argument list and
// optional parenthesized arguments following an already-consumed part name.
func (p *Parser) parseRequestPartBody(nameTok token.Token, name string) (*ast.RequestPart, error) {
	var generics []ast.Node

	end := nameTok.End()

	if p.peek().IsSymbol("<") && !p.peek().Spaced {
		g, err := attempt(p, func() ([]ast.Node, error) { return p.parseRequestGenericArgs() })
		if err == nil {
			generics = g
			end = p.toks[p.cur-1].End()
		}
	}

	var args []ast.Node

	if p.peek().IsPunctuation("(") {
		a, closeEnd, err := p.parseArguments()
		if err != nil {
			return nil, err
		}

		args = a
		end = closeEnd
	}

	return &ast.RequestPart{
		Range:     rng(nameTok.Begin(), end),
		Name:      name,
		Generics:  generics,
		Arguments: args,
	}, nil
}

func (p *Parser) parseRequestGenericArgs() ([]ast.Node, error) {
	p.next() // '<'

	var args []ast.Node

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if p.peek().IsPunctuation(",") {
			p.next()

			continue
		}

		break
	}

	if err := p.expectGenericEnd(); err != nil {
		return nil, err
	}

	return args, nil
}

func (p *Parser) parseArguments() ([]ast.Node, token.Pos, error) {
	if _, err := p.expectPunctuation("("); err != nil {
		return nil, token.Pos{}, err
	}

	var args []ast.Node

	for !p.peek().IsPunctuation(")") {
		if len(args) > 0 {
			if _, err := p.expectPunctuation(","); err != nil {
				return nil, token.Pos{}, err
			}
		}

		arg, err := p.parseExpression()
		if err != nil {
			return nil, token.Pos{}, err
		}

		args = append(args, arg)
	}

	closeTok, err := p.expectPunctuation(")")
	if err != nil {
		return nil, token.Pos{}, err
	}

	return args, closeTok.End(), nil
}

// parseStringLiteral parses a (possibly interpolated) string, re-entering
// the lexer directly to resume decoding after each spliced expression
// (spec §4.1, ast.StringLiteral).
func (p *Parser) parseStringLiteral() (ast.Node, error) {
	first := p.next()

	lit := &ast.StringLiteral{
		Range: rng(first.Begin(), first.End()),
		Parts: []interface{}{first.Value},
	}

	if !first.Interpolated {
		return lit, nil
	}

	lit.Interpolated = true
	cur := first

	for cur.Interpolated {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expectPunctuation("}"); err != nil {
			return nil, err
		}

		next, err := p.lex.ContinueString()
		if err != nil {
			return nil, err
		}

		lit.Parts = append(lit.Parts, expr, next.Value)
		lit.Range = rng(lit.Begin(), next.End())
		cur = next
	}

	return lit, nil
}

// parseObjectConstructor parses "object { body }" (spec §4.4 "Object
// construction").
func (p *Parser) parseObjectConstructor() (ast.Node, error) {
	begin, err := p.expectKeyword("object")
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

	return &ast.ObjectConstructor{Range: rng(begin.Begin(), end), Body: body}, nil
}

// parseBlock parses a block literal: "{ body }" or "{ p1, p2 -> body }"
// (spec §3 "Invariants (AST)": "A Block with parameters ends its header
// with ->"). Forbidden in strict context (spec §4.2 "Strict context").
func (p *Parser) parseBlock() (ast.Node, error) {
	if p.strict {
		return nil, p.unexpected(p.peek(), "expression (block literals are not allowed here)")
	}

	open, err := p.expectPunctuation("{")
	if err != nil {
		return nil, err
	}

	p.pushBody()
	defer p.popBody()

	params, hasArrow := p.tryParseBlockParams()

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

	close, err := p.expectPunctuation("}")
	if err != nil {
		return nil, err
	}

	return &ast.Block{
		Range:      rng(open.Begin(), close.End()),
		Parameters: params,
		HasArrow:   hasArrow,
		Body:       body,
	}, nil
}

func (p *Parser) tryParseBlockParams() ([]*ast.Parameter, bool) {
	mark := p.mark()

	var params []*ast.Parameter

	for {
		tok := p.peek()
		if tok.Kind != token.Identifier {
			p.restore(mark)

			return nil, false
		}

		p.next()
		params = append(params, &ast.Parameter{Range: rng(tok.Begin(), tok.End()), Name: tok.Value})

		if p.peek().IsPunctuation(",") {
			p.next()

			continue
		}

		break
	}

	if !(p.peek().Kind == token.Symbol && p.peek().Value == "->") {
		p.restore(mark)

		return nil, false
	}

	p.next()

	return params, true
}

// parseTypeLiteral parses "type { sig; sig }" (spec §3 "Invariants (AST)":
// "Within a type literal, signature names are unique").
func (p *Parser) parseTypeLiteral() (ast.Node, error) {
	begin, err := p.expectKeyword("type")
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunctuation("{"); err != nil {
		return nil, err
	}

	var sigs []*ast.Signature

	seen := map[string]bool{}

	for {
		p.sync()

		if p.peek().IsPunctuation("}") {
			break
		}

		sig, err := p.parseSignature()
		if err != nil {
			return nil, err
		}

		if seen[sig.Name()] {
			return nil, token.NewPosError(sig, fmt.Sprintf("duplicate method %q in type literal", sig.Name()))
		}

		seen[sig.Name()] = true
		sigs = append(sigs, sig)

		if p.peek().IsPunctuation(";") {
			p.next()
		} else {
			p.consumeSeparator()
		}
	}

	close, err := p.expectPunctuation("}")
	if err != nil {
		return nil, err
	}

	return &ast.Type{Range: rng(begin.Begin(), close.End()), Signatures: sigs}, nil
}
