// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/golangee/hopper/ast"
	"github.com/golangee/hopper/token"
)

// parseSignature parses a method/class signature: either a single operator
// part, a single "prefix"-fused unary operator part, or a chain of named
// parts, followed by an optional return pattern (spec §4.2 "Signature
// parsing").
func (p *Parser) parseSignature() (*ast.Signature, error) {
	begin := p.peek()

	first, isOperator, err := p.parseFirstSignaturePart()
	if err != nil {
		return nil, err
	}

	parts := []*ast.SignaturePart{first}

	if !isOperator && len(first.Parameters) > 0 {
		for p.looksLikeSignaturePartStart() {
			part, err := p.parseNamedSignaturePart()
			if err != nil {
				return nil, err
			}

			parts = append(parts, part)
		}
	}

	returnPattern, err := p.parseOptionalPattern()
	if err != nil {
		return nil, err
	}

	end := parts[len(parts)-1].End()
	if returnPattern != nil {
		end = returnPattern.End()
	}

	return &ast.Signature{
		Range:         rng(begin.Begin(), end),
		Parts:         parts,
		ReturnPattern: returnPattern,
	}, nil
}

// parseFirstSignaturePart parses either an operator part (including the
// "prefix"-fused unary form and the ":=" assignment-method form) or the
// first part of a named chain.
func (p *Parser) parseFirstSignaturePart() (*ast.SignaturePart, bool, error) {
	tok := p.peek()

	if tok.IsKeyword("prefix") {
		opTok := p.peek2()
		if opTok.Kind == token.Symbol {
			return p.parsePrefixOperatorPart()
		}
	}

	if tok.Kind == token.Symbol {
		part, err := p.parseOperatorPart()

		return part, true, err
	}

	part, err := p.parseNamedSignaturePart()

	return part, false, err
}

func (p *Parser) parsePrefixOperatorPart() (*ast.SignaturePart, bool, error) {
	kw := p.next() // 'prefix'

	opTok := p.peek()
	if opTok.Kind != token.Symbol {
		return nil, false, p.unexpected(opTok, "operator")
	}

	p.next()

	params, end, err := p.parseOptionalParameterList(opTok.End())
	if err != nil {
		return nil, false, err
	}

	return &ast.SignaturePart{
		Range:      rng(kw.Begin(), end),
		Name:       "prefix" + opTok.Value,
		Parameters: params,
	}, true, nil
}

func (p *Parser) parseOperatorPart() (*ast.SignaturePart, error) {
	opTok := p.next()

	params, end, err := p.parseOptionalParameterList(opTok.End())
	if err != nil {
		return nil, err
	}

	return &ast.SignaturePart{
		Range:      rng(opTok.Begin(), end),
		Name:       opTok.Value,
		Parameters: params,
	}, nil
}

// looksLikeSignaturePartStart reports whether the parser is positioned at
// the start of another named signature part (an identifier immediately
// followed by '(' or a generic-opening '<').
func (p *Parser) looksLikeSignaturePartStart() bool {
	tok := p.peek()
	if tok.Kind != token.Identifier {
		return false
	}

	next := p.peek2()

	return next.IsPunctuation("(") || (next.IsSymbol("<") && !next.Spaced)
}

func (p *Parser) parseNamedSignaturePart() (*ast.SignaturePart, error) {
	nameTok := p.peek()

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

	params, end, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}

	return &ast.SignaturePart{
		Range:      rng(nameTok.Begin(), end),
		Name:       name,
		Generics:   generics,
		Parameters: params,
	}, nil
}

// parseOptionalParameterList parses a parenthesized parameter list if one
// is present, used for operator parts that may be unary (no list) or
// binary (one parameter).
func (p *Parser) parseOptionalParameterList(fallbackEnd token.Pos) ([]*ast.Parameter, token.Pos, error) {
	if !p.peek().IsPunctuation("(") {
		return nil, fallbackEnd, nil
	}

	return p.parseParameterList()
}

func (p *Parser) parseParameterList() ([]*ast.Parameter, token.Pos, error) {
	if _, err := p.expectPunctuation("("); err != nil {
		return nil, token.Pos{}, err
	}

	var params []*ast.Parameter

	for !p.peek().IsPunctuation(")") {
		if len(params) > 0 {
			if _, err := p.expectPunctuation(","); err != nil {
				return nil, token.Pos{}, err
			}
		}

		param, err := p.parseParameter()
		if err != nil {
			return nil, token.Pos{}, err
		}

		params = append(params, param)
	}

	closeTok, err := p.expectPunctuation(")")
	if err != nil {
		return nil, token.Pos{}, err
	}

	return params, closeTok.End(), nil
}

func (p *Parser) parseParameter() (*ast.Parameter, error) {
	begin := p.peek()

	isVarArg := false
	if p.peek().IsSymbol("*") {
		p.next()

		isVarArg = true
	}

	nameTok := p.peek()

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}

	pattern, err := p.parseOptionalPattern()
	if err != nil {
		return nil, err
	}

	end := nameTok.End()
	if pattern != nil {
		end = pattern.End()
	}

	return &ast.Parameter{
		Range:    rng(begin.Begin(), end),
		Name:     name,
		Pattern:  pattern,
		IsVarArg: isVarArg,
	}, nil
}
