package parser

import (
	"strconv"

	"tinyc/internal/ast"
	"tinyc/internal/diag"
	"tinyc/internal/token"
)

// parseExpression handles assignment, which is right associative and only
// allowed with a plain identifier on the left:
//
//	x = y = 3;   x += 2;
//
// Compound assignments are rewritten: x += 2 becomes x = (x + 2).
func (p *Parser) parseExpression() (ast.Expression, error) {
	if !p.curTokenIs(token.IDENT) || !token.IsAssignment(p.peekToken.Type) {
		return p.parseConditional()
	}

	nameTok := p.curToken
	p.nextToken()
	opTok := p.curToken
	p.nextToken()

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if base, ok := token.CompoundBase(opTok.Type); ok {
		value = &ast.BinOp{
			Token:    opTok,
			Operator: binaryOperators[base],
			Left:     &ast.VarReference{Token: nameTok, Name: nameTok.Literal},
			Right:    value,
		}
	}
	return &ast.Assignment{Token: nameTok, Name: nameTok.Literal, Value: value}, nil
}

// parseConditional handles: <logical-or> [? <expression> : <conditional>]
func (p *Parser) parseConditional() (ast.Expression, error) {
	cond, err := p.parseBinary(LOGICOR)
	if err != nil {
		return nil, err
	}
	if !p.peekTokenIs(token.QUESTION) {
		return cond, nil
	}

	p.nextToken()
	exp := &ast.CondExp{Token: p.curToken, Condition: cond}

	p.nextToken()
	if exp.Then, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.COLON); err != nil {
		return nil, err
	}
	p.nextToken()
	if exp.Else, err = p.parseConditional(); err != nil {
		return nil, err
	}
	return exp, nil
}

// parseBinary is precedence climbing over the binary operator tiers. Each
// tier loops at its own level, so operators of equal precedence associate
// left: 1 - 2 - 3 is (1 - 2) - 3.
func (p *Parser) parseBinary(minPrecedence int) (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		precedence := p.peekPrecedence()
		if precedence == 0 || precedence < minPrecedence {
			return left, nil
		}

		p.nextToken() // Advance to the operator
		opTok := p.curToken
		p.nextToken()

		right, err := p.parseBinary(precedence + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Token: opTok, Operator: binaryOperators[opTok.Type], Left: left, Right: right}
	}
}

// parseFactor handles the tightest-binding forms: literals, variables,
// calls, parenthesised expressions and unary operators.
func (p *Parser) parseFactor() (ast.Expression, error) {
	switch p.curToken.Type {
	case token.LPAREN:
		return p.parseGroupedExpression()
	case token.MINUS, token.TILDE, token.BANG:
		return p.parsePrefixExpression()
	case token.INTEGER:
		return p.parseIntegerLiteral()
	case token.IDENT:
		if p.peekTokenIs(token.LPAREN) {
			return p.parseCallExpression()
		}
		return &ast.VarReference{Token: p.curToken, Name: p.curToken.Literal}, nil
	default:
		return nil, unexpected(p.curToken, "expression")
	}
}

func (p *Parser) parseGroupedExpression() (ast.Expression, error) {
	p.nextToken()
	exp, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	return exp, nil
}

func (p *Parser) parsePrefixExpression() (ast.Expression, error) {
	exp := &ast.UnOp{Token: p.curToken, Operator: unaryOperators[p.curToken.Type]}
	p.nextToken()

	operand, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	exp.Operand = operand
	return exp, nil
}

// parseIntegerLiteral parses a number
func (p *Parser) parseIntegerLiteral() (ast.Expression, error) {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		return nil, diag.At(diag.InvalidLiteral, p.curToken, "integer literal %s does not fit in 64 bits", p.curToken.Literal)
	}
	return &ast.Constant{Token: p.curToken, Value: value}, nil
}

// parseCallExpression handles: name(<expr>, <expr>, ...)
func (p *Parser) parseCallExpression() (ast.Expression, error) {
	call := &ast.FuncCall{Token: p.curToken, Name: p.curToken.Literal, Arguments: []ast.Expression{}}
	p.nextToken() // onto "("

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return call, nil
	}

	for {
		p.nextToken()
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		call.Arguments = append(call.Arguments, arg)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	return call, nil
}
