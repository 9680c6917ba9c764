package parser

import (
	"tinyc/internal/ast"
	"tinyc/internal/token"
)

// parseFunction handles: int name(int a, int b) { ... }
func (p *Parser) parseFunction() (*ast.Func, error) {
	if err := p.expectCur(token.INT); err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.IDENT); err != nil {
		return nil, err
	}
	fn := &ast.Func{Token: p.curToken, Name: p.curToken.Literal}

	if err := p.expectPeek(token.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	fn.Parameters = params

	if err := p.expectPeek(token.LBRACE); err != nil {
		return nil, err
	}
	body, err := p.parseBlockItems()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

// parseParameters starts on "(" and ends on ")".
func (p *Parser) parseParameters() ([]string, error) {
	params := []string{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, nil
	}
	for {
		if err := p.expectPeek(token.INT); err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.IDENT); err != nil {
			return nil, err
		}
		params = append(params, p.curToken.Literal)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

// parseBlockItems starts on "{" and ends on the matching "}".
func (p *Parser) parseBlockItems() ([]ast.BlockItem, error) {
	items := []ast.BlockItem{}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			return nil, unexpected(p.curToken, "'}'")
		}
		item, err := p.parseBlockItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.nextToken()
	}
	return items, nil
}

func (p *Parser) parseBlockItem() (ast.BlockItem, error) {
	if p.curTokenIs(token.INT) {
		return p.parseDeclaration()
	}
	return p.parseStatement()
}

// parseDeclaration handles: int x; and int x = <expression>;
func (p *Parser) parseDeclaration() (*ast.Declare, error) {
	if err := p.expectPeek(token.IDENT); err != nil {
		return nil, err
	}
	decl := &ast.Declare{Token: p.curToken, Name: p.curToken.Literal}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Value = value
	}

	if err := p.expectPeek(token.SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseStatement dispatches to specific statement parsers based on token type
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curToken.Type {
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.LBRACE:
		return p.parseCompoundStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoStatement()
	case token.BREAK:
		stmt := &ast.Break{Token: p.curToken}
		if err := p.expectPeek(token.SEMICOLON); err != nil {
			return nil, err
		}
		return stmt, nil
	case token.CONTINUE:
		stmt := &ast.Continue{Token: p.curToken}
		if err := p.expectPeek(token.SEMICOLON); err != nil {
			return nil, err
		}
		return stmt, nil
	case token.SEMICOLON:
		return &ast.ExpStatement{Token: p.curToken}, nil
	default:
		return p.parseExpressionStatement()
	}
}

// parseReturnStatement handles: return <expression>;
func (p *Parser) parseReturnStatement() (*ast.Return, error) {
	stmt := &ast.Return{Token: p.curToken}
	p.nextToken()

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Value = value

	if err := p.expectPeek(token.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseExpressionStatement() (*ast.ExpStatement, error) {
	stmt := &ast.ExpStatement{Token: p.curToken}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Expression = expr
	if err := p.expectPeek(token.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseIfStatement handles: if (<cond>) <stmt> [else <stmt>]
// A dangling else binds to the nearest if.
func (p *Parser) parseIfStatement() (*ast.Conditional, error) {
	stmt := &ast.Conditional{Token: p.curToken}

	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	stmt.Condition = cond

	p.nextToken()
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt.Then = then

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		alt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.Else = alt
	}
	return stmt, nil
}

// parseParenCondition starts on the keyword before "(" and ends on ")".
func (p *Parser) parseParenCondition() (ast.Expression, error) {
	if err := p.expectPeek(token.LPAREN); err != nil {
		return nil, err
	}
	p.nextToken()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseCompoundStatement() (*ast.Compound, error) {
	stmt := &ast.Compound{Token: p.curToken}
	items, err := p.parseBlockItems()
	if err != nil {
		return nil, err
	}
	stmt.Items = items
	return stmt, nil
}

func (p *Parser) parseWhileStatement() (*ast.While, error) {
	stmt := &ast.While{Token: p.curToken}

	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	stmt.Condition = cond

	p.nextToken()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

// parseDoStatement handles: do <stmt> while (<cond>);
func (p *Parser) parseDoStatement() (*ast.Do, error) {
	stmt := &ast.Do{Token: p.curToken}

	p.nextToken()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt.Body = body

	if err := p.expectPeek(token.WHILE); err != nil {
		return nil, err
	}
	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	stmt.Condition = cond

	if err := p.expectPeek(token.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseForStatement handles both loop forms:
//
//	for (<expr>?; <cond>?; <post>?) <stmt>
//	for (int i = <expr>; <cond>?; <post>?) <stmt>
//
// A missing condition becomes the constant 1.
func (p *Parser) parseForStatement() (ast.Statement, error) {
	forTok := p.curToken
	if err := p.expectPeek(token.LPAREN); err != nil {
		return nil, err
	}
	p.nextToken()

	var decl *ast.Declare
	var init ast.Expression
	switch {
	case p.curTokenIs(token.INT):
		d, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		decl = d
	case p.curTokenIs(token.SEMICOLON):
	default:
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		init = e
		if err := p.expectPeek(token.SEMICOLON); err != nil {
			return nil, err
		}
	}

	p.nextToken()
	var cond ast.Expression
	if p.curTokenIs(token.SEMICOLON) {
		cond = &ast.Constant{
			Token: token.Token{Type: token.INTEGER, Literal: "1", Line: p.curToken.Line, Column: p.curToken.Column},
			Value: 1,
		}
	} else {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		cond = e
		if err := p.expectPeek(token.SEMICOLON); err != nil {
			return nil, err
		}
	}

	var post ast.Expression
	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		post = e
	}
	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}

	p.nextToken()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if decl != nil {
		return &ast.ForDecl{Token: forTok, Init: decl, Condition: cond, Post: post, Body: body}, nil
	}
	return &ast.For{Token: forTok, Init: init, Condition: cond, Post: post, Body: body}, nil
}
