package parser

import (
	"strings"

	"tinyc/internal/ast"
	"tinyc/internal/diag"
	"tinyc/internal/token"
)

// precedence levels (lowest to highest)
// These determine operator binding: 5 + 3 * 2 parses as 5 + (3 * 2) because * has higher precedence
const (
	_ int = iota // Start at 0, ignore this
	LOWEST
	LOGICOR     // ||
	LOGICAND    // &&
	BITOR       // |
	BITXOR      // ^
	BITAND      // &
	EQUALS      // == or !=
	LESSGREATER // < <= > >=
	SHIFT       // << or >>
	SUM         // + or -
	PRODUCT     // * / %
)

// precedence table maps binary operator tokens to their precedence level
var precedences = map[token.TokenType]int{
	token.OR:       LOGICOR,
	token.AND:      LOGICAND,
	token.BIT_OR:   BITOR,
	token.BIT_XOR:  BITXOR,
	token.BIT_AND:  BITAND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.LT_EQ:    LESSGREATER,
	token.GT:       LESSGREATER,
	token.GT_EQ:    LESSGREATER,
	token.SHL:      SHIFT,
	token.SHR:      SHIFT,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.PERCENT:  PRODUCT,
}

var binaryOperators = map[token.TokenType]ast.BinaryOperator{
	token.OR:       ast.LogicalOr,
	token.AND:      ast.LogicalAnd,
	token.BIT_OR:   ast.BitwiseOr,
	token.BIT_XOR:  ast.BitwiseXor,
	token.BIT_AND:  ast.BitwiseAnd,
	token.EQ:       ast.Equal,
	token.NOT_EQ:   ast.NotEqual,
	token.LT:       ast.Less,
	token.LT_EQ:    ast.LessEqual,
	token.GT:       ast.Greater,
	token.GT_EQ:    ast.GreaterEqual,
	token.SHL:      ast.ShiftLeft,
	token.SHR:      ast.ShiftRight,
	token.PLUS:     ast.Add,
	token.MINUS:    ast.Subtract,
	token.SLASH:    ast.Divide,
	token.ASTERISK: ast.Multiply,
	token.PERCENT:  ast.Modulo,
}

var unaryOperators = map[token.TokenType]ast.UnaryOperator{
	token.MINUS: ast.Negation,
	token.TILDE: ast.BitwiseComplement,
	token.BANG:  ast.LogicalNegation,
}

// Parser walks a token slice with one token of look-ahead. Every parse
// method starts with curToken on the first token of its construct and
// returns with curToken on the last one.
type Parser struct {
	tokens   []token.Token
	position int // index of curToken in tokens
	eof      token.Token

	curToken  token.Token // Current token under examination
	peekToken token.Token // Next Token (for look-ahead)
}

// New creates a new parser over tokens produced by lexer.Tokenize
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens, position: -2, eof: endOfInput(tokens)}

	// Read two tokens to set curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Parse is shorthand for New(tokens).ParseProgram().
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// endOfInput synthesises the EOF token just past the last real token so
// errors at the end of the file still carry a position.
func endOfInput(tokens []token.Token) token.Token {
	if len(tokens) == 0 {
		return token.Token{Type: token.EOF, Line: 1, Column: 1}
	}
	last := tokens[len(tokens)-1]
	return token.Token{Type: token.EOF, Line: last.Line, Column: last.Column + len(last.Literal)}
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.position++
	p.curToken = p.at(p.position)
	p.peekToken = p.at(p.position + 1)
}

func (p *Parser) at(i int) token.Token {
	if i < 0 || i >= len(p.tokens) {
		return p.eof
	}
	return p.tokens[i]
}

// curTokenIs checks if current token matches
func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

// peekTokenIs checks if next token matches
func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek checks next token and advances if correct, else errors
// Used for mandatory syntax like "while ("
func (p *Parser) expectPeek(t token.TokenType) error {
	if p.peekTokenIs(t) {
		p.nextToken()
		return nil
	}
	return unexpected(p.peekToken, describeType(t))
}

// expectCur is expectPeek for the current token; it does not advance.
func (p *Parser) expectCur(t token.TokenType) error {
	if p.curTokenIs(t) {
		return nil
	}
	return unexpected(p.curToken, describeType(t))
}

// peekPrecedence returns precedence of next token, or 0 when it is not a
// binary operator
func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return 0
}

func unexpected(got token.Token, want string) error {
	if got.Type == token.EOF {
		return diag.At(diag.UnexpectedEndOfInput, got, "expected %s", want)
	}
	return diag.At(diag.UnexpectedToken, got, "expected %s, got %s", want, got.Describe())
}

// describeType names a token kind the way it appears in source.
func describeType(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.INTEGER:
		return "integer"
	}
	if lower := strings.ToLower(string(t)); token.LookupIdent(lower) == t {
		return "'" + lower + "'"
	}
	return "'" + string(t) + "'"
}

// ParseProgram parses function definitions until the tokens run out. The
// first syntax error stops parsing and is returned as a *diag.Error.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		program.Functions = append(program.Functions, fn)
		p.nextToken()
	}

	return program, nil
}
