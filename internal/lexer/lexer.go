package lexer

import (
	"tinyc/internal/diag"
	"tinyc/internal/token"
)

// Lexer holds the state while tokenizing input
// It reads character by character, like a tape reader
type Lexer struct {
	input        string // The source code
	position     int    // Current position in input (points to current char)
	readPosition int    // Current reading position (after current char)
	ch           byte   // Current character under examination
	line         int    // Line of ch, 1-based
	column       int    // Column of ch, 1-based

	// set when a block comment runs off the end of the input
	unterminated *token.Token
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar() // Initialize with first character
	return l
}

// Tokenize runs the lexer to the end of input. The returned slice never
// contains EOF; the first illegal character aborts with a *diag.Error.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		switch tok.Type {
		case token.EOF:
			return tokens, nil
		case token.ILLEGAL:
			if tok.Literal == "/*" {
				return nil, diag.At(diag.IllegalCharacter, tok, "unterminated block comment")
			}
			return nil, diag.At(diag.IllegalCharacter, tok, "unexpected character %q", tok.Literal)
		}
		tokens = append(tokens, tok)
	}
}

// readChar advances to the next character
// Think of it like moving the tape forward one position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	// If we've reached the end, set ch to 0 (NUL byte, signifies EOF)
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition += 1
	l.column++
}

// peekChar looks at the next character without consuming it
// Used for two-character tokens like == and !=
func (l *Lexer) peekChar() byte {
	return l.peekCharAt(1)
}

// peekCharAt looks n characters ahead; <<= and >>= need two.
func (l *Lexer) peekCharAt(n int) byte {
	idx := l.position + n
	if idx >= len(l.input) {
		return 0
	}
	return l.input[idx]
}

// NextToken returns the next token from input
// This is the heart of the lexer - it recognizes patterns
func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipIgnored() // Ignore whitespace and comments
	if l.unterminated != nil {
		tok = *l.unterminated
		l.unterminated = nil
		return tok
	}

	line, column := l.line, l.column

	switch l.ch {
	case '=':
		tok = l.oneOrTwo(token.ASSIGN, '=', token.EQ)
	case '+':
		tok = l.oneOrTwo(token.PLUS, '=', token.PLUS_EQ)
	case '-':
		tok = l.oneOrTwo(token.MINUS, '=', token.MINUS_EQ)
	case '*':
		tok = l.oneOrTwo(token.ASTERISK, '=', token.MUL_EQ)
	case '/':
		tok = l.oneOrTwo(token.SLASH, '=', token.DIV_EQ)
	case '%':
		tok = l.oneOrTwo(token.PERCENT, '=', token.MOD_EQ)
	case '!':
		tok = l.oneOrTwo(token.BANG, '=', token.NOT_EQ)
	case '^':
		tok = l.oneOrTwo(token.BIT_XOR, '=', token.BIT_XOR_EQ)
	case '~':
		tok = newToken(token.TILDE, l.ch)
	case '&':
		switch l.peekChar() {
		case '&':
			tok = l.readOperator(token.AND, 2)
		case '=':
			tok = l.readOperator(token.BIT_AND_EQ, 2)
		default:
			tok = newToken(token.BIT_AND, l.ch)
		}
	case '|':
		switch l.peekChar() {
		case '|':
			tok = l.readOperator(token.OR, 2)
		case '=':
			tok = l.readOperator(token.BIT_OR_EQ, 2)
		default:
			tok = newToken(token.BIT_OR, l.ch)
		}
	case '<':
		switch {
		case l.peekChar() == '<' && l.peekCharAt(2) == '=':
			tok = l.readOperator(token.SHL_EQ, 3)
		case l.peekChar() == '<':
			tok = l.readOperator(token.SHL, 2)
		case l.peekChar() == '=':
			tok = l.readOperator(token.LT_EQ, 2)
		default:
			tok = newToken(token.LT, l.ch)
		}
	case '>':
		switch {
		case l.peekChar() == '>' && l.peekCharAt(2) == '=':
			tok = l.readOperator(token.SHR_EQ, 3)
		case l.peekChar() == '>':
			tok = l.readOperator(token.SHR, 2)
		case l.peekChar() == '=':
			tok = l.readOperator(token.GT_EQ, 2)
		default:
			tok = newToken(token.GT, l.ch)
		}
	case ';':
		tok = newToken(token.SEMICOLON, l.ch)
	case ':':
		tok = newToken(token.COLON, l.ch)
	case '?':
		tok = newToken(token.QUESTION, l.ch)
	case ',':
		tok = newToken(token.COMMA, l.ch)
	case '(':
		tok = newToken(token.LPAREN, l.ch)
	case ')':
		tok = newToken(token.RPAREN, l.ch)
	case '{':
		tok = newToken(token.LBRACE, l.ch)
	case '}':
		tok = newToken(token.RBRACE, l.ch)
	case 0:
		if l.position < len(l.input) {
			// a literal NUL inside the source
			tok = newToken(token.ILLEGAL, l.ch)
			break
		}
		return token.Token{Type: token.EOF, Line: line, Column: column}
	default:
		if isLetter(l.ch) {
			// Read the full identifier/keyword
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			tok.Line, tok.Column = line, column
			return tok // Already advanced past identifier
		} else if isDigit(l.ch) {
			tok.Type = token.INTEGER
			tok.Literal = l.readNumber()
			tok.Line, tok.Column = line, column
			return tok // Already advanced past number
		}
		tok = newToken(token.ILLEGAL, l.ch)
	}

	tok.Line, tok.Column = line, column
	l.readChar() // Advance to next character for next call
	return tok
}

// oneOrTwo builds either the single-character token or, when the next
// character is next, the two-character one.
func (l *Lexer) oneOrTwo(single token.TokenType, next byte, double token.TokenType) token.Token {
	if l.peekChar() == next {
		return l.readOperator(double, 2)
	}
	return newToken(single, l.ch)
}

// readOperator consumes an n-character operator, leaving the final
// character current so NextToken's trailing readChar moves past it.
func (l *Lexer) readOperator(t token.TokenType, n int) token.Token {
	literal := l.input[l.position : l.position+n]
	for i := 1; i < n; i++ {
		l.readChar()
	}
	return token.Token{Type: t, Literal: literal}
}
