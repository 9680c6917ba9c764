package token

// TokenType is a string alias for token types
// Using string makes debugging easier (we can print "==" instead of a number)
type TokenType string

// Token holds the type, the literal text and where it started in the source.
// For example: Token{Type: INTEGER, Literal: "5", Line: 1, Column: 8}
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// Token constants - the vocabulary of the C subset
const (
	// Special
	ILLEGAL TokenType = "ILLEGAL" // Unknown/invalid character
	EOF     TokenType = "EOF"     // End of input, never returned by lexer.Tokenize

	// Identifiers and literals
	IDENT   TokenType = "IDENT"   // Variable and function names: x, foo
	INTEGER TokenType = "INTEGER" // Base-10 integers: 1, 42, 999

	// Operators
	MINUS    TokenType = "-" // subtraction and negation
	PLUS     TokenType = "+"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	BANG     TokenType = "!"
	TILDE    TokenType = "~"
	AND      TokenType = "&&"
	OR       TokenType = "||"
	BIT_AND  TokenType = "&"
	BIT_OR   TokenType = "|"
	BIT_XOR  TokenType = "^"
	SHL      TokenType = "<<"
	SHR      TokenType = ">>"
	EQ       TokenType = "=="
	NOT_EQ   TokenType = "!="
	LT       TokenType = "<"
	LT_EQ    TokenType = "<="
	GT       TokenType = ">"
	GT_EQ    TokenType = ">="

	// Assignment
	ASSIGN     TokenType = "="
	PLUS_EQ    TokenType = "+="
	MINUS_EQ   TokenType = "-="
	MUL_EQ     TokenType = "*="
	DIV_EQ     TokenType = "/="
	MOD_EQ     TokenType = "%="
	SHL_EQ     TokenType = "<<="
	SHR_EQ     TokenType = ">>="
	BIT_AND_EQ TokenType = "&="
	BIT_OR_EQ  TokenType = "|="
	BIT_XOR_EQ TokenType = "^="

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	QUESTION  TokenType = "?"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"

	// Keywords
	INT      TokenType = "INT"
	RETURN   TokenType = "RETURN"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	FOR      TokenType = "FOR"
	WHILE    TokenType = "WHILE"
	DO       TokenType = "DO"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
)

// keywords maps string identifiers to their token type
// This lets us distinguish between "while" (keyword) and "x" (identifier)
var keywords = map[string]TokenType{
	"int":      INT,
	"return":   RETURN,
	"if":       IF,
	"else":     ELSE,
	"for":      FOR,
	"while":    WHILE,
	"do":       DO,
	"break":    BREAK,
	"continue": CONTINUE,
}

// LookupIdent checks if an identifier is a keyword
// If "while" is in keywords map, returns WHILE token type
// Otherwise returns IDENT (it's a variable or function name)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsAssignment reports whether t is "=" or one of the compound assignment operators.
func IsAssignment(t TokenType) bool {
	switch t {
	case ASSIGN, PLUS_EQ, MINUS_EQ, MUL_EQ, DIV_EQ, MOD_EQ,
		SHL_EQ, SHR_EQ, BIT_AND_EQ, BIT_OR_EQ, BIT_XOR_EQ:
		return true
	default:
		return false
	}
}

// CompoundBase returns the binary operator token a compound assignment applies,
// e.g. PLUS for "+=". The second result is false for plain "=" and non-assignments.
func CompoundBase(t TokenType) (TokenType, bool) {
	switch t {
	case PLUS_EQ:
		return PLUS, true
	case MINUS_EQ:
		return MINUS, true
	case MUL_EQ:
		return ASTERISK, true
	case DIV_EQ:
		return SLASH, true
	case MOD_EQ:
		return PERCENT, true
	case SHL_EQ:
		return SHL, true
	case SHR_EQ:
		return SHR, true
	case BIT_AND_EQ:
		return BIT_AND, true
	case BIT_OR_EQ:
		return BIT_OR, true
	case BIT_XOR_EQ:
		return BIT_XOR, true
	default:
		return "", false
	}
}

// Describe renders a token for diagnostics: the literal for names and numbers,
// the quoted symbol for everything else.
func (t Token) Describe() string {
	switch t.Type {
	case IDENT:
		return "identifier " + t.Literal
	case INTEGER:
		return "integer " + t.Literal
	case EOF:
		return "end of input"
	}
	if t.Literal != "" {
		return "'" + t.Literal + "'"
	}
	return string(t.Type)
}
