package lexer

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"

	"tinyc/internal/diag"
	"tinyc/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `
int main() {
	int a = 0;
	do {
		a += 2;
	} while (a < 10);
	return a ? -a : ~a;
}
`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.INT, "int"},
		{token.IDENT, "main"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.INT, "int"},
		{token.IDENT, "a"},
		{token.ASSIGN, "="},
		{token.INTEGER, "0"},
		{token.SEMICOLON, ";"},
		{token.DO, "do"},
		{token.LBRACE, "{"},
		{token.IDENT, "a"},
		{token.PLUS_EQ, "+="},
		{token.INTEGER, "2"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.WHILE, "while"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.LT, "<"},
		{token.INTEGER, "10"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.RETURN, "return"},
		{token.IDENT, "a"},
		{token.QUESTION, "?"},
		{token.MINUS, "-"},
		{token.IDENT, "a"},
		{token.COLON, ":"},
		{token.TILDE, "~"},
		{token.IDENT, "a"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - token type wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperatorsLongestMatch(t *testing.T) {
	input := `<<= << <= < >>= >> >= > && &= & || |= | ^= ^ == = != ! -= - *= * /= / %= %`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.SHL_EQ, "<<="},
		{token.SHL, "<<"},
		{token.LT_EQ, "<="},
		{token.LT, "<"},
		{token.SHR_EQ, ">>="},
		{token.SHR, ">>"},
		{token.GT_EQ, ">="},
		{token.GT, ">"},
		{token.AND, "&&"},
		{token.BIT_AND_EQ, "&="},
		{token.BIT_AND, "&"},
		{token.OR, "||"},
		{token.BIT_OR_EQ, "|="},
		{token.BIT_OR, "|"},
		{token.BIT_XOR_EQ, "^="},
		{token.BIT_XOR, "^"},
		{token.EQ, "=="},
		{token.ASSIGN, "="},
		{token.NOT_EQ, "!="},
		{token.BANG, "!"},
		{token.MINUS_EQ, "-="},
		{token.MINUS, "-"},
		{token.MUL_EQ, "*="},
		{token.ASTERISK, "*"},
		{token.DIV_EQ, "/="},
		{token.SLASH, "/"},
		{token.MOD_EQ, "%="},
		{token.PERCENT, "%"},
	}

	toks, err := Tokenize(input)
	be.Err(t, err, nil)
	be.Equal(t, len(toks), len(tests))
	for i, tt := range tests {
		if toks[i].Type != tt.expectedType || toks[i].Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - got=(%q,%q) want=(%q,%q)", i, toks[i].Type, toks[i].Literal, tt.expectedType, tt.expectedLiteral)
		}
	}
}

func TestAdjacentOperatorsWithoutSpaces(t *testing.T) {
	toks, err := Tokenize("a<<=b>>c&&!d")
	be.Err(t, err, nil)

	var types []token.TokenType
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	be.Equal(t, types, []token.TokenType{
		token.IDENT, token.SHL_EQ, token.IDENT, token.SHR, token.IDENT, token.AND, token.BANG, token.IDENT,
	})
}

func TestCommentsAreSkipped(t *testing.T) {
	input := `// leading comment
int /* inline */ x = 1; // trailing
/* multi
   line */ return x;`

	toks, err := Tokenize(input)
	be.Err(t, err, nil)

	var literals []string
	for _, tok := range toks {
		literals = append(literals, tok.Literal)
	}
	be.Equal(t, literals, []string{"int", "x", "=", "1", ";", "return", "x", ";"})
}

func TestIdentifierWithDigits(t *testing.T) {
	toks, err := Tokenize("foo_1 _bar 12 integer")
	be.Err(t, err, nil)
	be.Equal(t, toks[0], token.Token{Type: token.IDENT, Literal: "foo_1", Line: 1, Column: 1})
	be.Equal(t, toks[1], token.Token{Type: token.IDENT, Literal: "_bar", Line: 1, Column: 7})
	be.Equal(t, toks[2], token.Token{Type: token.INTEGER, Literal: "12", Line: 1, Column: 12})
	be.Equal(t, toks[3], token.Token{Type: token.IDENT, Literal: "integer", Line: 1, Column: 15})
}

func TestTokenLocations(t *testing.T) {
	input := "int main() {\n  return 2;\n}"

	tests := []struct {
		expectedLiteral string
		expectedLine    int
		expectedColumn  int
	}{
		{"int", 1, 1},
		{"main", 1, 5},
		{"(", 1, 9},
		{")", 1, 10},
		{"{", 1, 12},
		{"return", 2, 3},
		{"2", 2, 10},
		{";", 2, 11},
		{"}", 3, 1},
	}

	toks, err := Tokenize(input)
	be.Err(t, err, nil)
	be.Equal(t, len(toks), len(tests))
	for i, tt := range tests {
		tok := toks[i]
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
		if tok.Line != tt.expectedLine || tok.Column != tt.expectedColumn {
			t.Fatalf("tests[%d] - location wrong. expected=(%d,%d), got=(%d,%d)", i, tt.expectedLine, tt.expectedColumn, tok.Line, tok.Column)
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	toks, err := Tokenize("  // nothing here\n")
	be.Err(t, err, nil)
	be.Equal(t, len(toks), 0)
}

func TestIllegalCharacter(t *testing.T) {
	_, err := Tokenize("int main() {\n  return 2 @ 3;\n}")
	be.Err(t, err, diag.IllegalCharacter)

	var e *diag.Error
	be.True(t, errors.As(err, &e))
	be.Equal(t, e.Line, 2)
	be.Equal(t, e.Column, 12)
	be.Equal(t, e.Context, "@")
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, err := Tokenize("int x; /* never closed")
	be.Err(t, err, diag.IllegalCharacter)

	var e *diag.Error
	be.True(t, errors.As(err, &e))
	be.Equal(t, e.Column, 8)
	be.Equal(t, e.Message, "unterminated block comment")
}

func TestEmbeddedNulIsIllegal(t *testing.T) {
	_, err := Tokenize("int x\x00;")
	be.Err(t, err, diag.IllegalCharacter)
}

func FuzzTokenizeNoPanic(f *testing.F) {
	seeds := []string{
		"",
		"int main() { return 2; }",
		"a <<= b >>= c",
		"/* open",
		"// only comment",
		"\x00",
		"99999999999999999999999",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("lexer panicked for input %q: %v", input, r)
			}
		}()
		toks, err := Tokenize(input)
		if err != nil {
			return
		}
		for _, tok := range toks {
			if tok.Type == token.EOF || tok.Type == token.ILLEGAL {
				t.Fatalf("Tokenize returned %s token for input %q", tok.Type, input)
			}
			if tok.Line < 1 || tok.Column < 1 {
				t.Fatalf("bad location %d:%d for input %q", tok.Line, tok.Column, input)
			}
		}
	})
}
