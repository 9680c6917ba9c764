package ast

import (
	"testing"

	"github.com/nalgeon/be"

	"tinyc/internal/token"
)

func tok(tt token.TokenType, lit string) token.Token { return token.Token{Type: tt, Literal: lit} }

func ref(name string) *VarReference {
	return &VarReference{Token: tok(token.IDENT, name), Name: name}
}

func num(v int64) *Constant {
	return &Constant{Token: tok(token.INTEGER, ""), Value: v}
}

func TestExpressionStrings(t *testing.T) {
	tests := []struct {
		expr Expression
		want string
	}{
		{num(42), "42"},
		{ref("x"), "x"},
		{&Assignment{Name: "x", Value: num(1)}, "(x = 1)"},
		{&UnOp{Operator: Negation, Operand: num(5)}, "-5"},
		{&UnOp{Operator: Negation, Operand: &UnOp{Operator: Negation, Operand: ref("a")}}, "--a"},
		{&UnOp{Operator: LogicalNegation, Operand: &BinOp{Operator: Add, Left: ref("a"), Right: num(1)}}, "!(a + 1)"},
		{&BinOp{Operator: ShiftLeft, Left: ref("a"), Right: &BinOp{Operator: Multiply, Left: num(2), Right: num(3)}}, "(a << (2 * 3))"},
		{&CondExp{Condition: ref("c"), Then: num(1), Else: &Assignment{Name: "y", Value: num(2)}}, "(c ? 1 : (y = 2))"},
		{&FuncCall{Name: "foo", Arguments: []Expression{num(4), ref("b")}}, "foo(4, b)"},
		{&FuncCall{Name: "bar"}, "bar()"},
	}

	for _, tt := range tests {
		be.Equal(t, tt.expr.String(), tt.want)
	}
}

func TestStatementStrings(t *testing.T) {
	body := &Compound{Items: []BlockItem{
		&Declare{Name: "a"},
		&ExpStatement{Expression: &Assignment{Name: "a", Value: num(3)}},
		&Break{},
	}}

	tests := []struct {
		stmt BlockItem
		want string
	}{
		{&Return{Value: num(2)}, "return 2;"},
		{&Return{}, "return;"},
		{&ExpStatement{}, ";"},
		{&Declare{Name: "x", Value: num(1)}, "int x = 1;"},
		{&Compound{}, "{ }"},
		{body, "{ int a; (a = 3); break; }"},
		{&Conditional{Condition: ref("a"), Then: &Return{Value: num(1)}}, "if (a) return 1;"},
		{&Conditional{Condition: ref("a"), Then: &Return{Value: num(1)}, Else: &Continue{}}, "if (a) return 1; else continue;"},
		{&For{Condition: num(1), Body: &ExpStatement{}}, "for (; 1; ) ;"},
		{
			&For{Init: &Assignment{Name: "i", Value: num(0)}, Condition: ref("i"), Post: &Assignment{Name: "i", Value: num(1)}, Body: body},
			"for ((i = 0); i; (i = 1)) { int a; (a = 3); break; }",
		},
		{
			&ForDecl{Init: &Declare{Name: "i", Value: num(0)}, Condition: &BinOp{Operator: Less, Left: ref("i"), Right: num(3)}, Body: &Continue{}},
			"for (int i = 0; (i < 3); ) continue;",
		},
		{&While{Condition: ref("x"), Body: &Compound{}}, "while (x) { }"},
		{&Do{Body: &Compound{}, Condition: ref("x")}, "do { } while (x);"},
	}

	for _, tt := range tests {
		be.Equal(t, tt.stmt.String(), tt.want)
	}
}

func TestProgramString(t *testing.T) {
	prog := &Program{Functions: []*Func{
		{
			Token:      tok(token.IDENT, "foo"),
			Name:       "foo",
			Parameters: []string{"a", "b"},
			Body:       []BlockItem{&Return{Value: &BinOp{Operator: Multiply, Left: ref("a"), Right: ref("b")}}},
		},
		{
			Token: tok(token.IDENT, "main"),
			Name:  "main",
			Body:  []BlockItem{&Return{Value: &FuncCall{Name: "foo", Arguments: []Expression{num(4), num(2)}}}},
		},
	}}

	be.Equal(t, prog.String(), "int foo(int a, int b) { return (a * b); }\nint main() { return foo(4, 2); }")
	be.Equal(t, prog.TokenLiteral(), "foo")
	be.Equal(t, (&Program{}).TokenLiteral(), "")
}
