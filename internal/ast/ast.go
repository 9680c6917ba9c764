package ast

import (
	"bytes"
	"strconv"
	"strings"

	"tinyc/internal/token"
)

// Node is the base interface for all AST nodes
// Every node must provide a TokenLiteral (for debugging) and String (for printing)
//
// String renders canonical C: binary operators, assignments and conditionals
// are fully parenthesised, so parsing the output yields the same tree.
type Node interface {
	TokenLiteral() string
	String() string
}

// BlockItem is anything that may appear between a function's braces:
// a statement or a declaration.
type BlockItem interface {
	Node
	blockItemNode()
}

// Statement nodes don't produce values
// Examples: return 10; while (x) x -= 1;
type Statement interface {
	BlockItem
	statementNode() // Dummy method to distinguish statements from declarations
}

// Expression nodes produce values
// Examples: 5, x, add(2, 3), 5 + 3
type Expression interface {
	Node
	expressionNode() // Dummy method to distinguish expressions from statements
}

// UnaryOperator is the operator of an UnOp.
type UnaryOperator string

const (
	Negation          UnaryOperator = "-"
	BitwiseComplement UnaryOperator = "~"
	LogicalNegation   UnaryOperator = "!"
)

// BinaryOperator is the operator of a BinOp. Compound assignments never
// reach the tree; the parser rewrites them into an Assignment of a BinOp.
type BinaryOperator string

const (
	Add          BinaryOperator = "+"
	Subtract     BinaryOperator = "-"
	Multiply     BinaryOperator = "*"
	Divide       BinaryOperator = "/"
	Modulo       BinaryOperator = "%"
	BitwiseAnd   BinaryOperator = "&"
	BitwiseOr    BinaryOperator = "|"
	BitwiseXor   BinaryOperator = "^"
	ShiftLeft    BinaryOperator = "<<"
	ShiftRight   BinaryOperator = ">>"
	LogicalAnd   BinaryOperator = "&&"
	LogicalOr    BinaryOperator = "||"
	Equal        BinaryOperator = "=="
	NotEqual     BinaryOperator = "!="
	Less         BinaryOperator = "<"
	LessEqual    BinaryOperator = "<="
	Greater      BinaryOperator = ">"
	GreaterEqual BinaryOperator = ">="
)

// Program is the root node of every AST
type Program struct {
	Functions []*Func
}

func (p *Program) TokenLiteral() string {
	if len(p.Functions) > 0 {
		return p.Functions[0].TokenLiteral()
	}
	return ""
}

// String renders one function per line.
func (p *Program) String() string {
	var out bytes.Buffer
	for i, f := range p.Functions {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(f.String())
	}
	return out.String()
}

// Func is a function definition: int name(int a, int b) { ... }
type Func struct {
	Token      token.Token // The function name token
	Name       string
	Parameters []string
	Body       []BlockItem
}

func (f *Func) TokenLiteral() string { return f.Token.Literal }
func (f *Func) String() string {
	var out bytes.Buffer
	params := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		params = append(params, "int "+p)
	}
	out.WriteString("int ")
	out.WriteString(f.Name)
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(itemsString(f.Body))
	return out.String()
}

// Declare introduces a local: int x; or int x = e;
type Declare struct {
	Token token.Token // The IDENT token
	Name  string
	Value Expression // nil when there is no initialiser
}

func (d *Declare) blockItemNode()       {}
func (d *Declare) TokenLiteral() string { return d.Token.Literal }
func (d *Declare) String() string {
	if d.Value == nil {
		return "int " + d.Name + ";"
	}
	return "int " + d.Name + " = " + d.Value.String() + ";"
}

// Return jumps to the function epilogue with Value in the accumulator.
type Return struct {
	Token token.Token
	Value Expression
}

func (r *Return) blockItemNode()       {}
func (r *Return) statementNode()       {}
func (r *Return) TokenLiteral() string { return r.Token.Literal }
func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

// ExpStatement evaluates an expression for its side effects. A nil
// Expression is the empty statement ";".
type ExpStatement struct {
	Token      token.Token // first token of the statement
	Expression Expression
}

func (es *ExpStatement) blockItemNode()       {}
func (es *ExpStatement) statementNode()       {}
func (es *ExpStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpStatement) String() string {
	if es.Expression == nil {
		return ";"
	}
	return es.Expression.String() + ";"
}

// Conditional is if (Condition) Then else Else; Else may be nil.
type Conditional struct {
	Token     token.Token
	Condition Expression
	Then      Statement
	Else      Statement
}

func (c *Conditional) blockItemNode()       {}
func (c *Conditional) statementNode()       {}
func (c *Conditional) TokenLiteral() string { return c.Token.Literal }
func (c *Conditional) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(c.Condition.String())
	out.WriteString(") ")
	out.WriteString(c.Then.String())
	if c.Else != nil {
		out.WriteString(" else ")
		out.WriteString(c.Else.String())
	}
	return out.String()
}

// Compound is a braced block; it opens a new scope.
type Compound struct {
	Token token.Token // The { token
	Items []BlockItem
}

func (c *Compound) blockItemNode()       {}
func (c *Compound) statementNode()       {}
func (c *Compound) TokenLiteral() string { return c.Token.Literal }
func (c *Compound) String() string       { return itemsString(c.Items) }

// For is a for loop whose init clause is an expression (or empty).
// An omitted condition is stored as Constant 1.
type For struct {
	Token     token.Token
	Init      Expression
	Condition Expression
	Post      Expression
	Body      Statement
}

func (f *For) blockItemNode()       {}
func (f *For) statementNode()       {}
func (f *For) TokenLiteral() string { return f.Token.Literal }
func (f *For) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if f.Init != nil {
		out.WriteString(f.Init.String())
	}
	out.WriteString("; ")
	out.WriteString(f.Condition.String())
	out.WriteString("; ")
	if f.Post != nil {
		out.WriteString(f.Post.String())
	}
	out.WriteString(") ")
	out.WriteString(f.Body.String())
	return out.String()
}

// ForDecl is a for loop whose init clause declares a variable scoped to the loop.
type ForDecl struct {
	Token     token.Token
	Init      *Declare
	Condition Expression
	Post      Expression
	Body      Statement
}

func (f *ForDecl) blockItemNode()       {}
func (f *ForDecl) statementNode()       {}
func (f *ForDecl) TokenLiteral() string { return f.Token.Literal }
func (f *ForDecl) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	out.WriteString(f.Init.String())
	out.WriteString(" ")
	out.WriteString(f.Condition.String())
	out.WriteString("; ")
	if f.Post != nil {
		out.WriteString(f.Post.String())
	}
	out.WriteString(") ")
	out.WriteString(f.Body.String())
	return out.String()
}

type While struct {
	Token     token.Token
	Condition Expression
	Body      Statement
}

func (w *While) blockItemNode()       {}
func (w *While) statementNode()       {}
func (w *While) TokenLiteral() string { return w.Token.Literal }
func (w *While) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}

type Do struct {
	Token     token.Token
	Body      Statement
	Condition Expression
}

func (d *Do) blockItemNode()       {}
func (d *Do) statementNode()       {}
func (d *Do) TokenLiteral() string { return d.Token.Literal }
func (d *Do) String() string {
	return "do " + d.Body.String() + " while (" + d.Condition.String() + ");"
}

type Break struct {
	Token token.Token
}

func (b *Break) blockItemNode()       {}
func (b *Break) statementNode()       {}
func (b *Break) TokenLiteral() string { return b.Token.Literal }
func (b *Break) String() string       { return "break;" }

type Continue struct {
	Token token.Token
}

func (c *Continue) blockItemNode()       {}
func (c *Continue) statementNode()       {}
func (c *Continue) TokenLiteral() string { return c.Token.Literal }
func (c *Continue) String() string       { return "continue;" }

// Constant is an integer literal.
type Constant struct {
	Token token.Token
	Value int64
}

func (c *Constant) expressionNode()      {}
func (c *Constant) TokenLiteral() string { return c.Token.Literal }
func (c *Constant) String() string       { return strconv.FormatInt(c.Value, 10) }

// VarReference reads a variable.
type VarReference struct {
	Token token.Token // The IDENT token
	Name  string
}

func (v *VarReference) expressionNode()      {}
func (v *VarReference) TokenLiteral() string { return v.Token.Literal }
func (v *VarReference) String() string       { return v.Name }

// Assignment stores Value into Name and yields the stored value.
type Assignment struct {
	Token token.Token // The IDENT token
	Name  string
	Value Expression
}

func (a *Assignment) expressionNode()      {}
func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) String() string {
	return "(" + a.Name + " = " + a.Value.String() + ")"
}

type UnOp struct {
	Token    token.Token // The operator token
	Operator UnaryOperator
	Operand  Expression
}

func (u *UnOp) expressionNode()      {}
func (u *UnOp) TokenLiteral() string { return u.Token.Literal }
func (u *UnOp) String() string       { return string(u.Operator) + u.Operand.String() }

type BinOp struct {
	Token    token.Token // The operator token
	Operator BinaryOperator
	Left     Expression
	Right    Expression
}

func (b *BinOp) expressionNode()      {}
func (b *BinOp) TokenLiteral() string { return b.Token.Literal }
func (b *BinOp) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + string(b.Operator) + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}

// CondExp is the ternary Condition ? Then : Else.
type CondExp struct {
	Token     token.Token // The ? token
	Condition Expression
	Then      Expression
	Else      Expression
}

func (c *CondExp) expressionNode()      {}
func (c *CondExp) TokenLiteral() string { return c.Token.Literal }
func (c *CondExp) String() string {
	return "(" + c.Condition.String() + " ? " + c.Then.String() + " : " + c.Else.String() + ")"
}

// FuncCall calls Name with Arguments evaluated left to right.
type FuncCall struct {
	Token     token.Token // The IDENT token
	Name      string
	Arguments []Expression
}

func (fc *FuncCall) expressionNode()      {}
func (fc *FuncCall) TokenLiteral() string { return fc.Token.Literal }
func (fc *FuncCall) String() string {
	args := make([]string, 0, len(fc.Arguments))
	for _, a := range fc.Arguments {
		args = append(args, a.String())
	}
	return fc.Name + "(" + strings.Join(args, ", ") + ")"
}

func itemsString(items []BlockItem) string {
	if len(items) == 0 {
		return "{ }"
	}
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, item := range items {
		out.WriteString(item.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}
