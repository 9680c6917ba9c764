package evaluator

import (
	"fmt"

	"tinyc/internal/ast"
	"tinyc/internal/diag"
	"tinyc/internal/object"
	"tinyc/internal/token"
)

// newError creates an error object without a position
func newError(kind diag.Kind, format string, a ...any) *object.Error {
	return &object.Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// errorAt creates an error object located at tok
func errorAt(kind diag.Kind, tok token.Token, format string, a ...any) *object.Error {
	err := newError(kind, format, a...)
	err.Line = tok.Line
	err.Column = tok.Column
	err.Context = tok.Literal
	return err
}

// isError checks if an object is an error (to stop propagation)
func isError(obj object.Object) bool {
	if obj != nil {
		return obj.Type() == object.ERROR_OBJ
	}
	return false
}

// annotate fills in a missing position on an error object from node. Other
// objects pass through unchanged.
func annotate(obj object.Object, node ast.Node) object.Object {
	err, ok := obj.(*object.Error)
	if !ok || node == nil || err.Line > 0 {
		return obj
	}
	if tok, ok := tokenFromNode(node); ok {
		err.Line = tok.Line
		err.Column = tok.Column
		err.Context = tok.Literal
	}
	return err
}

func tokenFromNode(node ast.Node) (token.Token, bool) {
	var tok token.Token
	switch n := node.(type) {
	case *ast.Declare:
		tok = n.Token
	case *ast.Return:
		tok = n.Token
	case *ast.ExpStatement:
		tok = n.Token
	case *ast.Conditional:
		tok = n.Token
	case *ast.Compound:
		tok = n.Token
	case *ast.For:
		tok = n.Token
	case *ast.ForDecl:
		tok = n.Token
	case *ast.While:
		tok = n.Token
	case *ast.Do:
		tok = n.Token
	case *ast.Break:
		tok = n.Token
	case *ast.Continue:
		tok = n.Token
	case *ast.Constant:
		tok = n.Token
	case *ast.VarReference:
		tok = n.Token
	case *ast.Assignment:
		tok = n.Token
	case *ast.UnOp:
		tok = n.Token
	case *ast.BinOp:
		tok = n.Token
	case *ast.CondExp:
		tok = n.Token
	case *ast.FuncCall:
		tok = n.Token
	default:
		return token.Token{}, false
	}
	return tok, tok.Line > 0 && tok.Column > 0
}
