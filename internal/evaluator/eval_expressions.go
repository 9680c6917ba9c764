package evaluator

import (
	"tinyc/internal/ast"
	"tinyc/internal/diag"
	"tinyc/internal/object"
)

func nativeBoolToInteger(b bool) *object.Integer {
	if b {
		return &object.Integer{Value: 1}
	}
	return &object.Integer{Value: 0}
}

func evalUnary(operator ast.UnaryOperator, operand *object.Integer) object.Object {
	switch operator {
	case ast.Negation:
		return &object.Integer{Value: -operand.Value}
	case ast.BitwiseComplement:
		return &object.Integer{Value: ^operand.Value}
	case ast.LogicalNegation:
		return nativeBoolToInteger(operand.Value == 0)
	default:
		return newError(diag.UnexpectedToken, "unknown operator: %s", operator)
	}
}

// evalBinary applies a strict binary operator with the same results the
// generated code produces: wrapping arithmetic, shift counts taken mod 64
// and arithmetic right shifts.
func evalBinary(b *ast.BinOp, left, right *object.Integer) object.Object {
	l, r := left.Value, right.Value

	switch b.Operator {
	case ast.Add:
		return &object.Integer{Value: l + r}
	case ast.Subtract:
		return &object.Integer{Value: l - r}
	case ast.Multiply:
		return &object.Integer{Value: l * r}
	case ast.Divide, ast.Modulo:
		if err := checkDivisor(b, l, r); err != nil {
			return err
		}
		if b.Operator == ast.Divide {
			return &object.Integer{Value: l / r}
		}
		return &object.Integer{Value: l % r}
	case ast.BitwiseAnd:
		return &object.Integer{Value: l & r}
	case ast.BitwiseOr:
		return &object.Integer{Value: l | r}
	case ast.BitwiseXor:
		return &object.Integer{Value: l ^ r}
	case ast.ShiftLeft:
		return &object.Integer{Value: l << (uint64(r) & 63)}
	case ast.ShiftRight:
		return &object.Integer{Value: l >> (uint64(r) & 63)}
	case ast.Equal:
		return nativeBoolToInteger(l == r)
	case ast.NotEqual:
		return nativeBoolToInteger(l != r)
	case ast.Less:
		return nativeBoolToInteger(l < r)
	case ast.LessEqual:
		return nativeBoolToInteger(l <= r)
	case ast.Greater:
		return nativeBoolToInteger(l > r)
	case ast.GreaterEqual:
		return nativeBoolToInteger(l >= r)
	default:
		return errorAt(diag.UnexpectedToken, b.Token, "unknown operator: %s", b.Operator)
	}
}

// checkDivisor rejects the two cases idiv traps on.
func checkDivisor(b *ast.BinOp, l, r int64) *object.Error {
	if r == 0 {
		return errorAt(diag.DivisionByZero, b.Token, "division by zero")
	}
	if r == -1 && l == -1<<63 {
		return errorAt(diag.DivisionByZero, b.Token, "quotient of %d / -1 overflows", l)
	}
	return nil
}

// evalLogical short-circuits: the right operand is evaluated only when the
// left one does not decide the result.
func (e *Evaluator) evalLogical(b *ast.BinOp, env *object.Environment) object.Object {
	left := e.Eval(b.Left, env)
	if isError(left) {
		return left
	}
	if b.Operator == ast.LogicalOr && isTruthy(left) {
		return nativeBoolToInteger(true)
	}
	if b.Operator == ast.LogicalAnd && !isTruthy(left) {
		return nativeBoolToInteger(false)
	}

	right := e.Eval(b.Right, env)
	if isError(right) {
		return right
	}
	return nativeBoolToInteger(isTruthy(right))
}
