package codegen

import (
	"fmt"

	"tinyc/internal/asm"
	"tinyc/internal/ast"
)

// generateExpression leaves the value of e in %rax. Every push it emits is
// matched by a pop before it returns.
func (cg *CodeGen) generateExpression(e ast.Expression) error {
	switch n := e.(type) {
	case *ast.Constant:
		cg.op(asm.MOV, asm.Imm{Value: n.Value}, asm.RAX)
		return nil
	case *ast.VarReference:
		offset, ok := cg.ctx.lookup(n.Name)
		if !ok {
			return unresolved(n.Token, n.Name)
		}
		cg.opComment(fmt.Sprintf("`%s` reference", n.Name), asm.MOV, asm.RBP.At(offset), asm.RAX)
		return nil
	case *ast.Assignment:
		offset, ok := cg.ctx.lookup(n.Name)
		if !ok {
			return unresolved(n.Token, n.Name)
		}
		if err := cg.generateExpression(n.Value); err != nil {
			return err
		}
		cg.store(n.Name, offset)
		return nil
	case *ast.UnOp:
		return cg.generateUnary(n)
	case *ast.BinOp:
		switch n.Operator {
		case ast.LogicalOr:
			return cg.generateOr(n)
		case ast.LogicalAnd:
			return cg.generateAnd(n)
		default:
			return cg.generateBinary(n)
		}
	case *ast.CondExp:
		return cg.generateTernary(n)
	case *ast.FuncCall:
		return cg.generateCall(n)
	default:
		return fmt.Errorf("codegen: unsupported expression %T", e)
	}
}

func (cg *CodeGen) generateUnary(u *ast.UnOp) error {
	if err := cg.generateExpression(u.Operand); err != nil {
		return err
	}
	switch u.Operator {
	case ast.Negation:
		cg.op(asm.NEG, asm.RAX)
	case ast.BitwiseComplement:
		cg.op(asm.XOR, asm.Imm{Value: -1}, asm.RAX)
	case ast.LogicalNegation:
		cg.op(asm.CMP, asm.Imm{Value: 0}, asm.RAX)
		cg.op(asm.MOV, asm.Imm{Value: 0}, asm.RAX)
		cg.op(asm.SETE, asm.AL)
	default:
		return fmt.Errorf("codegen: unsupported unary operator %q", u.Operator)
	}
	return nil
}

var arithmeticOps = map[ast.BinaryOperator]asm.Opcode{
	ast.Add:        asm.ADD,
	ast.Subtract:   asm.SUB,
	ast.Multiply:   asm.IMUL,
	ast.BitwiseAnd: asm.AND,
	ast.BitwiseOr:  asm.OR,
	ast.BitwiseXor: asm.XOR,
}

var setOps = map[ast.BinaryOperator]asm.Opcode{
	ast.Equal:        asm.SETE,
	ast.NotEqual:     asm.SETNE,
	ast.Less:         asm.SETL,
	ast.LessEqual:    asm.SETLE,
	ast.Greater:      asm.SETG,
	ast.GreaterEqual: asm.SETGE,
}

// generateBinary evaluates the left operand into %rax, parks it on the
// stack while the right operand is computed, then combines them with the
// left operand in %rax and the right one in %rcx.
func (cg *CodeGen) generateBinary(b *ast.BinOp) error {
	if err := cg.generateExpression(b.Left); err != nil {
		return err
	}
	cg.op(asm.PUSH, asm.RAX)
	if err := cg.generateExpression(b.Right); err != nil {
		return err
	}
	cg.op(asm.MOV, asm.RAX, asm.RCX)
	cg.op(asm.POP, asm.RAX)

	comment := string(b.Operator)
	if opcode, ok := arithmeticOps[b.Operator]; ok {
		cg.opComment(comment, opcode, asm.RCX, asm.RAX)
		return nil
	}
	if setcc, ok := setOps[b.Operator]; ok {
		cg.op(asm.CMP, asm.RCX, asm.RAX)
		cg.op(asm.MOV, asm.Imm{Value: 0}, asm.RAX)
		cg.opComment(comment, setcc, asm.AL)
		return nil
	}

	switch b.Operator {
	case ast.Divide:
		cg.op(asm.CQO)
		cg.opComment(comment, asm.IDIV, asm.RCX)
	case ast.Modulo:
		cg.op(asm.CQO)
		cg.op(asm.IDIV, asm.RCX)
		cg.opComment(comment, asm.MOV, asm.RDX, asm.RAX)
	case ast.ShiftLeft:
		cg.opComment(comment, asm.SHL, asm.CL, asm.RAX)
	case ast.ShiftRight:
		cg.opComment(comment, asm.SAR, asm.CL, asm.RAX)
	default:
		return fmt.Errorf("codegen: unsupported binary operator %q", b.Operator)
	}
	return nil
}

// truthiness turns %rax into 0 or 1.
func (cg *CodeGen) truthiness(comment string) {
	cg.op(asm.CMP, asm.Imm{Value: 0}, asm.RAX)
	cg.op(asm.MOV, asm.Imm{Value: 0}, asm.RAX)
	cg.opComment(comment, asm.SETNE, asm.AL)
}

// generateOr skips the right operand when the left one is nonzero.
func (cg *CodeGen) generateOr(b *ast.BinOp) error {
	id := cg.newLabel()
	rhsLabel := fmt.Sprintf("_or_rhs_%d", id)
	endLabel := fmt.Sprintf("_or_end_%d", id)

	if err := cg.generateExpression(b.Left); err != nil {
		return err
	}
	cg.op(asm.CMP, asm.Imm{Value: 0}, asm.RAX)
	cg.jump(asm.JE, rhsLabel)
	cg.op(asm.MOV, asm.Imm{Value: 1}, asm.RAX)
	cg.jump(asm.JMP, endLabel)

	cg.label(rhsLabel)
	if err := cg.generateExpression(b.Right); err != nil {
		return err
	}
	cg.truthiness(string(b.Operator))
	cg.label(endLabel)
	return nil
}

// generateAnd skips the right operand when the left one is zero; %rax
// already holds the 0 result on that path.
func (cg *CodeGen) generateAnd(b *ast.BinOp) error {
	id := cg.newLabel()
	endLabel := fmt.Sprintf("_and_end_%d", id)

	if err := cg.generateExpression(b.Left); err != nil {
		return err
	}
	cg.op(asm.CMP, asm.Imm{Value: 0}, asm.RAX)
	cg.jump(asm.JE, endLabel)

	if err := cg.generateExpression(b.Right); err != nil {
		return err
	}
	cg.truthiness(string(b.Operator))
	cg.label(endLabel)
	return nil
}

func (cg *CodeGen) generateTernary(c *ast.CondExp) error {
	id := cg.newLabel()
	elseLabel := fmt.Sprintf("_ternary_else_%d", id)
	endLabel := fmt.Sprintf("_ternary_end_%d", id)

	if err := cg.generateExpression(c.Condition); err != nil {
		return err
	}
	cg.op(asm.CMP, asm.Imm{Value: 0}, asm.RAX)
	cg.jump(asm.JE, elseLabel)
	if err := cg.generateExpression(c.Then); err != nil {
		return err
	}
	cg.jump(asm.JMP, endLabel)
	cg.label(elseLabel)
	if err := cg.generateExpression(c.Else); err != nil {
		return err
	}
	cg.label(endLabel)
	return nil
}
