package codegen

import (
	"tinyc/internal/asm"
	"tinyc/internal/ast"
)

// generateFunction emits
//
//	.globl _name
//	_name:          prologue, body
//	_name_return:   epilogue
//
// Parameters were pushed left to right by the caller, so the last one sits
// just above the return address at 16(%rbp).
func (cg *CodeGen) generateFunction(fn *ast.Func) error {
	symbol := "_" + fn.Name
	cg.emit(asm.Global{Symbol: symbol})
	cg.label(symbol)
	cg.op(asm.PUSH, asm.RBP)
	cg.op(asm.MOV, asm.RSP, asm.RBP)

	ctx := newFunctionContext(fn.Name)
	n := len(fn.Parameters)
	for i, param := range fn.Parameters {
		if ctx.declaredHere(param) {
			return redeclaredParameter(fn, param)
		}
		ctx.bind(param, int64(16+8*(n-1-i)))
	}
	cg.ctx = ctx
	defer func() { cg.ctx = nil }()

	for _, item := range fn.Body {
		if err := cg.generateBlockItem(item); err != nil {
			return err
		}
	}

	// falling off the end returns 0
	if !endsInReturn(fn.Body) {
		cg.op(asm.MOV, asm.Imm{Value: 0}, asm.RAX)
	}

	cg.label(ctx.returnLabel())
	cg.deallocate(ctx.offset)
	cg.op(asm.MOV, asm.RBP, asm.RSP)
	cg.op(asm.POP, asm.RBP)
	cg.op(asm.RET)
	return nil
}

func endsInReturn(body []ast.BlockItem) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(*ast.Return)
	return ok
}

// generateCall pushes the arguments left to right, calls, then drops the
// arguments again: the caller cleans up.
func (cg *CodeGen) generateCall(call *ast.FuncCall) error {
	for _, arg := range call.Arguments {
		if err := cg.generateExpression(arg); err != nil {
			return err
		}
		cg.op(asm.PUSH, asm.RAX)
	}
	cg.jump(asm.CALL, "_"+call.Name)
	if n := len(call.Arguments); n > 0 {
		cg.op(asm.ADD, asm.Imm{Value: int64(8 * n)}, asm.RSP)
	}
	return nil
}
