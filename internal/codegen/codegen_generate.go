package codegen

import (
	"fmt"

	"tinyc/internal/asm"
	"tinyc/internal/ast"
)

func (cg *CodeGen) generateBlockItem(item ast.BlockItem) error {
	switch n := item.(type) {
	case *ast.Declare:
		return cg.generateDeclare(n)
	case ast.Statement:
		return cg.generateStatement(n)
	default:
		return fmt.Errorf("codegen: unsupported block item %T", item)
	}
}

// generateDeclare allocates a slot and binds the name before evaluating the
// initialiser, so the initialiser already sees the new variable.
func (cg *CodeGen) generateDeclare(d *ast.Declare) error {
	if cg.ctx.declaredHere(d.Name) {
		return redeclaredVariable(d.Token, d.Name)
	}
	cg.opComment(fmt.Sprintf("allocate `%s`, 8 bytes", d.Name), asm.SUB, asm.Imm{Value: 8}, asm.RSP)
	offset := cg.ctx.declare(d.Name)

	if d.Value == nil {
		return nil
	}
	if err := cg.generateExpression(d.Value); err != nil {
		return err
	}
	cg.store(d.Name, offset)
	return nil
}

func (cg *CodeGen) store(name string, offset int64) {
	cg.opComment(fmt.Sprintf("`%s` assignment", name), asm.MOV, asm.RAX, asm.RBP.At(offset))
}

// generateStatement dispatches on statement type
func (cg *CodeGen) generateStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Return:
		if s.Value != nil {
			if err := cg.generateExpression(s.Value); err != nil {
				return err
			}
		}
		cg.jump(asm.JMP, cg.ctx.returnLabel())
		return nil
	case *ast.ExpStatement:
		if s.Expression == nil {
			return nil
		}
		return cg.generateExpression(s.Expression)
	case *ast.Conditional:
		return cg.generateConditional(s)
	case *ast.Compound:
		return cg.generateCompound(s)
	case *ast.While:
		return cg.generateWhile(s)
	case *ast.Do:
		return cg.generateDo(s)
	case *ast.For:
		return cg.generateFor(s)
	case *ast.ForDecl:
		return cg.generateForDecl(s)
	case *ast.Break:
		return cg.generateBreak(s)
	case *ast.Continue:
		return cg.generateContinue(s)
	default:
		return fmt.Errorf("codegen: unsupported statement %T", stmt)
	}
}

func (cg *CodeGen) generateCompound(c *ast.Compound) error {
	cg.enterScope()
	for _, item := range c.Items {
		if err := cg.generateBlockItem(item); err != nil {
			return err
		}
	}
	cg.exitScope()
	return nil
}

// generateConditional emits
//
//	<cond>; cmp $0; je else
//	<then>; jmp end
//	else: <else>
//	end:
//
// Without an else branch the je goes straight to end.
func (cg *CodeGen) generateConditional(c *ast.Conditional) error {
	id := cg.newLabel()
	elseLabel := fmt.Sprintf("_if_else_%d", id)
	endLabel := fmt.Sprintf("_if_end_%d", id)

	if err := cg.generateExpression(c.Condition); err != nil {
		return err
	}
	cg.op(asm.CMP, asm.Imm{Value: 0}, asm.RAX)

	if c.Else == nil {
		cg.jump(asm.JE, endLabel)
		if err := cg.generateStatement(c.Then); err != nil {
			return err
		}
		cg.label(endLabel)
		return nil
	}

	cg.jump(asm.JE, elseLabel)
	if err := cg.generateStatement(c.Then); err != nil {
		return err
	}
	cg.jump(asm.JMP, endLabel)
	cg.label(elseLabel)
	if err := cg.generateStatement(c.Else); err != nil {
		return err
	}
	cg.label(endLabel)
	return nil
}

// generateTest evaluates cond and leaves the loop when it is zero.
func (cg *CodeGen) generateTest(cond ast.Expression, frame *loopFrame) error {
	if err := cg.generateExpression(cond); err != nil {
		return err
	}
	cg.op(asm.CMP, asm.Imm{Value: 0}, asm.RAX)
	cg.jump(asm.JE, frame.endLabel())
	return nil
}

// generateWhile emits
//
//	_loop_N:  <cond>; cmp $0; je _end_loop_N
//	          <body>; jmp _loop_N
//	_end_loop_N:
//
// continue re-runs the test at _loop_N.
func (cg *CodeGen) generateWhile(w *ast.While) error {
	id := cg.newLabel()
	top := fmt.Sprintf("_loop_%d", id)
	frame := cg.pushLoop(id, top)
	defer cg.popLoop()

	cg.label(top)
	if err := cg.generateTest(w.Condition, frame); err != nil {
		return err
	}
	if err := cg.generateStatement(w.Body); err != nil {
		return err
	}
	cg.jump(asm.JMP, top)
	cg.label(frame.endLabel())
	return nil
}

// generateDo emits
//
//	_loop_N:  <body>
//	          <cond>; cmp $0; je _end_loop_N
//	          jmp _loop_N
//	_end_loop_N:
//
// continue must still test the condition, so it targets _continue_loop_N
// placed just before the test.
func (cg *CodeGen) generateDo(d *ast.Do) error {
	id := cg.newLabel()
	top := fmt.Sprintf("_loop_%d", id)
	frame := cg.pushLoop(id, fmt.Sprintf("_continue_loop_%d", id))
	defer cg.popLoop()

	cg.label(top)
	if err := cg.generateStatement(d.Body); err != nil {
		return err
	}
	cg.continueLabel(frame)
	if err := cg.generateTest(d.Condition, frame); err != nil {
		return err
	}
	cg.jump(asm.JMP, top)
	cg.label(frame.endLabel())
	return nil
}

func (cg *CodeGen) generateFor(f *ast.For) error {
	if f.Init != nil {
		if err := cg.generateExpression(f.Init); err != nil {
			return err
		}
	}
	return cg.generateForLoop(f.Condition, f.Post, f.Body)
}

// generateForDecl scopes the loop variable to the loop: it is allocated
// before _loop_N and released after _end_loop_N.
func (cg *CodeGen) generateForDecl(f *ast.ForDecl) error {
	cg.enterScope()
	if err := cg.generateDeclare(f.Init); err != nil {
		return err
	}
	if err := cg.generateForLoop(f.Condition, f.Post, f.Body); err != nil {
		return err
	}
	cg.exitScope()
	return nil
}

// generateForLoop emits
//
//	_loop_N:  <cond>; cmp $0; je _end_loop_N
//	          <body>
//	          <post>; jmp _loop_N
//	_end_loop_N:
//
// continue runs the post expression first, via _continue_loop_N.
func (cg *CodeGen) generateForLoop(cond, post ast.Expression, body ast.Statement) error {
	id := cg.newLabel()
	top := fmt.Sprintf("_loop_%d", id)
	frame := cg.pushLoop(id, fmt.Sprintf("_continue_loop_%d", id))
	defer cg.popLoop()

	cg.label(top)
	if err := cg.generateTest(cond, frame); err != nil {
		return err
	}
	if err := cg.generateStatement(body); err != nil {
		return err
	}
	cg.continueLabel(frame)
	if post != nil {
		if err := cg.generateExpression(post); err != nil {
			return err
		}
	}
	cg.jump(asm.JMP, top)
	cg.label(frame.endLabel())
	return nil
}

// continueLabel places the continue target, but only if something jumps to it.
func (cg *CodeGen) continueLabel(frame *loopFrame) {
	if frame.continued {
		cg.label(frame.continueLabel)
	}
}

// generateBreak releases the locals declared since the loop was entered,
// then leaves the loop.
func (cg *CodeGen) generateBreak(b *ast.Break) error {
	frame := cg.currentLoop()
	if frame == nil {
		return breakOutsideLoop(b)
	}
	cg.deallocate(cg.ctx.offset - frame.offset)
	cg.jump(asm.JMP, frame.endLabel())
	return nil
}

func (cg *CodeGen) generateContinue(c *ast.Continue) error {
	frame := cg.currentLoop()
	if frame == nil {
		return continueOutsideLoop(c)
	}
	frame.continued = true
	cg.deallocate(cg.ctx.offset - frame.offset)
	cg.jump(asm.JMP, frame.continueLabel)
	return nil
}
