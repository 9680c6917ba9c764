package codegen

import (
	"fmt"

	"tinyc/internal/asm"
)

// Context is one lexical scope of the function being generated. Lookups
// walk outward through parent; declarations only ever touch the innermost
// context.
type Context struct {
	parent   *Context
	vars     map[string]int64 // name -> offset from %rbp
	offset   int64            // bytes of locals allocated in the function so far
	function string
}

func newFunctionContext(function string) *Context {
	return &Context{vars: make(map[string]int64), function: function}
}

// child opens a nested scope that starts where c's allocation ends.
func (c *Context) child() *Context {
	return &Context{parent: c, vars: make(map[string]int64), offset: c.offset, function: c.function}
}

func (c *Context) lookup(name string) (int64, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if off, ok := ctx.vars[name]; ok {
			return off, true
		}
	}
	return 0, false
}

func (c *Context) declaredHere(name string) bool {
	_, ok := c.vars[name]
	return ok
}

// declare reserves the next 8-byte slot below the frame base for name.
func (c *Context) declare(name string) int64 {
	c.offset += 8
	c.vars[name] = -c.offset
	return -c.offset
}

// bind places name at a fixed offset without allocating, for parameters.
func (c *Context) bind(name string, offset int64) {
	c.vars[name] = offset
}

func (c *Context) returnLabel() string {
	return "_" + c.function + "_return"
}

// enterScope opens a child context for a compound statement or a for loop
// with a declaration.
func (cg *CodeGen) enterScope() {
	cg.ctx = cg.ctx.child()
}

// exitScope closes the innermost context and releases whatever it allocated.
func (cg *CodeGen) exitScope() {
	inner := cg.ctx
	cg.ctx = inner.parent
	cg.deallocate(inner.offset - cg.ctx.offset)
}

func (cg *CodeGen) deallocate(bytes int64) {
	if bytes > 0 {
		cg.opComment(fmt.Sprintf("deallocate %d bytes", bytes), asm.ADD, asm.Imm{Value: bytes}, asm.RSP)
	}
}

// loopFrame tracks one enclosing loop for break and continue.
type loopFrame struct {
	id            int
	offset        int64  // ctx.offset when the loop was entered
	continueLabel string // where continue jumps
	continued     bool   // set once a continue targets continueLabel
}

func (f *loopFrame) endLabel() string {
	return fmt.Sprintf("_end_loop_%d", f.id)
}

func (cg *CodeGen) pushLoop(id int, continueLabel string) *loopFrame {
	frame := &loopFrame{id: id, offset: cg.ctx.offset, continueLabel: continueLabel}
	cg.loops = append(cg.loops, frame)
	return frame
}

func (cg *CodeGen) popLoop() {
	if len(cg.loops) > 0 {
		cg.loops = cg.loops[:len(cg.loops)-1]
	}
}

func (cg *CodeGen) currentLoop() *loopFrame {
	if len(cg.loops) == 0 {
		return nil
	}
	return cg.loops[len(cg.loops)-1]
}
