package codegen

import (
	"tinyc/internal/asm"
	"tinyc/internal/ast"
)

// CodeGen holds the state for code generation. All of it is reset at the
// start of every Generate call, so one value can compile many programs.
type CodeGen struct {
	instructions []asm.Instruction
	labelCount   int             // last id handed out; the first construct gets 1
	ctx          *Context        // innermost scope of the function being generated
	loops        []*loopFrame    // enclosing loops, innermost last
	functions    map[string]bool // names already defined in this program
}

// New creates a new code generator
func New() *CodeGen {
	return &CodeGen{}
}

// Generate is shorthand for New().Generate(program).
func Generate(program *ast.Program) ([]asm.Instruction, error) {
	return New().Generate(program)
}

// Generate lowers program to x86-64 instructions. The first semantic error
// stops generation and is returned as a *diag.Error.
func (cg *CodeGen) Generate(program *ast.Program) ([]asm.Instruction, error) {
	cg.reset()

	for _, fn := range program.Functions {
		if cg.functions[fn.Name] {
			return nil, redeclaredFunction(fn)
		}
		cg.functions[fn.Name] = true

		if err := cg.generateFunction(fn); err != nil {
			return nil, err
		}
	}

	return cg.instructions, nil
}

func (cg *CodeGen) reset() {
	cg.instructions = []asm.Instruction{}
	cg.labelCount = 0
	cg.ctx = nil
	cg.loops = nil
	cg.functions = make(map[string]bool)
}

// emit appends one instruction
func (cg *CodeGen) emit(instr asm.Instruction) {
	cg.instructions = append(cg.instructions, instr)
}

// op emits an operation without a comment
func (cg *CodeGen) op(opcode asm.Opcode, operands ...asm.Operand) {
	cg.emit(asm.Op(opcode, operands...))
}

// opComment emits an operation with a trailing comment
func (cg *CodeGen) opComment(comment string, opcode asm.Opcode, operands ...asm.Operand) {
	cg.emit(asm.Op(opcode, operands...).WithComment(comment))
}

func (cg *CodeGen) label(name string) {
	cg.emit(asm.Label{Name: name})
}

func (cg *CodeGen) jump(opcode asm.Opcode, target string) {
	cg.op(opcode, asm.LabelRef{Name: target})
}

// newLabel hands out the next construct id. Every label a construct needs
// is derived from its id, e.g. _loop_3 and _end_loop_3.
func (cg *CodeGen) newLabel() int {
	cg.labelCount++
	return cg.labelCount
}
