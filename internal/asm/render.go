package asm

import "strings"

const (
	opcodeWidth   = 8
	commentColumn = 30
)

// Render formats a single instruction.
func Render(instr Instruction, syntax Syntax) string {
	return instr.render(syntax)
}

// RenderProgram formats instrs one per line, with a trailing newline.
func RenderProgram(instrs []Instruction, syntax Syntax) string {
	var sb strings.Builder
	for _, instr := range instrs {
		sb.WriteString(instr.render(syntax))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// render lays an operation out as four spaces, the mnemonic padded to
// eight columns, the operands, and the comment aligned past the operands.
func (o Operation) render(syntax Syntax) string {
	operands := make([]string, len(o.Operands))
	for i, operand := range o.Operands {
		operands[i] = operand.render(syntax)
	}
	if syntax == Intel {
		for i, j := 0, len(operands)-1; i < j; i, j = i+1, j-1 {
			operands[i], operands[j] = operands[j], operands[i]
		}
	}
	operandText := strings.Join(operands, ", ")

	var sb strings.Builder
	sb.WriteString("    ")
	sb.WriteString(string(o.Opcode))
	if operandText == "" && o.Comment == "" {
		return sb.String()
	}
	sb.WriteString(strings.Repeat(" ", max(opcodeWidth-len(o.Opcode), 1)))
	sb.WriteString(operandText)

	if o.Comment != "" {
		marker := "#"
		if syntax == Intel {
			marker = ";"
		}
		sb.WriteString(strings.Repeat(" ", max(commentColumn-len(operandText), 0)))
		sb.WriteString(" " + marker + " " + o.Comment)
	}
	return sb.String()
}
