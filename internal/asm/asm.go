// Package asm models x86-64 instructions and renders them as AT&T or Intel
// assembly text.
package asm

import (
	"fmt"
	"strings"
)

// Syntax selects the assembly dialect.
type Syntax int

const (
	ATT Syntax = iota
	Intel
)

func (s Syntax) String() string {
	switch s {
	case ATT:
		return "att"
	case Intel:
		return "intel"
	default:
		return fmt.Sprintf("Syntax(%d)", int(s))
	}
}

// ParseSyntax maps "att" or "intel" (any case) to a Syntax.
func ParseSyntax(name string) (Syntax, error) {
	switch strings.ToLower(name) {
	case "att", "at&t":
		return ATT, nil
	case "intel":
		return Intel, nil
	default:
		return ATT, fmt.Errorf("unknown assembly syntax %q (want att or intel)", name)
	}
}

// Opcode is a lowercase mnemonic.
type Opcode string

const (
	ADD   Opcode = "add"
	AND   Opcode = "and"
	CALL  Opcode = "call"
	CMP   Opcode = "cmp"
	CQO   Opcode = "cqo"
	IDIV  Opcode = "idiv"
	IMUL  Opcode = "imul"
	INT   Opcode = "int"
	JE    Opcode = "je"
	JMP   Opcode = "jmp"
	MOV   Opcode = "mov"
	NEG   Opcode = "neg"
	OR    Opcode = "or"
	POP   Opcode = "pop"
	PUSH  Opcode = "push"
	RET   Opcode = "ret"
	SAR   Opcode = "sar"
	SETE  Opcode = "sete"
	SETG  Opcode = "setg"
	SETGE Opcode = "setge"
	SETL  Opcode = "setl"
	SETLE Opcode = "setle"
	SETNE Opcode = "setne"
	SHL   Opcode = "shl"
	SUB   Opcode = "sub"
	XOR   Opcode = "xor"
)

// Operand is one of Imm, Hex, Register or LabelRef.
type Operand interface {
	render(Syntax) string
}

// Imm is a decimal immediate.
type Imm struct {
	Value int64
}

func (i Imm) render(s Syntax) string {
	if s == ATT {
		return fmt.Sprintf("$%d", i.Value)
	}
	return fmt.Sprintf("%d", i.Value)
}

// Hex is a hexadecimal immediate given as its digits, e.g. "80".
type Hex struct {
	Digits string
}

func (h Hex) render(s Syntax) string {
	if s == ATT {
		return "$0x" + h.Digits
	}
	return h.Digits + "h"
}

// Register names a register by its width-specific name ("rax", "al").
// With Memory set it is the memory operand Offset(%reg).
type Register struct {
	Name   string
	Offset int64
	Memory bool
}

var (
	RAX = Register{Name: "rax"}
	EAX = Register{Name: "eax"}
	AL  = Register{Name: "al"}
	RCX = Register{Name: "rcx"}
	ECX = Register{Name: "ecx"}
	CL  = Register{Name: "cl"}
	RDX = Register{Name: "rdx"}
	EDX = Register{Name: "edx"}
	RSP = Register{Name: "rsp"}
	RBP = Register{Name: "rbp"}
)

// At returns the memory operand offset bytes from r.
func (r Register) At(offset int64) Register {
	return Register{Name: r.Name, Offset: offset, Memory: true}
}

func (r Register) render(s Syntax) string {
	if s == ATT {
		name := "%" + r.Name
		switch {
		case !r.Memory:
			return name
		case r.Offset == 0:
			return "(" + name + ")"
		default:
			return fmt.Sprintf("%d(%s)", r.Offset, name)
		}
	}
	switch {
	case !r.Memory:
		return r.Name
	case r.Offset == 0:
		return "[" + r.Name + "]"
	case r.Offset > 0:
		return fmt.Sprintf("[%s+%d]", r.Name, r.Offset)
	default:
		return fmt.Sprintf("[%s%d]", r.Name, r.Offset)
	}
}

// LabelRef is a jump or call target.
type LabelRef struct {
	Name string
}

func (l LabelRef) render(Syntax) string { return l.Name }

// Instruction is one of Operation, Label or Global.
type Instruction interface {
	render(Syntax) string
	instruction()
}

func (Operation) instruction() {}
func (Label) instruction()     {}
func (Global) instruction()    {}

// Operation is an opcode with operands in AT&T order (source first,
// destination last) and an optional trailing comment.
type Operation struct {
	Opcode   Opcode
	Operands []Operand
	Comment  string
}

// Op builds an Operation.
func Op(opcode Opcode, operands ...Operand) Operation {
	return Operation{Opcode: opcode, Operands: operands}
}

// WithComment returns o with its trailing comment set.
func (o Operation) WithComment(comment string) Operation {
	o.Comment = comment
	return o
}

// Label marks a jump target: "name:".
type Label struct {
	Name string
}

func (l Label) render(Syntax) string { return l.Name + ":" }

// Global exports a symbol: " .globl name".
type Global struct {
	Symbol string
}

func (g Global) render(Syntax) string { return " .globl " + g.Symbol }
