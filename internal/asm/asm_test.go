package asm

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestRenderOperationSyntax(t *testing.T) {
	tests := []struct {
		op    Operation
		att   string
		intel string
	}{
		{Op(MOV, RAX, RBP), "    mov     %rax, %rbp", "    mov     rbp, rax"},
		{Op(MOV, Imm{1}, RAX), "    mov     $1, %rax", "    mov     rax, 1"},
		{Op(INT, Hex{"80"}), "    int     $0x80", "    int     80h"},
		{Op(INT, Hex{"FFFF"}), "    int     $0xFFFF", "    int     FFFFh"},
		{Op(MOV, RAX, RBP.At(-16)), "    mov     %rax, -16(%rbp)", "    mov     [rbp-16], rax"},
		{Op(MOV, RAX, RBP.At(3)), "    mov     %rax, 3(%rbp)", "    mov     [rbp+3], rax"},
		{Op(MOV, RBP.At(0), RAX), "    mov     (%rbp), %rax", "    mov     rax, [rbp]"},
		{Op(SHL, CL, RAX), "    shl     %cl, %rax", "    shl     rax, cl"},
		{Op(SETGE, AL), "    setge   %al", "    setge   al"},
		{Op(CALL, LabelRef{"_foo"}), "    call    _foo", "    call    _foo"},
		{Op(RET), "    ret", "    ret"},
		{Op(CQO), "    cqo", "    cqo"},
	}

	for i, tt := range tests {
		be.Equal(t, Render(tt.op, ATT), tt.att)
		if got := Render(tt.op, Intel); got != tt.intel {
			t.Errorf("tests[%d] - intel: expected=%q, got=%q", i, tt.intel, got)
		}
	}
}

func TestRenderComment(t *testing.T) {
	op := Op(ADD, RCX, RAX).WithComment("+")
	be.Equal(t, Render(op, ATT), "    add     %rcx, %rax"+strings.Repeat(" ", 20)+" # +")
	be.Equal(t, Render(op, Intel), "    add     rax, rcx"+strings.Repeat(" ", 22)+" ; +")

	sub := Op(SUB, Imm{8}, RSP).WithComment("allocate `a`, 8 bytes")
	be.Equal(t, Render(sub, ATT), "    sub     $8, %rsp"+strings.Repeat(" ", 22)+" # allocate `a`, 8 bytes")
}

func TestRenderDirectives(t *testing.T) {
	be.Equal(t, Render(Label{"_main"}, ATT), "_main:")
	be.Equal(t, Render(Label{"_main"}, Intel), "_main:")
	be.Equal(t, Render(Global{"_main"}, ATT), " .globl _main")
}

func TestRenderProgram(t *testing.T) {
	program := []Instruction{
		Global{"_main"},
		Label{"_main"},
		Op(PUSH, RBP),
		Op(MOV, Imm{2}, RAX),
		Op(POP, RBP),
		Op(RET),
	}
	want := " .globl _main\n" +
		"_main:\n" +
		"    push    %rbp\n" +
		"    mov     $2, %rax\n" +
		"    pop     %rbp\n" +
		"    ret\n"
	be.Equal(t, RenderProgram(program, ATT), want)
	be.Equal(t, RenderProgram(nil, ATT), "")
}

func TestParseSyntax(t *testing.T) {
	s, err := ParseSyntax("att")
	be.Err(t, err, nil)
	be.Equal(t, s, ATT)

	s, err = ParseSyntax("Intel")
	be.Err(t, err, nil)
	be.Equal(t, s, Intel)
	be.Equal(t, s.String(), "intel")

	_, err = ParseSyntax("masm")
	be.Err(t, err, "unknown assembly syntax")
}
