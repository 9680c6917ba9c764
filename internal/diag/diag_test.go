package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nalgeon/be"

	"tinyc/internal/token"
)

func TestErrorFormatting(t *testing.T) {
	tok := token.Token{Type: token.IDENT, Literal: "x", Line: 3, Column: 9}
	err := At(UnresolvedIdentifier, tok, "variable %q is not declared", "x")
	be.Equal(t, err.Error(), `3:9: unresolved identifier: variable "x" is not declared`)
	be.Equal(t, err.Context, "x")

	plain := New(UnknownFunction, "no function %q", "foo")
	be.Equal(t, plain.Error(), `unknown function: no function "foo"`)
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("parse: %w", New(UnexpectedToken, "expected ';'"))
	be.True(t, errors.Is(err, UnexpectedToken))
	be.True(t, !errors.Is(err, UnexpectedEndOfInput))

	var e *Error
	be.True(t, errors.As(err, &e))
	be.Equal(t, e.Kind, UnexpectedToken)
}

func TestRender(t *testing.T) {
	src := "int main() {\n\treturn foo;\n}\n"
	err := At(UnresolvedIdentifier, token.Token{Literal: "foo", Line: 2, Column: 9}, "variable %q is not declared", "foo")

	got := Render("prog.c", src, err, false)
	want := "prog.c:2:9: unresolved identifier: variable \"foo\" is not declared\n" +
		"\treturn foo;\n" +
		"\t       ^~~\n"
	be.Equal(t, got, want)

	colored := Render("prog.c", src, err, true)
	be.Equal(t, colored, "prog.c:2:9: unresolved identifier: variable \"foo\" is not declared\n"+
		"\treturn foo;\n"+
		"\t       "+colorRed+"^~~"+colorReset+"\n")
}

func TestRenderWithoutPosition(t *testing.T) {
	got := Render("prog.c", "", New(LimitExceeded, "step limit reached"), false)
	be.Equal(t, got, "prog.c: limit exceeded: step limit reached\n")

	got = Render("prog.c", "", errors.New("boom"), false)
	be.Equal(t, got, "prog.c: boom\n")
}
