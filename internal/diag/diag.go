package diag

import (
	"errors"
	"fmt"
	"strings"

	"tinyc/internal/token"
)

// Kind classifies a compiler error. It implements error so callers can
// match with errors.Is(err, diag.UnexpectedToken).
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	IllegalCharacter     Kind = "illegal character"
	InvalidLiteral       Kind = "invalid literal"
	UnexpectedToken      Kind = "unexpected token"
	UnexpectedEndOfInput Kind = "unexpected end of input"
	UnresolvedIdentifier Kind = "unresolved identifier"
	RedeclaredIdentifier Kind = "redeclared identifier"
	BreakOutsideLoop     Kind = "break outside loop"
	ContinueOutsideLoop  Kind = "continue outside loop"

	// Raised only by the interpreter.
	UnknownFunction Kind = "unknown function"
	ArityMismatch   Kind = "arity mismatch"
	DivisionByZero  Kind = "division by zero"
	LimitExceeded   Kind = "limit exceeded"
)

// Error is a located compiler error. Line and Column are 1-based; zero means
// the position is unknown.
type Error struct {
	Kind    Kind
	Message string
	Context string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Kind }

// New builds an error without a source position.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At builds an error located at tok.
func At(kind Kind, tok token.Token, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Context: tok.Literal,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

const (
	colorRed   = "\x1b[1;31m"
	colorReset = "\x1b[0m"
)

// Render formats err for a terminal: "file:line:col: kind: message", then the
// offending source line with a caret under the column. Errors that are not
// *Error render as a single line.
func Render(filename, source string, err error, color bool) string {
	var e *Error
	if !errors.As(err, &e) {
		return fmt.Sprintf("%s: %s\n", filename, err)
	}

	var sb strings.Builder
	sb.WriteString(filename)
	if e.Line > 0 {
		sb.WriteString(":")
	} else {
		sb.WriteString(": ")
	}
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	lines := strings.Split(source, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return sb.String()
	}
	line := strings.TrimRight(lines[e.Line-1], "\r")
	sb.WriteString(line)
	sb.WriteString("\n")

	// keep tabs so the caret lines up with the source line
	col := min(max(e.Column, 1), len(line)+1)
	for _, ch := range line[:col-1] {
		if ch == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	caret := "^"
	if n := len(e.Context); n > 1 && col-1+n <= len(line) {
		caret += strings.Repeat("~", n-1)
	}
	if color {
		caret = colorRed + caret + colorReset
	}
	sb.WriteString(caret)
	sb.WriteString("\n")
	return sb.String()
}
