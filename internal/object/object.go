package object

import (
	"fmt"
	"strings"

	"tinyc/internal/ast"
	"tinyc/internal/diag"
	"tinyc/internal/token"
)

// ObjectType identifies what kind of value we have
type ObjectType string

const (
	INTEGER_OBJ      ObjectType = "INTEGER"
	RETURN_VALUE_OBJ ObjectType = "RETURN_VALUE"
	BREAK_OBJ        ObjectType = "BREAK"
	CONTINUE_OBJ     ObjectType = "CONTINUE"
	ERROR_OBJ        ObjectType = "ERROR"
	FUNCTION_OBJ     ObjectType = "FUNCTION"
)

// Object is the interface for all runtime values
type Object interface {
	Type() ObjectType
	Inspect() string // String representation for printing
}

// Integer is the only data value: a 64-bit two's-complement int.
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }

// ReturnValue wraps the value being returned
// We need this to "bubble up" return statements through nested evaluations
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// Break and Continue bubble up to the innermost loop the same way.
type Break struct {
	Token token.Token
}

func (b *Break) Type() ObjectType { return BREAK_OBJ }
func (b *Break) Inspect() string  { return "break" }

type Continue struct {
	Token token.Token
}

func (c *Continue) Type() ObjectType { return CONTINUE_OBJ }
func (c *Continue) Inspect() string  { return "continue" }

// Error represents a runtime error. It aborts evaluation as soon as it is
// produced.
type Error struct {
	Kind    diag.Kind
	Message string
	Line    int
	Column  int
	Context string
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string {
	msg := "runtime error: " + e.Message
	if e.Line > 0 && e.Column > 0 {
		msg += fmt.Sprintf(" (at %d:%d)", e.Line, e.Column)
	}
	if strings.TrimSpace(e.Context) != "" {
		msg += fmt.Sprintf(" | context: %s", strings.TrimSpace(e.Context))
	}
	return msg
}

// Err converts the error object into a Go error matchable by kind.
func (e *Error) Err() error {
	return &diag.Error{
		Kind:    e.Kind,
		Message: e.Message,
		Context: e.Context,
		Line:    e.Line,
		Column:  e.Column,
	}
}

// Function represents a user-defined function
type Function struct {
	Token      token.Token
	Name       string
	Parameters []string
	Body       []ast.BlockItem
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	params := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		params = append(params, "int "+p)
	}
	return "int " + f.Name + "(" + strings.Join(params, ", ") + ")"
}
