package object

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"

	"tinyc/internal/diag"
)

func TestObjectInspectAndType(t *testing.T) {
	objs := []Object{
		&Integer{Value: 7},
		&ReturnValue{Value: &Integer{Value: 1}},
		&Break{},
		&Continue{},
		&Error{Message: "boom"},
		&Function{Name: "main"},
	}

	for _, o := range objs {
		if o.Type() == "" {
			t.Fatalf("empty type for %T", o)
		}
		if o.Inspect() == "" {
			t.Fatalf("empty inspect for %T", o)
		}
	}
}

func TestFunctionInspect(t *testing.T) {
	fn := &Function{Name: "add", Parameters: []string{"a", "b"}}
	be.Equal(t, fn.Type(), FUNCTION_OBJ)
	be.Equal(t, fn.Inspect(), "int add(int a, int b)")
}

func TestErrorObject(t *testing.T) {
	e := &Error{Kind: diag.DivisionByZero, Message: "division by zero", Line: 2, Column: 13, Context: "/"}
	be.Equal(t, e.Inspect(), "runtime error: division by zero (at 2:13) | context: /")

	err := e.Err()
	be.True(t, errors.Is(err, diag.DivisionByZero))
	be.Equal(t, err.Error(), "2:13: division by zero: division by zero")
}

func TestEnvironmentOperations(t *testing.T) {
	fn := NewEnvironment()
	if fn.HasInCurrentScope("x") {
		t.Fatalf("expected missing x")
	}
	fn.Declare("x", &Integer{Value: 1})

	block := NewEnclosedEnvironment(fn)
	if _, ok := block.Get("x"); !ok {
		t.Fatalf("block should see outer x")
	}
	if block.HasInCurrentScope("x") {
		t.Fatalf("x belongs to the outer scope")
	}
	if !block.Assign("x", &Integer{Value: 2}) {
		t.Fatalf("assign should update outer x")
	}
	if v, _ := fn.Get("x"); v.(*Integer).Value != 2 {
		t.Fatalf("outer x not updated")
	}
	if block.Assign("missing", &Integer{Value: 1}) {
		t.Fatalf("assign should fail for missing")
	}
}

func TestEnvironmentShadowing(t *testing.T) {
	fn := NewEnvironment()
	fn.Declare("x", &Integer{Value: 1})
	block := NewEnclosedEnvironment(fn)
	block.Declare("x", &Integer{Value: 5})
	block.Assign("x", &Integer{Value: 6})

	inner, _ := block.Get("x")
	outer, _ := fn.Get("x")
	be.Equal(t, inner.(*Integer).Value, int64(6))
	be.Equal(t, outer.(*Integer).Value, int64(1))
}
