package evaluator

import (
	"tinyc/internal/ast"
	"tinyc/internal/diag"
	"tinyc/internal/object"
)

// evalCall checks the callee and arity first, then evaluates the arguments
// left to right.
func (e *Evaluator) evalCall(call *ast.FuncCall, env *object.Environment) object.Object {
	function, ok := e.functions[call.Name]
	if !ok {
		return errorAt(diag.UnknownFunction, call.Token, "function %q is not defined", call.Name)
	}
	if len(call.Arguments) != len(function.Parameters) {
		return errorAt(diag.ArityMismatch, call.Token, "function %q expects %d arguments, got %d",
			call.Name, len(function.Parameters), len(call.Arguments))
	}

	args := make([]object.Object, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		evaluated := e.Eval(arg, env)
		if isError(evaluated) {
			return evaluated
		}
		args = append(args, evaluated)
	}

	return annotate(e.applyFunction(function, args), call)
}

// applyFunction runs the body in a fresh environment holding only the
// parameters; there are no globals. Falling off the end yields 0.
func (e *Evaluator) applyFunction(function *object.Function, args []object.Object) object.Object {
	e.depth++
	defer func() { e.depth-- }()
	if e.opts.MaxDepth > 0 && e.depth > e.opts.MaxDepth {
		return errorAt(diag.LimitExceeded, function.Token, "call depth limit of %d exceeded", e.opts.MaxDepth)
	}

	env := object.NewEnvironment()
	for i, param := range function.Parameters {
		if env.HasInCurrentScope(param) {
			return errorAt(diag.RedeclaredIdentifier, function.Token, "parameter %q of %s is declared twice", param, function.Name)
		}
		env.Declare(param, args[i])
	}

	result := e.evalBlockItems(function.Body, env)
	if result == nil {
		return &object.Integer{Value: 0}
	}
	switch r := result.(type) {
	case *object.ReturnValue:
		return r.Value
	case *object.Break:
		return errorAt(diag.BreakOutsideLoop, r.Token, "break statement not within a loop")
	case *object.Continue:
		return errorAt(diag.ContinueOutsideLoop, r.Token, "continue statement not within a loop")
	}
	return result
}
