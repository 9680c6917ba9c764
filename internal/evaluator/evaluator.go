// Package evaluator interprets a program directly from its AST. It is the
// semantic reference the code generator is tested against.
package evaluator

import (
	"tinyc/internal/ast"
	"tinyc/internal/diag"
	"tinyc/internal/object"
)

// Options bounds an evaluation so that non-terminating programs fail
// instead of hanging. A zero field means no limit.
type Options struct {
	MaxSteps int // nodes evaluated
	MaxDepth int // nested calls
}

// DefaultOptions returns the limits used by the CLI and the test corpus.
func DefaultOptions() Options {
	return Options{MaxSteps: 50_000_000, MaxDepth: 10_000}
}

// Evaluator holds the state of one run. It is reset by every Run call.
type Evaluator struct {
	opts      Options
	functions map[string]*object.Function
	steps     int
	depth     int
}

// New creates an evaluator with the given limits
func New(opts Options) *Evaluator {
	return &Evaluator{opts: opts}
}

// Run is shorthand for New(opts).Run(program).
func Run(program *ast.Program, opts Options) (int64, error) {
	return New(opts).Run(program)
}

// Run calls main() and returns its value. Runtime errors are returned as
// *diag.Error.
func (e *Evaluator) Run(program *ast.Program) (int64, error) {
	e.functions = make(map[string]*object.Function)
	e.steps = 0
	e.depth = 0

	for _, fn := range program.Functions {
		if _, exists := e.functions[fn.Name]; exists {
			return 0, errorAt(diag.RedeclaredIdentifier, fn.Token, "function %q is already defined", fn.Name).Err()
		}
		e.functions[fn.Name] = &object.Function{
			Token:      fn.Token,
			Name:       fn.Name,
			Parameters: fn.Parameters,
			Body:       fn.Body,
		}
	}

	main, ok := e.functions["main"]
	if !ok {
		return 0, diag.New(diag.UnknownFunction, "program has no main function")
	}
	if len(main.Parameters) != 0 {
		return 0, errorAt(diag.ArityMismatch, main.Token, "main must not take parameters, has %d", len(main.Parameters)).Err()
	}

	result := e.applyFunction(main, nil)
	if errObj, ok := result.(*object.Error); ok {
		return 0, errObj.Err()
	}
	return result.(*object.Integer).Value, nil
}

// Eval is the heart of the interpreter
// It takes an AST node and returns an Object
// This is recursive - expressions contain expressions
func (e *Evaluator) Eval(node ast.Node, env *object.Environment) object.Object {
	if err := e.step(node); err != nil {
		return err
	}

	switch node := node.(type) {
	// Block items
	case *ast.Declare:
		return e.evalDeclare(node, env)

	case *ast.Return:
		val := e.Eval(node.Value, env)
		if isError(val) {
			return val
		}
		return &object.ReturnValue{Value: val}

	case *ast.ExpStatement:
		if node.Expression == nil {
			return nil
		}
		val := e.Eval(node.Expression, env)
		if isError(val) {
			return val
		}
		return nil

	case *ast.Conditional:
		return e.evalConditional(node, env)

	case *ast.Compound:
		return e.evalBlockItems(node.Items, object.NewEnclosedEnvironment(env))

	case *ast.While:
		return e.evalWhileStatement(node, env)

	case *ast.Do:
		return e.evalDoStatement(node, env)

	case *ast.For:
		if node.Init != nil {
			if init := e.Eval(node.Init, env); isError(init) {
				return init
			}
		}
		return e.evalForLoop(node.Condition, node.Post, node.Body, env)

	case *ast.ForDecl:
		loopEnv := object.NewEnclosedEnvironment(env)
		if init := e.Eval(node.Init, loopEnv); isError(init) {
			return init
		}
		return e.evalForLoop(node.Condition, node.Post, node.Body, loopEnv)

	case *ast.Break:
		return &object.Break{Token: node.Token}

	case *ast.Continue:
		return &object.Continue{Token: node.Token}

	// Expressions
	case *ast.Constant:
		return &object.Integer{Value: node.Value}

	case *ast.VarReference:
		val, ok := env.Get(node.Name)
		if !ok {
			return errorAt(diag.UnresolvedIdentifier, node.Token, "variable %q is not declared", node.Name)
		}
		return val

	case *ast.Assignment:
		if _, ok := env.Get(node.Name); !ok {
			return errorAt(diag.UnresolvedIdentifier, node.Token, "variable %q is not declared", node.Name)
		}
		val := e.Eval(node.Value, env)
		if isError(val) {
			return val
		}
		env.Assign(node.Name, val)
		return val

	case *ast.UnOp:
		operand := e.Eval(node.Operand, env)
		if isError(operand) {
			return operand
		}
		return evalUnary(node.Operator, operand.(*object.Integer))

	case *ast.BinOp:
		switch node.Operator {
		case ast.LogicalAnd, ast.LogicalOr:
			return e.evalLogical(node, env)
		}
		left := e.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return evalBinary(node, left.(*object.Integer), right.(*object.Integer))

	case *ast.CondExp:
		condition := e.Eval(node.Condition, env)
		if isError(condition) {
			return condition
		}
		if isTruthy(condition) {
			return e.Eval(node.Then, env)
		}
		return e.Eval(node.Else, env)

	case *ast.FuncCall:
		return e.evalCall(node, env)
	}

	return newError(diag.UnexpectedToken, "cannot evaluate %T", node)
}

// step charges one unit against MaxSteps.
func (e *Evaluator) step(node ast.Node) object.Object {
	e.steps++
	if e.opts.MaxSteps > 0 && e.steps > e.opts.MaxSteps {
		return annotate(newError(diag.LimitExceeded, "step limit of %d exceeded", e.opts.MaxSteps), node)
	}
	return nil
}
