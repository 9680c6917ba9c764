package evaluator

import (
	"tinyc/internal/ast"
	"tinyc/internal/diag"
	"tinyc/internal/object"
)

// evalBlockItems evaluates items in order inside env. Returns, errors,
// breaks and continues stop the block and bubble up unchanged; a block that
// runs to its end yields nil.
func (e *Evaluator) evalBlockItems(items []ast.BlockItem, env *object.Environment) object.Object {
	for _, item := range items {
		result := e.Eval(item, env)
		if result != nil {
			switch result.Type() {
			case object.RETURN_VALUE_OBJ, object.ERROR_OBJ, object.BREAK_OBJ, object.CONTINUE_OBJ:
				return result
			}
		}
	}
	return nil
}

// evalDeclare binds the name to 0 before evaluating the initialiser, so
// `int a = a + 1;` reads the fresh binding.
func (e *Evaluator) evalDeclare(d *ast.Declare, env *object.Environment) object.Object {
	if env.HasInCurrentScope(d.Name) {
		return errorAt(diag.RedeclaredIdentifier, d.Token, "variable %q is already declared in this scope", d.Name)
	}
	env.Declare(d.Name, &object.Integer{Value: 0})
	if d.Value == nil {
		return nil
	}
	val := e.Eval(d.Value, env)
	if isError(val) {
		return val
	}
	env.Assign(d.Name, val)
	return nil
}

func (e *Evaluator) evalConditional(c *ast.Conditional, env *object.Environment) object.Object {
	condition := e.Eval(c.Condition, env)
	if isError(condition) {
		return condition
	}

	if isTruthy(condition) {
		return e.Eval(c.Then, env)
	} else if c.Else != nil {
		return e.Eval(c.Else, env)
	}
	return nil
}

// loopControl classifies what a loop body produced: stop the loop and
// return out (with out possibly nil), or carry on with the next iteration.
func loopControl(result object.Object) (out object.Object, stop bool) {
	if result == nil {
		return nil, false
	}
	switch result.Type() {
	case object.RETURN_VALUE_OBJ, object.ERROR_OBJ:
		return result, true
	case object.BREAK_OBJ:
		return nil, true
	}
	return nil, false
}

func (e *Evaluator) evalWhileStatement(ws *ast.While, env *object.Environment) object.Object {
	for {
		condition := e.Eval(ws.Condition, env)
		if isError(condition) {
			return condition
		}
		if !isTruthy(condition) {
			return nil
		}
		if out, stop := loopControl(e.Eval(ws.Body, env)); stop {
			return out
		}
	}
}

// evalDoStatement runs the body before the first test; continue still
// goes through the test.
func (e *Evaluator) evalDoStatement(ds *ast.Do, env *object.Environment) object.Object {
	for {
		if out, stop := loopControl(e.Eval(ds.Body, env)); stop {
			return out
		}
		condition := e.Eval(ds.Condition, env)
		if isError(condition) {
			return condition
		}
		if !isTruthy(condition) {
			return nil
		}
	}
}

// evalForLoop runs the post expression after every iteration, including
// those cut short by continue.
func (e *Evaluator) evalForLoop(cond, post ast.Expression, body ast.Statement, env *object.Environment) object.Object {
	for {
		condition := e.Eval(cond, env)
		if isError(condition) {
			return condition
		}
		if !isTruthy(condition) {
			return nil
		}

		if out, stop := loopControl(e.Eval(body, env)); stop {
			return out
		}

		if post != nil {
			if stepRes := e.Eval(post, env); isError(stepRes) {
				return stepRes
			}
		}
	}
}

// isTruthy determines what counts as "true" in conditionals: any nonzero
// integer.
func isTruthy(obj object.Object) bool {
	i, ok := obj.(*object.Integer)
	return ok && i.Value != 0
}
