package object

// Environment stores variable bindings
// It's a map with a link to an outer scope (for nested blocks)
type Environment struct {
	store map[string]Object
	outer *Environment // Parent scope, nil for a function's outermost scope
}

// NewEnvironment creates a new function-level environment
func NewEnvironment() *Environment {
	s := make(map[string]Object)
	return &Environment{store: s, outer: nil}
}

// NewEnclosedEnvironment creates a new scope enclosed by outer
// Used for compound statements and for loops with a declaration
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Get looks up a variable by name
// Checks current scope, then outer scopes recursively
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

// HasInCurrentScope reports whether name is bound in this scope itself.
func (e *Environment) HasInCurrentScope(name string) bool {
	_, ok := e.store[name]
	return ok
}

// Declare binds name in the current scope, shadowing any outer binding.
func (e *Environment) Declare(name string, val Object) Object {
	e.store[name] = val
	return val
}

// Assign updates the nearest existing binding of name. It reports false
// when name is not bound anywhere.
func (e *Environment) Assign(name string, val Object) bool {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			env.store[name] = val
			return true
		}
	}
	return false
}
