package codegen

import (
	"tinyc/internal/ast"
	"tinyc/internal/diag"
	"tinyc/internal/token"
)

func unresolved(tok token.Token, name string) error {
	return diag.At(diag.UnresolvedIdentifier, tok, "variable %q is not declared", name)
}

func redeclaredVariable(tok token.Token, name string) error {
	return diag.At(diag.RedeclaredIdentifier, tok, "variable %q is already declared in this scope", name)
}

func redeclaredParameter(fn *ast.Func, name string) error {
	return diag.At(diag.RedeclaredIdentifier, fn.Token, "parameter %q of %s is declared twice", name, fn.Name)
}

func redeclaredFunction(fn *ast.Func) error {
	return diag.At(diag.RedeclaredIdentifier, fn.Token, "function %q is already defined", fn.Name)
}

func breakOutsideLoop(b *ast.Break) error {
	return diag.At(diag.BreakOutsideLoop, b.Token, "break statement not within a loop")
}

func continueOutsideLoop(c *ast.Continue) error {
	return diag.At(diag.ContinueOutsideLoop, c.Token, "continue statement not within a loop")
}
