// Package compiler wires the phases together: tokenize, parse, generate and
// render. Each phase returns on its first error.
package compiler

import (
	"time"

	log "github.com/sirupsen/logrus"

	"tinyc/internal/asm"
	"tinyc/internal/ast"
	"tinyc/internal/codegen"
	"tinyc/internal/evaluator"
	"tinyc/internal/lexer"
	"tinyc/internal/parser"
	"tinyc/internal/token"
)

// Options configures a compilation.
type Options struct {
	Syntax asm.Syntax
}

// Result holds the output of every phase, so callers can emit whichever one
// they need.
type Result struct {
	Tokens       []token.Token
	Program      *ast.Program
	Instructions []asm.Instruction
	Assembly     string
}

// Compile turns source into assembly text in the requested syntax. Errors
// from the lexer, parser and generator are *diag.Error values.
func Compile(source string, opts Options) (*Result, error) {
	program, tokens, err := Parse(source)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	instructions, err := codegen.Generate(program)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"phase":        "codegen",
		"instructions": len(instructions),
		"duration":     time.Since(start),
	}).Debug("generated code")

	start = time.Now()
	assembly := asm.RenderProgram(instructions, opts.Syntax)
	log.WithFields(log.Fields{
		"phase":    "render",
		"syntax":   opts.Syntax,
		"bytes":    len(assembly),
		"duration": time.Since(start),
	}).Debug("rendered assembly")

	return &Result{
		Tokens:       tokens,
		Program:      program,
		Instructions: instructions,
		Assembly:     assembly,
	}, nil
}

// Parse runs the front end only.
func Parse(source string) (*ast.Program, []token.Token, error) {
	start := time.Now()
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, nil, err
	}
	log.WithFields(log.Fields{
		"phase":    "lex",
		"tokens":   len(tokens),
		"duration": time.Since(start),
	}).Debug("tokenized source")

	start = time.Now()
	program, err := parser.Parse(tokens)
	if err != nil {
		return nil, tokens, err
	}
	log.WithFields(log.Fields{
		"phase":     "parse",
		"functions": len(program.Functions),
		"duration":  time.Since(start),
	}).Debug("parsed program")

	return program, tokens, nil
}

// Interpret runs source on the reference evaluator and returns main's value.
// The program must compile first, so a program the generator rejects is
// rejected here too, even in code the evaluator would never reach.
func Interpret(source string, opts evaluator.Options) (int64, error) {
	program, _, err := Parse(source)
	if err != nil {
		return 0, err
	}
	if _, err := codegen.Generate(program); err != nil {
		return 0, err
	}

	start := time.Now()
	value, err := evaluator.Run(program, opts)
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{
		"phase":    "run",
		"value":    value,
		"duration": time.Since(start),
	}).Debug("evaluated main")
	return value, nil
}
