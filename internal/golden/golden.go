// Package golden extracts compiler test cases from Markdown documents.
//
// A test case starts at a heading "Test: <name>" and holds one `c` fence
// with the program plus one or more assertion fences:
//
//	ast     canonical form of the parsed program
//	att     expected AT&T assembly
//	intel   expected Intel assembly
//	error   expected error, as rendered by (*diag.Error).Error()
//	result  expected return value of main
//
// Code blocks without a language are commentary and are ignored.
package golden

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputFence is the language of the program fence.
const InputFence = "c"

// AssertionType represents the type of assertion code fence
type AssertionType string

const (
	AssertionAST    AssertionType = "ast"
	AssertionATT    AssertionType = "att"
	AssertionIntel  AssertionType = "intel"
	AssertionError  AssertionType = "error"
	AssertionResult AssertionType = "result"
)

// Assertion represents a single assertion in a test case
type Assertion struct {
	Type    AssertionType
	Content string // fence body without the trailing newline
	Line    int    // line of the fence body in the document
}

// TestCase represents a complete test case extracted from Markdown
type TestCase struct {
	Name       string // heading text after "Test: "
	Input      string // C source from the input fence
	Line       int    // line of the input fence body in the document
	Assertions []Assertion
}

// Extract parses a Markdown document and returns its test cases in
// document order.
func Extract(markdown string) ([]TestCase, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var (
		cases   []TestCase
		current *TestCase
	)

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if current != nil {
				if err := validate(current); err != nil {
					return ast.WalkStop, err
				}
				cases = append(cases, *current)
			}
			current = &TestCase{Name: strings.TrimPrefix(heading, "Test: ")}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			line := lineNumber(n, source)
			if language == "" {
				return ast.WalkContinue, nil
			}
			if !isInputFence(language) && !isAssertionFence(language) {
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s'", line, language)
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
			}

			content := strings.TrimRight(codeBlockContent(n, source), "\n")
			if isInputFence(language) {
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", line, current.Name)
				}
				current.Input = content
				current.Line = line
				return ast.WalkContinue, nil
			}
			current.Assertions = append(current.Assertions, Assertion{
				Type:    AssertionType(language),
				Content: content,
				Line:    line,
			})
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if current != nil {
		if err := validate(current); err != nil {
			return nil, err
		}
		cases = append(cases, *current)
	}
	return cases, nil
}

// NormalizeAssembly splits assembly into lines with runs of blanks
// collapsed to one space, dropping empty lines, so that expectations do
// not depend on column padding.
func NormalizeAssembly(assembly string) []string {
	var lines []string
	for _, line := range strings.Split(assembly, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			lines = append(lines, strings.Join(fields, " "))
		}
	}
	return lines
}

func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func codeBlockContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

func isInputFence(language string) bool {
	return language == InputFence
}

func isAssertionFence(language string) bool {
	switch AssertionType(language) {
	case AssertionAST, AssertionATT, AssertionIntel, AssertionError, AssertionResult:
		return true
	}
	return false
}

// validate ensures a test case has both input and at least one assertion
func validate(tc *TestCase) error {
	if tc.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", tc.Name)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", tc.Name)
	}
	return nil
}

// lineNumber returns the 1-based line on which node's content starts.
func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:min(start, len(source))], []byte("\n")) + 1
}
