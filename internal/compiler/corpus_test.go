package compiler

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"tinyc/internal/asm"
	"tinyc/internal/evaluator"
	"tinyc/internal/golden"
	"tinyc/internal/toolchain"
)

func TestCorpus(t *testing.T) {
	files, err := filepath.Glob("../../testdata/*.md")
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".md")
		t.Run(name, func(t *testing.T) {
			content, err := os.ReadFile(file)
			be.Err(t, err, nil)

			cases, err := golden.Extract(string(content))
			be.Err(t, err, nil)

			for _, tc := range cases {
				t.Run(tc.Name, func(t *testing.T) {
					for _, a := range tc.Assertions {
						checkAssertion(t, tc, a)
					}
				})
			}
		})
	}
}

func checkAssertion(t *testing.T, tc golden.TestCase, a golden.Assertion) {
	t.Helper()
	switch a.Type {
	case golden.AssertionAST:
		program, _, err := Parse(tc.Input)
		be.Err(t, err, nil)
		be.Equal(t, program.String(), a.Content)

	case golden.AssertionATT, golden.AssertionIntel:
		syntax := asm.ATT
		if a.Type == golden.AssertionIntel {
			syntax = asm.Intel
		}
		res, err := Compile(tc.Input, Options{Syntax: syntax})
		be.Err(t, err, nil)
		be.Equal(t, golden.NormalizeAssembly(res.Assembly), golden.NormalizeAssembly(a.Content))

	case golden.AssertionError:
		err := compileAndRun(tc.Input)
		if err == nil {
			t.Fatalf("line %d: expected error %q, program compiled and ran", a.Line, a.Content)
		}
		be.Equal(t, err.Error(), a.Content)

	case golden.AssertionResult:
		want, err := strconv.ParseInt(strings.TrimSpace(a.Content), 10, 64)
		be.Err(t, err, nil)
		got, err := Interpret(tc.Input, evaluator.DefaultOptions())
		be.Err(t, err, nil)
		be.Equal(t, got, want)
		checkExecutable(t, tc.Input, want)

	default:
		t.Fatalf("line %d: unhandled assertion %s", a.Line, a.Type)
	}
}

// compileAndRun reports the compile error if there is one, otherwise the
// runtime error of interpreting the program.
func compileAndRun(source string) error {
	if _, err := Compile(source, Options{}); err != nil {
		return err
	}
	_, err := Interpret(source, evaluator.DefaultOptions())
	return err
}

// checkExecutable assembles and runs the program when the host can, and
// compares its exit status with the low byte of want.
func checkExecutable(t *testing.T, source string, want int64) {
	t.Helper()
	if toolchain.Available() != nil {
		return
	}

	res, err := Compile(source, Options{Syntax: asm.ATT})
	be.Err(t, err, nil)
	exe := filepath.Join(t.TempDir(), "prog")
	be.Err(t, toolchain.BuildExecutable(res.Assembly, exe), nil)

	err = exec.Command(exe).Run()
	status := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("running %s: %v", exe, err)
	}
	be.Equal(t, status, int(uint8(want)))
}
