// Command tinyc compiles a small subset of C to x86-64 assembly.
package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"tinyc/internal/diag"
)

var exitFn = os.Exit

func main() {
	exitFn(runCLI(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitStatus carries a process exit code out of a command that otherwise
// succeeded, such as the value returned by an interpreted program.
type exitStatus int

func (s exitStatus) Error() string { return "exit status" }

// sourceError is a compile or runtime error tied to the file it came from.
type sourceError struct {
	filename string
	source   string
	err      error
}

func (e *sourceError) Error() string { return e.err.Error() }
func (e *sourceError) Unwrap() error { return e.err }

// runCLI executes the command line and returns the process exit code.
func runCLI(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	root := newRootCmd(stdin)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	var status exitStatus
	var srcErr *sourceError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &status):
		return int(status)
	case errors.As(err, &srcErr):
		io.WriteString(stderr, diag.Render(srcErr.filename, srcErr.source, srcErr.err, isTerminal(stderr)))
	default:
		io.WriteString(stderr, "error: "+err.Error()+"\n")
	}
	return 1
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readSource reads path, or stdin when path is "-".
func readSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// displayName is how diagnostics refer to path.
func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return filepath.ToSlash(path)
}

// writeOutput writes text to path, or to w when path is "-".
func writeOutput(path, text string, w io.Writer) error {
	if !strings.HasSuffix(text, "\n") && text != "" {
		text += "\n"
	}
	if path == "-" {
		_, err := io.WriteString(w, text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
