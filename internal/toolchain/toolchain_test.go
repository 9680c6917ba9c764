package toolchain

import (
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

const returns42 = ` .globl _main
_main:
    push    %rbp
    mov     %rsp, %rbp
    mov     $42, %rax
    mov     %rbp, %rsp
    pop     %rbp
    ret`

func TestSourceAppendsShim(t *testing.T) {
	src := Source(returns42)
	be.True(t, strings.HasPrefix(src, returns42+"\n"))
	be.True(t, strings.HasSuffix(src, startShim))
	be.True(t, strings.Contains(src, "call    _main"))

	// an already terminated program gets no blank line
	be.Equal(t, Source(returns42+"\n"), src)
	be.Equal(t, Source(""), startShim)
}

func TestBuildExecutable(t *testing.T) {
	if err := Available(); err != nil {
		t.Skipf("toolchain unavailable: %v", err)
	}

	exe := filepath.Join(t.TempDir(), "prog")
	be.Err(t, BuildExecutable(returns42, exe), nil)

	err := exec.Command(exe).Run()
	var exitErr *exec.ExitError
	be.True(t, errors.As(err, &exitErr))
	be.Equal(t, exitErr.ExitCode(), 42)
}

func TestBuildExecutableReportsAssemblerErrors(t *testing.T) {
	if err := Available(); err != nil {
		t.Skipf("toolchain unavailable: %v", err)
	}

	exe := filepath.Join(t.TempDir(), "prog")
	err := BuildExecutable("    bogus   %rax", exe)
	be.Err(t, err, "as failed")
}
