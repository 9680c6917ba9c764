// Package toolchain turns generated AT&T assembly into a Linux executable
// with the system assembler and linker.
package toolchain

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// entrySymbol is the process entry point handed to ld -e.
const entrySymbol = "__tinyc_entry"

// startShim calls main and exits with its return value.
var startShim = strings.Join([]string{
	" .globl " + entrySymbol,
	entrySymbol + ":",
	"    call    _main",
	"    mov     %rax, %rdi",
	"    mov     $60, %rax",
	"    syscall",
}, "\n") + "\n"

// ErrUnsupportedHost is returned by Available off linux/amd64.
var ErrUnsupportedHost = errors.New("executables can only be built on linux/amd64")

// Available reports whether BuildExecutable can work on this host.
func Available() error {
	if runtime.GOOS != "linux" || runtime.GOARCH != "amd64" {
		return fmt.Errorf("%w (host is %s/%s)", ErrUnsupportedHost, runtime.GOOS, runtime.GOARCH)
	}
	for _, tool := range []string{"as", "ld"} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%s not found: %w", tool, err)
		}
	}
	return nil
}

// Source returns the complete assembly file handed to the assembler: the
// generated program followed by the entry shim.
func Source(assembly string) string {
	if assembly != "" && !strings.HasSuffix(assembly, "\n") {
		assembly += "\n"
	}
	return assembly + startShim
}

// BuildExecutable takes AT&T assembly and produces a runnable binary at
// outputPath.
func BuildExecutable(assembly string, outputPath string) error {
	if err := Available(); err != nil {
		return err
	}
	start := time.Now()

	tmpDir, err := os.MkdirTemp("", "tinyc-build-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	asmPath := filepath.Join(tmpDir, "program.s")
	if err := os.WriteFile(asmPath, []byte(Source(assembly)), 0o644); err != nil {
		return fmt.Errorf("failed to write assembly: %w", err)
	}

	objPath := filepath.Join(tmpDir, "program.o")
	if err := run("as", "--64", asmPath, "-o", objPath); err != nil {
		return err
	}
	if err := run("ld", "-e", entrySymbol, objPath, "-o", outputPath); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"output":   outputPath,
		"duration": time.Since(start),
	}).Debug("built executable")
	return nil
}

func run(tool string, args ...string) error {
	log.WithField("cmd", tool+" "+strings.Join(args, " ")).Debug("running")
	cmd := exec.Command(tool, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w\n%s", tool, err, output)
	}
	return nil
}
