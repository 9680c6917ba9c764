package main

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tinyc/internal/asm"
	"tinyc/internal/compiler"
	"tinyc/internal/evaluator"
	"tinyc/internal/toolchain"
	"tinyc/internal/token"
)

// Version is filled in by the linker for release builds.
var Version string

func newRootCmd(stdin io.Reader) *cobra.Command {
	root := &cobra.Command{
		Use:   "tinyc [flags] <input.c> <output>",
		Short: "A compiler for a small subset of C.",
		Long: `Compile a C source file to x86-64 assembly. Use "-" as the input to read
stdin, or as the output to write to stdout.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if GetFlag(cmd, "verbose") {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return compileFile(cmd, stdin, args[0], args[1])
		},
	}
	root.Flags().String("syntax", "att", "assembly syntax: att or intel")
	root.Flags().String("emit", "asm", "what to write: asm, ast or tokens")
	root.Flags().String("exe", "", "also link an executable at this path (att only)")
	root.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")

	root.AddCommand(newRunCmd(stdin), newVersionCmd())
	return root
}

func compileFile(cmd *cobra.Command, stdin io.Reader, input, output string) error {
	syntax, err := asm.ParseSyntax(GetString(cmd, "syntax"))
	if err != nil {
		return err
	}
	exe := GetString(cmd, "exe")
	if exe != "" && syntax != asm.ATT {
		return errors.New("--exe requires --syntax att")
	}

	source, err := readSource(input, stdin)
	if err != nil {
		return err
	}
	wrap := func(err error) error {
		return &sourceError{filename: displayName(input), source: source, err: err}
	}

	var text string
	switch emit := GetString(cmd, "emit"); emit {
	case "tokens":
		_, tokens, err := compiler.Parse(source)
		if tokens == nil && err != nil {
			return wrap(err)
		}
		text = formatTokens(tokens)
	case "ast":
		program, _, err := compiler.Parse(source)
		if err != nil {
			return wrap(err)
		}
		text = program.String()
	case "asm":
		res, err := compiler.Compile(source, compiler.Options{Syntax: syntax})
		if err != nil {
			return wrap(err)
		}
		text = res.Assembly
		if exe != "" {
			if err := toolchain.BuildExecutable(res.Assembly, exe); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown --emit value %q (want asm, ast or tokens)", emit)
	}
	return writeOutput(output, text, cmd.OutOrStdout())
}

// formatTokens lists one token per line as "line:col TYPE literal".
func formatTokens(tokens []token.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%d:%d\t%s\t%s\n", tok.Line, tok.Column, tok.Type, tok.Literal)
	}
	return sb.String()
}

func newRunCmd(stdin io.Reader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] <input.c>",
		Short: "interpret a program and print the value main returns.",
		Long: `Run a program on the reference interpreter. The value returned by main is
printed, and the exit code is that value truncated to 8 bits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0], stdin)
			if err != nil {
				return err
			}
			opts := evaluator.Options{
				MaxSteps: GetInt(cmd, "max-steps"),
				MaxDepth: GetInt(cmd, "max-depth"),
			}
			value, err := compiler.Interpret(source, opts)
			if err != nil {
				return &sourceError{filename: displayName(args[0]), source: source, err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			if code := int(uint8(value)); code != 0 {
				return exitStatus(code)
			}
			return nil
		},
	}
	defaults := evaluator.DefaultOptions()
	cmd.Flags().Int("max-steps", defaults.MaxSteps, "abort after this many evaluation steps (0 = unlimited)")
	cmd.Flags().Int("max-depth", defaults.MaxDepth, "abort beyond this call depth (0 = unlimited)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "report the version of this executable.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tinyc %s\n", version())
		},
	}
}

func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(unknown version)"
}

// GetFlag gets an expected boolean flag, or panics if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		panic(err)
	}
	return r
}

// GetString gets an expected string flag, or panics if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		panic(err)
	}
	return r
}

// GetInt gets an expected int flag, or panics if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		panic(err)
	}
	return r
}
