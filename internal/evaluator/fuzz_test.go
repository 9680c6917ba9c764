package evaluator

import (
	"testing"

	"tinyc/internal/lexer"
	"tinyc/internal/parser"
)

// FuzzEvaluatorNoPanic ensures evaluation never panics for arbitrary input.
func FuzzEvaluatorNoPanic(f *testing.F) {
	seeds := []string{
		"",
		"int main() { return 1 + 2; }",
		"int main() { int x = 1; x = x + 1; return x; }",
		"int main() { if (1) return 1; else return 2; }",
		"int add(int a, int b) { return a + b; } int main() { return add(3, 4); }",
		"int main() { for (int i = 0; i < 3; i = i + 1) { if (i == 1) continue; } }",
		"int main() { while (1) break; do ; while (0); return 1 / 0; }",
		"int main() { return 1 << 99 >> 99; }",
		"int f() { return f(); } int main() { return f(); }",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("evaluator panicked for input %q: %v", input, r)
			}
		}()

		tokens, err := lexer.Tokenize(input)
		if err != nil {
			return
		}
		program, err := parser.Parse(tokens)
		if err != nil {
			return
		}
		_, _ = Run(program, Options{MaxSteps: 100_000, MaxDepth: 200})
	})
}
