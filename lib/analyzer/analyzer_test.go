package analyzer

import (
	"testing"

	"github.com/mochalang/mocha/lib/lexer"
	"github.com/mochalang/mocha/lib/parser"
)

func analyzeSource(t *testing.T, source string) []string {
	t.Helper()
	tokens, err := lexer.Tokenize(source, "test.mocha")
	if err != nil {
		t.Fatalf("unexpected lex error: %s", err)
	}
	statements, err := parser.New(tokens, source, "test.mocha").Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}
	_, warnings := Analyze(statements)
	return warnings
}

func TestUnusedVariableWarning(t *testing.T) {
	warnings := analyzeSource(t, "let greeting = \"hi\"\nlet unused = \"bye\"\nprint(greeting)\n")

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if warnings[0] != "Unused variable 'unused' at line 2" {
		t.Errorf("got warning %q", warnings[0])
	}
}

func TestNoWarningsWhenAllUsed(t *testing.T) {
	warnings := analyzeSource(t, "num a = 1\nnum b = a + 2\nprint(o\"b={b}\")\n")

	if len(warnings) != 0 {
		t.Errorf("got warnings %v, want none", warnings)
	}
}

func TestUsageInsideRoutineBodyCounts(t *testing.T) {
	warnings := analyzeSource(t, "let msg = \"hi\"\nnewfn fn show() {\nprint(msg)\n}\ncallfn show()\n")

	if len(warnings) != 0 {
		t.Errorf("got warnings %v, want none", warnings)
	}
}

func TestDeclarationInsideRoutineBodyTracked(t *testing.T) {
	warnings := analyzeSource(t, "newfn fn setup() {\nlet hidden = \"x\"\n}\ncallfn setup()\n")

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if warnings[0] != "Unused variable 'hidden' at line 2" {
		t.Errorf("got warning %q", warnings[0])
	}
}

func TestFormatNumericExpressionCountsAsUsage(t *testing.T) {
	warnings := analyzeSource(t, "num a = 1\nnum b = 2\nprint(o\"sum={a + b}\")\n")

	if len(warnings) != 0 {
		t.Errorf("got warnings %v, want none", warnings)
	}
}

func TestTextAssignmentTargetIsNotUsage(t *testing.T) {
	// Assigning to a variable does not count as using it.
	warnings := analyzeSource(t, "let s = \"a\"\ns = \"b\"\n")

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if warnings[0] != "Unused variable 's' at line 1" {
		t.Errorf("got warning %q", warnings[0])
	}
}

func TestWarningsSortedDeterministically(t *testing.T) {
	warnings := analyzeSource(t, "let zebra = \"z\"\nlet apple = \"a\"\n")

	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2: %v", len(warnings), warnings)
	}
	if warnings[0] != "Unused variable 'apple' at line 2" || warnings[1] != "Unused variable 'zebra' at line 1" {
		t.Errorf("got warnings %v", warnings)
	}
}
