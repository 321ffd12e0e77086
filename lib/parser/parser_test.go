package parser

import (
	"strings"
	"testing"

	"github.com/mochalang/mocha/lib/lexer"
)

func parseSource(t *testing.T, source string) []Statement {
	t.Helper()
	tokens, err := lexer.Tokenize(source, "test.mocha")
	if err != nil {
		t.Fatalf("unexpected lex error: %s", err)
	}
	statements, err := New(tokens, source, "test.mocha").Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}
	return statements
}

func parseErr(t *testing.T, source string) error {
	t.Helper()
	tokens, err := lexer.Tokenize(source, "test.mocha")
	if err != nil {
		t.Fatalf("unexpected lex error: %s", err)
	}
	_, err = New(tokens, source, "test.mocha").Parse()
	if err == nil {
		t.Fatalf("expected parse error for %q, got none", source)
	}
	return err
}

func TestParseDeclarationsAndPrint(t *testing.T) {
	statements := parseSource(t, "let g = \"hi\"\nnum n = 4\nprint(g)\nprint(\"plain\")\n")

	if len(statements) != 4 {
		t.Fatalf("got %d statements, want 4", len(statements))
	}

	let, ok := statements[0].(*LetStatement)
	if !ok {
		t.Fatalf("statement 0: got %T, want *LetStatement", statements[0])
	}
	if let.Name != "g" || let.Line != 1 {
		t.Errorf("let: got name %q line %d", let.Name, let.Line)
	}
	if lit, ok := let.Value.(*StringLiteral); !ok || lit.Value != "hi" {
		t.Errorf("let value: got %#v", let.Value)
	}

	num, ok := statements[1].(*NumStatement)
	if !ok {
		t.Fatalf("statement 1: got %T, want *NumStatement", statements[1])
	}
	if num.Name != "n" || num.Line != 2 {
		t.Errorf("num: got name %q line %d", num.Name, num.Line)
	}

	printVar, ok := statements[2].(*PrintStatement)
	if !ok {
		t.Fatalf("statement 2: got %T, want *PrintStatement", statements[2])
	}
	if ref, ok := printVar.Value.(*VariableRef); !ok || ref.Name != "g" {
		t.Errorf("print value: got %#v", printVar.Value)
	}

	printLit, ok := statements[3].(*PrintStatement)
	if !ok {
		t.Fatalf("statement 3: got %T, want *PrintStatement", statements[3])
	}
	if lit, ok := printLit.Value.(*StringLiteral); !ok || lit.Value != "plain" {
		t.Errorf("print literal: got %#v", printLit.Value)
	}
}

func TestPrecedence(t *testing.T) {
	statements := parseSource(t, "num r = 2 + 3 * 4\n")

	num := statements[0].(*NumStatement)
	outer, ok := num.Value.(*BinaryExpr)
	if !ok {
		t.Fatalf("got %T, want *BinaryExpr", num.Value)
	}
	if outer.Op != OpAdd {
		t.Errorf("outer op: got %s, want +", outer.Op.Symbol())
	}
	if lit, ok := outer.Left.(*NumberLiteral); !ok || lit.Value != 2 {
		t.Errorf("outer left: got %#v", outer.Left)
	}
	inner, ok := outer.Right.(*BinaryExpr)
	if !ok {
		t.Fatalf("outer right: got %T, want *BinaryExpr", outer.Right)
	}
	if inner.Op != OpMultiply {
		t.Errorf("inner op: got %s, want *", inner.Op.Symbol())
	}
}

func TestLeftAssociativity(t *testing.T) {
	statements := parseSource(t, "num r = 1 - 2 - 3\n")

	num := statements[0].(*NumStatement)
	outer := num.Value.(*BinaryExpr)
	if outer.Op != OpSubtract {
		t.Fatalf("outer op: got %s, want -", outer.Op.Symbol())
	}
	left, ok := outer.Left.(*BinaryExpr)
	if !ok {
		t.Fatalf("left: got %T, want *BinaryExpr (left-associative fold)", outer.Left)
	}
	if lit, ok := left.Left.(*NumberLiteral); !ok || lit.Value != 1 {
		t.Errorf("innermost left: got %#v", left.Left)
	}
	if lit, ok := outer.Right.(*NumberLiteral); !ok || lit.Value != 3 {
		t.Errorf("outer right: got %#v", outer.Right)
	}
}

func TestGrouping(t *testing.T) {
	statements := parseSource(t, "num r = (1 + 2) * 3\n")

	num := statements[0].(*NumStatement)
	outer := num.Value.(*BinaryExpr)
	if outer.Op != OpMultiply {
		t.Fatalf("outer op: got %s, want *", outer.Op.Symbol())
	}
	group, ok := outer.Left.(*GroupingExpr)
	if !ok {
		t.Fatalf("left: got %T, want *GroupingExpr", outer.Left)
	}
	if _, ok := group.Expr.(*BinaryExpr); !ok {
		t.Errorf("group inner: got %T, want *BinaryExpr", group.Expr)
	}
}

func TestAssignmentResolvesNumericFirst(t *testing.T) {
	// A bare identifier on the right-hand side is ambiguous and is
	// resolved as a numeric assignment.
	statements := parseSource(t, "x = y\n")

	numAssign, ok := statements[0].(*NumAssignStatement)
	if !ok {
		t.Fatalf("got %T, want *NumAssignStatement", statements[0])
	}
	if ref, ok := numAssign.Value.(*NumVariableRef); !ok || ref.Name != "y" {
		t.Errorf("value: got %#v", numAssign.Value)
	}
}

func TestAssignmentFallsBackToString(t *testing.T) {
	statements := parseSource(t, "x = \"hello\"\n")

	assign, ok := statements[0].(*AssignStatement)
	if !ok {
		t.Fatalf("got %T, want *AssignStatement", statements[0])
	}
	if lit, ok := assign.Value.(*StringLiteral); !ok || lit.Value != "hello" {
		t.Errorf("value: got %#v", assign.Value)
	}
}

func TestFunctionDefinitionAndCall(t *testing.T) {
	statements := parseSource(t, "newfn fn greet() {\nprint(\"hello\")\n}\ncallfn greet()\n")

	fn, ok := statements[0].(*FuncStatement)
	if !ok {
		t.Fatalf("statement 0: got %T, want *FuncStatement", statements[0])
	}
	if fn.Name != "greet" || len(fn.Body) != 1 {
		t.Errorf("fn: got name %q with %d body statements", fn.Name, len(fn.Body))
	}

	call, ok := statements[1].(*CallStatement)
	if !ok {
		t.Fatalf("statement 1: got %T, want *CallStatement", statements[1])
	}
	if call.Name != "greet" {
		t.Errorf("call: got name %q", call.Name)
	}
}

func TestNestedFunctionRejected(t *testing.T) {
	err := parseErr(t, "newfn fn outer() { newfn fn inner() {} }\n")
	if !strings.Contains(err.Error(), "Nested function definitions are not allowed") {
		t.Errorf("error %q does not mention nested definitions", err.Error())
	}
}

func TestRawFunctionDefinition(t *testing.T) {
	statements := parseSource(t, "newfn $c boost() {{{ x = x * 2; }}}\n")

	raw, ok := statements[0].(*RawFuncStatement)
	if !ok {
		t.Fatalf("got %T, want *RawFuncStatement", statements[0])
	}
	if raw.Name != "boost" {
		t.Errorf("name: got %q", raw.Name)
	}
	if raw.Code != " x = x * 2; " {
		t.Errorf("code: got %q", raw.Code)
	}
}

func TestFormatStringParts(t *testing.T) {
	statements := parseSource(t, "print(o\"a={x} b={callfn get_b()} sum={x + 1}\")\n")

	pf, ok := statements[0].(*PrintFormatStatement)
	if !ok {
		t.Fatalf("got %T, want *PrintFormatStatement", statements[0])
	}
	if len(pf.Parts) != 6 {
		t.Fatalf("got %d parts, want 6: %#v", len(pf.Parts), pf.Parts)
	}

	if lit, ok := pf.Parts[0].(*FormatLiteral); !ok || lit.Text != "a=" {
		t.Errorf("part 0: got %#v", pf.Parts[0])
	}
	if expr, ok := pf.Parts[1].(*FormatExpr); !ok {
		t.Errorf("part 1: got %#v", pf.Parts[1])
	} else if ref, ok := expr.Expr.(*VariableRef); !ok || ref.Name != "x" {
		t.Errorf("part 1 expr: got %#v", expr.Expr)
	}
	if expr, ok := pf.Parts[3].(*FormatExpr); !ok {
		t.Errorf("part 3: got %#v", pf.Parts[3])
	} else if call, ok := expr.Expr.(*CallExpr); !ok || call.Name != "get_b" {
		t.Errorf("part 3 expr: got %#v", expr.Expr)
	}
	if expr, ok := pf.Parts[5].(*FormatNumExpr); !ok {
		t.Errorf("part 5: got %#v", pf.Parts[5])
	} else if _, ok := expr.Expr.(*BinaryExpr); !ok {
		t.Errorf("part 5 expr: got %#v", expr.Expr)
	}
}

func TestFormatStringErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{"unclosed brace", "print(o\"sum={a\")\n", "Unclosed '{' in format string"},
		{"missing parens", "print(o\"{callfn f}\")\n", "Expected '()' after function name"},
		{"garbage", "print(o\"{a ! b}\")\n", "Invalid expression in format string"},
		{"empty braces", "print(o\"{}\")\n", "Invalid expression in format string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErr(t, tt.source)
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.message)
			}
		})
	}
}

func TestExpectedStatementError(t *testing.T) {
	err := parseErr(t, ")\n")
	if !strings.Contains(err.Error(), "Expected statement") {
		t.Errorf("error %q does not contain %q", err.Error(), "Expected statement")
	}
	if !strings.Contains(err.Error(), "test.mocha:1:1") {
		t.Errorf("error %q does not carry the position", err.Error())
	}
}

func TestOperatorAliasesInExpressions(t *testing.T) {
	statements := parseSource(t, "num r = 1 plus 2 times 3\n")

	num := statements[0].(*NumStatement)
	outer := num.Value.(*BinaryExpr)
	if outer.Op != OpAdd {
		t.Errorf("outer op: got %s, want +", outer.Op.Symbol())
	}
	inner, ok := outer.Right.(*BinaryExpr)
	if !ok || inner.Op != OpMultiply {
		t.Errorf("inner: got %#v", outer.Right)
	}
}
