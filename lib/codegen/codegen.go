// Package codegen lowers the AST to C text. It enforces the
// declaration-before-use and namespace rules; its errors are plain
// messages without source positions, since they surface from a
// whole-program pass rather than a token.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mochalang/mocha/lib/parser"
)

const preamble = "#include <stdio.h>\n#include <stdlib.h>\n#include <string.h>\n#include <math.h>\n\n"

// Generator holds the global symbol table while lowering one program.
type Generator struct {
	symbols *SymbolTable
}

// Generate lowers a program to C text: includes, one global per
// declared name, one C function per routine, and a main function
// holding the lowered top-level statements.
func Generate(statements []parser.Statement) (string, error) {
	g := &Generator{symbols: NewSymbolTable()}

	if err := g.collectSymbols(statements); err != nil {
		return "", err
	}

	var code strings.Builder
	code.WriteString(preamble)

	for _, name := range g.symbols.Names() {
		kind, _ := g.symbols.Kind(name)
		if kind == KindString {
			fmt.Fprintf(&code, "char* %s;\n", name)
		} else {
			fmt.Fprintf(&code, "double %s;\n", name)
		}
	}
	code.WriteString("\n")

	var functions []parser.Statement
	var mainBody []parser.Statement
	for _, stmt := range statements {
		switch stmt.(type) {
		case *parser.FuncStatement, *parser.RawFuncStatement:
			functions = append(functions, stmt)
		default:
			mainBody = append(mainBody, stmt)
		}
	}

	for _, fn := range functions {
		switch f := fn.(type) {
		case *parser.FuncStatement:
			fmt.Fprintf(&code, "void %s(void) {\n", f.Name)
			for _, stmt := range f.Body {
				lowered, err := g.statement(stmt)
				if err != nil {
					return "", err
				}
				code.WriteString(lowered)
			}
			code.WriteString("}\n\n")
		case *parser.RawFuncStatement:
			// Raw C routines are spliced verbatim, unchecked.
			fmt.Fprintf(&code, "void %s(void) { %s }\n\n", f.Name, f.Code)
		}
	}

	code.WriteString("int main() {\n")
	for _, stmt := range mainBody {
		lowered, err := g.statement(stmt)
		if err != nil {
			return "", err
		}
		code.WriteString(lowered)
	}
	code.WriteString("    return 0;\n")
	code.WriteString("}\n")

	return code.String(), nil
}

// collectSymbols walks the whole program, including routine bodies,
// gathering every declared name into the global pool.
func (g *Generator) collectSymbols(statements []parser.Statement) error {
	for _, stmt := range statements {
		switch s := stmt.(type) {
		case *parser.LetStatement:
			if err := g.symbols.Define(s.Name, KindString); err != nil {
				return err
			}
		case *parser.NumStatement:
			if err := g.symbols.Define(s.Name, KindNumber); err != nil {
				return err
			}
		case *parser.FuncStatement:
			if err := g.collectSymbols(s.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) statement(stmt parser.Statement) (string, error) {
	var code strings.Builder

	switch s := stmt.(type) {
	case *parser.LetStatement:
		// The variable is already declared globally; the declaration
		// lowers to a plain assignment.
		rhs, err := g.stringValue(s.Value)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&code, "    %s = %s;\n", s.Name, rhs)

	case *parser.AssignStatement:
		kind, ok := g.symbols.Kind(s.Name)
		if !ok {
			return "", fmt.Errorf("Variable '%s' assigned before declaration%s", s.Name, g.suggestion(s.Name))
		}
		if kind != KindString {
			return "", fmt.Errorf("Variable '%s' is a number, cannot assign a string value", s.Name)
		}
		rhs, err := g.stringValue(s.Value)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&code, "    %s = %s;\n", s.Name, rhs)

	case *parser.NumStatement:
		rhs, err := g.numExpression(s.Value)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&code, "    %s = %s;\n", s.Name, rhs)

	case *parser.NumAssignStatement:
		kind, ok := g.symbols.Kind(s.Name)
		if !ok {
			return "", fmt.Errorf("Numerical variable '%s' assigned before declaration%s", s.Name, g.suggestion(s.Name))
		}
		if kind != KindNumber {
			return "", fmt.Errorf("Variable '%s' is a string, cannot assign a numeric value", s.Name)
		}
		rhs, err := g.numExpression(s.Value)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&code, "    %s = %s;\n", s.Name, rhs)

	case *parser.PrintStatement:
		switch e := s.Value.(type) {
		case *parser.StringLiteral:
			fmt.Fprintf(&code, "    printf(\"%%s\\n\", \"%s\");\n", escapeString(e.Value))
		case *parser.VariableRef:
			kind, ok := g.symbols.Kind(e.Name)
			if !ok {
				return "", fmt.Errorf("Variable '%s' used before declaration%s", e.Name, g.suggestion(e.Name))
			}
			fmt.Fprintf(&code, "    printf(\"%s\\n\", %s);\n", specifier(kind), e.Name)
		default:
			return "", fmt.Errorf("Invalid expression for print statement")
		}

	case *parser.PrintFormatStatement:
		for _, part := range s.Parts {
			switch p := part.(type) {
			case *parser.FormatLiteral:
				fmt.Fprintf(&code, "    printf(\"%%s\", \"%s\");\n", escapeString(p.Text))
			case *parser.FormatExpr:
				switch e := p.Expr.(type) {
				case *parser.VariableRef:
					kind, ok := g.symbols.Kind(e.Name)
					if !ok {
						return "", fmt.Errorf("Variable '%s' used before declaration%s", e.Name, g.suggestion(e.Name))
					}
					fmt.Fprintf(&code, "    printf(\"%s\", %s);\n", specifier(kind), e.Name)
				case *parser.CallExpr:
					fmt.Fprintf(&code, "    %s();\n", e.Name)
				default:
					return "", fmt.Errorf("Invalid expression in format string")
				}
			case *parser.FormatNumExpr:
				lowered, err := g.numExpression(p.Expr)
				if err != nil {
					return "", err
				}
				fmt.Fprintf(&code, "    printf(\"%%g\", %s);\n", lowered)
			}
		}
		code.WriteString("    printf(\"\\n\");\n")

	case *parser.CallStatement:
		fmt.Fprintf(&code, "    %s();\n", s.Name)

	case *parser.FuncStatement, *parser.RawFuncStatement:
		// Routine definitions are emitted separately, never from a
		// statement list.
	}

	return code.String(), nil
}

// stringValue lowers the right-hand side of a string declaration or
// assignment.
func (g *Generator) stringValue(expr parser.Expression) (string, error) {
	switch e := expr.(type) {
	case *parser.StringLiteral:
		return "\"" + escapeString(e.Value) + "\"", nil
	case *parser.VariableRef:
		kind, ok := g.symbols.Kind(e.Name)
		if !ok {
			return "", fmt.Errorf("Variable '%s' used before declaration%s", e.Name, g.suggestion(e.Name))
		}
		if kind != KindString {
			return "", fmt.Errorf("Variable '%s' is a number, expected a string variable", e.Name)
		}
		return e.Name, nil
	default:
		return "", fmt.Errorf("Invalid expression for variable assignment")
	}
}

// specifier picks the printf conversion for a variable's namespace:
// strings print with %s, numbers with the general float form %g.
func specifier(kind Kind) string {
	if kind == KindNumber {
		return "%g"
	}
	return "%s"
}

// suggestion returns a "did you mean" clause when a declared name
// fuzzily matches the unknown one, or an empty string.
func (g *Generator) suggestion(name string) string {
	ranks := fuzzy.RankFindFold(name, g.symbols.Names())
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return fmt.Sprintf(" (did you mean '%s'?)", ranks[0].Target)
}

// escapeString escapes backslash, quote, newline, tab and carriage
// return for embedding in a C string literal.
func escapeString(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, c := range s {
		switch c {
		case '\\':
			result.WriteString(`\\`)
		case '"':
			result.WriteString(`\"`)
		case '\n':
			result.WriteString(`\n`)
		case '\t':
			result.WriteString(`\t`)
		case '\r':
			result.WriteString(`\r`)
		default:
			result.WriteRune(c)
		}
	}
	return result.String()
}
