// Package analyzer is the semantic pass between parsing and code
// generation. Today it only reports unused variables; it returns the
// AST unchanged and exists as the hook point for future optimization
// passes.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/mochalang/mocha/lib/parser"
)

// Analyze inspects the program and returns it along with any warnings.
// Warnings are advisory and never fail a compile.
//
// All variables are program-global, including ones declared inside
// routine bodies, so both passes descend one level into bodies: string
// and numeric declarations share one name table, and a name referenced
// only inside a routine still counts as used.
func Analyze(statements []parser.Statement) ([]parser.Statement, []string) {
	declared := map[string]int{} // name -> line of first declaration
	used := map[string]bool{}

	collectDeclarations(statements, declared)
	collectUsages(statements, used)

	var warnings []string
	for name, line := range declared {
		if !used[name] {
			warnings = append(warnings, fmt.Sprintf("Unused variable '%s' at line %d", name, line))
		}
	}
	sort.Strings(warnings)

	return statements, warnings
}

func collectDeclarations(statements []parser.Statement, declared map[string]int) {
	for _, stmt := range statements {
		switch s := stmt.(type) {
		case *parser.LetStatement:
			if _, ok := declared[s.Name]; !ok {
				declared[s.Name] = s.Line
			}
		case *parser.NumStatement:
			if _, ok := declared[s.Name]; !ok {
				declared[s.Name] = s.Line
			}
		case *parser.FuncStatement:
			collectDeclarations(s.Body, declared)
		}
	}
}

func collectUsages(statements []parser.Statement, used map[string]bool) {
	for _, stmt := range statements {
		switch s := stmt.(type) {
		case *parser.PrintStatement:
			if ref, ok := s.Value.(*parser.VariableRef); ok {
				used[ref.Name] = true
			}
		case *parser.PrintFormatStatement:
			for _, part := range s.Parts {
				switch fp := part.(type) {
				case *parser.FormatExpr:
					// Routine calls contribute no variable usage.
					if ref, ok := fp.Expr.(*parser.VariableRef); ok {
						used[ref.Name] = true
					}
				case *parser.FormatNumExpr:
					collectNumExprUsages(fp.Expr, used)
				}
			}
		case *parser.NumStatement:
			collectNumExprUsages(s.Value, used)
		case *parser.NumAssignStatement:
			collectNumExprUsages(s.Value, used)
		case *parser.FuncStatement:
			collectUsages(s.Body, used)
		}
	}
}

func collectNumExprUsages(expr parser.NumExpression, used map[string]bool) {
	switch e := expr.(type) {
	case *parser.NumVariableRef:
		used[e.Name] = true
	case *parser.BinaryExpr:
		collectNumExprUsages(e.Left, used)
		collectNumExprUsages(e.Right, used)
	case *parser.GroupingExpr:
		collectNumExprUsages(e.Expr, used)
	}
}
