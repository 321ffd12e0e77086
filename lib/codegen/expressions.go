package codegen

import (
	"fmt"
	"strconv"

	"github.com/mochalang/mocha/lib/parser"
)

// numExpression lowers a numeric expression tree to C text. Every
// binary operation is wrapped in its own parentheses so the evaluation
// order is preserved regardless of C's own precedence rules.
func (g *Generator) numExpression(expr parser.NumExpression) (string, error) {
	switch e := expr.(type) {
	case *parser.NumberLiteral:
		return strconv.FormatFloat(e.Value, 'g', -1, 64), nil

	case *parser.NumVariableRef:
		kind, ok := g.symbols.Kind(e.Name)
		if !ok {
			return "", fmt.Errorf("Numerical variable '%s' used before declaration%s", e.Name, g.suggestion(e.Name))
		}
		if kind != KindNumber {
			return "", fmt.Errorf("Variable '%s' is a string, expected a number", e.Name)
		}
		return e.Name, nil

	case *parser.BinaryExpr:
		left, err := g.numExpression(e.Left)
		if err != nil {
			return "", err
		}
		right, err := g.numExpression(e.Right)
		if err != nil {
			return "", err
		}
		return "(" + left + e.Op.Symbol() + right + ")", nil

	case *parser.GroupingExpr:
		inner, err := g.numExpression(e.Expr)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil

	default:
		return "", fmt.Errorf("Invalid numerical expression")
	}
}
