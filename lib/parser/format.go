package parser

import (
	"fmt"
	"strings"

	"github.com/mochalang/mocha/lib/lexer"
)

// parseFormatString splits the content of a format string into literal
// and interpolated parts. This happens at parse time; the code
// generator never re-scans the string. Errors are reported against the
// string literal's token position.
func (p *Parser) parseFormatString(tok lexer.Token) ([]FormatPart, error) {
	var parts []FormatPart
	var literal strings.Builder

	runes := []rune(tok.Literal)
	i := 0
	for i < len(runes) {
		if runes[i] != '{' {
			literal.WriteRune(runes[i])
			i++
			continue
		}

		if literal.Len() > 0 {
			parts = append(parts, &FormatLiteral{Text: literal.String()})
			literal.Reset()
		}
		i++

		var exprStr strings.Builder
		for i < len(runes) && runes[i] != '}' {
			exprStr.WriteRune(runes[i])
			i++
		}
		if i >= len(runes) {
			return nil, p.errorAt(tok,
				"Unclosed '{' in format string",
				"Ensure all braces are properly closed")
		}
		i++ // closing brace

		part, err := p.parseFormatExpression(exprStr.String(), tok)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	if literal.Len() > 0 {
		parts = append(parts, &FormatLiteral{Text: literal.String()})
	}
	return parts, nil
}

// parseFormatExpression parses the content of one '{...}' span:
// 'callfn name()', a bare variable name, or an arithmetic expression
// over numbers and variables.
func (p *Parser) parseFormatExpression(s string, tok lexer.Token) (FormatPart, error) {
	trimmed := strings.TrimSpace(s)

	if strings.HasPrefix(trimmed, "callfn ") {
		fnName := strings.TrimSpace(strings.TrimPrefix(trimmed, "callfn "))
		if !strings.HasSuffix(fnName, "()") {
			return nil, p.errorAt(tok,
				"Expected '()' after function name",
				"Function calls in format strings must end with '()'")
		}
		name := strings.TrimSuffix(fnName, "()")
		if !isIdentifier(name) {
			return nil, p.errorAt(tok,
				fmt.Sprintf("Invalid function name '%s'", name),
				"Function names must be alphanumeric with underscores")
		}
		return &FormatExpr{Expr: &CallExpr{Name: name}}, nil
	}

	if isIdentifier(trimmed) {
		return &FormatExpr{Expr: &VariableRef{Name: trimmed}}, nil
	}

	if numExpr, ok := p.parseFormatNumExpression(trimmed); ok {
		return &FormatNumExpr{Expr: numExpr}, nil
	}

	return nil, p.errorAt(tok,
		fmt.Sprintf("Invalid expression in format string: '%s'", trimmed),
		"Use a variable name, an arithmetic expression, or 'callfn functionname()'")
}

// parseFormatNumExpression re-lexes the brace content and runs it
// through the numeric expression grammar. It only succeeds when the
// whole span is consumed.
func (p *Parser) parseFormatNumExpression(s string) (NumExpression, bool) {
	tokens, err := lexer.Tokenize(s, p.path)
	if err != nil {
		return nil, false
	}

	sub := New(tokens, s, p.path)
	expr, err := sub.numExpression()
	if err != nil {
		return nil, false
	}
	sub.skipNewlines()
	if !sub.atEnd() {
		return nil, false
	}
	return expr, true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !isAlphanumeric(c) && c != '_' {
			return false
		}
	}
	return true
}

func isAlphanumeric(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
