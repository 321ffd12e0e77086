// Package parser consumes the token sequence produced by the lexer and
// builds the program AST using recursive descent. The first syntax
// error aborts parsing; there is no recovery mode.
package parser

import (
	"fmt"

	"github.com/mochalang/mocha/lib/diag"
	"github.com/mochalang/mocha/lib/lexer"
)

// Parser walks a token sequence with a single cursor. inFunction tracks
// whether the cursor is currently inside a routine body so nested
// definitions can be rejected.
type Parser struct {
	tokens  []lexer.Token
	current int

	source string
	path   string

	inFunction bool
}

// New creates a Parser. Source and path are only used for error
// rendering.
func New(tokens []lexer.Token, source, path string) *Parser {
	return &Parser{tokens: tokens, source: source, path: path}
}

// Parse consumes the whole token stream and returns the program's
// statements.
func (p *Parser) Parse() ([]Statement, error) {
	var statements []Statement

	p.skipNewlines()
	for !p.atEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
		p.skipNewlines()
	}

	return statements, nil
}

func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF token
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if p.current < len(p.tokens) {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt lexer.TokenType) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(tt lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	tok := p.peek()
	return lexer.Token{}, p.errorAt(tok, message, "Check your syntax and try again")
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == lexer.TokenEOF
}

func (p *Parser) skipNewlines() {
	for p.peek().Type == lexer.TokenNewline {
		p.advance()
	}
}

func (p *Parser) errorAt(tok lexer.Token, message, hint string) error {
	return diag.New(p.path, p.source, diag.Position{Line: tok.Line, Column: tok.Column}, message, hint)
}

// statement dispatches on the leading token. A bare identifier followed
// by '=' is an assignment; everything else is keyword-directed.
func (p *Parser) statement() (Statement, error) {
	if p.peek().Type == lexer.TokenIdent {
		next := p.current + 1
		if next < len(p.tokens) && p.tokens[next].Type == lexer.TokenAssign {
			return p.assignmentStatement()
		}
	}

	switch {
	case p.match(lexer.TokenPrint):
		return p.printStatement()
	case p.match(lexer.TokenLet):
		return p.letStatement()
	case p.match(lexer.TokenNum):
		return p.numStatement()
	case p.match(lexer.TokenNewFn):
		return p.functionDefinition()
	case p.match(lexer.TokenCallFn):
		return p.callStatement()
	default:
		return nil, p.errorAt(p.peek(),
			"Expected statement",
			"Valid statements are 'print', 'let', 'num', 'newfn', or 'callfn'")
	}
}

// assignmentStatement parses 'name = value'. The right-hand side is
// tried as a numeric expression first; on failure the cursor is rolled
// back and the same tokens are re-parsed as a string expression. A bare
// identifier on the right therefore resolves as numeric.
func (p *Parser) assignmentStatement() (Statement, error) {
	line := p.peek().Line
	name := p.advance().Literal

	if _, err := p.consume(lexer.TokenAssign, "Expected '=' after variable name"); err != nil {
		return nil, err
	}

	save := p.current
	if numExpr, err := p.numExpression(); err == nil {
		return &NumAssignStatement{Name: name, Value: numExpr, Line: line}, nil
	}

	p.current = save
	if strExpr, err := p.expression(); err == nil {
		return &AssignStatement{Name: name, Value: strExpr, Line: line}, nil
	}

	tok := p.peek()
	return nil, p.errorAt(tok,
		fmt.Sprintf("Invalid assignment to variable '%s'", name),
		"Variables can only be assigned string or numeric values")
}

// functionDefinition parses both routine forms:
//
//	newfn fn name() { statement* }
//	newfn $c name() {{{ raw C }}}
func (p *Parser) functionDefinition() (Statement, error) {
	if p.inFunction {
		return nil, p.errorAt(p.peek(),
			"Nested function definitions are not allowed",
			"Functions cannot be defined inside other functions")
	}

	if p.match(lexer.TokenDollarC) {
		nameTok, err := p.consume(lexer.TokenIdent, "Expected function name after '$c'")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.TokenLParen, "Expected '(' after function name"); err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.TokenRParen, "Expected ')' after '('"); err != nil {
			return nil, err
		}
		p.skipNewlines()
		codeTok, err := p.consume(lexer.TokenRawC, "Expected C code block '{{{ ... }}}'")
		if err != nil {
			return nil, err
		}
		return &RawFuncStatement{Name: nameTok.Literal, Code: codeTok.Literal}, nil
	}

	fnTok, err := p.consume(lexer.TokenIdent, "Expected 'fn' after 'newfn'")
	if err != nil {
		return nil, err
	}
	if fnTok.Literal != "fn" {
		return nil, p.errorAt(fnTok,
			"Expected 'fn' after 'newfn'",
			"Check your syntax and try again")
	}

	nameTok, err := p.consume(lexer.TokenIdent, "Expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenLParen, "Expected '(' after function name"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenRParen, "Expected ')' after '('"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenLBrace, "Expected '{' to start function body"); err != nil {
		return nil, err
	}

	p.inFunction = true
	var body []Statement
	p.skipNewlines()
	for !p.check(lexer.TokenRBrace) && !p.atEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		p.skipNewlines()
	}
	if _, err := p.consume(lexer.TokenRBrace, "Expected '}' to end function body"); err != nil {
		return nil, err
	}
	p.inFunction = false

	return &FuncStatement{Name: nameTok.Literal, Body: body}, nil
}

func (p *Parser) callStatement() (Statement, error) {
	nameTok, err := p.consume(lexer.TokenIdent, "Expected function name after 'callfn'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenLParen, "Expected '(' after function name"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenRParen, "Expected ')' after '('"); err != nil {
		return nil, err
	}
	return &CallStatement{Name: nameTok.Literal}, nil
}

// printStatement parses plain and interpolated prints. The lexer has
// already decided which form this is: a format-prefix token precedes
// the string literal of an interpolated print.
func (p *Parser) printStatement() (Statement, error) {
	if _, err := p.consume(lexer.TokenLParen, "Expected '(' after 'print'"); err != nil {
		return nil, err
	}

	if p.match(lexer.TokenFormatPrefix) {
		litTok, err := p.consume(lexer.TokenString, "Expected string literal")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.TokenRParen, "Expected ')' after expression"); err != nil {
			return nil, err
		}
		parts, err := p.parseFormatString(litTok)
		if err != nil {
			return nil, err
		}
		return &PrintFormatStatement{Parts: parts}, nil
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenRParen, "Expected ')' after expression"); err != nil {
		return nil, err
	}
	return &PrintStatement{Value: expr}, nil
}

func (p *Parser) letStatement() (Statement, error) {
	line := p.peek().Line

	nameTok, err := p.consume(lexer.TokenIdent, "Expected variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenAssign, "Expected '=' after variable name"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	return &LetStatement{Name: nameTok.Literal, Value: value, Line: line}, nil
}

func (p *Parser) numStatement() (Statement, error) {
	line := p.peek().Line

	nameTok, err := p.consume(lexer.TokenIdent, "Expected variable name after 'num'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokenAssign, "Expected '=' after variable name"); err != nil {
		return nil, err
	}
	value, err := p.numExpression()
	if err != nil {
		return nil, err
	}

	return &NumStatement{Name: nameTok.Literal, Value: value, Line: line}, nil
}

// expression parses a string expression: a literal or a bare variable
// reference.
func (p *Parser) expression() (Expression, error) {
	switch p.peek().Type {
	case lexer.TokenString:
		return &StringLiteral{Value: p.advance().Literal}, nil
	case lexer.TokenIdent:
		return &VariableRef{Name: p.advance().Literal}, nil
	default:
		return nil, p.errorAt(p.peek(),
			"Expected expression",
			"Valid expressions are string literals and variable identifiers")
	}
}
