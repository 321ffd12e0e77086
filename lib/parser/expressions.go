package parser

import "github.com/mochalang/mocha/lib/lexer"

// Numeric expression grammar, lowest precedence first:
//
//	expr           := addition
//	addition       := multiplication (('+'|'-') multiplication)*
//	multiplication := primary (('*'|'/') primary)*
//	primary        := NUMBER | IDENT | '(' expr ')'
//
// Binary steps fold left-associatively.

func (p *Parser) numExpression() (NumExpression, error) {
	return p.numAddition()
}

func (p *Parser) numAddition() (NumExpression, error) {
	expr, err := p.numMultiplication()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.TokenPlus) || p.match(lexer.TokenMinus) {
		op := OpAdd
		if p.previous().Type == lexer.TokenMinus {
			op = OpSubtract
		}
		right, err := p.numMultiplication()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: right}
	}

	return expr, nil
}

func (p *Parser) numMultiplication() (NumExpression, error) {
	expr, err := p.numPrimary()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.TokenStar) || p.match(lexer.TokenSlash) {
		op := OpMultiply
		if p.previous().Type == lexer.TokenSlash {
			op = OpDivide
		}
		right, err := p.numPrimary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: right}
	}

	return expr, nil
}

func (p *Parser) numPrimary() (NumExpression, error) {
	switch {
	case p.match(lexer.TokenNumber):
		return &NumberLiteral{Value: p.previous().Number}, nil
	case p.match(lexer.TokenIdent):
		return &NumVariableRef{Name: p.previous().Literal}, nil
	case p.match(lexer.TokenLParen):
		expr, err := p.numExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.TokenRParen, "Expected ')' after expression"); err != nil {
			return nil, err
		}
		return &GroupingExpr{Expr: expr}, nil
	default:
		return nil, p.errorAt(p.peek(),
			"Expected numerical expression",
			"Valid expressions are numbers, variables, or parenthesized expressions")
	}
}
