// Package lexer turns source text into a flat sequence of positioned
// tokens. It scans left to right in a single pass; the first lexical
// error aborts the scan.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mochalang/mocha/lib/diag"
)

// Lexer scans a single source file. Line starts at 1 and increments on
// every newline; column starts at 1 and resets after each newline.
type Lexer struct {
	source string
	path   string

	runes  []rune
	pos    int
	line   int
	column int

	tokens []Token
}

// New creates a Lexer for the given source text. The path is only used
// in error messages.
func New(source, path string) *Lexer {
	return &Lexer{
		source: source,
		path:   path,
		runes:  []rune(source),
		line:   1,
		column: 1,
	}
}

// Tokenize is a convenience wrapper around New and (*Lexer).Tokenize.
func Tokenize(source, path string) ([]Token, error) {
	return New(source, path).Tokenize()
}

// Tokenize scans the whole input and returns the token sequence,
// terminated by an EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.pos < len(l.runes) {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.advance()

		case c == '\n':
			l.emit(TokenNewline, l.line, l.column)
			l.pos++
			l.line++
			l.column = 1

		case c == '/':
			l.advance()
			if l.peek() == '/' {
				// Line comment, discarded without a token.
				l.advance()
				for l.pos < len(l.runes) && l.peek() != '\n' {
					l.advance()
				}
			} else {
				l.emit(TokenSlash, l.line, l.column-1)
			}

		case c == '(':
			l.emit(TokenLParen, l.line, l.column)
			l.advance()
		case c == ')':
			l.emit(TokenRParen, l.line, l.column)
			l.advance()
		case c == '=':
			l.emit(TokenAssign, l.line, l.column)
			l.advance()
		case c == '+':
			l.emit(TokenPlus, l.line, l.column)
			l.advance()
		case c == '-':
			l.emit(TokenMinus, l.line, l.column)
			l.advance()
		case c == '*':
			l.emit(TokenStar, l.line, l.column)
			l.advance()

		case c == '{':
			if l.peekAt(1) == '{' && l.peekAt(2) == '{' {
				if err := l.rawCBlock(); err != nil {
					return nil, err
				}
			} else {
				l.emit(TokenLBrace, l.line, l.column)
				l.advance()
			}
		case c == '}':
			l.emit(TokenRBrace, l.line, l.column)
			l.advance()

		case c == '$':
			startCol := l.column
			l.advance()
			if l.peek() != 'c' {
				return nil, l.errorAt(l.line, startCol,
					fmt.Sprintf("Unexpected character '%c'", c),
					"Raw C routines are written as: newfn $c name() {{{ ... }}}")
			}
			l.advance()
			l.emit(TokenDollarC, l.line, startCol)

		case c == '"':
			if err := l.stringLiteral(); err != nil {
				return nil, err
			}

		case c >= '0' && c <= '9':
			if err := l.numberLiteral(); err != nil {
				return nil, err
			}

		case unicode.IsLetter(c) || c == '_':
			l.identifier()

		default:
			return nil, l.errorAt(l.line, l.column,
				fmt.Sprintf("Unexpected character '%c'", c),
				"Remove or replace this character")
		}
	}

	l.emit(TokenEOF, l.line, l.column)
	return l.tokens, nil
}

func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.runes) {
		return 0
	}
	return l.runes[l.pos+n]
}

// advance consumes one rune. Newline bookkeeping is handled by the
// callers that care about it; advance only moves the column.
func (l *Lexer) advance() {
	l.pos++
	l.column++
}

func (l *Lexer) emit(tt TokenType, line, column int) {
	l.tokens = append(l.tokens, Token{Type: tt, Line: line, Column: column})
}

func (l *Lexer) errorAt(line, column int, message, hint string) error {
	return diag.New(l.path, l.source, diag.Position{Line: line, Column: column}, message, hint)
}

// stringLiteral scans a double-quoted literal, resolving the escape
// sequences \n \t \r \\ \". Any other escape, a raw newline before the
// closing quote, or end of input are lexical errors.
func (l *Lexer) stringLiteral() error {
	startCol := l.column
	l.advance() // opening quote

	var content strings.Builder
	escaped := false

	for l.pos < len(l.runes) {
		c := l.peek()
		if escaped {
			switch c {
			case 'n':
				content.WriteRune('\n')
			case 't':
				content.WriteRune('\t')
			case 'r':
				content.WriteRune('\r')
			case '\\':
				content.WriteRune('\\')
			case '"':
				content.WriteRune('"')
			default:
				return l.errorAt(l.line, l.column,
					fmt.Sprintf("Invalid escape sequence '\\%c'", c),
					`Valid escape sequences are: \n, \t, \r, \", \\`)
			}
			escaped = false
		} else if c == '\\' {
			escaped = true
		} else if c == '"' {
			l.advance() // closing quote
			l.tokens = append(l.tokens, Token{
				Type:    TokenString,
				Literal: content.String(),
				Line:    l.line,
				Column:  startCol,
			})
			return nil
		} else if c == '\n' {
			return l.errorAt(l.line, startCol,
				"Unterminated string literal",
				"Add a closing quote to complete the string")
		} else {
			content.WriteRune(c)
		}
		l.advance()
	}

	return l.errorAt(l.line, startCol,
		"Unterminated string literal",
		"Add a closing quote to complete the string")
}

// numberLiteral scans a maximal run of digits with at most one decimal
// point and parses it as a 64-bit float.
func (l *Lexer) numberLiteral() error {
	startCol := l.column
	var text strings.Builder
	hasDecimal := false

	for l.pos < len(l.runes) {
		c := l.peek()
		if c >= '0' && c <= '9' {
			text.WriteRune(c)
			l.advance()
		} else if c == '.' && !hasDecimal {
			text.WriteRune(c)
			hasDecimal = true
			l.advance()
		} else {
			break
		}
	}

	value, err := strconv.ParseFloat(text.String(), 64)
	if err != nil {
		return l.errorAt(l.line, startCol,
			fmt.Sprintf("Invalid number format: %s", text.String()),
			"Ensure the number is correctly formatted")
	}

	l.tokens = append(l.tokens, Token{
		Type:   TokenNumber,
		Number: value,
		Line:   l.line,
		Column: startCol,
	})
	return nil
}

// identifier scans an identifier or keyword. After 'print' the lexer
// looks ahead for '(' followed by 'o' and '"'; when all three are
// present it consumes through the 'o' and emits a format-prefix token
// so the parser can tell interpolated prints from plain ones without
// peeking at characters itself.
func (l *Lexer) identifier() {
	startCol := l.column
	var text strings.Builder

	for l.pos < len(l.runes) {
		c := l.peek()
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			text.WriteRune(c)
			l.advance()
		} else {
			break
		}
	}

	name := text.String()
	if tt, ok := keywords[name]; ok {
		l.emit(tt, l.line, startCol)
		if tt == TokenPrint {
			l.printLookahead()
		}
		return
	}

	l.tokens = append(l.tokens, Token{
		Type:    TokenIdent,
		Literal: name,
		Line:    l.line,
		Column:  startCol,
	})
}

func (l *Lexer) printLookahead() {
	if l.peek() != '(' {
		return
	}
	l.advance()
	l.emit(TokenLParen, l.line, l.column-1)

	// The prefix is only recognized when the 'o' is immediately
	// followed by the opening quote, so identifiers starting with 'o'
	// still lex normally inside print(...).
	if l.peek() == 'o' && l.peekAt(1) == '"' {
		l.advance()
		l.emit(TokenFormatPrefix, l.line, l.column-1)
	}
}

// rawCBlock captures everything between '{{{' and '}}}' verbatim as a
// single token.
func (l *Lexer) rawCBlock() error {
	startLine, startCol := l.line, l.column
	l.advance()
	l.advance()
	l.advance()

	var code strings.Builder
	for l.pos < len(l.runes) {
		if l.peek() == '}' && l.peekAt(1) == '}' && l.peekAt(2) == '}' {
			l.advance()
			l.advance()
			l.advance()
			l.tokens = append(l.tokens, Token{
				Type:    TokenRawC,
				Literal: code.String(),
				Line:    startLine,
				Column:  startCol,
			})
			return nil
		}
		c := l.peek()
		code.WriteRune(c)
		if c == '\n' {
			l.pos++
			l.line++
			l.column = 1
		} else {
			l.advance()
		}
	}

	return l.errorAt(startLine, startCol,
		"Unterminated raw C block",
		"Close the block with '}}}'")
}
