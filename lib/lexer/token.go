package lexer

import "fmt"

// TokenType classifies a lexical element of the language.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNewline

	// Literals and identifiers.
	TokenIdent
	TokenString
	TokenNumber

	// Keywords.
	TokenPrint
	TokenLet
	TokenNum
	TokenNewFn
	TokenCallFn

	// Punctuation.
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenAssign
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash

	// TokenFormatPrefix marks the 'o' before a string literal in
	// print(o"..."), emitted by lexer lookahead so the parser never has
	// to inspect characters itself.
	TokenFormatPrefix

	// TokenDollarC is the '$c' marker introducing a raw C routine.
	TokenDollarC

	// TokenRawC carries the verbatim text between '{{{' and '}}}'.
	TokenRawC
)

// keywords maps reserved spellings to their token types. The operator
// words are readable aliases for the punctuation operators and lex to
// the same token types.
var keywords = map[string]TokenType{
	"print":    TokenPrint,
	"let":      TokenLet,
	"num":      TokenNum,
	"newfn":    TokenNewFn,
	"callfn":   TokenCallFn,
	"plus":     TokenPlus,
	"minus":    TokenMinus,
	"times":    TokenStar,
	"multiply": TokenStar,
	"divide":   TokenSlash,
}

// Token is a classified lexical unit with its 1-based source position.
// Identifier, string and raw C tokens carry their text in Literal;
// number tokens carry their parsed value in Number.
type Token struct {
	Type    TokenType
	Literal string
	Number  float64
	Line    int
	Column  int
}

func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenNewline:
		return "NEWLINE"
	case TokenIdent:
		return "IDENT"
	case TokenString:
		return "STRING"
	case TokenNumber:
		return "NUMBER"
	case TokenPrint:
		return "print"
	case TokenLet:
		return "let"
	case TokenNum:
		return "num"
	case TokenNewFn:
		return "newfn"
	case TokenCallFn:
		return "callfn"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	case TokenAssign:
		return "="
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenFormatPrefix:
		return "o-prefix"
	case TokenDollarC:
		return "$c"
	case TokenRawC:
		return "RAW_C"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", tt)
	}
}

func (t Token) String() string {
	switch t.Type {
	case TokenIdent, TokenString, TokenRawC:
		return fmt.Sprintf("Token(%s, %q)", t.Type, t.Literal)
	case TokenNumber:
		return fmt.Sprintf("Token(NUMBER, %g)", t.Number)
	default:
		return fmt.Sprintf("Token(%s)", t.Type)
	}
}
