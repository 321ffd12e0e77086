package parser

// The AST closely follows the statement grammar: a program is an
// ordered list of statements, and routine bodies are nested lists of
// the same statement types. Nodes are built once by the parser and
// never mutated afterwards.

// Statement is one program statement.
type Statement interface {
	stmtNode()
}

// PrintStatement outputs a single expression followed by a newline.
type PrintStatement struct {
	Value Expression
}

// PrintFormatStatement is an interpolated print: the format string has
// already been split into parts at parse time.
type PrintFormatStatement struct {
	Parts []FormatPart
}

// LetStatement declares a string variable. Line is the declaring
// source line, kept for unused-variable warnings.
type LetStatement struct {
	Name  string
	Value Expression
	Line  int
}

// NumStatement declares a numeric variable.
type NumStatement struct {
	Name  string
	Value NumExpression
	Line  int
}

// AssignStatement reassigns an existing string variable.
type AssignStatement struct {
	Name  string
	Value Expression
	Line  int
}

// NumAssignStatement reassigns an existing numeric variable.
type NumAssignStatement struct {
	Name  string
	Value NumExpression
	Line  int
}

// FuncStatement defines a routine. Bodies cannot contain further
// routine definitions.
type FuncStatement struct {
	Name string
	Body []Statement
}

// RawFuncStatement defines a routine whose body is raw C text spliced
// verbatim into the generated output. This is an intentionally
// unchecked escape hatch.
type RawFuncStatement struct {
	Name string
	Code string
}

// CallStatement is a standalone routine call.
type CallStatement struct {
	Name string
}

func (*PrintStatement) stmtNode()       {}
func (*PrintFormatStatement) stmtNode() {}
func (*LetStatement) stmtNode()         {}
func (*NumStatement) stmtNode()         {}
func (*AssignStatement) stmtNode()      {}
func (*NumAssignStatement) stmtNode()   {}
func (*FuncStatement) stmtNode()        {}
func (*RawFuncStatement) stmtNode()     {}
func (*CallStatement) stmtNode()        {}

// Expression is a string-valued expression.
type Expression interface {
	exprNode()
}

// StringLiteral is a quoted text literal.
type StringLiteral struct {
	Value string
}

// VariableRef references a variable by name.
type VariableRef struct {
	Name string
}

// CallExpr is a routine call; it only occurs inside format strings.
type CallExpr struct {
	Name string
}

func (*StringLiteral) exprNode() {}
func (*VariableRef) exprNode()   {}
func (*CallExpr) exprNode()      {}

// FormatPart is one segment of an interpolated print: either literal
// text or an interpolated expression.
type FormatPart interface {
	formatPartNode()
}

// FormatLiteral is the literal text between interpolations.
type FormatLiteral struct {
	Text string
}

// FormatExpr is an interpolated variable reference or routine call
// inside '{...}'.
type FormatExpr struct {
	Expr Expression
}

// FormatNumExpr is an interpolated arithmetic expression inside
// '{...}', e.g. print(o"sum={a + b}").
type FormatNumExpr struct {
	Expr NumExpression
}

func (*FormatLiteral) formatPartNode() {}
func (*FormatExpr) formatPartNode()    {}
func (*FormatNumExpr) formatPartNode() {}

// NumExpression is a numeric expression tree.
type NumExpression interface {
	numExprNode()
}

// NumberLiteral is a 64-bit float literal.
type NumberLiteral struct {
	Value float64
}

// NumVariableRef references a numeric variable by name.
type NumVariableRef struct {
	Name string
}

// BinaryOperator is one of the four arithmetic operators.
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSubtract
	OpMultiply
	OpDivide
)

// Symbol returns the C spelling of the operator.
func (op BinaryOperator) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return "?"
	}
}

// BinaryExpr is a binary operation. Operand order is left to right.
type BinaryExpr struct {
	Left  NumExpression
	Op    BinaryOperator
	Right NumExpression
}

// GroupingExpr is a parenthesized sub-expression. It always forces
// parenthesization in the output regardless of enclosing precedence.
type GroupingExpr struct {
	Expr NumExpression
}

func (*NumberLiteral) numExprNode()  {}
func (*NumVariableRef) numExprNode() {}
func (*BinaryExpr) numExprNode()     {}
func (*GroupingExpr) numExprNode()   {}
