package main

import (
	"fmt"
	"strings"
)

// The AST is pure data: built once by the parser, consumed once by the code
// generator, never mutated in between.

// Expr is the closed set of expression nodes.
type Expr interface{ exprNode() }

// Stat is the closed set of statement nodes.
type Stat interface{ statNode() }

// BinOp is a binary operator.
type BinOp int

const (
	OpEq BinOp = iota
	OpNe
	OpLt
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var binOpNames = [...]string{
	OpEq:  "==",
	OpNe:  "!=",
	OpLt:  "<",
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
}

func (op BinOp) String() string { return binOpNames[op] }

// UnOp is a unary operator.
type UnOp int

const (
	OpNot UnOp = iota
	OpDeref
	OpRef
)

var unOpNames = [...]string{
	OpNot:   "!",
	OpDeref: "*",
	OpRef:   "&",
}

func (op UnOp) String() string { return unOpNames[op] }

// IntExpr is an integer literal.
type IntExpr struct {
	Value int64
}

// VarExpr is a variable reference.
type VarExpr struct {
	Name string
}

// CallExpr is a function call: name plus ordered arguments. The same node
// serves in both expression and statement position.
type CallExpr struct {
	Name string
	Args []Expr
}

// BinaryExpr is a two-operand operation.
type BinaryExpr struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

// UnaryExpr is logical not, dereference, or address-of.
type UnaryExpr struct {
	Op      UnOp
	Operand Expr
}

func (*IntExpr) exprNode()    {}
func (*VarExpr) exprNode()    {}
func (*CallExpr) exprNode()   {}
func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}

// FuncDecl declares a function. Visibility defaults to private.
type FuncDecl struct {
	Public bool
	Name   string
	Params []string
	Body   *BlockStat
}

// ReturnStat returns a value from the enclosing function.
type ReturnStat struct {
	Value Expr
}

// IfStat branches on a condition. Else is an empty block when the source has
// no else clause.
type IfStat struct {
	Cond Expr
	Then *BlockStat
	Else *BlockStat
}

// WhileStat loops while the condition is truthy.
type WhileStat struct {
	Cond Expr
	Body *BlockStat
}

// LetStat declares and initializes a local variable.
type LetStat struct {
	Name  string
	Value Expr
}

// AssignStat stores a value into an existing variable.
type AssignStat struct {
	Name  string
	Value Expr
}

// BlockStat is an ordered statement sequence; empty blocks are no-ops.
type BlockStat struct {
	Stats []Stat
}

// ExprStat evaluates an expression for its effects.
type ExprStat struct {
	X Expr
}

// LabelStat emits a user-written label.
type LabelStat struct {
	Name string
}

// GotoStat branches unconditionally to a user-written label.
type GotoStat struct {
	Label string
}

// AssertStat evaluates its condition and reports pass or fail at runtime.
type AssertStat struct {
	Cond Expr
}

func (*FuncDecl) statNode()   {}
func (*ReturnStat) statNode() {}
func (*IfStat) statNode()     {}
func (*WhileStat) statNode()  {}
func (*LetStat) statNode()    {}
func (*AssignStat) statNode() {}
func (*BlockStat) statNode()  {}
func (*ExprStat) statNode()   {}
func (*CallExpr) statNode()   {}
func (*LabelStat) statNode()  {}
func (*GotoStat) statNode()   {}
func (*AssertStat) statNode() {}

// -----------------------------------------------------------------------------
// Canonical printer
// -----------------------------------------------------------------------------

// Expression precedence levels, loosest to tightest. Used to decide where the
// printer must parenthesize so output re-parses to the identical tree.
const (
	precComparison = iota + 1
	precSum
	precProduct
	precUnary
	precAtom
)

func exprPrec(e Expr) int {
	switch n := e.(type) {
	case *BinaryExpr:
		switch n.Op {
		case OpEq, OpNe, OpLt:
			return precComparison
		case OpAdd, OpSub:
			return precSum
		default:
			return precProduct
		}
	case *UnaryExpr:
		return precUnary
	default:
		return precAtom
	}
}

// printer renders an AST back to rue source. The output is canonical: parsing
// it yields a tree equal to the one printed.
type printer struct {
	out    strings.Builder
	indent int
}

// PrintProgram renders a statement sequence as rue source.
func PrintProgram(stats []Stat) string {
	var p printer
	for _, s := range stats {
		p.stat(s)
	}
	return p.out.String()
}

// PrintExpr renders a single expression as rue source.
func PrintExpr(e Expr) string {
	var p printer
	p.expr(e, precComparison)
	return p.out.String()
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(&p.out, format, args...)
}

func (p *printer) line(format string, args ...any) {
	for i := 0; i < p.indent; i++ {
		p.out.WriteString("    ")
	}
	p.printf(format, args...)
	p.out.WriteByte('\n')
}

func (p *printer) expr(e Expr, min int) {
	if exprPrec(e) < min {
		p.out.WriteByte('(')
		p.expr(e, precComparison)
		p.out.WriteByte(')')
		return
	}

	switch n := e.(type) {
	case *IntExpr:
		p.printf("%d", n.Value)
	case *VarExpr:
		p.out.WriteString(n.Name)
	case *CallExpr:
		p.out.WriteString(n.Name)
		p.out.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				p.out.WriteString(", ")
			}
			p.expr(arg, precComparison)
		}
		p.out.WriteByte(')')
	case *UnaryExpr:
		p.out.WriteString(n.Op.String())
		// The grammar only admits atoms under a unary operator.
		p.expr(n.Operand, precAtom)
	case *BinaryExpr:
		prec := exprPrec(e)
		p.expr(n.Left, prec)
		p.printf(" %s ", n.Op)
		p.expr(n.Right, prec+1)
	}
}

// exprString renders e at the given minimum precedence into a fresh string.
func (p *printer) exprString(e Expr, min int) string {
	var q printer
	q.expr(e, min)
	return q.out.String()
}

func (p *printer) stat(s Stat) {
	switch n := s.(type) {
	case *FuncDecl:
		vis := ""
		if n.Public {
			vis = "public "
		}
		p.line("%sfunction %s(%s) {", vis, n.Name, strings.Join(n.Params, ", "))
		p.blockBody(n.Body)
		p.line("}")

	case *IfStat:
		p.line("if %s {", p.exprString(n.Cond, precComparison))
		p.blockBody(n.Then)
		if len(n.Else.Stats) == 0 {
			p.line("}")
		} else {
			p.line("} else {")
			p.blockBody(n.Else)
			p.line("}")
		}

	case *WhileStat:
		p.line("while %s {", p.exprString(n.Cond, precComparison))
		p.blockBody(n.Body)
		p.line("};")

	case *BlockStat:
		p.line("{")
		p.blockBody(n)
		p.line("}")

	case *LabelStat:
		p.line("%s:", n.Name)

	case *ReturnStat:
		p.line("return %s;", p.exprString(n.Value, precComparison))

	case *LetStat:
		p.line("let %s = %s;", n.Name, p.exprString(n.Value, precComparison))

	case *AssignStat:
		p.line("%s = %s;", n.Name, p.exprString(n.Value, precComparison))

	case *GotoStat:
		p.line("goto %s;", n.Label)

	case *AssertStat:
		p.line("assert %s;", p.exprString(n.Cond, precComparison))

	case *CallExpr:
		p.line("%s;", p.exprString(n, precComparison))

	case *ExprStat:
		p.line("%s;", p.exprString(n.X, precComparison))
	}
}

func (p *printer) blockBody(b *BlockStat) {
	p.indent++
	for _, s := range b.Stats {
		p.stat(s)
	}
	p.indent--
}
