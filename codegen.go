package main

import (
	"fmt"
	"strings"
)

// Compile translates rue source text to ARM32 assembly text. On any error
// (lex, parse, or a fatal code-generation condition) no output is returned.
func Compile(source string) (string, error) {
	tokens, err := Lex(source)
	if err != nil {
		return "", err
	}
	stats, err := Parse(tokens)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	asm := NewARMText(&out)
	if err := NewCodeGen(asm).Program(stats); err != nil {
		return "", err
	}
	if err := asm.Err(); err != nil {
		return "", err
	}
	return out.String(), nil
}

const (
	wordSize      = 4
	frameArgBytes = 16 // four argument slots
	maxCallArgs   = 4
)

type binding struct {
	name   string
	offset int
}

// bindings is the per-function variable table: an ordered name-to-offset list.
// Entries are only ever pushed; lookup finds the most recently pushed entry
// for a name, so redeclaration shadows by recency.
type bindings struct {
	list []binding
	next int // next free frame offset (grows downward)
}

func (b *bindings) reset() {
	b.list = b.list[:0]
	b.next = -(frameArgBytes + wordSize)
}

func (b *bindings) bind(name string, offset int) {
	b.list = append(b.list, binding{name: name, offset: offset})
}

// alloc binds name to the next free frame slot and returns its offset.
func (b *bindings) alloc(name string) int {
	offset := b.next
	b.next -= wordSize
	b.bind(name, offset)
	return offset
}

func (b *bindings) lookup(name string) (int, bool) {
	for i := len(b.list) - 1; i >= 0; i-- {
		if b.list[i].name == name {
			return b.list[i].offset, true
		}
	}
	return 0, false
}

// CodeGen walks the AST and emits ARM32 assembly through an Assembly
// implementation. The binding table and label counter are its only state.
type CodeGen struct {
	asm    Assembly
	vars   bindings
	labels int
}

func NewCodeGen(asm Assembly) *CodeGen {
	return &CodeGen{asm: asm}
}

// newLabel allocates a fresh compiler-generated label. The counter is
// monotonic for the whole unit so labels are never reused across functions.
func (g *CodeGen) newLabel() string {
	l := fmt.Sprintf(".L%d", g.labels)
	g.labels++
	return l
}

// Program emits the whole unit. Function declarations each get a fresh
// binding table; any other top-level statement is emitted in place, with
// control flow left to the program author.
func (g *CodeGen) Program(stats []Stat) error {
	for _, s := range stats {
		if fn, isFunc := s.(*FuncDecl); isFunc {
			if err := g.function(fn); err != nil {
				return err
			}
			continue
		}
		if err := g.stat(s); err != nil {
			return err
		}
	}
	return nil
}

func (g *CodeGen) function(fn *FuncDecl) error {
	if len(fn.Params) > maxCallArgs {
		return fmt.Errorf("function %q declares %d parameters; at most %d are supported",
			fn.Name, len(fn.Params), maxCallArgs)
	}

	g.vars.reset()

	g.asm.Comment("function %s", fn.Name)
	if fn.Public {
		g.asm.Global(fn.Name)
	}
	g.asm.Label(fn.Name)

	// Prologue: save the caller's frame, establish ours, and spill the
	// argument registers into the four reserved slots.
	g.asm.Push(FP, LR)
	g.asm.Mov(Always, FP, SP)
	g.asm.SubImm(SP, SP, frameArgBytes)
	for i, name := range fn.Params {
		offset := -frameArgBytes + i*wordSize
		g.asm.Store(argRegs[i], FP, offset)
		g.vars.bind(name, offset)
	}

	if err := g.stat(fn.Body); err != nil {
		return err
	}

	// Every path that does not return explicitly falls through to here.
	g.epilogue()
	return nil
}

func (g *CodeGen) epilogue() {
	g.asm.Mov(Always, SP, FP)
	g.asm.Pop(FP, LR)
	g.asm.Ret()
}

func (g *CodeGen) stat(s Stat) error {
	switch n := s.(type) {
	case *BlockStat:
		for _, inner := range n.Stats {
			if err := g.stat(inner); err != nil {
				return err
			}
		}
		return nil

	case *ReturnStat:
		if err := g.expr(n.Value); err != nil {
			return err
		}
		g.epilogue()
		return nil

	case *IfStat:
		elseLabel := g.newLabel()
		endLabel := g.newLabel()
		if err := g.expr(n.Cond); err != nil {
			return err
		}
		g.asm.CmpImm(R0, 0)
		g.asm.Branch(CondEQ, elseLabel)
		if err := g.stat(n.Then); err != nil {
			return err
		}
		g.asm.Branch(Always, endLabel)
		g.asm.Label(elseLabel)
		if err := g.stat(n.Else); err != nil {
			return err
		}
		g.asm.Label(endLabel)
		return nil

	case *WhileStat:
		entryLabel := g.newLabel()
		exitLabel := g.newLabel()
		g.asm.Label(entryLabel)
		if err := g.expr(n.Cond); err != nil {
			return err
		}
		g.asm.CmpImm(R0, 0)
		g.asm.Branch(CondEQ, exitLabel)
		if err := g.stat(n.Body); err != nil {
			return err
		}
		g.asm.Branch(Always, entryLabel)
		g.asm.Label(exitLabel)
		return nil

	case *LetStat:
		g.asm.SubImm(SP, SP, wordSize)
		offset := g.vars.alloc(n.Name)
		if err := g.expr(n.Value); err != nil {
			return err
		}
		g.asm.Store(R0, FP, offset)
		return nil

	case *AssignStat:
		if err := g.expr(n.Value); err != nil {
			return err
		}
		offset, bound := g.vars.lookup(n.Name)
		if !bound {
			return fmt.Errorf("undefined variable %q", n.Name)
		}
		g.asm.Store(R0, FP, offset)
		return nil

	case *LabelStat:
		g.asm.Label(n.Name)
		return nil

	case *GotoStat:
		g.asm.Branch(Always, n.Label)
		return nil

	case *AssertStat:
		// Runtime pass/fail marker: '.' when truthy, 'F' when falsy.
		// Observable output only, never a fault.
		if err := g.expr(n.Cond); err != nil {
			return err
		}
		g.asm.CmpImm(R0, 0)
		g.asm.MovImm(CondEQ, R0, 'F')
		g.asm.MovImm(CondNE, R0, '.')
		g.asm.Call("putchar")
		return nil

	case *CallExpr:
		return g.call(n, R0)

	case *ExprStat:
		return g.expr(n.X)

	case *FuncDecl:
		return fmt.Errorf("function %q declared inside a function body", n.Name)

	default:
		return fmt.Errorf("cannot generate code for %T", s)
	}
}

// expr emits code leaving the result in the default result register.
func (g *CodeGen) expr(e Expr) error {
	return g.exprTo(e, R0)
}

// exprTo emits code leaving the result in dst.
func (g *CodeGen) exprTo(e Expr, dst Reg) error {
	switch n := e.(type) {
	case *IntExpr:
		g.asm.MovImm(Always, dst, n.Value)
		return nil

	case *VarExpr:
		offset, bound := g.vars.lookup(n.Name)
		if !bound {
			return fmt.Errorf("undefined variable %q", n.Name)
		}
		g.asm.Load(dst, FP, offset)
		return nil

	case *CallExpr:
		return g.call(n, dst)

	case *UnaryExpr:
		return g.unary(n, dst)

	case *BinaryExpr:
		return g.binop(n, dst)

	default:
		return fmt.Errorf("cannot generate code for %T", e)
	}
}

// binop evaluates the left operand into r0, spills it across the right
// operand's evaluation (paired with ip to keep the push and pop balanced),
// evaluates the right operand into r1, restores the left value, and runs the
// operator sequence into dst. Values never stay live across a subexpression
// except through this stack spill.
func (g *CodeGen) binop(n *BinaryExpr, dst Reg) error {
	if err := g.exprTo(n.Left, R0); err != nil {
		return err
	}
	g.asm.Push(R0, IP)
	if err := g.exprTo(n.Right, R1); err != nil {
		return err
	}
	g.asm.Pop(R0, IP)

	switch n.Op {
	case OpAdd:
		g.asm.Add(dst, R0, R1)
	case OpSub:
		g.asm.Sub(dst, R0, R1)
	case OpMul:
		g.asm.Mul(dst, R0, R1)
	case OpDiv:
		g.asm.Udiv(dst, R0, R1)
	case OpEq:
		g.boolResult(dst, CondEQ, CondNE)
	case OpNe:
		g.boolResult(dst, CondNE, CondEQ)
	case OpLt:
		g.boolResult(dst, CondLT, CondGE)
	}
	return nil
}

// boolResult compares r0 with r1 and materializes exactly 1 or 0 in dst via
// the complementary conditional moves.
func (g *CodeGen) boolResult(dst Reg, yes, no Cond) {
	g.asm.Cmp(R0, R1)
	g.asm.MovImm(yes, dst, 1)
	g.asm.MovImm(no, dst, 0)
}

func (g *CodeGen) unary(n *UnaryExpr, dst Reg) error {
	switch n.Op {
	case OpNot:
		if err := g.exprTo(n.Operand, dst); err != nil {
			return err
		}
		g.asm.CmpImm(dst, 0)
		g.asm.MovImm(CondNE, dst, 0)
		g.asm.MovImm(CondEQ, dst, 1)
		return nil

	case OpDeref:
		if err := g.exprTo(n.Operand, dst); err != nil {
			return err
		}
		g.asm.Load(dst, dst, 0)
		return nil

	case OpRef:
		// Address-of is only defined for variables.
		v, isVar := n.Operand.(*VarExpr)
		if !isVar {
			return fmt.Errorf("cannot take reference of non-variable expression")
		}
		offset, bound := g.vars.lookup(v.Name)
		if !bound {
			return fmt.Errorf("undefined variable %q", v.Name)
		}
		g.asm.AddImm(dst, FP, offset)
		return nil

	default:
		return fmt.Errorf("cannot generate code for unary operator %v", n.Op)
	}
}

// call packs the arguments into a 16-byte stack area in left-to-right order,
// pops all four slots into the argument registers (unused slots pop garbage;
// callees only read the first N by convention), and branches to the callee.
// The result arrives in r0.
func (g *CodeGen) call(n *CallExpr, dst Reg) error {
	if len(n.Args) > maxCallArgs {
		return fmt.Errorf("call to %q passes %d arguments; at most %d are supported",
			n.Name, len(n.Args), maxCallArgs)
	}

	g.asm.SubImm(SP, SP, frameArgBytes)
	for i, arg := range n.Args {
		if err := g.expr(arg); err != nil {
			return err
		}
		g.asm.Store(R0, SP, i*wordSize)
	}
	g.asm.Pop(R0, R1, R2, R3)
	g.asm.Call(n.Name)
	if dst != R0 {
		g.asm.Mov(Always, dst, R0)
	}
	return nil
}
