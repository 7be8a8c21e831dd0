package main

import (
	"fmt"
	"io"
	"strings"
)

// Reg names an ARM32 register. The calling convention fixes the roles:
// r0-r3 carry arguments, r0 carries results, ip is the scratch register,
// fp/sp/lr have their usual meanings.
type Reg string

const (
	R0 Reg = "r0"
	R1 Reg = "r1"
	R2 Reg = "r2"
	R3 Reg = "r3"
	IP Reg = "ip"
	FP Reg = "fp"
	SP Reg = "sp"
	LR Reg = "lr"
)

// argRegs are the argument registers in slot order.
var argRegs = [4]Reg{R0, R1, R2, R3}

// Cond is an ARM condition suffix; the empty condition means always.
type Cond string

const (
	Always Cond = ""
	CondEQ Cond = "eq"
	CondNE Cond = "ne"
	CondLT Cond = "lt"
	CondGE Cond = "ge"
)

// Assembly is the instruction-emission surface the code generator writes to.
// Implementations format mnemonics, registers, and labels; the generator only
// decides what to emit.
type Assembly interface {
	Label(name string)
	Global(name string)
	Comment(format string, args ...any)

	Branch(cond Cond, label string)
	Call(label string)
	Ret()

	Mov(cond Cond, dst, src Reg)
	MovImm(cond Cond, dst Reg, imm int64)
	Cmp(a, b Reg)
	CmpImm(a Reg, imm int64)

	Add(dst, a, b Reg)
	AddImm(dst, a Reg, imm int)
	Sub(dst, a, b Reg)
	SubImm(dst, a Reg, imm int)
	Mul(dst, a, b Reg)
	Udiv(dst, a, b Reg)

	Load(dst, base Reg, off int)
	Store(src, base Reg, off int)
	Push(regs ...Reg)
	Pop(regs ...Reg)
}

// armText emits GNU-as-flavoured ARM32 text. Write errors are sticky; the
// first one is reported by Err.
type armText struct {
	w   io.Writer
	err error
}

// NewARMText returns an Assembly writing textual ARM32 to w.
func NewARMText(w io.Writer) *armText {
	return &armText{w: w}
}

// Err returns the first write error, if any.
func (a *armText) Err() error { return a.err }

func (a *armText) printf(format string, args ...any) {
	if a.err != nil {
		return
	}
	_, a.err = fmt.Fprintf(a.w, format+"\n", args...)
}

func (a *armText) op(format string, args ...any) {
	a.printf("\t"+format, args...)
}

func (a *armText) Label(name string)  { a.printf("%s:", name) }
func (a *armText) Global(name string) { a.printf(".global %s", name) }

func (a *armText) Comment(format string, args ...any) {
	a.printf("@ "+format, args...)
}

func (a *armText) Branch(cond Cond, label string) { a.op("b%s %s", cond, label) }
func (a *armText) Call(label string)              { a.op("bl %s", label) }
func (a *armText) Ret()                           { a.op("bx lr") }

func (a *armText) Mov(cond Cond, dst, src Reg) {
	a.op("mov%s %s, %s", cond, dst, src)
}

// MovImm materializes an immediate. Constants outside the 8-bit range use the
// ldr =imm pseudo-instruction, which the assembler turns into a literal load.
func (a *armText) MovImm(cond Cond, dst Reg, imm int64) {
	if imm >= 0 && imm <= 255 {
		a.op("mov%s %s, #%d", cond, dst, imm)
	} else {
		a.op("ldr%s %s, =%d", cond, dst, imm)
	}
}

func (a *armText) Cmp(x, y Reg)             { a.op("cmp %s, %s", x, y) }
func (a *armText) CmpImm(x Reg, imm int64)  { a.op("cmp %s, #%d", x, imm) }
func (a *armText) Add(dst, x, y Reg)        { a.op("add %s, %s, %s", dst, x, y) }
func (a *armText) Sub(dst, x, y Reg)        { a.op("sub %s, %s, %s", dst, x, y) }
func (a *armText) Mul(dst, x, y Reg)        { a.op("mul %s, %s, %s", dst, x, y) }
func (a *armText) Udiv(dst, x, y Reg)       { a.op("udiv %s, %s, %s", dst, x, y) }

// AddImm handles negative immediates by flipping to sub, so frame-pointer
// offsets below the frame base stay encodable.
func (a *armText) AddImm(dst, x Reg, imm int) {
	if imm < 0 {
		a.op("sub %s, %s, #%d", dst, x, -imm)
	} else {
		a.op("add %s, %s, #%d", dst, x, imm)
	}
}

func (a *armText) SubImm(dst, x Reg, imm int) {
	a.AddImm(dst, x, -imm)
}

func (a *armText) Load(dst, base Reg, off int) {
	if off == 0 {
		a.op("ldr %s, [%s]", dst, base)
	} else {
		a.op("ldr %s, [%s, #%d]", dst, base, off)
	}
}

func (a *armText) Store(src, base Reg, off int) {
	if off == 0 {
		a.op("str %s, [%s]", src, base)
	} else {
		a.op("str %s, [%s, #%d]", src, base, off)
	}
}

func (a *armText) regList(regs []Reg) string {
	names := make([]string, len(regs))
	for i, r := range regs {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

func (a *armText) Push(regs ...Reg) { a.op("push {%s}", a.regList(regs)) }
func (a *armText) Pop(regs ...Reg)  { a.op("pop {%s}", a.regList(regs)) }
