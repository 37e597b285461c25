package assembly

import (
	"fmt"
	"runtime"
	"strings"
)

// ----------------------------------------------------------------------------
// AT&T-syntax emission

// Emit renders 'p' as AT&T-syntax assembly text ready to hand to an
// assembler. Symbol naming follows the host platform: Darwin mangles
// every global symbol with a leading underscore and omits the
// executable-stack note section; ELF targets (Linux) use the name
// verbatim and append a `.note.GNU-stack` section so the assembler
// doesn't mark the binary's stack executable by default.
func Emit(p Program) string {
	var b strings.Builder
	emitFunction(&b, p.Function)
	if runtime.GOOS != "darwin" {
		fmt.Fprintf(&b, "\t.section .note.GNU-stack,\"\",@progbits\n")
	}
	return b.String()
}

func symbolName(name string) string {
	if runtime.GOOS == "darwin" {
		return "_" + name
	}
	return name
}

func emitFunction(b *strings.Builder, fn Function) {
	name := symbolName(fn.Name)
	fmt.Fprintf(b, "\t.globl %s\n", name)
	fmt.Fprintf(b, "%s:\n", name)
	fmt.Fprintf(b, "\tpushq %%rbp\n")
	fmt.Fprintf(b, "\tmovq %%rsp, %%rbp\n")
	for _, inst := range fn.Instructions {
		emitInstruction(b, inst)
	}
}

func emitInstruction(b *strings.Builder, inst Instruction) {
	switch i := inst.(type) {
	case Mov:
		fmt.Fprintf(b, "\tmovl %s, %s\n", operand32(i.Src), operand32(i.Dst))
	case Movb:
		fmt.Fprintf(b, "\tmovb %s, %s\n", operand8(i.Src), operand8(i.Dst))
	case UnaryInst:
		fmt.Fprintf(b, "\t%s %s\n", unaryMnemonic(i.Op), operand32(i.Operand))
	case BinaryInst:
		emitBinary(b, i)
	case Idiv:
		fmt.Fprintf(b, "\tidivl %s\n", operand32(i.Operand))
	case Cdq:
		fmt.Fprintf(b, "\tcdq\n")
	case Cmp:
		fmt.Fprintf(b, "\tcmpl %s, %s\n", operand32(i.Src), operand32(i.Dst))
	case Jmp:
		fmt.Fprintf(b, "\tjmp %s\n", i.Label)
	case JmpCC:
		fmt.Fprintf(b, "\tj%s %s\n", i.Cond, i.Label)
	case SetCC:
		fmt.Fprintf(b, "\tset%s %s\n", i.Cond, operand8(i.Operand))
	case LabelInst:
		fmt.Fprintf(b, "%s:\n", i.Name)
	case AllocateStack:
		fmt.Fprintf(b, "\tsubq $%d, %%rsp\n", i.Size)
	case Ret:
		fmt.Fprintf(b, "\tmovq %%rbp, %%rsp\n")
		fmt.Fprintf(b, "\tpopq %%rbp\n")
		fmt.Fprintf(b, "\tret\n")
	default:
		panic("assembly: unreachable instruction variant")
	}
}

// emitBinary special-cases shift instructions: the count operand, once
// fixup.go has bounced it into CX, is printed in its 8-bit %cl form —
// the only width sal/sar accept for a register shift count.
func emitBinary(b *strings.Builder, i BinaryInst) {
	switch i.Op {
	case Shl, Sar:
		fmt.Fprintf(b, "\t%s %s, %s\n", binaryMnemonic(i.Op), shiftCount(i.Src), operand32(i.Dst))
	default:
		fmt.Fprintf(b, "\t%s %s, %s\n", binaryMnemonic(i.Op), operand32(i.Src), operand32(i.Dst))
	}
}

func shiftCount(op Operand) string {
	if r, ok := op.(Register); ok {
		return r.Id.Name8()
	}
	return operand32(op)
}

func unaryMnemonic(op UnaryOp) string {
	switch op {
	case Neg:
		return "negl"
	case Not:
		return "notl"
	default:
		panic("assembly: unreachable unary op")
	}
}

func binaryMnemonic(op BinaryOp) string {
	switch op {
	case Add:
		return "addl"
	case Sub:
		return "subl"
	case Mult:
		return "imull"
	case BitAnd:
		return "andl"
	case BitOr:
		return "orl"
	case BitXor:
		return "xorl"
	case Shl:
		return "sall"
	case Sar:
		return "sarl"
	default:
		panic("assembly: unreachable binary op")
	}
}

func operand32(op Operand) string {
	switch o := op.(type) {
	case Imm:
		return fmt.Sprintf("$%d", o.Value)
	case Register:
		return o.Id.Name32()
	case Stack:
		return fmt.Sprintf("%d(%%rbp)", o.Offset)
	case PseudoReg:
		panic("assembly: pseudo-register reached emission: replace.go must run first")
	default:
		panic("assembly: unreachable operand variant")
	}
}

func operand8(op Operand) string {
	switch o := op.(type) {
	case Imm:
		return fmt.Sprintf("$%d", o.Value)
	case Register:
		return o.Id.Name8()
	case Stack:
		return fmt.Sprintf("%d(%%rbp)", o.Offset)
	case PseudoReg:
		panic("assembly: pseudo-register reached emission: replace.go must run first")
	default:
		panic("assembly: unreachable operand variant")
	}
}
