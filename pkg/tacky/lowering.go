package tacky

import (
	"github.com/neuroevolutus/simple-c-compiler/pkg/ast"
	"github.com/neuroevolutus/simple-c-compiler/pkg/fresh"
)

// ----------------------------------------------------------------------------
// Lowerer

// A Lowerer turns an ast.Program into its tacky.Program counterpart. It's
// pure over the tree it's given — the only side effect of lowering is
// drawing fresh names from 'names'.
type Lowerer struct {
	names *fresh.Generator
	fnName string
}

// Lower runs AST → TACKY lowering for 'program', using 'names' as the
// fresh-name source for every temporary and label it allocates.
func Lower(program ast.Program, names *fresh.Generator) Program {
	l := &Lowerer{names: names, fnName: program.Function.Name}
	return Program{Function: Function{
		Name:         program.Function.Name,
		Instructions: l.lowerStatement(program.Function.Body),
	}}
}

func (l *Lowerer) fresh() Var { return Var{Name: l.names.Fresh(l.fnName)} }

func (l *Lowerer) lowerStatement(s ast.Statement) []Instruction {
	switch st := s.(type) {
	case ast.Return:
		value, insts := l.lowerExpression(st.Expr)
		return append(insts, Return{Value: value})
	default:
		panic("tacky: unreachable statement variant")
	}
}

// lowerExpression lowers 'e' to the Value that holds its result plus the
// instruction sequence that must run first to compute it.
func (l *Lowerer) lowerExpression(e ast.Expression) (Value, []Instruction) {
	switch ex := e.(type) {
	case ast.LiteralConstant:
		return Constant{Value: ex.Value}, nil

	case ast.Unary:
		src, insts := l.lowerExpression(ex.Inner)
		dst := l.fresh()
		insts = append(insts, UnaryInst{Op: lowerUnaryOp(ex.Op), Src: src, Dst: dst})
		return dst, insts

	case ast.Binary:
		switch ex.Op {
		case ast.LogicalAnd:
			return l.lowerLogicalAnd(ex)
		case ast.LogicalOr:
			return l.lowerLogicalOr(ex)
		default:
			left, leftInsts := l.lowerExpression(ex.Left)
			right, rightInsts := l.lowerExpression(ex.Right)
			dst := l.fresh()
			insts := append(append(leftInsts, rightInsts...), BinaryInst{
				Op: lowerBinaryOp(ex.Op), Left: left, Right: right, Dst: dst,
			})
			return dst, insts
		}

	default:
		panic("tacky: unreachable expression variant")
	}
}

// lowerLogicalAnd implements the short-circuit skeleton for `&&`:
//
//	<ia>
//	JumpIfZero(va, false)
//	<ib>
//	JumpIfZero(vb, false)
//	Copy(1, dst)
//	Jump(end)
//	Label(false)
//	Copy(0, dst)
//	Label(end)
func (l *Lowerer) lowerLogicalAnd(ex ast.Binary) (Value, []Instruction) {
	va, ia := l.lowerExpression(ex.Left)
	falseLabel := l.names.Fresh("and_false")
	endLabel := l.names.Fresh("and_end")
	dst := l.fresh()

	insts := append(ia, JumpIfZero{Cond: va, Label: falseLabel})
	vb, ib := l.lowerExpression(ex.Right)
	insts = append(insts, ib...)
	insts = append(insts,
		JumpIfZero{Cond: vb, Label: falseLabel},
		Copy{Src: Constant{Value: 1}, Dst: dst},
		Jump{Label: endLabel},
		Label{Name: falseLabel},
		Copy{Src: Constant{Value: 0}, Dst: dst},
		Label{Name: endLabel},
	)
	return dst, insts
}

// lowerLogicalOr is the `&&` skeleton's mirror image: JumpIfNotZero and
// the 0/1 constants swapped.
func (l *Lowerer) lowerLogicalOr(ex ast.Binary) (Value, []Instruction) {
	va, ia := l.lowerExpression(ex.Left)
	trueLabel := l.names.Fresh("or_true")
	endLabel := l.names.Fresh("or_end")
	dst := l.fresh()

	insts := append(ia, JumpIfNotZero{Cond: va, Label: trueLabel})
	vb, ib := l.lowerExpression(ex.Right)
	insts = append(insts, ib...)
	insts = append(insts,
		JumpIfNotZero{Cond: vb, Label: trueLabel},
		Copy{Src: Constant{Value: 0}, Dst: dst},
		Jump{Label: endLabel},
		Label{Name: trueLabel},
		Copy{Src: Constant{Value: 1}, Dst: dst},
		Label{Name: endLabel},
	)
	return dst, insts
}

func lowerUnaryOp(op ast.UnaryOp) UnaryOp {
	switch op {
	case ast.Complement:
		return Complement
	case ast.Negate:
		return Negate
	case ast.Not:
		return Not
	default:
		panic("tacky: unreachable unary op")
	}
}

func lowerBinaryOp(op ast.BinaryOp) BinaryOp {
	switch op {
	case ast.Add:
		return Add
	case ast.Subtract:
		return Subtract
	case ast.Multiply:
		return Multiply
	case ast.Divide:
		return Divide
	case ast.Remainder:
		return Remainder
	case ast.BitAnd:
		return BitAnd
	case ast.BitOr:
		return BitOr
	case ast.BitXor:
		return BitXor
	case ast.ShiftLeft:
		return ShiftLeft
	case ast.ShiftRight:
		return ShiftRight
	case ast.Equal:
		return Equal
	case ast.NotEqual:
		return NotEqual
	case ast.LessThan:
		return LessThan
	case ast.LessOrEqual:
		return LessOrEqual
	case ast.GreaterThan:
		return GreaterThan
	case ast.GreaterOrEqual:
		return GreaterOrEqual
	default:
		panic("tacky: unreachable binary op (LogicalAnd/LogicalOr handled separately)")
	}
}
