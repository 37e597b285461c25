package assembly

import "github.com/neuroevolutus/simple-c-compiler/pkg/tacky"

// ----------------------------------------------------------------------------
// TACKY → pseudo-assembly

// Generate lowers a TACKY program to a pseudo-assembly tree, instruction
// by instruction. Operands may still be PseudoReg: this pass doesn't
// decide stack layout (see replace.go) nor fix up operand-legality
// violations (see fixup.go).
func Generate(p tacky.Program) Program {
	var insts []Instruction
	for _, inst := range p.Function.Instructions {
		insts = append(insts, generateInstruction(inst)...)
	}
	return Program{Function: Function{Name: p.Function.Name, Instructions: insts}}
}

func generateInstruction(inst tacky.Instruction) []Instruction {
	switch i := inst.(type) {
	case tacky.Return:
		return []Instruction{
			Mov{Src: operand(i.Value), Dst: Register{Id: AX}},
			Ret{},
		}

	case tacky.UnaryInst:
		switch i.Op {
		case tacky.Not:
			return []Instruction{
				Cmp{Src: Imm{Value: 0}, Dst: operand(i.Src)},
				Mov{Src: Imm{Value: 0}, Dst: operand(i.Dst)},
				SetCC{Cond: E, Operand: operand(i.Dst)},
			}
		default:
			return []Instruction{
				Mov{Src: operand(i.Src), Dst: operand(i.Dst)},
				UnaryInst{Op: unaryOp(i.Op), Operand: operand(i.Dst)},
			}
		}

	case tacky.BinaryInst:
		return generateBinary(i)

	case tacky.Copy:
		return []Instruction{Mov{Src: operand(i.Src), Dst: operand(i.Dst)}}

	case tacky.Jump:
		return []Instruction{Jmp{Label: i.Label}}

	case tacky.JumpIfZero:
		return []Instruction{
			Cmp{Src: Imm{Value: 0}, Dst: operand(i.Cond)},
			JmpCC{Cond: E, Label: i.Label},
		}

	case tacky.JumpIfNotZero:
		return []Instruction{
			Cmp{Src: Imm{Value: 0}, Dst: operand(i.Cond)},
			JmpCC{Cond: NE, Label: i.Label},
		}

	case tacky.Label:
		return []Instruction{LabelInst{Name: i.Name}}

	default:
		panic("assembly: unreachable tacky instruction variant")
	}
}

// generateBinary handles tacky.BinaryInst, whose shape varies by
// operator family: the add-family ops share a Mov+Binary shape,
// division/remainder need Cdq/Idiv and read out of AX/DX respectively,
// and relational ops compare with reversed operand order so the AT&T
// `cmp src, dst` reads as `dst - src`.
func generateBinary(i tacky.BinaryInst) []Instruction {
	switch i.Op {
	case tacky.Divide, tacky.Remainder:
		result := Register{Id: AX}
		if i.Op == tacky.Remainder {
			result = Register{Id: DX}
		}
		return []Instruction{
			Mov{Src: operand(i.Left), Dst: Register{Id: AX}},
			Cdq{},
			Idiv{Operand: operand(i.Right)},
			Mov{Src: result, Dst: operand(i.Dst)},
		}

	case tacky.Equal, tacky.NotEqual, tacky.LessThan, tacky.LessOrEqual,
		tacky.GreaterThan, tacky.GreaterOrEqual:
		return []Instruction{
			Cmp{Src: operand(i.Right), Dst: operand(i.Left)},
			Mov{Src: Imm{Value: 0}, Dst: operand(i.Dst)},
			SetCC{Cond: condCode(i.Op), Operand: operand(i.Dst)},
		}

	default:
		return []Instruction{
			Mov{Src: operand(i.Left), Dst: operand(i.Dst)},
			BinaryInst{Op: binaryOp(i.Op), Src: operand(i.Right), Dst: operand(i.Dst)},
		}
	}
}

func operand(v tacky.Value) Operand {
	switch val := v.(type) {
	case tacky.Constant:
		return Imm{Value: val.Value}
	case tacky.Var:
		return PseudoReg{Name: val.Name}
	default:
		panic("assembly: unreachable tacky value variant")
	}
}

func unaryOp(op tacky.UnaryOp) UnaryOp {
	switch op {
	case tacky.Complement:
		return Not
	case tacky.Negate:
		return Neg
	default:
		panic("assembly: unreachable unary op (Not handled via Cmp/SetCC)")
	}
}

func binaryOp(op tacky.BinaryOp) BinaryOp {
	switch op {
	case tacky.Add:
		return Add
	case tacky.Subtract:
		return Sub
	case tacky.Multiply:
		return Mult
	case tacky.BitAnd:
		return BitAnd
	case tacky.BitOr:
		return BitOr
	case tacky.BitXor:
		return BitXor
	case tacky.ShiftLeft:
		return Shl
	case tacky.ShiftRight:
		return Sar
	default:
		panic("assembly: unreachable binary op (division/remainder/relational handled separately)")
	}
}

func condCode(op tacky.BinaryOp) CondCode {
	switch op {
	case tacky.Equal:
		return E
	case tacky.NotEqual:
		return NE
	case tacky.LessThan:
		return L
	case tacky.LessOrEqual:
		return LE
	case tacky.GreaterThan:
		return G
	case tacky.GreaterOrEqual:
		return GE
	default:
		panic("assembly: unreachable relational op")
	}
}
