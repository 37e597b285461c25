package assembly

// ----------------------------------------------------------------------------
// Instruction fix-up

// FixUp rewrites 'p' so every instruction satisfies x86's operand-legality
// constraints, then prepends an AllocateStack sized to the 16-byte-aligned
// rounding of 'frameSize' so the prologue leaves %rsp ABI-compliant.
func FixUp(p Program, frameSize int32) Program {
	var insts []Instruction
	for _, inst := range p.Function.Instructions {
		insts = append(insts, fixUpInstruction(inst)...)
	}
	insts = append([]Instruction{AllocateStack{Size: alignStackSize(frameSize)}}, insts...)
	return Program{Function: Function{Name: p.Function.Name, Instructions: insts}}
}

// alignStackSize rounds 'size' up to the next multiple of 16, satisfying
// the x86-64 System V ABI's requirement that %rsp be 16-byte aligned at
// call sites.
func alignStackSize(size int32) int32 {
	if rem := size % 16; rem != 0 {
		return size + (16 - rem)
	}
	return size
}

func isStack(op Operand) bool {
	_, ok := op.(Stack)
	return ok
}

func isImm(op Operand) bool {
	_, ok := op.(Imm)
	return ok
}

func fixUpInstruction(inst Instruction) []Instruction {
	switch i := inst.(type) {
	case Mov:
		if isStack(i.Src) && isStack(i.Dst) {
			return []Instruction{
				Mov{Src: i.Src, Dst: Register{Id: R10}},
				Mov{Src: Register{Id: R10}, Dst: i.Dst},
			}
		}
		return []Instruction{i}

	case Idiv:
		if isImm(i.Operand) {
			return []Instruction{
				Mov{Src: i.Operand, Dst: Register{Id: R10}},
				Idiv{Operand: Register{Id: R10}},
			}
		}
		return []Instruction{i}

	case BinaryInst:
		switch i.Op {
		case Shl, Sar:
			if !isImm(i.Src) {
				return []Instruction{
					Movb{Src: i.Src, Dst: Register{Id: R11}},
					Movb{Src: Register{Id: R11}, Dst: Register{Id: CX}},
					BinaryInst{Op: i.Op, Src: Register{Id: CX}, Dst: i.Dst},
				}
			}
			return []Instruction{i}

		case Mult:
			if isStack(i.Dst) {
				return []Instruction{
					Mov{Src: i.Dst, Dst: Register{Id: R11}},
					BinaryInst{Op: Mult, Src: i.Src, Dst: Register{Id: R11}},
					Mov{Src: Register{Id: R11}, Dst: i.Dst},
				}
			}
			return []Instruction{i}

		default: // Add, Sub, BitAnd, BitOr, BitXor
			if isStack(i.Src) && isStack(i.Dst) {
				return []Instruction{
					Mov{Src: i.Src, Dst: Register{Id: R10}},
					BinaryInst{Op: i.Op, Src: Register{Id: R10}, Dst: i.Dst},
				}
			}
			return []Instruction{i}
		}

	case Cmp:
		if isStack(i.Src) && isStack(i.Dst) {
			return []Instruction{
				Mov{Src: i.Src, Dst: Register{Id: R10}},
				Cmp{Src: Register{Id: R10}, Dst: i.Dst},
			}
		}
		if isImm(i.Dst) {
			return []Instruction{
				Mov{Src: i.Dst, Dst: Register{Id: R11}},
				Cmp{Src: i.Src, Dst: Register{Id: R11}},
			}
		}
		return []Instruction{i}

	default:
		return []Instruction{inst}
	}
}
