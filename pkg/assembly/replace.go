package assembly

// ----------------------------------------------------------------------------
// Pseudo-register replacement

// ReplacePseudoRegisters walks 'p' in instruction order, replacing every
// PseudoReg operand with a Stack slot. Slots are assigned on first sight
// of a name, left to right, source operand before destination operand;
// the same name always maps to the same slot. It returns the rewritten
// program and the total byte size of the frame the assigned slots span
// (the largest offset magnitude seen, still in its raw un-rounded form —
// AllocateStack's ABI-aligned size is computed by fixup.go from this
// value).
func ReplacePseudoRegisters(p Program) (Program, int32) {
	r := &replacer{offsets: make(map[string]int32)}
	var insts []Instruction
	for _, inst := range p.Function.Instructions {
		insts = append(insts, r.replaceInstruction(inst))
	}
	return Program{Function: Function{Name: p.Function.Name, Instructions: insts}}, -r.lastOffset
}

type replacer struct {
	offsets    map[string]int32
	lastOffset int32 // most negative offset assigned so far; starts at 0
}

func (r *replacer) slot(name string) Stack {
	if off, ok := r.offsets[name]; ok {
		return Stack{Offset: off}
	}
	r.lastOffset -= 4
	r.offsets[name] = r.lastOffset
	return Stack{Offset: r.lastOffset}
}

func (r *replacer) replaceOperand(op Operand) Operand {
	if p, ok := op.(PseudoReg); ok {
		return r.slot(p.Name)
	}
	return op
}

func (r *replacer) replaceInstruction(inst Instruction) Instruction {
	switch i := inst.(type) {
	case Mov:
		return Mov{Src: r.replaceOperand(i.Src), Dst: r.replaceOperand(i.Dst)}
	case Movb:
		return Movb{Src: r.replaceOperand(i.Src), Dst: r.replaceOperand(i.Dst)}
	case UnaryInst:
		return UnaryInst{Op: i.Op, Operand: r.replaceOperand(i.Operand)}
	case BinaryInst:
		return BinaryInst{Op: i.Op, Src: r.replaceOperand(i.Src), Dst: r.replaceOperand(i.Dst)}
	case Idiv:
		return Idiv{Operand: r.replaceOperand(i.Operand)}
	case Cmp:
		return Cmp{Src: r.replaceOperand(i.Src), Dst: r.replaceOperand(i.Dst)}
	case SetCC:
		return SetCC{Cond: i.Cond, Operand: r.replaceOperand(i.Operand)}
	case Cdq, Jmp, JmpCC, LabelInst, AllocateStack, Ret:
		return i
	default:
		panic("assembly: unreachable instruction variant")
	}
}
