package tacky

import (
	"fmt"
	"strings"
)

// Print renders 'p' in a stable, test-facing dump format: one
// two-space-indented instruction per line inside "Function: <name>".
func Print(p Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Function: %s\n", p.Function.Name)
	for _, inst := range p.Function.Instructions {
		fmt.Fprintf(&b, "  %s\n", printInstruction(inst))
	}
	return b.String()
}

func printInstruction(inst Instruction) string {
	switch i := inst.(type) {
	case Return:
		return fmt.Sprintf("Return(%s)", i.Value)
	case UnaryInst:
		return fmt.Sprintf("Unary(%s, %s, %s)", i.Op, i.Src, i.Dst)
	case BinaryInst:
		return fmt.Sprintf("Binary(%s, %s, %s, %s)", i.Op, i.Left, i.Right, i.Dst)
	case Copy:
		return fmt.Sprintf("Copy(%s, %s)", i.Src, i.Dst)
	case Jump:
		return fmt.Sprintf("Jump(%s)", i.Label)
	case JumpIfZero:
		return fmt.Sprintf("JumpIfZero(%s, %s)", i.Cond, i.Label)
	case JumpIfNotZero:
		return fmt.Sprintf("JumpIfNotZero(%s, %s)", i.Cond, i.Label)
	case Label:
		return fmt.Sprintf("Label(%s)", i.Name)
	default:
		return "<unknown instruction>"
	}
}
