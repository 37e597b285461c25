// Package tacky defines TACKY, the compiler's linear three-address
// intermediate representation, and the lowering pass that produces it
// from pkg/ast. TACKY sits between the tree-shaped AST and the
// tree-shaped (but operand-legality-unconstrained) assembly form: it's
// the point where control flow becomes explicit jumps/labels.
package tacky

import "fmt"

// ----------------------------------------------------------------------------
// Values

// Value is implemented by the two TACKY operand kinds: a literal
// constant or a reference to a previously-defined temporary.
type Value interface {
	fmt.Stringer
	isValue()
}

// Constant is a literal integer value.
type Constant struct{ Value int32 }

func (Constant) isValue()          {}
func (c Constant) String() string { return fmt.Sprintf("LiteralConstant(%d)", c.Value) }

// Var names a temporary; every Var used as a source was previously
// defined as a destination earlier in the instruction list — every read
// is dominated by its write.
type Var struct{ Name string }

func (Var) isValue()          {}
func (v Var) String() string { return fmt.Sprintf("Variable(%q)", v.Name) }

// ----------------------------------------------------------------------------
// Unary & Binary operators

// UnaryOp mirrors ast.UnaryOp one-to-one; kept as its own type so TACKY
// doesn't depend on the AST's representation beyond the lowering pass.
type UnaryOp uint8

const (
	Complement UnaryOp = iota
	Negate
	Not
)

func (op UnaryOp) String() string {
	switch op {
	case Complement:
		return "Complement"
	case Negate:
		return "Negate"
	case Not:
		return "Not"
	default:
		return "<unknown unary op>"
	}
}

// BinaryOp mirrors ast.BinaryOp except for LogicalAnd/LogicalOr, which
// have no TACKY counterpart: pkg/tacky/lowering.go lowers them to jump
// skeletons instead of a BinaryInst.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	Remainder
	BitAnd
	BitOr
	BitXor
	ShiftLeft
	ShiftRight
	Equal
	NotEqual
	LessThan
	LessOrEqual
	GreaterThan
	GreaterOrEqual
)

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "Add"
	case Subtract:
		return "Subtract"
	case Multiply:
		return "Multiply"
	case Divide:
		return "Divide"
	case Remainder:
		return "Remainder"
	case BitAnd:
		return "BitAnd"
	case BitOr:
		return "BitOr"
	case BitXor:
		return "BitXor"
	case ShiftLeft:
		return "ShiftLeft"
	case ShiftRight:
		return "ShiftRight"
	case Equal:
		return "Equal"
	case NotEqual:
		return "NotEqual"
	case LessThan:
		return "LessThan"
	case LessOrEqual:
		return "LessOrEqual"
	case GreaterThan:
		return "GreaterThan"
	case GreaterOrEqual:
		return "GreaterOrEqual"
	default:
		return "<unknown binary op>"
	}
}

// ----------------------------------------------------------------------------
// Instructions

// Instruction is implemented by every TACKY instruction variant.
type Instruction interface{ isInstruction() }

// Return(v) returns 'v' from the current function.
type Return struct{ Value Value }

func (Return) isInstruction() {}

// Unary(op, src, dst) computes `dst = op src`.
type UnaryInst struct {
	Op       UnaryOp
	Src      Value
	Dst      Var
}

func (UnaryInst) isInstruction() {}

// Binary(op, left, right, dst) computes `dst = left op right`.
type BinaryInst struct {
	Op          BinaryOp
	Left, Right Value
	Dst         Var
}

func (BinaryInst) isInstruction() {}

// Copy(src, dst) computes `dst = src`.
type Copy struct {
	Src Value
	Dst Var
}

func (Copy) isInstruction() {}

// Jump(label) unconditionally transfers control to 'label'.
type Jump struct{ Label string }

func (Jump) isInstruction() {}

// JumpIfZero(cond, label) transfers control to 'label' iff 'cond' == 0.
type JumpIfZero struct {
	Cond  Value
	Label string
}

func (JumpIfZero) isInstruction() {}

// JumpIfNotZero(cond, label) transfers control to 'label' iff 'cond' != 0.
type JumpIfNotZero struct {
	Cond  Value
	Label string
}

func (JumpIfNotZero) isInstruction() {}

// Label(label) declares a jump target.
type Label struct{ Name string }

func (Label) isInstruction() {}

// ----------------------------------------------------------------------------
// Function & Program

// Function is an identifier plus its ordered instruction list.
type Function struct {
	Name         string
	Instructions []Instruction
}

// Program wraps the single Function this chapter's language supports.
type Program struct{ Function Function }
