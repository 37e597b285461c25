package assembly_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/neuroevolutus/simple-c-compiler/pkg/assembly"
	"github.com/neuroevolutus/simple-c-compiler/pkg/tacky"
)

func TestGenerateReturnConstant(t *testing.T) {
	program := tacky.Program{Function: tacky.Function{
		Name:         "main",
		Instructions: []tacky.Instruction{tacky.Return{Value: tacky.Constant{Value: 2}}},
	}}
	got := assembly.Generate(program)
	want := assembly.Program{Function: assembly.Function{
		Name: "main",
		Instructions: []assembly.Instruction{
			assembly.Mov{Src: assembly.Imm{Value: 2}, Dst: assembly.Register{Id: assembly.AX}},
			assembly.Ret{},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected assembly (-want +got):\n%s", diff)
	}
}

func TestGenerateRelationalReversesOperandOrder(t *testing.T) {
	program := tacky.Program{Function: tacky.Function{
		Name: "main",
		Instructions: []tacky.Instruction{
			tacky.BinaryInst{
				Op: tacky.LessThan, Left: tacky.Constant{Value: 1}, Right: tacky.Constant{Value: 2},
				Dst: tacky.Var{Name: "main.0"},
			},
		},
	}}
	got := assembly.Generate(program)
	cmpInst, ok := got.Function.Instructions[0].(assembly.Cmp)
	if !ok {
		t.Fatalf("expected first instruction to be Cmp, got %T", got.Function.Instructions[0])
	}
	assert.Equal(t, assembly.Imm{Value: 2}, cmpInst.Src)
	assert.Equal(t, assembly.Imm{Value: 1}, cmpInst.Dst)
}

func TestReplacePseudoRegistersIsDeterministicAndStable(t *testing.T) {
	program := assembly.Program{Function: assembly.Function{
		Name: "main",
		Instructions: []assembly.Instruction{
			assembly.Mov{Src: assembly.Imm{Value: 1}, Dst: assembly.PseudoReg{Name: "main.0"}},
			assembly.Mov{Src: assembly.PseudoReg{Name: "main.0"}, Dst: assembly.PseudoReg{Name: "main.1"}},
		},
	}}
	replaced, frameSize := assembly.ReplacePseudoRegisters(program)

	first := replaced.Function.Instructions[0].(assembly.Mov)
	second := replaced.Function.Instructions[1].(assembly.Mov)

	assert.Equal(t, assembly.Stack{Offset: -4}, first.Dst)
	assert.Equal(t, assembly.Stack{Offset: -4}, second.Src, "main.0 must map to the same slot everywhere")
	assert.Equal(t, assembly.Stack{Offset: -8}, second.Dst)
	assert.Equal(t, int32(8), frameSize)
}

func TestFixUpBouncesStackToStackMov(t *testing.T) {
	program := assembly.Program{Function: assembly.Function{
		Name: "f",
		Instructions: []assembly.Instruction{
			assembly.Mov{Src: assembly.Stack{Offset: -4}, Dst: assembly.Stack{Offset: -8}},
		},
	}}
	fixed := assembly.FixUp(program, 8)

	// AllocateStack(16) prepended, 8 rounded up to the next multiple of 16.
	alloc, ok := fixed.Function.Instructions[0].(assembly.AllocateStack)
	if !ok || alloc.Size != 16 {
		t.Fatalf("expected AllocateStack(16) first, got %#v", fixed.Function.Instructions[0])
	}

	rest := fixed.Function.Instructions[1:]
	if len(rest) != 2 {
		t.Fatalf("expected the stack-to-stack Mov to split into two instructions, got %d", len(rest))
	}
	first := rest[0].(assembly.Mov)
	second := rest[1].(assembly.Mov)
	assert.Equal(t, assembly.Register{Id: assembly.R10}, first.Dst)
	assert.Equal(t, assembly.Register{Id: assembly.R10}, second.Src)
}

func TestFixUpBouncesImmediateDivisor(t *testing.T) {
	program := assembly.Program{Function: assembly.Function{
		Name:         "f",
		Instructions: []assembly.Instruction{assembly.Idiv{Operand: assembly.Imm{Value: 3}}},
	}}
	fixed := assembly.FixUp(program, 0)
	rest := fixed.Function.Instructions[1:]
	if len(rest) != 2 {
		t.Fatalf("expected Idiv(imm) to split into Mov+Idiv, got %d instructions", len(rest))
	}
	if _, ok := rest[0].(assembly.Mov); !ok {
		t.Fatalf("expected first instruction to be Mov, got %T", rest[0])
	}
	idiv, ok := rest[1].(assembly.Idiv)
	if !ok {
		t.Fatalf("expected second instruction to be Idiv, got %T", rest[1])
	}
	assert.Equal(t, assembly.Register{Id: assembly.R10}, idiv.Operand)
}

func TestFixUpBouncesShiftCountThroughCX(t *testing.T) {
	program := assembly.Program{Function: assembly.Function{
		Name: "f",
		Instructions: []assembly.Instruction{
			assembly.BinaryInst{Op: assembly.Shl, Src: assembly.Stack{Offset: -4}, Dst: assembly.Stack{Offset: -8}},
		},
	}}
	fixed := assembly.FixUp(program, 8)
	rest := fixed.Function.Instructions[1:]
	if len(rest) != 3 {
		t.Fatalf("expected the variable shift count to split into Movb+Movb+Shl, got %d", len(rest))
	}
	toR11 := rest[0].(assembly.Movb)
	assert.Equal(t, assembly.Register{Id: assembly.R11}, toR11.Dst)
	toCX := rest[1].(assembly.Movb)
	assert.Equal(t, assembly.Register{Id: assembly.R11}, toCX.Src)
	assert.Equal(t, assembly.Register{Id: assembly.CX}, toCX.Dst)
	shl := rest[2].(assembly.BinaryInst)
	assert.Equal(t, assembly.Register{Id: assembly.CX}, shl.Src)
}

func TestEmitProducesGloballyVisibleSymbolAndEpilogue(t *testing.T) {
	program := assembly.Program{Function: assembly.Function{
		Name: "main",
		Instructions: []assembly.Instruction{
			assembly.AllocateStack{Size: 0},
			assembly.Mov{Src: assembly.Imm{Value: 2}, Dst: assembly.Register{Id: assembly.AX}},
			assembly.Ret{},
		},
	}}
	out := assembly.Emit(program)
	assert.True(t, strings.Contains(out, ".globl"))
	assert.True(t, strings.Contains(out, "movl $2, %eax"))
	assert.True(t, strings.Contains(out, "ret"))
}

func TestPrintDumpFormat(t *testing.T) {
	program := assembly.Program{Function: assembly.Function{
		Name:         "main",
		Instructions: []assembly.Instruction{assembly.Ret{}},
	}}
	out := assembly.Print(program)
	assert.Equal(t, "Program:\n  Function: main\n    Instruction: Ret\n", out)
}
