// Package compiler wires the lexer, parser, and lowering/codegen passes
// into the single pipeline cmd/sc2c drives, stopping early when asked to
// dump an intermediate stage.
package compiler

import (
	"github.com/pkg/errors"

	"github.com/neuroevolutus/simple-c-compiler/pkg/assembly"
	"github.com/neuroevolutus/simple-c-compiler/pkg/ast"
	"github.com/neuroevolutus/simple-c-compiler/pkg/fresh"
	"github.com/neuroevolutus/simple-c-compiler/pkg/lexer"
	"github.com/neuroevolutus/simple-c-compiler/pkg/parser"
	"github.com/neuroevolutus/simple-c-compiler/pkg/tacky"
)

// Stage names one of the pipeline's stopping points, matching cmd/sc2c's
// --lex/--parse/--codegen/-S flags.
type Stage int

const (
	// StageLex stops after lexing; there's nothing to return but errors,
	// so callers asking for it get a zero-value Result.
	StageLex Stage = iota
	StageParse
	StageTacky
	StageCodegen
	StageAssembly
)

// Result holds whichever intermediate representations Compile produced
// before stopping at the requested Stage. Fields past the stop point are
// left at their zero value.
type Result struct {
	AST      ast.Program
	Tacky    tacky.Program
	Assembly assembly.Program
	Source   string // final AT&T-syntax text, set only at StageAssembly
}

// Compile runs 'source' through the pipeline up to 'stop', allocating a
// fresh request-scoped name generator for the lowering pass: the counter
// is never a package global, so concurrent Compile calls never share or
// race on it.
func Compile(source string, stop Stage) (Result, error) {
	if stop == StageLex {
		if err := lexOnly(source); err != nil {
			return Result{}, errors.Wrap(err, "lexing")
		}
		return Result{}, nil
	}

	program, err := parser.Parse(source)
	if err != nil {
		return Result{}, errors.Wrap(err, "parsing")
	}
	if stop == StageParse {
		return Result{AST: program}, nil
	}

	names := fresh.New()
	tackyProgram := tacky.Lower(program, names)
	if stop == StageTacky {
		return Result{AST: program, Tacky: tackyProgram}, nil
	}

	asmProgram := assembly.Generate(tackyProgram)
	if stop == StageCodegen {
		return Result{AST: program, Tacky: tackyProgram, Assembly: asmProgram}, nil
	}

	asmProgram, frameSize := assembly.ReplacePseudoRegisters(asmProgram)
	asmProgram = assembly.FixUp(asmProgram, frameSize)

	return Result{
		AST:      program,
		Tacky:    tackyProgram,
		Assembly: asmProgram,
		Source:   assembly.Emit(asmProgram),
	}, nil
}

// lexOnly drains 'source' through the lexer without building a parse
// tree, surfacing the first lex error encountered (if any).
func lexOnly(source string) error {
	lex := lexer.New(source)
	for {
		_, err := lex.Next()
		switch err.(type) {
		case nil:
			continue
		case lexer.EOFError:
			return nil
		default:
			return err
		}
	}
}
