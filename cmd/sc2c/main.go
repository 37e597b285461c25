package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/teris-io/cli"

	"github.com/neuroevolutus/simple-c-compiler/pkg/assembly"
	"github.com/neuroevolutus/simple-c-compiler/pkg/ast"
	"github.com/neuroevolutus/simple-c-compiler/pkg/compiler"
)

var Description = strings.ReplaceAll(`
sc2c compiles a single C source file through a from-scratch pipeline -
lexing, recursive-descent parsing, lowering to a linear three-address IR,
x86-64 codegen, and AT&T-syntax emission - down to assembly, stopping
early at whichever stage --lex, --parse, or --codegen asks for.
`, "\n", " ")

var Sc2c = cli.New(Description).
	WithArg(cli.NewArg("input", "The C source file to compile")).
	WithOption(cli.NewOption("lex", "Stop after lexing; report success or the first lex error").
		WithType(cli.TypeBool)).
	WithOption(cli.NewOption("parse", "Stop after parsing; print the parse tree").
		WithType(cli.TypeBool)).
	WithOption(cli.NewOption("codegen", "Stop after assembly codegen, before register allocation and fix-up; print the assembly tree").
		WithType(cli.TypeBool)).
	WithOption(cli.NewOption("S", "Emit AT&T-syntax assembly to <input>.s instead of writing it to stdout").
		WithChar('S').WithType(cli.TypeBool)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	given := 0
	for _, name := range []string{"lex", "parse", "codegen", "S"} {
		if hasOption(options, name) {
			given++
		}
	}
	if given > 1 {
		fmt.Fprintln(os.Stderr, "ERROR: at most one of --lex, --parse, --codegen, -S may be given")
		return -1
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Unable to open input file: %s\n", err)
		return -1
	}

	// Furthest stage this invocation asked to reach, for the error message
	// below; compiler.Compile itself prefixes the returned error with
	// whichever stage actually failed.
	furthest := "emission"
	stop := compiler.StageAssembly
	switch {
	case hasOption(options, "lex"):
		stop, furthest = compiler.StageLex, "lexing"
	case hasOption(options, "parse"):
		stop, furthest = compiler.StageParse, "parsing"
	case hasOption(options, "codegen"):
		stop, furthest = compiler.StageCodegen, "codegen"
	}

	result, err := compiler.Compile(string(source), stop)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n  (while attempting to reach the %q stage)\n", err, furthest)
		return -1
	}

	switch stop {
	case compiler.StageLex:
		fmt.Println("OK: lexing succeeded")
		return 0
	case compiler.StageParse:
		fmt.Print(ast.Print(result.AST))
		return 0
	case compiler.StageCodegen:
		fmt.Print(assembly.Print(result.Assembly))
		return 0
	}

	if _, ok := options["S"]; ok {
		outPath := strings.TrimSuffix(args[0], ".c") + ".s"
		if err := os.WriteFile(outPath, []byte(result.Source), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Unable to write output file: %s\n", err)
			return -1
		}
		return 0
	}

	fmt.Print(result.Source)
	return 0
}

func hasOption(options map[string]string, name string) bool {
	_, ok := options[name]
	return ok
}

func main() { os.Exit(Sc2c.Run(os.Args, os.Stdout)) }
