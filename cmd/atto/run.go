/*
File    : atto/cmd/atto/run.go
Author  : akashmaji(@iisc.ac.in)

The `run` subcommand executes one file as module __main__ (spec §6):
__core__ is loaded first, then the file and everything it __imports,
then main() is called and its result is translated into a process
exit code.
*/
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akashmaji946/atto/corelib"
	"github.com/akashmaji946/atto/eval"
	"github.com/akashmaji946/atto/internal/errs"
	"github.com/akashmaji946/atto/loader"
	"github.com/akashmaji946/atto/module"
	"github.com/akashmaji946/atto/parser"
	"github.com/akashmaji946/atto/value"
)

var redColor = color.New(color.FgRed)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Execute an atto source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			os.Exit(runFile(args[0]))
			return nil
		},
	}
}

// runFile parses and evaluates path as __main__, printing its error
// (if any), and returns the process exit code spec §6 defines: a
// Num's truncated integer, a Bool's 1/0, a Str's length, or 0.
//
// Parsing goes through p.ParseModule rather than reading the file and
// calling ParseModuleFromSource directly: ParseModule records the
// module's real on-disk path, which resolveImport needs to root a
// relative __import at the importing file's own directory (spec
// §4.3) rather than the process's current working directory.
func runFile(path string) int {
	reg := module.NewRegistry()
	p := parser.New(reg, loader.FileLoader{})

	if err := p.ParseModuleFromSource(module.CoreModule, corelib.Source); err != nil {
		reportErr(err, corelib.Source)
		return 1
	}

	if err := p.ParseModule(module.MainModule, path); err != nil {
		reportErr(err, sourceOf(reg, module.MainModule))
		return 1
	}

	ev := eval.New(reg)
	result, err := ev.RunMain(module.MainModule)
	if err != nil {
		reportErr(err, sourceOf(reg, module.MainModule))
		return 1
	}
	return exitCodeFor(result)
}

// sourceOf returns a module's source text for error rendering, or ""
// if the module was never registered.
func sourceOf(reg *module.Registry, name string) string {
	m, ok := reg.Get(name)
	if !ok {
		return ""
	}
	return m.Code
}

func exitCodeFor(v value.Value) int {
	switch v.Kind() {
	case value.KindNum:
		return int(v.RawNum())
	case value.KindBool:
		if v.RawBool() {
			return 1
		}
		return 0
	case value.KindStr:
		return len(v.RawStr())
	default:
		return 0
	}
}

func reportErr(err error, source string) {
	if ae, ok := err.(*errs.Error); ok {
		redColor.Fprintln(os.Stderr, errs.Render(ae, source))
		return
	}
	redColor.Fprintln(os.Stderr, err)
}
