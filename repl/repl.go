/*
File    : atto/repl/repl.go
Author  : akashmaji(@iisc.ac.in)

Package repl implements atto's interactive Read-Eval-Print Loop
(spec §6): a persistent-history line prompt over __main__, where each
entered line is appended and incrementally re-lexed/re-parsed rather
than restarting from scratch. Grounded on the teacher's repl.Repl
(readline + fatih/color banner/loop shape), adapted to atto's
parser.Parser/eval.Evaluator pipeline and its `quit()` exit command in
place of the teacher's `.exit`.
*/
package repl

import (
	"bufio"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/akashmaji946/atto/corelib"
	"github.com/akashmaji946/atto/eval"
	"github.com/akashmaji946/atto/internal/errs"
	"github.com/akashmaji946/atto/loader"
	"github.com/akashmaji946/atto/module"
	"github.com/akashmaji946/atto/parser"
	"github.com/akashmaji946/atto/value"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// exitCommand is the one REPL special form recognized ahead of
// parsing (spec §6: "quit() exits"); it is not atto syntax — atto has
// no call-with-parens grammar — so it is matched as literal input,
// exactly as the teacher's REPL matches ".exit".
const exitCommand = "quit()"

// Repl is a configured interactive session: its banner, version and
// prompt strings, plus the history file path readline persists to.
type Repl struct {
	Banner      string
	Version     string
	Author      string
	Line        string
	License     string
	Prompt      string
	HistoryFile string
}

// New builds a Repl with the given display strings and history path.
func New(banner, version, author, line, license, prompt, historyFile string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt, HistoryFile: historyFile}
}

// PrintBanner writes the startup banner and usage hints to writer.
func (r *Repl) PrintBanner(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to atto!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type 'quit()' to exit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop over reader/writer until quit() or EOF. A
// fresh module registry and evaluator are created per session, with
// __core__ preloaded, so every connection in server mode is isolated.
//
// A non-empty HistoryFile means a real interactive terminal session:
// readline owns line editing and history there, exactly as the teacher
// wires it, and binds to the process's own stdin/stdout rather than
// reader/writer. An empty HistoryFile (server mode, one session per
// TCP connection) has no controlling terminal for readline to attach
// to, so it falls back to plain line scanning over reader/writer.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBanner(writer)

	reg := module.NewRegistry()
	p := parser.New(reg, loader.FileLoader{})
	if err := p.ParseModuleFromSource(module.CoreModule, corelib.Source); err != nil {
		redColor.Fprintf(writer, "[CORE ERROR] %v\n", err)
		return
	}
	p.EnsureMainModule()
	ev := eval.New(reg)
	ev.SetWriter(writer)
	ev.SetReader(reader)

	if r.HistoryFile != "" {
		r.runReadline(writer, p, ev)
		return
	}
	r.runScanner(reader, writer, p, ev)
}

// runReadline drives the loop with line editing and persistent history,
// the way the teacher's REPL does (grounded on the teacher's own
// readline.New(r.Prompt) call — readline always owns the real terminal,
// it cannot be redirected onto an arbitrary stream).
func (r *Repl) runReadline(writer io.Writer, p *parser.Parser, ev *eval.Evaluator) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      r.Prompt,
		HistoryFile: r.HistoryFile,
	})
	if err != nil {
		redColor.Fprintf(writer, "[REPL ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good bye!\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == exitCommand {
			writer.Write([]byte("Good bye!\n"))
			return
		}

		r.evalLine(writer, p, ev, line)
	}
}

// runScanner drives the loop over an arbitrary byte stream (a TCP
// connection in server mode) with plain newline-delimited input and no
// history or line editing.
func (r *Repl) runScanner(reader io.Reader, writer io.Writer, p *parser.Parser, ev *eval.Evaluator) {
	scanner := bufio.NewScanner(reader)
	for {
		writer.Write([]byte(r.Prompt))
		if !scanner.Scan() {
			writer.Write([]byte("Good bye!\n"))
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == exitCommand {
			writer.Write([]byte("Good bye!\n"))
			return
		}

		r.evalLine(writer, p, ev, line)
	}
}

// evalLine parses and evaluates one line, reporting either its
// structured error or its resulting value, then returning to the
// prompt either way (spec §7: the REPL recovers by discarding the
// offending appended input).
func (r *Repl) evalLine(writer io.Writer, p *parser.Parser, ev *eval.Evaluator, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	body, err := p.ParseReplLine(line)
	if err != nil {
		printErr(writer, err, line)
		return
	}
	if body == nil {
		return
	}

	var result value.Value
	for _, node := range body {
		var err2 error
		result, err2 = ev.Eval(node, module.MainModule, nil)
		if err2 != nil {
			printErr(writer, err2, line)
			return
		}
	}
	yellowColor.Fprintf(writer, "%s\n", result.AsStr())
}

func printErr(writer io.Writer, err error, source string) {
	if ae, ok := err.(*errs.Error); ok {
		redColor.Fprintf(writer, "%s\n", errs.Render(ae, source))
		return
	}
	redColor.Fprintf(writer, "%v\n", err)
}
