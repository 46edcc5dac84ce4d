package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/jcgregorio/logger"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.lmr.dev/pkg"
)

// flag names
const (
	exprFlagName     = "expr"
	fileFlagName     = "file"
	emitLLVMFlagName = "emit-llvm"
	historyFlagName  = "history"
	noColorFlagName  = "no-color"
	verboseFlagName  = "verbose"
)

const (
	historyFile = ".lmr_history"
	prompt      = "lmr> "
	helpText    = `REPL commands:
  :help    Show this text
  :vars    List assigned variables
  :funcs   List defined functions
  :llvm    Print the session as an LLVM IR module
  :quit    Exit the REPL`
)

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	blue  = color.New(color.FgHiBlue).SprintFunc()
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "lmr",
		Usage: "evaluate LMR statements, one line at a time",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    exprFlagName,
				Aliases: []string{"e"},
				Usage:   "evaluate a single statement and exit, cannot be combined with --" + fileFlagName,
			},
			&cli.StringFlag{
				Name:    fileFlagName,
				Aliases: []string{"f"},
				Usage:   "evaluate a file line by line, a line ending in ':' continues on the next one",
			},
			&cli.BoolFlag{
				Name:  emitLLVMFlagName,
				Usage: "print the defined functions and variables as LLVM IR before exiting",
			},
			&cli.StringFlag{
				Name:    historyFlagName,
				Usage:   "REPL history file, defaults to ~/" + historyFile,
				EnvVars: []string{"LMR_HISTORY"},
			},
			&cli.BoolFlag{
				Name:    noColorFlagName,
				Usage:   "disable coloured output",
				EnvVars: []string{"NO_COLOR"},
			},
			&cli.BoolFlag{
				Name:    verboseFlagName,
				Aliases: []string{"v"},
				Usage:   "log debug output to stderr",
			},
		},
		Action: run,
	}
}

func run(ctx *cli.Context) error {
	if ctx.IsSet(exprFlagName) && ctx.IsSet(fileFlagName) {
		return errors.Errorf("--%s and --%s cannot be combined", exprFlagName, fileFlagName)
	}

	if ctx.Bool(noColorFlagName) {
		color.NoColor = true
	}

	s := &session{
		ev: lmr.NewEvaluator(),
		log: logger.NewFromOptions(&logger.Options{
			SyncWriter:   os.Stderr,
			IncludeDebug: ctx.Bool(verboseFlagName),
		}),
		out: os.Stdout,
	}

	var entry lmr.Node
	var err error
	switch {
	case ctx.IsSet(exprFlagName):
		entry, err = s.evalExpr(ctx.String(exprFlagName))
	case ctx.IsSet(fileFlagName):
		err = s.evalFile(ctx.String(fileFlagName))
	default:
		err = s.repl(historyPath(ctx.String(historyFlagName)))
	}

	if err != nil {
		return err
	}

	if ctx.Bool(emitLLVMFlagName) {
		return s.emitLLVM(entry)
	}

	return nil
}

type session struct {
	ev  *lmr.Evaluator
	log *logger.Logger
	out io.Writer
}

// evalExpr evaluates one statement. Anything but a function definition is
// returned so that it can serve as the entry point of an emitted module.
func (s *session) evalExpr(source string) (lmr.Node, error) {
	stmt, err := lmr.NewParser(lmr.NewLexerFromString(source)).Parse()
	if err != nil {
		return nil, err
	}

	v, err := s.ev.Eval(stmt)
	if err != nil {
		return nil, err
	}

	s.printValue(v)

	if _, isFuncDecl := stmt.(*lmr.FuncDecl); isFuncDecl {
		return nil, nil
	}

	return stmt, nil
}

// evalFile evaluates the statements of a file in order. A statement is one
// line, except that a line ending in ':' is joined with the next non-blank
// line so a function body may sit on its own line. Failures are collected and
// returned together once the whole file has run.
func (s *session) evalFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	var result *multierror.Error

	var pending string
	var start int

	eval := func(source string, line int) {
		s.log.Debugf("%s:%d: %s", path, line, source)

		v, err := s.ev.Interpret(source)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "%s:%d", path, line))
			return
		}

		s.printValue(v)
	}

	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		source := scanner.Text()
		trimmed := strings.TrimSpace(source)
		if trimmed == "" {
			continue
		}

		if pending == "" {
			start = line
		} else {
			source = pending + "\n" + source
			pending = ""
		}

		if strings.HasSuffix(trimmed, ":") {
			pending = source
			continue
		}

		eval(source, start)
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	// A trailing header with no body still gets its syntax error
	if pending != "" {
		eval(pending, start)
	}

	if result != nil {
		s.log.Infof("%s: %d statement(s) failed", path, len(result.Errors))
	}

	return result.ErrorOrNil()
}

func (s *session) repl(histPath string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		if _, err := ln.ReadHistory(f); err != nil {
			s.log.Warningf("reading history %s: %s", histPath, err)
		}
		_ = f.Close()
	}

	defer func() {
		f, err := os.Create(histPath)
		if err != nil {
			s.log.Warningf("saving history: %s", errors.Wrap(err, histPath))
			return
		}

		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}()

	fmt.Fprintln(s.out, "LMR REPL. Type :help for commands, Ctrl+D exits.")

	for {
		line, err := ln.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		}

		if err != nil {
			if err != io.EOF {
				return errors.Wrap(err, "reading input")
			}

			fmt.Fprintln(s.out)
			return nil
		}

		source := strings.TrimSpace(line)
		if source == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(source, ":") {
			if quit := s.command(source); quit {
				return nil
			}

			continue
		}

		v, err := s.ev.Interpret(line)
		if err != nil {
			fmt.Fprintln(s.out, red(err.Error()))
			continue
		}

		s.printValue(v)
	}
}

func (s *session) command(cmd string) (quit bool) {
	switch cmd {
	case ":quit":
		return true
	case ":help":
		fmt.Fprintln(s.out, helpText)
	case ":vars":
		for _, name := range s.ev.Globals() {
			v, _ := s.ev.Global(name)
			fmt.Fprintf(s.out, "%s = %s\n", name, blue(v))
		}
	case ":funcs":
		for _, name := range s.ev.Functions() {
			f, _ := s.ev.Function(name)
			fmt.Fprintf(s.out, "%s(%s)\n", name, strings.Join(f.Params, ", "))
		}
	case ":llvm":
		if err := s.emitLLVM(nil); err != nil {
			fmt.Fprintln(s.out, red(err.Error()))
		}
	default:
		fmt.Fprintln(s.out, "unknown command, type :help for a list")
	}

	return false
}

func (s *session) emitLLVM(entry lmr.Node) error {
	mod, err := lmr.NewCompiler(s.ev).Compile(entry)
	if err != nil {
		return errors.Wrap(err, "emitting LLVM IR")
	}

	fmt.Fprint(s.out, mod.String())
	return nil
}

func (s *session) printValue(v lmr.Value) {
	if _, isDefinition := v.(*lmr.Definition); isDefinition {
		fmt.Fprintln(s.out, green(v))
		return
	}

	fmt.Fprintln(s.out, blue(v))
}

func historyPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}

	return filepath.Join(home, historyFile)
}
