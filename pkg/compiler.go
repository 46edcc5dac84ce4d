package lmr

import (
	"fmt"

	"github.com/llir/llvm/ir"
)

// Compiler lowers the state of an Evaluator to an LLVM IR module: one global
// per assigned variable and one function per definition.
type Compiler struct {
	ev *Evaluator
}

func NewCompiler(ev *Evaluator) *Compiler {
	return &Compiler{
		ev: ev,
	}
}

// Compile builds the module. A non-nil entry expression is lowered into a main
// function printing its value. Errors in any function body fail the whole
// module, even for functions the entry never calls.
func (c *Compiler) Compile(entry Node) (*ir.Module, error) {
	b := NewLLVMIRBuilder()

	for _, name := range c.ev.Globals() {
		v, _ := c.ev.Global(name)

		f, ok := Float64(v)
		if !ok {
			return nil, fmt.Errorf("global '%s' is not a number", name)
		}

		b.global(name, f)
	}

	var funcs []*Function
	for _, name := range c.ev.Functions() {
		fn, _ := c.ev.Function(name)
		funcs = append(funcs, fn)

		b.declare(fn)
	}

	for _, fn := range funcs {
		if err := b.function(fn); err != nil {
			return nil, err
		}
	}

	if entry != nil {
		if err := b.entry(entry); err != nil {
			return nil, err
		}
	}

	return b.mod, nil
}

// CompileSource parses source as the entry expression of the module.
func (c *Compiler) CompileSource(source string) (*ir.Module, error) {
	stmt, err := NewParser(NewLexerFromString(source)).Parse()
	if err != nil {
		return nil, err
	}

	if _, isFuncDecl := stmt.(*FuncDecl); isFuncDecl {
		return nil, fmt.Errorf("entry must be an expression or assignment")
	}

	return c.Compile(stmt)
}
