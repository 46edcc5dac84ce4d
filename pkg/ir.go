package lmr

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// IR names are namespaced since LMR keeps functions and variables apart and
// the module also carries main and printf.
const (
	funcPrefix   = "fn."
	globalPrefix = "var."
)

type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Get(id string) (value.Value, bool) {
	val, ok := l.vals[id]
	return val, ok
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

// LLVMIRBuilder lowers LMR nodes to LLVM IR. Every LMR number becomes a
// double, so the integer/float distinction is not preserved.
type LLVMIRBuilder struct {
	mod   *ir.Module
	block *ir.Block

	builtins *ValueLookup
	funcs    *ValueLookup
	globals  *ValueLookup
	locals   *ValueLookup
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:      ir.NewModule(),
		builtins: NewValueLookup(),
		funcs:    NewValueLookup(),
		globals:  NewValueLookup(),
		locals:   NewValueLookup(),
	}

	defineBuiltins(builder)
	return builder
}

func (b *LLVMIRBuilder) global(name string, init float64) *ir.Global {
	g := b.mod.NewGlobalDef(globalPrefix+name, constant.NewFloat(types.Double, init))
	b.globals.Set(name, g)

	return g
}

// declare adds the function signature so that bodies can call functions
// declared after them.
func (b *LLVMIRBuilder) declare(fn *Function) {
	params := make([]*ir.Param, len(fn.Params))
	for i, name := range fn.Params {
		if lastIndex(fn.Params, name) != i {
			// Shadowed by a later parameter of the same name
			name = ""
		}

		params[i] = ir.NewParam(name, types.Double)
	}

	b.funcs.Set(fn.Name, b.mod.NewFunc(funcPrefix+fn.Name, types.Double, params...))
}

func (b *LLVMIRBuilder) function(fn *Function) error {
	v, _ := b.funcs.Get(fn.Name)
	f := v.(*ir.Func)

	prevBlock, prevLocals := b.block, b.locals
	b.block = f.NewBlock("")
	b.locals = NewValueLookup()

	defer func() {
		b.block = prevBlock
		b.locals = prevLocals
	}()

	for i, name := range fn.Params {
		b.locals.Set(name, f.Params[i]) // The last duplicate wins
	}

	ret, err := b.recursiveLoad(fn.Body)
	if err != nil {
		return fmt.Errorf("function '%s': %w", fn.Name, err)
	}

	b.block.NewRet(ret)
	return nil
}

// entry lowers expr into a main function that prints its value.
func (b *LLVMIRBuilder) entry(expr Node) error {
	f := b.mod.NewFunc("main", types.I32)
	b.block = f.NewBlock("")
	b.locals = NewValueLookup()

	v, err := b.recursiveLoad(expr)
	if err != nil {
		return err
	}

	printFn, _ := b.builtins.Get("print")
	b.block.NewCall(printFn, v)
	b.block.NewRet(constant.NewInt(types.I32, 0))

	return nil
}

func (b *LLVMIRBuilder) recursiveLoad(expr Node) (value.Value, error) {
	switch e := expr.(type) {
	case *IntegerLiteral:
		return constant.NewFloat(types.Double, float64(e.Value)), nil
	case *VariableRef:
		return b.variable(e)
	case *BinaryExpr:
		return b.binaryExpression(e)
	case *Assignment:
		return b.assignment(e)
	case *FuncCall:
		return b.functionCall(e)
	default:
		return nil, fmt.Errorf("cannot lower %T to an expression", expr)
	}
}

func (b *LLVMIRBuilder) variable(expr *VariableRef) (value.Value, error) {
	if v, ok := b.locals.Get(expr.Name); ok {
		return v, nil
	}

	if g, ok := b.globals.Get(expr.Name); ok {
		return b.block.NewLoad(types.Double, g), nil
	}

	return nil, &NameError{Name: expr.Name}
}

func (b *LLVMIRBuilder) binaryExpression(expr *BinaryExpr) (value.Value, error) {
	v1, err := b.recursiveLoad(expr.Op1)
	if err != nil {
		return nil, err
	}

	v2, err := b.recursiveLoad(expr.Op2)
	if err != nil {
		return nil, err
	}

	switch expr.Operation {
	case BinaryAddition:
		return b.block.NewFAdd(v1, v2), nil
	case BinarySubtraction:
		return b.block.NewFSub(v1, v2), nil
	case BinaryMultiplication:
		return b.block.NewFMul(v1, v2), nil
	case BinaryDivision:
		// A zero divisor yields an IEEE infinity or NaN here
		return b.block.NewFDiv(v1, v2), nil
	default:
		panic("unexpected binary op: " + expr.Operation)
	}
}

func (b *LLVMIRBuilder) assignment(expr *Assignment) (value.Value, error) {
	v, err := b.recursiveLoad(expr.Value)
	if err != nil {
		return nil, err
	}

	g, ok := b.globals.Get(expr.Name)
	if !ok {
		g = b.global(expr.Name, 0)
	}

	b.block.NewStore(v, g)

	return v, nil
}

func (b *LLVMIRBuilder) functionCall(expr *FuncCall) (value.Value, error) {
	v, ok := b.funcs.Get(expr.Name)
	if !ok {
		return nil, &UndefinedFunctionError{Name: expr.Name}
	}

	f := v.(*ir.Func)
	if len(f.Params) != len(expr.Args) {
		return nil, &ArityMismatchError{
			Name: expr.Name,
			Want: len(f.Params),
			Got:  len(expr.Args),
		}
	}

	var args []value.Value
	for _, arg := range expr.Args {
		argVal, err := b.recursiveLoad(arg)
		if err != nil {
			return nil, err
		}

		args = append(args, argVal)
	}

	return b.block.NewCall(f, args...), nil
}

func lastIndex(names []string, name string) int {
	for i := len(names) - 1; i >= 0; i-- {
		if names[i] == name {
			return i
		}
	}

	return -1
}
