package lmr

import (
	"fmt"
	"sort"
)

// SymbolTable is a flat name to value mapping. It backs both the global scope
// and the per-call local scope; local scopes never point to a parent.
type SymbolTable struct {
	Entries map[string]Value
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Entries: make(map[string]Value),
	}
}

func (t *SymbolTable) Add(name string, v Value) {
	t.Entries[name] = v
}

func (t *SymbolTable) Get(name string) (Value, bool) {
	if t == nil {
		return nil, false
	}

	v, ok := t.Entries[name]
	return v, ok
}

func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.Entries))
	for name := range t.Entries {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

type Function struct {
	Name   string
	Params []string
	Body   Node
}

// Evaluator walks statements against a global scope and a function table that
// persist across calls to Eval. It is not safe for concurrent use.
//
// Evaluation is plain Go recursion, one frame per nested node or call, so the
// goroutine stack is the only bound on nesting depth. A function whose body
// calls itself never terminates and will exhaust it.
type Evaluator struct {
	globals   *SymbolTable
	functions map[string]*Function
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		globals:   NewSymbolTable(),
		functions: make(map[string]*Function),
	}
}

// Interpret tokenizes, parses and evaluates a single statement.
func (e *Evaluator) Interpret(source string) (Value, error) {
	stmt, err := NewParser(NewLexerFromString(source)).Parse()
	if err != nil {
		return nil, err
	}

	return e.Eval(stmt)
}

func (e *Evaluator) Eval(node Node) (Value, error) {
	return e.eval(node, nil)
}

func (e *Evaluator) Global(name string) (Value, bool) {
	return e.globals.Get(name)
}

// Globals returns the names of all assigned variables, sorted.
func (e *Evaluator) Globals() []string {
	return e.globals.Names()
}

func (e *Evaluator) Function(name string) (*Function, bool) {
	f, ok := e.functions[name]
	return f, ok
}

// Functions returns the names of all defined functions, sorted.
func (e *Evaluator) Functions() []string {
	names := make([]string, 0, len(e.functions))
	for name := range e.functions {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (e *Evaluator) eval(node Node, local *SymbolTable) (Value, error) {
	switch n := node.(type) {
	case *IntegerLiteral:
		return Int(n.Value), nil
	case *VariableRef:
		return e.lookup(n.Name, local)
	case *BinaryExpr:
		return e.binaryExpression(n, local)
	case *Assignment:
		return e.assignment(n, local)
	case *FuncDecl:
		return e.define(n), nil
	case *FuncCall:
		return e.call(n, local)
	default:
		panic(fmt.Sprintf("unexpected node %T", node))
	}
}

func (e *Evaluator) lookup(name string, local *SymbolTable) (Value, error) {
	if v, ok := local.Get(name); ok {
		return v, nil
	}

	if v, ok := e.globals.Get(name); ok {
		return v, nil
	}

	return nil, &NameError{Name: name}
}

func (e *Evaluator) binaryExpression(expr *BinaryExpr, local *SymbolTable) (Value, error) {
	v1, err := e.eval(expr.Op1, local)
	if err != nil {
		return nil, err
	}

	v2, err := e.eval(expr.Op2, local)
	if err != nil {
		return nil, err
	}

	return arithmetic(expr.Operation, v1, v2)
}

func (e *Evaluator) assignment(expr *Assignment, local *SymbolTable) (Value, error) {
	v, err := e.eval(expr.Value, local)
	if err != nil {
		return nil, err
	}

	e.globals.Add(expr.Name, v)

	return v, nil
}

func (e *Evaluator) define(expr *FuncDecl) Value {
	e.functions[expr.Name] = &Function{
		Name:   expr.Name,
		Params: expr.Params,
		Body:   expr.Body,
	}

	return &Definition{Name: expr.Name}
}

// call evaluates the arguments in the caller's scope and runs the body with
// a fresh scope holding only the parameters.
func (e *Evaluator) call(expr *FuncCall, local *SymbolTable) (Value, error) {
	f, ok := e.functions[expr.Name]
	if !ok {
		return nil, &UndefinedFunctionError{Name: expr.Name}
	}

	args := make([]Value, 0, len(expr.Args))
	for _, arg := range expr.Args {
		v, err := e.eval(arg, local)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	if len(args) != len(f.Params) {
		return nil, &ArityMismatchError{
			Name: expr.Name,
			Want: len(f.Params),
			Got:  len(args),
		}
	}

	scope := NewSymbolTable()
	for i, param := range f.Params {
		scope.Add(param, args[i])
	}

	return e.eval(f.Body, scope)
}
