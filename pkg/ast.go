package lmr

// Node is one of the closed set of node kinds below. The unexported marker
// method keeps other packages from adding new kinds.
type Node interface {
	node()
}

type IntegerLiteral struct {
	Value int64
}

type VariableRef struct {
	Name string
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
)

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Node
	Op2       Node
}

// Assignment always targets the global scope.
type Assignment struct {
	Name  string
	Value Node
}

// FuncDecl is a one-line function whose body is a single returned expression.
type FuncDecl struct {
	Name   string
	Params []string
	Body   Node
}

type FuncCall struct {
	Name string
	Args []Node
}

func (*IntegerLiteral) node() {}
func (*VariableRef) node()    {}
func (*BinaryExpr) node()     {}
func (*Assignment) node()     {}
func (*FuncDecl) node()       {}
func (*FuncCall) node()       {}
