package lmr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is the outcome of evaluating a statement: an Int, a Float, or the
// Definition acknowledgement of a function declaration.
type Value interface {
	fmt.Stringer
	value()
}

type Int int64

type Float float64

type Definition struct {
	Name string
}

func (Int) value()         {}
func (Float) value()       {}
func (*Definition) value() {}

func (v Int) String() string {
	return strconv.FormatInt(int64(v), 10)
}

// String keeps a fractional part on integral floats so that 6.0 and 6 stay
// distinguishable.
func (v Float) String() string {
	f := float64(v)
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(s, ".e") {
		return s
	}

	return s + ".0"
}

func (d *Definition) String() string {
	return fmt.Sprintf("function '%s' defined", d.Name)
}

// Float64 returns the numeric value of v as a float64.
func Float64(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	default:
		return 0, false
	}
}

func arithmetic(op BinaryOp, lhs, rhs Value) (Value, error) {
	l, lok := lhs.(Int)
	r, rok := rhs.(Int)
	if lok && rok && op != BinaryDivision {
		return intArithmetic(op, l, r)
	}

	a, aok := Float64(lhs)
	b, bok := Float64(rhs)
	if !aok || !bok {
		return nil, &RuntimeError{Op: op, Reason: "operand is not a number"}
	}

	var res float64
	switch op {
	case BinaryAddition:
		res = a + b
	case BinarySubtraction:
		res = a - b
	case BinaryMultiplication:
		res = a * b
	case BinaryDivision:
		if b == 0 {
			return nil, &RuntimeError{Op: op, Reason: "division by zero"}
		}

		res = a / b
	default:
		panic("unexpected binary op: " + op)
	}

	if math.IsInf(res, 0) || math.IsNaN(res) {
		return nil, &RuntimeError{Op: op, Reason: "floating-point overflow"}
	}

	return Float(res), nil
}

func intArithmetic(op BinaryOp, l, r Int) (Value, error) {
	var res Int
	var overflow bool

	switch op {
	case BinaryAddition:
		res = l + r
		overflow = (r > 0 && res < l) || (r < 0 && res > l)
	case BinarySubtraction:
		res = l - r
		overflow = (r > 0 && res > l) || (r < 0 && res < l)
	case BinaryMultiplication:
		res = l * r
		overflow = l != 0 && (res/l != r || (l == -1 && r == math.MinInt64))
	default:
		panic("unexpected binary op: " + op)
	}

	if overflow {
		return nil, &RuntimeError{Op: op, Reason: "integer overflow"}
	}

	return res, nil
}
