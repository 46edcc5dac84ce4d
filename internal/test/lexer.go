package test

import (
	"math/rand"
	"strconv"
	"strings"
)

const validTokens = "fonction;return;add;x;_tmp;var_2;(;);,;:;=;+;-;*;/;\n;0;7;42;123456789"

var operators = []string{"+", "-", "*", "/"}

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomArithmetic returns size operands in 1..9 joined by random binary
// operators. Operands are never zero so the result is always defined.
func GetRandomArithmetic(r *rand.Rand, size int) (operands []int64, ops []string) {
	for i := 0; i < size; i++ {
		operands = append(operands, int64(r.Intn(9)+1))
		if i > 0 {
			ops = append(ops, operators[r.Intn(len(operators))])
		}
	}

	return operands, ops
}

// JoinArithmetic renders operands and operators as LMR source.
func JoinArithmetic(operands []int64, ops []string) string {
	var b strings.Builder
	for i, v := range operands {
		if i > 0 {
			b.WriteString(" " + ops[i-1] + " ")
		}

		b.WriteString(strconv.FormatInt(v, 10))
	}

	return b.String()
}
