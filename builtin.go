// seehuhn.de/go/postfix - an interpreter for a small postfix language
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package postfix

import (
	"cmp"
	"math"
	"strings"
)

// All builtins leave the stack unchanged when they return an error.

func bAdd(intp *Interpreter) error {
	return intp.binary("+", add)
}

func bSub(intp *Interpreter) error {
	return intp.binary("-", func(b, a Value) (Value, error) {
		return arith("-", b, a)
	})
}

func bMul(intp *Interpreter) error {
	return intp.binary("*", mul)
}

func bDiv(intp *Interpreter) error {
	return intp.binary("/", func(b, a Value) (Value, error) {
		return arith("/", b, a)
	})
}

func bMod(intp *Interpreter) error {
	return intp.binary("%", func(b, a Value) (Value, error) {
		return arith("%", b, a)
	})
}

func bPow(intp *Interpreter) error {
	return intp.binary("**", func(b, a Value) (Value, error) {
		return arith("**", b, a)
	})
}

// binary replaces the top two stack elements b, a (a on top) by f(b, a).
func (intp *Interpreter) binary(name string, f func(b, a Value) (Value, error)) error {
	n := len(intp.Stack)
	if n < 2 {
		return intp.e(eStackunderflow, "%s: not enough arguments", name)
	}
	res, err := f(intp.Stack[n-2], intp.Stack[n-1])
	if err != nil {
		return err
	}
	intp.Stack = append(intp.Stack[:n-2], res)
	return nil
}

func isList(v Value) bool {
	return Is(v, KindArray) || Is(v, KindMatrix)
}

func toList(v Value) (Array, error) {
	if Is(v, KindMatrix) {
		return toMatrix(v)
	}
	return toArray(v)
}

// add implements "+": element-wise addition for arrays, concatenation for
// strings, and numeric addition otherwise.
func add(b, a Value) (Value, error) {
	switch {
	case isList(a) && isList(b):
		x, err := toList(b)
		if err != nil {
			return nil, err
		}
		y, err := toList(a)
		if err != nil {
			return nil, err
		}
		n := min(len(x), len(y))
		res := make(Array, n)
		for i := range n {
			res[i], err = add(x[i], y[i])
			if err != nil {
				return nil, err
			}
		}
		return res, nil
	case Is(a, KindString) && Is(b, KindString):
		return String(toStr(b) + toStr(a)), nil
	default:
		return arith("+", b, a)
	}
}

// mul implements "*".  The cases are tried in order: matrix times vector,
// matrix times matrix, dot product of two arrays, string repetition, and
// numeric multiplication.
func mul(b, a Value) (Value, error) {
	switch {
	case Is(b, KindMatrix) && Is(a, KindArray):
		m, err := toMatrix(b)
		if err != nil {
			return nil, err
		}
		v, err := toArray(a)
		if err != nil {
			return nil, err
		}
		res := make(Array, len(m))
		for i, row := range m {
			row := row.(Array)
			if len(row) != len(v) {
				return nil, &evalError{tp: eRangecheck, msg: "*: matrix and vector sizes differ"}
			}
			res[i], err = dot(row, v)
			if err != nil {
				return nil, err
			}
		}
		return res, nil

	case Is(a, KindMatrix) && Is(b, KindMatrix):
		x, err := toMatrix(a)
		if err != nil {
			return nil, err
		}
		y, err := toMatrix(b)
		if err != nil {
			return nil, err
		}
		cols, err := transpose(y)
		if err != nil {
			return nil, err
		}
		res := make(Array, len(x))
		for i, row := range x {
			row := row.(Array)
			if len(row) != len(y) {
				return nil, &evalError{tp: eRangecheck, msg: "*: matrix sizes differ"}
			}
			out := make(Array, len(cols))
			for j, col := range cols {
				out[j], err = dot(row, col.(Array))
				if err != nil {
					return nil, err
				}
			}
			res[i] = out
		}
		return res, nil

	case Is(a, KindArray) && Is(b, KindArray):
		x, err := toArray(b)
		if err != nil {
			return nil, err
		}
		y, err := toArray(a)
		if err != nil {
			return nil, err
		}
		return dot(y, x)

	case Is(a, KindNumber) && Is(b, KindString):
		n, err := toInt(a)
		if err != nil {
			return nil, err
		}
		s := toStr(b)
		if n < 0 {
			return nil, &evalError{tp: eRangecheck, msg: "*: negative repeat count"}
		} else if len(s) > 0 && n > maxStringSize/len(s) {
			return nil, &evalError{tp: eLimitcheck, msg: "*: string too long"}
		}
		return String(strings.Repeat(s, n)), nil

	default:
		return arith("*", b, a)
	}
}

// dot multiplies x and y element-wise and sums the products.  The shorter
// of the two arrays determines the number of terms.
func dot(x, y Array) (Value, error) {
	var sum Value = Integer(0)
	n := min(len(x), len(y))
	for i := range n {
		p, err := mul(y[i], x[i])
		if err != nil {
			return nil, err
		}
		if i == 0 {
			sum = p
			continue
		}
		sum, err = add(sum, p)
		if err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// arith applies a numeric operator to b and a.  Integer results which
// overflow are computed using floating point instead.
func arith(op string, b, a Value) (Value, error) {
	x, err := toNumber(b)
	if err != nil {
		return nil, err
	}
	y, err := toNumber(a)
	if err != nil {
		return nil, err
	}

	xi, xIsInt := x.(Integer)
	yi, yIsInt := y.(Integer)
	if xIsInt && yIsInt {
		switch op {
		case "+":
			c := xi + yi
			if !(xi < 0 && yi < 0 && c >= 0) && !(xi > 0 && yi > 0 && c <= 0) {
				return c, nil
			}
		case "-":
			c := xi - yi
			if !(xi < 0 && yi > 0 && c >= 0) && !(xi >= 0 && yi < 0 && c < 0) {
				return c, nil
			}
		case "*":
			c := xi * yi
			if xi == 0 || (c/xi == yi && !(xi == -1 && yi == math.MinInt)) {
				return c, nil
			}
		case "%":
			if yi == 0 {
				return nil, &evalError{tp: eUndefinedresult, msg: "%: division by zero"}
			}
			if yi == -1 {
				return Integer(0), nil
			}
			r := xi % yi
			if r != 0 && (r < 0) != (yi < 0) {
				r += yi
			}
			return r, nil
		case "**":
			if c, ok := intPow(xi, yi); ok {
				return c, nil
			}
		}
	}

	xf := asFloat(x)
	yf := asFloat(y)
	var res float64
	switch op {
	case "+":
		res = xf + yf
	case "-":
		res = xf - yf
	case "*":
		res = xf * yf
	case "/":
		if yf == 0 {
			return nil, &evalError{tp: eUndefinedresult, msg: "/: division by zero"}
		}
		res = xf / yf
	case "%":
		if yf == 0 {
			return nil, &evalError{tp: eUndefinedresult, msg: "%: division by zero"}
		}
		res = math.Mod(xf, yf)
		if res != 0 && (res < 0) != (yf < 0) {
			res += yf
		}
	case "**":
		res = math.Pow(xf, yf)
	}
	if math.IsInf(res, 0) || math.IsNaN(res) {
		return nil, &evalError{tp: eUndefinedresult, msg: op + ": result is not a finite number"}
	}
	return normalize(res), nil
}

// intPow computes x**y for y >= 0.  The second return value is false if
// y is negative or if the result overflows.
func intPow(x, y Integer) (Integer, bool) {
	if y < 0 {
		return 0, false
	}
	res := Integer(1)
	for y > 0 {
		if y&1 != 0 {
			c := res * x
			if res != 0 && (c/res != x || (res == -1 && x == math.MinInt)) {
				return 0, false
			}
			res = c
		}
		y >>= 1
		if y > 0 {
			c := x * x
			if x != 0 && (c/x != x || x == math.MinInt) {
				return 0, false
			}
			x = c
		}
	}
	return res, true
}

func asFloat(x Value) float64 {
	switch x := x.(type) {
	case Integer:
		return float64(x)
	case Real:
		return float64(x)
	default:
		panic("not reached")
	}
}

func bCompare(op string) builtin {
	return func(intp *Interpreter) error {
		return intp.binary(op, func(b, a Value) (Value, error) {
			c, err := compare(b, a)
			if err != nil {
				return nil, err
			}
			switch op {
			case "==":
				return Boolean(c == 0), nil
			case "!=":
				return Boolean(c != 0), nil
			case ">":
				return Boolean(c > 0), nil
			case "<":
				return Boolean(c < 0), nil
			case ">=":
				return Boolean(c >= 0), nil
			case "<=":
				return Boolean(c <= 0), nil
			default: // "<=>"
				return Integer(c), nil
			}
		})
	}
}

// compare compares two numbers numerically, and everything else by the
// source text.
func compare(b, a Value) (int, error) {
	if !Is(a, KindNumber) || !Is(b, KindNumber) {
		return cmp.Compare(textOf(b), textOf(a)), nil
	}
	x, err := toNumber(b)
	if err != nil {
		return 0, err
	}
	y, err := toNumber(a)
	if err != nil {
		return 0, err
	}
	xi, xIsInt := x.(Integer)
	yi, yIsInt := y.(Integer)
	if xIsInt && yIsInt {
		return cmp.Compare(xi, yi), nil
	}
	return cmp.Compare(asFloat(x), asFloat(y)), nil
}

func bAnd(intp *Interpreter) error {
	return intp.binary("&", func(b, a Value) (Value, error) {
		return Boolean(toBool(b) && toBool(a)), nil
	})
}

func bOr(intp *Interpreter) error {
	return intp.binary("|", func(b, a Value) (Value, error) {
		return Boolean(toBool(b) || toBool(a)), nil
	})
}

// bXor is logical exclusive or for two booleans, and bitwise exclusive or
// otherwise.
func bXor(intp *Interpreter) error {
	return intp.binary("^", func(b, a Value) (Value, error) {
		if Is(a, KindBoolean) && Is(b, KindBoolean) {
			return Boolean(toBool(b) != toBool(a)), nil
		}
		x, y, err := intPair(b, a)
		if err != nil {
			return nil, err
		}
		return Integer(x ^ y), nil
	})
}

func bShiftLeft(intp *Interpreter) error {
	return intp.binary("<<", func(b, a Value) (Value, error) {
		x, y, err := intPair(b, a)
		if err != nil {
			return nil, err
		}
		return shift(x, y)
	})
}

func bShiftRight(intp *Interpreter) error {
	return intp.binary(">>", func(b, a Value) (Value, error) {
		x, y, err := intPair(b, a)
		if err != nil {
			return nil, err
		}
		if y == math.MinInt {
			return nil, &evalError{tp: eRangecheck, msg: ">>: shift count out of range"}
		}
		return shift(x, -y)
	})
}

// shift computes x shifted left by n bits.  Negative n shift to the right.
func shift(x, n int) (Value, error) {
	if n < 0 {
		if n < -63 {
			n = -63
		}
		return Integer(x >> uint(-n)), nil
	}
	if n < 63 {
		c := x << uint(n)
		if c>>uint(n) == x {
			return Integer(c), nil
		}
	} else if x == 0 {
		return Integer(0), nil
	}
	res := math.Ldexp(float64(x), n)
	if math.IsInf(res, 0) {
		return nil, &evalError{tp: eUndefinedresult, msg: "<<: result is not a finite number"}
	}
	return normalize(res), nil
}

func intPair(b, a Value) (int, int, error) {
	x, err := toInt(b)
	if err != nil {
		return 0, 0, err
	}
	y, err := toInt(a)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func bNot(intp *Interpreter) error {
	if len(intp.Stack) < 1 {
		return intp.e(eStackunderflow, "!: not enough arguments")
	}
	top := len(intp.Stack) - 1
	intp.Stack[top] = Boolean(!toBool(intp.Stack[top]))
	return nil
}

func bComplement(intp *Interpreter) error {
	if len(intp.Stack) < 1 {
		return intp.e(eStackunderflow, "~: not enough arguments")
	}
	top := len(intp.Stack) - 1
	x, err := toInt(intp.Stack[top])
	if err != nil {
		return err
	}
	intp.Stack[top] = Integer(^x)
	return nil
}

func bDup(intp *Interpreter) error {
	if len(intp.Stack) > 0 {
		intp.Stack = append(intp.Stack, intp.Stack[len(intp.Stack)-1])
	}
	return nil
}

func bDrop(intp *Interpreter) error {
	if len(intp.Stack) > 0 {
		intp.Stack = intp.Stack[:len(intp.Stack)-1]
	}
	return nil
}

func bSwap(intp *Interpreter) error {
	n := len(intp.Stack)
	if n < 2 {
		return intp.e(eStackunderflow, "SWAP: not enough arguments")
	}
	intp.Stack[n-2], intp.Stack[n-1] = intp.Stack[n-1], intp.Stack[n-2]
	return nil
}

// bRot rotates the top three elements: a b c -> b c a.
func bRot(intp *Interpreter) error {
	if len(intp.Stack) < 3 {
		return intp.e(eStackunderflow, "ROT: not enough arguments")
	}
	rotate(intp.Stack[len(intp.Stack)-3:], 1)
	return nil
}

// bRoll pops n and moves the n-th element from the top to the top.
func bRoll(intp *Interpreter) error {
	return intp.roll("ROLL", 1)
}

// bRolld pops n and moves the top element down to position n.
func bRolld(intp *Interpreter) error {
	return intp.roll("ROLLD", -1)
}

func (intp *Interpreter) roll(name string, dir int) error {
	if len(intp.Stack) < 1 {
		return intp.e(eStackunderflow, "%s: not enough arguments", name)
	}
	top := len(intp.Stack) - 1
	n, err := toInt(intp.Stack[top])
	if err != nil {
		return err
	}
	intp.Stack = intp.Stack[:top]
	if n < 0 || n > top {
		return nil
	}
	rotate(intp.Stack[top-n:], dir)
	return nil
}

// rotate shifts the elements of data by one position.  For dir > 0, the
// first element moves to the end, otherwise the last element moves to the
// front.
func rotate(data []Value, dir int) {
	if len(data) < 2 {
		return
	}
	if dir > 0 {
		first := data[0]
		copy(data, data[1:])
		data[len(data)-1] = first
	} else {
		last := data[len(data)-1]
		copy(data[1:], data[:len(data)-1])
		data[0] = last
	}
}

// bIfelse pops a condition, then a, then b, and pushes b if the
// condition is true and a otherwise.
func bIfelse(intp *Interpreter) error {
	n := len(intp.Stack)
	if n < 3 {
		return intp.e(eStackunderflow, "IFELSE: not enough arguments")
	}
	cond := toBool(intp.Stack[n-1])
	a := intp.Stack[n-2]
	b := intp.Stack[n-3]
	res := a
	if cond {
		res = b
	}
	intp.Stack = append(intp.Stack[:n-3], res)
	return nil
}

// bCross computes the cross product u × v of two vectors of length 3,
// where v is on top of the stack.
func bCross(intp *Interpreter) error {
	return intp.binary("x", func(b, a Value) (Value, error) {
		if !Is(a, KindArray) || !Is(b, KindArray) {
			return nil, &evalError{tp: eTypecheck, msg: "x: needs two arrays"}
		}
		u, err := toArray(b)
		if err != nil {
			return nil, err
		}
		v, err := toArray(a)
		if err != nil {
			return nil, err
		}
		if len(u) != 3 || len(v) != 3 {
			return nil, &evalError{tp: eRangecheck, msg: "x: needs vectors of length 3"}
		}
		res := make(Array, 3)
		for i := range 3 {
			j := (i + 1) % 3
			k := (i + 2) % 3
			p, err := arith("*", u[j], v[k])
			if err != nil {
				return nil, err
			}
			q, err := arith("*", u[k], v[j])
			if err != nil {
				return nil, err
			}
			res[i], err = arith("-", p, q)
			if err != nil {
				return nil, err
			}
		}
		return res, nil
	})
}

// bTransp replaces a matrix on top of the stack by its transpose.  Other
// values, including malformed matrices, are left unchanged.
func bTransp(intp *Interpreter) error {
	if len(intp.Stack) < 1 {
		return intp.e(eStackunderflow, "TRANSP: not enough arguments")
	}
	top := len(intp.Stack) - 1
	m, err := toMatrix(intp.Stack[top])
	if err != nil {
		return nil
	}
	t, err := transpose(m)
	if err != nil {
		return err
	}
	intp.Stack[top] = t
	return nil
}

func transpose(m Array) (Array, error) {
	if len(m) == 0 {
		return Array{}, nil
	}
	cols := len(m[0].(Array))
	for _, row := range m {
		if len(row.(Array)) != cols {
			return nil, &evalError{tp: eRangecheck, msg: "TRANSP: rows have different lengths"}
		}
	}
	res := make(Array, cols)
	for j := range cols {
		col := make(Array, len(m))
		for i, row := range m {
			col[i] = row.(Array)[j]
		}
		res[j] = col
	}
	return res, nil
}

// bEval pops a value and executes it as if it were the next token.
func bEval(intp *Interpreter) error {
	if len(intp.Stack) < 1 {
		return intp.e(eStackunderflow, "EVAL: not enough arguments")
	}
	v := intp.Stack[len(intp.Stack)-1]
	intp.Stack = intp.Stack[:len(intp.Stack)-1]
	err := intp.dispatch(v)
	if err != nil {
		intp.Stack = append(intp.Stack, v)
		return err
	}
	return nil
}

const maxStringSize = 1 << 24
