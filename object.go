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
	"strconv"
	"strings"
)

// Value is an element of the operand stack.
//
// Tokens read from the source are stored unchanged as [Token] and are
// classified each time an operator looks at them.  Operator results are
// stored as native values.
type Value interface{}

// Token is a raw source token.  Lambdas, operator names and opaque
// literals always stay tokens.
type Token string

func (t Token) String() string {
	return string(t)
}

type Integer int

func (x Integer) String() string {
	return strconv.Itoa(int(x))
}

type Real float64

func (x Real) String() string {
	return strconv.FormatFloat(float64(x), 'g', -1, 64)
}

type Boolean bool

func (b Boolean) String() string {
	return strconv.FormatBool(bool(b))
}

// String is text produced by a string operator.  Its textual form carries
// the surrounding quotes, so that it classifies like a quoted token.
type String string

func (s String) String() string {
	return `"` + string(s) + `"`
}

// Array is an ordered list of values.  An Array whose elements are all
// arrays is a matrix.
type Array []Value

func (a Array) String() string {
	var ss []string
	for _, elem := range a {
		ss = append(ss, textOf(elem))
	}
	return "[" + strings.Join(ss, ", ") + "]"
}

// textOf returns the source form of v.  Re-scanning the result gives a
// token which classifies the same way as v.
func textOf(v Value) string {
	switch v := v.(type) {
	case Token:
		return string(v)
	case Integer:
		return v.String()
	case Real:
		return v.String()
	case Boolean:
		return v.String()
	case String:
		return v.String()
	case Array:
		return v.String()
	case nil:
		return ""
	default:
		return "<unknown>"
	}
}
