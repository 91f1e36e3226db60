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
	"strings"
)

// Format returns the output form of a stack value.
//
// Numbers and booleans are written in canonical form, operator names are
// written as they are, and arrays are written as [e1, e2, ...].  All other
// values are written as double-quoted strings.  Parsing the output of
// Format gives back an equivalent number, boolean or array.
func Format(v Value) string {
	switch v := v.(type) {
	case Token:
		s := string(v)
		switch {
		case isNumberToken(s):
			x, _ := parseNumber(s)
			return textOf(x)
		case isBooleanToken(s):
			return textOf(Boolean(strings.ToLower(s) == "true"))
		case isOperatorToken(s):
			return s
		case isArrayToken(s):
			if a, err := parseArray(s); err == nil {
				return Format(a)
			}
		case isMatrixToken(s):
			if m, err := parseMatrix(s); err == nil {
				return Format(m)
			}
		}
		return quote(s)
	case Integer, Real, Boolean:
		return textOf(v)
	case String:
		return quote(string(v))
	case Array:
		ss := make([]string, len(v))
		for i, elem := range v {
			ss[i] = Format(elem)
		}
		return "[" + strings.Join(ss, ", ") + "]"
	default:
		return quote(textOf(v))
	}
}

// FormatStack formats every value on the stack, from the bottom to the
// top, one value per line.
func FormatStack(stack []Value) string {
	ss := make([]string, len(stack))
	for i, v := range stack {
		ss[i] = Format(v)
	}
	return strings.Join(ss, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "") + `"`
}
