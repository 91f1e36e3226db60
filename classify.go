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
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the type of a value, as seen by the operators.
type Kind int

// The kinds are listed in the order in which the classifier tries them.
const (
	KindLiteral Kind = iota
	KindOperator
	KindNumber
	KindString
	KindBoolean
	KindArray
	KindMatrix
	KindLambda
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindOperator:
		return "operator"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindMatrix:
		return "matrix"
	case KindLambda:
		return "lambda"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ClassifyToken determines the kind of a source token.
//
// The predicates are tried in a fixed order.  The order matters, since a
// matrix token like "[[1,2]]" also starts with "[".
func ClassifyToken(tok string) Kind {
	switch {
	case isOperatorToken(tok):
		return KindOperator
	case isNumberToken(tok):
		return KindNumber
	case isStringToken(tok):
		return KindString
	case isBooleanToken(tok):
		return KindBoolean
	case isArrayToken(tok):
		return KindArray
	case isMatrixToken(tok):
		return KindMatrix
	case isLambdaToken(tok):
		return KindLambda
	default:
		return KindLiteral
	}
}

// Classify determines the kind of a stack value.  Tokens are classified
// by their text, native values by their Go type.
func Classify(v Value) Kind {
	switch v := v.(type) {
	case Token:
		return ClassifyToken(string(v))
	case Integer, Real:
		return KindNumber
	case Boolean:
		return KindBoolean
	case String:
		return KindString
	case Array:
		if isMatrix(v) {
			return KindMatrix
		}
		return KindArray
	default:
		return KindLiteral
	}
}

// Is reports whether v is of kind k.  For tokens, only the predicate for k
// is evaluated.
func Is(v Value, k Kind) bool {
	tok, ok := v.(Token)
	if !ok {
		return Classify(v) == k
	}
	s := string(tok)
	switch k {
	case KindOperator:
		return isOperatorToken(s)
	case KindNumber:
		return isNumberToken(s)
	case KindString:
		return isStringToken(s)
	case KindBoolean:
		return isBooleanToken(s)
	case KindArray:
		return isArrayToken(s)
	case KindMatrix:
		return isMatrixToken(s)
	case KindLambda:
		return isLambdaToken(s)
	default:
		return ClassifyToken(s) == KindLiteral
	}
}

func isOperatorToken(tok string) bool {
	if strings.HasPrefix(tok, `"`) || strings.HasSuffix(tok, `"`) {
		return false
	}
	_, ok := systemDict[tok]
	return ok
}

func isNumberToken(tok string) bool {
	_, err := parseNumber(tok)
	return err == nil
}

func isStringToken(tok string) bool {
	return len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' &&
		!strings.Contains(tok[1:len(tok)-1], `"`)
}

func isBooleanToken(tok string) bool {
	lower := strings.ToLower(tok)
	return lower == "true" || lower == "false"
}

func isArrayToken(tok string) bool {
	return strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]") &&
		!strings.HasPrefix(tok, "[[")
}

func isMatrixToken(tok string) bool {
	return len(tok) >= 4 && strings.HasPrefix(tok, "[[") && strings.HasSuffix(tok, "]]")
}

func isLambdaToken(tok string) bool {
	return len(tok) >= 2 && strings.HasPrefix(tok, "{") && strings.HasSuffix(tok, "}")
}

func isMatrix(a Array) bool {
	if len(a) == 0 {
		return false
	}
	for _, row := range a {
		if _, ok := row.(Array); !ok {
			return false
		}
	}
	return true
}

// Coerce converts v into the native representation of kind k.
//
// Coercion never fails: if v cannot be converted, it is returned
// unchanged.  The only exception is a malformed matrix, which is
// returned as nil.
func Coerce(v Value, k Kind) Value {
	switch k {
	case KindNumber:
		x, err := toNumber(v)
		if err != nil {
			return v
		}
		return x
	case KindString:
		return String(toStr(v))
	case KindBoolean:
		return Boolean(toBool(v))
	case KindArray:
		a, err := toArray(v)
		if err != nil {
			return v
		}
		return a
	case KindMatrix:
		m, err := toMatrix(v)
		if err != nil {
			return nil
		}
		return m
	default:
		return v
	}
}

var integerRe = regexp.MustCompile(`^-?[0-9]+$`)

// parseNumber parses a number token.  Integers which do not fit into an
// int, and all other floating point literals, are parsed as doubles which
// are then normalized.
func parseNumber(s string) (Value, error) {
	if integerRe.MatchString(s) {
		x, err := strconv.ParseInt(s, 10, 0)
		if err == nil {
			return Integer(x), nil
		}
	}

	y, err := strconv.ParseFloat(s, 64)
	if err == nil && !math.IsInf(y, 0) && !math.IsNaN(y) {
		return normalize(y), nil
	}

	return nil, &evalError{tp: eTypecheck, msg: fmt.Sprintf("invalid number %q", s)}
}

// normalize converts integral doubles to Integer.
func normalize(x float64) Value {
	if x == math.Trunc(x) && x >= math.MinInt && x < math.MaxInt {
		return Integer(x)
	}
	return Real(x)
}

func toNumber(v Value) (Value, error) {
	switch v := v.(type) {
	case Integer, Real:
		return v, nil
	case Token:
		return parseNumber(string(v))
	default:
		return nil, &evalError{tp: eTypecheck, msg: fmt.Sprintf("%s is not a number", textOf(v))}
	}
}

func toFloat(v Value) (float64, error) {
	x, err := toNumber(v)
	if err != nil {
		return 0, err
	}
	switch x := x.(type) {
	case Integer:
		return float64(x), nil
	default:
		return float64(x.(Real)), nil
	}
}

// toInt converts a number to an integer, truncating towards zero.
func toInt(v Value) (int, error) {
	x, err := toNumber(v)
	if err != nil {
		return 0, err
	}
	switch x := x.(type) {
	case Integer:
		return int(x), nil
	default:
		r := math.Trunc(float64(x.(Real)))
		if r < math.MinInt || r >= math.MaxInt {
			return 0, &evalError{tp: eRangecheck, msg: fmt.Sprintf("%s out of integer range", textOf(v))}
		}
		return int(r), nil
	}
}

func toBool(v Value) bool {
	if b, ok := v.(Boolean); ok {
		return bool(b)
	}
	return strings.ToLower(textOf(v)) == "true"
}

// toStr returns the text of v, with one layer of quotes removed.
func toStr(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	s := textOf(v)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func toArray(v Value) (Array, error) {
	switch v := v.(type) {
	case Array:
		return v, nil
	case Token:
		if isArrayToken(string(v)) {
			return parseArray(string(v))
		}
	}
	return nil, &evalError{tp: eTypecheck, msg: fmt.Sprintf("%s is not an array", textOf(v))}
}

// toMatrix returns the rows of a matrix.
func toMatrix(v Value) (Array, error) {
	switch v := v.(type) {
	case Array:
		if isMatrix(v) {
			return v, nil
		}
	case Token:
		if isMatrixToken(string(v)) {
			return parseMatrix(string(v))
		}
	}
	return nil, &evalError{tp: eTypecheck, msg: fmt.Sprintf("%s is not a matrix", textOf(v))}
}

// parseArray parses an array token.  Elements are separated by commas
// outside of nested brackets and quotes.
func parseArray(tok string) (Array, error) {
	if len(tok) < 2 {
		return nil, &evalError{tp: eSyntaxerror, msg: fmt.Sprintf("invalid array %q", tok)}
	}
	inner := strings.TrimSpace(tok[1 : len(tok)-1])
	res := Array{}
	if inner == "" {
		return res, nil
	}
	for _, part := range splitTopLevel(inner) {
		res = append(res, parseElement(strings.TrimSpace(part)))
	}
	return res, nil
}

func parseElement(s string) Value {
	switch {
	case isNumberToken(s):
		x, _ := parseNumber(s)
		return x
	case isBooleanToken(s):
		return Boolean(strings.ToLower(s) == "true")
	case isArrayToken(s):
		if a, err := parseArray(s); err == nil {
			return a
		}
	case isMatrixToken(s):
		if m, err := parseMatrix(s); err == nil {
			return m
		}
	}
	return Token(s)
}

func splitTopLevel(s string) []string {
	var parts []string
	level := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
			// pass
		case c == '[' || c == '{':
			level++
		case c == ']' || c == '}':
			level--
		case c == ',' && level == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// parseMatrix parses a matrix token using the JSON array syntax.  All
// entries must be numbers.
func parseMatrix(tok string) (Array, error) {
	var rows [][]json.Number
	err := json.Unmarshal([]byte(tok), &rows)
	if err != nil {
		return nil, &evalError{tp: eSyntaxerror, msg: fmt.Sprintf("invalid matrix %q: %v", tok, err)}
	}
	if len(rows) == 0 {
		return nil, &evalError{tp: eSyntaxerror, msg: "empty matrix"}
	}
	res := make(Array, len(rows))
	for i, row := range rows {
		r := make(Array, len(row))
		for j, x := range row {
			y, err := parseNumber(string(x))
			if err != nil {
				return nil, err
			}
			r[j] = y
		}
		res[i] = r
	}
	return res, nil
}
