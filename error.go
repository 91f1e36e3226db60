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

import "fmt"

// errorType names the class of a per-token failure.
type errorType string

const (
	eStackunderflow  errorType = "stackunderflow"
	eTypecheck       errorType = "typecheck"
	eRangecheck      errorType = "rangecheck"
	eLimitcheck      errorType = "limitcheck"
	eUndefined       errorType = "undefined"
	eSyntaxerror     errorType = "syntaxerror"
	eUndefinedresult errorType = "undefinedresult"
)

// evalError is returned when a single token cannot be executed.
// The interpreter absorbs these errors and restores the stack.
type evalError struct {
	tp  errorType
	msg string
}

func (err *evalError) Error() string {
	if err.msg == "" {
		return string(err.tp)
	}
	return string(err.tp) + ": " + err.msg
}

// Is reports whether target is an evalError of the same type,
// so that errors.Is(err, errTypecheck) works for any message.
func (err *evalError) Is(target error) bool {
	t, ok := target.(*evalError)
	return ok && t.tp == err.tp && t.msg == ""
}

var (
	errStackunderflow  = &evalError{tp: eStackunderflow}
	errTypecheck       = &evalError{tp: eTypecheck}
	errRangecheck      = &evalError{tp: eRangecheck}
	errLimitcheck      = &evalError{tp: eLimitcheck}
	errUndefined       = &evalError{tp: eUndefined}
	errSyntaxerror     = &evalError{tp: eSyntaxerror}
	errUndefinedresult = &evalError{tp: eUndefinedresult}
)

func (intp *Interpreter) e(tp errorType, format string, args ...any) error {
	return &evalError{tp: tp, msg: fmt.Sprintf(format, args...)}
}
