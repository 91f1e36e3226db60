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
	"bufio"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Interpreter holds the state of a running program.  All lines of a
// program, all lambda invocations, and all uses of EVAL operate on the
// same operand stack.
//
// There is no limit on the recursion depth.  A program which recurses
// without bound will eventually exhaust the Go stack.
type Interpreter struct {
	Stack []Value

	// Logger receives a debug message for every token which is skipped.
	Logger *slog.Logger

	// Skipped counts the tokens which failed and were skipped.
	Skipped int
}

func NewInterpreter() *Interpreter {
	return &Interpreter{
		Logger: slog.New(slog.DiscardHandler),
	}
}

func (intp *Interpreter) ExecuteString(code string) error {
	return intp.Execute(strings.NewReader(code))
}

// Execute runs a program, one line at a time.  Errors in individual tokens
// are not reported; the only errors returned are errors from reading r.
func (intp *Interpreter) Execute(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			intp.ExecuteLine(line)
		}
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

// ExecuteLine tokenizes and runs a single line of source code.
func (intp *Interpreter) ExecuteLine(line string) {
	s := newScanner(line)
	for {
		tok, err := s.scanToken()
		if err == io.EOF {
			return
		} else if err != nil {
			intp.skip(tok, err)
			continue
		}
		err = intp.executeToken(tok)
		if err != nil {
			intp.skip(tok, err)
		}
	}
}

// executeToken runs a token read from the top level of a program.
// Tokens which do not denote any value are rejected.
func (intp *Interpreter) executeToken(tok string) error {
	if strings.HasPrefix(tok, "'") {
		intp.Stack = append(intp.Stack, Token(tok[1:]))
		return nil
	}
	if ClassifyToken(tok) == KindLiteral {
		return intp.e(eUndefined, "%q", tok)
	}
	return intp.dispatch(Token(tok))
}

// dispatch executes a single value.  Quoted tokens are pushed without the
// quote mark, lambdas are invoked, operators are executed, and everything
// else is pushed unchanged.
//
// If an error is returned, the stack is unchanged.
func (intp *Interpreter) dispatch(v Value) error {
	tok, ok := v.(Token)
	if !ok {
		intp.Stack = append(intp.Stack, v)
		return nil
	}

	s := string(tok)
	switch {
	case strings.HasPrefix(s, "'"):
		intp.Stack = append(intp.Stack, Token(s[1:]))
	case isLambdaToken(s):
		return intp.invoke(s)
	case isOperatorToken(s):
		return systemDict[s](intp)
	default:
		intp.Stack = append(intp.Stack, tok)
	}
	return nil
}

var paramRe = regexp.MustCompile(`^x([0-9]+)$`)

// invoke calls the lambda {n | body}.
//
// The top n stack elements are removed and become the parameters x0, ...,
// x(n-1), where x0 was the deepest of them.  Then the tokens of the body
// are executed.  Inside the body, SELF pushes the text of the lambda, so
// that "SELF EVAL" calls the lambda again.  If the stack holds fewer than
// n elements, nothing happens.
func (intp *Interpreter) invoke(lambda string) error {
	inner := strings.TrimSpace(lambda[1 : len(lambda)-1])
	head, body, ok := strings.Cut(inner, "|")
	if !ok {
		return intp.e(eSyntaxerror, "lambda without '|': %s", lambda)
	}
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || n < 0 {
		return intp.e(eSyntaxerror, "invalid parameter count %q", strings.TrimSpace(head))
	}
	if n > len(intp.Stack) {
		return nil
	}

	params := make([]Value, n)
	copy(params, intp.Stack[len(intp.Stack)-n:])
	intp.Stack = intp.Stack[:len(intp.Stack)-n]

	for tok := range Tokens(body) {
		if m := paramRe.FindStringSubmatch(tok); m != nil {
			i, err := strconv.Atoi(m[1])
			if err == nil && i < n {
				intp.Stack = append(intp.Stack, params[i])
				continue
			}
		}
		if tok == "SELF" {
			intp.Stack = append(intp.Stack, Token(lambda))
			continue
		}
		err := intp.dispatch(Token(tok))
		if err != nil {
			intp.skip(tok, err)
		}
	}
	return nil
}

func (intp *Interpreter) skip(tok string, err error) {
	intp.Skipped++
	if intp.Logger != nil {
		intp.Logger.Debug("token skipped", "token", tok, "error", err)
	}
}
