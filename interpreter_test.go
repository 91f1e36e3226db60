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
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

func TestLambda(t *testing.T) {
	checkPrograms(t, map[string][]string{
		"3 4 {2 | x0 x1 +}":               {"7"},
		"10 3 {2 | x0 x1 -}":              {"7"},
		"10 3 {2 | x1 x0 -}":              {"-7"},
		"3 {1 | x0 x0 *}":                 {"9"},
		"1 2 3 {2 | x1}":                  {"1", "3"},
		"{0 | 1 2 +}":                     {"3"},
		"1 {2 | x0 x1 +}":                 {"1"},
		"5 {1 | x0 x3}":                   {"5", `"x3"`},
		"2 {1 | x0 {1 | x0 10 *}}":        {"20"},
		"1 {x | x0}":                      {"1"},
		"1 {1 x0}":                        {"1"},
		"1 {-1 | x0}":                     {"1"},
		"4 {1 | x0 foo x0 +}":             {"4", `"foo"`, "4"},
		"4 {1 | x0 1 0 / x0}":             {"4", "1", "0", "4"},
		"[1,2] {1 | x0 x0 +}":             {"[2, 4]"},
		"5 {1 | SELF}":                    {`"{1 | SELF}"`},
		"6 {1 | x0 'DUP EVAL *}":          {"36"},
		"{1|x0 x0 +} 'a {1 | x0}":         {`"a"`},
		"1 2 {2 | x0 x1 SWAP} 3 {1 | x0}": {"2", "1", "3"},
	})
}

func TestCountdown(t *testing.T) {
	code := "1 5\n{ 2 | x0 x1 * x1 1 - DUP 0 > SELF 'DROP ROT IFELSE EVAL}\n"
	intp, err := run(code, 1)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]Value{Integer(120)}, intp.Stack); d != "" {
		t.Fatal(d)
	}
}

func TestRecursiveSum(t *testing.T) {
	// sum of 1..n, with an accumulator
	code := "0 100 {2 | x0 x1 + x1 1 - DUP 0 > SELF 'DROP ROT IFELSE EVAL}"
	intp, err := run(code, 1)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]Value{Integer(5050)}, intp.Stack); d != "" {
		t.Fatal(d)
	}
}

func TestEval(t *testing.T) {
	checkPrograms(t, map[string][]string{
		"3 4 '+ EVAL":       {"7"},
		"1 'DROP EVAL":      {},
		"5 EVAL":            {"5"},
		"EVAL":              {},
		"'foo EVAL":         {`"foo"`},
		"1 2 '+ 'EVAL EVAL": {"3"},
		"''DUP EVAL":        {"DUP"},
		"'/ EVAL":           {"/"},
		"1 0 '/ EVAL":       {"1", "0", "/"},
		"3 4 < 'DROP EVAL":  {},
	})
}

func TestEvalLambda(t *testing.T) {
	intp := NewInterpreter()
	intp.Stack = []Value{Integer(6), Token("{1 | x0 x0 *}")}
	intp.ExecuteLine("EVAL")
	if d := cmp.Diff([]Value{Integer(36)}, intp.Stack); d != "" {
		t.Fatal(d)
	}
}

func TestEvalNative(t *testing.T) {
	intp := NewInterpreter()
	intp.Stack = []Value{Array{Integer(1)}}
	intp.ExecuteLine("EVAL")
	if d := cmp.Diff([]Value{Array{Integer(1)}}, intp.Stack); d != "" {
		t.Fatal(d)
	}
}

func TestFailSoft(t *testing.T) {
	code := "1 foo 2 +\n3 bar 1 0 / +\nSELF x0 {\n"
	intp, err := run(code, 3)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Split(FormatStack(intp.Stack), "\n")
	if d := cmp.Diff([]string{"3", "3", "1"}, got); d != "" {
		t.Fatal(d)
	}
	// foo, bar, /, SELF, x0, and the unbalanced brace
	if intp.Skipped != 6 {
		t.Errorf("Skipped = %d, expected 6", intp.Skipped)
	}
}

func TestStackPersistsAcrossLines(t *testing.T) {
	intp, err := run("1\n2\n\n+\n", 1)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]Value{Integer(3)}, intp.Stack); d != "" {
		t.Fatal(d)
	}
}

func TestQuotedTokens(t *testing.T) {
	// "'[1,2]" scans as "'" followed by "[1,2]"
	intp, err := run("'foo 'DROP ' '[1,2]", 5)
	if err != nil {
		t.Fatal(err)
	}
	exp := []Value{Token("foo"), Token("DROP"), Token(""), Token(""), Token("[1,2]")}
	if d := cmp.Diff(exp, intp.Stack); d != "" {
		t.Fatal(d)
	}
}

func TestExecuteReadError(t *testing.T) {
	boom := errors.New("boom")
	intp := NewInterpreter()
	err := intp.Execute(iotest.ErrReader(boom))
	if !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestSkipLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	intp := NewInterpreter()
	intp.Logger = slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	err := intp.ExecuteString("1 foo")
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "token skipped") || !strings.Contains(out, "token=foo") {
		t.Errorf("unexpected log output %q", out)
	}

	intp.Logger = nil
	intp.ExecuteLine("bar")
	if intp.Skipped != 2 {
		t.Errorf("Skipped = %d, expected 2", intp.Skipped)
	}
}

func TestUndefinedToken(t *testing.T) {
	intp := NewInterpreter()
	err := intp.executeToken("foo")
	if !errors.Is(err, errUndefined) {
		t.Fatalf("expected undefined error, got %v", err)
	}
	if len(intp.Stack) != 0 {
		t.Fatal("stack modified")
	}
}
