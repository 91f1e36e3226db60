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
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	type testCase struct {
		in  Value
		out string
	}
	cases := []testCase{
		{Token("4.0"), "4"},
		{Token("007"), "7"},
		{Token("-2.50"), "-2.5"},
		{Token("TRUE"), "true"},
		{Token("DUP"), "DUP"},
		{Token("x"), "x"},
		{Token("foo"), `"foo"`},
		{Token(`"hi"`), `"hi"`},
		{Token(`a"b`), `"ab"`},
		{Token(""), `""`},
		{Token("[1,2]"), "[1, 2]"},
		{Token("[ 1 , true,foo ]"), `[1, true, "foo"]`},
		{Token("[[1,2],[3,4]]"), "[[1, 2], [3, 4]]"},
		{Token("{1 | x0}"), `"{1 | x0}"`},
		{Integer(-3), "-3"},
		{Real(3.5), "3.5"},
		{Real(1e300), "1e+300"},
		{Boolean(false), "false"},
		{String("x"), `"x"`},
		{String(`say "hi"`), `"say hi"`},
		{Array{}, "[]"},
		{Array{Integer(1), Token(`"a"`), Boolean(true), Array{Real(0.5)}}, `[1, "a", true, [0.5]]`},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.out {
			t.Errorf("Format(%#v) = %q, expected %q", c.in, got, c.out)
		}
	}
}

func TestFormatStack(t *testing.T) {
	stack := []Value{Integer(1), Token("foo"), Array{Integer(2)}}
	exp := "1\n\"foo\"\n[2]"
	if got := FormatStack(stack); got != exp {
		t.Errorf("got %q, expected %q", got, exp)
	}
	if got := FormatStack(nil); got != "" {
		t.Errorf("got %q for empty stack", got)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []Value{
		Integer(0),
		Integer(math.MinInt),
		Integer(math.MaxInt),
		Real(-0.125),
		Real(1e100),
		Boolean(true),
		Boolean(false),
		Array{},
		Array{Integer(1), Real(2.5), Boolean(false)},
		Array{Integer(1), Array{Integer(2), Array{Integer(3)}}},
		Array{Array{Integer(1), Integer(2)}, Array{Integer(3), Real(4.5)}},
	}
	for _, v := range values {
		checkRoundTrip(t, v)
	}
}

func checkRoundTrip(t *testing.T, v Value) {
	t.Helper()
	s := Format(v)
	toks := slices.Collect(Tokens(s))
	if len(toks) != 1 {
		t.Fatalf("%q: got %d tokens", s, len(toks))
	}
	kind := ClassifyToken(toks[0])
	if kind != Classify(v) {
		t.Fatalf("%q: kind %s, expected %s", s, kind, Classify(v))
	}
	if d := cmp.Diff(v, Coerce(Token(toks[0]), kind)); d != "" {
		t.Fatalf("%q: %s", s, d)
	}
	if again := Format(Token(toks[0])); again != s {
		t.Fatalf("format is not idempotent: %q != %q", again, s)
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(int64(0), 0.0, false)
	f.Add(int64(-7), 3.5, true)
	f.Add(int64(math.MaxInt64), 1e-300, false)
	f.Add(int64(math.MinInt64), -1e300, true)
	f.Fuzz(func(t *testing.T, i int64, x float64, b bool) {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return
		}
		checkRoundTrip(t, Integer(i))
		checkRoundTrip(t, normalize(x))
		checkRoundTrip(t, Boolean(b))
		checkRoundTrip(t, Array{Integer(i), normalize(x), Boolean(b)})
	})
}
