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
	"slices"
	"testing"
)

func TestOperatorNames(t *testing.T) {
	names := OperatorNames()
	if len(names) != 30 {
		t.Errorf("got %d operators, expected 30", len(names))
	}
	if !slices.IsSorted(names) {
		t.Error("operator names are not sorted")
	}
	for _, name := range names {
		if ClassifyToken(name) != KindOperator {
			t.Errorf("%q is not classified as an operator", name)
		}
	}
}

func TestOperatorNamesCovered(t *testing.T) {
	all := "+ - * / ** % DROP DUP SWAP ROT ROLL ROLLD == != > < >= <= <=> & | ^ IFELSE << >> ! ~ x TRANSP EVAL"
	names := OperatorNames()
	for tok := range Tokens(all) {
		if _, found := slices.BinarySearch(names, tok); !found {
			t.Errorf("operator %q is missing", tok)
		}
	}
}
