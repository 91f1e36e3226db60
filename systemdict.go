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

	"golang.org/x/exp/maps"
)

type builtin func(*Interpreter) error

// systemDict maps operator names to their implementation.  The table is
// filled once, in init, and is never modified afterwards.
var systemDict map[string]builtin

func init() {
	systemDict = makeSystemDict()
}

func makeSystemDict() map[string]builtin {
	return map[string]builtin{
		"+":      bAdd,
		"-":      bSub,
		"*":      bMul,
		"/":      bDiv,
		"**":     bPow,
		"%":      bMod,
		"DROP":   bDrop,
		"DUP":    bDup,
		"SWAP":   bSwap,
		"ROT":    bRot,
		"ROLL":   bRoll,
		"ROLLD":  bRolld,
		"==":     bCompare("=="),
		"!=":     bCompare("!="),
		">":      bCompare(">"),
		"<":      bCompare("<"),
		">=":     bCompare(">="),
		"<=":     bCompare("<="),
		"<=>":    bCompare("<=>"),
		"&":      bAnd,
		"|":      bOr,
		"^":      bXor,
		"IFELSE": bIfelse,
		"<<":     bShiftLeft,
		">>":     bShiftRight,
		"!":      bNot,
		"~":      bComplement,
		"x":      bCross,
		"TRANSP": bTransp,
		"EVAL":   bEval,
	}
}

// OperatorNames returns the names of all operators, in sorted order.
func OperatorNames() []string {
	names := maps.Keys(systemDict)
	slices.Sort(names)
	return names
}
