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
	"fmt"
	"io"
	"iter"
	"strings"
)

// Tokens returns the tokens of one line of source code.
//
// A token is a balanced {...} block, a balanced [...] block, a "..."
// string without embedded quotes, or a run of characters which are neither
// white space nor brackets.  Blocks may be nested to any depth.  An opening
// bracket without a matching closing bracket is skipped, and scanning
// continues with the next character.
//
// The returned sequence can be iterated more than once.
func Tokens(line string) iter.Seq[string] {
	return func(yield func(string) bool) {
		s := newScanner(line)
		for {
			tok, err := s.scanToken()
			if err == io.EOF {
				return
			} else if err != nil {
				continue
			}
			if !yield(tok) {
				return
			}
		}
	}
}

type scanner struct {
	line string
	pos  int
}

func newScanner(line string) *scanner {
	return &scanner{line: line}
}

// scanToken returns the next token.  At the end of the line, io.EOF is
// returned.  On a syntax error the scanner has moved past the offending
// character, so that the caller can continue.
func (s *scanner) scanToken() (string, error) {
	s.skipWhiteSpace()
	if s.pos >= len(s.line) {
		return "", io.EOF
	}

	b := s.line[s.pos]
	switch b {
	case '{':
		return s.readBlock('{', '}')
	case '[':
		return s.readBlock('[', ']')
	case '}', ']':
		s.pos++
		return "", &evalError{tp: eSyntaxerror, msg: fmt.Sprintf("unexpected %q at column %d", b, s.pos-1)}
	case '"':
		if n := strings.IndexByte(s.line[s.pos+1:], '"'); n >= 0 {
			tok := s.line[s.pos : s.pos+n+2]
			s.pos += n + 2
			return tok, nil
		}
		// An unterminated quote is part of a regular token.
	}
	return s.readRegular(), nil
}

// readBlock reads a bracketed block, including nested blocks of the
// same kind.  Other characters, including other kinds of brackets, are
// ordinary content inside the block.
func (s *scanner) readBlock(open, close byte) (string, error) {
	level := 0
	for i := s.pos; i < len(s.line); i++ {
		switch s.line[i] {
		case open:
			level++
		case close:
			level--
			if level == 0 {
				tok := s.line[s.pos : i+1]
				s.pos = i + 1
				return tok, nil
			}
		}
	}
	start := s.pos
	s.pos++
	return "", &evalError{tp: eSyntaxerror, msg: fmt.Sprintf("unbalanced %q at column %d", open, start)}
}

func (s *scanner) readRegular() string {
	start := s.pos
	for s.pos < len(s.line) && isRegular(s.line[s.pos]) {
		s.pos++
	}
	return s.line[start:s.pos]
}

func (s *scanner) skipWhiteSpace() {
	for s.pos < len(s.line) && isSpace(s.line[s.pos]) {
		s.pos++
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func isRegular(b byte) bool {
	if isSpace(b) {
		return false
	}
	switch b {
	case '[', ']', '{', '}':
		return false
	default:
		return true
	}
}
