// seehuhn.de/go/hpgl - an HP-GL/2 interpreter
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

// Package scan tokenizes HP-GL/2 byte streams.
//
// The scanner knows about mnemonics, numeric parameters, separators and
// terminators.  Operators which use a private syntax (PE, LB, CO) read the
// raw bytes themselves.
package scan

import (
	"bufio"
	"errors"
	"io"
	"math"

	"seehuhn.de/go/geom/vec"
)

// ESC is the escape character which returns control to the host language.
const ESC = 0x1B

// ErrEscape is returned when the scanner reaches an ESC byte.  The ESC
// byte is left unread.
var ErrEscape = errors.New("escape to host language")

// Result is the outcome of scanning a parameter.
type Result int

const (
	// Found means that a parameter was read.
	Found Result = iota

	// NotFound means that the parameter list has ended.
	NotFound

	// Invalid means that malformed input was encountered.
	Invalid
)

func (r Result) String() string {
	switch r {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Scanner reads HP-GL/2 tokens from a byte stream.
type Scanner struct {
	r   *bufio.Reader
	err error // sticky read error other than io.EOF
}

// New returns a scanner which reads from r.
func New(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// Err returns the first read error other than io.EOF.
func (s *Scanner) Err() error {
	return s.err
}

// Byte returns the next raw byte of the stream.
func (s *Scanner) Byte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil && err != io.EOF && s.err == nil {
		s.err = err
	}
	return b, err
}

// Unread pushes back the byte most recently returned by Byte.
func (s *Scanner) Unread() {
	_ = s.r.UnreadByte()
}

// Peek returns the next byte without consuming it.
func (s *Scanner) Peek() (byte, error) {
	buf, err := s.r.Peek(1)
	if err != nil {
		if err != io.EOF && s.err == nil {
			s.err = err
		}
		return 0, err
	}
	return buf[0], nil
}

// Mnemonic skips to the next command and returns its two letters in
// upper case.  At the end of input, io.EOF is returned.  When an ESC
// byte is reached, ErrEscape is returned and the ESC is left unread.
func (s *Scanner) Mnemonic() (byte, byte, error) {
	var c1 byte
	for {
		b, err := s.Peek()
		if err != nil {
			return 0, 0, err
		}
		if b == ESC {
			return 0, 0, ErrEscape
		}
		s.r.ReadByte()
		if !isLetter(b) {
			c1 = 0
			continue
		}
		if c1 == 0 {
			c1 = upper(b)
			continue
		}
		return c1, upper(b), nil
	}
}

// Separator skips whitespace and at most one comma.
func (s *Scanner) Separator() {
	comma := false
	for {
		b, err := s.Peek()
		if err != nil {
			return
		}
		switch {
		case isSpace(b):
		case b == ',' && !comma:
			comma = true
		default:
			return
		}
		s.r.ReadByte()
	}
}

// Terminator consumes an optional semicolon terminator.  The returned
// flag indicates whether a terminator was found.
func (s *Scanner) Terminator() (byte, bool) {
	s.skipSpace()
	b, err := s.Peek()
	if err != nil || b != ';' {
		return 0, false
	}
	s.r.ReadByte()
	return b, true
}

// Real reads a numeric parameter.
func (s *Scanner) Real() (float64, Result) {
	s.Separator()
	b, err := s.Peek()
	if err != nil {
		return 0, NotFound
	}
	if !isNumberStart(b) {
		if b == ';' || b == ESC || isLetter(b) {
			return 0, NotFound
		}
		return 0, Invalid
	}

	neg := false
	if b == '+' || b == '-' {
		neg = b == '-'
		s.r.ReadByte()
	}

	var mant float64
	digits := 0
	for {
		b, err := s.Peek()
		if err != nil || b < '0' || b > '9' {
			break
		}
		mant = mant*10 + float64(b-'0')
		digits++
		s.r.ReadByte()
	}
	if b, err := s.Peek(); err == nil && b == '.' {
		s.r.ReadByte()
		var frac float64
		n := 0
		for {
			b, err := s.Peek()
			if err != nil || b < '0' || b > '9' {
				break
			}
			if n < maxFractionDigits {
				frac = frac*10 + float64(b-'0')
				n++
			}
			digits++
			s.r.ReadByte()
		}
		mant += frac / math.Pow10(n)
	}
	if digits == 0 {
		return 0, Invalid
	}
	if neg {
		mant = -mant
	}
	return math.Max(-MaxValue, math.Min(MaxValue, mant)), Found
}

// Integer reads a numeric parameter and rounds it to the nearest integer.
func (s *Scanner) Integer() (int, Result) {
	x, res := s.Real()
	if res != Found {
		return 0, res
	}
	return int(math.Round(x)), Found
}

// Point reads a pair of numeric parameters.  A lone x coordinate is
// reported as Invalid.
func (s *Scanner) Point() (vec.Vec2, Result) {
	x, res := s.Real()
	if res != Found {
		return vec.Vec2{}, res
	}
	y, res := s.Real()
	if res != Found {
		return vec.Vec2{}, Invalid
	}
	return vec.Vec2{X: x, Y: y}, Found
}

// Reals reads up to len(buf) numeric parameters into buf and returns the
// number of values read.  Reading stops at the first parameter which is
// not Found; if that parameter was Invalid, the Invalid result is
// returned.
func (s *Scanner) Reals(buf []float64) (int, Result) {
	for i := range buf {
		x, res := s.Real()
		switch res {
		case NotFound:
			return i, Found
		case Invalid:
			return i, Invalid
		}
		buf[i] = x
	}
	return len(buf), Found
}

// Recover skips input until the next terminator, command letter or ESC.
// It is used to resynchronize after a syntax error, and to discard the
// operands of commands which are not executed.
func (s *Scanner) Recover() {
	for {
		b, err := s.Peek()
		if err != nil || b == ESC || isLetter(b) {
			return
		}
		s.r.ReadByte()
		if b == ';' {
			return
		}
	}
}

// Quoted skips a string enclosed in double quotes, as used by the CO
// command.  The string may contain any character except the quote.
func (s *Scanner) Quoted() ([]byte, Result) {
	s.Separator()
	b, err := s.Peek()
	if err != nil || b != '"' {
		return nil, NotFound
	}
	s.r.ReadByte()
	var text []byte
	for {
		b, err := s.Byte()
		if err != nil {
			return text, Invalid
		}
		if b == '"' {
			return text, Found
		}
		text = append(text, b)
	}
}

// SkipEscape consumes an escape sequence of the host language, starting
// with the ESC byte.  Parameterized sequences end with an upper case
// letter, all others consist of two bytes.
func (s *Scanner) SkipEscape() {
	b, err := s.Byte()
	if err != nil {
		return
	}
	if b != ESC {
		s.Unread()
		return
	}
	b, err = s.Byte()
	if err != nil || b < '!' || b > '/' {
		return
	}
	for {
		b, err := s.Byte()
		if err != nil || (b >= '@' && b <= '^') {
			return
		}
	}
}

func (s *Scanner) skipSpace() {
	for {
		b, err := s.Peek()
		if err != nil || !isSpace(b) {
			return
		}
		s.r.ReadByte()
	}
}

// MaxValue is the largest magnitude of a numeric parameter.  Larger
// values are clamped.
const MaxValue = 1 << 30

// maxFractionDigits limits the number of significant fraction digits.
const maxFractionDigits = 15

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func isNumberStart(b byte) bool {
	return (b >= '0' && b <= '9') || b == '+' || b == '-' || b == '.'
}
