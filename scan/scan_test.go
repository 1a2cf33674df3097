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

package scan

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/vec"
)

func TestMnemonics(t *testing.T) {
	s := New(strings.NewReader(" in;Sp1 ;;pa 10,20;\n\tPD;x;1CI5"))
	var got []string
	for {
		c1, c2, err := s.Mnemonic()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		got = append(got, string([]byte{c1, c2}))
		s.Recover()
	}
	want := []string{"IN", "SP", "PA", "PD", "CI"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestEscape(t *testing.T) {
	s := New(strings.NewReader("PU\x1bE"))
	c1, c2, err := s.Mnemonic()
	if err != nil || c1 != 'P' || c2 != 'U' {
		t.Fatalf("got %c%c, %v", c1, c2, err)
	}
	if _, res := s.Real(); res != NotFound {
		t.Errorf("parameter before ESC: %v", res)
	}
	if _, _, err := s.Mnemonic(); !errors.Is(err, ErrEscape) {
		t.Fatalf("expected ErrEscape, got %v", err)
	}
	b, err := s.Byte()
	if err != nil || b != ESC {
		t.Errorf("ESC was consumed: got %q, %v", b, err)
	}
}

func TestReal(t *testing.T) {
	cases := []struct {
		in   string
		want []float64
		last Result
	}{
		{"10,20;", []float64{10, 20}, NotFound},
		{"-1.5 +2.25", []float64{-1.5, 2.25}, NotFound},
		{".5,-.25PD", []float64{0.5, -0.25}, NotFound},
		{"7.", []float64{7}, NotFound},
		{"1,\"", []float64{1}, Invalid},
		{"-", nil, Invalid},
		{"3e5", []float64{3}, NotFound},
		{"2000000000", []float64{MaxValue}, NotFound},
	}
	for _, tc := range cases {
		s := New(strings.NewReader(tc.in))
		var got []float64
		var res Result
		for {
			var x float64
			x, res = s.Real()
			if res != Found {
				break
			}
			got = append(got, x)
		}
		if d := cmp.Diff(tc.want, got); d != "" {
			t.Errorf("%q: (-want +got):\n%s", tc.in, d)
		}
		if res != tc.last {
			t.Errorf("%q: final result %v, want %v", tc.in, res, tc.last)
		}
	}
}

func TestPoint(t *testing.T) {
	s := New(strings.NewReader("1,2 3 4,5;"))
	p, res := s.Point()
	if res != Found || p != (vec.Vec2{X: 1, Y: 2}) {
		t.Errorf("first point: %v %v", p, res)
	}
	p, res = s.Point()
	if res != Found || p != (vec.Vec2{X: 3, Y: 4}) {
		t.Errorf("second point: %v %v", p, res)
	}
	if _, res = s.Point(); res != Invalid {
		t.Errorf("odd coordinate count: %v", res)
	}
}

func TestIntegerRounds(t *testing.T) {
	s := New(strings.NewReader("2.5 -1.4 7"))
	var got []int
	for {
		x, res := s.Integer()
		if res != Found {
			break
		}
		got = append(got, x)
	}
	if d := cmp.Diff([]int{3, -1, 7}, got); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestReals(t *testing.T) {
	s := New(strings.NewReader("1,2,3;PA"))
	buf := make([]float64, 5)
	n, res := s.Reals(buf)
	if n != 3 || res != Found {
		t.Fatalf("got %d, %v", n, res)
	}
	if d := cmp.Diff([]float64{1, 2, 3}, buf[:n]); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestQuoted(t *testing.T) {
	s := New(strings.NewReader(` "a; PA1,1" PU;`))
	text, res := s.Quoted()
	if res != Found || string(text) != "a; PA1,1" {
		t.Errorf("got %q, %v", text, res)
	}
	c1, c2, err := s.Mnemonic()
	if err != nil || c1 != 'P' || c2 != 'U' {
		t.Errorf("next command: %c%c, %v", c1, c2, err)
	}
}

func TestRecoverStopsAtTerminator(t *testing.T) {
	s := New(strings.NewReader("#$%;12PA"))
	s.Recover()
	if x, res := s.Real(); res != Found || x != 12 {
		t.Errorf("got %g, %v", x, res)
	}
}

func TestSkipEscape(t *testing.T) {
	s := New(strings.NewReader("PA1,1;\x1b%0BPD;\x1bEPU;\x1b*c100x200YSP1;"))
	var got []string
	for {
		c1, c2, err := s.Mnemonic()
		if errors.Is(err, ErrEscape) {
			s.SkipEscape()
			continue
		} else if err != nil {
			break
		}
		got = append(got, string([]byte{c1, c2}))
	}
	want := []string{"PA", "PD", "PU", "SP"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mnemonics (-want +got):\n%s", diff)
	}
}
