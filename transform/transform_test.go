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

package transform

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestMulInvert(t *testing.T) {
	a := matrix.Matrix{2, 1, -1, 3, 5, 7}
	b := matrix.Matrix{0, 1, -1, 0, 10, 0}
	p := vec.Vec2{X: 3, Y: -4}

	got := Apply(Mul(a, b), p)
	want := Apply(b, Apply(a, p))
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Errorf("Mul: (-want +got):\n%s", d)
	}

	inv, err := Invert(a)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(matrix.Identity, Mul(a, inv), cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Errorf("a·a⁻¹ (-want +got):\n%s", d)
	}

	if _, err := Invert(matrix.Matrix{1, 2, 2, 4, 0, 0}); !errors.Is(err, ErrSingular) {
		t.Errorf("expected ErrSingular, got %v", err)
	}
}

func TestDefaultFrameCTM(t *testing.T) {
	f := LetterFrame()
	m := DefaultFrameCTM(f)

	origin := Apply(m, vec.Vec2{})
	want := vec.Vec2{X: f.Anchor.X, Y: f.Anchor.Y + f.Height}
	if d := cmp.Diff(want, origin, approx); d != "" {
		t.Errorf("origin (-want +got):\n%s", d)
	}

	inch := Apply(m, vec.Vec2{X: PlotterUnitsPerInch, Y: PlotterUnitsPerInch})
	want = vec.Vec2{X: f.Anchor.X + PageUnitsPerInch, Y: f.Anchor.Y + f.Height - PageUnitsPerInch}
	if d := cmp.Diff(want, inch, approx); d != "" {
		t.Errorf("one inch (-want +got):\n%s", d)
	}
}

// TestRotationCoversFrame checks that every rotation maps the rotated
// frame rectangle onto the same physical rectangle of the page.
func TestRotationCoversFrame(t *testing.T) {
	f := LetterFrame()
	want := rect.Rect{
		LLx: f.Anchor.X,
		LLy: f.Anchor.Y,
		URx: f.Anchor.X + f.Width,
		URy: f.Anchor.Y + f.Height,
	}
	for _, rot := range []Rotation{Rotate0, Rotate90, Rotate180, Rotate270} {
		t.Run(fmt.Sprint(rot), func(t *testing.T) {
			c, err := NewCtms(f, Setup{Rotation: rot})
			if err != nil {
				t.Fatal(err)
			}
			got := TransformRect(c.Frame, FrameRect(f, rot))
			if d := cmp.Diff(want, got, approx); d != "" {
				t.Errorf("(-want +got):\n%s", d)
			}
		})
	}
}

func TestRotation90Axes(t *testing.T) {
	f := LetterFrame()
	c, err := NewCtms(f, Setup{Rotation: Rotate90})
	if err != nil {
		t.Fatal(err)
	}

	// the origin moves to the lower right corner of the frame
	got := c.PlotterToPage(vec.Vec2{})
	want := vec.Vec2{X: f.Anchor.X + f.Width, Y: f.Anchor.Y + f.Height}
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Errorf("origin (-want +got):\n%s", d)
	}

	// the x-axis points up the page
	dx := c.PlotterToPage(vec.Vec2{X: 1}).Sub(got)
	if dx.X != 0 || dx.Y >= 0 {
		t.Errorf("x-axis points in direction %v", dx)
	}
}

func TestSeparate(t *testing.T) {
	cases := []struct {
		p1, p2 vec.Vec2
	}{
		{vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 0, Y: 0}},
		{vec.Vec2{X: 10, Y: 5}, vec.Vec2{X: 10, Y: 7}},
		{vec.Vec2{X: -3, Y: 5}, vec.Vec2{X: 4, Y: 5}},
		{vec.Vec2{X: 1, Y: 2}, vec.Vec2{X: 3, Y: 4}},
	}
	for _, tc := range cases {
		p1, p2 := Separate(tc.p1, tc.p2)
		if p1.X == p2.X || p1.Y == p2.Y {
			t.Errorf("Separate(%v, %v) = %v, %v", tc.p1, tc.p2, p1, p2)
		}
		if p1 != tc.p1 {
			t.Errorf("P1 moved from %v to %v", tc.p1, p1)
		}
		for _, d := range []float64{p2.X - tc.p2.X, p2.Y - tc.p2.Y} {
			if d != 0 && d != 1 {
				t.Errorf("P2 nudged by %g", d)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	f := LetterFrame()
	plotSized := f
	plotSized.PlotWidth = f.Width / 2
	plotSized.PlotHeight = f.Height * 2

	scalings := []Scaling{
		nil,
		Anisotropic{X1: 0, X2: 100, Y1: 0, Y2: 50},
		Anisotropic{X1: 100, X2: -20, Y1: 7, Y2: 3},
		Isotropic{X1: 0, X2: 100, Y1: 0, Y2: 10, Left: 50, Bottom: 50},
		Isotropic{X1: -5, X2: 5, Y1: 0, Y2: 1000, Left: 0, Bottom: 100},
		PointFactor{X1: 10, Y1: 20, ScaleX: 2.5, ScaleY: -4},
	}
	points := []vec.Vec2{{}, {X: 1, Y: 1}, {X: -250.5, Y: 1e4}, {X: 33, Y: -0.125}}

	for _, frame := range []Frame{f, plotSized} {
		for _, rot := range []Rotation{Rotate0, Rotate90, Rotate180, Rotate270} {
			for i, s := range scalings {
				p1, p2 := DefaultScalePoints(frame, rot)
				setup := Setup{Rotation: rot, P1: p1, P2: p2, Scaling: s}
				c, err := NewCtms(frame, setup)
				if err != nil {
					t.Fatal(err)
				}
				for _, p := range points {
					for _, rel := range []bool{false, true} {
						got := c.PlotterToJob(c.JobToPlotter(p, rel), rel)
						if d := cmp.Diff(p, got, cmpopts.EquateApprox(1e-9, 1e-9)); d != "" {
							t.Errorf("rot %d, scaling %d, rel %t: (-want +got):\n%s",
								rot, i, rel, d)
						}
					}
				}
			}
		}
	}
}

func TestIsotropicEqualScale(t *testing.T) {
	cases := []struct {
		p1, p2 vec.Vec2
		s      Isotropic
	}{
		{vec.Vec2{}, vec.Vec2{X: 8128, Y: 10160}, Isotropic{X1: 0, X2: 100, Y1: 0, Y2: 50, Left: 50, Bottom: 50}},
		{vec.Vec2{X: 1000, Y: 1000}, vec.Vec2{X: 0, Y: 0}, Isotropic{X1: 0, X2: 10, Y1: 0, Y2: 20, Left: 25, Bottom: 75}},
		{vec.Vec2{}, vec.Vec2{X: 500, Y: 4000}, Isotropic{X1: 10, X2: -10, Y1: 0, Y2: 1, Left: 0, Bottom: 100}},
	}
	for i, tc := range cases {
		m, err := ScalingCTM(tc.s, tc.p1, tc.p2)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(math.Abs(m[0])-math.Abs(m[3])) > 1e-9 {
			t.Errorf("%d: |sx| = %g, |sy| = %g", i, math.Abs(m[0]), math.Abs(m[3]))
		}

		// the whole user range must fit between the scale points
		lo := Apply(m, vec.Vec2{X: tc.s.X1, Y: tc.s.Y1})
		hi := Apply(m, vec.Vec2{X: tc.s.X2, Y: tc.s.Y2})
		box := rect.Rect{
			LLx: min(tc.p1.X, tc.p2.X) - 1e-9, LLy: min(tc.p1.Y, tc.p2.Y) - 1e-9,
			URx: max(tc.p1.X, tc.p2.X) + 1e-9, URy: max(tc.p1.Y, tc.p2.Y) + 1e-9,
		}
		for _, q := range []vec.Vec2{lo, hi} {
			if q.X < box.LLx || q.X > box.URx || q.Y < box.LLy || q.Y > box.URy {
				t.Errorf("%d: %v outside of %v", i, q, box)
			}
		}
	}
}

func TestIsotropicPadding(t *testing.T) {
	// square user range on a 2:1 plotter range, x has the excess
	s := Isotropic{X1: 0, X2: 10, Y1: 0, Y2: 10, Left: 25, Bottom: 50}
	m, err := ScalingCTM(s, vec.Vec2{}, vec.Vec2{X: 2000, Y: 1000})
	if err != nil {
		t.Fatal(err)
	}
	got := Apply(m, vec.Vec2{X: 0, Y: 0})
	want := vec.Vec2{X: 250, Y: 0}
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestDegenerateScaling(t *testing.T) {
	p1, p2 := vec.Vec2{}, vec.Vec2{X: 100, Y: 100}
	cases := []Scaling{
		Anisotropic{X1: 1, X2: 1, Y1: 0, Y2: 1},
		Isotropic{X1: 0, X2: 1, Y1: 5, Y2: 5},
		PointFactor{ScaleX: 0, ScaleY: 1},
		PointFactor{ScaleX: 1, ScaleY: 0},
	}
	for _, s := range cases {
		if _, err := ScalingCTM(s, p1, p2); !errors.Is(err, ErrDegenerateScale) {
			t.Errorf("%#v: got %v", s, err)
		}
	}
}

func TestPlotSizeFactors(t *testing.T) {
	f := LetterFrame()
	f.PlotWidth = f.Width / 2
	f.PlotHeight = f.Height / 4

	if h, v := HorizontalScaleFactor(f, Rotate0), VerticalScaleFactor(f, Rotate0); h != 2 || v != 4 {
		t.Errorf("rotate 0: got %g, %g", h, v)
	}
	if h, v := HorizontalScaleFactor(f, Rotate90), VerticalScaleFactor(f, Rotate90); h != 4 || v != 2 {
		t.Errorf("rotate 90: got %g, %g", h, v)
	}

	f.PlotWidth = 0
	if h := HorizontalScaleFactor(f, Rotate0); h != 1 {
		t.Errorf("unset plot size: got %g", h)
	}
}

// TestScaleToFrameCentre checks that SC0,100,0,50 with default scale
// points maps the centre of the user range onto the centre of the frame.
func TestScaleToFrameCentre(t *testing.T) {
	f := LetterFrame()
	p1, p2 := DefaultScalePoints(f, Rotate0)
	c, err := NewCtms(f, Setup{P1: p1, P2: p2, Scaling: Anisotropic{X1: 0, X2: 100, Y1: 0, Y2: 50}})
	if err != nil {
		t.Fatal(err)
	}
	got := c.JobToPlotter(vec.Vec2{X: 50, Y: 25}, false)
	want := FrameExtent(f, Rotate0).Mul(0.5)
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestParseRotation(t *testing.T) {
	for _, deg := range []int{0, 90, 180, 270} {
		if r, ok := ParseRotation(deg); !ok || int(r) != deg {
			t.Errorf("ParseRotation(%d) = %d, %t", deg, r, ok)
		}
	}
	for _, deg := range []int{-90, 45, 360} {
		if _, ok := ParseRotation(deg); ok {
			t.Errorf("ParseRotation(%d) accepted", deg)
		}
	}
}

func TestScaleModes(t *testing.T) {
	cases := []struct {
		s    Scaling
		want string
	}{
		{Anisotropic{X1: 0, X2: 1, Y1: 0, Y2: 1}, "anisotropic"},
		{Isotropic{X1: 0, X2: 1, Y1: 0, Y2: 1}, "isotropic"},
		{PointFactor{ScaleX: 1, ScaleY: 1}, "point-factor"},
	}
	for _, c := range cases {
		if got := c.s.Mode().String(); got != c.want {
			t.Errorf("%T: mode %q, want %q", c.s, got, c.want)
		}
	}
	if got := ScaleMode(99).String(); got != "unknown" {
		t.Errorf("invalid mode %q", got)
	}
}
