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

package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/hpgl/gfx"
)

// grid collects coverage values into a dense w×h buffer.
type grid struct {
	w, h int
	v    []float32
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, v: make([]float32, w*h)}
}

func (g *grid) emit(y, xMin int, coverage []float32) {
	copy(g.v[y*g.w+xMin:], coverage)
}

func (g *grid) at(x, y int) float32 {
	return g.v[y*g.w+x]
}

func (g *grid) sum() float64 {
	var s float64
	for _, c := range g.v {
		s += float64(c)
	}
	return s
}

func polygon(pts ...vec.Vec2) *path.Data {
	d := &path.Data{}
	for i, p := range pts {
		if i == 0 {
			d.Cmds = append(d.Cmds, path.CmdMoveTo)
		} else {
			d.Cmds = append(d.Cmds, path.CmdLineTo)
		}
		d.Coords = append(d.Coords, p)
	}
	d.Cmds = append(d.Cmds, path.CmdClose)
	return d
}

func line(a, b vec.Vec2) *path.Data {
	return &path.Data{
		Cmds:   []path.Command{path.CmdMoveTo, path.CmdLineTo},
		Coords: []vec.Vec2{a, b},
	}
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func newTestRasteriser(w, h int) *Rasteriser {
	return NewRasteriser(rect.Rect{URx: float64(w), URy: float64(h)})
}

func TestRectangleCoverage(t *testing.T) {
	r := newTestRasteriser(16, 16)
	g := newGrid(16, 16)
	r.FillNonZero(polygon(pt(2, 3), pt(10, 3), pt(10, 7.5), pt(2, 7.5)), g.emit)

	cases := []struct {
		x, y int
		want float32
	}{
		{1, 4, 0},
		{2, 3, 1},
		{9, 6, 1},
		{10, 4, 0},
		{5, 7, 0.5},
		{5, 8, 0},
	}
	for _, tc := range cases {
		if got := g.at(tc.x, tc.y); math.Abs(float64(got-tc.want)) > 1e-5 {
			t.Errorf("pixel (%d,%d): got %g, want %g", tc.x, tc.y, got, tc.want)
		}
	}
	if s := g.sum(); math.Abs(s-36) > 1e-4 {
		t.Errorf("total coverage %g, want 36", s)
	}
}

func TestTriangleArea(t *testing.T) {
	r := newTestRasteriser(64, 64)
	for _, rule := range []string{"nonzero", "evenodd"} {
		g := newGrid(64, 64)
		tri := polygon(pt(10, 50), pt(32, 10.3), pt(54.7, 50))
		if rule == "nonzero" {
			r.FillNonZero(tri, g.emit)
		} else {
			r.FillEvenOdd(tri, g.emit)
		}
		want := 0.5 * 44.7 * 39.7
		if s := g.sum(); math.Abs(s-want) > 1e-2 {
			t.Errorf("%s: area %g, want %g", rule, s, want)
		}
	}
}

func TestFillRules(t *testing.T) {
	// two nested squares with the same orientation
	d := polygon(pt(0, 0), pt(20, 0), pt(20, 20), pt(0, 20))
	inner := polygon(pt(5, 5), pt(15, 5), pt(15, 15), pt(5, 15))
	d.Cmds = append(d.Cmds, inner.Cmds...)
	d.Coords = append(d.Coords, inner.Coords...)

	r := newTestRasteriser(20, 20)
	g := newGrid(20, 20)
	r.FillNonZero(d, g.emit)
	if got := g.at(10, 10); got != 1 {
		t.Errorf("nonzero: centre coverage %g", got)
	}

	g = newGrid(20, 20)
	r.FillEvenOdd(d, g.emit)
	if got := g.at(10, 10); got != 0 {
		t.Errorf("evenodd: centre coverage %g", got)
	}
	if got := g.at(2, 2); got != 1 {
		t.Errorf("evenodd: ring coverage %g", got)
	}
}

func TestClipAndCTM(t *testing.T) {
	r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 8, URy: 8})
	r.CTM = matrix.Matrix{2, 0, 0, 2, 0, 0}
	g := newGrid(8, 8)
	r.FillNonZero(polygon(pt(1, 1), pt(10, 1), pt(10, 10), pt(1, 10)), g.emit)

	// (1,1)-(10,10) scaled by two and clipped to the 8×8 grid
	if s := g.sum(); math.Abs(s-36) > 1e-4 {
		t.Errorf("total coverage %g, want 36", s)
	}
}

// TestAgainstVector compares coverage with golang.org/x/image/vector for
// a ring made from cubic curves.
func TestAgainstVector(t *testing.T) {
	const size = 64
	cx, cy := 32.0, 32.0

	ring := &path.Data{}
	addCircle(ring, cx, cy, 28, false)
	addCircle(ring, cx, cy, 18, true)

	r := newTestRasteriser(size, size)
	g := newGrid(size, size)
	r.FillNonZero(ring, g.emit)

	vr := vector.NewRasterizer(size, size)
	addCircleToVector(vr, float32(cx), float32(cy), 28, false)
	addCircleToVector(vr, float32(cx), float32(cy), 18, true)
	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	vr.Draw(dst, dst.Bounds(), image.NewUniform(color.Alpha{255}), image.Point{})

	var maxDiff, totalDiff float64
	for y := range size {
		for x := range size {
			want := float64(dst.AlphaAt(x, y).A) / 255
			diff := math.Abs(float64(g.at(x, y)) - want)
			maxDiff = max(maxDiff, diff)
			totalDiff += diff
		}
	}
	if maxDiff > 0.35 {
		t.Errorf("max pixel difference %.3f", maxDiff)
	}
	if mean := totalDiff / (size * size); mean > 0.02 {
		t.Errorf("mean pixel difference %.4f", mean)
	}
}

func TestStrokeCaps(t *testing.T) {
	// round caps are polygons inscribed in the circle
	cases := []struct {
		cap  graphics.LineCapStyle
		want float64
		tol  float64
	}{
		{graphics.LineCapButt, 160, 1e-3},
		{graphics.LineCapSquare, 176, 1e-3},
		{graphics.LineCapRound, 160 + 4*math.Pi, 1.5},
	}
	for _, tc := range cases {
		t.Run(tc.cap.String(), func(t *testing.T) {
			r := newTestRasteriser(64, 64)
			r.Width = 4
			r.Cap = tc.cap
			g := newGrid(64, 64)
			r.Stroke(line(pt(10, 20), pt(50, 20)), g.emit)
			if s := g.sum(); math.Abs(s-tc.want) > tc.tol {
				t.Errorf("area %g, want %g", s, tc.want)
			}
		})
	}
}

func TestStrokeDash(t *testing.T) {
	r := newTestRasteriser(64, 64)
	r.Width = 4
	r.Dash = []float64{10, 10}
	g := newGrid(64, 64)
	r.Stroke(line(pt(10, 20), pt(50, 20)), g.emit)
	if s := g.sum(); math.Abs(s-80) > 1e-3 {
		t.Errorf("area %g, want 80", s)
	}
	if g.at(15, 20) != 1 || g.at(25, 20) != 0 || g.at(35, 20) != 1 {
		t.Error("dashes in wrong place")
	}

	// the phase shifts the pattern
	r.DashPhase = 10
	g = newGrid(64, 64)
	r.Stroke(line(pt(10, 20), pt(50, 20)), g.emit)
	if g.at(15, 20) != 0 || g.at(25, 20) != 1 {
		t.Error("phase not applied")
	}
}

func TestStrokeJoinsCoverCorner(t *testing.T) {
	corner := &path.Data{
		Cmds:   []path.Command{path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo},
		Coords: []vec.Vec2{pt(10, 10), pt(40, 10), pt(40, 40)},
	}
	for _, join := range []graphics.LineJoinStyle{graphics.LineJoinMiter, graphics.LineJoinRound, graphics.LineJoinBevel} {
		t.Run(join.String(), func(t *testing.T) {
			r := newTestRasteriser(64, 64)
			r.Width = 6
			r.Join = join
			g := newGrid(64, 64)
			r.Stroke(corner, g.emit)

			// the inside of the corner is always covered
			if got := g.at(38, 11); got != 1 {
				t.Errorf("inner corner coverage %g", got)
			}
			// only the miter join reaches the outer corner
			outer := g.at(42, 7)
			if join == graphics.LineJoinMiter && outer != 1 {
				t.Errorf("miter corner coverage %g", outer)
			}
			if join == graphics.LineJoinBevel && outer != 0 {
				t.Errorf("bevel corner coverage %g", outer)
			}
		})
	}
}

func TestHairline(t *testing.T) {
	r := newTestRasteriser(32, 32)
	r.Width = 0
	g := newGrid(32, 32)
	r.Stroke(line(pt(4, 10.5), pt(20, 10.5)), g.emit)
	if s := g.sum(); math.Abs(s-16) > 1e-3 {
		t.Errorf("zero-width line covers %g pixels, want 16", s)
	}
}

func TestCanvasColours(t *testing.T) {
	c := NewCanvas(20, 20)
	ds := &gfx.DrawState{CTM: matrix.Identity, Clip: gfx.Unbounded}
	fp := &gfx.FillParams{Paint: gfx.Paint{Pen: 2}}
	if err := c.Fill(polygon(pt(0, 0), pt(10, 0), pt(10, 20), pt(0, 20)), ds, fp); err != nil {
		t.Fatal(err)
	}
	if got := c.Image.RGBAAt(5, 5); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("filled pixel %v", got)
	}
	if got := c.Image.RGBAAt(15, 5); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background pixel %v", got)
	}

	// clipping restricts the painted area
	ds.Clip = rect.Rect{LLx: 10, LLy: 0, URx: 15, URy: 20}
	lp := &gfx.LineParams{Width: 2, Paint: gfx.Paint{Pen: 5}}
	if err := c.Stroke(line(pt(0, 10), pt(20, 10)), ds, lp); err != nil {
		t.Fatal(err)
	}
	if got := c.Image.RGBAAt(12, 10); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("stroked pixel %v", got)
	}
	if got := c.Image.RGBAAt(17, 10); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("clipped pixel %v", got)
	}
}

func TestCanvasHatch(t *testing.T) {
	c := NewCanvas(40, 40)
	ds := &gfx.DrawState{CTM: matrix.Identity, Clip: gfx.Unbounded}
	fp := &gfx.FillParams{Paint: gfx.Paint{
		Pen:       1,
		Kind:      gfx.PaintHatch,
		Spacing:   10,
		LineWidth: 2,
	}}
	if err := c.Fill(polygon(pt(0, 0), pt(40, 0), pt(40, 40), pt(0, 40)), ds, fp); err != nil {
		t.Fatal(err)
	}
	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	if got := c.Image.RGBAAt(20, 10); got != black {
		t.Errorf("pixel on hatch line: %v", got)
	}
	if got := c.Image.RGBAAt(20, 15); got != white {
		t.Errorf("pixel between hatch lines: %v", got)
	}
}

func TestCanvasShading(t *testing.T) {
	c := NewCanvas(10, 10)
	ds := &gfx.DrawState{CTM: matrix.Identity, Clip: gfx.Unbounded}
	fp := &gfx.FillParams{Paint: gfx.Paint{Pen: 1, Kind: gfx.PaintShading, Level: 50}}
	if err := c.Fill(polygon(pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)), ds, fp); err != nil {
		t.Fatal(err)
	}
	if got := c.Image.RGBAAt(5, 5); got.R != 128 || got.G != 128 || got.B != 128 {
		t.Errorf("shaded pixel %v", got)
	}
}

func TestCanvasPattern(t *testing.T) {
	c := NewCanvas(8, 8)
	ds := &gfx.DrawState{CTM: matrix.Identity, Clip: gfx.Unbounded}
	pat := &gfx.Pattern{Width: 2, Height: 1, Pix: []byte{1, 0}, Cell: 2}
	fp := &gfx.FillParams{Paint: gfx.Paint{Pen: 1, Kind: gfx.PaintPattern, Pattern: pat, Transparent: true}}
	if err := c.Fill(polygon(pt(0, 0), pt(8, 0), pt(8, 8), pt(0, 8)), ds, fp); err != nil {
		t.Fatal(err)
	}
	if got := c.Image.RGBAAt(1, 3); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("pattern pixel %v", got)
	}
	if got := c.Image.RGBAAt(3, 3); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("transparent pixel %v", got)
	}
}

// addCircle appends a circle made of four cubic Bézier curves.
func addCircle(d *path.Data, cx, cy, r float64, clockwise bool) {
	const k = 0.5522847498
	kr := k * r
	s := 1.0
	if clockwise {
		s = -1
	}
	d.Cmds = append(d.Cmds, path.CmdMoveTo)
	d.Coords = append(d.Coords, pt(cx, cy-r))
	quarters := [4][3]vec.Vec2{
		{pt(cx+s*kr, cy-r), pt(cx+s*r, cy-kr), pt(cx+s*r, cy)},
		{pt(cx+s*r, cy+kr), pt(cx+s*kr, cy+r), pt(cx, cy+r)},
		{pt(cx-s*kr, cy+r), pt(cx-s*r, cy+kr), pt(cx-s*r, cy)},
		{pt(cx-s*r, cy-kr), pt(cx-s*kr, cy-r), pt(cx, cy-r)},
	}
	for _, q := range quarters {
		d.Cmds = append(d.Cmds, path.CmdCubeTo)
		d.Coords = append(d.Coords, q[:]...)
	}
	d.Cmds = append(d.Cmds, path.CmdClose)
}

// addCircleToVector adds the same circle to a vector.Rasterizer.
func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius
	s := float32(1)
	if clockwise {
		s = -1
	}
	r.MoveTo(cx, cy-radius)
	r.CubeTo(cx+s*kr, cy-radius, cx+s*radius, cy-kr, cx+s*radius, cy)
	r.CubeTo(cx+s*radius, cy+kr, cx+s*kr, cy+radius, cx, cy+radius)
	r.CubeTo(cx-s*kr, cy+radius, cx-s*radius, cy+kr, cx-s*radius, cy)
	r.CubeTo(cx-s*radius, cy-kr, cx-s*kr, cy-radius, cx, cy-radius)
	r.ClosePath()
}
