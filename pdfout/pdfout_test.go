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

package pdfout

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hpgl/gfx"
)

func square(x0, y0, x1, y1 float64) *path.Data {
	return &path.Data{
		Cmds: []path.Command{path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose},
		Coords: []vec.Vec2{
			{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
		},
	}
}

func TestWritePage(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "out.pdf")
	page, err := Create(fname, 7200, 7200)
	if err != nil {
		t.Fatal(err)
	}

	ds := &gfx.DrawState{CTM: matrix.Identity, Clip: gfx.Unbounded}
	fills := []gfx.Paint{
		{Pen: 1},
		{Pen: 2, Kind: gfx.PaintShading, Level: 30},
		{Pen: 1, Kind: gfx.PaintHatch, Spacing: 100, Angle: 45, LineWidth: 10},
		{Pen: 1, Kind: gfx.PaintCrossHatch, Spacing: 100, LineWidth: 10},
	}
	for i, paint := range fills {
		x := float64(i) * 1000
		if err := page.Fill(square(x, 0, x+800, 800), ds, &gfx.FillParams{Paint: paint}); err != nil {
			t.Fatal(err)
		}
	}

	ds.Clip = rect.Rect{LLx: 0, LLy: 2000, URx: 3600, URy: 4000}
	lp := &gfx.LineParams{Width: 20, Dash: []float64{100, 50}, Paint: gfx.Paint{Pen: 3}}
	if err := page.Stroke(square(100, 2100, 5000, 3900), ds, lp); err != nil {
		t.Fatal(err)
	}
	if err := page.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-1.7")) {
		t.Errorf("unexpected file header %q", data[:min(len(data), 8)])
	}
}

func TestPaintGray(t *testing.T) {
	p := &Page{Gray: DefaultGray()}
	cases := []struct {
		paint gfx.Paint
		want  float64
	}{
		{gfx.Paint{Pen: 0}, 1},
		{gfx.Paint{Pen: 1}, 0},
		{gfx.Paint{Pen: 9}, 0},
		{gfx.Paint{Pen: 1, Kind: gfx.PaintShading, Level: 25}, 0.75},
		{gfx.Paint{Pen: 1, Kind: gfx.PaintShading, Level: 200}, 0},
		{gfx.Paint{
			Pen:         1,
			Kind:        gfx.PaintPattern,
			Pattern:     &gfx.Pattern{Width: 2, Height: 2, Pix: []byte{0, 1, 1, 1}},
			Transparent: true,
		}, 0.25},
	}
	for i, tc := range cases {
		if got := p.paintGray(&tc.paint); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%d: got %g, want %g", i, got, tc.want)
		}
	}
}

func TestHatchLines(t *testing.T) {
	d := square(0, 0, 100, 50)

	lines := HatchLines(d, vec.Vec2{}, 10, 0)
	if len(lines) != 6 {
		t.Fatalf("got %d horizontal lines, want 6", len(lines))
	}
	for i, l := range lines {
		y := float64(i) * 10
		if math.Abs(l[0].Y-y) > 1e-9 || math.Abs(l[1].Y-y) > 1e-9 {
			t.Errorf("line %d at y=%g..%g, want %g", i, l[0].Y, l[1].Y, y)
		}
		if math.Abs(l[0].X) > 1e-9 || math.Abs(l[1].X-100) > 1e-9 {
			t.Errorf("line %d spans x=%g..%g", i, l[0].X, l[1].X)
		}
	}

	// the anchor shifts the lines
	lines = HatchLines(d, vec.Vec2{X: 0, Y: 5}, 10, 0)
	if len(lines) != 5 || math.Abs(lines[0][0].Y-5) > 1e-9 {
		t.Errorf("anchored lines: %v", lines)
	}

	if HatchLines(d, vec.Vec2{}, 0, 0) != nil {
		t.Error("zero spacing produced lines")
	}
}
