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

package gfx

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func TestPathMovesCollapse(t *testing.T) {
	var p Path
	p.MoveTo(pt(0, 0))
	p.MoveTo(pt(5, 5))
	p.LineTo(pt(10, 5), true)
	p.MoveTo(pt(20, 20))

	d := p.FillData()
	want := []path.Command{path.CmdMoveTo, path.CmdLineTo}
	if diff := cmp.Diff(want, d.Cmds); diff != "" {
		t.Errorf("commands (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]vec.Vec2{pt(5, 5), pt(10, 5)}, d.Coords); diff != "" {
		t.Errorf("coordinates (-want +got):\n%s", diff)
	}
	if cp, ok := p.CurrentPoint(); !ok || cp != pt(20, 20) {
		t.Errorf("current point %v, %t", cp, ok)
	}
}

func TestPathCloseIdempotent(t *testing.T) {
	var p Path
	p.MoveTo(pt(0, 0))
	p.LineTo(pt(10, 0), true)
	p.LineTo(pt(10, 10), true)
	p.Close()
	p.Close()
	if n := p.Subpaths(); n != 1 {
		t.Errorf("got %d subpaths", n)
	}
	if cp, _ := p.CurrentPoint(); cp != pt(0, 0) {
		t.Errorf("current point after close: %v", cp)
	}

	// drawing after a close starts a new subpath at the old start
	p.LineTo(pt(-5, 0), true)
	d := p.FillData()
	if d.Cmds[len(d.Cmds)-2] != path.CmdMoveTo || d.Coords[len(d.Coords)-2] != pt(0, 0) {
		t.Errorf("unexpected tail %v %v", d.Cmds, d.Coords)
	}
}

func TestStrokeDataSkipsUnstroked(t *testing.T) {
	var p Path
	p.MoveTo(pt(0, 0))
	p.LineTo(pt(10, 0), true)
	p.LineTo(pt(10, 10), false)
	p.LineTo(pt(0, 10), true)
	p.Close()

	d := p.StrokeData()
	wantCmds := []path.Command{
		path.CmdMoveTo, path.CmdLineTo,
		path.CmdMoveTo, path.CmdLineTo,
		path.CmdLineTo,
	}
	wantPts := []vec.Vec2{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10), pt(0, 0)}
	if diff := cmp.Diff(wantCmds, d.Cmds); diff != "" {
		t.Errorf("commands (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantPts, d.Coords); diff != "" {
		t.Errorf("coordinates (-want +got):\n%s", diff)
	}

	if got := p.StrokedLength(); got != 30 {
		t.Errorf("stroked length %g", got)
	}

	// the fill geometry keeps all edges
	if n := len(p.FillData().Cmds); n != 5 {
		t.Errorf("fill data has %d commands", n)
	}
}

func TestStrokedLengthCurve(t *testing.T) {
	// quarter circle of radius 100
	k := 4 * (math.Sqrt2 - 1) / 3 * 100
	var p Path
	p.MoveTo(pt(100, 0))
	p.CurveTo(pt(100, k), pt(k, 100), pt(0, 100), true)
	got := p.StrokedLength()
	want := math.Pi / 2 * 100
	if math.Abs(got-want) > 0.1 {
		t.Errorf("length %g, want %g", got, want)
	}
}

func TestDeviceClip(t *testing.T) {
	rec := &Recorder{}
	dev := NewDevice(rec)
	dev.SetCTM(matrix.Matrix{2, 0, 0, 2, 10, 0})

	if err := dev.PopClip(); !errors.Is(err, ErrClipUnderflow) {
		t.Errorf("expected ErrClipUnderflow, got %v", err)
	}

	dev.PushClip()
	dev.IntersectClip(rect.Rect{LLx: 0, LLy: 0, URx: 50, URy: 50})
	want := rect.Rect{LLx: 10, LLy: 0, URx: 110, URy: 100}
	if diff := cmp.Diff(want, dev.Clip()); diff != "" {
		t.Errorf("clip (-want +got):\n%s", diff)
	}

	saved := dev.Save()
	dev.IntersectClip(rect.Rect{LLx: 100, LLy: 100, URx: 200, URy: 200})
	if !IsEmpty(dev.Clip()) {
		t.Errorf("expected empty clip, got %v", dev.Clip())
	}

	// nothing is painted through an empty clip
	dev.MoveTo(pt(0, 0))
	dev.LineTo(pt(1, 1), true)
	if err := dev.Stroke(dev.Path()); err != nil {
		t.Fatal(err)
	}
	if len(rec.Ops) != 0 {
		t.Errorf("painted %d operations through empty clip", len(rec.Ops))
	}

	dev.Restore(saved)
	if diff := cmp.Diff(want, dev.Clip()); diff != "" {
		t.Errorf("restored clip (-want +got):\n%s", diff)
	}
	if err := dev.PopClip(); err != nil {
		t.Fatal(err)
	}
	if dev.ClipDepth() != 0 {
		t.Errorf("clip depth %d", dev.ClipDepth())
	}
}

func TestDeviceSaveIsolatesPath(t *testing.T) {
	dev := NewDevice(&Recorder{})
	dev.MoveTo(pt(1, 1))
	dev.LineTo(pt(2, 2), true)
	saved := dev.Save()

	dev.LineTo(pt(3, 3), true)
	dev.Restore(saved)

	if cp, _ := dev.CurrentPoint(); cp != pt(2, 2) {
		t.Errorf("current point %v", cp)
	}
	if n := len(dev.Path().FillData().Cmds); n != 2 {
		t.Errorf("path has %d commands", n)
	}
}

func TestRecorderPoints(t *testing.T) {
	rec := &Recorder{}
	dev := NewDevice(rec)
	dev.SetLineParams(LineParams{Width: 3, Dash: []float64{1, 2}})
	dev.MoveTo(pt(0, 0))
	dev.LineTo(pt(4, 0), true)
	dev.LineTo(pt(4, 3), true)
	dev.ClosePath()
	if err := dev.Stroke(dev.Path()); err != nil {
		t.Fatal(err)
	}
	if rec.Count(OpStroke) != 1 {
		t.Fatalf("got %d strokes", rec.Count(OpStroke))
	}
	op := &rec.Ops[0]
	want := []vec.Vec2{pt(0, 0), pt(4, 0), pt(4, 3), pt(0, 0)}
	if diff := cmp.Diff(want, op.Points()); diff != "" {
		t.Errorf("points (-want +got):\n%s", diff)
	}
	if op.Line.Width != 3 || len(op.Line.Dash) != 2 {
		t.Errorf("line parameters %+v", op.Line)
	}
}

func TestPatternWraps(t *testing.T) {
	p := &Pattern{Width: 2, Height: 2, Pix: []byte{1, 2, 3, 4}}
	cases := []struct {
		x, y int
		want byte
	}{
		{0, 0, 1}, {1, 0, 2}, {0, 1, 3}, {3, 3, 4}, {-1, 0, 2}, {0, -1, 3},
	}
	for _, tc := range cases {
		if got := p.At(tc.x, tc.y); got != tc.want {
			t.Errorf("At(%d, %d) = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}
