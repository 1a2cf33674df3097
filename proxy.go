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

package hpgl

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hpgl/gfx"
)

// inBuffer reports whether path construction goes to the polygon buffer.
func (i *Interpreter) inBuffer() bool {
	return i.env.Polygon.Enabled || i.figure
}

// currentPoint returns the pen position in plotter units.
func (i *Interpreter) currentPoint() vec.Vec2 {
	var p vec.Vec2
	if i.inBuffer() {
		p, _ = i.polygon.CurrentPoint()
	} else {
		p, _ = i.k.CurrentPoint()
	}
	return p
}

// moveTo moves the pen without drawing.
func (i *Interpreter) moveTo(p vec.Vec2) {
	if i.inBuffer() {
		i.polygon.MoveTo(p)
		return
	}
	i.k.MoveTo(p)
}

// lineTo moves the pen to p.  The segment is drawn if stroked is set,
// the pen is down and a pen is selected.  Otherwise the move degrades
// to a moveto on the device path and to an invisible edge in the
// polygon buffer.
func (i *Interpreter) lineTo(p vec.Vec2, stroked bool) {
	down := stroked && i.env.Vector.Pen == PenDown && !i.env.Print.Lost
	if i.inBuffer() {
		poly := &i.env.Polygon
		switch {
		case down || i.figure:
			i.polygon.LineTo(p, true)
		case poly.Restart:
			i.polygon.MoveTo(p)
		default:
			i.polygon.LineTo(p, false)
		}
		poly.Restart = false
		return
	}

	if !down || i.env.LineFill.Pen == 0 {
		i.k.MoveTo(p)
		return
	}
	i.k.LineTo(p, true)
	if i.env.LineFill.Symbol != 0 {
		i.env.Print.Symbols = append(i.env.Print.Symbols, p)
	}
}

// curveTo appends a cubic Bézier curve, following the same rules as
// lineTo.
func (i *Interpreter) curveTo(c1, c2, p vec.Vec2) {
	down := i.env.Vector.Pen == PenDown && !i.env.Print.Lost
	if i.inBuffer() {
		i.polygon.CurveTo(c1, c2, p, down || i.figure)
		i.env.Polygon.Restart = false
		return
	}
	if !down || i.env.LineFill.Pen == 0 {
		i.k.MoveTo(p)
		return
	}
	i.k.CurveTo(c1, c2, p, true)
}

// closePath closes the current subpath.
func (i *Interpreter) closePath() {
	if i.inBuffer() {
		i.polygon.Close()
		return
	}
	i.k.ClosePath()
}

// flushPath strokes the device path and starts a new path at the pen
// position.
func (i *Interpreter) flushPath() error {
	if i.k == nil {
		return nil
	}
	p := i.k.Path()
	cp, ok := p.CurrentPoint()
	if !p.IsEmpty() {
		length := p.StrokedLength()
		i.k.SetLineParams(i.lineParams(length))
		if err := i.k.Stroke(p); err != nil {
			return err
		}
		i.advanceResidue(length)
	}
	i.k.NewPath()
	if ok {
		i.k.MoveTo(cp)
	}
	return nil
}

// endDrawing completes a drawing command: the path is drawn and the
// symbol-mode characters are stamped at the collected points.
func (i *Interpreter) endDrawing() error {
	syms := i.env.Print.Symbols
	if len(syms) == 0 {
		return nil
	}
	i.env.Print.Symbols = syms[:0]
	if err := i.flushPath(); err != nil {
		return err
	}
	gk, ok := i.k.(gfx.GlyphKernel)
	if !ok {
		return nil
	}
	cp := i.currentPoint()
	attrs := i.textAttrs()
	for _, p := range syms {
		// centre the character on the point
		origin := p.Sub(attrs.Advance.Mul(0.5)).Sub(attrs.Up.Mul(0.5))
		if err := gk.Glyph(origin, i.env.LineFill.Symbol, &attrs); err != nil {
			return err
		}
	}
	i.k.NewPath()
	i.k.MoveTo(cp)
	return nil
}

// enterPolygonMode implements PM0.
func (i *Interpreter) enterPolygonMode() error {
	if err := i.flushPath(); err != nil {
		return err
	}
	cp := i.currentPoint()
	poly := &i.env.Polygon
	poly.SavedPen = i.env.Vector.Pen
	poly.Enabled = true
	poly.Restart = false
	i.polygon.Reset()
	i.polygon.MoveTo(cp)
	return nil
}

// leavePolygonMode implements PM2.
func (i *Interpreter) leavePolygonMode() {
	i.polygon.Close()
	cp, _ := i.polygon.CurrentPoint()
	poly := &i.env.Polygon
	poly.Enabled = false
	poly.Restart = false
	i.env.Vector.Pen = poly.SavedPen
	i.k.NewPath()
	i.k.MoveTo(cp)
}

// ForcePolygonExit leaves polygon mode and empties the polygon buffer,
// without touching the pen state.  It is used by host-side resets.
func (i *Interpreter) ForcePolygonExit() {
	i.polygon.Reset()
	i.env.Polygon.Enabled = false
	i.env.Polygon.Restart = false
}

// withFigure builds a closed figure in the scratch buffer and then
// edges or fills it.  In polygon mode, the figure is added to the
// polygon buffer instead.
func (i *Interpreter) withFigure(fill bool, build func()) error {
	if i.env.Polygon.Enabled {
		saved := i.env.Vector.Pen
		i.env.Vector.Pen = PenDown
		build()
		i.env.Vector.Pen = saved
		return nil
	}

	if err := i.flushPath(); err != nil {
		return err
	}
	cp := i.currentPoint()
	i.polygon.Reset()
	i.polygon.MoveTo(cp)
	i.figure = true
	build()
	i.figure = false

	var err error
	if i.env.LineFill.Pen != 0 {
		if fill {
			err = i.fillBuffer(gfx.EvenOdd)
		} else {
			err = i.edgeBuffer()
		}
	}
	i.polygon.Reset()
	i.k.NewPath()
	i.k.MoveTo(cp)
	return err
}

// edgeBuffer strokes the polygon buffer.
func (i *Interpreter) edgeBuffer() error {
	if i.polygon.IsEmpty() {
		return nil
	}
	i.k.SetLineParams(i.lineParams(i.polygon.StrokedLength()))
	return i.k.Stroke(&i.polygon)
}

// fillBuffer fills the polygon buffer.
func (i *Interpreter) fillBuffer(rule gfx.FillRule) error {
	if i.polygon.IsEmpty() {
		return nil
	}
	fp, err := i.fillParams(rule)
	if err != nil {
		return err
	}
	i.k.SetFillParams(fp)
	return i.k.Fill(&i.polygon)
}
