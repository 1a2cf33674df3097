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
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/hpgl/transform"
)

// GState is a snapshot of the graphics state of a Device.
type GState struct {
	ctm      matrix.Matrix
	path     Path
	clips    []rect.Rect // device space; each entry is already intersected
	line     LineParams
	fill     FillParams
	flatness float64
}

// DefaultGState returns the graphics state of a new device.
func DefaultGState() GState {
	return GState{
		ctm:   matrix.Identity,
		clips: []rect.Rect{Unbounded},
		line: LineParams{
			Width:      1,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
		},
		flatness: DefaultFlatness,
	}
}

func (g *GState) clone() GState {
	c := *g
	c.path = g.path.Clone()
	c.clips = slices.Clone(g.clips)
	c.line = g.line.Clone()
	return c
}

// Device is a Kernel which keeps the graphics state itself and hands
// finished paths to a Painter.
type Device struct {
	painter Painter
	gs      GState
}

// NewDevice returns a device which paints using p.
func NewDevice(p Painter) *Device {
	return &Device{
		painter: p,
		gs:      DefaultGState(),
	}
}

// SetCTM implements the Kernel interface.
func (d *Device) SetCTM(m matrix.Matrix) {
	d.gs.ctm = m
}

// CTM implements the Kernel interface.
func (d *Device) CTM() matrix.Matrix {
	return d.gs.ctm
}

// NewPath implements the Kernel interface.
func (d *Device) NewPath() {
	d.gs.path.Reset()
}

// MoveTo implements the Kernel interface.
func (d *Device) MoveTo(p vec.Vec2) {
	d.gs.path.MoveTo(p)
}

// LineTo implements the Kernel interface.
func (d *Device) LineTo(p vec.Vec2, stroked bool) {
	d.gs.path.LineTo(p, stroked)
}

// CurveTo implements the Kernel interface.
func (d *Device) CurveTo(p1, p2, p3 vec.Vec2, stroked bool) {
	d.gs.path.CurveTo(p1, p2, p3, stroked)
}

// ClosePath implements the Kernel interface.
func (d *Device) ClosePath() {
	d.gs.path.Close()
}

// CurrentPoint implements the Kernel interface.
func (d *Device) CurrentPoint() (vec.Vec2, bool) {
	return d.gs.path.CurrentPoint()
}

// Path implements the Kernel interface.
func (d *Device) Path() *Path {
	return &d.gs.path
}

// SetLineParams implements the Kernel interface.
func (d *Device) SetLineParams(lp LineParams) {
	d.gs.line = lp.Clone()
}

// LineParams returns the current line parameters.
func (d *Device) LineParams() LineParams {
	return d.gs.line.Clone()
}

// SetFillParams implements the Kernel interface.
func (d *Device) SetFillParams(fp FillParams) {
	d.gs.fill = fp
}

// FillParams returns the current fill parameters.
func (d *Device) FillParams() FillParams {
	return d.gs.fill
}

// SetFlatness implements the Kernel interface.
func (d *Device) SetFlatness(f float64) {
	if f > 0 {
		d.gs.flatness = f
	}
}

// Stroke implements the Kernel interface.
func (d *Device) Stroke(p *Path) error {
	data := p.StrokeData()
	if len(data.Cmds) == 0 {
		return nil
	}
	ds := d.drawState()
	if IsEmpty(ds.Clip) {
		return nil
	}
	lp := d.gs.line.Clone()
	return d.painter.Stroke(data, &ds, &lp)
}

// Fill implements the Kernel interface.
func (d *Device) Fill(p *Path) error {
	if p.IsEmpty() {
		return nil
	}
	ds := d.drawState()
	if IsEmpty(ds.Clip) {
		return nil
	}
	fp := d.gs.fill
	return d.painter.Fill(p.FillData(), &ds, &fp)
}

// Glyph implements the GlyphKernel interface.  Characters are dropped if
// the painter cannot draw them.
func (d *Device) Glyph(origin vec.Vec2, ch byte, t *TextAttrs) error {
	gp, ok := d.painter.(GlyphPainter)
	if !ok {
		return nil
	}
	ds := d.drawState()
	if IsEmpty(ds.Clip) {
		return nil
	}
	return gp.Glyph(origin, ch, &ds, t)
}

// PushClip implements the Kernel interface.
func (d *Device) PushClip() {
	d.gs.clips = append(d.gs.clips, d.gs.clips[len(d.gs.clips)-1])
}

// PopClip implements the Kernel interface.
func (d *Device) PopClip() error {
	if len(d.gs.clips) <= 1 {
		return ErrClipUnderflow
	}
	d.gs.clips = d.gs.clips[:len(d.gs.clips)-1]
	return nil
}

// IntersectClip implements the Kernel interface.
func (d *Device) IntersectClip(r rect.Rect) {
	top := len(d.gs.clips) - 1
	dev := transform.TransformRect(d.gs.ctm, r)
	d.gs.clips[top] = Intersect(d.gs.clips[top], dev)
}

// Clip returns the current clip rectangle in device space.
func (d *Device) Clip() rect.Rect {
	return d.gs.clips[len(d.gs.clips)-1]
}

// ClipDepth returns the number of pushed clip levels.
func (d *Device) ClipDepth() int {
	return len(d.gs.clips) - 1
}

// Save implements the Kernel interface.
func (d *Device) Save() GState {
	return d.gs.clone()
}

// Restore implements the Kernel interface.
func (d *Device) Restore(g GState) {
	if len(g.clips) == 0 {
		g = DefaultGState()
	}
	d.gs = g.clone()
}

func (d *Device) drawState() DrawState {
	return DrawState{
		CTM:      d.gs.ctm,
		Clip:     d.Clip(),
		Flatness: d.gs.flatness,
	}
}

// DefaultFlatness is the curve flattening tolerance in device units.
const DefaultFlatness = 0.25
