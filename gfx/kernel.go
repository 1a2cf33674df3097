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

// Package gfx defines the graphics kernel used by the HP-GL/2
// interpreter, together with a generic implementation which forwards
// painting operations to a Painter.
package gfx

import (
	"errors"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// ErrClipUnderflow is returned by PopClip when no clip level was pushed.
var ErrClipUnderflow = errors.New("clip stack underflow")

// Kernel is the interface between the interpreter and the graphics
// system.  All coordinates are in user space, which the CTM maps to
// device space.
type Kernel interface {
	SetCTM(m matrix.Matrix)
	CTM() matrix.Matrix

	// Path construction.
	NewPath()
	MoveTo(p vec.Vec2)
	LineTo(p vec.Vec2, stroked bool)
	CurveTo(p1, p2, p3 vec.Vec2, stroked bool)
	ClosePath()
	CurrentPoint() (vec.Vec2, bool)
	Path() *Path

	// Painting parameters.
	SetLineParams(lp LineParams)
	SetFillParams(fp FillParams)
	SetFlatness(f float64)

	// Stroke paints the stroked segments of p using the line parameters.
	Stroke(p *Path) error

	// Fill paints the interior of p using the fill parameters.
	Fill(p *Path) error

	// Clipping.  IntersectClip takes a rectangle in user space.
	PushClip()
	PopClip() error
	IntersectClip(r rect.Rect)

	// Save returns a copy of the graphics state, Restore installs one.
	Save() GState
	Restore(g GState)
}

// GlyphKernel is implemented by kernels which can draw characters.
type GlyphKernel interface {
	Glyph(origin vec.Vec2, ch byte, t *TextAttrs) error
}

// FillRule selects how the interior of a path is determined.
type FillRule int

const (
	EvenOdd FillRule = iota
	NonZero
)

func (r FillRule) String() string {
	if r == NonZero {
		return "nonzero"
	}
	return "evenodd"
}

// PaintKind describes how an area is painted.
type PaintKind int

const (
	PaintSolid PaintKind = iota
	PaintHatch
	PaintCrossHatch
	PaintShading
	PaintPattern
)

func (k PaintKind) String() string {
	switch k {
	case PaintSolid:
		return "solid"
	case PaintHatch:
		return "hatch"
	case PaintCrossHatch:
		return "crosshatch"
	case PaintShading:
		return "shading"
	case PaintPattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// Paint describes the colour source for a stroke or fill.
// Distances are in user space.
type Paint struct {
	Pen  int
	Kind PaintKind

	// Spacing, Angle and LineWidth describe hatch lines.  Angle is in
	// degrees counterclockwise from the x-axis.
	Spacing   float64
	Angle     float64
	LineWidth float64

	// Level is the shading intensity in percent.
	Level float64

	// Anchor is the origin of hatch and pattern fills.
	Anchor vec.Vec2

	// Pattern is used when Kind is PaintPattern.
	Pattern *Pattern

	// Transparent means that pattern cells of pen 0 are not painted.
	Transparent bool
}

// Pattern is a raster fill pattern.  Pixel values are pen numbers.
type Pattern struct {
	Width, Height int
	Pix           []byte // row-major, first row at the top

	// Cell is the size of one pattern pixel in user space.
	Cell float64
}

// At returns the pen of the pattern pixel at (x, y), wrapping around
// the pattern edges.
func (p *Pattern) At(x, y int) byte {
	if p.Width <= 0 || p.Height <= 0 {
		return 0
	}
	x %= p.Width
	if x < 0 {
		x += p.Width
	}
	y %= p.Height
	if y < 0 {
		y += p.Height
	}
	return p.Pix[y*p.Width+x]
}

// LineParams is the parameter block for stroking.
type LineParams struct {
	Width      float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64

	// Dash is the dash pattern; nil means a solid line.
	Dash      []float64
	DashPhase float64

	Paint Paint
}

// Clone returns a copy of lp which does not share the dash slice.
func (lp LineParams) Clone() LineParams {
	lp.Dash = slices.Clone(lp.Dash)
	return lp
}

// FillParams is the parameter block for filling.
type FillParams struct {
	Rule  FillRule
	Paint Paint
}

// TextAttrs describes a character cell.  Advance spans the cell
// horizontally, Up spans it vertically.  Both are in user space.
type TextAttrs struct {
	Advance vec.Vec2
	Up      vec.Vec2
	Slant   float64
	Pen     int
}

// DrawState holds the parts of the graphics state a painter needs.
type DrawState struct {
	CTM      matrix.Matrix
	Clip     rect.Rect // device space
	Flatness float64
}

// Painter turns paths into marks on a page.  Paths are in user space;
// the draw state's CTM maps them to device space.
type Painter interface {
	Fill(d *path.Data, ds *DrawState, fp *FillParams) error
	Stroke(d *path.Data, ds *DrawState, lp *LineParams) error
}

// GlyphPainter is implemented by painters which can draw characters.
type GlyphPainter interface {
	Glyph(origin vec.Vec2, ch byte, ds *DrawState, t *TextAttrs) error
}

// Unbounded is the clip rectangle which does not restrict painting.
var Unbounded = rect.Rect{LLx: -unboundedSize, LLy: -unboundedSize, URx: unboundedSize, URy: unboundedSize}

// Intersect returns the intersection of two rectangles.  The result may
// be empty, with URx < LLx or URy < LLy.
func Intersect(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: max(a.LLx, b.LLx),
		LLy: max(a.LLy, b.LLy),
		URx: min(a.URx, b.URx),
		URy: min(a.URy, b.URy),
	}
}

// IsEmpty reports whether r contains no area.
func IsEmpty(r rect.Rect) bool {
	return r.URx <= r.LLx || r.URy <= r.LLy
}

const unboundedSize = 1e15
