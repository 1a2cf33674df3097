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

// Package raster paints HP-GL/2 output into images.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a non-horizontal line segment in device coordinates, stored
// with yTop < yBot.
type edge struct {
	xTop, yTop float64
	yBot       float64
	dxdy       float64
	dir        float32 // +1 if the original segment pointed down, -1 otherwise
}

func (e *edge) xAt(y float64) float64 {
	return e.xTop + e.dxdy*(y-e.yTop)
}

// Rasteriser converts paths into anti-aliased pixel coverage.
// Internal buffers are reused between calls.
type Rasteriser struct {
	// CTM maps user space to device space.
	CTM matrix.Matrix

	// Clip is the output region in device coordinates.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	Flatness float64

	// Stroke parameters, in user space.
	Width      float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64
	Dash       []float64
	DashPhase  float64

	edges     []edge
	active    []int
	cover     []float32
	area      []float32
	crossings []float64

	haveBox      bool
	boxX0, boxX1 float64
	boxY0, boxY1 float64
	polylines    []polyline
	outline      []vec.Vec2
}

// NewRasteriser returns a rasteriser for the given device clip rectangle.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters, keeping buffer capacity.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.Dash = nil
	r.DashPhase = 0
}

// FillNonZero rasterises p with the nonzero winding rule.  Coverage is
// passed row by row to emit; the slice is only valid during the call.
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	r.walkPath(p)
	r.scan(true, emit)
}

// FillEvenOdd rasterises p with the even-odd rule.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	r.walkPath(p)
	r.scan(false, emit)
}

func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.haveBox = false
}

// walkPath adds the edges of all subpaths of p.  Open subpaths are
// closed implicitly.
func (r *Rasteriser) walkPath(p *path.Data) {
	var cur, start vec.Vec2
	open := false
	idx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open && cur != start {
				r.addEdge(cur, start)
			}
			cur = p.Coords[idx]
			start = cur
			open = true
			idx++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[idx])
			cur = p.Coords[idx]
			idx++
		case path.CmdQuadTo:
			c, end := p.Coords[idx], p.Coords[idx+1]
			// degree elevation
			c1 := cur.Add(c.Sub(cur).Mul(2.0 / 3))
			c2 := end.Add(c.Sub(end).Mul(2.0 / 3))
			r.flattenCubic(cur, c1, c2, end, r.addEdge)
			cur = end
			idx += 2
		case path.CmdCubeTo:
			end := p.Coords[idx+2]
			r.flattenCubic(cur, p.Coords[idx], p.Coords[idx+1], end, r.addEdge)
			cur = end
			idx += 3
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
	if open && cur != start {
		r.addEdge(cur, start)
	}
}

// addPolygon adds the closed polygon pts, given in user space.
func (r *Rasteriser) addPolygon(pts []vec.Vec2) {
	if len(pts) < 3 {
		return
	}
	prev := pts[len(pts)-1]
	for _, p := range pts {
		r.addEdge(prev, p)
		prev = p
	}
}

// addEdge transforms a user space segment to device space and records
// it.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	m := r.CTM
	x0 := m[0]*a.X + m[2]*a.Y + m[4]
	y0 := m[1]*a.X + m[3]*a.Y + m[5]
	x1 := m[0]*b.X + m[2]*b.Y + m[4]
	y1 := m[1]*b.X + m[3]*b.Y + m[5]

	if !r.haveBox {
		r.boxX0, r.boxX1 = min(x0, x1), max(x0, x1)
		r.boxY0, r.boxY1 = min(y0, y1), max(y0, y1)
		r.haveBox = true
	} else {
		r.boxX0 = min(r.boxX0, x0, x1)
		r.boxX1 = max(r.boxX1, x0, x1)
		r.boxY0 = min(r.boxY0, y0, y1)
		r.boxY1 = max(r.boxY1, y0, y1)
	}

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	e := edge{dir: 1}
	if dy < 0 {
		x0, y0, x1, y1 = x1, y1, x0, y0
		e.dir = -1
	}
	e.xTop, e.yTop, e.yBot = x0, y0, y1
	e.dxdy = (x1 - x0) / (y1 - y0)
	r.edges = append(r.edges, e)
}

// transformLinear applies the linear part of the CTM.
func (r *Rasteriser) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments,
// choosing the number of segments with Wang's formula in device space.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))
	m := max(d1.Length(), d2.Length())
	n := 1
	if m > 0 {
		n = max(1, int(math.Ceil(math.Sqrt(3*m/(4*r.Flatness)))))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s * s).Add(p1.Mul(3 * s * s * t)).Add(p2.Mul(3 * s * t * t)).Add(p3.Mul(t * t * t))
		emit(prev, q)
		prev = q
	}
}

// scan runs the active edge list over all rows of the bounding box.
func (r *Rasteriser) scan(nonZero bool, emit func(y, xMin int, coverage []float32)) {
	if len(r.edges) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.boxX0)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.boxX1))+1, int(math.Ceil(r.Clip.URx)))
	yMin := max(int(math.Floor(r.boxY0)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.boxY1))+1, int(math.Ceil(r.Clip.URy)))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yTop, b.yTop)
	})
	r.active = r.active[:0]
	next := 0
	for next < len(r.edges) && r.edges[next].yBot <= float64(yMin) {
		next++
	}

	for y := yMin; y < yMax; y++ {
		top := float64(y)
		for next < len(r.edges) && r.edges[next].yTop < top+1 {
			if r.edges[next].yBot > top {
				r.active = append(r.active, next)
			}
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		kept := r.active[:0]
		for _, i := range r.active {
			e := &r.edges[i]
			if e.yBot <= top {
				continue
			}
			r.accumulate(e, y, xMin, xMax)
			kept = append(kept, i)
		}
		r.active = kept

		if nonZero {
			integrateNonZero(r.cover, r.area)
		} else {
			integrateEvenOdd(r.cover, r.area)
		}
		if row, off := trimZeros(r.cover); row != nil {
			emit(y, xMin+off, row)
		}
	}
}

// accumulate adds the contribution of e within row y to the cover and
// area buffers.
//
// For a piece of an edge with vertical extent dy inside pixel column i,
// every pixel right of i is covered by dy, and pixel i itself by the
// fraction of the pixel right of the edge.  The running sum of cover
// plus the area of the current pixel gives the signed coverage.
func (r *Rasteriser) accumulate(e *edge, y, xMin, xMax int) {
	ya := max(float64(y), e.yTop)
	yb := min(float64(y+1), e.yBot)
	if yb <= ya {
		return
	}
	xa := e.xAt(ya)
	xb := e.xAt(yb)

	r.crossings = append(r.crossings[:0], ya)
	lo, hi := min(xa, xb), max(xa, xb)
	first := int(math.Floor(lo)) + 1
	last := int(math.Ceil(hi)) - 1
	if first <= last {
		if xb > xa {
			for x := first; x <= last; x++ {
				r.crossings = append(r.crossings, ya+(float64(x)-xa)/e.dxdy)
			}
		} else {
			for x := last; x >= first; x-- {
				r.crossings = append(r.crossings, ya+(float64(x)-xa)/e.dxdy)
			}
		}
	}
	r.crossings = append(r.crossings, yb)

	for k := 1; k < len(r.crossings); k++ {
		y0, y1 := r.crossings[k-1], r.crossings[k]
		if y1 <= y0 {
			continue
		}
		dy := e.dir * float32(y1-y0)
		xm := e.xAt((y0 + y1) / 2)
		col := int(math.Floor(xm))
		switch {
		case col < xMin:
			r.cover[0] += dy
			r.area[0] += dy
		case col < xMax:
			i := col - xMin
			r.cover[i] += dy
			r.area[i] += dy * float32(1-(xm-float64(col)))
		}
	}
}

// integrateNonZero turns cover and area into coverage values, in place.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// integrateEvenOdd turns cover and area into coverage values, in place.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		v -= 2 * float32(math.Floor(float64(v/2)))
		if v > 1 {
			v = 2 - v
		}
		cover[i] = v
	}
}

// trimZeros returns the part of coverage between the first and last
// non-zero entries, together with its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] <= coverageEpsilon {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage)
	for hi > lo && coverage[hi-1] <= coverageEpsilon {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	defaultFlatness   = 0.25
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the smallest vertical extent of an
	// edge which contributes coverage.
	horizontalEdgeThreshold = 1e-10

	// coverageEpsilon absorbs rounding noise left by the integration.
	coverageEpsilon = 1e-6
)
