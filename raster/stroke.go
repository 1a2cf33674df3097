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
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// polyline is a flattened subpath in user space.
type polyline struct {
	pts     []vec.Vec2
	closed  bool
	tangent vec.Vec2 // direction of zero-length dashes
}

// Stroke rasterises the outline of p using Width, Cap, Join, MiterLimit,
// Dash and DashPhase.  Coverage is passed row by row to emit.
//
// The outline is assembled from one polygon per segment, join and cap,
// all oriented the same way, and filled with the nonzero rule so that
// overlaps are painted once.
func (r *Rasteriser) Stroke(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.flatten(p)
	lines := r.polylines
	if len(r.Dash) > 0 {
		lines = r.dashPolylines(lines)
	}

	scale := math.Sqrt(math.Abs(r.CTM[0]*r.CTM[3] - r.CTM[1]*r.CTM[2]))
	width := r.Width
	if scale > 0 {
		width = max(width, minDeviceWidth/scale)
	}
	half := width / 2

	r.beginEdges()
	for _, pl := range lines {
		r.strokePolyline(pl, half)
	}
	r.scan(true, emit)
}

// flatten converts p into polylines, replacing curves by chords.
func (r *Rasteriser) flatten(p *path.Data) {
	r.polylines = r.polylines[:0]
	var cur, start vec.Vec2
	var pts []vec.Vec2
	finish := func(closed bool) {
		if len(pts) > 0 {
			r.polylines = append(r.polylines, polyline{pts: pts, closed: closed})
		}
		pts = nil
	}
	ensure := func() {
		if len(pts) == 0 {
			pts = append(pts, cur)
			start = cur
		}
	}

	idx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			cur = p.Coords[idx]
			start = cur
			pts = []vec.Vec2{cur}
			idx++
		case path.CmdLineTo:
			ensure()
			cur = p.Coords[idx]
			pts = append(pts, cur)
			idx++
		case path.CmdQuadTo:
			ensure()
			c, end := p.Coords[idx], p.Coords[idx+1]
			c1 := cur.Add(c.Sub(cur).Mul(2.0 / 3))
			c2 := end.Add(c.Sub(end).Mul(2.0 / 3))
			r.flattenCubic(cur, c1, c2, end, func(_, b vec.Vec2) {
				pts = append(pts, b)
			})
			cur = end
			idx += 2
		case path.CmdCubeTo:
			ensure()
			end := p.Coords[idx+2]
			r.flattenCubic(cur, p.Coords[idx], p.Coords[idx+1], end, func(_, b vec.Vec2) {
				pts = append(pts, b)
			})
			cur = end
			idx += 3
		case path.CmdClose:
			if len(pts) > 1 && pts[len(pts)-1] == start {
				pts = pts[:len(pts)-1]
			}
			finish(len(pts) > 1)
			cur = start
		}
	}
	finish(false)
}

// dashPolylines splits polylines into dashes.  Every subpath starts at
// the dash phase.
func (r *Rasteriser) dashPolylines(in []polyline) []polyline {
	var total float64
	for _, d := range r.Dash {
		if d < 0 {
			return in
		}
		total += d
	}
	if total <= 0 {
		return in
	}

	var out []polyline
	for _, pl := range in {
		pts := pl.pts
		if pl.closed && len(pts) > 1 {
			pts = append(slices.Clone(pts), pts[0])
		}
		if len(pts) < 2 {
			out = append(out, pl)
			continue
		}

		i := 0
		on := true
		phase := math.Mod(r.DashPhase, total)
		if phase < 0 {
			phase += total
		}
		for phase > r.Dash[i] {
			phase -= r.Dash[i]
			i = (i + 1) % len(r.Dash)
			on = !on
		}
		remaining := r.Dash[i] - phase

		var dash []vec.Vec2
		if on {
			dash = []vec.Vec2{pts[0]}
		}
		var t vec.Vec2
		for s := 0; s+1 < len(pts); s++ {
			a, b := pts[s], pts[s+1]
			segLen := b.Sub(a).Length()
			if segLen < zeroLengthThreshold {
				continue
			}
			t = b.Sub(a).Mul(1 / segLen)
			pos := 0.0
			for remaining <= segLen-pos {
				pos += remaining
				q := a.Add(t.Mul(pos))
				if on {
					if remaining > 0 || r.Dash[i] == 0 {
						dash = append(dash, q)
						out = append(out, polyline{pts: dash, tangent: t})
					}
					dash = nil
				}
				i = (i + 1) % len(r.Dash)
				on = !on
				remaining = r.Dash[i]
				if on {
					dash = []vec.Vec2{q}
				}
			}
			remaining -= segLen - pos
			if on {
				dash = append(dash, b)
			}
		}
		if on && len(dash) > 1 {
			out = append(out, polyline{pts: dash, tangent: t})
		}
	}
	return out
}

// strokePolyline adds the outline polygons of one polyline.
func (r *Rasteriser) strokePolyline(pl polyline, half float64) {
	pts := make([]vec.Vec2, 0, len(pl.pts))
	for _, p := range pl.pts {
		if len(pts) == 0 || p.Sub(pts[len(pts)-1]).Length() >= zeroLengthThreshold {
			pts = append(pts, p)
		}
	}
	closed := pl.closed
	if closed && len(pts) > 1 && pts[0].Sub(pts[len(pts)-1]).Length() < zeroLengthThreshold {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 2 {
		if len(pts) == 1 {
			r.addDot(pts[0], pl.tangent, half)
		}
		return
	}
	if len(pts) == 2 {
		closed = false
	}

	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	for i := range segs {
		r.addSegment(pts[i], pts[(i+1)%n], half)
	}

	tangent := func(i int) vec.Vec2 {
		d := pts[(i+1)%n].Sub(pts[i])
		return d.Mul(1 / d.Length())
	}
	if closed {
		for i := range n {
			prev := (i + n - 1) % n
			r.addJoin(pts[i], tangent(prev), tangent(i), half)
		}
		return
	}
	for i := 1; i < n-1; i++ {
		r.addJoin(pts[i], tangent(i-1), tangent(i), half)
	}
	r.addCap(pts[0], tangent(0).Mul(-1), half)
	r.addCap(pts[n-1], tangent(n-2), half)
}

func (r *Rasteriser) addSegment(a, b vec.Vec2, half float64) {
	d := b.Sub(a)
	t := d.Mul(1 / d.Length())
	nrm := vec.Vec2{X: -t.Y, Y: t.X}.Mul(half)
	r.addOriented(a.Sub(nrm), b.Sub(nrm), b.Add(nrm), a.Add(nrm))
}

// addJoin adds the join between two segments meeting at v with unit
// tangents t1 and t2.
func (r *Rasteriser) addJoin(v, t1, t2 vec.Vec2, half float64) {
	cross := t1.X*t2.Y - t1.Y*t2.X
	if math.Abs(cross) < collinearityThreshold && t1.Dot(t2) > 0 {
		return
	}
	if r.Join == graphics.LineJoinRound {
		r.addCircle(v, half)
		return
	}

	// normals pointing to the outer side of the corner
	n1 := vec.Vec2{X: -t1.Y, Y: t1.X}
	n2 := vec.Vec2{X: -t2.Y, Y: t2.X}
	if cross > 0 {
		n1, n2 = n1.Mul(-1), n2.Mul(-1)
	}
	a := v.Add(n1.Mul(half))
	b := v.Add(n2.Mul(half))

	if r.Join == graphics.LineJoinMiter {
		m := n1.Add(n2)
		ml := m.Length()
		if ml > 1e-12 && 2/ml <= r.MiterLimit {
			tip := v.Add(m.Mul(2 * half / (ml * ml)))
			r.addOriented(v, a, tip, b)
			return
		}
	}
	r.addOriented(v, a, b)
}

// addCap adds a line cap at p; t is the outward unit tangent.
func (r *Rasteriser) addCap(p, t vec.Vec2, half float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addCircle(p, half)
	case graphics.LineCapSquare:
		nrm := vec.Vec2{X: -t.Y, Y: t.X}.Mul(half)
		ext := t.Mul(half)
		r.addOriented(p.Add(nrm), p.Add(nrm).Add(ext), p.Sub(nrm).Add(ext), p.Sub(nrm))
	}
}

// addDot draws a zero-length subpath.  Butt caps leave no mark.
func (r *Rasteriser) addDot(p, t vec.Vec2, half float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addCircle(p, half)
	case graphics.LineCapSquare:
		if t == (vec.Vec2{}) {
			t = vec.Vec2{X: 1}
		}
		nrm := vec.Vec2{X: -t.Y, Y: t.X}.Mul(half)
		ext := t.Mul(half)
		r.addOriented(
			p.Sub(ext).Sub(nrm), p.Add(ext).Sub(nrm),
			p.Add(ext).Add(nrm), p.Sub(ext).Add(nrm))
	}
}

// addCircle adds a polygonal circle whose chords deviate from the true
// circle by at most the flatness, in device space.
func (r *Rasteriser) addCircle(c vec.Vec2, radius float64) {
	scale := math.Sqrt(math.Abs(r.CTM[0]*r.CTM[3] - r.CTM[1]*r.CTM[2]))
	rDev := radius * scale
	n := minCircleSegments
	if rDev > r.Flatness {
		n = int(math.Ceil(math.Pi / math.Acos(1-r.Flatness/rDev)))
	}
	n = min(max(n, minCircleSegments), maxCircleSegments)

	r.outline = r.outline[:0]
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.outline = append(r.outline, c.Add(vec.Vec2{X: math.Cos(phi), Y: math.Sin(phi)}.Mul(radius)))
	}
	r.addPolygon(r.outline)
}

// addOriented adds a polygon after making it counterclockwise, so that
// all outline pieces wind the same way.
func (r *Rasteriser) addOriented(pts ...vec.Vec2) {
	var area float64
	prev := pts[len(pts)-1]
	for _, p := range pts {
		area += prev.X*p.Y - p.X*prev.Y
		prev = p
	}
	if area < 0 {
		slices.Reverse(pts)
	}
	r.addPolygon(pts)
}

const (
	// minDeviceWidth is the width of the thinnest visible line, in
	// device pixels.
	minDeviceWidth = 1.0

	// zeroLengthThreshold is the minimum length of a stroked segment.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold detects joins which need no geometry.
	collinearityThreshold = 1e-6

	minCircleSegments = 8
	maxCircleSegments = 512
)
