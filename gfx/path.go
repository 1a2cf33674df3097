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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Path is a path under construction.  In addition to the geometry, every
// segment carries a flag which tells whether the segment is stroked.
// Unstroked segments take part in fills but are skipped when the path is
// stroked.
//
// Moves are only recorded once a segment is drawn from the new point, so
// that consecutive moves collapse and trailing moves vanish.
type Path struct {
	cmds      []path.Command
	coords    []vec.Vec2
	unstroked []bool // one entry per command

	cur     vec.Vec2
	start   vec.Vec2
	hasCur  bool
	pending bool // cur has not been emitted as a MoveTo yet
}

// MoveTo starts a new subpath at p.
func (p *Path) MoveTo(pt vec.Vec2) {
	p.cur = pt
	p.start = pt
	p.hasCur = true
	p.pending = true
}

// LineTo appends a straight segment.  Without a current point, LineTo
// acts like MoveTo.
func (p *Path) LineTo(pt vec.Vec2, stroked bool) {
	if !p.emitMove() {
		p.MoveTo(pt)
		return
	}
	p.add(path.CmdLineTo, !stroked, pt)
	p.cur = pt
}

// CurveTo appends a cubic Bézier segment.
func (p *Path) CurveTo(c1, c2, pt vec.Vec2, stroked bool) {
	if !p.emitMove() {
		p.MoveTo(pt)
		return
	}
	p.add(path.CmdCubeTo, !stroked, c1, c2, pt)
	p.cur = pt
}

// Close closes the current subpath.  Closing an empty or already closed
// subpath has no effect.
func (p *Path) Close() {
	if !p.hasCur || p.pending {
		return
	}
	p.add(path.CmdClose, false)
	p.cur = p.start
	p.pending = true
}

// CurrentPoint returns the current point of the path.
func (p *Path) CurrentPoint() (vec.Vec2, bool) {
	return p.cur, p.hasCur
}

// Reset removes all segments and the current point.
func (p *Path) Reset() {
	p.cmds = p.cmds[:0]
	p.coords = p.coords[:0]
	p.unstroked = p.unstroked[:0]
	p.hasCur = false
	p.pending = false
	p.cur = vec.Vec2{}
	p.start = vec.Vec2{}
}

// IsEmpty reports whether the path contains no segments.
func (p *Path) IsEmpty() bool {
	return len(p.cmds) == 0
}

// Subpaths returns the number of subpaths which contain segments.
func (p *Path) Subpaths() int {
	n := 0
	for _, c := range p.cmds {
		if c == path.CmdMoveTo {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the path.
func (p *Path) Clone() Path {
	q := *p
	q.cmds = append([]path.Command(nil), p.cmds...)
	q.coords = append([]vec.Vec2(nil), p.coords...)
	q.unstroked = append([]bool(nil), p.unstroked...)
	return q
}

// FillData returns the geometry of all segments, for filling.
func (p *Path) FillData() *path.Data {
	return &path.Data{
		Cmds:   append([]path.Command(nil), p.cmds...),
		Coords: append([]vec.Vec2(nil), p.coords...),
	}
}

// StrokeData returns the geometry to be stroked.  Unstroked segments are
// replaced by moves.  If a subpath was interrupted this way, its closing
// segment becomes an ordinary line.
func (p *Path) StrokeData() *path.Data {
	d := &path.Data{}
	var cur, start vec.Vec2
	broken := false
	idx := 0
	for i, cmd := range p.cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = p.coords[idx]
			start = cur
			broken = false
			appendCmd(d, path.CmdMoveTo, cur)
			idx++
		case path.CmdLineTo:
			cur = p.coords[idx]
			if p.unstroked[i] {
				appendCmd(d, path.CmdMoveTo, cur)
				broken = true
			} else {
				appendCmd(d, path.CmdLineTo, cur)
			}
			idx++
		case path.CmdCubeTo:
			pts := p.coords[idx : idx+3]
			cur = pts[2]
			if p.unstroked[i] {
				appendCmd(d, path.CmdMoveTo, cur)
				broken = true
			} else {
				appendCmd(d, path.CmdCubeTo, pts...)
			}
			idx += 3
		case path.CmdClose:
			if broken {
				if cur != start {
					appendCmd(d, path.CmdLineTo, start)
				}
			} else {
				appendCmd(d, path.CmdClose)
			}
			cur = start
		}
	}
	return trimMoves(d)
}

// StrokedLength returns the total length of the stroked segments,
// including closing segments.  Curves are measured along a polygonal
// approximation.
func (p *Path) StrokedLength() float64 {
	var total float64
	d := p.StrokeData()
	var cur, start vec.Vec2
	idx := 0
	for _, cmd := range d.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = d.Coords[idx]
			start = cur
			idx++
		case path.CmdLineTo:
			total += d.Coords[idx].Sub(cur).Length()
			cur = d.Coords[idx]
			idx++
		case path.CmdCubeTo:
			c1, c2, end := d.Coords[idx], d.Coords[idx+1], d.Coords[idx+2]
			prev := cur
			for i := 1; i <= curveLengthSteps; i++ {
				t := float64(i) / curveLengthSteps
				q := bezier(cur, c1, c2, end, t)
				total += q.Sub(prev).Length()
				prev = q
			}
			cur = end
			idx += 3
		case path.CmdClose:
			total += start.Sub(cur).Length()
			cur = start
		}
	}
	return total
}

// emitMove writes a pending move, and reports whether the path has a
// current point.
func (p *Path) emitMove() bool {
	if !p.hasCur {
		return false
	}
	if p.pending {
		p.add(path.CmdMoveTo, false, p.cur)
		p.start = p.cur
		p.pending = false
	}
	return true
}

func (p *Path) add(cmd path.Command, unstroked bool, pts ...vec.Vec2) {
	p.cmds = append(p.cmds, cmd)
	p.coords = append(p.coords, pts...)
	p.unstroked = append(p.unstroked, unstroked)
}

func appendCmd(d *path.Data, cmd path.Command, pts ...vec.Vec2) {
	d.Cmds = append(d.Cmds, cmd)
	d.Coords = append(d.Coords, pts...)
}

// trimMoves removes moves which are immediately followed by another move
// or which end the path.
func trimMoves(d *path.Data) *path.Data {
	out := &path.Data{}
	idx := 0
	for i, cmd := range d.Cmds {
		n := coordCount(cmd)
		pts := d.Coords[idx : idx+n]
		idx += n
		if cmd == path.CmdMoveTo && (i+1 == len(d.Cmds) || d.Cmds[i+1] == path.CmdMoveTo) {
			continue
		}
		appendCmd(out, cmd, pts...)
	}
	return out
}

func coordCount(cmd path.Command) int {
	switch cmd {
	case path.CmdMoveTo, path.CmdLineTo:
		return 1
	case path.CmdQuadTo:
		return 2
	case path.CmdCubeTo:
		return 3
	default:
		return 0
	}
}

func bezier(p0, p1, p2, p3 vec.Vec2, t float64) vec.Vec2 {
	s := 1 - t
	return p0.Mul(s * s * s).Add(p1.Mul(3 * s * s * t)).Add(p2.Mul(3 * s * t * t)).Add(p3.Mul(t * t * t))
}

// curveLengthSteps is the number of chords used to measure a curve.
const curveLengthSteps = 16
