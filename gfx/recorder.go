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

// OpKind identifies a recorded painting operation.
type OpKind int

const (
	OpFill OpKind = iota
	OpStroke
	OpGlyph
)

func (k OpKind) String() string {
	switch k {
	case OpFill:
		return "fill"
	case OpStroke:
		return "stroke"
	case OpGlyph:
		return "glyph"
	default:
		return "unknown"
	}
}

// Op is one painting operation captured by a Recorder.
type Op struct {
	Kind  OpKind
	Path  *path.Data // nil for glyphs
	State DrawState

	Line LineParams // strokes only
	Fill FillParams // fills only

	// Glyphs only.
	Char   byte
	Origin vec.Vec2
	Text   TextAttrs
}

// Points returns the end points of all path segments, in user space.
// Closing segments contribute the start of their subpath.
func (op *Op) Points() []vec.Vec2 {
	if op.Path == nil {
		return nil
	}
	var pts []vec.Vec2
	var start vec.Vec2
	idx := 0
	for _, cmd := range op.Path.Cmds {
		n := coordCount(cmd)
		if n > 0 {
			p := op.Path.Coords[idx+n-1]
			if cmd == path.CmdMoveTo {
				start = p
			}
			pts = append(pts, p)
		} else {
			pts = append(pts, start)
		}
		idx += n
	}
	return pts
}

// Recorder is a Painter which stores all operations for later
// inspection.
type Recorder struct {
	Ops []Op
}

// Fill implements the Painter interface.
func (r *Recorder) Fill(d *path.Data, ds *DrawState, fp *FillParams) error {
	r.Ops = append(r.Ops, Op{
		Kind:  OpFill,
		Path:  clonePath(d),
		State: *ds,
		Fill:  *fp,
	})
	return nil
}

// Stroke implements the Painter interface.
func (r *Recorder) Stroke(d *path.Data, ds *DrawState, lp *LineParams) error {
	r.Ops = append(r.Ops, Op{
		Kind:  OpStroke,
		Path:  clonePath(d),
		State: *ds,
		Line:  lp.Clone(),
	})
	return nil
}

// Glyph implements the GlyphPainter interface.
func (r *Recorder) Glyph(origin vec.Vec2, ch byte, ds *DrawState, t *TextAttrs) error {
	r.Ops = append(r.Ops, Op{
		Kind:   OpGlyph,
		State:  *ds,
		Char:   ch,
		Origin: origin,
		Text:   *t,
	})
	return nil
}

// Count returns the number of recorded operations of the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for i := range r.Ops {
		if r.Ops[i].Kind == kind {
			n++
		}
	}
	return n
}

// Reset discards all recorded operations.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

func clonePath(d *path.Data) *path.Data {
	return &path.Data{
		Cmds:   append([]path.Command(nil), d.Cmds...),
		Coords: append([]vec.Vec2(nil), d.Coords...),
	}
}
