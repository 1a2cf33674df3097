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
	"math"

	"seehuhn.de/go/geom/vec"
)

// Rounding selects how the number of chords of an arc is determined.
type Rounding int

const (
	// RoundArc adds a chord unless the remaining angle can be absorbed
	// by widening all chords by less than 1/119 of their angle.
	RoundArc Rounding = iota

	// RoundWedge uses the nearest whole number of chords.
	RoundWedge

	// RoundCircle rounds up, tolerating an excess of 1/119 chord.
	RoundCircle
)

type arcOptions struct {
	Closed   bool
	Stroked  bool
	Rounding Rounding

	// UpdateResidue is false for figures which restart the line type
	// pattern.  Such arcs are stroked on their own.
	UpdateResidue bool

	// End, if set, replaces the computed final point.  This avoids gaps
	// from rounding errors.
	End *vec.Vec2
}

// chordCount returns the number of chords for an arc, given the
// absolute sweep and chord angles in degrees.
func chordCount(sweep, chord float64, policy Rounding) int {
	q := sweep / chord
	var n int
	switch policy {
	case RoundWedge:
		n = int(math.Round(q))
	case RoundCircle:
		n = int(math.Ceil(q - chordTolerance))
	default:
		n = int(math.Floor(q))
		rem := sweep - float64(n)*chord
		if n == 0 || rem > chordTolerance*float64(n)*chord {
			n++
		}
	}
	return max(n, 1)
}

// drawArc draws an arc around center, starting at the current point.
// Angles are in degrees; positive sweeps run counterclockwise in
// plotter space.
func (i *Interpreter) drawArc(center vec.Vec2, chord, sweep float64, opt arcOptions) error {
	if math.Abs(sweep) < minSweep || chord < minChordAngle {
		return nil
	}
	chord = min(chord, maxChordAngle)

	if !opt.UpdateResidue && !i.inBuffer() {
		if err := i.flushPath(); err != nil {
			return err
		}
		i.env.LineFill.Residue = 0
	}

	start := i.currentPoint()
	v := start.Sub(center)
	n := chordCount(math.Abs(sweep), chord, opt.Rounding)
	step := sweep / float64(n) * math.Pi / 180
	s, c := math.Sincos(step)

	lf := &i.env.LineFill
	sym := lf.Symbol
	lf.Symbol = 0
	for k := 1; k <= n; k++ {
		v = vec.Vec2{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y}
		p := center.Add(v)
		if k == n {
			lf.Symbol = sym
			if opt.End != nil {
				p = *opt.End
			}
		}
		i.lineTo(p, opt.Stroked)
	}
	lf.Symbol = sym

	if opt.Closed {
		i.closePath()
	}
	if !opt.UpdateResidue && !i.inBuffer() {
		if err := i.flushPath(); err != nil {
			return err
		}
		i.env.LineFill.Residue = 0
	}
	return nil
}

// chordAngle returns the chord angle in degrees for an arc of the given
// radius in plotter units.  The parameter is an angle or, after CT1, a
// maximum deviation in job units.
func (i *Interpreter) chordAngle(param float64, given bool, radius float64) float64 {
	if !given {
		return defaultChordAngle
	}
	if i.env.Technical.Chord == ChordAngle {
		return math.Min(math.Abs(param), maxChordAngle)
	}

	d := math.Abs(i.env.Ctms.JobToPlotter(vec.Vec2{X: param}, true).X)
	if radius <= 0 || d <= 0 {
		return defaultChordAngle
	}
	if d >= radius {
		return maxChordAngle
	}
	return 2 * math.Acos(1-d/radius) * 180 / math.Pi
}

// draw3PointArc draws the arc from the current point through inter to
// end.  Degenerate cases fall back to a straight line to end.
func (i *Interpreter) draw3PointArc(inter, end vec.Vec2, chordParam float64, chordGiven bool) error {
	start := i.currentPoint()

	if start == end {
		if inter == start {
			i.lineTo(end, true)
			return nil
		}
		// the full circle with diameter start-inter
		center := start.Add(inter).Mul(0.5)
		chord := i.chordAngle(chordParam, chordGiven, inter.Sub(start).Length()/2)
		return i.drawArc(center, chord, 360, arcOptions{
			Stroked:       true,
			UpdateResidue: true,
			Rounding:      RoundArc,
			End:           &end,
		})
	}
	if inter == start || inter == end {
		i.lineTo(end, true)
		return nil
	}

	a := inter.Sub(start)
	b := end.Sub(inter)
	turn := a.X*b.Y - a.Y*b.X
	scale := a.Length() * b.Length()
	if math.Abs(turn) <= colinearTolerance*scale {
		// colinear points, including the case of two opposite rays
		i.lineTo(end, true)
		return nil
	}

	center, ok := arcCenter(start, inter, end)
	if !ok {
		i.lineTo(end, true)
		return nil
	}
	sweep := vectorAngle(start.Sub(center), end.Sub(center))
	if turn > 0 && sweep <= 0 {
		sweep += 360
	} else if turn < 0 && sweep >= 0 {
		sweep -= 360
	}

	chord := i.chordAngle(chordParam, chordGiven, start.Sub(center).Length())
	return i.drawArc(center, chord, sweep, arcOptions{
		Stroked:       true,
		UpdateResidue: true,
		Rounding:      RoundArc,
		End:           &end,
	})
}

// arcCenter returns the centre of the circle through a, b and c, as the
// intersection of the perpendicular bisectors of the chords a-b and
// b-c.
func arcCenter(a, b, c vec.Vec2) (vec.Vec2, bool) {
	m1 := a.Add(b).Mul(0.5)
	m2 := b.Add(c).Mul(0.5)
	d1 := b.Sub(a)
	d2 := c.Sub(b)

	switch {
	case d1.Y == 0 && d2.X == 0:
		return vec.Vec2{X: m1.X, Y: m2.Y}, true
	case d1.X == 0 && d2.Y == 0:
		return vec.Vec2{X: m2.X, Y: m1.Y}, true
	case d1.Y == 0:
		// horizontal chord: the bisector is vertical
		x := m1.X
		return vec.Vec2{X: x, Y: m2.Y - (x-m2.X)*d2.X/d2.Y}, true
	case d2.Y == 0:
		x := m2.X
		return vec.Vec2{X: x, Y: m1.Y - (x-m1.X)*d1.X/d1.Y}, true
	case d1.X == 0:
		// vertical chord: the bisector is horizontal
		y := m1.Y
		return vec.Vec2{X: m2.X - (y-m2.Y)*d2.Y/d2.X, Y: y}, true
	case d2.X == 0:
		y := m2.Y
		return vec.Vec2{X: m1.X - (y-m1.Y)*d1.Y/d1.X, Y: y}, true
	}

	// d1·p = d1·m1 and d2·p = d2·m2, solved by Cramer's rule
	det := d1.X*d2.Y - d1.Y*d2.X
	if det == 0 {
		return vec.Vec2{}, false
	}
	r1 := d1.Dot(m1)
	r2 := d2.Dot(m2)
	return vec.Vec2{
		X: (r1*d2.Y - d1.Y*r2) / det,
		Y: (d1.X*r2 - r1*d2.X) / det,
	}, true
}

// vectorAngle returns the signed angle from u to v in degrees, in the
// range (-180, 180].  The half-angle formula stays accurate for angles
// close to 0 and 180 degrees.
func vectorAngle(u, v vec.Vec2) float64 {
	lu, lv := u.Length(), v.Length()
	if lu == 0 || lv == 0 {
		return 0
	}
	x := u.Mul(lv)
	y := v.Mul(lu)
	theta := 2 * math.Atan2(x.Sub(y).Length(), x.Add(y).Length()) * 180 / math.Pi
	if u.X*v.Y-u.Y*v.X < 0 {
		theta = -theta
	}
	return theta
}

const (
	defaultChordAngle = 5.0
	minChordAngle     = 0.5
	maxChordAngle     = 180.0
	minSweep          = 1e-9

	// chordTolerance is the relative amount by which chords may be
	// widened or narrowed to fit the sweep.
	chordTolerance = 1.0 / 119

	colinearTolerance = 1e-9
)
