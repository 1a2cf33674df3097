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

	"seehuhn.de/go/hpgl/scan"
)

// plotPoints reads coordinate pairs and moves the pen through them.
// It returns the number of pairs read.
func (i *Interpreter) plotPoints(op string) (int, error) {
	count := 0
	for {
		p, res := i.sc.Point()
		if res == scan.NotFound {
			break
		} else if res == scan.Invalid {
			i.syntax(op, res)
			break
		}
		count++

		relative := i.env.Vector.Mode == Relative
		if relative && i.env.Print.Lost {
			continue
		}
		q := i.toPlotter(p, relative)
		if tooLarge(q) {
			i.enterLost(op)
			i.sc.Recover()
			break
		}
		if !relative {
			i.env.Print.Lost = false
		}
		i.lineTo(q, true)
	}
	return count, i.endDrawing()
}

func (i *Interpreter) opPA() error {
	i.env.Vector.Mode = Absolute
	_, err := i.plotPoints("PA")
	return err
}

func (i *Interpreter) opPR() error {
	i.env.Vector.Mode = Relative
	_, err := i.plotPoints("PR")
	return err
}

func (i *Interpreter) opPU() error {
	if err := i.flushPath(); err != nil {
		return err
	}
	i.env.Vector.Pen = PenUp
	_, err := i.plotPoints("PU")
	return err
}

func (i *Interpreter) opPD() error {
	i.env.Vector.Pen = PenDown
	n, err := i.plotPoints("PD")
	if err != nil {
		return err
	}
	if n == 0 && !i.env.Polygon.Enabled && !i.env.Print.Lost {
		i.env.Print.DotCandidate = true
	}
	return nil
}

// opCI draws a circle around the pen position.  The pen returns to the
// centre and the line type pattern restarts.
func (i *Interpreter) opCI() error {
	var args [2]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found || n == 0 {
		i.syntax("CI", res)
		return nil
	}

	center := i.currentPoint()
	rv := i.env.Ctms.JobToPlotter(vec.Vec2{X: args[0]}, true)
	radius := rv.Length()
	if radius == 0 {
		return nil
	}
	chord := i.chordAngle(args[1], n > 1, radius)

	savedPen := i.env.Vector.Pen
	if !i.inBuffer() {
		if err := i.flushPath(); err != nil {
			return err
		}
	}
	start := center.Add(rv)
	i.moveTo(start)
	i.env.Vector.Pen = PenDown
	err := i.drawArc(center, chord, 360*i.env.Ctms.Orientation(), arcOptions{
		Closed:   true,
		Stroked:  true,
		Rounding: RoundCircle,
		End:      &start,
	})
	i.env.Vector.Pen = savedPen
	if err != nil {
		return err
	}
	i.moveTo(center)
	return nil
}

// arcParams reads the parameters of AA and AR: a centre, the sweep
// angle and an optional chord tolerance.
func (i *Interpreter) arcParams(op string, relative bool) error {
	var args [4]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found || n < 3 {
		i.syntax(op, res)
		return nil
	}

	center := i.toPlotter(vec.Vec2{X: args[0], Y: args[1]}, relative)
	if tooLarge(center) {
		i.enterLost(op)
		return nil
	}
	radius := i.currentPoint().Sub(center).Length()
	if radius == 0 {
		return nil
	}
	chord := i.chordAngle(args[3], n > 3, radius)
	sweep := math.Max(-360, math.Min(360, args[2])) * i.env.Ctms.Orientation()
	err := i.drawArc(center, chord, sweep, arcOptions{
		Stroked:       true,
		UpdateResidue: true,
		Rounding:      RoundArc,
	})
	if err != nil {
		return err
	}
	return i.endDrawing()
}

func (i *Interpreter) opAA() error { return i.arcParams("AA", false) }

func (i *Interpreter) opAR() error { return i.arcParams("AR", true) }

// arc3Params reads the parameters of AT and RT.
func (i *Interpreter) arc3Params(op string, relative bool) error {
	var args [5]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found || n < 4 {
		i.syntax(op, res)
		return nil
	}
	inter := i.toPlotter(vec.Vec2{X: args[0], Y: args[1]}, relative)
	end := i.toPlotter(vec.Vec2{X: args[2], Y: args[3]}, relative)
	if tooLarge(inter) || tooLarge(end) {
		i.enterLost(op)
		return nil
	}
	if err := i.draw3PointArc(inter, end, args[4], n > 4); err != nil {
		return err
	}
	return i.endDrawing()
}

func (i *Interpreter) opAT() error { return i.arc3Params("AT", false) }

func (i *Interpreter) opRT() error { return i.arc3Params("RT", true) }

// bezier reads groups of three control points and draws cubic Bézier
// curves.  Relative control points are taken from the start of each
// curve.
func (i *Interpreter) bezier(op string, relative bool) error {
	for {
		var pts [3]vec.Vec2
		k := 0
		for ; k < 3; k++ {
			p, res := i.sc.Point()
			if res == scan.NotFound {
				break
			} else if res == scan.Invalid {
				i.syntax(op, res)
				return i.endDrawing()
			}
			pts[k] = p
		}
		if k == 0 {
			break
		} else if k < 3 {
			i.syntax(op, scan.Invalid)
			break
		}

		start := i.currentPoint()
		var q [3]vec.Vec2
		for j, p := range pts {
			if relative {
				q[j] = start.Add(i.env.Ctms.JobToPlotter(p, true))
			} else {
				q[j] = i.env.Ctms.JobToPlotter(p, false)
			}
			if tooLarge(q[j]) {
				i.enterLost(op)
				return i.endDrawing()
			}
		}
		i.curveTo(q[0], q[1], q[2])
	}
	return i.endDrawing()
}

func (i *Interpreter) opBZ() error { return i.bezier("BZ", false) }

func (i *Interpreter) opBR() error { return i.bezier("BR", true) }

// opCT selects whether chord tolerances are angles or deviations.
func (i *Interpreter) opCT() error {
	n, res := i.sc.Integer()
	switch res {
	case scan.NotFound:
		n = 0
	case scan.Invalid:
		i.syntax("CT", res)
		return nil
	}
	switch n {
	case 0:
		i.env.Technical.Chord = ChordAngle
	case 1:
		i.env.Technical.Chord = ChordDeviation
	default:
		i.log.Warn("invalid chord mode", "op", "CT", "mode", n)
	}
	return nil
}
