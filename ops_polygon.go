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

	"seehuhn.de/go/hpgl/gfx"
	"seehuhn.de/go/hpgl/scan"
)

// opPM controls polygon mode.
func (i *Interpreter) opPM() error {
	n, res := i.sc.Integer()
	switch res {
	case scan.NotFound:
		n = 0
	case scan.Invalid:
		i.syntax("PM", res)
		return nil
	}

	poly := &i.env.Polygon
	switch n {
	case 0:
		if poly.Enabled {
			return nil
		}
		return i.enterPolygonMode()
	case 1:
		if poly.Enabled {
			i.polygon.Close()
			poly.Restart = true
		}
	case 2:
		if poly.Enabled {
			i.leavePolygonMode()
		}
	default:
		i.log.Warn("invalid polygon mode", "op", "PM", "mode", n)
	}
	return nil
}

// opEP outlines the polygon buffer.
func (i *Interpreter) opEP() error {
	if err := i.flushPath(); err != nil {
		return err
	}
	if i.env.LineFill.Pen == 0 {
		return nil
	}
	cp := i.currentPoint()
	err := i.edgeBuffer()
	i.k.NewPath()
	i.k.MoveTo(cp)
	return err
}

// opFP fills the polygon buffer.
func (i *Interpreter) opFP() error {
	n, res := i.sc.Integer()
	switch res {
	case scan.NotFound:
		n = 0
	case scan.Invalid:
		i.syntax("FP", res)
		return nil
	}
	rule := gfx.EvenOdd
	if n == 1 {
		rule = gfx.NonZero
	}

	if err := i.flushPath(); err != nil {
		return err
	}
	if i.env.LineFill.Pen == 0 {
		return nil
	}
	cp := i.currentPoint()
	err := i.fillBuffer(rule)
	i.k.NewPath()
	i.k.MoveTo(cp)
	return err
}

// rectangle implements EA, ER, RA and RR.
func (i *Interpreter) rectangle(op string, relative, fill bool) error {
	p, res := i.sc.Point()
	if res != scan.Found {
		i.syntax(op, res)
		return nil
	}
	corner := i.toPlotter(p, relative)
	if tooLarge(corner) {
		i.enterLost(op)
		return nil
	}

	return i.withFigure(fill, func() {
		start := i.currentPoint()
		i.moveTo(start)
		i.lineTo(vec.Vec2{X: corner.X, Y: start.Y}, true)
		i.lineTo(corner, true)
		i.lineTo(vec.Vec2{X: start.X, Y: corner.Y}, true)
		i.closePath()
	})
}

func (i *Interpreter) opEA() error { return i.rectangle("EA", false, false) }

func (i *Interpreter) opER() error { return i.rectangle("ER", true, false) }

func (i *Interpreter) opRA() error { return i.rectangle("RA", false, true) }

func (i *Interpreter) opRR() error { return i.rectangle("RR", true, true) }

// wedge implements EW and WG: a pie segment around the pen position.
// A sweep of 360 degrees or more gives a circle without radii.
func (i *Interpreter) wedge(op string, fill bool) error {
	var args [4]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found || n < 3 {
		i.syntax(op, res)
		return nil
	}
	r, startAngle, sweep := args[0], args[1], args[2]
	if r == 0 || sweep == 0 {
		return nil
	}

	center := i.currentPoint()
	s, c := math.Sincos(startAngle * math.Pi / 180)
	dir := i.env.Ctms.JobToPlotter(vec.Vec2{X: c, Y: s}, true)
	radius := i.env.Ctms.JobToPlotter(vec.Vec2{X: r}, true).Length()
	if l := dir.Length(); l > 0 {
		dir = dir.Mul(radius / l)
	}
	if r < 0 {
		dir = dir.Mul(-1)
	}
	edge := center.Add(dir)
	chord := i.chordAngle(args[3], n > 3, radius)
	sweep = math.Max(-360, math.Min(360, sweep)) * i.env.Ctms.Orientation()
	full := math.Abs(sweep) >= 360

	var arcErr error
	err := i.withFigure(fill, func() {
		if full {
			i.moveTo(edge)
		} else {
			i.moveTo(center)
			i.lineTo(edge, true)
		}
		opt := arcOptions{
			Stroked:       true,
			UpdateResidue: true,
			Rounding:      RoundWedge,
		}
		if full {
			opt.End = &edge
		}
		arcErr = i.drawArc(center, chord, sweep, opt)
		i.closePath()
		i.moveTo(center)
	})
	if err != nil {
		return err
	}
	return arcErr
}

func (i *Interpreter) opEW() error { return i.wedge("EW", false) }

func (i *Interpreter) opWG() error { return i.wedge("WG", true) }
