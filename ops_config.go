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

	"seehuhn.de/go/hpgl/scan"
	"seehuhn.de/go/hpgl/transform"
)

// opIN resets the interpreter to its initial state.
func (i *Interpreter) opIN() error {
	if _, res := i.sc.Integer(); res == scan.Invalid {
		i.syntax("IN", res)
		return nil
	}
	return i.initialize()
}

// initialize establishes the default state, as after IN.
func (i *Interpreter) initialize() error {
	if err := i.flushPath(); err != nil {
		return err
	}
	env, err := defaultEnvironment(i.frame)
	if err != nil {
		return err
	}
	i.ForcePolygonExit()
	i.clearRF()
	i.env = env
	return i.Sync(true)
}

// opDF restores the default settings.  The scale points, the rotation,
// the pen widths and the pen position are kept.
func (i *Interpreter) opDF() error {
	if err := i.flushPath(); err != nil {
		return err
	}
	env, err := defaultEnvironment(i.frame)
	if err != nil {
		return err
	}

	s := i.env.Config.Setup
	s.Scaling = nil
	ctms, err := transform.NewCtms(i.frame, s)
	if err != nil {
		return err
	}
	env.Config.Setup = s
	env.Ctms = ctms

	old := &i.env.LineFill
	lf := &env.LineFill
	lf.WidthMode = old.WidthMode
	lf.Widths = old.Widths
	lf.PenCount = old.PenCount
	lf.Pen = old.Pen
	env.Vector.Pen = i.env.Vector.Pen
	env.Print = i.env.Print

	i.ForcePolygonExit()
	i.env = env
	return i.Sync(false)
}

// scalePoints implements IP and IR.  The conversion maps parameters
// into plotter units.
func (i *Interpreter) scalePoints(op string, conv func(x, y float64) vec.Vec2) error {
	var args [4]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found || n == 1 || n == 3 {
		i.syntax(op, res)
		return nil
	}

	s := i.env.Config.Setup
	switch n {
	case 0:
		s.P1, s.P2 = transform.DefaultScalePoints(i.frame, s.Rotation)
	case 2:
		size := s.P2.Sub(s.P1)
		s.P1 = conv(args[0], args[1])
		s.P2 = s.P1.Add(size)
	case 4:
		s.P1 = conv(args[0], args[1])
		s.P2 = conv(args[2], args[3])
	}
	if tooLarge(s.P1) || tooLarge(s.P2) {
		i.log.Warn("scale points out of range", "op", op)
		return nil
	}
	s.P1, s.P2 = transform.Separate(s.P1, s.P2)
	if err := i.setup(s); err != nil {
		i.log.Warn("scale points ignored", "op", op, "error", err)
	}
	return nil
}

func (i *Interpreter) opIP() error {
	return i.scalePoints("IP", func(x, y float64) vec.Vec2 {
		return vec.Vec2{X: x, Y: y}
	})
}

func (i *Interpreter) opIR() error {
	ext := transform.FrameExtent(i.frame, i.env.Config.Rotation)
	return i.scalePoints("IR", func(x, y float64) vec.Vec2 {
		return vec.Vec2{X: x / 100 * ext.X, Y: y / 100 * ext.Y}
	})
}

// opSC sets up user units.
func (i *Interpreter) opSC() error {
	var args [7]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found {
		i.syntax("SC", res)
		return nil
	}

	s := i.env.Config.Setup
	switch {
	case n == 0:
		s.Scaling = nil
	case n == 4 || n == 5 && args[4] == 0:
		s.Scaling = transform.Anisotropic{X1: args[0], X2: args[1], Y1: args[2], Y2: args[3]}
	case (n == 5 || n == 7) && args[4] == 1:
		iso := transform.Isotropic{
			X1: args[0], X2: args[1], Y1: args[2], Y2: args[3],
			Left: 50, Bottom: 50,
		}
		if n == 7 {
			iso.Left, iso.Bottom = args[5], args[6]
		}
		s.Scaling = iso
	case n == 5 && args[4] == 2:
		s.Scaling = transform.PointFactor{X1: args[0], ScaleX: args[1], Y1: args[2], ScaleY: args[3]}
	default:
		i.log.Warn("invalid scaling parameters", "op", "SC", "count", n)
		return nil
	}
	if err := i.setup(s); err != nil {
		i.log.Warn("scaling ignored", "op", "SC", "error", err)
	}
	return nil
}

// opRO rotates the coordinate system.  The pen keeps its position on
// the page.
func (i *Interpreter) opRO() error {
	deg, res := i.sc.Integer()
	switch res {
	case scan.NotFound:
		deg = 0
	case scan.Invalid:
		i.syntax("RO", res)
		return nil
	}
	rot, ok := transform.ParseRotation(deg)
	if !ok {
		i.log.Warn("invalid rotation", "op", "RO", "angle", deg)
		return nil
	}

	page := i.env.Ctms.PlotterToPage(i.currentPoint())
	s := i.env.Config.Setup
	s.Rotation = rot
	s.P1, s.P2 = transform.DefaultScalePoints(i.frame, rot)
	if err := i.setup(s); err != nil {
		i.log.Warn("rotation ignored", "op", "RO", "error", err)
		return nil
	}
	i.env.Config.Window = ClipWindow{}

	i.k.SetCTM(i.kernelCTM())
	if err := i.installClip(); err != nil {
		return err
	}
	i.k.NewPath()
	i.k.MoveTo(i.env.Ctms.PageToPlotter(page))
	return nil
}

// opIW sets the soft-clip window.
func (i *Interpreter) opIW() error {
	var args [4]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found || (n != 0 && n != 4) {
		i.syntax("IW", res)
		return nil
	}
	if err := i.flushPath(); err != nil {
		return err
	}

	if n == 0 {
		i.env.Config.Window = ClipWindow{}
	} else {
		a := i.env.Ctms.JobToPlotter(vec.Vec2{X: args[0], Y: args[1]}, false)
		b := i.env.Ctms.JobToPlotter(vec.Vec2{X: args[2], Y: args[3]}, false)
		i.env.Config.Window = ClipWindow{
			LL:   vec.Vec2{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
			UR:   vec.Vec2{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
			Type: SoftClipWindow,
		}
	}
	return i.installClip()
}

// opCO skips a comment.
func (i *Interpreter) opCO() error {
	if text, res := i.sc.Quoted(); res == scan.Found {
		i.log.Debug("comment", "text", string(text))
	}
	return nil
}
