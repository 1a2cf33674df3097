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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/hpgl/gfx"
	"seehuhn.de/go/hpgl/transform"
)

// Sync pushes the interpreter state into the kernel.  If initialize is
// set, the pen moves to its initial position.  Otherwise the current
// pen position is kept.
//
// The CTM is installed first, since the clip rectangle and the pen
// position are given in plotter units.
func (i *Interpreter) Sync(initialize bool) error {
	i.k.SetCTM(i.kernelCTM())

	pr := &i.env.Print
	cp, ok := i.k.CurrentPoint()
	if initialize || !ok {
		cp = pr.InitialPen
		pr.CarriageReturn = cp
		pr.haveLabelEnd = false
	}
	i.k.NewPath()
	i.k.MoveTo(cp)

	if err := i.installClip(); err != nil {
		return err
	}

	i.k.SetLineParams(i.lineParams(0))
	fp, err := i.fillParams(gfx.EvenOdd)
	if err != nil {
		return err
	}
	i.k.SetFillParams(fp)

	i.k.SetFlatness(i.flatness())

	i.dirty = false
	return nil
}

// kernelCTM maps plotter units to device space.
func (i *Interpreter) kernelCTM() matrix.Matrix {
	return transform.Mul(i.env.Ctms.Frame, i.pageCTM)
}

// installClip replaces the clip level of the interpreter by the
// intersection of the picture frame and the IW window.
func (i *Interpreter) installClip() error {
	if i.clipPushed {
		if err := i.k.PopClip(); err != nil {
			return err
		}
	}
	i.k.PushClip()
	i.clipPushed = true

	i.k.IntersectClip(transform.FrameRect(i.frame, i.env.Config.Rotation))
	if w := &i.env.Config.Window; w.Type == SoftClipWindow {
		i.k.IntersectClip(rect.Rect{LLx: w.LL.X, LLy: w.LL.Y, URx: w.UR.X, URy: w.UR.Y})
	}
	return nil
}

// SetPictureFrame changes the picture frame.  As on a real device, the
// scale points and the soft-clip window return to their defaults and
// polygon mode is abandoned.  The kernel is updated when HP-GL/2 mode
// is next entered.
func (i *Interpreter) SetPictureFrame(f transform.Frame) error {
	s := i.env.Config.Setup
	s.P1, s.P2 = transform.DefaultScalePoints(f, s.Rotation)
	ctms, err := transform.NewCtms(f, s)
	if err != nil {
		return err
	}
	i.frame = f
	i.env.Config.Setup = s
	i.env.Config.Window = ClipWindow{}
	i.env.Ctms = ctms
	i.ForcePolygonExit()
	i.dirty = true
	return nil
}

// SetPlotSize sets the size the plot was designed for, in page units.
// Zero values disable plot-size scaling.
func (i *Interpreter) SetPlotSize(width, height float64) error {
	f := i.frame
	f.PlotWidth, f.PlotHeight = width, height
	ctms, err := transform.NewCtms(f, i.env.Config.Setup)
	if err != nil {
		return err
	}
	i.frame = f
	i.env.Ctms = ctms
	i.dirty = true
	return nil
}

// SetPageCTM sets the map from page units to device space.
func (i *Interpreter) SetPageCTM(m matrix.Matrix) {
	i.pageCTM = m
	i.dirty = true
}
