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

// Package transform implements the coordinate systems used by an HP-GL/2
// interpreter.
//
// Three spaces are involved.  Page space uses PCL internal units (7200 per
// inch, origin at the top left of the page, y pointing down).  Plotter
// space uses plotter units (1016 per inch, origin at the lower left of the
// possibly rotated picture frame, y pointing up).  User space only exists
// while scaling is enabled, and is mapped onto plotter space through the
// scale points P1 and P2.
package transform

import (
	"errors"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Units used by the pipeline.
const (
	PlotterUnitsPerInch = 1016
	PageUnitsPerInch    = 7200

	// PageUnitsPerPlotterUnit converts plotter units to page units.
	PageUnitsPerPlotterUnit = float64(PageUnitsPerInch) / PlotterUnitsPerInch

	// PlotterUnitsPerMM converts millimetres to plotter units.
	PlotterUnitsPerMM = PlotterUnitsPerInch / 25.4
)

var (
	// ErrDegenerateScale is returned when scale parameters do not describe
	// an invertible map.
	ErrDegenerateScale = errors.New("degenerate scaling parameters")

	// ErrSingular is returned when a matrix cannot be inverted.
	ErrSingular = errors.New("singular matrix")
)

// Rotation is the angle of the plotter coordinate system relative to the
// picture frame, in degrees counterclockwise.
type Rotation int

// The valid rotations.
const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// ParseRotation converts an RO parameter into a Rotation.
// Only multiples of 90 in the range 0 to 270 are accepted.
func ParseRotation(deg int) (Rotation, bool) {
	switch deg {
	case 0, 90, 180, 270:
		return Rotation(deg), true
	}
	return 0, false
}

// Swapped reports whether the rotation exchanges width and height.
func (r Rotation) Swapped() bool {
	return r == Rotate90 || r == Rotate270
}

// Frame describes the picture frame on the page.
type Frame struct {
	// Anchor is the top-left corner of the frame, in page units.
	Anchor vec.Vec2

	// Width and Height give the frame size in page units.
	Width, Height float64

	// PlotWidth and PlotHeight give the plot size in page units.
	// Zero values mean that the plot size has not been set.
	PlotWidth, PlotHeight float64
}

// LetterFrame returns the default picture frame for a portrait US letter
// page with the standard PCL margins.
func LetterFrame() Frame {
	return Frame{
		Anchor: vec.Vec2{X: 0.25 * PageUnitsPerInch, Y: 0.5 * PageUnitsPerInch},
		Width:  8 * PageUnitsPerInch,
		Height: 10 * PageUnitsPerInch,
	}
}

// Setup is the part of the HP-GL/2 configuration which determines the
// coordinate transformation.
type Setup struct {
	Rotation Rotation
	P1, P2   vec.Vec2 // scale points, in plotter units
	Scaling  Scaling  // nil if scaling is disabled
}

// DefaultSetup returns the setup established by IN for the given frame.
func DefaultSetup(f Frame) Setup {
	p1, p2 := DefaultScalePoints(f, Rotate0)
	return Setup{P1: p1, P2: p2}
}

// FrameExtent returns the size of the picture frame in plotter units,
// as seen from the rotated plotter coordinate system.
func FrameExtent(f Frame, rot Rotation) vec.Vec2 {
	w := f.Width / PageUnitsPerPlotterUnit
	h := f.Height / PageUnitsPerPlotterUnit
	if rot.Swapped() {
		w, h = h, w
	}
	return vec.Vec2{X: w, Y: h}
}

// FrameRect returns the picture frame in rotated plotter units.
func FrameRect(f Frame, rot Rotation) rect.Rect {
	ext := FrameExtent(f, rot)
	return rect.Rect{LLx: 0, LLy: 0, URx: ext.X, URy: ext.Y}
}

// DefaultScalePoints returns the scale points P1 and P2 which IN and RO
// establish: the lower-left and upper-right corners of the frame.
func DefaultScalePoints(f Frame, rot Rotation) (vec.Vec2, vec.Vec2) {
	return Separate(vec.Vec2{}, FrameExtent(f, rot))
}

// DefaultFrameCTM maps unrotated plotter units to page units.
func DefaultFrameCTM(f Frame) matrix.Matrix {
	k := PageUnitsPerPlotterUnit
	return matrix.Matrix{k, 0, 0, -k, f.Anchor.X, f.Anchor.Y + f.Height}
}

// rotationCTM maps rotated plotter units to unrotated plotter units, for
// a frame of the given unrotated extent.
func rotationCTM(rot Rotation, ext vec.Vec2) matrix.Matrix {
	switch rot {
	case Rotate90:
		return matrix.Matrix{0, 1, -1, 0, ext.X, 0}
	case Rotate180:
		return matrix.Matrix{-1, 0, 0, -1, ext.X, ext.Y}
	case Rotate270:
		return matrix.Matrix{0, -1, 1, 0, 0, ext.Y}
	default:
		return matrix.Identity
	}
}

// HorizontalScaleFactor returns the plot-size scale factor for the
// x-axis of the rotated plotter coordinate system.
func HorizontalScaleFactor(f Frame, rot Rotation) float64 {
	if rot.Swapped() {
		return plotRatio(f.Height, f.PlotHeight)
	}
	return plotRatio(f.Width, f.PlotWidth)
}

// VerticalScaleFactor returns the plot-size scale factor for the
// y-axis of the rotated plotter coordinate system.
func VerticalScaleFactor(f Frame, rot Rotation) float64 {
	if rot.Swapped() {
		return plotRatio(f.Width, f.PlotWidth)
	}
	return plotRatio(f.Height, f.PlotHeight)
}

func plotRatio(frame, plot float64) float64 {
	if plot <= 0 || frame <= 0 {
		return 1
	}
	return frame / plot
}

// Ctms holds the matrices derived from a Frame and a Setup.
// Values are only constructed by NewCtms and are never modified in place.
type Ctms struct {
	// DefaultFrame maps unrotated plotter units to page units.
	DefaultFrame matrix.Matrix

	// Frame maps rotated plotter units to page units.
	Frame    matrix.Matrix
	InvFrame matrix.Matrix

	// Scaling maps user units to plotter units.  It is the identity
	// when scaling is disabled.
	Scaling    matrix.Matrix
	InvScaling matrix.Matrix

	scaled bool
	mode   ScaleMode
	hsf    float64
	vsf    float64
}

// NewCtms computes the matrices for the frame f and setup s.
func NewCtms(f Frame, s Setup) (Ctms, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return Ctms{}, ErrSingular
	}

	var c Ctms
	c.DefaultFrame = DefaultFrameCTM(f)
	unrotated := FrameExtent(f, Rotate0)
	c.Frame = Mul(rotationCTM(s.Rotation, unrotated), c.DefaultFrame)
	inv, err := Invert(c.Frame)
	if err != nil {
		return Ctms{}, err
	}
	c.InvFrame = inv

	c.hsf = HorizontalScaleFactor(f, s.Rotation)
	c.vsf = VerticalScaleFactor(f, s.Rotation)

	c.Scaling = matrix.Identity
	c.InvScaling = matrix.Identity
	if s.Scaling != nil {
		m, err := ScalingCTM(s.Scaling, s.P1, s.P2)
		if err != nil {
			return Ctms{}, err
		}
		inv, err := Invert(m)
		if err != nil {
			return Ctms{}, ErrDegenerateScale
		}
		c.Scaling = m
		c.InvScaling = inv
		c.scaled = true
		c.mode = s.Scaling.Mode()
	}
	return c, nil
}

// Scaled reports whether user units are in effect.
func (c *Ctms) Scaled() bool {
	return c.scaled
}

// PlotSizeFactors returns the horizontal and vertical plot-size scale
// factors.
func (c *Ctms) PlotSizeFactors() (float64, float64) {
	return c.hsf, c.vsf
}

// JobToPlotter converts a point given in the coordinates of the job
// (user units if scaling is enabled, plotter units otherwise) into
// plotter units.  If relative is true, p is a displacement.
func (c *Ctms) JobToPlotter(p vec.Vec2, relative bool) vec.Vec2 {
	if !c.scaled {
		return vec.Vec2{X: p.X * c.hsf, Y: p.Y * c.vsf}
	}
	if relative {
		p = ApplyVector(c.Scaling, p)
	} else {
		p = Apply(c.Scaling, p)
	}
	if c.mode == ModePointFactor {
		p = vec.Vec2{X: p.X * c.hsf, Y: p.Y * c.vsf}
	}
	return p
}

// PlotterToJob is the inverse of JobToPlotter.
func (c *Ctms) PlotterToJob(p vec.Vec2, relative bool) vec.Vec2 {
	if !c.scaled {
		return vec.Vec2{X: p.X / c.hsf, Y: p.Y / c.vsf}
	}
	if c.mode == ModePointFactor {
		p = vec.Vec2{X: p.X / c.hsf, Y: p.Y / c.vsf}
	}
	if relative {
		return ApplyVector(c.InvScaling, p)
	}
	return Apply(c.InvScaling, p)
}

// PlotterToPage converts a point in plotter units into page units.
func (c *Ctms) PlotterToPage(p vec.Vec2) vec.Vec2 {
	return Apply(c.Frame, p)
}

// PageToPlotter converts a point in page units into plotter units.
func (c *Ctms) PageToPlotter(p vec.Vec2) vec.Vec2 {
	return Apply(c.InvFrame, p)
}

// Orientation returns +1 if user units preserve the orientation of the
// plotter coordinate system and -1 if one axis is mirrored.
func (c *Ctms) Orientation() float64 {
	if Det(c.Scaling) < 0 {
		return -1
	}
	return 1
}
