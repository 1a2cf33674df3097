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

package transform

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// ScaleMode identifies the algorithm used to map user units onto
// plotter units.
type ScaleMode int

const (
	// ModeAnisotropic scales the two axes independently.
	ModeAnisotropic ScaleMode = iota

	// ModeIsotropic uses equal scale factors for both axes.
	ModeIsotropic

	// ModePointFactor gives the plotter units per user unit directly.
	ModePointFactor
)

// String returns the name of the scaling mode.
func (m ScaleMode) String() string {
	switch m {
	case ModeAnisotropic:
		return "anisotropic"
	case ModeIsotropic:
		return "isotropic"
	case ModePointFactor:
		return "point-factor"
	default:
		return "unknown"
	}
}

// Scaling describes the parameters of an SC command.
// The concrete types are Anisotropic, Isotropic and PointFactor.
// A nil Scaling means that user units are disabled.
type Scaling interface {
	Mode() ScaleMode

	// ctm computes the user-to-plotter matrix for the scale points p1, p2.
	ctm(p1, p2 vec.Vec2) (matrix.Matrix, error)
}

// Anisotropic maps [X1,X2]×[Y1,Y2] onto the rectangle spanned by the
// scale points, independently for each axis.
type Anisotropic struct {
	X1, X2, Y1, Y2 float64
}

// Mode implements the Scaling interface.
func (Anisotropic) Mode() ScaleMode { return ModeAnisotropic }

func (s Anisotropic) ctm(p1, p2 vec.Vec2) (matrix.Matrix, error) {
	if s.X1 == s.X2 || s.Y1 == s.Y2 {
		return matrix.Matrix{}, ErrDegenerateScale
	}
	ax := (p2.X - p1.X) / (s.X2 - s.X1)
	ay := (p2.Y - p1.Y) / (s.Y2 - s.Y1)
	return matrix.Matrix{ax, 0, 0, ay, p1.X - ax*s.X1, p1.Y - ay*s.Y1}, nil
}

// Isotropic is like Anisotropic, but uses the same number of plotter
// units per user unit on both axes.  The axis with excess room is
// padded; Left and Bottom give the percentage of the padding placed
// before the user range, measured from P1.
type Isotropic struct {
	X1, X2, Y1, Y2 float64
	Left, Bottom   float64
}

// Mode implements the Scaling interface.
func (Isotropic) Mode() ScaleMode { return ModeIsotropic }

func (s Isotropic) ctm(p1, p2 vec.Vec2) (matrix.Matrix, error) {
	if s.X1 == s.X2 || s.Y1 == s.Y2 {
		return matrix.Matrix{}, ErrDegenerateScale
	}
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	ax := dx / (s.X2 - s.X1)
	ay := dy / (s.Y2 - s.Y1)

	k := min(math.Abs(ax), math.Abs(ay))
	ax = math.Copysign(k, ax)
	ay = math.Copysign(k, ay)

	// the excess is distributed starting from P1, in the direction of P2
	excessX := math.Abs(dx) - k*math.Abs(s.X2-s.X1)
	excessY := math.Abs(dy) - k*math.Abs(s.Y2-s.Y1)
	offX := math.Copysign(excessX*s.Left/100, dx)
	offY := math.Copysign(excessY*s.Bottom/100, dy)

	return matrix.Matrix{
		ax, 0,
		0, ay,
		p1.X + offX - ax*s.X1,
		p1.Y + offY - ay*s.Y1,
	}, nil
}

// PointFactor maps the user point (X1, Y1) onto P1 and uses explicit
// plotter-units-per-user-unit factors.
type PointFactor struct {
	X1, Y1         float64
	ScaleX, ScaleY float64
}

// Mode implements the Scaling interface.
func (PointFactor) Mode() ScaleMode { return ModePointFactor }

func (s PointFactor) ctm(p1, _ vec.Vec2) (matrix.Matrix, error) {
	if s.ScaleX == 0 || s.ScaleY == 0 {
		return matrix.Matrix{}, ErrDegenerateScale
	}
	return matrix.Matrix{
		s.ScaleX, 0,
		0, s.ScaleY,
		p1.X - s.ScaleX*s.X1,
		p1.Y - s.ScaleY*s.Y1,
	}, nil
}

// ScalingCTM returns the matrix which maps user units to plotter units
// for the scale points p1 and p2.  ErrDegenerateScale is returned if the
// parameters do not define an invertible map.
func ScalingCTM(s Scaling, p1, p2 vec.Vec2) (matrix.Matrix, error) {
	if s == nil {
		return matrix.Identity, nil
	}
	m, err := s.ctm(p1, p2)
	if err != nil {
		return matrix.Matrix{}, err
	}
	if _, err := Invert(m); err != nil {
		return matrix.Matrix{}, ErrDegenerateScale
	}
	return m, nil
}

// Separate makes sure that the two scale points differ in both
// coordinates, by moving p2 by one plotter unit where needed.
func Separate(p1, p2 vec.Vec2) (vec.Vec2, vec.Vec2) {
	if p1.X == p2.X {
		p2.X++
	}
	if p1.Y == p2.Y {
		p2.Y++
	}
	return p1, p2
}
