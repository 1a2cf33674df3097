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


package testcases

import (
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/hpgl/transform"
)

// TestCase defines a single rendering test.
type TestCase struct {
	Name    string // lowercase a-z and _ only
	Program string // HP-GL/2 commands
	Width   int    // canvas width in pixels
	Height  int    // canvas height in pixels
}

// PlotterUnitsPerPixel gives the resolution of the test canvases.
const PlotterUnitsPerPixel = 10

// Frame returns a picture frame which covers the whole canvas.
func (tc *TestCase) Frame() transform.Frame {
	k := PlotterUnitsPerPixel * transform.PageUnitsPerPlotterUnit
	return transform.Frame{
		Width:  float64(tc.Width) * k,
		Height: float64(tc.Height) * k,
	}
}

// PageCTM maps page units to canvas pixels.
func (tc *TestCase) PageCTM() matrix.Matrix {
	k := 1 / (PlotterUnitsPerPixel * transform.PageUnitsPerPlotterUnit)
	return matrix.Scale(k, k)
}
