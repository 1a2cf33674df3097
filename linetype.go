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

	"seehuhn.de/go/hpgl/gfx"
	"seehuhn.de/go/hpgl/transform"
)

// fixedLineTypes gives the dash patterns of the line types 1 to 8, in
// percent of the pattern length.  Entries alternate between drawn and
// skipped parts.
var fixedLineTypes = [9][]float64{
	1: {0, 100},
	2: {50, 50},
	3: {70, 30},
	4: {80, 10, 0, 10},
	5: {70, 10, 10, 10},
	6: {50, 10, 10, 10, 10, 10},
	7: {70, 10, 0, 10, 0, 10},
	8: {50, 10, 0, 10, 10, 10, 0, 10},
}

const (
	maxLineType      = 8
	previousLineType = 99
)

// patternLength returns the length of one line-type period in plotter
// units.
func (i *Interpreter) patternLength() float64 {
	lt := &i.env.LineFill.Line
	if lt.Absolute {
		return lt.Length * transform.PlotterUnitsPerMM
	}
	return lt.Length / 100 * i.diagonal()
}

// penWidth returns the width of a pen in plotter units.
func (i *Interpreter) penWidth(pen int) float64 {
	lf := &i.env.LineFill
	var w float64
	if pen >= 0 && pen < len(lf.Widths) {
		w = lf.Widths[pen]
	} else if lf.WidthMode == WidthRelative {
		w = defaultRelativeWidth
	} else {
		w = defaultMetricWidth
	}
	if lf.WidthMode == WidthRelative {
		return w / 100 * i.diagonal()
	}
	return w * transform.PlotterUnitsPerMM
}

// lineParams returns the stroke parameters for a path of the given
// length.  Adaptive line types are stretched so that a whole number of
// periods fits the path.
func (i *Interpreter) lineParams(length float64) gfx.LineParams {
	lf := &i.env.LineFill
	lp := gfx.LineParams{
		Width:      i.penWidth(lf.Pen),
		Cap:        lf.Cap,
		Join:       lf.Join,
		MiterLimit: lf.MiterLimit,
		Paint:      gfx.Paint{Pen: lf.Pen},
	}

	t := lf.Line.Type
	if t < 1 || t > maxLineType {
		return lp
	}
	period := i.patternLength()
	if period <= 0 {
		return lp
	}
	phase := lf.Residue
	if lf.Line.Adaptive && length > 0 {
		n := max(1, math.Round(length/period))
		period = length / n
		phase = 0
	}
	pct := fixedLineTypes[t]
	lp.Dash = make([]float64, len(pct))
	for k, v := range pct {
		lp.Dash[k] = v / 100 * period
	}
	lp.DashPhase = phase
	return lp
}

// advanceResidue carries the line-type phase over to the next stroke.
func (i *Interpreter) advanceResidue(length float64) {
	lf := &i.env.LineFill
	if lf.Line.Type == 0 || lf.Line.Adaptive {
		lf.Residue = 0
		return
	}
	period := i.patternLength()
	if period <= 0 {
		return
	}
	lf.Residue = math.Mod(lf.Residue+length, period)
}

// fillParams returns the fill parameters for the current fill type.
func (i *Interpreter) fillParams(rule gfx.FillRule) (gfx.FillParams, error) {
	lf := &i.env.LineFill
	paint := gfx.Paint{
		Pen:         lf.Pen,
		Anchor:      lf.Anchor,
		Transparent: lf.Transparent,
	}

	spacing := lf.FillSpacing
	if spacing <= 0 {
		spacing = defaultHatchSpacing / 100 * i.diagonal()
	}

	switch lf.Fill {
	case FillHatch, FillCrossHatch:
		paint.Kind = gfx.PaintHatch
		if lf.Fill == FillCrossHatch {
			paint.Kind = gfx.PaintCrossHatch
		}
		paint.Spacing = spacing
		paint.Angle = lf.FillAngle
		paint.LineWidth = i.penWidth(lf.Pen)

	case FillShading:
		paint.Kind = gfx.PaintShading
		paint.Level = lf.FillLevel

	case FillUser, FillPCLUser:
		key := patternKey{pcl: lf.Fill == FillPCLUser, id: lf.FillPattern}
		if pat, ok := i.patterns[key]; ok {
			paint.Kind = gfx.PaintPattern
			paint.Pattern = pat
		}

	case FillPCL:
		if h, ok := pclHatches[lf.FillPattern]; ok {
			paint.Kind = h.kind
			paint.Angle = h.angle
			paint.Spacing = pclHatchSpacing
			paint.LineWidth = pclHatchWidth
		}
	}
	return gfx.FillParams{Rule: rule, Paint: paint}, nil
}

// pclHatches are the predefined cross-hatch patterns of PCL.
var pclHatches = map[int]struct {
	kind  gfx.PaintKind
	angle float64
}{
	1: {gfx.PaintHatch, 0},
	2: {gfx.PaintHatch, 90},
	3: {gfx.PaintHatch, 45},
	4: {gfx.PaintHatch, 135},
	5: {gfx.PaintCrossHatch, 0},
	6: {gfx.PaintCrossHatch, 45},
}

const (
	defaultHatchSpacing = 1 // percent of the P1-P2 diagonal
	pclHatchSpacing     = 30
	pclHatchWidth       = 4
)
