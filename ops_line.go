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
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/hpgl/gfx"
	"seehuhn.de/go/hpgl/scan"
)

// opSP selects a pen.  Pen 0 means that no pen is selected.
func (i *Interpreter) opSP() error {
	n, res := i.sc.Integer()
	switch res {
	case scan.NotFound:
		n = 0
	case scan.Invalid:
		i.syntax("SP", res)
		return nil
	}
	if n < 0 {
		i.log.Warn("invalid pen", "op", "SP", "pen", n)
		return nil
	}
	return i.selectPen(n)
}

func (i *Interpreter) selectPen(n int) error {
	if err := i.flushPath(); err != nil {
		return err
	}
	lf := &i.env.LineFill
	if n >= lf.PenCount && lf.PenCount > 1 {
		n = (n-1)%(lf.PenCount-1) + 1
	}
	lf.Pen = n
	return nil
}

// opNP sets the number of pens.
func (i *Interpreter) opNP() error {
	n, res := i.sc.Integer()
	switch res {
	case scan.NotFound:
		n = defaultPenCount
	case scan.Invalid:
		i.syntax("NP", res)
		return nil
	}
	if n < 2 {
		n = 2
	}
	n = min(n, maxPenCount)

	lf := &i.env.LineFill
	def := defaultMetricWidth
	if lf.WidthMode == WidthRelative {
		def = defaultRelativeWidth
	}
	widths := make([]float64, n)
	for k := range widths {
		if k < len(lf.Widths) {
			widths[k] = lf.Widths[k]
		} else {
			widths[k] = def
		}
	}
	lf.Widths = widths
	lf.PenCount = n
	if lf.Pen >= n {
		return i.selectPen(lf.Pen)
	}
	return nil
}

// opLT selects the line type.
func (i *Interpreter) opLT() error {
	var args [3]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found {
		i.syntax("LT", res)
		return nil
	}
	if err := i.flushPath(); err != nil {
		return err
	}
	lf := &i.env.LineFill

	if n == 0 {
		if lf.Line.Type != 0 {
			lf.Previous = lf.Line
		}
		lf.Line.Type = 0
		lf.Residue = 0
		return nil
	}

	t := int(math.Round(args[0]))
	if t == previousLineType {
		if lf.Line.Type == 0 && lf.Previous.Type != 0 {
			lf.Line = lf.Previous
			lf.Residue = 0
		}
		return nil
	}
	if t < -maxLineType || t > maxLineType {
		i.log.Warn("invalid line type", "op", "LT", "type", t)
		return nil
	}

	lt := LineType{Length: defaultPatternLength}
	if t < 0 {
		lt.Adaptive = true
		t = -t
	}
	lt.Type = t
	if n >= 2 && args[1] > 0 {
		lt.Length = args[1]
	}
	if n >= 3 && args[2] == 1 {
		lt.Absolute = true
	}

	if lf.Line.Type != 0 {
		lf.Previous = lf.Line
	}
	lf.Line = lt
	lf.Residue = 0
	return nil
}

// opPW sets the pen width.
func (i *Interpreter) opPW() error {
	var args [2]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found {
		i.syntax("PW", res)
		return nil
	}
	if err := i.flushPath(); err != nil {
		return err
	}
	lf := &i.env.LineFill
	switch n {
	case 0:
		lf.resetWidths()
	case 1:
		if args[0] < 0 {
			return nil
		}
		for k := range lf.Widths {
			lf.Widths[k] = args[0]
		}
	default:
		pen := int(math.Round(args[1]))
		if args[0] < 0 || pen < 0 || pen >= len(lf.Widths) {
			i.log.Warn("invalid pen width", "op", "PW", "width", args[0], "pen", pen)
			return nil
		}
		lf.Widths[pen] = args[0]
	}
	return nil
}

// opWU selects the unit of pen widths and resets all widths.
func (i *Interpreter) opWU() error {
	mode, res := i.sc.Integer()
	switch res {
	case scan.NotFound:
		mode = 0
	case scan.Invalid:
		i.syntax("WU", res)
		return nil
	}
	if err := i.flushPath(); err != nil {
		return err
	}
	lf := &i.env.LineFill
	lf.WidthMode = WidthMetric
	if mode == 1 {
		lf.WidthMode = WidthRelative
	}
	lf.resetWidths()
	return nil
}

// opLA sets line ends, line joins and the miter limit.
func (i *Interpreter) opLA() error {
	var args [6]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found || n%2 != 0 {
		i.syntax("LA", res)
		return nil
	}
	if err := i.flushPath(); err != nil {
		return err
	}
	lf := &i.env.LineFill
	if n == 0 {
		lf.Cap = graphics.LineCapButt
		lf.Join = graphics.LineJoinMiter
		lf.MiterLimit = defaultMiterLimit
		return nil
	}
	for k := 0; k < n; k += 2 {
		kind, v := int(args[k]), args[k+1]
		switch kind {
		case 1:
			switch int(v) {
			case 1:
				lf.Cap = graphics.LineCapButt
			case 2:
				lf.Cap = graphics.LineCapSquare
			case 3, 4:
				lf.Cap = graphics.LineCapRound
			}
		case 2:
			switch int(v) {
			case 1, 2:
				lf.Join = graphics.LineJoinMiter
			case 4:
				lf.Join = graphics.LineJoinRound
			case 3, 5, 6:
				lf.Join = graphics.LineJoinBevel
			}
		case 3:
			lf.MiterLimit = max(v, 1)
		default:
			i.log.Warn("invalid line attribute", "op", "LA", "kind", kind)
		}
	}
	return nil
}

// opFT selects the fill type.
func (i *Interpreter) opFT() error {
	var args [3]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found {
		i.syntax("FT", res)
		return nil
	}
	if err := i.flushPath(); err != nil {
		return err
	}
	lf := &i.env.LineFill
	if n == 0 {
		lf.Fill = FillSolid
		return nil
	}

	kind := FillKind(math.Round(args[0]))
	switch kind {
	case FillSolid, FillSolidAlt:
	case FillHatch, FillCrossHatch:
		if n >= 2 {
			if args[1] < 0 {
				return nil
			}
			lf.FillSpacing = 0
			if args[1] > 0 {
				d := i.env.Ctms.JobToPlotter(vec.Vec2{X: args[1]}, true)
				lf.FillSpacing = math.Abs(d.X)
			}
		}
		if n >= 3 {
			lf.FillAngle = args[2]
		}
	case FillShading:
		if n >= 2 {
			lf.FillLevel = math.Max(0, math.Min(100, args[1]))
		}
	case FillUser, FillPCL, FillPCLUser:
		if n >= 2 {
			lf.FillPattern = int(math.Round(args[1]))
		}
	default:
		i.log.Warn("invalid fill type", "op", "FT", "type", kind)
		return nil
	}
	lf.Fill = kind
	return nil
}

// opRF downloads a raster fill pattern.
func (i *Interpreter) opRF() error {
	index, res := i.sc.Integer()
	switch res {
	case scan.NotFound:
		i.clearRF()
		return nil
	case scan.Invalid:
		i.syntax("RF", res)
		return nil
	}
	if index < 1 || index > maxRFIndex {
		i.log.Warn("invalid pattern index", "op", "RF", "index", index)
		i.sc.Recover()
		return nil
	}
	key := patternKey{id: index}

	w, res := i.sc.Integer()
	if res == scan.NotFound {
		delete(i.patterns, key)
		return nil
	}
	h, res2 := i.sc.Integer()
	if res != scan.Found || res2 != scan.Found || w < 1 || h < 1 || w > maxRFSize || h > maxRFSize {
		i.syntax("RF", scan.Invalid)
		return nil
	}

	pix := make([]byte, w*h)
	for k := range pix {
		pen, res := i.sc.Integer()
		if res != scan.Found {
			i.syntax("RF", res)
			return nil
		}
		if pen < 0 || pen > 255 {
			pen = 0
		}
		pix[k] = byte(pen)
	}
	i.patterns[key] = &gfx.Pattern{Width: w, Height: h, Pix: pix, Cell: rfCellSize}
	return nil
}

// opAC sets the anchor corner of fill patterns.
func (i *Interpreter) opAC() error {
	p, res := i.sc.Point()
	switch res {
	case scan.NotFound:
		i.env.LineFill.Anchor = vec.Vec2{}
	case scan.Found:
		i.env.LineFill.Anchor = i.env.Ctms.JobToPlotter(p, false)
	default:
		i.syntax("AC", res)
	}
	return nil
}

// opSM sets the symbol-mode character.
func (i *Interpreter) opSM() error {
	b, err := i.sc.Peek()
	sym := byte(0)
	if err == nil && b > ' ' && b < 0x7F && b != ';' {
		i.sc.Byte()
		sym = b
	}
	i.env.LineFill.Symbol = sym
	return nil
}

// opTR sets the transparency mode.
func (i *Interpreter) opTR() error {
	n, res := i.sc.Integer()
	switch res {
	case scan.NotFound:
		n = 1
	case scan.Invalid:
		i.syntax("TR", res)
		return nil
	}
	i.env.LineFill.Transparent = n != 0
	return nil
}

const (
	maxPenCount = 256
	maxRFIndex  = 8
	maxRFSize   = 255

	// rfCellSize is the size of one RF pattern pixel in plotter units,
	// corresponding to a 300 dpi device pixel.
	rfCellSize = 1016.0 / 300
)
