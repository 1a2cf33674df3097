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

// Package pdfout paints HP-GL/2 output onto a PDF page.
//
// Device space is the interpreter's page space: 7200 units per inch,
// origin at the top left, y pointing down.
package pdfout

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/hpgl/gfx"
	"seehuhn.de/go/hpgl/raster"
	"seehuhn.de/go/hpgl/transform"
)

// pointsPerPageUnit converts page units to PDF points.
const pointsPerPageUnit = 72.0 / transform.PageUnitsPerInch

// Page is a gfx.Painter writing to a single-page PDF file.
type Page struct {
	page *document.Page

	// Gray holds the gray level of each pen, 0 is black and 1 is white.
	Gray []float64
}

// Create starts a PDF file with one page of the given size in page
// units.
func Create(fname string, width, height float64) (*Page, error) {
	paper := &pdf.Rectangle{
		URx: width * pointsPerPageUnit,
		URy: height * pointsPerPageUnit,
	}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}

	// page units, y down
	page.Transform(matrix.Matrix{pointsPerPageUnit, 0, 0, -pointsPerPageUnit, 0, paper.URy})

	return &Page{
		page: page,
		Gray: DefaultGray(),
	}, nil
}

// Close writes the page and closes the file.
func (p *Page) Close() error {
	return p.page.Close()
}

// DefaultGray returns the luminance of the default raster palette.
func DefaultGray() []float64 {
	res := make([]float64, len(raster.DefaultPalette))
	for i, c := range raster.DefaultPalette {
		res[i] = (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
	}
	return res
}

// Fill implements the gfx.Painter interface.
func (p *Page) Fill(d *path.Data, ds *gfx.DrawState, fp *gfx.FillParams) error {
	if len(d.Cmds) == 0 {
		return nil
	}
	p.begin(ds)
	defer p.page.PopGraphicsState()

	paint := &fp.Paint
	switch paint.Kind {
	case gfx.PaintHatch, gfx.PaintCrossHatch:
		p.addPath(d)
		if fp.Rule == gfx.NonZero {
			p.page.ClipNonZero()
		} else {
			p.page.ClipEvenOdd()
		}
		p.page.EndPath()

		p.page.SetStrokeColor(color.DeviceGray(p.penGray(paint.Pen)))
		p.page.SetLineWidth(paint.LineWidth)
		angles := []float64{paint.Angle}
		if paint.Kind == gfx.PaintCrossHatch {
			angles = append(angles, paint.Angle+90)
		}
		for _, a := range angles {
			for _, seg := range HatchLines(d, paint.Anchor, paint.Spacing, a) {
				p.page.MoveTo(seg[0].X, seg[0].Y)
				p.page.LineTo(seg[1].X, seg[1].Y)
			}
		}
		p.page.Stroke()
		return nil

	default:
		p.page.SetFillColor(color.DeviceGray(p.paintGray(paint)))
		p.addPath(d)
		if fp.Rule == gfx.NonZero {
			p.page.Fill()
		} else {
			p.page.FillEvenOdd()
		}
		return nil
	}
}

// Stroke implements the gfx.Painter interface.
func (p *Page) Stroke(d *path.Data, ds *gfx.DrawState, lp *gfx.LineParams) error {
	if len(d.Cmds) == 0 {
		return nil
	}
	p.begin(ds)
	defer p.page.PopGraphicsState()

	p.page.SetStrokeColor(color.DeviceGray(p.paintGray(&lp.Paint)))
	p.page.SetLineWidth(lp.Width)
	p.page.SetLineCap(lp.Cap)
	p.page.SetLineJoin(lp.Join)
	p.page.SetMiterLimit(max(lp.MiterLimit, 1))
	if len(lp.Dash) > 0 {
		p.page.SetLineDash(lp.Dash, lp.DashPhase)
	}
	p.addPath(d)
	p.page.Stroke()
	return nil
}

// begin saves the graphics state, applies the clip rectangle and then
// switches to user space.
func (p *Page) begin(ds *gfx.DrawState) {
	p.page.PushGraphicsState()
	if ds.Clip != gfx.Unbounded && !gfx.IsEmpty(ds.Clip) {
		c := ds.Clip
		p.page.Rectangle(c.LLx, c.LLy, c.URx-c.LLx, c.URy-c.LLy)
		p.page.ClipNonZero()
		p.page.EndPath()
	}
	p.page.Transform(ds.CTM)
}

func (p *Page) addPath(d *path.Data) {
	for cmd, pts := range d.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			p.page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			p.page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			p.page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			p.page.ClosePath()
		}
	}
}

func (p *Page) penGray(pen int) float64 {
	if len(p.Gray) == 0 {
		return 0
	}
	if pen < 0 {
		pen = 1
	}
	return p.Gray[pen%len(p.Gray)]
}

// paintGray approximates a solid, shaded or patterned paint by a single
// gray level.
func (p *Page) paintGray(paint *gfx.Paint) float64 {
	g := p.penGray(paint.Pen)
	switch paint.Kind {
	case gfx.PaintShading:
		level := math.Max(0, math.Min(100, paint.Level)) / 100
		return 1 - level*(1-g)
	case gfx.PaintPattern:
		pat := paint.Pattern
		if pat == nil || len(pat.Pix) == 0 {
			return g
		}
		var sum float64
		for _, pen := range pat.Pix {
			if pen == 0 && paint.Transparent {
				sum++
				continue
			}
			sum += p.penGray(int(pen))
		}
		return sum / float64(len(pat.Pix))
	default:
		return g
	}
}

// HatchLines returns the hatch lines at the given angle, in degrees,
// which cover the bounding box of d.  The lines pass through anchor and
// are spacing apart.
func HatchLines(d *path.Data, anchor vec.Vec2, spacing, angle float64) [][2]vec.Vec2 {
	if spacing <= 0 || len(d.Coords) == 0 {
		return nil
	}
	s, c := math.Sincos(angle * math.Pi / 180)
	u := vec.Vec2{X: c, Y: s}
	n := vec.Vec2{X: -s, Y: c}

	uMin, uMax := math.Inf(1), math.Inf(-1)
	nMin, nMax := math.Inf(1), math.Inf(-1)
	for _, q := range d.Coords {
		r := q.Sub(anchor)
		uMin, uMax = min(uMin, r.Dot(u)), max(uMax, r.Dot(u))
		nMin, nMax = min(nMin, r.Dot(n)), max(nMax, r.Dot(n))
	}

	k0 := math.Ceil(nMin / spacing)
	k1 := math.Floor(nMax / spacing)
	if k1-k0 >= maxHatchLines {
		return nil
	}
	var res [][2]vec.Vec2
	for k := k0; k <= k1; k++ {
		base := anchor.Add(n.Mul(k * spacing))
		res = append(res, [2]vec.Vec2{base.Add(u.Mul(uMin)), base.Add(u.Mul(uMax))})
	}
	return res
}

// maxHatchLines limits the output for degenerate spacings.
const maxHatchLines = 100000
