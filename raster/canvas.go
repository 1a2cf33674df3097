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

package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hpgl/gfx"
	"seehuhn.de/go/hpgl/transform"
)

// DefaultPalette is the HP-GL/2 default palette for eight pens.
var DefaultPalette = []color.RGBA{
	{255, 255, 255, 255}, // 0 white
	{0, 0, 0, 255},       // 1 black
	{255, 0, 0, 255},     // 2 red
	{0, 255, 0, 255},     // 3 green
	{255, 255, 0, 255},   // 4 yellow
	{0, 0, 255, 255},     // 5 blue
	{255, 0, 255, 255},   // 6 magenta
	{0, 255, 255, 255},   // 7 cyan
}

// Canvas is a gfx.Painter which draws into an RGBA image.
// Device space coincides with the pixel grid of the image.
type Canvas struct {
	Image   *image.RGBA
	Palette []color.RGBA

	r *Rasteriser
}

// NewCanvas allocates a white canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	bounds := rect.Rect{URx: float64(width), URy: float64(height)}
	return &Canvas{
		Image:   img,
		Palette: DefaultPalette,
		r:       NewRasteriser(bounds),
	}
}

// Fill implements the gfx.Painter interface.
func (c *Canvas) Fill(d *path.Data, ds *gfx.DrawState, fp *gfx.FillParams) error {
	c.setup(ds)
	src, err := c.source(&fp.Paint, ds.CTM)
	if err != nil {
		return err
	}
	emit := func(y, xMin int, coverage []float32) {
		c.composite(y, xMin, coverage, src)
	}
	if fp.Rule == gfx.NonZero {
		c.r.FillNonZero(d, emit)
	} else {
		c.r.FillEvenOdd(d, emit)
	}
	return nil
}

// Stroke implements the gfx.Painter interface.
func (c *Canvas) Stroke(d *path.Data, ds *gfx.DrawState, lp *gfx.LineParams) error {
	c.setup(ds)
	c.r.Width = lp.Width
	c.r.Cap = lp.Cap
	c.r.Join = lp.Join
	c.r.MiterLimit = max(lp.MiterLimit, 1)
	c.r.Dash = lp.Dash
	c.r.DashPhase = lp.DashPhase

	src, err := c.source(&lp.Paint, ds.CTM)
	if err != nil {
		return err
	}
	c.r.Stroke(d, func(y, xMin int, coverage []float32) {
		c.composite(y, xMin, coverage, src)
	})
	return nil
}

func (c *Canvas) setup(ds *gfx.DrawState) {
	b := c.Image.Bounds()
	bounds := rect.Rect{
		LLx: float64(b.Min.X), LLy: float64(b.Min.Y),
		URx: float64(b.Max.X), URy: float64(b.Max.Y),
	}
	clip := gfx.Intersect(bounds, ds.Clip)
	clip.LLx = math.Floor(clip.LLx)
	clip.LLy = math.Floor(clip.LLy)
	clip.URx = math.Ceil(clip.URx)
	clip.URy = math.Ceil(clip.URy)

	c.r.Reset(clip)
	c.r.CTM = ds.CTM
	if ds.Flatness > 0 {
		c.r.Flatness = ds.Flatness
	}
}

// source returns a function giving the colour and opacity of the paint
// at a device pixel.
func (c *Canvas) source(p *gfx.Paint, ctm matrix.Matrix) (func(x, y int) (color.RGBA, float32), error) {
	pen := c.penColor(p.Pen)

	switch p.Kind {
	case gfx.PaintShading:
		level := math.Max(0, math.Min(100, p.Level)) / 100
		col := mix(color.RGBA{255, 255, 255, 255}, pen, level)
		return func(int, int) (color.RGBA, float32) { return col, 1 }, nil

	case gfx.PaintHatch, gfx.PaintCrossHatch:
		inv, err := transform.Invert(ctm)
		if err != nil {
			return nil, err
		}
		spacing := p.Spacing
		if spacing <= 0 {
			return func(int, int) (color.RGBA, float32) { return pen, 1 }, nil
		}
		scale := math.Sqrt(math.Abs(transform.Det(ctm)))
		half := max(p.LineWidth, minDeviceWidth/scale) / 2
		angles := []float64{p.Angle}
		if p.Kind == gfx.PaintCrossHatch {
			angles = append(angles, p.Angle+90)
		}
		dirs := make([]vec.Vec2, len(angles))
		for i, a := range angles {
			s, co := math.Sincos(a * math.Pi / 180)
			dirs[i] = vec.Vec2{X: -s, Y: co} // normal of the hatch lines
		}
		return func(x, y int) (color.RGBA, float32) {
			u := transform.Apply(inv, vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}).Sub(p.Anchor)
			for _, n := range dirs {
				d := math.Mod(u.Dot(n), spacing)
				if d < 0 {
					d += spacing
				}
				if d < half || d > spacing-half {
					return pen, 1
				}
			}
			return pen, 0
		}, nil

	case gfx.PaintPattern:
		pat := p.Pattern
		if pat == nil || pat.Cell <= 0 {
			return func(int, int) (color.RGBA, float32) { return pen, 1 }, nil
		}
		inv, err := transform.Invert(ctm)
		if err != nil {
			return nil, err
		}
		transparent := p.Transparent
		return func(x, y int) (color.RGBA, float32) {
			u := transform.Apply(inv, vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}).Sub(p.Anchor)
			px := int(math.Floor(u.X / pat.Cell))
			py := int(math.Floor(-u.Y / pat.Cell))
			v := pat.At(px, py)
			if v == 0 && transparent {
				return color.RGBA{}, 0
			}
			return c.penColor(int(v)), 1
		}, nil

	default:
		return func(int, int) (color.RGBA, float32) { return pen, 1 }, nil
	}
}

// composite blends one row of coverage into the image.
func (c *Canvas) composite(y, xMin int, coverage []float32, src func(x, y int) (color.RGBA, float32)) {
	for i, cov := range coverage {
		x := xMin + i
		col, alpha := src(x, y)
		a := cov * alpha
		if a <= 0 {
			continue
		}
		off := c.Image.PixOffset(x, y)
		pix := c.Image.Pix[off : off+4 : off+4]
		pix[0] = blend(pix[0], col.R, a)
		pix[1] = blend(pix[1], col.G, a)
		pix[2] = blend(pix[2], col.B, a)
		pix[3] = 255
	}
}

func (c *Canvas) penColor(pen int) color.RGBA {
	if len(c.Palette) == 0 {
		return color.RGBA{0, 0, 0, 255}
	}
	if pen < 0 {
		pen = 1
	}
	return c.Palette[pen%len(c.Palette)]
}

func blend(dst, src uint8, a float32) uint8 {
	if a >= 1 {
		return src
	}
	v := float32(dst)*(1-a) + float32(src)*a
	return uint8(v + 0.5)
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	f := func(x, y uint8) uint8 {
		return uint8(float64(x)*(1-t) + float64(y)*t + 0.5)
	}
	return color.RGBA{f(a.R, b.R), f(a.G, b.G), f(a.B, b.B), 255}
}
