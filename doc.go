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

// Package hpgl implements an interpreter for the HP-GL/2 vector graphics
// language, as embedded in PCL 5 printers.
//
// The interpreter reads two-letter commands from a byte stream, keeps
// the plotter state (pen, scaling, clip window, polygon buffer) and
// sends paths to a graphics kernel, see [gfx.Kernel].  Rendering itself
// is done by painters such as the ones in the raster and pdfout
// packages.
//
// Coordinates passed to the kernel are in plotter units (1/1016 inch,
// y up), after rotation.  The kernel CTM maps plotter units to device
// space.
//
// A minimal program renders a file into an image:
//
//	canvas := raster.NewCanvas(850, 1100)
//	dev := gfx.NewDevice(canvas)
//	ip, err := hpgl.New(dev, hpgl.WithPageCTM(matrix.Scale(100.0/7200, 100.0/7200)))
//	...
//	err = ip.Exec(ctx, r)
package hpgl

//go:generate go run ./testcases/export
//go:generate go run ./testcases/genpdf
