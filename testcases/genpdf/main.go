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

// Command genpdf generates reference images for the rendering tests.
// It paints every test case onto a PDF page and renders the PDF to PNG
// using Ghostscript.
package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"seehuhn.de/go/hpgl"
	"seehuhn.de/go/hpgl/gfx"
	"seehuhn.de/go/hpgl/pdfout"
	"seehuhn.de/go/hpgl/testcases"
	"seehuhn.de/go/hpgl/transform"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(refDir, name+".pdf")
			pngPath := filepath.Join(refDir, name+".png")

			if err := generatePDF(&tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := renderPNG(pdfPath, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

// generatePDF runs the program of tc with page units as device space.
func generatePDF(tc *testcases.TestCase, pdfPath string) error {
	f := tc.Frame()
	page, err := pdfout.Create(pdfPath, f.Width, f.Height)
	if err != nil {
		return err
	}

	ip, err := hpgl.New(gfx.NewDevice(page), hpgl.WithFrame(f))
	if err != nil {
		page.Close()
		return err
	}
	err = ip.Exec(context.Background(), strings.NewReader(tc.Program))
	if err != nil {
		page.Close()
		return err
	}
	return page.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	// one pixel per testcases.PlotterUnitsPerPixel plotter units
	dpi := float64(transform.PlotterUnitsPerInch) / testcases.PlotterUnitsPerPixel
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r"+strconv.FormatFloat(dpi, 'f', -1, 64),
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
