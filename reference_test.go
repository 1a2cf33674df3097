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

package hpgl_test

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/hpgl"
	"seehuhn.de/go/hpgl/gfx"
	"seehuhn.de/go/hpgl/raster"
	"seehuhn.de/go/hpgl/testcases"
)

// render runs the program of tc and returns the canvas.
func render(tc *testcases.TestCase) (*raster.Canvas, error) {
	canvas := raster.NewCanvas(tc.Width, tc.Height)
	ip, err := hpgl.New(gfx.NewDevice(canvas),
		hpgl.WithFrame(tc.Frame()),
		hpgl.WithPageCTM(tc.PageCTM()))
	if err != nil {
		return nil, err
	}
	err = ip.Exec(context.Background(), strings.NewReader(tc.Program))
	if err != nil {
		return nil, err
	}
	return canvas, nil
}

func TestTestCasesPaint(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				canvas, err := render(&tc)
				if err != nil {
					t.Fatal(err)
				}
				if countInk(toGray(canvas.Image)) == 0 {
					t.Error("nothing was drawn")
				}
			})
		}
	}
}

func TestAgainstReference(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				refPath := filepath.Join("testdata", "reference", name+".png")
				ref, err := loadGray(refPath)
				if errors.Is(err, fs.ErrNotExist) {
					t.Skip("no reference image, run go generate")
				} else if err != nil {
					t.Fatalf("loading reference: %v", err)
				}

				canvas, err := render(&tc)
				if err != nil {
					t.Fatal(err)
				}
				actual := toGray(canvas.Image)
				if ref.Bounds() != actual.Bounds() {
					t.Fatalf("reference has size %v, want %v", ref.Bounds(), actual.Bounds())
				}

				if err := compareImages(name, ref, actual); err != nil {
					t.Error(err)
				}
			})
		}
	}
}

func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// countInk returns the number of pixels which are not white.
func countInk(img *image.Gray) int {
	n := 0
	for _, v := range img.Pix {
		if v < 255 {
			n++
		}
	}
	return n
}

func loadGray(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	return toGray(img), nil
}

func compareImages(name string, expected, actual *image.Gray) error {
	const tolerance = 8
	const maxDiffPercent = 2

	total := len(expected.Pix)
	diffCount := 0
	hasDiff := false
	for i := range total {
		diff := int(expected.Pix[i]) - int(actual.Pix[i])
		if diff < 0 {
			diff = -diff
		}
		if diff > 0 {
			hasDiff = true
			if diff > tolerance {
				diffCount++
			}
		}
	}

	maxAllowed := total * maxDiffPercent / 100
	if hasDiff {
		writeDiffImage(name, expected, actual)
	}
	if diffCount > maxAllowed {
		return fmt.Errorf("%d pixels differ by >%d (max allowed: %d)",
			diffCount, tolerance, maxAllowed)
	}
	return nil
}

func writeDiffImage(name string, expected, actual *image.Gray) {
	os.MkdirAll("debug", 0755)

	b := expected.Bounds()
	img := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, color.RGBA{
				R: expected.GrayAt(x, y).Y, // expected in red
				G: actual.GrayAt(x, y).Y,   // actual in green
				A: 255,
			})
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return
	}
	defer f.Close()
	png.Encode(f, img)
}
