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
	"fmt"
	"math"
	"strings"
)

var largeCases = []TestCase{
	{
		Name:    "star",
		Program: star(1000, 1000, 900, 101),
		Width:   200,
		Height:  200,
	},
	{
		Name:    "spiral",
		Program: spiral(1000, 1000, 2000),
		Width:   200,
		Height:  200,
	},
	{
		Name:    "grid",
		Program: grid(100, 100, 1800, 36),
		Width:   200,
		Height:  200,
	},
}

// star connects n equally spaced points on a circle, skipping half of
// them on every step.
func star(cx, cy, r float64, n int) string {
	b := &strings.Builder{}
	b.WriteString("IN;SP1;PW0.1;")
	for i := 0; i <= n; i++ {
		phi := 2 * math.Pi * float64(i*(n/2)%n) / float64(n)
		x := cx + r*math.Cos(phi)
		y := cy + r*math.Sin(phi)
		fmt.Fprintf(b, "PA%.1f,%.1f;", x, y)
		if i == 0 {
			b.WriteString("PD;")
		}
	}
	return b.String()
}

// spiral draws an Archimedean spiral as a single polyline with n
// points.
func spiral(cx, cy float64, n int) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "IN;SP1;PW0.2;PA%g,%g;PD;PA", cx, cy)
	for i := 1; i <= n; i++ {
		phi := float64(i) * 0.05
		r := 9 * phi
		if i > 1 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%.2f,%.2f", cx+r*math.Cos(phi), cy+r*math.Sin(phi))
	}
	b.WriteByte(';')
	return b.String()
}

// grid fills a square with alternating filled and outlined cells.
func grid(x0, y0, size float64, n int) string {
	b := &strings.Builder{}
	b.WriteString("IN;SP1;PW0.1;")
	step := size / float64(n)
	for i := range n {
		for j := range n {
			fmt.Fprintf(b, "PA%g,%g;", x0+float64(i)*step, y0+float64(j)*step)
			if (i+j)%2 == 0 {
				fmt.Fprintf(b, "RR%g,%g;", step, step)
			} else {
				fmt.Fprintf(b, "ER%g,%g;", step, step)
			}
		}
	}
	return b.String()
}
