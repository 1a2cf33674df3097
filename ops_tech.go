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
	"seehuhn.de/go/hpgl/scan"
)

// opMC sets the merge control mode.  Merging is recorded but has no
// effect on the opaque painters.
func (i *Interpreter) opMC() error {
	var args [2]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found {
		i.syntax("MC", res)
		return nil
	}
	tech := &i.env.Technical
	tech.Merge = 0
	tech.MergeOp = defaultMergeOp
	if n > 0 {
		tech.Merge = int(args[0])
	}
	if n > 1 && args[1] >= 0 && args[1] <= 255 {
		tech.MergeOp = int(args[1])
	}
	return nil
}

// opPP sets the pixel placement mode.
func (i *Interpreter) opPP() error {
	n, res := i.sc.Integer()
	switch res {
	case scan.NotFound:
		n = 0
	case scan.Invalid:
		i.syntax("PP", res)
		return nil
	}
	if n != 0 && n != 1 {
		i.log.Warn("invalid pixel placement", "op", "PP", "mode", n)
		return nil
	}
	i.env.Technical.PixelPlacement = n
	return nil
}

// opQL sets the quality level, which determines the curve flatness.
func (i *Interpreter) opQL() error {
	q, res := i.sc.Integer()
	switch res {
	case scan.NotFound:
		q = defaultQuality
	case scan.Invalid:
		i.syntax("QL", res)
		return nil
	}
	i.env.Technical.Quality = min(max(q, 0), 100)
	i.k.SetFlatness(i.flatness())
	return nil
}

// flatness maps the quality level to a flatness in device units.
func (i *Interpreter) flatness() float64 {
	q := float64(i.env.Technical.Quality)
	return minFlatness + (100-q)/100*(maxFlatness-minFlatness)
}

const (
	defaultMergeOp = 252
	minFlatness    = 0.1
	maxFlatness    = 2.0
)
