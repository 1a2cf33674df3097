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
	"seehuhn.de/go/hpgl/gfx"
)

// patternKey identifies a cached fill pattern.  Patterns downloaded
// with RF and patterns provided by the host use separate id spaces.
type patternKey struct {
	pcl bool
	id  int
}

// AddPattern makes a user-defined pattern of the host language
// available to FT22.
func (i *Interpreter) AddPattern(id int, pat *gfx.Pattern) {
	i.patterns[patternKey{pcl: true, id: id}] = pat
}

// ResetResources empties the pattern cache.
func (i *Interpreter) ResetResources() {
	clear(i.patterns)
}

// clearRF removes all patterns downloaded with RF.
func (i *Interpreter) clearRF() {
	for key := range i.patterns {
		if !key.pcl {
			delete(i.patterns, key)
		}
	}
}
