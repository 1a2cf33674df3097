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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hpgl/gfx"
)

// Handoff records the state of the host language while HP-GL/2 mode is
// active.  It is created by Enter and consumed by Exit.
type Handoff struct {
	host   gfx.GState
	cursor vec.Vec2 // page units
}

// Enter switches the kernel to HP-GL/2 mode.  The graphics state of the
// host is saved in the returned Handoff.  If flag is odd, the pen moves
// to the host cursor, given in page units.  Otherwise the pen keeps its
// last HP-GL/2 position.
func (i *Interpreter) Enter(flag int, cursor vec.Vec2) (*Handoff, error) {
	if i.entered {
		return nil, ErrAlreadyEntered
	}
	h := &Handoff{host: i.k.Save(), cursor: cursor}

	if i.haveState {
		i.k.Restore(i.hpglState)
	} else {
		i.k.NewPath()
		i.clipPushed = false
	}
	i.entered = true

	var err error
	if !i.initialized {
		err = i.Sync(true)
		i.initialized = true
	} else if i.dirty {
		err = i.Sync(false)
	}
	if err != nil {
		i.k.Restore(h.host)
		i.entered = false
		return nil, err
	}

	if flag&1 == 1 {
		p := i.env.Ctms.PageToPlotter(cursor)
		if i.env.Polygon.Enabled {
			i.polygon.MoveTo(p)
		}
		i.k.NewPath()
		i.k.MoveTo(p)
	}
	return h, nil
}

// Exit leaves HP-GL/2 mode and reinstalls the graphics state of the
// host.  If flag is odd, the pen position becomes the new host cursor.
// Otherwise the cursor from Enter is returned.
func (i *Interpreter) Exit(h *Handoff, flag int) (vec.Vec2, error) {
	if !i.entered {
		return vec.Vec2{}, ErrNotEntered
	}
	err := i.finish()
	pen := i.env.Ctms.PlotterToPage(i.currentPoint())

	i.hpglState = i.k.Save()
	i.haveState = true
	i.k.Restore(h.host)
	i.entered = false

	if flag&1 == 1 {
		return pen, err
	}
	return h.cursor, err
}

// Entered reports whether HP-GL/2 mode is active.
func (i *Interpreter) Entered() bool {
	return i.entered
}
