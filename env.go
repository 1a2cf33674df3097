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

// SaveEnvironment pushes a copy of the current state.
func (i *Interpreter) SaveEnvironment() {
	i.envStack = append(i.envStack, i.env.clone())
}

// RestoreEnvironment pops the most recently saved state.  The polygon
// buffer is emptied.
func (i *Interpreter) RestoreEnvironment() error {
	n := len(i.envStack)
	if n == 0 {
		return ErrEnvironmentUnderflow
	}
	if i.entered {
		if err := i.finish(); err != nil {
			return err
		}
	}

	i.env = i.envStack[n-1]
	i.envStack = i.envStack[:n-1]
	i.polygon.Reset()
	i.env.Polygon.Enabled = false
	i.env.Polygon.Restart = false

	if i.entered {
		return i.Sync(false)
	}
	i.dirty = true
	return nil
}

// EnvironmentDepth returns the number of saved environments.
func (i *Interpreter) EnvironmentDepth() int {
	return len(i.envStack)
}
