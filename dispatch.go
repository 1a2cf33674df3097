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

import "fmt"

// Mode is a set of interpreter modes.  Each operator carries the modes
// in which it may run, together with its effect on a pending PD dot.
type Mode uint8

const (
	ModeNone Mode = 0

	// ModePolygon allows the operator in polygon mode.
	ModePolygon Mode = 1 << (iota - 1)

	// ModeLost allows the operator in lost mode.
	ModeLost

	// ModePathContinuation marks operators which extend the current
	// path.  They cancel a pending PD dot.
	ModePathContinuation

	// ModePathIgnore marks operators which do not interact with a
	// pending PD dot at all.
	ModePathIgnore
)

// entry is one slot of the operator table.
type entry struct {
	name  string
	fn    func(*Interpreter) error
	modes Mode
}

// opTable holds the operators, indexed by the packed mnemonic.
var opTable [26 * 26]*entry

func opIndex(c1, c2 byte) (int, bool) {
	if c1 < 'A' || c1 > 'Z' || c2 < 'A' || c2 > 'Z' {
		return 0, false
	}
	return int(c1-'A')*26 + int(c2-'A'), true
}

// register adds operators to the table.  It panics on malformed or
// duplicate mnemonics.
func register(ops ...entry) {
	for _, op := range ops {
		if len(op.name) != 2 {
			panic(fmt.Sprintf("hpgl: malformed mnemonic %q", op.name))
		}
		idx, ok := opIndex(op.name[0], op.name[1])
		if !ok {
			panic(fmt.Sprintf("hpgl: malformed mnemonic %q", op.name))
		}
		if opTable[idx] != nil {
			panic(fmt.Sprintf("hpgl: duplicate mnemonic %q", op.name))
		}
		e := op
		opTable[idx] = &e
	}
}

// lookup returns the table entry for a mnemonic, or nil.
func lookup(c1, c2 byte) *entry {
	idx, ok := opIndex(c1, c2)
	if !ok {
		return nil
	}
	return opTable[idx]
}

// currentModes returns the modes the interpreter is in.
func (i *Interpreter) currentModes() Mode {
	m := ModeNone
	if i.env.Polygon.Enabled {
		m |= ModePolygon
	}
	if i.env.Print.Lost {
		m |= ModeLost
	}
	return m
}

// dispatch runs one operator, subject to mode gating.
func (i *Interpreter) dispatch(e *entry) error {
	cur := i.currentModes()
	if e.modes&cur != cur {
		i.log.Debug("operator ignored", "op", e.name, "modes", cur)
		if e.modes&ModePathIgnore == 0 {
			if err := i.processPathContinuation(true); err != nil {
				return err
			}
		}
		i.sc.Recover()
		return nil
	}

	if e.modes&ModePathIgnore == 0 {
		err := i.processPathContinuation(e.modes&ModePathContinuation != 0)
		if err != nil {
			return err
		}
	}
	return e.fn(i)
}

// processPathContinuation resolves a pending PD dot.  Unless the next
// operator continues the path, a dot of one plotter unit is drawn at
// the pen position.
func (i *Interpreter) processPathContinuation(continues bool) error {
	if !i.env.Print.DotCandidate {
		return nil
	}
	i.env.Print.DotCandidate = false
	if continues {
		return nil
	}
	p := i.currentPoint()
	i.lineTo(p.Add(vec2(1, 0)), true)
	i.moveTo(p)
	return nil
}
