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
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hpgl/gfx"
	"seehuhn.de/go/hpgl/scan"
)

// Character cell geometry, relative to the character size.
const (
	cellAdvance = 1.5
	lineAdvance = 2.0
)

// Default character size in centimetres.
var defaultCharSize = vec.Vec2{X: 0.285, Y: 0.375}

// default relative character size, in percent of P2-P1
var defaultRelativeSize = vec.Vec2{X: 0.75, Y: 1.5}

const plotterUnitsPerCM = 400

// charSize returns the width and cap height of characters in plotter
// units.
func (i *Interpreter) charSize() vec.Vec2 {
	ch := &i.env.Character
	if ch.Size == (vec.Vec2{}) {
		return defaultCharSize.Mul(plotterUnitsPerCM)
	}
	if ch.RelativeSize {
		d := i.env.Config.P2.Sub(i.env.Config.P1)
		return vec.Vec2{X: ch.Size.X / 100 * math.Abs(d.X), Y: ch.Size.Y / 100 * math.Abs(d.Y)}
	}
	return ch.Size.Mul(plotterUnitsPerCM)
}

// baseline returns the unit vector along the label direction, in
// plotter units.
func (i *Interpreter) baseline() vec.Vec2 {
	ch := &i.env.Character
	d := ch.Direction
	if ch.RelativeDirection {
		ext := i.env.Config.P2.Sub(i.env.Config.P1)
		d = vec.Vec2{X: d.X * math.Abs(ext.X), Y: d.Y * math.Abs(ext.Y)}
	}
	l := d.Length()
	if l == 0 {
		return vec.Vec2{X: 1}
	}
	return d.Mul(1 / l)
}

// textAttrs returns the character cell for the current label settings.
func (i *Interpreter) textAttrs() gfx.TextAttrs {
	size := i.charSize()
	d := i.baseline()
	n := vec.Vec2{X: -d.Y, Y: d.X}
	return gfx.TextAttrs{
		Advance: d.Mul(size.X),
		Up:      n.Mul(size.Y),
		Slant:   i.env.Character.Slant,
		Pen:     i.env.LineFill.Pen,
	}
}

// opDT sets the label terminator.
func (i *Interpreter) opDT() error {
	ch := &i.env.Character
	b, err := i.sc.Peek()
	if err != nil || b == ';' || b == scan.ESC {
		ch.Terminator = defaultTerminator
		ch.TermMode = TerminatorHidden
		i.sc.Terminator()
		return nil
	}
	i.sc.Byte()
	if b == 0 || b == 5 || b == 27 {
		i.log.Warn("invalid label terminator", "op", "DT", "byte", b)
		i.sc.Recover()
		return nil
	}
	ch.Terminator = b
	ch.TermMode = TerminatorHidden

	if next, err := i.sc.Peek(); err == nil && next == ',' {
		mode, res := i.sc.Integer()
		if res == scan.Found && mode == 0 {
			ch.TermMode = TerminatorPrinted
		}
	}
	i.sc.Terminator()
	return nil
}

// sizeParams reads the two parameters of SI and SR.
func (i *Interpreter) sizeParams(op string, relative bool) error {
	var args [2]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found || n == 1 {
		i.syntax(op, res)
		return nil
	}
	ch := &i.env.Character
	ch.RelativeSize = relative
	switch {
	case n == 0 && relative:
		ch.Size = defaultRelativeSize
	case n == 0:
		ch.Size = vec.Vec2{}
	case args[0] == 0 || args[1] == 0:
		i.log.Warn("invalid character size", "op", op)
	default:
		ch.Size = vec.Vec2{X: args[0], Y: args[1]}
	}
	return nil
}

func (i *Interpreter) opSI() error { return i.sizeParams("SI", false) }

func (i *Interpreter) opSR() error { return i.sizeParams("SR", true) }

// opSL sets the character slant.
func (i *Interpreter) opSL() error {
	x, res := i.sc.Real()
	switch res {
	case scan.NotFound:
		x = 0
	case scan.Invalid:
		i.syntax("SL", res)
		return nil
	}
	i.env.Character.Slant = x
	return nil
}

// directionParams reads the two parameters of DI and DR.
func (i *Interpreter) directionParams(op string, relative bool) error {
	var args [2]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found || n == 1 {
		i.syntax(op, res)
		return nil
	}
	ch := &i.env.Character
	if n == 0 {
		ch.Direction = vec.Vec2{X: 1}
		ch.RelativeDirection = relative
		return nil
	}
	if args[0] == 0 && args[1] == 0 {
		i.log.Warn("invalid label direction", "op", op)
		return nil
	}
	ch.Direction = vec.Vec2{X: args[0], Y: args[1]}
	ch.RelativeDirection = relative
	return nil
}

func (i *Interpreter) opDI() error { return i.directionParams("DI", false) }

func (i *Interpreter) opDR() error { return i.directionParams("DR", true) }

// opCP moves the pen by character cells.  Without parameters it
// performs a carriage return and a line feed.
func (i *Interpreter) opCP() error {
	var args [2]float64
	n, res := i.sc.Reals(args[:])
	if res != scan.Found || n == 1 {
		i.syntax("CP", res)
		return nil
	}
	if err := i.flushPath(); err != nil {
		return err
	}
	i.startLabel()

	size := i.charSize()
	d := i.baseline()
	up := vec.Vec2{X: -d.Y, Y: d.X}
	pr := &i.env.Print
	if n == 0 {
		pr.CarriageReturn = pr.CarriageReturn.Sub(up.Mul(lineAdvance * size.Y))
		i.moveTo(pr.CarriageReturn)
	} else {
		delta := d.Mul(args[0] * cellAdvance * size.X).Add(up.Mul(args[1] * lineAdvance * size.Y))
		pr.CarriageReturn = pr.CarriageReturn.Add(up.Mul(args[1] * lineAdvance * size.Y))
		i.moveTo(i.currentPoint().Add(delta))
	}
	i.endLabel()
	return nil
}

// startLabel sets the carriage return point, unless the pen is still
// where the previous label left it.
func (i *Interpreter) startLabel() {
	pr := &i.env.Print
	cp := i.currentPoint()
	if !pr.haveLabelEnd || pr.labelEnd != cp {
		pr.CarriageReturn = cp
	}
}

func (i *Interpreter) endLabel() {
	pr := &i.env.Print
	pr.labelEnd = i.currentPoint()
	pr.haveLabelEnd = true
}

// opLB draws a label.  The text extends up to the label terminator.
func (i *Interpreter) opLB() error {
	ch := &i.env.Character
	draw := !i.env.Print.Lost && !i.env.Polygon.Enabled
	var text []byte
	for {
		b, err := i.sc.Byte()
		if err != nil {
			break
		}
		if b == scan.ESC {
			i.sc.Unread()
			break
		}
		if b == ch.Terminator {
			if ch.TermMode == TerminatorPrinted {
				text = append(text, b)
			}
			break
		}
		text = append(text, b)
	}
	if !draw {
		return nil
	}

	if err := i.flushPath(); err != nil {
		return err
	}
	i.startLabel()

	attrs := i.textAttrs()
	gk, canDraw := i.k.(gfx.GlyphKernel)
	canDraw = canDraw && i.env.LineFill.Pen != 0
	advance := attrs.Advance.Mul(cellAdvance)
	down := attrs.Up.Mul(-lineAdvance)

	pr := &i.env.Print
	p := i.currentPoint()
	for _, b := range text {
		switch {
		case b == '\r':
			p = pr.CarriageReturn
		case b == '\n':
			p = p.Add(down)
			pr.CarriageReturn = pr.CarriageReturn.Add(down)
		case b == '\b':
			p = p.Sub(advance)
		case b == ' ':
			p = p.Add(advance)
		case b < ' ' || b == 0x7F:
			// other control characters are ignored
		default:
			if canDraw {
				if err := gk.Glyph(p, b, &attrs); err != nil {
					return err
				}
			}
			p = p.Add(advance)
		}
	}
	i.k.NewPath()
	i.k.MoveTo(p)
	i.endLabel()
	return nil
}
