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
	"errors"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hpgl/scan"
)

// PE flag bytes, compared on the low seven bits.
const (
	peSevenBit  = '7'
	peSelectPen = ':'
	peEnd       = ';'
	pePenUp     = '<'
	peAbsolute  = '='
	peFraction  = '>'
)

// errPEStop ends PE decoding at an ESC byte or at the end of input.
var errPEStop = errors.New("end of PE data")

// peDecoder decodes the Polyline Encoded format.
type peDecoder struct {
	sc *scan.Scanner

	sevenBit     bool // base 32 instead of base 64
	fractionBits int

	// flags for the next coordinate pair only
	absolute bool
	penUp    bool
}

// readValue decodes one signed number.  The overflow result is set if
// the value does not fit into 32 bits; the digits are consumed anyway.
func (d *peDecoder) readValue() (v int32, overflow bool, err error) {
	var accum uint64
	shift := 0
	for {
		b, err := d.sc.Byte()
		if err != nil {
			return 0, false, errPEStop
		}
		if b == scan.ESC {
			d.sc.Unread()
			return 0, false, errPEStop
		}

		digit, last, ok := d.digit(b)
		if !ok {
			continue
		}
		if digit != 0 {
			if shift >= 32 || uint64(digit)<<shift > math.MaxUint32 {
				overflow = true
			} else {
				accum |= uint64(digit) << shift
			}
		}
		if d.sevenBit {
			shift += 5
		} else {
			shift += 6
		}
		if last {
			break
		}
	}
	if overflow {
		return 0, true, nil
	}
	return int32(uint32(accum)>>1) ^ -int32(accum&1), false, nil
}

// digit classifies a data byte.  Bytes outside the digit ranges are
// ignored.
func (d *peDecoder) digit(b byte) (value byte, last, ok bool) {
	if d.sevenBit {
		switch {
		case b >= 63 && b <= 94:
			return b - 63, false, true
		case b >= 95 && b <= 126:
			return b - 95, true, true
		}
		return 0, false, false
	}
	switch {
	case b >= 63 && b <= 126:
		return b - 63, false, true
	case b >= 191 && b <= 254:
		return b - 191, true, true
	}
	return 0, false, false
}

// opPE executes a Polyline Encoded sequence.
func (i *Interpreter) opPE() error {
	d := &peDecoder{sc: i.sc}
	pairs := 0
loop:
	for {
		b, err := i.sc.Peek()
		if err != nil || b == scan.ESC {
			break
		}

		switch b & 0x7F {
		case peEnd:
			i.sc.Byte()
			if err := i.flushPath(); err != nil {
				return err
			}
			return i.endDrawing()

		case peSevenBit:
			i.sc.Byte()
			d.sevenBit = true
			continue

		case pePenUp:
			i.sc.Byte()
			d.penUp = true
			continue

		case peAbsolute:
			i.sc.Byte()
			d.absolute = true
			continue

		case peSelectPen:
			i.sc.Byte()
			v, overflow, err := d.readValue()
			if err != nil {
				break loop
			}
			if v < 0 {
				i.log.Warn("invalid pen", "op", "PE", "pen", v)
			} else if !overflow {
				if err := i.selectPen(int(v)); err != nil {
					return err
				}
			}
			continue

		case peFraction:
			i.sc.Byte()
			v, overflow, err := d.readValue()
			if err != nil {
				break loop
			}
			if !overflow && v >= -maxFractionBits && v <= maxFractionBits {
				d.fractionBits = int(v)
			}
			continue
		}

		if _, _, ok := d.digit(b); !ok {
			i.sc.Byte()
			continue
		}

		x, xOver, err := d.readValue()
		if err != nil {
			break loop
		}
		y, yOver, err := d.readValue()
		if err != nil {
			break loop
		}
		if err := i.pePair(d, x, y, xOver || yOver); err != nil {
			return err
		}

		pairs++
		if pairs%peTicklePairs == 0 && i.tickle != nil {
			if err := i.tickle(); err != nil {
				return err
			}
		}
	}
	return i.endDrawing()
}

// pePair moves the pen by one decoded coordinate pair.
func (i *Interpreter) pePair(d *peDecoder, x, y int32, overflow bool) error {
	absolute, penUp := d.absolute, d.penUp
	d.absolute, d.penUp = false, false

	if overflow {
		i.enterLost("PE")
		return nil
	}
	if absolute {
		i.env.Print.Lost = false
	} else if i.env.Print.Lost {
		return nil
	}

	scale := math.Ldexp(1, -d.fractionBits)
	p := vec.Vec2{X: float64(x) * scale, Y: float64(y) * scale}
	q := i.toPlotter(p, !absolute)
	if tooLarge(q) {
		i.enterLost("PE")
		return nil
	}

	if penUp {
		i.env.Vector.Pen = PenUp
	} else {
		i.env.Vector.Pen = PenDown
	}
	i.lineTo(q, true)
	return nil
}

const (
	maxFractionBits = 26
	peTicklePairs   = 256
)
