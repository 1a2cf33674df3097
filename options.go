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
	"log/slog"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/hpgl/transform"
)

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used by the interpreter.  By default, the
// interpreter produces no log output.
//
// Log levels:
//   - [slog.LevelDebug]: unknown operators, operators ignored in the current mode
//   - [slog.LevelWarn]: malformed parameters, lost mode
func WithLogger(l *slog.Logger) Option {
	return func(i *Interpreter) {
		if l == nil {
			l = newNopLogger()
		}
		i.log = l
	}
}

// WithTickle installs a callback which is invoked periodically during
// long operations.  A non-nil return value aborts the job.
func WithTickle(fn func() error) Option {
	return func(i *Interpreter) {
		i.tickle = fn
	}
}

// WithPageCTM sets the matrix which maps page units (7200 per inch, y
// down) to device space.  The default is the identity.
func WithPageCTM(m matrix.Matrix) Option {
	return func(i *Interpreter) {
		i.pageCTM = m
	}
}

// WithFrame sets the initial picture frame.  The default is
// [transform.LetterFrame].
func WithFrame(f transform.Frame) Option {
	return func(i *Interpreter) {
		i.frame = f
	}
}
