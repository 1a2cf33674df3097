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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/hpgl/gfx"
	"seehuhn.de/go/hpgl/scan"
	"seehuhn.de/go/hpgl/transform"
)

var (
	// ErrNotEntered is returned when operators are executed outside of
	// HP-GL/2 mode.
	ErrNotEntered = errors.New("HP-GL/2 mode not entered")

	// ErrAlreadyEntered is returned by Enter if HP-GL/2 mode is active.
	ErrAlreadyEntered = errors.New("HP-GL/2 mode already entered")

	// ErrEnvironmentUnderflow is returned by RestoreEnvironment when no
	// environment was saved.
	ErrEnvironmentUnderflow = errors.New("print environment stack underflow")
)

// Interpreter executes HP-GL/2 commands, sending the resulting graphics
// to a kernel.  An Interpreter is not safe for concurrent use.
type Interpreter struct {
	k       gfx.Kernel
	sc      *scan.Scanner
	log     *slog.Logger
	tickle  func() error
	pageCTM matrix.Matrix
	frame   transform.Frame

	env      environment
	envStack []environment

	// polygon is the polygon buffer.  It is also used as scratch space
	// for the rectangle and wedge commands.
	polygon gfx.Path
	figure  bool

	patterns map[patternKey]*gfx.Pattern

	hpglState   gfx.GState // kernel state while the host is active
	haveState   bool
	entered     bool
	initialized bool
	clipPushed  bool
	dirty       bool // host-side changes not yet sent to the kernel
}

// New returns an interpreter which draws using k.
func New(k gfx.Kernel, opts ...Option) (*Interpreter, error) {
	i := &Interpreter{
		k:        k,
		log:      newNopLogger(),
		pageCTM:  matrix.Identity,
		frame:    transform.LetterFrame(),
		patterns: make(map[patternKey]*gfx.Pattern),
	}
	for _, opt := range opts {
		opt(i)
	}
	env, err := defaultEnvironment(i.frame)
	if err != nil {
		return nil, fmt.Errorf("picture frame: %w", err)
	}
	i.env = env
	return i, nil
}

// Run executes commands from sc until the end of input, an ESC byte, a
// context cancellation or a kernel error.  At the end of input, the
// pending path is drawn and nil is returned.  When an ESC byte is
// reached, scan.ErrEscape is returned and the ESC is left unread.
func (i *Interpreter) Run(ctx context.Context, sc *scan.Scanner) error {
	if !i.entered {
		return ErrNotEntered
	}
	i.sc = sc
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c1, c2, err := sc.Mnemonic()
		if err == io.EOF {
			if err := i.finish(); err != nil {
				return err
			}
			return sc.Err()
		} else if errors.Is(err, scan.ErrEscape) {
			if err := i.finish(); err != nil {
				return err
			}
			return err
		} else if err != nil {
			return err
		}

		e := lookup(c1, c2)
		if e == nil {
			i.log.Debug("unknown operator", "op", string([]byte{c1, c2}))
			sc.Recover()
			continue
		}
		if err := i.dispatch(e); err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
	}
}

// Exec runs a stand-alone HP-GL/2 program.  Escape sequences of the host
// language are skipped.
func (i *Interpreter) Exec(ctx context.Context, r io.Reader) error {
	h, err := i.Enter(0, vec.Vec2{})
	if err != nil {
		return err
	}
	sc := scan.New(r)
	for {
		err = i.Run(ctx, sc)
		if !errors.Is(err, scan.ErrEscape) {
			break
		}
		sc.SkipEscape()
	}
	if _, exitErr := i.Exit(h, 0); err == nil {
		err = exitErr
	}
	return err
}

// finish draws everything which is still pending.
func (i *Interpreter) finish() error {
	if err := i.processPathContinuation(false); err != nil {
		return err
	}
	return i.flushPath()
}

// syntax logs a malformed parameter and skips the rest of the command.
func (i *Interpreter) syntax(op string, res scan.Result) {
	i.log.Warn("malformed parameters", "op", op, "result", res)
	i.sc.Recover()
}

// Pen returns the current pen position in plotter units.
func (i *Interpreter) Pen() vec.Vec2 {
	return i.currentPoint()
}

// Ctms returns the current coordinate transformation matrices.
func (i *Interpreter) Ctms() transform.Ctms {
	return i.env.Ctms
}

// PenState returns the current pen state.
func (i *Interpreter) PenState() PenState {
	return i.env.Vector.Pen
}

// Lost reports whether the interpreter is in lost mode.
func (i *Interpreter) Lost() bool {
	return i.env.Print.Lost
}

// PolygonMode reports whether polygon mode is active.
func (i *Interpreter) PolygonMode() bool {
	return i.env.Polygon.Enabled
}

// PolygonBuffer returns the polygon buffer.  The path must not be
// modified.
func (i *Interpreter) PolygonBuffer() *gfx.Path {
	return &i.polygon
}

// setup replaces the coordinate setup.  The matrices are recomputed
// first, so that the state is unchanged if the new setup is degenerate.
func (i *Interpreter) setup(s transform.Setup) error {
	ctms, err := transform.NewCtms(i.frame, s)
	if err != nil {
		return err
	}
	if err := i.flushPath(); err != nil {
		return err
	}
	i.env.Config.Setup = s
	i.env.Ctms = ctms
	return nil
}

// diagonal returns the distance between P1 and P2 in plotter units.
func (i *Interpreter) diagonal() float64 {
	return i.env.Config.P2.Sub(i.env.Config.P1).Length()
}

// toPlotter converts a job point into plotter units.  Relative points
// are taken from the current pen position.
func (i *Interpreter) toPlotter(p vec.Vec2, relative bool) vec.Vec2 {
	if relative {
		return i.currentPoint().Add(i.env.Ctms.JobToPlotter(p, true))
	}
	return i.env.Ctms.JobToPlotter(p, false)
}

// tooLarge reports whether a plotter coordinate is out of range.
func tooLarge(p vec.Vec2) bool {
	return p.X > scan.MaxValue || p.X < -scan.MaxValue ||
		p.Y > scan.MaxValue || p.Y < -scan.MaxValue
}

// enterLost switches to lost mode.
func (i *Interpreter) enterLost(op string) {
	if !i.env.Print.Lost {
		i.log.Warn("entering lost mode", "op", op)
	}
	i.env.Print.Lost = true
}
