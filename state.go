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
	"slices"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/hpgl/transform"
)

// PlotMode selects how coordinates of PA, PR, PD and PU are interpreted.
type PlotMode int

const (
	Absolute PlotMode = iota
	Relative
)

// PenState tells whether drawing commands leave a mark.
type PenState int

const (
	PenUp PenState = iota
	PenDown
)

func (p PenState) String() string {
	if p == PenDown {
		return "down"
	}
	return "up"
}

// SoftClip identifies the source of the soft-clip rectangle.
type SoftClip int

const (
	SoftClipFrame SoftClip = iota
	SoftClipWindow
)

// ClipWindow is the soft-clip window set by IW, in plotter units.
type ClipWindow struct {
	LL, UR vec.Vec2
	Type   SoftClip
}

// ConfigState holds the coordinate setup and the soft-clip window.
type ConfigState struct {
	transform.Setup
	Window ClipWindow
}

func defaultConfig(f transform.Frame) ConfigState {
	return ConfigState{Setup: transform.DefaultSetup(f)}
}

// VectorState holds the plot mode and the pen state.
type VectorState struct {
	Mode PlotMode
	Pen  PenState
}

// WidthMode selects the unit of pen widths.
type WidthMode int

const (
	// WidthMetric gives pen widths in millimetres.
	WidthMetric WidthMode = iota

	// WidthRelative gives pen widths in percent of the P1-P2 diagonal.
	WidthRelative
)

// FillKind is the fill type selected by FT.
type FillKind int

const (
	FillSolid      FillKind = 1
	FillSolidAlt   FillKind = 2
	FillHatch      FillKind = 3
	FillCrossHatch FillKind = 4
	FillShading    FillKind = 10
	FillUser       FillKind = 11
	FillPCL        FillKind = 21
	FillPCLUser    FillKind = 22
)

// LineType describes a dash pattern selected by LT.
type LineType struct {
	// Type is 0 for solid lines and 1 to 8 for the fixed patterns.
	Type     int
	Adaptive bool

	// Length is the pattern length, in percent of the P1-P2 diagonal
	// or, if Absolute is set, in millimetres.
	Length   float64
	Absolute bool
}

// LineFillState holds the line and fill attributes.
type LineFillState struct {
	Line     LineType
	Previous LineType // restored by LT99
	Residue  float64  // dash phase carried over to the next stroke, in plotter units

	Widths    []float64 // indexed by pen, in units of WidthMode
	WidthMode WidthMode

	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64

	// Anchor is the origin of fill patterns, in plotter units.
	Anchor vec.Vec2

	Fill        FillKind
	FillSpacing float64 // hatch spacing in plotter units, 0 means default
	FillAngle   float64 // degrees
	FillLevel   float64 // shading percentage
	FillPattern int     // RF or PCL pattern id

	Symbol      byte // 0 when symbol mode is off
	Transparent bool

	Pen      int
	PenCount int
}

func defaultLineFill() LineFillState {
	lf := LineFillState{
		Line:        LineType{Length: defaultPatternLength},
		Previous:    LineType{Length: defaultPatternLength},
		WidthMode:   WidthMetric,
		Cap:         graphics.LineCapButt,
		Join:        graphics.LineJoinMiter,
		MiterLimit:  defaultMiterLimit,
		Fill:        FillSolid,
		FillLevel:   100,
		Transparent: true,
		Pen:         1,
		PenCount:    defaultPenCount,
	}
	lf.resetWidths()
	return lf
}

func (lf *LineFillState) resetWidths() {
	w := defaultMetricWidth
	if lf.WidthMode == WidthRelative {
		w = defaultRelativeWidth
	}
	lf.Widths = make([]float64, lf.PenCount)
	for k := range lf.Widths {
		lf.Widths[k] = w
	}
}

// PolygonState describes polygon mode.  The buffer itself is owned by
// the interpreter.
type PolygonState struct {
	Enabled  bool
	SavedPen PenState

	// Restart is set by PM1.  The next pen-up move starts a new subpath
	// instead of adding an invisible edge.
	Restart bool
}

// PrintState holds the pen bookkeeping of the print environment.
type PrintState struct {
	InitialPen     vec.Vec2
	CarriageReturn vec.Vec2

	// Lost is set when coordinates cannot be trusted.  Drawing is
	// suppressed until an absolute coordinate is seen.
	Lost bool

	// DotCandidate is set by a PD without coordinates.
	DotCandidate bool

	// Symbols collects the points where symbol-mode characters are
	// stamped once the current drawing command completes.
	Symbols []vec.Vec2

	labelEnd     vec.Vec2
	haveLabelEnd bool
}

// LabelMode tells whether the label terminator is printed.
type LabelMode int

const (
	TerminatorPrinted LabelMode = iota
	TerminatorHidden
)

// CharacterState holds the label attributes.
type CharacterState struct {
	Terminator byte
	TermMode   LabelMode

	// Size is the character width and cap height, in centimetres or, if
	// RelativeSize is set, in percent of P2-P1.  A zero size selects the
	// default size.
	Size         vec.Vec2
	RelativeSize bool

	Slant float64 // tangent of the slant angle

	// Direction is the run and rise of the label baseline.
	Direction         vec.Vec2
	RelativeDirection bool
}

func defaultCharacter() CharacterState {
	return CharacterState{
		Terminator: defaultTerminator,
		TermMode:   TerminatorHidden,
		Direction:  vec.Vec2{X: 1, Y: 0},
	}
}

// ChordMode selects how chord tolerances are given.
type ChordMode int

const (
	ChordAngle ChordMode = iota
	ChordDeviation
)

// TechnicalState holds settings which only affect rendering quality.
type TechnicalState struct {
	Merge          int
	MergeOp        int
	PixelPlacement int
	Quality        int
	Chord          ChordMode
}

func defaultTechnical() TechnicalState {
	return TechnicalState{MergeOp: defaultMergeOp, Quality: defaultQuality}
}

// environment groups all state of one print-environment level.
type environment struct {
	Config    ConfigState
	Ctms      transform.Ctms
	Vector    VectorState
	LineFill  LineFillState
	Polygon   PolygonState
	Print     PrintState
	Character CharacterState
	Technical TechnicalState
}

func defaultEnvironment(f transform.Frame) (environment, error) {
	env := environment{
		Config:    defaultConfig(f),
		LineFill:  defaultLineFill(),
		Character: defaultCharacter(),
		Technical: defaultTechnical(),
	}
	ctms, err := transform.NewCtms(f, env.Config.Setup)
	if err != nil {
		return environment{}, err
	}
	env.Ctms = ctms
	return env, nil
}

func (e *environment) clone() environment {
	c := *e
	c.LineFill.Widths = slices.Clone(e.LineFill.Widths)
	c.Print.Symbols = slices.Clone(e.Print.Symbols)
	return c
}

const (
	defaultPenCount      = 8
	defaultMetricWidth   = 0.35 // mm
	defaultRelativeWidth = 0.1  // percent of the P1-P2 diagonal
	defaultMiterLimit    = 5
	defaultPatternLength = 4 // percent of the P1-P2 diagonal
	defaultTerminator    = 3 // ETX
	defaultQuality       = 50
)
