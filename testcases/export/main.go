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

// Command export writes the painting operations of all test cases to
// testdata/testcases.json.  This allows to compare the interpreter
// output with other implementations.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/hpgl"
	"seehuhn.de/go/hpgl/gfx"
	"seehuhn.de/go/hpgl/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			jtc, err := toJSON(category, &tc)
			if err != nil {
				panic(fmt.Errorf("%s_%s: %w", category, tc.Name, err))
			}
			out.TestCases = append(out.TestCases, jtc)
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name    string   `json:"name"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Program string   `json:"program"`
	Ops     []jsonOp `json:"ops"`
}

type jsonOp struct {
	Op         string        `json:"op"`
	Path       []jsonSegment `json:"path"`
	CTM        []float64     `json:"ctm"`
	Clip       []float64     `json:"clip"`
	Pen        int           `json:"pen"`
	Paint      string        `json:"paint,omitempty"`
	FillRule   string        `json:"fill_rule,omitempty"`
	LineWidth  float64       `json:"line_width,omitempty"`
	LineCap    string        `json:"line_cap,omitempty"`
	LineJoin   string        `json:"line_join,omitempty"`
	MiterLimit float64       `json:"miter_limit,omitempty"`
	Dash       []float64     `json:"dash,omitempty"`
	DashPhase  float64       `json:"dash_phase,omitempty"`
}

type jsonSegment struct {
	Cmd string      `json:"cmd"`
	Pts [][]float64 `json:"pts"`
}

func toJSON(category string, tc *testcases.TestCase) (jsonTestCase, error) {
	rec := &gfx.Recorder{}
	ip, err := hpgl.New(gfx.NewDevice(rec),
		hpgl.WithFrame(tc.Frame()),
		hpgl.WithPageCTM(tc.PageCTM()))
	if err != nil {
		return jsonTestCase{}, err
	}
	err = ip.Exec(context.Background(), strings.NewReader(tc.Program))
	if err != nil {
		return jsonTestCase{}, err
	}

	jtc := jsonTestCase{
		Name:    category + "_" + tc.Name,
		Width:   tc.Width,
		Height:  tc.Height,
		Program: tc.Program,
	}
	for _, op := range rec.Ops {
		if op.Kind == gfx.OpGlyph {
			continue
		}
		clip := op.State.Clip
		jop := jsonOp{
			Op:   op.Kind.String(),
			Path: pathToJSON(op.Path),
			CTM:  op.State.CTM[:],
			Clip: []float64{clip.LLx, clip.LLy, clip.URx, clip.URy},
		}
		switch op.Kind {
		case gfx.OpFill:
			jop.Pen = op.Fill.Paint.Pen
			jop.Paint = op.Fill.Paint.Kind.String()
			jop.FillRule = op.Fill.Rule.String()
		case gfx.OpStroke:
			jop.Pen = op.Line.Paint.Pen
			jop.LineWidth = op.Line.Width
			jop.LineCap = op.Line.Cap.String()
			jop.LineJoin = op.Line.Join.String()
			jop.MiterLimit = op.Line.MiterLimit
			jop.Dash = op.Line.Dash
			jop.DashPhase = op.Line.DashPhase
		}
		jtc.Ops = append(jtc.Ops, jop)
	}
	return jtc, nil
}

func pathToJSON(p *path.Data) []jsonSegment {
	var segs []jsonSegment
	for cmd, pts := range p.Iter() {
		seg := jsonSegment{Pts: make([][]float64, len(pts))}
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd = "M"
		case path.CmdLineTo:
			seg.Cmd = "L"
		case path.CmdQuadTo:
			seg.Cmd = "Q"
		case path.CmdCubeTo:
			seg.Cmd = "C"
		case path.CmdClose:
			seg.Cmd = "Z"
		}
		for i, pt := range pts {
			seg.Pts[i] = []float64{pt.X, pt.Y}
		}
		segs = append(segs, seg)
	}
	return segs
}
