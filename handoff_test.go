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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/hpgl/gfx"
	"seehuhn.de/go/hpgl/scan"
	"seehuhn.de/go/hpgl/transform"
)

func TestEnterAtCursor(t *testing.T) {
	ip, _ := newTestInterpreter(t)

	// one inch right of and one inch above the lower-left frame corner
	cursor := vec2(1800+7200, 75600-7200)
	h, err := ip.Enter(1, cursor)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(vec2(1016, 1016), ip.Pen(), approx); diff != "" {
		t.Errorf("pen (-want +got):\n%s", diff)
	}

	pos, err := ip.Exit(h, 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cursor, pos, approx); diff != "" {
		t.Errorf("cursor after exit (-want +got):\n%s", diff)
	}
}

func TestExitKeepsHostCursor(t *testing.T) {
	ip, _ := newTestInterpreter(t)
	cursor := vec2(3000, 4000)
	h, err := ip.Enter(0, cursor)
	if err != nil {
		t.Fatal(err)
	}
	err = ip.Run(context.Background(), scan.New(strings.NewReader("PA500,500;")))
	if err != nil {
		t.Fatal(err)
	}
	pos, err := ip.Exit(h, 0)
	if err != nil {
		t.Fatal(err)
	}
	if pos != cursor {
		t.Errorf("cursor %v, want %v", pos, cursor)
	}

	// the pen keeps its position for the next HP-GL/2 session
	h, err = ip.Enter(2, cursor)
	if err != nil {
		t.Fatal(err)
	}
	if got := ip.Pen(); got != vec2(500, 500) {
		t.Errorf("pen at %v after re-entering", got)
	}
	if _, err := ip.Exit(h, 0); err != nil {
		t.Fatal(err)
	}
}

func TestHostStateRestored(t *testing.T) {
	rec := &gfx.Recorder{}
	dev := gfx.NewDevice(rec)
	host := matrix.Matrix{2, 0, 0, 2, 10, 10}
	dev.SetCTM(host)
	dev.MoveTo(vec2(1, 2))

	ip, err := New(dev)
	if err != nil {
		t.Fatal(err)
	}
	h, err := ip.Enter(0, vec2(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if dev.CTM() == host {
		t.Error("HP-GL/2 mode uses the host CTM")
	}
	if dev.ClipDepth() != 1 {
		t.Errorf("clip depth %d inside HP-GL/2 mode", dev.ClipDepth())
	}
	if _, err := ip.Exit(h, 0); err != nil {
		t.Fatal(err)
	}

	if dev.CTM() != host {
		t.Errorf("host CTM %v not restored", dev.CTM())
	}
	if dev.ClipDepth() != 0 {
		t.Errorf("clip depth %d after exit", dev.ClipDepth())
	}
	if cp, _ := dev.CurrentPoint(); cp != vec2(1, 2) {
		t.Errorf("host current point %v", cp)
	}
}

func TestEnterErrors(t *testing.T) {
	ip, _ := newTestInterpreter(t)

	err := ip.Run(context.Background(), scan.New(strings.NewReader("PA0,0;")))
	if !errors.Is(err, ErrNotEntered) {
		t.Errorf("Run outside HP-GL/2 mode: %v", err)
	}
	if _, err := ip.Exit(&Handoff{}, 0); !errors.Is(err, ErrNotEntered) {
		t.Errorf("Exit outside HP-GL/2 mode: %v", err)
	}

	h, err := ip.Enter(0, vec2(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !ip.Entered() {
		t.Error("not entered")
	}
	if _, err := ip.Enter(0, vec2(0, 0)); !errors.Is(err, ErrAlreadyEntered) {
		t.Errorf("second Enter: %v", err)
	}
	if _, err := ip.Exit(h, 0); err != nil {
		t.Fatal(err)
	}
	if ip.Entered() {
		t.Error("still entered after Exit")
	}
}

func TestEnvironmentStack(t *testing.T) {
	ip, _ := newTestInterpreter(t)
	ip.SaveEnvironment()
	if ip.EnvironmentDepth() != 1 {
		t.Fatalf("depth %d", ip.EnvironmentDepth())
	}

	runProgram(t, ip, "SP2;LT3;")
	if err := ip.RestoreEnvironment(); err != nil {
		t.Fatal(err)
	}
	lf := &ip.env.LineFill
	if lf.Pen != 1 || lf.Line.Type != 0 {
		t.Errorf("pen %d, line type %d after restore", lf.Pen, lf.Line.Type)
	}
	if !ip.dirty {
		t.Error("restore outside HP-GL/2 mode does not mark the kernel state as stale")
	}

	if err := ip.RestoreEnvironment(); !errors.Is(err, ErrEnvironmentUnderflow) {
		t.Errorf("got %v, want ErrEnvironmentUnderflow", err)
	}
}

func TestEnvironmentRestoreLeavesPolygonMode(t *testing.T) {
	ip, _ := newTestInterpreter(t)
	ip.SaveEnvironment()

	h, err := ip.Enter(0, vec2(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	err = ip.Run(context.Background(), scan.New(strings.NewReader("PM0;PD;PA100,100,0,100;")))
	if err != nil {
		t.Fatal(err)
	}
	if !ip.PolygonMode() {
		t.Fatal("polygon mode not active")
	}
	if err := ip.RestoreEnvironment(); err != nil {
		t.Fatal(err)
	}
	if ip.PolygonMode() || !ip.PolygonBuffer().IsEmpty() {
		t.Error("polygon mode survived the restore")
	}
	if ip.dirty {
		t.Error("kernel not synchronized inside HP-GL/2 mode")
	}
	if _, err := ip.Exit(h, 0); err != nil {
		t.Fatal(err)
	}
}

func TestSetPlotSize(t *testing.T) {
	ip, _ := newTestInterpreter(t)
	if err := ip.SetPlotSize(28800, 36000); err != nil {
		t.Fatal(err)
	}
	runProgram(t, ip, "PA1000,500;")
	if diff := cmp.Diff(vec2(2000, 1000), ip.Pen(), approx); diff != "" {
		t.Errorf("pen (-want +got):\n%s", diff)
	}
	if ip.dirty {
		t.Error("plot size not sent to the kernel")
	}
}

func TestSetPictureFrame(t *testing.T) {
	ip, rec := newTestInterpreter(t)
	runProgram(t, ip, "IW0,0,100,100;")

	f := transform.Frame{Width: 36000, Height: 36000}
	if err := ip.SetPictureFrame(f); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(vec2(5080, 5080), ip.env.Config.P2, approx); diff != "" {
		t.Errorf("P2 (-want +got):\n%s", diff)
	}
	if ip.env.Config.Window.Type == SoftClipWindow {
		t.Error("soft-clip window survived the frame change")
	}

	runProgram(t, ip, "PD;PA1000,1000;")
	strokes := opsOfKind(rec, gfx.OpStroke)
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	want := rect.Rect{LLx: 0, LLy: 0, URx: 36000, URy: 36000}
	if diff := cmp.Diff(want, strokes[0].State.Clip, approx); diff != "" {
		t.Errorf("clip (-want +got):\n%s", diff)
	}

	if err := ip.SetPictureFrame(transform.Frame{}); err == nil {
		t.Error("empty picture frame accepted")
	}
}
