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

import "seehuhn.de/go/geom/vec"

const (
	all  = ModePolygon | ModeLost
	pc   = ModePathContinuation
	skip = ModePathIgnore
)

func init() {
	register(
		// configuration
		entry{"IN", (*Interpreter).opIN, all},
		entry{"DF", (*Interpreter).opDF, ModeLost},
		entry{"IP", (*Interpreter).opIP, ModeLost},
		entry{"IR", (*Interpreter).opIR, ModeLost},
		entry{"SC", (*Interpreter).opSC, ModeLost},
		entry{"RO", (*Interpreter).opRO, ModeLost},
		entry{"IW", (*Interpreter).opIW, ModeLost},
		entry{"CO", (*Interpreter).opCO, all | skip},

		// vectors
		entry{"PA", (*Interpreter).opPA, all | pc},
		entry{"PR", (*Interpreter).opPR, ModePolygon | pc},
		entry{"PU", (*Interpreter).opPU, all},
		entry{"PD", (*Interpreter).opPD, all | pc},
		entry{"PE", (*Interpreter).opPE, all | pc},
		entry{"AA", (*Interpreter).opAA, ModePolygon | pc},
		entry{"AR", (*Interpreter).opAR, ModePolygon | pc},
		entry{"AT", (*Interpreter).opAT, ModePolygon | pc},
		entry{"RT", (*Interpreter).opRT, ModePolygon | pc},
		entry{"CI", (*Interpreter).opCI, ModePolygon},
		entry{"BZ", (*Interpreter).opBZ, ModePolygon | pc},
		entry{"BR", (*Interpreter).opBR, ModePolygon | pc},
		entry{"CT", (*Interpreter).opCT, all | skip},

		// polygons
		entry{"PM", (*Interpreter).opPM, all},
		entry{"EP", (*Interpreter).opEP, ModeNone},
		entry{"FP", (*Interpreter).opFP, ModeNone},
		entry{"EA", (*Interpreter).opEA, ModePolygon},
		entry{"ER", (*Interpreter).opER, ModePolygon},
		entry{"RA", (*Interpreter).opRA, ModePolygon},
		entry{"RR", (*Interpreter).opRR, ModePolygon},
		entry{"EW", (*Interpreter).opEW, ModePolygon},
		entry{"WG", (*Interpreter).opWG, ModePolygon},

		// line and fill attributes
		entry{"SP", (*Interpreter).opSP, ModeLost},
		entry{"NP", (*Interpreter).opNP, ModeLost},
		entry{"LT", (*Interpreter).opLT, ModeLost},
		entry{"PW", (*Interpreter).opPW, ModeLost},
		entry{"WU", (*Interpreter).opWU, ModeLost},
		entry{"LA", (*Interpreter).opLA, ModeLost},
		entry{"FT", (*Interpreter).opFT, ModeLost},
		entry{"RF", (*Interpreter).opRF, ModeLost | skip},
		entry{"AC", (*Interpreter).opAC, ModeLost},
		entry{"SM", (*Interpreter).opSM, ModeLost},
		entry{"TR", (*Interpreter).opTR, ModeLost | skip},

		// characters
		entry{"DT", (*Interpreter).opDT, all | skip},
		entry{"SI", (*Interpreter).opSI, all | skip},
		entry{"SR", (*Interpreter).opSR, all | skip},
		entry{"SL", (*Interpreter).opSL, all | skip},
		entry{"DI", (*Interpreter).opDI, all | skip},
		entry{"DR", (*Interpreter).opDR, all | skip},
		entry{"CP", (*Interpreter).opCP, ModeLost},
		entry{"LB", (*Interpreter).opLB, all},

		// technical
		entry{"MC", (*Interpreter).opMC, ModeLost | skip},
		entry{"PP", (*Interpreter).opPP, ModeLost | skip},
		entry{"QL", (*Interpreter).opQL, ModeLost | skip},
	)
}

func vec2(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
