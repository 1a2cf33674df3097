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

package testcases

var vectorCases = []TestCase{
	{
		Name:    "line",
		Program: "IN;SP1;PW1;PA100,750;PD;PA1900,750;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "polyline",
		Program: "IN;SP1;PW0.5;PA200,200;PD;PA600,1300,1000,200,1400,1300,1800,200;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "relative",
		Program: "IN;SP1;PW0.5;PA200,200;PD;PR400,0,0,400,-400,0,0,-400;PU;PR800,0;PD;PR300,300,300,-300;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "dots",
		Program: "IN;SP1;PW2;PA500,500;PD;PU;PA1000,500;PD;PU;PA1500,500;PD;PU;",
		Width:   200,
		Height:  100,
	},
	{
		Name:    "pen_up_gap",
		Program: "IN;SP1;PW0.5;PA100,500;PD;PA700,500;PU;PA1300,500;PD;PA1900,500;",
		Width:   200,
		Height:  100,
	},
	{
		Name:    "bezier",
		Program: "IN;SP1;PW0.5;PA200,200;PD;BZ600,1400,1400,1400,1800,200;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "bezier_relative",
		Program: "IN;SP1;PW0.5;PA200,750;PD;BR200,500,400,-500,600,0,200,500,400,-500,600,0;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "pens",
		Program: "IN;PW1;SP1;PA200,200;PD;PA1800,200;PU;SP2;PA200,600;PD;PA1800,600;PU;SP5;PA200,1000;PD;PA1800,1000;",
		Width:   200,
		Height:  120,
	},
}
