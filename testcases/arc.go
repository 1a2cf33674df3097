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

var arcCases = []TestCase{
	{
		Name:    "circle",
		Program: "IN;SP1;PW0.5;PA1000,750;CI500;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "circle_coarse",
		Program: "IN;SP1;PW0.5;PA1000,750;CI500,45;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "arc_absolute",
		Program: "IN;SP1;PW0.5;PA1500,750;PD;AA1000,750,270;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "arc_relative_clockwise",
		Program: "IN;SP1;PW0.5;PA1500,750;PD;AR-500,0,-180;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "three_point",
		Program: "IN;SP1;PW0.5;PA300,300;PD;AT1000,1200,1700,300;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "three_point_colinear",
		Program: "IN;SP1;PW0.5;PA300,750;PD;AT1000,750,1700,750;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "chord_deviation",
		Program: "IN;SP1;PW0.5;CT1;PA1000,750;CI600,60;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "circle_dot",
		Program: "IN;SP1;PW1;PA1000,750;PD;CI400;PU;",
		Width:   200,
		Height:  150,
	},
}
