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

var polygonCases = []TestCase{
	{
		Name:    "rectangle_fill",
		Program: "IN;SP1;PA400,300;RA1600,1200;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "rectangle_edge",
		Program: "IN;SP1;PW1;PA400,300;ER1200,900;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "wedge",
		Program: "IN;SP1;PA1000,750;WG600,30,120;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "wedge_edge",
		Program: "IN;SP1;PW0.5;PA1000,750;EW600,-45,270;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "polygon_even_odd",
		Program: "IN;SP1;PA200,200;PM0;PD;PA1800,200,1800,1300,200,1300;PM1;PU;PA600,500;PD;PA1400,500,1400,1000,600,1000;PM2;FP;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "polygon_nonzero",
		Program: "IN;SP1;PA200,200;PM0;PD;PA1800,200,1800,1300,200,1300;PM1;PU;PA600,500;PD;PA1400,500,1400,1000,600,1000;PM2;FP1;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "polygon_edge",
		Program: "IN;SP1;PW0.5;PA1000,200;PM0;PD;PA1700,1300,300,1300;PM2;EP;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "polygon_circle",
		Program: "IN;SP1;PA1000,750;PM0;CI600;CI300;PM2;FP;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "polygon_pen_up_edge",
		Program: "IN;SP1;PW0.5;PA300,300;PM0;PD;PA1700,300;PU;PA1700,1200;PD;PA300,1200;PM2;EP;FP;",
		Width:   200,
		Height:  150,
	},
}
