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

var attrCases = []TestCase{
	{
		Name:    "caps",
		Program: "IN;SP1;PW3;LA1,1;PA300,300;PD;PA1700,300;PU;LA1,2;PA300,750;PD;PA1700,750;PU;LA1,4;PA300,1200;PD;PA1700,1200;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "joins",
		Program: "IN;SP1;PW3;LA2,1;PA200,300;PD;PA500,1200,800,300;PU;LA2,4;PA900,300;PD;PA1200,1200,1500,300;PU;LA2,3;PA1600,300;PD;PA1750,1200,1900,300;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "miter_limit",
		Program: "IN;SP1;PW2;LA2,1,3,1.5;PA300,300;PD;PA1000,1300,1100,300;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "relative_width",
		Program: "IN;SP1;WU1;PW1;PA200,750;PD;PA1800,750;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "hatch",
		Program: "IN;SP1;FT3,100,45;PA300,300;RA1700,1200;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "cross_hatch",
		Program: "IN;SP1;FT4,150,30;PA1000,750;WG600,0,360;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "shading",
		Program: "IN;SP1;FT10,25;PA200,300;RA900,1200;FT10,75;PA1100,300;RA1800,1200;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "user_pattern",
		Program: "IN;RF1,4,4,1,0,0,1,0,1,1,0,0,1,1,0,1,0,0,1;FT11,1;SP1;PA200,200;RA1800,1300;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "transparent_white",
		Program: "IN;SP1;PA200,200;RA1800,1300;SP0;PA600,600;RA1400,900;",
		Width:   200,
		Height:  150,
	},
}
