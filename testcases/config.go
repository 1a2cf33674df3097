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

var configCases = []TestCase{
	{
		Name:    "scaled",
		Program: "IN;SC0,100,0,100;SP1;PW0.5;PA10,10;PD;PA90,10,90,90,10,90,10,10;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "isotropic",
		Program: "IN;SC0,100,0,100,1;SP1;PW0.5;PA10,10;PD;PA90,10,90,90,10,90,10,10;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "isotropic_left",
		Program: "IN;SC0,100,0,100,1,0,0;SP1;PW0.5;PA50,50;CI40;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "point_factor",
		Program: "IN;SC0,2,0,2,2;SP1;PW0.5;PA100,100;PD;PA900,100,900,700;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "mirrored",
		Program: "IN;SC100,0,0,100;SP1;PA20,20;WG30,0,90;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "scale_points",
		Program: "IN;IP500,500,1500,1000;SC0,10,0,10;SP1;PW0.5;PA0,0;PD;PA10,0,10,10,0,10,0,0;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "relative_scale_points",
		Program: "IN;IR25,25,75,75;SC0,10,0,10;SP1;PW0.5;PA0,0;PD;PA10,10;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "rotated",
		Program: "IN;RO90;SP1;PW0.5;PA200,200;PD;PA1200,200,1200,700;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "soft_clip",
		Program: "IN;IW500,400,1500,1100;SP1;PA1000,750;WG600,0,360;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "lost_mode",
		Program: "IN;SP1;PW0.5;PA200,200;PD;PA1800,200;PR2000000000,0;PR0,500;PA1800,1200;PD;PA200,1200;",
		Width:   200,
		Height:  150,
	},
	{
		Name:    "defaults",
		Program: "IN;SC0,10,0,10;LT2;PW2;DF;SP1;PA200,750;PD;PA1800,750;",
		Width:   200,
		Height:  150,
	},
}
