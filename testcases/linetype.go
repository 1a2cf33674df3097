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

var lineTypeCases = []TestCase{
	{
		Name:    "fixed",
		Program: "IN;SP1;PW0.5;" + lineTypeRows,
		Width:   200,
		Height:  200,
	},
	{
		Name:    "adaptive",
		Program: "IN;SP1;PW0.5;LT-4,8;PA200,200;PD;PA1800,200,1800,1800,200,1800,200,200;",
		Width:   200,
		Height:  200,
	},
	{
		Name:    "absolute_length",
		Program: "IN;SP1;PW0.5;LT2,10,1;PA200,1000;PD;PA1800,1000;",
		Width:   200,
		Height:  200,
	},
	{
		Name:    "continued_pattern",
		Program: "IN;SP1;PW0.5;LT2,8;PA200,1000;PD;PA700,1000;PU;PD;PA1200,1000;PU;PD;PA1800,1000;",
		Width:   200,
		Height:  200,
	},
	{
		Name:    "previous",
		Program: "IN;SP1;PW0.5;LT3;PA200,500;PD;PA1800,500;PU;LT;PA200,1000;PD;PA1800,1000;PU;LT99;PA200,1500;PD;PA1800,1500;",
		Width:   200,
		Height:  200,
	},
}

// lineTypeRows draws one row for each of the line types 1 to 8.
const lineTypeRows = "LT1;PA200,200;PD;PA1800,200;PU;" +
	"LT2;PA200,400;PD;PA1800,400;PU;" +
	"LT3;PA200,600;PD;PA1800,600;PU;" +
	"LT4;PA200,800;PD;PA1800,800;PU;" +
	"LT5;PA200,1000;PD;PA1800,1000;PU;" +
	"LT6;PA200,1200;PD;PA1800,1200;PU;" +
	"LT7;PA200,1400;PD;PA1800,1400;PU;" +
	"LT8;PA200,1600;PD;PA1800,1600;PU;"
