/*
 * chem_test.go, part of goccinput.
 *
 * Copyright 2024 The goccinput Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chem

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const ethane = `C 0.0 0.0 0.0
C 0.0 0.0 1.54
H 1.0 0.0 -0.36
H 0.0 1.0 1.90
H 0.0 -1.0 1.90`

func TestXYZIO(Te *testing.T) {
	mol, err := XYZFileRead("test/water.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 3 || mol.Symbol(0) != "O" {
		Te.Errorf("wrong structure read: %d atoms, first %s", mol.Len(), mol.Symbol(0))
	}
	if mol.Electrons() != 10 {
		Te.Errorf("water should have 10 electrons, got %d", mol.Electrons())
	}
	bare, err := ParseXYZString("\n" + ethane + "\n\n")
	if err != nil {
		Te.Fatal(err)
	}
	if bare.Len() != 5 {
		Te.Errorf("expected 5 atoms, got %d", bare.Len())
	}
	if el := bare.Elements(); len(el) != 2 || el[0] != "C" || el[1] != "H" {
		Te.Errorf("wrong elements %v", el)
	}
}

func TestXYZWrite(Te *testing.T) {
	mol, err := XYZFileRead("test/water.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	b := new(strings.Builder)
	if err := XYZWrite(b, mol, "water\nagain"); err != nil {
		Te.Fatal(err)
	}
	want := "3\nwater again\n" +
		"O      0.000000     0.000000     0.117790\n" +
		"H      0.000000     0.755453    -0.471161\n" +
		"H      0.000000    -0.755453    -0.471161\n"
	if b.String() != want {
		Te.Errorf("got\n%s\nwant\n%s", b.String(), want)
	}
	back, err := ParseXYZString(b.String())
	if err != nil || back.Len() != 3 || back.Symbol(2) != "H" {
		Te.Errorf("written structure can't be read back: %v", err)
	}
	if err := XYZWrite(b, nil, ""); !errors.Is(err, MissingParameter) {
		Te.Errorf("an empty structure should be a missing parameter, got %v", err)
	}
}

func TestXYZErrors(Te *testing.T) {
	bad := []string{
		"",
		"3\ncomment\nO 0 0 0\n",
		"Xx 0 0 0",
		"C 0 0",
		"C 0 zero 0",
	}
	for _, v := range bad {
		if _, err := ParseXYZString(v); err == nil {
			Te.Errorf("structure %q should have failed", v)
		}
	}
	_, err := ParseXYZString("Xx 0 0 0")
	if !errors.Is(err, InvalidParameter) {
		Te.Errorf("unknown element should be an invalid parameter, got %v", err)
	}
}

func TestSymbols(Te *testing.T) {
	S, err := ParseXYZString("CL 0 0 0\nbr 0 0 2")
	if err != nil {
		Te.Fatal(err)
	}
	if S.Symbol(0) != "Cl" || S.Symbol(1) != "Br" {
		Te.Errorf("symbols not normalized: %s %s", S.Symbol(0), S.Symbol(1))
	}
	if S.Electrons() != 17+35 {
		Te.Errorf("wrong electron count %d", S.Electrons())
	}
}

func TestGeometry(Te *testing.T) {
	mol, err := XYZFileRead("test/water.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	d, err := mol.Distance(1, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(d-0.9579) > 1e-4 {
		Te.Errorf("O-H distance %f", d)
	}
	a, err := mol.Angle(2, 1, 3)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(a-104.12) > 1e-2 {
		Te.Errorf("H-O-H angle %f", a)
	}
	if _, err := mol.Distance(1, 4); !errors.Is(err, InvalidParameter) {
		Te.Errorf("out of range atom should fail, got %v", err)
	}
	if _, err := mol.Angle(0, 1, 2); err == nil {
		Te.Error("atom 0 should be out of range")
	}
}

func TestDihedral(Te *testing.T) {
	tests := []struct {
		d    string
		want float64
	}{
		{"H 0 1 1", 90},
		{"H 0 -1 1", -90},
		{"H 1 0 1", 0},
		{"H -1 0 1", 180},
		{"H 1 1 1", 45},
	}
	for _, t := range tests {
		S, err := ParseXYZString("H 1 0 0\nC 0 0 0\nC 0 0 1\n" + t.d)
		if err != nil {
			Te.Fatal(err)
		}
		got, err := S.Dihedral(1, 2, 3, 4)
		if err != nil {
			Te.Fatal(err)
		}
		if math.Abs(got-t.want) > 1e-6 {
			Te.Errorf("dihedral with %s: got %f, want %f", t.d, got, t.want)
		}
		m, _ := S.Measure([]int{1, 2, 3, 4})
		if m != got {
			Te.Errorf("Measure and Dihedral disagree: %f %f", m, got)
		}
	}
}

func TestErrorDecoration(Te *testing.T) {
	err := NewError(MissingParameter, "inner", "nothing here")
	err.Decorate("outer")
	err.Decorate("")
	if len(err.Decorate("")) != 2 || err.Trace() != "inner <- outer" {
		Te.Errorf("wrong decoration %v", err.Decorate(""))
	}
	if !errors.Is(err, MissingParameter) || errors.Is(err, InvalidParameter) {
		Te.Error("kind matching failed")
	}
	if err.Error() != "missing parameter: nothing here" {
		Te.Errorf("wrong message %q", err.Error())
	}
}
