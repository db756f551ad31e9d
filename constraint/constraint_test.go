/*
 * constraint_test.go, part of goccinput.
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

package constraint

import (
	"errors"
	"math"
	"testing"

	chem "github.com/goccinput/goccinput"
)

//a butane-like chain, with a 1-2 distance of 1.5 and a 1-2-3-4 dihedral of 90.
const chain = `C 1.5 0.0 0.0
C 0.0 0.0 0.0
C 0.0 0.0 1.5
C 0.0 1.5 1.5
H 2.0 1.0 0.0`

func structure(Te *testing.T) *chem.Structure {
	mol, err := chem.ParseXYZString(chain)
	if err != nil {
		Te.Fatal(err)
	}
	return mol
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScanCompletion(Te *testing.T) {
	tests := []struct {
		name  string
		sp    Spec
		start float64
		end   float64
		step  float64
		count int
	}{
		{"step from count", Spec{Atoms: []int{1, 2}, Scan: true, Start: Float(1.0), End: Float(1.5), Count: Int(5)}, 1.0, 1.5, 0.1, 5},
		{"count from step", Spec{Atoms: []int{1, 2}, Scan: true, Start: Float(1.0), End: Float(1.5), Step: Float(0.1)}, 1.0, 1.5, 0.1, 5},
		{"decreasing range", Spec{Atoms: []int{1, 2}, Scan: true, Start: Float(1.5), End: Float(1.0), Step: Float(0.1)}, 1.5, 1.0, -0.1, 5},
		{"decreasing range negative step", Spec{Atoms: []int{1, 2}, Scan: true, Start: Float(1.5), End: Float(1.0), Step: Float(-0.1)}, 1.5, 1.0, -0.1, 5},
		{"end from count and step", Spec{Atoms: []int{1, 2}, Scan: true, Start: Float(1.0), Step: Float(0.05), Count: Int(10)}, 1.0, 1.5, 0.05, 10},
		{"rounded step", Spec{Atoms: []int{1, 2, 3}, Scan: true, Start: Float(100), End: Float(110), Count: Int(3)}, 100, 110, 3.33, 3},
		{"half count goes to even", Spec{Atoms: []int{1, 2}, Scan: true, Start: Float(0), End: Float(0.5), Step: Float(0.2)}, 0, 0.5, 0.25, 2},
		{"half step goes to even", Spec{Atoms: []int{1, 2}, Scan: true, Start: Float(0), End: Float(0.5), Count: Int(4)}, 0, 0.5, 0.12, 4},
		{"start from geometry", Spec{Atoms: []int{1, 2}, Scan: true, End: Float(2.0), Count: Int(5)}, 1.5, 2.0, 0.1, 5},
	}
	mol := structure(Te)
	for _, t := range tests {
		C, adv, err := Resolve([]Spec{t.sp}, mol, 0)
		if err != nil {
			Te.Errorf("%s: %s", t.name, err)
			continue
		}
		if len(adv) != 0 {
			Te.Errorf("%s: unexpected advice %v", t.name, adv)
		}
		c := C[0]
		if !c.IsScan() || !near(c.Start(), t.start) || math.Abs(c.End()-t.end) > 1e-9 || !near(c.Step(), t.step) || c.Count() != t.count {
			Te.Errorf("%s: got %s step %f, want start %f end %f step %f count %d", t.name, c, c.Step(), t.start, t.end, t.step, t.count)
		}
	}
}

func TestScanParameterCount(Te *testing.T) {
	mol := structure(Te)
	bad := []Spec{
		{Atoms: []int{1, 2}, Scan: true, Start: Float(1)},
		{Atoms: []int{1, 2}, Scan: true, End: Float(2)},
		{Atoms: []int{1, 2}, Scan: true, Count: Int(3)},
		{Atoms: []int{1, 2}, Scan: true, End: Float(2), Step: Float(0.1), Count: Int(5)},
		{Atoms: []int{1, 2}, Scan: true, End: Float(2), Step: Float(0)},
		{Atoms: []int{1, 2}, Scan: true, End: Float(2), Count: Int(0)},
		{Atoms: []int{1, 2}, Scan: true, Start: Float(1), End: Float(1.01), Step: Float(0.1)},
		{Atoms: []int{1, 2}, Scan: true, Start: Float(1), End: Float(1.001), Count: Int(10)},
	}
	for i, sp := range bad {
		if _, _, err := Resolve([]Spec{sp}, mol, 0); !errors.Is(err, chem.InvalidParameter) {
			Te.Errorf("spec %d should be an invalid parameter, got %v", i, err)
		}
	}
}

func TestAtomValidation(Te *testing.T) {
	mol := structure(Te)
	bad := [][]int{{1}, {1, 2, 3, 4, 5}, {1, 1}, {1, 2, 1}, {0, 1}, {1, 6}, {-1, 2}}
	for _, ids := range bad {
		if _, _, err := Resolve([]Spec{{Atoms: ids}}, mol, 0); !errors.Is(err, chem.InvalidParameter) {
			Te.Errorf("atoms %v should be rejected, got %v", ids, err)
		}
	}
	//without a structure the bounds can't be checked, but a start can't be measured either.
	if _, _, err := Resolve([]Spec{{Atoms: []int{1, 60}}}, nil, 0); err == nil {
		Te.Error("freeze without coordinates should fail")
	}
	C, _, err := Resolve([]Spec{{Atoms: []int{1, 60}, Scan: true, Start: Float(1), End: Float(2), Count: Int(10)}}, nil, 0)
	if err != nil || C[0].Start() != 1 {
		Te.Errorf("scan with explicit start should work without coordinates: %v", err)
	}
}

func TestFreeze(Te *testing.T) {
	mol := structure(Te)
	C, _, err := Resolve([]Spec{{Atoms: []int{1, 2}}, {Atoms: []int{1, 2, 3}}, {Atoms: []int{1, 2, 3, 4}}}, mol, 0)
	if err != nil {
		Te.Fatal(err)
	}
	want := []float64{1.5, 90, 90}
	kinds := []Kind{Bond, Angle, Dihedral}
	for i, c := range C {
		if c.IsScan() || !near(c.Start(), want[i]) || c.Kind() != kinds[i] {
			Te.Errorf("freeze %d: got %s (%s)", i, c, c.Kind())
		}
	}
	if _, _, err := Resolve([]Spec{{Atoms: []int{1, 2}, Count: Int(2)}}, mol, 0); err == nil {
		Te.Error("a freeze with a step count should fail")
	}
}

//Gaussian scans always start at the current geometry; the given start is dropped with a warning.
func TestScanFromCurrentGeometry(Te *testing.T) {
	mol := structure(Te)
	q := QuirksOf("gaussian")
	C, adv, err := Resolve([]Spec{{Atoms: []int{1, 2}, Scan: true, Start: Float(1.0), End: Float(2.0), Count: Int(5)}}, mol, q)
	if err != nil {
		Te.Fatal(err)
	}
	if len(adv) != 1 {
		Te.Errorf("expected one advisory message, got %v", adv)
	}
	if !near(C[0].Start(), 1.5) || !near(C[0].Step(), 0.1) {
		Te.Errorf("start should be the current value: %s", C[0])
	}
	if _, _, err := Resolve([]Spec{{Atoms: []int{1, 2}, Scan: true, Start: Float(1.0), End: Float(2.0), Count: Int(5)}}, nil, q); err == nil {
		Te.Error("without coordinates the current value can't be measured")
	}
}

//Compatibility quirk: xtb dihedral scans get the opposite step sign. Bonds and angles don't.
func TestInvertedDihedralScan(Te *testing.T) {
	mol := structure(Te)
	q := QuirksOf("xtb")
	specs := []Spec{
		{Atoms: []int{1, 2, 3, 4}, Scan: true, End: Float(180), Count: Int(9)},
		{Atoms: []int{1, 2, 3}, Scan: true, End: Float(180), Count: Int(9)},
	}
	C, _, err := Resolve(specs, mol, q)
	if err != nil {
		Te.Fatal(err)
	}
	if !near(C[0].Step(), -10) || C[0].End() != 180 {
		Te.Errorf("dihedral step should be negated: %s step %f", C[0], C[0].Step())
	}
	if !near(C[0].StepEnd(), 0) {
		Te.Errorf("the inverted dihedral scan should reach 0, got %f", C[0].StepEnd())
	}
	if !near(C[1].Step(), 10) || C[1].StepEnd() != C[1].End() {
		Te.Errorf("angle step should not be negated: %f", C[1].Step())
	}
	C, _, _ = Resolve(specs[:1], mol, QuirksOf("orca"))
	if !near(C[0].Step(), 10) {
		Te.Errorf("orca has no inverted dihedrals: %f", C[0].Step())
	}
	if QuirksOf("orca") != 0 || !QuirksOf("xtb").Has(InvertedDihedralScan) || QuirksOf("xtb").Has(ScanFromCurrentGeometry) {
		Te.Error("wrong quirk table")
	}
}

func TestParseString(Te *testing.T) {
	specs, err := ParseString("Freeze/1_2;scan_end=180_count=18/1_2_3_4; Scan_1.0_1.5_5/1_3;scan_from=1.2_to=1.0_size=0.05/2_3;;")
	if err != nil {
		Te.Fatal(err)
	}
	if len(specs) != 4 {
		Te.Fatalf("expected 4 constraints, got %d", len(specs))
	}
	if specs[0].Scan || len(specs[0].Atoms) != 2 {
		Te.Errorf("wrong freeze %+v", specs[0])
	}
	if !specs[1].Scan || *specs[1].End != 180 || *specs[1].Count != 18 || specs[1].Start != nil || specs[1].Step != nil {
		Te.Errorf("wrong keyed scan %+v", specs[1])
	}
	if *specs[2].Start != 1.0 || *specs[2].End != 1.5 || *specs[2].Count != 5 {
		Te.Errorf("wrong positional scan %+v", specs[2])
	}
	if *specs[3].Start != 1.2 || *specs[3].End != 1.0 || *specs[3].Step != 0.05 {
		Te.Errorf("wrong aliased scan %+v", specs[3])
	}
	C, _, err := Resolve(specs, structure(Te), 0)
	if err != nil {
		Te.Fatal(err)
	}
	if C[3].Count() != 4 || !near(C[3].Step(), -0.05) {
		Te.Errorf("wrong resolution %s", C[3])
	}
	bad := []string{
		"freeze",
		"rotate/1_2",
		"freeze/1_a",
		"scan_1_2/1_2",
		"scan_start=1_2/1_2",
		"scan_end=1_end=2/1_2",
		"scan_colour=red/1_2",
		"scan_count=1.5_end=2/1_2",
		"freeze_end=2/1_2",
		"freeze_1/1_2",
		"scan_end=x_count=2/1_2",
		"freeze/1_2/3",
	}
	for _, s := range bad {
		if _, err := ParseString(s); !errors.Is(err, chem.InvalidParameter) {
			Te.Errorf("%q should be rejected, got %v", s, err)
		}
	}
}

func TestArrays(Te *testing.T) {
	A := Arrays{
		Freeze: [][]int{{1, 2}},
		Scan:   [][]int{{1, 2, 3}, {2, 3}},
		End:    []float64{120, math.NaN()},
		Step:   []float64{math.NaN(), 0.1},
		Count:  []int{3, 4},
	}
	specs, err := A.Specs()
	if err != nil {
		Te.Fatal(err)
	}
	if len(specs) != 3 || specs[0].Scan || !specs[1].Scan {
		Te.Fatalf("wrong specs %+v", specs)
	}
	if specs[1].Step != nil || *specs[1].End != 120 || specs[2].End != nil || *specs[2].Step != 0.1 || specs[1].Start != nil {
		Te.Errorf("NaN should mean missing: %+v %+v", specs[1], specs[2])
	}
	C, _, err := Resolve(specs, structure(Te), 0)
	if err != nil {
		Te.Fatal(err)
	}
	if !near(C[1].Step(), 10) || !near(C[2].End(), 1.9) {
		Te.Errorf("wrong resolution %s %s", C[1], C[2])
	}
	A.Count = []int{3}
	if _, err := A.Specs(); !errors.Is(err, chem.InvalidParameter) {
		Te.Errorf("mismatched lengths should fail, got %v", err)
	}
}
